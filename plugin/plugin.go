// Package plugin provides an extensible hook system for the task executor.
// Plugins can hook into executor and task lifecycle events to record metrics,
// write audit trails or react to failures.
package plugin

import (
	"context"
	"time"

	"github.com/xraph/measure"
	"github.com/xraph/measure/id"
	"github.com/xraph/measure/timeunit"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// TaskEvent describes a task at the moment a hook fires.
type TaskEvent struct {
	TaskID id.TaskID
	// RunID is Nil for scheduling and cancellation events.
	RunID id.RunID
	Delay measure.Quantity[timeunit.Time]
	// Period is the zero Quantity for one-shot tasks.
	Period measure.Quantity[timeunit.Time]
	// Run counts executions of a periodic task, starting at 1.
	Run int
}

// Periodic reports whether the task repeats.
func (e TaskEvent) Periodic() bool { return e.Period.Unit() != nil }

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the executor starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, executor interface{}) error
}

// OnShutdown is called when the executor stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Task hooks
// ──────────────────────────────────────────────────

// OnTaskScheduled is called when a task is accepted by the executor.
type OnTaskScheduled interface {
	Plugin
	OnTaskScheduled(ctx context.Context, ev TaskEvent) error
}

// OnTaskStarted is called before each run of a task.
type OnTaskStarted interface {
	Plugin
	OnTaskStarted(ctx context.Context, ev TaskEvent) error
}

// OnTaskCompleted is called after a run returned without error.
type OnTaskCompleted interface {
	Plugin
	OnTaskCompleted(ctx context.Context, ev TaskEvent, elapsed time.Duration) error
}

// OnTaskFailed is called after a run returned an error or panicked.
type OnTaskFailed interface {
	Plugin
	OnTaskFailed(ctx context.Context, ev TaskEvent, err error) error
}

// OnTaskCanceled is called when a pending task is canceled, either through
// Cancel or because the executor stopped.
type OnTaskCanceled interface {
	Plugin
	OnTaskCanceled(ctx context.Context, ev TaskEvent) error
}
