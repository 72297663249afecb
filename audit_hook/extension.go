// Package audithook bridges executor lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not depend on any
// particular audit store. Callers inject a RecorderFunc adapter at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/measure/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin          = (*Extension)(nil)
	_ plugin.OnInit          = (*Extension)(nil)
	_ plugin.OnShutdown      = (*Extension)(nil)
	_ plugin.OnTaskScheduled = (*Extension)(nil)
	_ plugin.OnTaskStarted   = (*Extension)(nil)
	_ plugin.OnTaskCompleted = (*Extension)(nil)
	_ plugin.OnTaskFailed    = (*Extension)(nil)
	_ plugin.OnTaskCanceled  = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a single audit trail entry.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges executor lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Executor lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit implements plugin.OnInit.
func (e *Extension) OnInit(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionExecutorStarted, SeverityInfo, OutcomeSuccess,
		ResourceExecutor, "", CategoryLifecycle, nil,
	)
}

// OnShutdown implements plugin.OnShutdown.
func (e *Extension) OnShutdown(ctx context.Context) error {
	return e.record(ctx, ActionExecutorStopped, SeverityInfo, OutcomeSuccess,
		ResourceExecutor, "", CategoryLifecycle, nil,
	)
}

// ──────────────────────────────────────────────────
// Task lifecycle hooks
// ──────────────────────────────────────────────────

// OnTaskScheduled implements plugin.OnTaskScheduled.
func (e *Extension) OnTaskScheduled(ctx context.Context, ev plugin.TaskEvent) error {
	kv := []any{"delay", ev.Delay.String()}
	if ev.Periodic() {
		kv = append(kv, "period", ev.Period.String())
	}
	return e.record(ctx, ActionTaskScheduled, SeverityInfo, OutcomeSuccess,
		ResourceTask, ev.TaskID.String(), CategoryScheduling, nil,
		kv...,
	)
}

// OnTaskCanceled implements plugin.OnTaskCanceled.
func (e *Extension) OnTaskCanceled(ctx context.Context, ev plugin.TaskEvent) error {
	return e.record(ctx, ActionTaskCanceled, SeverityWarning, OutcomeSuccess,
		ResourceTask, ev.TaskID.String(), CategoryScheduling, nil,
		"runs", ev.Run,
	)
}

// ──────────────────────────────────────────────────
// Run lifecycle hooks
// ──────────────────────────────────────────────────

// OnTaskStarted implements plugin.OnTaskStarted.
func (e *Extension) OnTaskStarted(ctx context.Context, ev plugin.TaskEvent) error {
	return e.record(ctx, ActionRunStarted, SeverityInfo, OutcomeSuccess,
		ResourceRun, ev.RunID.String(), CategoryExecution, nil,
		"task_id", ev.TaskID.String(),
		"run", ev.Run,
	)
}

// OnTaskCompleted implements plugin.OnTaskCompleted.
func (e *Extension) OnTaskCompleted(ctx context.Context, ev plugin.TaskEvent, elapsed time.Duration) error {
	return e.record(ctx, ActionRunCompleted, SeverityInfo, OutcomeSuccess,
		ResourceRun, ev.RunID.String(), CategoryExecution, nil,
		"task_id", ev.TaskID.String(),
		"run", ev.Run,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// OnTaskFailed implements plugin.OnTaskFailed.
func (e *Extension) OnTaskFailed(ctx context.Context, ev plugin.TaskEvent, err error) error {
	return e.record(ctx, ActionRunFailed, SeverityError, OutcomeFailure,
		ResourceRun, ev.RunID.String(), CategoryExecution, err,
		"task_id", ev.TaskID.String(),
		"run", ev.Run,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
