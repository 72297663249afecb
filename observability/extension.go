// Package observability provides a metrics extension for the task executor
// that records lifecycle event counts and run latencies through a
// MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/xraph/measure/plugin"
	"github.com/xraph/measure/timeunit"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin          = (*MetricsExtension)(nil)
	_ plugin.OnInit          = (*MetricsExtension)(nil)
	_ plugin.OnShutdown      = (*MetricsExtension)(nil)
	_ plugin.OnTaskScheduled = (*MetricsExtension)(nil)
	_ plugin.OnTaskStarted   = (*MetricsExtension)(nil)
	_ plugin.OnTaskCompleted = (*MetricsExtension)(nil)
	_ plugin.OnTaskFailed    = (*MetricsExtension)(nil)
	_ plugin.OnTaskCanceled  = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records executor lifecycle metrics.
// Register it as an executor plugin to track task throughput.
type MetricsExtension struct {
	factory MetricFactory

	// Lifecycle metrics
	ExecutorStarted Counter
	ExecutorStopped Counter

	// Task metrics
	TasksScheduled Counter
	TasksPeriodic  Counter
	TasksCanceled  Counter
	ScheduleDelay  Histogram

	// Run metrics
	RunsStarted   Counter
	RunsCompleted Counter
	RunsFailed    Counter
	RunLatency    Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		ExecutorStarted: factory.Counter("measure.executor.started"),
		ExecutorStopped: factory.Counter("measure.executor.stopped"),

		TasksScheduled: factory.Counter("measure.executor.tasks.scheduled"),
		TasksPeriodic:  factory.Counter("measure.executor.tasks.periodic"),
		TasksCanceled:  factory.Counter("measure.executor.tasks.canceled"),
		ScheduleDelay:  factory.Histogram("measure.executor.tasks.delay_ms"),

		RunsStarted:   factory.Counter("measure.executor.runs.started"),
		RunsCompleted: factory.Counter("measure.executor.runs.completed"),
		RunsFailed:    factory.Counter("measure.executor.runs.failed"),
		RunLatency:    factory.Histogram("measure.executor.runs.latency_ms"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	m.ExecutorStarted.Inc()
	return nil
}

// OnShutdown implements plugin.OnShutdown.
func (m *MetricsExtension) OnShutdown(_ context.Context) error {
	m.ExecutorStopped.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Task lifecycle hooks
// ──────────────────────────────────────────────────

// OnTaskScheduled implements plugin.OnTaskScheduled.
func (m *MetricsExtension) OnTaskScheduled(_ context.Context, ev plugin.TaskEvent) error {
	m.TasksScheduled.Inc()
	if ev.Periodic() {
		m.TasksPeriodic.Inc()
	}
	if ev.Delay.Unit() != nil {
		m.ScheduleDelay.Observe(ev.Delay.In(timeunit.Millisecond))
	} else {
		m.ScheduleDelay.Observe(0)
	}
	return nil
}

// OnTaskStarted implements plugin.OnTaskStarted.
func (m *MetricsExtension) OnTaskStarted(_ context.Context, _ plugin.TaskEvent) error {
	m.RunsStarted.Inc()
	return nil
}

// OnTaskCompleted implements plugin.OnTaskCompleted.
func (m *MetricsExtension) OnTaskCompleted(_ context.Context, _ plugin.TaskEvent, elapsed time.Duration) error {
	m.RunsCompleted.Inc()
	m.RunLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// OnTaskFailed implements plugin.OnTaskFailed.
func (m *MetricsExtension) OnTaskFailed(_ context.Context, _ plugin.TaskEvent, _ error) error {
	m.RunsFailed.Inc()
	return nil
}

// OnTaskCanceled implements plugin.OnTaskCanceled.
func (m *MetricsExtension) OnTaskCanceled(_ context.Context, _ plugin.TaskEvent) error {
	m.TasksCanceled.Inc()
	return nil
}
