// Package executor runs tasks after a delay or at a fixed rate, with delays and
// periods given as time quantities such as "90 seconds" or "1.5 hours".
//
// The executor is a library component: create one with New, Start it, and
// Stop it when the application shuts down. Lifecycle events are dispatched to
// plugins (metrics, audit) through the plugin package.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/measure"
	"github.com/xraph/measure/id"
	"github.com/xraph/measure/plugin"
	"github.com/xraph/measure/timeunit"
)

// Task is the unit of work run by the executor. The context is canceled when
// the executor stops.
type Task func(ctx context.Context) error

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Executor schedules and runs tasks. It is safe for concurrent use.
type Executor struct {
	plugins *plugin.Registry
	logger  *slog.Logger

	// Configuration
	maxConcurrent int
	sem           chan struct{}

	mu      sync.Mutex
	state   state
	ctx     context.Context
	hookCtx context.Context
	cancel  context.CancelFunc
	tasks   map[string]*entry
	wg      sync.WaitGroup
}

// entry is a scheduled task. Fields other than task and event are guarded by
// Executor.mu.
type entry struct {
	task   Task
	event  plugin.TaskEvent
	timer  *time.Timer
	period time.Duration
	next   time.Time
	runs   int
}

// New creates a new Executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		tasks:   make(map[string]*entry),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.maxConcurrent > 0 {
		e.sem = make(chan struct{}, e.maxConcurrent)
	}

	return e
}

// Option configures an Executor instance.
type Option func(*Executor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Executor) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithHookTimeout bounds each plugin hook call.
func WithHookTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.plugins.WithTimeout(d)
	}
}

// WithMaxConcurrent limits how many task runs execute at the same time. Runs
// over the limit wait for a free slot. Zero or less means no limit.
func WithMaxConcurrent(n int) Option {
	return func(e *Executor) {
		e.maxConcurrent = n
	}
}

// Plugins returns the plugin registry.
func (e *Executor) Plugins() *plugin.Registry { return e.plugins }

// Start makes the executor accept tasks. Tasks receive a context derived from
// ctx.
func (e *Executor) Start(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case stateRunning:
		e.mu.Unlock()
		return ErrAlreadyStarted
	case stateStopped:
		e.mu.Unlock()
		return ErrStopped
	}
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.hookCtx = context.WithoutCancel(ctx)
	e.state = stateRunning
	e.mu.Unlock()

	// Initialize plugins
	e.plugins.EmitInit(e.hookCtx, e)

	e.logger.Info("executor started",
		"max_concurrent", e.maxConcurrent,
		"plugins", e.plugins.Count(),
	)

	return nil
}

// Stop cancels every pending task, cancels the context of running tasks and
// waits for them to return. Stopping twice is a no-op.
func (e *Executor) Stop() error {
	e.mu.Lock()
	switch e.state {
	case stateIdle:
		e.mu.Unlock()
		return ErrNotStarted
	case stateStopped:
		e.mu.Unlock()
		return nil
	}
	e.state = stateStopped

	pending := make([]plugin.TaskEvent, 0, len(e.tasks))
	for key, ent := range e.tasks {
		ent.timer.Stop()
		pending = append(pending, ent.event)
		delete(e.tasks, key)
	}
	e.cancel()
	e.mu.Unlock()

	for _, ev := range pending {
		e.plugins.EmitTaskCanceled(e.hookCtx, ev)
	}

	e.wg.Wait()
	e.plugins.EmitShutdown(e.hookCtx)

	e.logger.Info("executor stopped",
		"canceled", len(pending),
	)

	return nil
}

// ──────────────────────────────────────────────────
// Scheduling
// ──────────────────────────────────────────────────

// Schedule runs task once after delay. A zero delay runs it as soon as
// possible.
func (e *Executor) Schedule(delay measure.Quantity[timeunit.Time], task Task) (id.TaskID, error) {
	d, err := delayDuration(delay)
	if err != nil {
		return id.Nil, err
	}
	return e.schedule(task, plugin.TaskEvent{Delay: delay}, d, 0)
}

// ScheduleAtFixedRate runs task after initial and then every period, measured
// from the first run's scheduled time rather than from the end of the
// previous run. Runs may overlap when a run takes longer than period.
func (e *Executor) ScheduleAtFixedRate(initial, period measure.Quantity[timeunit.Time], task Task) (id.TaskID, error) {
	d, err := delayDuration(initial)
	if err != nil {
		return id.Nil, err
	}
	if period.Unit() == nil || timeunit.Duration(period) < time.Nanosecond {
		return id.Nil, fmt.Errorf("%w: got %s", ErrInvalidPeriod, period)
	}
	return e.schedule(task, plugin.TaskEvent{Delay: initial, Period: period}, d, timeunit.Duration(period))
}

// Cancel removes a pending task. It reports whether the task was pending. A
// run already in progress is not interrupted, but a periodic task does not
// run again.
func (e *Executor) Cancel(taskID id.TaskID) bool {
	e.mu.Lock()
	ent, ok := e.tasks[taskID.String()]
	if ok {
		ent.timer.Stop()
		delete(e.tasks, taskID.String())
	}
	e.mu.Unlock()

	if !ok {
		return false
	}

	e.plugins.EmitTaskCanceled(e.hookCtx, ent.event)
	e.logger.Debug("task canceled", "task_id", taskID.String())
	return true
}

// Pending returns the number of tasks waiting for their next run.
func (e *Executor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

func (e *Executor) schedule(task Task, ev plugin.TaskEvent, delay, period time.Duration) (id.TaskID, error) {
	if task == nil {
		return id.Nil, ErrNilTask
	}

	e.mu.Lock()
	switch e.state {
	case stateIdle:
		e.mu.Unlock()
		return id.Nil, ErrNotStarted
	case stateStopped:
		e.mu.Unlock()
		return id.Nil, ErrStopped
	}

	ev.TaskID = id.NewTaskID()
	ent := &entry{
		task:   task,
		event:  ev,
		period: period,
		next:   time.Now().Add(delay),
	}
	e.tasks[ev.TaskID.String()] = ent
	ent.timer = time.AfterFunc(delay, func() { e.fire(ent) })
	e.mu.Unlock()

	e.plugins.EmitTaskScheduled(e.hookCtx, ev)

	e.logger.Debug("task scheduled",
		"task_id", ev.TaskID.String(),
		"delay", ev.Delay.String(),
		"period", ev.Period.String(),
	)

	return ev.TaskID, nil
}

// fire runs on the timer goroutine of ent.
func (e *Executor) fire(ent *entry) {
	key := ent.event.TaskID.String()

	e.mu.Lock()
	if e.state != stateRunning || e.tasks[key] != ent {
		e.mu.Unlock()
		return
	}
	ent.runs++
	ev := ent.event
	ev.Run = ent.runs
	if ent.period > 0 {
		ent.next = ent.next.Add(ent.period)
		ent.timer.Reset(time.Until(ent.next))
	} else {
		delete(e.tasks, key)
	}
	ctx := e.ctx
	e.wg.Add(1)
	e.mu.Unlock()

	defer e.wg.Done()
	e.run(ctx, ent.task, ev)
}

func (e *Executor) run(ctx context.Context, task Task, ev plugin.TaskEvent) {
	if e.sem != nil {
		select {
		case e.sem <- struct{}{}:
			defer func() { <-e.sem }()
		case <-ctx.Done():
			e.plugins.EmitTaskCanceled(e.hookCtx, ev)
			return
		}
	}

	ev.RunID = id.NewRunID()
	e.plugins.EmitTaskStarted(e.hookCtx, ev)

	start := time.Now()
	err := safeRun(ctx, task)
	elapsed := time.Since(start)

	if err != nil {
		e.logger.Error("task failed",
			"task_id", ev.TaskID.String(),
			"run_id", ev.RunID.String(),
			"run", ev.Run,
			"error", err,
		)
		e.plugins.EmitTaskFailed(e.hookCtx, ev, err)
		return
	}

	e.logger.Debug("task completed",
		"task_id", ev.TaskID.String(),
		"run_id", ev.RunID.String(),
		"elapsed_ms", elapsed.Milliseconds(),
	)
	e.plugins.EmitTaskCompleted(e.hookCtx, ev, elapsed)
}

// safeRun turns a panicking task into a failed run.
func safeRun(ctx context.Context, task Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("executor: task panicked: %v", rec)
		}
	}()
	return task(ctx)
}

// delayDuration converts a delay to a time.Duration. The zero Quantity means
// no delay.
func delayDuration(delay measure.Quantity[timeunit.Time]) (time.Duration, error) {
	if delay.Unit() == nil {
		return 0, nil
	}
	if delay.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeDelay, delay)
	}
	return timeunit.Duration(delay), nil
}
