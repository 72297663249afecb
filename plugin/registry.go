package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// DefaultHookTimeout bounds every hook call unless WithTimeout says otherwise.
const DefaultHookTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit          []OnInit
	onShutdown      []OnShutdown
	onTaskScheduled []OnTaskScheduled
	onTaskStarted   []OnTaskStarted
	onTaskCompleted []OnTaskCompleted
	onTaskFailed    []OnTaskFailed
	onTaskCanceled  []OnTaskCanceled
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultHookTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets how long a single hook may run before it is abandoned.
// Non-positive values restore DefaultHookTimeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d <= 0 {
		d = DefaultHookTimeout
	}
	r.timeout = d
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnTaskScheduled); ok {
		r.onTaskScheduled = append(r.onTaskScheduled, v)
	}
	if v, ok := p.(OnTaskStarted); ok {
		r.onTaskStarted = append(r.onTaskStarted, v)
	}
	if v, ok := p.(OnTaskCompleted); ok {
		r.onTaskCompleted = append(r.onTaskCompleted, v)
	}
	if v, ok := p.(OnTaskFailed); ok {
		r.onTaskFailed = append(r.onTaskFailed, v)
	}
	if v, ok := p.(OnTaskCanceled); ok {
		r.onTaskCanceled = append(r.onTaskCanceled, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", implementedInterfaces(p),
	)

	return nil
}

var hookInterfaces = []struct {
	name  string
	iface reflect.Type
}{
	{"OnInit", reflect.TypeFor[OnInit]()},
	{"OnShutdown", reflect.TypeFor[OnShutdown]()},
	{"OnTaskScheduled", reflect.TypeFor[OnTaskScheduled]()},
	{"OnTaskStarted", reflect.TypeFor[OnTaskStarted]()},
	{"OnTaskCompleted", reflect.TypeFor[OnTaskCompleted]()},
	{"OnTaskFailed", reflect.TypeFor[OnTaskFailed]()},
	{"OnTaskCanceled", reflect.TypeFor[OnTaskCanceled]()},
}

// implementedInterfaces returns the hook interfaces implemented by p.
func implementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)
	for _, h := range hookInterfaces {
		if v.Implements(h.iface) {
			interfaces = append(interfaces, h.name)
		}
	}
	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, executor interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, p.Name(), "OnInit", func() error {
			return p.OnInit(ctx, executor)
		})
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, p.Name(), "OnShutdown", func() error {
			return p.OnShutdown(ctx)
		})
	}
}

// EmitTaskScheduled emits a task scheduled event.
func (r *Registry) EmitTaskScheduled(ctx context.Context, ev TaskEvent) {
	r.mu.RLock()
	plugins := r.onTaskScheduled
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, p.Name(), "OnTaskScheduled", func() error {
			return p.OnTaskScheduled(ctx, ev)
		})
	}
}

// EmitTaskStarted emits a task started event.
func (r *Registry) EmitTaskStarted(ctx context.Context, ev TaskEvent) {
	r.mu.RLock()
	plugins := r.onTaskStarted
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, p.Name(), "OnTaskStarted", func() error {
			return p.OnTaskStarted(ctx, ev)
		})
	}
}

// EmitTaskCompleted emits a task completed event.
func (r *Registry) EmitTaskCompleted(ctx context.Context, ev TaskEvent, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onTaskCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, p.Name(), "OnTaskCompleted", func() error {
			return p.OnTaskCompleted(ctx, ev, elapsed)
		})
	}
}

// EmitTaskFailed emits a task failed event.
func (r *Registry) EmitTaskFailed(ctx context.Context, ev TaskEvent, taskErr error) {
	r.mu.RLock()
	plugins := r.onTaskFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, p.Name(), "OnTaskFailed", func() error {
			return p.OnTaskFailed(ctx, ev, taskErr)
		})
	}
}

// EmitTaskCanceled emits a task canceled event.
func (r *Registry) EmitTaskCanceled(ctx context.Context, ev TaskEvent) {
	r.mu.RLock()
	plugins := r.onTaskCanceled
	r.mu.RUnlock()

	for _, p := range plugins {
		r.dispatch(ctx, p.Name(), "OnTaskCanceled", func() error {
			return p.OnTaskCanceled(ctx, ev)
		})
	}
}

func (r *Registry) dispatch(ctx context.Context, pluginName, hook string, fn func() error) {
	if err := r.callWithTimeout(ctx, pluginName, fn); err != nil {
		r.logger.Warn("plugin "+hook+" failed",
			"plugin", pluginName,
			"error", err,
		)
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block task execution.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("plugin panic: %s: %v", pluginName, rec)
			}
		}()
		done <- fn()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
