package extension

import (
	"time"

	"github.com/xraph/measure/executor"
	"github.com/xraph/measure/plugin"
)

// Option configures the measure Forge extension.
type Option func(*Extension)

// WithExecutorOption passes an executor.Option through to the underlying
// executor.
func WithExecutorOption(opt executor.Option) Option {
	return func(e *Extension) {
		e.executorOpts = append(e.executorOpts, opt)
	}
}

// WithPlugin registers an executor plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.executorOpts = append(e.executorOpts, executor.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableExecutor prevents the executor from starting.
func WithDisableExecutor() Option {
	return func(e *Extension) { e.config.DisableExecutor = true }
}

// WithHookTimeout sets the plugin hook timeout.
func WithHookTimeout(d time.Duration) Option {
	return func(e *Extension) { e.config.HookTimeout = d }
}

// WithMaxConcurrent sets the task run concurrency limit.
func WithMaxConcurrent(n int) Option {
	return func(e *Extension) { e.config.MaxConcurrent = n }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
