package extension

import (
	"time"

	"github.com/xraph/measure/plugin"
)

// Config holds the measure extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.measure" or "measure" keys).
type Config struct {
	// DisableExecutor prevents the task executor from starting. The executor
	// is still registered in the DI container.
	DisableExecutor bool `json:"disable_executor" mapstructure:"disable_executor" yaml:"disable_executor"`

	// HookTimeout bounds each plugin hook call (default: 5s).
	HookTimeout time.Duration `json:"hook_timeout" mapstructure:"hook_timeout" yaml:"hook_timeout"`

	// MaxConcurrent limits how many task runs execute at once. Zero means
	// no limit.
	MaxConcurrent int `json:"max_concurrent" mapstructure:"max_concurrent" yaml:"max_concurrent"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HookTimeout: plugin.DefaultHookTimeout,
	}
}
