// Package extension provides the Forge extension adapter for measure.
//
// It implements the forge.Extension interface to register the task executor
// in a Forge application's DI container and tie it to the application
// lifecycle. The built-in unit categories are loaded into the catalog as a
// side effect of importing this package.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.measure" or "measure" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/measure"
	"github.com/xraph/measure/executor"

	_ "github.com/xraph/measure/length"
	_ "github.com/xraph/measure/storage"
	_ "github.com/xraph/measure/timeunit"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "measure"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Typed units of measure and a quantity-driven task executor"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts measure as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config       Config
	executor     *executor.Executor
	executorOpts []executor.Option
	started      bool
}

// New creates a new measure Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Executor returns the underlying task executor.
// This is nil until Register is called.
func (e *Extension) Executor() *executor.Executor { return e.executor }

// Register implements [forge.Extension]. It loads configuration,
// builds the executor, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	e.executor = executor.New(e.buildExecutorOpts()...)

	return vessel.Provide(fapp.Container(), func() (*executor.Executor, error) {
		return e.executor, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.executor == nil {
		return errors.New("measure: extension not initialized")
	}

	e.Logger().Info("measure: unit catalog loaded",
		forge.F("categories", measure.Categories()),
	)

	if !e.config.DisableExecutor {
		if err := e.executor.Start(ctx); err != nil {
			return err
		}
		e.started = true
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.executor != nil && e.started {
		e.started = false
		if err := e.executor.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(_ context.Context) error {
	if e.executor == nil {
		return errors.New("measure: executor not initialized")
	}
	if len(measure.Categories()) == 0 {
		return errors.New("measure: no unit categories registered")
	}
	return nil
}

// buildExecutorOpts constructs executor.Option values from the resolved config.
func (e *Extension) buildExecutorOpts() []executor.Option {
	opts := make([]executor.Option, 0, len(e.executorOpts)+2)

	if e.config.HookTimeout > 0 {
		opts = append(opts, executor.WithHookTimeout(e.config.HookTimeout))
	}
	if e.config.MaxConcurrent > 0 {
		opts = append(opts, executor.WithMaxConcurrent(e.config.MaxConcurrent))
	}

	// Append any pass-through executor options.
	opts = append(opts, e.executorOpts...)

	return opts
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("measure: configuration is required but not found in config files; " +
				"ensure 'extensions.measure' or 'measure' key exists in your config")
		}

		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("measure: configuration loaded",
		forge.F("disable_executor", e.config.DisableExecutor),
		forge.F("hook_timeout", e.config.HookTimeout),
		forge.F("max_concurrent", e.config.MaxConcurrent),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	for _, key := range []string{"extensions.measure", "measure"} {
		if !cm.IsSet(key) {
			continue
		}
		if err := cm.Bind(key, &cfg); err == nil {
			e.Logger().Debug("measure: loaded config from file",
				forge.F("key", key),
			)
			return cfg, true
		}
		e.Logger().Warn("measure: failed to bind config",
			forge.F("key", key),
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.HookTimeout == 0 {
		cfg.HookTimeout = defaults.HookTimeout
	}
	if cfg.MaxConcurrent < 0 {
		cfg.MaxConcurrent = 0
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableExecutor {
		yamlConfig.DisableExecutor = true
	}
	if yamlConfig.HookTimeout == 0 && programmaticConfig.HookTimeout != 0 {
		yamlConfig.HookTimeout = programmaticConfig.HookTimeout
	}
	if yamlConfig.MaxConcurrent == 0 && programmaticConfig.MaxConcurrent != 0 {
		yamlConfig.MaxConcurrent = programmaticConfig.MaxConcurrent
	}

	return mergeWithDefaults(yamlConfig)
}
