// Package container provides dependency injection for the application.
package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaderplay/shaderplay/internal/application/ports"
	"github.com/shaderplay/shaderplay/internal/application/services"
	"github.com/shaderplay/shaderplay/internal/infrastructure/binaries"
	"github.com/shaderplay/shaderplay/internal/infrastructure/cache"
	"github.com/shaderplay/shaderplay/internal/infrastructure/compilers"
	"github.com/shaderplay/shaderplay/internal/infrastructure/config"
	"github.com/shaderplay/shaderplay/internal/infrastructure/output"
	"github.com/shaderplay/shaderplay/internal/infrastructure/persistence/memory"
	"github.com/shaderplay/shaderplay/internal/infrastructure/process"
	"github.com/shaderplay/shaderplay/internal/infrastructure/system"
	"github.com/shaderplay/shaderplay/internal/version"
)

// Container holds all application dependencies.
type Container struct {
	registry       *compilers.Registry
	formatters     ports.OutputFormatterFactory
	compileUseCase *services.CompileUseCase
	batchUseCase   *services.BatchUseCase
	historyUseCase *services.HistoryUseCase
	runtimeCfg     *config.RuntimeConfig
	systemCfg      *system.Config
	logger         *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string

	// SystemConfig, when set, is used as-is and SystemConfigPath is ignored.
	SystemConfig *system.Config
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	systemCfg := opts.SystemConfig
	if systemCfg == nil {
		var err error
		systemCfg, err = system.NewConfigLoader().LoadConfig(context.TODO(), opts.SystemConfigPath)
		if err != nil {
			opts.Logger.Debug("failed to load system config, using defaults", "error", err)
			systemCfg = system.DefaultConfig()
		}
	}

	runtimeCfg := config.FromSystemConfig(systemCfg)
	runtimeCfg.ApplyDefaults()

	runner := process.NewRunner(
		process.WithTimeout(runtimeCfg.ProcessTimeout),
		process.WithLogger(opts.Logger),
	)
	locator := binaries.NewLocator(runtimeCfg.BinariesRoot)
	registry := compilers.NewDefaultRegistry(runner, locator, runtimeCfg.TempDir)

	var resultCache ports.ResultCache
	if runtimeCfg.CacheEnabled {
		c, err := cache.NewResultCache(runtimeCfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		resultCache = c
	}

	records := memory.NewCompileRecordRepository()

	compileUseCase := services.NewCompileUseCase(registry, resultCache, records, opts.Logger)
	batchUseCase := services.NewBatchUseCase(
		config.NewManifestLoader(),
		compileUseCase,
		opts.Logger,
		services.WithToolVersion(version.Get().String()),
		services.WithOutputLimit(runtimeCfg.MaxOutputSizeBytes),
	)

	return &Container{
		registry:       registry,
		formatters:     output.NewFormatterFactory(),
		compileUseCase: compileUseCase,
		batchUseCase:   batchUseCase,
		historyUseCase: services.NewHistoryUseCase(records),
		runtimeCfg:     runtimeCfg,
		systemCfg:      systemCfg,
		logger:         opts.Logger,
	}, nil
}

// CompileUseCase returns the single compile use case.
func (c *Container) CompileUseCase() *services.CompileUseCase {
	return c.compileUseCase
}

// BatchUseCase returns the manifest compile use case.
func (c *Container) BatchUseCase() *services.BatchUseCase {
	return c.batchUseCase
}

// Compilers returns the compiler registry.
func (c *Container) Compilers() ports.CompilerRegistry {
	return c.registry
}

// HistoryUseCase returns the compile record reader.
func (c *Container) HistoryUseCase() *services.HistoryUseCase {
	return c.historyUseCase
}

// Formatters returns the batch output formatter factory.
func (c *Container) Formatters() ports.OutputFormatterFactory {
	return c.formatters
}

// RuntimeConfig returns the effective runtime configuration.
func (c *Container) RuntimeConfig() *config.RuntimeConfig {
	return c.runtimeCfg
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
