package config

import (
	"runtime"
	"time"

	"github.com/shaderplay/shaderplay/internal/infrastructure/system"
)

// RuntimeConfig aggregates all runtime configuration.
// This is a value object that flows through the system.
type RuntimeConfig struct {
	BinariesRoot string
	TempDir      string

	ProcessTimeout time.Duration

	MaxOutputSizeBytes int
	MaxConcurrentJobs  int

	CacheEnabled bool
	CacheSize    int
}

// FromSystemConfig creates RuntimeConfig from system config.
func FromSystemConfig(sys *system.Config) *RuntimeConfig {
	return &RuntimeConfig{
		BinariesRoot:       sys.Binaries.Root,
		TempDir:            sys.TempDir,
		ProcessTimeout:     sys.Process.Timeout,
		MaxOutputSizeBytes: sys.MaxOutputSizeBytes,
		MaxConcurrentJobs:  sys.Execution.MaxConcurrency,
		CacheEnabled:       sys.Cache.Enabled,
		CacheSize:          sys.Cache.Size,
	}
}

// ApplyDefaults applies defaults for zero values.
func (r *RuntimeConfig) ApplyDefaults() {
	if r.MaxConcurrentJobs <= 0 {
		r.MaxConcurrentJobs = runtime.NumCPU()
	}
}
