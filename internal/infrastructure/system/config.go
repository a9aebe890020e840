// Package system provides infrastructure for system-level configuration.
// This covers the user config file (~/.shaderplay/config.yaml).
package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

// Config represents the global configuration file (~/.shaderplay/config.yaml).
type Config struct {
	Binaries  BinariesConfig  `yaml:"binaries"`
	Process   ProcessConfig   `yaml:"process"`
	Execution ExecutionConfig `yaml:"execution"`
	Cache     CacheConfig     `yaml:"cache"`
	// TempDir holds temporary shader sources; empty means the OS default.
	TempDir string `yaml:"temp_dir"`
	// MaxOutputSizeBytes bounds each output stored in batch reports; 0 means no limit.
	MaxOutputSizeBytes int `yaml:"max_output_size_bytes"`
}

// BinariesConfig locates installed compiler tools.
type BinariesConfig struct {
	// Root is laid out as <root>/<tool>/<version>/<executable>.
	Root string `yaml:"root"`
}

// ProcessConfig controls external tool launches.
type ProcessConfig struct {
	// Timeout kills a single launch that runs longer; 0 disables the limit.
	Timeout time.Duration `yaml:"timeout"`
}

// ExecutionConfig controls batch concurrency.
type ExecutionConfig struct {
	MaxConcurrency int `yaml:"max_concurrency"`
}

// CacheConfig controls the compile result cache.
type CacheConfig struct {
	Size    int  `yaml:"size"`
	Enabled bool `yaml:"enabled"`
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		Binaries: BinariesConfig{
			Root: defaultBinariesRoot(),
		},
		Process: ProcessConfig{
			Timeout: 30 * time.Second,
		},
		Execution: ExecutionConfig{
			MaxConcurrency: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    128,
		},
	}
}

// DefaultPath returns ~/.shaderplay/config.yaml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shaderplay", "config.yaml")
}

func defaultBinariesRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shaderplay", "binaries")
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
// Values missing from the file keep their defaults.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system config %s: %w", path, err)
	}
	return config, nil
}

// LoadConfig implements ports.SystemConfigProvider.
func (l *ConfigLoader) LoadConfig(_ context.Context, path string) (*Config, error) {
	return l.Load(path)
}

// Validate rejects nonsensical values.
func (c *Config) Validate() error {
	if c.Process.Timeout < 0 {
		return fmt.Errorf("process.timeout cannot be negative")
	}
	if c.Execution.MaxConcurrency < 0 {
		return fmt.Errorf("execution.max_concurrency cannot be negative")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size cannot be negative")
	}
	if c.MaxOutputSizeBytes < 0 {
		return fmt.Errorf("max_output_size_bytes cannot be negative")
	}
	return nil
}
