package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shaderplay/shaderplay/internal/infrastructure/container"
	"github.com/shaderplay/shaderplay/internal/infrastructure/system"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SHADERPLAY_BINARIES_ROOT.
const EnvPrefix = "SHADERPLAY"

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "shaderplay",
	Short: "Run shader compilers and inspect their output",
	Long: `shaderplay drives external shader toolchains (glslang, SPIRV-Cross) and
normalizes what they produce: a binary, human-readable listings and the
validation diagnostics. Compile a single file interactively or a whole
manifest of jobs in CI.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shaderplay/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	configureViper(viper.GetViper(), cfgFile)

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func configureViper(v *viper.Viper, file string) {
	if file != "" {
		v.SetConfigFile(file)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".shaderplay"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadSystemConfig reads the config file viper settled on, then applies
// environment overrides on top.
func loadSystemConfig(v *viper.Viper) (*system.Config, error) {
	path := v.ConfigFileUsed()
	if path == "" {
		path = system.DefaultPath()
	}

	cfg, err := system.NewConfigLoader().Load(path)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, v)
	return cfg, cfg.Validate()
}

// applyOverrides copies every key viper knows about (env or file) onto cfg.
func applyOverrides(cfg *system.Config, v *viper.Viper) {
	if v.IsSet("binaries.root") {
		cfg.Binaries.Root = v.GetString("binaries.root")
	}
	if v.IsSet("process.timeout") {
		cfg.Process.Timeout = v.GetDuration("process.timeout")
	}
	if v.IsSet("execution.max_concurrency") {
		cfg.Execution.MaxConcurrency = v.GetInt("execution.max_concurrency")
	}
	if v.IsSet("cache.enabled") {
		cfg.Cache.Enabled = v.GetBool("cache.enabled")
	}
	if v.IsSet("cache.size") {
		cfg.Cache.Size = v.GetInt("cache.size")
	}
	if v.IsSet("temp_dir") {
		cfg.TempDir = v.GetString("temp_dir")
	}
	if v.IsSet("max_output_size_bytes") {
		cfg.MaxOutputSizeBytes = v.GetInt("max_output_size_bytes")
	}
}

// newContainer builds the dependency graph for a command run.
func newContainer() (*container.Container, error) {
	cfg, err := loadSystemConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return container.New(container.Options{
		Logger:       slog.Default(),
		SystemConfig: cfg,
	})
}
