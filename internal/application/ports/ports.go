// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/entities"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/infrastructure/system"
)

// ProcessRunner launches an executable and captures its output synchronously.
//
// A process that exits non-zero after writing output is not an error; the
// caller classifies the captured text. Launch failures and abnormal
// terminations are returned as *apperrors.ProcessError.
type ProcessRunner interface {
	Run(ctx context.Context, executable string, args []string) (stdout, stderr string, err error)
}

// BinaryLocator resolves the absolute path of an installed external tool.
type BinaryLocator interface {
	Resolve(tool, version, executable string) (string, error)
}

// CompilerRegistry selects compiler backends by name.
type CompilerRegistry interface {
	Get(name string) (compiler.Compiler, error)
	List() []compiler.Compiler
}

// ResultCache memoizes compile results for identical inputs.
type ResultCache interface {
	Get(key string) (*compiler.Result, bool)
	Add(key string, result *compiler.Result)
}

// ManifestLoader loads batch manifests from storage.
type ManifestLoader interface {
	LoadManifest(path string) (*entities.Manifest, error)
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// OutputFormatter formats batch results.
type OutputFormatter interface {
	Format(result *execution.BatchResult) error
}

// FormatterOptions tunes formatter construction.
type FormatterOptions struct {
	// ManifestPath anchors relative source locations in SARIF output.
	ManifestPath string
	Indent       bool
}

// OutputFormatterFactory creates batch formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
