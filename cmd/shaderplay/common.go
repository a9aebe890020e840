package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// CommonOptions contains flags shared across commands.
type CommonOptions struct {
	// Output
	Format  string
	OutFile string

	// Execution
	Timeout time.Duration

	validFormats []string
}

// newCommonOptions returns defaults for a command that renders in formats.
// The first format is the default.
func newCommonOptions(formats ...string) CommonOptions {
	return CommonOptions{
		Format:       formats[0],
		Timeout:      5 * time.Minute,
		validFormats: formats,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Timeout for the entire command (0 to disable)")
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: "+strings.Join(opts.validFormats, ", "))
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", "",
		"Output file path (default: stdout)")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout cannot be negative")
	}
	for _, f := range opts.validFormats {
		if opts.Format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s (valid: %s)", opts.Format, strings.Join(opts.validFormats, ", "))
}

// OpenOutput returns stdout or the --output file and a function that closes it.
func (opts *CommonOptions) OpenOutput() (io.Writer, func(), error) {
	if opts.OutFile == "" {
		return os.Stdout, func() {}, nil
	}

	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(opts.OutFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	slog.Info("writing output", "file", opts.OutFile, "format", opts.Format)
	return file, func() {
		_ = file.Close() // Best-effort cleanup
	}, nil
}

// parseKeyValues turns repeated "key=value" flags into a map.
// Later occurrences of a key win.
func parseKeyValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q (expected key=value)", pair)
		}
		out[key] = value
	}
	return out, nil
}
