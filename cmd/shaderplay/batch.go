package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shaderplay/shaderplay/internal/application/dto"
	"github.com/shaderplay/shaderplay/internal/application/ports"
	"github.com/shaderplay/shaderplay/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

// batchOptions holds the flags of the batch command.
type batchOptions struct {
	CommonOptions
	Filters dto.FilterOptions

	MaxConcurrency int
	Parallel       bool
	History        bool
}

func newBatchCmd() *cobra.Command {
	opts := &batchOptions{
		CommonOptions: newCommonOptions(output.BatchFormats()...),
		Parallel:      true,
	}

	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Compile every job of a manifest",
		Long: `Load a manifest of compile jobs and run them, concurrently by default.
A job whose shader fails validation is reported as failed; a job whose
compiler cannot run is reported as an error. Neither stops other jobs.

Filtering:
  --job blur,tonemap             Run only these jobs (exclusive)
  --tags post                    Run jobs with any of these tags
  --exclude-tags slow            Skip jobs with any of these tags
  --exclude-job msl              Skip these jobs
  --filter 'compiler == "glslang"'
                                 Expression over id, name, compiler, language, tags`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.ErrOrStderr(), opts, args[0])
		},
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", opts.Parallel, "Compile independent jobs concurrently")
	cmd.Flags().IntVar(&opts.MaxConcurrency, "max-concurrency", 0, "Maximum concurrent jobs (default: from config, then CPU count)")
	cmd.Flags().BoolVar(&opts.History, "history", false, "Print the compile invocation records of this run to stderr")

	// Filtering flags
	cmd.Flags().StringSliceVar(&opts.Filters.IncludeJobIDs, "job", nil, "Run specific jobs by ID (exclusive, comma-separated)")
	cmd.Flags().StringSliceVar(&opts.Filters.IncludeTags, "tags", nil, "Run jobs with these tags (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.Filters.ExcludeTags, "exclude-tags", nil, "Exclude jobs with these tags (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.Filters.ExcludeJobIDs, "exclude-job", nil, "Exclude specific jobs by ID (comma-separated)")
	cmd.Flags().StringVar(&opts.Filters.FilterExpression, "filter", "", "Advanced filter expression (e.g. 'language == \"hlsl\"')")

	return cmd
}

func init() {
	rootCmd.AddCommand(newBatchCmd())
}

func runBatch(ctx context.Context, stderr io.Writer, opts *batchOptions, manifestPath string) error {
	if err := opts.ValidateFlags(); err != nil {
		return err
	}
	if opts.MaxConcurrency < 0 {
		return fmt.Errorf("--max-concurrency cannot be negative")
	}
	ctx, cancel := opts.ApplyToContext(ctx)
	defer cancel()

	ctr, err := newContainer()
	if err != nil {
		return err
	}

	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency == 0 {
		maxConcurrency = ctr.RuntimeConfig().MaxConcurrentJobs
	}

	resp, err := ctr.BatchUseCase().Execute(ctx, dto.BatchRequest{
		ManifestPath: manifestPath,
		Filters:      opts.Filters,
		Execution: dto.ExecutionOptions{
			Parallel:       opts.Parallel,
			MaxConcurrency: maxConcurrency,
		},
	})
	if err != nil {
		return err
	}
	for _, w := range resp.Warnings {
		slog.Warn(w)
	}

	w, closeOut, err := opts.OpenOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	formatter, err := ctr.Formatters().Create(opts.Format, w, ports.FormatterOptions{
		ManifestPath: manifestPath,
		Indent:       true,
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(resp.Result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.History {
		history, err := ctr.HistoryUseCase().ForBatch(ctx, resp.Result)
		if err != nil {
			return fmt.Errorf("failed to read compile history: %w", err)
		}
		output.WriteHistory(stderr, history)
	}

	// Return non-zero exit code if there were failures or errors
	summary := resp.Result.Summary
	if summary.FailedJobs > 0 || summary.ErrorJobs > 0 {
		return fmt.Errorf("batch failed: %d passed, %d failed, %d errors",
			summary.PassedJobs, summary.FailedJobs, summary.ErrorJobs)
	}
	return nil
}
