package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shaderplay/shaderplay/internal/application/dto"
	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
	"github.com/shaderplay/shaderplay/internal/application/ports"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/entities"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/domain/services"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"golang.org/x/sync/errgroup"
)

// BatchUseCase compiles every job of a manifest.
type BatchUseCase struct {
	loader        ports.ManifestLoader
	compile       *CompileUseCase
	logger        *slog.Logger
	toolVersion   string
	maxOutputSize int
}

// BatchOption configures a BatchUseCase.
type BatchOption func(*BatchUseCase)

// WithToolVersion stamps results with the running tool version.
func WithToolVersion(v string) BatchOption {
	return func(uc *BatchUseCase) {
		uc.toolVersion = v
	}
}

// WithOutputLimit caps each job output at limit bytes. Zero disables truncation.
func WithOutputLimit(limit int) BatchOption {
	return func(uc *BatchUseCase) {
		uc.maxOutputSize = limit
	}
}

// NewBatchUseCase creates a new batch use case.
func NewBatchUseCase(loader ports.ManifestLoader, compile *CompileUseCase, logger *slog.Logger, opts ...BatchOption) *BatchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	uc := &BatchUseCase{
		loader:        loader,
		compile:       compile,
		logger:        logger,
		maxOutputSize: execution.DefaultMaxOutputSize,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads the manifest at req.ManifestPath and compiles its jobs.
// Job faults are recorded on the job and never abort the batch.
func (uc *BatchUseCase) Execute(ctx context.Context, req dto.BatchRequest) (*dto.BatchResponse, error) {
	startTime := time.Now()

	uc.logger.Info("loading manifest", "path", req.ManifestPath)
	manifest, err := uc.loader.LoadManifest(req.ManifestPath)
	if err != nil {
		return nil, apperrors.NewValidationError("manifest", "failed to load manifest", err.Error())
	}

	if err := validateFilters(manifest, req.Filters); err != nil {
		return nil, err
	}
	filter, err := buildFilter(req.Filters)
	if err != nil {
		return nil, err
	}

	result := execution.NewBatchResult(manifest.Metadata.Name, manifest.Metadata.Version)
	result.ToolVersion = uc.toolVersion

	var (
		warnings []string
		mu       sync.Mutex
	)

	g := new(errgroup.Group)
	g.SetLimit(concurrencyLimit(req.Execution))

	uc.logger.Info("compiling manifest", "name", manifest.Metadata.Name, "jobs", manifest.JobCount())
	for i, job := range manifest.Jobs {
		g.Go(func() error {
			jr, jobWarnings := uc.runJob(ctx, manifest, job, i, filter)
			result.AddJobResult(jr)
			if len(jobWarnings) > 0 {
				mu.Lock()
				for _, w := range jobWarnings {
					warnings = append(warnings, job.ID+": "+w)
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	result.Finalize()

	uc.logger.Info("batch complete",
		"duration", result.Duration,
		"total_jobs", result.Summary.TotalJobs,
		"passed", result.Summary.PassedJobs,
		"failed", result.Summary.FailedJobs,
		"errors", result.Summary.ErrorJobs,
		"skipped", result.Summary.SkippedJobs)

	return &dto.BatchResponse{
		Result:   result,
		Warnings: warnings,
		Duration: time.Since(startTime),
	}, nil
}

func (uc *BatchUseCase) runJob(
	ctx context.Context,
	manifest *entities.Manifest,
	job entities.Job,
	index int,
	filter *services.JobFilter,
) (execution.JobResult, []string) {
	startTime := time.Now()

	jr := execution.JobResult{
		ID:       job.ID,
		Name:     job.Name,
		Compiler: job.Compiler,
		Source:   manifest.SourcePath(job),
		Tags:     job.Tags,
		Index:    index,
	}

	if ok, reason := filter.ShouldRun(job); !ok {
		jr.Status = values.StatusSkipped
		jr.SkipReason = reason
		jr.Message = reason
		return jr, nil
	}

	fail := func(err error) (execution.JobResult, []string) {
		jr.Status = values.StatusError
		jr.Message = err.Error()
		jr.Duration = time.Since(startTime)
		uc.logger.Warn("job failed to compile", "job", job.ID, "compiler", job.Compiler, "error", err)
		return jr, nil
	}

	lang, err := jobLanguage(job, jr.Source)
	if err != nil {
		return fail(err)
	}
	jr.Language = lang

	//nolint:gosec // G304: source path is named by the manifest
	source, err := os.ReadFile(jr.Source)
	if err != nil {
		return fail(fmt.Errorf("failed to read source: %w", err))
	}

	resp, err := uc.compile.Execute(ctx, dto.CompileRequest{
		Compiler:  job.Compiler,
		Language:  lang,
		Source:    source,
		Arguments: job.Arguments,
	})
	if err != nil {
		return fail(err)
	}

	r := resp.Result
	jr.Status = r.Status()
	jr.ErrorCode = r.ErrorCode
	jr.InvocationID = resp.InvocationID
	jr.BinarySize = r.Binary.Len()
	jr.Diagnostics = services.ParseDiagnostics(r.ValidationText())
	jr.Outputs = make([]compiler.Output, 0, len(r.Outputs))
	for _, o := range r.Outputs {
		text, meta := execution.TruncateText(o.Label, o.Text, uc.maxOutputSize)
		if meta != nil {
			jr.OutputMeta = append(jr.OutputMeta, *meta)
		}
		o.Text = text
		jr.Outputs = append(jr.Outputs, o)
	}
	jr.Duration = time.Since(startTime)

	return jr, resp.Warnings
}

func jobLanguage(job entities.Job, path string) (values.Language, error) {
	if job.Language != "" {
		return values.ParseLanguage(job.Language)
	}
	return values.LanguageFromPath(path)
}

func validateFilters(manifest *entities.Manifest, filters dto.FilterOptions) error {
	for _, id := range filters.IncludeJobIDs {
		if manifest.GetJob(id) == nil {
			return apperrors.NewValidationError("job", fmt.Sprintf("job %q not found in manifest", id))
		}
	}
	return nil
}

func buildFilter(filters dto.FilterOptions) (*services.JobFilter, error) {
	filter := services.NewJobFilter().
		WithExclusiveJobs(filters.IncludeJobIDs).
		WithExcludedJobs(filters.ExcludeJobIDs).
		WithIncludedTags(filters.IncludeTags).
		WithExcludedTags(filters.ExcludeTags)

	if filters.FilterExpression != "" {
		program, err := services.CompileFilterExpression(filters.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", "invalid filter expression", err.Error())
		}
		filter.WithFilterExpression(program)
	}
	return filter, nil
}

func concurrencyLimit(opts dto.ExecutionOptions) int {
	if !opts.Parallel {
		return 1
	}
	if opts.MaxConcurrency > 0 {
		return opts.MaxConcurrency
	}
	return runtime.NumCPU()
}
