// Package services contains application use cases.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shaderplay/shaderplay/internal/application/dto"
	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
	"github.com/shaderplay/shaderplay/internal/application/ports"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/repositories"
	"github.com/shaderplay/shaderplay/internal/domain/services"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// CompileUseCase runs one shader through one compiler backend.
// This is a pure application layer component that depends only on ports.
type CompileUseCase struct {
	registry  ports.CompilerRegistry
	cache     ports.ResultCache
	records   repositories.CompileRecordRepository
	resolver  *services.ArgumentResolver
	validator *ArgumentValidator
	logger    *slog.Logger
}

// NewCompileUseCase creates a new compile use case. cache and records may be nil.
func NewCompileUseCase(
	registry ports.CompilerRegistry,
	cache ports.ResultCache,
	records repositories.CompileRecordRepository,
	logger *slog.Logger,
) *CompileUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &CompileUseCase{
		registry:  registry,
		cache:     cache,
		records:   records,
		resolver:  services.NewArgumentResolver(),
		validator: NewArgumentValidator(),
		logger:    logger,
	}
}

// Execute compiles req.Source.
//
// A shader that fails validation is a successful call whose Result carries
// an error code. An error is returned for bad requests and for launch or
// crash faults of the external tool.
func (uc *CompileUseCase) Execute(ctx context.Context, req dto.CompileRequest) (*dto.CompileResponse, error) {
	startTime := time.Now()

	c, err := uc.registry.Get(req.Compiler)
	if err != nil {
		return nil, err
	}

	if req.Language == "" {
		return nil, apperrors.NewValidationError("language", "source language is required")
	}
	if !compiler.Accepts(c, req.Language) {
		return nil, apperrors.NewValidationError("language",
			fmt.Sprintf("%s does not accept %s input", c.Name(), req.Language),
			"accepted: "+joinLanguages(c.InputLanguages()))
	}

	args, warnings := uc.resolver.Resolve(c.Parameters(), req.Language, req.Arguments)
	for _, w := range warnings {
		uc.logger.Warn(w, "compiler", c.Name())
	}
	if err := uc.validator.Validate(c.Name(), c.Parameters(), args); err != nil {
		return nil, err
	}

	id := values.NewInvocationID()
	resp := &dto.CompileResponse{
		InvocationID: id,
		Compiler:     c.Name(),
		Arguments:    args.Map(),
		Warnings:     warnings,
	}

	key := CacheKey(c.Name(), req.Language, req.Source, args)
	if uc.cache != nil && !req.NoCache {
		if cached, ok := uc.cache.Get(key); ok {
			uc.logger.Debug("compile cache hit", "compiler", c.Name(), "invocation_id", id.String())
			resp.Result = cached
			resp.Cached = true
			resp.Duration = time.Since(startTime)
			uc.saveRecord(ctx, req.Language, resp)
			return resp, nil
		}
	}

	uc.logger.Debug("compiling", "compiler", c.Name(), "language", req.Language, "invocation_id", id.String())
	result, err := c.Compile(ctx, compiler.NewShaderCode(req.Language, req.Source), args)
	if err != nil {
		return nil, apperrors.NewExecutionError(c.Name(), "tool did not complete", err)
	}
	resp.Result = result
	resp.Duration = time.Since(startTime)

	uc.logger.Info("compile complete",
		"compiler", c.Name(),
		"invocation_id", id.String(),
		"success", result.Success,
		"duration", resp.Duration)

	if uc.cache != nil {
		uc.cache.Add(key, result)
	}
	uc.saveRecord(ctx, req.Language, resp)

	return resp, nil
}

func (uc *CompileUseCase) saveRecord(ctx context.Context, lang values.Language, resp *dto.CompileResponse) {
	if uc.records == nil {
		return
	}
	record := &repositories.CompileRecord{
		CreatedAt:    time.Now(),
		Result:       resp.Result,
		Arguments:    resp.Arguments,
		Compiler:     resp.Compiler,
		Language:     lang,
		InvocationID: resp.InvocationID,
		Duration:     resp.Duration,
		Cached:       resp.Cached,
	}
	if err := uc.records.Save(ctx, record); err != nil {
		uc.logger.Warn("failed to save compile record", "invocation_id", resp.InvocationID.String(), "error", err)
	}
}

// CacheKey identifies a compile by everything that can change its outcome.
// Arguments are hashed in name order.
func CacheKey(compilerName string, lang values.Language, source []byte, args compiler.Arguments) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00", compilerName, lang, len(source))
	h.Write(source)
	for _, name := range args.Names() {
		fmt.Fprintf(h, "\x00%s=%s", name, args.String(name))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func joinLanguages(langs []values.Language) string {
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}
