package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shaderplay/shaderplay/internal/application/dto"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/domain/repositories"
)

// HistoryUseCase reads back the compile records written by CompileUseCase.
type HistoryUseCase struct {
	records repositories.CompileRecordRepository
}

// NewHistoryUseCase creates a new history use case.
func NewHistoryUseCase(records repositories.CompileRecordRepository) *HistoryUseCase {
	return &HistoryUseCase{records: records}
}

// ForBatch returns the record of every compiled job in job order, plus
// per-compiler activity. Jobs that never reached a compiler are omitted.
func (uc *HistoryUseCase) ForBatch(ctx context.Context, result *execution.BatchResult) (*dto.HistoryResponse, error) {
	resp := &dto.HistoryResponse{}
	seen := make(map[string]bool)

	for _, job := range result.Jobs {
		if job.InvocationID.IsZero() {
			continue
		}
		rec, err := uc.records.FindByID(ctx, job.InvocationID)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", job.ID, err)
		}
		resp.Entries = append(resp.Entries, dto.HistoryEntry{JobID: job.ID, Record: rec})
		seen[rec.Compiler] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		recs, err := uc.records.FindByCompiler(ctx, name, 0)
		if err != nil {
			return nil, fmt.Errorf("compiler %s: %w", name, err)
		}
		activity := dto.CompilerActivity{Compiler: name, Invocations: len(recs)}
		for _, rec := range recs {
			if rec.Cached {
				activity.Cached++
			}
			if rec.CreatedAt.After(activity.LastAt) {
				activity.LastAt = rec.CreatedAt
			}
		}
		resp.Compilers = append(resp.Compilers, activity)
	}
	return resp, nil
}
