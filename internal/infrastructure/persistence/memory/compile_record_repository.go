// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shaderplay/shaderplay/internal/domain/repositories"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// Ensure interface compliance
var _ repositories.CompileRecordRepository = (*CompileRecordRepository)(nil)

// CompileRecordRepository keeps compile records for the lifetime of the process.
type CompileRecordRepository struct {
	records map[uuid.UUID]*repositories.CompileRecord
	mu      sync.RWMutex
}

// NewCompileRecordRepository creates a new in-memory repository.
func NewCompileRecordRepository() *CompileRecordRepository {
	return &CompileRecordRepository{
		records: make(map[uuid.UUID]*repositories.CompileRecord),
	}
}

// Save persists a compile record. Callers must not modify it afterwards.
func (r *CompileRecordRepository) Save(_ context.Context, record *repositories.CompileRecord) error {
	if record == nil || record.InvocationID.IsZero() {
		return fmt.Errorf("compile record requires an invocation ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.InvocationID.UUID()] = record
	return nil
}

// FindByID retrieves a record by its invocation ID.
func (r *CompileRecordRepository) FindByID(_ context.Context, id values.InvocationID) (*repositories.CompileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id.UUID()]
	if !ok {
		return nil, fmt.Errorf("compile record not found: %s", id)
	}
	return record, nil
}

// FindByCompiler retrieves recent records for a compiler, newest first.
func (r *CompileRecordRepository) FindByCompiler(_ context.Context, compilerName string, limit int) ([]*repositories.CompileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*repositories.CompileRecord
	for _, rec := range r.records {
		if rec.Compiler == compilerName {
			matches = append(matches, rec)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
