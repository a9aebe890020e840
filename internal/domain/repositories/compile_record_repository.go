// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"
	"time"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// CompileRecord is a stored compile invocation.
type CompileRecord struct {
	CreatedAt    time.Time
	Result       *compiler.Result
	Arguments    map[string]string
	Compiler     string
	Language     values.Language
	InvocationID values.InvocationID
	Duration     time.Duration
	Cached       bool
}

// CompileRecordRepository persists compile invocations.
type CompileRecordRepository interface {
	// Save persists a compile record.
	Save(ctx context.Context, record *CompileRecord) error

	// FindByID retrieves a record by its invocation ID.
	FindByID(ctx context.Context, id values.InvocationID) (*CompileRecord, error)

	// FindByCompiler retrieves recent records for a compiler, newest first.
	FindByCompiler(ctx context.Context, compiler string, limit int) ([]*CompileRecord, error)
}
