package dto

import (
	"time"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/domain/repositories"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// CompileResponse contains the result of one compile invocation.
type CompileResponse struct {
	Result       *compiler.Result
	Arguments    map[string]string
	Warnings     []string
	InvocationID values.InvocationID
	Compiler     string
	Duration     time.Duration
	Cached       bool
}

// BatchResponse contains the result of compiling a manifest.
type BatchResponse struct {
	Result   *execution.BatchResult
	Warnings []string
	Duration time.Duration
}

// HistoryResponse lists the compile records behind a batch.
type HistoryResponse struct {
	Entries   []HistoryEntry
	Compilers []CompilerActivity
}

// HistoryEntry pairs a batch job with its stored compile record.
type HistoryEntry struct {
	Record *repositories.CompileRecord
	JobID  string
}

// CompilerActivity aggregates the recorded invocations of one compiler.
type CompilerActivity struct {
	LastAt      time.Time
	Compiler    string
	Invocations int
	Cached      int
}
