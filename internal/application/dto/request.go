// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// CompileRequest encapsulates the inputs of one compile invocation.
type CompileRequest struct {
	// Arguments are raw parameter values keyed by parameter name.
	// Missing values fall back to parameter defaults.
	Arguments map[string]string
	Compiler  string
	Language  values.Language
	Source    []byte

	// NoCache forces a fresh invocation even when an identical result is cached.
	NoCache bool
}

// BatchRequest encapsulates all inputs needed to compile a manifest.
type BatchRequest struct {
	ManifestPath string
	Filters      FilterOptions
	Execution    ExecutionOptions
}

// FilterOptions defines filters for job selection.
type FilterOptions struct {
	FilterExpression string
	IncludeJobIDs    []string
	IncludeTags      []string
	ExcludeTags      []string
	ExcludeJobIDs    []string
}

// ExecutionOptions controls how the batch is executed.
type ExecutionOptions struct {
	// Parallel enables concurrent compilation of independent jobs
	Parallel bool

	// MaxConcurrency limits concurrent jobs (0 = number of CPUs)
	MaxConcurrency int
}
