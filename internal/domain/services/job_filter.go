// Package services contains domain services for selecting jobs, resolving
// compiler arguments and parsing compiler diagnostics.
package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shaderplay/shaderplay/internal/domain/entities"
)

// JobEnv defines the variables available during filter expression evaluation.
type JobEnv struct {
	ID       string   `expr:"id"`
	Name     string   `expr:"name"`
	Compiler string   `expr:"compiler"`
	Language string   `expr:"language"`
	Tags     []string `expr:"tags"`
}

// CompileFilterExpression compiles a boolean job filter such as
// `compiler == "glslang" && "smoke" in tags`.
func CompileFilterExpression(filter string) (*vm.Program, error) {
	program, err := expr.Compile(filter, expr.Env(JobEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}

// JobFilter implements batch job selection based on IDs, tags and expressions.
type JobFilter struct {
	// Exclusive mode: only include specified jobs
	exclusiveJobIDs map[string]bool

	excludeJobIDs map[string]bool
	excludeTags   map[string]bool
	includeTags   map[string]bool

	filterProgram *vm.Program
}

// NewJobFilter initializes a new empty filter.
func NewJobFilter() *JobFilter {
	return &JobFilter{
		exclusiveJobIDs: make(map[string]bool),
		excludeJobIDs:   make(map[string]bool),
		excludeTags:     make(map[string]bool),
		includeTags:     make(map[string]bool),
	}
}

// WithExclusiveJobs restricts execution to ONLY the specified job IDs.
// If set, all other filters are ignored.
func (f *JobFilter) WithExclusiveJobs(ids []string) *JobFilter {
	f.exclusiveJobIDs = toSet(ids)
	return f
}

// WithExcludedJobs excludes specific job IDs.
func (f *JobFilter) WithExcludedJobs(ids []string) *JobFilter {
	f.excludeJobIDs = toSet(ids)
	return f
}

// WithExcludedTags excludes jobs with any of these tags.
func (f *JobFilter) WithExcludedTags(tags []string) *JobFilter {
	f.excludeTags = toSet(tags)
	return f
}

// WithIncludedTags includes only jobs with any of these tags.
func (f *JobFilter) WithIncludedTags(tags []string) *JobFilter {
	f.includeTags = toSet(tags)
	return f
}

// WithFilterExpression applies a compiled expr program.
func (f *JobFilter) WithFilterExpression(program *vm.Program) *JobFilter {
	f.filterProgram = program
	return f
}

// ShouldRun reports whether job matches the filter, with a reason when it does not.
func (f *JobFilter) ShouldRun(job entities.Job) (bool, string) {
	if len(f.exclusiveJobIDs) > 0 {
		return NewExclusiveJobsSpecification(f.exclusiveJobIDs).IsSatisfiedBy(job)
	}

	var specs []JobSpecification
	if len(f.excludeJobIDs) > 0 {
		specs = append(specs, NewExcludedJobsSpecification(f.excludeJobIDs))
	}
	if len(f.excludeTags) > 0 {
		specs = append(specs, NewExcludedTagsSpecification(f.excludeTags))
	}
	if len(f.includeTags) > 0 {
		specs = append(specs, NewIncludedTagsSpecification(f.includeTags))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}

	return NewAndSpecification(specs...).IsSatisfiedBy(job)
}

func toSet(slice []string) map[string]bool {
	s := make(map[string]bool, len(slice))
	for _, item := range slice {
		s[item] = true
	}
	return s
}
