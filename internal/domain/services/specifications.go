package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shaderplay/shaderplay/internal/domain/entities"
)

// JobSpecification defines a condition that a job must meet.
type JobSpecification interface {
	// IsSatisfiedBy returns true if satisfied, or false with a reason.
	IsSatisfiedBy(job entities.Job) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []JobSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...JobSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	for _, spec := range s.specs {
		if ok, reason := spec.IsSatisfiedBy(job); !ok {
			return false, reason
		}
	}
	return true, ""
}

// ExclusiveJobsSpecification includes only the listed job IDs.
type ExclusiveJobsSpecification struct {
	ids map[string]bool
}

// NewExclusiveJobsSpecification creates a new ExclusiveJobsSpecification.
func NewExclusiveJobsSpecification(ids map[string]bool) *ExclusiveJobsSpecification {
	return &ExclusiveJobsSpecification{ids: ids}
}

// IsSatisfiedBy checks if the job ID is in the exclusive list.
func (s *ExclusiveJobsSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	if len(s.ids) == 0 || s.ids[job.ID] {
		return true, ""
	}
	return false, "excluded by --job filter"
}

// ExcludedJobsSpecification excludes the listed job IDs.
type ExcludedJobsSpecification struct {
	ids map[string]bool
}

// NewExcludedJobsSpecification creates a new ExcludedJobsSpecification.
func NewExcludedJobsSpecification(ids map[string]bool) *ExcludedJobsSpecification {
	return &ExcludedJobsSpecification{ids: ids}
}

// IsSatisfiedBy checks if the job ID is NOT in the excluded list.
func (s *ExcludedJobsSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	if s.ids[job.ID] {
		return false, "excluded by --exclude-job"
	}
	return true, ""
}

// ExcludedTagsSpecification excludes jobs with any of the listed tags.
type ExcludedTagsSpecification struct {
	tags map[string]bool
}

// NewExcludedTagsSpecification creates a new ExcludedTagsSpecification.
func NewExcludedTagsSpecification(tags map[string]bool) *ExcludedTagsSpecification {
	return &ExcludedTagsSpecification{tags: tags}
}

// IsSatisfiedBy checks if the job has NONE of the excluded tags.
func (s *ExcludedTagsSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	for _, tag := range job.Tags {
		if s.tags[tag] {
			return false, fmt.Sprintf("excluded by --exclude-tags %s", tag)
		}
	}
	return true, ""
}

// IncludedTagsSpecification includes only jobs with any of the listed tags.
type IncludedTagsSpecification struct {
	tags map[string]bool
}

// NewIncludedTagsSpecification creates a new IncludedTagsSpecification.
func NewIncludedTagsSpecification(tags map[string]bool) *IncludedTagsSpecification {
	return &IncludedTagsSpecification{tags: tags}
}

// IsSatisfiedBy checks if the job has ANY of the included tags.
func (s *IncludedTagsSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	if len(s.tags) == 0 {
		return true, ""
	}
	for _, tag := range job.Tags {
		if s.tags[tag] {
			return true, ""
		}
	}
	return false, "excluded by --tags filter"
}

// ExpressionSpecification filters jobs using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the job.
func (s *ExpressionSpecification) IsSatisfiedBy(job entities.Job) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	env := JobEnv{
		ID:       job.ID,
		Name:     job.DisplayName(),
		Compiler: job.Compiler,
		Language: job.Language,
		Tags:     job.Tags,
	}

	output, err := expr.Run(s.program, env)
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	matched, ok := output.(bool)
	if !ok {
		return false, "filter expression did not return boolean"
	}
	if !matched {
		return false, "excluded by --filter expression"
	}
	return true, ""
}
