// Package execution provides domain models for batch compile results.
package execution

import (
	"sort"
	"sync"
	"time"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// BatchResult represents the complete result of compiling a manifest.
type BatchResult struct {
	BatchID         values.InvocationID `json:"batch_id" yaml:"batch_id"`
	StartTime       time.Time           `json:"start_time" yaml:"start_time"`
	EndTime         time.Time           `json:"end_time" yaml:"end_time"`
	ToolVersion     string              `json:"tool_version,omitempty" yaml:"tool_version,omitempty"`
	ManifestName    string              `json:"manifest_name" yaml:"manifest_name"`
	ManifestVersion string              `json:"manifest_version" yaml:"manifest_version"`
	Jobs            []JobResult         `json:"jobs" yaml:"jobs"`
	Summary         ResultSummary       `json:"summary" yaml:"summary"`
	Duration        time.Duration       `json:"duration_ms" yaml:"duration_ms"`
	mu              sync.Mutex
}

// JobResult represents the outcome of one compile job.
type JobResult struct {
	ID           string                `json:"id" yaml:"id"`
	Name         string                `json:"name" yaml:"name"`
	Compiler     string                `json:"compiler" yaml:"compiler"`
	Language     values.Language       `json:"language" yaml:"language"`
	Source       string                `json:"source" yaml:"source"`
	Status       values.Status         `json:"status" yaml:"status"`
	Message      string                `json:"message,omitempty" yaml:"message,omitempty"`
	SkipReason   string                `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Tags         []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	ErrorCode    *int                  `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Outputs      []compiler.Output     `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	OutputMeta   []OutputMeta          `json:"output_meta,omitempty" yaml:"output_meta,omitempty"`
	Diagnostics  []compiler.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	BinarySize   int                   `json:"binary_size_bytes" yaml:"binary_size_bytes"`
	Index        int                   `json:"index" yaml:"index"`
	Duration     time.Duration         `json:"duration_ms" yaml:"duration_ms"`
	InvocationID values.InvocationID   `json:"invocation_id" yaml:"invocation_id"`
}

// ResultSummary provides aggregate statistics about the batch.
type ResultSummary struct {
	TotalJobs   int `json:"total_jobs" yaml:"total_jobs"`
	PassedJobs  int `json:"passed_jobs" yaml:"passed_jobs"`
	FailedJobs  int `json:"failed_jobs" yaml:"failed_jobs"`
	ErrorJobs   int `json:"error_jobs" yaml:"error_jobs"`
	SkippedJobs int `json:"skipped_jobs" yaml:"skipped_jobs"`
	Diagnostics int `json:"diagnostics" yaml:"diagnostics"`
}

// NewBatchResult creates a new batch result.
func NewBatchResult(manifestName, manifestVersion string) *BatchResult {
	return &BatchResult{
		BatchID:         values.NewInvocationID(),
		ManifestName:    manifestName,
		ManifestVersion: manifestVersion,
		StartTime:       time.Now(),
		Jobs:            make([]JobResult, 0),
	}
}

// AddJobResult adds a job result.
// Thread-safe for concurrent calls during parallel execution.
func (r *BatchResult) AddJobResult(jr JobResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Jobs = append(r.Jobs, jr)
}

// GetJobResult returns a copy of the job result with the given ID.
// Thread-safe.
func (r *BatchResult) GetJobResult(id string) (JobResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, j := range r.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return JobResult{}, false
}

// Finalize completes the batch result and calculates the summary.
// Jobs are sorted by manifest order for deterministic output.
func (r *BatchResult) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	sort.Slice(r.Jobs, func(i, j int) bool {
		return r.Jobs[i].Index < r.Jobs[j].Index
	})

	r.calculateSummary()
}

// OverallStatus is the worst status of all jobs.
func (r *BatchResult) OverallStatus() values.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make([]values.Status, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		statuses = append(statuses, j.Status)
	}
	return values.WorstStatus(statuses...)
}

func (r *BatchResult) calculateSummary() {
	r.Summary = ResultSummary{
		TotalJobs: len(r.Jobs),
	}

	for _, j := range r.Jobs {
		switch j.Status {
		case values.StatusPass:
			r.Summary.PassedJobs++
		case values.StatusFail:
			r.Summary.FailedJobs++
		case values.StatusError:
			r.Summary.ErrorJobs++
		case values.StatusSkipped:
			r.Summary.SkippedJobs++
		}
		r.Summary.Diagnostics += len(j.Diagnostics)
	}
}
