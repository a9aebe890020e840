// Package entities contains domain entities for the shaderplay domain model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// Job IDs must be alphanumeric with dashes and underscores
var jobIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Manifest describes a batch of compile jobs.
// This is the aggregate root of a batch run.
//
// Invariants Enforced:
// - Manifest name and version are required
// - Job IDs are unique and well-formed
// - Every job names a compiler and a source file once defaults are applied
type Manifest struct {
	Metadata ManifestMetadata `yaml:"metadata"`
	Defaults *JobDefaults     `yaml:"defaults,omitempty"`
	// Vars are referenced from job sources and arguments as {{ .vars.key }}.
	Vars map[string]string `yaml:"vars,omitempty"`
	Jobs []Job             `yaml:"jobs"`

	// BaseDir is the directory relative job sources are resolved against.
	BaseDir string `yaml:"-"`
}

// ManifestMetadata contains metadata about the manifest.
type ManifestMetadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// JobDefaults are applied to every job. Individual jobs override them.
type JobDefaults struct {
	Arguments map[string]string `yaml:"arguments,omitempty"`
	Compiler  string            `yaml:"compiler,omitempty"`
	Tags      []string          `yaml:"tags,omitempty"`
}

// Job is one compile invocation in a manifest.
type Job struct {
	Arguments map[string]string `yaml:"arguments,omitempty"`
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name,omitempty"`
	Compiler  string            `yaml:"compiler,omitempty"`
	Source    string            `yaml:"source"`
	Language  string            `yaml:"language,omitempty"`
	Tags      []string          `yaml:"tags,omitempty"`
}

// Validate validates the manifest and all of its jobs.
func (m *Manifest) Validate() error {
	if m.Metadata.Name == "" {
		return fmt.Errorf("manifest name cannot be empty")
	}
	if m.Metadata.Version == "" {
		return fmt.Errorf("manifest version cannot be empty")
	}
	if len(m.Jobs) == 0 {
		return fmt.Errorf("manifest must declare at least one job")
	}

	ids := make(map[string]bool, len(m.Jobs))
	for i, job := range m.Jobs {
		if err := job.Validate(); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, job.ID, err)
		}
		if ids[job.ID] {
			return fmt.Errorf("duplicate job ID: %s", job.ID)
		}
		ids[job.ID] = true
	}

	return nil
}

// ApplyDefaults merges Defaults into every job.
// Job arguments win over default arguments; tags are unioned.
func (m *Manifest) ApplyDefaults() {
	if m.Defaults == nil {
		return
	}

	for i := range m.Jobs {
		job := &m.Jobs[i]

		if job.Compiler == "" {
			job.Compiler = m.Defaults.Compiler
		}

		if len(m.Defaults.Arguments) > 0 {
			merged := make(map[string]string, len(m.Defaults.Arguments)+len(job.Arguments))
			for k, v := range m.Defaults.Arguments {
				merged[k] = v
			}
			for k, v := range job.Arguments {
				merged[k] = v
			}
			job.Arguments = merged
		}

		job.Tags = unionTags(m.Defaults.Tags, job.Tags)
	}
}

// GetJob returns the job with the given ID, or nil.
func (m *Manifest) GetJob(id string) *Job {
	for i := range m.Jobs {
		if m.Jobs[i].ID == id {
			return &m.Jobs[i]
		}
	}
	return nil
}

// JobCount returns the number of jobs.
func (m *Manifest) JobCount() int {
	return len(m.Jobs)
}

// SourcePath resolves a job's source against the manifest directory.
func (m *Manifest) SourcePath(job Job) string {
	if filepath.IsAbs(job.Source) || m.BaseDir == "" {
		return job.Source
	}
	return filepath.Join(m.BaseDir, job.Source)
}

// Validate checks the job's own invariants.
func (j Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("job ID cannot be empty")
	}
	if !jobIDPattern.MatchString(j.ID) {
		return fmt.Errorf("job ID %q must contain only letters, digits, dashes and underscores", j.ID)
	}
	if j.Compiler == "" {
		return fmt.Errorf("job must name a compiler")
	}
	if j.Source == "" {
		return fmt.Errorf("job must name a source file")
	}
	return nil
}

// DisplayName returns Name, falling back to ID.
func (j Job) DisplayName() string {
	if j.Name != "" {
		return j.Name
	}
	return j.ID
}

// HasTag reports whether the job carries tag.
func (j Job) HasTag(tag string) bool {
	for _, t := range j.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func unionTags(defaults, own []string) []string {
	if len(defaults) == 0 {
		return own
	}
	seen := make(map[string]bool, len(defaults)+len(own))
	out := make([]string, 0, len(defaults)+len(own))
	for _, t := range append(append([]string(nil), own...), defaults...) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
