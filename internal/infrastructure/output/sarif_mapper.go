package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// Sources larger than this are referenced but not embedded.
const maxEmbeddedSourceSize = 512 * 1024

type sarifMapper struct {
	result       *execution.BatchResult
	manifestPath string
	cwd          string
	artifacts    map[string]*sarif.Artifact
	order        []string
}

func newSARIFMapper(result *execution.BatchResult, manifestPath string) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		result:       result,
		manifestPath: manifestPath,
		cwd:          cwd,
		artifacts:    make(map[string]*sarif.Artifact),
	}
}

// mapToRun populates the SARIF run with rules, results, artifacts, and invocations.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRules(run)
	m.addResults(run)
	m.addArtifacts(run)
	m.addInvocation(run)

	props := sarif.NewPropertyBag()
	props.Add("summary", m.result.Summary)
	run.WithProperties(props)
}

// addRules declares one rule per job.
func (m *sarifMapper) addRules(run *sarif.Run) {
	for _, job := range m.result.Jobs {
		name := job.Name
		if name == "" {
			name = job.ID
		}
		desc := fmt.Sprintf("Compile %s with %s", job.Source, job.Compiler)

		rule := sarif.NewReportingDescriptor().WithID(job.ID)
		rule.WithName(name)
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &name})
		rule.WithFullDescription(&sarif.MultiformatMessageString{Text: &desc})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})

		props := sarif.NewPropertyBag()
		if len(job.Tags) > 0 {
			props.WithTags(job.Tags)
		}
		props.Add("compiler", job.Compiler)
		rule.WithProperties(props)

		run.Tool.Driver.AddRule(rule)
	}
}

// addResults emits one result per parsed diagnostic, or a single status
// result for jobs without diagnostics.
func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, job := range m.result.Jobs {
		if len(job.Diagnostics) == 0 {
			run.AddResult(m.statusResult(job))
			continue
		}
		for _, d := range job.Diagnostics {
			run.AddResult(m.diagnosticResult(job, d))
		}
	}
}

func (m *sarifMapper) statusResult(job execution.JobResult) *sarif.Result {
	result := sarif.NewRuleResult(job.ID)
	result.Level = m.mapStatusToLevel(job.Status)
	result.Kind = m.mapStatusToKind(job.Status)

	msg := job.Message
	if msg == "" {
		msg = m.generateDefaultMessage(job)
	}
	result.Message = sarif.NewTextMessage(msg)

	if job.Source != "" && job.Status != values.StatusSkipped {
		result.Locations = []*sarif.Location{m.createLocation(job.Source, compiler.Diagnostic{})}
	}

	result.WithProperties(m.jobProperties(job))
	return result
}

func (m *sarifMapper) diagnosticResult(job execution.JobResult, d compiler.Diagnostic) *sarif.Result {
	result := sarif.NewRuleResult(job.ID)
	result.Level = m.mapSeverityToLevel(d.Severity)
	result.Kind = "fail"
	result.Message = sarif.NewTextMessage(d.Message)

	if job.Source != "" {
		result.Locations = []*sarif.Location{m.createLocation(job.Source, d)}
	}

	result.WithProperties(m.jobProperties(job))
	return result
}

func (m *sarifMapper) jobProperties(job execution.JobResult) *sarif.PropertyBag {
	props := sarif.NewPropertyBag()
	props.Add("status", string(job.Status))
	props.Add("compiler", job.Compiler)
	props.Add("duration_ms", job.Duration.Milliseconds())
	if job.ErrorCode != nil {
		props.Add("errorCode", *job.ErrorCode)
	}
	if len(job.Tags) > 0 {
		props.WithTags(job.Tags)
	}
	if job.SkipReason != "" {
		props.Add("skipReason", job.SkipReason)
	}
	return props
}

func (m *sarifMapper) mapStatusToLevel(status values.Status) string {
	switch status {
	case values.StatusPass:
		return "note"
	case values.StatusFail, values.StatusError:
		return "error"
	case values.StatusSkipped:
		return "none"
	default:
		return "warning"
	}
}

func (m *sarifMapper) mapStatusToKind(status values.Status) string {
	switch status {
	case values.StatusPass:
		return "pass"
	case values.StatusSkipped:
		return "notApplicable"
	default:
		return "fail"
	}
}

func (m *sarifMapper) mapSeverityToLevel(s compiler.Severity) string {
	switch s {
	case compiler.SeverityError:
		return "error"
	case compiler.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

func (m *sarifMapper) createLocation(path string, d compiler.Diagnostic) *sarif.Location {
	uri := m.normalizeURI(path)
	m.registerArtifact(path, uri)

	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(uri))

	if d.Line > 0 {
		region := sarif.NewRegion().WithStartLine(d.Line)
		if d.Column > 0 {
			region.WithStartColumn(d.Column)
		}
		pLoc.WithRegion(region)
	}

	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

// normalizeURI converts a file path to a SARIF-compliant URI, relative to
// the working directory when possible.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}

// registerArtifact adds a source file to the artifacts list (deduplicated),
// embedding its text so viewers can show context.
func (m *sarifMapper) registerArtifact(path, uri string) {
	if _, exists := m.artifacts[uri]; exists {
		return
	}

	artifact := sarif.NewArtifact().
		WithLocation(sarif.NewArtifactLocation().WithURI(uri))

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		artifact.WithLength(int(info.Size()))
		if info.Size() < maxEmbeddedSourceSize {
			//nolint:gosec // G304: path is a job source named by the manifest
			if content, err := os.ReadFile(path); err == nil {
				artifact.WithContents(sarif.NewArtifactContent().WithText(string(content)))
			}
		}
	}

	m.artifacts[uri] = artifact
	m.order = append(m.order, uri)
}

func (m *sarifMapper) addArtifacts(run *sarif.Run) {
	for _, uri := range m.order {
		run.AddArtifact(m.artifacts[uri])
	}
}

func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(m.result.Summary.ErrorJobs == 0)

	startTime := m.result.StartTime.UTC().Format("2006-01-02T15:04:05.000Z")
	endTime := m.result.EndTime.UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &startTime
	invocation.EndTimeUtc = &endTime

	if hostname, err := os.Hostname(); err == nil {
		invocation.Machine = &hostname
	}
	if m.cwd != "" {
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI("file://" + filepath.ToSlash(m.cwd))
	}

	props := sarif.NewPropertyBag()
	props.Add("manifestName", m.result.ManifestName)
	props.Add("manifestVersion", m.result.ManifestVersion)
	props.Add("batchId", m.result.BatchID.String())
	if m.manifestPath != "" {
		props.Add("manifestPath", m.manifestPath)
	}
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}

func (m *sarifMapper) generateDefaultMessage(job execution.JobResult) string {
	switch job.Status {
	case values.StatusPass:
		return fmt.Sprintf("Job %s compiled without validation errors", job.ID)
	case values.StatusFail:
		return fmt.Sprintf("Job %s failed validation", job.ID)
	case values.StatusError:
		return fmt.Sprintf("Job %s could not be compiled", job.ID)
	case values.StatusSkipped:
		return fmt.Sprintf("Job %s was skipped", job.ID)
	default:
		return fmt.Sprintf("Job %s completed with status %s", job.ID, job.Status)
	}
}
