// Package output provides formatters for compile and batch results.
package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
)

// SARIFFormatter formats batch results as SARIF 2.1.0 JSON.
// It maps jobs to SARIF rules and parsed compiler diagnostics to results
// located in the job's source file.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout, "shaders.yaml")
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer       io.Writer
	manifestPath string
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer, manifestPath string) *SARIFFormatter {
	return &SARIFFormatter{
		writer:       writer,
		manifestPath: manifestPath,
	}
}

// Format writes the batch result as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(result *execution.BatchResult) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("shaderplay", "https://github.com/shaderplay/shaderplay")
	if result.ToolVersion != "" {
		run.Tool.Driver.Version = &result.ToolVersion
	}

	newSARIFMapper(result, f.manifestPath).mapToRun(run)
	report.AddRun(run)

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}
