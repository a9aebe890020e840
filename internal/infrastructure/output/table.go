package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats batch results as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the batch result as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(result *execution.BatchResult) error {
	rule := f.colorize(strings.Repeat("─", 80), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Manifest: %s (v%s)\n", f.colorize(result.ManifestName, colorBold), result.ManifestVersion)
	fmt.Fprintf(f.writer, "Executed: %s\n", result.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(result.Jobs) == 0 {
		fmt.Fprintln(f.writer, "No jobs executed.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Jobs:", colorBold))
	fmt.Fprintln(f.writer, rule)
	for _, job := range result.Jobs {
		f.formatJob(job)
	}
	fmt.Fprintln(f.writer, rule)
	fmt.Fprintln(f.writer)

	f.formatSummary(result.Summary)
	return nil
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatJob(job execution.JobResult) {
	symbol, color := f.getStatusInfo(job.Status)

	fmt.Fprintf(f.writer, "%s %s: %s\n", f.colorize(symbol, color), f.colorize(job.ID, color), job.Name)
	fmt.Fprintf(f.writer, "  Compiler: %s\n", f.colorize(job.Compiler, colorCyan))
	fmt.Fprintf(f.writer, "  Source:   %s", job.Source)
	if !job.Language.IsNone() {
		fmt.Fprintf(f.writer, " (%s)", job.Language)
	}
	fmt.Fprintln(f.writer)

	if len(job.Tags) > 0 {
		fmt.Fprintf(f.writer, "  Tags:     %s\n", strings.Join(job.Tags, ", "))
	}

	status := strings.ToUpper(string(job.Status))
	if job.ErrorCode != nil {
		status += fmt.Sprintf(" (error code %d)", *job.ErrorCode)
	}
	fmt.Fprintf(f.writer, "  Status:   %s\n", f.colorize(status, color))
	if job.Message != "" {
		fmt.Fprintf(f.writer, "  Message:  %s\n", job.Message)
	}
	if job.SkipReason != "" && job.SkipReason != job.Message {
		fmt.Fprintf(f.writer, "  Skip Reason: %s\n", job.SkipReason)
	}
	if job.Status == values.StatusPass || job.Status == values.StatusFail {
		fmt.Fprintf(f.writer, "  Binary:   %d bytes\n", job.BinarySize)
	}
	fmt.Fprintf(f.writer, "  Duration: %s\n", job.Duration.Round(time.Millisecond))

	if len(job.Diagnostics) > 0 {
		fmt.Fprintln(f.writer, "  Diagnostics:")
		for _, d := range job.Diagnostics {
			fmt.Fprintf(f.writer, "    - %s\n", f.colorize(formatDiagnostic(d), severityColor(d.Severity)))
		}
	}

	fmt.Fprintln(f.writer)
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(summary execution.ResultSummary) {
	fmt.Fprintln(f.writer, f.colorize("Summary:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	fmt.Fprintf(f.writer, "Jobs:         %d total\n", summary.TotalJobs)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.PassedJobs)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.FailedJobs)
	fmt.Fprintf(f.writer, "  %s Errors:   %d\n", f.colorize("⚠", colorYellow), summary.ErrorJobs)
	fmt.Fprintf(f.writer, "  %s Skipped:  %d\n", f.colorize("⊘", colorGray), summary.SkippedJobs)
	fmt.Fprintf(f.writer, "Diagnostics:  %d\n", summary.Diagnostics)

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
}

// getStatusInfo returns a symbol and color for the given status.
func (f *TableFormatter) getStatusInfo(status values.Status) (string, string) {
	switch status {
	case values.StatusPass:
		return "✓", colorGreen
	case values.StatusFail:
		return "✗", colorRed
	case values.StatusError:
		return "⚠", colorYellow
	case values.StatusSkipped:
		return "⊘", colorGray
	default:
		return "?", colorReset
	}
}

func severityColor(s compiler.Severity) string {
	switch s {
	case compiler.SeverityError:
		return colorRed
	case compiler.SeverityWarning:
		return colorYellow
	default:
		return colorGray
	}
}
