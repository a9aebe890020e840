package compiler

import "strings"

// StripPathPrefix removes a leading echo of path from text and trims what remains.
// Text that does not start with path is returned unchanged.
func StripPathPrefix(text, path string) string {
	if path != "" && strings.HasPrefix(text, path) {
		return strings.TrimSpace(text[len(path):])
	}
	return text
}

// SelectDiagnostic picks the diagnostic text of one tool launch.
// stderr wins when it has content after stripping, then stdout; otherwise "".
func SelectDiagnostic(stdout, stderr, path string) string {
	stdout = StripPathPrefix(stdout, path)
	stderr = StripPathPrefix(stderr, path)

	if strings.TrimSpace(stderr) != "" {
		return stderr
	}
	if strings.TrimSpace(stdout) != "" {
		return stdout
	}
	return ""
}

// Severity of a parsed diagnostic line.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Diagnostic is one message extracted from diagnostic text.
// Line and Column are 1-based; zero means unknown.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int      `json:"column,omitempty" yaml:"column,omitempty"`
}
