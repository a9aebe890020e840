package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
)

var (
	// ERROR: 0:12: 'foo' : undeclared identifier
	glslangLinePattern = regexp.MustCompile(`^(ERROR|WARNING|NOTE): [^:]*:(\d+): (.*)$`)
	// ERROR: Linking fragment stage: Missing entry point
	glslangBarePattern = regexp.MustCompile(`^(ERROR|WARNING|NOTE): (.*)$`)
	// ERROR: 1 compilation errors.  No code generated.
	glslangSummaryPattern = regexp.MustCompile(`^\d+ compilation (errors|warnings)`)
	// shader.hlsl:3:10: error: unknown type name 'flaot'
	clangPattern = regexp.MustCompile(`^.*?:(\d+):(?:(\d+):)? (error|warning|note): (.*)$`)
)

// ParseDiagnostics extracts structured diagnostics from compiler output text.
// Lines that look like neither glslang nor clang-style diagnostics are ignored.
func ParseDiagnostics(text string) []compiler.Diagnostic {
	if text == "" || text == compiler.NoValidationErrors {
		return nil
	}

	var diags []compiler.Diagnostic
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if d, ok := parseLine(line); ok {
			diags = append(diags, d)
		}
	}
	return diags
}

func parseLine(line string) (compiler.Diagnostic, bool) {
	if m := glslangLinePattern.FindStringSubmatch(line); m != nil {
		return compiler.Diagnostic{
			Severity: severityFrom(m[1]),
			Line:     atoi(m[2]),
			Message:  m[3],
		}, true
	}
	if m := glslangBarePattern.FindStringSubmatch(line); m != nil {
		if glslangSummaryPattern.MatchString(m[2]) {
			return compiler.Diagnostic{}, false
		}
		return compiler.Diagnostic{Severity: severityFrom(m[1]), Message: m[2]}, true
	}
	if m := clangPattern.FindStringSubmatch(line); m != nil {
		return compiler.Diagnostic{
			Severity: severityFrom(m[3]),
			Line:     atoi(m[1]),
			Column:   atoi(m[2]),
			Message:  m[4],
		}, true
	}
	return compiler.Diagnostic{}, false
}

func severityFrom(s string) compiler.Severity {
	switch strings.ToLower(s) {
	case "warning":
		return compiler.SeverityWarning
	case "note":
		return compiler.SeverityNote
	default:
		return compiler.SeverityError
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
