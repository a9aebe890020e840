package services

import (
	"testing"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/stretchr/testify/assert"
)

func TestParseDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []compiler.Diagnostic
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "sentinel",
			input:    compiler.NoValidationErrors,
			expected: nil,
		},
		{
			name: "glslang error with summary",
			input: "ERROR: 0:12: 'foo' : undeclared identifier\n" +
				"ERROR: 1 compilation errors.  No code generated.\n",
			expected: []compiler.Diagnostic{
				{Severity: compiler.SeverityError, Line: 12, Message: "'foo' : undeclared identifier"},
			},
		},
		{
			name:  "glslang warning",
			input: "WARNING: 0:3: '#version' : statement missing: use #version on first line",
			expected: []compiler.Diagnostic{
				{Severity: compiler.SeverityWarning, Line: 3, Message: "'#version' : statement missing: use #version on first line"},
			},
		},
		{
			name:  "glslang linker error without location",
			input: "ERROR: Linking fragment stage: Missing entry point: Each stage requires one entry point",
			expected: []compiler.Diagnostic{
				{Severity: compiler.SeverityError, Message: "Linking fragment stage: Missing entry point: Each stage requires one entry point"},
			},
		},
		{
			name:  "clang style",
			input: "shader.hlsl:3:10: error: unknown type name 'flaot'\nsome context line",
			expected: []compiler.Diagnostic{
				{Severity: compiler.SeverityError, Line: 3, Column: 10, Message: "unknown type name 'flaot'"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ParseDiagnostics(tt.input))
		})
	}
}
