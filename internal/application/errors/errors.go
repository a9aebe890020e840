// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
	"strings"
)

// ValidationError indicates request, argument or manifest validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// ProcessErrorKind distinguishes the two fatal process outcomes.
type ProcessErrorKind string

const (
	// ProcessLaunchFailed means the executable could not be started
	ProcessLaunchFailed ProcessErrorKind = "launch"
	// ProcessCrashed means the process terminated abnormally (signal, timeout)
	ProcessCrashed ProcessErrorKind = "crash"
)

// ProcessError is a launch or crash fault of an external tool.
// A tool that exits non-zero with captured output is not a ProcessError.
type ProcessError struct {
	Cause      error
	Executable string
	Args       []string
	Kind       ProcessErrorKind
}

func (e *ProcessError) Error() string {
	cmd := e.Executable
	if len(e.Args) > 0 {
		cmd += " " + strings.Join(e.Args, " ")
	}
	if e.Kind == ProcessCrashed {
		return fmt.Sprintf("process crashed: %s: %v", cmd, e.Cause)
	}
	return fmt.Sprintf("failed to launch process: %s: %v", cmd, e.Cause)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// NewProcessError creates a new process error.
func NewProcessError(kind ProcessErrorKind, executable string, args []string, cause error) *ProcessError {
	return &ProcessError{
		Kind:       kind,
		Executable: executable,
		Args:       append([]string(nil), args...),
		Cause:      cause,
	}
}

// ExecutionError indicates a compile invocation was aborted (not a validation failure).
type ExecutionError struct {
	Cause    error
	Compiler string
	Message  string
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compile failed for %s: %s: %v", e.Compiler, e.Message, e.Cause)
	}
	return fmt.Sprintf("compile failed for %s: %s", e.Compiler, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionError creates a new execution error.
func NewExecutionError(compiler, message string, cause error) *ExecutionError {
	return &ExecutionError{
		Compiler: compiler,
		Message:  message,
		Cause:    cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

// BinaryNotFoundError indicates an external tool could not be located.
type BinaryNotFoundError struct {
	Tool       string
	Version    string
	Executable string
	Searched   []string
}

func (e *BinaryNotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("binary %s for %s (version %q) not found", e.Executable, e.Tool, e.Version)
	}
	return fmt.Sprintf("binary %s for %s (version %q) not found; searched: %s",
		e.Executable, e.Tool, e.Version, strings.Join(e.Searched, ", "))
}

// NewBinaryNotFoundError creates a new binary-not-found error.
func NewBinaryNotFoundError(tool, version, executable string, searched ...string) *BinaryNotFoundError {
	return &BinaryNotFoundError{
		Tool:       tool,
		Version:    version,
		Executable: executable,
		Searched:   searched,
	}
}

// CompilerNotFoundError indicates no backend is registered under a name.
type CompilerNotFoundError struct {
	Name      string
	Available []string
}

func (e *CompilerNotFoundError) Error() string {
	return fmt.Sprintf("unknown compiler %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// NewCompilerNotFoundError creates a new compiler-not-found error.
func NewCompilerNotFoundError(name string, available []string) *CompilerNotFoundError {
	return &CompilerNotFoundError{Name: name, Available: available}
}
