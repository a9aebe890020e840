package apperrors

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "validation failed: Target: not allowed",
		NewValidationError("Target", "not allowed").Error())
	assert.Equal(t, "validation failed: arguments: schema mismatch (2 issues)",
		NewValidationError("arguments", "schema mismatch", "a", "b").Error())
}

func TestProcessError(t *testing.T) {
	t.Parallel()
	cause := exec.ErrNotFound
	err := NewProcessError(ProcessLaunchFailed, "glslangValidator", []string{"-S", "frag"}, cause)

	assert.Contains(t, err.Error(), "failed to launch process: glslangValidator -S frag")
	assert.ErrorIs(t, err, exec.ErrNotFound)

	crashed := NewProcessError(ProcessCrashed, "spirv-cross", nil, errors.New("signal: killed"))
	assert.Equal(t, "process crashed: spirv-cross: signal: killed", crashed.Error())
}

func TestExecutionError_UnwrapsProcessError(t *testing.T) {
	t.Parallel()
	pe := NewProcessError(ProcessCrashed, "tool", nil, errors.New("boom"))
	err := fmt.Errorf("wrapped: %w", NewExecutionError("glslang", "process fault", pe))

	var target *ProcessError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, ProcessCrashed, target.Kind)
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()
	err := NewConfigurationError("binaries", "root missing", nil)
	assert.Equal(t, "configuration error (binaries): root missing", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestBinaryNotFoundError(t *testing.T) {
	t.Parallel()
	err := NewBinaryNotFoundError("glslang", "latest", "glslangValidator", "/opt/tools/glslang", "$PATH")
	assert.Equal(t,
		`binary glslangValidator for glslang (version "latest") not found; searched: /opt/tools/glslang, $PATH`,
		err.Error())
}

func TestCompilerNotFoundError(t *testing.T) {
	t.Parallel()
	err := NewCompilerNotFoundError("dxc", []string{"glslang", "spirv-cross"})
	assert.Equal(t, `unknown compiler "dxc" (available: glslang, spirv-cross)`, err.Error())
}
