package spirvcross

import (
	"context"
	"errors"
	"os"
	"testing"

	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/services"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLocator struct{}

func (stubLocator) Resolve(tool, version, executable string) (string, error) {
	return "/opt/tools/" + tool + "/" + executable, nil
}

type stubRunner struct {
	respond func(args []string) (string, string, error)
	calls   [][]string
}

func (r *stubRunner) Run(_ context.Context, _ string, args []string) (string, string, error) {
	r.calls = append(r.calls, append([]string(nil), args...))
	return r.respond(args)
}

func outputPathOf(args []string) string {
	for i, a := range args {
		if a == "--output" {
			return args[i+1]
		}
	}
	return ""
}

var spirv = compiler.NewShaderCode(values.LanguageSPIRV, []byte{0x03, 0x02, 0x23, 0x07})

func resolve(c *Compiler, raw map[string]string) compiler.Arguments {
	args, _ := services.NewArgumentResolver().Resolve(c.Parameters(), values.LanguageSPIRV, raw)
	return args
}

func TestCompile_OutputFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      map[string]string
		expected []string
	}{
		{"glsl default", nil, []string{"--version", "450"}},
		{"glsl es", map[string]string{"GlslVersion": "310es"}, []string{"--es", "--version", "310"}},
		{"hlsl", map[string]string{"OutputLanguage": "hlsl", "HlslShaderModel": "60"}, []string{"--hlsl", "--shader-model", "60"}},
		{"msl", map[string]string{"OutputLanguage": "msl"}, []string{"--msl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := &stubRunner{respond: func([]string) (string, string, error) { return "", "", nil }}
			c := New(runner, stubLocator{}, t.TempDir())

			_, err := c.Compile(context.Background(), spirv, resolve(c, tt.raw))
			require.NoError(t, err)
			require.Len(t, runner.calls, 1)

			call := runner.calls[0]
			assert.Equal(t, tt.expected, call[:len(tt.expected)])
			assert.Contains(t, call, "--entry")
		})
	}
}

func TestCompile_Success(t *testing.T) {
	t.Parallel()
	listing := "#version 450\nvoid main() {}\n"
	runner := &stubRunner{respond: func(args []string) (string, string, error) {
		return "", "", os.WriteFile(outputPathOf(args), []byte(listing), 0o600)
	}}
	dir := t.TempDir()
	c := New(runner, stubLocator{}, dir)

	result, err := c.Compile(context.Background(), spirv, resolve(c, nil))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Nil(t, result.ErrorCode)
	assert.Equal(t, values.LanguageGLSL, result.Binary.Language())
	assert.Equal(t, listing, result.Binary.Text())
	out, ok := result.Output(OutputLabel)
	require.True(t, ok)
	assert.Equal(t, listing, out.Text)
	assert.Equal(t, compiler.NoValidationErrors, result.ValidationText())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp source and listing must be removed")
}

func TestCompile_Failure(t *testing.T) {
	t.Parallel()
	runner := &stubRunner{respond: func(args []string) (string, string, error) {
		return "", "SPIRV-Cross threw an exception: Invalid SPIR-V magic number.", nil
	}}
	c := New(runner, stubLocator{}, t.TempDir())

	result, err := c.Compile(context.Background(), spirv, resolve(c, nil))
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.NotNil(t, result.ErrorCode)
	assert.Equal(t, compiler.ValidationFailedErrorCode, *result.ErrorCode)
	assert.Contains(t, result.ValidationText(), "Invalid SPIR-V magic number")
	assert.True(t, result.Binary.IsEmpty())
}

func TestCompile_CleansUpTempFiles(t *testing.T) {
	t.Parallel()

	writeListing := func(args []string) {
		_ = os.WriteFile(outputPathOf(args), []byte("#version 450\n"), 0o600)
	}
	tests := []struct {
		name    string
		raw     map[string]string
		respond func(args []string) (string, string, error)
	}{
		{"always diagnostic", nil, func(args []string) (string, string, error) {
			writeListing(args)
			return "", "SPIRV-Cross threw an exception", nil
		}},
		{"never diagnostic", map[string]string{"OutputLanguage": "msl"}, func(args []string) (string, string, error) {
			writeListing(args)
			return "", "", nil
		}},
		{"fault", map[string]string{"OutputLanguage": "hlsl"}, func(args []string) (string, string, error) {
			writeListing(args)
			return "", "", apperrors.NewProcessError(apperrors.ProcessCrashed, "spirv-cross", args, errors.New("signal: killed"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			runner := &stubRunner{respond: tt.respond}
			c := New(runner, stubLocator{}, dir)

			_, _ = c.Compile(context.Background(), spirv, resolve(c, tt.raw))

			require.Len(t, runner.calls, 1)
			call := runner.calls[0]
			_, err := os.Stat(call[len(call)-1])
			assert.True(t, os.IsNotExist(err), "source temp file must be removed")
			_, err = os.Stat(outputPathOf(call))
			assert.True(t, os.IsNotExist(err), "listing must be removed")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestCompile_FaultPropagates(t *testing.T) {
	t.Parallel()

	for _, kind := range []apperrors.ProcessErrorKind{apperrors.ProcessLaunchFailed, apperrors.ProcessCrashed} {
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()
			fault := apperrors.NewProcessError(kind, "spirv-cross", nil, os.ErrNotExist)
			runner := &stubRunner{respond: func([]string) (string, string, error) { return "", "", fault }}
			c := New(runner, stubLocator{}, t.TempDir())

			result, err := c.Compile(context.Background(), spirv, resolve(c, nil))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, fault)

			var procErr *apperrors.ProcessError
			require.ErrorAs(t, err, &procErr)
			assert.Equal(t, kind, procErr.Kind)
		})
	}
}

func TestParameters_FiltersFollowOutputLanguage(t *testing.T) {
	t.Parallel()
	c := New(nil, nil, "")

	hlsl := resolve(c, map[string]string{"OutputLanguage": "hlsl"})
	assert.True(t, hlsl.Has(HlslShaderModelParameterName))
	assert.False(t, hlsl.Has(GlslVersionParameterName))

	glsl := resolve(c, nil)
	assert.True(t, glsl.Has(GlslVersionParameterName))
	assert.False(t, glsl.Has(HlslShaderModelParameterName))
}
