package main

import (
	"errors"
	"testing"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/shaderplay/shaderplay/internal/infrastructure/compilers/glslang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag    string
		path    string
		want    values.Language
		wantErr bool
	}{
		{flag: "", path: "blur.frag", want: values.LanguageGLSL},
		{flag: "", path: "tonemap.hlsl", want: values.LanguageHLSL},
		{flag: "hlsl", path: "shader.txt", want: values.LanguageHLSL},
		{flag: "", path: "shader.txt", wantErr: true},
		{flag: "cobol", path: "blur.frag", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.flag+"/"+tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := sourceLanguage(tt.flag, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptArguments(t *testing.T) {
	t.Parallel()
	params := glslang.New(nil, nil, "").Parameters()

	answer := func(asked *[]string) askFunc {
		return func(p compiler.Parameter) (string, error) {
			*asked = append(*asked, p.Name)
			return p.Default, nil
		}
	}

	t.Run("glsl skips hlsl-only parameters", func(t *testing.T) {
		t.Parallel()
		var asked []string
		got, err := promptArguments(params, values.LanguageGLSL, map[string]string{"ShaderStage": "vert"}, answer(&asked))
		require.NoError(t, err)

		assert.Equal(t, []string{"Version", "Target", "OutputLanguage"}, asked)
		assert.Equal(t, "vert", got["ShaderStage"])
		assert.Equal(t, glslang.TargetVulkan10, got["Target"])
		assert.NotContains(t, got, compiler.InputLanguageParameterName)
	})

	t.Run("hlsl asks for entry point", func(t *testing.T) {
		t.Parallel()
		var asked []string
		_, err := promptArguments(params, values.LanguageHLSL, nil, answer(&asked))
		require.NoError(t, err)
		assert.Contains(t, asked, compiler.EntryPointParameterName)
	})

	t.Run("prompt error", func(t *testing.T) {
		t.Parallel()
		_, err := promptArguments(params, values.LanguageGLSL, nil, func(compiler.Parameter) (string, error) {
			return "", errors.New("user aborted")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prompt for Version")
	})
}
