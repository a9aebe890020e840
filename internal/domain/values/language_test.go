package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"glsl", LanguageGLSL, false},
		{"HLSL", LanguageHLSL, false},
		{" spirv ", LanguageSPIRV, false},
		{"SPIR-V", LanguageSPIRV, false},
		{"metal", LanguageMSL, false},
		{"wgsl", LanguageNone, true},
		{"", LanguageNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_LanguageFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Language
		wantErr bool
	}{
		{"shaders/triangle.vert", LanguageGLSL, false},
		{"shaders/blur.FRAG", LanguageGLSL, false},
		{"ps.hlsl", LanguageHLSL, false},
		{"out/frag.spv", LanguageSPIRV, false},
		{"kernel.metal", LanguageMSL, false},
		{"README.md", LanguageNone, true},
		{"noext", LanguageNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := LanguageFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Language_FileExtension(t *testing.T) {
	assert.Equal(t, ".hlsl", LanguageHLSL.FileExtension())
	assert.Equal(t, ".spv", LanguageSPIRV.FileExtension())
	assert.Equal(t, ".txt", LanguageNone.FileExtension())
}

func Test_Language_Predicates(t *testing.T) {
	assert.True(t, LanguageNone.IsNone())
	assert.False(t, LanguageGLSL.IsNone())
	assert.True(t, LanguageSPIRV.IsBinary())
	assert.False(t, LanguageHLSL.IsBinary())
}
