package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewCompilerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "glslang", "glslang", false},
		{"with dash", "spirv-cross", "spirv-cross", false},
		{"trims whitespace", "  glslang  ", "glslang", false},
		{"lower-cases", "GLSLang", "glslang", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"inner space", "glsl lang", "", true},
		{"path separator", "bin/glslang", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cn, err := NewCompilerName(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, cn.String())
			}
		})
	}
}

func Test_MustNewCompilerName_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewCompilerName("")
	})
}

func Test_CompilerName_IsEmpty(t *testing.T) {
	assert.True(t, CompilerName{}.IsEmpty())
	assert.False(t, MustNewCompilerName("glslang").IsEmpty())
}

func Test_CompilerName_Equals(t *testing.T) {
	a := MustNewCompilerName("glslang")
	b := MustNewCompilerName("spirv-cross")
	c := MustNewCompilerName("GLSLANG")

	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(c))
}

func Test_CompilerName_JSON(t *testing.T) {
	original := MustNewCompilerName("glslang")

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"glslang"`, string(data))

	var decoded CompilerName
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))

	assert.Error(t, json.Unmarshal([]byte(`""`), &decoded))
}
