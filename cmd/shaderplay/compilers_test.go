package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shaderplay/shaderplay/internal/infrastructure/compilers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCompilers(t *testing.T) {
	t.Parallel()
	list := compilers.NewDefaultRegistry(nil, nil, "").List()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, renderCompilers(&buf, list, "text"))

		out := buf.String()
		assert.Contains(t, out, "glslang (glslang)")
		assert.Contains(t, out, "spirv-cross (SPIRV-Cross)")
		assert.Contains(t, out, "Input: glsl, hlsl")
		assert.Contains(t, out, "[Vulkan 1.0 | Vulkan 1.1 | OpenGL]")
		assert.Contains(t, out, "(when InputLanguage=hlsl)")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, renderCompilers(&buf, list, "json"))

		var views []compilerView
		require.NoError(t, json.Unmarshal(buf.Bytes(), &views))
		require.Len(t, views, 2)
		assert.Equal(t, "glslang", views[0].Name)
		assert.Len(t, views[0].Parameters, 5)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, renderCompilers(&bytes.Buffer{}, list, "xml"))
	})
}
