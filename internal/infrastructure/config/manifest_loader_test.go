package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = `
metadata:
  name: smoke
  version: 1.2.0
vars:
  stage: frag
  dir: shaders
defaults:
  compiler: glslang
  arguments:
    Target: Vulkan 1.0
  tags: [ci]
jobs:
  - id: blur
    source: "{{ .vars.dir }}/blur.frag"
    arguments:
      ShaderStage: "{{ .vars.stage }}"
  - id: tonemap
    name: Tonemap HLSL
    source: /abs/tonemap.hlsl
    language: hlsl
    arguments:
      Target: Vulkan 1.1
    tags: [hlsl]
`

func TestManifestLoader_LoadManifest(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validManifest), 0o600))

	m, err := NewManifestLoader().LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "smoke", m.Metadata.Name)
	assert.Equal(t, dir, m.BaseDir)
	require.Equal(t, 2, m.JobCount())

	blur := m.GetJob("blur")
	require.NotNil(t, blur)
	assert.Equal(t, "glslang", blur.Compiler)
	assert.Equal(t, "shaders/blur.frag", blur.Source)
	assert.Equal(t, filepath.Join(dir, "shaders", "blur.frag"), m.SourcePath(*blur))
	assert.Equal(t, map[string]string{"Target": "Vulkan 1.0", "ShaderStage": "frag"}, blur.Arguments)
	assert.Equal(t, []string{"ci"}, blur.Tags)

	tonemap := m.GetJob("tonemap")
	require.NotNil(t, tonemap)
	assert.Equal(t, "Vulkan 1.1", tonemap.Arguments["Target"])
	assert.Equal(t, []string{"hlsl", "ci"}, tonemap.Tags)
	assert.Equal(t, "/abs/tonemap.hlsl", m.SourcePath(*tonemap))
}

func TestManifestLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"malformed", "metadata: [", "decode"},
		{"bad version", "metadata: {name: x, version: banana}\njobs: [{id: a, compiler: glslang, source: a.frag}]", "semver"},
		{"undeclared var", "metadata: {name: x, version: 1.0.0}\njobs: [{id: a, compiler: glslang, source: '{{ .vars.nope }}'}]", "variable not found"},
		{"missing compiler", "metadata: {name: x, version: 1.0.0}\njobs: [{id: a, source: a.frag}]", "compiler"},
		{"duplicate id", "metadata: {name: x, version: 1.0.0}\njobs: [{id: a, compiler: g, source: a}, {id: a, compiler: g, source: b}]", "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewManifestLoader().LoadManifestFromReader(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestManifestLoader_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewManifestLoader().LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
