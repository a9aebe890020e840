package entities

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest() *Manifest {
	return &Manifest{
		Metadata: ManifestMetadata{Name: "demo", Version: "1.0.0"},
		Jobs: []Job{
			{ID: "tri-frag", Compiler: "glslang", Source: "tri.frag"},
			{ID: "blur_ps", Compiler: "glslang", Source: "blur.hlsl"},
		},
	}
}

func TestManifest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(m *Manifest)
		wantErr string
	}{
		{"valid", func(*Manifest) {}, ""},
		{"missing name", func(m *Manifest) { m.Metadata.Name = "" }, "name cannot be empty"},
		{"missing version", func(m *Manifest) { m.Metadata.Version = "" }, "version cannot be empty"},
		{"no jobs", func(m *Manifest) { m.Jobs = nil }, "at least one job"},
		{"duplicate id", func(m *Manifest) { m.Jobs[1].ID = "tri-frag" }, "duplicate job ID"},
		{"bad id", func(m *Manifest) { m.Jobs[0].ID = "tri frag" }, "must contain only"},
		{"no compiler", func(m *Manifest) { m.Jobs[0].Compiler = "" }, "must name a compiler"},
		{"no source", func(m *Manifest) { m.Jobs[0].Source = "" }, "must name a source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)
			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManifest_ApplyDefaults(t *testing.T) {
	t.Parallel()
	m := &Manifest{
		Defaults: &JobDefaults{
			Compiler:  "glslang",
			Arguments: map[string]string{"Target": "Vulkan 1.0", "ShaderStage": "frag"},
			Tags:      []string{"vulkan"},
		},
		Jobs: []Job{
			{ID: "a", Source: "a.frag"},
			{ID: "b", Compiler: "spirv-cross", Source: "b.spv", Arguments: map[string]string{"Target": "OpenGL"}, Tags: []string{"gl", "vulkan"}},
		},
	}

	m.ApplyDefaults()

	assert.Equal(t, "glslang", m.Jobs[0].Compiler)
	assert.Equal(t, map[string]string{"Target": "Vulkan 1.0", "ShaderStage": "frag"}, m.Jobs[0].Arguments)
	assert.Equal(t, []string{"vulkan"}, m.Jobs[0].Tags)

	assert.Equal(t, "spirv-cross", m.Jobs[1].Compiler)
	assert.Equal(t, "OpenGL", m.Jobs[1].Arguments["Target"])
	assert.Equal(t, "frag", m.Jobs[1].Arguments["ShaderStage"])
	assert.Equal(t, []string{"gl", "vulkan"}, m.Jobs[1].Tags)
}

func TestManifest_SourcePath(t *testing.T) {
	t.Parallel()
	m := &Manifest{BaseDir: filepath.Join("work", "shaders")}

	assert.Equal(t, filepath.Join("work", "shaders", "a.frag"), m.SourcePath(Job{Source: "a.frag"}))

	abs, err := filepath.Abs("x.frag")
	require.NoError(t, err)
	assert.Equal(t, abs, m.SourcePath(Job{Source: abs}))
}

func TestManifest_GetJob(t *testing.T) {
	t.Parallel()
	m := validManifest()

	require.NotNil(t, m.GetJob("blur_ps"))
	assert.Nil(t, m.GetJob("nope"))
	assert.Equal(t, 2, m.JobCount())
}

func TestJob_DisplayNameAndTags(t *testing.T) {
	t.Parallel()
	j := Job{ID: "x", Tags: []string{"a"}}
	assert.Equal(t, "x", j.DisplayName())
	j.Name = "Pretty"
	assert.Equal(t, "Pretty", j.DisplayName())
	assert.True(t, j.HasTag("a"))
	assert.False(t, j.HasTag("b"))
}
