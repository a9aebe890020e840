package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverJobs(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, name := range []string{"post/blur.frag", "post/blur.vert", "tonemap.hlsl", "sky.spv", "out.metal", "README.md", ".cache/old.frag"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	jobs, err := discoverJobs(root, root)
	require.NoError(t, err)

	byID := make(map[string]int, len(jobs))
	for i, j := range jobs {
		byID[j.ID] = i
	}
	require.Len(t, jobs, 4, "metal, README and hidden directories are skipped")

	frag := jobs[byID["post-blur-frag"]]
	assert.Equal(t, "post/blur.frag", frag.Source)
	assert.Equal(t, "glslang", frag.Compiler)
	assert.Equal(t, "frag", frag.Arguments["ShaderStage"])

	vert := jobs[byID["post-blur-vert"]]
	assert.Equal(t, "vert", vert.Arguments["ShaderStage"])

	hlsl := jobs[byID["tonemap-hlsl"]]
	assert.Equal(t, "main", hlsl.Arguments["EntryPoint"])

	spv := jobs[byID["sky-spv"]]
	assert.Equal(t, "spirv-cross", spv.Compiler)
	assert.Empty(t, spv.Arguments)
}

func TestJobID(t *testing.T) {
	t.Parallel()
	seen := make(map[string]int)

	assert.Equal(t, "post-blur-frag", jobID("post/blur.frag", seen))
	assert.Equal(t, "post-blur-frag-2", jobID("post/blur frag", seen))
	assert.Equal(t, "shaders-sky-spv", jobID("../shaders/sky.spv", seen))
	assert.Equal(t, "job", jobID("...", seen))
}
