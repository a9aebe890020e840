package services

import (
	"context"
	"testing"

	"github.com/shaderplay/shaderplay/internal/application/dto"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryUseCase_ForBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, repo := newTestCompileUseCase(&stubCompiler{})

	compile := func(src string) values.InvocationID {
		resp, err := uc.Execute(ctx, dto.CompileRequest{Compiler: "stub", Language: values.LanguageGLSL, Source: []byte(src)})
		require.NoError(t, err)
		return resp.InvocationID
	}
	okID := compile("void main() {}")
	cachedID := compile("void main() {}")
	badID := compile("bad")

	result := execution.NewBatchResult("history", "1.0.0")
	result.AddJobResult(execution.JobResult{ID: "ok", Index: 0, InvocationID: okID})
	result.AddJobResult(execution.JobResult{ID: "skipped", Index: 1, Status: values.StatusSkipped})
	result.AddJobResult(execution.JobResult{ID: "again", Index: 2, InvocationID: cachedID})
	result.AddJobResult(execution.JobResult{ID: "bad", Index: 3, InvocationID: badID})
	result.Finalize()

	resp, err := NewHistoryUseCase(repo).ForBatch(ctx, result)
	require.NoError(t, err)

	require.Len(t, resp.Entries, 3)
	assert.Equal(t, "ok", resp.Entries[0].JobID)
	assert.False(t, resp.Entries[0].Record.Cached)
	assert.Equal(t, "again", resp.Entries[1].JobID)
	assert.True(t, resp.Entries[1].Record.Cached)
	assert.Equal(t, "bad", resp.Entries[2].JobID)
	assert.False(t, resp.Entries[2].Record.Result.Success)

	require.Len(t, resp.Compilers, 1)
	assert.Equal(t, "stub", resp.Compilers[0].Compiler)
	assert.Equal(t, 3, resp.Compilers[0].Invocations)
	assert.Equal(t, 1, resp.Compilers[0].Cached)
	assert.False(t, resp.Compilers[0].LastAt.IsZero())
}

func TestHistoryUseCase_MissingRecord(t *testing.T) {
	t.Parallel()
	result := execution.NewBatchResult("history", "1.0.0")
	result.AddJobResult(execution.JobResult{ID: "ghost", InvocationID: values.NewInvocationID()})

	_, err := NewHistoryUseCase(&recordingRepository{}).ForBatch(context.Background(), result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}
