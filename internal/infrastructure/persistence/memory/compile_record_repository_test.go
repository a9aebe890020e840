package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shaderplay/shaderplay/internal/domain/repositories"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRecordRepository_SaveAndFind(t *testing.T) {
	t.Parallel()
	repo := NewCompileRecordRepository()
	ctx := context.Background()

	rec := &repositories.CompileRecord{
		InvocationID: values.NewInvocationID(),
		Compiler:     "glslang",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.FindByID(ctx, rec.InvocationID)
	require.NoError(t, err)
	assert.Same(t, rec, got)

	_, err = repo.FindByID(ctx, values.NewInvocationID())
	assert.Error(t, err)
}

func TestCompileRecordRepository_RejectsZeroID(t *testing.T) {
	t.Parallel()
	err := NewCompileRecordRepository().Save(context.Background(), &repositories.CompileRecord{Compiler: "glslang"})
	assert.Error(t, err)
}

func TestCompileRecordRepository_FindByCompiler(t *testing.T) {
	t.Parallel()
	repo := NewCompileRecordRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &repositories.CompileRecord{
			InvocationID: values.NewInvocationID(),
			Compiler:     "glslang",
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Save(ctx, &repositories.CompileRecord{
		InvocationID: values.NewInvocationID(),
		Compiler:     "spirv-cross",
		CreatedAt:    base,
	}))

	recs, err := repo.FindByCompiler(ctx, "glslang", 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, base.Add(2*time.Minute), recs[0].CreatedAt)
	assert.Equal(t, base.Add(time.Minute), recs[1].CreatedAt)

	all, err := repo.FindByCompiler(ctx, "glslang", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
