package execution

import (
	"strings"
	"sync"
	"testing"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchResult_FinalizeSortsAndSummarizes(t *testing.T) {
	t.Parallel()
	r := NewBatchResult("demo", "1.0.0")

	r.AddJobResult(JobResult{ID: "c", Index: 2, Status: values.StatusError})
	r.AddJobResult(JobResult{ID: "a", Index: 0, Status: values.StatusPass})
	r.AddJobResult(JobResult{ID: "b", Index: 1, Status: values.StatusFail, Diagnostics: []compiler.Diagnostic{
		{Severity: compiler.SeverityError, Message: "x"},
		{Severity: compiler.SeverityWarning, Message: "y"},
	}})
	r.AddJobResult(JobResult{ID: "d", Index: 3, Status: values.StatusSkipped})

	r.Finalize()

	ids := make([]string, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	assert.Equal(t, ResultSummary{
		TotalJobs: 4, PassedJobs: 1, FailedJobs: 1, ErrorJobs: 1, SkippedJobs: 1, Diagnostics: 2,
	}, r.Summary)
	assert.Equal(t, values.StatusError, r.OverallStatus())
	assert.False(t, r.EndTime.Before(r.StartTime))
}

func TestBatchResult_ConcurrentAdds(t *testing.T) {
	t.Parallel()
	r := NewBatchResult("demo", "1.0.0")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.AddJobResult(JobResult{ID: string(rune('a' + i%26)), Index: i, Status: values.StatusPass})
		}(i)
	}
	wg.Wait()
	r.Finalize()

	require.Len(t, r.Jobs, 50)
	for i, j := range r.Jobs {
		assert.Equal(t, i, j.Index)
	}
}

func TestBatchResult_GetJobResult(t *testing.T) {
	t.Parallel()
	r := NewBatchResult("demo", "1.0.0")
	r.AddJobResult(JobResult{ID: "a", Status: values.StatusPass})

	jr, ok := r.GetJobResult("a")
	require.True(t, ok)
	assert.Equal(t, values.StatusPass, jr.Status)

	_, ok = r.GetJobResult("missing")
	assert.False(t, ok)
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	out, meta := TruncateText("AST", "short", 100)
	assert.Equal(t, "short", out)
	assert.Nil(t, meta)

	out, meta = TruncateText("AST", "short", 0)
	assert.Equal(t, "short", out)
	assert.Nil(t, meta)

	long := strings.Repeat("a", 20)
	out, meta = TruncateText("AST", long, 10)
	require.NotNil(t, meta)
	assert.True(t, strings.HasPrefix(out, strings.Repeat("a", 10)))
	assert.Contains(t, out, "[TRUNCATED]")
	assert.Equal(t, 20, meta.OriginalSize)
	assert.Equal(t, 10, meta.TruncatedAt)
	assert.Equal(t, "AST", meta.Label)
}

func TestTruncateText_RespectsRuneBoundary(t *testing.T) {
	t.Parallel()
	text := "abécd" // é is two bytes at offsets 2-3
	out, meta := TruncateText("Validation", text, 3)

	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.TruncatedAt)
	assert.True(t, strings.HasPrefix(out, "ab\n"))
}
