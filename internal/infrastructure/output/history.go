package output

import (
	"fmt"
	"io"
	"time"

	"github.com/shaderplay/shaderplay/internal/application/dto"
)

// WriteHistory prints one line per recorded invocation followed by
// per-compiler totals.
//
//nolint:errcheck // Best-effort terminal output
func WriteHistory(w io.Writer, h *dto.HistoryResponse) {
	if len(h.Entries) == 0 {
		fmt.Fprintln(w, "No compile invocations recorded.")
		return
	}

	fmt.Fprintln(w, "Invocations:")
	for _, e := range h.Entries {
		rec := e.Record
		outcome := "ok"
		if rec.Result != nil && !rec.Result.Success {
			outcome = "failed"
		}
		if rec.Cached {
			outcome += ", cached"
		}
		fmt.Fprintf(w, "  %-20s %s  %-12s %-6s %8s  %s\n",
			e.JobID, rec.InvocationID, rec.Compiler, rec.Language,
			rec.Duration.Round(time.Millisecond), outcome)
	}

	fmt.Fprintln(w, "Compilers:")
	for _, c := range h.Compilers {
		fmt.Fprintf(w, "  %-12s %d invocations, %d cached\n", c.Compiler, c.Invocations, c.Cached)
	}
}
