package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shaderplay/shaderplay/internal/application/dto"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// CompileFormatter renders a single compile response.
type CompileFormatter interface {
	Format(resp *dto.CompileResponse) error
}

// NewCompileFormatter returns a text or json renderer.
func NewCompileFormatter(format string, w io.Writer) (CompileFormatter, error) {
	switch format {
	case "", "text":
		return &CompileTextFormatter{writer: w}, nil
	case "json":
		return &CompileJSONFormatter{writer: w}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: [text json])", format)
	}
}

// CompileTextFormatter prints every output under a heading, in result order.
type CompileTextFormatter struct {
	writer io.Writer
}

// Format writes the response as text.
//
//nolint:errcheck // Best-effort terminal output
func (f *CompileTextFormatter) Format(resp *dto.CompileResponse) error {
	r := resp.Result

	header := fmt.Sprintf("%s  %s  %s", resp.Compiler, resp.InvocationID, resp.Duration.Round(time.Millisecond))
	if resp.Cached {
		header += "  (cached)"
	}
	fmt.Fprintln(f.writer, header)

	if r.Success {
		fmt.Fprintln(f.writer, "Result: success")
	} else if r.ErrorCode != nil {
		fmt.Fprintf(f.writer, "Result: failed (error code %d)\n", *r.ErrorCode)
	} else {
		fmt.Fprintln(f.writer, "Result: failed")
	}

	for _, o := range r.Outputs {
		fmt.Fprintln(f.writer)
		fmt.Fprintln(f.writer, outputHeading(o))
		text := strings.TrimRight(o.Text, "\n")
		if text != "" {
			fmt.Fprintln(f.writer, text)
		}
	}

	fmt.Fprintln(f.writer)
	fmt.Fprintf(f.writer, "Binary: %d bytes", r.Binary.Len())
	if lang := r.Binary.Language(); !lang.IsNone() {
		fmt.Fprintf(f.writer, " (%s)", lang)
	}
	fmt.Fprintln(f.writer)
	return nil
}

func outputHeading(o compiler.Output) string {
	if o.Language.IsNone() {
		return "== " + o.Label + " =="
	}
	return fmt.Sprintf("== %s (%s) ==", o.Label, o.Language)
}

// CompileJSONFormatter writes the response as indented JSON.
type CompileJSONFormatter struct {
	writer io.Writer
}

type compileJSON struct {
	InvocationID   string            `json:"invocation_id"`
	Compiler       string            `json:"compiler"`
	Success        bool              `json:"success"`
	ErrorCode      *int              `json:"error_code"`
	Cached         bool              `json:"cached"`
	DurationMs     int64             `json:"duration_ms"`
	Arguments      map[string]string `json:"arguments"`
	Warnings       []string          `json:"warnings,omitempty"`
	Outputs        []compiler.Output `json:"outputs"`
	BinaryLanguage values.Language   `json:"binary_language,omitempty"`
	BinarySize     int               `json:"binary_size_bytes"`
}

// Format writes the response as JSON. The binary is summarized, not embedded.
func (f *CompileJSONFormatter) Format(resp *dto.CompileResponse) error {
	r := resp.Result
	return writeJSON(f.writer, compileJSON{
		InvocationID:   resp.InvocationID.String(),
		Compiler:       resp.Compiler,
		Success:        r.Success,
		ErrorCode:      r.ErrorCode,
		Cached:         resp.Cached,
		DurationMs:     resp.Duration.Milliseconds(),
		Arguments:      resp.Arguments,
		Warnings:       resp.Warnings,
		Outputs:        r.Outputs,
		BinaryLanguage: r.Binary.Language(),
		BinarySize:     r.Binary.Len(),
	}, true)
}
