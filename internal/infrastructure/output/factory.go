package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shaderplay/shaderplay/internal/application/ports"
)

var _ ports.OutputFormatterFactory = (*FormatterFactory)(nil)

type batchConstructor func(w io.Writer, opts ports.FormatterOptions) ports.OutputFormatter

// batchFormats is ordered; the first entry is the CLI default.
var batchFormats = []struct {
	name string
	new  batchConstructor
}{
	{"table", func(w io.Writer, _ ports.FormatterOptions) ports.OutputFormatter { return NewTableFormatter(w) }},
	{"json", func(w io.Writer, o ports.FormatterOptions) ports.OutputFormatter { return NewJSONFormatter(w, o.Indent) }},
	{"yaml", func(w io.Writer, _ ports.FormatterOptions) ports.OutputFormatter { return NewYAMLFormatter(w) }},
	{"junit", func(w io.Writer, _ ports.FormatterOptions) ports.OutputFormatter { return NewJUnitFormatter(w) }},
	{"sarif", func(w io.Writer, o ports.FormatterOptions) ports.OutputFormatter {
		return NewSARIFFormatter(w, o.ManifestPath)
	}},
}

// FormatterFactory builds batch result formatters by name.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// Create returns the formatter registered under format.
func (f *FormatterFactory) Create(format string, w io.Writer, opts ports.FormatterOptions) (ports.OutputFormatter, error) {
	for _, bf := range batchFormats {
		if bf.name == format {
			return bf.new(w, opts), nil
		}
	}
	return nil, fmt.Errorf("unknown batch format %q (supported: %s)", format, strings.Join(BatchFormats(), ", "))
}

// SupportedFormats lists batch format names, default first.
func (f *FormatterFactory) SupportedFormats() []string {
	return BatchFormats()
}

// BatchFormats lists batch format names, default first.
func BatchFormats() []string {
	names := make([]string, len(batchFormats))
	for i, bf := range batchFormats {
		names[i] = bf.name
	}
	return names
}
