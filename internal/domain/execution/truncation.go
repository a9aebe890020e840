package execution

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxOutputSize is the default per-output limit for reports (256KB).
const DefaultMaxOutputSize = 256 * 1024

const truncationMarker = "\n... [TRUNCATED] ..."

// OutputMeta records that a report output was shortened.
type OutputMeta struct {
	Label        string `json:"label" yaml:"label"`
	Reason       string `json:"reason,omitempty" yaml:"reason,omitempty"`
	OriginalSize int    `json:"original_size_bytes" yaml:"original_size_bytes"`
	TruncatedAt  int    `json:"truncated_at_bytes" yaml:"truncated_at_bytes"`
	Truncated    bool   `json:"truncated" yaml:"truncated"`
}

// TruncateText shortens text to at most limit bytes, never splitting a UTF-8 sequence.
// A limit <= 0 disables truncation. Meta is nil when nothing was cut.
func TruncateText(label, text string, limit int) (string, *OutputMeta) {
	if limit <= 0 || len(text) <= limit {
		return text, nil
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + truncationMarker, &OutputMeta{
		Label:        label,
		Truncated:    true,
		OriginalSize: len(text),
		TruncatedAt:  cut,
		Reason:       fmt.Sprintf("output exceeded %d bytes limit", limit),
	}
}
