package compiler

import (
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// ValidationFailedErrorCode is set on a Result whose validation pass reported diagnostics.
const ValidationFailedErrorCode = 2

// NoValidationErrors replaces empty validation text so the absence of errors is explicit.
const NoValidationErrors = "<No validation errors>"

// Output labels shared by backends, in presentation order.
const (
	OutputDisassembly = "Disassembly"
	OutputAST         = "AST"
	OutputValidation  = "Validation"
)

// Output is one named, human-readable artifact of a compile.
type Output struct {
	Label    string          `json:"label" yaml:"label"`
	Language values.Language `json:"language,omitempty" yaml:"language,omitempty"`
	Text     string          `json:"text" yaml:"text"`
}

// Result is the normalized outcome of one compile invocation.
type Result struct {
	ErrorCode *int       `json:"error_code" yaml:"error_code"`
	Binary    ShaderCode `json:"-" yaml:"-"`
	Outputs   []Output   `json:"outputs" yaml:"outputs"`
	Success   bool       `json:"success" yaml:"success"`
}

// NewResult assembles a Result. A nil errorCode means success.
func NewResult(binary ShaderCode, errorCode *int, outputs ...Output) *Result {
	return &Result{
		Success:   errorCode == nil,
		Binary:    binary,
		ErrorCode: errorCode,
		Outputs:   append([]Output(nil), outputs...),
	}
}

// Clone returns a copy of r that shares no mutable state with it.
// Binary is immutable and is shared.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Outputs = append([]Output(nil), r.Outputs...)
	if r.ErrorCode != nil {
		code := *r.ErrorCode
		clone.ErrorCode = &code
	}
	return &clone
}

// Output returns the output with the given label.
func (r *Result) Output(label string) (Output, bool) {
	for _, o := range r.Outputs {
		if o.Label == label {
			return o, true
		}
	}
	return Output{}, false
}

// ValidationText returns the Validation output text, or "" if there is none.
func (r *Result) ValidationText() string {
	o, _ := r.Output(OutputValidation)
	return o.Text
}

// Status maps the result onto a job status.
func (r *Result) Status() values.Status {
	if r.Success {
		return values.StatusPass
	}
	return values.StatusFail
}

// ValidationOutput builds the Validation output, substituting NoValidationErrors
// when diagnostic is empty.
func ValidationOutput(diagnostic string) Output {
	if diagnostic == "" {
		diagnostic = NoValidationErrors
	}
	return Output{Label: OutputValidation, Language: values.LanguageNone, Text: diagnostic}
}

// ErrorCodeFor returns the error code for a validation diagnostic, nil when empty.
func ErrorCodeFor(diagnostic string) *int {
	if diagnostic == "" {
		return nil
	}
	code := ValidationFailedErrorCode
	return &code
}
