package compiler

import (
	"context"

	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// Compiler is implemented once per external toolchain.
//
// Compile returns a Result for every run in which the tool executed, including
// runs that reported validation errors. An error is returned only when the tool
// could not be launched or terminated abnormally.
type Compiler interface {
	Name() string
	DisplayName() string
	URL() string
	Description() string
	InputLanguages() []values.Language
	Parameters() []Parameter
	Compile(ctx context.Context, code ShaderCode, args Arguments) (*Result, error)
}

// Accepts reports whether c accepts source in lang.
func Accepts(c Compiler, lang values.Language) bool {
	for _, l := range c.InputLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}
