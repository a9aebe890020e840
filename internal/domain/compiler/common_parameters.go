package compiler

import (
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// Shared parameter names. Backends use these so callers can treat common
// options the same way regardless of the compiler.
const (
	InputLanguageParameterName  = "InputLanguage"
	VersionParameterName        = "Version"
	ShaderStageParameterName    = "ShaderStage"
	EntryPointParameterName     = "EntryPoint"
	OutputLanguageParameterName = "OutputLanguage"
)

// LatestVersion asks the binary locator for the newest installed version.
const LatestVersion = "latest"

// GlslShaderStage selects the pipeline stage for GLSL-family front ends.
var GlslShaderStage = NewParameter(
	ShaderStageParameterName,
	"Shader stage",
	ParameterKindComboBox,
	[]string{"vert", "tesc", "tese", "geom", "frag", "comp"},
	"frag",
)

// HlslEntryPoint names the entry function for HLSL sources.
var HlslEntryPoint = NewParameter(
	EntryPointParameterName,
	"Entry point",
	ParameterKindText,
	nil,
	"main",
)

// VersionParameter selects which installed build of tool to run.
func VersionParameter(tool string) Parameter {
	return NewParameter(
		VersionParameterName,
		tool+" version",
		ParameterKindText,
		nil,
		LatestVersion,
	)
}

// OutputLanguageParameter lists the languages a backend can emit.
// The first language is the default.
func OutputLanguageParameter(languages ...values.Language) Parameter {
	options := make([]string, 0, len(languages))
	for _, l := range languages {
		options = append(options, l.String())
	}
	def := ""
	if len(options) > 0 {
		def = options[0]
	}
	return NewParameter(OutputLanguageParameterName, "Output format", ParameterKindComboBox, options, def)
}
