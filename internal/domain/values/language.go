package values

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Language is the tag carried by shader source and compiler outputs.
type Language string

const (
	// LanguageNone marks an output that has no shading language (AST dumps, logs)
	LanguageNone Language = ""
	// LanguageGLSL is the OpenGL Shading Language
	LanguageGLSL Language = "glsl"
	// LanguageHLSL is the High-Level Shading Language
	LanguageHLSL Language = "hlsl"
	// LanguageSPIRV is the SPIR-V binary intermediate language
	LanguageSPIRV Language = "spirv"
	// LanguageMSL is the Metal Shading Language
	LanguageMSL Language = "msl"
)

var languageExtensions = map[Language]string{
	LanguageGLSL:  ".glsl",
	LanguageHLSL:  ".hlsl",
	LanguageSPIRV: ".spv",
	LanguageMSL:   ".metal",
}

// glslang picks the stage from -S, so stage extensions only identify the language.
var extensionLanguages = map[string]Language{
	".glsl":  LanguageGLSL,
	".vert":  LanguageGLSL,
	".frag":  LanguageGLSL,
	".geom":  LanguageGLSL,
	".tesc":  LanguageGLSL,
	".tese":  LanguageGLSL,
	".comp":  LanguageGLSL,
	".hlsl":  LanguageHLSL,
	".fx":    LanguageHLSL,
	".spv":   LanguageSPIRV,
	".metal": LanguageMSL,
}

// ParseLanguage parses a language name case-insensitively.
// "spir-v" is accepted as an alias for spirv.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "glsl":
		return LanguageGLSL, nil
	case "hlsl":
		return LanguageHLSL, nil
	case "spirv", "spir-v":
		return LanguageSPIRV, nil
	case "msl", "metal":
		return LanguageMSL, nil
	default:
		return LanguageNone, fmt.Errorf("unknown shader language: %q", s)
	}
}

// LanguageFromPath infers the language from a file extension.
func LanguageFromPath(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang, nil
	}
	return LanguageNone, fmt.Errorf("cannot infer shader language from %q", path)
}

// String returns the string representation
func (l Language) String() string {
	return string(l)
}

// IsNone returns true if the output carries no language
func (l Language) IsNone() bool {
	return l == LanguageNone
}

// IsBinary reports whether payloads in this language are binary rather than text.
func (l Language) IsBinary() bool {
	return l == LanguageSPIRV
}

// FileExtension returns the extension used when the payload is written to disk.
func (l Language) FileExtension() string {
	if ext, ok := languageExtensions[l]; ok {
		return ext
	}
	return ".txt"
}
