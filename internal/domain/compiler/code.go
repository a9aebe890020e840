// Package compiler defines the contract shared by every shader compiler backend:
// the shader payload, the parameter schema, resolved arguments and the
// structured result.
package compiler

import (
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// ShaderCode is an immutable shader payload tagged with its language.
type ShaderCode struct {
	language values.Language
	bytes    []byte
}

// NewShaderCode creates a ShaderCode holding a private copy of data.
func NewShaderCode(language values.Language, data []byte) ShaderCode {
	b := make([]byte, len(data))
	copy(b, data)
	return ShaderCode{language: language, bytes: b}
}

// NewShaderCodeFromString creates a ShaderCode from source text.
func NewShaderCodeFromString(language values.Language, text string) ShaderCode {
	return ShaderCode{language: language, bytes: []byte(text)}
}

// Language returns the language tag.
func (c ShaderCode) Language() values.Language {
	return c.language
}

// Bytes returns a copy of the payload.
func (c ShaderCode) Bytes() []byte {
	b := make([]byte, len(c.bytes))
	copy(b, c.bytes)
	return b
}

// Len returns the payload size in bytes.
func (c ShaderCode) Len() int {
	return len(c.bytes)
}

// IsEmpty reports whether the payload is empty.
func (c ShaderCode) IsEmpty() bool {
	return len(c.bytes) == 0
}

// Text returns the payload as a string.
func (c ShaderCode) Text() string {
	return string(c.bytes)
}

// Equals compares language and payload.
func (c ShaderCode) Equals(other ShaderCode) bool {
	return c.language == other.language && string(c.bytes) == string(other.bytes)
}
