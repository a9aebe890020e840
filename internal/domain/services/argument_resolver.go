package services

import (
	"fmt"
	"sort"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// ArgumentResolver turns loosely supplied key/value pairs into the complete
// argument set a compiler expects.
type ArgumentResolver struct{}

// NewArgumentResolver creates a new resolver.
func NewArgumentResolver() *ArgumentResolver {
	return &ArgumentResolver{}
}

// Resolve injects InputLanguage, walks params in declaration order and keeps
// every visible parameter, taking the supplied value or the default.
// Supplied keys that are unknown or filtered out are reported as warnings.
func (r *ArgumentResolver) Resolve(
	params []compiler.Parameter,
	inputLanguage values.Language,
	raw map[string]string,
) (compiler.Arguments, []string) {
	resolved := map[string]string{
		compiler.InputLanguageParameterName: inputLanguage.String(),
	}
	lookup := func(name string) (string, bool) {
		v, ok := resolved[name]
		return v, ok
	}

	declared := make(map[string]bool, len(params))
	for _, p := range params {
		declared[p.Name] = true
		if !p.IsVisible(lookup) {
			continue
		}
		if v, ok := raw[p.Name]; ok {
			resolved[p.Name] = v
		} else {
			resolved[p.Name] = p.Default
		}
	}

	var warnings []string
	for _, name := range sortedKeys(raw) {
		switch {
		case name == compiler.InputLanguageParameterName:
			if raw[name] != inputLanguage.String() {
				warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: source language is %q", name, raw[name], inputLanguage))
			}
		case !declared[name]:
			warnings = append(warnings, fmt.Sprintf("ignoring unknown argument %q", name))
		case !hasKey(resolved, name):
			warnings = append(warnings, fmt.Sprintf("ignoring argument %q: not applicable to this input", name))
		}
	}

	return compiler.NewArguments(resolved), warnings
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func hasKey(m map[string]string, k string) bool {
	_, ok := m[k]
	return ok
}
