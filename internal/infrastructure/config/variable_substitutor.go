package config

import (
	"fmt"
	"regexp"

	"github.com/shaderplay/shaderplay/internal/domain/entities"
)

// Variable pattern: {{ .vars.key }}
var varPattern = regexp.MustCompile(`\{\{\s*\.vars\.([a-zA-Z0-9_.-]+)\s*\}\}`)

// VariableSubstitutor expands manifest variables in job sources and arguments.
type VariableSubstitutor struct{}

// NewVariableSubstitutor creates a new variable substitutor.
func NewVariableSubstitutor() *VariableSubstitutor {
	return &VariableSubstitutor{}
}

// Substitute replaces {{ .vars.key }} in every job's source and argument values.
// Returns an error if a referenced variable is not declared. Modifies the manifest in place.
func (s *VariableSubstitutor) Substitute(m *entities.Manifest) error {
	for i := range m.Jobs {
		job := &m.Jobs[i]

		source, err := s.substituteInString(job.Source, m.Vars)
		if err != nil {
			return fmt.Errorf("job %s: source: %w", job.ID, err)
		}
		job.Source = source

		for k, v := range job.Arguments {
			expanded, err := s.substituteInString(v, m.Vars)
			if err != nil {
				return fmt.Errorf("job %s: argument %s: %w", job.ID, k, err)
			}
			job.Arguments[k] = expanded
		}
	}
	return nil
}

func (s *VariableSubstitutor) substituteInString(str string, vars map[string]string) (string, error) {
	var missing error
	result := varPattern.ReplaceAllStringFunc(str, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		v, ok := vars[name]
		if !ok {
			missing = fmt.Errorf("variable not found: %s", name)
			return match
		}
		return v
	})
	if missing != nil {
		return "", missing
	}
	return result, nil
}
