package compiler

// ParameterKind describes how a presentation layer renders a parameter.
type ParameterKind string

const (
	// ParameterKindText is a free-form text value
	ParameterKindText ParameterKind = "text"
	// ParameterKindComboBox is a value picked from Options
	ParameterKindComboBox ParameterKind = "combobox"
	// ParameterKindCheckBox is "true" or "false"
	ParameterKindCheckBox ParameterKind = "checkbox"
)

// ParameterFilter hides a parameter unless another parameter holds a given value.
// The filter is advisory for presentation layers; compile logic must still guard
// its own use of the parameter.
type ParameterFilter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Parameter declares one user-adjustable compile option.
type Parameter struct {
	Filter      *ParameterFilter `json:"filter,omitempty" yaml:"filter,omitempty"`
	Name        string           `json:"name" yaml:"name"`
	DisplayName string           `json:"display_name" yaml:"display_name"`
	Kind        ParameterKind    `json:"kind" yaml:"kind"`
	Default     string           `json:"default" yaml:"default"`
	Options     []string         `json:"options,omitempty" yaml:"options,omitempty"`
}

// NewParameter creates a parameter. Options only matter for combobox kinds.
func NewParameter(name, displayName string, kind ParameterKind, options []string, defaultValue string) Parameter {
	return Parameter{
		Name:        name,
		DisplayName: displayName,
		Kind:        kind,
		Options:     append([]string(nil), options...),
		Default:     defaultValue,
	}
}

// WithFilter returns a copy of p that is only visible when dependentName == requiredValue.
func (p Parameter) WithFilter(dependentName, requiredValue string) Parameter {
	p.Options = append([]string(nil), p.Options...)
	p.Filter = &ParameterFilter{Name: dependentName, Value: requiredValue}
	return p
}

// IsVisible evaluates the filter against already-known values.
// A parameter without a filter is always visible.
func (p Parameter) IsVisible(lookup func(name string) (string, bool)) bool {
	if p.Filter == nil {
		return true
	}
	v, ok := lookup(p.Filter.Name)
	return ok && v == p.Filter.Value
}

// Allows reports whether value is acceptable for this parameter.
func (p Parameter) Allows(value string) bool {
	switch p.Kind {
	case ParameterKindComboBox:
		for _, o := range p.Options {
			if o == value {
				return true
			}
		}
		return false
	case ParameterKindCheckBox:
		return value == "true" || value == "false"
	default:
		return true
	}
}
