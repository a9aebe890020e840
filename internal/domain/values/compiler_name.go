package values

import (
	"fmt"
	"strings"
)

// CompilerName represents a validated compiler backend identifier.
// Enforces non-empty, trimmed, lower-case names.
type CompilerName struct {
	value string
}

// NewCompilerName creates a CompilerName with validation
func NewCompilerName(name string) (CompilerName, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CompilerName{}, fmt.Errorf("compiler name cannot be empty")
	}
	if strings.ContainsAny(name, " \t/\\") {
		return CompilerName{}, fmt.Errorf("compiler name %q contains invalid characters", name)
	}
	return CompilerName{value: name}, nil
}

// MustNewCompilerName creates a CompilerName or panics
func MustNewCompilerName(name string) CompilerName {
	cn, err := NewCompilerName(name)
	if err != nil {
		panic(err)
	}
	return cn
}

// String returns the string representation
func (c CompilerName) String() string {
	return c.value
}

// IsEmpty returns true if this is the zero value
func (c CompilerName) IsEmpty() bool {
	return c.value == ""
}

// Equals checks if two compiler names are equal
func (c CompilerName) Equals(other CompilerName) bool {
	return c.value == other.value
}

// MarshalJSON implements json.Marshaler
func (c CompilerName) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CompilerName) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 {
		return fmt.Errorf("invalid compiler name JSON")
	}
	s = s[1 : len(s)-1]

	name, err := NewCompilerName(s)
	if err != nil {
		return err
	}
	*c = name
	return nil
}
