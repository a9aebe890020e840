// Package values contains domain value objects that encapsulate
// primitive types with validation.
package values

import (
	"fmt"

	"github.com/google/uuid"
)

// InvocationID uniquely identifies one compile invocation.
type InvocationID struct {
	value uuid.UUID
}

// NewInvocationID creates a new random invocation ID
func NewInvocationID() InvocationID {
	return InvocationID{value: uuid.New()}
}

// ParseInvocationID parses a string into an InvocationID
func ParseInvocationID(s string) (InvocationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InvocationID{}, fmt.Errorf("invalid invocation ID: %w", err)
	}
	return InvocationID{value: id}, nil
}

// MustParseInvocationID parses a string or panics (for tests only)
func MustParseInvocationID(s string) InvocationID {
	id, err := ParseInvocationID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation
func (i InvocationID) String() string {
	return i.value.String()
}

// UUID returns the underlying uuid.UUID
func (i InvocationID) UUID() uuid.UUID {
	return i.value
}

// IsZero returns true if this is the zero value
func (i InvocationID) IsZero() bool {
	return i.value == uuid.Nil
}

// Equals checks if two InvocationIDs are equal
func (i InvocationID) Equals(other InvocationID) bool {
	return i.value == other.value
}

// MarshalJSON implements json.Marshaler
func (i InvocationID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (i *InvocationID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 {
		return fmt.Errorf("invalid invocation ID JSON")
	}
	s = s[1 : len(s)-1]

	id, err := ParseInvocationID(s)
	if err != nil {
		return err
	}
	*i = id
	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler
func (i InvocationID) MarshalYAML() (interface{}, error) {
	return i.value.String(), nil
}
