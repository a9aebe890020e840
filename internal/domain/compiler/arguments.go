package compiler

import (
	"fmt"
	"sort"
)

// Arguments holds the resolved parameter values for one invocation.
// Every parameter a backend declares and does not filter out must be present;
// looking up a missing name is a programming error.
type Arguments struct {
	values map[string]string
}

// NewArguments copies m into a new Arguments value.
func NewArguments(m map[string]string) Arguments {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Arguments{values: cp}
}

// String returns the value for name and panics if it is missing.
func (a Arguments) String(name string) string {
	v, ok := a.values[name]
	if !ok {
		panic(fmt.Sprintf("compiler argument %q was not supplied", name))
	}
	return v
}

// Lookup returns the value for name and whether it was present.
func (a Arguments) Lookup(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name is present.
func (a Arguments) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// With returns a copy of a with name set to value.
func (a Arguments) With(name, value string) Arguments {
	cp := NewArguments(a.values)
	cp.values[name] = value
	return cp
}

// Map returns a copy of the underlying values.
func (a Arguments) Map() map[string]string {
	cp := make(map[string]string, len(a.values))
	for k, v := range a.values {
		cp[k] = v
	}
	return cp
}

// Names returns the argument names in sorted order.
func (a Arguments) Names() []string {
	names := make([]string, 0, len(a.values))
	for k := range a.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of arguments.
func (a Arguments) Len() int {
	return len(a.values)
}
