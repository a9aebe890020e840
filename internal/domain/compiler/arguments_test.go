package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArguments_String(t *testing.T) {
	t.Parallel()
	args := NewArguments(map[string]string{"Target": "Vulkan 1.0"})

	assert.Equal(t, "Vulkan 1.0", args.String("Target"))
	assert.PanicsWithValue(t, `compiler argument "EntryPoint" was not supplied`, func() {
		args.String("EntryPoint")
	})
}

func TestArguments_IsolatedFromSource(t *testing.T) {
	t.Parallel()
	src := map[string]string{"a": "1"}
	args := NewArguments(src)
	src["a"] = "2"

	assert.Equal(t, "1", args.String("a"))

	m := args.Map()
	m["a"] = "3"
	assert.Equal(t, "1", args.String("a"))
}

func TestArguments_With(t *testing.T) {
	t.Parallel()
	base := NewArguments(map[string]string{"a": "1"})
	next := base.With("b", "2")

	assert.False(t, base.Has("b"))
	assert.True(t, next.Has("b"))
	assert.Equal(t, []string{"a", "b"}, next.Names())
	assert.Equal(t, 2, next.Len())

	v, ok := next.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}
