// Package compilers maps compiler names to backend implementations.
package compilers

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
	"github.com/shaderplay/shaderplay/internal/application/ports"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/shaderplay/shaderplay/internal/infrastructure/compilers/glslang"
	"github.com/shaderplay/shaderplay/internal/infrastructure/compilers/spirvcross"
)

// Ensure interface compliance
var _ ports.CompilerRegistry = (*Registry)(nil)

// Registry is a concurrency-safe name → Compiler map.
type Registry struct {
	compilers map[string]compiler.Compiler
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{compilers: make(map[string]compiler.Compiler)}
}

// NewDefaultRegistry registers every built-in backend.
func NewDefaultRegistry(runner ports.ProcessRunner, locator ports.BinaryLocator, tempDir string) *Registry {
	r := NewRegistry()
	for _, c := range []compiler.Compiler{
		glslang.New(runner, locator, tempDir),
		spirvcross.New(runner, locator, tempDir),
	} {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds c under its (normalized) name.
func (r *Registry) Register(c compiler.Compiler) error {
	name, err := values.NewCompilerName(c.Name())
	if err != nil {
		return fmt.Errorf("cannot register compiler: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.compilers[name.String()]; exists {
		return fmt.Errorf("compiler %q is already registered", name)
	}
	r.compilers[name.String()] = c
	return nil
}

// Get returns the compiler registered under name.
func (r *Registry) Get(name string) (compiler.Compiler, error) {
	key := name
	if n, err := values.NewCompilerName(name); err == nil {
		key = n.String()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.compilers[key]
	if !ok {
		return nil, apperrors.NewCompilerNotFoundError(name, r.namesLocked())
	}
	return c, nil
}

// List returns all compilers sorted by name.
func (r *Registry) List() []compiler.Compiler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]compiler.Compiler, 0, len(r.compilers))
	for _, name := range r.namesLocked() {
		out = append(out, r.compilers[name])
	}
	return out
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.compilers))
	for n := range r.compilers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
