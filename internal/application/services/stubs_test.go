package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/entities"
	"github.com/shaderplay/shaderplay/internal/domain/repositories"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

var optimizeParameter = compiler.NewParameter("Optimize", "Optimize", compiler.ParameterKindCheckBox, nil, "false")

// stubCompiler fails validation for sources containing "bad" and returns
// fault for sources containing "crash".
type stubCompiler struct {
	fault error
	calls atomic.Int32
}

func (c *stubCompiler) Name() string        { return "stub" }
func (c *stubCompiler) DisplayName() string { return "Stub" }
func (c *stubCompiler) URL() string         { return "https://example.com/stub" }
func (c *stubCompiler) Description() string { return "stub compiler" }

func (c *stubCompiler) InputLanguages() []values.Language {
	return []values.Language{values.LanguageGLSL, values.LanguageHLSL}
}

func (c *stubCompiler) Parameters() []compiler.Parameter {
	return []compiler.Parameter{
		compiler.GlslShaderStage,
		compiler.HlslEntryPoint.WithFilter(compiler.InputLanguageParameterName, values.LanguageHLSL.String()),
		optimizeParameter,
	}
}

func (c *stubCompiler) Compile(_ context.Context, code compiler.ShaderCode, args compiler.Arguments) (*compiler.Result, error) {
	c.calls.Add(1)
	text := code.Text()
	if strings.Contains(text, "crash") {
		return nil, c.fault
	}

	diag := ""
	if strings.Contains(text, "bad") {
		diag = "ERROR: 0:3: 'bad' : undeclared identifier\nERROR: 1 compilation errors.  No code generated."
	}
	return compiler.NewResult(
		compiler.NewShaderCode(values.LanguageSPIRV, []byte{0x03, 0x02, 0x23, 0x07}),
		compiler.ErrorCodeFor(diag),
		compiler.Output{Label: compiler.OutputDisassembly, Language: values.LanguageSPIRV, Text: "; stage " + args.String("ShaderStage")},
		compiler.Output{Label: compiler.OutputAST, Text: "Shader version: 450"},
		compiler.ValidationOutput(diag),
	), nil
}

type stubRegistry struct {
	compilers map[string]compiler.Compiler
}

func newStubRegistry(cs ...compiler.Compiler) *stubRegistry {
	r := &stubRegistry{compilers: make(map[string]compiler.Compiler)}
	for _, c := range cs {
		r.compilers[c.Name()] = c
	}
	return r
}

func (r *stubRegistry) Get(name string) (compiler.Compiler, error) {
	if c, ok := r.compilers[name]; ok {
		return c, nil
	}
	return nil, apperrors.NewCompilerNotFoundError(name, []string{"stub"})
}

func (r *stubRegistry) List() []compiler.Compiler {
	out := make([]compiler.Compiler, 0, len(r.compilers))
	for _, c := range r.compilers {
		out = append(out, c)
	}
	return out
}

type mapCache struct {
	entries map[string]*compiler.Result
	mu      sync.Mutex
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*compiler.Result)}
}

func (c *mapCache) Get(key string) (*compiler.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[key]
	return r, ok
}

func (c *mapCache) Add(key string, result *compiler.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
}

type recordingRepository struct {
	records []*repositories.CompileRecord
	mu      sync.Mutex
}

func (r *recordingRepository) Save(_ context.Context, record *repositories.CompileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *recordingRepository) FindByID(_ context.Context, id values.InvocationID) (*repositories.CompileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.InvocationID.Equals(id) {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("compile record not found: %s", id)
}

func (r *recordingRepository) FindByCompiler(_ context.Context, name string, limit int) ([]*repositories.CompileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repositories.CompileRecord
	for _, rec := range r.records {
		if rec.Compiler == name {
			out = append(out, rec)
		}
	}
	return out, nil
}

type stubManifestLoader struct {
	manifest *entities.Manifest
	err      error
}

func (l stubManifestLoader) LoadManifest(string) (*entities.Manifest, error) {
	return l.manifest, l.err
}
