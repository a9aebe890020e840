// Package spirvcross drives SPIRV-Cross to turn SPIR-V back into high level source.
package spirvcross

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shaderplay/shaderplay/internal/application/ports"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/shaderplay/shaderplay/internal/infrastructure/tempfile"
)

// Name is the registry key of this backend.
const Name = "spirv-cross"

const executable = "spirv-cross"

// Parameter names specific to this backend.
const (
	GlslVersionParameterName     = "GlslVersion"
	HlslShaderModelParameterName = "HlslShaderModel"
)

// OutputLabel names the cross-compiled listing.
const OutputLabel = "Output"

// Compiler is the SPIRV-Cross backend.
type Compiler struct {
	runner  ports.ProcessRunner
	locator ports.BinaryLocator
	logger  *slog.Logger
	tempDir string
}

// New creates a SPIRV-Cross backend.
func New(runner ports.ProcessRunner, locator ports.BinaryLocator, tempDir string) *Compiler {
	return &Compiler{
		runner:  runner,
		locator: locator,
		tempDir: tempDir,
		logger:  slog.Default(),
	}
}

func (c *Compiler) Name() string        { return Name }
func (c *Compiler) DisplayName() string { return "SPIRV-Cross" }
func (c *Compiler) URL() string         { return "https://github.com/KhronosGroup/SPIRV-Cross" }
func (c *Compiler) Description() string {
	return "Khronos SPIRV-Cross: SPIR-V to GLSL, HLSL and MSL"
}

func (c *Compiler) InputLanguages() []values.Language {
	return []values.Language{values.LanguageSPIRV}
}

func (c *Compiler) Parameters() []compiler.Parameter {
	return []compiler.Parameter{
		compiler.VersionParameter(Name),
		compiler.OutputLanguageParameter(values.LanguageGLSL, values.LanguageHLSL, values.LanguageMSL),
		compiler.NewParameter(GlslVersionParameterName, "GLSL version", compiler.ParameterKindComboBox,
			[]string{"310es", "330", "430", "450", "460"}, "450").
			WithFilter(compiler.OutputLanguageParameterName, values.LanguageGLSL.String()),
		compiler.NewParameter(HlslShaderModelParameterName, "HLSL shader model", compiler.ParameterKindComboBox,
			[]string{"30", "40", "50", "51", "60"}, "50").
			WithFilter(compiler.OutputLanguageParameterName, values.LanguageHLSL.String()),
		compiler.NewParameter(compiler.EntryPointParameterName, "Entry point", compiler.ParameterKindText, nil, "main"),
	}
}

// Compile runs spirv-cross once, writing the listing next to the temp source.
func (c *Compiler) Compile(ctx context.Context, code compiler.ShaderCode, args compiler.Arguments) (*compiler.Result, error) {
	exe, err := c.locator.Resolve(Name, args.String(compiler.VersionParameterName), executable)
	if err != nil {
		return nil, err
	}

	outLang, err := values.ParseLanguage(args.String(compiler.OutputLanguageParameterName))
	if err != nil {
		return nil, err
	}
	langFlags, err := outputFlags(outLang, args)
	if err != nil {
		return nil, err
	}

	src, err := tempfile.FromShaderCode(c.tempDir, code)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			c.logger.WarnContext(ctx, "failed to clean up temp files", "path", src.Path(), "error", err)
		}
	}()

	outPath := src.SiblingPath(".out" + outLang.FileExtension())
	cmdArgs := append(langFlags,
		"--entry", args.String(compiler.EntryPointParameterName),
		"--output", outPath,
		src.Path(),
	)

	stdout, stderr, err := c.runner.Run(ctx, exe, cmdArgs)
	if err != nil {
		return nil, fmt.Errorf("spirv-cross: %w", err)
	}
	diagnostic := compiler.SelectDiagnostic(stdout, stderr, src.Path())

	listing, err := tempfile.ReadAllIfExists(outPath)
	if err != nil {
		return nil, err
	}

	return compiler.NewResult(
		compiler.NewShaderCode(outLang, listing),
		compiler.ErrorCodeFor(diagnostic),
		compiler.Output{Label: OutputLabel, Language: outLang, Text: string(listing)},
		compiler.ValidationOutput(diagnostic),
	), nil
}

func outputFlags(lang values.Language, args compiler.Arguments) ([]string, error) {
	switch lang {
	case values.LanguageGLSL:
		v := args.String(GlslVersionParameterName)
		if es, ok := strings.CutSuffix(v, "es"); ok {
			return []string{"--es", "--version", es}, nil
		}
		return []string{"--version", v}, nil
	case values.LanguageHLSL:
		return []string{"--hlsl", "--shader-model", args.String(HlslShaderModelParameterName)}, nil
	case values.LanguageMSL:
		return []string{"--msl"}, nil
	default:
		return nil, fmt.Errorf("spirv-cross cannot emit %q", lang)
	}
}
