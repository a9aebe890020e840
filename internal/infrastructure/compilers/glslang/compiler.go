// Package glslang drives the Khronos glslangValidator front end.
package glslang

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
const Name = "glslang"

const executable = "glslangValidator"

// TargetParameterName selects the SPIR-V target environment.
const TargetParameterName = "Target"

// Target choices.
const (
	TargetVulkan10 = "Vulkan 1.0"
	TargetVulkan11 = "Vulkan 1.1"
	TargetOpenGL   = "OpenGL"
)

var targetFlags = map[string]string{
	TargetVulkan10: "--target-env vulkan1.0",
	TargetVulkan11: "--target-env vulkan1.1",
	TargetOpenGL:   "--target-env opengl",
}

// TargetFlags returns the command-line fragment for target.
// Unknown targets map to an empty fragment and glslang picks its own default.
func TargetFlags(target string) string {
	return targetFlags[target]
}

// Compiler is the glslang backend.
type Compiler struct {
	runner  ports.ProcessRunner
	locator ports.BinaryLocator
	logger  *slog.Logger
	tempDir string
}

// New creates a glslang backend. Temporary files go to tempDir (os.TempDir when empty).
func New(runner ports.ProcessRunner, locator ports.BinaryLocator, tempDir string) *Compiler {
	return &Compiler{
		runner:  runner,
		locator: locator,
		tempDir: tempDir,
		logger:  slog.Default(),
	}
}

func (c *Compiler) Name() string        { return Name }
func (c *Compiler) DisplayName() string { return "glslang" }
func (c *Compiler) URL() string         { return "https://github.com/KhronosGroup/glslang" }
func (c *Compiler) Description() string { return "Khronos glslangValidator" }

// InputLanguages returns GLSL and HLSL.
func (c *Compiler) InputLanguages() []values.Language {
	return []values.Language{values.LanguageGLSL, values.LanguageHLSL}
}

// Parameters returns the options glslang understands.
func (c *Compiler) Parameters() []compiler.Parameter {
	return []compiler.Parameter{
		compiler.VersionParameter(Name),
		compiler.GlslShaderStage,
		compiler.NewParameter(
			TargetParameterName,
			"Target",
			compiler.ParameterKindComboBox,
			[]string{TargetVulkan10, TargetVulkan11, TargetOpenGL},
			TargetVulkan10,
		),
		compiler.HlslEntryPoint.WithFilter(compiler.InputLanguageParameterName, values.LanguageHLSL.String()),
		compiler.OutputLanguageParameter(values.LanguageSPIRV),
	}
}

// Compile runs glslangValidator three times over one temporary copy of the
// source: a plain validation pass, a SPIR-V disassembly pass (-H) and an AST
// dump (-i). Only the validation pass decides success.
func (c *Compiler) Compile(ctx context.Context, code compiler.ShaderCode, args compiler.Arguments) (*compiler.Result, error) {
	exe, err := c.locator.Resolve(Name, args.String(compiler.VersionParameterName), executable)
	if err != nil {
		return nil, err
	}

	hlsl := code.Language() == values.LanguageHLSL
	entryPoint := ""
	if hlsl {
		entryPoint = args.String(compiler.EntryPointParameterName)
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

	binaryPath := src.SiblingPath(".o")
	base := commonArguments(
		args.String(compiler.ShaderStageParameterName),
		TargetFlags(args.String(TargetParameterName)),
		hlsl,
		entryPoint,
		binaryPath,
	)

	validation, err := c.run(ctx, exe, base, "", src.Path())
	if err != nil {
		return nil, err
	}
	disassembly, err := c.run(ctx, exe, base, "-H", src.Path())
	if err != nil {
		return nil, err
	}
	ast, err := c.run(ctx, exe, base, "-i", src.Path())
	if err != nil {
		return nil, err
	}

	binary, err := tempfile.ReadAllIfExists(binaryPath)
	if err != nil {
		return nil, err
	}
	if err := tempfile.RemoveIfExists(binaryPath); err != nil {
		return nil, err
	}

	return compiler.NewResult(
		compiler.NewShaderCode(values.LanguageSPIRV, binary),
		compiler.ErrorCodeFor(validation),
		compiler.Output{Label: compiler.OutputDisassembly, Language: values.LanguageSPIRV, Text: disassembly},
		compiler.Output{Label: compiler.OutputAST, Language: values.LanguageNone, Text: ast},
		compiler.ValidationOutput(validation),
	), nil
}

func (c *Compiler) run(ctx context.Context, exe string, base []string, extra, sourcePath string) (string, error) {
	args := invocationArguments(base, extra, sourcePath)
	stdout, stderr, err := c.runner.Run(ctx, exe, args)
	if err != nil {
		return "", fmt.Errorf("glslang %s: %w", passName(extra), err)
	}
	return compiler.SelectDiagnostic(stdout, stderr, sourcePath), nil
}

// commonArguments builds the flags shared by every pass:
// -S <stage> -d <target> [-D -e <entry>] -o <binary> --auto-map-locations
// The -D -e pair is present for HLSL sources only, whatever the entry point value.
func commonArguments(stage, target string, hlsl bool, entryPoint, binaryPath string) []string {
	args := []string{"-S", stage, "-d"}
	args = append(args, strings.Fields(target)...)
	if hlsl {
		args = append(args, "-D", "-e", entryPoint)
	}
	return append(args, "-o", binaryPath, "--auto-map-locations")
}

func invocationArguments(base []string, extra, sourcePath string) []string {
	args := append([]string(nil), base...)
	if extra != "" {
		args = append(args, extra)
	}
	return append(args, sourcePath)
}

func passName(extra string) string {
	switch extra {
	case "-H":
		return "disassembly"
	case "-i":
		return "ast"
	default:
		return "validation"
	}
}
