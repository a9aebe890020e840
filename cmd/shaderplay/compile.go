package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/shaderplay/shaderplay/internal/application/dto"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/shaderplay/shaderplay/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

// compileOptions holds the flags of the compile command.
type compileOptions struct {
	CommonOptions

	Compiler  string
	Language  string
	Args      []string
	BinaryOut string

	Interactive bool
	NoCache     bool
}

func newCompileCmd() *cobra.Command {
	opts := &compileOptions{CommonOptions: newCommonOptions("text", "json")}

	cmd := &cobra.Command{
		Use:   "compile <source>",
		Short: "Compile one shader source with one compiler",
		Long: `Run a single compiler over a shader source and print every output it
produced: disassembly, AST and validation diagnostics.

The source language is taken from --lang or inferred from the file
extension (.glsl/.vert/.frag/... for GLSL, .hlsl, .spv). Compiler options
are passed with repeated --arg flags; options left out use their defaults.

  shaderplay compile blur.frag --arg ShaderStage=frag --arg "Target=Vulkan 1.1"
  shaderplay compile tonemap.hlsl --compiler glslang --arg EntryPoint=PSMain
  shaderplay compile shader.spv --compiler spirv-cross --arg OutputLanguage=msl
  shaderplay compile blur.frag --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), opts, args[0])
		},
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringVarP(&opts.Compiler, "compiler", "c", "glslang", "Compiler to run (see 'shaderplay compilers')")
	cmd.Flags().StringVarP(&opts.Language, "lang", "l", "", "Source language: glsl, hlsl, spirv (default: from file extension)")
	cmd.Flags().StringArrayVarP(&opts.Args, "arg", "a", nil, "Compiler argument as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.BinaryOut, "binary-out", "", "Write the compiled binary to this file")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Prompt for arguments not given with --arg")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Always run the compiler, ignoring cached results")

	return cmd
}

func init() {
	rootCmd.AddCommand(newCompileCmd())
}

func runCompile(ctx context.Context, opts *compileOptions, sourcePath string) error {
	if err := opts.ValidateFlags(); err != nil {
		return err
	}
	ctx, cancel := opts.ApplyToContext(ctx)
	defer cancel()

	lang, err := sourceLanguage(opts.Language, sourcePath)
	if err != nil {
		return err
	}
	arguments, err := parseKeyValues(opts.Args)
	if err != nil {
		return err
	}

	//nolint:gosec // G304: source path is the command argument
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	ctr, err := newContainer()
	if err != nil {
		return err
	}

	if opts.Interactive {
		c, err := ctr.Compilers().Get(opts.Compiler)
		if err != nil {
			return err
		}
		arguments, err = promptArguments(c.Parameters(), lang, arguments, askParameter)
		if err != nil {
			return err
		}
	}

	resp, err := ctr.CompileUseCase().Execute(ctx, dto.CompileRequest{
		Compiler:  opts.Compiler,
		Language:  lang,
		Source:    source,
		Arguments: arguments,
		NoCache:   opts.NoCache,
	})
	if err != nil {
		return err
	}

	w, closeOut, err := opts.OpenOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	formatter, err := output.NewCompileFormatter(opts.Format, w)
	if err != nil {
		return err
	}
	if err := formatter.Format(resp); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.BinaryOut != "" {
		if err := os.WriteFile(opts.BinaryOut, resp.Result.Binary.Bytes(), 0o600); err != nil {
			return fmt.Errorf("failed to write binary: %w", err)
		}
	}

	if !resp.Result.Success {
		if resp.Result.ErrorCode != nil {
			return fmt.Errorf("compile failed with error code %d", *resp.Result.ErrorCode)
		}
		return fmt.Errorf("compile failed")
	}
	return nil
}

func sourceLanguage(flag, path string) (values.Language, error) {
	if flag != "" {
		return values.ParseLanguage(flag)
	}
	return values.LanguageFromPath(path)
}

// askFunc obtains a value for one parameter.
type askFunc func(p compiler.Parameter) (string, error)

// promptArguments asks for every visible parameter not already in given,
// in declaration order. Answers feed the visibility of later parameters.
func promptArguments(
	params []compiler.Parameter,
	lang values.Language,
	given map[string]string,
	ask askFunc,
) (map[string]string, error) {
	known := make(map[string]string, len(given)+1)
	for k, v := range given {
		known[k] = v
	}
	known[compiler.InputLanguageParameterName] = lang.String()
	lookup := func(name string) (string, bool) {
		v, ok := known[name]
		return v, ok
	}

	for _, p := range params {
		if _, ok := known[p.Name]; ok || !p.IsVisible(lookup) {
			continue
		}
		value, err := ask(p)
		if err != nil {
			return nil, fmt.Errorf("prompt for %s: %w", p.Name, err)
		}
		known[p.Name] = value
	}

	delete(known, compiler.InputLanguageParameterName)
	return known, nil
}

// askParameter renders a terminal prompt matching the parameter kind.
func askParameter(p compiler.Parameter) (string, error) {
	title := p.DisplayName
	if title == "" {
		title = p.Name
	}

	switch p.Kind {
	case compiler.ParameterKindComboBox:
		value := p.Default
		err := huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(p.Options...)...).
			Value(&value).
			Run()
		return value, err

	case compiler.ParameterKindCheckBox:
		checked, _ := strconv.ParseBool(p.Default)
		err := huh.NewConfirm().
			Title(title).
			Value(&checked).
			Run()
		return strconv.FormatBool(checked), err

	default:
		value := p.Default
		err := huh.NewInput().
			Title(title).
			Placeholder(p.Default).
			Value(&value).
			Run()
		return value, err
	}
}
