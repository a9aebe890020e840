package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/spf13/cobra"
)

var compilersFormat string

// compilersCmd lists the registered compilers and their parameters.
var compilersCmd = &cobra.Command{
	Use:   "compilers",
	Short: "List available compilers and their arguments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctr, err := newContainer()
		if err != nil {
			return err
		}
		return renderCompilers(cmd.OutOrStdout(), ctr.Compilers().List(), compilersFormat)
	},
}

func init() {
	compilersCmd.Flags().StringVar(&compilersFormat, "format", "text", "Output format: text, json")
	rootCmd.AddCommand(compilersCmd)
}

type compilerView struct {
	Name           string               `json:"name"`
	DisplayName    string               `json:"display_name"`
	URL            string               `json:"url"`
	Description    string               `json:"description"`
	InputLanguages []values.Language    `json:"input_languages"`
	Parameters     []compiler.Parameter `json:"parameters"`
}

func renderCompilers(w io.Writer, cs []compiler.Compiler, format string) error {
	switch format {
	case "json":
		views := make([]compilerView, 0, len(cs))
		for _, c := range cs {
			views = append(views, compilerView{
				Name:           c.Name(),
				DisplayName:    c.DisplayName(),
				URL:            c.URL(),
				Description:    c.Description(),
				InputLanguages: c.InputLanguages(),
				Parameters:     c.Parameters(),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "text", "":
		renderCompilersText(w, cs)
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid: text, json)", format)
	}
}

//nolint:errcheck // Best-effort terminal output
func renderCompilersText(w io.Writer, cs []compiler.Compiler) {
	for i, c := range cs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", c.Name(), c.DisplayName())
		fmt.Fprintf(w, "  %s\n", c.Description())
		fmt.Fprintf(w, "  %s\n", c.URL())

		langs := make([]string, 0, len(c.InputLanguages()))
		for _, l := range c.InputLanguages() {
			langs = append(langs, l.String())
		}
		fmt.Fprintf(w, "  Input: %s\n", strings.Join(langs, ", "))

		fmt.Fprintln(w, "  Arguments:")
		for _, p := range c.Parameters() {
			line := fmt.Sprintf("    %-16s %-9s default %q", p.Name, p.Kind, p.Default)
			if len(p.Options) > 0 {
				line += " [" + strings.Join(p.Options, " | ") + "]"
			}
			if p.Filter != nil {
				line += fmt.Sprintf(" (when %s=%s)", p.Filter.Name, p.Filter.Value)
			}
			fmt.Fprintln(w, line)
		}
	}
}
