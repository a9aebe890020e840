package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/values"
	"github.com/shaderplay/shaderplay/internal/infrastructure/compilers/glslang"
	"github.com/shaderplay/shaderplay/internal/infrastructure/compilers/spirvcross"
	"github.com/shaderplay/shaderplay/internal/templates"
	"github.com/spf13/cobra"
)

var (
	initOutput string
	initName   string
	initForce  bool

	nonIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
)

// Stage suffixes glslang recognizes on GLSL sources.
var stageByExtension = map[string]string{
	".vert": "vert",
	".tesc": "tesc",
	".tese": "tese",
	".geom": "geom",
	".frag": "frag",
	".comp": "comp",
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Generate a batch manifest from the shaders in a directory",
	Long: `Scan a directory for shader sources and write a manifest with one job
per file. GLSL and HLSL sources are compiled with glslang, SPIR-V binaries
are cross-compiled with spirv-cross.`,
	Example: `  shaderplay init
  shaderplay init shaders/ --output shaders/shaderplay.yaml --name post-effects`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runInit(dir)
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "shaderplay.yaml", "Output file path")
	initCmd.Flags().StringVar(&initName, "name", "", "Manifest name (default: directory name)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing manifest")

	rootCmd.AddCommand(initCmd)
}

func runInit(dir string) error {
	if !initForce {
		if _, err := os.Stat(initOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
		}
	}

	// Sources are written relative to the manifest, which is where batch resolves them.
	manifestDir, err := filepath.Abs(filepath.Dir(initOutput))
	if err != nil {
		return err
	}
	jobs, err := discoverJobs(dir, manifestDir)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no shader sources found in %s", dir)
	}

	name := initName
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(initOutput)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	err = templates.RenderManifest(file, templates.ManifestData{
		FileName:        filepath.Base(initOutput),
		Name:            name,
		Version:         "1.0.0",
		DefaultCompiler: glslang.Name,
		Jobs:            jobs,
	})
	if err != nil {
		return err
	}

	slog.Info("manifest written", "file", initOutput, "jobs", len(jobs))
	return nil
}

// discoverJobs walks root and returns one job per recognized shader source,
// with sources relative to manifestDir.
func discoverJobs(root, manifestDir string) ([]templates.JobData, error) {
	var jobs []templates.JobData
	seen := make(map[string]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		lang, err := values.LanguageFromPath(path)
		if err != nil || lang == values.LanguageMSL {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		source, err := filepath.Rel(manifestDir, abs)
		if err != nil {
			source = abs
		}
		source = filepath.ToSlash(source)

		id := jobID(source, seen)
		jobs = append(jobs, jobFor(id, source, lang))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return jobs, nil
}

func jobFor(id, source string, lang values.Language) templates.JobData {
	job := templates.JobData{ID: id, Source: source, Compiler: glslang.Name}

	switch lang {
	case values.LanguageSPIRV:
		job.Compiler = spirvcross.Name
	case values.LanguageHLSL:
		job.Arguments = map[string]string{
			compiler.ShaderStageParameterName: "frag",
			compiler.EntryPointParameterName:  "main",
		}
	default:
		stage, ok := stageByExtension[strings.ToLower(filepath.Ext(source))]
		if !ok {
			stage = "frag"
		}
		job.Arguments = map[string]string{compiler.ShaderStageParameterName: stage}
	}
	return job
}

// jobID derives a manifest-safe, unique ID from a source path.
func jobID(source string, seen map[string]int) string {
	base := strings.TrimPrefix(source, "../")
	id := strings.Trim(nonIDChars.ReplaceAllString(base, "-"), "-")
	if id == "" {
		id = "job"
	}
	seen[id]++
	if n := seen[id]; n > 1 {
		id = fmt.Sprintf("%s-%d", id, n)
	}
	return id
}
