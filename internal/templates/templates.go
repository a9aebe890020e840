// Package templates provides embedded templates for manifest scaffolding.
package templates

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed manifest/*.tmpl
var manifestTemplates embed.FS

// ManifestData contains the data used to render a batch manifest.
type ManifestData struct {
	// FileName is where the manifest will be written, echoed in its header
	FileName    string
	Name        string
	Version     string
	Description string
	// DefaultCompiler is written once under defaults; jobs only repeat a different one
	DefaultCompiler string
	Jobs            []JobData
}

// JobData is one job of a generated manifest.
type JobData struct {
	Arguments map[string]string
	ID        string
	Source    string
	Compiler  string
}

// ManifestTemplates returns the parsed manifest templates.
func ManifestTemplates() (*template.Template, error) {
	tmpl := template.New("")

	err := fs.WalkDir(manifestTemplates, "manifest", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := manifestTemplates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		// Use filename without .tmpl as template name
		name := strings.TrimPrefix(path, "manifest/")
		name = strings.TrimSuffix(name, ".tmpl")

		_, err = tmpl.New(name).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	return tmpl, nil
}

// TemplateFiles returns the list of template names for a scaffold kind.
func TemplateFiles(kind string) ([]string, error) {
	switch kind {
	case "manifest":
		return []string{"manifest.yaml"}, nil
	default:
		return nil, fmt.Errorf("unsupported scaffold: %s", kind)
	}
}

// RenderManifest writes a batch manifest for data.
func RenderManifest(w io.Writer, data ManifestData) error {
	if len(data.Jobs) == 0 {
		return fmt.Errorf("manifest needs at least one job")
	}
	if data.Version == "" {
		data.Version = "1.0.0"
	}

	tmpl, err := ManifestTemplates()
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(w, "manifest.yaml", data); err != nil {
		return fmt.Errorf("rendering manifest: %w", err)
	}
	return nil
}
