// Package config provides infrastructure for loading batch manifests.
// This package handles YAML parsing, file I/O, and variable substitution.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	"github.com/shaderplay/shaderplay/internal/domain/entities"
)

// ManifestLoader handles loading batch manifests from YAML files.
// It implements ports.ManifestLoader.
type ManifestLoader struct {
	substitutor *VariableSubstitutor
}

// NewManifestLoader creates a new manifest loader.
func NewManifestLoader() *ManifestLoader {
	return &ManifestLoader{substitutor: NewVariableSubstitutor()}
}

// LoadManifest loads, expands and validates a manifest.
// Relative job sources resolve against the manifest's directory.
func (l *ManifestLoader) LoadManifest(path string) (*entities.Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", path, err)
	}

	// Security: os.OpenRoot confines the open to the manifest directory
	root, err := os.OpenRoot(filepath.Dir(absPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest directory: %w", err)
	}
	defer func() {
		_ = root.Close()
	}()

	file, err := root.Open(filepath.Base(absPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	m, err := l.LoadManifestFromReader(file)
	if err != nil {
		return nil, err
	}
	m.BaseDir = filepath.Dir(absPath)
	return m, nil
}

// LoadManifestFromReader loads a manifest from an io.Reader.
func (l *ManifestLoader) LoadManifestFromReader(r io.Reader) (*entities.Manifest, error) {
	var m entities.Manifest

	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest YAML: %w", err)
	}

	m.ApplyDefaults()

	if err := l.substitutor.Substitute(&m); err != nil {
		return nil, fmt.Errorf("variable substitution failed: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}

	if _, err := semver.NewVersion(m.Metadata.Version); err != nil {
		return nil, fmt.Errorf("manifest validation failed: version %q is not semver: %w", m.Metadata.Version, err)
	}

	return &m, nil
}
