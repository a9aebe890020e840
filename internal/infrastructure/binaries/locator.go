// Package binaries locates installed compiler executables.
package binaries

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
)

// Locator resolves tool executables laid out as <root>/<tool>/<version>/<executable>.
// It implements ports.BinaryLocator.
type Locator struct {
	root     string
	goos     string
	lookPath func(string) (string, error)
}

// NewLocator creates a locator rooted at root. An empty root only searches PATH.
func NewLocator(root string) *Locator {
	return &Locator{
		root:     root,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
	}
}

// Resolve returns the absolute path of executable for tool at version.
//
// version may be an exact directory name, "latest" (or empty) for the highest
// semver directory, or a semver constraint such as "~11.1". Only latest falls
// back to PATH when nothing is installed under the root.
func (l *Locator) Resolve(tool, version, executable string) (string, error) {
	exe := l.executableName(executable)
	latest := version == "" || version == compiler.LatestVersion
	var searched []string

	if l.root != "" {
		toolDir := filepath.Join(l.root, tool)

		if !latest {
			candidate := filepath.Join(toolDir, version, exe)
			searched = append(searched, candidate)
			if isFile(candidate) {
				return filepath.Abs(candidate)
			}
		}

		if dir, ok := l.bestVersionDir(toolDir, version, latest); ok {
			candidate := filepath.Join(toolDir, dir, exe)
			searched = append(searched, candidate)
			if isFile(candidate) {
				return filepath.Abs(candidate)
			}
		}
	}

	if latest {
		searched = append(searched, "$PATH")
		if p, err := l.lookPath(exe); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", apperrors.NewBinaryNotFoundError(tool, version, exe, searched...)
}

func (l *Locator) bestVersionDir(toolDir, version string, latest bool) (string, bool) {
	entries, err := os.ReadDir(toolDir)
	if err != nil {
		return "", false
	}

	var constraint *semver.Constraints
	if !latest {
		constraint, err = semver.NewConstraint(version)
		if err != nil {
			return "", false
		}
	}

	var (
		bestDir string
		best    *semver.Version
	)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := semver.NewVersion(e.Name())
		if err != nil {
			continue
		}
		if constraint != nil && !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestDir = v, e.Name()
		}
	}
	return bestDir, best != nil
}

func (l *Locator) executableName(executable string) string {
	if l.goos == "windows" && !strings.HasSuffix(strings.ToLower(executable), ".exe") {
		return executable + ".exe"
	}
	return executable
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
