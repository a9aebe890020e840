// Package tempfile provides scoped temporary files for handing shader source
// to external tools.
package tempfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
)

// File is a uniquely named temporary file holding shader source.
// Close removes the file and every sibling path handed out by SiblingPath.
type File struct {
	path     string
	siblings []string
	mu       sync.Mutex
	closed   bool
}

// FromShaderCode writes code to a new file in dir (os.TempDir when empty).
// The file extension follows the code's language.
func FromShaderCode(dir string, code compiler.ShaderCode) (*File, error) {
	f, err := os.CreateTemp(dir, "shader-*"+code.Language().FileExtension())
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(code.Bytes()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write temp file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to close temp file %s: %w", path, err)
	}

	return &File{path: path}, nil
}

// Path returns the absolute path of the source file.
func (f *File) Path() string {
	return f.path
}

// SiblingPath returns Path()+suffix and registers it for removal on Close.
func (f *File) SiblingPath(suffix string) string {
	p := f.path + suffix

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.siblings {
		if s == p {
			return p
		}
	}
	f.siblings = append(f.siblings, p)
	return p
}

// Close removes the file and its siblings. Calling Close more than once is a no-op.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	var errs []error
	for _, p := range append([]string{f.path}, f.siblings...) {
		if err := RemoveIfExists(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReadAllIfExists reads path, returning empty content when it does not exist.
func ReadAllIfExists(path string) ([]byte, error) {
	//nolint:gosec // G304: path is derived from a temp file this process created
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []byte{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// RemoveIfExists deletes path, ignoring a missing file.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
