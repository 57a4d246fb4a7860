// Package scratch manages the ephemeral working directories the converter
// stages files in. A Dir is acquired once, owned by exactly one run, and
// removed by Release on every exit path, so no scratch tree ever outlives
// the process.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a scoped temporary directory. Acquire it with New and defer Release
// immediately; Release is safe to call more than once.
type Dir struct {
	path     string
	released bool
}

// New creates a fresh temporary directory using the given name pattern (see
// os.MkdirTemp) under the system temp root.
func New(pattern string) (*Dir, error) {
	path, err := os.MkdirTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory's absolute path.
func (d *Dir) Path() string {
	return d.path
}

// Join returns the given path elements joined below the directory.
func (d *Dir) Join(elem ...string) string {
	return filepath.Join(append([]string{d.path}, elem...)...)
}

// Release removes the directory and everything below it. The first call wins;
// later calls are no-ops. A nil receiver is also a no-op, so callers can
// defer Release on a Dir that may never have been acquired.
func (d *Dir) Release() error {
	if d == nil || d.released {
		return nil
	}
	d.released = true
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("failed to remove scratch directory %s: %w", d.path, err)
	}
	return nil
}
