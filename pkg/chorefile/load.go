// SPDX-License-Identifier: MPL-2.0

package chorefile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the chorefile looked up when no path is given.
const DefaultFileName = "chorefile"

var (
	// ErrLoad is the sentinel error for failures reading a source or its imports.
	ErrLoad = errors.New("chorefile load error")
	// ErrNotFound is the sentinel error when no chorefile can be located.
	ErrNotFound = errors.New("no chorefile found")
)

type (
	// MissingImportError is returned when a required import names a source
	// that does not exist. Optional imports contribute nothing instead.
	MissingImportError struct {
		ImporterPath string
		Line         int
		Path         string
	}

	// ImportCycleError is returned when sources import each other.
	ImportCycleError struct {
		Chain []string
	}
)

// Error implements the error interface.
func (e *MissingImportError) Error() string {
	return fmt.Sprintf("%s:%d: imported chorefile %q does not exist", e.ImporterPath, e.Line, e.Path)
}

// Unwrap returns ErrLoad so callers can use errors.Is for programmatic detection.
func (e *MissingImportError) Unwrap() error { return ErrLoad }

// Error implements the error interface.
func (e *ImportCycleError) Error() string {
	return fmt.Sprintf("import cycle: %s", strings.Join(e.Chain, " -> "))
}

// Unwrap returns ErrLoad so callers can use errors.Is for programmatic detection.
func (e *ImportCycleError) Unwrap() error { return ErrLoad }

// Load reads the chorefile at path and, recursively, every chorefile it
// imports. The returned slice is ordered for a left-fold merge: each file's
// imports precede it (depth-first, in declaration order) and the root file
// comes last, so later entries override earlier ones and local definitions
// win over imported ones.
//
// A file imported more than once along different paths contributes a single
// copy at its first position. Imports that cycle back to a file still being
// loaded are an error.
func Load(path string) ([]*Chorefile, error) {
	l := &loader{
		seen:   make(map[string]bool),
		active: make(map[string]bool),
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve path %q: %w", ErrLoad, path, err)
	}
	files, err := l.load(abs, nil)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Find locates the chorefile to load when no explicit path is given: the
// default file name in dir or, failing that, in each parent directory up
// to the filesystem root.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: resolve directory %q: %w", ErrLoad, dir, err)
	}
	for {
		candidate := filepath.Join(abs, DefaultFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%w in %q or any parent directory", ErrNotFound, dir)
		}
		abs = parent
	}
}

type loader struct {
	// seen holds files already fully loaded (diamond imports are deduplicated).
	seen map[string]bool
	// active holds files currently being loaded (for cycle detection).
	active map[string]bool
}

func (l *loader) load(path string, chain []string) ([]*Chorefile, error) {
	if l.active[path] {
		return nil, &ImportCycleError{Chain: append(append([]string{}, chain...), path)}
	}
	if l.seen[path] {
		return nil, nil
	}
	l.active[path] = true
	defer func() {
		delete(l.active, path)
		l.seen[path] = true
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", ErrLoad, path, err)
	}
	cf, parseErr := Parse(f, path)
	closeErr := f.Close()
	if parseErr != nil {
		return nil, parseErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: close %q: %w", ErrLoad, path, closeErr)
	}

	chain = append(chain, path)
	var files []*Chorefile
	for _, imp := range cf.Imports {
		target := imp.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		if _, err := os.Stat(target); err != nil {
			if imp.Optional && os.IsNotExist(err) {
				slog.Debug("optional import absent, skipping", "importer", path, "import", imp.Path)
				continue
			}
			if os.IsNotExist(err) {
				return nil, &MissingImportError{ImporterPath: path, Line: imp.Line, Path: imp.Path}
			}
			return nil, fmt.Errorf("%w: stat %q: %w", ErrLoad, target, err)
		}
		imported, err := l.load(target, chain)
		if err != nil {
			return nil, err
		}
		files = append(files, imported...)
	}

	return append(files, cf), nil
}
