// Package safepath resolves user-supplied file names against a fixed root
// directory and rejects anything that would escape it, directly or through
// symlinks.
package safepath

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrOutsideRoot = errors.New("path outside root")
	ErrNotFound    = errors.New("file not found")
)

// Resolve returns the canonical on-disk path for name inside root.
// The name is rejected syntactically first (empty, "..", absolute), then the
// joined candidate is canonicalized and containment-checked against the
// canonicalized root. Raw filesystem errors never escape this function.
func Resolve(root, name string) (string, error) {
	if name == "" || strings.Contains(name, "..") || isAbsolute(name) {
		return "", ErrInvalidName
	}

	cleanRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", ErrNotFound
	}

	candidate := filepath.Join(cleanRoot, filepath.Clean(name))
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", ErrNotFound
	}

	if !contains(cleanRoot, resolved) {
		return "", ErrOutsideRoot
	}
	return resolved, nil
}

// isAbsolute also treats Windows-style names (backslash or drive prefix) as
// absolute, whatever the host separator is.
func isAbsolute(name string) bool {
	if filepath.IsAbs(name) {
		return true
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return true
	}
	return len(name) >= 2 && name[1] == ':'
}

// contains reports whether path sits under root, compared component-wise so
// that a sibling like "root-evil" never passes.
func contains(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
