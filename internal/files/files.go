// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package files browses and reads the notes in a vault. Every path a
// caller supplies is relative to the vault root and must stay inside it
// once symlinks are resolved.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pdiddy/mdtasks/internal/walk"
)

// ErrInvalidPath is wrapped by errors for caller-supplied paths that do not
// exist, escape the vault, or name a file type that cannot be read.
var ErrInvalidPath = errors.New("invalid path")

// Resolve joins rel onto root and returns the joined path. It fails with
// ErrInvalidPath when the target does not exist or resolves outside root,
// and with walk.ErrRootNotFound when root itself is missing.
func Resolve(root, rel string) (string, error) {
	base, err := filepath.EvalSymlinks(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", root, walk.ErrRootNotFound)
		}
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	target, err := filepath.EvalSymlinks(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: not found", ErrInvalidPath, rel)
		}
		return "", fmt.Errorf("resolving %s: %w", rel, err)
	}
	if !within(base, target) {
		return "", fmt.Errorf("%w: %s: must be within the vault", ErrInvalidPath, rel)
	}
	return full, nil
}

// Rel returns path relative to root with forward slashes.
func Rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
