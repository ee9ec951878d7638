// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package walk enumerates Markdown files under a root and aggregates the
// tasks extracted from each one.
//
// Files are enumerated in lexicographic path order and parsed by a bounded
// pool of workers; results are concatenated in enumeration order, so the
// output does not depend on scheduling. A file that cannot be read or is
// not valid UTF-8 is skipped with a warning and contributes no tasks.
package walk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/pdiddy/mdtasks/internal/extract"
	"github.com/pdiddy/mdtasks/pkg/types"
)

// ErrRootNotFound is returned when the root path does not exist.
var ErrRootNotFound = errors.New("path does not exist")

// ExcludeFunc reports whether a path should be skipped. It receives the
// path relative to the walk root with forward slashes. An excluded
// directory is not descended into.
type ExcludeFunc func(rel string) bool

// Options configures a walk.
type Options struct {
	// Exclude skips matching paths. Nil excludes nothing.
	Exclude ExcludeFunc

	// Extensions lists the file extensions to parse, including the dot.
	// Empty means ".md". Comparison is case-insensitive.
	Extensions []string

	// Workers bounds concurrent file parsing. Zero or less uses GOMAXPROCS.
	Workers int

	// Warnings receives one line per skipped file or directory. Nil
	// discards them.
	Warnings io.Writer
}

func (o Options) warnings() io.Writer {
	if o.Warnings == nil {
		return io.Discard
	}
	return o.Warnings
}

// Concurrency returns the goroutine bound for a worker pool. Negative
// Workers values map to zero, which the pool reads as GOMAXPROCS.
func (o Options) Concurrency() int {
	return max(o.Workers, 0)
}

// Selects reports whether path has one of the configured extensions.
func (o Options) Selects(path string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = []string{types.DefaultExtension}
	}
	ext := filepath.Ext(path)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Files returns the paths of the files under root that opts selects, in
// lexicographic order. A root that is a file is returned alone when its
// extension is selected.
func Files(ctx context.Context, root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, ErrRootNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		if opts.Selects(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	w := opts.warnings()
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			fmt.Fprintf(w, "warning: could not read directory %s: %v\n", path, err)
			return fs.SkipDir
		}
		if path == root {
			return nil
		}

		if opts.Exclude != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && opts.Exclude(filepath.ToSlash(rel)) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}
		if d.Type().IsRegular() || d.Type()&fs.ModeSymlink != 0 {
			if opts.Selects(path) {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// fileResult is the outcome of parsing one file.
type fileResult struct {
	tasks []types.Task
	err   error
}

// Extract walks root and returns the tasks of every selected file. Within a
// file tasks follow line order; files follow lexicographic path order.
// Files that fail to parse are reported on opts.Warnings and skipped.
func Extract(ctx context.Context, e *extract.Extractor, root string, opts Options) ([]types.Task, error) {
	files, err := Files(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	mapper := iter.Mapper[string, fileResult]{MaxGoroutines: opts.Concurrency()}
	results := mapper.Map(files, func(path *string) fileResult {
		if err := ctx.Err(); err != nil {
			return fileResult{err: err}
		}
		tasks, err := e.ParseFile(*path)
		return fileResult{tasks: tasks, err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := opts.warnings()
	all := []types.Task{}
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "warning: skipped %v\n", r.err)
			continue
		}
		all = append(all, r.tasks...)
	}
	return all, nil
}
