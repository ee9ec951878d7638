// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pdiddy/mdtasks/internal/walk"
)

// Node is one entry in a directory tree. Path is relative to the vault
// root with forward slashes; the vault root itself has an empty Path.
type Node struct {
	Name        string `json:"name" yaml:"name"`
	Path        string `json:"path" yaml:"path"`
	IsDirectory bool   `json:"is_directory" yaml:"is_directory"`
	SizeBytes   *int64 `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	Children    []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree is the answer to List. The directory listed counts toward
// TotalDirectories.
type Tree struct {
	Root             Node   `json:"root" yaml:"root"`
	VisualTree       string `json:"visual_tree" yaml:"visual_tree"`
	TotalFiles       int    `json:"total_files" yaml:"total_files"`
	TotalDirectories int    `json:"total_directories" yaml:"total_directories"`
}

// TreeOptions configures List. Exclude receives paths relative to the
// vault root; Extensions is ignored, every file is listed.
type TreeOptions struct {
	walk.Options

	// MaxDepth is the number of directory levels expanded below the listed
	// directory. Zero or less expands everything.
	MaxDepth int

	// IncludeSizes fills SizeBytes on file nodes.
	IncludeSizes bool
}

type treeBuilder struct {
	root  string
	opts  TreeOptions
	warn  io.Writer
	files int
	dirs  int
}

// List builds the tree under dir, which must lie inside root. Entries whose
// name starts with a dot are hidden. Directories sort before files, then
// by name. Symlinks are listed as files and not followed.
func List(ctx context.Context, root, dir string, opts TreeOptions) (Tree, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Tree{}, fmt.Errorf("reading %s: %w", dir, err)
	}

	b := &treeBuilder{root: root, opts: opts, warn: opts.Warnings}
	if b.warn == nil {
		b.warn = io.Discard
	}

	var node Node
	if info.IsDir() {
		node, err = b.dir(ctx, dir, 0)
		if err != nil {
			return Tree{}, err
		}
	} else {
		node = b.file(dir, info.Size())
	}

	node.Name = displayName(dir)
	return Tree{
		Root:             node,
		VisualTree:       Visual(node),
		TotalFiles:       b.files,
		TotalDirectories: b.dirs,
	}, nil
}

func (b *treeBuilder) dir(ctx context.Context, path string, depth int) (Node, error) {
	if err := ctx.Err(); err != nil {
		return Node{}, err
	}
	b.dirs++
	n := Node{Name: filepath.Base(path), Path: b.rel(path), IsDirectory: true}
	if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
		return n, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if depth == 0 {
			return Node{}, fmt.Errorf("reading %s: %w", path, err)
		}
		fmt.Fprintf(b.warn, "warning: could not read directory %s: %v\n", path, err)
		return n, nil
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		child := filepath.Join(path, e.Name())
		if b.opts.Exclude != nil && b.opts.Exclude(Rel(b.root, child)) {
			continue
		}
		if e.IsDir() {
			c, err := b.dir(ctx, child, depth+1)
			if err != nil {
				return Node{}, err
			}
			n.Children = append(n.Children, c)
			continue
		}
		var size int64
		if b.opts.IncludeSizes {
			if info, err := e.Info(); err == nil {
				size = info.Size()
			}
		}
		n.Children = append(n.Children, b.file(child, size))
	}

	slices.SortFunc(n.Children, func(x, y Node) int {
		if x.IsDirectory != y.IsDirectory {
			if x.IsDirectory {
				return -1
			}
			return 1
		}
		return strings.Compare(x.Name, y.Name)
	})
	return n, nil
}

func (b *treeBuilder) file(path string, size int64) Node {
	b.files++
	n := Node{Name: filepath.Base(path), Path: b.rel(path)}
	if b.opts.IncludeSizes {
		n.SizeBytes = &size
	}
	return n
}

func (b *treeBuilder) rel(path string) string {
	rel := Rel(b.root, path)
	if rel == "." {
		return ""
	}
	return rel
}

func displayName(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Base(path)
}

// Visual renders n as an indented outline, two spaces per level, with a
// trailing slash on directories.
func Visual(n Node) string {
	var sb strings.Builder
	writeVisual(&sb, n, 0)
	return sb.String()
}

func writeVisual(sb *strings.Builder, n Node, level int) {
	sb.WriteString(strings.Repeat("  ", level))
	sb.WriteString(n.Name)
	if n.IsDirectory {
		sb.WriteByte('/')
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		writeVisual(sb, c, level+1)
	}
}
