// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package walk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdtasks/internal/exclude"
	"github.com/pdiddy/mdtasks/internal/extract"
	"github.com/pdiddy/mdtasks/pkg/types"
)

// --- test helpers ---

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newExtractor(t *testing.T) *extract.Extractor {
	t.Helper()
	e, err := extract.New()
	require.NoError(t, err)
	return e
}

func contents(tasks []types.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Content
	}
	return out
}

func vault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "b.md", "- [ ] b1\n- [x] b2\n")
	writeFile(t, root, "a.md", "- [ ] a1\n")
	writeFile(t, root, "Archive/old.md", "- [ ] archived\n")
	writeFile(t, root, "Projects/p.md", "text\n- [ ] p1\n  - sub\n")
	writeFile(t, root, "Projects/Archive/deep.md", "- [ ] deep archived\n")
	writeFile(t, root, "notes.txt", "- [ ] not markdown\n")
	return root
}

// --- tests ---

func TestExtractOrder(t *testing.T) {
	root := vault(t)

	tasks, err := Extract(context.Background(), newExtractor(t), root, Options{})
	require.NoError(t, err)

	// Byte order puts upper-case directory names before lower-case files.
	assert.Equal(t, []string{"archived", "deep archived", "p1", "a1", "b1", "b2"}, contents(tasks))
	assert.Equal(t, []string{"sub"}, tasks[2].SubItems)
	assert.Equal(t, 2, tasks[2].LineNumber)
	assert.Equal(t, filepath.Join(root, "Projects", "p.md"), tasks[2].FilePath)
	assert.Equal(t, "p.md", tasks[2].FileName)
}

func TestExtractExcludesSubtree(t *testing.T) {
	root := vault(t)
	m, err := exclude.New([]string{"Archive"})
	require.NoError(t, err)

	tasks, err := Extract(context.Background(), newExtractor(t), root, Options{Exclude: m.Match})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "a1", "b1", "b2"}, contents(tasks))
}

func TestExtractExcludeReceivesRelativePaths(t *testing.T) {
	root := vault(t)
	var seen []string

	_, err := Extract(context.Background(), newExtractor(t), root, Options{
		Exclude: func(rel string) bool {
			seen = append(seen, rel)
			return rel == "Projects"
		},
		Workers: 1,
	})
	require.NoError(t, err)

	assert.Contains(t, seen, "Archive/old.md")
	assert.Contains(t, seen, "Projects")
	assert.NotContains(t, seen, "Projects/p.md")
}

func TestExtractCountIndependentOfLayout(t *testing.T) {
	const n = 60
	flat := t.TempDir()
	nested := t.TempDir()

	for f := 0; f < n/4; f++ {
		var b strings.Builder
		for i := f * 4; i < f*4+4; i++ {
			fmt.Fprintf(&b, "- [ ] task %d\n", i)
		}
		writeFile(t, flat, fmt.Sprintf("f%02d.md", f), b.String())
	}
	for i := 0; i < n; i++ {
		writeFile(t, nested, fmt.Sprintf("d%d/e%d/t%02d.md", i%3, i%5, i), fmt.Sprintf("- [ ] task %d\n", i))
	}

	for _, root := range []string{flat, nested} {
		tasks, err := Extract(context.Background(), newExtractor(t), root, Options{Workers: 4})
		require.NoError(t, err)
		assert.Len(t, tasks, n)
	}
}

func TestExtractWorkerCounts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "- [ ] one\n- [x] two\n")

	for _, workers := range []int{-1, 0, 1, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			opts := Options{Workers: workers}
			assert.GreaterOrEqual(t, opts.Concurrency(), 0)

			tasks, err := Extract(context.Background(), newExtractor(t), root, opts)
			require.NoError(t, err)
			assert.Equal(t, []string{"one", "two"}, contents(tasks))
		})
	}
}

func TestExtractSkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.md", "- [ ] good\n")
	writeFile(t, root, "bad.md", "- [ ] bad \xff\n- [ ] also bad\n")

	var warnings strings.Builder
	tasks, err := Extract(context.Background(), newExtractor(t), root, Options{Warnings: &warnings})
	require.NoError(t, err)

	assert.Equal(t, []string{"good"}, contents(tasks))
	assert.Contains(t, warnings.String(), "bad.md")
	assert.Contains(t, warnings.String(), "invalid UTF-8")
}

func TestExtractSingleFileRoot(t *testing.T) {
	root := vault(t)
	e := newExtractor(t)

	tasks, err := Extract(context.Background(), e, filepath.Join(root, "b.md"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, contents(tasks))

	tasks, err = Extract(context.Background(), e, filepath.Join(root, "notes.txt"), Options{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestExtractExtensions(t *testing.T) {
	root := vault(t)
	writeFile(t, root, "upper.MD", "- [ ] upper\n")
	writeFile(t, root, "long.markdown", "- [ ] long\n")

	tasks, err := Extract(context.Background(), newExtractor(t), root, Options{Extensions: []string{".markdown", ".txt"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"long", "not markdown"}, contents(tasks))

	tasks, err = Extract(context.Background(), newExtractor(t), root, Options{})
	require.NoError(t, err)
	assert.Contains(t, contents(tasks), "upper")
}

func TestExtractMissingRoot(t *testing.T) {
	_, err := Extract(context.Background(), newExtractor(t), filepath.Join(t.TempDir(), "nope"), Options{})
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestExtractEmptyDirectory(t *testing.T) {
	tasks, err := Extract(context.Background(), newExtractor(t), t.TempDir(), Options{})
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestExtractCancelled(t *testing.T) {
	root := vault(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks, err := Extract(ctx, newExtractor(t), root, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tasks)
}

func TestFiles(t *testing.T) {
	root := vault(t)

	files, err := Files(context.Background(), root, Options{})
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"Archive/old.md", "Projects/Archive/deep.md", "Projects/p.md", "a.md", "b.md"}, rel)
}
