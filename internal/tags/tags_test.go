// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tags

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdtasks/internal/exclude"
	"github.com/pdiddy/mdtasks/internal/walk"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"sequence", "---\ntitle: Note\ntags:\n  - rust\n  - programming\n---\n# Body\n", []string{"rust", "programming"}},
		{"flow sequence", "---\ntags: [a, b]\n---\n", []string{"a", "b"}},
		{"single string", "---\ntags: solo\n---\n", []string{"solo"}},
		{"blank entries dropped", "---\ntags:\n  - ok\n  - \"\"\n  - \"  \"\n---\n", []string{"ok"}},
		{"empty string tag", "---\ntags: \"\"\n---\n", nil},
		{"non-string entries dropped", "---\ntags: [1, true, real]\n---\n", []string{"real"}},
		{"no tags key", "---\ntitle: x\n---\n", nil},
		{"no frontmatter", "# Title\ntags: [a]\n", nil},
		{"unterminated", "---\ntags: [a]\n", nil},
		{"frontmatter not first", "\n---\ntags: [a]\n---\n", nil},
		{"bom", "\xef\xbb\xbf---\ntags: [a]\n---\n", []string{"a"}},
		{"crlf", "---\r\ntags: [a]\r\n---\r\n", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromContent([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromContentInvalidYAML(t *testing.T) {
	_, err := FromContent([]byte("---\ntags: [unclosed\n---\n"))
	assert.Error(t, err)
}

func vault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "---\ntags: [rust, Programming]\n---\n")
	writeFile(t, filepath.Join(root, "b.md"), "---\ntags: [rust, rust, web]\n---\n")
	writeFile(t, filepath.Join(root, "c.md"), "---\ntags: programming\n---\n")
	writeFile(t, filepath.Join(root, "d.md"), "no frontmatter\n")
	writeFile(t, filepath.Join(root, "Archive", "old.md"), "---\ntags: [rust, archived]\n---\n")
	writeFile(t, filepath.Join(root, "e.txt"), "---\ntags: [rust]\n---\n")
	return root
}

func TestList(t *testing.T) {
	root := vault(t)

	res, err := List(context.Background(), root, walk.Options{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []TagCount{
		{Tag: "rust", DocumentCount: 3},
		{Tag: "Programming", DocumentCount: 1},
		{Tag: "archived", DocumentCount: 1},
		{Tag: "programming", DocumentCount: 1},
		{Tag: "web", DocumentCount: 1},
	}, res.Tags)
	assert.Equal(t, 5, res.Total)
	assert.False(t, res.Truncated)
}

func TestListLimitAndExclusion(t *testing.T) {
	root := vault(t)
	m, err := exclude.New([]string{"Archive"})
	require.NoError(t, err)

	res, err := List(context.Background(), root, walk.Options{Exclude: m.Match}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []TagCount{
		{Tag: "rust", DocumentCount: 2},
		{Tag: "Programming", DocumentCount: 1},
	}, res.Tags)
	assert.Equal(t, 4, res.Total)
	assert.True(t, res.Truncated)
}

func TestListMinCount(t *testing.T) {
	root := vault(t)

	res, err := List(context.Background(), root, walk.Options{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []TagCount{{Tag: "rust", DocumentCount: 3}}, res.Tags)
	assert.Equal(t, 5, res.Total)
	assert.False(t, res.Truncated)
}

func TestUnique(t *testing.T) {
	root := vault(t)
	ctx := context.Background()

	got, err := Unique(ctx, root, walk.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Programming", "archived", "programming", "rust", "web"}, got)

	got, err = Unique(ctx, filepath.Join(root, "d.md"), walk.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestListWorkerCounts(t *testing.T) {
	root := vault(t)
	for _, workers := range []int{-2, 0, 3} {
		res, err := List(context.Background(), root, walk.Options{Workers: workers}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 5, res.Total, "workers=%d", workers)
	}
}

func TestListSkipsBadFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.md"), "---\ntags: [oops\n---\n")
	writeFile(t, filepath.Join(root, "good.md"), "---\ntags: [fine]\n---\n")

	var warn bytes.Buffer
	res, err := List(context.Background(), root, walk.Options{Warnings: &warn}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []TagCount{{Tag: "fine", DocumentCount: 1}}, res.Tags)
	assert.Contains(t, warn.String(), "bad.md")
}

func TestSearch(t *testing.T) {
	root := vault(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		tags     []string
		matchAll bool
		want     []string
	}{
		{"or", []string{"web", "programming"}, false, []string{"a.md", "b.md", "c.md"}},
		{"and", []string{"rust", "programming"}, true, []string{"a.md"}},
		{"case-insensitive", []string{"RUST"}, false, []string{"old.md", "a.md", "b.md"}},
		{"no match", []string{"nothing"}, false, []string{}},
		{"no search tags", nil, false, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Search(ctx, root, walk.Options{}, tt.tags, tt.matchAll)
			require.NoError(t, err)
			names := make([]string, len(got))
			for i, f := range got {
				names[i] = f.FileName
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSearchReportsTags(t *testing.T) {
	root := vault(t)
	m, err := exclude.New([]string{"Archive"})
	require.NoError(t, err)

	got, err := Search(context.Background(), root, walk.Options{Exclude: m.Match}, []string{"Rust", "web"}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(root, "b.md"), got[0].FilePath)
	assert.Equal(t, []string{"rust", "web"}, got[0].MatchedTags)
	assert.Equal(t, []string{"rust", "rust", "web"}, got[0].AllTags)
}

func TestSearchSingleFileRoot(t *testing.T) {
	root := vault(t)
	got, err := Search(context.Background(), filepath.Join(root, "c.md"), walk.Options{}, []string{"programming"}, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c.md", got[0].FileName)
}

func TestListMissingRoot(t *testing.T) {
	_, err := List(context.Background(), filepath.Join(t.TempDir(), "nope"), walk.Options{}, 0, 0)
	assert.ErrorIs(t, err, walk.ErrRootNotFound)
}
