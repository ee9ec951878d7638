// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dailynotes

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
	"github.com/pdiddy/mdtasks/pkg/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func finder(t *testing.T) Finder {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "Daily/2025-01-18.md", "# Sat\n")
	writeFile(t, root, "Daily/2025-01-20.md", "# Mon\n")
	writeFile(t, root, "2025/01/22.md", "# Wed\n")
	writeFile(t, root, "Archive/2025-01-19.md", "# archived\n")
	writeFile(t, root, "Daily/2024-12-31.md", "# NYE\n")
	return Finder{
		Root:     root,
		Patterns: []string{"Daily/YYYY-MM-DD.md", "YYYY/MM/DD.md", "Archive/YYYY-MM-DD.md"},
	}
}

func TestExpand(t *testing.T) {
	d := date(t, "2025-01-20")
	tests := []struct {
		pattern string
		want    string
	}{
		{"YYYY-MM-DD.md", "2025-01-20.md"},
		{"Daily/YYYY/MM-DD.md", "Daily/2025/01-20.md"},
		{"YYYY/MM/DD.md", "2025/01/20.md"},
		{"notes.md", "notes.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Expand(tt.pattern, d), tt.pattern)
	}
}

func TestFind(t *testing.T) {
	f := finder(t)

	rel, ok := f.Find(date(t, "2025-01-20"))
	require.True(t, ok)
	assert.Equal(t, "Daily/2025-01-20.md", rel)

	rel, ok = f.Find(date(t, "2025-01-22"))
	require.True(t, ok)
	assert.Equal(t, "2025/01/22.md", rel)

	_, ok = f.Find(date(t, "2025-01-21"))
	assert.False(t, ok)
}

func TestFindHonorsExclusion(t *testing.T) {
	f := finder(t)

	_, ok := f.Find(date(t, "2025-01-19"))
	assert.True(t, ok)

	m, err := exclude.New([]string{"Archive"})
	require.NoError(t, err)
	f.Options = walk.Options{Exclude: m.Match}
	_, ok = f.Find(date(t, "2025-01-19"))
	assert.False(t, ok)
}

func TestFindAmbiguous(t *testing.T) {
	f := finder(t)
	writeFile(t, f.Root, "2025/01/20.md", "# duplicate\n")

	var warn bytes.Buffer
	f.Options.Warnings = &warn
	_, ok := f.Find(date(t, "2025-01-20"))
	assert.False(t, ok)
	assert.Contains(t, warn.String(), "several daily notes match")
}

func TestFindIgnoresPatternsOutsideVault(t *testing.T) {
	f := finder(t)
	writeFile(t, filepath.Dir(f.Root), "2025-01-21.md", "# outside\n")
	f.Patterns = []string{"../YYYY-MM-DD.md"}

	_, ok := f.Find(date(t, "2025-01-21"))
	assert.False(t, ok)
}

func TestGet(t *testing.T) {
	f := finder(t)
	ctx := context.Background()

	res, err := f.Get(ctx, date(t, "2025-01-20"))
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "Daily/2025-01-20.md", res.FilePath)
	assert.Equal(t, "2025-01-20.md", res.FileName)
	require.NotNil(t, res.Content)
	assert.Equal(t, "# Mon\n", *res.Content)

	res, err = f.Get(ctx, date(t, "2025-01-21"))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, "2025-01-21", res.Date.String())
	assert.Nil(t, res.Content)
}

func noteDates(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Date.String()
	}
	return out
}

func TestSearch(t *testing.T) {
	f := finder(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		opts          SearchOptions
		want          []string
		total         int
		datesSearched int
	}{
		{
			name:          "default range ends today",
			opts:          SearchOptions{Today: date(t, "2025-01-22")},
			want:          []string{"2025-01-22", "2025-01-20", "2025-01-19", "2025-01-18", "2024-12-31"},
			total:         5,
			datesSearched: DefaultRangeDays,
		},
		{
			name:          "ascending window",
			opts:          SearchOptions{Start: date(t, "2025-01-18"), End: date(t, "2025-01-20"), Sort: SortAsc},
			want:          []string{"2025-01-18", "2025-01-19", "2025-01-20"},
			total:         3,
			datesSearched: 3,
		},
		{
			name:          "limit keeps newest",
			opts:          SearchOptions{Start: date(t, "2025-01-01"), End: date(t, "2025-01-31"), Limit: 2},
			want:          []string{"2025-01-22", "2025-01-20"},
			total:         4,
			datesSearched: 31,
		},
		{
			name:          "single day without note",
			opts:          SearchOptions{Start: date(t, "2025-01-21"), End: date(t, "2025-01-21")},
			want:          []string{},
			total:         0,
			datesSearched: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.Search(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, noteDates(res.Notes))
			assert.Equal(t, tt.total, res.TotalCount)
			assert.Equal(t, tt.datesSearched, res.DatesSearched)
		})
	}
}

func TestSearchIncludeContent(t *testing.T) {
	f := finder(t)
	res, err := f.Search(context.Background(), SearchOptions{
		Start:          date(t, "2025-01-18"),
		End:            date(t, "2025-01-20"),
		IncludeContent: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Notes, 3)
	require.NotNil(t, res.Notes[0].Content)
	assert.Equal(t, "# Mon\n", *res.Notes[0].Content)
	assert.Equal(t, "Archive/2025-01-19.md", res.Notes[1].FilePath)

	res, err = f.Search(context.Background(), SearchOptions{Start: date(t, "2025-01-20"), End: date(t, "2025-01-20")})
	require.NoError(t, err)
	require.Len(t, res.Notes, 1)
	assert.Nil(t, res.Notes[0].Content)
}

func TestSearchInvalid(t *testing.T) {
	f := finder(t)
	ctx := context.Background()

	for name, opts := range map[string]SearchOptions{
		"start after end": {Start: date(t, "2025-02-01"), End: date(t, "2025-01-01")},
		"range too long":  {Start: date(t, "2024-01-01"), End: date(t, "2024-12-31")},
		"unknown sort":    {Sort: "sideways"},
	} {
		_, err := f.Search(ctx, opts)
		assert.ErrorIs(t, err, ErrInvalidQuery, name)
	}

	res, err := f.Search(ctx, SearchOptions{Start: date(t, "2025-01-01"), End: date(t, "2025-12-31")})
	require.NoError(t, err)
	assert.Equal(t, MaxRangeDays, res.DatesSearched)
}
