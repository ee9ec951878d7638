// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dailynotes locates date-named notes in a vault. A note's location
// is given by path patterns in which YYYY, MM, and DD stand for the
// zero-padded year, month, and day, such as "Daily/YYYY-MM-DD.md".
package dailynotes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/mdtasks/internal/files"
	"github.com/pdiddy/mdtasks/internal/walk"
	"github.com/pdiddy/mdtasks/pkg/types"
)

// Search limits.
const (
	MaxRangeDays     = 365
	DefaultRangeDays = 30
	DefaultLimit     = 100
)

// Sort orders accepted by Search.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ErrInvalidQuery is wrapped by errors for malformed dates, ranges, and
// sort orders.
var ErrInvalidQuery = errors.New("invalid daily note query")

// Expand substitutes d into pattern.
func Expand(pattern string, d types.Date) string {
	s := d.String()
	r := strings.NewReplacer("YYYY", s[0:4], "MM", s[5:7], "DD", s[8:10])
	return r.Replace(pattern)
}

// Note is a daily note found by Search. FilePath is relative to the vault
// root.
type Note struct {
	Date     types.Date `json:"date" yaml:"date"`
	FilePath string     `json:"file_path" yaml:"file_path"`
	FileName string     `json:"file_name" yaml:"file_name"`
	Content  *string    `json:"content,omitempty" yaml:"content,omitempty"`
	Error    string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// GetResult is the answer to Get. A missing note is reported with Found
// false, not as an error.
type GetResult struct {
	Found    bool       `json:"found" yaml:"found"`
	Date     types.Date `json:"date" yaml:"date"`
	FilePath string     `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	FileName string     `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Content  *string    `json:"content,omitempty" yaml:"content,omitempty"`
}

// SearchResult is the answer to Search. TotalCount counts the notes found
// before the limit; DatesSearched counts the days in the range.
type SearchResult struct {
	Notes         []Note `json:"notes" yaml:"notes"`
	TotalCount    int    `json:"total_count" yaml:"total_count"`
	DatesSearched int    `json:"dates_searched" yaml:"dates_searched"`
}

// SearchOptions bounds a Search. Zero dates take defaults: End is Today
// and Start is DefaultRangeDays days back from End, inclusive.
type SearchOptions struct {
	Start          types.Date
	End            types.Date
	Limit          int
	Sort           string
	IncludeContent bool

	// Today is the current date. Zero uses the local clock.
	Today types.Date
}

// Finder resolves dates to notes under Root. Options.Exclude receives
// paths relative to Root; Options.Extensions limits which notes can be
// read.
type Finder struct {
	Root     string
	Patterns []string
	Options  walk.Options
}

// Find returns the path, relative to Root, of the note for d. Excluded
// files and paths leaving the vault are ignored. When patterns name more
// than one distinct file the date is ambiguous: Find warns and reports
// false.
func (f Finder) Find(d types.Date) (string, bool) {
	var (
		found []string
		infos []os.FileInfo
	)
	for _, pattern := range f.Patterns {
		rel := filepath.ToSlash(filepath.Clean(filepath.FromSlash(Expand(pattern, d))))
		full, err := files.Resolve(f.Root, rel)
		if err != nil {
			continue
		}
		info, err := os.Stat(full)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if f.Options.Exclude != nil && f.Options.Exclude(rel) {
			continue
		}
		if slices.ContainsFunc(infos, func(seen os.FileInfo) bool { return os.SameFile(seen, info) }) {
			continue
		}
		found = append(found, rel)
		infos = append(infos, info)
	}

	switch len(found) {
	case 0:
		return "", false
	case 1:
		return found[0], true
	}
	w := f.Options.Warnings
	if w == nil {
		w = io.Discard
	}
	fmt.Fprintf(w, "warning: skipped %s: several daily notes match: %s\n", d, strings.Join(found, ", "))
	return "", false
}

// Get returns the note for d with its content.
func (f Finder) Get(ctx context.Context, d types.Date) (GetResult, error) {
	res := GetResult{Date: d}
	rel, ok := f.Find(d)
	if !ok {
		return res, nil
	}

	read, err := files.Read(ctx, f.Root, []string{rel}, files.ReadOptions{Options: f.Options, ContinueOnError: true})
	if err != nil {
		return GetResult{}, err
	}
	if r := read.Files[0]; r.Success {
		res.Found = true
		res.FilePath = rel
		res.FileName = r.FileName
		res.Content = r.Content
	}
	return res, nil
}

// Search returns the notes dated within the inclusive range opts describes,
// newest first unless opts.Sort is SortAsc. The range may span at most
// MaxRangeDays days. A non-positive Limit uses DefaultLimit.
func (f Finder) Search(ctx context.Context, opts SearchOptions) (SearchResult, error) {
	today := opts.Today
	if today.IsZero() {
		today = types.DateOf(time.Now())
	}
	end := opts.End
	if end.IsZero() {
		end = today
	}
	start := opts.Start
	if start.IsZero() {
		start = end.AddDays(1 - DefaultRangeDays)
	}
	if start.After(end) {
		return SearchResult{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidQuery, start, end)
	}
	days := start.DaysUntil(end) + 1
	if days > MaxRangeDays {
		return SearchResult{}, fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidQuery, days, MaxRangeDays)
	}
	desc := true
	switch opts.Sort {
	case "", SortDesc:
	case SortAsc:
		desc = false
	default:
		return SearchResult{}, fmt.Errorf("%w: sort must be %q or %q", ErrInvalidQuery, SortAsc, SortDesc)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	notes := []Note{}
	for d := start; !d.After(end); d = d.AddDays(1) {
		if err := ctx.Err(); err != nil {
			return SearchResult{}, err
		}
		if rel, ok := f.Find(d); ok {
			notes = append(notes, Note{Date: d, FilePath: rel, FileName: filepath.Base(filepath.FromSlash(rel))})
		}
	}
	if desc {
		slices.Reverse(notes)
	}

	res := SearchResult{TotalCount: len(notes), DatesSearched: days}
	if len(notes) > limit {
		notes = notes[:limit]
	}
	if opts.IncludeContent && len(notes) > 0 {
		if err := f.fill(ctx, notes); err != nil {
			return SearchResult{}, err
		}
	}
	res.Notes = notes
	return res, nil
}

func (f Finder) fill(ctx context.Context, notes []Note) error {
	paths := make([]string, len(notes))
	for i, n := range notes {
		paths[i] = n.FilePath
	}
	read, err := files.Read(ctx, f.Root, paths, files.ReadOptions{Options: f.Options, ContinueOnError: true})
	if err != nil {
		return err
	}
	for i, r := range read.Files {
		if r.Success {
			notes[i].Content = r.Content
		} else {
			notes[i].Error = r.Error
		}
	}
	return nil
}
