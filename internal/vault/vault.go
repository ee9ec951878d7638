// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault ties the extraction pipeline to one scan root and one
// configuration. The CLI and the HTTP server both answer requests through
// a Vault, so they share parsing, exclusion, filtering, and limits.
//
// Subpaths in requests are relative to the root and may not leave it.
// Exclusion patterns always match against paths relative to the root, so
// narrowing a query to a subpath never re-includes an excluded file.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/pdiddy/mdtasks/internal/dailynotes"
	"github.com/pdiddy/mdtasks/internal/exclude"
	"github.com/pdiddy/mdtasks/internal/extract"
	"github.com/pdiddy/mdtasks/internal/files"
	"github.com/pdiddy/mdtasks/internal/filter"
	"github.com/pdiddy/mdtasks/internal/tags"
	"github.com/pdiddy/mdtasks/internal/walk"
	"github.com/pdiddy/mdtasks/pkg/types"
)

// ErrNoSearchTags is returned by SearchTags when no tag is given.
var ErrNoSearchTags = errors.New("at least one tag is required")

// TagQuery selects the tags reported by Tags.
type TagQuery struct {
	Subpath  string `json:"subpath" yaml:"subpath" form:"subpath"`
	MinCount int    `json:"min_count" yaml:"min_count" form:"min_count"`
	Limit    int    `json:"limit" yaml:"limit" form:"limit"`
}

// TagSearch selects the documents returned by SearchTags. A positive
// Limit caps the files returned.
type TagSearch struct {
	Tags     []string `json:"tags" yaml:"tags" form:"tags"`
	MatchAll bool     `json:"match_all" yaml:"match_all" form:"match_all"`
	Subpath  string   `json:"subpath" yaml:"subpath" form:"subpath"`
	Limit    int      `json:"limit" yaml:"limit" form:"limit"`
}

// FileQuery selects the tree returned by Files.
type FileQuery struct {
	Subpath      string `json:"subpath" yaml:"subpath" form:"subpath"`
	MaxDepth     int    `json:"max_depth" yaml:"max_depth" form:"max_depth"`
	IncludeSizes bool   `json:"include_sizes" yaml:"include_sizes" form:"include_sizes"`
}

// FileRead names the files returned by ReadFiles.
type FileRead struct {
	FilePaths       []string `json:"file_paths" yaml:"file_paths" form:"file_paths"`
	ContinueOnError bool     `json:"continue_on_error" yaml:"continue_on_error" form:"continue_on_error"`
}

// DailyNoteSearch bounds SearchDailyNotes. Dates are YYYY-MM-DD; empty
// dates take the dailynotes defaults.
type DailyNoteSearch struct {
	StartDate      string `json:"start_date" yaml:"start_date" form:"start_date"`
	EndDate        string `json:"end_date" yaml:"end_date" form:"end_date"`
	Limit          int    `json:"limit" yaml:"limit" form:"limit"`
	Sort           string `json:"sort" yaml:"sort" form:"sort"`
	IncludeContent bool   `json:"include_content" yaml:"include_content" form:"include_content"`
}

// Vault answers task, tag, file, and daily note queries over a directory
// of Markdown notes.
type Vault struct {
	root      string
	cfg       types.Config
	extractor *extract.Extractor
	exclude   *exclude.Matcher
	walkOpts  walk.Options
}

// Open prepares a Vault rooted at root. Walker warnings go to warnings;
// nil discards them. The root is not read until the first query.
func Open(root string, cfg types.Config, warnings io.Writer) (*Vault, error) {
	cfg = cfg.WithDefaults()

	e, err := extract.New()
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}
	m, err := exclude.New(cfg.ExcludePaths)
	if err != nil {
		return nil, fmt.Errorf("loading exclude_paths: %w", err)
	}

	v := &Vault{
		root:      root,
		cfg:       cfg,
		extractor: e,
		exclude:   m,
		walkOpts: walk.Options{
			Extensions: cfg.Extensions,
			Workers:    cfg.Workers,
			Warnings:   warnings,
		},
	}
	if !m.Empty() {
		v.walkOpts.Exclude = m.Match
	}
	return v, nil
}

// Root returns the scan root.
func (v *Vault) Root() string { return v.root }

// Config returns the effective configuration.
func (v *Vault) Config() types.Config { return v.cfg }

// scope resolves subpath and returns the directory to walk with walk
// options whose exclusion still matches root-relative paths.
func (v *Vault) scope(subpath string) (string, walk.Options, error) {
	if subpath == "" || subpath == "." {
		return v.root, v.walkOpts, nil
	}
	dir, err := files.Resolve(v.root, subpath)
	if err != nil {
		return "", walk.Options{}, err
	}
	opts := v.walkOpts
	if opts.Exclude != nil {
		prefix := files.Rel(v.root, dir)
		opts.Exclude = func(rel string) bool {
			return v.exclude.Match(path.Join(prefix, rel))
		}
	}
	return dir, opts, nil
}

// Tasks extracts every task under the root, keeps those matching opts, and
// truncates to opts.Limit (or the configured default limit). Invalid
// options are rejected with filter.ErrInvalidSpec before any file is read.
func (v *Vault) Tasks(ctx context.Context, opts filter.Options) ([]types.Task, error) {
	spec, err := opts.Spec()
	if err != nil {
		return nil, err
	}

	all, err := walk.Extract(ctx, v.extractor, v.root, v.walkOpts)
	if err != nil {
		return nil, err
	}
	matched, err := filter.Apply(all, spec)
	if err != nil {
		return nil, err
	}
	return filter.Truncate(matched, opts.Limit, v.cfg.DefaultLimit), nil
}

// Tags lists frontmatter tags with document counts. A limit of zero or
// less returns every tag.
func (v *Vault) Tags(ctx context.Context, q TagQuery) (tags.ListResult, error) {
	dir, opts, err := v.scope(q.Subpath)
	if err != nil {
		return tags.ListResult{}, err
	}
	return tags.List(ctx, dir, opts, q.MinCount, q.Limit)
}

// UniqueTags returns the sorted set of frontmatter tags under subpath.
func (v *Vault) UniqueTags(ctx context.Context, subpath string) ([]string, error) {
	dir, opts, err := v.scope(subpath)
	if err != nil {
		return nil, err
	}
	return tags.Unique(ctx, dir, opts)
}

// SearchTags finds documents whose frontmatter carries any (or, with
// MatchAll, every) one of s.Tags. Entries may be comma-separated.
func (v *Vault) SearchTags(ctx context.Context, s TagSearch) (tags.SearchResult, error) {
	want := filter.SplitList(s.Tags)
	if len(want) == 0 {
		return tags.SearchResult{}, ErrNoSearchTags
	}
	dir, opts, err := v.scope(s.Subpath)
	if err != nil {
		return tags.SearchResult{}, err
	}

	found, err := tags.Search(ctx, dir, opts, want, s.MatchAll)
	if err != nil {
		return tags.SearchResult{}, err
	}
	res := tags.SearchResult{Files: found, TotalCount: len(found)}
	if s.Limit > 0 && len(found) > s.Limit {
		res.Files = found[:s.Limit]
	}
	return res, nil
}

// Files returns the directory tree under q.Subpath. Hidden and excluded
// entries are left out.
func (v *Vault) Files(ctx context.Context, q FileQuery) (files.Tree, error) {
	dir, err := files.Resolve(v.root, q.Subpath)
	if err != nil {
		return files.Tree{}, err
	}
	return files.List(ctx, v.root, dir, files.TreeOptions{
		Options:      v.walkOpts,
		MaxDepth:     q.MaxDepth,
		IncludeSizes: q.IncludeSizes,
	})
}

// ReadFiles returns the contents of the requested notes.
func (v *Vault) ReadFiles(ctx context.Context, r FileRead) (files.ReadResponse, error) {
	return files.Read(ctx, v.root, r.FilePaths, files.ReadOptions{
		Options:         v.walkOpts,
		ContinueOnError: r.ContinueOnError,
	})
}

func (v *Vault) dailyNotes() dailynotes.Finder {
	return dailynotes.Finder{
		Root:     v.root,
		Patterns: v.cfg.DailyNotePatterns,
		Options:  v.walkOpts,
	}
}

// DailyNote returns the daily note for date, a YYYY-MM-DD literal.
func (v *Vault) DailyNote(ctx context.Context, date string) (dailynotes.GetResult, error) {
	d, err := parseDate("date", date)
	if err != nil {
		return dailynotes.GetResult{}, err
	}
	return v.dailyNotes().Get(ctx, d)
}

// SearchDailyNotes lists the daily notes dated within the requested range.
func (v *Vault) SearchDailyNotes(ctx context.Context, s DailyNoteSearch) (dailynotes.SearchResult, error) {
	var opts dailynotes.SearchOptions
	var err error
	if s.StartDate != "" {
		if opts.Start, err = parseDate("start_date", s.StartDate); err != nil {
			return dailynotes.SearchResult{}, err
		}
	}
	if s.EndDate != "" {
		if opts.End, err = parseDate("end_date", s.EndDate); err != nil {
			return dailynotes.SearchResult{}, err
		}
	}
	opts.Limit = s.Limit
	opts.Sort = s.Sort
	opts.IncludeContent = s.IncludeContent
	return v.dailyNotes().Search(ctx, opts)
}

func parseDate(field, s string) (types.Date, error) {
	d, err := types.ParseDate(s)
	if err != nil {
		return types.Date{}, fmt.Errorf("%w: %s: %v", dailynotes.ErrInvalidQuery, field, err)
	}
	return d, nil
}
