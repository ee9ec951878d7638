// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tags reads document-level tags from YAML frontmatter and answers
// questions over a vault: which tags exist, how many documents use each,
// and which documents carry a given set of tags.
package tags

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/pdiddy/mdtasks/internal/walk"
)

// TagCount is a tag and the number of documents that declare it.
type TagCount struct {
	Tag           string `json:"tag" yaml:"tag"`
	DocumentCount int    `json:"document_count" yaml:"document_count"`
}

// ListResult is the answer to List.
type ListResult struct {
	Tags      []TagCount `json:"tags" yaml:"tags"`
	Total     int        `json:"total" yaml:"total"`
	Truncated bool       `json:"truncated" yaml:"truncated"`
}

// SearchResult is a page of Search matches. TotalCount counts every match
// before a limit was applied.
type SearchResult struct {
	Files      []TaggedFile `json:"files" yaml:"files"`
	TotalCount int          `json:"total_count" yaml:"total_count"`
}

// TaggedFile is a document matched by Search.
type TaggedFile struct {
	FilePath    string   `json:"file_path" yaml:"file_path"`
	FileName    string   `json:"file_name" yaml:"file_name"`
	MatchedTags []string `json:"matched_tags" yaml:"matched_tags"`
	AllTags     []string `json:"all_tags" yaml:"all_tags"`
}

type fileTags struct {
	path string
	tags []string
	err  error
}

// scan reads the frontmatter tags of every file walk selects under root.
// Files whose frontmatter cannot be read are reported on opts.Warnings and
// left out.
func scan(ctx context.Context, root string, opts walk.Options) ([]fileTags, error) {
	files, err := walk.Files(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	mapper := iter.Mapper[string, fileTags]{MaxGoroutines: opts.Concurrency()}
	results := mapper.Map(files, func(path *string) fileTags {
		if ctx.Err() != nil {
			return fileTags{path: *path, err: ctx.Err()}
		}
		tags, err := FromFile(*path)
		return fileTags{path: *path, tags: tags, err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := opts.Warnings
	if w == nil {
		w = io.Discard
	}
	out := results[:0]
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "warning: skipped %v\n", r.err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Unique returns every distinct frontmatter tag under root, sorted.
// Tags differing only in case are distinct.
func Unique(ctx context.Context, root string, opts walk.Options) ([]string, error) {
	files, err := scan(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, f := range files {
		out = append(out, f.tags...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// List counts, for each frontmatter tag under root, the documents that
// declare it. A tag repeated within one document counts once. Tags used by
// fewer than minCount documents are dropped. The result is sorted by count
// descending, then tag ascending. A positive limit keeps only the first
// limit tags. Total reports the distinct tags found before either cut.
func List(ctx context.Context, root string, opts walk.Options, minCount, limit int) (ListResult, error) {
	files, err := scan(ctx, root, opts)
	if err != nil {
		return ListResult{}, err
	}

	counts := make(map[string]int)
	for _, f := range files {
		seen := make(map[string]bool, len(f.tags))
		for _, tag := range f.tags {
			if !seen[tag] {
				seen[tag] = true
				counts[tag]++
			}
		}
	}

	res := ListResult{Tags: make([]TagCount, 0, len(counts)), Total: len(counts)}
	for tag, n := range counts {
		if n >= minCount {
			res.Tags = append(res.Tags, TagCount{Tag: tag, DocumentCount: n})
		}
	}
	slices.SortFunc(res.Tags, func(a, b TagCount) int {
		if c := cmp.Compare(b.DocumentCount, a.DocumentCount); c != 0 {
			return c
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	if limit > 0 && len(res.Tags) > limit {
		res.Tags = res.Tags[:limit]
		res.Truncated = true
	}
	return res, nil
}

// Search returns the documents under root whose frontmatter tags include
// any of want, or all of them when matchAll is set. Comparison is
// case-insensitive; MatchedTags holds the lower-cased search tags that
// matched. Results follow walk order.
func Search(ctx context.Context, root string, opts walk.Options, want []string, matchAll bool) ([]TaggedFile, error) {
	files, err := scan(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	search := make([]string, 0, len(want))
	for _, t := range want {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" && !slices.Contains(search, t) {
			search = append(search, t)
		}
	}

	out := []TaggedFile{}
	if len(search) == 0 {
		return out, nil
	}
	for _, f := range files {
		have := make(map[string]bool, len(f.tags))
		for _, tag := range f.tags {
			have[strings.ToLower(tag)] = true
		}
		var matched []string
		for _, t := range search {
			if have[t] {
				matched = append(matched, t)
			}
		}
		if len(matched) == 0 || (matchAll && len(matched) != len(search)) {
			continue
		}
		out = append(out, TaggedFile{
			FilePath:    f.path,
			FileName:    filepath.Base(f.path),
			MatchedTags: matched,
			AllTags:     f.tags,
		})
	}
	return out, nil
}
