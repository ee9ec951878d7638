// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"fmt"
	"strings"

	"github.com/pdiddy/mdtasks/pkg/types"
)

// Options is the user-facing form of a filter request as it arrives from
// flags, query strings, JSON bodies, or query files. Spec converts it to a
// FilterSpec.
type Options struct {
	Status string `json:"status,omitempty" yaml:"status,omitempty" form:"status"`

	DueOn     string `json:"due_on,omitempty" yaml:"due_on,omitempty" form:"due_on"`
	DueBefore string `json:"due_before,omitempty" yaml:"due_before,omitempty" form:"due_before"`
	DueAfter  string `json:"due_after,omitempty" yaml:"due_after,omitempty" form:"due_after"`

	CreatedOn     string `json:"created_on,omitempty" yaml:"created_on,omitempty" form:"created_on"`
	CreatedBefore string `json:"created_before,omitempty" yaml:"created_before,omitempty" form:"created_before"`
	CreatedAfter  string `json:"created_after,omitempty" yaml:"created_after,omitempty" form:"created_after"`

	CompletedOn     string `json:"completed_on,omitempty" yaml:"completed_on,omitempty" form:"completed_on"`
	CompletedBefore string `json:"completed_before,omitempty" yaml:"completed_before,omitempty" form:"completed_before"`
	CompletedAfter  string `json:"completed_after,omitempty" yaml:"completed_after,omitempty" form:"completed_after"`

	// Tags must all be present. Entries may themselves be comma-separated.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty" form:"tags"`

	// ExcludeTags must all be absent. Entries may be comma-separated.
	ExcludeTags []string `json:"exclude_tags,omitempty" yaml:"exclude_tags,omitempty" form:"exclude_tags"`

	// Limit caps the number of returned tasks. Zero means the configured
	// default.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty" form:"limit"`
}

// Spec parses the options into a validated FilterSpec.
func (o Options) Spec() (types.FilterSpec, error) {
	var spec types.FilterSpec

	if o.Status != "" {
		st, err := types.ParseStatus(strings.TrimSpace(o.Status))
		if err != nil {
			return spec, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		spec.Status = &st
	}

	var err error
	if spec.Due, err = dateFilter("due", o.DueOn, o.DueBefore, o.DueAfter); err != nil {
		return spec, err
	}
	if spec.Created, err = dateFilter("created", o.CreatedOn, o.CreatedBefore, o.CreatedAfter); err != nil {
		return spec, err
	}
	if spec.Completed, err = dateFilter("completed", o.CompletedOn, o.CompletedBefore, o.CompletedAfter); err != nil {
		return spec, err
	}

	spec.Tags = SplitList(o.Tags)
	spec.ExcludeTags = SplitList(o.ExcludeTags)

	if err := Validate(spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// Merge returns o with every field that is set in override replaced.
func (o Options) Merge(override Options) Options {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	o.Status = pick(o.Status, override.Status)
	o.DueOn = pick(o.DueOn, override.DueOn)
	o.DueBefore = pick(o.DueBefore, override.DueBefore)
	o.DueAfter = pick(o.DueAfter, override.DueAfter)
	o.CreatedOn = pick(o.CreatedOn, override.CreatedOn)
	o.CreatedBefore = pick(o.CreatedBefore, override.CreatedBefore)
	o.CreatedAfter = pick(o.CreatedAfter, override.CreatedAfter)
	o.CompletedOn = pick(o.CompletedOn, override.CompletedOn)
	o.CompletedBefore = pick(o.CompletedBefore, override.CompletedBefore)
	o.CompletedAfter = pick(o.CompletedAfter, override.CompletedAfter)
	if len(override.Tags) > 0 {
		o.Tags = override.Tags
	}
	if len(override.ExcludeTags) > 0 {
		o.ExcludeTags = override.ExcludeTags
	}
	if override.Limit > 0 {
		o.Limit = override.Limit
	}
	return o
}

// Truncate returns at most limit tasks; limit <= 0 uses fallback.
func Truncate(tasks []types.Task, limit, fallback int) []types.Task {
	if limit <= 0 {
		limit = fallback
	}
	if limit > 0 && len(tasks) > limit {
		return tasks[:limit]
	}
	return tasks
}

// SplitList flattens comma-separated entries, trimming space and dropping
// blanks. A leading # on a tag is removed.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), "#")
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func dateFilter(name, on, before, after string) (types.DateFilter, error) {
	var f types.DateFilter
	for _, b := range []struct {
		label string
		raw   string
		dst   **types.Date
	}{
		{"on", on, &f.On},
		{"before", before, &f.Before},
		{"after", after, &f.After},
	} {
		if b.raw == "" {
			continue
		}
		d, err := types.ParseDate(strings.TrimSpace(b.raw))
		if err != nil {
			return f, fmt.Errorf("%w: %s_%s: %v", ErrInvalidSpec, name, b.label, err)
		}
		*b.dst = &d
	}
	return f, nil
}
