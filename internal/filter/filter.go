// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter narrows an extracted task list by a FilterSpec.
//
// Every predicate set in the FilterSpec must hold (logical AND). A task with
// no value for a field a predicate needs, such as a missing due date under
// a due-date filter, is dropped. Date bounds Before and After are
// exclusive; On is equality. Output keeps input order.
package filter

import (
	"errors"
	"fmt"

	"github.com/pdiddy/mdtasks/pkg/types"
)

// ErrInvalidSpec is wrapped by every validation error.
var ErrInvalidSpec = errors.New("invalid filter")

// Apply returns the tasks that satisfy spec, in input order. It validates
// spec first and filters nothing when spec is inconsistent.
func Apply(tasks []types.Task, spec types.FilterSpec) ([]types.Task, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}
	if spec.IsEmpty() {
		return append(make([]types.Task, 0, len(tasks)), tasks...), nil
	}

	out := make([]types.Task, 0, len(tasks))
	for i := range tasks {
		if Match(&tasks[i], spec) {
			out = append(out, tasks[i])
		}
	}
	return out, nil
}

// Match reports whether t satisfies every predicate in spec. It does not
// validate spec.
func Match(t *types.Task, spec types.FilterSpec) bool {
	if spec.Status != nil && !t.Status.Matches(*spec.Status) {
		return false
	}
	if !matchDate(t.DueDate, spec.Due) ||
		!matchDate(t.CreatedDate, spec.Created) ||
		!matchDate(t.CompletedDate, spec.Completed) {
		return false
	}
	for _, tag := range spec.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	for _, tag := range spec.ExcludeTags {
		if t.HasTag(tag) {
			return false
		}
	}
	return true
}

func matchDate(d *types.Date, f types.DateFilter) bool {
	if f.IsEmpty() {
		return true
	}
	if d == nil {
		return false
	}
	if f.On != nil && *d != *f.On {
		return false
	}
	if f.Before != nil && !d.Before(*f.Before) {
		return false
	}
	if f.After != nil && !d.After(*f.After) {
		return false
	}
	return true
}

// Validate reports an error wrapping ErrInvalidSpec when spec cannot be
// satisfied consistently: a date range that ends before it starts, an
// exact date outside its own range, an empty tag, a tag both required and
// excluded, or an unknown status.
func Validate(spec types.FilterSpec) error {
	if spec.Status != nil {
		switch spec.Status.Kind {
		case types.StatusIncomplete, types.StatusCompleted, types.StatusCancelled, types.StatusCustom:
		default:
			return fmt.Errorf("%w: unknown status %q", ErrInvalidSpec, spec.Status.Kind)
		}
	}

	for _, df := range []struct {
		name string
		f    types.DateFilter
	}{
		{"due", spec.Due},
		{"created", spec.Created},
		{"completed", spec.Completed},
	} {
		if err := validateDates(df.name, df.f); err != nil {
			return err
		}
	}

	required := make(map[string]bool, len(spec.Tags))
	for _, tag := range spec.Tags {
		if tag == "" {
			return fmt.Errorf("%w: empty tag", ErrInvalidSpec)
		}
		required[tag] = true
	}
	for _, tag := range spec.ExcludeTags {
		if tag == "" {
			return fmt.Errorf("%w: empty excluded tag", ErrInvalidSpec)
		}
		if required[tag] {
			return fmt.Errorf("%w: tag %q is both required and excluded", ErrInvalidSpec, tag)
		}
	}
	return nil
}

func validateDates(name string, f types.DateFilter) error {
	if f.Before != nil && f.After != nil && f.After.After(*f.Before) {
		return fmt.Errorf("%w: %s after %s is later than %s before %s",
			ErrInvalidSpec, name, f.After, name, f.Before)
	}
	if f.On == nil {
		return nil
	}
	if f.Before != nil && !f.On.Before(*f.Before) {
		return fmt.Errorf("%w: %s on %s is not before %s", ErrInvalidSpec, name, f.On, f.Before)
	}
	if f.After != nil && !f.On.After(*f.After) {
		return fmt.Errorf("%w: %s on %s is not after %s", ErrInvalidSpec, name, f.On, f.After)
	}
	return nil
}
