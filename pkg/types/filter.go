// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DateFilter constrains one date field of a task. Each bound is optional.
// Before and After are exclusive.
type DateFilter struct {
	On     *Date `json:"on,omitempty" yaml:"on,omitempty"`
	Before *Date `json:"before,omitempty" yaml:"before,omitempty"`
	After  *Date `json:"after,omitempty" yaml:"after,omitempty"`
}

// IsEmpty reports whether the filter sets no bound.
func (f DateFilter) IsEmpty() bool {
	return f.On == nil && f.Before == nil && f.After == nil
}

// FilterSpec is the set of predicates applied to an extracted task list.
// Every predicate that is set must hold for a task to be kept.
type FilterSpec struct {
	// Status keeps tasks with a matching status.
	Status *Status `json:"status,omitempty" yaml:"status,omitempty"`

	Due       DateFilter `json:"due" yaml:"due"`
	Created   DateFilter `json:"created" yaml:"created"`
	Completed DateFilter `json:"completed" yaml:"completed"`

	// Tags must all be present on a task.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// ExcludeTags must all be absent from a task.
	ExcludeTags []string `json:"exclude_tags,omitempty" yaml:"exclude_tags,omitempty"`
}

// IsEmpty reports whether the spec sets no predicate.
func (s FilterSpec) IsEmpty() bool {
	return s.Status == nil && s.Due.IsEmpty() && s.Created.IsEmpty() &&
		s.Completed.IsEmpty() && len(s.Tags) == 0 && len(s.ExcludeTags) == 0
}
