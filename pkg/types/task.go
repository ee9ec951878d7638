// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// StatusKind classifies a task checkbox.
type StatusKind string

const (
	StatusIncomplete StatusKind = "incomplete"
	StatusCompleted  StatusKind = "completed"
	StatusCancelled  StatusKind = "cancelled"
	StatusCustom     StatusKind = "other"
)

// Status is the state of a task as written between its checkbox brackets.
// Marker keeps the literal character so that x and X, or any custom
// marker, survive extraction.
type Status struct {
	Kind   StatusKind
	Marker rune
}

// StatusFromMarker maps a checkbox character to its Status: space is
// incomplete, x or X completed, - cancelled, anything else custom.
func StatusFromMarker(r rune) Status {
	switch r {
	case ' ':
		return Status{Kind: StatusIncomplete, Marker: r}
	case 'x', 'X':
		return Status{Kind: StatusCompleted, Marker: r}
	case '-':
		return Status{Kind: StatusCancelled, Marker: r}
	default:
		return Status{Kind: StatusCustom, Marker: r}
	}
}

// ParseStatus parses the textual form produced by Status.String:
// incomplete, completed, cancelled, or other_<char>.
func ParseStatus(s string) (Status, error) {
	switch StatusKind(strings.ToLower(s)) {
	case StatusIncomplete:
		return StatusFromMarker(' '), nil
	case StatusCompleted:
		return StatusFromMarker('x'), nil
	case StatusCancelled:
		return StatusFromMarker('-'), nil
	}
	if rest, ok := strings.CutPrefix(s, string(StatusCustom)+"_"); ok && utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		if st := StatusFromMarker(r); st.Kind == StatusCustom {
			return st, nil
		}
	}
	return Status{}, fmt.Errorf("unknown status %q: use incomplete, completed, cancelled, or other_<char>", s)
}

// Matches reports whether s and other describe the same status. Completed
// matches regardless of marker case; custom statuses must share a marker.
func (s Status) Matches(other Status) bool {
	if s.Kind != other.Kind {
		return false
	}
	if s.Kind == StatusCustom {
		return s.Marker == other.Marker
	}
	return true
}

func (s Status) String() string {
	if s.Kind == StatusCustom {
		return fmt.Sprintf("%s_%c", StatusCustom, s.Marker)
	}
	return string(s.Kind)
}

// MarshalText encodes the status in its textual form.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the textual form produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Priority ranks a task as marked in its text.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityLowest Priority = "lowest"
	PriorityNone   Priority = "none"
)

// Task is a checkbox list item extracted from a Markdown file. A Task is
// built in a single pass over its file and never modified afterwards.
type Task struct {
	// Content is the task text with every recognized metadata marker removed
	// and whitespace collapsed.
	Content string `json:"content" yaml:"content"`

	// Status is the checkbox state.
	Status Status `json:"status" yaml:"status"`

	// FilePath is the path of the source file as walked.
	FilePath string `json:"file_path" yaml:"file_path"`

	// FileName is the base name of FilePath.
	FileName string `json:"file_name" yaml:"file_name"`

	// LineNumber is the 1-based line of the task in its file.
	LineNumber int `json:"line_number" yaml:"line_number"`

	// RawLine is the source line, verbatim.
	RawLine string `json:"raw_line" yaml:"raw_line"`

	// Tags holds each #tag once, in order of first appearance.
	Tags []string `json:"tags" yaml:"tags"`

	// SubItems holds the content of indented lines under the task, flattened.
	SubItems []string `json:"sub_items" yaml:"sub_items"`

	// Summary is reserved for a short form of Content.
	Summary *string `json:"summary" yaml:"summary"`

	DueDate       *Date    `json:"due_date" yaml:"due_date"`
	CreatedDate   *Date    `json:"created_date" yaml:"created_date"`
	CompletedDate *Date    `json:"completed_date" yaml:"completed_date"`
	Priority      Priority `json:"priority" yaml:"priority"`
}

// HasTag reports whether the task carries tag. Tags are case-sensitive.
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
