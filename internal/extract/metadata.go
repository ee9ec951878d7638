// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"

	"github.com/pdiddy/mdtasks/pkg/types"
)

// Scan runs every rule over body and returns the recognized markers ordered
// by position. Markers whose value failed to parse are not included, so
// their text stays in the content.
func (e *Extractor) Scan(body string) []Marker {
	var markers []Marker
	for _, r := range e.rules {
		markers = append(markers, r.find(body)...)
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Start < markers[j].Start
	})
	return markers
}

// buildTask extracts metadata from body first, then cleans body using only
// the spans that were extracted.
func (e *Extractor) buildTask(body string) types.Task {
	markers := e.Scan(body)

	t := types.Task{
		Tags:     []string{},
		SubItems: []string{},
		Priority: types.PriorityNone,
	}
	seen := make(map[string]bool)
	for _, m := range markers {
		switch m.Field {
		case FieldDue:
			t.DueDate = firstDate(t.DueDate, m.Date)
		case FieldCreated:
			t.CreatedDate = firstDate(t.CreatedDate, m.Date)
		case FieldCompleted:
			t.CompletedDate = firstDate(t.CompletedDate, m.Date)
		case FieldPriority:
			if t.Priority == types.PriorityNone {
				t.Priority = m.Priority
			}
		case FieldTag:
			if !seen[m.Tag] {
				seen[m.Tag] = true
				t.Tags = append(t.Tags, m.Tag)
			}
		}
	}

	t.Content = Clean(body, markers)
	return t
}

// firstDate keeps an already recorded date; markers arrive leftmost first.
func firstDate(have *types.Date, d types.Date) *types.Date {
	if have != nil {
		return have
	}
	return &d
}
