// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"
	"strings"
)

// Clean removes the byte spans of markers from body, collapses runs of
// whitespace to a single space, and trims the result. It never looks for
// markers itself: text that no rule accepted is left alone.
func Clean(body string, markers []Marker) string {
	spans := make([]Marker, len(markers))
	copy(spans, markers)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var b strings.Builder
	b.Grow(len(body))
	pos := 0
	for _, m := range spans {
		if m.End <= pos {
			continue
		}
		if m.Start > pos {
			b.WriteString(body[pos:m.Start])
		}
		// Keep a separator so words on both sides of a marker stay apart.
		b.WriteByte(' ')
		pos = m.End
	}
	b.WriteString(body[pos:])

	return strings.Join(strings.Fields(b.String()), " ")
}
