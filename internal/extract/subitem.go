// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// subItemContent strips indentation and a leading bullet or ordered-list
// marker, with an optional checkbox, from an indented line under a task. Nested levels are
// flattened: only the text is kept.
func (e *Extractor) subItemContent(line string) string {
	trimmed := strings.TrimSpace(line)
	if loc := e.listMark.FindStringIndex(trimmed); loc != nil {
		trimmed = strings.TrimSpace(trimmed[loc[1]:])
	}
	return trimmed
}
