// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/mdtasks/pkg/types"
)

// lineMatch is a line recognized as opening a task.
type lineMatch struct {
	indent int
	status types.Status
	body   string
}

// matchTaskLine checks line against the task grammar: optional indentation,
// "- ", a single-character checkbox, a space, and a non-empty body.
func (e *Extractor) matchTaskLine(line string) (lineMatch, bool) {
	sub := e.taskLine.FindStringSubmatch(line)
	if sub == nil {
		return lineMatch{}, false
	}
	marker, _ := utf8.DecodeRuneInString(sub[2])
	return lineMatch{
		indent: len(sub[1]),
		status: types.StatusFromMarker(marker),
		body:   sub[3],
	}, true
}

// indentOf returns the number of leading space and tab bytes in line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
