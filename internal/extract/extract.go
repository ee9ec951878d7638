// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns Markdown text into Task records. A task opens on a
// checkbox list line; metadata markers in its text are recognized by an
// ordered table of rules, removed from the visible content, and indented
// lines that follow are attached as sub-items.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/mdtasks/pkg/types"
)

// ErrInvalidEncoding is returned by ParseFile for content that is not UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor holds the compiled pattern table. It is built once, never
// modified, and safe for concurrent use by any number of file workers.
type Extractor struct {
	taskLine *regexp.Regexp
	listMark *regexp.Regexp
	rules    []Rule
}

// New compiles the task-line grammar and the default metadata rules.
// A compile failure means no input can be processed.
func New() (*Extractor, error) {
	return compile(defaultRuleSpecs())
}

// compile builds an Extractor from a rule list. Rules are evaluated in
// order; for fields holding a single value the leftmost marker in the text
// wins regardless of rule order.
func compile(specs []ruleSpec) (*Extractor, error) {
	taskLine, err := regexp.Compile(`^([ \t]*)- \[([^\[\]])\] (.+)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling task line pattern: %w", err)
	}
	listMark, err := regexp.Compile(`^(?:[-*+]|\d+[.)])[ \t]+(?:\[[^\[\]]\][ \t]+)?`)
	if err != nil {
		return nil, fmt.Errorf("compiling list marker pattern: %w", err)
	}

	e := &Extractor{taskLine: taskLine, listMark: listMark}
	for _, spec := range specs {
		re, err := regexp.Compile(spec.expr)
		if err != nil {
			return nil, fmt.Errorf("compiling rule %s: %w", spec.name, err)
		}
		e.rules = append(e.rules, Rule{Name: spec.name, Field: spec.field, Pattern: re, Parse: spec.parse})
	}
	return e, nil
}

// ParseFile reads path and returns its tasks in line order. Content that is
// not valid UTF-8 is rejected with ErrInvalidEncoding; a leading byte order
// mark is ignored.
func (e *Extractor) ParseFile(path string) ([]types.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading %s: %w", path, ErrInvalidEncoding)
	}
	return e.Parse(path, string(data)), nil
}

// Parse extracts the tasks in content, attributing them to path.
func (e *Extractor) Parse(path, content string) []types.Task {
	fileName := filepath.Base(path)
	var (
		tasks      []types.Task
		open       *types.Task
		openIndent int
	)
	closeTask := func() {
		if open != nil {
			tasks = append(tasks, *open)
			open = nil
		}
	}

	for i, line := range splitLines(content) {
		if open != nil {
			if strings.TrimSpace(line) == "" {
				closeTask()
				continue
			}
			if indentOf(line) > openIndent {
				open.SubItems = append(open.SubItems, e.subItemContent(line))
				continue
			}
			closeTask()
		}

		m, ok := e.matchTaskLine(line)
		if !ok {
			continue
		}
		t := e.newTask(m, path, fileName, i+1, line)
		open, openIndent = &t, m.indent
	}
	closeTask()

	return tasks
}

func (e *Extractor) newTask(m lineMatch, path, fileName string, lineNumber int, line string) types.Task {
	t := e.buildTask(m.body)
	t.Status = m.status
	t.FilePath = path
	t.FileName = fileName
	t.LineNumber = lineNumber
	t.RawLine = line
	return t
}

// splitLines splits content on \n, dropping the \r of CRLF endings and the
// empty element after a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
