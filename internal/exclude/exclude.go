// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exclude builds the path-exclusion predicate used by the walker
// from configured glob patterns.
//
// Patterns use doublestar syntax and are matched against the slash-separated
// path relative to the scan root. A pattern without a slash is matched
// against each path component on its own, so "Archive" skips every
// directory or file named Archive at any depth. A pattern with a slash is
// matched against the whole relative path. There is no substring matching:
// "test" does not exclude "testing".
package exclude

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher decides whether a path is excluded. It is immutable once built.
type Matcher struct {
	component []string
	full      []string
}

// New validates and compiles patterns. Blank patterns are ignored.
func New(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(strings.TrimSuffix(p, "/"), "./")
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
		if strings.Contains(p, "/") {
			m.full = append(m.full, strings.TrimPrefix(p, "/"))
		} else {
			m.component = append(m.component, p)
		}
	}
	return m, nil
}

// Match reports whether rel, a path relative to the scan root, is excluded.
// Both slash and OS separators are accepted.
func (m *Matcher) Match(rel string) bool {
	if m == nil {
		return false
	}
	rel = path.Clean(strings.ReplaceAll(rel, `\`, "/"))
	if rel == "." || rel == "" {
		return false
	}

	for _, p := range m.full {
		if doublestar.MatchUnvalidated(p, rel) {
			return true
		}
	}
	if len(m.component) == 0 {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		for _, p := range m.component {
			if doublestar.MatchUnvalidated(p, part) {
				return true
			}
		}
	}
	return false
}

// Empty reports whether the matcher excludes nothing.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.component)+len(m.full) == 0
}
