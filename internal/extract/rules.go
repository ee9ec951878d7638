// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/mdtasks/pkg/types"
)

// Field identifies the Task field a metadata marker fills.
type Field int

const (
	FieldDue Field = iota
	FieldCreated
	FieldCompleted
	FieldPriority
	FieldTag
)

func (f Field) String() string {
	switch f {
	case FieldDue:
		return "due"
	case FieldCreated:
		return "created"
	case FieldCompleted:
		return "completed"
	case FieldPriority:
		return "priority"
	case FieldTag:
		return "tag"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Marker is one metadata marker recognized in a task body. Start and End
// are byte offsets of the whole marker; exactly one of Date, Priority, or
// Tag is set according to Field.
type Marker struct {
	Field    Field
	Start    int
	End      int
	Date     types.Date
	Priority types.Priority
	Tag      string
}

// Rule detects one surface form of a metadata marker and parses its value.
// Parse receives the submatches of Pattern and reports false when the text
// has the right shape but no valid value (for example 2025-02-30).
type Rule struct {
	Name    string
	Field   Field
	Pattern *regexp.Regexp
	Parse   func(sub []string) (Marker, bool)
}

// find returns every occurrence of the rule in body whose value parses.
func (r Rule) find(body string) []Marker {
	var out []Marker
	for _, loc := range r.Pattern.FindAllStringSubmatchIndex(body, -1) {
		sub := make([]string, len(loc)/2)
		for i := range sub {
			if loc[2*i] >= 0 {
				sub[i] = body[loc[2*i]:loc[2*i+1]]
			}
		}
		m, ok := r.Parse(sub)
		if !ok {
			continue
		}
		m.Field = r.Field
		m.Start, m.End = loc[0], loc[1]
		out = append(out, m)
	}
	return out
}

// ruleSpec is the uncompiled form of a Rule.
type ruleSpec struct {
	name  string
	field Field
	expr  string
	parse func(sub []string) (Marker, bool)
}

const (
	dateExpr = `(\d{4}-\d{2}-\d{2})`
	// vs16 is the emoji presentation selector some editors append.
	vs16 = `\x{FE0F}?`
)

var priorityEmoji = map[string]types.Priority{
	"🔺": types.PriorityUrgent,
	"⏫": types.PriorityUrgent,
	"🔼": types.PriorityHigh,
	"🔽": types.PriorityLow,
	"⏬": types.PriorityLowest,
}

// dateRules returns the three surface forms of a date marker: emoji prefix,
// "label: date", and "@label(date)".
func dateRules(field Field, emoji string) []ruleSpec {
	label := field.String()
	return []ruleSpec{
		{name: label + "-emoji", field: field, expr: regexp.QuoteMeta(emoji) + vs16 + `\s*` + dateExpr, parse: parseDate},
		{name: label + "-label", field: field, expr: `\b` + label + `:\s*` + dateExpr, parse: parseDate},
		{name: label + "-call", field: field, expr: `@` + label + `\(` + dateExpr + `\)`, parse: parseDate},
	}
}

func defaultRuleSpecs() []ruleSpec {
	emoji := make([]string, 0, len(priorityEmoji))
	for _, e := range []string{"🔺", "⏫", "🔼", "🔽", "⏬"} {
		emoji = append(emoji, regexp.QuoteMeta(e))
	}

	var specs []ruleSpec
	specs = append(specs, dateRules(FieldDue, "📅")...)
	specs = append(specs, dateRules(FieldCreated, "➕")...)
	specs = append(specs, dateRules(FieldCompleted, "✅")...)
	specs = append(specs,
		ruleSpec{name: "priority-emoji", field: FieldPriority, expr: `(` + strings.Join(emoji, "|") + `)` + vs16, parse: parsePriorityEmoji},
		ruleSpec{name: "priority-label", field: FieldPriority, expr: `(?i)\bpriority:\s*(high|medium|low)\b`, parse: parsePriorityLabel},
		ruleSpec{name: "tag", field: FieldTag, expr: `#([\p{L}\p{N}]+)`, parse: parseTag},
	)
	return specs
}

func parseDate(sub []string) (Marker, bool) {
	d, err := types.ParseDate(sub[1])
	if err != nil {
		return Marker{}, false
	}
	return Marker{Date: d}, true
}

func parsePriorityEmoji(sub []string) (Marker, bool) {
	p, ok := priorityEmoji[sub[1]]
	return Marker{Priority: p}, ok
}

func parsePriorityLabel(sub []string) (Marker, bool) {
	return Marker{Priority: types.Priority(strings.ToLower(sub[1]))}, true
}

func parseTag(sub []string) (Marker, bool) {
	return Marker{Tag: sub[1]}, sub[1] != ""
}
