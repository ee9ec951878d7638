// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2025-12-01", false},
		{"2024-02-29", false},
		{"2025-02-29", true},
		{"2025-13-01", true},
		{"2025-00-10", true},
		{"2025-1-05", true},
		{"25-01-05", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, d.String())
		})
	}
}

func TestDateCompare(t *testing.T) {
	a, _ := ParseDate("2025-01-31")
	b, _ := ParseDate("2025-02-01")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, Date{}.IsZero())
}

func TestDateArithmetic(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2023-12-31", d.AddDays(-59).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -366, d.DaysUntil(d.AddDays(-366)))
	assert.False(t, d.IsZero())
}

func TestStatus(t *testing.T) {
	tests := []struct {
		marker rune
		want   string
	}{
		{' ', "incomplete"},
		{'x', "completed"},
		{'X', "completed"},
		{'-', "cancelled"},
		{'?', "other_?"},
		{'é', "other_é"},
	}
	for _, tt := range tests {
		st := StatusFromMarker(tt.marker)
		assert.Equal(t, tt.want, st.String())

		parsed, err := ParseStatus(tt.want)
		require.NoError(t, err)
		assert.True(t, parsed.Matches(st), tt.want)
	}

	for _, bad := range []string{"done", "other_", "other_ab", "other_x", "other_-"} {
		_, err := ParseStatus(bad)
		assert.Error(t, err, bad)
	}
}

func TestTaskJSONFieldNames(t *testing.T) {
	due, err := ParseDate("2025-12-10")
	require.NoError(t, err)
	task := Task{
		Content:  "x",
		Status:   StatusFromMarker(' '),
		Tags:     []string{},
		SubItems: []string{},
		DueDate:  &due,
		Priority: PriorityNone,
	}
	data, err := json.Marshal(task)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, name := range []string{
		"content", "status", "file_path", "file_name", "line_number", "raw_line",
		"tags", "sub_items", "summary", "due_date", "created_date", "completed_date", "priority",
	} {
		assert.Contains(t, fields, name)
	}
	assert.Equal(t, "2025-12-10", fields["due_date"])
	assert.Equal(t, "incomplete", fields["status"])
}

func TestFilterSpecIsEmpty(t *testing.T) {
	assert.True(t, FilterSpec{}.IsEmpty())
	d, _ := ParseDate("2025-01-01")
	assert.False(t, FilterSpec{Due: DateFilter{On: &d}}.IsEmpty())
	assert.False(t, FilterSpec{Tags: []string{"a"}}.IsEmpty())
}

func TestConfigWithDefaults(t *testing.T) {
	c := Config{}.WithDefaults()
	assert.Equal(t, DefaultLimit, c.DefaultLimit)
	assert.Equal(t, []string{".md"}, c.Extensions)
	assert.Equal(t, ":8000", c.Serve.Addr)
	assert.Equal(t, DefaultDailyNotePatterns, c.DailyNotePatterns)

	c = Config{DefaultLimit: 5, Extensions: []string{".txt"}}.WithDefaults()
	assert.Equal(t, 5, c.DefaultLimit)
	assert.Equal(t, []string{".txt"}, c.Extensions)

	assert.Equal(t, 0, Config{Workers: -3}.WithDefaults().Workers)
	assert.Equal(t, 4, Config{Workers: 4}.WithDefaults().Workers)
}
