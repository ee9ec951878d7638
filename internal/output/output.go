// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders tasks, tag reports, files, and daily notes for
// the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdtasks/internal/dailynotes"
	"github.com/pdiddy/mdtasks/internal/files"
	"github.com/pdiddy/mdtasks/internal/tags"
	"github.com/pdiddy/mdtasks/pkg/types"
)

// Format selects how results are written.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat validates a --format value. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q: use json, yaml, or table", s)
}

// Encode writes v as indented JSON or as YAML.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("format %q cannot encode values", f)
}

// TaskList is the envelope used for task results in JSON and YAML.
type TaskList struct {
	Tasks []types.Task `json:"tasks" yaml:"tasks"`
}

// Tasks writes tasks in the given format.
func Tasks(w io.Writer, f Format, tasks []types.Task) error {
	if tasks == nil {
		tasks = []types.Task{}
	}
	if f == FormatTable {
		return tasksTable(w, tasks)
	}
	return Encode(w, f, TaskList{Tasks: tasks})
}

// TagCounts writes a tag list in the given format.
func TagCounts(w io.Writer, f Format, res tags.ListResult) error {
	if f != FormatTable {
		return Encode(w, f, res)
	}
	if len(res.Tags) == 0 {
		fmt.Fprintln(w, "No tags found.")
		return nil
	}
	fmt.Fprintf(w, "%-40s  %s\n", "Tag", "Documents")
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, tc := range res.Tags {
		fmt.Fprintf(w, "%-40s  %d\n", truncate(tc.Tag, 40), tc.DocumentCount)
	}
	fmt.Fprintf(w, "\n%d of %d tags\n", len(res.Tags), res.Total)
	return nil
}

// TaggedFiles writes tag search results in the given format.
func TaggedFiles(w io.Writer, f Format, res tags.SearchResult) error {
	if res.Files == nil {
		res.Files = []tags.TaggedFile{}
	}
	if f != FormatTable {
		return Encode(w, f, res)
	}
	if len(res.Files) == 0 {
		fmt.Fprintln(w, "No files found.")
		return nil
	}
	fmt.Fprintf(w, "%-50s  %s\n", "File", "Matched")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, tf := range res.Files {
		fmt.Fprintf(w, "%-50s  %s\n", truncate(tf.FilePath, 50), strings.Join(tf.MatchedTags, ", "))
	}
	fmt.Fprintf(w, "\n%d of %d files\n", len(res.Files), res.TotalCount)
	return nil
}

// UniqueTags writes a plain tag list, one tag per line in table format.
func UniqueTags(w io.Writer, f Format, list []string) error {
	if list == nil {
		list = []string{}
	}
	if f != FormatTable {
		return Encode(w, f, map[string][]string{"tags": list})
	}
	for _, tag := range list {
		fmt.Fprintln(w, tag)
	}
	return nil
}

// FileTree writes a directory tree. The table format prints the indented
// outline followed by totals.
func FileTree(w io.Writer, f Format, tree files.Tree) error {
	if f != FormatTable {
		return Encode(w, f, tree)
	}
	fmt.Fprint(w, tree.VisualTree)
	fmt.Fprintf(w, "\n%d directories, %d files\n", tree.TotalDirectories, tree.TotalFiles)
	return nil
}

// FileContents writes read results. The table format prints each file
// under a header line, and the error in place of content for failures.
func FileContents(w io.Writer, f Format, res files.ReadResponse) error {
	if f != FormatTable {
		return Encode(w, f, res)
	}
	for i, r := range res.Files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "==> %s <==\n", r.FilePath)
		switch {
		case !r.Success:
			fmt.Fprintf(w, "error: %s\n", r.Error)
		case r.Content != nil:
			fmt.Fprint(w, *r.Content)
			if !strings.HasSuffix(*r.Content, "\n") {
				fmt.Fprintln(w)
			}
		}
	}
	return nil
}

// DailyNote writes a single daily note lookup.
func DailyNote(w io.Writer, f Format, res dailynotes.GetResult) error {
	if f != FormatTable {
		return Encode(w, f, res)
	}
	if !res.Found {
		fmt.Fprintf(w, "No daily note for %s.\n", res.Date)
		return nil
	}
	fmt.Fprintf(w, "==> %s <==\n", res.FilePath)
	if res.Content != nil {
		fmt.Fprint(w, *res.Content)
	}
	return nil
}

// DailyNotes writes daily note search results.
func DailyNotes(w io.Writer, f Format, res dailynotes.SearchResult) error {
	if res.Notes == nil {
		res.Notes = []dailynotes.Note{}
	}
	if f != FormatTable {
		return Encode(w, f, res)
	}
	if len(res.Notes) == 0 {
		fmt.Fprintln(w, "No daily notes found.")
		return nil
	}
	fmt.Fprintf(w, "%-10s  %s\n", "Date", "File")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	for _, n := range res.Notes {
		fmt.Fprintf(w, "%-10s  %s\n", n.Date, truncate(n.FilePath, 50))
	}
	fmt.Fprintf(w, "\n%d of %d notes, %d days searched\n", len(res.Notes), res.TotalCount, res.DatesSearched)
	return nil
}

func tasksTable(w io.Writer, tasks []types.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-50s  %-10s  %-8s  %-25s  %s\n",
		"Status", "Content", "Due", "Priority", "File", "Line")
	fmt.Fprintln(w, strings.Repeat("-", 118))

	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		fmt.Fprintf(w, "%-10s  %-50s  %-10s  %-8s  %-25s  %d\n",
			truncate(t.Status.String(), 10), truncate(t.Content, 50), due,
			t.Priority, truncate(t.FileName, 25), t.LineNumber)
	}

	fmt.Fprintf(w, "\n%d tasks\n", len(tasks))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
