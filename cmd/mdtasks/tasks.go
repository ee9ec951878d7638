// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtasks/internal/filter"
	"github.com/pdiddy/mdtasks/internal/output"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks [path]",
	Short: "List checkbox tasks under a path, optionally filtered",
	Long: `Tasks walks path (a directory or a single file, default ".") and
prints every checkbox task found, after applying the filters given.

Dates use YYYY-MM-DD. --due-before and --due-after are exclusive; --due-on
is an exact match. The same applies to the --created-* and --completed-*
flags. --tags keeps tasks carrying all the given tags; --exclude-tags drops
tasks carrying any of them.

A saved query (--query-file) supplies default filter values; flags given
on the command line override them. Use --save-query to store the
effective filter for later.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	opts, err := taskOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	if _, err := opts.Spec(); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save-query"); path != "" {
		name, _ := cmd.Flags().GetString("query-name")
		if err := filter.WriteQueryFile(path, name, opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Query saved to %s\n", path)
	}

	v, err := openVault(cmd, rootArg(args))
	if err != nil {
		return err
	}
	tasks, err := v.Tasks(context.Background(), opts)
	if err != nil {
		return err
	}
	return output.Tasks(cmd.OutOrStdout(), f, tasks)
}

// taskOptionsFromFlags builds filter options from --query-file, then
// overlays every filter flag the user set.
func taskOptionsFromFlags(cmd *cobra.Command) (filter.Options, error) {
	var base filter.Options
	if path, _ := cmd.Flags().GetString("query-file"); path != "" {
		qf, err := filter.ReadQueryFile(path)
		if err != nil {
			return base, err
		}
		base = qf.Filter
	}

	str := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	tags, _ := cmd.Flags().GetStringSlice("tags")
	excludeTags, _ := cmd.Flags().GetStringSlice("exclude-tags")
	limit, _ := cmd.Flags().GetInt("limit")

	return base.Merge(filter.Options{
		Status:          str("status"),
		DueOn:           str("due-on"),
		DueBefore:       str("due-before"),
		DueAfter:        str("due-after"),
		CreatedOn:       str("created-on"),
		CreatedBefore:   str("created-before"),
		CreatedAfter:    str("created-after"),
		CompletedOn:     str("completed-on"),
		CompletedBefore: str("completed-before"),
		CompletedAfter:  str("completed-after"),
		Tags:            tags,
		ExcludeTags:     excludeTags,
		Limit:           limit,
	}), nil
}

// addFilterFlags registers the filter flags read by taskOptionsFromFlags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "filter by status: incomplete, completed, cancelled, or other_<char>")
	for _, field := range []string{"due", "created", "completed"} {
		cmd.Flags().String(field+"-on", "", "keep tasks whose "+field+" date is exactly this date")
		cmd.Flags().String(field+"-before", "", "keep tasks whose "+field+" date is before this date")
		cmd.Flags().String(field+"-after", "", "keep tasks whose "+field+" date is after this date")
	}
	cmd.Flags().StringSlice("tags", nil, "keep tasks carrying all these tags (comma-separated)")
	cmd.Flags().StringSlice("exclude-tags", nil, "drop tasks carrying any of these tags (comma-separated)")
	cmd.Flags().Int("limit", 0, "maximum tasks returned (0 = default_limit from config)")
	cmd.Flags().String("query-file", "", "YAML file holding saved filter options")
}

func init() {
	addFilterFlags(tasksCmd)
	tasksCmd.Flags().String("format", "json", "output format: json, yaml, or table")
	tasksCmd.Flags().String("save-query", "", "write the effective filter options to this YAML file")
	tasksCmd.Flags().String("query-name", "", "name stored with --save-query")

	rootCmd.AddCommand(tasksCmd)
}
