// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtasks/internal/output"
	"github.com/pdiddy/mdtasks/internal/vault"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Find date-named daily notes",
	Long: `Daily looks up notes by date using daily_note_patterns from the
config file. In a pattern YYYY, MM, and DD stand for the zero-padded year,
month, and day, for example "Daily/YYYY-MM-DD.md".`,
}

// --- get subcommand ---

var dailyGetCmd = &cobra.Command{
	Use:   "get DATE [path]",
	Short: "Print the daily note for DATE (YYYY-MM-DD)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDailyGet,
}

func runDailyGet(cmd *cobra.Command, args []string) error {
	f, err := formatFlag(cmd)
	if err != nil {
		return err
	}

	v, err := openVault(cmd, rootArg(args[1:]))
	if err != nil {
		return err
	}
	res, err := v.DailyNote(context.Background(), args[0])
	if err != nil {
		return err
	}
	return output.DailyNote(cmd.OutOrStdout(), f, res)
}

// --- search subcommand ---

var dailySearchCmd = &cobra.Command{
	Use:   "search [path]",
	Short: "List daily notes in a date range",
	Long: `Search lists the daily notes dated from --start to --end inclusive.
--end defaults to today and --start to 30 days ending at --end. The range
may span at most 365 days.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDailySearch,
}

func runDailySearch(cmd *cobra.Command, args []string) error {
	f, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	var s vault.DailyNoteSearch
	s.StartDate, _ = cmd.Flags().GetString("start")
	s.EndDate, _ = cmd.Flags().GetString("end")
	s.Limit, _ = cmd.Flags().GetInt("limit")
	s.Sort, _ = cmd.Flags().GetString("sort")
	s.IncludeContent, _ = cmd.Flags().GetBool("content")

	v, err := openVault(cmd, rootArg(args))
	if err != nil {
		return err
	}
	res, err := v.SearchDailyNotes(context.Background(), s)
	if err != nil {
		return err
	}
	return output.DailyNotes(cmd.OutOrStdout(), f, res)
}

func init() {
	dailyCmd.PersistentFlags().String("format", "table", "output format: json, yaml, or table")

	dailySearchCmd.Flags().String("start", "", "first date, YYYY-MM-DD")
	dailySearchCmd.Flags().String("end", "", "last date, YYYY-MM-DD (default today)")
	dailySearchCmd.Flags().Int("limit", 0, "maximum notes shown (default 100)")
	dailySearchCmd.Flags().String("sort", "desc", "date order: asc or desc")
	dailySearchCmd.Flags().Bool("content", false, "include note contents in json and yaml output")

	dailyCmd.AddCommand(dailyGetCmd)
	dailyCmd.AddCommand(dailySearchCmd)
	rootCmd.AddCommand(dailyCmd)
}
