// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtasks/internal/output"
	"github.com/pdiddy/mdtasks/internal/vault"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List and search frontmatter tags",
	Long: `Tags reads the YAML frontmatter "tags" field of each Markdown file.
Use list to count documents per tag, unique to print each tag once, and
search to find documents by tag. --subpath narrows any of them to one
directory of the vault.`,
}

// --- list subcommand ---

var tagsListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "Count documents per frontmatter tag",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTagsList,
}

func runTagsList(cmd *cobra.Command, args []string) error {
	f, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	minCount, _ := cmd.Flags().GetInt("min-count")
	subpath, _ := cmd.Flags().GetString("subpath")

	v, err := openVault(cmd, rootArg(args))
	if err != nil {
		return err
	}
	res, err := v.Tags(context.Background(), vault.TagQuery{Subpath: subpath, MinCount: minCount, Limit: limit})
	if err != nil {
		return err
	}
	return output.TagCounts(cmd.OutOrStdout(), f, res)
}

// --- unique subcommand ---

var tagsUniqueCmd = &cobra.Command{
	Use:   "unique [path]",
	Short: "Print each frontmatter tag once, sorted",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTagsUnique,
}

func runTagsUnique(cmd *cobra.Command, args []string) error {
	f, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	subpath, _ := cmd.Flags().GetString("subpath")

	v, err := openVault(cmd, rootArg(args))
	if err != nil {
		return err
	}
	list, err := v.UniqueTags(context.Background(), subpath)
	if err != nil {
		return err
	}
	return output.UniqueTags(cmd.OutOrStdout(), f, list)
}

// --- search subcommand ---

var tagsSearchCmd = &cobra.Command{
	Use:   "search [path]",
	Short: "Find documents by frontmatter tag",
	Long: `Search prints the documents whose frontmatter tags include any of
--tags, or all of them with --all. Matching ignores case.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTagsSearch,
}

func runTagsSearch(cmd *cobra.Command, args []string) error {
	f, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	want, _ := cmd.Flags().GetStringSlice("tags")
	matchAll, _ := cmd.Flags().GetBool("all")
	subpath, _ := cmd.Flags().GetString("subpath")
	limit, _ := cmd.Flags().GetInt("limit")

	v, err := openVault(cmd, rootArg(args))
	if err != nil {
		return err
	}
	res, err := v.SearchTags(context.Background(), vault.TagSearch{
		Tags:     want,
		MatchAll: matchAll,
		Subpath:  subpath,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return output.TaggedFiles(cmd.OutOrStdout(), f, res)
}

func init() {
	tagsCmd.PersistentFlags().String("format", "table", "output format: json, yaml, or table")
	tagsCmd.PersistentFlags().String("subpath", "", "directory under the vault root to scan")

	tagsListCmd.Flags().Int("limit", 0, "maximum tags shown (0 = all)")
	tagsListCmd.Flags().Int("min-count", 0, "only show tags used by at least this many documents")

	tagsSearchCmd.Flags().StringSlice("tags", nil, "tags to search for (comma-separated)")
	tagsSearchCmd.Flags().Bool("all", false, "require every tag instead of any")
	tagsSearchCmd.Flags().Int("limit", 0, "maximum files shown (0 = all)")
	_ = tagsSearchCmd.MarkFlagRequired("tags")

	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsUniqueCmd)
	tagsCmd.AddCommand(tagsSearchCmd)
	rootCmd.AddCommand(tagsCmd)
}
