// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtasks/internal/output"
	"github.com/pdiddy/mdtasks/internal/vault"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Browse and read notes in the vault",
}

// --- list subcommand ---

var filesListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "Print the directory tree of the vault",
	Long: `List prints the vault as an indented tree, directories first.
Hidden entries and paths matched by exclude_paths are left out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilesList,
}

func runFilesList(cmd *cobra.Command, args []string) error {
	f, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	subpath, _ := cmd.Flags().GetString("subpath")
	depth, _ := cmd.Flags().GetInt("max-depth")
	sizes, _ := cmd.Flags().GetBool("sizes")

	v, err := openVault(cmd, rootArg(args))
	if err != nil {
		return err
	}
	tree, err := v.Files(context.Background(), vault.FileQuery{
		Subpath:      subpath,
		MaxDepth:     depth,
		IncludeSizes: sizes,
	})
	if err != nil {
		return err
	}
	return output.FileTree(cmd.OutOrStdout(), f, tree)
}

// --- read subcommand ---

var filesReadCmd = &cobra.Command{
	Use:   "read FILE...",
	Short: "Print the contents of notes",
	Long: `Read prints each FILE, given relative to the vault root (--root).
By default any missing or unreadable file fails the command before
anything is printed; --continue-on-error reports failures inline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilesRead,
}

func runFilesRead(cmd *cobra.Command, args []string) error {
	f, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	root, _ := cmd.Flags().GetString("root")
	keepGoing, _ := cmd.Flags().GetBool("continue-on-error")

	v, err := openVault(cmd, root)
	if err != nil {
		return err
	}
	res, err := v.ReadFiles(context.Background(), vault.FileRead{FilePaths: args, ContinueOnError: keepGoing})
	if err != nil {
		return err
	}
	return output.FileContents(cmd.OutOrStdout(), f, res)
}

func formatFlag(cmd *cobra.Command) (output.Format, error) {
	format, _ := cmd.Flags().GetString("format")
	return output.ParseFormat(format)
}

func init() {
	filesCmd.PersistentFlags().String("format", "table", "output format: json, yaml, or table")

	filesListCmd.Flags().String("subpath", "", "directory under the vault root to list")
	filesListCmd.Flags().Int("max-depth", 0, "directory levels to expand (0 = all)")
	filesListCmd.Flags().Bool("sizes", false, "include file sizes in json and yaml output")

	filesReadCmd.Flags().String("root", ".", "vault root the files are relative to")
	filesReadCmd.Flags().Bool("continue-on-error", false, "report unreadable files instead of failing")

	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesReadCmd)
	rootCmd.AddCommand(filesCmd)
}
