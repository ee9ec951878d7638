// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdtasks CLI. It extracts
// checkbox tasks from a directory of Markdown notes, filters them by
// status, dates, and tags, and reports frontmatter tags. The serve
// subcommand exposes the same queries over HTTP.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtasks/internal/config"
	"github.com/pdiddy/mdtasks/internal/vault"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mdtasks CLI.
var rootCmd = &cobra.Command{
	Use:   "mdtasks",
	Short: "Extract and filter tasks from Markdown notes",
	Long: `mdtasks scans a directory of Markdown files for checkbox tasks
("- [ ] ...") and reports them with their status, dates, priority, tags,
and sub-items. Tasks can be filtered by status, due/created/completed
dates, and tags. Frontmatter tags can be listed and searched.

Settings come from .markdown-todo-extractor.{yaml,toml,json} in the scan
root or ~/.config/mdtasks/, from MDTASKS_* environment variables, and from
flags.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: <path>/.markdown-todo-extractor.yaml or ~/.config/mdtasks/)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "glob patterns to exclude (replaces exclude_paths from config)")
	rootCmd.PersistentFlags().StringSlice("extensions", nil, "file extensions to scan (default .md)")
	rootCmd.PersistentFlags().Int("workers", 0, "files parsed in parallel (default GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print skipped files and the config file in use")
}

// openVault loads configuration for root and opens a Vault on it.
func openVault(cmd *cobra.Command, root string) (*vault.Vault, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	res, err := config.Load(config.Options{
		File:  cfgFile,
		Root:  root,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	var warnings io.Writer
	if verbose {
		warnings = cmd.ErrOrStderr()
		if res.File != "" {
			fmt.Fprintln(warnings, "Using config file:", res.File)
		}
	}
	return vault.Open(root, res.Config, warnings)
}

// rootArg returns the scan root from args, defaulting to the working
// directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
