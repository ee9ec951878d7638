// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdtasks/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Serve vault queries over HTTP",
	Long: `Serve starts an HTTP server answering the same queries as the tasks,
tags, files, and daily commands:

  GET|POST /api/tasks               filter options as query string or JSON body
  GET|POST /api/tags                frontmatter tag counts
  GET|POST /api/tags/unique         distinct frontmatter tags
  GET|POST /api/tags/search         documents by frontmatter tag
  GET|POST /api/files               directory tree
  GET|POST /api/files/read          contents of one or more notes
  GET|POST /api/daily-notes         the daily note for a date
  GET|POST /api/daily-notes/search  daily notes in a date range
  GET      /healthz

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	v, err := openVault(cmd, rootArg(args))
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := server.NewEngine(v, cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := v.Config().Serve.Addr
	fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on %s\n", v.Root(), addr)
	if err := server.Run(ctx, addr, engine); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Server stopped")
	return nil
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default serve.addr from config, :8000)")

	rootCmd.AddCommand(serveCmd)
}
