// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/mapty/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "mapty": {
        "command": "mapty",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_workout      Record a running or cycling workout at a location
  list_workouts    List workouts, optionally by type
  get_workout      Get one workout by ID or short ID
  reset_workouts   Delete every workout

AVAILABLE RESOURCES:

  mapty://workouts   All workouts with per-type totals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, cfg.AppOptions(logger), cfg.GetLocation())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		logger.Infow("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
