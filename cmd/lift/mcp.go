// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your workout data
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "lift": {
        "command": "lift",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  resolve_exercise  Resolve a free-text name to an exercise ID
  search_exercises  Search the exercise library
  list_gyms         List gyms and their equipment
  list_workouts     List recent workout sessions
  get_workout       Get a workout with all sets
  last_performance  Most recent sets for given exercises
  validate_action   Dry-run validate a proposed action
  execute_action    Validate and commit a proposed action
  log_set           Log a set against the active session
  finish_workout    Finish the active session

AVAILABLE RESOURCES:

  lift://catalog    The exercise library
  lift://recent     Last 10 workouts
  lift://summary    Gyms, templates, usage, and upcoming plans`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, cfg.ResolverPolicy())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
