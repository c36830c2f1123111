// ABOUTME: Root Cobra command for lift CLI.
// ABOUTME: Opens the SQLite store via Persistent Pre/PostRunE.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/storage"
)

var (
	cfg   *config.Config
	store *storage.DB
)

var rootCmd = &cobra.Command{
	Use:   "lift",
	Short: "Personal workout planner and log",
	Long: `Lift is a CLI tool for planning and logging strength workouts.

QUICK START:

  $ lift workout start                  # Start an empty workout
  $ lift workout log "bench" 8 135      # Log a set: exercise, reps, weight
  $ lift workout log squat 5 225
  $ lift workout done                   # Finish the workout
  $ lift workout list                   # Recent workouts

EXERCISES:

  The exercise library ships with common lifts and understands shorthand:
  "db bench" resolves to Dumbbell Bench Press, "rdl" to Romanian Deadlift.

  $ lift exercise list                  # Browse the library
  $ lift exercise resolve "db ohp"      # See what a name resolves to
  $ lift exercise add "Sled Push"       # Add your own

GYMS AND TEMPLATES:

  $ lift gym add "Home" -e barbell,squat_rack,bench --default
  $ lift template add "Push Day" bench "overhead press" dips
  $ lift workout start --template "Push Day"

AI COACH:

  $ lift coach "plan me a leg day for my home gym"

  The coach proposes a workout; nothing is saved until you confirm.
  Requires ANTHROPIC_API_KEY.

MCP INTEGRATION:

  Run 'lift mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "lift": { "command": "lift", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Workouts are stored in SQLite at ~/.local/share/lift/lift.db.
  Config lives at ~/.config/lift/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// padRight pads s with spaces to the given length.
func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
