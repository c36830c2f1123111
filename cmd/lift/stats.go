// ABOUTME: CLI command for training statistics.
// ABOUTME: Shows per-exercise usage across finished workouts.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show exercise usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := store.UsageReports()
		if err != nil {
			return fmt.Errorf("failed to load usage: %w", err)
		}

		if len(reports) == 0 {
			fmt.Println("No finished workouts yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range reports {
			if r.Exercise == nil {
				continue
			}
			name := r.Exercise.Name
			fmt.Printf("%s %s\n",
				padRight(name, 28),
				faint.Sprintf("%3d workouts", r.Count))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
