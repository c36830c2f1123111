// ABOUTME: CLI commands for scheduling workouts on future dates.
// ABOUTME: Supports add, list, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/models"
)

var (
	planTemplate  string
	planExercises []string
	planAll       bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Schedule workouts",
	Long: `Schedule workouts on calendar dates.

A plan either points at a template or lists exercises directly.

Examples:
  lift plan add 2026-09-02 --template "Push Day"
  lift plan add tomorrow -x squat -x "bench press"
  lift plan list`,
}

var planAddCmd = &cobra.Command{
	Use:   "add <date>",
	Short: "Schedule a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parsePlanDate(args[0])
		if err != nil {
			return err
		}

		p := &models.PlannedWorkout{Date: date, Source: "user"}

		if planTemplate != "" {
			t, _, err := findTemplate(planTemplate)
			if err != nil {
				return err
			}
			p.TemplateID = &t.ID
		}

		for _, ref := range planExercises {
			e, err := findExercise(ref)
			if err != nil {
				return err
			}
			p.Exercises = append(p.Exercises, models.PlannedExercise{
				ExerciseID: e.ID,
				TargetSets: e.DefaultSets,
				TargetReps: e.DefaultReps,
			})
		}

		if p.TemplateID == nil && len(p.Exercises) == 0 {
			return fmt.Errorf("a plan needs --template or at least one -x exercise")
		}

		if err := store.CreatePlan(p); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}

		color.Green("✓ Planned workout for %s", p.Date)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List planned workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		from := time.Now().Format("2006-01-02")
		if planAll {
			from = ""
		}

		plans, err := store.ListPlans(from)
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}

		if len(plans) == 0 {
			fmt.Println("Nothing planned.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range plans {
			what := fmt.Sprintf("%d exercises", len(p.Exercises))
			if p.TemplateID != nil {
				if t, err := store.GetTemplate(*p.TemplateID); err == nil {
					what = t.Name
				} else {
					what = fmt.Sprintf("template %d", *p.TemplateID)
				}
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprintf("%3d", p.ID),
				p.Date,
				padRight(what, 24),
				faint.Sprint(p.Source))
		}
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a planned workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid plan id: %s", args[0])
		}

		if err := store.DeletePlan(id); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}

		color.Green("✓ Deleted plan %d", id)
		return nil
	},
}

func init() {
	planAddCmd.Flags().StringVarP(&planTemplate, "template", "t", "", "template id or name")
	planAddCmd.Flags().StringArrayVarP(&planExercises, "exercise", "x", nil, "exercise to include (repeatable)")

	planListCmd.Flags().BoolVar(&planAll, "all", false, "include past plans")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}

// parsePlanDate accepts YYYY-MM-DD plus the shorthands today and tomorrow.
func parsePlanDate(s string) (string, error) {
	switch s {
	case "today":
		return time.Now().Format("2006-01-02"), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1).Format("2006-01-02"), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD, today, or tomorrow)", s)
	}
	return t.Format("2006-01-02"), nil
}
