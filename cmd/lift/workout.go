// ABOUTME: CLI commands for live workout sessions.
// ABOUTME: Supports start, log, done, show, list, and last subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/models"
)

var (
	workoutTemplate   string
	workoutGym        int64
	workoutNote       string
	workoutWarmup     bool
	workoutReflection string
	workoutLimit      int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track workout sessions set by set.

WORKFLOW:

  1. Start a session:   lift workout start --template "Push Day"
  2. Log sets as you go:  lift workout log bench 8 135
  3. Finish:            lift workout done --reflection "felt strong"

Only one session is active at a time. Logging a set for an exercise not
yet in the session adds it automatically.

COMMANDS:

  start    Start a workout session
  log      Log a set against the active session
  done     Finish the active session
  show     View a workout with all its sets
  list     List recent workouts
  last     Show your most recent sets for an exercise`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout session",
	Long: `Start a workout session.

Examples:
  lift workout start
  lift workout start --template "Push Day"
  lift workout start --gym 2 --note "short on time"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := store.ActiveSession()
		if err != nil {
			return fmt.Errorf("failed to check active session: %w", err)
		}
		if active != nil {
			return fmt.Errorf("workout %d is already in progress; finish it with 'lift workout done'", active.ID)
		}

		s := models.NewSession()
		if workoutNote != "" {
			s.WithNote(workoutNote)
		}

		if workoutGym > 0 {
			s.WithSpace(workoutGym)
		} else if def, err := store.DefaultSpace(); err == nil && def != nil {
			s.WithSpace(def.ID)
		}

		if workoutTemplate != "" {
			t, exercises, err := findTemplate(workoutTemplate)
			if err != nil {
				return err
			}
			s.WithTemplate(t.ID)
			for _, item := range t.Items {
				s.Items = append(s.Items, models.SessionItem{
					ExerciseID: item.ExerciseID,
					TargetSets: item.TargetSets,
					TargetReps: item.TargetReps,
					Notes:      item.Notes,
				})
			}
			if err := store.CreateSessionWithItems(s); err != nil {
				return fmt.Errorf("failed to start workout: %w", err)
			}

			color.Green("✓ Started workout from %s", t.Name)
			fmt.Printf("  ID: %d\n", s.ID)
			ids := make([]int64, 0, len(t.Items))
			for _, item := range t.Items {
				ids = append(ids, item.ExerciseID)
			}
			printLastPerformance(ids, exercises)
			return nil
		}

		if err := store.CreateSession(s); err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		color.Green("✓ Started workout")
		fmt.Printf("  ID: %d\n", s.ID)
		return nil
	},
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <exercise> <reps> [weight]",
	Short: "Log a set",
	Long: `Log one set against the active workout session.

Examples:
  lift workout log bench 8 135
  lift workout log "db row" 12 50
  lift workout log squat 5 225 --warmup`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := store.ActiveSession()
		if err != nil {
			return fmt.Errorf("failed to check active session: %w", err)
		}
		if active == nil {
			return fmt.Errorf("no active workout; start one with 'lift workout start'")
		}

		e, err := findExercise(args[0])
		if err != nil {
			return err
		}

		set := models.SessionSet{
			Reps:       args[1],
			IsWarmup:   workoutWarmup,
			IsComplete: true,
		}
		if len(args) > 2 {
			weight, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid weight: %s", args[2])
			}
			set.Weight = &weight
		}

		logged, err := store.AddSetToSession(active.ID, e.ID, set)
		if err != nil {
			return fmt.Errorf("failed to log set: %w", err)
		}

		weight := ""
		if logged.Weight != nil {
			weight = fmt.Sprintf(" @ %g", *logged.Weight)
		}
		color.Green("✓ %s set %d: %s reps%s", e.Name, logged.SetNumber, logged.Reps, weight)

		if note, err := store.GetExerciseNote(e.ID); err == nil && note != "" && logged.SetNumber == 1 {
			color.New(color.Faint).Printf("  note: %s\n", note)
		}
		return nil
	},
}

var workoutDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Finish the active workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := store.ActiveSession()
		if err != nil {
			return fmt.Errorf("failed to check active session: %w", err)
		}
		if active == nil {
			return fmt.Errorf("no active workout")
		}

		if err := store.FinishSession(active.ID, workoutReflection); err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}

		color.Green("✓ Finished workout %d", active.ID)
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		s, exercises, err := store.GetSessionWithSets(id)
		if err != nil {
			return fmt.Errorf("workout not found: %d", id)
		}

		fmt.Printf("Workout: %d\n", s.ID)
		fmt.Printf("Started: %s\n", s.StartedAt.Format("2006-01-02 15:04"))
		if s.FinishedAt != nil {
			fmt.Printf("Finished: %s\n", s.FinishedAt.Format("2006-01-02 15:04"))
		} else {
			fmt.Println("Status: in progress")
		}
		if s.Note != nil {
			fmt.Printf("Note: %s\n", *s.Note)
		}

		faint := color.New(color.Faint)
		for _, item := range s.Items {
			name := fmt.Sprintf("exercise %d", item.ExerciseID)
			if e, ok := exercises[item.ExerciseID]; ok {
				name = e.Name
			}
			fmt.Printf("\n%s\n", name)
			for _, set := range item.Sets {
				weight := ""
				if set.Weight != nil {
					weight = fmt.Sprintf(" @ %g", *set.Weight)
				}
				warmup := ""
				if set.IsWarmup {
					warmup = faint.Sprint(" (warmup)")
				}
				fmt.Printf("  %d. %s reps%s%s\n", set.SetNumber, set.Reps, weight, warmup)
			}
		}

		if s.Reflection != nil {
			fmt.Printf("\nReflection: %s\n", *s.Reflection)
		}
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := store.ListSessions(workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			status := ""
			if s.Active() {
				status = color.YellowString("in progress")
			}
			note := ""
			if s.Note != nil {
				note = faint.Sprintf("(%s)", truncate(*s.Note, 30))
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprintf("%4d", s.ID),
				s.StartedAt.Format("2006-01-02 15:04"),
				status,
				note)
		}
		return nil
	},
}

var workoutLastCmd = &cobra.Command{
	Use:   "last <exercise>",
	Short: "Show your most recent sets for an exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := findExercise(strings.Join(args, " "))
		if err != nil {
			return err
		}

		perf, err := store.LastPerformance([]int64{e.ID})
		if err != nil {
			return fmt.Errorf("failed to load performance: %w", err)
		}

		sets := perf[e.ID]
		if len(sets) == 0 {
			fmt.Printf("No history for %s yet.\n", e.Name)
			return nil
		}

		fmt.Printf("Last %s:\n", e.Name)
		for _, set := range sets {
			weight := ""
			if set.Weight != nil {
				weight = fmt.Sprintf(" @ %g", *set.Weight)
			}
			fmt.Printf("  %d. %s reps%s\n", set.SetNumber, set.Reps, weight)
		}
		return nil
	},
}

func init() {
	workoutStartCmd.Flags().StringVarP(&workoutTemplate, "template", "t", "", "template id or name to start from")
	workoutStartCmd.Flags().Int64VarP(&workoutGym, "gym", "g", 0, "gym id (defaults to the default gym)")
	workoutStartCmd.Flags().StringVarP(&workoutNote, "note", "n", "", "session note")

	workoutLogCmd.Flags().BoolVar(&workoutWarmup, "warmup", false, "mark the set as a warmup")

	workoutDoneCmd.Flags().StringVarP(&workoutReflection, "reflection", "r", "", "how the workout went")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutDoneCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutLastCmd)
	rootCmd.AddCommand(workoutCmd)
}

// findTemplate resolves a template by id or exact name.
func findTemplate(ref string) (*models.Template, map[int64]*models.Exercise, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		t, exercises, err := store.GetTemplateWithItems(id)
		if err != nil {
			return nil, nil, fmt.Errorf("template not found: %s", ref)
		}
		return t, exercises, nil
	}

	templates, err := store.ListTemplates()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, t := range templates {
		if strings.EqualFold(t.Name, ref) {
			return store.GetTemplateWithItems(t.ID)
		}
	}
	return nil, nil, fmt.Errorf("template not found: %s", ref)
}

// printLastPerformance shows the previous sets for the listed exercises,
// so targets are easy to beat.
func printLastPerformance(ids []int64, exercises map[int64]*models.Exercise) {
	perf, err := store.LastPerformance(ids)
	if err != nil || len(perf) == 0 {
		return
	}

	faint := color.New(color.Faint)
	for _, id := range ids {
		sets := perf[id]
		if len(sets) == 0 {
			continue
		}
		name := fmt.Sprintf("exercise %d", id)
		if e, ok := exercises[id]; ok {
			name = e.Name
		}
		parts := make([]string, 0, len(sets))
		for _, set := range sets {
			p := set.Reps
			if set.Weight != nil {
				p = fmt.Sprintf("%sx%g", set.Reps, *set.Weight)
			}
			parts = append(parts, p)
		}
		faint.Printf("  last %s: %s\n", name, strings.Join(parts, ", "))
	}
}
