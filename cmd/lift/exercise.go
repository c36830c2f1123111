// ABOUTME: CLI commands for the exercise library.
// ABOUTME: Supports list, show, add, note, resolve, and import subcommands.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/resolver"
	"github.com/harperreed/lift/internal/storage"
)

var (
	exerciseMuscles   string
	exerciseEquipment string
	exerciseAliases   string
	exerciseSets      int
	exerciseReps      string
	importStatus      string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise library",
	Long: `Browse and extend the exercise library.

The library ships with common barbell, dumbbell, and bodyweight lifts.
Names are resolved fuzzily: "db bench", "pushups", and "rdl" all find
their canonical exercises.

COMMANDS:

  list     Browse the library
  show     View one exercise in detail
  add      Add a custom exercise
  note     Attach a personal note (e.g. "seat position 4")
  resolve  See how a free-text name resolves
  import   Import exercises from a JSON file`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls", "search"},
	Short:   "List exercises, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		query := resolver.Normalize(strings.Join(args, " "))

		faint := color.New(color.Faint)
		for _, e := range exercises {
			if query != "" && !exerciseMatches(query, e) {
				continue
			}
			equipment := ""
			if len(e.RequiredEquipment) > 0 {
				equipment = faint.Sprint(strings.Join(e.RequiredEquipment, ","))
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprintf("%4d", e.ID),
				padRight(e.Name, 28),
				equipment)
		}
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show exercise details",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := findExercise(strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Printf("Exercise: %s\n", e.Name)
		fmt.Printf("ID: %d\n", e.ID)
		if len(e.Aliases) > 0 {
			fmt.Printf("Aliases: %s\n", strings.Join(e.Aliases, ", "))
		}
		if len(e.PrimaryMuscles) > 0 {
			fmt.Printf("Primary muscles: %s\n", strings.Join(e.PrimaryMuscles, ", "))
		}
		if len(e.SecondaryMuscles) > 0 {
			fmt.Printf("Secondary muscles: %s\n", strings.Join(e.SecondaryMuscles, ", "))
		}
		if len(e.RequiredEquipment) > 0 {
			fmt.Printf("Equipment: %s\n", strings.Join(e.RequiredEquipment, ", "))
		}
		fmt.Printf("Defaults: %d x %s\n", e.DefaultSets, e.DefaultReps)

		note, err := store.GetExerciseNote(e.ID)
		if err == nil && note != "" {
			fmt.Printf("Note: %s\n", note)
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Long: `Add a custom exercise to the library.

Examples:
  lift exercise add "Sled Push" -m quads,glutes -e sled
  lift exercise add "Band Pull Apart" -e band --sets 3 --reps 15-20`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		e := models.NewExercise(name)
		if exerciseMuscles != "" {
			e.WithMuscles(splitList(exerciseMuscles)...)
		}
		if exerciseEquipment != "" {
			e.WithEquipment(splitList(exerciseEquipment)...)
		}
		if exerciseAliases != "" {
			e.WithAliases(splitList(exerciseAliases)...)
		}
		if exerciseSets > 0 {
			e.DefaultSets = exerciseSets
		}
		if exerciseReps != "" {
			e.DefaultReps = exerciseReps
		}

		if err := store.CreateExercise(e); err != nil {
			return fmt.Errorf("failed to create exercise: %w", err)
		}

		color.Green("✓ Added %s", e.Name)
		fmt.Printf("  ID: %d\n", e.ID)
		return nil
	},
}

var exerciseNoteCmd = &cobra.Command{
	Use:   "note <name> <note...>",
	Short: "Attach a personal note to an exercise",
	Long: `Attach a personal note to an exercise, shown on future workouts.

Examples:
  lift exercise note "leg press" "seat position 4"
  lift exercise note "lat pulldown" "use the wide grip bar"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := findExercise(args[0])
		if err != nil {
			return err
		}

		note := strings.Join(args[1:], " ")
		if err := store.SetExerciseNote(e.ID, note); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		color.Green("✓ Noted on %s", e.Name)
		return nil
	},
}

var exerciseResolveCmd = &cobra.Command{
	Use:   "resolve <text>",
	Short: "Show how a free-text name resolves",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		ix, err := buildIndex()
		if err != nil {
			return err
		}

		res := ix.Resolve(text, cfg.ResolverPolicy())
		if res.Status == resolver.StatusResolved {
			e := ix.Exercise(res.ExerciseID)
			color.Green("✓ %q resolves to %s (ID: %d)", text, e.Name, e.ID)
			return nil
		}

		if len(res.Suggestions) == 0 {
			fmt.Printf("%q did not match anything.\n", text)
			return nil
		}

		fmt.Printf("%q is ambiguous. Did you mean:\n", text)
		faint := color.New(color.Faint)
		for _, sug := range res.Suggestions {
			fmt.Printf("  %s %s %s\n",
				faint.Sprintf("%4d", sug.ExerciseID),
				padRight(sug.Name, 28),
				faint.Sprintf("%.2f", sug.Score))
		}
		return nil
	},
}

var exerciseImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import exercises from a JSON file",
	Long: `Import exercises from a JSON dataset.

The file holds an array of objects with name, equipment, primaryMuscles,
secondaryMuscles, and aliases fields. Exercises already in the library
(matched by stable ID) are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		raw, err := storage.ParseRawExercises(data)
		if err != nil {
			return fmt.Errorf("failed to parse file: %w", err)
		}

		status := models.ExerciseStatus(importStatus)
		switch status {
		case models.StatusStarter, models.StatusExtended, models.StatusUser:
		default:
			return fmt.Errorf("invalid status: %q", importStatus)
		}

		inserted, err := store.ImportExercises(raw, status)
		if err != nil {
			return fmt.Errorf("failed to import exercises: %w", err)
		}

		color.Green("✓ Imported %d exercises (%d skipped)", inserted, len(raw)-inserted)
		return nil
	},
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseMuscles, "muscles", "m", "", "comma-separated primary muscles")
	exerciseAddCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "comma-separated equipment ids")
	exerciseAddCmd.Flags().StringVarP(&exerciseAliases, "aliases", "a", "", "comma-separated aliases")
	exerciseAddCmd.Flags().IntVar(&exerciseSets, "sets", 0, "default number of sets")
	exerciseAddCmd.Flags().StringVar(&exerciseReps, "reps", "", "default rep target")

	exerciseImportCmd.Flags().StringVar(&importStatus, "status", string(models.StatusExtended), "status for imported exercises")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseNoteCmd)
	exerciseCmd.AddCommand(exerciseResolveCmd)
	exerciseCmd.AddCommand(exerciseImportCmd)
	rootCmd.AddCommand(exerciseCmd)
}

// buildIndex loads the library into a resolver index.
func buildIndex() (*resolver.Index, error) {
	exercises, err := store.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return resolver.BuildIndex(exercises), nil
}

// findExercise resolves a reference that may be an id or a name. Ambiguous
// names fail with the ranked suggestions in the error.
func findExercise(ref string) (*models.Exercise, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		e, err := store.GetExercise(id)
		if err != nil {
			return nil, fmt.Errorf("exercise not found: %s", ref)
		}
		return e, nil
	}

	ix, err := buildIndex()
	if err != nil {
		return nil, err
	}

	res := ix.Resolve(ref, cfg.ResolverPolicy())
	if res.Status == resolver.StatusResolved {
		return ix.Exercise(res.ExerciseID), nil
	}

	if len(res.Suggestions) == 0 {
		return nil, fmt.Errorf("no exercise matches %q", ref)
	}
	names := make([]string, 0, len(res.Suggestions))
	for _, sug := range res.Suggestions {
		names = append(names, sug.Name)
	}
	return nil, fmt.Errorf("%q is ambiguous; did you mean: %s", ref, strings.Join(names, ", "))
}

// exerciseMatches reports whether a normalized query hits the exercise's
// name or any alias.
func exerciseMatches(query string, e *models.Exercise) bool {
	if strings.Contains(resolver.Normalize(e.Name), query) {
		return true
	}
	for _, a := range e.Aliases {
		if strings.Contains(resolver.Normalize(a), query) {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
