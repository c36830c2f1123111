// ABOUTME: CLI commands for reusable workout templates.
// ABOUTME: Supports add, list, show, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/models"
)

var templateGym int64

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage workout templates",
	Long: `Manage reusable workout templates.

A template is an ordered list of exercises with set and rep targets.
Starting a workout from a template pre-fills its exercises.

Examples:
  lift template add "Push Day" bench "overhead press" dips
  lift workout start --template "Push Day"

Exercise names are resolved fuzzily; ambiguous names abort with
suggestions so a template never silently picks the wrong lift.`,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name> <exercise>...",
	Short: "Add a template",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		t := models.NewTemplate(name)
		if templateGym > 0 {
			t.WithSpace(templateGym)
		}

		for i, ref := range args[1:] {
			e, err := findExercise(ref)
			if err != nil {
				return err
			}
			t.Items = append(t.Items, models.TemplateItem{
				ExerciseID: e.ID,
				SortOrder:  i,
				TargetSets: e.DefaultSets,
				TargetReps: e.DefaultReps,
			})
		}

		if err := store.CreateTemplate(t); err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		color.Green("✓ Added template %s", t.Name)
		fmt.Printf("  ID: %d (%d exercises)\n", t.ID, len(t.Items))
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := store.ListTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if len(templates) == 0 {
			fmt.Println("No templates yet. Add one with 'lift template add'.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			fmt.Printf("%s %s %s\n",
				faint.Sprintf("%3d", t.ID),
				padRight(t.Name, 24),
				faint.Sprint(t.CreatedAt.Format("2006-01-02")))
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show template details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid template id: %s", args[0])
		}

		t, exercises, err := store.GetTemplateWithItems(id)
		if err != nil {
			return fmt.Errorf("template not found: %d", id)
		}

		fmt.Printf("Template: %s\n", t.Name)
		for _, item := range t.Items {
			name := fmt.Sprintf("exercise %d", item.ExerciseID)
			if e, ok := exercises[item.ExerciseID]; ok {
				name = e.Name
			}
			fmt.Printf("  %d. %s (%d x %s)\n", item.SortOrder+1, name, item.TargetSets, item.TargetReps)
		}
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid template id: %s", args[0])
		}

		if err := store.DeleteTemplate(id); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}

		color.Green("✓ Deleted template %d", id)
		return nil
	},
}

func init() {
	templateAddCmd.Flags().Int64VarP(&templateGym, "gym", "g", 0, "pin the template to a gym id")

	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}
