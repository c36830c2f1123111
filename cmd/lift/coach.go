// ABOUTME: CLI command for the AI coach.
// ABOUTME: Proposes drafts, shows the validated preview, and confirms interactively.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/assistant"
	"github.com/harperreed/lift/internal/draft"
)

var coachYes bool

var coachCmd = &cobra.Command{
	Use:   "coach <request...>",
	Short: "Ask the AI coach",
	Long: `Ask the AI coach to plan a workout, build a template, or set up a gym.

The coach proposes an action, lift validates it against your library and
gyms, and nothing is saved until you confirm.

Examples:
  lift coach "plan me a leg day for my home gym"
  lift coach "make a 3-day full body template"
  lift coach "what should I do for my weak upper back?"

Requires ANTHROPIC_API_KEY (or assistant.api_key in config).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request := strings.Join(args, " ")

		client, err := assistant.NewClient(cfg.Assistant.APIKey, cfg.GetModel())
		if err != nil {
			return err
		}
		svc := assistant.NewService(store, client)

		proposal, err := svc.Propose(cmd.Context(), request)
		if err != nil {
			return err
		}

		if proposal.Text != "" {
			fmt.Println(proposal.Text)
		}
		if proposal.Draft == nil {
			return nil
		}

		fmt.Println()
		printDraft(proposal.Draft, proposal.Validation)

		if !proposal.Validation.Valid {
			return fmt.Errorf("proposal is invalid; try rephrasing")
		}

		if !coachYes && !confirm("Apply this?") {
			svc.Discard(proposal.Draft.ID)
			fmt.Println("Discarded.")
			return nil
		}

		res, err := svc.Confirm(proposal.Draft.ID)
		if err != nil {
			return fmt.Errorf("failed to apply proposal: %w", err)
		}

		switch res.Kind {
		case draft.KindCreateWorkout:
			color.Green("✓ Created workout %d", res.SessionID)
			fmt.Println("  Log sets with 'lift workout log', finish with 'lift workout done'.")
		case draft.KindCreateTemplate:
			color.Green("✓ Created template %d", res.TemplateID)
		case draft.KindCreateGym:
			color.Green("✓ Created gym %q (ID: %d)", res.SpaceName, res.SpaceID)
		}
		return nil
	},
}

func init() {
	coachCmd.Flags().BoolVarP(&coachYes, "yes", "y", false, "apply the proposal without asking")
	rootCmd.AddCommand(coachCmd)
}

// printDraft renders the validated proposal for review.
func printDraft(d *draft.Draft, result *draft.Result) {
	title := d.Title
	if title == "" {
		title = string(d.Kind)
	}
	color.New(color.Bold).Printf("Proposal: %s\n", title)
	if d.Summary != "" {
		fmt.Printf("  %s\n", d.Summary)
	}

	shown := d
	if result != nil && result.Normalized != nil {
		shown = result.Normalized
	}

	var entries []draft.ExerciseEntry
	switch {
	case shown.Workout != nil:
		entries = shown.Workout.Exercises
	case shown.Template != nil:
		fmt.Printf("  Template: %s\n", shown.Template.Name)
		entries = shown.Template.Exercises
	case shown.Gym != nil:
		fmt.Printf("  Gym: %s\n", shown.Gym.Name)
		if len(shown.Gym.EquipmentIDs) > 0 {
			fmt.Printf("  Equipment: %s\n", strings.Join(shown.Gym.EquipmentIDs, ", "))
		}
	}

	for i, e := range entries {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("exercise %d", e.ExerciseID)
		}
		reps := "?"
		if len(e.Sets) > 0 {
			reps = string(e.Sets[0].Reps)
		}
		fmt.Printf("  %d. %s (%d x %s)\n", i+1, name, len(e.Sets), reps)
	}

	if result == nil {
		return
	}
	for _, w := range result.Warnings {
		color.Yellow("  ⚠ %s", w)
	}
	for _, e := range result.Errors {
		color.Red("  ✗ %s", e)
	}
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
