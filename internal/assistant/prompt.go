// ABOUTME: Builds the assistant's system prompt from current store state.
// ABOUTME: The exercise catalog, gyms, and recent history ground the model.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/storage"
)

const promptPreamble = `You are a personal strength-training assistant embedded in a workout
tracking tool. You help the user plan workouts, build reusable templates,
and describe their gyms.

Rules:
- When the user asks you to plan, log, or set something up, call the
  propose_action tool. Never claim you saved anything; proposals are
  confirmed by the user before being written.
- Reference exercises ONLY by their numeric id from the catalog below.
  If the user names an exercise not in the catalog, pick the closest
  catalog entry and say so in your summary.
- Respect the equipment of the gym the user is training at. Do not
  program a barbell lift for a gym without a barbell.
- Prefer the user's recent working weights when suggesting loads.
- For questions that need no action, answer in plain text without the tool.`

// recentSessionWindow bounds how much history goes into the prompt.
const recentSessionWindow = 10

// BuildSystemPrompt assembles the grounding context the model needs to
// emit resolvable drafts.
func BuildSystemPrompt(repo storage.Repository) (string, error) {
	var b strings.Builder
	b.WriteString(promptPreamble)

	exercises, err := repo.ListExercises()
	if err != nil {
		return "", fmt.Errorf("load exercises: %w", err)
	}
	b.WriteString("\n\n## Exercise catalog\n")
	for _, e := range exercises {
		fmt.Fprintf(&b, "%d. %s", e.ID, e.Name)
		if len(e.RequiredEquipment) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(e.RequiredEquipment, ", "))
		}
		if len(e.Aliases) > 0 {
			fmt.Fprintf(&b, " (aka %s)", strings.Join(e.Aliases, ", "))
		}
		b.WriteByte('\n')
	}

	spaces, err := repo.ListSpaces()
	if err != nil {
		return "", fmt.Errorf("load gyms: %w", err)
	}
	if len(spaces) > 0 {
		b.WriteString("\n## Gyms\n")
		for _, s := range spaces {
			fmt.Fprintf(&b, "%d. %s", s.ID, s.Name)
			if s.IsDefault {
				b.WriteString(" (default)")
			}
			if len(s.EquipmentIDs) > 0 {
				fmt.Fprintf(&b, " (equipment: %s)", strings.Join(s.EquipmentIDs, ", "))
			}
			b.WriteByte('\n')
		}
	}

	templates, err := repo.ListTemplates()
	if err != nil {
		return "", fmt.Errorf("load templates: %w", err)
	}
	if len(templates) > 0 {
		b.WriteString("\n## Templates\n")
		for _, t := range templates {
			fmt.Fprintf(&b, "%d. %s\n", t.ID, t.Name)
		}
	}

	sessions, err := repo.ListSessions(recentSessionWindow)
	if err != nil {
		return "", fmt.Errorf("load sessions: %w", err)
	}
	if len(sessions) > 0 {
		b.WriteString("\n## Recent workouts\n")
		for _, s := range sessions {
			status := "finished"
			if s.Active() {
				status = "in progress"
			}
			fmt.Fprintf(&b, "- %s (%s)\n", s.StartedAt.Format("2006-01-02"), status)
		}
	}

	fmt.Fprintf(&b, "\nToday is %s.\n", time.Now().Format("Monday, 2006-01-02"))
	return b.String(), nil
}
