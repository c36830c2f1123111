// ABOUTME: Action draft contract: a proposed workout, template, or gym.
// ABOUTME: Drafts arrive as loose assistant JSON and are parsed tolerantly.
package draft

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies what a draft proposes to create.
type Kind string

const (
	KindCreateWorkout  Kind = "create_workout"
	KindCreateTemplate Kind = "create_template"
	KindCreateGym      Kind = "create_gym"
)

// Draft is a proposed, not-yet-committed action. It is ephemeral: drafts
// are constructed per request and never persisted as a table. The ID lets
// CLI and MCP callers reference a pending draft.
type Draft struct {
	ID         uuid.UUID `json:"-"`
	Kind       Kind      `json:"kind"`
	Confidence float64   `json:"confidence,omitempty"`
	Risk       string    `json:"risk,omitempty"`
	Title      string    `json:"title,omitempty"`
	Summary    string    `json:"summary,omitempty"`

	Workout  *WorkoutPayload  `json:"workout,omitempty"`
	Template *TemplatePayload `json:"template,omitempty"`
	Gym      *GymPayload      `json:"gym,omitempty"`
}

// WorkoutPayload proposes a new workout session.
type WorkoutPayload struct {
	SpaceID    *int64          `json:"space_id,omitempty"`
	TemplateID *int64          `json:"template_id,omitempty"`
	Note       string          `json:"note,omitempty"`
	Exercises  []ExerciseEntry `json:"exercises"`
}

// TemplatePayload proposes a new reusable template.
type TemplatePayload struct {
	Name      string          `json:"name"`
	SpaceID   *int64          `json:"space_id,omitempty"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// GymPayload proposes a new workout space.
type GymPayload struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	EquipmentIDs []string `json:"equipment_ids,omitempty"`
	IsDefault    bool     `json:"is_default,omitempty"`
	IsTemporary  bool     `json:"is_temporary,omitempty"`
}

// ExerciseEntry is one ordered exercise in a workout or template payload.
// Name is the assistant's free-text reference, kept for error messages;
// ExerciseID is the canonical id it resolved to.
type ExerciseEntry struct {
	ExerciseID  int64      `json:"exercise_id"`
	Name        string     `json:"name,omitempty"`
	Sets        []SetEntry `json:"sets,omitempty"`
	RestSeconds *int       `json:"rest_seconds,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// SetEntry is one proposed set. Reps and weight tolerate both string and
// numeric JSON encodings, since assistants emit either.
type SetEntry struct {
	Reps     RepSpec    `json:"reps,omitempty"`
	Weight   *FlexFloat `json:"weight,omitempty"`
	IsWarmup bool       `json:"is_warmup,omitempty"`
}

// RepSpec is a rep target as text, so ranges like "8-12" survive. Numeric
// JSON values are coerced to their canonical string form.
type RepSpec string

// UnmarshalJSON accepts both "8-12" and 8.
func (r *RepSpec) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RepSpec(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("reps must be a string or number: %w", err)
	}
	*r = RepSpec(n.String())
	return nil
}

// FlexFloat is a float64 that also accepts quoted numbers.
type FlexFloat float64

// UnmarshalJSON accepts both 135.5 and "135.5".
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	var n json.Number = json.Number(s)
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("weight must be numeric: %w", err)
	}
	*f = FlexFloat(v)
	return nil
}

// Parse decodes a draft from raw assistant JSON. Unknown fields are
// ignored; only the kind is checked here, everything else is the
// validator's job.
func Parse(raw []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse draft: %w", err)
	}
	switch d.Kind {
	case KindCreateWorkout, KindCreateTemplate, KindCreateGym:
	default:
		return nil, fmt.Errorf("unknown draft kind: %q", d.Kind)
	}
	d.ID = uuid.New()
	return &d, nil
}

// clone deep-copies a draft so normalization never mutates the input.
func (d *Draft) clone() *Draft {
	out := *d
	if d.Workout != nil {
		w := *d.Workout
		w.Exercises = cloneEntries(d.Workout.Exercises)
		out.Workout = &w
	}
	if d.Template != nil {
		t := *d.Template
		t.Exercises = cloneEntries(d.Template.Exercises)
		out.Template = &t
	}
	if d.Gym != nil {
		g := *d.Gym
		g.EquipmentIDs = append([]string(nil), d.Gym.EquipmentIDs...)
		out.Gym = &g
	}
	return &out
}

func cloneEntries(entries []ExerciseEntry) []ExerciseEntry {
	out := make([]ExerciseEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		out[i].Sets = append([]SetEntry(nil), e.Sets...)
	}
	return out
}
