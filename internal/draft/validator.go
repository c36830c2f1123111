// ABOUTME: Structural and referential validation of action drafts.
// ABOUTME: Pure function of draft + store snapshot; never mutates the store.
package draft

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
)

// Snapshot is the read-side state validation runs against. It is loaded
// once per request; the validator itself never touches the store.
type Snapshot struct {
	Exercises map[int64]*models.Exercise
	Spaces    []*models.WorkoutSpace
	Templates map[int64]*models.Template
}

// SnapshotFrom loads current store state for validation.
func SnapshotFrom(repo storage.Repository) (*Snapshot, error) {
	exercises, err := repo.ListExercises()
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	spaces, err := repo.ListSpaces()
	if err != nil {
		return nil, err
	}

	templates, err := repo.ListTemplates()
	if err != nil {
		return nil, err
	}
	tplByID := make(map[int64]*models.Template, len(templates))
	for _, t := range templates {
		tplByID[t.ID] = t
	}

	return &Snapshot{Exercises: byID, Spaces: spaces, Templates: tplByID}, nil
}

// Result is the validator's output. Errors block execution; warnings do
// not. Normalized is only set when Valid.
type Result struct {
	Valid      bool
	Errors     []string
	Warnings   []string
	Normalized *Draft
}

// Validate checks a draft for structural and referential correctness and
// produces a normalized copy ready for execution. All referential
// problems are collected in one pass rather than failing on the first.
func Validate(d *Draft, snap *Snapshot) *Result {
	r := &Result{}
	n := d.clone()

	switch d.Kind {
	case KindCreateWorkout:
		if n.Workout == nil {
			r.Errors = append(r.Errors, "Workout payload is missing.")
			break
		}
		validateEntries(r, snap, n.Workout.Exercises)
		if n.Workout.TemplateID != nil {
			if _, ok := snap.Templates[*n.Workout.TemplateID]; !ok {
				r.Errors = append(r.Errors, fmt.Sprintf("Unknown template ID: %d", *n.Workout.TemplateID))
			}
		}
		validateSpaceRef(r, snap, n.Workout.SpaceID)
		normalizeEntries(snap, n.Workout.Exercises)

	case KindCreateTemplate:
		if n.Template == nil {
			r.Errors = append(r.Errors, "Template payload is missing.")
			break
		}
		if strings.TrimSpace(n.Template.Name) == "" {
			r.Errors = append(r.Errors, "Template name is required.")
		}
		validateEntries(r, snap, n.Template.Exercises)
		validateNoDuplicates(r, n.Template.Exercises)
		validateSpaceRef(r, snap, n.Template.SpaceID)
		normalizeEntries(snap, n.Template.Exercises)

	case KindCreateGym:
		if n.Gym == nil {
			r.Errors = append(r.Errors, "Gym payload is missing.")
			break
		}
		name := strings.TrimSpace(n.Gym.Name)
		if name == "" {
			r.Errors = append(r.Errors, "Gym name is required.")
			break
		}
		for _, id := range n.Gym.EquipmentIDs {
			if !storage.ValidEquipmentID(id) {
				r.Warnings = append(r.Warnings, fmt.Sprintf("Unknown equipment %q will be ignored.", id))
			}
		}
		existing := make([]string, 0, len(snap.Spaces))
		for _, s := range snap.Spaces {
			existing = append(existing, s.Name)
		}
		unique := DisambiguateName(name, existing)
		if unique != name {
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("A gym named %q already exists; it will be created as %q.", name, unique))
		}
		n.Gym.Name = unique

	default:
		r.Errors = append(r.Errors, fmt.Sprintf("Unknown action kind: %q", d.Kind))
	}

	r.Valid = len(r.Errors) == 0
	if r.Valid {
		r.Normalized = n
	}
	return r
}

// validateEntries checks the ordered exercise list, aggregating every
// unresolved id into a single error.
func validateEntries(r *Result, snap *Snapshot, entries []ExerciseEntry) {
	if len(entries) == 0 {
		r.Errors = append(r.Errors, "At least one exercise is required.")
		return
	}

	var unknown []int64
	seen := make(map[int64]bool)
	for _, e := range entries {
		if _, ok := snap.Exercises[e.ExerciseID]; !ok && !seen[e.ExerciseID] {
			unknown = append(unknown, e.ExerciseID)
			seen[e.ExerciseID] = true
		}
	}
	if len(unknown) > 0 {
		r.Errors = append(r.Errors, "Unknown exercise IDs: "+joinIDs(unknown))
	}
}

// validateNoDuplicates rejects repeated exercise ids. Templates store one
// row per exercise; a workout repeating an exercise is fine, a template
// cannot.
func validateNoDuplicates(r *Result, entries []ExerciseEntry) {
	counts := make(map[int64]int)
	var dups []int64
	for _, e := range entries {
		counts[e.ExerciseID]++
		if counts[e.ExerciseID] == 2 {
			dups = append(dups, e.ExerciseID)
		}
	}
	if len(dups) > 0 {
		r.Errors = append(r.Errors, "Duplicate exercise IDs: "+joinIDs(dups))
	}
}

// joinIDs renders ids sorted and comma-separated for error messages.
func joinIDs(ids []int64) string {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}

// validateSpaceRef checks an optional space reference.
func validateSpaceRef(r *Result, snap *Snapshot, spaceID *int64) {
	if spaceID == nil {
		return
	}
	for _, s := range snap.Spaces {
		if s.ID == *spaceID {
			return
		}
	}
	r.Errors = append(r.Errors, fmt.Sprintf("Unknown gym ID: %d", *spaceID))
}

// normalizeEntries fills missing sets from the exercise's defaults and
// coerces set shapes to their canonical representation. Only called on
// entries whose exercise ids all resolved.
func normalizeEntries(snap *Snapshot, entries []ExerciseEntry) {
	for i := range entries {
		e, ok := snap.Exercises[entries[i].ExerciseID]
		if !ok {
			continue
		}
		if entries[i].Name == "" {
			entries[i].Name = e.Name
		}

		defaultReps := e.DefaultReps
		if defaultReps == "" {
			defaultReps = "8-12"
		}

		if len(entries[i].Sets) == 0 {
			count := e.DefaultSets
			if count <= 0 {
				count = 3
			}
			sets := make([]SetEntry, count)
			for j := range sets {
				sets[j].Reps = RepSpec(defaultReps)
			}
			entries[i].Sets = sets
			continue
		}

		for j := range entries[i].Sets {
			if entries[i].Sets[j].Reps == "" {
				entries[i].Sets[j].Reps = RepSpec(defaultReps)
			}
		}
	}
}

// DisambiguateName returns name when it is free, otherwise the first of
// "name (2)", "name (3)", ... not already taken. Comparison is
// case-insensitive after trimming.
func DisambiguateName(name string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, n := range existing {
		taken[strings.ToLower(strings.TrimSpace(n))] = true
	}

	candidate := name
	for n := 2; taken[strings.ToLower(strings.TrimSpace(candidate))]; n++ {
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	return candidate
}
