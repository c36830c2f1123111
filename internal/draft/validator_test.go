// ABOUTME: Tests for draft validation and normalization.
// ABOUTME: Covers aggregated errors, default filling, and gym name collisions.
package draft

import (
	"strings"
	"testing"

	"github.com/harperreed/lift/internal/models"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Exercises: map[int64]*models.Exercise{
			1: {ID: 1, Name: "Bench Press", DefaultSets: 3, DefaultReps: "5"},
			2: {ID: 2, Name: "Squat", DefaultSets: 5, DefaultReps: "5"},
			3: {ID: 3, Name: "Push Up"},
		},
		Spaces: []*models.WorkoutSpace{
			{ID: 10, Name: "Garage"},
			{ID: 11, Name: "Garage (2)"},
		},
		Templates: map[int64]*models.Template{
			20: {ID: 20, Name: "Push Day"},
		},
	}
}

func TestValidateAggregatesUnknownExercises(t *testing.T) {
	d := &Draft{
		Kind: KindCreateWorkout,
		Workout: &WorkoutPayload{
			Exercises: []ExerciseEntry{
				{ExerciseID: 99},
				{ExerciseID: 1},
				{ExerciseID: 42},
				{ExerciseID: 99}, // duplicate, reported once
			},
		},
	}

	r := Validate(d, testSnapshot())
	if r.Valid {
		t.Fatal("expected invalid result")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("errors = %v, want one aggregated error", r.Errors)
	}
	if r.Errors[0] != "Unknown exercise IDs: 42, 99" {
		t.Errorf("error = %q", r.Errors[0])
	}
	if r.Normalized != nil {
		t.Error("invalid result must not carry a normalized draft")
	}
}

func TestValidateUnknownTemplateAndGym(t *testing.T) {
	tpl := int64(999)
	gym := int64(888)
	d := &Draft{
		Kind: KindCreateWorkout,
		Workout: &WorkoutPayload{
			TemplateID: &tpl,
			SpaceID:    &gym,
			Exercises:  []ExerciseEntry{{ExerciseID: 1}},
		},
	}

	r := Validate(d, testSnapshot())
	if r.Valid {
		t.Fatal("expected invalid result")
	}
	if len(r.Errors) != 2 {
		t.Errorf("errors = %v, want template and gym errors", r.Errors)
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	d := &Draft{
		Kind: KindCreateWorkout,
		Workout: &WorkoutPayload{
			Exercises: []ExerciseEntry{
				{ExerciseID: 2},                                    // no sets at all
				{ExerciseID: 1, Sets: []SetEntry{{Reps: "8"}, {}}}, // one set missing reps
				{ExerciseID: 3, Sets: []SetEntry{{Reps: "15"}}},    // fully specified
			},
		},
	}

	r := Validate(d, testSnapshot())
	if !r.Valid {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}

	entries := r.Normalized.Workout.Exercises
	if len(entries[0].Sets) != 5 {
		t.Errorf("squat sets = %d, want 5 from defaults", len(entries[0].Sets))
	}
	for _, s := range entries[0].Sets {
		if s.Reps != "5" {
			t.Errorf("default reps = %q, want 5", s.Reps)
		}
	}
	if entries[0].Name != "Squat" {
		t.Errorf("entry name not filled: %q", entries[0].Name)
	}

	if entries[1].Sets[0].Reps != "8" {
		t.Errorf("explicit reps overwritten: %q", entries[1].Sets[0].Reps)
	}
	if entries[1].Sets[1].Reps != "5" {
		t.Errorf("missing reps = %q, want default 5", entries[1].Sets[1].Reps)
	}

	// Exercise 3 has no stored defaults; the empty set case would fall
	// back to 8-12, but fully specified entries pass through untouched.
	if len(entries[2].Sets) != 1 || entries[2].Sets[0].Reps != "15" {
		t.Errorf("specified sets changed: %+v", entries[2].Sets)
	}

	// The input draft is never mutated.
	if len(d.Workout.Exercises[0].Sets) != 0 {
		t.Error("Validate mutated its input")
	}
	if d.Workout.Exercises[0].Name != "" {
		t.Error("Validate mutated input entry name")
	}
}

func TestValidateTemplateRequiresName(t *testing.T) {
	d := &Draft{
		Kind: KindCreateTemplate,
		Template: &TemplatePayload{
			Name:      "   ",
			Exercises: []ExerciseEntry{{ExerciseID: 1}},
		},
	}

	r := Validate(d, testSnapshot())
	if r.Valid {
		t.Fatal("expected invalid result")
	}
	if !strings.Contains(r.Errors[0], "name") {
		t.Errorf("error = %q", r.Errors[0])
	}
}

func TestValidateTemplateRejectsDuplicateExercises(t *testing.T) {
	d := &Draft{
		Kind: KindCreateTemplate,
		Template: &TemplatePayload{
			Name: "Doubled Up",
			Exercises: []ExerciseEntry{
				{ExerciseID: 1, Sets: []SetEntry{{Reps: "5"}}},
				{ExerciseID: 2},
				{ExerciseID: 1, Sets: []SetEntry{{Reps: "8"}}},
			},
		},
	}

	r := Validate(d, testSnapshot())
	if r.Valid {
		t.Fatal("template with a repeated exercise must not validate")
	}
	if len(r.Errors) != 1 || r.Errors[0] != "Duplicate exercise IDs: 1" {
		t.Errorf("errors = %v, want one duplicate-id error", r.Errors)
	}
}

func TestValidateWorkoutAllowsRepeatedExercises(t *testing.T) {
	// A workout may hit the same exercise twice (e.g. heavy then backoff
	// sets); only templates are one row per exercise.
	d := &Draft{
		Kind: KindCreateWorkout,
		Workout: &WorkoutPayload{
			Exercises: []ExerciseEntry{
				{ExerciseID: 1, Sets: []SetEntry{{Reps: "3"}}},
				{ExerciseID: 1, Sets: []SetEntry{{Reps: "10"}}},
			},
		},
	}

	r := Validate(d, testSnapshot())
	if !r.Valid {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
}

func TestValidateRequiresExercises(t *testing.T) {
	d := &Draft{Kind: KindCreateWorkout, Workout: &WorkoutPayload{}}
	r := Validate(d, testSnapshot())
	if r.Valid {
		t.Fatal("expected invalid result")
	}

	d = &Draft{Kind: KindCreateWorkout}
	r = Validate(d, testSnapshot())
	if r.Valid {
		t.Fatal("expected invalid result for missing payload")
	}
}

func TestValidateGymNameCollision(t *testing.T) {
	d := &Draft{
		Kind: KindCreateGym,
		Gym:  &GymPayload{Name: "garage", EquipmentIDs: []string{"barbell", "flux capacitor"}},
	}

	r := Validate(d, testSnapshot())
	if !r.Valid {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}

	// "Garage" and "Garage (2)" exist, so the next free slot is (3).
	if r.Normalized.Gym.Name != "garage (3)" {
		t.Errorf("disambiguated name = %q, want garage (3)", r.Normalized.Gym.Name)
	}

	var collisionWarn, equipmentWarn bool
	for _, w := range r.Warnings {
		if strings.Contains(w, "already exists") {
			collisionWarn = true
		}
		if strings.Contains(w, "flux capacitor") {
			equipmentWarn = true
		}
	}
	if !collisionWarn {
		t.Errorf("missing collision warning: %v", r.Warnings)
	}
	if !equipmentWarn {
		t.Errorf("missing equipment warning: %v", r.Warnings)
	}

	if d.Gym.Name != "garage" {
		t.Error("Validate mutated input gym name")
	}
}

func TestDisambiguateName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"Hotel Gym", nil, "Hotel Gym"},
		{"Hotel Gym", []string{"Garage"}, "Hotel Gym"},
		{"Hotel Gym", []string{"hotel gym"}, "Hotel Gym (2)"},
		{"Hotel Gym", []string{"Hotel Gym", "Hotel Gym (2)"}, "Hotel Gym (3)"},
		{"Hotel Gym", []string{" hotel gym ", "HOTEL GYM (2)", "Hotel Gym (3)"}, "Hotel Gym (4)"},
	}
	for _, tt := range tests {
		if got := DisambiguateName(tt.name, tt.existing); got != tt.want {
			t.Errorf("DisambiguateName(%q, %v) = %q, want %q", tt.name, tt.existing, got, tt.want)
		}
	}
}
