// ABOUTME: Tests for tolerant draft parsing.
// ABOUTME: Covers kind checking and flexible reps/weight encodings.
package draft

import "testing"

func TestParseWorkoutDraft(t *testing.T) {
	raw := []byte(`{
		"kind": "create_workout",
		"title": "Push day",
		"workout": {
			"exercises": [
				{"exercise_id": 1, "sets": [{"reps": "8-12", "weight": 135.5}, {"reps": 8}]},
				{"exercise_id": 2, "sets": [{"reps": 10, "weight": "95", "is_warmup": true}]}
			]
		}
	}`)

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if d.Kind != KindCreateWorkout {
		t.Errorf("kind = %q", d.Kind)
	}
	if d.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("draft ID not assigned")
	}
	if d.Workout == nil || len(d.Workout.Exercises) != 2 {
		t.Fatalf("workout payload = %+v", d.Workout)
	}

	sets := d.Workout.Exercises[0].Sets
	if sets[0].Reps != "8-12" {
		t.Errorf("string reps = %q, want 8-12", sets[0].Reps)
	}
	if sets[0].Weight == nil || float64(*sets[0].Weight) != 135.5 {
		t.Errorf("numeric weight = %v", sets[0].Weight)
	}
	if sets[1].Reps != "8" {
		t.Errorf("numeric reps = %q, want 8", sets[1].Reps)
	}

	warm := d.Workout.Exercises[1].Sets[0]
	if warm.Weight == nil || float64(*warm.Weight) != 95 {
		t.Errorf("quoted weight = %v, want 95", warm.Weight)
	}
	if !warm.IsWarmup {
		t.Error("is_warmup not parsed")
	}
}

func TestParseGymDraft(t *testing.T) {
	raw := []byte(`{
		"kind": "create_gym",
		"gym": {"name": "Hotel Gym", "equipment_ids": ["dumbbell"], "is_temporary": true}
	}`)

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if d.Gym == nil || d.Gym.Name != "Hotel Gym" || !d.Gym.IsTemporary {
		t.Errorf("gym payload = %+v", d.Gym)
	}
}

func TestParseRejectsUnknownKind(t *testing.T) {
	if _, err := Parse([]byte(`{"kind": "delete_everything"}`)); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Parse([]byte(`{}`)); err == nil {
		t.Error("expected error for missing kind")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseRejectsBadWeight(t *testing.T) {
	raw := []byte(`{
		"kind": "create_workout",
		"workout": {"exercises": [{"exercise_id": 1, "sets": [{"reps": "8", "weight": "heavy"}]}]}
	}`)
	if _, err := Parse(raw); err == nil {
		t.Error("expected error for non-numeric weight")
	}
}
