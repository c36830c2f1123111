// ABOUTME: Tests for draft execution against a real store.
// ABOUTME: Covers ordering, gym probing, default handoff, and stale references.
package draft

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
)

func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "lift-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "lift.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testExercise(t *testing.T, db *storage.DB, name string) *models.Exercise {
	t.Helper()
	e := models.NewExercise(name)
	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	return e
}

func TestExecuteCreateWorkout(t *testing.T) {
	db := setupTestDB(t)
	ex := NewExecutor(db)

	e1 := testExercise(t, db, "Exec Bench")
	e2 := testExercise(t, db, "Exec Squat")

	weight := FlexFloat(135)
	d := &Draft{
		Kind: KindCreateWorkout,
		Workout: &WorkoutPayload{
			Note: "push day",
			Exercises: []ExerciseEntry{
				{ExerciseID: e1.ID, Sets: []SetEntry{
					{Reps: "8-12", Weight: &weight},
					{Reps: "8-12", Weight: &weight},
					{Reps: "6"},
				}},
				{ExerciseID: e2.ID, Sets: []SetEntry{{Reps: "5", IsWarmup: true}}},
			},
		},
	}

	res, err := ex.Execute(d)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Kind != KindCreateWorkout || res.SessionID == 0 {
		t.Fatalf("result = %+v", res)
	}

	s, _, err := db.GetSessionWithSets(res.SessionID)
	if err != nil {
		t.Fatalf("GetSessionWithSets failed: %v", err)
	}
	if s.Note == nil || *s.Note != "push day" {
		t.Errorf("note = %v", s.Note)
	}
	if len(s.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(s.Items))
	}

	// Items keep draft order; set numbers are dense from 1.
	for i, item := range s.Items {
		if item.SortOrder != i {
			t.Errorf("sort order = %d, want %d", item.SortOrder, i)
		}
		for j, set := range item.Sets {
			if set.SetNumber != j+1 {
				t.Errorf("set number = %d, want %d", set.SetNumber, j+1)
			}
		}
	}

	first := s.Items[0]
	if first.ExerciseID != e1.ID || first.TargetSets != 3 || first.TargetReps != "8-12" {
		t.Errorf("first item = %+v", first)
	}
	if first.Sets[0].Weight == nil || *first.Sets[0].Weight != 135 {
		t.Errorf("first set weight = %v", first.Sets[0].Weight)
	}
	if !s.Items[1].Sets[0].IsWarmup {
		t.Error("warmup flag lost")
	}
}

func TestExecuteCreateTemplate(t *testing.T) {
	db := setupTestDB(t)
	ex := NewExecutor(db)

	e := testExercise(t, db, "Exec Row")

	d := &Draft{
		Kind: KindCreateTemplate,
		Template: &TemplatePayload{
			Name:      "  Pull Day  ",
			Exercises: []ExerciseEntry{{ExerciseID: e.ID, Sets: []SetEntry{{Reps: "10"}, {Reps: "10"}}}},
		},
	}

	res, err := ex.Execute(d)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	tpl, _, err := db.GetTemplateWithItems(res.TemplateID)
	if err != nil {
		t.Fatalf("GetTemplateWithItems failed: %v", err)
	}
	if tpl.Name != "Pull Day" {
		t.Errorf("template name = %q", tpl.Name)
	}
	if len(tpl.Items) != 1 || tpl.Items[0].TargetSets != 2 || tpl.Items[0].TargetReps != "10" {
		t.Errorf("template items = %+v", tpl.Items)
	}
}

func TestExecuteCreateGymProbesName(t *testing.T) {
	db := setupTestDB(t)
	ex := NewExecutor(db)

	// Occupy the base name after "validation" would have run.
	existing := models.NewWorkoutSpace("Hotel Gym")
	if err := db.CreateSpace(existing); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	d := &Draft{
		Kind: KindCreateGym,
		Gym: &GymPayload{
			Name:         "Hotel Gym",
			EquipmentIDs: []string{"dumbbell", "not real equipment"},
			IsTemporary:  true,
		},
	}

	res, err := ex.Execute(d)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.SpaceName != "Hotel Gym (2)" {
		t.Errorf("space name = %q, want Hotel Gym (2)", res.SpaceName)
	}

	space, err := db.GetSpace(res.SpaceID)
	if err != nil {
		t.Fatalf("GetSpace failed: %v", err)
	}
	if len(space.EquipmentIDs) != 1 || space.EquipmentIDs[0] != "dumbbell" {
		t.Errorf("equipment = %v, want invalid ids filtered", space.EquipmentIDs)
	}
	if !space.IsTemporary || space.ExpiresAt == nil {
		t.Errorf("temporary gym missing expiry: %+v", space)
	}
}

func TestExecuteCreateGymTakesDefault(t *testing.T) {
	db := setupTestDB(t)
	ex := NewExecutor(db)

	old := models.NewWorkoutSpace("Old Default")
	old.IsDefault = true
	if err := db.CreateSpace(old); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	res, err := ex.Execute(&Draft{
		Kind: KindCreateGym,
		Gym:  &GymPayload{Name: "New Default", IsDefault: true},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	def, err := db.DefaultSpace()
	if err != nil {
		t.Fatalf("DefaultSpace failed: %v", err)
	}
	if def == nil || def.ID != res.SpaceID {
		t.Errorf("default space = %+v, want the new gym", def)
	}

	spaces, err := db.ListSpaces()
	if err != nil {
		t.Fatalf("ListSpaces failed: %v", err)
	}
	defaults := 0
	for _, s := range spaces {
		if s.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("default count = %d, want exactly 1", defaults)
	}
}

func TestExecuteStaleReference(t *testing.T) {
	db := setupTestDB(t)
	ex := NewExecutor(db)

	e := testExercise(t, db, "Exec Stale")
	space := models.NewWorkoutSpace("Vanishing Gym")
	if err := db.CreateSpace(space); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	d := &Draft{
		Kind: KindCreateWorkout,
		Workout: &WorkoutPayload{
			SpaceID:   &space.ID,
			Exercises: []ExerciseEntry{{ExerciseID: e.ID, Sets: []SetEntry{{Reps: "8"}}}},
		},
	}

	// The gym disappears between validation and execution.
	if err := db.DeleteSpace(space.ID); err != nil {
		t.Fatalf("DeleteSpace failed: %v", err)
	}

	_, err := ex.Execute(d)
	if !errors.Is(err, ErrStaleReference) {
		t.Fatalf("err = %v, want ErrStaleReference", err)
	}

	// Nothing was committed.
	sessions, err := db.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("rolled-back execute left %d sessions", len(sessions))
	}

	// Unknown exercise ids hit the same in-tx check.
	_, err = ex.Execute(&Draft{
		Kind: KindCreateWorkout,
		Workout: &WorkoutPayload{
			Exercises: []ExerciseEntry{{ExerciseID: 999999, Sets: []SetEntry{{Reps: "8"}}}},
		},
	})
	if !errors.Is(err, ErrStaleReference) {
		t.Fatalf("err = %v, want ErrStaleReference", err)
	}
}
