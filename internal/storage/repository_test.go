// ABOUTME: Tests for the SQLite repository implementation.
// ABOUTME: Covers exercises, spaces, templates, sessions, plans, and notes.
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/lift/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "lift-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "lift.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCreateAndGetExercise(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewExercise("Sled Push").
		WithMuscles("quads", "glutes").
		WithAliases("prowler push")

	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if e.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if e.StableID == "" {
		t.Fatal("expected derived stable id")
	}

	got, err := db.GetExercise(e.ID)
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if got.Name != "Sled Push" {
		t.Errorf("name = %q, want Sled Push", got.Name)
	}
	if got.Slug != "sled-push" {
		t.Errorf("slug = %q, want sled-push", got.Slug)
	}
	if len(got.Aliases) != 1 || got.Aliases[0] != "prowler push" {
		t.Errorf("aliases = %v", got.Aliases)
	}
	if got.DefaultSets != 3 || got.DefaultReps != "8-12" {
		t.Errorf("defaults = %d x %q, want 3 x 8-12", got.DefaultSets, got.DefaultReps)
	}
	if !got.IsCustom || got.Status != models.StatusUser {
		t.Errorf("status = %s custom=%v, want user/true", got.Status, got.IsCustom)
	}

	byStable, err := db.GetExerciseByStableID(e.StableID)
	if err != nil {
		t.Fatalf("GetExerciseByStableID failed: %v", err)
	}
	if byStable.ID != e.ID {
		t.Errorf("stable lookup returned %d, want %d", byStable.ID, e.ID)
	}
}

func TestStableIDOrderInsensitive(t *testing.T) {
	a := StableID("bench-press", []string{"chest", "triceps"})
	b := StableID("bench-press", []string{"triceps", "chest"})
	if a != b {
		t.Errorf("stable id depends on muscle order: %s != %s", a, b)
	}
	c := StableID("incline-bench-press", []string{"chest", "triceps"})
	if a == c {
		t.Error("different slugs produced the same stable id")
	}
	if len(a) != 16 {
		t.Errorf("stable id length = %d, want 16", len(a))
	}
}

func TestGetExercisesByIDs(t *testing.T) {
	db := setupTestDB(t)

	e1 := models.NewExercise("Alpha Raise")
	e2 := models.NewExercise("Beta Curl")
	if err := db.CreateExercise(e1); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateExercise(e2); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetExercisesByIDs([]int64{e1.ID, e2.ID, 999999})
	if err != nil {
		t.Fatalf("GetExercisesByIDs failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d exercises, want 2", len(got))
	}
	if got[e1.ID] == nil || got[e1.ID].Name != "Alpha Raise" {
		t.Errorf("missing e1 in batch result")
	}

	empty, err := db.GetExercisesByIDs(nil)
	if err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty batch returned %d", len(empty))
	}
}

func TestExerciseNotes(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewExercise("Leg Press")
	if err := db.CreateExercise(e); err != nil {
		t.Fatal(err)
	}

	note, err := db.GetExerciseNote(e.ID)
	if err != nil {
		t.Fatalf("GetExerciseNote failed: %v", err)
	}
	if note != "" {
		t.Errorf("unexpected note %q", note)
	}

	if err := db.SetExerciseNote(e.ID, "seat position 4"); err != nil {
		t.Fatalf("SetExerciseNote failed: %v", err)
	}
	if err := db.SetExerciseNote(e.ID, "seat position 5"); err != nil {
		t.Fatalf("SetExerciseNote upsert failed: %v", err)
	}

	note, err = db.GetExerciseNote(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if note != "seat position 5" {
		t.Errorf("note = %q, want seat position 5", note)
	}
}

func TestDefaultSpaceInvariant(t *testing.T) {
	db := setupTestDB(t)

	home := models.NewWorkoutSpace("Home").WithEquipment("barbell", "squat_rack")
	home.IsDefault = true
	if err := db.CreateSpace(home); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	work := models.NewWorkoutSpace("Work Gym")
	work.IsDefault = true
	if err := db.CreateSpace(work); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	// The second default displaced the first.
	def, err := db.DefaultSpace()
	if err != nil {
		t.Fatalf("DefaultSpace failed: %v", err)
	}
	if def == nil || def.ID != work.ID {
		t.Fatalf("default = %+v, want Work Gym", def)
	}

	spaces, err := db.ListSpaces()
	if err != nil {
		t.Fatal(err)
	}
	defaults := 0
	for _, s := range spaces {
		if s.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("defaults = %d, want exactly 1", defaults)
	}

	// Flip back explicitly.
	if err := db.SetDefaultSpace(home.ID); err != nil {
		t.Fatalf("SetDefaultSpace failed: %v", err)
	}
	def, err = db.DefaultSpace()
	if err != nil {
		t.Fatal(err)
	}
	if def == nil || def.ID != home.ID {
		t.Errorf("default after flip = %+v, want Home", def)
	}

	if err := db.SetDefaultSpace(999999); err == nil {
		t.Error("expected error for missing space")
	}
}

func TestTemporarySpaceRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	s := models.NewWorkoutSpace("Hotel").WithExpiry(time.Now().Add(24 * time.Hour))
	if err := db.CreateSpace(s); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	got, err := db.GetSpace(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsTemporary || got.ExpiresAt == nil {
		t.Errorf("temporary flags lost: %+v", got)
	}
}

func TestTemplateLifecycle(t *testing.T) {
	db := setupTestDB(t)

	e1 := models.NewExercise("Alpha Press")
	e2 := models.NewExercise("Beta Row")
	if err := db.CreateExercise(e1); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateExercise(e2); err != nil {
		t.Fatal(err)
	}

	tpl := models.NewTemplate("Push Day")
	tpl.Items = []models.TemplateItem{
		{ExerciseID: e1.ID, SortOrder: 5, TargetSets: 3, TargetReps: "8-12"},
		{ExerciseID: e2.ID, SortOrder: 9, TargetSets: 4, TargetReps: "5"},
	}
	if err := db.CreateTemplate(tpl); err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	got, _, err := db.GetTemplateWithItems(tpl.ID)
	if err != nil {
		t.Fatalf("GetTemplateWithItems failed: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	// Sort order is rewritten densely from slice position.
	for i, item := range got.Items {
		if item.SortOrder != i {
			t.Errorf("item %d sort order = %d", i, item.SortOrder)
		}
	}

	if err := db.DeleteTemplate(tpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	if _, err := db.GetTemplate(tpl.ID); err == nil {
		t.Error("expected error after delete")
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewExercise("Gamma Squat")
	if err := db.CreateExercise(e); err != nil {
		t.Fatal(err)
	}

	active, err := db.ActiveSession()
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Fatalf("unexpected active session: %+v", active)
	}

	s := models.NewSession().WithNote("test run")
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	active, err = db.ActiveSession()
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != s.ID {
		t.Fatalf("active = %+v, want session %d", active, s.ID)
	}

	// Logging sets finds-or-creates the item and numbers sets densely.
	w := 135.0
	for i := 0; i < 3; i++ {
		set, err := db.AddSetToSession(s.ID, e.ID, models.SessionSet{Reps: "8", Weight: &w, IsComplete: true})
		if err != nil {
			t.Fatalf("AddSetToSession failed: %v", err)
		}
		if set.SetNumber != i+1 {
			t.Errorf("set number = %d, want %d", set.SetNumber, i+1)
		}
	}

	if err := db.FinishSession(s.ID, "felt strong"); err != nil {
		t.Fatalf("FinishSession failed: %v", err)
	}

	active, err = db.ActiveSession()
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Error("session still active after finish")
	}

	got, err := db.GetSession(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reflection == nil || *got.Reflection != "felt strong" {
		t.Errorf("reflection = %v", got.Reflection)
	}

	// Finishing twice fails: the session is no longer active.
	if err := db.FinishSession(s.ID, ""); err == nil {
		t.Error("expected error finishing a finished session")
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewExercise("Delta Curl")
	if err := db.CreateExercise(e); err != nil {
		t.Fatal(err)
	}

	s := models.NewSession()
	if err := db.CreateSession(s); err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddSetToSession(s.ID, e.ID, models.SessionSet{Reps: "10"}); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteSession(s.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	var n int
	if err := db.db.QueryRow("SELECT COUNT(1) FROM session_items WHERE session_id = ?", s.ID).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("orphaned session items: %d", n)
	}
}

func TestPlans(t *testing.T) {
	db := setupTestDB(t)

	p := &models.PlannedWorkout{
		Date: "2026-09-02",
		Exercises: []models.PlannedExercise{
			{ExerciseID: 1, TargetSets: 3, TargetReps: "8-12"},
		},
	}
	if err := db.CreatePlan(p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	if p.Source != "user" {
		t.Errorf("source = %q, want user", p.Source)
	}

	plans, err := db.ListPlans("2026-09-01")
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("plans = %d, want 1", len(plans))
	}
	if len(plans[0].Exercises) != 1 || plans[0].Exercises[0].ExerciseID != 1 {
		t.Errorf("plan exercises = %+v", plans[0].Exercises)
	}

	plans, err = db.ListPlans("2026-09-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 0 {
		t.Errorf("future filter returned %d plans", len(plans))
	}

	if err := db.DeletePlan(p.ID); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	if err := db.DeletePlan(p.ID); err == nil {
		t.Error("expected error deleting missing plan")
	}
}

func TestEquipmentCatalog(t *testing.T) {
	db := setupTestDB(t)

	items, err := db.ListEquipment()
	if err != nil {
		t.Fatalf("ListEquipment failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("equipment catalog empty")
	}

	eq, err := db.GetEquipment("barbell")
	if err != nil {
		t.Fatalf("GetEquipment failed: %v", err)
	}
	if eq.Name == "" || eq.Category == "" {
		t.Errorf("incomplete equipment row: %+v", eq)
	}

	if !ValidEquipmentID("dumbbell") {
		t.Error("dumbbell should be valid")
	}
	if ValidEquipmentID("flux_capacitor") {
		t.Error("flux_capacitor should not be valid")
	}
}
