// ABOUTME: Tests for read-side joins and history queries.
// ABOUTME: Covers template/session hydration, usage counts, and last performance.
package storage

import (
	"testing"

	"github.com/harperreed/lift/internal/models"
)

// logFinishedSession records one finished session with the given sets per
// exercise.
func logFinishedSession(t *testing.T, db *DB, sets map[int64][]models.SessionSet) int64 {
	t.Helper()

	s := models.NewSession()
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	for exerciseID, ss := range sets {
		for _, set := range ss {
			if _, err := db.AddSetToSession(s.ID, exerciseID, set); err != nil {
				t.Fatalf("AddSetToSession failed: %v", err)
			}
		}
	}
	if err := db.FinishSession(s.ID, ""); err != nil {
		t.Fatalf("FinishSession failed: %v", err)
	}
	return s.ID
}

func TestGetTemplateWithItems(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewExercise("Query Press")
	if err := db.CreateExercise(e); err != nil {
		t.Fatal(err)
	}

	tpl := models.NewTemplate("Test Day")
	tpl.Items = []models.TemplateItem{{ExerciseID: e.ID, TargetSets: 3, TargetReps: "8"}}
	if err := db.CreateTemplate(tpl); err != nil {
		t.Fatal(err)
	}

	got, exercises, err := db.GetTemplateWithItems(tpl.ID)
	if err != nil {
		t.Fatalf("GetTemplateWithItems failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	if exercises[e.ID] == nil || exercises[e.ID].Name != "Query Press" {
		t.Errorf("exercise map missing %d: %v", e.ID, exercises)
	}
}

func TestGetSessionWithSets(t *testing.T) {
	db := setupTestDB(t)

	e1 := models.NewExercise("Hydrate Squat")
	e2 := models.NewExercise("Hydrate Row")
	if err := db.CreateExercise(e1); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateExercise(e2); err != nil {
		t.Fatal(err)
	}

	w := 100.0
	id := logFinishedSession(t, db, map[int64][]models.SessionSet{
		e1.ID: {{Reps: "5", Weight: &w}, {Reps: "5", Weight: &w}},
		e2.ID: {{Reps: "10"}},
	})

	s, exercises, err := db.GetSessionWithSets(id)
	if err != nil {
		t.Fatalf("GetSessionWithSets failed: %v", err)
	}
	if len(s.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(s.Items))
	}
	if len(exercises) != 2 {
		t.Errorf("exercise map = %d entries, want 2", len(exercises))
	}

	total := 0
	for _, item := range s.Items {
		total += len(item.Sets)
		for i, set := range item.Sets {
			if set.SetNumber != i+1 {
				t.Errorf("set numbers not dense: %+v", item.Sets)
			}
		}
	}
	if total != 3 {
		t.Errorf("total sets = %d, want 3", total)
	}
}

func TestExerciseUsageCounts(t *testing.T) {
	db := setupTestDB(t)

	e1 := models.NewExercise("Usage Press")
	e2 := models.NewExercise("Usage Curl")
	if err := db.CreateExercise(e1); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateExercise(e2); err != nil {
		t.Fatal(err)
	}

	logFinishedSession(t, db, map[int64][]models.SessionSet{
		e1.ID: {{Reps: "8"}},
		e2.ID: {{Reps: "8"}},
	})
	logFinishedSession(t, db, map[int64][]models.SessionSet{
		e1.ID: {{Reps: "8"}},
	})

	// An unfinished session must not count.
	s := models.NewSession()
	if err := db.CreateSession(s); err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddSetToSession(s.ID, e1.ID, models.SessionSet{Reps: "8"}); err != nil {
		t.Fatal(err)
	}

	counts, err := db.ExerciseUsageCounts()
	if err != nil {
		t.Fatalf("ExerciseUsageCounts failed: %v", err)
	}
	if counts[e1.ID] != 2 {
		t.Errorf("count for e1 = %d, want 2", counts[e1.ID])
	}
	if counts[e2.ID] != 1 {
		t.Errorf("count for e2 = %d, want 1", counts[e2.ID])
	}
}

func TestLastPerformance(t *testing.T) {
	db := setupTestDB(t)

	e1 := models.NewExercise("History Bench")
	e2 := models.NewExercise("History Squat")
	e3 := models.NewExercise("History Never")
	for _, e := range []*models.Exercise{e1, e2, e3} {
		if err := db.CreateExercise(e); err != nil {
			t.Fatal(err)
		}
	}

	old := 95.0
	logFinishedSession(t, db, map[int64][]models.SessionSet{
		e1.ID: {{Reps: "8", Weight: &old}},
		e2.ID: {{Reps: "5"}},
	})

	recent := 105.0
	logFinishedSession(t, db, map[int64][]models.SessionSet{
		e1.ID: {{Reps: "8", Weight: &recent}, {Reps: "6", Weight: &recent}},
	})

	perf, err := db.LastPerformance([]int64{e1.ID, e2.ID, e3.ID})
	if err != nil {
		t.Fatalf("LastPerformance failed: %v", err)
	}

	// e1 comes from the newer session only.
	sets := perf[e1.ID]
	if len(sets) != 2 {
		t.Fatalf("e1 sets = %d, want 2", len(sets))
	}
	if sets[0].Weight == nil || *sets[0].Weight != 105 {
		t.Errorf("e1 weight = %v, want 105", sets[0].Weight)
	}
	if sets[0].SetNumber != 1 || sets[1].SetNumber != 2 {
		t.Errorf("e1 set order wrong: %+v", sets)
	}

	// e2 falls back to the older session.
	if len(perf[e2.ID]) != 1 || perf[e2.ID][0].Reps != "5" {
		t.Errorf("e2 sets = %+v", perf[e2.ID])
	}

	// e3 has no history and is simply absent.
	if _, ok := perf[e3.ID]; ok {
		t.Error("e3 should have no performance entry")
	}

	empty, err := db.LastPerformance(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("empty query returned %d entries", len(empty))
	}
}
