// ABOUTME: Tests for full-database export and import.
// ABOUTME: Covers JSON round-trips, YAML output, Markdown rendering, and usage reports.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/lift/internal/models"
	"gopkg.in/yaml.v3"
)

// populateExportFixture builds a small dataset touching every exported table.
func populateExportFixture(t *testing.T, db *DB) *models.Exercise {
	t.Helper()

	e := models.NewExercise("Export Bench").WithEquipment("barbell", "bench")
	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	space := models.NewWorkoutSpace("Export Garage")
	space.EquipmentIDs = []string{"barbell", "bench"}
	if err := db.CreateSpace(space); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	tpl := models.NewTemplate("Export Day")
	tpl.Items = []models.TemplateItem{{ExerciseID: e.ID, TargetSets: 3, TargetReps: "5"}}
	if err := db.CreateTemplate(tpl); err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	w := 135.0
	logFinishedSession(t, db, map[int64][]models.SessionSet{
		e.ID: {{Reps: "5", Weight: &w}, {Reps: "5", Weight: &w, IsWarmup: false}},
	})

	plan := &models.PlannedWorkout{Date: "2030-01-15", TemplateID: &tpl.ID}
	if err := db.CreatePlan(plan); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	return e
}

func TestExportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	e := populateExportFixture(t, src)

	raw, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Version != "1.0" || data.Tool != "lift" {
		t.Errorf("envelope = %s/%s, want 1.0/lift", data.Version, data.Tool)
	}
	if len(data.Sessions) != 1 || len(data.Sessions[0].Items) != 1 {
		t.Fatalf("sessions not fully populated: %+v", data.Sessions)
	}
	if len(data.Templates) != 1 || len(data.Templates[0].Items) != 1 {
		t.Fatalf("templates not fully populated: %+v", data.Templates)
	}

	dst := setupTestDB(t)
	if err := dst.ImportJSON(raw); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	// Row ids survive, so cross-table references still line up.
	got, err := dst.GetExercise(e.ID)
	if err != nil {
		t.Fatalf("GetExercise after import failed: %v", err)
	}
	if got.Name != "Export Bench" {
		t.Errorf("imported exercise name = %q", got.Name)
	}

	s, _, err := dst.GetSessionWithSets(data.Sessions[0].ID)
	if err != nil {
		t.Fatalf("GetSessionWithSets after import failed: %v", err)
	}
	if len(s.Items) != 1 || len(s.Items[0].Sets) != 2 {
		t.Errorf("imported session items/sets = %d/%+v", len(s.Items), s.Items)
	}

	plans, err := dst.ListPlans("")
	if err != nil {
		t.Fatalf("ListPlans after import failed: %v", err)
	}
	if len(plans) != 1 || plans[0].Date != "2030-01-15" {
		t.Errorf("imported plans = %+v", plans)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	populateExportFixture(t, db)

	raw, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if data.Tool != "lift" {
		t.Errorf("tool = %q, want lift", data.Tool)
	}
	if len(data.Spaces) != 1 {
		t.Errorf("spaces = %d, want 1", len(data.Spaces))
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	populateExportFixture(t, db)

	md, err := db.ExportMarkdown(nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.HasPrefix(md, "# Workout Log") {
		t.Errorf("markdown missing header: %q", md[:min(len(md), 40)])
	}
	if !strings.Contains(md, "Export Bench") {
		t.Error("markdown missing exercise name")
	}
	if !strings.Contains(md, "set 1: 5") {
		t.Error("markdown missing set lines")
	}

	// A future cutoff filters everything out.
	future := time.Now().Add(24 * time.Hour)
	md, err = db.ExportMarkdown(&future)
	if err != nil {
		t.Fatalf("ExportMarkdown with since failed: %v", err)
	}
	if strings.Contains(md, "Export Bench") {
		t.Error("since filter did not exclude older sessions")
	}
}

func TestUsageReports(t *testing.T) {
	db := setupTestDB(t)

	e1 := models.NewExercise("Report Press")
	e2 := models.NewExercise("Report Curl")
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

	reports, err := db.UsageReports()
	if err != nil {
		t.Fatalf("UsageReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}
	if reports[0].Exercise.ID != e1.ID || reports[0].Count != 2 {
		t.Errorf("first report = %+v, want e1 with count 2", reports[0])
	}
	if reports[1].Exercise.ID != e2.ID || reports[1].Count != 1 {
		t.Errorf("second report = %+v, want e2 with count 1", reports[1])
	}
}
