// ABOUTME: Export and import functionality for the full lift database.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for lift data.
type ExportData struct {
	Version    string                   `json:"version" yaml:"version"`
	ExportedAt time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool       string                   `json:"tool" yaml:"tool"`
	Exercises  []*models.Exercise       `json:"exercises" yaml:"exercises"`
	Spaces     []*models.WorkoutSpace   `json:"spaces" yaml:"spaces"`
	Templates  []*models.Template       `json:"templates" yaml:"templates"`
	Sessions   []*models.Session        `json:"sessions" yaml:"sessions"`
	Plans      []*models.PlannedWorkout `json:"plans" yaml:"plans"`
}

// GetAllData retrieves all data for export. Templates and sessions are
// fully populated with their items and sets.
func (d *DB) GetAllData() (*ExportData, error) {
	exercises, err := d.ListExercises()
	if err != nil {
		return nil, err
	}

	spaces, err := d.ListSpaces()
	if err != nil {
		return nil, err
	}

	templates, err := d.ListTemplates()
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		items, err := d.listTemplateItems(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}

	sessions, err := d.ListSessions(0)
	if err != nil {
		return nil, err
	}
	for i, s := range sessions {
		full, _, err := d.GetSessionWithSets(s.ID)
		if err != nil {
			return nil, err
		}
		sessions[i] = full
	}

	plans, err := d.ListPlans("")
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "lift",
		Exercises:  exercises,
		Spaces:     spaces,
		Templates:  templates,
		Sessions:   sessions,
		Plans:      plans,
	}, nil
}

// ImportData loads a previously exported dataset, preserving row ids so
// cross-table references survive. The destination should be a fresh
// database; session, template, and space id collisions are errors.
func (d *DB) ImportData(data *ExportData) error {
	return d.WithTx(func(tx *Tx) error {
		for _, e := range data.Exercises {
			// Seeded starter rows may already be present; identical
			// stable ids mean identical exercises.
			_, err := tx.tx.Exec(`
				INSERT OR IGNORE INTO exercises (id, stable_id, name, slug, primary_muscles, secondary_muscles,
					equipment, required_equipment, optional_equipment, aliases,
					default_sets, default_reps, status, is_custom, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				e.ID, e.StableID, e.Name, e.Slug,
				marshalStrings(e.PrimaryMuscles), marshalStrings(e.SecondaryMuscles),
				marshalStrings(e.Equipment), marshalStrings(e.RequiredEquipment), marshalStrings(e.OptionalEquipment),
				marshalStrings(e.Aliases),
				e.DefaultSets, e.DefaultReps, string(e.Status), e.IsCustom,
				e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("import exercise %d: %w", e.ID, err)
			}
		}

		for _, s := range data.Spaces {
			var expires any
			if s.ExpiresAt != nil {
				expires = s.ExpiresAt.Format(time.RFC3339)
			}
			_, err := tx.tx.Exec(`
				INSERT INTO workout_spaces (id, name, description, equipment_ids, is_default, is_temporary, expires_at, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				s.ID, s.Name, s.Description, marshalStrings(s.EquipmentIDs),
				s.IsDefault, s.IsTemporary, expires, s.CreatedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("import space %d: %w", s.ID, err)
			}
		}

		for _, t := range data.Templates {
			_, err := tx.tx.Exec(
				"INSERT INTO templates (id, name, space_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
				t.ID, t.Name, t.SpaceID,
				t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("import template %d: %w", t.ID, err)
			}
			for _, it := range t.Items {
				_, err := tx.tx.Exec(`
					INSERT INTO template_items (id, template_id, exercise_id, sort_order, target_sets, target_reps, notes)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					it.ID, it.TemplateID, it.ExerciseID, it.SortOrder, it.TargetSets, it.TargetReps, it.Notes,
				)
				if err != nil {
					return fmt.Errorf("import template item %d: %w", it.ID, err)
				}
			}
		}

		for _, s := range data.Sessions {
			var finished any
			if s.FinishedAt != nil {
				finished = s.FinishedAt.Format(time.RFC3339)
			}
			_, err := tx.tx.Exec(`
				INSERT INTO sessions (id, started_at, finished_at, template_id, space_id, note, reflection)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.ID, s.StartedAt.Format(time.RFC3339), finished, s.TemplateID, s.SpaceID, s.Note, s.Reflection,
			)
			if err != nil {
				return fmt.Errorf("import session %d: %w", s.ID, err)
			}
			for _, it := range s.Items {
				_, err := tx.tx.Exec(`
					INSERT INTO session_items (id, session_id, exercise_id, sort_order, target_sets, target_reps, rest_seconds, notes)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					it.ID, it.SessionID, it.ExerciseID, it.SortOrder, it.TargetSets, it.TargetReps, it.RestSeconds, it.Notes,
				)
				if err != nil {
					return fmt.Errorf("import session item %d: %w", it.ID, err)
				}
				for _, st := range it.Sets {
					_, err := tx.tx.Exec(`
						INSERT INTO session_sets (id, item_id, set_number, weight, reps, is_warmup, is_complete)
						VALUES (?, ?, ?, ?, ?, ?, ?)`,
						st.ID, st.ItemID, st.SetNumber, st.Weight, st.Reps, st.IsWarmup, st.IsComplete,
					)
					if err != nil {
						return fmt.Errorf("import session set %d: %w", st.ID, err)
					}
				}
			}
		}

		for _, p := range data.Plans {
			var exercises any
			if len(p.Exercises) > 0 {
				exercises = marshalJSON(p.Exercises)
			}
			_, err := tx.tx.Exec(
				"INSERT INTO planned_workouts (id, date, template_id, exercises, source) VALUES (?, ?, ?, ?, ?)",
				p.ID, p.Date, p.TemplateID, exercises, p.Source,
			)
			if err != nil {
				return fmt.Errorf("import plan %d: %w", p.ID, err)
			}
		}

		return nil
	})
}

// ExportJSON exports all data as indented JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from a JSON export.
func (d *DB) ImportJSON(raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse import data: %w", err)
	}
	return d.ImportData(&data)
}

// ExportMarkdown renders the workout log as dated Markdown, newest first.
// A non-nil since filters to sessions started on or after that time.
func (d *DB) ExportMarkdown(since *time.Time) (string, error) {
	sessions, err := d.ListSessions(0)
	if err != nil {
		return "", err
	}

	spaces, err := d.ListSpaces()
	if err != nil {
		return "", err
	}
	spaceNames := make(map[int64]string, len(spaces))
	for _, s := range spaces {
		spaceNames[s.ID] = s.Name
	}

	var b strings.Builder
	b.WriteString("# Workout Log\n")

	for _, s := range sessions {
		if since != nil && s.StartedAt.Before(*since) {
			continue
		}

		full, exercises, err := d.GetSessionWithSets(s.ID)
		if err != nil {
			return "", err
		}

		b.WriteString("\n## " + full.StartedAt.Format("2006-01-02"))
		if full.SpaceID != nil {
			if name, ok := spaceNames[*full.SpaceID]; ok {
				b.WriteString(" at " + name)
			}
		}
		if full.Active() {
			b.WriteString(" (in progress)")
		}
		b.WriteString("\n")

		if full.Note != nil && *full.Note != "" {
			b.WriteString("\n> " + *full.Note + "\n")
		}

		for _, it := range full.Items {
			name := fmt.Sprintf("exercise %d", it.ExerciseID)
			if e, ok := exercises[it.ExerciseID]; ok {
				name = e.Name
			}
			b.WriteString("\n- **" + name + "**")
			if len(it.Sets) == 0 {
				b.WriteString(fmt.Sprintf(" (target %dx%s)", it.TargetSets, it.TargetReps))
			}
			b.WriteString("\n")

			for _, st := range it.Sets {
				line := fmt.Sprintf("  - set %d: %s reps", st.SetNumber, st.Reps)
				if st.Weight != nil {
					line = fmt.Sprintf("  - set %d: %s x %.4g", st.SetNumber, st.Reps, *st.Weight)
				}
				if st.IsWarmup {
					line += " (warmup)"
				}
				b.WriteString(line + "\n")
			}
		}

		if full.Reflection != nil && *full.Reflection != "" {
			b.WriteString("\n_" + *full.Reflection + "_\n")
		}
	}

	return b.String(), nil
}

// UsageReport pairs an exercise with how many finished sessions used it.
type UsageReport struct {
	Exercise *models.Exercise
	Count    int
}

// UsageReports returns usage counts joined with exercise rows, most used
// first, ties broken by name.
func (d *DB) UsageReports() ([]UsageReport, error) {
	counts, err := d.ExerciseUsageCounts()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	exercises, err := d.GetExercisesByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]UsageReport, 0, len(counts))
	for id, n := range counts {
		e, ok := exercises[id]
		if !ok {
			continue
		}
		out = append(out, UsageReport{Exercise: e, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Exercise.Name < out[j].Exercise.Name
	})
	return out, nil
}
