// ABOUTME: Starter exercise library import from the embedded dataset.
// ABOUTME: Transform is tolerant of sparse records; re-import never duplicates.
package storage

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
)

//go:embed seed/exercises.json
var seedFS embed.FS

// RawExercise is the external dataset shape. Only name is required; the
// transform fills in everything else.
type RawExercise struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	Equipment        string   `json:"equipment,omitempty"`
	PrimaryMuscles   []string `json:"primaryMuscles,omitempty"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Aliases          []string `json:"aliases,omitempty"`
}

// datasetEquipment maps the external dataset's equipment terms onto the
// catalog's stable IDs. Unknown terms map to nothing rather than failing
// the import.
var datasetEquipment = map[string]string{
	"barbell":        "barbell",
	"dumbbell":       "dumbbell",
	"dumbbells":      "dumbbell",
	"kettlebell":     "kettlebell",
	"kettlebells":    "kettlebell",
	"e-z curl bar":   "ez_bar",
	"ez bar":         "ez_bar",
	"cable":          "cable",
	"machine":        "machine",
	"bands":          "band",
	"band":           "band",
	"medicine ball":  "medicine_ball",
	"foam roll":      "foam_roller",
	"body only":      "bodyweight",
	"bodyweight":     "bodyweight",
	"pull-up bar":    "pullup_bar",
	"bench":          "bench",
	"incline bench":  "incline_bench",
	"squat rack":     "squat_rack",
	"dip station":    "dip_station",
	"rowing machine": "rower",
}

// seedStarterExercises populates the library from the embedded dataset on
// first run. A non-empty library means seeding already happened (or the
// user built their own), so the call is a no-op.
func (d *DB) seedStarterExercises() error {
	n, err := d.CountExercises()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	data, err := seedFS.ReadFile("seed/exercises.json")
	if err != nil {
		return fmt.Errorf("read embedded seed: %w", err)
	}

	var raw []RawExercise
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode embedded seed: %w", err)
	}

	_, err = d.ImportExercises(raw, models.StatusStarter)
	return err
}

// ParseRawExercises decodes an external dataset file.
func ParseRawExercises(data []byte) ([]RawExercise, error) {
	var raw []RawExercise
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode exercise dataset: %w", err)
	}
	return raw, nil
}

// ImportExercises transforms raw dataset records and inserts them in one
// transaction. Rows are keyed by stable id, so importing the same dataset
// twice inserts nothing new. Returns the number of rows inserted.
func (d *DB) ImportExercises(raw []RawExercise, status models.ExerciseStatus) (int, error) {
	inserted := 0
	err := d.WithTx(func(tx *Tx) error {
		now := time.Now().Format(time.RFC3339)
		for _, r := range raw {
			name := strings.TrimSpace(r.Name)
			if name == "" {
				continue
			}

			slug := models.Slugify(name)
			stableID := StableID(slug, r.PrimaryMuscles)

			var equipment []string
			if id, ok := datasetEquipment[strings.ToLower(strings.TrimSpace(r.Equipment))]; ok && id != "" {
				equipment = []string{id}
			}
			required := equipment
			if len(required) == 0 {
				required = []string{"bodyweight"}
			}

			res, err := tx.tx.Exec(`
				INSERT OR IGNORE INTO exercises (stable_id, name, slug, primary_muscles, secondary_muscles,
					equipment, required_equipment, optional_equipment, aliases,
					default_sets, default_reps, status, is_custom, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 3, '8-12', ?, 0, ?, ?)`,
				stableID, name, slug,
				marshalStrings(r.PrimaryMuscles), marshalStrings(r.SecondaryMuscles),
				marshalStrings(equipment), marshalStrings(required), "[]",
				marshalStrings(r.Aliases),
				string(status), now, now,
			)
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", name, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", name, err)
			}
			inserted += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
