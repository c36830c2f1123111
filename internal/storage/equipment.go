// ABOUTME: Static equipment catalog and read operations.
// ABOUTME: Seeded once during migration v1; keyed by stable string IDs.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/lift/internal/models"
)

// equipmentCatalog is the static equipment taxonomy. IDs are part of the
// durable contract: exercises and spaces reference them as strings.
var equipmentCatalog = []models.Equipment{
	{ID: "barbell", Name: "Barbell", Category: "free_weights", IsPortable: false},
	{ID: "dumbbell", Name: "Dumbbells", Category: "free_weights", IsPortable: true},
	{ID: "kettlebell", Name: "Kettlebell", Category: "free_weights", IsPortable: true},
	{ID: "ez_bar", Name: "EZ Curl Bar", Category: "free_weights", IsPortable: false},
	{ID: "plate", Name: "Weight Plate", Category: "free_weights", IsPortable: true},
	{ID: "bench", Name: "Flat Bench", Category: "benches", IsPortable: false},
	{ID: "incline_bench", Name: "Incline Bench", Category: "benches", IsPortable: false},
	{ID: "squat_rack", Name: "Squat Rack", Category: "racks", IsPortable: false},
	{ID: "pullup_bar", Name: "Pull-up Bar", Category: "racks", IsPortable: false},
	{ID: "dip_station", Name: "Dip Station", Category: "racks", IsPortable: false},
	{ID: "cable", Name: "Cable Machine", Category: "machines", IsPortable: false},
	{ID: "lat_pulldown", Name: "Lat Pulldown Machine", Category: "machines", IsPortable: false},
	{ID: "leg_press", Name: "Leg Press Machine", Category: "machines", IsPortable: false},
	{ID: "machine", Name: "Weight Machine", Category: "machines", IsPortable: false},
	{ID: "band", Name: "Resistance Band", Category: "accessories", IsPortable: true},
	{ID: "medicine_ball", Name: "Medicine Ball", Category: "accessories", IsPortable: true},
	{ID: "foam_roller", Name: "Foam Roller", Category: "accessories", IsPortable: true},
	{ID: "rower", Name: "Rowing Machine", Category: "cardio", IsPortable: false},
	{ID: "treadmill", Name: "Treadmill", Category: "cardio", IsPortable: false},
	{ID: "bike", Name: "Exercise Bike", Category: "cardio", IsPortable: false},
	{ID: "bodyweight", Name: "Bodyweight", Category: "none", IsPortable: true},
}

// seedEquipment inserts the static catalog. INSERT OR IGNORE keeps the
// step idempotent across re-runs.
func seedEquipment(tx *sql.Tx) error {
	for _, eq := range equipmentCatalog {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO equipment (id, name, category, is_portable) VALUES (?, ?, ?, ?)",
			eq.ID, eq.Name, eq.Category, eq.IsPortable,
		)
		if err != nil {
			return fmt.Errorf("seed equipment %s: %w", eq.ID, err)
		}
	}
	return nil
}

// ListEquipment returns the full equipment catalog ordered by category
// then name.
func (d *DB) ListEquipment() ([]*models.Equipment, error) {
	rows, err := d.db.Query("SELECT id, name, category, is_portable FROM equipment ORDER BY category, name")
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var out []*models.Equipment
	for rows.Next() {
		var eq models.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Category, &eq.IsPortable); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		out = append(out, &eq)
	}
	return out, rows.Err()
}

// GetEquipment retrieves one catalog entry by its string id.
func (d *DB) GetEquipment(id string) (*models.Equipment, error) {
	var eq models.Equipment
	err := d.db.QueryRow(
		"SELECT id, name, category, is_portable FROM equipment WHERE id = ?", id,
	).Scan(&eq.ID, &eq.Name, &eq.Category, &eq.IsPortable)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("equipment not found: %s", id)
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &eq, nil
}

// ValidEquipmentID reports whether id names a catalog entry.
func ValidEquipmentID(id string) bool {
	for _, eq := range equipmentCatalog {
		if eq.ID == id {
			return true
		}
	}
	return false
}
