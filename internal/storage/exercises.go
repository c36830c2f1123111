// ABOUTME: Exercise CRUD operations and stable-id derivation.
// ABOUTME: Batch lookups use one IN query, never per-id reads in a loop.
package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
)

// StableID derives a content hash that identifies an exercise across
// re-imports. It hashes the slug plus the sorted primary muscle set so
// renames of display text don't change identity.
func StableID(slug string, primaryMuscles []string) string {
	muscles := append([]string(nil), primaryMuscles...)
	sort.Strings(muscles)
	h := sha256.Sum256([]byte(slug + "|" + strings.Join(muscles, ",")))
	return hex.EncodeToString(h[:])[:16]
}

const exerciseColumns = `id, stable_id, name, slug, primary_muscles, secondary_muscles,
	equipment, required_equipment, optional_equipment, aliases,
	default_sets, default_reps, status, is_custom, created_at, updated_at`

// CreateExercise stores a new exercise, deriving slug and stable_id when
// the caller left them empty.
func (d *DB) CreateExercise(e *models.Exercise) error {
	if e.Slug == "" {
		e.Slug = models.Slugify(e.Name)
	}
	if e.StableID == "" {
		e.StableID = StableID(e.Slug, e.PrimaryMuscles)
	}
	if e.DefaultSets == 0 {
		e.DefaultSets = 3
	}
	if e.DefaultReps == "" {
		e.DefaultReps = "8-12"
	}

	res, err := d.db.Exec(`
		INSERT INTO exercises (stable_id, name, slug, primary_muscles, secondary_muscles,
			equipment, required_equipment, optional_equipment, aliases,
			default_sets, default_reps, status, is_custom, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.StableID, e.Name, e.Slug,
		marshalStrings(e.PrimaryMuscles), marshalStrings(e.SecondaryMuscles),
		marshalStrings(e.Equipment), marshalStrings(e.RequiredEquipment), marshalStrings(e.OptionalEquipment),
		marshalStrings(e.Aliases),
		e.DefaultSets, e.DefaultReps, string(e.Status), e.IsCustom,
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by id.
func (d *DB) GetExercise(id int64) (*models.Exercise, error) {
	row := d.db.QueryRow("SELECT "+exerciseColumns+" FROM exercises WHERE id = ?", id)
	e, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exercise not found: %d", id)
	}
	return e, err
}

// GetExerciseByStableID retrieves an exercise by its content hash.
func (d *DB) GetExerciseByStableID(stableID string) (*models.Exercise, error) {
	row := d.db.QueryRow("SELECT "+exerciseColumns+" FROM exercises WHERE stable_id = ?", stableID)
	e, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exercise not found: %s", stableID)
	}
	return e, err
}

// ListExercises retrieves all exercises ordered by name.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	rows, err := d.db.Query("SELECT " + exerciseColumns + " FROM exercises ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()
	return scanExercises(rows)
}

// GetExercisesByIDs batch-fetches exercises with one IN query, returning
// a map keyed by id. Missing ids are simply absent from the map.
func (d *DB) GetExercisesByIDs(ids []int64) (map[int64]*models.Exercise, error) {
	out := make(map[int64]*models.Exercise, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := d.db.Query(
		"SELECT "+exerciseColumns+" FROM exercises WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("batch get exercises: %w", err)
	}
	defer rows.Close()

	exercises, err := scanExercises(rows)
	if err != nil {
		return nil, err
	}
	for _, e := range exercises {
		out[e.ID] = e
	}
	return out, nil
}

// CountExercises returns the number of exercises in the library.
func (d *DB) CountExercises() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(1) FROM exercises").Scan(&n); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}

// UpdateExercise updates mutable exercise metadata. Identity fields (id,
// stable_id) never change.
func (d *DB) UpdateExercise(e *models.Exercise) error {
	e.UpdatedAt = time.Now()
	res, err := d.db.Exec(`
		UPDATE exercises SET name = ?, slug = ?, primary_muscles = ?, secondary_muscles = ?,
			equipment = ?, required_equipment = ?, optional_equipment = ?, aliases = ?,
			default_sets = ?, default_reps = ?, status = ?, is_custom = ?, updated_at = ?
		WHERE id = ?`,
		e.Name, e.Slug,
		marshalStrings(e.PrimaryMuscles), marshalStrings(e.SecondaryMuscles),
		marshalStrings(e.Equipment), marshalStrings(e.RequiredEquipment), marshalStrings(e.OptionalEquipment),
		marshalStrings(e.Aliases),
		e.DefaultSets, e.DefaultReps, string(e.Status), e.IsCustom,
		e.UpdatedAt.Format(time.RFC3339), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise not found: %d", e.ID)
	}
	return nil
}

// SetExerciseNote upserts the coaching note attached to an exercise.
func (d *DB) SetExerciseNote(exerciseID int64, note string) error {
	_, err := d.db.Exec(`
		INSERT INTO exercise_notes (exercise_id, note, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(exercise_id) DO UPDATE SET note = excluded.note, updated_at = excluded.updated_at`,
		exerciseID, note, nowString(),
	)
	if err != nil {
		return fmt.Errorf("set exercise note: %w", err)
	}
	return nil
}

// GetExerciseNote returns the coaching note for an exercise, or "" when
// none has been recorded.
func (d *DB) GetExerciseNote(exerciseID int64) (string, error) {
	var note string
	err := d.db.QueryRow("SELECT note FROM exercise_notes WHERE exercise_id = ?", exerciseID).Scan(&note)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get exercise note: %w", err)
	}
	return note, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanExercise scans a single row into an Exercise struct.
func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var primary, secondary, equipment, required, optional, aliases string
	var status, createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.StableID, &e.Name, &e.Slug, &primary, &secondary,
		&equipment, &required, &optional, &aliases,
		&e.DefaultSets, &e.DefaultReps, &status, &e.IsCustom, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.PrimaryMuscles = unmarshalStrings(primary)
	e.SecondaryMuscles = unmarshalStrings(secondary)
	e.Equipment = unmarshalStrings(equipment)
	e.RequiredEquipment = unmarshalStrings(required)
	e.OptionalEquipment = unmarshalStrings(optional)
	e.Aliases = unmarshalStrings(aliases)
	e.Status = models.ExerciseStatus(status)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &e, nil
}

// scanExercises scans multiple rows into a slice of Exercises.
func scanExercises(rows *sql.Rows) ([]*models.Exercise, error) {
	var out []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
