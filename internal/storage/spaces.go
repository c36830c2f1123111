// ABOUTME: WorkoutSpace CRUD operations.
// ABOUTME: Default-space arbitration runs in one transaction.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/lift/internal/models"
)

const spaceColumns = `id, name, description, equipment_ids, is_default, is_temporary, expires_at, created_at`

// CreateSpace stores a new workout space. When IsDefault is set, every
// other space's flag is cleared in the same transaction.
func (d *DB) CreateSpace(s *models.WorkoutSpace) error {
	return d.WithTx(func(tx *Tx) error {
		id, err := tx.InsertSpace(s)
		if err != nil {
			return err
		}
		s.ID = id
		if s.IsDefault {
			return tx.ClearDefaultSpaces(id)
		}
		return nil
	})
}

// GetSpace retrieves a workout space by id.
func (d *DB) GetSpace(id int64) (*models.WorkoutSpace, error) {
	row := d.db.QueryRow("SELECT "+spaceColumns+" FROM workout_spaces WHERE id = ?", id)
	s, err := scanSpace(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("space not found: %d", id)
	}
	return s, err
}

// ListSpaces retrieves all workout spaces, default first, then by name.
func (d *DB) ListSpaces() ([]*models.WorkoutSpace, error) {
	rows, err := d.db.Query("SELECT " + spaceColumns + " FROM workout_spaces ORDER BY is_default DESC, name")
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	var out []*models.WorkoutSpace
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DefaultSpace returns the space flagged as default, or nil when none is.
func (d *DB) DefaultSpace() (*models.WorkoutSpace, error) {
	row := d.db.QueryRow("SELECT " + spaceColumns + " FROM workout_spaces WHERE is_default = 1 LIMIT 1")
	s, err := scanSpace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// SetDefaultSpace makes the given space the sole default, clearing the
// flag everywhere else inside one transaction.
func (d *DB) SetDefaultSpace(id int64) error {
	return d.WithTx(func(tx *Tx) error {
		if err := tx.SetSpaceDefault(id); err != nil {
			return err
		}
		return tx.ClearDefaultSpaces(id)
	})
}

// DeleteSpace removes a workout space. Templates and sessions keep their
// space_id; readers treat a missing space as "unknown location".
func (d *DB) DeleteSpace(id int64) error {
	res, err := d.db.Exec("DELETE FROM workout_spaces WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("space not found: %d", id)
	}
	return nil
}

// scanSpace scans a single row into a WorkoutSpace struct.
func scanSpace(row rowScanner) (*models.WorkoutSpace, error) {
	var s models.WorkoutSpace
	var equipment, createdAt string
	var expiresAt sql.NullString

	err := row.Scan(&s.ID, &s.Name, &s.Description, &equipment,
		&s.IsDefault, &s.IsTemporary, &expiresAt, &createdAt)
	if err != nil {
		return nil, err
	}

	s.EquipmentIDs = unmarshalStrings(equipment)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if expiresAt.Valid {
		t, err := time.Parse(time.RFC3339, expiresAt.String)
		if err == nil {
			s.ExpiresAt = &t
		}
	}
	return &s, nil
}
