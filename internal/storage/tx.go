// ABOUTME: Transaction wrapper exposing multi-table write primitives.
// ABOUTME: The draft executor composes these inside a single atomic commit.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
)

// Tx wraps an open transaction with row-level write primitives scoped to
// the tables a draft touches. Callers never observe a partially written
// item/set graph: WithTx commits all or nothing.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside one transaction. If fn returns an error the
// transaction rolls back and the error is returned unchanged.
func (d *DB) WithTx(fn func(tx *Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Tx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ExerciseExists reports whether an exercise row exists, reading inside
// the transaction so executors can detect references that vanished between
// validation and commit.
func (t *Tx) ExerciseExists(id int64) (bool, error) {
	var n int
	err := t.tx.QueryRow("SELECT COUNT(1) FROM exercises WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check exercise %d: %w", id, err)
	}
	return n > 0, nil
}

// TemplateExists reports whether a template row exists.
func (t *Tx) TemplateExists(id int64) (bool, error) {
	var n int
	err := t.tx.QueryRow("SELECT COUNT(1) FROM templates WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check template %d: %w", id, err)
	}
	return n > 0, nil
}

// SpaceExists reports whether a workout space row exists.
func (t *Tx) SpaceExists(id int64) (bool, error) {
	var n int
	err := t.tx.QueryRow("SELECT COUNT(1) FROM workout_spaces WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check space %d: %w", id, err)
	}
	return n > 0, nil
}

// SpaceNameTaken reports whether any space already uses the name,
// compared case-insensitively after trimming.
func (t *Tx) SpaceNameTaken(name string) (bool, error) {
	var n int
	err := t.tx.QueryRow(
		"SELECT COUNT(1) FROM workout_spaces WHERE LOWER(TRIM(name)) = LOWER(TRIM(?))",
		name,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check space name: %w", err)
	}
	return n > 0, nil
}

// InsertSession creates a session row and returns its id.
func (t *Tx) InsertSession(s *models.Session) (int64, error) {
	var finished any
	if s.FinishedAt != nil {
		finished = s.FinishedAt.Format(time.RFC3339)
	}
	res, err := t.tx.Exec(`
		INSERT INTO sessions (started_at, finished_at, template_id, space_id, note, reflection)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.StartedAt.Format(time.RFC3339), finished, s.TemplateID, s.SpaceID, s.Note, s.Reflection,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

// InsertSessionItem creates a session item row and returns its id.
func (t *Tx) InsertSessionItem(it *models.SessionItem) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO session_items (session_id, exercise_id, sort_order, target_sets, target_reps, rest_seconds, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.SessionID, it.ExerciseID, it.SortOrder, it.TargetSets, it.TargetReps, it.RestSeconds, it.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session item: %w", err)
	}
	return res.LastInsertId()
}

// InsertSessionSet creates a set row and returns its id.
func (t *Tx) InsertSessionSet(s *models.SessionSet) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO session_sets (item_id, set_number, weight, reps, is_warmup, is_complete)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ItemID, s.SetNumber, s.Weight, s.Reps, s.IsWarmup, s.IsComplete,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session set: %w", err)
	}
	return res.LastInsertId()
}

// InsertTemplate creates a template row and returns its id.
func (t *Tx) InsertTemplate(tpl *models.Template) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO templates (name, space_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		tpl.Name, tpl.SpaceID,
		tpl.CreatedAt.Format(time.RFC3339), tpl.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert template: %w", err)
	}
	return res.LastInsertId()
}

// InsertTemplateItem creates a template item row and returns its id.
func (t *Tx) InsertTemplateItem(it *models.TemplateItem) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO template_items (template_id, exercise_id, sort_order, target_sets, target_reps, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		it.TemplateID, it.ExerciseID, it.SortOrder, it.TargetSets, it.TargetReps, it.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert template item: %w", err)
	}
	return res.LastInsertId()
}

// InsertSpace creates a workout space row and returns its id.
func (t *Tx) InsertSpace(s *models.WorkoutSpace) (int64, error) {
	var expires any
	if s.ExpiresAt != nil {
		expires = s.ExpiresAt.Format(time.RFC3339)
	}
	res, err := t.tx.Exec(`
		INSERT INTO workout_spaces (name, description, equipment_ids, is_default, is_temporary, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(s.Name), s.Description, marshalStrings(s.EquipmentIDs),
		s.IsDefault, s.IsTemporary, expires, s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert space: %w", err)
	}
	return res.LastInsertId()
}

// ClearDefaultSpaces clears is_default on every space except the given id.
// Pass 0 to clear all. Used to enforce the at-most-one-default invariant
// in the same transaction that sets a new default.
func (t *Tx) ClearDefaultSpaces(exceptID int64) error {
	_, err := t.tx.Exec("UPDATE workout_spaces SET is_default = 0 WHERE id != ?", exceptID)
	if err != nil {
		return fmt.Errorf("clear default spaces: %w", err)
	}
	return nil
}

// SetSpaceDefault marks one space as the default.
func (t *Tx) SetSpaceDefault(id int64) error {
	res, err := t.tx.Exec("UPDATE workout_spaces SET is_default = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("set default space: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set default space: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("space not found: %d", id)
	}
	return nil
}
