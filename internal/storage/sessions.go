// ABOUTME: Session, SessionItem, and SessionSet CRUD operations.
// ABOUTME: Item+set writes share transactions; cascade delete is explicit.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/lift/internal/models"
)

const sessionColumns = `id, started_at, finished_at, template_id, space_id, note, reflection`

// CreateSession stores a session row (without items).
func (d *DB) CreateSession(s *models.Session) error {
	return d.WithTx(func(tx *Tx) error {
		id, err := tx.InsertSession(s)
		if err != nil {
			return err
		}
		s.ID = id
		return nil
	})
}

// CreateSessionWithItems stores a session and its pre-filled items in one
// transaction. Item ids and sort order are assigned from slice position.
func (d *DB) CreateSessionWithItems(s *models.Session) error {
	return d.WithTx(func(tx *Tx) error {
		id, err := tx.InsertSession(s)
		if err != nil {
			return err
		}
		s.ID = id
		for i := range s.Items {
			s.Items[i].SessionID = id
			s.Items[i].SortOrder = i
			itemID, err := tx.InsertSessionItem(&s.Items[i])
			if err != nil {
				return err
			}
			s.Items[i].ID = itemID
		}
		return nil
	})
}

// GetSession retrieves a session by id, without items.
func (d *DB) GetSession(id int64) (*models.Session, error) {
	row := d.db.QueryRow("SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %d", id)
	}
	return s, err
}

// ListSessions retrieves sessions most recent first, optionally limited.
func (d *DB) ListSessions(limit int) ([]*models.Session, error) {
	query := "SELECT " + sessionColumns + " FROM sessions ORDER BY started_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ActiveSession returns the in-progress session (finished_at is null), or
// nil when none is active. At most the most-recently-started session may
// be active.
func (d *DB) ActiveSession() (*models.Session, error) {
	row := d.db.QueryRow("SELECT " + sessionColumns +
		" FROM sessions WHERE finished_at IS NULL ORDER BY started_at DESC LIMIT 1")
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// FinishSession stamps finished_at on an active session and records an
// optional reflection.
func (d *DB) FinishSession(id int64, reflection string) error {
	var refl any
	if reflection != "" {
		refl = reflection
	}
	res, err := d.db.Exec(
		"UPDATE sessions SET finished_at = ?, reflection = ? WHERE id = ? AND finished_at IS NULL",
		time.Now().Format(time.RFC3339), refl, id,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no active session with id %d", id)
	}
	return nil
}

// AddSetToSession records one set against an exercise in a session. The
// session item is found or created and the set appended with the next
// dense set number, all in one transaction.
func (d *DB) AddSetToSession(sessionID, exerciseID int64, set models.SessionSet) (*models.SessionSet, error) {
	err := d.WithTx(func(tx *Tx) error {
		var itemID int64
		err := tx.tx.QueryRow(
			"SELECT id FROM session_items WHERE session_id = ? AND exercise_id = ?",
			sessionID, exerciseID,
		).Scan(&itemID)
		if err == sql.ErrNoRows {
			var next sql.NullInt64
			if err := tx.tx.QueryRow(
				"SELECT MAX(sort_order) FROM session_items WHERE session_id = ?", sessionID,
			).Scan(&next); err != nil {
				return fmt.Errorf("next sort order: %w", err)
			}
			sortOrder := 0
			if next.Valid {
				sortOrder = int(next.Int64) + 1
			}
			itemID, err = tx.InsertSessionItem(&models.SessionItem{
				SessionID:  sessionID,
				ExerciseID: exerciseID,
				SortOrder:  sortOrder,
				TargetSets: 3,
				TargetReps: "8-12",
			})
			if err != nil {
				return err
			}
		} else if err != nil {
			return fmt.Errorf("find session item: %w", err)
		}

		var maxSet sql.NullInt64
		if err := tx.tx.QueryRow(
			"SELECT MAX(set_number) FROM session_sets WHERE item_id = ?", itemID,
		).Scan(&maxSet); err != nil {
			return fmt.Errorf("next set number: %w", err)
		}
		set.ItemID = itemID
		set.SetNumber = 1
		if maxSet.Valid {
			set.SetNumber = int(maxSet.Int64) + 1
		}

		id, err := tx.InsertSessionSet(&set)
		if err != nil {
			return err
		}
		set.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// DeleteSession removes a session with its items and sets in one
// transaction.
func (d *DB) DeleteSession(id int64) error {
	return d.WithTx(func(tx *Tx) error {
		if _, err := tx.tx.Exec(`
			DELETE FROM session_sets WHERE item_id IN
				(SELECT id FROM session_items WHERE session_id = ?)`, id); err != nil {
			return fmt.Errorf("delete session sets: %w", err)
		}
		if _, err := tx.tx.Exec("DELETE FROM session_items WHERE session_id = ?", id); err != nil {
			return fmt.Errorf("delete session items: %w", err)
		}
		res, err := tx.tx.Exec("DELETE FROM sessions WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("session not found: %d", id)
		}
		return nil
	})
}

// listSessionItems loads ordered items (without sets) for one session.
func (d *DB) listSessionItems(sessionID int64) ([]models.SessionItem, error) {
	rows, err := d.db.Query(`
		SELECT id, session_id, exercise_id, sort_order, target_sets, target_reps, rest_seconds, notes
		FROM session_items WHERE session_id = ? ORDER BY sort_order`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session items: %w", err)
	}
	defer rows.Close()

	var out []models.SessionItem
	for rows.Next() {
		var it models.SessionItem
		var rest sql.NullInt64
		var notes sql.NullString
		if err := rows.Scan(&it.ID, &it.SessionID, &it.ExerciseID, &it.SortOrder,
			&it.TargetSets, &it.TargetReps, &rest, &notes); err != nil {
			return nil, fmt.Errorf("scan session item: %w", err)
		}
		if rest.Valid {
			r := int(rest.Int64)
			it.RestSeconds = &r
		}
		if notes.Valid {
			it.Notes = &notes.String
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// scanSession scans a single row into a Session struct.
func scanSession(row rowScanner) (*models.Session, error) {
	var s models.Session
	var startedAt string
	var finishedAt, note, reflection sql.NullString
	var templateID, spaceID sql.NullInt64

	err := row.Scan(&s.ID, &startedAt, &finishedAt, &templateID, &spaceID, &note, &reflection)
	if err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if finishedAt.Valid {
		t, err := time.Parse(time.RFC3339, finishedAt.String)
		if err == nil {
			s.FinishedAt = &t
		}
	}
	if templateID.Valid {
		s.TemplateID = &templateID.Int64
	}
	if spaceID.Valid {
		s.SpaceID = &spaceID.Int64
	}
	if note.Valid {
		s.Note = &note.String
	}
	if reflection.Valid {
		s.Reflection = &reflection.String
	}
	return &s, nil
}

// scanSet scans a single row into a SessionSet struct.
func scanSet(row rowScanner) (*models.SessionSet, error) {
	var st models.SessionSet
	var weight sql.NullFloat64
	err := row.Scan(&st.ID, &st.ItemID, &st.SetNumber, &weight, &st.Reps, &st.IsWarmup, &st.IsComplete)
	if err != nil {
		return nil, err
	}
	if weight.Valid {
		st.Weight = &weight.Float64
	}
	return &st, nil
}
