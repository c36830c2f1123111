// ABOUTME: Read-side joins over templates, sessions, and exercises.
// ABOUTME: Pure reads; batch lookups by id, explicit ordering, early-stop scans.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/lift/internal/models"
)

// GetTemplateWithItems loads a template, its ordered items, and the
// referenced exercises in one batch lookup.
func (d *DB) GetTemplateWithItems(id int64) (*models.Template, map[int64]*models.Exercise, error) {
	t, err := d.GetTemplate(id)
	if err != nil {
		return nil, nil, err
	}

	items, err := d.listTemplateItems(id)
	if err != nil {
		return nil, nil, err
	}
	t.Items = items

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ExerciseID)
	}
	exercises, err := d.GetExercisesByIDs(ids)
	if err != nil {
		return nil, nil, err
	}
	return t, exercises, nil
}

// GetSessionWithSets loads a session, its ordered items with their sets,
// and the referenced exercises. Sets for all items are fetched with one
// IN query.
func (d *DB) GetSessionWithSets(id int64) (*models.Session, map[int64]*models.Exercise, error) {
	s, err := d.GetSession(id)
	if err != nil {
		return nil, nil, err
	}

	items, err := d.listSessionItems(id)
	if err != nil {
		return nil, nil, err
	}

	setsByItem, err := d.sessionSetsByItem(id)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, 0, len(items))
	for i := range items {
		items[i].Sets = setsByItem[items[i].ID]
		ids = append(ids, items[i].ExerciseID)
	}
	s.Items = items

	exercises, err := d.GetExercisesByIDs(ids)
	if err != nil {
		return nil, nil, err
	}
	return s, exercises, nil
}

// sessionSetsByItem fetches every set belonging to a session, grouped by
// item id and ordered by set number.
func (d *DB) sessionSetsByItem(sessionID int64) (map[int64][]models.SessionSet, error) {
	rows, err := d.db.Query(`
		SELECT ss.id, ss.item_id, ss.set_number, ss.weight, ss.reps, ss.is_warmup, ss.is_complete
		FROM session_sets ss
		JOIN session_items si ON si.id = ss.item_id
		WHERE si.session_id = ?
		ORDER BY ss.item_id, ss.set_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session sets: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.SessionSet)
	for rows.Next() {
		st, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session set: %w", err)
		}
		out[st.ItemID] = append(out[st.ItemID], *st)
	}
	return out, rows.Err()
}

// ExerciseUsageCounts aggregates how many finished sessions include each
// exercise.
func (d *DB) ExerciseUsageCounts() (map[int64]int, error) {
	rows, err := d.db.Query(`
		SELECT si.exercise_id, COUNT(DISTINCT s.id)
		FROM session_items si
		JOIN sessions s ON s.id = si.session_id
		WHERE s.finished_at IS NOT NULL
		GROUP BY si.exercise_id`)
	if err != nil {
		return nil, fmt.Errorf("usage counts: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan usage count: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

// LastPerformance finds, per requested exercise id, the sets from the most
// recent finished session that included it. The scan walks finished
// sessions newest first and stops as soon as every requested id has been
// satisfied.
func (d *DB) LastPerformance(exerciseIDs []int64) (map[int64][]models.SessionSet, error) {
	out := make(map[int64][]models.SessionSet, len(exerciseIDs))
	if len(exerciseIDs) == 0 {
		return out, nil
	}

	wanted := make(map[int64]bool, len(exerciseIDs))
	for _, id := range exerciseIDs {
		wanted[id] = true
	}

	placeholders := strings.Repeat("?,", len(exerciseIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(exerciseIDs))
	for i, id := range exerciseIDs {
		args[i] = id
	}

	// Rows arrive grouped by item: all sets of one item are contiguous.
	rows, err := d.db.Query(`
		SELECT si.exercise_id, si.id,
			ss.id, ss.item_id, ss.set_number, ss.weight, ss.reps, ss.is_warmup, ss.is_complete
		FROM sessions s
		JOIN session_items si ON si.session_id = s.id
		JOIN session_sets ss ON ss.item_id = si.id
		WHERE s.finished_at IS NOT NULL AND si.exercise_id IN (`+placeholders+`)
		ORDER BY s.started_at DESC, si.id, ss.set_number`, args...)
	if err != nil {
		return nil, fmt.Errorf("last performance: %w", err)
	}
	defer rows.Close()

	acceptedItem := make(map[int64]int64) // exercise id -> item id whose sets we keep
	for rows.Next() {
		var exerciseID, itemID int64
		var st models.SessionSet
		var weight sql.NullFloat64
		if err := rows.Scan(&exerciseID, &itemID,
			&st.ID, &st.ItemID, &st.SetNumber, &weight, &st.Reps, &st.IsWarmup, &st.IsComplete); err != nil {
			return nil, fmt.Errorf("scan last performance: %w", err)
		}
		if weight.Valid {
			st.Weight = &weight.Float64
		}

		item, seen := acceptedItem[exerciseID]
		if !seen {
			if len(acceptedItem) == len(wanted) {
				// Every requested exercise already has its most recent item.
				break
			}
			acceptedItem[exerciseID] = itemID
			item = itemID
		}
		if item == itemID {
			out[exerciseID] = append(out[exerciseID], st)
		}
	}
	return out, rows.Err()
}
