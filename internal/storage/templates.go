// ABOUTME: Template and TemplateItem CRUD operations.
// ABOUTME: A template and its items are written and deleted atomically.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/lift/internal/models"
)

// CreateTemplate stores a template together with its items in one
// transaction. Item sort order is rewritten to the dense 0..n-1 range.
func (d *DB) CreateTemplate(t *models.Template) error {
	return d.WithTx(func(tx *Tx) error {
		id, err := tx.InsertTemplate(t)
		if err != nil {
			return err
		}
		t.ID = id
		for i := range t.Items {
			t.Items[i].TemplateID = id
			t.Items[i].SortOrder = i
			itemID, err := tx.InsertTemplateItem(&t.Items[i])
			if err != nil {
				return err
			}
			t.Items[i].ID = itemID
		}
		return nil
	})
}

// GetTemplate retrieves a template by id, without items.
func (d *DB) GetTemplate(id int64) (*models.Template, error) {
	row := d.db.QueryRow("SELECT id, name, space_id, created_at, updated_at FROM templates WHERE id = ?", id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template not found: %d", id)
	}
	return t, err
}

// ListTemplates retrieves all templates ordered by name, without items.
func (d *DB) ListTemplates() ([]*models.Template, error) {
	rows, err := d.db.Query("SELECT id, name, space_id, created_at, updated_at FROM templates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []*models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTemplate removes a template and its items in one transaction.
func (d *DB) DeleteTemplate(id int64) error {
	return d.WithTx(func(tx *Tx) error {
		if _, err := tx.tx.Exec("DELETE FROM template_items WHERE template_id = ?", id); err != nil {
			return fmt.Errorf("delete template items: %w", err)
		}
		res, err := tx.tx.Exec("DELETE FROM templates WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("template not found: %d", id)
		}
		return nil
	})
}

// listTemplateItems loads the ordered items for one template.
func (d *DB) listTemplateItems(templateID int64) ([]models.TemplateItem, error) {
	rows, err := d.db.Query(`
		SELECT id, template_id, exercise_id, sort_order, target_sets, target_reps, notes
		FROM template_items WHERE template_id = ? ORDER BY sort_order`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template items: %w", err)
	}
	defer rows.Close()

	var out []models.TemplateItem
	for rows.Next() {
		var it models.TemplateItem
		var notes sql.NullString
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.ExerciseID, &it.SortOrder,
			&it.TargetSets, &it.TargetReps, &notes); err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		if notes.Valid {
			it.Notes = &notes.String
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// scanTemplate scans a single row into a Template struct.
func scanTemplate(row rowScanner) (*models.Template, error) {
	var t models.Template
	var spaceID sql.NullInt64
	var createdAt, updatedAt string

	if err := row.Scan(&t.ID, &t.Name, &spaceID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if spaceID.Valid {
		t.SpaceID = &spaceID.Int64
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}
