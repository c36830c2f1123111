// ABOUTME: PlannedWorkout CRUD operations for calendar scheduling.
// ABOUTME: Literal exercise lists are stored as a JSON column.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/harperreed/lift/internal/models"
)

// CreatePlan stores a planned workout.
func (d *DB) CreatePlan(p *models.PlannedWorkout) error {
	var exercises any
	if len(p.Exercises) > 0 {
		exercises = marshalJSON(p.Exercises)
	}
	if p.Source == "" {
		p.Source = "user"
	}

	res, err := d.db.Exec(
		"INSERT INTO planned_workouts (date, template_id, exercises, source) VALUES (?, ?, ?, ?)",
		p.Date, p.TemplateID, exercises, p.Source,
	)
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

// ListPlans retrieves planned workouts on or after the given date
// (YYYY-MM-DD), soonest first. An empty date lists everything.
func (d *DB) ListPlans(fromDate string) ([]*models.PlannedWorkout, error) {
	query := "SELECT id, date, template_id, exercises, source FROM planned_workouts"
	var args []any
	if fromDate != "" {
		query += " WHERE date >= ?"
		args = append(args, fromDate)
	}
	query += " ORDER BY date"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var out []*models.PlannedWorkout
	for rows.Next() {
		var p models.PlannedWorkout
		var templateID sql.NullInt64
		var exercises sql.NullString
		if err := rows.Scan(&p.ID, &p.Date, &templateID, &exercises, &p.Source); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		if templateID.Valid {
			p.TemplateID = &templateID.Int64
		}
		if exercises.Valid && exercises.String != "" {
			if err := json.Unmarshal([]byte(exercises.String), &p.Exercises); err != nil {
				return nil, fmt.Errorf("decode plan exercises: %w", err)
			}
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// DeletePlan removes a planned workout.
func (d *DB) DeletePlan(id int64) error {
	res, err := d.db.Exec("DELETE FROM planned_workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan not found: %d", id)
	}
	return nil
}
