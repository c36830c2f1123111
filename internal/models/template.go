// ABOUTME: Template and TemplateItem models for reusable workout plans.
// ABOUTME: Templates store targets (sets x reps), not realized sets.
package models

import "time"

// Template is a reusable workout plan. It exclusively owns its items.
type Template struct {
	ID        int64          `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	SpaceID   *int64         `json:"space_id,omitempty" yaml:"space_id,omitempty"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"updated_at"`
	Items     []TemplateItem `json:"items,omitempty" yaml:"items,omitempty"` // Populated when fetching full template
}

// NewTemplate creates a template with the given name.
func NewTemplate(name string) *Template {
	now := time.Now()
	return &Template{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithSpace pins the template to a workout space.
func (t *Template) WithSpace(spaceID int64) *Template {
	t.SpaceID = &spaceID
	return t
}

// TemplateItem is one exercise slot in a template.
// SortOrder is dense, zero-based, and unique per template; at most one
// item per (template, exercise) pair.
type TemplateItem struct {
	ID         int64   `json:"id" yaml:"id"`
	TemplateID int64   `json:"template_id" yaml:"template_id"`
	ExerciseID int64   `json:"exercise_id" yaml:"exercise_id"`
	SortOrder  int     `json:"sort_order" yaml:"sort_order"`
	TargetSets int     `json:"target_sets" yaml:"target_sets"`
	TargetReps string  `json:"target_reps" yaml:"target_reps"`
	Notes      *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
