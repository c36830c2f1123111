// ABOUTME: Session, SessionItem, and SessionSet models for realized workouts.
// ABOUTME: A session is active while FinishedAt is nil; items own ordered sets.
package models

import "time"

// Session is one realized workout instance, in progress or finished.
// Business logic treats "active" as FinishedAt == nil; at most the
// most-recently-started session may be active.
type Session struct {
	ID         int64         `json:"id" yaml:"id"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	TemplateID *int64        `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	SpaceID    *int64        `json:"space_id,omitempty" yaml:"space_id,omitempty"`
	Note       *string       `json:"note,omitempty" yaml:"note,omitempty"`
	Reflection *string       `json:"reflection,omitempty" yaml:"reflection,omitempty"`
	Items      []SessionItem `json:"items,omitempty" yaml:"items,omitempty"` // Populated when fetching full session
}

// NewSession creates a session starting now.
func NewSession() *Session {
	return &Session{StartedAt: time.Now()}
}

// WithTemplate records which template the session was started from.
func (s *Session) WithTemplate(templateID int64) *Session {
	s.TemplateID = &templateID
	return s
}

// WithSpace records where the session takes place.
func (s *Session) WithSpace(spaceID int64) *Session {
	s.SpaceID = &spaceID
	return s
}

// WithNote sets the free-text session note.
func (s *Session) WithNote(note string) *Session {
	s.Note = &note
	return s
}

// Active reports whether the session is still in progress.
func (s *Session) Active() bool {
	return s.FinishedAt == nil
}

// SessionItem is one exercise performed within a session.
type SessionItem struct {
	ID          int64        `json:"id" yaml:"id"`
	SessionID   int64        `json:"session_id" yaml:"session_id"`
	ExerciseID  int64        `json:"exercise_id" yaml:"exercise_id"`
	SortOrder   int          `json:"sort_order" yaml:"sort_order"`
	TargetSets  int          `json:"target_sets" yaml:"target_sets"`
	TargetReps  string       `json:"target_reps" yaml:"target_reps"`
	RestSeconds *int         `json:"rest_seconds,omitempty" yaml:"rest_seconds,omitempty"`
	Notes       *string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Sets        []SessionSet `json:"sets,omitempty" yaml:"sets,omitempty"` // Populated when fetching full session
}

// SessionSet is one realized set. SetNumber is dense and unique per item,
// starting at 1. Reps is stored as text so rep ranges ("8-12") survive.
type SessionSet struct {
	ID         int64    `json:"id" yaml:"id"`
	ItemID     int64    `json:"item_id" yaml:"item_id"`
	SetNumber  int      `json:"set_number" yaml:"set_number"`
	Weight     *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Reps       string   `json:"reps" yaml:"reps"`
	IsWarmup   bool     `json:"is_warmup" yaml:"is_warmup"`
	IsComplete bool     `json:"is_complete" yaml:"is_complete"`
}
