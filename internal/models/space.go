// ABOUTME: WorkoutSpace model for training locations (gyms).
// ABOUTME: Spaces constrain which equipment is available; at most one is default.
package models

import "time"

// WorkoutSpace represents a training location and the equipment found there.
// At most one space holds IsDefault=true at any time; the draft executor
// enforces that invariant transactionally.
type WorkoutSpace struct {
	ID           int64      `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty"`
	EquipmentIDs []string   `json:"equipment_ids,omitempty" yaml:"equipment_ids,omitempty"`
	IsDefault    bool       `json:"is_default" yaml:"is_default"`
	IsTemporary  bool       `json:"is_temporary" yaml:"is_temporary"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
}

// NewWorkoutSpace creates a space with the given name.
func NewWorkoutSpace(name string) *WorkoutSpace {
	return &WorkoutSpace{
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// WithEquipment sets the available equipment IDs.
func (s *WorkoutSpace) WithEquipment(ids ...string) *WorkoutSpace {
	s.EquipmentIDs = ids
	return s
}

// WithExpiry marks the space temporary with an expiration time.
func (s *WorkoutSpace) WithExpiry(t time.Time) *WorkoutSpace {
	s.IsTemporary = true
	s.ExpiresAt = &t
	return s
}
