// ABOUTME: Exercise and Equipment models for the exercise library.
// ABOUTME: Exercises carry stable content-derived IDs and equipment requirements.
package models

import "time"

// ExerciseStatus describes where an exercise came from.
type ExerciseStatus string

const (
	// StatusStarter marks exercises seeded from the embedded starter library.
	StatusStarter ExerciseStatus = "starter"
	// StatusExtended marks exercises imported from an extended dataset.
	StatusExtended ExerciseStatus = "extended"
	// StatusUser marks exercises created by the user.
	StatusUser ExerciseStatus = "user"
)

// Exercise represents a single exercise definition in the library.
// Identity (ID, StableID) is immutable once created; metadata is not.
// Exercises referenced by historical workouts are never hard-deleted.
type Exercise struct {
	ID                int64          `json:"id" yaml:"id"`
	StableID          string         `json:"stable_id" yaml:"stable_id"`
	Name              string         `json:"name" yaml:"name"`
	Slug              string         `json:"slug" yaml:"slug"`
	PrimaryMuscles    []string       `json:"primary_muscles,omitempty" yaml:"primary_muscles,omitempty"`
	SecondaryMuscles  []string       `json:"secondary_muscles,omitempty" yaml:"secondary_muscles,omitempty"`
	Equipment         []string       `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	RequiredEquipment []string       `json:"required_equipment,omitempty" yaml:"required_equipment,omitempty"`
	OptionalEquipment []string       `json:"optional_equipment,omitempty" yaml:"optional_equipment,omitempty"`
	Aliases           []string       `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	DefaultSets       int            `json:"default_sets" yaml:"default_sets"`
	DefaultReps       string         `json:"default_reps" yaml:"default_reps"`
	Status            ExerciseStatus `json:"status" yaml:"status"`
	IsCustom          bool           `json:"is_custom" yaml:"is_custom"`
	CreatedAt         time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" yaml:"updated_at"`
}

// NewExercise creates a user-defined exercise with sensible defaults.
func NewExercise(name string) *Exercise {
	now := time.Now()
	return &Exercise{
		Name:        name,
		Slug:        Slugify(name),
		DefaultSets: 3,
		DefaultReps: "8-12",
		Status:      StatusUser,
		IsCustom:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithMuscles sets the primary muscle groups.
func (e *Exercise) WithMuscles(primary ...string) *Exercise {
	e.PrimaryMuscles = primary
	return e
}

// WithEquipment sets the equipment list; the first entry is treated as required.
func (e *Exercise) WithEquipment(ids ...string) *Exercise {
	e.Equipment = ids
	if len(ids) > 0 {
		e.RequiredEquipment = ids[:1]
		e.OptionalEquipment = ids[1:]
	}
	return e
}

// WithAliases sets alternative names the resolver should recognize.
func (e *Exercise) WithAliases(aliases ...string) *Exercise {
	e.Aliases = aliases
	return e
}

// Equipment represents one entry in the static equipment catalog.
// The catalog is seeded once and keyed by stable string IDs.
type Equipment struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Category   string `json:"category" yaml:"category"`
	IsPortable bool   `json:"is_portable" yaml:"is_portable"`
}
