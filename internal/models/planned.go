// ABOUTME: PlannedWorkout model for scheduling workouts on future dates.
// ABOUTME: A plan references a template or carries a literal exercise list.
package models

// PlannedWorkout schedules a workout for a calendar date. It either points
// at a template or carries its own literal exercise list.
type PlannedWorkout struct {
	ID         int64             `json:"id" yaml:"id"`
	Date       string            `json:"date" yaml:"date"` // YYYY-MM-DD
	TemplateID *int64            `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Exercises  []PlannedExercise `json:"exercises,omitempty" yaml:"exercises,omitempty"`
	Source     string            `json:"source" yaml:"source"` // "user", "assistant"
}

// PlannedExercise is one entry in a plan's literal exercise list.
type PlannedExercise struct {
	ExerciseID int64  `json:"exercise_id" yaml:"exercise_id"`
	TargetSets int    `json:"target_sets" yaml:"target_sets"`
	TargetReps string `json:"target_reps" yaml:"target_reps"`
}
