// ABOUTME: Repository interface for lift data storage.
// ABOUTME: Defines the contract consumed by the CLI, MCP server, and tests.
package storage

import (
	"time"

	"github.com/harperreed/lift/internal/models"
)

// Repository defines the storage interface for lift data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Equipment catalog
	ListEquipment() ([]*models.Equipment, error)
	GetEquipment(id string) (*models.Equipment, error)

	// Exercise operations
	CreateExercise(e *models.Exercise) error
	GetExercise(id int64) (*models.Exercise, error)
	GetExerciseByStableID(stableID string) (*models.Exercise, error)
	ListExercises() ([]*models.Exercise, error)
	GetExercisesByIDs(ids []int64) (map[int64]*models.Exercise, error)
	CountExercises() (int, error)
	UpdateExercise(e *models.Exercise) error
	SetExerciseNote(exerciseID int64, note string) error
	GetExerciseNote(exerciseID int64) (string, error)

	// Workout space operations
	CreateSpace(s *models.WorkoutSpace) error
	GetSpace(id int64) (*models.WorkoutSpace, error)
	ListSpaces() ([]*models.WorkoutSpace, error)
	DefaultSpace() (*models.WorkoutSpace, error)
	SetDefaultSpace(id int64) error
	DeleteSpace(id int64) error

	// Template operations
	CreateTemplate(t *models.Template) error
	GetTemplate(id int64) (*models.Template, error)
	GetTemplateWithItems(id int64) (*models.Template, map[int64]*models.Exercise, error)
	ListTemplates() ([]*models.Template, error)
	DeleteTemplate(id int64) error

	// Session operations
	CreateSession(s *models.Session) error
	CreateSessionWithItems(s *models.Session) error
	GetSession(id int64) (*models.Session, error)
	GetSessionWithSets(id int64) (*models.Session, map[int64]*models.Exercise, error)
	ListSessions(limit int) ([]*models.Session, error)
	ActiveSession() (*models.Session, error)
	FinishSession(id int64, reflection string) error
	AddSetToSession(sessionID, exerciseID int64, set models.SessionSet) (*models.SessionSet, error)
	DeleteSession(id int64) error

	// Planned workout operations
	CreatePlan(p *models.PlannedWorkout) error
	ListPlans(fromDate string) ([]*models.PlannedWorkout, error)
	DeletePlan(id int64) error

	// Aggregates
	ExerciseUsageCounts() (map[int64]int, error)
	LastPerformance(exerciseIDs []int64) (map[int64][]models.SessionSet, error)
	UsageReports() ([]UsageReport, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error
	ExportJSON() ([]byte, error)
	ExportYAML() ([]byte, error)
	ExportMarkdown(since *time.Time) (string, error)
	ImportJSON(raw []byte) error
	ImportExercises(raw []RawExercise, status models.ExerciseStatus) (int, error)

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
