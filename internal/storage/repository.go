// ABOUTME: Repository interface for gym data storage.
// ABOUTME: Defines the contract shared by the Badger and SQLite backends.
package storage

import "github.com/harperreed/gym/internal/models"

// Repository defines the storage interface for gym data.
// This interface allows swapping implementations (e.g., for testing).
//
// Read-by-id methods report absence as (nil, nil); callers must check.
// Update methods have upsert semantics: updating an id that does not exist
// inserts it. That is intentional (the import path depends on it) but it
// weakens the not-found signal for callers that wanted a strict replace.
type Repository interface {
	// Exercise operations
	AddExercise(name string, group models.MuscleGroup) (*models.Exercise, error)
	GetExercise(id uint64) (*models.Exercise, error)
	ListExercises() ([]*models.Exercise, error)
	UpdateExercise(ex *models.Exercise) error
	DeleteExercise(id uint64) error
	ExercisesByGroup() (map[models.MuscleGroup][]*models.Exercise, error)

	// Program operations
	AddProgram(p *models.Program) (uint64, error)
	GetProgram(id uint64) (*models.Program, error)
	ListPrograms() ([]*models.Program, error)
	UpdateProgram(p *models.Program) error
	DeleteProgram(id uint64) error

	// Workout operations
	AddWorkout(w *models.Workout) (uint64, error)
	GetWorkout(id uint64) (*models.Workout, error)
	ListWorkouts() ([]*models.Workout, error)
	UpdateWorkout(w *models.Workout) error
	DeleteWorkout(id uint64) error
	WorkoutsByDate(date string) ([]*models.Workout, error)
	WorkoutDates() ([]string, error)

	// Export/Import
	ExportAll() (*Snapshot, error)
	ImportAll(s *Snapshot) error
	ClearAll() error

	// Lifecycle
	Close() error
}
