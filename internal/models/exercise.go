// ABOUTME: Exercise model and the ExerciseRef snapshot embedded elsewhere.
// ABOUTME: Catalog exercises have IsCustom=false, user-created ones true.
package models

// Exercise is a single exercise in the catalog.
type Exercise struct {
	ID       uint64      `json:"id"`
	Name     string      `json:"name"`
	Group    MuscleGroup `json:"group"`
	IsCustom bool        `json:"isCustom"`
}

// NewExercise creates a user-defined exercise.
func NewExercise(name string, group MuscleGroup) *Exercise {
	return &Exercise{Name: name, Group: group, IsCustom: true}
}

// RecordID implements store.Record.
func (e *Exercise) RecordID() uint64 { return e.ID }

// SetRecordID implements store.Record.
func (e *Exercise) SetRecordID(id uint64) { e.ID = id }

// Ref returns a snapshot of the exercise for embedding in a program.
// Snapshots are copies, never re-synced: renaming or deleting the
// catalog exercise later leaves existing programs and workouts intact.
func (e *Exercise) Ref() ExerciseRef {
	return ExerciseRef{ID: e.ID, Name: e.Name, Group: e.Group}
}

// ExerciseRef is a frozen copy of an exercise's identifying fields.
type ExerciseRef struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Group MuscleGroup `json:"group"`
}
