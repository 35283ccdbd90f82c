// ABOUTME: Program model, a named workout template with a color tag.
// ABOUTME: Exercise entries are frozen ExerciseRef snapshots.
package models

// Program is a reusable workout template.
type Program struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	Color     string        `json:"color"`
	Exercises []ExerciseRef `json:"exercises"`
}

// NewProgram creates a program with the given exercise snapshots.
func NewProgram(name, color string, exercises []ExerciseRef) *Program {
	if exercises == nil {
		exercises = []ExerciseRef{}
	}
	return &Program{Name: name, Color: color, Exercises: exercises}
}

// RecordID implements store.Record.
func (p *Program) RecordID() uint64 { return p.ID }

// SetRecordID implements store.Record.
func (p *Program) SetRecordID(id uint64) { p.ID = id }
