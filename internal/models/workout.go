// ABOUTME: Workout, WorkoutExercise, and Set models for logged sessions.
// ABOUTME: Set fields use NullNumber to round-trip unfilled placeholders.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Workout is a single logged training session.
//
// Date is a plain "YYYY-MM-DD" calendar string with no timezone; all date
// comparisons are lexicographic, which is correct because the format is
// zero-padded. StartTime/EndTime are epoch milliseconds. A workout row is
// created the moment a session starts, before any sets are filled in, so
// in-progress sessions survive a crash.
type Workout struct {
	ID          uint64            `json:"id"`
	Date        string            `json:"date"`
	ProgramName string            `json:"programName"`
	ProgramID   uint64            `json:"programId,omitempty"`
	StartTime   int64             `json:"startTime"`
	EndTime     int64             `json:"endTime,omitempty"`
	Exercises   []WorkoutExercise `json:"exercises"`
}

// NewWorkout creates a workout dated today with the clock started.
func NewWorkout(programName string) *Workout {
	return &Workout{
		Date:        Today(),
		ProgramName: programName,
		StartTime:   time.Now().UnixMilli(),
		Exercises:   []WorkoutExercise{},
	}
}

// FromProgram creates a workout pre-filled with the program's exercise
// snapshots, one empty set each.
func FromProgram(p *Program) *Workout {
	w := NewWorkout(p.Name)
	w.ProgramID = p.ID
	for _, ref := range p.Exercises {
		w.Exercises = append(w.Exercises, WorkoutExercise{
			ID:    ref.ID,
			Name:  ref.Name,
			Group: ref.Group,
			Sets:  []Set{{}},
		})
	}
	return w
}

// Finish stamps the end time.
func (w *Workout) Finish() {
	w.EndTime = time.Now().UnixMilli()
}

// RecordID implements store.Record.
func (w *Workout) RecordID() uint64 { return w.ID }

// SetRecordID implements store.Record.
func (w *Workout) SetRecordID(id uint64) { w.ID = id }

// WorkoutExercise is an exercise snapshot inside a workout plus its sets.
// The UI keeps sets non-empty (floor of one); the store does not enforce it.
type WorkoutExercise struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Group MuscleGroup `json:"group"`
	Sets  []Set       `json:"sets"`
}

// Set is one logged set. Weight and reps start as unfilled placeholders
// and become numeric on first edit.
type Set struct {
	Weight NullNumber `json:"weight"`
	Reps   NullNumber `json:"reps"`
}

// NullNumber is a number that may be unfilled. Unfilled values marshal as
// an empty string, matching how blank set inputs are persisted; filled
// values marshal as plain numbers. Unmarshal accepts numbers, numeric
// strings, and the empty string.
type NullNumber struct {
	Float64 float64
	Valid   bool
}

// Num returns a filled NullNumber.
func Num(v float64) NullNumber {
	return NullNumber{Float64: v, Valid: true}
}

// MarshalJSON implements json.Marshaler.
func (n NullNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte(`""`), nil
	}
	return json.Marshal(n.Float64)
}

// MarshalYAML mirrors the JSON convention for the human-readable export.
func (n NullNumber) MarshalYAML() (any, error) {
	if !n.Valid {
		return "", nil
	}
	return n.Float64, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*n = NullNumber{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse number %q: %w", s, err)
		}
		*n = NullNumber{Float64: v, Valid: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = NullNumber{Float64: v, Valid: true}
	return nil
}

// Today returns the current date as a zero-padded "YYYY-MM-DD" string.
func Today() string {
	return time.Now().Format("2006-01-02")
}
