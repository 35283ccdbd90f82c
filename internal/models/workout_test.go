// ABOUTME: Tests for workout models and the NullNumber codec.
// ABOUTME: Covers placeholder round-trips and program pre-fill.
package models

import (
	"encoding/json"
	"testing"
)

func TestNullNumberMarshal(t *testing.T) {
	tests := []struct {
		name string
		n    NullNumber
		want string
	}{
		{"unfilled", NullNumber{}, `""`},
		{"zero", Num(0), `0`},
		{"weight", Num(62.5), `62.5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.n)
			if err != nil {
				t.Fatalf("Marshal error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNullNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    NullNumber
		wantErr bool
	}{
		{"empty string", `""`, NullNumber{}, false},
		{"null", `null`, NullNumber{}, false},
		{"number", `62.5`, Num(62.5), false},
		{"zero", `0`, Num(0), false},
		{"numeric string", `"15"`, Num(15), false},
		{"garbage string", `"abc"`, NullNumber{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n NullNumber
			err := json.Unmarshal([]byte(tt.data), &n)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.data, err)
			}
			if n != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.data, n, tt.want)
			}
		})
	}
}

func TestSetPlaceholderJSONRoundTrip(t *testing.T) {
	original := Set{Weight: Num(60), Reps: NullNumber{}}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != `{"weight":60,"reps":""}` {
		t.Errorf("Marshal = %s", data)
	}

	var back Set
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if back != original {
		t.Errorf("round-trip = %+v, want %+v", back, original)
	}
}

func TestNewWorkout(t *testing.T) {
	w := NewWorkout("Free Workout")

	if w.Date != Today() {
		t.Errorf("Date = %q, want today", w.Date)
	}
	if w.StartTime == 0 {
		t.Error("StartTime not set")
	}
	if w.EndTime != 0 {
		t.Error("new workout already finished")
	}
	if w.Exercises == nil {
		t.Error("Exercises should be an empty slice, not nil")
	}
}

func TestFromProgram(t *testing.T) {
	p := NewProgram("Push Day", "#007aff", []ExerciseRef{
		{ID: 5, Name: "Barbell Bench Press", Group: GroupChest},
		{ID: 28, Name: "Seated Dumbbell Press", Group: GroupShoulders},
	})
	p.ID = 3

	w := FromProgram(p)

	if w.ProgramName != "Push Day" || w.ProgramID != 3 {
		t.Errorf("workout = %+v", w)
	}
	if len(w.Exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(w.Exercises))
	}
	for i, ex := range w.Exercises {
		if ex.Name != p.Exercises[i].Name || ex.Group != p.Exercises[i].Group {
			t.Errorf("exercise %d = %+v, want copy of %+v", i, ex, p.Exercises[i])
		}
		if len(ex.Sets) != 1 {
			t.Errorf("exercise %d has %d sets, want one empty set", i, len(ex.Sets))
		}
		if ex.Sets[0].Weight.Valid || ex.Sets[0].Reps.Valid {
			t.Errorf("exercise %d pre-filled set = %+v, want placeholders", i, ex.Sets[0])
		}
	}
}

func TestFinish(t *testing.T) {
	w := NewWorkout("Free Workout")
	w.Finish()
	if w.EndTime < w.StartTime {
		t.Errorf("EndTime %d before StartTime %d", w.EndTime, w.StartTime)
	}
}

func TestWorkoutJSONFieldNames(t *testing.T) {
	w := &Workout{
		ID:          1,
		Date:        "2026-09-01",
		ProgramName: "Push Day",
		ProgramID:   3,
		StartTime:   1756700000000,
	}

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	for _, key := range []string{"id", "date", "programName", "programId", "startTime", "exercises"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("marshaled workout missing %q key", key)
		}
	}
	if _, ok := raw["endTime"]; ok {
		t.Error("unfinished workout should omit endTime")
	}
}
