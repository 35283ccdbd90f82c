// ABOUTME: Tests for snapshot export/import, validation, and clearing.
// ABOUTME: Exercises the JSON round-trip and the additive import policy.
package storage

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/gym/internal/models"
)

func TestExportAllHasAllCollections(t *testing.T) {
	db := setupTestDB(t)

	snap, err := db.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if snap.Exercises == nil || snap.Programs == nil || snap.Workouts == nil {
		t.Fatal("ExportAll() left a collection nil; empty collections must be empty arrays")
	}
	if len(snap.Exercises) != len(models.DefaultExercises) {
		t.Errorf("exported %d exercises, want the seeded %d", len(snap.Exercises), len(models.DefaultExercises))
	}
}

func TestExportJSONShape(t *testing.T) {
	db := setupTestDB(t)

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("export is not a JSON object: %v", err)
	}
	if len(top) != 3 {
		t.Errorf("export has %d top-level keys, want exactly 3", len(top))
	}
	for _, key := range []string{"exercises", "programs", "workouts"} {
		raw, ok := top[key]
		if !ok {
			t.Errorf("export missing %q key", key)
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			t.Errorf("export %q is not an array: %v", key, err)
		}
	}
}

func TestImportRoundTrip(t *testing.T) {
	src := setupTestDB(t)

	ex, err := src.AddExercise("Box Jump", models.GroupLegs)
	if err != nil {
		t.Fatalf("AddExercise() error = %v", err)
	}
	if _, err := src.AddProgram(models.NewProgram("Leg Day", "#30d158", []models.ExerciseRef{ex.Ref()})); err != nil {
		t.Fatalf("AddProgram() error = %v", err)
	}
	w := models.NewWorkout("Leg Day")
	w.Exercises = []models.WorkoutExercise{{
		ID: ex.ID, Name: ex.Name, Group: ex.Group,
		Sets: []models.Set{{Weight: models.Num(0), Reps: models.Num(12)}, {}},
	}}
	if _, err := src.AddWorkout(w); err != nil {
		t.Fatalf("AddWorkout() error = %v", err)
	}

	data, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	dst := setupTestDB(t)
	if err := dst.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if err := ImportJSON(dst, data); err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}

	again, err := ExportJSON(dst)
	if err != nil {
		t.Fatalf("re-export error = %v", err)
	}

	var a, b Snapshot
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("decode original export: %v", err)
	}
	if err := json.Unmarshal(again, &b); err != nil {
		t.Fatalf("decode re-export: %v", err)
	}
	if len(a.Exercises) != len(b.Exercises) || len(a.Programs) != len(b.Programs) || len(a.Workouts) != len(b.Workouts) {
		t.Fatalf("round-trip changed counts: %d/%d/%d vs %d/%d/%d",
			len(a.Exercises), len(a.Programs), len(a.Workouts),
			len(b.Exercises), len(b.Programs), len(b.Workouts))
	}

	got, err := dst.GetExercise(ex.ID)
	if err != nil || got == nil {
		t.Fatalf("GetExercise(%d) after import = %v, %v", ex.ID, got, err)
	}
	if got.Name != "Box Jump" || !got.IsCustom {
		t.Errorf("imported exercise = %+v", got)
	}
}

func TestImportOverwritesAndKeepsRest(t *testing.T) {
	db := setupTestDB(t)

	before, err := db.GetExercise(2)
	if err != nil || before == nil {
		t.Fatalf("GetExercise(2) = %v, %v", before, err)
	}

	snap := &Snapshot{
		Exercises: []*models.Exercise{{ID: 1, Name: "Imported Name", Group: models.GroupChest, IsCustom: true}},
		Programs:  []*models.Program{},
		Workouts:  []*models.Workout{},
	}
	if err := db.ImportAll(snap); err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}

	overwritten, err := db.GetExercise(1)
	if err != nil || overwritten == nil {
		t.Fatalf("GetExercise(1) = %v, %v", overwritten, err)
	}
	if overwritten.Name != "Imported Name" {
		t.Errorf("id 1 name = %q, want imported value", overwritten.Name)
	}

	untouched, err := db.GetExercise(2)
	if err != nil || untouched == nil {
		t.Fatalf("GetExercise(2) = %v, %v", untouched, err)
	}
	if untouched.Name != before.Name {
		t.Errorf("id 2 changed from %q to %q; import must never delete or alter other records",
			before.Name, untouched.Name)
	}
}

func TestImportAdvancesIDCounter(t *testing.T) {
	db := setupTestDB(t)
	if err := db.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	snap := &Snapshot{
		Exercises: []*models.Exercise{{ID: 500, Name: "High ID", Group: models.GroupAbs, IsCustom: true}},
		Programs:  []*models.Program{},
		Workouts:  []*models.Workout{},
	}
	if err := db.ImportAll(snap); err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}

	ex, err := db.AddExercise("After Import", models.GroupAbs)
	if err != nil {
		t.Fatalf("AddExercise() error = %v", err)
	}
	if ex.ID <= 500 {
		t.Errorf("new id %d collides with imported id space; counter must advance past 500", ex.ID)
	}
}

func TestImportRejectsMalformedSnapshot(t *testing.T) {
	db := setupTestDB(t)

	baseline, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises() error = %v", err)
	}

	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"top-level array", `[]`},
		{"missing workouts", `{"exercises":[],"programs":[]}`},
		{"collection not array", `{"exercises":{},"programs":[],"workouts":[]}`},
		{"null collection", `{"exercises":null,"programs":[],"workouts":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ImportJSON(db, []byte(tc.data))
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Fatalf("ImportJSON(%s) error = %v, want ErrMalformedSnapshot", tc.name, err)
			}
		})
	}

	after, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises() error = %v", err)
	}
	if len(after) != len(baseline) {
		t.Errorf("rejected imports changed the store: %d -> %d exercises", len(baseline), len(after))
	}
}

func TestClearAllEmptiesEveryCollection(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.AddProgram(models.NewProgram("P", "#007aff", nil)); err != nil {
		t.Fatalf("AddProgram() error = %v", err)
	}
	if _, err := db.AddWorkout(models.NewWorkout("P")); err != nil {
		t.Fatalf("AddWorkout() error = %v", err)
	}

	if err := db.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	snap, err := db.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if len(snap.Exercises)+len(snap.Programs)+len(snap.Workouts) != 0 {
		t.Errorf("after ClearAll: %d/%d/%d records remain",
			len(snap.Exercises), len(snap.Programs), len(snap.Workouts))
	}
}

func TestBackupFilename(t *testing.T) {
	ts := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	got := BackupFilename(ts)
	if got != "gym-backup-2026-09-01.json" {
		t.Errorf("BackupFilename() = %q", got)
	}
}

func TestExportYAMLHeader(t *testing.T) {
	db := setupTestDB(t)

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML() error = %v", err)
	}
	text := string(data)
	for _, want := range []string{"export_id:", "exported_at:", "exercises:"} {
		if !strings.Contains(text, want) {
			t.Errorf("YAML export missing %q\n%s", want, text)
		}
	}
}
