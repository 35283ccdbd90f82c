// ABOUTME: Tests for the SQLite backend and backend-to-backend migration.
// ABOUTME: The SQLite store must match the Badger backend's observable behavior.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/gym/internal/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "gym.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSeedsCatalog(t *testing.T) {
	s := setupSQLiteStore(t)

	exercises, err := s.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises() error = %v", err)
	}
	if len(exercises) != len(models.DefaultExercises) {
		t.Fatalf("seeded %d exercises, want %d", len(exercises), len(models.DefaultExercises))
	}
	for _, ex := range exercises {
		if ex.IsCustom {
			t.Errorf("seeded exercise %q has IsCustom=true", ex.Name)
		}
	}
}

func TestSQLiteSeedsOnlyOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gym.sqlite")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := s.DeleteExercise(1); err != nil {
		t.Fatalf("DeleteExercise() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	ex, err := s.GetExercise(1)
	if err != nil {
		t.Fatalf("GetExercise() error = %v", err)
	}
	if ex != nil {
		t.Error("deleted exercise reappeared; seed must not re-run on an initialized store")
	}
}

func TestSQLiteWorkoutRoundTrip(t *testing.T) {
	s := setupSQLiteStore(t)

	w := models.NewWorkout("Free Workout")
	w.Exercises = []models.WorkoutExercise{{
		ID: 1, Name: "Barbell Bench Press", Group: models.GroupChest,
		Sets: []models.Set{{Weight: models.Num(80), Reps: models.Num(5)}, {}},
	}}
	id, err := s.AddWorkout(w)
	if err != nil {
		t.Fatalf("AddWorkout() error = %v", err)
	}

	got, err := s.GetWorkout(id)
	if err != nil || got == nil {
		t.Fatalf("GetWorkout() = %v, %v", got, err)
	}
	if got.EndTime != 0 {
		t.Errorf("in-progress workout has EndTime %d, want 0", got.EndTime)
	}
	sets := got.Exercises[0].Sets
	if !sets[0].Weight.Valid || sets[0].Weight.Float64 != 80 {
		t.Errorf("filled weight = %+v", sets[0].Weight)
	}
	if sets[1].Reps.Valid {
		t.Errorf("placeholder set came back filled: %+v", sets[1])
	}

	got.Finish()
	if err := s.UpdateWorkout(got); err != nil {
		t.Fatalf("UpdateWorkout() error = %v", err)
	}
	finished, err := s.GetWorkout(id)
	if err != nil || finished == nil {
		t.Fatalf("GetWorkout() = %v, %v", finished, err)
	}
	if finished.EndTime == 0 {
		t.Error("EndTime not persisted")
	}
}

func TestSQLiteWorkoutsByDate(t *testing.T) {
	s := setupSQLiteStore(t)

	for _, d := range []string{"2026-08-31", "2026-09-01", "2026-08-31"} {
		w := models.NewWorkout("Free Workout")
		w.Date = d
		if _, err := s.AddWorkout(w); err != nil {
			t.Fatalf("AddWorkout() error = %v", err)
		}
	}

	byDate, err := s.WorkoutsByDate("2026-08-31")
	if err != nil {
		t.Fatalf("WorkoutsByDate() error = %v", err)
	}
	if len(byDate) != 2 {
		t.Errorf("got %d workouts, want 2", len(byDate))
	}

	dates, err := s.WorkoutDates()
	if err != nil {
		t.Fatalf("WorkoutDates() error = %v", err)
	}
	if len(dates) != 2 || dates[0] != "2026-08-31" || dates[1] != "2026-09-01" {
		t.Errorf("WorkoutDates() = %v", dates)
	}
}

func TestSQLiteImportAdvancesIDCounter(t *testing.T) {
	s := setupSQLiteStore(t)
	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	snap := &Snapshot{
		Exercises: []*models.Exercise{{ID: 500, Name: "High ID", Group: models.GroupAbs, IsCustom: true}},
		Programs:  []*models.Program{},
		Workouts:  []*models.Workout{},
	}
	if err := s.ImportAll(snap); err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}

	ex, err := s.AddExercise("After Import", models.GroupAbs)
	if err != nil {
		t.Fatalf("AddExercise() error = %v", err)
	}
	if ex.ID <= 500 {
		t.Errorf("new id %d collides with imported id space", ex.ID)
	}
}

func TestMigrateBadgerToSQLite(t *testing.T) {
	src := setupTestDB(t)
	dst := setupSQLiteStore(t)
	if err := dst.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	ex, err := src.AddExercise("Sled Push", models.GroupLegs)
	if err != nil {
		t.Fatalf("AddExercise() error = %v", err)
	}
	if _, err := src.AddProgram(models.NewProgram("Legs", "#bf5af2", []models.ExerciseRef{ex.Ref()})); err != nil {
		t.Fatalf("AddProgram() error = %v", err)
	}
	w := models.NewWorkout("Legs")
	if _, err := src.AddWorkout(w); err != nil {
		t.Fatalf("AddWorkout() error = %v", err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData() error = %v", err)
	}
	if summary.Exercises != len(models.DefaultExercises)+1 || summary.Programs != 1 || summary.Workouts != 1 {
		t.Errorf("summary = %+v", summary)
	}

	moved, err := dst.GetExercise(ex.ID)
	if err != nil || moved == nil {
		t.Fatalf("GetExercise(%d) = %v, %v", ex.ID, moved, err)
	}
	if moved.Name != "Sled Push" || !moved.IsCustom {
		t.Errorf("migrated exercise = %+v", moved)
	}

	// Running it again is a harmless overwrite.
	again, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("second MigrateData() error = %v", err)
	}
	if again.Total() != summary.Total() {
		t.Errorf("second run copied %d records, first copied %d", again.Total(), summary.Total())
	}

	all, err := dst.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises() error = %v", err)
	}
	if len(all) != len(models.DefaultExercises)+1 {
		t.Errorf("destination has %d exercises after re-run, want %d", len(all), len(models.DefaultExercises)+1)
	}
}
