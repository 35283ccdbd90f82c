// ABOUTME: Workout repository: CRUD plus date lookups for the calendar.
// ABOUTME: Date equality goes through the secondary index; dates are deduped scans.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/gym/internal/models"
)

// AddWorkout stores a workout. Sessions call this the moment they start so
// an in-progress workout survives a crash; sets arrive later via
// UpdateWorkout.
func (d *DB) AddWorkout(w *models.Workout) (uint64, error) {
	id, err := d.store.Add(ColWorkouts, w)
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}
	return id, nil
}

// GetWorkout retrieves a workout by id; absent is (nil, nil).
func (d *DB) GetWorkout(id uint64) (*models.Workout, error) {
	var w models.Workout
	found, err := d.store.Get(ColWorkouts, id, &w)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &w, nil
}

// ListWorkouts returns every workout in insertion order.
func (d *DB) ListWorkouts() ([]*models.Workout, error) {
	var workouts []*models.Workout
	err := d.store.ForEach(ColWorkouts, func(id uint64, data []byte) error {
		var w models.Workout
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("decode workout %d: %w", id, err)
		}
		workouts = append(workouts, &w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// UpdateWorkout writes the workout under its id (upsert; see Repository).
// This is the autosave target: the debounced saver calls it with the
// workout's latest in-memory state.
func (d *DB) UpdateWorkout(w *models.Workout) error {
	if err := d.store.Put(ColWorkouts, w); err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	return nil
}

// DeleteWorkout removes a workout. Missing ids are a no-op.
func (d *DB) DeleteWorkout(id uint64) error {
	if err := d.store.Delete(ColWorkouts, id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// WorkoutsByDate returns the workouts logged on a "YYYY-MM-DD" date via
// the date index. Unknown dates yield an empty slice.
func (d *DB) WorkoutsByDate(date string) ([]*models.Workout, error) {
	workouts := []*models.Workout{}
	err := d.store.ByIndex(ColWorkouts, "date", date, func(id uint64, data []byte) error {
		var w models.Workout
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("decode workout %d: %w", id, err)
		}
		workouts = append(workouts, &w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("workouts by date: %w", err)
	}
	return workouts, nil
}

// WorkoutDates returns the distinct dates with at least one workout,
// sorted ascending. Used to mark calendar days with activity. Full scan
// plus dedup; the date format sorts lexicographically.
func (d *DB) WorkoutDates() ([]string, error) {
	seen := make(map[string]bool)
	err := d.store.ForEach(ColWorkouts, func(id uint64, data []byte) error {
		var w models.Workout
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("decode workout %d: %w", id, err)
		}
		seen[w.Date] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("workout dates: %w", err)
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, nil
}
