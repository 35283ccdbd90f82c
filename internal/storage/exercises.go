// ABOUTME: Exercise repository: CRUD plus the grouped view.
// ABOUTME: Everything added through this façade is marked user-created.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

// AddExercise creates a user-defined exercise. The seed path bypasses this
// and writes isCustom=false directly; anything entered here is custom.
func (d *DB) AddExercise(name string, group models.MuscleGroup) (*models.Exercise, error) {
	ex := models.NewExercise(name, group)
	ex.IsCustom = true
	if _, err := d.store.Add(ColExercises, ex); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return ex, nil
}

// GetExercise retrieves an exercise by id; absent is (nil, nil).
func (d *DB) GetExercise(id uint64) (*models.Exercise, error) {
	var ex models.Exercise
	found, err := d.store.Get(ColExercises, id, &ex)
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &ex, nil
}

// ListExercises returns every exercise in insertion order.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	var exercises []*models.Exercise
	err := d.store.ForEach(ColExercises, func(id uint64, data []byte) error {
		var ex models.Exercise
		if err := json.Unmarshal(data, &ex); err != nil {
			return fmt.Errorf("decode exercise %d: %w", id, err)
		}
		exercises = append(exercises, &ex)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// UpdateExercise writes the exercise under its id, inserting when absent
// (upsert; see Repository).
func (d *DB) UpdateExercise(ex *models.Exercise) error {
	if err := d.store.Put(ColExercises, ex); err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise. Missing ids are a no-op. Programs
// and workouts referencing it keep their snapshots untouched.
func (d *DB) DeleteExercise(id uint64) error {
	if err := d.store.Delete(ColExercises, id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// ExercisesByGroup partitions the full catalog by the fixed muscle group
// enumeration. Every group is present, empty groups map to empty slices,
// and exercises carrying an unknown group are dropped rather than surfaced
// in an "other" bucket.
func (d *DB) ExercisesByGroup() (map[models.MuscleGroup][]*models.Exercise, error) {
	all, err := d.ListExercises()
	if err != nil {
		return nil, err
	}

	grouped := make(map[models.MuscleGroup][]*models.Exercise, len(models.AllMuscleGroups))
	for _, g := range models.AllMuscleGroups {
		grouped[g] = []*models.Exercise{}
	}
	for _, ex := range all {
		if _, ok := grouped[ex.Group]; ok {
			grouped[ex.Group] = append(grouped[ex.Group], ex)
		}
	}
	return grouped, nil
}
