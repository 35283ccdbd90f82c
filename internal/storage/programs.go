// ABOUTME: Program repository: pass-through CRUD.
// ABOUTME: Exercise snapshots are denormalized by the caller, not here.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

// AddProgram stores a program exactly as given. Building the exercise
// snapshot list (copying id/name/group from live exercises) is the
// caller's responsibility.
func (d *DB) AddProgram(p *models.Program) (uint64, error) {
	id, err := d.store.Add(ColPrograms, p)
	if err != nil {
		return 0, fmt.Errorf("add program: %w", err)
	}
	return id, nil
}

// GetProgram retrieves a program by id; absent is (nil, nil).
func (d *DB) GetProgram(id uint64) (*models.Program, error) {
	var p models.Program
	found, err := d.store.Get(ColPrograms, id, &p)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

// ListPrograms returns every program in insertion order.
func (d *DB) ListPrograms() ([]*models.Program, error) {
	var programs []*models.Program
	err := d.store.ForEach(ColPrograms, func(id uint64, data []byte) error {
		var p models.Program
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode program %d: %w", id, err)
		}
		programs = append(programs, &p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

// UpdateProgram writes the program under its id (upsert; see Repository).
func (d *DB) UpdateProgram(p *models.Program) error {
	if err := d.store.Put(ColPrograms, p); err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	return nil
}

// DeleteProgram removes a program. Missing ids are a no-op.
func (d *DB) DeleteProgram(id uint64) error {
	if err := d.store.Delete(ColPrograms, id); err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return nil
}
