// ABOUTME: Export and import of the full store for backup and restore.
// ABOUTME: JSON is the stable wire format; YAML is a human-readable extra.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/store"
	"gopkg.in/yaml.v3"
)

// ErrMalformedSnapshot is returned when an import document does not have
// the expected shape. Validation happens before any write, so a rejected
// import leaves the store untouched.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the full-store export document: exactly three top-level
// keys, each an array of records including their store-assigned ids.
// This shape is the backup/restore wire contract and must stay stable
// across versions.
type Snapshot struct {
	Exercises []*models.Exercise `json:"exercises"`
	Programs  []*models.Program  `json:"programs"`
	Workouts  []*models.Workout  `json:"workouts"`
}

// ExportAll scans all three collections into a snapshot. Each collection
// is read in its own transaction; this is a single-writer, user-initiated
// operation, so no cross-collection consistency guarantee is needed.
func (d *DB) ExportAll() (*Snapshot, error) {
	exercises, err := d.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("export exercises: %w", err)
	}
	programs, err := d.ListPrograms()
	if err != nil {
		return nil, fmt.Errorf("export programs: %w", err)
	}
	workouts, err := d.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("export workouts: %w", err)
	}

	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	if programs == nil {
		programs = []*models.Program{}
	}
	if workouts == nil {
		workouts = []*models.Workout{}
	}

	return &Snapshot{Exercises: exercises, Programs: programs, Workouts: workouts}, nil
}

// ImportAll restores a snapshot. Every record is upserted under the
// snapshot's own id in one transaction: records whose id already exists
// are overwritten in place, new ids are inserted, and records absent from
// the snapshot are left alone. Re-importing the same snapshot is
// idempotent. Callers wanting a destructive replace call ClearAll first.
func (d *DB) ImportAll(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrMalformedSnapshot)
	}

	err := d.store.Batch(func(tx *store.Tx) error {
		for _, ex := range s.Exercises {
			if err := tx.Put(ColExercises, ex); err != nil {
				return err
			}
		}
		for _, p := range s.Programs {
			if err := tx.Put(ColPrograms, p); err != nil {
				return err
			}
		}
		for _, w := range s.Workouts {
			if err := tx.Put(ColWorkouts, w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	return nil
}

// ClearAll deletes every record from all three collections in one
// transaction. Id counters are not reset; later inserts keep increasing.
func (d *DB) ClearAll() error {
	err := d.store.Batch(func(tx *store.Tx) error {
		for _, col := range []string{ColExercises, ColPrograms, ColWorkouts} {
			var ids []uint64
			if err := tx.ForEach(col, func(id uint64, _ []byte) error {
				ids = append(ids, id)
				return nil
			}); err != nil {
				return err
			}
			for _, id := range ids {
				if err := tx.Delete(col, id); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear collections: %w", err)
	}
	return nil
}

// ExportJSON exports a repository's snapshot as indented JSON.
func ExportJSON(r Repository) ([]byte, error) {
	snap, err := r.ExportAll()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ImportJSON validates and imports a JSON snapshot. The document must
// carry all three top-level keys with array values; anything else is
// rejected with ErrMalformedSnapshot before a single write happens.
func ImportJSON(r Repository, data []byte) error {
	snap, err := ParseSnapshot(data)
	if err != nil {
		return err
	}
	return r.ImportAll(snap)
}

// ParseSnapshot validates the shape of a snapshot document and decodes it.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	for _, key := range []string{"exercises", "programs", "workouts"} {
		val, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedSnapshot, key)
		}
		trimmed := bytes.TrimSpace(val)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedSnapshot, key)
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(val, &arr); err != nil {
			return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedSnapshot, key)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return &snap, nil
}

// BackupFilename returns the conventional backup filename for a date,
// e.g. "gym-backup-2025-03-14.json".
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("gym-backup-%s.json", t.Format("2006-01-02"))
}

// yamlExport wraps the snapshot with provenance for the human-readable
// export. This is not the restore format; ImportJSON will reject it.
type yamlExport struct {
	ExportID   string             `yaml:"export_id"`
	ExportedAt string             `yaml:"exported_at"`
	Tool       string             `yaml:"tool"`
	Exercises  []*models.Exercise `yaml:"exercises"`
	Programs   []*models.Program  `yaml:"programs"`
	Workouts   []*models.Workout  `yaml:"workouts"`
}

// ExportYAML exports all data as YAML with an identifying header.
func ExportYAML(r Repository) ([]byte, error) {
	snap, err := r.ExportAll()
	if err != nil {
		return nil, err
	}

	return yaml.Marshal(yamlExport{
		ExportID:   uuid.NewString(),
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "gym",
		Exercises:  snap.Exercises,
		Programs:   snap.Programs,
		Workouts:   snap.Workouts,
	})
}
