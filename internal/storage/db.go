// ABOUTME: Store lifecycle for the gym database: open, bootstrap, seed.
// ABOUTME: Declares collections, stamps schema version, seeds the catalog once.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/store"
)

const (
	// Collection names. These are part of the on-disk schema.
	ColExercises = "exercises"
	ColPrograms  = "programs"
	ColWorkouts  = "workouts"

	schemaVersion = 1
)

// collections declares the schema: exercises indexed by muscle group,
// workouts indexed by calendar date, programs unindexed.
func collections() []store.Collection {
	return []store.Collection{
		{Name: ColExercises, Indexes: []string{"group"}},
		{Name: ColPrograms},
		{Name: ColWorkouts, Indexes: []string{"date"}},
	}
}

// DB wraps the record store with typed repositories for exercises,
// programs, and workouts.
type DB struct {
	store *store.Store
}

// Open opens or creates the gym database at path and runs the bootstrap
// path: on a freshly created store it stamps the schema version and seeds
// the default exercise catalog in a single transaction. Subsequent opens
// skip the seed check entirely.
func Open(path string) (*DB, error) {
	st, err := store.Open(path, collections())
	if err != nil {
		return nil, fmt.Errorf("open gym store: %w", err)
	}

	d := &DB{store: st}
	if err := d.bootstrap(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("bootstrap gym store: %w", err)
	}
	return d, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gym")
}

// Close closes the underlying store.
func (d *DB) Close() error {
	return d.store.Close()
}

// bootstrap runs the one-time creation path. The version key doubles as
// the "store already initialized" marker: when present, no seed check is
// performed, so a user who deletes every exercise is not re-seeded.
func (d *DB) bootstrap() error {
	return d.store.Batch(func(tx *store.Tx) error {
		raw, found, err := tx.Meta("version")
		if err != nil {
			return err
		}

		if !found {
			// Fresh store: stamp the version and seed the catalog.
			// The stamp and the seed commit together.
			if err := tx.SetMeta("version", []byte(strconv.Itoa(schemaVersion))); err != nil {
				return err
			}
			n, err := tx.Count(ColExercises)
			if err != nil {
				return err
			}
			if n == 0 {
				return seedExercises(tx)
			}
			return nil
		}

		stored, err := strconv.Atoi(string(raw))
		if err != nil {
			return fmt.Errorf("parse schema version %q: %w", raw, err)
		}
		if stored < schemaVersion {
			if err := migrateSchema(tx, stored); err != nil {
				return err
			}
			return tx.SetMeta("version", []byte(strconv.Itoa(schemaVersion)))
		}
		return nil
	})
}

// seedExercises inserts the fixed default catalog, isCustom=false.
// Runs inside the creation transaction: all-or-nothing.
func seedExercises(tx *store.Tx) error {
	for i := range models.DefaultExercises {
		ex := models.DefaultExercises[i] // copy; seeding must not mutate the catalog
		ex.IsCustom = false
		if _, err := tx.Add(ColExercises, &ex); err != nil {
			return fmt.Errorf("seed exercise %q: %w", ex.Name, err)
		}
	}
	return nil
}

// migrateSchema is the single version bump hook. There is exactly one
// schema version so far; the hook does not reconcile the default catalog
// on existing installations (known limitation).
func migrateSchema(tx *store.Tx, from int) error {
	return nil
}
