// ABOUTME: Data migration between storage backends.
// ABOUTME: Copies all records from one Repository to another, preserving ids.
package storage

import "fmt"

// MigrateSummary reports how many records a migration copied.
type MigrateSummary struct {
	Exercises int
	Programs  int
	Workouts  int
}

// Total returns the number of records copied across all collections.
func (m *MigrateSummary) Total() int {
	return m.Exercises + m.Programs + m.Workouts
}

// MigrateData copies every record from src to dst through the snapshot
// path, so ids survive and a second run is a harmless overwrite. The
// destination is not cleared first; call ClearAll on dst beforehand when
// a clean copy is wanted.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	snap, err := src.ExportAll()
	if err != nil {
		return nil, fmt.Errorf("export source data: %w", err)
	}

	if err := dst.ImportAll(snap); err != nil {
		return nil, fmt.Errorf("import into destination: %w", err)
	}

	return &MigrateSummary{
		Exercises: len(snap.Exercises),
		Programs:  len(snap.Programs),
		Workouts:  len(snap.Workouts),
	}, nil
}
