// ABOUTME: SQLite backend for the gym Repository interface.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/harperreed/gym/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository on an embedded SQLite database.
// Nested exercise snapshots live in JSON columns; the indexed fields
// (muscle group, date) get real columns so lookups hit SQL indexes.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite-backed store at the given path and
// runs the same bootstrap as the Badger backend: version stamp plus
// one-time catalog seed on a fresh database.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if err := s.bootstrap(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLiteStore) initSchema() error {
	// AUTOINCREMENT keeps ids strictly increasing and never reused, and
	// explicit-id inserts (import) advance the sequence past them.
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		grp TEXT NOT NULL,
		is_custom INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS programs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		exercises TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		program_name TEXT NOT NULL,
		program_id INTEGER,
		start_time INTEGER NOT NULL,
		end_time INTEGER,
		exercises TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_grp ON exercises(grp);
	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) bootstrap() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var stored string
	err = tx.QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES ('version', ?)`,
			strconv.Itoa(schemaVersion)); err != nil {
			return err
		}
		var n int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			for _, ex := range models.DefaultExercises {
				if _, err := tx.Exec(
					`INSERT INTO exercises (name, grp, is_custom) VALUES (?, ?, 0)`,
					ex.Name, string(ex.Group)); err != nil {
					return fmt.Errorf("seed exercise %q: %w", ex.Name, err)
				}
			}
		}
	case err != nil:
		return err
	}

	return tx.Commit()
}

// AddExercise creates a user-defined exercise (isCustom=true).
func (s *SQLiteStore) AddExercise(name string, group models.MuscleGroup) (*models.Exercise, error) {
	res, err := s.db.Exec(`INSERT INTO exercises (name, grp, is_custom) VALUES (?, ?, 1)`,
		name, string(group))
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return &models.Exercise{ID: uint64(id), Name: name, Group: group, IsCustom: true}, nil
}

// GetExercise retrieves an exercise by id; absent is (nil, nil).
func (s *SQLiteStore) GetExercise(id uint64) (*models.Exercise, error) {
	var ex models.Exercise
	var grp string
	err := s.db.QueryRow(`SELECT id, name, grp, is_custom FROM exercises WHERE id = ?`, id).
		Scan(&ex.ID, &ex.Name, &grp, &ex.IsCustom)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	ex.Group = models.MuscleGroup(grp)
	return &ex, nil
}

// ListExercises returns every exercise ordered by id.
func (s *SQLiteStore) ListExercises() ([]*models.Exercise, error) {
	rows, err := s.db.Query(`SELECT id, name, grp, is_custom FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		var ex models.Exercise
		var grp string
		if err := rows.Scan(&ex.ID, &ex.Name, &grp, &ex.IsCustom); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		ex.Group = models.MuscleGroup(grp)
		exercises = append(exercises, &ex)
	}
	return exercises, rows.Err()
}

// UpdateExercise upserts the exercise under its id.
func (s *SQLiteStore) UpdateExercise(ex *models.Exercise) error {
	_, err := s.db.Exec(`
		INSERT INTO exercises (id, name, grp, is_custom) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, grp=excluded.grp, is_custom=excluded.is_custom`,
		ex.ID, ex.Name, string(ex.Group), ex.IsCustom)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise; missing ids are a no-op.
func (s *SQLiteStore) DeleteExercise(id uint64) error {
	if _, err := s.db.Exec(`DELETE FROM exercises WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// ExercisesByGroup partitions exercises by the fixed group enumeration.
func (s *SQLiteStore) ExercisesByGroup() (map[models.MuscleGroup][]*models.Exercise, error) {
	all, err := s.ListExercises()
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

// AddProgram stores a program exactly as given.
func (s *SQLiteStore) AddProgram(p *models.Program) (uint64, error) {
	snapshot, err := json.Marshal(p.Exercises)
	if err != nil {
		return 0, fmt.Errorf("add program: %w", err)
	}
	res, err := s.db.Exec(`INSERT INTO programs (name, color, exercises) VALUES (?, ?, ?)`,
		p.Name, p.Color, string(snapshot))
	if err != nil {
		return 0, fmt.Errorf("add program: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add program: %w", err)
	}
	p.ID = uint64(id)
	return p.ID, nil
}

// GetProgram retrieves a program by id; absent is (nil, nil).
func (s *SQLiteStore) GetProgram(id uint64) (*models.Program, error) {
	var p models.Program
	var snapshot string
	err := s.db.QueryRow(`SELECT id, name, color, exercises FROM programs WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Color, &snapshot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if err := json.Unmarshal([]byte(snapshot), &p.Exercises); err != nil {
		return nil, fmt.Errorf("decode program %d: %w", id, err)
	}
	return &p, nil
}

// ListPrograms returns every program ordered by id.
func (s *SQLiteStore) ListPrograms() ([]*models.Program, error) {
	rows, err := s.db.Query(`SELECT id, name, color, exercises FROM programs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		var snapshot string
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &snapshot); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		if err := json.Unmarshal([]byte(snapshot), &p.Exercises); err != nil {
			return nil, fmt.Errorf("decode program %d: %w", p.ID, err)
		}
		programs = append(programs, &p)
	}
	return programs, rows.Err()
}

// UpdateProgram upserts the program under its id.
func (s *SQLiteStore) UpdateProgram(p *models.Program) error {
	snapshot, err := json.Marshal(p.Exercises)
	if err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO programs (id, name, color, exercises) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, color=excluded.color, exercises=excluded.exercises`,
		p.ID, p.Name, p.Color, string(snapshot))
	if err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	return nil
}

// DeleteProgram removes a program; missing ids are a no-op.
func (s *SQLiteStore) DeleteProgram(id uint64) error {
	if _, err := s.db.Exec(`DELETE FROM programs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return nil
}

// AddWorkout stores a workout.
func (s *SQLiteStore) AddWorkout(w *models.Workout) (uint64, error) {
	snapshot, err := json.Marshal(w.Exercises)
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}
	res, err := s.db.Exec(`
		INSERT INTO workouts (date, program_name, program_id, start_time, end_time, exercises)
		VALUES (?, ?, ?, ?, ?, ?)`,
		w.Date, w.ProgramName, nullableID(w.ProgramID), w.StartTime, nullableMillis(w.EndTime), string(snapshot))
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}
	w.ID = uint64(id)
	return w.ID, nil
}

// GetWorkout retrieves a workout by id; absent is (nil, nil).
func (s *SQLiteStore) GetWorkout(id uint64) (*models.Workout, error) {
	row := s.db.QueryRow(`
		SELECT id, date, program_name, program_id, start_time, end_time, exercises
		FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// ListWorkouts returns every workout ordered by id.
func (s *SQLiteStore) ListWorkouts() ([]*models.Workout, error) {
	rows, err := s.db.Query(`
		SELECT id, date, program_name, program_id, start_time, end_time, exercises
		FROM workouts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()
	return collectWorkouts(rows)
}

// UpdateWorkout upserts the workout under its id.
func (s *SQLiteStore) UpdateWorkout(w *models.Workout) error {
	snapshot, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO workouts (id, date, program_name, program_id, start_time, end_time, exercises)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date=excluded.date, program_name=excluded.program_name,
			program_id=excluded.program_id, start_time=excluded.start_time,
			end_time=excluded.end_time, exercises=excluded.exercises`,
		w.ID, w.Date, w.ProgramName, nullableID(w.ProgramID), w.StartTime,
		nullableMillis(w.EndTime), string(snapshot))
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	return nil
}

// DeleteWorkout removes a workout; missing ids are a no-op.
func (s *SQLiteStore) DeleteWorkout(id uint64) error {
	if _, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// WorkoutsByDate returns workouts logged on a date via the date index.
func (s *SQLiteStore) WorkoutsByDate(date string) ([]*models.Workout, error) {
	rows, err := s.db.Query(`
		SELECT id, date, program_name, program_id, start_time, end_time, exercises
		FROM workouts WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("workouts by date: %w", err)
	}
	defer rows.Close()

	workouts, err := collectWorkouts(rows)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []*models.Workout{}
	}
	return workouts, nil
}

// WorkoutDates returns distinct workout dates sorted ascending.
func (s *SQLiteStore) WorkoutDates() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT date FROM workouts`)
	if err != nil {
		return nil, fmt.Errorf("workout dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, rows.Err()
}

// ExportAll scans all three tables into a snapshot.
func (s *SQLiteStore) ExportAll() (*Snapshot, error) {
	exercises, err := s.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("export exercises: %w", err)
	}
	programs, err := s.ListPrograms()
	if err != nil {
		return nil, fmt.Errorf("export programs: %w", err)
	}
	workouts, err := s.ListWorkouts()
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

// ImportAll upserts every snapshot record under its own id in one
// transaction; additive-overwriting, same policy as the Badger backend.
func (s *SQLiteStore) ImportAll(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrMalformedSnapshot)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ex := range snap.Exercises {
		if _, err := tx.Exec(`
			INSERT INTO exercises (id, name, grp, is_custom) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name=excluded.name, grp=excluded.grp, is_custom=excluded.is_custom`,
			ex.ID, ex.Name, string(ex.Group), ex.IsCustom); err != nil {
			return fmt.Errorf("import exercise %d: %w", ex.ID, err)
		}
	}
	for _, p := range snap.Programs {
		snapshot, err := json.Marshal(p.Exercises)
		if err != nil {
			return fmt.Errorf("import program %d: %w", p.ID, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO programs (id, name, color, exercises) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name=excluded.name, color=excluded.color, exercises=excluded.exercises`,
			p.ID, p.Name, p.Color, string(snapshot)); err != nil {
			return fmt.Errorf("import program %d: %w", p.ID, err)
		}
	}
	for _, w := range snap.Workouts {
		snapshot, err := json.Marshal(w.Exercises)
		if err != nil {
			return fmt.Errorf("import workout %d: %w", w.ID, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO workouts (id, date, program_name, program_id, start_time, end_time, exercises)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				date=excluded.date, program_name=excluded.program_name,
				program_id=excluded.program_id, start_time=excluded.start_time,
				end_time=excluded.end_time, exercises=excluded.exercises`,
			w.ID, w.Date, w.ProgramName, nullableID(w.ProgramID), w.StartTime,
			nullableMillis(w.EndTime), string(snapshot)); err != nil {
			return fmt.Errorf("import workout %d: %w", w.ID, err)
		}
	}

	return tx.Commit()
}

// ClearAll deletes every row from all three tables in one transaction.
// AUTOINCREMENT sequences are retained, so ids keep increasing.
func (s *SQLiteStore) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("clear collections: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"exercises", "programs", "workouts"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var programID, endTime sql.NullInt64
	var snapshot string

	if err := row.Scan(&w.ID, &w.Date, &w.ProgramName, &programID,
		&w.StartTime, &endTime, &snapshot); err != nil {
		return nil, err
	}
	if programID.Valid {
		w.ProgramID = uint64(programID.Int64)
	}
	if endTime.Valid {
		w.EndTime = endTime.Int64
	}
	if err := json.Unmarshal([]byte(snapshot), &w.Exercises); err != nil {
		return nil, fmt.Errorf("decode workout %d: %w", w.ID, err)
	}
	return &w, nil
}

func collectWorkouts(rows *sql.Rows) ([]*models.Workout, error) {
	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func nullableID(id uint64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableMillis(ms int64) any {
	if ms == 0 {
		return nil
	}
	return ms
}
