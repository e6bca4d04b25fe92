// Package store keeps the run index: one record per completed reactor run,
// in a SQLite database under the data directory.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/md3387/NonIdealReactor/internal/config"
)

// ErrNotFound indicates an unknown run id.
var ErrNotFound = errors.New("store: run not found")

// timeFormat is fixed-width so lexicographic ordering in SQL matches
// chronological ordering (RFC3339Nano trims trailing zeros and does not).
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded reactor run.
type Run struct {
	ID          string
	CreatedAt   time.Time
	Mechanism   string
	Fuel        string
	Composition string
	Temperature float64 // [K]
	Pressure    float64 // [atm]
	Duration    float64 // [s]
	Step        float64 // [s]
	Steps       int
	Output      string // report path
}

// Store handles run-index database operations.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the index database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		mechanism TEXT NOT NULL,
		fuel TEXT NOT NULL,
		composition TEXT NOT NULL,
		temperature REAL NOT NULL,
		pressure REAL NOT NULL,
		duration REAL NOT NULL,
		dt REAL NOT NULL,
		steps INTEGER NOT NULL,
		output TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a new run built from the completed configuration.
func (s *Store) Record(ctx context.Context, cfg *config.Config, steps int, output string) (Run, error) {
	run := Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Mechanism:   cfg.Mechanism,
		Fuel:        cfg.Fuel,
		Composition: cfg.Composition,
		Temperature: cfg.Temperature,
		Pressure:    cfg.Pressure,
		Duration:    cfg.Duration,
		Step:        cfg.Step,
		Steps:       steps,
		Output:      output,
	}
	if err := s.Save(ctx, run); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Save inserts a run record.
func (s *Store) Save(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, mechanism, fuel, composition,
			temperature, pressure, duration, dt, steps, output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeFormat), run.Mechanism,
		run.Fuel, run.Composition, run.Temperature, run.Pressure,
		run.Duration, run.Step, run.Steps, run.Output,
	)
	if err != nil {
		return fmt.Errorf("store: save run %s: %w", run.ID, err)
	}
	return nil
}

// List returns all runs, newest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, mechanism, fuel, composition,
			temperature, pressure, duration, dt, steps, output
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, mechanism, fuel, composition,
			temperature, pressure, duration, dt, steps, output
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var createdAt string
	err := s.Scan(&run.ID, &createdAt, &run.Mechanism, &run.Fuel,
		&run.Composition, &run.Temperature, &run.Pressure,
		&run.Duration, &run.Step, &run.Steps, &run.Output)
	if err != nil {
		return Run{}, err
	}

	run.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("store: bad timestamp for run %s: %w", run.ID, err)
	}
	return run, nil
}
