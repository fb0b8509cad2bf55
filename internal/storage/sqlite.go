// Package storage records sampled block layouts in SQLite so the stats
// command can aggregate them. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockpath/internal/layout"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store manages the SQLite database connection for layout samples.
type Store struct {
	db *sql.DB
}

// Run is one recorded layout.
type Run struct {
	ID         int64
	BatchID    string
	Level      int
	Steps      int
	Blocks     int
	Doubles    int
	LongestRun int
	HomeStep   int
	CreatedAt  time.Time
}

// LevelStats aggregates the runs of one level within a batch.
type LevelStats struct {
	BatchID    string
	Level      int
	Runs       int
	MinBlocks  int
	MaxBlocks  int
	AvgBlocks  float64
	DoubleRate float64 // doubles per content step
	LongestRun int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// An empty path or MemoryPath opens an in-memory database.
func Open(dbPath string) (*Store, error) {
	memory := dbPath == "" || dbPath == MemoryPath
	if memory {
		dbPath = MemoryPath
	} else {
		// Expand ~ to home directory
		if dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if memory {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			blocks INTEGER NOT NULL,
			doubles INTEGER NOT NULL,
			longest_run INTEGER NOT NULL,
			home_step INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_batch_level ON runs(batch_id, level);

		CREATE TABLE IF NOT EXISTS placements (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			pool_index INTEGER NOT NULL,
			name TEXT NOT NULL,
			step INTEGER NOT NULL,
			shift INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (run_id, pool_index)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a layout snapshot and its placements in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(batchID string, level int, snap layout.Snapshot) (int64, error) {
	homeStep := -1
	if snap.Home != nil {
		homeStep = snap.Home.Step
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (batch_id, level, steps, blocks, doubles, longest_run, home_step)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		batchID, level, snap.Steps(), snap.BlockCount(), snap.Doubles(), snap.LongestDoubleRun(), homeStep,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO placements (run_id, pool_index, name, step, shift, x, y)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare placement insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range snap.Blocks {
		if _, err := stmt.Exec(id, p.Index, p.Name, p.Step, int(p.Shift), p.X, p.Y); err != nil {
			return 0, fmt.Errorf("storage: cannot save placement %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// Runs returns the runs of a batch in insertion order.
func (s *Store) Runs(batchID string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, batch_id, level, steps, blocks, doubles, longest_run, home_step, created_at
		 FROM runs
		 WHERE batch_id = ?
		 ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Level, &r.Steps, &r.Blocks,
			&r.Doubles, &r.LongestRun, &r.HomeStep, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Placements returns the stored placements of a run ordered by step, then X.
func (s *Store) Placements(runID int64) ([]layout.Placement, error) {
	rows, err := s.db.Query(
		`SELECT pool_index, name, step, shift, x, y
		 FROM placements
		 WHERE run_id = ?
		 ORDER BY step, x`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query placements: %w", err)
	}
	defer rows.Close()

	var result []layout.Placement
	for rows.Next() {
		var p layout.Placement
		var shift int
		if err := rows.Scan(&p.Index, &p.Name, &p.Step, &shift, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.Shift = layout.Shift(shift)
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return result, nil
}

// Stats aggregates the runs of one level in a batch.
// Returns a zero-run LevelStats if nothing was recorded.
func (s *Store) Stats(batchID string, level int) (*LevelStats, error) {
	stats := &LevelStats{BatchID: batchID, Level: level}

	var steps sql.NullInt64
	var doubles sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(blocks), 0), COALESCE(MAX(blocks), 0), COALESCE(AVG(blocks), 0),
		        SUM(steps), SUM(doubles), COALESCE(MAX(longest_run), 0)
		 FROM runs WHERE batch_id = ? AND level = ?`,
		batchID, level,
	).Scan(&stats.Runs, &stats.MinBlocks, &stats.MaxBlocks, &stats.AvgBlocks,
		&steps, &doubles, &stats.LongestRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	if steps.Valid && steps.Int64 > 0 {
		stats.DoubleRate = float64(doubles.Int64) / float64(steps.Int64)
	}
	return stats, nil
}

// ClearBatch deletes every run of a batch.
func (s *Store) ClearBatch(batchID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM placements WHERE run_id IN (SELECT id FROM runs WHERE batch_id = ?)`,
		batchID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear placements: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE batch_id = ?", batchID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
