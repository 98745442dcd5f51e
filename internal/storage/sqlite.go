// Package storage provides SQLite-based persistence for recorded runs.
// A run stores everything needed to replay a session tick for tick:
// the seed, tick rate, configuration and the input changes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run describes one recorded session.
type Run struct {
	ID         int64
	GameID     string
	Seed       int64
	TickRate   int
	Difficulty string
	ConfigYAML string // Effective configuration, replayed verbatim
	Score      int
	Level      int
	Ticks      int64  // Ticks simulated
	FinalHash  uint64 // Snapshot hash after the last tick
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
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
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			config_yaml TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0,
			final_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);

		CREATE TABLE IF NOT EXISTS run_frames (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			mask INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
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

// SaveRun stores a run and its input changes in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run Run, frames []Frame) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec(
		`INSERT INTO runs
		 (game_id, seed, tick_rate, difficulty, config_yaml, score, level, ticks, final_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GameID,
		run.Seed,
		run.TickRate,
		run.Difficulty,
		run.ConfigYAML,
		run.Score,
		run.Level,
		run.Ticks,
		formatHash(run.FinalHash),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_frames (run_id, tick, mask) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(id, f.Tick, int(f.Mask)); err != nil {
			return 0, fmt.Errorf("storage: cannot save frame at tick %d: %w", f.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, game_id, seed, tick_rate, difficulty, config_yaml,
	score, level, ticks, final_hash, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var hash string
	var createdAt any
	if err := row.Scan(
		&r.ID,
		&r.GameID,
		&r.Seed,
		&r.TickRate,
		&r.Difficulty,
		&r.ConfigYAML,
		&r.Score,
		&r.Level,
		&r.Ticks,
		&hash,
		&createdAt,
	); err != nil {
		return r, err
	}

	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return r, fmt.Errorf("storage: bad hash %q for run %d: %w", hash, r.ID, err)
	}
	r.FinalHash = h
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// GetRun retrieves a run by ID.
// Returns ErrRunNotFound if it does not exist.
func (s *Store) GetRun(id int64) (Run, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// ListRuns retrieves the most recent runs of a game, newest first.
// An empty gameID lists every game.
func (s *Store) ListRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunFrames retrieves the input changes of a run, ordered by tick.
func (s *Store) RunFrames(runID int64) ([]Frame, error) {
	rows, err := s.db.Query(
		"SELECT tick, mask FROM run_frames WHERE run_id = ? ORDER BY tick",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var mask int
		if err := rows.Scan(&f.Tick, &mask); err != nil {
			return nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.Mask = uint8(mask)
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return frames, nil
}

// DeleteRun removes a run and its frames.
// Returns ErrRunNotFound if it does not exist.
func (s *Store) DeleteRun(id int64) error {
	if _, err := s.db.Exec("DELETE FROM run_frames WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return nil
}

// RunStats contains aggregated statistics over recorded runs.
type RunStats struct {
	GameID    string
	Runs      int
	BestScore int
	BestLevel int
	AvgScore  float64
	LastRun   time.Time
}

// GetRunStats aggregates the recorded runs of a game.
func (s *Store) GetRunStats(gameID string) (*RunStats, error) {
	stats := &RunStats{GameID: gameID}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.BestScore, &stats.BestLevel, &stats.AvgScore, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// parseTime handles the datetime column as either time.Time or string.
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

func formatHash(h uint64) string {
	return strconv.FormatUint(h, 16)
}
