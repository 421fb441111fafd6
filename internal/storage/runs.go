package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is the record of one finished game.
type Run struct {
	ID        int64
	RunID     string
	Player    string
	Level     int // Deepest level reached
	Turns     int // Turns survived
	Seed      int64
	CreatedAt time.Time
}

// SaveRun records a finished run. An empty RunID is filled with a new
// UUID. Returns the run ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.Player == "" {
		r.Player = "local"
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (run_id, player, level, turns, seed) VALUES (?, ?, ?, ?, ?)",
		r.RunID, r.Player, r.Level, r.Turns, r.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.RunID, nil
}

// TopRuns retrieves the best N runs, deepest level first, then longest.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, run_id, player, level, turns, seed, created_at
		 FROM runs
		 ORDER BY level DESC, turns DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RunsFor retrieves the most recent runs of one player.
func (s *Store) RunsFor(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, run_id, player, level, turns, seed, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
}

// BestRun returns the best run of a player, or nil if they have none.
func (s *Store) BestRun(player string) (*Run, error) {
	var r Run
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, run_id, player, level, turns, seed, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY level DESC, turns DESC
		 LIMIT 1`,
		player,
	).Scan(&r.ID, &r.RunID, &r.Player, &r.Level, &r.Turns, &r.Seed, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// ClearRuns deletes every run record.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics over all runs.
type RunStats struct {
	Runs       int
	DeepestRun int
	AvgLevel   float64
	TotalTurns int64
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), COALESCE(AVG(level), 0), COALESCE(SUM(turns), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.DeepestRun, &stats.AvgLevel, &stats.TotalTurns)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Player, &r.Level, &r.Turns, &r.Seed, &createdAt); err != nil {
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
