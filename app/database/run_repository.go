package database

import (
	"fmt"
)

// RunRepository handles database operations for the run journal
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// RecordRun inserts a completed run into the journal
func (r *RunRepository) RecordRun(run Run) error {
	_, err := r.db.Exec(`
		INSERT INTO runs (id, started_at, finished_at, target_date, outcome, stream_id, stream_title, link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt, run.FinishedAt, run.TargetDate, run.Outcome, run.StreamID, run.StreamTitle, run.Link)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// GetRecentRuns returns the most recent runs, newest first
func (r *RunRepository) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, started_at, finished_at, target_date, outcome, stream_id, stream_title, link
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.TargetDate,
			&run.Outcome, &run.StreamID, &run.StreamTitle, &run.Link); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunCount returns the total number of journaled runs
func (r *RunRepository) GetRunCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
