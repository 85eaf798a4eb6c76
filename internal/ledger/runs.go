package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run summarizes one batch invocation.
type Run struct {
	RunID      string
	BatchRoot  string
	StartedAt  time.Time
	FinishedAt *time.Time
	Total      int
	Complete   int
	Errored    int
}

// Event is one stage transition or terminal outcome for an AIP.
type Event struct {
	RunID     string
	AIPID     string
	Folder    string
	Stage     string
	Status    string
	Detail    string
	CreatedAt time.Time
}

// ErrNoRuns indicates the ledger holds no completed or in-flight runs.
var ErrNoRuns = errors.New("ledger has no runs")

// BeginRun records a new batch invocation.
func (s *Store) BeginRun(ctx context.Context, runID, batchRoot string, total int) error {
	return s.execWithRetry(ctx,
		`INSERT INTO runs (run_id, batch_root, started_at, total) VALUES (?, ?, ?, ?)`,
		runID, batchRoot, time.Now().UTC(), total,
	)
}

// FinishRun closes out a batch invocation with its terminal counts.
func (s *Store) FinishRun(ctx context.Context, runID string, complete, errored int) error {
	return s.execWithRetry(ctx,
		`UPDATE runs SET finished_at = ?, complete = ?, errored = ? WHERE run_id = ?`,
		time.Now().UTC(), complete, errored, runID,
	)
}

// RecordEvent appends one stage transition for an AIP.
func (s *Store) RecordEvent(ctx context.Context, event Event) error {
	return s.execWithRetry(ctx,
		`INSERT INTO events (run_id, aip_id, folder, stage, status, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.RunID, event.AIPID, event.Folder, event.Stage, event.Status, event.Detail, time.Now().UTC(),
	)
}

// LatestRun returns the most recently started run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, batch_root, started_at, finished_at, total, complete, errored
		 FROM runs ORDER BY started_at DESC LIMIT 1`,
	)
	var run Run
	var finished sql.NullTime
	if err := row.Scan(&run.RunID, &run.BatchRoot, &run.StartedAt, &finished, &run.Total, &run.Complete, &run.Errored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNoRuns
		}
		return Run{}, fmt.Errorf("query latest run: %w", err)
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, nil
}

// RunByID looks up a specific run. ErrNoRuns is returned when the run id is
// unknown.
func (s *Store) RunByID(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, batch_root, started_at, finished_at, total, complete, errored
		 FROM runs WHERE run_id = ?`,
		runID,
	)
	var run Run
	var finished sql.NullTime
	if err := row.Scan(&run.RunID, &run.BatchRoot, &run.StartedAt, &finished, &run.Total, &run.Complete, &run.Errored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNoRuns
		}
		return Run{}, fmt.Errorf("query run %s: %w", runID, err)
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, nil
}

// EventsForRun returns the run's events in insertion order.
func (s *Store) EventsForRun(ctx context.Context, runID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, aip_id, folder, stage, status, detail, created_at
		 FROM events WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.RunID, &event.AIPID, &event.Folder, &event.Stage, &event.Status, &event.Detail, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
