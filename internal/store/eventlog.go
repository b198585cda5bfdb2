package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// EventLog is an append-only record of review and test activity, kept in
// SQLite next to the problem files. It feeds aggregate stats; losing it
// never loses problems.
type EventLog struct {
	db *sql.DB
}

// OpenEventLog opens (or creates) the event log database at dsn and runs
// migration.
func OpenEventLog(dsn string) (*EventLog, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate event log: %w", err)
	}
	return &EventLog{db: db}, nil
}

// EventLogPath returns the event log location inside a data directory.
func EventLogPath(dataDir string) string {
	return filepath.Join(dataDir, "events.db")
}

// Close closes the database connection.
func (l *EventLog) Close() error {
	return l.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS review_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			problem_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			box_before INTEGER NOT NULL,
			box_after INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_events_problem ON review_events(problem_id)`,
		`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events(session_id)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Session event actions.
const (
	SessionStarted   = "started"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// AppendReview records one review outcome.
func (l *EventLog) AppendReview(problemID, outcome string, boxBefore, boxAfter int, at time.Time) error {
	_, err := l.db.Exec(
		`INSERT INTO review_events (problem_id, outcome, box_before, box_after, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		problemID, outcome, boxBefore, boxAfter, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append review event: %w", err)
	}
	return nil
}

// AppendSession records a test-session lifecycle event.
func (l *EventLog) AppendSession(sessionID, action string, score, total, durationSecs int, at time.Time) error {
	_, err := l.db.Exec(
		`INSERT INTO session_events (session_id, action, score, total, duration_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, action, score, total, durationSecs, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

// ReviewCounts returns the number of recorded reviews per outcome.
func (l *EventLog) ReviewCounts() (map[string]int, error) {
	rows, err := l.db.Query(`SELECT outcome, COUNT(*) FROM review_events GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("query review counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan review counts: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

// CompletedSessions returns the number of completed test sessions.
func (l *EventLog) CompletedSessions() (int, error) {
	var n int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM session_events WHERE action = ?`, SessionCompleted,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("query completed sessions: %w", err)
	}
	return n, nil
}
