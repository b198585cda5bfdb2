// Package store persists problems as individual JSON files plus a single
// test-history file, and keeps an append-only event log in SQLite.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

const historyFile = "test_history.json"

// ProblemStore reads and writes problem records and test results under a
// single data directory. One file per problem, named after the sanitized
// problem ID.
type ProblemStore struct {
	dir string

	// historyMu serializes the read-modify-write of the history file.
	historyMu sync.Mutex
}

// NewProblemStore creates a store rooted at dir, creating it if needed.
func NewProblemStore(dir string) (*ProblemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &ProblemStore{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *ProblemStore) Dir() string {
	return s.dir
}

func (s *ProblemStore) problemPath(id string) string {
	return filepath.Join(s.dir, problem.SanitizeID(id)+".json")
}

// SaveProblem writes the record to its own file, replacing any previous
// version. Returns the file path written.
func (s *ProblemStore) SaveProblem(rec *problem.Record) (string, error) {
	if rec.ID == "" {
		return "", fmt.Errorf("save problem: empty id")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal problem %q: %w", rec.ID, err)
	}

	path := s.problemPath(rec.ID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write problem %q: %w", rec.ID, err)
	}
	return path, nil
}

// LoadProblem returns the record for id, or nil if the file is absent,
// unreadable, or fails validation. Callers treat a nil result as "not
// found".
func (s *ProblemStore) LoadProblem(id string) *problem.Record {
	data, err := os.ReadFile(s.problemPath(id))
	if err != nil {
		return nil
	}
	rec, ok := decodeProblem(data)
	if !ok {
		return nil
	}
	return rec
}

// ListProblems returns every valid problem in the data directory.
// Malformed files are skipped rather than failing the listing, so one
// corrupt entry never hides the rest of the collection.
func (s *ProblemStore) ListProblems() ([]problem.Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var problems []problem.Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == historyFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		rec, ok := decodeProblem(data)
		if !ok {
			continue
		}
		problems = append(problems, *rec)
	}
	return problems, nil
}

// DeleteProblem removes the problem file for id. Deleting a missing
// problem is not an error.
func (s *ProblemStore) DeleteProblem(id string) error {
	err := os.Remove(s.problemPath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete problem %q: %w", id, err)
	}
	return nil
}

// SaveTestResult appends a result to the history file.
func (s *ProblemStore) SaveTestResult(res problem.TestResult) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	history := s.readHistory()
	history = append(history, res)

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal test history: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, historyFile), data, 0o644); err != nil {
		return fmt.Errorf("write test history: %w", err)
	}
	return nil
}

// TestResults returns the saved test history, oldest first. An absent or
// corrupt history file yields an empty slice.
func (s *ProblemStore) TestResults() []problem.TestResult {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	return s.readHistory()
}

// readHistory loads the history file. A corrupt file starts history over
// rather than blocking further saves. Caller holds historyMu.
func (s *ProblemStore) readHistory() []problem.TestResult {
	data, err := os.ReadFile(filepath.Join(s.dir, historyFile))
	if err != nil {
		return nil
	}
	var history []problem.TestResult
	if err := json.Unmarshal(data, &history); err != nil {
		return nil
	}
	return history
}

// DefaultDataDir resolves the data directory in priority order:
// 1. PREPME_DATA_DIR environment variable
// 2. $XDG_DATA_HOME/prepme
// 3. ~/.local/share/prepme
func DefaultDataDir() (string, error) {
	if p := os.Getenv("PREPME_DATA_DIR"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "prepme"), nil
}
