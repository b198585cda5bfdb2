// Package testsession drives a timed mock-test over a random subset of
// saved problems: configuration, the question flow with solution reveal and
// self-grading, and the final scored result.
package testsession

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

// ErrNoProblems is returned when a test is started against an empty pool.
var ErrNoProblems = errors.New("no problems available for a test")

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseConfig Phase = iota
	PhaseRunning
	PhaseResults
)

// Verdict is the self-graded outcome of a single question.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// PresetCounts are the question-count choices offered in the config screen.
// A custom count outside this list is also accepted.
var PresetCounts = []int{5, 10, 20}

// Duration bounds in minutes.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 120
)

// Config holds the test parameters chosen before starting.
type Config struct {
	Count           int
	DurationMinutes int
}

// DefaultConfig returns the initial test configuration.
func DefaultConfig() Config {
	return Config{Count: 5, DurationMinutes: 30}
}

// normalize clamps the configuration into its valid ranges.
func (c Config) normalize() Config {
	if c.Count < 1 {
		c.Count = 1
	}
	if c.DurationMinutes < MinDurationMinutes {
		c.DurationMinutes = MinDurationMinutes
	}
	if c.DurationMinutes > MaxDurationMinutes {
		c.DurationMinutes = MaxDurationMinutes
	}
	return c
}

// Session is the explicit state of one mock test. It is owned by a single
// caller; nothing here is safe for concurrent use and nothing needs to be,
// all mutation happens through discrete events (key handling, timer ticks).
type Session struct {
	Config Config
	Phase  Phase

	// ID identifies the session in the event log.
	ID string

	// Questions is the selected subset, fixed at start.
	Questions []problem.Record

	CurrentIndex int
	ShowSolution bool

	// TimeLeft is the remaining time in seconds.
	TimeLeft int

	// Outcomes maps question ID to its verdict. Unanswered questions are
	// absent and count toward neither score nor failures.
	Outcomes map[string]Verdict

	// Result is set once the session reaches PhaseResults.
	Result *problem.TestResult
}

// New creates a session in the config phase.
func New(cfg Config) *Session {
	return &Session{Config: cfg, Phase: PhaseConfig}
}

// Start selects min(count, |pool|) distinct problems at random and moves
// the session to the running phase. The pool is not modified. Starting
// against an empty pool returns ErrNoProblems and leaves the session in
// config.
func (s *Session) Start(pool []problem.Record, rng *rand.Rand) error {
	if len(pool) == 0 {
		return ErrNoProblems
	}

	s.Config = s.Config.normalize()

	shuffled := make([]problem.Record, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := s.Config.Count
	if n > len(shuffled) {
		n = len(shuffled)
	}

	s.ID = uuid.New().String()
	s.Questions = shuffled[:n]
	s.CurrentIndex = 0
	s.ShowSolution = false
	s.TimeLeft = s.Config.DurationMinutes * 60
	s.Outcomes = make(map[string]Verdict, n)
	s.Result = nil
	s.Phase = PhaseRunning
	return nil
}

// Current returns the active question, or nil outside the running phase.
func (s *Session) Current() *problem.Record {
	if s.Phase != PhaseRunning || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// RevealSolution shows the saved solution for the current question.
// Idempotent; a no-op outside the running phase.
func (s *Session) RevealSolution() {
	if s.Phase == PhaseRunning {
		s.ShowSolution = true
	}
}

// RecordOutcome grades the current question and advances. On the last
// question it finalizes the session and returns the result; otherwise it
// returns nil.
func (s *Session) RecordOutcome(v Verdict, now time.Time) *problem.TestResult {
	q := s.Current()
	if q == nil {
		return nil
	}

	s.Outcomes[q.ID] = v

	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
		s.ShowSolution = false
		return nil
	}
	return s.finalize(now)
}

// Tick consumes one second of the countdown. Reaching zero force-finalizes
// the session with whatever outcomes have been recorded; the result is
// returned. Ticks outside the running phase are ignored, so a stray tick
// after cancellation cannot finalize an abandoned session.
func (s *Session) Tick(now time.Time) *problem.TestResult {
	if s.Phase != PhaseRunning {
		return nil
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	if s.TimeLeft > 0 {
		return nil
	}
	return s.finalize(now)
}

// Cancel abandons an in-progress session and returns to config. No result
// is produced.
func (s *Session) Cancel() {
	s.Phase = PhaseConfig
	s.Questions = nil
	s.CurrentIndex = 0
	s.ShowSolution = false
	s.TimeLeft = 0
	s.Outcomes = nil
	s.Result = nil
}

// Score counts pass verdicts recorded so far.
func (s *Session) Score() int {
	score := 0
	for _, v := range s.Outcomes {
		if v == VerdictPass {
			score++
		}
	}
	return score
}

// finalize moves the session to results and builds the immutable record.
// Total is the selected question count, not the answered count.
func (s *Session) finalize(now time.Time) *problem.TestResult {
	s.Phase = PhaseResults
	s.Result = &problem.TestResult{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		Timestamp:       now.UnixMilli(),
		Score:           s.Score(),
		Total:           len(s.Questions),
		DurationSeconds: s.Config.DurationMinutes*60 - s.TimeLeft,
	}
	return s.Result
}
