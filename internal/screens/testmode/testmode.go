// Package testmode implements the timed mock-test screen: configuration,
// the running countdown flow, and the results summary.
package testmode

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
	"github.com/Personal-Repositories-Space/prepme/internal/router"
	"github.com/Personal-Repositories-Space/prepme/internal/screen"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
	"github.com/Personal-Repositories-Space/prepme/internal/testsession"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/components"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/layout"
)

// config form focus targets.
const (
	focusCount = iota
	focusCustomCount
	focusDuration
	focusStart
)

// TestScreen drives one mock test from configuration to results.
type TestScreen struct {
	store  *store.ProblemStore
	events *store.EventLog
	rng    *rand.Rand

	session *testsession.Session

	// config form state
	focus       int
	countIndex  int // index into testsession.PresetCounts; custom input overrides
	customCount components.TextInput
	duration    components.TextInput

	errMsg  string
	saveErr string
}

var _ screen.Screen = (*TestScreen)(nil)
var _ screen.KeyHintProvider = (*TestScreen)(nil)
var _ screen.EscHandler = (*TestScreen)(nil)

// New creates the test screen in its configuration phase.
func New(problemStore *store.ProblemStore, events *store.EventLog) *TestScreen {
	return newWithRand(problemStore, events, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// newWithRand allows tests to inject a deterministic question order.
func newWithRand(problemStore *store.ProblemStore, events *store.EventLog, rng *rand.Rand) *TestScreen {
	cfg := testsession.DefaultConfig()
	return &TestScreen{
		store:       problemStore,
		events:      events,
		rng:         rng,
		session:     testsession.New(cfg),
		countIndex:  0,
		customCount: components.NewTextInput("count", true, 3),
		duration:    components.NewTextInput(fmt.Sprintf("%d", cfg.DurationMinutes), true, 3),
	}
}

func (s *TestScreen) Init() tea.Cmd {
	return nil
}

func (s *TestScreen) Title() string {
	return "Mock Test"
}

func (s *TestScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase {
	case testsession.PhaseRunning:
		return []layout.KeyHint{
			{Key: "S", Description: "Solution"},
			{Key: "P", Description: "Pass"},
			{Key: "F", Description: "Fail"},
			{Key: "Esc", Description: "Abandon"},
		}
	case testsession.PhaseResults:
		return []layout.KeyHint{
			{Key: "Enter", Description: "New test"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "←→", Description: "Question count"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// HandleEsc abandons a running test back to config; otherwise pops.
func (s *TestScreen) HandleEsc() tea.Cmd {
	if s.session.Phase == testsession.PhaseRunning {
		if s.events != nil {
			_ = s.events.AppendSession(s.session.ID, store.SessionCancelled, 0, 0, 0, time.Now())
		}
		s.session.Cancel()
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *TestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if msg.sessionID != s.session.ID {
			// Tick from a cancelled session; drop it.
			return s, nil
		}
		if result := s.session.Tick(msg.at); result != nil {
			s.persistResult(result)
			return s, nil
		}
		if s.session.Phase == testsession.PhaseRunning {
			return s, tickCmd(s.session.ID)
		}
		return s, nil

	case tea.KeyMsg:
		switch s.session.Phase {
		case testsession.PhaseConfig:
			return s.updateConfig(msg)
		case testsession.PhaseRunning:
			return s.updateRunning(msg)
		case testsession.PhaseResults:
			return s.updateResults(msg)
		}
	}
	return s, nil
}

func (s *TestScreen) updateConfig(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		s.focus = (s.focus + 1) % 4
		return s, nil
	case "shift+tab", "up":
		s.focus = (s.focus + 3) % 4
		return s, nil
	case "left":
		if s.focus == focusCount && s.countIndex > 0 {
			s.countIndex--
		}
		return s, nil
	case "right":
		if s.focus == focusCount && s.countIndex < len(testsession.PresetCounts)-1 {
			s.countIndex++
		}
		return s, nil
	case "enter":
		return s.start()
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusCustomCount:
		s.customCount, cmd = s.customCount.Update(msg)
	case focusDuration:
		s.duration, cmd = s.duration.Update(msg)
	}
	return s, cmd
}

// start validates the form and launches the session.
func (s *TestScreen) start() (screen.Screen, tea.Cmd) {
	cfg := testsession.Config{
		Count:           testsession.PresetCounts[s.countIndex],
		DurationMinutes: testsession.DefaultConfig().DurationMinutes,
	}
	if v, err := s.customCount.NumericValue(); err == nil && v > 0 {
		cfg.Count = v
	}
	if v, err := s.duration.NumericValue(); err == nil && v > 0 {
		cfg.DurationMinutes = v
	}

	pool, err := s.store.ListProblems()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.session = testsession.New(cfg)
	if err := s.session.Start(pool, s.rng); err != nil {
		if errors.Is(err, testsession.ErrNoProblems) {
			s.errMsg = "No problems to test on. Capture some first."
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}

	s.errMsg = ""
	s.saveErr = ""
	if s.events != nil {
		_ = s.events.AppendSession(s.session.ID, store.SessionStarted, 0, len(s.session.Questions), 0, time.Now())
	}
	return s, tickCmd(s.session.ID)
}

func (s *TestScreen) updateRunning(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "s":
		s.session.RevealSolution()
	case "p":
		if result := s.session.RecordOutcome(testsession.VerdictPass, time.Now()); result != nil {
			s.persistResult(result)
		}
	case "f":
		if result := s.session.RecordOutcome(testsession.VerdictFail, time.Now()); result != nil {
			s.persistResult(result)
		}
	}
	return s, nil
}

func (s *TestScreen) updateResults(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		// Fresh config, keeping the chosen settings.
		s.session = testsession.New(s.session.Config)
		s.focus = focusCount
	}
	return s, nil
}

// persistResult writes the finished test to history and the event log. A
// failed save is shown on the results screen but the score still renders.
func (s *TestScreen) persistResult(result *problem.TestResult) {
	if err := s.store.SaveTestResult(*result); err != nil {
		s.saveErr = fmt.Sprintf("could not save result: %v", err)
	}
	if s.events != nil {
		_ = s.events.AppendSession(s.session.ID, store.SessionCompleted,
			result.Score, result.Total, result.DurationSeconds, time.Now())
	}
}
