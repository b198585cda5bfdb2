package revision

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testRevisionScreen(t *testing.T) (*RevisionScreen, *store.ProblemStore) {
	t.Helper()
	problemStore, err := store.NewProblemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewProblemStore: %v", err)
	}

	due := &problem.Record{ID: "due-now", Title: "Due Now", BoxLevel: 2}
	later := &problem.Record{
		ID:             "later",
		Title:          "Later",
		BoxLevel:       4,
		NextReviewDate: time.Now().Add(48 * time.Hour).UnixMilli(),
	}
	for _, rec := range []*problem.Record{due, later} {
		if _, err := problemStore.SaveProblem(rec); err != nil {
			t.Fatalf("SaveProblem: %v", err)
		}
	}

	return New(problemStore, nil), problemStore
}

func TestDueFilterHidesScheduledProblems(t *testing.T) {
	s, _ := testRevisionScreen(t)

	items := s.filtered()
	if len(items) != 1 || items[0].ID != "due-now" {
		t.Fatalf("due filter shows %v, want only due-now", items)
	}

	// Cycle: due -> reviewed today -> mastered -> all.
	_, _ = s.Update(keyPress('f'))
	_, _ = s.Update(keyPress('f'))
	if s.filter != FilterMastered {
		t.Fatalf("filter = %v, want mastered", s.filter)
	}
	items = s.filtered()
	if len(items) != 1 || items[0].ID != "later" {
		t.Fatalf("mastered filter shows %v, want only later (box 4)", items)
	}

	_, _ = s.Update(keyPress('f'))
	if got := len(s.filtered()); got != 2 {
		t.Fatalf("all filter shows %d problems, want 2", got)
	}
}

func TestGradeEasyPersistsAndReschedules(t *testing.T) {
	s, problemStore := testRevisionScreen(t)

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.reviewing == nil || s.reviewing.ID != "due-now" {
		t.Fatal("enter should open the selected due problem")
	}

	_, _ = s.Update(keyPress('e'))

	if s.reviewing != nil {
		t.Fatal("grading should return to the list")
	}
	updated := problemStore.LoadProblem("due-now")
	if updated == nil {
		t.Fatal("problem missing after grade")
	}
	if updated.BoxLevel != 3 {
		t.Fatalf("BoxLevel = %d, want 3 after easy", updated.BoxLevel)
	}
	if updated.NextReviewDate <= time.Now().UnixMilli() {
		t.Fatal("graded problem should no longer be due")
	}
	if len(s.filtered()) != 0 {
		t.Fatal("due list should be empty after the only due problem is graded")
	}
}

func TestEscClosesReviewBeforePopping(t *testing.T) {
	s, _ := testRevisionScreen(t)

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd := s.HandleEsc(); cmd != nil {
		t.Fatal("esc with an open review should stay on the screen")
	}
	if s.reviewing != nil {
		t.Fatal("esc should close the open review")
	}
	if cmd := s.HandleEsc(); cmd == nil {
		t.Fatal("esc from the list should pop the screen")
	}
}
