// Package revision implements the spaced-repetition review screen: a
// filterable problem list and the grade-one-problem flow.
package revision

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/activity"
	"github.com/Personal-Repositories-Space/prepme/internal/leitner"
	"github.com/Personal-Repositories-Space/prepme/internal/problem"
	"github.com/Personal-Repositories-Space/prepme/internal/router"
	"github.com/Personal-Repositories-Space/prepme/internal/screen"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/components"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/layout"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/theme"
)

// Filter selects which problems the list shows.
type Filter int

const (
	FilterDue Filter = iota
	FilterReviewedToday
	FilterMastered
	FilterAll
)

var filterLabels = map[Filter]string{
	FilterDue:           "Due",
	FilterReviewedToday: "Reviewed Today",
	FilterMastered:      "Mastered",
	FilterAll:           "All",
}

// RevisionScreen drives review of due problems.
type RevisionScreen struct {
	store  *store.ProblemStore
	events *store.EventLog

	problems []problem.Record
	filter   Filter
	cursor   int

	// reviewing is the problem open for grading, nil in list mode.
	reviewing    *problem.Record
	showSolution bool

	streak  int
	heatmap components.Heatmap
	errMsg  string
}

var _ screen.Screen = (*RevisionScreen)(nil)
var _ screen.KeyHintProvider = (*RevisionScreen)(nil)
var _ screen.EscHandler = (*RevisionScreen)(nil)

// New creates the revision screen over the given stores.
func New(problemStore *store.ProblemStore, events *store.EventLog) *RevisionScreen {
	s := &RevisionScreen{
		store:  problemStore,
		events: events,
		filter: FilterDue,
	}
	s.reload()
	return s
}

// reload refreshes the problem list and activity stats from the store.
func (s *RevisionScreen) reload() {
	all, err := s.store.ListProblems()
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].DisplayTitle() < all[j].DisplayTitle()
	})
	s.problems = all

	stats := activity.Compute(all, s.store.TestResults(), time.Now())
	s.streak = stats.CurrentStreak
	s.heatmap = components.NewHeatmap(stats.Heatmap)

	if s.cursor >= len(s.filtered()) {
		s.cursor = 0
	}
}

// filtered returns the problems matching the active filter.
func (s *RevisionScreen) filtered() []problem.Record {
	now := time.Now()
	var out []problem.Record
	for _, p := range s.problems {
		switch s.filter {
		case FilterDue:
			if p.IsDue(now) {
				out = append(out, p)
			}
		case FilterReviewedToday:
			if p.ReviewedOn(now) {
				out = append(out, p)
			}
		case FilterMastered:
			if p.Mastered() {
				out = append(out, p)
			}
		case FilterAll:
			out = append(out, p)
		}
	}
	return out
}

func (s *RevisionScreen) Init() tea.Cmd {
	return nil
}

func (s *RevisionScreen) Title() string {
	return "Revision Hub"
}

func (s *RevisionScreen) KeyHints() []layout.KeyHint {
	if s.reviewing != nil {
		return []layout.KeyHint{
			{Key: "S", Description: "Solution"},
			{Key: "E/M/H", Description: "Grade"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "Enter", Description: "Review"},
		{Key: "Esc", Description: "Back"},
	}
}

// HandleEsc closes the open review instead of popping the screen.
func (s *RevisionScreen) HandleEsc() tea.Cmd {
	if s.reviewing != nil {
		s.reviewing = nil
		s.showSolution = false
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *RevisionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.reviewing != nil {
		return s.updateReview(kmsg)
	}
	return s.updateList(kmsg)
}

func (s *RevisionScreen) updateList(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	items := s.filtered()

	switch msg.String() {
	case "tab", "f":
		s.filter = (s.filter + 1) % 4
		s.cursor = 0
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(items)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(items) {
			rec := items[s.cursor]
			s.reviewing = &rec
			s.showSolution = false
		}
	}
	return s, nil
}

func (s *RevisionScreen) updateReview(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "s":
		s.showSolution = !s.showSolution
	case "e":
		s.grade(problem.OutcomeEasy)
	case "m":
		s.grade(problem.OutcomeMedium)
	case "h":
		s.grade(problem.OutcomeHard)
	}
	return s, nil
}

// grade applies the review outcome, persists the updated record, and logs
// the event. Logging failure never blocks the review.
func (s *RevisionScreen) grade(outcome problem.Outcome) {
	now := time.Now()
	before := s.reviewing.Box()
	updated := leitner.Review(*s.reviewing, outcome, now)

	if _, err := s.store.SaveProblem(&updated); err != nil {
		s.errMsg = fmt.Sprintf("save failed: %v", err)
	}
	if s.events != nil {
		_ = s.events.AppendReview(updated.ID, string(outcome), before, updated.Box(), now)
	}

	s.reviewing = nil
	s.showSolution = false
	s.reload()
}

func (s *RevisionScreen) View(width, height int) string {
	if s.reviewing != nil {
		return s.viewReview(width, height)
	}
	return s.viewList(width, height)
}

func (s *RevisionScreen) viewList(width, height int) string {
	var b strings.Builder

	streakLabel := "days"
	if s.streak == 1 {
		streakLabel = "day"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("🔥 %d %s streak", s.streak, streakLabel)))
	b.WriteString("\n\n")
	b.WriteString(s.heatmap.View())
	b.WriteString("\n\n")

	for f := FilterDue; f <= FilterAll; f++ {
		label := " " + filterLabels[f] + " "
		if f == s.filter {
			b.WriteString(theme.Selected.Render("[" + label + "]"))
		} else {
			b.WriteString(theme.Hint.Render(" " + label + " "))
		}
	}
	b.WriteString("\n\n")

	items := s.filtered()
	if len(items) == 0 {
		b.WriteString(theme.Hint.Render("Nothing here. Capture some problems or switch filters."))
	}
	for i, p := range items {
		line := fmt.Sprintf("%s  %s", p.DisplayTitle(),
			theme.Hint.Render(fmt.Sprintf("box %d", p.Box())))
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Fail.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *RevisionScreen) viewReview(width, height int) string {
	p := s.reviewing

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.DisplayTitle()) + "\n")
	if p.URL != "" {
		b.WriteString(theme.Hint.Render(p.URL) + "\n")
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("box %d · last outcome %s", p.Box(), orDash(string(p.Difficulty)))) + "\n\n")

	if p.Description != "" {
		b.WriteString(theme.Body.Render(p.Description) + "\n\n")
	}
	if p.Notes != "" {
		b.WriteString(theme.Body.Render("Notes: "+p.Notes) + "\n\n")
	}

	if s.showSolution {
		b.WriteString(theme.Card.Render(orDash(p.Solution)) + "\n\n")
	} else {
		b.WriteString(theme.Hint.Render("Press S to reveal the solution.") + "\n\n")
	}

	b.WriteString(theme.Pass.Render("[E]asy") + "  " +
		theme.Body.Render("[M]edium") + "  " +
		theme.Fail.Render("[H]ard"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
