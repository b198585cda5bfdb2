// Package problems implements the read-only problem catalogue screen.
package problems

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
	"github.com/Personal-Repositories-Space/prepme/internal/screen"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/theme"
)

// ProblemsScreen lists every saved problem with its review state.
type ProblemsScreen struct {
	problems []problem.Record
	cursor   int
	errMsg   string
}

var _ screen.Screen = (*ProblemsScreen)(nil)

// New creates the catalogue screen.
func New(problemStore *store.ProblemStore) *ProblemsScreen {
	s := &ProblemsScreen{}
	all, err := problemStore.ListProblems()
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].DisplayTitle() < all[j].DisplayTitle()
	})
	s.problems = all
	return s
}

func (s *ProblemsScreen) Init() tea.Cmd {
	return nil
}

func (s *ProblemsScreen) Title() string {
	return "All Problems"
}

func (s *ProblemsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.problems)-1 {
			s.cursor++
		}
	}
	return s, nil
}

func (s *ProblemsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Fail.Render(s.errMsg))
	}
	if len(s.problems) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No problems captured yet."))
	}

	now := time.Now()
	var b strings.Builder
	for i, p := range s.problems {
		status := theme.Hint.Render(fmt.Sprintf("box %d", p.Box()))
		if p.Mastered() {
			status = theme.Pass.Render("mastered")
		} else if p.IsDue(now) {
			status = lipgloss.NewStyle().Foreground(theme.Accent).Render("due")
		}
		line := fmt.Sprintf("%-40s %s", truncate(p.DisplayTitle(), 40), status)
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
