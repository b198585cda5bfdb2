// Package home implements the landing screen: activity summary plus the
// main navigation menu.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/activity"
	"github.com/Personal-Repositories-Space/prepme/internal/router"
	"github.com/Personal-Repositories-Space/prepme/internal/screen"
	"github.com/Personal-Repositories-Space/prepme/internal/screens/problems"
	"github.com/Personal-Repositories-Space/prepme/internal/screens/revision"
	"github.com/Personal-Repositories-Space/prepme/internal/screens/testmode"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/components"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/theme"
)

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	menu          components.Menu
	totalCount    int
	dueCount      int
	masteredCount int
	heatmap       components.Heatmap
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen over the given stores.
func New(problemStore *store.ProblemStore, events *store.EventLog) *HomeScreen {
	now := time.Now()

	var total, due, mastered int
	all, err := problemStore.ListProblems()
	if err == nil {
		total = len(all)
		for _, p := range all {
			if p.IsDue(now) {
				due++
			}
			if p.Mastered() {
				mastered++
			}
		}
	}
	stats := activity.Compute(all, problemStore.TestResults(), now)

	items := []components.MenuItem{
		{Label: "REVISION HUB", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: revision.New(problemStore, events)}
			}
		}},
		{Label: "MOCK TEST", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: testmode.New(problemStore, events)}
			}
		}},
		{Label: "ALL PROBLEMS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: problems.New(problemStore)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		totalCount:    total,
		dueCount:      due,
		masteredCount: mastered,
		heatmap:       components.NewHeatmap(stats.Heatmap),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("PrepMe")
	subtitle := theme.Subtitle.Render("interview prep, one problem at a time")

	statsLine := lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("%d problems", h.totalCount)) +
		theme.Hint.Render("   ·   ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("%d due", h.dueCount)) +
		theme.Hint.Render("   ·   ") +
		lipgloss.NewStyle().Foreground(theme.Success).Render(
			fmt.Sprintf("%d mastered", h.masteredCount))

	sections := []string{
		title,
		subtitle,
		"",
		statsLine,
		"",
		h.heatmap.View(),
		"",
		h.menu.View(),
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
