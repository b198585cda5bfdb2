// Package app wires the Bubble Tea program: root model, screen routing,
// and the shared header/footer frame.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/activity"
	"github.com/Personal-Repositories-Space/prepme/internal/router"
	"github.com/Personal-Repositories-Space/prepme/internal/screen"
	"github.com/Personal-Repositories-Space/prepme/internal/screens/home"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	store  *store.ProblemStore
	events *store.EventLog
	streak int
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(problemStore *store.ProblemStore, events *store.EventLog) AppModel {
	homeScreen := home.New(problemStore, events)
	m := AppModel{
		router: router.New(homeScreen),
		store:  problemStore,
		events: events,
	}
	m.refreshStreak()
	return m
}

// refreshStreak recomputes the header streak from the current data.
func (m *AppModel) refreshStreak() {
	problems, err := m.store.ListProblems()
	if err != nil {
		return
	}
	stats := activity.Compute(problems, m.store.TestResults(), time.Now())
	m.streak = stats.CurrentStreak
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg:
		// Reviews and tests happen on pushed screens; popping is the
		// moment the streak can have changed.
		m.refreshStreak()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok {
				return m, h.HandleEsc()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(problemStore *store.ProblemStore, events *store.EventLog) error {
	p := tea.NewProgram(newAppModel(problemStore, events))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
