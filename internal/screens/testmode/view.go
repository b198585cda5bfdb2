package testmode

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/testsession"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/components"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/theme"
)

func (s *TestScreen) View(width, height int) string {
	var content string
	switch s.session.Phase {
	case testsession.PhaseRunning:
		content = s.viewRunning(width)
	case testsession.PhaseResults:
		content = s.viewResults()
	default:
		content = s.viewConfig()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *TestScreen) viewConfig() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Mock Test") + "\n")
	b.WriteString(theme.Subtitle.Render("configure your session") + "\n\n")

	// Preset count selector.
	b.WriteString(fieldLabel("Questions", s.focus == focusCount))
	var presets []string
	for i, n := range testsession.PresetCounts {
		label := fmt.Sprintf(" %d ", n)
		if i == s.countIndex {
			presets = append(presets, theme.ButtonActive.Render(label))
		} else {
			presets = append(presets, theme.ButtonInactive.Render(label))
		}
	}
	b.WriteString(strings.Join(presets, " ") + "\n\n")

	b.WriteString(fieldLabel("Custom count", s.focus == focusCustomCount))
	b.WriteString(s.customCount.View() + "\n\n")

	b.WriteString(fieldLabel(fmt.Sprintf("Duration (%d-%d min)",
		testsession.MinDurationMinutes, testsession.MaxDurationMinutes), s.focus == focusDuration))
	b.WriteString(s.duration.View() + "\n\n")

	b.WriteString(components.NewButton("START TEST", s.focus == focusStart, nil).View())

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Fail.Render(s.errMsg))
	}
	return b.String()
}

func (s *TestScreen) viewRunning(width int) string {
	q := s.session.Current()
	if q == nil {
		return theme.Hint.Render("Loading...")
	}

	var b strings.Builder

	minutes := s.session.TimeLeft / 60
	seconds := s.session.TimeLeft % 60
	timerStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if s.session.TimeLeft <= 60 {
		timerStyle = theme.Fail
	}
	b.WriteString(timerStyle.Render(fmt.Sprintf("⏱ %02d:%02d", minutes, seconds)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   question %d of %d",
		s.session.CurrentIndex+1, len(s.session.Questions))))
	b.WriteString("\n")

	progress := components.NewProgressBar("",
		float64(s.session.CurrentIndex)/float64(len(s.session.Questions)), false, min(width-8, 50))
	b.WriteString(progress.View() + "\n\n")

	b.WriteString(theme.Title.Render(q.DisplayTitle()) + "\n")
	if q.URL != "" {
		b.WriteString(theme.Hint.Render(q.URL) + "\n")
	}
	b.WriteString("\n")
	if q.Description != "" {
		b.WriteString(theme.Body.Render(q.Description) + "\n\n")
	}

	if s.session.ShowSolution {
		solution := q.Solution
		if solution == "" {
			solution = "No solution saved for this problem."
		}
		b.WriteString(theme.Card.Render(solution) + "\n\n")
		b.WriteString(theme.Pass.Render("[P]ass") + "   " + theme.Fail.Render("[F]ail"))
	} else {
		b.WriteString(theme.Hint.Render("Solve it, then press S to check the solution.") + "\n\n")
		b.WriteString(theme.Pass.Render("[P]ass") + "   " + theme.Fail.Render("[F]ail"))
	}

	return b.String()
}

func (s *TestScreen) viewResults() string {
	result := s.session.Result
	if result == nil {
		return theme.Hint.Render("No result.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Test Complete") + "\n\n")

	scoreStyle := theme.Pass
	if result.Percent() < 50 {
		scoreStyle = theme.Fail
	}
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d / %d", result.Score, result.Total)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  (%d%%)", result.Percent())) + "\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf("Time used: %s", formatDuration(result.DurationSeconds))) + "\n\n")
	b.WriteString(theme.Hint.Render("Enter for a new test, Esc to go back."))

	if s.saveErr != "" {
		b.WriteString("\n\n" + theme.Fail.Render(s.saveErr))
	}
	return b.String()
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return theme.Selected.Render("▸ "+label) + "\n"
	}
	return theme.Body.Render("  "+label) + "\n"
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
