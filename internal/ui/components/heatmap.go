package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Personal-Repositories-Space/prepme/internal/activity"
	"github.com/Personal-Repositories-Space/prepme/internal/ui/theme"
)

// Heatmap renders a 30-day activity strip, oldest day first.
type Heatmap struct {
	Days []activity.Day
}

// NewHeatmap creates a heatmap over the given days.
func NewHeatmap(days []activity.Day) Heatmap {
	return Heatmap{Days: days}
}

// View renders the strip plus a date-range caption.
func (h Heatmap) View() string {
	if len(h.Days) == 0 {
		return ""
	}

	var cells strings.Builder
	for _, d := range h.Days {
		switch {
		case d.Active && d.IsToday:
			cells.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("■"))
		case d.Active:
			cells.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("■"))
		case d.IsToday:
			cells.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("▢"))
		default:
			cells.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("□"))
		}
		cells.WriteString(" ")
	}

	first := h.Days[0].Date
	last := h.Days[len(h.Days)-1].Date
	caption := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s - %s", first.Format("Jan 2"), last.Format("Jan 2")))

	return strings.TrimRight(cells.String(), " ") + "\n" + caption
}
