package testmode

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg is the once-per-second countdown tick, tagged with the
// session it was scheduled for so ticks from a cancelled session cannot
// reach a restarted one.
type timerTickMsg struct {
	sessionID string
	at        time.Time
}

// tickCmd returns a 1-second tick command for the given session.
// Re-armed only while that session is running.
func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{sessionID: sessionID, at: t}
	})
}
