// Package tui provides the Bubble Tea host for the block path: a picker,
// a projected view of the path, the shadow button and a placement table.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 2 * time.Second

// flashExpiredMsg clears the status message it was scheduled for.
type flashExpiredMsg struct {
	id int
}

// flashCmd returns a command that expires status message id.
func flashCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}
