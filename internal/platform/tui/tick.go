// Package tui provides the Bubble Tea front end for the solitaire suite:
// the table view, menus, scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg refreshes the game clock.
type TickMsg time.Time

// clockInterval is how often the elapsed time on the status line is redrawn.
const clockInterval = time.Second

func tickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
