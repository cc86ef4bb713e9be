// Package tui provides the Bubble Tea views of the life command: the
// animated watch screen and the session history table.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the watch model to advance one generation.
type TickMsg time.Time

// tickInterval is the delay between generations at rate generations per second.
func tickInterval(rate int) time.Duration {
	if rate < minTickRate {
		rate = minTickRate
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next TickMsg.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
