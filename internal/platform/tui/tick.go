// Package tui provides the Bubble Tea integration for the game platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// defaultTickRate is used when the runtime config carries no tick rate.
const defaultTickRate = 60

// tickInterval is the wall-clock time of one simulation frame.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next simulation frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
