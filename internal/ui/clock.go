package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"swipedeck/internal/clock"
)

// timerMsg carries a due engine timer onto the program goroutine
type timerMsg struct {
	timer *clock.PostedTimer
}

// newTeaClock returns a clock whose timers fire inside Update once a
// program is attached with attachProgram.
func newTeaClock() *clock.Posted {
	return clock.NewPosted(nil)
}

func attachProgram(c *clock.Posted, send func(tea.Msg)) {
	c.SetPost(func(t *clock.PostedTimer) {
		send(timerMsg{timer: t})
	})
}
