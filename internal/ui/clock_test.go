package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaClockDeliversTimersAsMessages(t *testing.T) {
	c := newTeaClock()
	msgs := make(chan tea.Msg, 1)
	attachProgram(c, func(msg tea.Msg) { msgs <- msg })

	fired := false
	c.AfterFunc(time.Millisecond, func() { fired = true })

	select {
	case msg := <-msgs:
		tm, ok := msg.(timerMsg)
		require.True(t, ok)
		assert.False(t, fired)
		tm.timer.Fire()
		assert.True(t, fired)
	case <-time.After(time.Second):
		t.Fatal("timer message was not sent")
	}
}
