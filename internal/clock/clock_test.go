package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 4))
	assert.Equal(t, 4, Clamp(9, 0, 4))
	assert.Equal(t, 2, Clamp(2, 0, 4))
	assert.Equal(t, 0, Clamp(5, 0, -1), "empty range collapses to the lower bound")
	assert.InDelta(t, 40.0, Clamp(120.0, -40, 40), 0.0001)
}

func TestFakeFiresInDueOrder(t *testing.T) {
	c := NewFake(epoch)
	var order []string
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, epoch.Add(35*time.Millisecond), c.Now())
}

func TestFakeNowDuringCallback(t *testing.T) {
	c := NewFake(epoch)
	var seen time.Time
	c.AfterFunc(10*time.Millisecond, func() { seen = c.Now() })
	c.Advance(time.Second)
	assert.Equal(t, epoch.Add(10*time.Millisecond), seen)
}

func TestFakeTimersScheduledWhileAdvancing(t *testing.T) {
	c := NewFake(epoch)
	fired := 0
	c.AfterFunc(10*time.Millisecond, func() {
		fired++
		c.AfterFunc(10*time.Millisecond, func() { fired++ })
	})
	c.Advance(25 * time.Millisecond)
	assert.Equal(t, 2, fired)
	assert.Zero(t, c.Pending())
}

func TestFakeStop(t *testing.T) {
	c := NewFake(epoch)
	fired := false
	timer := c.AfterFunc(10*time.Millisecond, func() { fired = true })
	require.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports already stopped")

	c.Advance(time.Second)
	assert.False(t, fired)
}

func TestDebouncerTrailingEdge(t *testing.T) {
	c := NewFake(epoch)
	d := NewDebouncer(c, 100*time.Millisecond)
	calls := 0

	for i := 0; i < 5; i++ {
		d.Debounce(func() { calls++ })
		c.Advance(50 * time.Millisecond)
	}
	assert.Zero(t, calls, "calls inside the window keep postponing")
	assert.True(t, d.Pending())

	c.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())
}

func TestDebouncerCancel(t *testing.T) {
	c := NewFake(epoch)
	d := NewDebouncer(c, 100*time.Millisecond)
	calls := 0
	d.Debounce(func() { calls++ })
	d.Cancel()
	c.Advance(time.Second)
	assert.Zero(t, calls)
}
