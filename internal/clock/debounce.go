package clock

import "time"

// Debouncer runs the most recently supplied function once no new call has
// arrived for the configured duration. Each call cancels the pending one.
type Debouncer struct {
	clock    Clock
	duration time.Duration
	timer    Timer
}

// NewDebouncer creates a trailing-edge debouncer on the given clock
func NewDebouncer(c Clock, d time.Duration) *Debouncer {
	return &Debouncer{clock: c, duration: d}
}

// Debounce schedules fn, replacing any call that has not fired yet
func (d *Debouncer) Debounce(fn func()) {
	Stop(d.timer)
	var t Timer
	t = d.clock.AfterFunc(d.duration, func() {
		if d.timer == t {
			d.timer = nil
		}
		fn()
	})
	d.timer = t
}

// Cancel drops the pending call, if any
func (d *Debouncer) Cancel() {
	Stop(d.timer)
	d.timer = nil
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

// SetDuration changes the wait used by subsequent calls
func (d *Debouncer) SetDuration(dur time.Duration) {
	d.duration = dur
}
