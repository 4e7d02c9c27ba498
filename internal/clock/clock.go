// Package clock abstracts time so the deck's timers can run on a host event loop
// and be driven deterministically in tests.
package clock

import (
	"cmp"
	"time"
)

// Timer is a pending callback that can be cancelled
type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer
	// already fired or was stopped.
	Stop() bool
}

// Clock provides the current time and one-shot timers
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is a Clock backed by the time package. Callbacks run on their own
// goroutine, so hosts that need single-threaded delivery should wrap it.
type Real struct{}

// NewReal returns the wall clock
func NewReal() Real {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Stop stops t if it is non-nil
func Stop(t Timer) {
	if t != nil {
		t.Stop()
	}
}
