// Package wheel maps wheel and trackpad deltas to discrete page steps.
//
// A mouse wheel notch reports ~100+ units in one event while a trackpad reports
// 1-20 units at up to 60Hz. Both are folded into one session: per-event deltas
// are clamped before accumulating, a direction reversal restarts the session,
// a fast flick can cross early, and a cooldown after each step swallows the
// tail of the same physical swipe.
package wheel

import (
	"math"
	"time"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
)

const (
	// MaxAccumDelta caps what a single event contributes to the accumulation
	MaxAccumDelta = 120.0
	// MaxVisualDelta caps the live drag feedback of a single event
	MaxVisualDelta = 40.0
	// VelocitySmoothing is the EMA weight given to each new velocity sample
	VelocitySmoothing = 0.2
	// FlickVelocity is the smoothed velocity (units/ms) that counts as a flick
	FlickVelocity = 2.0
	// FlickMinFraction is the share of the threshold a flick must still cover
	FlickMinFraction = 0.5
	// minSampleInterval floors the time between events for velocity sampling,
	// so same-frame bursts do not read as infinitely fast.
	minSampleInterval = 8 * time.Millisecond
)

// Event is a wheel sample. Positive DeltaY scrolls down, positive DeltaX right.
type Event struct {
	DeltaX, DeltaY float64
}

// Config holds the wheel thresholds
type Config struct {
	Orientation    domain.Orientation
	Direction      domain.Direction
	DiscretePaging bool
	Threshold      float64
	Debounce       time.Duration
	Cooldown       time.Duration
}

// Callbacks receive the recognizer's output. Nil entries are skipped.
type Callbacks struct {
	OnDragStart func()
	OnDrag      func(delta float64)
	// OnDragEnd fires when the session goes quiet without stepping
	OnDragEnd func()
	// RequestStep receives +1 (forward) or -1 (backward)
	RequestStep func(step int)
}

// Session is the transient per-gesture wheel record
type Session struct {
	Accumulated   float64
	Direction     int // +1, -1, or 0 when no direction is locked yet
	EventCount    int
	LastEventTime time.Time
	VelocityEMA   float64
	Tracking      bool
	CooldownUntil time.Time
}

// Recognizer is the wheel paging state machine
type Recognizer struct {
	cfg       Config
	clock     clock.Clock
	cb        Callbacks
	session   Session
	quiescent *clock.Debouncer
}

// New creates a wheel recognizer
func New(cfg Config, c clock.Clock, cb Callbacks) *Recognizer {
	return &Recognizer{
		cfg:       cfg,
		clock:     c,
		cb:        cb,
		quiescent: clock.NewDebouncer(c, cfg.Debounce),
	}
}

// SetConfig replaces the thresholds and restarts any session
func (r *Recognizer) SetConfig(cfg Config) {
	r.cfg = cfg
	r.quiescent.SetDuration(cfg.Debounce)
	r.Reset()
}

// Session returns a copy of the current session
func (r *Recognizer) Session() Session {
	return r.session
}

// Reset drops the current session; a running cooldown is kept
func (r *Recognizer) Reset() {
	r.quiescent.Cancel()
	cooldown := r.session.CooldownUntil
	r.session = Session{CooldownUntil: cooldown}
}

// Handle consumes one wheel event. It returns false when the event should be
// left to native scrolling (continuous mode); true means the event was
// consumed, including when it was discarded by the cooldown.
func (r *Recognizer) Handle(evt Event) bool {
	if !r.cfg.DiscretePaging {
		return false
	}

	raw := r.axisDelta(evt)
	if raw == 0 {
		return true
	}

	now := r.clock.Now()
	if now.Before(r.session.CooldownUntil) {
		return true
	}

	if !r.session.Tracking {
		r.session = Session{Tracking: true, CooldownUntil: r.session.CooldownUntil}
		if r.cb.OnDragStart != nil {
			r.cb.OnDragStart()
		}
	}

	dir := 1
	if raw < 0 {
		dir = -1
	}
	if r.session.Direction != 0 && dir != r.session.Direction {
		r.session.Accumulated = 0
		r.session.EventCount = 0
		r.session.VelocityEMA = 0
	}
	r.session.Direction = dir

	accumDelta := clock.Clamp(raw, -MaxAccumDelta, MaxAccumDelta)
	visualDelta := clock.Clamp(raw, -MaxVisualDelta, MaxVisualDelta)

	if r.session.EventCount > 0 {
		dt := now.Sub(r.session.LastEventTime)
		if dt < minSampleInterval {
			dt = minSampleInterval
		}
		instant := math.Abs(accumDelta) / (float64(dt) / float64(time.Millisecond))
		r.session.VelocityEMA = VelocitySmoothing*instant + (1-VelocitySmoothing)*r.session.VelocityEMA
	}

	r.session.Accumulated += accumDelta
	r.session.EventCount++
	r.session.LastEventTime = now

	if r.cb.OnDrag != nil {
		r.cb.OnDrag(-visualDelta)
	}

	if r.crossed() {
		step := r.session.Direction
		r.quiescent.Cancel()
		r.session = Session{CooldownUntil: now.Add(r.cfg.Cooldown)}
		if r.cb.RequestStep != nil {
			r.cb.RequestStep(step)
		}
		return true
	}

	r.quiescent.Debounce(r.settle)
	return true
}

func (r *Recognizer) crossed() bool {
	acc := math.Abs(r.session.Accumulated)
	if acc >= r.cfg.Threshold {
		return true
	}
	return r.session.VelocityEMA > FlickVelocity && acc >= r.cfg.Threshold*FlickMinFraction
}

func (r *Recognizer) settle() {
	if !r.session.Tracking {
		return
	}
	r.session = Session{CooldownUntil: r.session.CooldownUntil}
	if r.cb.OnDragEnd != nil {
		r.cb.OnDragEnd()
	}
}

func (r *Recognizer) axisDelta(evt Event) float64 {
	if r.cfg.Orientation.IsVertical() {
		return evt.DeltaY
	}
	if r.cfg.Direction == domain.DirectionRTL {
		return -evt.DeltaX
	}
	return evt.DeltaX
}
