// Package gesture turns a single-pointer drag into a paging decision.
//
// The recognizer moves IDLE -> DRAGGING on pointer-down and back to IDLE on
// pointer-up (after deciding the target index) or pointer-cancel (without
// emitting anything).
package gesture

import (
	"math"
	"time"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
)

// PrimaryButton is the only button that starts a drag
const PrimaryButton = 0

// PointerEvent is a pointer sample in viewport coordinates
type PointerEvent struct {
	X, Y      float64
	Button    int
	PointerID int
}

// Config holds the drag thresholds
type Config struct {
	Orientation          domain.Orientation
	Direction            domain.Direction
	Threshold            float64 // distance in scroll units
	FlickVelocity        float64 // units per millisecond
	LockAxis             bool    // drop samples that moved further across the paging axis
	IgnoreWhileAnimating bool
	Loop                 bool
}

// Deck is the read side of the navigation core the recognizer needs
type Deck interface {
	Index() int
	Count() int
	IsAnimating() bool
}

// Callbacks receive the recognizer's output. Nil entries are skipped.
type Callbacks struct {
	OnDragStart  func()
	OnDrag       func(delta float64)
	OnDragEnd    func()
	SetAnimating func(bool)
	// RequestIndex receives the settled target, which equals the current
	// index when the drag did not cross either threshold.
	RequestIndex func(next int)
}

// Session is the transient per-drag record
type Session struct {
	Dragging  bool
	PointerID int
	Start     float64
	Cross     float64
	Last      float64
	Delta     float64
	StartTime time.Time
}

// Recognizer is the pointer drag state machine
type Recognizer struct {
	cfg     Config
	deck    Deck
	clock   clock.Clock
	cb      Callbacks
	session Session
}

// New creates a recognizer reading index state from deck
func New(cfg Config, deck Deck, c clock.Clock, cb Callbacks) *Recognizer {
	return &Recognizer{cfg: cfg, deck: deck, clock: c, cb: cb}
}

// SetConfig replaces the thresholds; an active drag keeps going
func (r *Recognizer) SetConfig(cfg Config) {
	r.cfg = cfg
}

// Dragging reports whether a drag is in progress
func (r *Recognizer) Dragging() bool {
	return r.session.Dragging
}

// Session returns a copy of the current session
func (r *Recognizer) Session() Session {
	return r.session
}

// Start begins a drag. It returns false when the event is ignored: a
// non-primary button, a drag already in progress, or an animation running
// while IgnoreWhileAnimating is set.
func (r *Recognizer) Start(evt PointerEvent) bool {
	if r.cfg.IgnoreWhileAnimating && r.deck.IsAnimating() {
		return false
	}
	if evt.Button != PrimaryButton || r.session.Dragging {
		return false
	}

	coord := r.coord(evt)
	r.session = Session{
		Dragging:  true,
		PointerID: evt.PointerID,
		Start:     coord,
		Cross:     r.crossCoord(evt),
		Last:      coord,
		StartTime: r.clock.Now(),
	}
	if r.cb.OnDragStart != nil {
		r.cb.OnDragStart()
	}
	return true
}

// Update tracks pointer movement during a drag
func (r *Recognizer) Update(evt PointerEvent) {
	if !r.session.Dragging || evt.PointerID != r.session.PointerID {
		return
	}
	coord := r.coord(evt)
	if r.cfg.LockAxis && math.Abs(r.crossCoord(evt)-r.session.Cross) > math.Abs(coord-r.session.Start) {
		return
	}
	r.session.Delta = coord - r.session.Start
	r.session.Last = coord
	if r.cb.OnDrag != nil {
		r.cb.OnDrag(r.session.Delta)
	}
}

// End settles the drag and requests the resulting index
func (r *Recognizer) End() {
	if !r.session.Dragging {
		return
	}

	duration := float64(r.clock.Now().Sub(r.session.StartTime)) / float64(time.Millisecond)
	duration = math.Max(duration, 1)
	distance := math.Abs(r.session.Delta)
	velocity := distance / duration

	current := r.deck.Index()
	next := current
	if velocity > r.cfg.FlickVelocity || distance > r.cfg.Threshold {
		if r.forward(r.session.Delta) {
			next = current + 1
		} else {
			next = current - 1
		}
	}
	next = r.resolve(next)

	if r.cb.SetAnimating != nil {
		r.cb.SetAnimating(true)
	}
	if r.cb.RequestIndex != nil {
		r.cb.RequestIndex(next)
	}

	r.session = Session{}
	if r.cb.OnDragEnd != nil {
		r.cb.OnDragEnd()
	}
}

// Cancel discards the session without requesting anything
func (r *Recognizer) Cancel() {
	r.session = Session{}
}

func (r *Recognizer) coord(evt PointerEvent) float64 {
	if r.cfg.Orientation.IsVertical() {
		return evt.Y
	}
	return evt.X
}

func (r *Recognizer) crossCoord(evt PointerEvent) float64 {
	if r.cfg.Orientation.IsVertical() {
		return evt.X
	}
	return evt.Y
}

// forward maps a drag delta to a logical direction. Dragging content up (or
// left in LTR) advances.
func (r *Recognizer) forward(delta float64) bool {
	if !r.cfg.Orientation.IsVertical() && r.cfg.Direction == domain.DirectionRTL {
		delta = -delta
	}
	return delta < 0
}

func (r *Recognizer) resolve(next int) int {
	n := r.deck.Count()
	if n <= 0 {
		return 0
	}
	if r.cfg.Loop {
		return ((next % n) + n) % n
	}
	return clock.Clamp(next, 0, n-1)
}
