package ui

import (
	"time"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
)

// Surface is the scrollable region the deck renders into. It implements
// the navigation viewport and the virtualizer scroll target. Scroll
// notifications are delivered on the next frame, never from inside ScrollTo.
type Surface struct {
	clock    clock.Clock
	frame    time.Duration
	duration time.Duration

	offset float64
	size   float64
	extent float64
	snap   bool

	from, to  float64
	started   time.Time
	animating bool
	dirty     bool
	timer     clock.Timer

	// OnScroll fires for every frame in which the offset changed
	OnScroll func()
	// OnScrollEnd fires once the offset stops changing
	OnScrollEnd func()
}

// NewSurface creates a surface. duration is the length of a smooth scroll.
func NewSurface(c clock.Clock, frame, duration time.Duration) *Surface {
	return &Surface{clock: c, frame: frame, duration: duration, snap: true}
}

func (s *Surface) ScrollOffset() float64 { return s.offset }
func (s *Surface) Size() float64         { return s.size }
func (s *Surface) Snap() bool            { return s.snap }
func (s *Surface) SetSnap(enabled bool)  { s.snap = enabled }
func (s *Surface) Animating() bool       { return s.animating }

// SetSize records the visible extent in rows
func (s *Surface) SetSize(size float64) {
	s.size = size
	s.offset = s.clamp(s.offset)
}

// SetExtent records the total content extent
func (s *Surface) SetExtent(extent float64) {
	s.extent = extent
	s.offset = s.clamp(s.offset)
}

// ScrollTo moves to offset, animating when behavior is smooth
func (s *Surface) ScrollTo(offset float64, behavior domain.Behavior) {
	offset = s.clamp(offset)
	if behavior == domain.BehaviorSmooth && s.duration > 0 && offset != s.offset {
		s.from, s.to = s.offset, offset
		s.started = s.clock.Now()
		s.animating = true
		s.schedule()
		return
	}
	s.animating = false
	s.offset = offset
	s.dirty = true
	s.schedule()
}

// ScrollBy moves instantly by delta, as native scrolling would
func (s *Surface) ScrollBy(delta float64) {
	s.ScrollTo(s.offset+delta, domain.BehaviorInstant)
}

func (s *Surface) clamp(offset float64) float64 {
	return clock.Clamp(offset, 0, max(s.extent-s.size, 0))
}

func (s *Surface) schedule() {
	if s.timer != nil {
		return
	}
	s.timer = s.clock.AfterFunc(s.frame, s.step)
}

func (s *Surface) step() {
	s.timer = nil
	if s.animating {
		p := float64(s.clock.Now().Sub(s.started)) / float64(s.duration)
		if p >= 1 {
			s.offset = s.to
			s.animating = false
		} else {
			s.offset = s.from + (s.to-s.from)*easeOutCubic(p)
		}
		s.dirty = true
	}

	if s.dirty {
		s.dirty = false
		if s.OnScroll != nil {
			s.OnScroll()
		}
	}
	if s.animating {
		s.schedule()
		return
	}
	if s.OnScrollEnd != nil {
		s.OnScrollEnd()
	}
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}
