package navigation

import (
	"fmt"

	"swipedeck/internal/clock"
	"swipedeck/internal/domain"
	"swipedeck/internal/gesture"
	"swipedeck/internal/keyboard"
	"swipedeck/internal/wheel"
)

// SetFocused records whether the viewport has keyboard focus
func (s *Service) SetFocused(focused bool) {
	s.focused = focused
}

// Focused reports whether the viewport has keyboard focus
func (s *Service) Focused() bool {
	return s.focused
}

// HandlePointerDown starts a drag. It returns false when the pointer is ignored.
func (s *Service) HandlePointerDown(evt gesture.PointerEvent) bool {
	return s.gesture.Start(evt)
}

// HandlePointerMove feeds a pointer sample to an active drag
func (s *Service) HandlePointerMove(evt gesture.PointerEvent) {
	s.gesture.Update(evt)
}

// HandlePointerUp settles an active drag
func (s *Service) HandlePointerUp(evt gesture.PointerEvent) {
	if !s.gesture.Dragging() {
		return
	}
	s.gesture.Update(evt)
	s.gesture.End()
}

// HandlePointerCancel abandons an active drag without navigating and puts
// the viewport back where the drag started.
func (s *Service) HandlePointerCancel() {
	if !s.gesture.Dragging() {
		return
	}
	s.gesture.Cancel()
	s.endDrag()
	if s.viewport != nil && !s.state.Navigating {
		s.viewport.ScrollTo(s.dragStartOffset, domain.BehaviorInstant)
	}
}

// HandleWheel feeds a wheel event. It returns true when the event was
// consumed and native scrolling should be suppressed.
func (s *Service) HandleWheel(evt wheel.Event) bool {
	return s.wheel.Handle(evt)
}

// HandleKey maps a key press to a navigation. It returns true when the key
// was bound, whether or not the navigation was accepted.
func (s *Service) HandleKey(k fmt.Stringer) bool {
	if !s.keys.Listening(s.focused) {
		return false
	}
	switch s.keys.Map(k) {
	case keyboard.IntentPrev:
		s.Prev()
	case keyboard.IntentNext:
		s.Next()
	case keyboard.IntentFirst:
		s.First()
	case keyboard.IntentLast:
		s.Last()
	default:
		return false
	}
	return true
}

// HandleTouchStart lets native snapping take over a touch scroll
func (s *Service) HandleTouchStart() {
	if s.viewport == nil || s.state.Navigating {
		return
	}
	s.viewport.SetSnap(true)
}

func (s *Service) beginDrag() {
	s.state.Dragging = true
	s.wheelDrag = 0
	s.cancelFrame()
	s.safetySnap.Cancel()
	if s.viewport == nil {
		return
	}
	s.dragStartOffset = s.viewport.ScrollOffset()
	if !s.state.Navigating {
		s.viewport.SetSnap(false)
	}
}

// dragTo shows live feedback for a drag delta measured from the drag start
func (s *Service) dragTo(delta float64) {
	if s.viewport == nil || s.state.Navigating {
		return
	}
	s.viewport.ScrollTo(s.dragStartOffset-delta, domain.BehaviorInstant)
}

// wheelDragShare caps live wheel feedback at a share of one page, so the
// content never runs ahead of the item a wheel step lands on.
const wheelDragShare = 0.3

// dragBy accumulates per-event wheel feedback
func (s *Service) dragBy(delta float64) {
	s.wheelDrag += delta
	if page := s.pageSize(); page > 0 {
		limit := page * wheelDragShare
		s.wheelDrag = clock.Clamp(s.wheelDrag, -limit, limit)
	}
	s.dragTo(s.wheelDrag)
}

func (s *Service) endDrag() {
	s.state.Dragging = false
	s.wheelDrag = 0
}
