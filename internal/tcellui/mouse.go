package tcellui

import (
	"github.com/gdamore/tcell/v2"

	"swipedeck/internal/gesture"
	"swipedeck/internal/wheel"
)

// Deck is the input side of the navigation core
type Deck interface {
	HandleTouchStart()
	HandlePointerDown(evt gesture.PointerEvent) bool
	HandlePointerMove(evt gesture.PointerEvent)
	HandlePointerUp(evt gesture.PointerEvent)
	HandleWheel(evt wheel.Event) bool
}

// Mouse turns tcell mouse events into pointer and wheel input. tcell reports
// button state rather than transitions, so presses and releases are derived
// by comparing against the previous event.
type Mouse struct {
	deck        Deck
	tick        float64
	lastButtons tcell.ButtonMask
	dragging    bool

	// Unconsumed receives wheel notches the deck left to native scrolling
	Unconsumed func(dx, dy int)
}

// NewMouse creates a translator reporting tick units per wheel notch
func NewMouse(deck Deck, tick float64) *Mouse {
	return &Mouse{deck: deck, tick: tick}
}

// Dragging reports whether a primary-button drag is in progress
func (m *Mouse) Dragging() bool {
	return m.dragging
}

// Handle dispatches one mouse event
func (m *Mouse) Handle(ev *tcell.EventMouse) {
	x, y := ev.Position()
	evt := gesture.PointerEvent{X: float64(x), Y: float64(y), Button: gesture.PrimaryButton}
	buttons := ev.Buttons()
	changes := buttons ^ m.lastButtons
	m.lastButtons = buttons

	switch {
	case changes&tcell.ButtonPrimary != 0 && buttons&tcell.ButtonPrimary != 0:
		m.deck.HandleTouchStart()
		m.dragging = m.deck.HandlePointerDown(evt)
	case changes&tcell.ButtonPrimary != 0:
		if m.dragging {
			m.dragging = false
			m.deck.HandlePointerUp(evt)
		}
	case m.dragging:
		m.deck.HandlePointerMove(evt)
	}

	for _, w := range []struct {
		button tcell.ButtonMask
		dx, dy int
	}{
		{tcell.WheelUp, 0, -1},
		{tcell.WheelDown, 0, 1},
		{tcell.WheelLeft, -1, 0},
		{tcell.WheelRight, 1, 0},
	} {
		if buttons&w.button == 0 {
			continue
		}
		consumed := m.deck.HandleWheel(wheel.Event{DeltaX: float64(w.dx) * m.tick, DeltaY: float64(w.dy) * m.tick})
		if !consumed && m.Unconsumed != nil {
			m.Unconsumed(w.dx, w.dy)
		}
	}
}
