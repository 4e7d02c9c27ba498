// Package keyboard maps key presses to deck navigation intents.
package keyboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"swipedeck/internal/domain"
)

// Intent is what a key asks the deck to do
type Intent int

const (
	IntentNone Intent = iota
	IntentPrev
	IntentNext
	IntentFirst
	IntentLast
)

func (i Intent) String() string {
	switch i {
	case IntentPrev:
		return "prev"
	case IntentNext:
		return "next"
	case IntentFirst:
		return "first"
	case IntentLast:
		return "last"
	default:
		return "none"
	}
}

// Key is a key name as reported by the terminal host ("up", "pgdown", "home", ...)
type Key string

func (k Key) String() string { return string(k) }

// Bindings is the configurable key map
type Bindings struct {
	Prev    key.Binding
	Next    key.Binding
	First   key.Binding
	Last    key.Binding
	AltPrev key.Binding
	AltNext key.Binding
}

// KeyNames lists raw key names per binding, as stored in configuration
type KeyNames struct {
	Prev, Next, First, Last, AltPrev, AltNext []string
}

// DefaultBindings returns the arrow, page and home/end bindings for an orientation
func DefaultBindings(o domain.Orientation) Bindings {
	return NewBindings(DefaultKeyNames(o), o)
}

// DefaultKeyNames returns the default key names for an orientation
func DefaultKeyNames(o domain.Orientation) KeyNames {
	names := KeyNames{
		Prev:    []string{"up"},
		Next:    []string{"down"},
		First:   []string{"home"},
		Last:    []string{"end"},
		AltPrev: []string{"pgup"},
		AltNext: []string{"pgdown"},
	}
	if !o.IsVertical() {
		names.Prev = []string{"left"}
		names.Next = []string{"right"}
	}
	return names
}

// NewBindings builds bindings from key names; empty lists fall back to the
// orientation defaults.
func NewBindings(names KeyNames, o domain.Orientation) Bindings {
	def := DefaultKeyNames(o)
	pick := func(v, fallback []string) []string {
		if len(v) > 0 {
			return v
		}
		return fallback
	}
	prevHelp, nextHelp := "↑", "↓"
	if !o.IsVertical() {
		prevHelp, nextHelp = "←", "→"
	}
	return Bindings{
		Prev:    key.NewBinding(key.WithKeys(pick(names.Prev, def.Prev)...), key.WithHelp(prevHelp, "previous")),
		Next:    key.NewBinding(key.WithKeys(pick(names.Next, def.Next)...), key.WithHelp(nextHelp, "next")),
		First:   key.NewBinding(key.WithKeys(pick(names.First, def.First)...), key.WithHelp("home", "first")),
		Last:    key.NewBinding(key.WithKeys(pick(names.Last, def.Last)...), key.WithHelp("end", "last")),
		AltPrev: key.NewBinding(key.WithKeys(pick(names.AltPrev, def.AltPrev)...), key.WithHelp("pgup", "previous")),
		AltNext: key.NewBinding(key.WithKeys(pick(names.AltNext, def.AltNext)...), key.WithHelp("pgdn", "next")),
	}
}

// Config controls when the recognizer listens
type Config struct {
	Orientation domain.Orientation
	Direction   domain.Direction
	Enabled     bool
	// Global makes the recognizer listen regardless of viewport focus
	Global   bool
	Bindings Bindings
}

// Recognizer is a stateless key-to-intent mapper
type Recognizer struct {
	cfg Config
}

// New creates a keyboard recognizer
func New(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// SetConfig replaces the configuration
func (r *Recognizer) SetConfig(cfg Config) {
	r.cfg = cfg
}

// Config returns the active configuration
func (r *Recognizer) Config() Config {
	return r.cfg
}

// Listening reports whether key events should reach the recognizer, given
// whether the viewport currently has focus.
func (r *Recognizer) Listening(focused bool) bool {
	return r.cfg.Enabled && (focused || r.cfg.Global)
}

// Map resolves a key press. In a horizontal RTL deck the prev/next bindings
// swap so keys follow the visual direction.
func (r *Recognizer) Map(k fmt.Stringer) Intent {
	if !r.cfg.Enabled {
		return IntentNone
	}
	b := r.cfg.Bindings
	swap := !r.cfg.Orientation.IsVertical() && r.cfg.Direction == domain.DirectionRTL

	switch {
	case key.Matches(k, b.Prev, b.AltPrev):
		if swap {
			return IntentNext
		}
		return IntentPrev
	case key.Matches(k, b.Next, b.AltNext):
		if swap {
			return IntentPrev
		}
		return IntentNext
	case key.Matches(k, b.First):
		return IntentFirst
	case key.Matches(k, b.Last):
		return IntentLast
	}
	return IntentNone
}

// ShortHelp implements help.KeyMap
func (b Bindings) ShortHelp() []key.Binding {
	return []key.Binding{b.Prev, b.Next, b.First, b.Last}
}

// FullHelp implements help.KeyMap
func (b Bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.Prev, b.Next},
		{b.AltPrev, b.AltNext},
		{b.First, b.Last},
	}
}
