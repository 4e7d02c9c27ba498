// Package tcellui hosts the deck directly on a tcell screen, without the
// Bubble Tea runtime. It translates tcell events into navigation input and
// runs every engine timer on the screen's event loop.
package tcellui

import (
	"github.com/gdamore/tcell/v2"

	"swipedeck/internal/keyboard"
)

var keyNames = map[tcell.Key]keyboard.Key{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyPgUp:   "pgup",
	tcell.KeyPgDn:   "pgdown",
	tcell.KeyHome:   "home",
	tcell.KeyEnd:    "end",
	tcell.KeyEnter:  "enter",
	tcell.KeyTab:    "tab",
	tcell.KeyEscape: "esc",
	tcell.KeyCtrlC:  "ctrl+c",
}

// KeyName converts a key event to the name used in key bindings. Unknown
// keys map to the empty name, which no binding matches.
func KeyName(ev *tcell.EventKey) keyboard.Key {
	if ev.Key() == tcell.KeyRune {
		return keyboard.Key(string(ev.Rune()))
	}
	return keyNames[ev.Key()]
}
