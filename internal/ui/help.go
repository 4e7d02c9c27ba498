package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"swipedeck/internal/keyboard"
	"swipedeck/internal/ui/views"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	styles *views.Styles
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(styles *views.Styles) *HelpRenderer {
	return &HelpRenderer{styles: styles}
}

// renderHelpContent renders the help overlay for the active bindings,
// clipped to height lines.
func (r *HelpRenderer) renderHelpContent(b keyboard.Bindings, horizontal bool, height int) string {
	var help strings.Builder
	row := func(k, desc string) {
		help.WriteString(fmt.Sprintf("  %s %s\n", r.styles.HelpKey.Render(fmt.Sprintf("%-12s", k)), r.styles.HelpDesc.Render(desc)))
	}
	binding := func(kb key.Binding, desc string) {
		row(strings.Join(kb.Keys(), "/"), desc)
	}

	help.WriteString(r.styles.HelpTitle.Render("swipedeck help"))
	help.WriteString("\n")

	help.WriteString(r.styles.HelpHeader.Render("Keyboard"))
	help.WriteString("\n")
	binding(b.Prev, "Previous card")
	binding(b.Next, "Next card")
	binding(b.AltPrev, "Previous card")
	binding(b.AltNext, "Next card")
	binding(b.First, "First card")
	binding(b.Last, "Last card")
	help.WriteString("\n")

	help.WriteString(r.styles.HelpHeader.Render("Mouse"))
	help.WriteString("\n")
	if horizontal {
		row("drag", "Drag left/right past the threshold to page")
		row("wheel", "Scroll sideways to page one card per swipe")
	} else {
		row("drag", "Drag up/down past the threshold to page")
		row("wheel", "Scroll to page one card per swipe")
	}
	help.WriteString("\n")

	help.WriteString(r.styles.HelpHeader.Render("Other"))
	help.WriteString("\n")
	row("m", "Toggle reduced motion")
	row("?", "Toggle this help")
	row("q", "Quit")

	lines := strings.Split(strings.TrimRight(help.String(), "\n"), "\n")
	visible := max(height-6, 5)
	if len(lines) > visible {
		lines = append(lines[:visible-1], r.styles.Dim.Render("↓ (more below)"))
	}
	return strings.Join(lines, "\n")
}
