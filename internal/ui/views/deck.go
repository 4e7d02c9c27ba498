package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// CardState is one rendered item
type CardState struct {
	Index   int
	Key     string
	Offset  float64
	Size    float64
	Active  bool
	Preload bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	Horizontal bool
	Label      string
	Index      int
	Count      int
	Animating  bool
	Snap       bool
	Offset     float64
	Cards      []CardState
	Status     string
	HelpLine   string
	ShowHelp   bool
	HelpBody   string
}

// Chrome is the number of rows used by the title and footer
const Chrome = 3

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// DeckSize returns the viewport extent for a terminal of the given size
func DeckSize(width, height int, horizontal bool) int {
	if horizontal {
		return max(width-2, 1)
	}
	return max(height-Chrome, 1)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return "Loading..."
	}
	width := max(state.Width-2, 1)
	rows := max(state.Height-Chrome, 1)

	var content strings.Builder
	content.WriteString(r.titleLine(state, width))
	content.WriteString("\n")

	var deck []string
	if state.Horizontal {
		deck = r.renderColumns(state, width, rows)
	} else {
		deck = r.renderRows(state, width, rows)
	}
	content.WriteString(strings.Join(deck, "\n"))
	content.WriteString("\n")

	status := r.styles.Status.Render(ansi.Truncate(state.Status, width, "…"))
	content.WriteString(status)
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpLine))

	main := r.styles.Main.MaxHeight(state.Height).Render(content.String())
	if state.ShowHelp && state.HelpBody != "" {
		box := r.styles.HelpBox.Render(state.HelpBody)
		return lipgloss.Place(state.Width, state.Height, lipgloss.Center, lipgloss.Center, box)
	}
	return main
}

func (r *Renderer) titleLine(state ViewState, width int) string {
	logo := r.styles.Title.Render("swipedeck")
	if state.Label != "" {
		logo += r.styles.Dim.Render("  " + state.Label)
	}

	var indicators []string
	if state.Count > 0 {
		indicators = append(indicators, r.styles.Indicator.Render(fmt.Sprintf("● %d/%d", state.Index+1, state.Count)))
	} else {
		indicators = append(indicators, r.styles.Dim.Render("empty"))
	}
	if state.Animating {
		indicators = append(indicators, r.styles.Busy.Render("↻ moving"))
	}
	if !state.Snap {
		indicators = append(indicators, r.styles.Dim.Render("snap off"))
	}
	right := strings.Join(indicators, " ")

	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderCard draws one card box of the given outer size
func (r *Renderer) renderCard(c CardState, w, h int, count int) string {
	style := r.styles.Card
	if c.Active {
		style = r.styles.ActiveCard.BorderForeground(CardAccent(c.Index))
	}

	title := r.styles.CardTitle.Foreground(CardAccent(c.Index)).Render(fmt.Sprintf("Card %d of %d", c.Index+1, count))
	lines := []string{title}
	if c.Active {
		lines = append(lines, "● active")
	}
	if c.Preload {
		lines = append(lines, r.styles.Preload.Render("◌ preloading"))
	}
	if c.Key != "" {
		lines = append(lines, r.styles.Dim.Render("key "+c.Key))
	}

	innerW := max(w-style.GetHorizontalFrameSize(), 0)
	innerH := max(h-style.GetVerticalFrameSize(), 0)
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, innerW, "…")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	return style.
		Width(innerW + style.GetHorizontalPadding()).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

func blank(n, width int) []string {
	out := make([]string, n)
	pad := strings.Repeat(" ", width)
	for i := range out {
		out[i] = pad
	}
	return out
}

func (r *Renderer) renderRows(state ViewState, width, rows int) []string {
	out := blank(rows, width)
	for _, c := range state.Cards {
		h := int(math.Round(c.Size))
		top := int(math.Round(c.Offset - state.Offset))
		if h <= 0 || top >= rows || top+h <= 0 {
			continue
		}
		card := strings.Split(r.renderCard(c, width, h, state.Count), "\n")
		for i, line := range card {
			if y := top + i; y >= 0 && y < rows {
				out[y] = line
			}
		}
	}
	return out
}

func (r *Renderer) renderColumns(state ViewState, width, rows int) []string {
	type placed struct {
		left  int
		w     int
		lines []string
	}
	var cards []placed
	for _, c := range state.Cards {
		w := int(math.Round(c.Size))
		left := int(math.Round(c.Offset - state.Offset))
		if w <= 0 || left >= width || left+w <= 0 {
			continue
		}
		cards = append(cards, placed{left, w, strings.Split(r.renderCard(c, w, rows, state.Count), "\n")})
	}

	out := make([]string, rows)
	for y := range rows {
		var line strings.Builder
		cursor := 0
		for _, p := range cards {
			from := max(0, -p.left)
			to := min(p.w, width-p.left)
			if from >= to {
				continue
			}
			if gap := p.left + from - cursor; gap > 0 {
				line.WriteString(strings.Repeat(" ", gap))
				cursor += gap
			}
			row := ""
			if y < len(p.lines) {
				row = p.lines[y]
			}
			seg := ansi.Cut(row, from, to)
			line.WriteString(seg)
			cursor += to - from
		}
		if cursor < width {
			line.WriteString(strings.Repeat(" ", width-cursor))
		}
		out[y] = line.String()
	}
	return out
}
