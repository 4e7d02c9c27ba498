package tcellui

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"swipedeck/internal/clock"
	"swipedeck/internal/config"
	"swipedeck/internal/domain"
	"swipedeck/internal/eventbus"
	"swipedeck/internal/navigation"
	"swipedeck/internal/ui"
	"swipedeck/internal/virtual"
)

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.PaletteColor(99)).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.PaletteColor(241))
	cardStyle   = tcell.StyleDefault.Foreground(tcell.PaletteColor(241))
	activeStyle = tcell.StyleDefault.Foreground(tcell.PaletteColor(99)).Bold(true)
)

// Host runs a deck on a tcell screen
type Host struct {
	screen  tcell.Screen
	config  *config.Config
	clock   clock.Clock
	deck    *navigation.Service
	virt    *virtual.Virtualizer
	surface *ui.Surface
	mouse   *Mouse

	width, height int
	bound         bool
	status        string
	quit          bool
}

// NewHost creates a host for screen. The screen is initialized by Run.
func NewHost(screen tcell.Screen, cfg *config.Config, bus eventbus.EventBus) *Host {
	c := clock.NewPosted(func(t *clock.PostedTimer) {
		if err := screen.PostEvent(tcell.NewEventInterrupt(t)); err != nil {
			log.Printf("tcellui: dropping timer: %v", err)
		}
	})
	return newHost(screen, cfg, bus, c)
}

func newHost(screen tcell.Screen, cfg *config.Config, bus eventbus.EventBus, c clock.Clock) *Host {
	opts := cfg.NavigationOptions()
	count := cfg.UI.ItemCount

	h := &Host{screen: screen, config: cfg, clock: c, status: "Ready"}
	h.surface = ui.NewSurface(c, opts.Timing.Frame, time.Duration(cfg.UI.ScrollDurationMS)*time.Millisecond)
	h.virt = virtual.New(cfg.VirtualOptions(count))
	h.virt.Bind(h.surface)

	h.deck = navigation.NewService(count, opts, navigation.Callbacks{
		OnIndexChange: func(index int, source domain.Source) {
			h.status = fmt.Sprintf("Card %d of %d (%s)", index+1, h.deck.Count(), source)
		},
	}, c, bus)
	h.deck.BindGeometry(h.virt)
	h.deck.SetFocused(true)

	h.surface.OnScroll = func() {
		h.deck.HandleScroll()
		h.deck.ReportVisibility()
	}
	h.surface.OnScrollEnd = h.deck.HandleScrollEnd

	h.mouse = NewMouse(h.deck, cfg.Wheel.TickDelta)
	h.mouse.Unconsumed = func(dx, dy int) {
		step := dy
		if !h.vertical() {
			step = dx
		}
		if step != 0 {
			h.surface.ScrollBy(float64(step))
		}
	}
	return h
}

// Deck exposes the navigation core
func (h *Host) Deck() *navigation.Service {
	return h.deck
}

// quitSignal is posted to the event loop when the run context ends
type quitSignal struct{}

// Run initializes the screen and processes events until the user quits or
// ctx is cancelled
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return err
	}
	defer h.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			if err := h.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{})); err != nil {
				log.Printf("tcellui: could not post quit: %v", err)
			}
		case <-done:
		}
	}()

	h.start()
	for !h.quit {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		h.handle(ev)
		h.draw()
	}
	return nil
}

func (h *Host) start() {
	h.screen.EnableMouse()
	h.deck.Init()
	h.resize(h.screen.Size())
	h.draw()
}

func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case *clock.PostedTimer:
			data.Fire()
		case quitSignal:
			log.Printf("tcellui: context done, quitting")
			h.quit = true
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize(ev.Size())
	case *tcell.EventKey:
		name := KeyName(ev)
		switch name {
		case "q", "esc", "ctrl+c":
			h.quit = true
			return
		}
		h.deck.HandleKey(name)
	case *tcell.EventMouse:
		h.mouse.Handle(ev)
	}
}

func (h *Host) vertical() bool {
	return h.config.Orientation().IsVertical()
}

// resize lays the deck out between the title and status rows
func (h *Host) resize(width, height int) {
	h.width, h.height = width, height
	size := float64(max(height-2, 1))
	if !h.vertical() {
		size = float64(max(width, 1))
	}
	h.surface.SetSize(size)
	h.virt.SetContainerSize(size)
	h.surface.SetExtent(h.virt.TotalSize())

	if !h.bound {
		h.bound = true
		h.deck.BindViewport(h.surface)
		return
	}
	h.deck.HandleResize()
}

func (h *Host) draw() {
	h.screen.Clear()

	title := "swipedeck"
	if n := h.deck.Count(); n > 0 {
		title += fmt.Sprintf("  %d/%d", h.deck.Index()+1, n)
	}
	if h.deck.IsAnimating() {
		title += "  moving"
	}
	h.put(0, 0, title, titleStyle, h.width)

	offset := h.surface.ScrollOffset()
	for _, p := range h.deck.RenderedItems() {
		pos := int(math.Round(p.Offset - offset))
		size := int(math.Round(p.Size))
		if h.vertical() {
			h.drawCard(p, 0, 1+pos, h.width, size)
		} else {
			h.drawCard(p, pos, 1, size, h.height-2)
		}
	}

	h.put(0, h.height-1, h.status, statusStyle, h.width)
	h.screen.Show()
}

// inDeck reports whether a cell lies in the rows reserved for cards
func (h *Host) inDeck(x, y int) bool {
	return x >= 0 && x < h.width && y >= 1 && y < h.height-1
}

func (h *Host) drawCard(p navigation.ItemProps, x, y, w, ht int) {
	if w < 2 || ht < 2 {
		return
	}
	style := cardStyle
	if p.Active {
		style = activeStyle
	}
	set := func(cx, cy int, r rune) {
		if h.inDeck(cx, cy) {
			h.screen.SetContent(cx, cy, r, nil, style)
		}
	}

	right, bottom := x+w-1, y+ht-1
	for cx := x + 1; cx < right; cx++ {
		set(cx, y, tcell.RuneHLine)
		set(cx, bottom, tcell.RuneHLine)
	}
	for cy := y + 1; cy < bottom; cy++ {
		set(x, cy, tcell.RuneVLine)
		set(right, cy, tcell.RuneVLine)
	}
	set(x, y, tcell.RuneULCorner)
	set(right, y, tcell.RuneURCorner)
	set(x, bottom, tcell.RuneLLCorner)
	set(right, bottom, tcell.RuneLRCorner)

	label := fmt.Sprintf("Card %d of %d", p.Index+1, h.deck.Count())
	inner := w - 2
	lx := x + 1 + max((inner-uniseg.StringWidth(label))/2, 0)
	ly := y + ht/2
	if p.Active {
		h.putClipped(lx, ly, label, style, x+1+inner)
	} else {
		h.putClipped(lx, ly, label, statusStyle, x+1+inner)
	}
}

// put writes s at (x, y) one grapheme cluster per cell run, stopping at
// column limit. Clipped writes skip cells outside the deck area.
func (h *Host) put(x, y int, s string, style tcell.Style, limit int) {
	h.print(x, y, s, style, limit, false)
}

func (h *Host) putClipped(x, y int, s string, style tcell.Style, limit int) {
	h.print(x, y, s, style, limit, true)
}

func (h *Host) print(x, y int, s string, style tcell.Style, limit int, clip bool) {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		width := max(uniseg.StringWidth(cluster), 1)
		if x+width > limit {
			return
		}
		if !clip || h.inDeck(x, y) {
			runes := gr.Runes()
			h.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += width
	}
}
