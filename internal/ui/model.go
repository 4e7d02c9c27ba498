package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"swipedeck/internal/clock"
	"swipedeck/internal/config"
	"swipedeck/internal/domain"
	"swipedeck/internal/eventbus"
	"swipedeck/internal/gesture"
	"swipedeck/internal/navigation"
	"swipedeck/internal/ui/views"
	"swipedeck/internal/virtual"
	"swipedeck/internal/wheel"
)

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	clock     clock.Clock

	deck    *navigation.Service
	virt    *virtual.Virtualizer
	surface *Surface

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	help         help.Model

	width       int
	height      int
	bound       bool
	showHelp    bool
	pointerDown bool
	status      string
	pendingGrow bool
	dirty       bool // config changed at runtime

	// Program reference for timer delivery
	program *tea.Program
}

// NewModel creates a new UI model. configSvc may be nil, in which case
// runtime config changes are not persisted.
func NewModel(bus eventbus.EventBus, cfg *config.Config, configSvc config.ConfigService) *Model {
	return newModel(bus, cfg, configSvc, newTeaClock())
}

func newModel(bus eventbus.EventBus, cfg *config.Config, configSvc config.ConfigService, c clock.Clock) *Model {
	opts := cfg.NavigationOptions()
	count := cfg.UI.ItemCount

	m := &Model{
		bus:       bus,
		config:    cfg,
		configSvc: configSvc,
		clock:     c,
		renderer:  views.NewRenderer(),
		help:      help.New(),
		status:    "Ready",
	}
	m.helpRenderer = NewHelpRenderer(m.renderer.Styles())

	m.surface = NewSurface(c, opts.Timing.Frame, time.Duration(cfg.UI.ScrollDurationMS)*time.Millisecond)
	m.virt = virtual.New(cfg.VirtualOptions(count))
	m.virt.Bind(m.surface)

	m.deck = navigation.NewService(count, opts, navigation.Callbacks{
		OnIndexChange: m.onIndexChange,
		OnEndReached:  m.onEndReached,
	}, c, bus)
	m.deck.BindGeometry(m.virt)
	m.deck.SetFocused(true)

	m.surface.OnScroll = func() {
		m.deck.HandleScroll()
		m.deck.ReportVisibility()
	}
	m.surface.OnScrollEnd = m.deck.HandleScrollEnd
	return m
}

// SetProgram attaches the running program so engine timers are delivered as messages
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if pc, ok := m.clock.(*clock.Posted); ok {
		attachProgram(pc, p.Send)
	}
}

// Deck exposes the navigation core
func (m *Model) Deck() *navigation.Service {
	return m.deck
}

func (m *Model) Init() tea.Cmd {
	m.deck.Init()
	return nil
}

// Update handles a message and applies any deferred feed growth afterwards,
// outside of the navigation callbacks that requested it.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if m.pendingGrow {
		m.pendingGrow = false
		m.grow()
	}
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case timerMsg:
		msg.timer.Fire()
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case quitMsg:
		if msg.saveConfig && m.configSvc != nil {
			if err := m.configSvc.Save(m.config); err != nil {
				log.Printf("Failed to save config: %v", err)
			}
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) horizontal() bool {
	return !m.config.Orientation().IsVertical()
}

// resize propagates the terminal size to the surface and the navigation core
func (m *Model) resize() {
	size := float64(views.DeckSize(m.width, m.height, m.horizontal()))
	m.surface.SetSize(size)
	m.virt.SetContainerSize(size)
	m.surface.SetExtent(m.virt.TotalSize())

	if !m.bound {
		m.bound = true
		m.deck.BindViewport(m.surface)
		return
	}
	m.deck.HandleResize()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		dirty := m.dirty
		return m, func() tea.Msg { return quitMsg{saveConfig: dirty} }
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "esc":
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
	case "m":
		m.config.UI.ReducedMotion = !m.config.UI.ReducedMotion
		m.deck.SetOptions(m.config.NavigationOptions())
		m.dirty = true
		if m.config.UI.ReducedMotion {
			m.status = "Reduced motion on"
		} else {
			m.status = "Reduced motion off"
		}
		return m, nil
	}

	if m.showHelp {
		return m, nil
	}
	m.deck.HandleKey(msg)
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	evt := gesture.PointerEvent{X: float64(msg.X), Y: float64(msg.Y), Button: gesture.PrimaryButton}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.deck.HandleTouchStart()
			m.pointerDown = m.deck.HandlePointerDown(evt)
		case tea.MouseButtonWheelUp:
			m.wheel(0, -1)
		case tea.MouseButtonWheelDown:
			m.wheel(0, 1)
		case tea.MouseButtonWheelLeft:
			m.wheel(-1, 0)
		case tea.MouseButtonWheelRight:
			m.wheel(1, 0)
		}
	case tea.MouseActionMotion:
		if m.pointerDown {
			m.deck.HandlePointerMove(evt)
		}
	case tea.MouseActionRelease:
		if m.pointerDown {
			m.pointerDown = false
			m.deck.HandlePointerUp(evt)
		}
	}
}

// wheel converts one notch into a wheel event. Notches the deck does not
// consume scroll the surface natively along its own axis.
func (m *Model) wheel(dx, dy int) {
	tick := m.config.Wheel.TickDelta
	if m.deck.HandleWheel(wheel.Event{DeltaX: float64(dx) * tick, DeltaY: float64(dy) * tick}) {
		return
	}
	step := dy
	if m.horizontal() {
		step = dx
	}
	if step != 0 {
		m.surface.ScrollBy(float64(step))
	}
}

func (m *Model) onIndexChange(index int, source domain.Source) {
	m.status = fmt.Sprintf("Card %d of %d (%s)", index+1, m.deck.Count(), source)
}

func (m *Model) onEndReached(info domain.EndReachedInfo) {
	if info.Direction != domain.EndForward || m.config.UI.GrowBy <= 0 {
		return
	}
	if limit := m.config.UI.MaxItems; limit > 0 && m.deck.Count() >= limit {
		return
	}
	m.pendingGrow = true
}

// grow appends a page of cards to the feed
func (m *Model) grow() {
	n := m.deck.Count() + m.config.UI.GrowBy
	if limit := m.config.UI.MaxItems; limit > 0 {
		n = min(n, limit)
	}
	if n == m.deck.Count() {
		return
	}
	m.deck.SetItemCount(n)
	m.surface.SetExtent(m.virt.TotalSize())
	log.Printf("Feed grown to %d cards", n)
}

// handleEvent turns bus events into status updates
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.NavigationStalledEvent:
		m.status = fmt.Sprintf("Recovered stalled navigation at card %d after %s", e.Index+1, e.Elapsed.Round(time.Millisecond))
	case eventbus.EndReachedEvent:
		if e.Info.Direction == domain.EndForward {
			m.status = fmt.Sprintf("%d cards left", e.Info.DistanceFromEnd)
		}
	case eventbus.ItemCountChangedEvent:
		m.status = fmt.Sprintf("%d cards", e.Count)
	case eventbus.ConfigSavedEvent:
		m.status = "Config saved to " + e.Path
	}
}

func (m *Model) View() string {
	vp := m.deck.ViewportProps()
	state := m.deck.State()

	var cards []views.CardState
	for _, p := range m.deck.RenderedItems() {
		ctx, err := m.deck.ItemContext(p.Index)
		if err != nil {
			log.Printf("View: %v", err)
			continue
		}
		cards = append(cards, views.CardState{
			Index:   ctx.Index,
			Key:     ctx.Props.Key,
			Offset:  ctx.Props.Offset,
			Size:    ctx.Props.Size,
			Active:  ctx.IsActive,
			Preload: ctx.ShouldPreload,
		})
	}

	vs := views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Horizontal: !vp.Orientation.IsVertical(),
		Label:      vp.AriaLabel,
		Index:      state.Index,
		Count:      m.deck.Count(),
		Animating:  vp.AriaBusy,
		Snap:       m.surface.Snap(),
		Offset:     m.surface.ScrollOffset(),
		Cards:      cards,
		Status:     m.status,
		ShowHelp:   m.showHelp,
	}
	if m.config.UI.ShowHelp {
		vs.HelpLine = m.help.View(m.deck.KeyBindings()) + " • ? help • q quit"
	}
	if m.showHelp {
		vs.HelpBody = m.helpRenderer.renderHelpContent(m.deck.KeyBindings(), vs.Horizontal, m.height)
	}
	return m.renderer.Render(vs)
}
