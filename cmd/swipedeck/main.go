package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"swipedeck/internal/config"
	"swipedeck/internal/eventbus"
	"swipedeck/internal/tcellui"
	"swipedeck/internal/ui"
)

func main() {
	var (
		configPath  string
		items       int
		orientation string
		useTcell    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config directory)")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.IntVar(&items, "items", 0, "Number of cards in the deck (overrides ui.item_count)")
	flag.StringVar(&orientation, "orientation", "", "Paging axis, vertical or horizontal (overrides deck.orientation)")
	flag.BoolVar(&useTcell, "tcell", false, "Draw with tcell directly instead of Bubble Tea")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("swipedeck.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(bus)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if items > 0 {
		cfg.UI.ItemCount = items
	}
	if orientation != "" {
		cfg.Deck.Orientation = orientation
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}
	log.Printf("Starting swipedeck with %d cards (%s)", cfg.UI.ItemCount, cfg.Deck.Orientation)

	if useTcell {
		if err := runTcell(ctx, cfg, bus); err != nil {
			log.Printf("Error running tcell host: %v", err)
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
			os.Exit(1)
		}
		return
	}

	uiModel := ui.NewModel(bus, cfg, configSvc)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventNavigationStalled,
		eventbus.EventEndReached,
		eventbus.EventItemCountChanged,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, forward)
	}

	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

func runTcell(ctx context.Context, cfg *config.Config, bus eventbus.EventBus) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	return tcellui.NewHost(screen, cfg, bus).Run(ctx)
}
