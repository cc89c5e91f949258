package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"snapdeck/internal/config"
	"snapdeck/internal/deck"
	"snapdeck/internal/domain"
	"snapdeck/internal/eventbus"
	"snapdeck/internal/ui"
)

// Run loads the configuration and deck and runs the terminal UI until it quits
func Run(ctx context.Context, o *RootOptions, deckPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Set up logging
	if o.LogFile != "" {
		logFile, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create event bus
	bus := eventbus.New()

	configSvc := config.NewConfigServiceWithBus(o.ConfigPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return fmt.Errorf("load config %s: %w", configSvc.Path(), err)
	}
	log.Printf("Loaded config from %s", configSvc.Path())

	if deckPath == "" {
		deckPath = cfg.Deck
	}
	d, err := loadDeck(deckPath)
	if err != nil {
		return err
	}

	uiModel := ui.NewModel(bus, cfg, d, deckPath)
	defer uiModel.Close()

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
	for _, t := range []eventbus.EventType{eventbus.EventError, eventbus.EventConfigSaved} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	// Start forwarding events to UI in background
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

	if deckPath != "" && cfg.UISettings.WatchDeck && !o.NoWatch {
		watchDeck(ctx, bus, p, deckPath)
	}

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

func loadDeck(path string) (*domain.Deck, error) {
	if path == "" {
		return deck.Default(), nil
	}
	d, err := deck.Load(path)
	if err != nil {
		log.Printf("Deck: %v", err)
		return nil, fmt.Errorf("load deck %s: %w", path, err)
	}
	log.Printf("Deck: loaded %d sections from %s", len(d.Sections), path)
	return d, nil
}

// watchDeck forwards file changes to the UI as reload requests
func watchDeck(ctx context.Context, bus eventbus.EventBus, p *tea.Program, path string) {
	reloads, err := deck.Watch(ctx, path)
	if err != nil {
		log.Printf("Deck: not watching %s: %v", path, err)
		bus.Publish(domain.ErrorEvent{Message: "deck watch disabled", Err: err})
		return
	}

	go func() {
		for range reloads {
			p.Send(ui.DeckChangedMsg{})
		}
	}()
}
