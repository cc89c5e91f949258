package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"snapdeck/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSectionScrolled   = domain.EventSectionScrolled
	EventSectionsRefreshed = domain.EventSectionsRefreshed
	EventSnapDestroyed     = domain.EventSnapDestroyed
	EventDeckReloaded      = domain.EventDeckReloaded
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// Re-export domain event types
type SectionScrolledEvent = domain.SectionScrolledEvent
type SectionsRefreshedEvent = domain.SectionsRefreshedEvent
type SnapDestroyedEvent = domain.SnapDestroyedEvent
type DeckReloadedEvent = domain.DeckReloadedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Publish delivers to every subscriber before it returns.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventSectionScrolled:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	// Copy to avoid holding the lock while handlers run; a handler may subscribe or publish
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	handlersCopy := make([]EventHandler, len(subs))
	for i, s := range subs {
		handlersCopy[i] = s.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlersCopy {
		b.call(handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					kept := make([]subscription, 0, len(subs)-1)
					kept = append(kept, subs[:i]...)
					b.handlers[eventType] = append(kept, subs[i+1:]...)
					break
				}
			}
		})
	}
}
