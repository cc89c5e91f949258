package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSectionScrolled   EventType = "snap-section-scroll"
	EventSectionsRefreshed EventType = "SectionsRefreshed"
	EventSnapDestroyed     EventType = "SnapDestroyed"
	EventDeckReloaded      EventType = "DeckReloaded"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SectionScrolledEvent is broadcast on every accepted navigation
type SectionScrolledEvent struct {
	Index      int
	IsScrolled bool    // Index > 0
	Progress   float64 // Index / max(1, N-1)
}

func (e SectionScrolledEvent) Type() EventType { return EventSectionScrolled }

// SectionsRefreshedEvent is emitted after the section list was re-queried
type SectionsRefreshedEvent struct {
	Count        int
	CurrentIndex int
}

func (e SectionsRefreshedEvent) Type() EventType { return EventSectionsRefreshed }

// SnapDestroyedEvent is emitted when a controller releases its listeners
type SnapDestroyedEvent struct{}

func (e SnapDestroyedEvent) Type() EventType { return EventSnapDestroyed }

// DeckReloadedEvent is emitted when the deck file was read again
type DeckReloadedEvent struct {
	Path     string
	Sections int
}

func (e DeckReloadedEvent) Type() EventType { return EventDeckReloaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
	Deck string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
