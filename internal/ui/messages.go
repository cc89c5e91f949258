package ui

import (
	"time"

	"snapdeck/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// DeckChangedMsg asks the UI to reload the deck file
type DeckChangedMsg struct{}

// tickMsg is sent on a timer so lock releases show up without input
type tickMsg time.Time

// pagerMsg contains the result of running the pager
type pagerMsg struct {
	err error
}
