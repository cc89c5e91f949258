package dom

// EventType names a document event
type EventType string

const (
	EventWheel      EventType = "wheel"
	EventTouchStart EventType = "touchstart"
	EventTouchMove  EventType = "touchmove"
	EventTouchEnd   EventType = "touchend"
	EventKeyDown    EventType = "keydown"
)

// Key names delivered with keydown events
const (
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
)

// Event is a single input event travelling through the document
type Event struct {
	Type    EventType
	DeltaY  float64 // wheel: positive scrolls down
	ClientY float64 // touch: vertical position in px
	Key     string  // keydown: key name
	Target  *Element

	defaultPrevented   bool
	propagationStopped bool
	passive            bool
}

// PreventDefault cancels the event's default action.
// Calls from passive listeners are ignored.
func (e *Event) PreventDefault() {
	if e.passive {
		return
	}
	e.defaultPrevented = true
}

// StopPropagation stops the event from reaching further ancestors
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether a listener cancelled the default action
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether a listener stopped bubbling
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Handler handles a dispatched event
type Handler func(*Event)

// ListenerOptions mirrors the options accepted when registering a listener
type ListenerOptions struct {
	Passive bool
}

// EventTarget is anything listeners can be attached to
type EventTarget interface {
	// AddEventListener registers h and returns a function that removes it again
	AddEventListener(eventType EventType, h Handler, opts ListenerOptions) func()
}

type listener struct {
	id      uint64
	handler Handler
	opts    ListenerOptions
}

// listenerSet is embedded by Window and Element
type listenerSet struct {
	nextID  uint64
	entries map[EventType][]listener
}

func (s *listenerSet) AddEventListener(eventType EventType, h Handler, opts ListenerOptions) func() {
	if s.entries == nil {
		s.entries = make(map[EventType][]listener)
	}
	s.nextID++
	id := s.nextID
	s.entries[eventType] = append(s.entries[eventType], listener{id: id, handler: h, opts: opts})

	return func() {
		current := s.entries[eventType]
		for i, l := range current {
			if l.id == id {
				kept := make([]listener, 0, len(current)-1)
				kept = append(kept, current[:i]...)
				s.entries[eventType] = append(kept, current[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns how many listeners are registered for eventType
func (s *listenerSet) ListenerCount(eventType EventType) int {
	return len(s.entries[eventType])
}

func (s *listenerSet) fire(ev *Event) {
	snapshot := append([]listener(nil), s.entries[ev.Type]...)
	for _, l := range snapshot {
		ev.passive = l.opts.Passive
		l.handler(ev)
	}
	ev.passive = false
}

// Window is the top-level event target; every dispatched event ends here unless stopped
type Window struct {
	listenerSet
}
