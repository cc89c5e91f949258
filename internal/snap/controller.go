package snap

import (
	"log"
	"math"
	"sync"

	"snapdeck/internal/domain"
	"snapdeck/internal/dom"
	"snapdeck/internal/eventbus"
)

// listenerConfig describes one input listener the controller owns
type listenerConfig struct {
	target  dom.EventTarget
	event   dom.EventType
	handler dom.Handler
	opts    dom.ListenerOptions
}

// Controller snaps a container's viewport to exactly one section at a time.
//
// Document mutation happens on the caller's goroutine (the host's event loop).
// Timer callbacks only touch controller state, which is guarded by mu.
type Controller struct {
	mu sync.Mutex

	opts      Options
	doc       *dom.Document
	bus       eventbus.EventBus
	container *dom.Element
	sections  []*dom.Element

	currentIndex int
	lock         *Lock
	touchStartY  *float64

	wheelGesture    Timer
	wheelGestureGen uint64

	listeners []listenerConfig
	removers  []func()

	err error
}

// New creates a controller over doc. A missing container is logged and leaves
// the controller inert; inspect Err to find out.
func New(doc *dom.Document, opts ...Option) *Controller {
	o := NewOptions(opts...)
	c := &Controller{
		opts: o,
		doc:  doc,
		bus:  o.Bus,
		lock: NewLock(o.Scheduler),
	}
	if c.bus == nil {
		c.bus = eventbus.New()
	}

	if err := c.findAndValidateContainer(); err != nil {
		log.Printf("SnapController: %v", err)
		c.err = err
		return c
	}

	c.listeners = c.defineListeners()
	c.init()
	return c
}

func (c *Controller) findAndValidateContainer() error {
	container := c.opts.ContainerElement
	if container == nil && c.doc != nil {
		container = c.doc.QuerySelector(c.opts.Container)
	}
	if container == nil {
		return &ContainerNotFoundError{Selector: c.opts.Container}
	}
	c.container = container

	c.container.SetStyle("height", "100dvh")
	c.container.SetStyle("overflow", "hidden")
	c.container.SetStyle("position", "relative")
	return nil
}

func (c *Controller) defineListeners() []listenerConfig {
	var ls []listenerConfig
	if c.opts.Keyboard && c.doc != nil {
		ls = append(ls, listenerConfig{target: c.doc.Window(), event: dom.EventKeyDown, handler: c.onKeyDown})
	}
	return append(ls,
		listenerConfig{target: c.container, event: dom.EventWheel, handler: c.onWheel},
		listenerConfig{target: c.container, event: dom.EventTouchStart, handler: c.onTouchStart, opts: dom.ListenerOptions{Passive: true}},
		listenerConfig{target: c.container, event: dom.EventTouchEnd, handler: c.onTouchEnd, opts: dom.ListenerOptions{Passive: true}},
	)
}

func (c *Controller) init() {
	c.Refresh()

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sections) > 0 {
		c.toggleEventListeners(true)
	}
}

// toggleEventListeners must be called with mu held
func (c *Controller) toggleEventListeners(add bool) {
	if !add {
		for _, remove := range c.removers {
			remove()
		}
		c.removers = nil
		return
	}
	if len(c.removers) > 0 {
		return
	}
	for _, l := range c.listeners {
		c.removers = append(c.removers, l.target.AddEventListener(l.event, l.handler, l.opts))
	}
}

// Refresh re-queries the container for sections and reapplies the markers
func (c *Controller) Refresh() {
	c.mu.Lock()
	if c.container == nil {
		c.mu.Unlock()
		return
	}
	c.sections = c.container.QuerySelectorAll(c.opts.SectionSelector)
	if c.currentIndex >= len(c.sections) {
		c.currentIndex = max(0, len(c.sections)-1)
	}
	c.updateActiveElements()
	ev := domain.SectionsRefreshedEvent{Count: len(c.sections), CurrentIndex: c.currentIndex}
	c.mu.Unlock()

	c.bus.Publish(ev)
}

// Destroy unregisters every listener and strips the markers. Safe to call repeatedly.
func (c *Controller) Destroy() {
	c.mu.Lock()
	wasActive := len(c.removers) > 0
	c.toggleEventListeners(false)
	for _, sec := range c.sections {
		sec.SetStyle("transform", "")
		sec.SetStyle("opacity", "")
		sec.RemoveClass(c.opts.ActiveClass, c.opts.PrevClass)
	}
	c.listeners = nil
	c.mu.Unlock()

	if wasActive {
		c.bus.Publish(domain.SnapDestroyedEvent{})
	}
}

// Next moves to the following section
func (c *Controller) Next() {
	c.advance(1)
}

// Prev moves to the preceding section
func (c *Controller) Prev() {
	c.advance(-1)
}

func (c *Controller) advance(step int) {
	c.mu.Lock()
	detail, ok := c.goToSectionLocked(c.currentIndex + step)
	c.mu.Unlock()
	if ok {
		c.notify(detail)
	}
}

// GoToSection snaps to index. It is a no-op while a snap is in flight or when
// index is out of range.
func (c *Controller) GoToSection(index int) {
	c.mu.Lock()
	detail, ok := c.goToSectionLocked(index)
	c.mu.Unlock()
	if ok {
		c.notify(detail)
	}
}

func (c *Controller) goToSectionLocked(index int) (domain.SectionScrolledEvent, bool) {
	if c.lock.Held() || index < 0 || index >= len(c.sections) {
		return domain.SectionScrolledEvent{}, false
	}

	c.currentIndex = index
	c.updateActiveElements()
	c.lock.Acquire(c.opts.ScrollTimeout)

	return domain.SectionScrolledEvent{
		Index:      c.currentIndex,
		IsScrolled: c.currentIndex > 0,
		Progress:   c.progressLocked(),
	}, true
}

func (c *Controller) notify(detail domain.SectionScrolledEvent) {
	c.bus.Publish(detail)
	if c.opts.OnScroll != nil {
		c.opts.OnScroll(domain.ScrollData{Index: detail.Index, Progress: detail.Progress})
	}
}

// updateActiveElements must be called with mu held
func (c *Controller) updateActiveElements() {
	for i, sec := range c.sections {
		sec.RemoveClass(c.opts.ActiveClass, c.opts.PrevClass)
		if i != c.currentIndex {
			sec.ScrollTop = 0
		}
		if i == c.currentIndex {
			sec.AddClass(c.opts.ActiveClass)
		}
		if i < c.currentIndex {
			sec.AddClass(c.opts.PrevClass)
		}
	}
}

func (c *Controller) progressLocked() float64 {
	return float64(c.currentIndex) / math.Max(1, float64(len(c.sections)-1))
}

// OnSectionScroll subscribes h to the snap-section-scroll broadcast
func (c *Controller) OnSectionScroll(h func(domain.SectionScrolledEvent)) func() {
	return c.bus.Subscribe(domain.EventSectionScrolled, func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.SectionScrolledEvent); ok {
			h(ev)
		}
	})
}

// CurrentIndex returns the active section index
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// CurrentSection returns the active section, or nil when there are none
func (c *Controller) CurrentSection() *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentSectionLocked()
}

func (c *Controller) currentSectionLocked() *dom.Element {
	if c.currentIndex < 0 || c.currentIndex >= len(c.sections) {
		return nil
	}
	return c.sections[c.currentIndex]
}

// Sections returns the section list captured at the last refresh
func (c *Controller) Sections() []*dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*dom.Element(nil), c.sections...)
}

// Progress returns index / max(1, N-1)
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressLocked()
}

// IsAnimating reports whether a snap is in flight
func (c *Controller) IsAnimating() bool {
	return c.lock.Held()
}

// Listening reports whether input listeners are registered
func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.removers) > 0
}

// Container returns the resolved container, or nil for an inert controller
func (c *Controller) Container() *dom.Element {
	return c.container
}

// Options returns the controller's configuration
func (c *Controller) Options() Options {
	return c.opts
}

// Err returns the construction error, if any
func (c *Controller) Err() error {
	return c.err
}
