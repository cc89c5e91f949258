package ui

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"snapdeck/internal/config"
	"snapdeck/internal/deck"
	"snapdeck/internal/dom"
	"snapdeck/internal/domain"
	"snapdeck/internal/eventbus"
	"snapdeck/internal/snap"
	"snapdeck/internal/ui/views"
)

// E2EEnv makes the status line carry a readiness marker for PTY tests
const E2EEnv = "SNAPDECK_E2E_TEST"

// Model hosts a deck document in the terminal and feeds it input
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	deck     *domain.Deck
	deckPath string

	doc       *dom.Document
	container *dom.Element
	snap      *snap.Controller
	snapOpts  []snap.Option
	subs      []func()

	// UI-specific state
	width    int
	height   int
	keys     keyMap
	help     help.Model
	bar      progress.Model
	viewport viewport.Model
	renderer *views.Renderer
	touching bool

	lastScroll    domain.SectionScrolledEvent
	progress      float64
	statusMessage string
	statusIsError bool
	readyMarker   bool

	pager   *PagerOps
	program *tea.Program
}

// NewModel builds the deck document and attaches a snap controller to it.
// extra options are applied after the configured ones.
func NewModel(bus eventbus.EventBus, cfg *config.Config, d *domain.Deck, deckPath string, extra ...snap.Option) *Model {
	if d == nil {
		d = deck.Default()
	}

	m := &Model{
		bus:         bus,
		config:      cfg,
		deck:        d,
		deckPath:    deckPath,
		doc:         dom.NewDocument(),
		width:       defaultWidth,
		height:      defaultHeight,
		keys:        newKeyMap(),
		help:        help.New(),
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		viewport:    viewport.New(defaultWidth, views.BodyHeight(defaultHeight)),
		renderer:    views.NewRenderer(),
		readyMarker: os.Getenv(E2EEnv) == "1",
		pager:       NewPagerOps(nil),
	}
	m.help.ShowAll = cfg.UISettings.ShowHelp
	m.container = deck.Build(m.doc, d)

	m.snapOpts = append(cfg.SnapOptions(), snap.WithBus(bus), snap.WithOnScroll(m.onScroll))
	m.snapOpts = append(m.snapOpts, extra...)

	m.subs = append(m.subs,
		bus.Subscribe(eventbus.EventSectionScrolled, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SectionScrolledEvent); ok {
				m.lastScroll = ev
			}
		}),
		bus.Subscribe(eventbus.EventSectionsRefreshed, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SectionsRefreshedEvent); ok {
				// a refresh can move the index without a navigation
				m.lastScroll = domain.SectionScrolledEvent{
					Index:      ev.CurrentIndex,
					IsScrolled: ev.CurrentIndex > 0,
					Progress:   float64(ev.CurrentIndex) / float64(max(1, ev.Count-1)),
				}
				m.progress = m.lastScroll.Progress
			}
		}),
	)

	m.layoutSections()
	m.attach()
	return m
}

// attach creates a fresh controller over the document
func (m *Model) attach() {
	m.snap = snap.New(m.doc, m.snapOpts...)
	if err := m.snap.Err(); err != nil {
		m.setStatus(err.Error(), true)
	}
	m.syncViewport()
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Controller exposes the active snap controller
func (m *Model) Controller() *snap.Controller {
	return m.snap
}

// Document exposes the hosted document
func (m *Model) Document() *dom.Document {
	return m.doc
}

// Close drops the model's bus subscriptions and detaches the controller
func (m *Model) Close() {
	for _, unsubscribe := range m.subs {
		unsubscribe()
	}
	m.subs = nil
	m.snap.Destroy()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layoutSections()
		m.syncViewport()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case DeckChangedMsg:
		log.Printf("Deck: %s changed on disk", m.deckPath)
		m.reloadDeck()

	case EventMsg:
		m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			m.setStatus(fmt.Sprintf("pager: %v", msg.err), true)
		}

	case tickMsg:
		// lock releases happen off the update loop; the tick repaints them
		return m, tick()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.doc.DispatchKey(dom.KeyArrowUp)
	case key.Matches(msg, m.keys.Down):
		m.doc.DispatchKey(dom.KeyArrowDown)
	case key.Matches(msg, m.keys.First):
		m.snap.GoToSection(0)
	case key.Matches(msg, m.keys.Last):
		m.snap.GoToSection(len(m.snap.Sections()) - 1)
	case key.Matches(msg, m.keys.Jump):
		m.snap.GoToSection(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Reload):
		m.reloadDeck()
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSnap()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Pager):
		return m.openPager()
	}
	m.syncViewport()
	return nil
}

// handleMouse turns wheel notches into wheel events and left-button drags
// into touch events on the active section
func (m *Model) handleMouse(msg tea.MouseMsg) {
	target := m.activeElement()
	if target == nil {
		target = m.container
	}
	clientY := float64(msg.Y) * m.cellHeight()

	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		m.doc.DispatchWheel(target, m.wheelTickDelta())
	case msg.Button == tea.MouseButtonWheelUp:
		m.doc.DispatchWheel(target, -m.wheelTickDelta())
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.touching = true
		m.doc.DispatchTouch(target, dom.EventTouchStart, clientY)
	case msg.Action == tea.MouseActionMotion && m.touching:
		m.doc.DispatchTouch(target, dom.EventTouchMove, clientY)
	case msg.Action == tea.MouseActionRelease && m.touching:
		m.touching = false
		m.doc.DispatchTouch(target, dom.EventTouchEnd, clientY)
	default:
		return
	}
	m.syncViewport()
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.ErrorEvent:
		m.setStatus(ev.Message, true)
	case eventbus.DeckReloadedEvent:
		m.setStatus(fmt.Sprintf("deck reloaded (%d sections)", ev.Sections), false)
	case eventbus.ConfigSavedEvent:
		m.setStatus("config saved to "+ev.Path, false)
	}
}

// toggleSnap destroys the controller, or attaches a new one when it is off
func (m *Model) toggleSnap() {
	if m.snap.Listening() {
		m.snap.Destroy()
		m.setStatus("snapping disabled", false)
		return
	}
	m.attach()
	if m.snap.Err() == nil {
		m.setStatus("snapping enabled", false)
	}
}

// reloadDeck rereads the deck file, rebuilds the sections and refreshes the
// controller in place
func (m *Model) reloadDeck() {
	d := deck.Default()
	if m.deckPath != "" {
		loaded, err := deck.Load(m.deckPath)
		if err != nil {
			log.Printf("Deck: reload of %s failed: %v", m.deckPath, err)
			m.setStatus(fmt.Sprintf("reload failed: %v", err), true)
			m.bus.Publish(domain.ErrorEvent{Message: "deck reload failed", Err: err})
			return
		}
		d = loaded
	}

	m.deck = d
	deck.Rebuild(m.doc, m.container, d)
	m.layoutSections()
	m.snap.Refresh()
	m.syncViewport()

	m.setStatus(fmt.Sprintf("deck reloaded (%d sections)", len(d.Sections)), false)
	m.bus.Publish(domain.DeckReloadedEvent{Path: m.deckPath, Sections: len(d.Sections)})
}

func (m *Model) openPager() tea.Cmd {
	el := m.activeElement()
	if el == nil {
		return nil
	}
	s, _ := deck.Lookup(m.deck, el.ID)
	return m.pager.showInPager(s.Title + "\n\n" + s.Body)
}

func (m *Model) onScroll(data domain.ScrollData) {
	m.progress = data.Progress
}

// activeElement is the section shown in the body
func (m *Model) activeElement() *dom.Element {
	if el := m.snap.CurrentSection(); el != nil {
		return el
	}
	// an inert controller never found the sections
	return m.container.QuerySelector("." + deck.SectionClass)
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMessage = msg
	m.statusIsError = isError
}

// View renders the UI
func (m *Model) View() string {
	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		DeckTitle:     m.deck.Title,
		Background:    m.deck.Background,
		Body:          m.viewport.View(),
		ProgressBar:   m.bar.ViewAs(m.progress),
		IsScrolled:    m.lastScroll.IsScrolled,
		Listening:     m.snap.Listening(),
		Animating:     m.snap.IsAnimating(),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		ReadyMarker:   m.readyMarker,
		HelpModel:     m.help,
		Keys:          m.keys,
	}

	active := m.activeElement()
	for _, el := range m.container.QuerySelectorAll("." + deck.SectionClass) {
		s, _ := deck.Lookup(m.deck, el.ID)
		state.Dots = append(state.Dots, views.Dot{
			Title:  s.Title,
			Active: el.HasClass(m.snap.Options().ActiveClass),
			Prev:   el.HasClass(m.snap.Options().PrevClass),
		})
		if el == active {
			state.Color = s.Color
			state.Transparent = s.Transparent
		}
	}

	return m.renderer.Render(state)
}
