package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"snapdeck/internal/deck"
	"snapdeck/internal/domain"
	"snapdeck/internal/ui/views"
)

// Default terminal size until the first WindowSizeMsg arrives
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// panelPadding matches the horizontal padding and border of the body panel
const panelPadding = 5

func (m *Model) cellHeight() float64 {
	if h := m.config.UISettings.CellHeight; h > 0 {
		return h
	}
	return 16
}

func (m *Model) wheelTickDelta() float64 {
	if d := m.config.UISettings.WheelTickDelta; d > 0 {
		return d
	}
	return 40
}

func (m *Model) contentWidth() int {
	return max(10, m.width-panelPadding)
}

// sectionContent is the text shown for s in the body viewport
func (m *Model) sectionContent(s domain.Section) string {
	return m.renderer.SectionContent(s.Title, wordwrap.String(s.Body, m.contentWidth()))
}

// layoutSections gives every section element its scroll geometry: the body
// panel is its client height and the wrapped content its scroll height.
func (m *Model) layoutSections() {
	rows := views.BodyHeight(m.height)
	cell := m.cellHeight()

	for _, el := range m.container.QuerySelectorAll("." + deck.SectionClass) {
		s, ok := deck.Lookup(m.deck, el.ID)
		if !ok {
			continue
		}
		lines := lipgloss.Height(m.sectionContent(s))
		el.ClientHeight = float64(rows) * cell
		el.ScrollHeight = float64(max(lines, rows)) * cell
		el.SetScrollTop(el.ScrollTop)
	}

	m.viewport.Width = m.contentWidth()
	m.viewport.Height = rows
	m.bar.Width = max(10, m.width/3)
}

// syncViewport shows the active section at its scroll offset
func (m *Model) syncViewport() {
	el := m.activeElement()
	if el == nil {
		m.viewport.SetContent("")
		return
	}
	s, _ := deck.Lookup(m.deck, el.ID)
	m.viewport.SetContent(m.sectionContent(s))
	m.viewport.SetYOffset(int(math.Ceil(el.ScrollTop / m.cellHeight())))
}
