package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	DotActive     lipgloss.Style
	DotPrev       lipgloss.Style
	DotPlain      lipgloss.Style
	Panel         lipgloss.Style
	SectionTitle  lipgloss.Style
	Scroll        lipgloss.Style
	Scrolled      lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:      lipgloss.NewStyle().Faint(true),
		DotActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		DotPrev:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		DotPlain:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Padding(0, 2),
		SectionTitle:  lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scrolled:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
	}
}

// MarkerStyle picks the dot style for a section from its snap markers
func (s *Styles) MarkerStyle(active, prev bool) lipgloss.Style {
	switch {
	case active:
		return s.DotActive
	case prev:
		return s.DotPrev
	default:
		return s.DotPlain
	}
}
