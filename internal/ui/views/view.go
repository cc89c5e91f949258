package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Fixed rows around the section body
const (
	HeaderRows = 2
	FooterRows = 3
)

// Dot is one entry of the section indicator in the header
type Dot struct {
	Title  string
	Active bool
	Prev   bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	DeckTitle string
	Dots      []Dot

	// Body is the active section's viewport output
	Body        string
	Color       string
	Background  string
	Transparent bool

	ProgressBar   string
	IsScrolled    bool
	Listening     bool
	Animating     bool
	StatusMessage string
	StatusIsError bool
	ReadyMarker   bool

	HelpModel help.Model
	Keys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n")
	content.WriteString(r.renderBody(state))
	content.WriteString("\n")
	content.WriteString(r.renderFooter(state))

	return content.String()
}

func (r *Renderer) renderHeader(state ViewState) string {
	title := r.styles.Title.Render(state.DeckTitle)

	dots := make([]string, 0, len(state.Dots))
	for _, d := range state.Dots {
		glyph := "○"
		if d.Active {
			glyph = "●"
		}
		dots = append(dots, r.styles.MarkerStyle(d.Active, d.Prev).Render(glyph))
	}

	line := title + "  " + strings.Join(dots, " ")
	if len(state.Dots) == 0 {
		line = title + "  " + r.styles.StatusWarning.Render("no sections")
	}
	return lipgloss.NewStyle().MaxWidth(state.Width).Render(line) + "\n"
}

// BodyHeight is the number of rows available to the active section
func BodyHeight(height int) int {
	return max(1, height-HeaderRows-FooterRows)
}

func (r *Renderer) renderBody(state ViewState) string {
	height := BodyHeight(state.Height)
	panel := r.styles.Panel.
		Width(state.Width).
		Height(height).
		MaxHeight(height)

	switch {
	case state.Transparent && state.Background != "":
		// the fixed background shows through
		panel = panel.Background(lipgloss.Color(state.Background))
	case state.Color != "":
		panel = panel.BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(state.Color))
	}
	return panel.Render(state.Body)
}

func (r *Renderer) renderFooter(state ViewState) string {
	var status []string
	if state.IsScrolled {
		status = append(status, r.styles.Scrolled.Render("scrolled"))
	}
	if !state.Listening {
		status = append(status, r.styles.StatusWarning.Render("snap off"))
	} else if state.Animating {
		status = append(status, r.styles.Dim.Render("snapping"))
	}
	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		status = append(status, style.Render(state.StatusMessage))
	}
	if state.ReadyMarker {
		status = append(status, "__READY__")
	}

	footer := state.ProgressBar + "  " + strings.Join(status, " · ")
	if state.Keys != nil {
		footer += "\n" + r.styles.Help.Render(state.HelpModel.View(state.Keys))
	}
	return footer
}

// SectionContent renders a section's title and wrapped body for the viewport
func (r *Renderer) SectionContent(title, body string) string {
	if title == "" {
		return body
	}
	return fmt.Sprintf("%s\n%s", r.styles.SectionTitle.Render(title), body)
}
