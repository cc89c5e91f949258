package deck

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"snapdeck/internal/domain"
	"snapdeck/internal/dom"
)

// ErrNoSections is returned when a deck file defines no sections
var ErrNoSections = errors.New("deck has no sections")

// Class names and ids used for the generated page
const (
	ContainerID      = "page"
	ContainerClass   = "sr-cont"
	SectionClass     = "sr-sec"
	BackgroundClass  = "sr-bg"
	TransparentClass = "sr-transparent"
)

// Load reads a deck file
func Load(path string) (*domain.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML deck and fills in missing section ids
func Parse(data []byte) (*domain.Deck, error) {
	var d domain.Deck
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}
	if len(d.Sections) == 0 {
		return nil, ErrNoSections
	}
	normalize(&d)
	return &d, nil
}

func normalize(d *domain.Deck) {
	seen := make(map[string]bool, len(d.Sections))
	for i := range d.Sections {
		id := d.Sections[i].ID
		if id == "" || seen[id] {
			id = "section-" + strconv.Itoa(i+1)
		}
		seen[id] = true
		d.Sections[i].ID = id
	}
}

// Default is the built-in deck: five coloured placeholders, the second one
// transparent over a fixed background
func Default() *domain.Deck {
	d := &domain.Deck{
		Title:      "snapdeck",
		Background: "#0891b2",
		Sections: []domain.Section{
			{ID: "one", Title: "Section 01", Color: "#f43f5e", Body: "Scroll, swipe or press ↓ to snap to the next section."},
			{ID: "two", Title: "Section 02", Transparent: true},
			{ID: "three", Title: "Section 03", Color: "#15803d", Body: "Each wheel gesture moves exactly one section."},
			{ID: "four", Title: "Section 04", Color: "#14b8a6", Body: "Long sections scroll on their own before the next snap."},
			{ID: "five", Title: "Section 05", Color: "#10b981", Body: "This is the last section; there is no wraparound."},
		},
	}
	normalize(d)
	return d
}

// Build creates <main id="page" class="sr-cont"> with a fixed background and one
// <section class="sr-sec"> per deck section, and attaches it to the body
func Build(doc *dom.Document, d *domain.Deck) *dom.Element {
	container := doc.CreateElement("main")
	container.ID = ContainerID
	container.AddClass(ContainerClass)
	doc.Body().AppendChild(container)

	Rebuild(doc, container, d)
	return container
}

// Rebuild replaces the container's children with elements for d.
// Callers refresh the snap controller afterwards.
func Rebuild(doc *dom.Document, container *dom.Element, d *domain.Deck) {
	bg := doc.CreateElement("div")
	bg.AddClass(BackgroundClass)

	children := []*dom.Element{bg}
	for _, s := range d.Sections {
		el := doc.CreateElement("section")
		el.ID = s.ID
		el.AddClass(SectionClass)
		if s.Transparent {
			el.AddClass(TransparentClass)
		}
		children = append(children, el)
	}
	container.ReplaceChildren(children...)
}

// Lookup finds a deck section by id
func Lookup(d *domain.Deck, id string) (domain.Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Section{}, false
}
