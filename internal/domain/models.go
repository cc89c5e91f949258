package domain

// Deck is an ordered set of full-screen sections
type Deck struct {
	Title      string    `toml:"title"`
	Background string    `toml:"background"` // colour shown behind transparent sections
	Sections   []Section `toml:"sections"`
}

// Section represents one full-viewport content block
type Section struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Body        string `toml:"body"`
	Color       string `toml:"color"` // lipgloss colour (ANSI index or hex)
	Transparent bool   `toml:"transparent"`
}

// ScrollData is the payload handed to a direct navigation callback
type ScrollData struct {
	Index    int
	Progress float64
}
