package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"snapdeck/internal/eventbus"
	"snapdeck/internal/snap"
)

// Config represents the application configuration
type Config struct {
	Version    int          `toml:"version"`
	Deck       string       `toml:"deck"` // deck file; empty uses the built-in deck
	Snap       SnapSettings `toml:"snap"`
	UISettings UISettings   `toml:"ui"`
}

// SnapSettings mirrors the controller options; durations are milliseconds
type SnapSettings struct {
	Container              string  `toml:"container"`
	SectionSelector        string  `toml:"section_selector"`
	ActiveClass            string  `toml:"active_class"`
	PrevClass              string  `toml:"prev_class"`
	Keyboard               bool    `toml:"keyboard"`
	ScrollTimeoutMS        int     `toml:"scroll_timeout_ms"`
	TouchThreshold         float64 `toml:"touch_threshold"`
	WheelDeltaThreshold    float64 `toml:"wheel_delta_threshold"`
	WheelGestureEndDelayMS int     `toml:"wheel_gesture_end_delay_ms"`
}

// UISettings represents terminal-host configuration
type UISettings struct {
	CellHeight     float64 `toml:"cell_height"`      // px per terminal row
	WheelTickDelta float64 `toml:"wheel_tick_delta"` // px per wheel notch
	ShowHelp       bool    `toml:"show_help"`
	WatchDeck      bool    `toml:"watch_deck"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/snapdeck/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "snapdeck", "config.toml")
}

// NewConfigService creates a config service reading the default location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigServiceAt(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Deck: cfg.Deck})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Resolve the deck relative to the config file
	if cfg.Deck != "" && !filepath.IsAbs(cfg.Deck) {
		cfg.Deck = filepath.Join(filepath.Dir(path), cfg.Deck)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	d := snap.DefaultOptions()
	return &Config{
		Version: 1,
		Snap: SnapSettings{
			Container:              d.Container,
			SectionSelector:        d.SectionSelector,
			ActiveClass:            d.ActiveClass,
			PrevClass:              d.PrevClass,
			Keyboard:               d.Keyboard,
			ScrollTimeoutMS:        int(d.ScrollTimeout / time.Millisecond),
			TouchThreshold:         d.TouchThreshold,
			WheelDeltaThreshold:    d.WheelDeltaThreshold,
			WheelGestureEndDelayMS: int(d.WheelGestureEndDelay / time.Millisecond),
		},
		UISettings: UISettings{
			CellHeight:     16,
			WheelTickDelta: 40,
			ShowHelp:       false,
			WatchDeck:      true,
		},
	}
}

// SnapOptions converts the file settings into controller options
func (c *Config) SnapOptions() []snap.Option {
	s := c.Snap
	return []snap.Option{
		snap.WithContainer(s.Container),
		snap.WithSectionSelector(s.SectionSelector),
		snap.WithActiveClass(s.ActiveClass),
		snap.WithPrevClass(s.PrevClass),
		snap.WithKeyboard(s.Keyboard),
		snap.WithScrollTimeout(time.Duration(s.ScrollTimeoutMS) * time.Millisecond),
		snap.WithTouchThreshold(s.TouchThreshold),
		snap.WithWheelDeltaThreshold(s.WheelDeltaThreshold),
		snap.WithWheelGestureEndDelay(time.Duration(s.WheelGestureEndDelayMS) * time.Millisecond),
	}
}
