package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"swipedeck/internal/eventbus"
)

// ErrConfigNotFound is returned when an explicit config path does not exist
var ErrConfigNotFound = errors.New("config file not found")

// FileName is the config file name inside the user config directory
const FileName = "swipedeck.toml"

// Config represents the application configuration
type Config struct {
	Version    int                `toml:"version"`
	Deck       DeckSettings       `toml:"deck"`
	Gesture    GestureSettings    `toml:"gesture"`
	Wheel      WheelSettings      `toml:"wheel"`
	Keyboard   KeyboardSettings   `toml:"keyboard"`
	Visibility VisibilitySettings `toml:"visibility"`
	Virtual    VirtualSettings    `toml:"virtual"`
	UI         UISettings         `toml:"ui"`
}

// DeckSettings shape the deck itself
type DeckSettings struct {
	Orientation         string `toml:"orientation"`
	Direction           string `toml:"direction"`
	Loop                bool   `toml:"loop"`
	DefaultIndex        int    `toml:"default_index"`
	Preload             int    `toml:"preload"`
	PreloadPrevious     int    `toml:"preload_previous"`
	EndReachedThreshold int    `toml:"end_reached_threshold"`
	AriaLabel           string `toml:"aria_label"`
	Element             string `toml:"element"`
}

// GestureSettings configure pointer drags
type GestureSettings struct {
	Threshold            float64 `toml:"threshold"`
	FlickVelocity        float64 `toml:"flick_velocity"`
	LockAxis             bool    `toml:"lock_axis"`
	IgnoreWhileAnimating bool    `toml:"ignore_while_animating"`
}

// WheelSettings configure wheel paging
type WheelSettings struct {
	DiscretePaging bool    `toml:"discrete_paging"`
	Threshold      float64 `toml:"threshold"`
	DebounceMS     int     `toml:"debounce_ms"`
	CooldownMS     int     `toml:"cooldown_ms"`
	// TickDelta is the delta reported for one terminal wheel notch
	TickDelta float64 `toml:"tick_delta"`
}

// KeyboardSettings configure key bindings. Empty lists use the orientation defaults.
type KeyboardSettings struct {
	Enabled bool     `toml:"enabled"`
	Global  bool     `toml:"global"`
	Prev    []string `toml:"prev,omitempty"`
	Next    []string `toml:"next,omitempty"`
	First   []string `toml:"first,omitempty"`
	Last    []string `toml:"last,omitempty"`
	AltPrev []string `toml:"alt_prev,omitempty"`
	AltNext []string `toml:"alt_next,omitempty"`
}

// VisibilitySettings select how the active item is detected
type VisibilitySettings struct {
	Strategy          string  `toml:"strategy"`
	IntersectionRatio float64 `toml:"intersection_ratio"`
	DebounceMS        int     `toml:"debounce_ms"`
}

// VirtualSettings configure the virtualizer
type VirtualSettings struct {
	Overscan      int     `toml:"overscan"`
	EstimatedSize float64 `toml:"estimated_size"`
}

// UISettings represents UI-related configuration. GrowBy cards are appended
// whenever the end of the feed comes near; 0 keeps the feed fixed.
type UISettings struct {
	ItemCount        int  `toml:"item_count"`
	GrowBy           int  `toml:"grow_by"`
	MaxItems         int  `toml:"max_items"`
	ShowHelp         bool `toml:"show_help"`
	ReducedMotion    bool `toml:"reduced_motion"`
	ScrollDurationMS int  `toml:"scroll_duration_ms"`
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

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "swipedeck", FileName),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// NewConfigServiceAt creates a config service for an explicit file. bus may be nil.
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus, filePath: path}
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrConfigNotFound) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
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

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

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

// Parse decodes TOML over the defaults
func Parse(source string, data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Deck: DeckSettings{
			Orientation:         "vertical",
			Direction:           "ltr",
			EndReachedThreshold: 3,
			AriaLabel:           "Swipe feed",
			Element:             "div",
		},
		Gesture: GestureSettings{
			Threshold:            10,
			FlickVelocity:        0.1,
			LockAxis:             true,
			IgnoreWhileAnimating: true,
		},
		Wheel: WheelSettings{
			DiscretePaging: true,
			Threshold:      100,
			DebounceMS:     120,
			CooldownMS:     800,
			TickDelta:      120,
		},
		Keyboard: KeyboardSettings{
			Enabled: true,
		},
		Visibility: VisibilitySettings{
			Strategy:          "position",
			IntersectionRatio: 0.6,
			DebounceMS:        100,
		},
		Virtual: VirtualSettings{
			Overscan: 5,
		},
		UI: UISettings{
			ItemCount:        50,
			GrowBy:           25,
			MaxItems:         1000,
			ShowHelp:         true,
			ScrollDurationMS: 240,
		},
	}
}
