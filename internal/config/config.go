package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"storysnap/internal/domain"
	"storysnap/internal/engine"
	"storysnap/internal/feed"
	"storysnap/internal/geometry"
	"storysnap/internal/registry"
)

// FileName is the config file looked up in the working directory
const FileName = ".storysnap.toml"

// Config represents the application configuration
type Config struct {
	Version        int                        `toml:"version"`
	ViewportHeight float64                    `toml:"viewport_height"` // px the synthetic page is laid out for
	HeaderHeight   float64                    `toml:"header_height"`
	MobileMaxWidth int                        `toml:"mobile_max_width"` // columns; wider terminals disable snapping, 0 = always on
	PixelsPerRow   float64                    `toml:"pixels_per_row"`
	Engine         EngineSettings             `toml:"engine"`
	Sections       map[string]SectionSettings `toml:"sections"`
	Toggles        []ToggleSettings           `toml:"toggles"`
	Layout         []BlockSettings            `toml:"layout"`
}

// EngineSettings are the engine tunables. Zero values take defaults.
type EngineSettings struct {
	SettleDelay      Duration `toml:"settle_delay"`
	TouchSettleDelay Duration `toml:"touch_settle_delay"`
	Cooldown         Duration `toml:"cooldown"`
	SnapDuration     Duration `toml:"snap_duration"`
	VelocityCeiling  float64  `toml:"velocity_ceiling"` // px/ms
	Epsilon          float64  `toml:"epsilon"`          // px
	ExclusionRatio   float64  `toml:"exclusion_ratio"`
	DefaultThreshold float64  `toml:"default_threshold"`
	FPS              int      `toml:"fps"`
}

// SectionSettings is a per-section override; unset fields inherit
type SectionSettings struct {
	Threshold    *float64 `toml:"threshold,omitempty"`
	AnchorOffset *float64 `toml:"anchor_offset,omitempty"`
	DisableSnap  *bool    `toml:"disable_snap,omitempty"`
}

// BadgeToggle is the default toggle for the expanded welcome badge
const BadgeToggle = "badge-expanded"

// ToggleSettings defines an external feed toggle. The offset it substitutes
// is anchor_ratio * viewport height + anchor_offset.
type ToggleSettings struct {
	Name         string  `toml:"name"`
	Section      string  `toml:"section"`
	AnchorRatio  float64 `toml:"anchor_ratio,omitempty"`
	AnchorOffset float64 `toml:"anchor_offset"`
	On           bool    `toml:"on"`
}

// Offset returns the anchor offset for a viewport of height vh
func (t ToggleSettings) Offset(vh float64) float64 {
	return t.AnchorRatio*vh + t.AnchorOffset
}

// BlockSettings is one section of the synthetic page
type BlockSettings struct {
	ID          string  `toml:"id"`
	Title       string  `toml:"title,omitempty"`
	Height      float64 `toml:"height"`
	DisableSnap bool    `toml:"disable_snap,omitempty"`
}

// Duration is a time.Duration written as a string such as "150ms"
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the user config directory
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
		filePath: filepath.Join(configDir, "storysnap", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service bound to one file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Load loads the configuration from file, or the defaults if there is none
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Missing fields keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
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

// Parse decodes TOML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	// A file that declares its own layout replaces the default page
	cfg.Layout = nil
	cfg.Toggles = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Layout) == 0 {
		cfg.Layout = DefaultConfig().Layout
	}
	if cfg.Sections == nil {
		cfg.Sections = make(map[string]SectionSettings)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the engine meaningless
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport_height must be positive, got %v", c.ViewportHeight)
	}
	if c.PixelsPerRow <= 0 {
		return fmt.Errorf("pixels_per_row must be positive, got %v", c.PixelsPerRow)
	}
	if r := c.Engine.ExclusionRatio; r < 0 || r >= 1 {
		return fmt.Errorf("exclusion_ratio must be in [0,1), got %v", r)
	}
	seen := make(map[string]bool, len(c.Layout))
	for i, b := range c.Layout {
		if b.ID == "" {
			return fmt.Errorf("layout block %d has no id", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("layout block id %q is not unique", b.ID)
		}
		seen[b.ID] = true
		if b.Height <= 0 || math.IsInf(b.Height, 0) {
			return fmt.Errorf("layout block %q must have a positive height", b.ID)
		}
	}
	for _, t := range c.Toggles {
		if t.Name == "" || t.Section == "" {
			return fmt.Errorf("toggle needs a name and a section")
		}
		if t.AnchorRatio < 0 || math.IsInf(t.AnchorRatio, 0) || math.IsNaN(t.AnchorRatio) {
			return fmt.Errorf("toggle %q: anchor_ratio must not be negative", t.Name)
		}
	}
	return nil
}

// EngineOptions converts the config into engine options. Per-section
// settings are merged field by field over the built-in section defaults.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	if d := c.Engine.SettleDelay.Duration; d > 0 {
		opts.SettleDelay = d
	}
	if d := c.Engine.TouchSettleDelay.Duration; d > 0 {
		opts.TouchSettleDelay = d
	}
	if d := c.Engine.Cooldown.Duration; d > 0 {
		opts.Cooldown = d
	}
	if d := c.Engine.SnapDuration.Duration; d > 0 {
		opts.SnapDuration = d
	}
	if v := c.Engine.VelocityCeiling; v > 0 {
		opts.Snap.VelocityCeiling = v
	}
	if v := c.Engine.Epsilon; v > 0 {
		opts.Snap.Epsilon = v
	}
	if v := c.Engine.ExclusionRatio; v > 0 {
		opts.Snap.ExclusionRatio = v
	}
	if v := c.Engine.DefaultThreshold; v > 0 {
		opts.Registry.Default.Threshold = v
	}
	if c.Engine.FPS > 0 {
		opts.FPS = c.Engine.FPS
	}

	sections := registry.DefaultSections(c.ViewportHeight, c.HeaderHeight)
	for id, s := range c.Sections {
		merged := sections[id]
		if s.Threshold != nil {
			merged.Threshold = s.Threshold
		}
		if s.AnchorOffset != nil {
			merged.AnchorOffset = s.AnchorOffset
		}
		if s.DisableSnap != nil {
			merged.DisableSnap = s.DisableSnap
		}
		sections[id] = merged
	}
	opts.Registry.Sections = sections
	return opts
}

// Feed builds the external config feed from the toggles
func (c *Config) Feed() *feed.Feed {
	f := feed.New()
	c.DefineToggles(f)
	for _, t := range c.Toggles {
		if t.On {
			f.Set(t.Name, true)
		}
	}
	return f
}

// DefineToggles (re)defines the toggles on f for the config's viewport
// height. Toggle on/off states are kept.
func (c *Config) DefineToggles(f *feed.Feed) {
	for _, t := range c.Toggles {
		f.Define(feed.Toggle{Name: t.Name, SectionID: t.Section, AnchorOffset: t.Offset(c.ViewportHeight)})
	}
}

// NewLayout builds the synthetic page described by the layout blocks
func (c *Config) NewLayout() *geometry.Layout {
	blocks := make([]geometry.Block, 0, len(c.Layout))
	for _, b := range c.Layout {
		block := geometry.Block{ID: b.ID, Height: b.Height}
		if b.DisableSnap {
			disabled := true
			block.Declared = &domain.SnapOverride{DisableSnap: &disabled}
		}
		blocks = append(blocks, block)
	}
	return geometry.NewLayout(c.ViewportHeight, blocks...)
}

// Title returns the display title of a layout block
func (c *Config) Title(id string) string {
	for _, b := range c.Layout {
		if b.ID == id && b.Title != "" {
			return b.Title
		}
	}
	return id
}

// DefaultConfig returns the default configuration: the mobile landing
// page with its self-managing services carousel.
func DefaultConfig() *Config {
	const vh = 800.0
	return &Config{
		Version:        1,
		ViewportHeight: vh,
		HeaderHeight:   registry.HeaderHeight,
		MobileMaxWidth: 100,
		PixelsPerRow:   40,
		Engine: EngineSettings{
			SettleDelay:      Duration{engine.DefaultSettleDelay},
			TouchSettleDelay: Duration{engine.DefaultTouchSettleDelay},
			Cooldown:         Duration{700 * time.Millisecond},
			SnapDuration:     Duration{400 * time.Millisecond},
			VelocityCeiling:  2,
			Epsilon:          5,
			ExclusionRatio:   0.4,
			DefaultThreshold: registry.DefaultThreshold,
			FPS:              60,
		},
		Sections: make(map[string]SectionSettings),
		Toggles: []ToggleSettings{
			{Name: BadgeToggle, Section: "welcome", AnchorRatio: 0.12, AnchorOffset: 120},
		},
		Layout: []BlockSettings{
			{ID: "hero", Title: "Hero", Height: 800},
			{ID: "welcome", Title: "Welcome", Height: 960},
			{ID: "founder", Title: "A letter from the founder", Height: 1120},
			{ID: "services", Title: "Services", Height: 2400, DisableSnap: true},
			{ID: "team", Title: "Meet the team", Height: 1040},
			{ID: "instagram", Title: "Gallery", Height: 880},
			{ID: "reviews", Title: "Reviews", Height: 1000},
			{ID: "faq", Title: "FAQ", Height: 1600},
			{ID: "map", Title: "Find us", Height: 800},
			{ID: "footer", Title: "Footer", Height: 480},
		},
	}
}
