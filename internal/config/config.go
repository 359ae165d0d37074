package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/termfolio/internal/theme"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: TERMFOLIO_SERVER__PORT sets server.port.
const EnvPrefix = "TERMFOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TERMFOLIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Site.Title == "" {
		return fmt.Errorf("site.title is required")
	}
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid site.base_url %q: must be an absolute http(s) URL", c.Site.BaseURL)
	}

	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.SessionTTL < 0 {
		return fmt.Errorf("server.session_ttl must be non-negative")
	}

	if c.Desk.MaxTiles < 0 || c.Desk.MaxTiles == 1 {
		return fmt.Errorf("desk.max_tiles must be 0 (unbounded) or at least 2")
	}
	if c.Desk.MasterRatio <= 0 || c.Desk.MasterRatio >= 1 {
		return fmt.Errorf("desk.master_ratio %v must be between 0 and 1", c.Desk.MasterRatio)
	}
	if c.Desk.Gutter < 0 {
		return fmt.Errorf("desk.gutter must be non-negative")
	}
	if c.Desk.Breakpoint <= 0 {
		return fmt.Errorf("desk.breakpoint must be positive")
	}
	if c.Desk.HistorySize < 0 {
		return fmt.Errorf("desk.history_size must be non-negative")
	}
	if _, err := c.Desk.DefaultContent(); err != nil {
		return fmt.Errorf("invalid desk.default_kind: %w", err)
	}

	if _, ok := theme.ParsePreset(c.Theme.Preset); !ok {
		return fmt.Errorf("invalid theme.preset %q", c.Theme.Preset)
	}
	if _, ok := theme.ParseAccent(c.Theme.Accent); !ok {
		return fmt.Errorf("invalid theme.accent %q", c.Theme.Accent)
	}
	if _, ok := theme.ParseBackground(c.Theme.Background); !ok {
		return fmt.Errorf("invalid theme.background %q", c.Theme.Background)
	}

	if c.TUI.BreakpointCols <= 0 {
		return fmt.Errorf("tui.breakpoint_cols must be positive")
	}

	if c.Build.OutputDir == "" {
		return fmt.Errorf("build.output_dir is required")
	}

	return nil
}

// DefaultContent is the tile opened by the spawn key. Kinds that need a
// slug are rejected.
func (d DeskConfig) DefaultContent() (tile.Content, error) {
	if d.DefaultKind == "" {
		return tile.About{}, nil
	}
	return tile.Parse(d.DefaultKind, "")
}

// DefaultTheme converts the theme section. Names are normalised; call
// Validate first to reject unknown ones.
func (t ThemeConfig) DefaultTheme() theme.State {
	p, _ := theme.ParsePreset(t.Preset)
	a, _ := theme.ParseAccent(t.Accent)
	b, _ := theme.ParseBackground(t.Background)
	return theme.State{Preset: p, Accent: a, Background: b}
}
