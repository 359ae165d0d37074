package config

import "time"

// Config is the top-level termfolio configuration, corresponding to
// .termfolio.yml.
type Config struct {
	Site    SiteConfig    `yaml:"site" koanf:"site"`
	Content ContentConfig `yaml:"content" koanf:"content"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Desk    DeskConfig    `yaml:"desk" koanf:"desk"`
	Theme   ThemeConfig   `yaml:"theme" koanf:"theme"`
	TUI     TUIConfig     `yaml:"tui" koanf:"tui"`
	Build   BuildConfig   `yaml:"build" koanf:"build"`
}

// SiteConfig is the metadata shared by feeds and page titles.
type SiteConfig struct {
	Title       string `yaml:"title" koanf:"title"`
	Description string `yaml:"description" koanf:"description"`
	BaseURL     string `yaml:"base_url" koanf:"base_url"`
	Author      string `yaml:"author" koanf:"author"`
	Language    string `yaml:"language" koanf:"language"`
}

// ContentConfig locates the markdown sources.
type ContentConfig struct {
	Dir       string   `yaml:"dir" koanf:"dir"`
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`
	AudioBase string   `yaml:"audio_base" koanf:"audio_base"` // URL or directory holding <slug>.mp3
}

// ServerConfig holds HTTP settings for termfolio serve.
type ServerConfig struct {
	Port             int           `yaml:"port" koanf:"port"`
	AllowAllOrigins  bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RevalidateSecret string        `yaml:"revalidate_secret" koanf:"revalidate_secret"`
	DBPath           string        `yaml:"db_path" koanf:"db_path"`
	SessionTTL       time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
}

// DeskConfig tunes the tiling desk.
type DeskConfig struct {
	MaxTiles    int     `yaml:"max_tiles" koanf:"max_tiles"`
	MasterRatio float64 `yaml:"master_ratio" koanf:"master_ratio"`
	Gutter      int     `yaml:"gutter" koanf:"gutter"`
	Breakpoint  int     `yaml:"breakpoint" koanf:"breakpoint"` // px
	DefaultKind string  `yaml:"default_kind" koanf:"default_kind"`
	HistorySize int     `yaml:"history_size" koanf:"history_size"`
}

// ThemeConfig is the theme used when a visitor has stored none.
type ThemeConfig struct {
	Preset     string `yaml:"preset" koanf:"preset"`
	Accent     string `yaml:"accent" koanf:"accent"`
	Background string `yaml:"background" koanf:"background"`
}

// TUIConfig holds terminal front-end settings.
type TUIConfig struct {
	BreakpointCols int    `yaml:"breakpoint_cols" koanf:"breakpoint_cols"`
	StateDir       string `yaml:"state_dir" koanf:"state_dir"` // empty means the user config dir
}

// BuildConfig holds settings for termfolio build.
type BuildConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
}
