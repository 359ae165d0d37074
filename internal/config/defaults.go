package config

import "time"

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".termfolio.yml"

// DefaultInclude and DefaultExclude are the content globs used when the
// config names none.
var (
	DefaultInclude = []string{"**/*.md"}
	DefaultExclude = []string{"drafts/**", "**/drafts/**", "_*.md"}
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:       "termfolio",
			Description: "Posts and projects",
			BaseURL:     "http://localhost:8080",
			Language:    "en",
		},
		Content: ContentConfig{
			Dir:     "content",
			Include: DefaultInclude,
			Exclude: DefaultExclude,
		},
		Server: ServerConfig{
			Port:       8080,
			DBPath:     ".termfolio/termfolio.db",
			SessionTTL: 30 * time.Minute,
		},
		Desk: DeskConfig{
			MaxTiles:    8,
			MasterRatio: 0.5,
			Gutter:      12,
			Breakpoint:  1024,
			DefaultKind: "about",
			HistorySize: 16,
		},
		Theme: ThemeConfig{
			Preset:     "night",
			Accent:     "mauve",
			Background: "none",
		},
		TUI: TUIConfig{
			BreakpointCols: 100,
		},
		Build: BuildConfig{
			OutputDir: "public",
		},
	}
}
