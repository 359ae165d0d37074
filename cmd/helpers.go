package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ziadkadry99/termfolio/internal/config"
	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/feed"
	"github.com/ziadkadry99/termfolio/internal/geometry"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `termfolio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openContent loads the content directory named by the config.
func openContent(cfg *config.Config) (*content.Library, error) {
	lib, err := content.Open(content.Options{
		Dir:     cfg.Content.Dir,
		Include: cfg.Content.Include,
		Exclude: cfg.Content.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", cfg.Content.Dir, err)
	}
	log.Debug("content loaded", "dir", cfg.Content.Dir, "posts", len(lib.Posts()), "projects", len(lib.Projects()))
	return lib, nil
}

// deskOptions builds desk options for a front-end whose breakpoint and
// gutter are in its own units (pixels or cells).
func deskOptions(cfg *config.Config, breakpoint, gutter int) desk.Options {
	def, _ := cfg.Desk.DefaultContent() // checked by Validate
	return desk.Options{
		MaxTiles: cfg.Desk.MaxTiles,
		Tiling: geometry.Options{
			MasterRatio: cfg.Desk.MasterRatio,
			Gutter:      gutter,
		},
		Breakpoint:  breakpoint,
		Default:     def,
		HistorySize: cfg.Desk.HistorySize,
		Theme:       cfg.Theme.DefaultTheme(),
	}
}

func feedMeta(cfg *config.Config) feed.Meta {
	return feed.Meta{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
		Author:      cfg.Site.Author,
		Language:    cfg.Site.Language,
	}
}
