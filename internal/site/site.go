// Package site renders the portfolio over HTTP: the per-visitor desk, the
// cacheable detail pages and feeds, and the per-visitor theme stylesheet.
package site

import (
	"fmt"
	"html/template"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/feed"
	"github.com/ziadkadry99/termfolio/internal/layout"
	"github.com/ziadkadry99/termfolio/internal/pagecache"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// Options wires a Site to its collaborators.
type Options struct {
	Meta    feed.Meta
	Content content.Source
	// Reloader refreshes Content on revalidation. Nil disables reloading.
	Reloader   pagecache.Reloader
	Desks      *desk.Manager
	Audio      *content.AudioProber
	Breakpoint int
}

// Site holds the parsed templates and the page cache.
type Site struct {
	meta       feed.Meta
	content    content.Source
	desks      *desk.Manager
	audio      *content.AudioProber
	breakpoint int

	pages *template.Template // desk, detail and not-found pages
	tiles *template.Template // tile bodies
	cache *pagecache.Cache
}

// New parses the templates and creates the page cache.
func New(opts Options) (*Site, error) {
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = layout.DefaultBreakpoint
	}
	if opts.Meta.Language == "" {
		opts.Meta.Language = "en"
	}
	s := &Site{
		meta:       opts.Meta,
		content:    opts.Content,
		desks:      opts.Desks,
		audio:      opts.Audio,
		breakpoint: opts.Breakpoint,
	}

	funcs := template.FuncMap{
		"date":      func(t time.Time) string { return t.Format("2006-01-02") },
		"iso":       func(t time.Time) string { return t.Format(time.RFC3339) },
		"spawnPost": func(p content.Post) spawnLink { return spawnLink{Kind: tile.KindPost, Data: p.Slug, Label: p.Title} },
		"spawnProject": func(p content.Project) spawnLink {
			return spawnLink{Kind: tile.KindProject, Data: p.Slug, Label: p.Title}
		},
	}

	var err error
	s.tiles, err = template.New("tiles").Funcs(funcs).Parse(tileTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing tile templates: %w", err)
	}
	s.pages = template.New("pages").Funcs(funcs)
	for name, src := range map[string]string{
		"layout":    layoutTemplate,
		"desk":      deskTemplate,
		"detail":    detailTemplate,
		"not-found": notFoundTemplate,
	} {
		if _, err := s.pages.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
	}

	s.cache = pagecache.New(s.Render, opts.Reloader)
	return s, nil
}

// Pages returns the cache of rendered detail pages and feeds.
func (s *Site) Pages() *pagecache.Cache { return s.cache }

// RegisterRoutes mounts every page of the site on r, including the desk API.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/rss.xml", s.handleCached)
	r.Get("/feed.json", s.handleCached)
	r.Get("/sitemap.xml", s.handleCached)
	r.Get("/static/style.css", s.handleStatic("text/css; charset=utf-8", cssContent))
	r.Get("/static/desk.js", s.handleStatic("text/javascript; charset=utf-8", jsContent))
	r.Get("/api/search", s.handleSearch)
	if s.audio.Local() {
		r.Get(content.AudioRoute+"{file}", s.handleAudio)
	}

	r.Group(func(r chi.Router) {
		r.Use(desk.Visitors)
		r.Get("/", s.handleDesk)
		r.Get("/blog/{slug}", s.handleCached)
		r.Get("/projects/{slug}", s.handleCached)
		r.Get("/theme.css", s.handleThemeCSS)
		r.NotFound(s.handleNotFound)
		(&desk.API{Desks: s.desks, Exists: s.Exists}).RegisterRoutes(r)
	})
}

// Exists reports whether c refers to content the site can show.
func (s *Site) Exists(c tile.Content) bool {
	switch v := c.(type) {
	case tile.Post:
		_, ok := s.content.Post(v.Slug)
		return ok
	case tile.Project:
		_, ok := s.content.Project(v.Slug)
		return ok
	default:
		return true
	}
}
