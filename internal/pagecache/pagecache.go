// Package pagecache keeps the rendered output of cacheable paths (feeds,
// sitemap, detail pages) and regenerates them on demand.
package pagecache

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by a RenderFunc for paths it does not serve.
var ErrNotFound = errors.New("page not found")

// Entry is one rendered page.
type Entry struct {
	Body        []byte
	ContentType string
	Generated   time.Time
}

// RenderFunc produces the output for a cleaned path.
type RenderFunc func(ctx context.Context, path string) (Entry, error)

// Reloader refreshes the data pages are rendered from. *content.Library
// satisfies it.
type Reloader interface {
	Reload() error
}

// Stats reports cache effectiveness.
type Stats struct {
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
}

// Cache is safe for concurrent use.
type Cache struct {
	render RenderFunc
	source Reloader
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]Entry
	hits    int
	misses  int
}

// New creates a cache. source may be nil when there is nothing to reload.
func New(render RenderFunc, source Reloader) *Cache {
	return &Cache{
		render:  render,
		source:  source,
		now:     time.Now,
		entries: map[string]Entry{},
	}
}

// Clean normalises a request path: leading slash, no trailing slash, no dot
// segments.
func Clean(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Get returns the cached entry for p, rendering it on a miss.
func (c *Cache) Get(ctx context.Context, p string) (Entry, error) {
	p = Clean(p)

	c.mu.Lock()
	e, ok := c.entries[p]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
	if ok {
		return e, nil
	}

	e, err := c.generate(ctx, p)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Revalidate reloads the underlying data and regenerates p. A path the
// renderer does not serve is simply dropped from the cache. On failure the
// previous entry is kept. Revalidating "/" drops every entry, since every
// page is rendered from the same content; they regenerate lazily.
func (c *Cache) Revalidate(ctx context.Context, p string) error {
	p = Clean(p)

	if c.source != nil {
		if err := c.source.Reload(); err != nil {
			return fmt.Errorf("reloading content: %w", err)
		}
	}
	if p == "/" {
		c.Purge()
		log.Debug("page cache purged")
		return nil
	}

	_, err := c.generate(ctx, p)
	switch {
	case errors.Is(err, ErrNotFound):
		c.Invalidate(p)
		return nil
	case err != nil:
		return err
	}
	log.Debug("page regenerated", "path", p)
	return nil
}

func (c *Cache) generate(ctx context.Context, p string) (Entry, error) {
	e, err := c.render(ctx, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("rendering %s: %w", p, err)
	}
	if e.Generated.IsZero() {
		e.Generated = c.now()
	}

	c.mu.Lock()
	c.entries[p] = e
	c.mu.Unlock()
	return e, nil
}

// Invalidate drops p without regenerating it.
func (c *Cache) Invalidate(p string) {
	c.mu.Lock()
	delete(c.entries, Clean(p))
	c.mu.Unlock()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = map[string]Entry{}
	c.mu.Unlock()
}

// Paths lists the cached paths in sorted order.
func (c *Cache) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	paths := make([]string, 0, len(c.entries))
	for p := range c.entries {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
