// Package feed renders the machine-readable documents built from the content
// library: RSS 2.0, JSON Feed 1.1 and an XML sitemap.
package feed

import (
	"slices"
	"strings"
	"time"

	"github.com/ziadkadry99/termfolio/internal/content"
)

// CacheControl is sent with every feed and sitemap response.
const CacheControl = "public, max-age=3600, s-maxage=3600"

// Meta describes the channel as a whole.
type Meta struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// Item is one entry shared by the RSS and JSON renderers.
type Item struct {
	ID          string
	URL         string
	Title       string
	Summary     string
	ContentHTML string
	Published   time.Time
	Modified    time.Time
	Tags        []string
	Image       string
	Series      string
}

// Items converts posts into feed items ordered by descending publish date.
// Posts published on the same instant keep their input order.
func Items(posts []content.Post, baseURL string) []Item {
	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		link := absolute(baseURL, p.URL)
		items = append(items, Item{
			ID:          link,
			URL:         link,
			Title:       p.Title,
			Summary:     p.Summary,
			ContentHTML: string(p.Body),
			Published:   p.Date,
			Modified:    p.Modified(),
			Tags:        p.Tags,
			Image:       absolute(baseURL, p.Cover),
			Series:      p.Series,
		})
	}
	slices.SortStableFunc(items, func(a, b Item) int { return b.Published.Compare(a.Published) })
	return items
}

// absolute resolves site-relative paths against base. Empty paths and
// already-absolute URLs are returned unchanged.
func absolute(base, p string) string {
	if p == "" || strings.Contains(p, "://") {
		return p
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

func latest(items []Item) time.Time {
	var t time.Time
	for _, it := range items {
		if m := it.Modified; m.After(t) {
			t = m
		}
		if it.Published.After(t) {
			t = it.Published
		}
	}
	return t
}
