package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/ziadkadry99/termfolio/internal/content"
)

// URL is one sitemap entry.
type URL struct {
	Loc      string
	Modified time.Time
	Priority float64
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

// SitemapURLs lists the desk, every post and every project.
func SitemapURLs(src content.Source, baseURL string) []URL {
	posts := src.Posts()
	projects := src.Projects()

	var newest time.Time
	for _, p := range posts {
		if m := p.Modified(); m.After(newest) {
			newest = m
		}
	}

	urls := []URL{{Loc: absolute(baseURL, "/"), Modified: newest, Priority: 1}}
	for _, p := range posts {
		urls = append(urls, URL{Loc: absolute(baseURL, p.URL), Modified: p.Modified(), Priority: 0.8})
	}
	for _, p := range projects {
		urls = append(urls, URL{Loc: absolute(baseURL, p.URL), Modified: p.Date, Priority: 0.6})
	}
	return urls
}

// WriteSitemap writes a sitemaps.org urlset.
func WriteSitemap(w io.Writer, urls []URL) error {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, u := range urls {
		su := sitemapURL{Loc: u.Loc}
		if !u.Modified.IsZero() {
			su.LastMod = u.Modified.UTC().Format("2006-01-02")
		}
		if u.Priority > 0 {
			su.Priority = fmt.Sprintf("%.1f", u.Priority)
		}
		set.URLs = append(set.URLs, su)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encoding sitemap: %w", err)
	}
	return nil
}
