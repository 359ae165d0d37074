package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

const jsonFeedVersion = "https://jsonfeed.org/version/1.1"

type jsonFeed struct {
	Version     string       `json:"version"`
	Title       string       `json:"title"`
	HomePageURL string       `json:"home_page_url,omitempty"`
	FeedURL     string       `json:"feed_url,omitempty"`
	Description string       `json:"description,omitempty"`
	Language    string       `json:"language,omitempty"`
	Authors     []jsonAuthor `json:"authors,omitempty"`
	Items       []jsonItem   `json:"items"`
}

type jsonAuthor struct {
	Name string `json:"name"`
}

type jsonItem struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary,omitempty"`
	ContentHTML   string   `json:"content_html"`
	DatePublished string   `json:"date_published"`
	DateModified  string   `json:"date_modified,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Image         string   `json:"image,omitempty"`
	Series        string   `json:"_series,omitempty"`
}

// WriteJSON writes a JSON Feed 1.1 document.
func WriteJSON(w io.Writer, meta Meta, items []Item) error {
	doc := jsonFeed{
		Version:     jsonFeedVersion,
		Title:       meta.Title,
		HomePageURL: absolute(meta.BaseURL, "/"),
		FeedURL:     absolute(meta.BaseURL, "/feed.json"),
		Description: meta.Description,
		Language:    meta.Language,
		Items:       make([]jsonItem, 0, len(items)),
	}
	if strings.TrimSpace(meta.Author) != "" {
		doc.Authors = []jsonAuthor{{Name: meta.Author}}
	}
	for _, it := range items {
		ji := jsonItem{
			ID:            it.ID,
			URL:           it.URL,
			Title:         it.Title,
			Summary:       it.Summary,
			ContentHTML:   it.ContentHTML,
			DatePublished: it.Published.UTC().Format(time.RFC3339),
			Tags:          it.Tags,
			Image:         it.Image,
			Series:        it.Series,
		}
		if !it.Modified.IsZero() {
			ji.DateModified = it.Modified.UTC().Format(time.RFC3339)
		}
		doc.Items = append(doc.Items, ji)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding json feed: %w", err)
	}
	return nil
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
