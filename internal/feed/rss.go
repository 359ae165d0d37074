package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Content string     `xml:"xmlns:content,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        rssGUID       `xml:"guid"`
	Description string        `xml:"description,omitempty"`
	Encoded     cdata         `xml:"content:encoded"`
	PubDate     string        `xml:"pubDate"`
	Categories  []string      `xml:"category"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int    `xml:"length,attr"`
}

type cdata struct {
	Value string `xml:",cdata"`
}

// WriteRSS writes an RSS 2.0 document. The series of an item is emitted as
// an extra category.
func WriteRSS(w io.Writer, meta Meta, items []Item) error {
	ch := rssChannel{
		Title:       meta.Title,
		Link:        absolute(meta.BaseURL, "/"),
		Description: meta.Description,
		Language:    meta.Language,
		AtomLink: atomLink{
			Href: absolute(meta.BaseURL, "/rss.xml"),
			Rel:  "self",
			Type: "application/rss+xml",
		},
	}
	if t := latest(items); !t.IsZero() {
		ch.LastBuildDate = t.UTC().Format(time.RFC1123Z)
	}
	for _, it := range items {
		ri := rssItem{
			Title:       it.Title,
			Link:        it.URL,
			GUID:        rssGUID{IsPermaLink: true, Value: it.ID},
			Description: it.Summary,
			Encoded:     cdata{it.ContentHTML},
			PubDate:     it.Published.UTC().Format(time.RFC1123Z),
			Categories:  it.Tags,
		}
		if it.Series != "" {
			ri.Categories = append(append([]string(nil), it.Tags...), it.Series)
		}
		if it.Image != "" {
			ri.Enclosure = &rssEnclosure{URL: it.Image, Type: imageType(it.Image)}
		}
		ch.Items = append(ch.Items, ri)
	}

	doc := rss{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: ch,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding rss: %w", err)
	}
	return nil
}

func imageType(u string) string {
	switch {
	case hasSuffixFold(u, ".png"):
		return "image/png"
	case hasSuffixFold(u, ".gif"):
		return "image/gif"
	case hasSuffixFold(u, ".webp"):
		return "image/webp"
	case hasSuffixFold(u, ".svg"):
		return "image/svg+xml"
	default:
		return "image/jpeg"
	}
}
