package feed

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/termfolio/internal/content"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func samplePosts() []content.Post {
	return []content.Post{
		{Slug: "old", Title: "Old", URL: "/blog/old", Date: day(2024, 1, 1)},
		{Slug: "tie-a", Title: "Tie A", URL: "/blog/tie-a", Date: day(2025, 4, 10), Tags: []string{"go"}},
		{Slug: "new", Title: "New", URL: "/blog/new", Date: day(2025, 6, 1), Cover: "/static/new.png", Series: "desk"},
		{Slug: "tie-b", Title: "Tie B", URL: "/blog/tie-b", Date: day(2025, 4, 10), Updated: day(2025, 5, 1)},
	}
}

var meta = Meta{
	Title:       "termfolio",
	Description: "a terminal portfolio",
	BaseURL:     "https://example.com/",
	Author:      "Ada",
	Language:    "en",
}

func TestItemsOrderedByDateThenInputOrder(t *testing.T) {
	items := Items(samplePosts(), meta.BaseURL)
	var got []string
	for _, it := range items {
		got = append(got, it.Title)
	}
	want := "New,Tie A,Tie B,Old"
	if strings.Join(got, ",") != want {
		t.Errorf("order = %v, want %s", got, want)
	}
	if items[0].URL != "https://example.com/blog/new" {
		t.Errorf("URL = %q", items[0].URL)
	}
	if items[0].Image != "https://example.com/static/new.png" {
		t.Errorf("Image = %q", items[0].Image)
	}
	if !items[2].Modified.Equal(day(2025, 5, 1)) {
		t.Errorf("Modified = %v", items[2].Modified)
	}
}

func TestItemsDoesNotMutateInput(t *testing.T) {
	posts := samplePosts()
	Items(posts, meta.BaseURL)
	if posts[0].Slug != "old" {
		t.Errorf("input reordered: first = %q", posts[0].Slug)
	}
}

func TestRSSIdempotent(t *testing.T) {
	var a, b bytes.Buffer
	if err := WriteRSS(&a, meta, Items(samplePosts(), meta.BaseURL)); err != nil {
		t.Fatalf("WriteRSS: %v", err)
	}
	if err := WriteRSS(&b, meta, Items(samplePosts(), meta.BaseURL)); err != nil {
		t.Fatalf("WriteRSS: %v", err)
	}
	if a.String() != b.String() {
		t.Error("RSS output differs between identical runs")
	}
}

func TestRSSDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRSS(&buf, meta, Items(samplePosts(), meta.BaseURL)); err != nil {
		t.Fatalf("WriteRSS: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML header")
	}
	for _, want := range []string{
		`<rss version="2.0"`,
		`<title>termfolio</title>`,
		`<link>https://example.com/</link>`,
		`<guid isPermaLink="true">https://example.com/blog/new</guid>`,
		`<category>desk</category>`,
		`<enclosure url="https://example.com/static/new.png" type="image/png"`,
		`<pubDate>Sun, 01 Jun 2025 00:00:00 +0000</pubDate>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RSS missing %q", want)
		}
	}

	var parsed struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"channel>item"`
	}
	if err := xml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("RSS is not well-formed: %v", err)
	}
	if len(parsed.Items) != 4 || parsed.Items[1].Title != "Tie A" || parsed.Items[2].Title != "Tie B" {
		t.Errorf("parsed items = %+v", parsed.Items)
	}
}

func TestJSONFeed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, Items(samplePosts(), meta.BaseURL)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var doc struct {
		Version string `json:"version"`
		Title   string `json:"title"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Items []struct {
			ID            string   `json:"id"`
			Title         string   `json:"title"`
			DatePublished string   `json:"date_published"`
			DateModified  string   `json:"date_modified"`
			Tags          []string `json:"tags"`
			Image         string   `json:"image"`
		} `json:"items"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Version != "https://jsonfeed.org/version/1.1" {
		t.Errorf("version = %q", doc.Version)
	}
	if len(doc.Authors) != 1 || doc.Authors[0].Name != "Ada" {
		t.Errorf("authors = %+v", doc.Authors)
	}
	if len(doc.Items) != 4 {
		t.Fatalf("got %d items, want 4", len(doc.Items))
	}
	if doc.Items[0].DatePublished != "2025-06-01T00:00:00Z" {
		t.Errorf("date_published = %q", doc.Items[0].DatePublished)
	}
	if doc.Items[2].DateModified != "2025-05-01T00:00:00Z" {
		t.Errorf("date_modified = %q", doc.Items[2].DateModified)
	}
	if doc.Items[1].Title != "Tie A" || doc.Items[2].Title != "Tie B" {
		t.Errorf("tie order = %q, %q", doc.Items[1].Title, doc.Items[2].Title)
	}

	var again bytes.Buffer
	WriteJSON(&again, meta, Items(samplePosts(), meta.BaseURL))
	if buf.String() != again.String() {
		t.Error("JSON feed output differs between identical runs")
	}
}

func TestEmptyJSONFeedHasItemsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"items": []`) {
		t.Errorf("empty feed should carry an empty items array: %s", buf.String())
	}
}

type fakeSource struct {
	posts    []content.Post
	projects []content.Project
}

func (f fakeSource) Posts() []content.Post                  { return f.posts }
func (f fakeSource) Projects() []content.Project            { return f.projects }
func (f fakeSource) Post(string) (content.Post, bool)       { return content.Post{}, false }
func (f fakeSource) Project(string) (content.Project, bool) { return content.Project{}, false }
func (f fakeSource) Page(string) (content.Page, bool)       { return content.Page{}, false }

func TestSitemap(t *testing.T) {
	src := fakeSource{
		posts:    samplePosts(),
		projects: []content.Project{{Slug: "kiln", URL: "/projects/kiln", Date: day(2024, 11, 20)}},
	}
	urls := SitemapURLs(src, "https://example.com")
	if len(urls) != 6 {
		t.Fatalf("got %d urls, want 6", len(urls))
	}
	if urls[0].Loc != "https://example.com/" || !urls[0].Modified.Equal(day(2025, 6, 1)) {
		t.Errorf("root entry = %+v", urls[0])
	}

	var buf bytes.Buffer
	if err := WriteSitemap(&buf, urls); err != nil {
		t.Fatalf("WriteSitemap: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		`<loc>https://example.com/projects/kiln</loc>`,
		`<lastmod>2024-11-20</lastmod>`,
		`<priority>1.0</priority>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func TestAbsolute(t *testing.T) {
	tests := []struct{ base, path, want string }{
		{"https://a.dev/", "/x", "https://a.dev/x"},
		{"https://a.dev", "x", "https://a.dev/x"},
		{"https://a.dev", "", ""},
		{"https://a.dev", "https://cdn.dev/i.png", "https://cdn.dev/i.png"},
	}
	for _, tt := range tests {
		if got := absolute(tt.base, tt.path); got != tt.want {
			t.Errorf("absolute(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
