package site

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/feed"
)

var testMeta = feed.Meta{
	Title:       "termfolio",
	Description: "tiles all the way down",
	BaseURL:     "https://example.com",
	Author:      "Ada",
}

func setupSite(t *testing.T, dir string) (*Site, *content.Library) {
	t.Helper()
	lib, err := content.Open(content.Options{Dir: dir})
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	s, err := New(Options{
		Meta:     testMeta,
		Content:  lib,
		Reloader: lib,
		Desks:    desk.NewManager(nil, desk.Options{}, 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, lib
}

func testdataDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "site"))
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

type browser struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func newBrowser(t *testing.T, s *Site) *browser {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return &browser{t: t, h: r}
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.send(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.send(req)
}

func (b *browser) send(req *http.Request) *httptest.ResponseRecorder {
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.h.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == desk.CookieName {
			b.cookie = c
		}
	}
	return w
}

func TestFeedsAreCached(t *testing.T) {
	s, _ := setupSite(t, testdataDir(t))
	b := newBrowser(t, s)

	tests := []struct {
		path, contentType, contains string
	}{
		{"/rss.xml", "application/rss+xml", "<title>Master and stack</title>"},
		{"/feed.json", "application/feed+json", `"title": "Hello, terminal"`},
		{"/sitemap.xml", "application/xml", "<loc>https://example.com/projects/kiln</loc>"},
	}
	for _, tt := range tests {
		w := b.get(tt.path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status %d", tt.path, w.Code)
			continue
		}
		if got := w.Header().Get("Cache-Control"); got != "public, max-age=3600, s-maxage=3600" {
			t.Errorf("%s: Cache-Control = %q", tt.path, got)
		}
		if !strings.HasPrefix(w.Header().Get("Content-Type"), tt.contentType) {
			t.Errorf("%s: Content-Type = %q", tt.path, w.Header().Get("Content-Type"))
		}
		if !strings.Contains(w.Body.String(), tt.contains) {
			t.Errorf("%s: body missing %q", tt.path, tt.contains)
		}
	}
	if st := s.Pages().Stats(); st.Entries != 3 {
		t.Errorf("cache entries = %d, want 3", st.Entries)
	}
}

func TestDetailRoutes(t *testing.T) {
	s, _ := setupSite(t, testdataDir(t))
	b := newBrowser(t, s)

	w := b.get("/blog/hello-terminal")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"<h1>Hello, terminal</h1>", "series: building-termfolio", `class="pane detail"`, `name="data" value="hello-terminal"`} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}

	if w := b.get("/projects/kiln"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "https://example.com/kiln") {
		t.Errorf("project page = %d", w.Code)
	}
	for _, p := range []string{"/blog/unfinished", "/projects/nope", "/nowhere"} {
		if w := b.get(p); w.Code != http.StatusNotFound {
			t.Errorf("%s: status %d, want 404", p, w.Code)
		}
	}
}

func TestDeskPage(t *testing.T) {
	s, _ := setupSite(t, testdataDir(t))
	b := newBrowser(t, s)

	w := b.get("/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if b.cookie == nil {
		t.Fatal("no visitor cookie")
	}
	body := w.Body.String()
	if strings.Count(body, `<section class="tile`) != 1 || !strings.Contains(body, "~/home") {
		t.Error("fresh desk should show exactly the home tile")
	}
	if !strings.Contains(body, "Master and stack") {
		t.Error("home tile should list the latest posts")
	}

	for _, kind := range []string{"about", "projects", "blog", "contact"} {
		b.post("/desk/spawn", url.Values{"kind": {kind}})
	}
	b.post("/desk/spawn", url.Values{"kind": {"post"}, "data": {"layouts"}})
	b.post("/desk/spawn", url.Values{"kind": {"project"}, "data": {"orbit"}})

	body = b.get("/").Body.String()
	if n := strings.Count(body, `<section class="tile`); n != 7 {
		t.Errorf("desk shows %d tiles, want 7", n)
	}
	if strings.Contains(body, "render error") || strings.Contains(body, "not found") {
		t.Error("a tile failed to render")
	}
	if strings.Count(body, `<section class="tile focused"`) != 1 {
		t.Error("exactly one tile should be focused")
	}
	if !strings.Contains(body, "left:") || !strings.Contains(body, "I build small tools") {
		t.Error("tiles not positioned or about page missing")
	}
}

func TestMobileDeskAndTheme(t *testing.T) {
	s, _ := setupSite(t, testdataDir(t))
	b := newBrowser(t, s)
	b.get("/")
	b.post("/theme", url.Values{"preset": {"daylight"}, "accent": {"peach"}})
	b.post("/desk/spawn", url.Values{"kind": {"blog"}})

	css := b.get("/theme.css").Body.String()
	if !strings.Contains(css, "--preset: daylight;") {
		t.Errorf("theme.css does not reflect the stored preset:\n%s", css)
	}
	if !strings.Contains(css, "@media (max-width: 1023px)") || !strings.Contains(css, "--breakpoint: 1024;") {
		t.Error("theme.css missing the mobile override layer")
	}

	if w := b.post("/desk/viewport", url.Values{"width": {"390"}, "height": {"844"}}); w.Code != http.StatusNoContent {
		t.Fatalf("viewport status = %d", w.Code)
	}
	body := b.get("/").Body.String()
	if !strings.Contains(body, `data-mobile="true"`) || !strings.Contains(body, `<main class="pane">`) {
		t.Error("narrow viewport should render the single pane")
	}
	if !strings.Contains(body, "~/blog") {
		t.Error("single pane should show the focused tile")
	}
	css = b.get("/theme.css").Body.String()
	if !strings.Contains(css, "--preset: night;") {
		t.Error("mobile visitor should get the mobile theme")
	}

	var state desk.Snapshot
	json.Unmarshal(b.get("/desk/state").Body.Bytes(), &state)
	if state.Theme.Preset != "daylight" || state.Theme.Accent != "peach" {
		t.Errorf("stored theme changed under the mobile override: %+v", state.Theme)
	}
}

func copyTree(t *testing.T, src string) string {
	t.Helper()
	dst := t.TempDir()
	err := filepath.Walk(src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, p)
		if info.IsDir() {
			return os.MkdirAll(filepath.Join(dst, rel), 0o755)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dst, rel), data, 0o644)
	})
	if err != nil {
		t.Fatalf("copy testdata: %v", err)
	}
	return dst
}

func TestRevalidatePicksUpNewContent(t *testing.T) {
	dir := copyTree(t, testdataDir(t))
	s, _ := setupSite(t, dir)
	b := newBrowser(t, s)
	ctx := context.Background()

	if strings.Contains(b.get("/rss.xml").Body.String(), "Fresh post") {
		t.Fatal("new post present before it exists")
	}
	os.WriteFile(filepath.Join(dir, "posts", "fresh.md"), []byte("---\ntitle: Fresh post\ndate: 2026-01-01\n---\nnew\n"), 0o644)

	if strings.Contains(b.get("/rss.xml").Body.String(), "Fresh post") {
		t.Error("cached feed changed without revalidation")
	}
	if err := s.Pages().Revalidate(ctx, "/rss.xml"); err != nil {
		t.Fatalf("Revalidate: %v", err)
	}
	if !strings.Contains(b.get("/rss.xml").Body.String(), "Fresh post") {
		t.Error("feed not regenerated after revalidation")
	}
	if w := b.get("/blog/fresh"); w.Code != http.StatusOK {
		t.Errorf("new detail page status = %d", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	s, _ := setupSite(t, testdataDir(t))
	b := newBrowser(t, s)

	var resp searchResponse
	json.Unmarshal(b.get("/api/search?q=layout").Body.Bytes(), &resp)
	if len(resp.Results) == 0 || resp.Results[0].Slug != "layouts" {
		t.Errorf("results = %+v", resp.Results)
	}
	if w := b.get("/api/search"); w.Code != http.StatusBadRequest {
		t.Errorf("empty query status = %d", w.Code)
	}
}

func TestGenerate(t *testing.T) {
	s, _ := setupSite(t, testdataDir(t))
	out := t.TempDir()

	n, err := s.Generate(context.Background(), out, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 3 feeds + 3 posts + 2 projects
	if n != 8 {
		t.Errorf("wrote %d pages, want 8", n)
	}
	for _, rel := range []string{
		"rss.xml", "feed.json", "sitemap.xml", "theme.css", "static/style.css",
		"blog/layouts/index.html", "projects/kiln/index.html",
	} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestDetailContent(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"/blog/x", true},
		{"/projects/y", true},
		{"/blog/", false},
		{"/blog/a/b", false},
		{"/about", false},
	}
	for _, tt := range tests {
		if _, ok := detailContent(tt.path); ok != tt.ok {
			t.Errorf("detailContent(%q) ok = %v, want %v", tt.path, ok, tt.ok)
		}
	}
}

func TestLocalAudioIsServed(t *testing.T) {
	audioDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(audioDir, "layouts.mp3"), []byte("ID3 narration"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := content.Open(content.Options{Dir: testdataDir(t)})
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	s, err := New(Options{
		Meta:    testMeta,
		Content: lib,
		Desks:   desk.NewManager(nil, desk.Options{}, 0),
		Audio:   &content.AudioProber{Base: audioDir},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b := newBrowser(t, s)

	body := b.get("/blog/layouts").Body.String()
	if !strings.Contains(body, `src="/audio/layouts.mp3"`) {
		t.Errorf("post page has no audio route link")
	}
	if strings.Contains(body, audioDir) {
		t.Errorf("post page leaks the audio directory %q", audioDir)
	}

	w := b.get("/audio/layouts.mp3")
	if w.Code != http.StatusOK || w.Body.String() != "ID3 narration" {
		t.Errorf("GET /audio/layouts.mp3 = %d %q", w.Code, w.Body.String())
	}
	for _, p := range []string{"/audio/missing.mp3", "/audio/layouts.wav", "/audio/..%2Flayouts.mp3"} {
		if w := b.get(p); w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", p, w.Code)
		}
	}

	out := t.TempDir()
	if _, err := s.Generate(context.Background(), out, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "audio", "layouts.mp3")); err != nil {
		t.Errorf("audio not copied: %v", err)
	}
}
