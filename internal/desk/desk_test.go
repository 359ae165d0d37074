package desk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termfolio/internal/clientstore"
	"github.com/ziadkadry99/termfolio/internal/db"
	"github.com/ziadkadry99/termfolio/internal/layout"
	"github.com/ziadkadry99/termfolio/internal/theme"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

func TestNewDeskStartsWithHome(t *testing.T) {
	d := New(clientstore.NewMemory(), Options{})
	snap := d.Snapshot()
	if len(snap.Tiles) != 1 || snap.Tiles[0].Kind != "home" || !snap.Tiles[0].Focused {
		t.Errorf("tiles = %+v", snap.Tiles)
	}
	if len(snap.Placements) != 1 || snap.Placements[0].Rect.Width != DefaultViewport.Width {
		t.Errorf("placements = %+v", snap.Placements)
	}
	if d.Reported() {
		t.Error("fresh desk claims a reported viewport")
	}
}

func TestViewportSwitchesModes(t *testing.T) {
	store := clientstore.NewMemory()
	d := New(store, Options{})
	d.Theme.SetAccent("peach")
	d.Open(tile.About{})
	d.Open(tile.Blog{})
	before, _ := store.Load(theme.StorageKey)

	d.SetViewport(layout.Viewport{Width: 390, Height: 844})
	snap := d.Snapshot()
	if !snap.Mobile {
		t.Fatal("narrow viewport did not enable mobile mode")
	}
	if snap.Displayed.Accent != theme.MobileTheme.Accent || snap.Theme.Accent != theme.AccentPeach {
		t.Errorf("displayed %v stored %v", snap.Displayed, snap.Theme)
	}
	if len(snap.Placements) != len(snap.Tiles) {
		t.Errorf("%d placements for %d tiles", len(snap.Placements), len(snap.Tiles))
	}
	if snap.Current.Kind != "blog" {
		t.Errorf("current = %+v, want blog", snap.Current)
	}

	d.Open(tile.Contact{})
	if s := d.Snapshot(); !s.CanBack || s.CanForward {
		t.Errorf("history flags = %v/%v", s.CanBack, s.CanForward)
	}

	d.SetViewport(layout.Viewport{Width: 1280, Height: 800})
	after, _ := store.Load(theme.StorageKey)
	if string(before) != string(after) {
		t.Errorf("storage changed across mobile round trip: %s -> %s", before, after)
	}
	snap = d.Snapshot()
	if snap.Mobile || snap.Displayed.Accent != theme.AccentPeach {
		t.Errorf("desktop restore failed: %+v", snap.Displayed)
	}
	if snap.Current.Kind != "contact" {
		t.Errorf("leaving mobile should open the single pane's content, got %+v", snap.Current)
	}
}

func TestIgnoresNonPositiveViewport(t *testing.T) {
	d := New(clientstore.NewMemory(), Options{})
	d.SetViewport(layout.Viewport{})
	if d.Reported() || d.Viewport() != DefaultViewport {
		t.Error("zero viewport was accepted")
	}
}

func TestOptionsApplied(t *testing.T) {
	d := New(clientstore.NewMemory(), Options{
		MaxTiles:   2,
		Breakpoint: 600,
		Default:    tile.Contact{},
		Theme:      theme.State{Preset: theme.PresetArctic, Accent: theme.AccentSky, Background: theme.BackgroundDots},
	})
	if d.Theme.Stored().Preset != theme.PresetArctic {
		t.Errorf("default theme = %+v", d.Theme.Stored())
	}
	d.Open(tile.About{})
	d.Open(tile.Blog{})
	if d.Registry.Len() != 2 {
		t.Errorf("Len = %d, want 2 with MaxTiles", d.Registry.Len())
	}
	d.SetViewport(layout.Viewport{Width: 700, Height: 500})
	if d.Focus.Mobile() {
		t.Error("700px counted as mobile with a 600px breakpoint")
	}
}

func setupManager(t *testing.T) *Manager {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewManager(database, Options{}, time.Minute)
}

func TestRegistryChangesRelayout(t *testing.T) {
	d := New(clientstore.NewMemory(), Options{})
	before := d.Layout.Recomputes()
	d.Open(tile.About{})
	if d.Layout.Recomputes() != before+1 {
		t.Errorf("spawn did not recompute the layout: %d -> %d", before, d.Layout.Recomputes())
	}
	d.Registry.Focus(d.Registry.HomeID())
	if got := d.Placements(); len(got) != 2 || !got[0].Focused {
		t.Errorf("placements after focus = %+v", got)
	}
}

func TestMobilePlacementFollowsHistory(t *testing.T) {
	d := New(clientstore.NewMemory(), Options{})
	d.Open(tile.About{})
	blog := d.Registry.Spawn(tile.Blog{})
	d.SetViewport(layout.Viewport{Width: 390, Height: 844})

	d.Open(tile.About{})
	about := d.Registry.Tiles()[1].ID

	snap := d.Snapshot()
	if snap.Current.Kind != "about" || snap.Current.ID != about {
		t.Fatalf("current = %+v, want the about tile", snap.Current)
	}
	for _, p := range snap.Placements {
		full := p.Rect.Width == 390 && p.Rect.Height == 844
		if (p.TileID == about) != full || p.Focused != (p.TileID == about) {
			t.Errorf("placement %+v: only %s should fill the pane", p, about)
		}
	}

	d.Open(tile.Contact{})
	for _, p := range d.Snapshot().Placements {
		if !p.Rect.Empty() {
			t.Errorf("content without a tile left %s placed at %+v", p.TileID, p.Rect)
		}
	}
	if d.Registry.Focused().ID != blog {
		t.Errorf("mobile navigation moved registry focus to %s", d.Registry.Focused().ID)
	}
}

func TestManagerReportsThemeChanges(t *testing.T) {
	m := setupManager(t)
	type change struct {
		visitor string
		shown   theme.State
	}
	var got []change
	m.OnThemeChange(func(id string, shown theme.State) { got = append(got, change{id, shown}) })

	m.With("a", func(d *Desk) {
		d.Theme.SetAccent("peach")
		d.Theme.SetAccent("nope")
		d.SetViewport(layout.Viewport{Width: 390, Height: 844})
	})
	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2: %+v", len(got), got)
	}
	if got[0].visitor != "a" || got[0].shown.Accent != theme.AccentPeach {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].shown.Accent != theme.MobileTheme.Accent {
		t.Errorf("mobile overlay not reported: %+v", got[1])
	}
}

func TestManagerIsolatesVisitorsAndSweeps(t *testing.T) {
	m := setupManager(t)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	m.With("a", func(d *Desk) {
		d.Open(tile.About{})
		d.Theme.SetPreset("daylight")
	})
	m.With("b", func(d *Desk) {
		if d.Registry.Len() != 1 {
			t.Errorf("visitor b sees %d tiles", d.Registry.Len())
		}
	})
	if m.Len() != 2 {
		t.Fatalf("Len = %d", m.Len())
	}

	clock = clock.Add(2 * time.Minute)
	m.With("b", func(*Desk) {})
	if n := m.Sweep(); n != 1 {
		t.Errorf("Sweep dropped %d, want 1", n)
	}

	m.With("a", func(d *Desk) {
		if d.Registry.Len() != 1 {
			t.Errorf("tiles survived the sweep: %d", d.Registry.Len())
		}
		if d.Theme.Stored().Preset != theme.PresetDaylight {
			t.Errorf("theme not restored from storage: %+v", d.Theme.Stored())
		}
	})
}

type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, target string, form url.Values, accept string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) state() Snapshot {
	c.t.Helper()
	w := c.do(http.MethodGet, "/desk/state", nil, "")
	var s Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		c.t.Fatalf("decode state: %v", err)
	}
	return s
}

func setupAPI(t *testing.T) *client {
	t.Helper()
	api := &API{
		Desks: setupManager(t),
		Exists: func(c tile.Content) bool {
			p, ok := c.(tile.Post)
			return !ok || p.Slug == "hello"
		},
	}
	r := chi.NewRouter()
	r.Use(Visitors)
	api.RegisterRoutes(r)
	return &client{t: t, h: r}
}

func TestAPIFlow(t *testing.T) {
	c := setupAPI(t)

	if s := c.state(); len(s.Tiles) != 1 {
		t.Fatalf("initial tiles = %+v", s.Tiles)
	}
	if c.cookie == nil {
		t.Fatal("visitor cookie not set")
	}

	w := c.do(http.MethodPost, "/desk/spawn", url.Values{"kind": {"post"}, "data": {"hello"}, "return": {"/blog"}}, "")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/blog" {
		t.Errorf("spawn = %d %q", w.Code, w.Header().Get("Location"))
	}
	w = c.do(http.MethodPost, "/desk/spawn", url.Values{"kind": {"post"}, "data": {"hello"}}, "application/json")
	var s Snapshot
	json.Unmarshal(w.Body.Bytes(), &s)
	if len(s.Tiles) != 2 {
		t.Errorf("idempotent spawn produced %d tiles", len(s.Tiles))
	}
	postID := s.Current.ID

	if w := c.do(http.MethodPost, "/desk/spawn", url.Values{"kind": {"post"}, "data": {"nope"}}, ""); w.Code != http.StatusNotFound {
		t.Errorf("missing post spawn = %d, want 404", w.Code)
	}
	if w := c.do(http.MethodPost, "/desk/spawn", url.Values{"kind": {"window"}}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad kind spawn = %d, want 400", w.Code)
	}

	home := c.state().Tiles[0].ID
	c.do(http.MethodPost, "/desk/tiles/"+home+"/close", url.Values{}, "")
	c.do(http.MethodPost, "/desk/tiles/missing/close", url.Values{}, "")
	if s := c.state(); len(s.Tiles) != 2 {
		t.Errorf("protected/unknown close changed tiles: %+v", s.Tiles)
	}

	c.do(http.MethodPost, "/desk/tiles/"+home+"/focus", url.Values{}, "")
	if s := c.state(); s.Current.ID != home {
		t.Errorf("focus: current = %+v", s.Current)
	}

	w = c.do(http.MethodPost, "/desk/keys", url.Values{"key": {"alt+right"}}, "application/json")
	var kr keyResponse
	json.Unmarshal(w.Body.Bytes(), &kr)
	if kr.Action != "focus-next" || kr.State.Current.ID != postID {
		t.Errorf("key response = %s / %+v", kr.Action, kr.State.Current)
	}

	c.do(http.MethodPost, "/desk/tiles/"+postID+"/close", url.Values{}, "")
	if s := c.state(); len(s.Tiles) != 1 || !s.Tiles[0].Focused {
		t.Errorf("after close: %+v", s.Tiles)
	}
}

func TestAPIMobileIgnoresClose(t *testing.T) {
	c := setupAPI(t)
	c.do(http.MethodPost, "/desk/spawn", url.Values{"kind": {"about"}}, "")
	about := c.state().Current.ID
	c.do(http.MethodPost, "/desk/viewport", url.Values{"width": {"390"}, "height": {"844"}}, "")

	c.do(http.MethodPost, "/desk/tiles/"+about+"/close", url.Values{}, "")
	if s := c.state(); len(s.Tiles) != 2 {
		t.Errorf("close on mobile removed a tile: %+v", s.Tiles)
	}

	home := c.state().Tiles[0].ID
	c.do(http.MethodPost, "/desk/tiles/"+home+"/focus", url.Values{}, "")
	s := c.state()
	if s.Current.Kind != "home" || s.Current.ID != home || !s.CanBack {
		t.Errorf("focus on mobile should navigate: %+v back=%v", s.Current, s.CanBack)
	}
}

func TestAPITheme(t *testing.T) {
	c := setupAPI(t)
	c.do(http.MethodPost, "/theme", url.Values{"preset": {"arctic"}, "accent": {"teal"}}, "")
	c.do(http.MethodPost, "/theme", url.Values{"accent": {"chartreuse"}, "background": {"stars"}}, "")

	s := c.state()
	want := theme.State{Preset: theme.PresetArctic, Accent: theme.AccentTeal, Background: theme.BackgroundStars}
	if s.Theme != want {
		t.Errorf("theme = %+v, want %+v", s.Theme, want)
	}

	w := c.do(http.MethodPost, "/desk/viewport", url.Values{"width": {"500"}, "height": {"900"}}, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("viewport = %d, want 204", w.Code)
	}
	s = c.state()
	if !s.Mobile || s.Displayed.Preset != theme.MobileTheme.Preset || s.Theme != want {
		t.Errorf("mobile state: displayed %+v stored %+v", s.Displayed, s.Theme)
	}

	if w := c.do(http.MethodPost, "/desk/viewport", url.Values{"width": {"0"}}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("zero width = %d, want 400", w.Code)
	}

	c.do(http.MethodPost, "/theme/reset", url.Values{}, "")
	if s := c.state(); s.Theme != theme.DefaultState() {
		t.Errorf("after reset theme = %+v", s.Theme)
	}
}

func TestVisitorsRejectsMalformedCookie(t *testing.T) {
	var got string
	h := Visitors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = VisitorID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got == "../../etc" || got == "" {
		t.Errorf("visitor id = %q", got)
	}
	if len(w.Result().Cookies()) != 1 {
		t.Error("replacement cookie not set")
	}
}
