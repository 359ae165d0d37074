package focus

import (
	"fmt"
	"testing"

	"github.com/ziadkadry99/termfolio/internal/tile"
)

func setupController(t *testing.T) (*Controller, *tile.Registry) {
	t.Helper()
	n := 0
	reg := tile.NewRegistry(tile.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
	return New(reg, Options{}), reg
}

func TestNextPrevWrap(t *testing.T) {
	c, reg := setupController(t)
	about := reg.Spawn(tile.About{})
	blog := reg.Spawn(tile.Blog{})

	if got := c.HandleKey("alt+right"); got != ActionFocusNext {
		t.Fatalf("action = %v, want focus-next", got)
	}
	if reg.Focused().ID != reg.HomeID() {
		t.Errorf("next from last tile should wrap to home, got %q", reg.Focused().ID)
	}

	c.HandleKey("alt+left")
	if reg.Focused().ID != blog {
		t.Errorf("prev from home should wrap to last, got %q", reg.Focused().ID)
	}
	c.HandleKey("alt+k")
	if reg.Focused().ID != about {
		t.Errorf("prev = %q, want %q", reg.Focused().ID, about)
	}
}

func TestCloseKey(t *testing.T) {
	c, reg := setupController(t)
	reg.Spawn(tile.About{})
	if got := c.HandleKey("alt+w"); got != ActionClose {
		t.Fatalf("action = %v, want close", got)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}

	// Closing home is refused.
	c.HandleKey("alt+w")
	if reg.Len() != 1 || reg.Focused().ID != reg.HomeID() {
		t.Error("home tile was closed")
	}
}

func TestSpawnKeyOpensDefault(t *testing.T) {
	c, reg := setupController(t)
	c.HandleKey("alt+n")
	c.HandleKey("alt+enter")
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2 (default spawn is idempotent)", reg.Len())
	}
	if reg.Focused().Kind() != tile.KindAbout {
		t.Errorf("focused kind = %q, want about", reg.Focused().Kind())
	}
}

func TestUnboundKey(t *testing.T) {
	c, reg := setupController(t)
	if got := c.HandleKey("x"); got != ActionNone {
		t.Errorf("action = %v, want none", got)
	}
	if reg.Len() != 1 {
		t.Error("unbound key mutated the registry")
	}
}

func TestMobileTraversalUsesHistory(t *testing.T) {
	c, reg := setupController(t)
	reg.Spawn(tile.Blog{})
	c.SetMobile(true)

	if got := c.Current(); got != (tile.Blog{}) {
		t.Fatalf("Current = %#v, want Blog seeded from focus", got)
	}

	c.Open(tile.Post{Slug: "first"})
	c.Open(tile.Post{Slug: "second"})
	if reg.Len() != 2 {
		t.Errorf("mobile navigation spawned tiles: Len = %d", reg.Len())
	}

	if got := c.HandleKey("alt+left"); got != ActionBack {
		t.Fatalf("action = %v, want back", got)
	}
	if got := c.Current(); got != (tile.Post{Slug: "first"}) {
		t.Errorf("after back Current = %#v", got)
	}
	c.HandleKey("alt+right")
	if got := c.Current(); got != (tile.Post{Slug: "second"}) {
		t.Errorf("after forward Current = %#v", got)
	}

	if got := c.HandleKey("alt+w"); got != ActionNone {
		t.Errorf("close on mobile = %v, want none", got)
	}

	c.SetMobile(false)
	if got := reg.Focused().Content; got != (tile.Post{Slug: "second"}) {
		t.Errorf("leaving mobile focused %#v, want the single-pane content", got)
	}
}

func TestBackForwardIgnoredOnDesktop(t *testing.T) {
	c, _ := setupController(t)
	if c.Back() || c.Forward() {
		t.Error("Back/Forward should be no-ops on the desktop")
	}
	if c.History() != nil {
		t.Error("desktop controller should have no history")
	}
}

func TestHistoryBounded(t *testing.T) {
	h := NewHistory(3, tile.Home{})
	h.Navigate(tile.About{})
	h.Navigate(tile.Blog{})
	h.Navigate(tile.Contact{})
	if h.Len() != 3 {
		t.Errorf("Len = %d, want 3", h.Len())
	}
	h.Back()
	h.Back()
	if h.CanBack() {
		t.Error("oldest entry should have been dropped")
	}
	if h.Current() != (tile.About{}) {
		t.Errorf("Current = %#v, want About", h.Current())
	}
}

func TestHistoryNavigateTruncatesForward(t *testing.T) {
	h := NewHistory(0, tile.Home{})
	h.Navigate(tile.About{})
	h.Navigate(tile.Blog{})
	h.Back()
	h.Navigate(tile.Contact{})
	if h.CanForward() {
		t.Error("navigate should drop forward entries")
	}
	if h.Navigate(tile.Contact{}) {
		t.Error("navigating to the current content should be a no-op")
	}
}
