package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/ziadkadry99/termfolio/internal/clientstore"
	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/geometry"
	"github.com/ziadkadry99/termfolio/internal/theme"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// newTestModel builds a model over testdata/site with a 100-column
// breakpoint and one-cell gutters.
func newTestModel(t *testing.T) Model {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "site"))
	if err != nil {
		t.Fatalf("resolve testdata path: %v", err)
	}
	lib, err := content.Open(content.Options{Dir: dir})
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	d := desk.New(clientstore.NewMemory(), desk.Options{
		Breakpoint: 100,
		Tiling:     geometry.Options{Gutter: 1},
	})
	return New(d, lib, "termfolio")
}

// update sends a message through Update and returns the updated model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func assertGrid(t *testing.T, view string, width, height int) {
	t.Helper()
	rows := strings.Split(view, "\n")
	if len(rows) != height {
		t.Fatalf("got %d rows, want %d", len(rows), height)
	}
	for i, row := range rows {
		if w := ansi.StringWidth(row); w != width {
			t.Errorf("row %d is %d cells wide, want %d: %q", i, w, width, ansi.Strip(row))
		}
	}
}

func TestViewRowsExactWidth(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		open          []string
	}{
		{"desktop single", 120, 40, nil},
		{"desktop three", 120, 40, []string{"a", "b"}},
		{"desktop five", 203, 61, []string{"a", "p", "b", "c"}},
		{"mobile", 80, 24, []string{"b", "1"}},
		{"tiny", 30, 5, []string{"p"}},
		{"one row", 40, 1, nil},
		{"odd split", 101, 17, []string{"a", "p", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = update(t, m, tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			for _, k := range tt.open {
				m, _ = update(t, m, runes(k))
			}
			assertGrid(t, m.View(), tt.width, tt.height)
		})
	}
}

func TestViewBeforeResizeIsEmpty(t *testing.T) {
	if v := newTestModel(t).View(); v != "" {
		t.Errorf("View before WindowSizeMsg = %q, want empty", v)
	}
}

func TestNarrowTerminalIsMobile(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if !m.desk.Focus.Mobile() {
		t.Fatal("80 columns should be single-pane")
	}
	d := m.desk.Theme.Displayed()
	if d.Preset != theme.MobileTheme.Preset || d.Accent != theme.MobileTheme.Accent {
		t.Errorf("displayed theme = %+v, want mobile override", d)
	}

	m, _ = update(t, m, runes("b"))
	m, _ = update(t, m, runes("1"))
	if got := m.desk.Focus.Current(); got != (tile.Post{Slug: "layouts"}) {
		t.Fatalf("current = %#v, want layouts post", got)
	}
	if !strings.Contains(ansi.Strip(m.View()), "~/blog/layouts") {
		t.Error("mobile view should show the post title bar")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.desk.Focus.Current(); got != (tile.Blog{}) {
		t.Errorf("after esc current = %#v, want blog", got)
	}
	if m.desk.Registry.Len() != 1 {
		t.Errorf("mobile navigation spawned tiles: %d", m.desk.Registry.Len())
	}
}

func TestDesktopKeys(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})

	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, runes("1"))
	if got := m.desk.Registry.Focused().Content; got != (tile.Project{Slug: "kiln"}) {
		t.Fatalf("focused = %#v, want kiln (featured first)", got)
	}
	if m.desk.Registry.Len() != 3 {
		t.Fatalf("tiles = %d, want 3", m.desk.Registry.Len())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if got := m.desk.Registry.Focused().Content; got != (tile.Projects{}) {
		t.Errorf("alt+left focused %#v, want projects", got)
	}

	m, _ = update(t, m, runes("w"))
	if m.desk.Registry.Len() != 3 {
		t.Error("plain w must not close")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w"), Alt: true})
	if m.desk.Registry.Len() != 2 {
		t.Errorf("alt+w: tiles = %d, want 2", m.desk.Registry.Len())
	}
}

func TestMouseClickFocuses(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, runes("a"))
	if _, ok := m.desk.Registry.Focused().Content.(tile.About); !ok {
		t.Fatal("about should be focused after spawn")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if _, ok := m.desk.Registry.Focused().Content.(tile.Home); !ok {
		t.Errorf("click in the master pane focused %#v", m.desk.Registry.Focused().Content)
	}
}

func TestThemeKeysPersist(t *testing.T) {
	store := clientstore.NewMemory()
	lib, err := content.Open(content.Options{Dir: filepath.Join("..", "..", "testdata", "site")})
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	opts := desk.Options{Breakpoint: 100, Tiling: geometry.Options{Gutter: 1}}
	m := New(desk.New(store, opts), lib, "termfolio")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = update(t, m, runes("a"))

	m, _ = update(t, m, runes("t"))
	m, _ = update(t, m, runes("x"))
	got := m.desk.Theme.Stored()
	if got.Preset != theme.PresetDaylight || got.Background != theme.BackgroundGrid {
		t.Errorf("stored = %+v, want daylight/grid", got)
	}

	// A second desk over the same store sees the change.
	again := desk.New(store, opts)
	if again.Theme.Stored() != got {
		t.Errorf("reloaded = %+v, want %+v", again.Theme.Stored(), got)
	}
	if !strings.Contains(m.View(), "+") {
		t.Error("grid backdrop should fill gutters")
	}

	m, _ = update(t, m, runes("R"))
	if m.desk.Theme.Stored() != theme.DefaultState() {
		t.Errorf("after reset = %+v", m.desk.Theme.Stored())
	}
}

func TestScrollClamps(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	key := m.desk.Focus.Current().Key()

	m, _ = update(t, m, runes("k"))
	if m.scroll[key] != 0 {
		t.Errorf("scroll up from top = %d", m.scroll[key])
	}
	for range 50 {
		m, _ = update(t, m, runes("j"))
	}
	// Home fits on a 40-row screen, so there is nothing to scroll.
	if m.scroll[key] != 0 {
		t.Errorf("scroll past short body = %d", m.scroll[key])
	}
}

func TestPageKeysScrollOnePane(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 7})
	m.desk.Open(tile.Post{Slug: "hello-terminal"})
	key := m.desk.Focus.Current().Key()

	// 6 desk rows: border, title and border leave 3 body rows per page.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.scroll[key] != 3 {
		t.Fatalf("pgdown scrolled to %d, want 3", m.scroll[key])
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.scroll[key] != 0 {
		t.Errorf("pgup scrolled to %d, want 0", m.scroll[key])
	}
	assertGrid(t, m.View(), 40, 7)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abc"},
		{"", 2, "  "},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := fitWidth(tt.in, tt.w); got != tt.want {
			t.Errorf("fitWidth(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestNext(t *testing.T) {
	if got := next(theme.Presets, theme.PresetNight); got != theme.PresetDaylight {
		t.Errorf("next wraps to %q", got)
	}
	if got := next(theme.Presets, theme.Preset("bogus")); got != theme.Presets[0] {
		t.Errorf("unknown starts at %q", got)
	}
}
