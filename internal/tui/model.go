// Package tui is the terminal front-end: the same desk, laid out in
// character cells and drawn with lipgloss.
package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/focus"
	"github.com/ziadkadry99/termfolio/internal/geometry"
	"github.com/ziadkadry99/termfolio/internal/layout"
	"github.com/ziadkadry99/termfolio/internal/theme"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// launcher is what the home tile offers under the number keys.
var launcher = []tile.Content{tile.About{}, tile.Projects{}, tile.Blog{}, tile.Contact{}}

// Model is the bubbletea model. The desk's breakpoint is in columns.
type Model struct {
	desk  *desk.Desk
	src   content.Source
	title string
	keys  keyMap
	help  help.Model

	width, height int
	scroll        map[string]int // by tile.Content key
	moreKeys      bool
}

// New creates a model over d. title is shown in the status bar.
func New(d *desk.Desk, src content.Source, title string) Model {
	return Model{
		desk:   d,
		src:    src,
		title:  title,
		keys:   defaultKeyMap(d.Focus.Keys()),
		help:   help.New(),
		scroll: make(map[string]int),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.desk.SetViewport(layout.Viewport{Width: msg.Width, Height: max(msg.Height-1, 1)})
		log.Debug("resize", "width", msg.Width, "height", msg.Height, "mobile", m.desk.Focus.Mobile())
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.moreKeys = !m.moreKeys
		return m, nil
	}

	if a := m.desk.Focus.HandleKey(msg.String()); a != focus.ActionNone {
		log.Debug("desk key", "key", msg.String(), "action", a)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.pageSize())
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.pageSize())
	case key.Matches(msg, m.keys.Open):
		m.openNth(int(msg.String()[0] - '0'))
	case key.Matches(msg, m.keys.Back):
		if m.desk.Focus.Mobile() {
			m.desk.Focus.Back()
		}
	case key.Matches(msg, m.keys.Home):
		m.desk.Open(tile.Home{})
	case key.Matches(msg, m.keys.About):
		m.desk.Open(tile.About{})
	case key.Matches(msg, m.keys.Projects):
		m.desk.Open(tile.Projects{})
	case key.Matches(msg, m.keys.Blog):
		m.desk.Open(tile.Blog{})
	case key.Matches(msg, m.keys.Contact):
		m.desk.Open(tile.Contact{})
	case key.Matches(msg, m.keys.Preset):
		m.desk.Theme.SetPreset(string(next(theme.Presets, m.desk.Theme.Stored().Preset)))
	case key.Matches(msg, m.keys.Accent):
		m.desk.Theme.SetAccent(string(next(theme.Accents, m.desk.Theme.Stored().Accent)))
	case key.Matches(msg, m.keys.Background):
		m.desk.Theme.SetBackground(string(next(theme.Backgrounds, m.desk.Theme.Stored().Background)))
	case key.Matches(msg, m.keys.ResetTheme):
		if err := m.desk.Theme.Reset(); err != nil {
			log.Warn("resetting theme", "err", err)
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.scrollBy(3)
		return
	case tea.MouseButtonWheelUp:
		m.scrollBy(-3)
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || m.desk.Focus.Mobile() {
		return
	}
	for _, p := range m.desk.Placements() {
		if p.Rect.Contains(msg.X, msg.Y) {
			m.desk.Focus.Select(p.TileID)
			return
		}
	}
}

// openNth opens the nth entry (1-based) listed by the current tile.
func (m Model) openNth(n int) {
	var target tile.Content
	switch m.desk.Focus.Current().(type) {
	case tile.Home:
		if n <= len(launcher) {
			target = launcher[n-1]
		}
	case tile.Blog:
		if posts := m.src.Posts(); n <= len(posts) {
			target = tile.Post{Slug: posts[n-1].Slug}
		}
	case tile.Projects:
		if projects := m.src.Projects(); n <= len(projects) {
			target = tile.Project{Slug: projects[n-1].Slug}
		}
	}
	if target != nil {
		m.desk.Open(target)
	}
}

// currentRect is where the current content is drawn.
func (m Model) currentRect() geometry.Rect {
	if m.desk.Focus.Mobile() {
		return geometry.Rect{Width: m.width, Height: m.deskHeight()}
	}
	focused := m.desk.Registry.Focused().ID
	for _, p := range m.desk.Placements() {
		if p.TileID == focused {
			return p.Rect
		}
	}
	return geometry.Rect{}
}

func (m Model) pageSize() int {
	return max(m.currentRect().Height-3, 1)
}

func (m Model) scrollBy(delta int) {
	c := m.desk.Focus.Current()
	r := m.currentRect()
	limit := max(len(m.wrapBody(c, r.Width-2))-(r.Height-3), 0)
	m.scroll[c.Key()] = min(max(m.scroll[c.Key()]+delta, 0), limit)
}

func (m Model) deskHeight() int { return max(m.height-1, 0) }

func next[T comparable](list []T, cur T) T {
	return list[(slices.Index(list, cur)+1)%len(list)]
}
