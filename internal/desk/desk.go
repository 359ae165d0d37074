// Package desk bundles one visitor's tile registry, focus controller,
// layout manager and theme machine, and keeps one bundle per visitor.
package desk

import (
	"slices"

	"github.com/ziadkadry99/termfolio/internal/clientstore"
	"github.com/ziadkadry99/termfolio/internal/focus"
	"github.com/ziadkadry99/termfolio/internal/geometry"
	"github.com/ziadkadry99/termfolio/internal/layout"
	"github.com/ziadkadry99/termfolio/internal/theme"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// DefaultViewport is assumed until the client reports its size. It is wide
// enough to count as a desktop.
var DefaultViewport = layout.Viewport{Width: 1440, Height: 900}

// Options configures every desk a Manager creates.
type Options struct {
	MaxTiles    int
	Tiling      geometry.Options
	Breakpoint  int
	Default     tile.Content
	HistorySize int
	Theme       theme.State // zero value means theme.DefaultState
}

// Desk is one visitor's workspace. It is not safe for concurrent use; the
// Manager serialises access per visitor.
type Desk struct {
	Registry *tile.Registry
	Focus    *focus.Controller
	Layout   *layout.Manager
	Theme    *theme.Machine

	viewport   layout.Viewport
	reported   bool
	placements []layout.Placement
}

// New builds a desk whose theme persists to store.
func New(store clientstore.Storage, opts Options) *Desk {
	var regOpts []tile.Option
	if opts.MaxTiles > 0 {
		regOpts = append(regOpts, tile.WithMaxOpen(opts.MaxTiles))
	}
	reg := tile.NewRegistry(regOpts...)

	lm := layout.New(layout.Options{Tiling: opts.Tiling, Breakpoint: opts.Breakpoint})

	themeOpts := []theme.Option{theme.WithBreakpoint(lm.Breakpoint())}
	if opts.Theme != (theme.State{}) {
		themeOpts = append(themeOpts, theme.WithDefault(opts.Theme))
	}

	d := &Desk{
		Registry: reg,
		Focus: focus.New(reg, focus.Options{
			Default:     opts.Default,
			HistorySize: opts.HistorySize,
		}),
		Layout:   lm,
		Theme:    theme.NewMachine(store, themeOpts...),
		viewport: DefaultViewport,
	}
	reg.OnChange(d.relayout)
	d.relayout()
	return d
}

// relayout recomputes placements. On mobile the pane goes to the tile
// showing the history's current content, which need not be the registry's
// focused tile; if no tile shows it every rect is empty.
func (d *Desk) relayout() {
	tiles := d.Registry.Tiles()
	if d.Focus.Mobile() {
		key := d.Focus.Current().Key()
		for i := range tiles {
			tiles[i].Focused = tiles[i].Content.Key() == key
		}
	}
	d.placements = d.Layout.Compute(tiles, d.viewport)
}

// SetViewport records the client's size and switches focus and theme
// between desktop and single-pane modes.
func (d *Desk) SetViewport(vp layout.Viewport) {
	if vp.Width <= 0 {
		return
	}
	d.viewport = vp
	d.reported = true
	d.Focus.SetMobile(d.Layout.IsMobile(vp.Width))
	d.Theme.SetViewportWidth(vp.Width)
	d.relayout()
}

// Viewport returns the last reported size, or DefaultViewport.
func (d *Desk) Viewport() layout.Viewport { return d.viewport }

// Reported reports whether the client has sent its size yet.
func (d *Desk) Reported() bool { return d.reported }

// Placements is the layout of the registry for the current viewport.
func (d *Desk) Placements() []layout.Placement {
	if d.Focus.Mobile() {
		// history moves bypass the registry's change listeners
		d.relayout()
	}
	return slices.Clone(d.placements)
}

// Open shows content in the mode the desk is in.
func (d *Desk) Open(c tile.Content) { d.Focus.Open(c) }

// TileView is the JSON form of a tile.
type TileView struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Data    string `json:"data,omitempty"`
	Title   string `json:"title"`
	Focused bool   `json:"focused"`
}

// Snapshot is everything a renderer needs to paint the desk.
type Snapshot struct {
	Tiles      []TileView         `json:"tiles"`
	Placements []layout.Placement `json:"placements"`
	Viewport   layout.Viewport    `json:"viewport"`
	Mobile     bool               `json:"mobile"`
	Current    TileView           `json:"current"`
	CanBack    bool               `json:"can_back"`
	CanForward bool               `json:"can_forward"`
	Theme      theme.State        `json:"theme"`
	Displayed  theme.State        `json:"displayed_theme"`
	Vars       []theme.Var        `json:"vars"`
}

func viewOf(t tile.Tile) TileView {
	return TileView{
		ID:      t.ID,
		Kind:    string(t.Kind()),
		Data:    t.Content.Data(),
		Title:   tile.Title(t.Content),
		Focused: t.Focused,
	}
}

// Snapshot captures the desk's current state.
func (d *Desk) Snapshot() Snapshot {
	tiles := d.Registry.Tiles()
	views := make([]TileView, len(tiles))
	for i, t := range tiles {
		views[i] = viewOf(t)
	}

	cur := d.Focus.Current()
	s := Snapshot{
		Tiles:      views,
		Placements: d.Placements(),
		Viewport:   d.viewport,
		Mobile:     d.Focus.Mobile(),
		Current:    TileView{Kind: string(cur.Kind()), Data: cur.Data(), Title: tile.Title(cur), Focused: true},
		Theme:      d.Theme.Stored(),
		Displayed:  d.Theme.Displayed(),
		Vars:       d.Theme.Vars(),
	}
	if !s.Mobile {
		s.Current = viewOf(d.Registry.Focused())
		return s
	}
	if h := d.Focus.History(); h != nil {
		s.CanBack, s.CanForward = h.CanBack(), h.CanForward()
	}
	for _, p := range s.Placements {
		if p.Focused {
			s.Current.ID = p.TileID
		}
	}
	return s
}
