// Package layout maps the tile registry onto concrete rectangles for the
// current viewport.
package layout

import (
	"slices"

	"github.com/ziadkadry99/termfolio/internal/geometry"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// DefaultBreakpoint is the viewport width (CSS pixels) below which the desk
// collapses to a single pane.
const DefaultBreakpoint = 1024

// Viewport is the area available to the desk.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Placement pairs a tile with its rectangle.
type Placement struct {
	TileID  string        `json:"tile_id"`
	Rect    geometry.Rect `json:"rect"`
	Focused bool          `json:"focused"`
}

// Options configures a Manager.
type Options struct {
	Tiling     geometry.Options
	Breakpoint int
}

// Manager recomputes placements, memoizing the last input/output pair.
type Manager struct {
	opts       Options
	lastKey    []string
	lastVP     Viewport
	last       []Placement
	recomputes int
}

// New creates a Manager. A zero Breakpoint means DefaultBreakpoint.
func New(opts Options) *Manager {
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}
	return &Manager{opts: opts}
}

// IsMobile reports whether width falls below the single-pane breakpoint.
func (m *Manager) IsMobile(width int) bool {
	return width < m.opts.Breakpoint
}

// Breakpoint returns the configured single-pane breakpoint.
func (m *Manager) Breakpoint() int { return m.opts.Breakpoint }

// Compute returns one placement per tile, in registry order. On a mobile
// viewport the focused tile fills the viewport and the rest get zero rects.
func (m *Manager) Compute(tiles []tile.Tile, vp Viewport) []Placement {
	key := memoKey(tiles)
	if m.last != nil && vp == m.lastVP && slices.Equal(key, m.lastKey) {
		return slices.Clone(m.last)
	}

	bounds := geometry.Rect{Width: max(vp.Width, 0), Height: max(vp.Height, 0)}
	out := make([]Placement, len(tiles))
	if m.IsMobile(vp.Width) {
		for i, t := range tiles {
			out[i] = Placement{TileID: t.ID, Focused: t.Focused}
			if t.Focused {
				out[i].Rect = bounds
			}
		}
	} else {
		rects := geometry.Tile(len(tiles), bounds, m.opts.Tiling)
		for i, t := range tiles {
			out[i] = Placement{TileID: t.ID, Rect: rects[i], Focused: t.Focused}
		}
	}

	m.lastKey, m.lastVP, m.last = key, vp, out
	m.recomputes++
	return slices.Clone(out)
}

// Recomputes counts how many times Compute did real work.
func (m *Manager) Recomputes() int { return m.recomputes }

func memoKey(tiles []tile.Tile) []string {
	key := make([]string, len(tiles))
	for i, t := range tiles {
		key[i] = t.ID
		if t.Focused {
			key[i] += "*"
		}
	}
	return key
}
