// Package tile holds the ordered registry of open tiles and the focus
// invariant: whenever the registry is non-empty exactly one tile is focused,
// and the home tile can never be closed.
package tile

import (
	"slices"

	"github.com/google/uuid"
)

// Tile is one open panel. Values returned by the registry are copies; look a
// tile up by ID again after any mutation.
type Tile struct {
	ID      string  `json:"id"`
	Content Content `json:"-"`
	Focused bool    `json:"focused"`
}

// Kind is shorthand for t.Content.Kind().
func (t Tile) Kind() Kind { return t.Content.Kind() }

// Option configures a Registry.
type Option func(*Registry)

// WithIDFunc replaces the uuid generator, mostly for tests.
func WithIDFunc(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

// WithMaxOpen bounds the number of open tiles. When a spawn exceeds it the
// oldest tile other than home and the new tile is evicted. Zero disables it.
// Home plus the focused tile is the smallest bound that can hold, so 1 is
// raised to 2.
func WithMaxOpen(n int) Option {
	return func(r *Registry) {
		if n == 1 {
			n = 2
		}
		r.maxOpen = max(n, 0)
	}
}

// Registry owns every Tile record.
type Registry struct {
	tiles     []Tile
	focused   string
	history   []string // focus order, most recent last
	homeID    string
	newID     func() string
	maxOpen   int
	listeners []func()
}

// NewRegistry returns a registry holding only the focused home tile.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	r.homeID = r.newID()
	r.tiles = []Tile{{ID: r.homeID, Content: Home{}}}
	r.setFocus(r.homeID)
	return r
}

// OnChange registers fn to run after every mutation that changed state.
func (r *Registry) OnChange(fn func()) {
	r.listeners = append(r.listeners, fn)
}

func (r *Registry) changed() {
	for _, fn := range r.listeners {
		fn()
	}
}

// Spawn opens c in a new focused tile and returns its id. If a tile showing
// the same content is already open it is refocused instead.
func (r *Registry) Spawn(c Content) string {
	if c == nil {
		return ""
	}
	if i := r.indexByKey(c.Key()); i >= 0 {
		id := r.tiles[i].ID
		if r.focused != id {
			r.setFocus(id)
			r.changed()
		}
		return id
	}

	id := r.newID()
	r.tiles = append(r.tiles, Tile{ID: id, Content: c})
	r.setFocus(id)
	r.evict()
	r.changed()
	return id
}

func (r *Registry) evict() {
	if r.maxOpen == 0 {
		return
	}
	for len(r.tiles) > r.maxOpen {
		victim := slices.IndexFunc(r.tiles, func(t Tile) bool {
			return t.ID != r.homeID && t.ID != r.focused
		})
		if victim < 0 {
			return
		}
		r.remove(victim)
	}
}

// Close removes the tile with the given id. It returns false and does
// nothing for an unknown id, the home tile, or the last remaining tile.
func (r *Registry) Close(id string) bool {
	i := r.Index(id)
	if i < 0 || id == r.homeID || len(r.tiles) <= 1 {
		return false
	}
	wasFocused := r.focused == id
	r.remove(i)
	if wasFocused {
		r.focused = ""
		next := r.homeID
		if n := len(r.history); n > 0 {
			next = r.history[n-1]
		}
		r.setFocus(next)
	}
	r.changed()
	return true
}

// Focus moves focus to id. Unknown ids are ignored.
func (r *Registry) Focus(id string) bool {
	if r.Index(id) < 0 {
		return false
	}
	if r.focused != id {
		r.setFocus(id)
		r.changed()
	}
	return true
}

func (r *Registry) remove(i int) {
	id := r.tiles[i].ID
	r.tiles = slices.Delete(r.tiles, i, i+1)
	r.history = slices.DeleteFunc(r.history, func(h string) bool { return h == id })
}

func (r *Registry) setFocus(id string) {
	r.focused = id
	r.history = slices.DeleteFunc(r.history, func(h string) bool { return h == id })
	r.history = append(r.history, id)
}

func (r *Registry) indexByKey(key string) int {
	return slices.IndexFunc(r.tiles, func(t Tile) bool { return t.Content.Key() == key })
}

// Index returns the registry position of id, or -1.
func (r *Registry) Index(id string) int {
	return slices.IndexFunc(r.tiles, func(t Tile) bool { return t.ID == id })
}

// Tiles returns copies of every tile in registry order.
func (r *Registry) Tiles() []Tile {
	out := make([]Tile, len(r.tiles))
	for i, t := range r.tiles {
		t.Focused = t.ID == r.focused
		out[i] = t
	}
	return out
}

// Get returns a copy of the tile with the given id.
func (r *Registry) Get(id string) (Tile, bool) {
	i := r.Index(id)
	if i < 0 {
		return Tile{}, false
	}
	t := r.tiles[i]
	t.Focused = t.ID == r.focused
	return t, true
}

// Focused returns the focused tile.
func (r *Registry) Focused() Tile {
	t, _ := r.Get(r.focused)
	return t
}

func (r *Registry) Len() int       { return len(r.tiles) }
func (r *Registry) HomeID() string { return r.homeID }
