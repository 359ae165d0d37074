// Package focus drives keyboard focus traversal over the tile registry and,
// on narrow viewports, a single-pane content history instead.
package focus

import (
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// Action reports what a key press did.
type Action int

const (
	ActionNone Action = iota
	ActionFocusNext
	ActionFocusPrev
	ActionClose
	ActionSpawn
	ActionBack
	ActionForward
)

func (a Action) String() string {
	switch a {
	case ActionFocusNext:
		return "focus-next"
	case ActionFocusPrev:
		return "focus-prev"
	case ActionClose:
		return "close"
	case ActionSpawn:
		return "spawn"
	case ActionBack:
		return "back"
	case ActionForward:
		return "forward"
	default:
		return "none"
	}
}

// Options configures a Controller.
type Options struct {
	Keys        KeyMap
	Default     tile.Content // spawned by the "open new" key
	HistorySize int
}

// Controller owns focus movement for one desk.
type Controller struct {
	reg     *tile.Registry
	keys    KeyMap
	def     tile.Content
	histMax int
	mobile  bool
	history *History
}

// New creates a Controller over reg. Zero options get the default key map
// and About as the default content.
func New(reg *tile.Registry, opts Options) *Controller {
	if len(opts.Keys.Next.Keys()) == 0 {
		opts.Keys = DefaultKeyMap()
	}
	if opts.Default == nil {
		opts.Default = tile.About{}
	}
	return &Controller{
		reg:     reg,
		keys:    opts.Keys,
		def:     opts.Default,
		histMax: opts.HistorySize,
	}
}

// Keys returns the key map in use.
func (c *Controller) Keys() KeyMap { return c.keys }

// Registry returns the registry the controller drives.
func (c *Controller) Registry() *tile.Registry { return c.reg }

// HandleKey dispatches a key press. Unbound keys return ActionNone. An
// action that turned out to be a no-op (e.g. back at the start of history)
// still reports which action the key maps to.
func (c *Controller) HandleKey(k string) Action {
	switch {
	case matches(k, c.keys.Next):
		if c.mobile {
			c.Forward()
			return ActionForward
		}
		c.Next()
		return ActionFocusNext
	case matches(k, c.keys.Prev):
		if c.mobile {
			c.Back()
			return ActionBack
		}
		c.Prev()
		return ActionFocusPrev
	case matches(k, c.keys.Close):
		if c.mobile {
			return ActionNone
		}
		c.CloseFocused()
		return ActionClose
	case matches(k, c.keys.Spawn):
		c.Open(c.def)
		return ActionSpawn
	}
	return ActionNone
}

// Next focuses the tile after the focused one, wrapping at the end.
func (c *Controller) Next() bool { return c.step(1) }

// Prev focuses the tile before the focused one, wrapping at the start.
func (c *Controller) Prev() bool { return c.step(-1) }

func (c *Controller) step(delta int) bool {
	n := c.reg.Len()
	if n < 2 {
		return false
	}
	i := c.reg.Index(c.reg.Focused().ID)
	next := ((i+delta)%n + n) % n
	return c.reg.Focus(c.reg.Tiles()[next].ID)
}

// CloseFocused closes the focused tile. The home tile stays open.
func (c *Controller) CloseFocused() bool {
	return c.Close(c.reg.Focused().ID)
}

// Close closes the tile with the given id. Single-pane mode has nothing to
// close, so it is a no-op there like the close key.
func (c *Controller) Close(id string) bool {
	if c.mobile {
		return false
	}
	return c.reg.Close(id)
}

// Select gives focus to the tile with the given id. On mobile the tile's
// content becomes the next history entry instead. Unknown ids are ignored.
func (c *Controller) Select(id string) bool {
	if !c.mobile {
		return c.reg.Focus(id)
	}
	t, ok := c.reg.Get(id)
	if !ok {
		return false
	}
	c.history.Navigate(t.Content)
	return true
}

// Open shows content: a new (or refocused) tile on the desktop, a history
// entry on mobile.
func (c *Controller) Open(content tile.Content) {
	if content == nil {
		return
	}
	if c.mobile {
		c.history.Navigate(content)
		return
	}
	c.reg.Spawn(content)
}

// Back steps the mobile history back. It does nothing on the desktop.
func (c *Controller) Back() bool {
	return c.mobile && c.history.Back()
}

// Forward steps the mobile history forward. It does nothing on the desktop.
func (c *Controller) Forward() bool {
	return c.mobile && c.history.Forward()
}

// SetMobile switches between tiled and single-pane focus. Entering mobile
// seeds the history with the focused tile; leaving it opens whatever the
// single pane was showing.
func (c *Controller) SetMobile(mobile bool) {
	if mobile == c.mobile {
		return
	}
	c.mobile = mobile
	if mobile {
		c.history = NewHistory(c.histMax, c.reg.Focused().Content)
		return
	}
	current := c.history.Current()
	c.history = nil
	c.reg.Spawn(current)
}

// Mobile reports whether single-pane focus is active.
func (c *Controller) Mobile() bool { return c.mobile }

// History returns the mobile history, or nil on the desktop.
func (c *Controller) History() *History { return c.history }

// Current returns the content that has focus.
func (c *Controller) Current() tile.Content {
	if c.mobile {
		return c.history.Current()
	}
	return c.reg.Focused().Content
}
