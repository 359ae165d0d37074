package focus

import "github.com/ziadkadry99/termfolio/internal/tile"

// DefaultHistorySize bounds the mobile content history.
const DefaultHistorySize = 16

// History is the single-pane navigation stack used on mobile. Its current
// entry is the FocusContent pointer.
type History struct {
	entries []tile.Content
	pos     int
	limit   int
}

// NewHistory starts a history at start. limit <= 0 means DefaultHistorySize.
func NewHistory(limit int, start tile.Content) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	if start == nil {
		start = tile.Home{}
	}
	return &History{entries: []tile.Content{start}, limit: limit}
}

// Current returns the content shown in the single pane.
func (h *History) Current() tile.Content { return h.entries[h.pos] }

// Navigate pushes c, dropping any forward entries. Navigating to the current
// content is a no-op.
func (h *History) Navigate(c tile.Content) bool {
	if c == nil || c.Key() == h.Current().Key() {
		return false
	}
	h.entries = append(h.entries[:h.pos+1], c)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = h.entries[over:]
	}
	h.pos = len(h.entries) - 1
	return true
}

// Back moves one entry back, if possible.
func (h *History) Back() bool {
	if h.pos == 0 {
		return false
	}
	h.pos--
	return true
}

// Forward moves one entry forward, if possible.
func (h *History) Forward() bool {
	if h.pos >= len(h.entries)-1 {
		return false
	}
	h.pos++
	return true
}

func (h *History) CanBack() bool    { return h.pos > 0 }
func (h *History) CanForward() bool { return h.pos < len(h.entries)-1 }
func (h *History) Len() int         { return len(h.entries) }
