package desk

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ziadkadry99/termfolio/internal/clientstore"
	"github.com/ziadkadry99/termfolio/internal/db"
	"github.com/ziadkadry99/termfolio/internal/theme"
)

// DefaultTTL is how long an idle desk stays in memory. The theme outlives
// it in storage; tiles do not.
const DefaultTTL = 30 * time.Minute

type session struct {
	mu       sync.Mutex
	desk     *Desk
	lastSeen time.Time
}

// Manager keeps one desk per visitor id.
type Manager struct {
	db   *db.DB
	opts Options
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	onTheme  func(visitorID string, shown theme.State)
}

// NewManager creates a Manager. With a nil database, themes live in memory
// only.
func NewManager(database *db.DB, opts Options, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		db:       database,
		opts:     opts,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*session{},
	}
}

func (m *Manager) storage(visitorID string) clientstore.Storage {
	if m.db == nil {
		return clientstore.NewMemory()
	}
	return clientstore.ForVisitor(m.db, visitorID)
}

// OnThemeChange registers fn to run whenever a visitor's displayed theme
// changes. It must be set before the first request; fn runs with the
// visitor's desk locked.
func (m *Manager) OnThemeChange(fn func(visitorID string, shown theme.State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTheme = fn
}

func (m *Manager) session(visitorID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[visitorID]
	if !ok {
		d := New(m.storage(visitorID), m.opts)
		if fn := m.onTheme; fn != nil {
			d.Theme.OnPublish(func(shown theme.State, _ []theme.Var) { fn(visitorID, shown) })
		}
		s = &session{desk: d}
		m.sessions[visitorID] = s
		log.Debug("desk created", "visitor", visitorID)
	}
	s.lastSeen = m.now()
	return s
}

// With runs fn with exclusive access to the visitor's desk, creating the
// desk on first use. Every mutation for one visitor goes through here so
// handlers never interleave.
func (m *Manager) With(visitorID string, fn func(*Desk)) {
	s := m.session(visitorID)
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.desk)
}

// Sweep drops desks idle for longer than the TTL and returns how many went.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Debug("idle desks dropped", "count", n)
			}
		}
	}
}

// Len reports how many desks are in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
