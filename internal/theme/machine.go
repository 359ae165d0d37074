// Package theme holds the preset/accent/background state machine and derives
// the CSS variables (and terminal colours) every visual component reads.
package theme

import (
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/ziadkadry99/termfolio/internal/clientstore"
	"github.com/ziadkadry99/termfolio/internal/layout"
)

// Option configures a Machine.
type Option func(*Machine)

// WithBreakpoint sets the viewport width below which MobileTheme is shown.
func WithBreakpoint(px int) Option {
	return func(m *Machine) {
		if px > 0 {
			m.breakpoint = px
		}
	}
}

// WithDefault replaces DefaultState as the fallback for missing or corrupt
// storage. Invalid fields of def are ignored.
func WithDefault(def State) Option {
	return func(m *Machine) { m.def = def.normalized() }
}

// Machine is the theme state machine for one client.
type Machine struct {
	store      clientstore.Storage
	def        State
	stored     State
	breakpoint int
	mobile     bool
	listeners  []func(State, []Var)
}

// NewMachine restores the stored state from store. Absent or unreadable
// state falls back to the default without error.
func NewMachine(store clientstore.Storage, opts ...Option) *Machine {
	m := &Machine{
		store:      store,
		def:        DefaultState(),
		breakpoint: layout.DefaultBreakpoint,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.stored = m.load()
	return m
}

func (m *Machine) load() State {
	data, err := m.store.Load(StorageKey)
	if err != nil {
		if !errors.Is(err, clientstore.ErrNotFound) {
			log.Warn("loading theme, using default", "err", err)
		}
		return m.def
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		log.Debug("stored theme is corrupt, using default", "err", err)
		return m.def
	}
	return s.withDefaults(m.def)
}

// OnPublish registers fn to receive the displayed state and its CSS
// variables whenever they change.
func (m *Machine) OnPublish(fn func(State, []Var)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Machine) publish() {
	shown := m.Displayed()
	vars := Vars(shown)
	for _, fn := range m.listeners {
		fn(shown, vars)
	}
}

// SetPreset switches the preset. Invalid names are ignored (false).
func (m *Machine) SetPreset(name string) bool {
	p, ok := ParsePreset(name)
	if !ok {
		return false
	}
	next := m.stored
	next.Preset = p
	m.commit(next)
	return true
}

// SetAccent switches the accent colour. Invalid names are ignored (false).
func (m *Machine) SetAccent(name string) bool {
	a, ok := ParseAccent(name)
	if !ok {
		return false
	}
	next := m.stored
	next.Accent = a
	m.commit(next)
	return true
}

// SetBackground switches the background. Invalid names are ignored (false).
func (m *Machine) SetBackground(name string) bool {
	b, ok := ParseBackground(name)
	if !ok {
		return false
	}
	next := m.stored
	next.Background = b
	m.commit(next)
	return true
}

func (m *Machine) commit(next State) {
	if next == m.stored {
		return
	}
	before := m.Displayed()
	m.stored = next
	m.save()
	if m.Displayed() != before {
		m.publish()
	}
}

// save persists the stored state. Failures are logged; the in-memory state
// stays authoritative for this session.
func (m *Machine) save() {
	data, err := json.Marshal(m.stored)
	if err != nil {
		log.Error("encoding theme", "err", err)
		return
	}
	if err := m.store.Save(StorageKey, data); err != nil {
		log.Warn("persisting theme", "err", err)
	}
}

// SetViewportWidth is the viewport observer. It toggles the mobile overlay
// and never writes to storage.
func (m *Machine) SetViewportWidth(width int) {
	mobile := width < m.breakpoint
	if mobile == m.mobile {
		return
	}
	before := m.Displayed()
	m.mobile = mobile
	if m.Displayed() != before {
		m.publish()
	}
}

// Reset forgets the stored state and returns to the default.
func (m *Machine) Reset() error {
	if err := m.store.Delete(StorageKey); err != nil {
		return err
	}
	before := m.Displayed()
	m.stored = m.def
	if m.Displayed() != before {
		m.publish()
	}
	return nil
}

// Stored returns the authoritative, user-chosen state.
func (m *Machine) Stored() State { return m.stored }

// Displayed returns what is currently shown.
func (m *Machine) Displayed() State { return Display(m.stored, m.mobile) }

// Mobile reports whether the mobile overlay is active.
func (m *Machine) Mobile() bool { return m.mobile }

// Breakpoint returns the mobile breakpoint in the viewport's units.
func (m *Machine) Breakpoint() int { return m.breakpoint }

// Vars returns the CSS variables of the displayed state.
func (m *Machine) Vars() []Var { return Vars(m.Displayed()) }

// Palette returns the colours of the displayed state.
func (m *Machine) Palette() Palette { return PaletteFor(m.Displayed()) }
