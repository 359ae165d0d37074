package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/ziadkadry99/termfolio/internal/focus"
)

// keyMap holds the terminal-only bindings. Desk traversal keys live in
// focus.KeyMap and are matched by the controller.
type keyMap struct {
	desk focus.KeyMap

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Open     key.Binding
	Back     key.Binding

	Home     key.Binding
	About    key.Binding
	Projects key.Binding
	Blog     key.Binding
	Contact  key.Binding

	Preset     key.Binding
	Accent     key.Binding
	Background key.Binding
	ResetTheme key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap(desk focus.KeyMap) keyMap {
	return keyMap{
		desk:       desk,
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "scroll down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " "), key.WithHelp("pgdn", "page down")),
		Open:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "open item")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Home:       key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		About:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
		Projects:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		Blog:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "blog")),
		Contact:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "contact")),
		Preset:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Accent:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "accent")),
		Background: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "backdrop")),
		ResetTheme: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset theme")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return append(k.desk.ShortHelp(), k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		k.localHelp(),
	}
}

func (k keyMap) localHelp() []key.Binding {
	return []key.Binding{
		k.Open, k.Down, k.Up, k.Back,
		k.About, k.Projects, k.Blog, k.Contact,
		k.Preset, k.Accent, k.Background, k.ResetTheme,
		k.Help, k.Quit,
	}
}
