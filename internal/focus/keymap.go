package focus

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap binds desk actions to keys. Keys use bubbletea's string form
// ("alt+right", "alt+enter"); the web client builds the same strings.
type KeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Close key.Binding
	Spawn key.Binding
}

// DefaultKeyMap returns the mod+direction bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("alt+right", "alt+down", "alt+l", "alt+j"),
			key.WithHelp("alt+→", "next tile"),
		),
		Prev: key.NewBinding(
			key.WithKeys("alt+left", "alt+up", "alt+h", "alt+k"),
			key.WithHelp("alt+←", "previous tile"),
		),
		Close: key.NewBinding(
			key.WithKeys("alt+w"),
			key.WithHelp("alt+w", "close tile"),
		),
		Spawn: key.NewBinding(
			key.WithKeys("alt+n", "alt+enter"),
			key.WithHelp("alt+n", "new tile"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Close, k.Spawn}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func matches(s string, b key.Binding) bool {
	return b.Enabled() && slices.Contains(b.Keys(), s)
}
