package theme

import (
	"fmt"
	"strings"
)

// StorageKey is the fixed key the theme is persisted under.
const StorageKey = "termfolio.theme"

// State is the user's chosen theme. Its JSON form is what gets persisted.
type State struct {
	Preset     Preset     `json:"preset"`
	Accent     Accent     `json:"accentColor"`
	Background Background `json:"backgroundImage"`
}

// DefaultState is used when nothing (or garbage) is stored.
func DefaultState() State {
	return State{Preset: PresetNight, Accent: AccentMauve, Background: BackgroundNone}
}

// MobileTheme is the fixed preset/accent shown below the breakpoint. The
// stored background still shows through.
var MobileTheme = struct {
	Preset Preset
	Accent Accent
}{PresetNight, AccentGreen}

// Valid reports whether every field is a member of its enum.
func (s State) Valid() bool {
	_, p := ParsePreset(string(s.Preset))
	_, a := ParseAccent(string(s.Accent))
	_, b := ParseBackground(string(s.Background))
	return p && a && b
}

// normalized replaces invalid fields with their defaults.
func (s State) normalized() State {
	return s.withDefaults(DefaultState())
}

func (s State) withDefaults(def State) State {
	if _, ok := ParsePreset(string(s.Preset)); !ok {
		s.Preset = def.Preset
	}
	if _, ok := ParseAccent(string(s.Accent)); !ok {
		s.Accent = def.Accent
	}
	if _, ok := ParseBackground(string(s.Background)); !ok {
		s.Background = def.Background
	}
	return s
}

// Display derives the theme that is actually shown. It never changes the
// stored state: a narrow viewport only swaps what is displayed.
func Display(stored State, mobile bool) State {
	if !mobile {
		return stored
	}
	stored.Preset = MobileTheme.Preset
	stored.Accent = MobileTheme.Accent
	return stored
}

// Var is one CSS custom property.
type Var struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Vars derives the CSS custom properties for s in a stable order.
func Vars(s State) []Var {
	s = s.normalized()
	p := PaletteFor(s)
	return []Var{
		{"--bg", p.Bg},
		{"--surface", p.Surface},
		{"--overlay", p.Overlay},
		{"--text", p.Text},
		{"--subtext", p.Subtext},
		{"--muted", p.Muted},
		{"--border", p.Border},
		{"--accent", p.Accent},
		{"--accent-hover", p.AccentHover},
		{"--accent-muted", p.AccentMuted},
		{"--bg-image", backgroundCSS(s.Background)},
		{"--preset", string(s.Preset)},
	}
}

// CSS renders vars as a rule for selector.
func CSS(selector string, vars []Var) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, v := range vars {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// MobileOverrideCSS is the higher-priority layer that forces the mobile
// palette below the breakpoint even before the client has reported its
// width. It only touches presentation.
func MobileOverrideCSS(breakpoint int) string {
	forced := Vars(Display(DefaultState(), true))
	// Background stays whatever the stored state says.
	colours := forced[:len(forced)-2]
	return fmt.Sprintf("@media (max-width: %dpx) {\n%s}\n", breakpoint-1,
		CSS("  :root:not([data-viewport])", colours))
}
