package theme

import (
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Preset is a named bundle of base colours.
type Preset string

const (
	PresetDaylight Preset = "daylight"
	PresetArctic   Preset = "arctic"
	PresetNight    Preset = "night"
)

// Presets lists every preset.
var Presets = []Preset{PresetDaylight, PresetArctic, PresetNight}

// Accent is a highlight hue layered over a preset.
type Accent string

const (
	AccentRose     Accent = "rose"
	AccentFlamingo Accent = "flamingo"
	AccentPink     Accent = "pink"
	AccentMauve    Accent = "mauve"
	AccentRed      Accent = "red"
	AccentMaroon   Accent = "maroon"
	AccentPeach    Accent = "peach"
	AccentYellow   Accent = "yellow"
	AccentGreen    Accent = "green"
	AccentTeal     Accent = "teal"
	AccentSky      Accent = "sky"
	AccentSapphire Accent = "sapphire"
	AccentBlue     Accent = "blue"
	AccentLavender Accent = "lavender"
	AccentSlate    Accent = "slate"
)

// Accents lists every accent in display order.
var Accents = []Accent{
	AccentRose, AccentFlamingo, AccentPink, AccentMauve, AccentRed,
	AccentMaroon, AccentPeach, AccentYellow, AccentGreen, AccentTeal,
	AccentSky, AccentSapphire, AccentBlue, AccentLavender, AccentSlate,
}

// Background names a decorative desk background.
type Background string

const (
	BackgroundNone  Background = "none"
	BackgroundGrid  Background = "grid"
	BackgroundDots  Background = "dots"
	BackgroundWaves Background = "waves"
	BackgroundStars Background = "stars"
)

// Backgrounds lists every background.
var Backgrounds = []Background{BackgroundNone, BackgroundGrid, BackgroundDots, BackgroundWaves, BackgroundStars}

// ParsePreset validates s against the preset enum.
func ParsePreset(s string) (Preset, bool) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	return p, slices.Contains(Presets, p)
}

// ParseAccent validates s against the accent enum.
func ParseAccent(s string) (Accent, bool) {
	a := Accent(strings.ToLower(strings.TrimSpace(s)))
	return a, slices.Contains(Accents, a)
}

// ParseBackground validates s against the background enum.
func ParseBackground(s string) (Background, bool) {
	b := Background(strings.ToLower(strings.TrimSpace(s)))
	return b, slices.Contains(Backgrounds, b)
}

// Palette is the resolved set of colours for one theme state, as hex.
type Palette struct {
	Bg          string
	Surface     string
	Overlay     string
	Text        string
	Subtext     string
	Muted       string
	Border      string
	Accent      string
	AccentHover string
	AccentMuted string
}

type base struct {
	bg, surface, overlay, text, subtext, muted, border string
	light                                              bool
}

var bases = map[Preset]base{
	PresetDaylight: {"#eff1f5", "#e6e9ef", "#ccd0da", "#4c4f69", "#6c6f85", "#9ca0b0", "#bcc0cc", true},
	PresetArctic:   {"#2e3440", "#3b4252", "#434c5e", "#eceff4", "#d8dee9", "#7b88a1", "#4c566a", false},
	PresetNight:    {"#1e1e2e", "#181825", "#313244", "#cdd6f4", "#bac2de", "#6c7086", "#45475a", false},
}

// accentHex holds {dark-preset, light-preset} variants.
var accentHex = map[Accent][2]string{
	AccentRose:     {"#f5e0dc", "#dc8a78"},
	AccentFlamingo: {"#f2cdcd", "#dd7878"},
	AccentPink:     {"#f5c2e7", "#ea76cb"},
	AccentMauve:    {"#cba6f7", "#8839ef"},
	AccentRed:      {"#f38ba8", "#d20f39"},
	AccentMaroon:   {"#eba0ac", "#e64553"},
	AccentPeach:    {"#fab387", "#fe640b"},
	AccentYellow:   {"#f9e2af", "#df8e1d"},
	AccentGreen:    {"#a6e3a1", "#40a02b"},
	AccentTeal:     {"#94e2d5", "#179299"},
	AccentSky:      {"#89dceb", "#04a5e5"},
	AccentSapphire: {"#74c7ec", "#209fb5"},
	AccentBlue:     {"#89b4fa", "#1e66f5"},
	AccentLavender: {"#b4befe", "#7287fd"},
	AccentSlate:    {"#9399b2", "#7c7f93"},
}

// PaletteFor resolves the colours of s. Unknown values fall back to the
// defaults so a palette is always complete.
func PaletteFor(s State) Palette {
	s = s.normalized()
	b := bases[s.Preset]
	variant := 0
	if b.light {
		variant = 1
	}
	accent := accentHex[s.Accent][variant]

	return Palette{
		Bg:          b.bg,
		Surface:     b.surface,
		Overlay:     b.overlay,
		Text:        b.text,
		Subtext:     b.subtext,
		Muted:       b.muted,
		Border:      b.border,
		Accent:      accent,
		AccentHover: blend(accent, b.text, 0.25),
		AccentMuted: blend(accent, b.bg, 0.75),
	}
}

func blend(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return from
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return a.BlendLab(b, t).Clamped().Hex()
}

// backgroundCSS renders a background as a CSS background-image value. The
// patterns reference --overlay so they follow the preset.
func backgroundCSS(b Background) string {
	switch b {
	case BackgroundGrid:
		return "linear-gradient(var(--overlay) 1px, transparent 1px), linear-gradient(90deg, var(--overlay) 1px, transparent 1px)"
	case BackgroundDots:
		return "radial-gradient(var(--overlay) 1px, transparent 1px)"
	case BackgroundWaves:
		return "repeating-radial-gradient(circle at 0 100%, transparent 0, transparent 18px, var(--overlay) 19px, transparent 20px)"
	case BackgroundStars:
		return "radial-gradient(1px 1px at 20% 30%, var(--subtext), transparent), radial-gradient(1px 1px at 70% 80%, var(--muted), transparent), radial-gradient(1px 1px at 40% 60%, var(--text), transparent)"
	default:
		return "none"
	}
}
