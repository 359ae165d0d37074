package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/termfolio/internal/theme"
)

// styles is the lipgloss rendition of one theme palette.
type styles struct {
	border        lipgloss.Style
	borderFocused lipgloss.Style
	title         lipgloss.Style
	titleFocused  lipgloss.Style
	text          lipgloss.Style
	muted         lipgloss.Style
	accent        lipgloss.Style
	status        lipgloss.Style
	statusTitle   lipgloss.Style
	gap           lipgloss.Style
	fill          string // one cell drawn in gutters
}

func newStyles(p theme.Palette, bg theme.Background) styles {
	return styles{
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Accent)),
		title:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Subtext)),
		titleFocused: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		text:         lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		muted:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		accent:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Subtext)).
			Background(lipgloss.Color(p.Surface)),
		statusTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Bg)).
			Background(lipgloss.Color(p.Accent)).
			Bold(true),
		gap:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Overlay)),
		fill: gutterFill(bg),
	}
}

func gutterFill(bg theme.Background) string {
	switch bg {
	case theme.BackgroundGrid:
		return "+"
	case theme.BackgroundDots:
		return "·"
	case theme.BackgroundWaves:
		return "~"
	case theme.BackgroundStars:
		return "*"
	default:
		return " "
	}
}
