package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/ziadkadry99/termfolio/internal/geometry"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// View implements tea.Model. The result is exactly height rows of exactly
// width cells.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	st := newStyles(m.desk.Theme.Palette(), m.desk.Theme.Displayed().Background)

	rows := m.renderDesk(st)
	rows = append(rows, m.statusBar(st))
	return strings.Join(rows, "\n")
}

// segment is one tile's slice of a screen row.
type segment struct {
	x, w int
	s    string
}

// renderDesk composites every visible tile into deskHeight rows.
func (m Model) renderDesk(st styles) []string {
	h := m.deskHeight()
	grid := make([][]segment, h)
	blit := func(r geometry.Rect, lines []string) {
		for dy, line := range lines {
			if y := r.Y + dy; y >= 0 && y < h {
				grid[y] = append(grid[y], segment{x: r.X, w: r.Width, s: line})
			}
		}
	}

	if m.desk.Focus.Mobile() {
		r := geometry.Rect{Width: m.width, Height: h}
		blit(r, m.renderTile(st, m.desk.Focus.Current(), r, true))
	} else {
		tiles := m.desk.Registry.Tiles()
		for i, p := range m.desk.Placements() {
			if p.Rect.Empty() {
				continue
			}
			blit(p.Rect, m.renderTile(st, tiles[i].Content, p.Rect, p.Focused))
		}
	}

	rows := make([]string, h)
	for y, segs := range grid {
		slices.SortFunc(segs, func(a, b segment) int { return a.x - b.x })
		var sb strings.Builder
		pos := 0
		for _, s := range segs {
			if s.x > pos {
				sb.WriteString(st.gap.Render(strings.Repeat(st.fill, s.x-pos)))
			}
			sb.WriteString(s.s)
			pos = s.x + s.w
		}
		if pos < m.width {
			sb.WriteString(st.gap.Render(strings.Repeat(st.fill, m.width-pos)))
		}
		rows[y] = fitWidth(sb.String(), m.width)
	}
	return rows
}

// renderTile draws c as a bordered box of exactly r's size.
func (m Model) renderTile(st styles, c tile.Content, r geometry.Rect, focused bool) []string {
	if r.Width < 4 || r.Height < 3 {
		lines := make([]string, r.Height)
		for i := range lines {
			lines[i] = strings.Repeat(" ", r.Width)
		}
		return lines
	}
	innerW, innerH := r.Width-2, r.Height-2

	title, box := st.title, st.border
	if focused {
		title, box = st.titleFocused, st.borderFocused
	}

	body := m.wrapBody(c, innerW)
	off := min(m.scroll[c.Key()], max(len(body)-(innerH-1), 0))

	lines := make([]string, 0, innerH)
	lines = append(lines, fitWidth(title.Render(tile.Title(c)), innerW))
	for i := off; i < len(body) && len(lines) < innerH; i++ {
		lines = append(lines, fitWidth(st.text.Render(body[i]), innerW))
	}
	for len(lines) < innerH {
		lines = append(lines, strings.Repeat(" ", innerW))
	}

	out := strings.Split(box.Render(strings.Join(lines, "\n")), "\n")
	for i := range out {
		out[i] = fitWidth(out[i], r.Width)
	}
	return out
}

// wrapBody is the plain-text body of c wrapped to width cells.
func (m Model) wrapBody(c tile.Content, width int) []string {
	if width < 1 {
		return nil
	}
	return strings.Split(ansi.Wrap(m.body(c), width, ""), "\n")
}

func (m Model) statusBar(st styles) string {
	d := m.desk.Theme.Displayed()
	left := st.statusTitle.Render(" "+m.title+" ") + " " + tile.Title(m.desk.Focus.Current()) +
		st.muted.Render(fmt.Sprintf("  %s/%s", d.Preset, d.Accent))

	bindings := m.keys.ShortHelp()
	if m.moreKeys {
		bindings = m.keys.localHelp()
	}
	m.help.Width = max(m.width-ansi.StringWidth(left)-2, 0)
	right := m.help.ShortHelpView(bindings)

	gap := max(m.width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	return st.status.Render(fitWidth(left+strings.Repeat(" ", gap)+right, m.width))
}

// fitWidth truncates or pads s to exactly w cells.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "")
	if n := ansi.StringWidth(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}
