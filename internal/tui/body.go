package tui

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/termfolio/internal/tile"
)

var tabs = strings.NewReplacer("\t", "    ", "\r", "")

// body is the plain-text rendition of a tile. Posts and pages show their
// markdown source; lists are numbered for the open key.
func (m Model) body(c tile.Content) string {
	var sb strings.Builder
	switch c := c.(type) {
	case tile.Home:
		fmt.Fprintf(&sb, "%s\n\n", m.title)
		for i, l := range launcher {
			fmt.Fprintf(&sb, "%d  %s\n", i+1, tile.Title(l))
		}
		if posts := m.src.Posts(); len(posts) > 0 {
			sb.WriteString("\nlatest\n")
			for _, p := range posts[:min(len(posts), 3)] {
				fmt.Fprintf(&sb, "  %s  %s\n", p.Date.Format("2006-01-02"), p.Title)
			}
		}
	case tile.About:
		sb.WriteString(m.page("about"))
	case tile.Contact:
		sb.WriteString(m.page("contact"))
	case tile.Blog:
		posts := m.src.Posts()
		if len(posts) == 0 {
			return "No posts yet."
		}
		for i, p := range posts {
			fmt.Fprintf(&sb, "%d  %s  %s\n", i+1, p.Date.Format("2006-01-02"), p.Title)
		}
	case tile.Projects:
		projects := m.src.Projects()
		if len(projects) == 0 {
			return "No projects yet."
		}
		for i, p := range projects {
			star := " "
			if p.Featured {
				star = "*"
			}
			fmt.Fprintf(&sb, "%d %s %s\n", i+1, star, p.Title)
			if p.Summary != "" {
				fmt.Fprintf(&sb, "    %s\n", p.Summary)
			}
		}
	case tile.Post:
		p, ok := m.src.Post(c.Slug)
		if !ok {
			return fmt.Sprintf("post not found: %s", c.Slug)
		}
		fmt.Fprintf(&sb, "%s\n%s · %d min", p.Title, p.Date.Format("2006-01-02"), p.ReadingTime)
		if len(p.Tags) > 0 {
			fmt.Fprintf(&sb, " · #%s", strings.Join(p.Tags, " #"))
		}
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(p.Source))
	case tile.Project:
		p, ok := m.src.Project(c.Slug)
		if !ok {
			return fmt.Sprintf("project not found: %s", c.Slug)
		}
		sb.WriteString(p.Title + "\n")
		if len(p.Stack) > 0 {
			fmt.Fprintf(&sb, "stack: %s\n", strings.Join(p.Stack, ", "))
		}
		if p.Repo != "" {
			fmt.Fprintf(&sb, "repo:  %s\n", p.Repo)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(p.Source))
	}
	return tabs.Replace(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) page(name string) string {
	p, ok := m.src.Page(name)
	if !ok {
		return "Nothing here yet."
	}
	return strings.TrimSpace(p.Source)
}
