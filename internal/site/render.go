package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/feed"
	"github.com/ziadkadry99/termfolio/internal/geometry"
	"github.com/ziadkadry99/termfolio/internal/layout"
	"github.com/ziadkadry99/termfolio/internal/pagecache"
	"github.com/ziadkadry99/termfolio/internal/theme"
	"github.com/ziadkadry99/termfolio/internal/tile"
)

// pageData is passed to the desk, detail and not-found templates.
type pageData struct {
	Meta       feed.Meta
	Title      string
	Reported   bool
	Mobile     bool
	Launcher   []spawnLink
	ThemeForm  themeForm
	Tiles      []tilePane
	Pane       *tilePane
	CanBack    bool
	CanForward bool
	Hints      []hint
}

// tilePane is one rendered tile.
type tilePane struct {
	ID       string
	Kind     tile.Kind
	Data     string
	Title    string
	Focused  bool
	Closable bool
	Style    template.CSS
	Body     template.HTML
}

type spawnLink struct {
	Kind  tile.Kind
	Data  string
	Label string
}

type option struct {
	Value    string
	Selected bool
}

type themeForm struct {
	Presets     []option
	Accents     []option
	Backgrounds []option
}

type hint struct{ Key, Desc string }

var launcher = []spawnLink{
	{Kind: tile.KindAbout, Label: "about"},
	{Kind: tile.KindProjects, Label: "projects"},
	{Kind: tile.KindBlog, Label: "blog"},
	{Kind: tile.KindContact, Label: "contact"},
}

func newThemeForm(s theme.State) themeForm {
	var f themeForm
	for _, p := range theme.Presets {
		f.Presets = append(f.Presets, option{string(p), p == s.Preset})
	}
	for _, a := range theme.Accents {
		f.Accents = append(f.Accents, option{string(a), a == s.Accent})
	}
	for _, b := range theme.Backgrounds {
		f.Backgrounds = append(f.Backgrounds, option{string(b), b == s.Background})
	}
	return f
}

// deskPage renders every tile of d. The caller holds the desk.
func (s *Site) deskPage(ctx context.Context, d *desk.Desk) pageData {
	snap := d.Snapshot()
	data := pageData{
		Meta:       s.meta,
		Title:      strings.TrimPrefix(snap.Current.Title, "~/"),
		Reported:   d.Reported(),
		Mobile:     snap.Mobile,
		Launcher:   launcher,
		ThemeForm:  newThemeForm(snap.Theme),
		CanBack:    snap.CanBack,
		CanForward: snap.CanForward,
	}
	for _, b := range d.Focus.Keys().ShortHelp() {
		data.Hints = append(data.Hints, hint{Key: b.Help().Key, Desc: b.Help().Desc})
	}

	if snap.Mobile {
		c := d.Focus.Current()
		data.Pane = &tilePane{
			Kind:    c.Kind(),
			Data:    c.Data(),
			Title:   tile.Title(c),
			Focused: true,
			Body:    s.tileBody(ctx, c),
		}
		return data
	}

	vp := d.Viewport()
	tiles := d.Registry.Tiles()
	for i, p := range snap.Placements {
		t := tiles[i]
		data.Tiles = append(data.Tiles, tilePane{
			ID:       t.ID,
			Kind:     t.Kind(),
			Data:     t.Content.Data(),
			Title:    tile.Title(t.Content),
			Focused:  p.Focused,
			Closable: t.ID != d.Registry.HomeID(),
			Style:    placementStyle(p.Rect, vp),
			Body:     s.tileBody(ctx, t.Content),
		})
	}
	return data
}

// placementStyle positions a tile in percentages of the viewport so the
// layout survives small resizes between reports.
func placementStyle(r geometry.Rect, vp layout.Viewport) template.CSS {
	if vp.Width <= 0 || vp.Height <= 0 {
		return ""
	}
	pct := func(v, total int) float64 { return float64(v) * 100 / float64(total) }
	return template.CSS(fmt.Sprintf("left:%.3f%%;top:%.3f%%;width:%.3f%%;height:%.3f%%",
		pct(r.X, vp.Width), pct(r.Y, vp.Height), pct(r.Width, vp.Width), pct(r.Height, vp.Height)))
}

type homeData struct {
	Meta     feed.Meta
	Posts    []content.Post
	Projects []content.Project
}

type postData struct {
	Post  content.Post
	Audio string
}

// tileBody renders the body of one tile. Every tile kind has a case; missing
// detail content renders a placeholder rather than failing the page.
func (s *Site) tileBody(ctx context.Context, c tile.Content) template.HTML {
	var (
		name string
		data any
	)
	switch v := c.(type) {
	case tile.Home:
		posts := s.content.Posts()
		if len(posts) > 3 {
			posts = posts[:3]
		}
		var featured []content.Project
		for _, p := range s.content.Projects() {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		name, data = "tile-home", homeData{Meta: s.meta, Posts: posts, Projects: featured}
	case tile.About:
		name, data = s.pageTile("about")
	case tile.Contact:
		name, data = s.pageTile("contact")
	case tile.Projects:
		name, data = "tile-projects", s.content.Projects()
	case tile.Project:
		if p, ok := s.content.Project(v.Slug); ok {
			name, data = "tile-project", p
		} else {
			name, data = "tile-missing", "project "+v.Slug
		}
	case tile.Blog:
		name, data = "tile-blog", s.content.Posts()
	case tile.Post:
		if p, ok := s.content.Post(v.Slug); ok {
			name, data = "tile-post", postData{Post: p, Audio: s.audio.Probe(ctx, p.Slug)}
		} else {
			name, data = "tile-missing", "post "+v.Slug
		}
	default:
		name, data = "tile-missing", tile.Title(c)
	}

	var buf bytes.Buffer
	if err := s.tiles.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML("<p class=\"empty\">render error</p>")
	}
	return template.HTML(buf.String())
}

func (s *Site) pageTile(name string) (string, any) {
	p, ok := s.content.Page(name)
	if !ok {
		return "tile-missing", "page " + name
	}
	return "tile-page", p
}

// Render produces the cacheable output for p. It is the page cache's
// RenderFunc.
func (s *Site) Render(ctx context.Context, p string) (pagecache.Entry, error) {
	var buf bytes.Buffer
	switch {
	case p == "/rss.xml":
		if err := feed.WriteRSS(&buf, s.meta, feed.Items(s.content.Posts(), s.meta.BaseURL)); err != nil {
			return pagecache.Entry{}, err
		}
		return pagecache.Entry{Body: buf.Bytes(), ContentType: "application/rss+xml; charset=utf-8"}, nil
	case p == "/feed.json":
		if err := feed.WriteJSON(&buf, s.meta, feed.Items(s.content.Posts(), s.meta.BaseURL)); err != nil {
			return pagecache.Entry{}, err
		}
		return pagecache.Entry{Body: buf.Bytes(), ContentType: "application/feed+json; charset=utf-8"}, nil
	case p == "/sitemap.xml":
		if err := feed.WriteSitemap(&buf, feed.SitemapURLs(s.content, s.meta.BaseURL)); err != nil {
			return pagecache.Entry{}, err
		}
		return pagecache.Entry{Body: buf.Bytes(), ContentType: "application/xml; charset=utf-8"}, nil
	}

	c, ok := detailContent(p)
	if !ok || !s.Exists(c) {
		return pagecache.Entry{}, pagecache.ErrNotFound
	}
	pane := &tilePane{
		Kind:    c.Kind(),
		Data:    c.Data(),
		Title:   tile.Title(c),
		Focused: true,
		Body:    s.tileBody(ctx, c),
	}
	data := pageData{Meta: s.meta, Title: strings.TrimPrefix(pane.Title, "~/"), Pane: pane}
	if err := s.pages.ExecuteTemplate(&buf, "detail", data); err != nil {
		return pagecache.Entry{}, err
	}
	return pagecache.Entry{Body: buf.Bytes(), ContentType: "text/html; charset=utf-8"}, nil
}

// detailContent maps a detail route to the tile content it shows.
func detailContent(p string) (tile.Content, bool) {
	if slug, ok := strings.CutPrefix(p, "/blog/"); ok && slug != "" && !strings.Contains(slug, "/") {
		return tile.Post{Slug: slug}, true
	}
	if slug, ok := strings.CutPrefix(p, "/projects/"); ok && slug != "" && !strings.Contains(slug, "/") {
		return tile.Project{Slug: slug}, true
	}
	return nil, false
}

// CacheablePaths lists every path Render serves for the current content.
func (s *Site) CacheablePaths() []string {
	paths := []string{"/rss.xml", "/feed.json", "/sitemap.xml"}
	for _, p := range s.content.Posts() {
		paths = append(paths, "/blog/"+p.Slug)
	}
	for _, p := range s.content.Projects() {
		paths = append(paths, "/projects/"+p.Slug)
	}
	return paths
}
