package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Options controls where content comes from.
type Options struct {
	Dir     string
	Include []string
	Exclude []string
	Drafts  bool // load posts marked draft: true
}

// Library is an in-memory snapshot of the content directory. Reload swaps
// the snapshot atomically; readers never see a half-loaded library.
type Library struct {
	opts Options
	md   goldmark.Markdown

	mu       sync.RWMutex
	posts    []Post
	projects []Project
	pages    map[string]Page
	loadedAt time.Time
}

// New creates an empty library. Call Reload to read the directory.
func New(opts Options) *Library {
	if opts.Include == nil {
		opts.Include = DefaultInclude
	}
	if opts.Exclude == nil {
		opts.Exclude = DefaultExclude
	}
	return &Library{
		opts:  opts,
		md:    newMarkdown(),
		pages: map[string]Page{},
	}
}

// Open creates a library and loads it.
func Open(opts Options) (*Library, error) {
	l := New(opts)
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("nord"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

type snapshot struct {
	posts    []Post
	projects []Project
	pages    map[string]Page
}

// Reload re-reads the content directory. On error the previous snapshot is
// kept.
func (l *Library) Reload() error {
	snap := snapshot{pages: map[string]Page{}}

	err := filepath.WalkDir(l.opts.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		rel, err := filepath.Rel(l.opts.Dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !included(rel, l.opts.Include, l.opts.Exclude) {
			return nil
		}
		if err := l.loadFile(&snap, p, rel); err != nil {
			return fmt.Errorf("loading %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reading content dir %s: %w", l.opts.Dir, err)
	}

	slices.SortStableFunc(snap.posts, func(a, b Post) int { return b.Date.Compare(a.Date) })
	slices.SortStableFunc(snap.projects, func(a, b Project) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return b.Date.Compare(a.Date)
	})

	l.mu.Lock()
	l.posts, l.projects, l.pages = snap.posts, snap.projects, snap.pages
	l.loadedAt = time.Now()
	l.mu.Unlock()

	log.Debug("content loaded", "dir", l.opts.Dir, "posts", len(snap.posts), "projects", len(snap.projects), "pages", len(snap.pages))
	return nil
}

func (l *Library) loadFile(snap *snapshot, fullPath, rel string) error {
	src, err := os.ReadFile(fullPath)
	if err != nil {
		return err
	}
	fm, body, err := splitFrontMatter(src)
	if err != nil {
		return err
	}

	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(path.Base(rel), ".md")
	}
	title := fm.Title
	if title == "" {
		title = extractTitle(body, slug)
	}
	rendered, err := l.render(body)
	if err != nil {
		return err
	}

	switch section := strings.SplitN(rel, "/", 2)[0]; section {
	case "posts":
		if fm.Draft && !l.opts.Drafts {
			return nil
		}
		url := fm.URL
		if url == "" {
			url = "/blog/" + slug
		}
		snap.posts = append(snap.posts, Post{
			Slug:        slug,
			Title:       title,
			Summary:     fm.summary(),
			Date:        fm.Date.Time,
			Updated:     fm.Updated.Time,
			Tags:        fm.Tags,
			URL:         url,
			Body:        rendered,
			Cover:       fm.Cover,
			Series:      fm.Series,
			ReadingTime: readingMinutes(body),
			Source:      string(body),
		})
	case "projects":
		url := fm.URL
		if url == "" {
			url = "/projects/" + slug
		}
		snap.projects = append(snap.projects, Project{
			Slug:     slug,
			Title:    title,
			Summary:  fm.summary(),
			Date:     fm.Date.Time,
			Tags:     fm.Tags,
			URL:      url,
			Repo:     fm.Repo,
			Stack:    fm.Stack,
			Featured: fm.Featured,
			Body:     rendered,
			Source:   string(body),
		})
	case "pages":
		snap.pages[slug] = Page{Name: slug, Title: title, Body: rendered, Source: string(body)}
	default:
		log.Debug("ignoring content outside posts/projects/pages", "path", rel)
	}
	return nil
}

func (l *Library) render(body []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := l.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Posts returns every post, newest first. Ties keep file order.
func (l *Library) Posts() []Post {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.posts)
}

// Projects returns every project, featured first then newest first.
func (l *Library) Projects() []Project {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.projects)
}

func (l *Library) Post(slug string) (Post, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := slices.IndexFunc(l.posts, func(p Post) bool { return p.Slug == slug })
	if i < 0 {
		return Post{}, false
	}
	return l.posts[i], true
}

func (l *Library) Project(slug string) (Project, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := slices.IndexFunc(l.projects, func(p Project) bool { return p.Slug == slug })
	if i < 0 {
		return Project{}, false
	}
	return l.projects[i], true
}

func (l *Library) Page(name string) (Page, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.pages[name]
	return p, ok
}

// LoadedAt returns when the current snapshot was read.
func (l *Library) LoadedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedAt
}
