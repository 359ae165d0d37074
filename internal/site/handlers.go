package site

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/feed"
	"github.com/ziadkadry99/termfolio/internal/pagecache"
	"github.com/ziadkadry99/termfolio/internal/theme"
)

func (s *Site) handleDesk(w http.ResponseWriter, r *http.Request) {
	var data pageData
	s.desks.With(desk.VisitorID(r.Context()), func(d *desk.Desk) {
		data = s.deskPage(r.Context(), d)
	})

	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "desk", data); err != nil {
		log.Error("rendering desk", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Site) handleCached(w http.ResponseWriter, r *http.Request) {
	e, err := s.cache.Get(r.Context(), r.URL.Path)
	if errors.Is(err, pagecache.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		log.Error("rendering page", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", e.ContentType)
	if isFeed(r.URL.Path) {
		w.Header().Set("Cache-Control", feed.CacheControl)
	} else {
		w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	}
	w.Header().Set("Last-Modified", e.Generated.UTC().Format(http.TimeFormat))
	w.Write(e.Body)
}

func isFeed(p string) bool {
	switch p {
	case "/rss.xml", "/feed.json", "/sitemap.xml":
		return true
	}
	return false
}

// handleThemeCSS serves the visitor's theme variables. The mobile override
// layer is always appended so narrow screens are forced before the desk
// knows the viewport.
func (s *Site) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	var vars []theme.Var
	s.desks.With(desk.VisitorID(r.Context()), func(d *desk.Desk) {
		vars = d.Theme.Vars()
	})
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, s.themeCSS(vars))
}

func (s *Site) themeCSS(vars []theme.Var) string {
	var b strings.Builder
	b.WriteString(theme.CSS(":root", vars))
	fmt.Fprintf(&b, ":root { --breakpoint: %d; }\n", s.breakpoint)
	b.WriteString(theme.MobileOverrideCSS(s.breakpoint))
	return b.String()
}

func (s *Site) handleStatic(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fmt.Fprint(w, body)
	}
}

// handleAudio serves narration files from a local audio_base.
func (s *Site) handleAudio(w http.ResponseWriter, r *http.Request) {
	slug, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".mp3")
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}
	path, ok := s.audio.File(slug)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := pageData{Meta: s.meta, Title: r.URL.Path}
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "not-found", data); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(buf.Bytes())
}

// OpenBrowser opens url in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
