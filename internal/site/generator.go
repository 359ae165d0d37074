package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/progress"
	"github.com/ziadkadry99/termfolio/internal/theme"
)

// Generate writes every cacheable page plus the static assets into outDir
// and returns the number of pages written. Detail pages become
// <route>/index.html so any static host serves them at the same URL.
func (s *Site) Generate(ctx context.Context, outDir string, rep progress.Reporter) (int, error) {
	if rep == nil {
		rep = progress.Discard{}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	assets := map[string]string{
		"static/style.css": cssContent,
		"static/desk.js":   jsContent,
		"theme.css":        s.themeCSS(theme.Vars(theme.DefaultState())),
	}
	for rel, body := range assets {
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(rel)), []byte(body)); err != nil {
			return 0, err
		}
	}

	paths := s.CacheablePaths()
	rep.Start(len(paths))
	defer rep.Finish()

	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		e, err := s.cache.Get(ctx, p)
		if err != nil {
			return i, fmt.Errorf("rendering %s: %w", p, err)
		}
		if err := writeFile(outputPath(outDir, p), e.Body); err != nil {
			return i, err
		}
		rep.Update(i+1, p)
	}
	if err := s.copyAudio(outDir); err != nil {
		return len(paths), err
	}
	return len(paths), nil
}

// copyAudio copies local narration files next to the pages that link them.
func (s *Site) copyAudio(outDir string) error {
	if !s.audio.Local() {
		return nil
	}
	for _, p := range s.content.Posts() {
		src, ok := s.audio.File(p.Slug)
		if !ok {
			continue
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("reading audio for %s: %w", p.Slug, err)
		}
		dst := filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(content.AudioRoute, "/")), p.Slug+".mp3")
		if err := writeFile(dst, data); err != nil {
			return err
		}
	}
	return nil
}

// outputPath maps a route to a file under outDir.
func outputPath(outDir, route string) string {
	rel := strings.TrimPrefix(route, "/")
	if filepath.Ext(rel) == "" {
		rel = filepath.Join(rel, "index.html")
	}
	return filepath.Join(outDir, filepath.FromSlash(rel))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
