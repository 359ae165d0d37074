package content

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// AudioRoute is the URL prefix local narration files are served under.
const AudioRoute = "/audio/"

// AudioProber looks for an optional narrated version of a post. Any failure
// means "no audio"; it never reports an error.
type AudioProber struct {
	// Base is either an http(s) URL prefix or a local directory.
	Base    string
	Client  *http.Client
	Timeout time.Duration
}

// Local reports whether Base is a directory on this machine.
func (p *AudioProber) Local() bool {
	if p == nil || p.Base == "" {
		return false
	}
	return !strings.HasPrefix(p.Base, "http://") && !strings.HasPrefix(p.Base, "https://")
}

// File returns the local file holding slug's narration. Slugs that could
// step outside Base are rejected.
func (p *AudioProber) File(slug string) (string, bool) {
	if !p.Local() || slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", false
	}
	local := filepath.Join(p.Base, slug+".mp3")
	info, err := os.Stat(local)
	if err != nil || info.IsDir() {
		return "", false
	}
	return local, true
}

// Probe returns the URL of slug's audio, or "" if absent. Local files are
// reported under AudioRoute, never by their path on disk.
func (p *AudioProber) Probe(ctx context.Context, slug string) string {
	if p == nil || p.Base == "" || slug == "" {
		return ""
	}
	name := url.PathEscape(slug) + ".mp3"

	if p.Local() {
		if _, ok := p.File(slug); ok {
			return AudioRoute + name
		}
		return ""
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := strings.TrimRight(p.Base, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return ""
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Debug("audio probe failed", "slug", slug, "err", err)
		return ""
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	return target
}
