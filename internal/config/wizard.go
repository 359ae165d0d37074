package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/termfolio/internal/theme"
)

// contentDirCandidates are checked, in order, for an existing content tree.
var contentDirCandidates = []string{"content", "site/content", "posts"}

// detectContentDir returns the first candidate holding a posts or projects
// directory, or the default.
func detectContentDir() string {
	for _, dir := range contentDirCandidates {
		for _, sub := range []string{"posts", "projects"} {
			if fi, err := os.Stat(filepath.Join(dir, sub)); err == nil && fi.IsDir() {
				return dir
			}
		}
	}
	return DefaultConfig().Content.Dir
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to termfolio! Let's set up your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site metadata.
	title, err := (&promptui.Prompt{Label: "Site title", Default: cfg.Site.Title}).Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = title

	author, err := (&promptui.Prompt{Label: "Author", Default: cfg.Site.Author}).Run()
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}
	cfg.Site.Author = author

	baseURL, err := (&promptui.Prompt{
		Label:    "Public base URL",
		Default:  cfg.Site.BaseURL,
		Validate: validateBaseURL,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.Site.BaseURL = strings.TrimRight(baseURL, "/")

	// 2. Content directory.
	dir := detectContentDir()
	if dir != cfg.Content.Dir {
		fmt.Printf("Found content in %s\n\n", dir)
	}
	contentDir, err := (&promptui.Prompt{Label: "Content directory", Default: dir}).Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.Content.Dir = contentDir

	excludeStr, err := (&promptui.Prompt{
		Label: "Extra exclude patterns (comma-separated, leave blank for defaults)",
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Content.Exclude = append(append([]string(nil), DefaultExclude...), splitAndTrim(excludeStr)...)
	}

	// 3. Theme.
	presets := make([]string, len(theme.Presets))
	for i, p := range theme.Presets {
		presets[i] = string(p)
	}
	_, preset, err := (&promptui.Select{Label: "Default theme", Items: presets}).Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Theme.Preset = preset

	accents := make([]string, len(theme.Accents))
	for i, a := range theme.Accents {
		accents[i] = string(a)
	}
	_, accent, err := (&promptui.Select{Label: "Accent colour", Items: accents, Size: 8}).Run()
	if err != nil {
		return nil, fmt.Errorf("accent selection: %w", err)
	}
	cfg.Theme.Accent = accent

	// 4. Server.
	portStr, err := (&promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	secret, err := newSecret()
	if err != nil {
		return nil, err
	}
	cfg.Server.RevalidateSecret = secret

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Printf("Revalidation secret: %s (override with %sSERVER__REVALIDATE_SECRET)\n", secret, EnvPrefix)
	return cfg, nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("must be a port number")
	}
	return nil
}

// newSecret returns 32 random hex characters.
func newSecret() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
