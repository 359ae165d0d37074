package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// frontMatter is the metadata block at the top of a markdown file, either
// YAML between "---" fences or TOML between "+++" fences.
type frontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Slug        string   `yaml:"slug" toml:"slug"`
	Summary     string   `yaml:"summary" toml:"summary"`
	Description string   `yaml:"description" toml:"description"`
	Date        Date     `yaml:"date" toml:"date"`
	Updated     Date     `yaml:"updated" toml:"updated"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Cover       string   `yaml:"cover" toml:"cover"`
	Series      string   `yaml:"series" toml:"series"`
	Draft       bool     `yaml:"draft" toml:"draft"`
	URL         string   `yaml:"url" toml:"url"`
	Repo        string   `yaml:"repo" toml:"repo"`
	Stack       []string `yaml:"stack" toml:"stack"`
	Featured    bool     `yaml:"featured" toml:"featured"`
}

func (fm frontMatter) summary() string {
	if fm.Summary != "" {
		return fm.Summary
	}
	return fm.Description
}

// Date accepts the handful of date layouts people actually type.
type Date struct{ time.Time }

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (d *Date) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised date %q", s)
}

func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	return d.UnmarshalText([]byte(n.Value))
}

// splitFrontMatter separates the metadata block from the markdown body.
// Files without a block return a zero frontMatter and the whole input.
func splitFrontMatter(src []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	var fence string
	switch {
	case bytes.HasPrefix(src, []byte("---\n")):
		fence = "---"
	case bytes.HasPrefix(src, []byte("+++\n")):
		fence = "+++"
	default:
		return fm, src, nil
	}

	rest := src[len(fence)+1:]
	end := bytes.Index(rest, []byte("\n"+fence))
	var meta []byte
	if bytes.HasPrefix(rest, []byte(fence)) {
		meta, rest = nil, rest[len(fence):]
	} else if end < 0 {
		return fm, nil, fmt.Errorf("unterminated %s front matter", fence)
	} else {
		meta, rest = rest[:end], rest[end+1+len(fence):]
	}
	rest = bytes.TrimLeft(rest, "\n")

	var err error
	if fence == "---" {
		err = yaml.Unmarshal(meta, &fm)
	} else {
		_, err = toml.Decode(string(meta), &fm)
	}
	if err != nil {
		return fm, nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return fm, rest, nil
}

// extractTitle returns the first H1 heading, or fallback.
func extractTitle(body []byte, fallback string) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return fallback
}

// readingMinutes estimates reading time at 200 words per minute.
func readingMinutes(body []byte) int {
	words := len(bytes.Fields(body))
	return max(1, (words+199)/200)
}
