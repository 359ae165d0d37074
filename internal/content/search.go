package content

import (
	"slices"
	"strings"
)

// Hit is one search result.
type Hit struct {
	Kind    string `json:"kind"` // "post" or "project"
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Score   int    `json:"score"`
}

// Search does a case-insensitive match over titles, summaries, tags and
// bodies. Title matches rank above tag matches, which rank above body
// matches.
func Search(src Source, query string, limit int) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var hits []Hit
	for _, p := range src.Posts() {
		if s := score(q, p.Title, p.Summary, p.Tags, p.Source); s > 0 {
			hits = append(hits, Hit{Kind: "post", Slug: p.Slug, Title: p.Title, Summary: p.Summary, URL: p.URL, Score: s})
		}
	}
	for _, p := range src.Projects() {
		tags := append(slices.Clone(p.Tags), p.Stack...)
		if s := score(q, p.Title, p.Summary, tags, p.Source); s > 0 {
			hits = append(hits, Hit{Kind: "project", Slug: p.Slug, Title: p.Title, Summary: p.Summary, URL: p.URL, Score: s})
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int { return b.Score - a.Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func score(q, title, summary string, tags []string, body string) int {
	s := 0
	if strings.Contains(strings.ToLower(title), q) {
		s += 8
	}
	if strings.Contains(strings.ToLower(summary), q) {
		s += 4
	}
	for _, t := range tags {
		if strings.EqualFold(t, q) {
			s += 3
			break
		}
	}
	if strings.Contains(strings.ToLower(body), q) {
		s++
	}
	return s
}
