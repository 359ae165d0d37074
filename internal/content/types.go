// Package content loads the portfolio's posts, projects and pages from a
// directory of markdown files and keeps them as ordered records.
package content

import (
	"html/template"
	"time"
)

// Post is one blog entry.
type Post struct {
	Slug        string        `json:"id"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary"`
	Date        time.Time     `json:"date"`
	Updated     time.Time     `json:"updated,omitempty"`
	Tags        []string      `json:"tags"`
	URL         string        `json:"url"`
	Body        template.HTML `json:"body"`
	Cover       string        `json:"cover,omitempty"`
	Series      string        `json:"series,omitempty"`
	ReadingTime int           `json:"reading_minutes"`
	Source      string        `json:"-"` // raw markdown, for plain-text renderers
}

// Modified returns Updated, or Date when the post was never updated.
func (p Post) Modified() time.Time {
	if p.Updated.After(p.Date) {
		return p.Updated
	}
	return p.Date
}

// Project is one portfolio project.
type Project struct {
	Slug     string        `json:"id"`
	Title    string        `json:"title"`
	Summary  string        `json:"summary"`
	Date     time.Time     `json:"date"`
	Tags     []string      `json:"tags"`
	URL      string        `json:"url"`
	Repo     string        `json:"repo,omitempty"`
	Stack    []string      `json:"stack,omitempty"`
	Featured bool          `json:"featured"`
	Body     template.HTML `json:"body"`
	Source   string        `json:"-"`
}

// Page is a standalone page such as about or contact.
type Page struct {
	Name   string        `json:"name"`
	Title  string        `json:"title"`
	Body   template.HTML `json:"body"`
	Source string        `json:"-"`
}

// Source is what the rest of termfolio consumes. Library is the only
// production implementation.
type Source interface {
	Posts() []Post
	Projects() []Project
	Post(slug string) (Post, bool)
	Project(slug string) (Project, bool)
	Page(name string) (Page, bool)
}
