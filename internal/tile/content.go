package tile

import (
	"fmt"
	"strings"
)

// Kind tags which content renderer a tile uses.
type Kind string

const (
	KindHome     Kind = "home"
	KindAbout    Kind = "about"
	KindProjects Kind = "projects"
	KindProject  Kind = "project"
	KindContact  Kind = "contact"
	KindBlog     Kind = "blog"
	KindPost     Kind = "post"
)

// Kinds lists every tile kind in directory order.
var Kinds = []Kind{KindHome, KindAbout, KindProjects, KindProject, KindContact, KindBlog, KindPost}

// Content is the closed set of things a tile can show. Renderers type-switch
// over the concrete types below; no other package can add a variant.
type Content interface {
	Kind() Kind
	// Key identifies the {type, data} pair used for idempotent open.
	Key() string
	// Data is the type-specific payload, empty for singleton views.
	Data() string
	sealed()
}

type (
	Home     struct{}
	About    struct{}
	Projects struct{}
	Contact  struct{}
	Blog     struct{}

	// Project shows one project record.
	Project struct{ Slug string }
	// Post shows one blog post.
	Post struct{ Slug string }
)

func (Home) Kind() Kind     { return KindHome }
func (About) Kind() Kind    { return KindAbout }
func (Projects) Kind() Kind { return KindProjects }
func (Contact) Kind() Kind  { return KindContact }
func (Blog) Kind() Kind     { return KindBlog }
func (Project) Kind() Kind  { return KindProject }
func (Post) Kind() Kind     { return KindPost }

func (Home) Data() string      { return "" }
func (About) Data() string     { return "" }
func (Projects) Data() string  { return "" }
func (Contact) Data() string   { return "" }
func (Blog) Data() string      { return "" }
func (p Project) Data() string { return p.Slug }
func (p Post) Data() string    { return p.Slug }

func (c Home) Key() string     { return key(c) }
func (c About) Key() string    { return key(c) }
func (c Projects) Key() string { return key(c) }
func (c Contact) Key() string  { return key(c) }
func (c Blog) Key() string     { return key(c) }
func (c Project) Key() string  { return key(c) }
func (c Post) Key() string     { return key(c) }

func (Home) sealed()     {}
func (About) sealed()    {}
func (Projects) sealed() {}
func (Contact) sealed()  {}
func (Blog) sealed()     {}
func (Project) sealed()  {}
func (Post) sealed()     {}

func key(c Content) string {
	if d := c.Data(); d != "" {
		return string(c.Kind()) + ":" + d
	}
	return string(c.Kind())
}

// Title is the label shown in a tile's title bar.
func Title(c Content) string {
	switch v := c.(type) {
	case Home:
		return "~/home"
	case About:
		return "~/about"
	case Projects:
		return "~/projects"
	case Project:
		return "~/projects/" + v.Slug
	case Contact:
		return "~/contact"
	case Blog:
		return "~/blog"
	case Post:
		return "~/blog/" + v.Slug
	default:
		return "~"
	}
}

// Parse builds Content from its wire form. Detail kinds require data.
func Parse(kind, data string) (Content, error) {
	data = strings.TrimSpace(data)
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindHome:
		return Home{}, nil
	case KindAbout:
		return About{}, nil
	case KindProjects:
		return Projects{}, nil
	case KindContact:
		return Contact{}, nil
	case KindBlog:
		return Blog{}, nil
	case KindProject:
		if data == "" {
			return nil, fmt.Errorf("tile kind %q needs a slug", kind)
		}
		return Project{Slug: data}, nil
	case KindPost:
		if data == "" {
			return nil, fmt.Errorf("tile kind %q needs a slug", kind)
		}
		return Post{Slug: data}, nil
	default:
		return nil, fmt.Errorf("unknown tile kind %q", kind)
	}
}
