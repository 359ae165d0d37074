package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/termfolio/internal/content"
)

// handleListPosts lists posts in display order, optionally filtered by tag.
func (s *Server) handleListPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := strings.ToLower(strings.TrimSpace(request.GetString("tag", "")))
	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	var sb strings.Builder
	n := 0
	for _, p := range s.src.Posts() {
		if tag != "" && !slices.ContainsFunc(p.Tags, func(t string) bool { return strings.EqualFold(t, tag) }) {
			continue
		}
		if n == limit {
			break
		}
		n++
		fmt.Fprintf(&sb, "\n- %s (%s)\n", p.Title, p.Slug)
		fmt.Fprintf(&sb, "  Date: %s\n", p.Date.Format("2006-01-02"))
		if len(p.Tags) > 0 {
			fmt.Fprintf(&sb, "  Tags: %s\n", strings.Join(p.Tags, ", "))
		}
		if p.Summary != "" {
			fmt.Fprintf(&sb, "  %s\n", p.Summary)
		}
	}

	if n == 0 {
		if tag != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No posts tagged %q.", tag)), nil
		}
		return mcp.NewToolResultText("No posts published yet."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d post(s):\n", n) + sb.String()), nil
}

// handleGetPost returns one post's metadata followed by its markdown.
func (s *Server) handleGetPost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	p, ok := s.src.Post(slug)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No post found for %q. Use list_posts to see available slugs.", slug)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Title)
	fmt.Fprintf(&sb, "URL: %s\n", s.link(p.URL))
	fmt.Fprintf(&sb, "Published: %s\n", p.Date.Format("2006-01-02"))
	if !p.Updated.IsZero() {
		fmt.Fprintf(&sb, "Updated: %s\n", p.Updated.Format("2006-01-02"))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Series != "" {
		fmt.Fprintf(&sb, "Series: %s\n", p.Series)
	}
	fmt.Fprintf(&sb, "Reading time: %d min\n\n", p.ReadingTime)
	sb.WriteString(strings.TrimSpace(p.Source))
	sb.WriteString("\n")

	return mcp.NewToolResultText(sb.String()), nil
}

// handleListProjects lists projects, featured first.
func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	featuredOnly := request.GetBool("featured_only", false)

	var sb strings.Builder
	n := 0
	for _, p := range s.src.Projects() {
		if featuredOnly && !p.Featured {
			continue
		}
		n++
		star := ""
		if p.Featured {
			star = " *"
		}
		fmt.Fprintf(&sb, "\n- %s (%s)%s\n", p.Title, p.Slug, star)
		if len(p.Stack) > 0 {
			fmt.Fprintf(&sb, "  Stack: %s\n", strings.Join(p.Stack, ", "))
		}
		if p.Repo != "" {
			fmt.Fprintf(&sb, "  Repo: %s\n", p.Repo)
		}
		if p.Summary != "" {
			fmt.Fprintf(&sb, "  %s\n", p.Summary)
		}
	}

	if n == 0 {
		return mcp.NewToolResultText("No projects found."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d project(s):\n", n) + sb.String()), nil
}

// handleGetProject returns one project's metadata followed by its markdown.
func (s *Server) handleGetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	p, ok := s.src.Project(slug)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No project found for %q. Use list_projects to see available slugs.", slug)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Title)
	fmt.Fprintf(&sb, "URL: %s\n", s.link(p.URL))
	if p.Repo != "" {
		fmt.Fprintf(&sb, "Repo: %s\n", p.Repo)
	}
	if len(p.Stack) > 0 {
		fmt.Fprintf(&sb, "Stack: %s\n", strings.Join(p.Stack, ", "))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(p.Source))
	sb.WriteString("\n")

	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchContent runs a ranked substring search over posts and projects.
func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query must not be blank"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	kind := request.GetString("kind", "")

	hits := content.Search(s.src, query, 0)
	if kind != "" {
		hits = slices.DeleteFunc(hits, func(h content.Hit) bool { return h.Kind != kind })
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}

	if len(hits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results for %q.", query)), nil
	}
	return mcp.NewToolResultText(s.formatHits(hits)), nil
}

// formatHits renders search hits as plain text for agent consumption.
func (s *Server) formatHits(hits []content.Hit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(hits))

	for i, h := range hits {
		fmt.Fprintf(&sb, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "Kind: %s\n", h.Kind)
		fmt.Fprintf(&sb, "Title: %s\n", h.Title)
		fmt.Fprintf(&sb, "Slug: %s\n", h.Slug)
		fmt.Fprintf(&sb, "URL: %s\n", s.link(h.URL))
		if h.Summary != "" {
			fmt.Fprintf(&sb, "\n%s\n", h.Summary)
		}
	}

	return sb.String()
}

func (s *Server) link(p string) string {
	if s.baseURL == "" || !strings.HasPrefix(p, "/") {
		return p
	}
	return strings.TrimRight(s.baseURL, "/") + p
}
