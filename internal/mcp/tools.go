package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPostsTool defines the list_posts MCP tool.
var listPostsTool = mcp.NewTool("list_posts",
	mcp.WithDescription("List blog posts, newest first, with date, tags and summary."),
	mcp.WithString("tag",
		mcp.Description("Only list posts carrying this tag"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of posts to return (default 20)"),
	),
)

// getPostTool defines the get_post MCP tool.
var getPostTool = mcp.NewTool("get_post",
	mcp.WithDescription("Get the full markdown of one blog post."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Post slug, as returned by list_posts"),
	),
)

// listProjectsTool defines the list_projects MCP tool.
var listProjectsTool = mcp.NewTool("list_projects",
	mcp.WithDescription("List portfolio projects, featured first, with stack and repository."),
	mcp.WithBoolean("featured_only",
		mcp.Description("Only list featured projects"),
	),
)

// getProjectTool defines the get_project MCP tool.
var getProjectTool = mcp.NewTool("get_project",
	mcp.WithDescription("Get the full write-up of one project."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Project slug, as returned by list_projects"),
	),
)

// searchContentTool defines the search_content MCP tool.
var searchContentTool = mcp.NewTool("search_content",
	mcp.WithDescription("Search posts and projects by title, summary, tags and body."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Words to look for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("kind",
		mcp.Description("Restrict results to one kind of content"),
		mcp.Enum("post", "project"),
	),
)
