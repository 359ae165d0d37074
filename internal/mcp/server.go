// Package mcp exposes the portfolio's posts and projects to MCP clients
// over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/termfolio/internal/content"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes content tools.
type Server struct {
	src     content.Source
	baseURL string
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server reading from src. baseURL makes
// post and project links absolute.
func NewServer(src content.Source, baseURL string) *Server {
	s := &Server{
		src:     src,
		baseURL: baseURL,
	}

	s.mcp = server.NewMCPServer(
		"termfolio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPostsTool, s.handleListPosts)
	s.mcp.AddTool(getPostTool, s.handleGetPost)
	s.mcp.AddTool(listProjectsTool, s.handleListProjects)
	s.mcp.AddTool(getProjectTool, s.handleGetProject)
	s.mcp.AddTool(searchContentTool, s.handleSearchContent)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
