package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/termfolio/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list, read and search posts and projects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		lib, err := openContent(cfg)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		// Logs go to stderr; stdout carries the protocol.
		log.Info("MCP server started on stdio", "content", cfg.Content.Dir, "posts", len(lib.Posts()), "projects", len(lib.Projects()))

		srv := mcpserver.NewServer(lib, cfg.Site.BaseURL)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
