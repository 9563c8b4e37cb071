package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	devmcp "github.com/gorewood/devtools/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run clang-format-changed as a Model Context Protocol (MCP) server over stdio.

Agents can list the changed files and check or fix their formatting without
shelling out. The repository is the one the server is started in.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "clang-format-changed": {
        "command": "clang-format-changed",
        "args": ["serve"]
      }
    }
  }

Available tools: changed_files, format_check, format_apply`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := resolveWorkspace(cmd)
			if err != nil {
				return err
			}
			server := devmcp.NewServer(buildVersion(), ws.tools())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
