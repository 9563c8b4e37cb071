// Package mcp provides a Model Context Protocol server for clang-format-changed.
// It exposes changed-file discovery and formatting as MCP tools so editor
// agents can check their own edits before committing.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all tools registered against ws.
func NewServer(version string, ws *Workspace) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "clang-format-changed",
		Version: version,
	}, nil)
	registerTools(server, ws)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for tools that never touch files.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// rewriteAnnotations returns annotations for tools that rewrite files in place.
func rewriteAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all tools to the server.
func registerTools(server *mcp.Server, ws *Workspace) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "changed_files",
		Description: "List files changed in the git working tree that match the configured source extensions and are not excluded.",
		Annotations: readOnlyAnnotations(),
	}, handleChangedFiles(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_check",
		Description: "Run clang-format in check mode over the changed files and report which ones don't match the project style. Never modifies files.",
		Annotations: readOnlyAnnotations(),
	}, handleFormatCheck(ws))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_apply",
		Description: "Run clang-format in place over the changed files, rewriting them to match the project style.",
		Annotations: rewriteAnnotations(),
	}, handleFormatApply(ws))
}
