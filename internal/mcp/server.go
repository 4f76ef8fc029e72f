// Package mcp provides a Model Context Protocol server for heartwood.
// It exposes repository vitals queries as MCP tools that any MCP-capable
// agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all heartwood tools registered.
// Every tool is a read-only query against the repository containing the
// server's working directory.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "heartwood",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
// Every heartwood tool qualifies: nothing mutates the repository.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all heartwood tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show repository vitals: root, branch, HEAD, upstream, working tree state, and the latest version tag.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "latest_version",
		Description: "Resolve the largest version tag in the repository. Supports custom tag glob patterns and base-only output.",
		Annotations: readOnlyAnnotations(),
	}, handleLatestVersion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "age",
		Description: "Report elapsed time since the repository's key events: first commit, latest commit, and latest version tag.",
		Annotations: readOnlyAnnotations(),
	}, handleAge)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_ref",
		Description: "Check whether a branch, tag, remote, or commit exists in the repository.",
		Annotations: readOnlyAnnotations(),
	}, handleCheckRef)
}
