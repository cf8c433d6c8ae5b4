package tools

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates the MCP server with all tools and resources
// registered.
func NewServer(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer("CurrentsAPI", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	h.Register(s)

	return s
}
