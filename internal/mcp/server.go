package mcptool

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"patreon-gateway/internal/types"
)

const (
	ServerName = "patreon-gateway"
	Version    = "0.1.0"

	// RecentPostsTool lists the creator's recent posts. It takes no arguments.
	RecentPostsTool = "patreon.recent_posts"
)

// NewServer exposes posts as an MCP tool. Upstream failures are returned as
// the envelope's error field, not as tool errors.
func NewServer(posts func(ctx context.Context) types.Envelope) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	tool := mcp.Tool{
		Name:        RecentPostsTool,
		Description: "List the most recent Patreon posts of the configured creator as JSON: {posts:[{id,title,published_at,url,image}], error?, details?}",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(posts(ctx))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	})

	return s
}

// NewHTTPHandler wraps s in a stateless streamable-HTTP transport served at
// path.
func NewHTTPHandler(s *server.MCPServer, path string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(path),
		server.WithStateLess(true),
	)
}
