package mcptool

import (
	"context"
	"strings"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
)

// Call connects to a streamable-HTTP MCP endpoint, calls tool with args and
// returns its concatenated text content.
func Call(ctx context.Context, endpoint string, tool string, args map[string]any) (string, error) {
	c, err := mcpclient.NewStreamableHttpClient(endpoint)
	if err != nil {
		return "", err
	}
	defer c.Close()

	if err := c.Start(ctx); err != nil {
		return "", err
	}

	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Request: mcp.Request{Method: string(mcp.MethodInitialize)},
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    ServerName + "-cli",
				Version: Version,
			},
		},
	})
	if err != nil {
		return "", err
	}

	res, err := c.CallTool(ctx, mcp.CallToolRequest{
		Request: mcp.Request{Method: string(mcp.MethodToolsCall)},
		Params: mcp.CallToolParams{
			Name:      tool,
			Arguments: args,
		},
	})
	if err != nil {
		return "", err
	}
	if res == nil || len(res.Content) == 0 {
		return "", errors.New("empty tool result")
	}

	var parts []string
	for _, item := range res.Content {
		if v, ok := item.(mcp.TextContent); ok && v.Text != "" {
			parts = append(parts, v.Text)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text content returned")
	}
	if res.IsError {
		return "", errors.New(strings.Join(parts, "\n"))
	}
	return strings.Join(parts, "\n"), nil
}
