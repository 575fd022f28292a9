package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nexusmcp/mcp-server/internal/reader"
)

// NexusReadInput defines input for the nexus_read tool
type NexusReadInput struct {
	URL   string `json:"url" jsonschema:"The URL to visit"`
	Focus string `json:"focus,omitempty" jsonschema:"'general' for clean article text, 'code' for headers, code blocks, and tables only, 'auto' to detect documentation sites and switch to code focus (optional, defaults to 'auto')"`
}

// ReadTool exposes URL content extraction backed by a reader.Service
type ReadTool struct {
	svc *reader.Service
}

// NexusRead fetches a URL and returns its extracted content as text.
// All failures come back as "Error: ..." text content, never as protocol errors.
func (t *ReadTool) NexusRead(ctx context.Context, req *mcp.CallToolRequest, input NexusReadInput) (*mcp.CallToolResult, any, error) {
	focus := input.Focus
	if focus == "" {
		focus = reader.FocusAuto
	}

	text, err := t.svc.Read(ctx, input.URL, focus)
	if err != nil {
		return textResult(errorText(err)), nil, nil
	}

	return textResult(text), nil, nil
}

// RegisterReadTools registers the URL reading tool with the MCP server
func RegisterReadTools(server *mcp.Server, svc *reader.Service) {
	t := &ReadTool{svc: svc}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "nexus_read",
			Description: "Reads a URL with content-aware parsing. Use focus='general' for clean article text, focus='code' to extract only headers, code blocks, and tables, or focus='auto' to detect documentation sites and pick the best focus automatically.",
		},
		t.NexusRead,
	)
}
