package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nexusmcp/mcp-server/internal/search"
)

// NexusSearchInput defines input for the nexus_search tool
type NexusSearchInput struct {
	Query      string `json:"query" jsonschema:"The search term"`
	Mode       string `json:"mode,omitempty" jsonschema:"'general' for broad web search or 'docs' to prioritize technical documentation (optional, defaults to 'general')"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Number of results to return, 1-20 (optional, defaults to 5)"`
}

// SearchTool exposes web search backed by a search.Service
type SearchTool struct {
	svc *search.Service
}

// NexusSearch performs a web search and returns formatted results as text.
// All failures come back as "Error: ..." text content, never as protocol errors.
func (t *SearchTool) NexusSearch(ctx context.Context, req *mcp.CallToolRequest, input NexusSearchInput) (*mcp.CallToolResult, any, error) {
	mode := input.Mode
	if mode == "" {
		mode = search.ModeGeneral
	}

	maxResults := input.MaxResults
	if maxResults == 0 {
		maxResults = search.DefaultMaxResults
	}

	text, err := t.svc.Search(ctx, input.Query, mode, maxResults)
	if err != nil {
		return textResult(errorText(err)), nil, nil
	}

	return textResult(text), nil, nil
}

// RegisterSearchTools registers the web search tool with the MCP server
func RegisterSearchTools(server *mcp.Server, svc *search.Service) {
	t := &SearchTool{svc: svc}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "nexus_search",
			Description: "A hybrid search tool combining broad web coverage with documentation-focused lookups. Use mode='general' for broad web search, or mode='docs' to prioritize technical documentation and developer resources. Returns formatted results with titles, URLs, and snippets.",
		},
		t.NexusSearch,
	)
}
