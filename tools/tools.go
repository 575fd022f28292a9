// Package tools exposes the Nexus search and read tools over MCP.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// textResult wraps plain text in a tool result
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorText formats an error for return as tool content
func errorText(err error) string {
	return "Error: " + err.Error()
}
