package main

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nexusmcp/mcp-server/internal/reader"
	"github.com/nexusmcp/mcp-server/internal/search"
	"github.com/nexusmcp/mcp-server/tools"
	"github.com/rs/zerolog"
)

const (
	version     = "1.0.0"
	serverName  = "Nexus-Hybrid-Search"
	description = "MCP server combining broad web search with focused URL content extraction"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// Log to stderr (MCP uses stdout for protocol)
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	log.Info().Str("name", serverName).Str("version", version).Msg("Server starting")

	// Create MCP server
	server := createMCPServer(log)

	// Build services and register all tools
	searchSvc := search.NewService(search.NewDuckDuckGo(), search.Config{}, log)
	readerSvc := reader.NewService(reader.Config{}, log)
	registerTools(server, searchSvc, readerSvc, log)

	log.Info().Msg("Server ready and waiting for connections")

	// Run server with stdio transport
	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

// createMCPServer initializes the MCP server
func createMCPServer(log zerolog.Logger) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil, // Default options
	)

	log.Info().Str("name", serverName).Str("version", version).Msg("Server initialized")
	return server
}

// registerTools registers all MCP tools
func registerTools(server *mcp.Server, searchSvc *search.Service, readerSvc *reader.Service, log zerolog.Logger) {
	tools.RegisterSearchTools(server, searchSvc)
	tools.RegisterReadTools(server, readerSvc)

	log.Info().Int("tools", 2).Msg("All tools registered")
}
