// ABOUTME: MCP server subcommand
// ABOUTME: Serves the CRM tools, resources, and prompts over stdio
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/handlers"
	"github.com/rs/zerolog"
)

// MCPCommand starts the MCP server on stdio and blocks until the client disconnects.
func MCPCommand(ctx context.Context, state *crm.State, version string, log zerolog.Logger) error {
	log.Info().Str("version", version).Msg("starting CRM MCP server")

	server := handlers.NewServer(state, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
