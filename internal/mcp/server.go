// ABOUTME: MCP server setup for the lift workout store.
// ABOUTME: Exposes the resolver and draft pipeline over stdio transport.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/lift/internal/draft"
	"github.com/harperreed/lift/internal/resolver"
	"github.com/harperreed/lift/internal/storage"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	db        *storage.DB
	executor  *draft.Executor
	policy    resolver.Policy
}

// NewServer creates a new MCP server over an open store.
func NewServer(db *storage.DB, policy resolver.Policy) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lift",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		db:        db,
		executor:  draft.NewExecutor(db),
		policy:    policy,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
