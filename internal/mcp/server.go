// ABOUTME: MCP server setup for the mapty workout log.
// ABOUTME: Wraps the MCP server with the workout store and App options.
package mcp

import (
	"context"

	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	store     *storage.WorkoutStore
	opts      app.Options
	// here is the fixed position standing in for browser geolocation. When
	// nil, each workout's own coordinates center the map.
	here *models.Coords
}

// NewServer creates a new MCP server with the given storage.
func NewServer(store *storage.WorkoutStore, opts app.Options, here *models.Coords) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mapty",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		opts:      opts,
		here:      here,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
