// ABOUTME: MCP server setup for the gym workout store.
// ABOUTME: Wraps the MCP server with a storage Repository and an autosaver.
package mcp

import (
	"context"

	"github.com/harperreed/gym/internal/autosave"
	"github.com/harperreed/gym/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access. Set edits coming in
// through log_set are debounced through the saver, the same way the
// interactive workout flow persists them.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	saver     *autosave.Saver
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...autosave.Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gym",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		saver:     autosave.New(repo.UpdateWorkout, opts...),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.saver.Flush() }()
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
