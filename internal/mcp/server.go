package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winsnap/internal/config"
	"github.com/1broseidon/winsnap/internal/native"
	"github.com/1broseidon/winsnap/internal/platform"
)

const (
	ServerName    = "winsnap"
	ServerVersion = "0.1.0"
)

// RegistryFunc opens the registry for one tool call.
type RegistryFunc func(platform.Options) native.Registry

// Server exposes window listing over MCP.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	logger    *slog.Logger
	registry  RegistryFunc
}

// NewServer creates a server that enumerates through registry, or the
// platform registry when registry is nil.
func NewServer(cfg *config.Config, logger *slog.Logger, registry RegistryFunc) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if registry == nil {
		registry = platform.NewRegistry
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		registry: registry,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows currently known to the host window registry, front to back. Each entry has the window id, owner pid, opacity, bounds and, when the registry provides them, the owner name and title.",
	}, s.handleListWindows)
}
