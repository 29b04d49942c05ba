// Package mcp exposes the planner's geometry and layout model as MCP tools
// over stdio.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/screenscape/internal/config"
)

const (
	ServerName    = "screenscape"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for monitor layout planning.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	logger    *slog.Logger
}

// NewServer creates a server whose tools start from cfg's displays.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		config: cfg,
		logger: logger,
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
	s.logger.Info("mcp server starting", "name", ServerName, "version", ServerVersion)
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "display_geometry",
		Description: "Compute the physical width, height and screen area in inches of a display from its diagonal and aspect ratio.",
	}, s.handleDisplayGeometry)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "fit_scale",
		Description: "Compute the pixels-per-inch scale that fits the largest enabled display into a canvas with an 80px margin. Returns the fallback scale of 10 when nothing can be fitted.",
	}, s.handleFitScale)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "plan_layout",
		Description: "Lay out the configured displays (with optional overrides) on a canvas. Returns each enabled display's on-screen rectangle after scaling, rotation and zoom, in render order from bottom to top.",
	}, s.handlePlanLayout)
}
