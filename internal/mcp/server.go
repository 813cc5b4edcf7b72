package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskshell/internal/config"
	"github.com/1broseidon/deskshell/internal/ipc"
	"github.com/1broseidon/deskshell/internal/launcher"
	"github.com/1broseidon/deskshell/internal/panels"
)

const (
	ServerName    = "deskshell"
	ServerVersion = "0.1.0"
)

// Desktop is the running desktop as seen over IPC. *ipc.Client satisfies it.
type Desktop interface {
	OpenWindow(id string) (*ipc.ActionData, error)
	FocusWindow(id string) (*ipc.ActionData, error)
	CloseWindow(id string) (*ipc.ActionData, error)
	ListWindows() (*ipc.WindowsData, error)
}

// Server is the MCP server exposing window tools.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	desktop   Desktop
	catalog   launcher.Catalog
	logger    *slog.Logger
}

// NewServer creates a new MCP server that drives desktop.
func NewServer(cfg *config.Config, desktop Desktop, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:  cfg,
		desktop: desktop,
		catalog: panels.Catalog(cfg),
		logger:  logger,
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
		Name:        "open_window",
		Description: "Open a panel window on the running deskshell desktop. Opening a panel that is already open brings it to the front instead of creating a second window.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring an open window to the front, restoring it if minimized. Returns found=false when the window is not open.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close an open window. Returns found=false when the window is not open.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List open windows in the order they were opened, with geometry, stack order and minimized/maximized state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_panels",
		Description: "List the panels that can be opened, optionally filtered like the command palette.",
	}, s.handleListPanels)
}
