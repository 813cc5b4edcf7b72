package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskshell/internal/ipc"
	"github.com/1broseidon/deskshell/internal/launcher"
)

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	id, err := s.validID(args.ID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	if _, ok := s.catalog.Find(id); !ok {
		return nil, WindowOutput{}, fmt.Errorf("unknown panel %q; call list_panels for valid ids", id)
	}
	return s.windowAction("open_window", id, s.desktop.OpenWindow)
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	id, err := s.validID(args.ID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return s.windowAction("focus_window", id, s.desktop.FocusWindow)
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	id, err := s.validID(args.ID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return s.windowAction("close_window", id, s.desktop.CloseWindow)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.desktop.ListWindows()
	if err != nil {
		s.logger.Warn("list_windows failed", "error", err)
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(data.Windows))}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, WindowInfo(w))
	}
	return nil, out, nil
}

func (s *Server) handleListPanels(_ context.Context, _ *mcpsdk.CallToolRequest, args ListPanelsInput) (*mcpsdk.CallToolResult, ListPanelsOutput, error) {
	open := map[string]bool{}
	// The catalog is useful without a running desktop; open flags are best effort.
	if data, err := s.desktop.ListWindows(); err == nil {
		for _, w := range data.Windows {
			open[w.ID] = true
		}
	} else {
		s.logger.Debug("list_panels without window state", "error", err)
	}

	matches := launcher.Search(s.catalog, args.Query, s.config.PaletteFuzzyMatching)
	out := ListPanelsOutput{Panels: make([]PanelInfo, 0, len(matches))}
	for _, e := range matches {
		out.Panels = append(out.Panels, PanelInfo{
			ID:       e.ID,
			Title:    e.Title,
			Keywords: e.Keywords,
			Open:     open[e.ID],
		})
	}
	return nil, out, nil
}

func (s *Server) validID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("id is required")
	}
	return id, nil
}

func (s *Server) windowAction(tool, id string, fn func(string) (*ipc.ActionData, error)) (*mcpsdk.CallToolResult, WindowOutput, error) {
	data, err := fn(id)
	if err != nil {
		s.logger.Warn("window tool failed", "tool", tool, "id", id, "error", err)
		return nil, WindowOutput{}, err
	}
	s.logger.Info("window tool", "tool", tool, "id", id, "found", data.Found)
	return nil, WindowOutput{ID: data.ID, Found: data.Found}, nil
}
