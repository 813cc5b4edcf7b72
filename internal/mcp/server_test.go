package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/1broseidon/deskshell/internal/config"
	"github.com/1broseidon/deskshell/internal/ipc"
)

type fakeDesktop struct {
	open    []string
	calls   []string
	listErr error
}

func (f *fakeDesktop) has(id string) bool {
	for _, o := range f.open {
		if o == id {
			return true
		}
	}
	return false
}

func (f *fakeDesktop) OpenWindow(id string) (*ipc.ActionData, error) {
	f.calls = append(f.calls, "open "+id)
	if !f.has(id) {
		f.open = append(f.open, id)
	}
	return &ipc.ActionData{ID: id, Found: true}, nil
}

func (f *fakeDesktop) FocusWindow(id string) (*ipc.ActionData, error) {
	f.calls = append(f.calls, "focus "+id)
	return &ipc.ActionData{ID: id, Found: f.has(id)}, nil
}

func (f *fakeDesktop) CloseWindow(id string) (*ipc.ActionData, error) {
	f.calls = append(f.calls, "close "+id)
	for i, o := range f.open {
		if o == id {
			f.open = append(f.open[:i], f.open[i+1:]...)
			return &ipc.ActionData{ID: id, Found: true}, nil
		}
	}
	return &ipc.ActionData{ID: id}, nil
}

func (f *fakeDesktop) ListWindows() (*ipc.WindowsData, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	data := &ipc.WindowsData{}
	for i, id := range f.open {
		data.Windows = append(data.Windows, ipc.WindowInfo{ID: id, StackOrder: 1000 + i})
	}
	return data, nil
}

func newTestServer(d Desktop) *Server {
	return NewServer(config.DefaultConfig(), d, slog.New(slog.DiscardHandler))
}

func TestOpenWindow(t *testing.T) {
	d := &fakeDesktop{}
	s := newTestServer(d)

	_, out, err := s.handleOpenWindow(context.Background(), nil, WindowInput{ID: " about "})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if out.ID != "about" || !out.Found {
		t.Fatalf("out = %+v", out)
	}
	if len(d.calls) != 1 || d.calls[0] != "open about" {
		t.Fatalf("calls = %v", d.calls)
	}
}

func TestOpenWindow_Validation(t *testing.T) {
	d := &fakeDesktop{}
	s := newTestServer(d)

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"empty", "", "id is required"},
		{"blank", "   ", "id is required"},
		{"unknown", "games", "unknown panel"},
		{"logout is not a panel", "logout", "unknown panel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.handleOpenWindow(context.Background(), nil, WindowInput{ID: tt.id})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
	if len(d.calls) != 0 {
		t.Fatalf("invalid input reached the desktop: %v", d.calls)
	}
}

func TestFocusAndClose_UnknownReportsNotFound(t *testing.T) {
	s := newTestServer(&fakeDesktop{})

	_, out, err := s.handleFocusWindow(context.Background(), nil, WindowInput{ID: "skills"})
	if err != nil || out.Found {
		t.Fatalf("focus = %+v, %v", out, err)
	}
	_, out, err = s.handleCloseWindow(context.Background(), nil, WindowInput{ID: "skills"})
	if err != nil || out.Found {
		t.Fatalf("close = %+v, %v", out, err)
	}
}

func TestListWindows(t *testing.T) {
	d := &fakeDesktop{open: []string{"about", "skills"}}
	s := newTestServer(d)

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Windows) != 2 || out.Windows[1].ID != "skills" || out.Windows[1].StackOrder != 1001 {
		t.Fatalf("windows = %+v", out.Windows)
	}

	d.listErr = errors.New("failed to connect")
	if _, _, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{}); err == nil {
		t.Fatalf("expected error when desktop is unreachable")
	}
}

func TestListPanels(t *testing.T) {
	d := &fakeDesktop{open: []string{"contact"}}
	s := newTestServer(d)

	_, out, err := s.handleListPanels(context.Background(), nil, ListPanelsInput{})
	if err != nil {
		t.Fatalf("list_panels: %v", err)
	}
	if len(out.Panels) != 8 {
		t.Fatalf("len = %d, want 8", len(out.Panels))
	}
	for _, p := range out.Panels {
		if p.Open != (p.ID == "contact") {
			t.Fatalf("%s open = %v", p.ID, p.Open)
		}
	}

	_, out, _ = s.handleListPanels(context.Background(), nil, ListPanelsInput{Query: "email"})
	if len(out.Panels) == 0 || out.Panels[0].ID != "contact" {
		t.Fatalf("query email = %+v", out.Panels)
	}

	d.listErr = errors.New("down")
	_, out, err = s.handleListPanels(context.Background(), nil, ListPanelsInput{})
	if err != nil || len(out.Panels) != 8 {
		t.Fatalf("list_panels without desktop = %d panels, %v", len(out.Panels), err)
	}
}
