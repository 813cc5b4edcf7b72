package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskshell/internal/config"
	"github.com/1broseidon/deskshell/internal/ipc"
)

// Options configures Run.
type Options struct {
	// SocketPath overrides the IPC socket location.
	SocketPath string
	// ConfigPath, when set, is watched and reloaded on change.
	ConfigPath string
	Logger     *slog.Logger
}

const configDebounce = 200 * time.Millisecond

// Run shows the desktop on the terminal until the user quits or ctx is
// cancelled. The IPC server accepts window commands for as long as the
// desktop runs.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := newModel(cfg, logger)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	done := make(chan struct{})
	srv, err := ipc.NewServer(opts.SocketPath, NewBridge(p.Send, done), logger)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	logger.Info("desktop started", "socket", srv.SocketPath())

	if opts.ConfigPath != "" {
		w, err := config.WatchFile(opts.ConfigPath, configDebounce, func(res *config.LoadResult, err error) {
			if err != nil {
				logger.Warn("config reload failed", "path", opts.ConfigPath, "error", err)
				return
			}
			p.Send(configMsg{cfg: res.Config})
		})
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	_, runErr := p.Run()

	// Unblock in-flight requests before waiting for their connections.
	close(done)
	srv.Stop()
	m.shutdown()
	logger.Info("desktop stopped")

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("error running desktop: %w", runErr)
	}
	return nil
}
