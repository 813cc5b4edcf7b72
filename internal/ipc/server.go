package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/deskshell/internal/runtimepath"
)

// ErrAlreadyRunning is returned by Start when another desktop answers on
// the socket.
var ErrAlreadyRunning = errors.New("deskshell is already running")

// Dispatcher performs window commands on the running desktop. Calls arrive
// on connection goroutines; implementations serialize them.
type Dispatcher interface {
	OpenWindow(id string) (ActionData, error)
	FocusWindow(id string) (ActionData, error)
	CloseWindow(id string) (ActionData, error)
	MinimizeWindow(id string) (ActionData, error)
	MaximizeWindow(id string) (ActionData, error)
	ListWindows() (WindowsData, error)
	Status() (StatusData, error)
}

// readTimeout bounds how long a connection may take to send its request.
const readTimeout = 5 * time.Second

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	dispatcher   Dispatcher
	logger       *slog.Logger
	startTime    time.Time
	wg           sync.WaitGroup
	shuttingDown bool
	conns        map[net.Conn]struct{}
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. An empty socketPath uses the runtime
// directory default.
func NewServer(socketPath string, dispatcher Dispatcher, logger *slog.Logger) (*Server, error) {
	if socketPath == "" {
		var err error
		socketPath, err = runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		socketPath: socketPath,
		dispatcher: dispatcher,
		logger:     logger,
		startTime:  time.Now(),
		conns:      map[net.Conn]struct{}{},
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// A stale socket from a crashed run is removed; a live one is not ours.
	if conn, err := net.DialTimeout("unix", s.socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return ErrAlreadyRunning
	}
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		if !s.track(conn) {
			conn.Close()
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.handleConnection(conn)
		}()
	}
}

// track registers a live connection. It reports false once Stop has begun.
func (s *Server) track(conn net.Conn) bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	if s.shuttingDown {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.shutdownMu.Lock()
	delete(s.conns, conn)
	s.shutdownMu.Unlock()
}

func (s *Server) isShuttingDown() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send IPC response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command)

	switch req.Command {
	case CommandOpenWindow:
		return s.handleWindow(req.Payload, s.dispatcher.OpenWindow)
	case CommandFocusWindow:
		return s.handleWindow(req.Payload, s.dispatcher.FocusWindow)
	case CommandCloseWindow:
		return s.handleWindow(req.Payload, s.dispatcher.CloseWindow)
	case CommandMinimizeWindow:
		return s.handleWindow(req.Payload, s.dispatcher.MinimizeWindow)
	case CommandMaximizeWindow:
		return s.handleWindow(req.Payload, s.dispatcher.MaximizeWindow)
	case CommandListWindows:
		data, err := s.dispatcher.ListWindows()
		return s.respond(data, err)
	case CommandGetStatus:
		return s.handleGetStatus()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleWindow(payload json.RawMessage, fn func(string) (ActionData, error)) *Response {
	var req WindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	if strings.TrimSpace(req.ID) == "" {
		return NewErrorResponse("id is required")
	}
	data, err := fn(req.ID)
	return s.respond(data, err)
}

// handleGetStatus returns current desktop status
func (s *Server) handleGetStatus() *Response {
	status, err := s.dispatcher.Status()
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	status.UptimeSeconds = int64(time.Since(s.startTime).Seconds())
	status.Running = true
	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) respond(data any, err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, mErr := NewOKResponse(data)
	if mErr != nil {
		return NewErrorResponse(mErr.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop shuts down the listener, closes open connections, waits for their
// goroutines and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	for conn := range s.conns {
		conn.Close()
	}
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
