package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandOpenWindow     CommandType = "OPEN_WINDOW"
	CommandFocusWindow    CommandType = "FOCUS_WINDOW"
	CommandCloseWindow    CommandType = "CLOSE_WINDOW"
	CommandMinimizeWindow CommandType = "MINIMIZE_WINDOW"
	CommandMaximizeWindow CommandType = "MAXIMIZE_WINDOW"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandGetStatus      CommandType = "GET_STATUS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WindowPayload names the window a command acts on.
type WindowPayload struct {
	ID string `json:"id"`
}

// ActionData is returned by the per-window commands. Found is false when
// the window was not open; that is not an error.
type ActionData struct {
	ID    string `json:"id"`
	Found bool   `json:"found"`
}

// WindowInfo describes one open window.
type WindowInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	StackOrder int    `json:"stack_order"`
	Minimized  bool   `json:"minimized"`
	Maximized  bool   `json:"maximized"`
	Focused    bool   `json:"focused"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Session       string `json:"session"` // logged-out, logging-in, active
	SessionID     string `json:"session_id,omitempty"`
	WindowCount   int    `json:"window_count"`
	Mobile        bool   `json:"mobile"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Running       bool   `json:"running"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
