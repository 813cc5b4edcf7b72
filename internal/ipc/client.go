package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskshell/internal/runtimepath"
)

// Client handles IPC communication with the running desktop
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client on the default socket
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to desktop: %w (is `deskshell run` running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("desktop error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) windowCommand(cmd CommandType, id string) (*ActionData, error) {
	payload, err := json.Marshal(WindowPayload{ID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: cmd, Payload: payload})
	if err != nil {
		return nil, err
	}

	var data ActionData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", cmd, err)
	}
	return &data, nil
}

// OpenWindow opens the catalog entry id, or focuses it when already open.
func (c *Client) OpenWindow(id string) (*ActionData, error) {
	return c.windowCommand(CommandOpenWindow, id)
}

// FocusWindow brings an open window to the front.
func (c *Client) FocusWindow(id string) (*ActionData, error) {
	return c.windowCommand(CommandFocusWindow, id)
}

// CloseWindow closes an open window.
func (c *Client) CloseWindow(id string) (*ActionData, error) {
	return c.windowCommand(CommandCloseWindow, id)
}

// MinimizeWindow toggles a window's minimized flag.
func (c *Client) MinimizeWindow(id string) (*ActionData, error) {
	return c.windowCommand(CommandMinimizeWindow, id)
}

// MaximizeWindow toggles a window's maximized flag.
func (c *Client) MaximizeWindow(id string) (*ActionData, error) {
	return c.windowCommand(CommandMaximizeWindow, id)
}

// ListWindows returns the open windows in open order.
func (c *Client) ListWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// GetStatus retrieves desktop status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}
