package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskshell/internal/ipc"
	"github.com/1broseidon/deskshell/internal/launcher"
	"github.com/1broseidon/deskshell/internal/registry"
	"github.com/1broseidon/deskshell/internal/session"
)

// ErrDesktopClosed is returned for requests that arrive after the desktop
// stopped.
var ErrDesktopClosed = errors.New("desktop is shutting down")

var errNoSession = errors.New("no active session (log in first)")

type ipcOp int

const (
	opOpen ipcOp = iota
	opFocus
	opClose
	opMinimize
	opMaximize
	opList
	opStatus
)

// ipcRequestMsg carries a socket request into the update loop, which owns
// all window state.
type ipcRequestMsg struct {
	op    ipcOp
	id    string
	reply chan ipcReply
}

type ipcReply struct {
	action  ipc.ActionData
	windows ipc.WindowsData
	status  ipc.StatusData
	err     error
}

// Bridge implements ipc.Dispatcher by forwarding each call to the running
// program and waiting for the update loop to answer.
type Bridge struct {
	send    func(tea.Msg)
	done    <-chan struct{}
	timeout time.Duration
}

// NewBridge creates a bridge that delivers messages with send. Calls fail
// with ErrDesktopClosed once done is closed.
func NewBridge(send func(tea.Msg), done <-chan struct{}) *Bridge {
	return &Bridge{send: send, done: done, timeout: 3 * time.Second}
}

func (b *Bridge) call(op ipcOp, id string) (ipcReply, error) {
	select {
	case <-b.done:
		return ipcReply{}, ErrDesktopClosed
	default:
	}

	reply := make(chan ipcReply, 1)
	b.send(ipcRequestMsg{op: op, id: id, reply: reply})

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case r := <-reply:
		return r, r.err
	case <-b.done:
		return ipcReply{}, ErrDesktopClosed
	case <-timer.C:
		return ipcReply{}, fmt.Errorf("desktop did not answer within %s", b.timeout)
	}
}

func (b *Bridge) action(op ipcOp, id string) (ipc.ActionData, error) {
	r, err := b.call(op, id)
	return r.action, err
}

func (b *Bridge) OpenWindow(id string) (ipc.ActionData, error)     { return b.action(opOpen, id) }
func (b *Bridge) FocusWindow(id string) (ipc.ActionData, error)    { return b.action(opFocus, id) }
func (b *Bridge) CloseWindow(id string) (ipc.ActionData, error)    { return b.action(opClose, id) }
func (b *Bridge) MinimizeWindow(id string) (ipc.ActionData, error) { return b.action(opMinimize, id) }
func (b *Bridge) MaximizeWindow(id string) (ipc.ActionData, error) { return b.action(opMaximize, id) }

func (b *Bridge) ListWindows() (ipc.WindowsData, error) {
	r, err := b.call(opList, "")
	return r.windows, err
}

func (b *Bridge) Status() (ipc.StatusData, error) {
	r, err := b.call(opStatus, "")
	return r.status, err
}

// handleIPC runs a forwarded request against the current session.
func (m *model) handleIPC(msg ipcRequestMsg) ipcReply {
	switch msg.op {
	case opStatus:
		return ipcReply{status: m.status()}
	case opList:
		return ipcReply{windows: m.windowList()}
	}

	reg := m.session.Registry()
	if reg == nil {
		return ipcReply{err: errNoSession}
	}

	out := ipcReply{action: ipc.ActionData{ID: msg.id}}
	if msg.op == opOpen {
		e, ok := m.entries.Find(msg.id)
		if !ok {
			return ipcReply{err: fmt.Errorf("unknown panel %q", msg.id)}
		}
		if e.Action != launcher.ActionOpen {
			return ipcReply{err: fmt.Errorf("panel %q cannot be opened as a window", msg.id)}
		}
		launcher.Activate(reg, e)
		out.action.Found = true
		return out
	}

	if !reg.Has(msg.id) {
		return out
	}
	out.action.Found = true
	switch msg.op {
	case opFocus:
		reg.Focus(msg.id)
	case opClose:
		m.closeWindow(msg.id)
	case opMinimize:
		reg.Minimize(msg.id)
	case opMaximize:
		reg.Maximize(msg.id)
	}
	return out
}

func (m *model) windowList() ipc.WindowsData {
	data := ipc.WindowsData{Windows: []ipc.WindowInfo{}}
	reg := m.session.Registry()
	if reg == nil {
		return data
	}
	top, _ := reg.Topmost()
	for _, w := range reg.Windows() {
		data.Windows = append(data.Windows, windowInfo(w, w.ID == top.ID))
	}
	return data
}

func windowInfo(w registry.Window, focused bool) ipc.WindowInfo {
	return ipc.WindowInfo{
		ID:         w.ID,
		Title:      w.Title,
		X:          w.Position.X,
		Y:          w.Position.Y,
		Width:      w.Size.Width,
		Height:     w.Size.Height,
		StackOrder: w.StackOrder,
		Minimized:  w.Minimized,
		Maximized:  w.Maximized,
		Focused:    focused,
	}
}

func (m *model) status() ipc.StatusData {
	st := ipc.StatusData{
		Session: m.session.State().String(),
		Mobile:  m.mobile(),
	}
	if m.session.State() == session.Active {
		st.SessionID = m.session.ID()
		st.WindowCount = m.session.Registry().Len()
	}
	return st
}
