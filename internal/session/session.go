// Package session tracks the login state of the desktop and owns the window
// registry for the lifetime of one logged-in session.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/deskshell/internal/registry"
)

// State is the login state.
type State int

const (
	LoggedOut State = iota
	LoggingIn
	Active
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged-out"
	case LoggingIn:
		return "logging-in"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Manager moves between login states. Every completed login gets a fresh
// registry; logging out discards it along with every window.
type Manager struct {
	opts  registry.Options
	state State
	id    string
	reg   *registry.Registry
	since time.Time
	now   func() time.Time
}

// NewManager returns a logged-out manager that builds registries with opts.
func NewManager(opts registry.Options) *Manager {
	return &Manager{opts: opts, now: time.Now}
}

// SetOptions replaces the registry options. The active session keeps its
// registry; the change applies from the next login.
func (m *Manager) SetOptions(opts registry.Options) {
	m.opts = opts
}

// State returns the current login state.
func (m *Manager) State() State {
	return m.state
}

// ID returns the session id, empty unless Active.
func (m *Manager) ID() string {
	return m.id
}

// Since returns when the current session became Active.
func (m *Manager) Since() time.Time {
	return m.since
}

// Registry returns the session's window registry, or nil when not Active.
func (m *Manager) Registry() *registry.Registry {
	if m.state != Active {
		return nil
	}
	return m.reg
}

// BeginLogin moves a logged-out session to LoggingIn. It reports false in
// any other state.
func (m *Manager) BeginLogin() bool {
	if m.state != LoggedOut {
		return false
	}
	m.state = LoggingIn
	return true
}

// CompleteLogin finishes a pending login with an empty registry and a new
// session id.
func (m *Manager) CompleteLogin() bool {
	if m.state != LoggingIn {
		return false
	}
	m.reg = registry.New(m.opts)
	m.id = uuid.NewString()
	m.since = m.now()
	m.state = Active
	return true
}

// Logout drops the registry and returns to LoggedOut. Calling it while
// logging in cancels the pending login.
func (m *Manager) Logout() {
	m.reg = nil
	m.id = ""
	m.since = time.Time{}
	m.state = LoggedOut
}

// Clock formats t for the login screen: a 12-hour time and a long date.
func Clock(t time.Time) (clock, date string) {
	return t.Format("3:04 PM"), t.Format("Monday, January 2")
}
