package session

import (
	"testing"
	"time"

	"github.com/1broseidon/deskshell/internal/content"
	"github.com/1broseidon/deskshell/internal/registry"
)

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(registry.DefaultOptions())

	if m.State() != LoggedOut || m.Registry() != nil {
		t.Fatalf("new manager should be logged out with no registry")
	}
	if m.CompleteLogin() {
		t.Fatalf("CompleteLogin succeeded without BeginLogin")
	}
	if !m.BeginLogin() {
		t.Fatalf("BeginLogin failed from LoggedOut")
	}
	if m.BeginLogin() {
		t.Fatalf("BeginLogin succeeded twice")
	}
	if m.Registry() != nil {
		t.Fatalf("registry available while logging in")
	}
	if !m.CompleteLogin() {
		t.Fatalf("CompleteLogin failed from LoggingIn")
	}
	if m.State() != Active || m.Registry() == nil || m.ID() == "" {
		t.Fatalf("state=%v registry=%v id=%q after login", m.State(), m.Registry(), m.ID())
	}

	m.Logout()
	if m.State() != LoggedOut || m.Registry() != nil || m.ID() != "" {
		t.Fatalf("logout left session state behind")
	}
}

func TestManager_LogoutDiscardsWindows(t *testing.T) {
	m := NewManager(registry.DefaultOptions())
	m.BeginLogin()
	m.CompleteLogin()
	firstID := m.ID()

	reg := m.Registry()
	reg.Open("about", "About Me", content.Static("about"), nil)
	reg.Open("skills", "Skills", content.Static("skills"), nil)

	m.Logout()
	m.BeginLogin()
	m.CompleteLogin()

	if m.Registry().Len() != 0 {
		t.Fatalf("new session inherited %d windows", m.Registry().Len())
	}
	if m.ID() == firstID {
		t.Fatalf("session id reused across logins")
	}
	m.Registry().Open("about", "About Me", content.Static("about"), nil)
	w, _ := m.Registry().Get("about")
	if w.StackOrder != registry.DefaultBaseStackOrder {
		t.Fatalf("StackOrder = %d, want counter reset to %d", w.StackOrder, registry.DefaultBaseStackOrder)
	}
}

func TestManager_SetOptionsAppliesNextLogin(t *testing.T) {
	m := NewManager(registry.DefaultOptions())
	m.BeginLogin()
	m.CompleteLogin()

	opts := registry.DefaultOptions()
	opts.BaseStackOrder = 50
	m.SetOptions(opts)

	m.Registry().Open("about", "About Me", content.Static("about"), nil)
	if w, _ := m.Registry().Get("about"); w.StackOrder != registry.DefaultBaseStackOrder {
		t.Fatalf("active session picked up new options: StackOrder = %d", w.StackOrder)
	}

	m.Logout()
	m.BeginLogin()
	m.CompleteLogin()
	m.Registry().Open("about", "About Me", content.Static("about"), nil)
	if w, _ := m.Registry().Get("about"); w.StackOrder != 50 {
		t.Fatalf("StackOrder = %d, want 50 after re-login", w.StackOrder)
	}
}

func TestManager_SinceUsesClock(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	m := NewManager(registry.DefaultOptions())
	m.now = func() time.Time { return at }

	m.BeginLogin()
	m.CompleteLogin()
	if !m.Since().Equal(at) {
		t.Fatalf("Since = %v, want %v", m.Since(), at)
	}
}

func TestClock(t *testing.T) {
	clock, date := Clock(time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC))
	if clock != "2:05 PM" {
		t.Errorf("clock = %q", clock)
	}
	if date != "Saturday, March 9" {
		t.Errorf("date = %q", date)
	}
}

func TestState_String(t *testing.T) {
	if Active.String() != "active" || LoggingIn.String() != "logging-in" || LoggedOut.String() != "logged-out" {
		t.Fatalf("unexpected state names")
	}
}
