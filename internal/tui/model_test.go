package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/deskshell/internal/config"
	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/launcher"
	"github.com/1broseidon/deskshell/internal/panels"
	"github.com/1broseidon/deskshell/internal/registry"
	"github.com/1broseidon/deskshell/internal/session"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Window.OffsetXSpan = 0
	cfg.Window.OffsetYSpan = 0
	cfg.LoginDelayMs = 0
	return cfg
}

// loggedIn returns a model sized w×h cells with an active session.
func loggedIn(t *testing.T, w, h int) *model {
	t.Helper()
	m := newModel(testConfig(), nil)
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(loginDoneMsg{})
	if m.session.State() != session.Active {
		t.Fatalf("state = %v, want active", m.session.State())
	}
	return m
}

func press(m *model, x, y int) tea.Cmd {
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	return cmd
}

func drag(m *model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
}

func release(m *model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
}

func window(t *testing.T, m *model, id string) registry.Window {
	t.Helper()
	w, ok := m.session.Registry().Get(id)
	if !ok {
		t.Fatalf("window %q not open", id)
	}
	return w
}

func TestLogin(t *testing.T) {
	m := newModel(testConfig(), nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if !strings.Contains(m.View(), "Guest") {
		t.Fatalf("login screen should show the owner name")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.session.State() != session.LoggingIn {
		t.Fatalf("enter should begin login, state = %v", m.session.State())
	}
	if !strings.Contains(m.View(), "Logging in") {
		t.Fatalf("login screen should show progress")
	}

	// Mouse input is ignored until the session is active.
	press(m, 12, 5)

	m.Update(loginDoneMsg{})
	if m.session.State() != session.Active || m.session.Registry().Len() != 0 {
		t.Fatalf("after login: state %v", m.session.State())
	}
}

func TestIconOpensWindow(t *testing.T) {
	m := loggedIn(t, 200, 50)

	press(m, 12, 5)
	w := window(t, m, "about")
	if w.Position != (geometry.Point{X: 100, Y: 100}) || w.Size != (geometry.Size{Width: 800, Height: 600}) {
		t.Fatalf("about = %+v", w)
	}

	// The about window now covers the icon; a second press lands on it.
	press(m, 12, 10)
	if m.session.Registry().Len() != 1 {
		t.Fatalf("len = %d, want 1", m.session.Registry().Len())
	}
}

func TestTitleBarDragMovesWindow(t *testing.T) {
	m := loggedIn(t, 200, 50)
	press(m, 12, 5)
	release(m, 12, 5)

	press(m, 30, 6)
	if m.hub.Len() != 1 {
		t.Fatalf("drag should subscribe, listeners = %d", m.hub.Len())
	}
	drag(m, 33, 7)
	drag(m, 35, 8)
	if got := window(t, m, "about").Position; got != (geometry.Point{X: 150, Y: 140}) {
		t.Fatalf("position during drag = %+v", got)
	}
	release(m, 35, 8)
	if m.hub.Len() != 0 {
		t.Fatalf("release should unsubscribe, listeners = %d", m.hub.Len())
	}

	drag(m, 60, 20)
	if got := window(t, m, "about").Position; got != (geometry.Point{X: 150, Y: 140}) {
		t.Fatalf("motion after release moved the window to %+v", got)
	}
}

func TestWestEdgeResize(t *testing.T) {
	m := loggedIn(t, 200, 50)
	press(m, 12, 5)
	release(m, 12, 5)

	press(m, 10, 15)
	drag(m, 5, 15)
	release(m, 5, 15)

	w := window(t, m, "about")
	if w.Position.X != 50 || w.Size.Width != 850 || w.Size.Height != 600 {
		t.Fatalf("after west resize = %+v", w)
	}
}

func TestTitleBarControls(t *testing.T) {
	m := loggedIn(t, 200, 50)
	press(m, 12, 5) // about at cells (10,5) 80×30

	// Controls sit in row 6, ending one column left of the right border.
	press(m, 84, 6)
	if !window(t, m, "about").Maximized {
		t.Fatalf("maximize control did not maximize")
	}

	// Maximized windows fill the desktop and ignore drags.
	press(m, 30, 1)
	drag(m, 40, 5)
	release(m, 40, 5)
	if got := window(t, m, "about").Position; got != (geometry.Point{X: 100, Y: 100}) {
		t.Fatalf("maximized window moved to %+v", got)
	}

	// Close sits at the far right of the filled frame: columns 196..198.
	press(m, 197, 1)
	if m.session.Registry().Has("about") {
		t.Fatalf("close control did not close")
	}
	if len(m.surfaces) != 0 || m.hub.Len() != 0 {
		t.Fatalf("surfaces %d, listeners %d after close", len(m.surfaces), m.hub.Len())
	}
}

func TestTaskbarActivate(t *testing.T) {
	m := loggedIn(t, 200, 50)

	var skills taskbarButton
	for _, b := range m.taskbarButtons() {
		if b.entry.ID == "skills" {
			skills = b
		}
	}
	if skills.x1 == 0 {
		t.Fatalf("skills not on the taskbar")
	}

	press(m, skills.x0, 49)
	if !m.session.Registry().Has("skills") {
		t.Fatalf("taskbar press should open skills")
	}

	m.session.Registry().Minimize("skills")
	press(m, skills.x0, 49)
	w := window(t, m, "skills")
	if w.Minimized {
		t.Fatalf("taskbar press should restore a minimized window")
	}
	if m.session.Registry().Len() != 1 {
		t.Fatalf("taskbar press opened a duplicate")
	}
}

func TestMobileTilesAndFill(t *testing.T) {
	m := loggedIn(t, 60, 30)
	if !m.mobile() {
		t.Fatalf("600px viewport should be mobile")
	}

	press(m, 5, 3) // first tile
	if !m.session.Registry().Has("about") {
		t.Fatalf("tile press should open about")
	}
	ps := m.placements()
	if len(ps) != 1 || !ps[0].Filled || ps[0].Frame != (geometry.Rect{Width: 600, Height: 580}) {
		t.Fatalf("placements = %+v", ps)
	}

	// The title row only focuses on a small viewport.
	press(m, 5, 1)
	if m.hub.Len() != 0 {
		t.Fatalf("mobile title press started a drag")
	}

	if n := len(m.taskbarButtons()); n != 5 {
		t.Fatalf("mobile taskbar buttons = %d, want 4 entries plus logout", n)
	}
}

func TestPaletteOpensEntry(t *testing.T) {
	m := loggedIn(t, 200, 50)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if !m.palette.open {
		t.Fatalf("ctrl+k should open the palette")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cont")})
	if len(m.palette.results) == 0 || m.palette.results[0].ID != "contact" {
		t.Fatalf("results = %+v", m.palette.results)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.palette.open || !m.session.Registry().Has("contact") {
		t.Fatalf("enter should open contact and close the palette")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.palette.open {
		t.Fatalf("esc should close the palette")
	}
}

func TestPaletteLogoutAsksFirst(t *testing.T) {
	m := loggedIn(t, 200, 50)
	press(m, 12, 5)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("logout")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.confirm == nil {
		t.Fatalf("logout should ask for confirmation")
	}
	if m.session.State() != session.Active {
		t.Fatalf("logout must not happen before confirmation")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.confirm != nil || !m.session.Registry().Has("about") {
		t.Fatalf("esc should cancel the logout")
	}
}

func TestConfirmedLogoutDiscardsSession(t *testing.T) {
	m := loggedIn(t, 200, 50)
	press(m, 12, 5)
	press(m, 30, 6) // start a drag so a listener is live

	buttons := m.taskbarButtons()
	logout := buttons[len(buttons)-1]
	if !logout.logout || logout.x1 != 200 {
		t.Fatalf("last taskbar button = %+v", logout)
	}
	press(m, logout.x0, 49)
	if m.confirm == nil {
		t.Fatalf("logout button should ask for confirmation")
	}

	m.confirm.yes = true
	m.confirm.form.State = huh.StateCompleted
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.session.State() != session.LoggedOut || m.session.Registry() != nil {
		t.Fatalf("state = %v after confirmed logout", m.session.State())
	}
	if m.hub.Len() != 0 || len(m.surfaces) != 0 {
		t.Fatalf("logout left listeners %d, surfaces %d", m.hub.Len(), len(m.surfaces))
	}
}

func TestCtrlWClosesTopmost(t *testing.T) {
	m := loggedIn(t, 200, 50)
	reg := m.session.Registry()
	press(m, 12, 5)
	m.Update(ipcRequestMsg{op: opOpen, id: "skills", reply: make(chan ipcReply, 1)})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if reg.Has("skills") || !reg.Has("about") {
		t.Fatalf("ctrl+w should close only the topmost window")
	}
}

func TestHandleIPC(t *testing.T) {
	m := newModel(testConfig(), nil)
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})

	do := func(op ipcOp, id string) ipcReply {
		reply := make(chan ipcReply, 1)
		m.Update(ipcRequestMsg{op: op, id: id, reply: reply})
		return <-reply
	}

	if r := do(opOpen, "about"); !errors.Is(r.err, errNoSession) {
		t.Fatalf("open before login: %v", r.err)
	}
	if r := do(opStatus, ""); r.status.Session != "logged-out" {
		t.Fatalf("status = %+v", r.status)
	}
	if r := do(opList, ""); r.err != nil || len(r.windows.Windows) != 0 {
		t.Fatalf("list before login = %+v", r)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(loginDoneMsg{})

	if r := do(opOpen, "skills"); r.err != nil || !r.action.Found {
		t.Fatalf("open skills = %+v", r)
	}
	if r := do(opOpen, "about"); r.err != nil {
		t.Fatalf("open about: %v", r.err)
	}
	if r := do(opOpen, "nope"); r.err == nil || !strings.Contains(r.err.Error(), "unknown panel") {
		t.Fatalf("open unknown = %v", r.err)
	}
	if r := do(opOpen, "logout"); r.err == nil {
		t.Fatalf("logout is not a window")
	}
	if r := do(opClose, "contact"); r.err != nil || r.action.Found {
		t.Fatalf("close unopened = %+v", r)
	}
	if r := do(opFocus, "skills"); !r.action.Found {
		t.Fatalf("focus skills = %+v", r)
	}

	list := do(opList, "").windows.Windows
	if len(list) != 2 || list[0].ID != "skills" || !list[0].Focused || list[1].Focused {
		t.Fatalf("list = %+v", list)
	}

	do(opMinimize, "skills")
	if !window(t, m, "skills").Minimized {
		t.Fatalf("minimize over IPC")
	}
	do(opMaximize, "about")
	if !window(t, m, "about").Maximized {
		t.Fatalf("maximize over IPC")
	}

	st := do(opStatus, "").status
	if st.Session != "active" || st.WindowCount != 2 || st.SessionID == "" || st.Mobile {
		t.Fatalf("status = %+v", st)
	}
}

func TestTileAndDirectionalFocus(t *testing.T) {
	m := loggedIn(t, 200, 50)
	for _, id := range []string{"about", "skills"} {
		m.Update(ipcRequestMsg{op: opOpen, id: id, reply: make(chan ipcReply, 1)})
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	about, skills := window(t, m, "about"), window(t, m, "skills")
	if about.Frame() != (geometry.Rect{X: 20, Y: 20, Width: 970, Height: 940}) {
		t.Fatalf("about tiled to %+v", about.Frame())
	}
	if skills.Position != (geometry.Point{X: 1010, Y: 20}) {
		t.Fatalf("skills tiled to %+v", skills.Position)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if top, _ := m.session.Registry().Topmost(); top.ID != "about" {
		t.Fatalf("alt+left focused %q, want about", top.ID)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if top, _ := m.session.Registry().Topmost(); top.ID != "skills" {
		t.Fatalf("alt+left should wrap to skills, got %q", top.ID)
	}
}

func TestConfigReload(t *testing.T) {
	m := loggedIn(t, 200, 50)
	press(m, 12, 5)
	before := window(t, m, "about").StackOrder

	cfg := testConfig()
	about := cfg.Panels["about"]
	about.Disabled = true
	cfg.Panels["about"] = about
	cfg.Window.BaseStackOrder = 50
	cfg.CellWidthPx = 8
	m.Update(configMsg{cfg: cfg})

	for _, e := range m.entries {
		if e.ID == "about" {
			t.Fatalf("disabled panel still on the desktop")
		}
	}
	if m.grid.cw != 8 {
		t.Fatalf("cell width = %d, want 8", m.grid.cw)
	}
	// Open windows survive the reload untouched.
	if window(t, m, "about").StackOrder != before {
		t.Fatalf("reload disturbed an open window")
	}

	m.logout()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(loginDoneMsg{})
	m.Update(ipcRequestMsg{op: opOpen, id: "skills", reply: make(chan ipcReply, 1)})
	if got := window(t, m, "skills").StackOrder; got != 50 {
		t.Fatalf("StackOrder = %d after re-login, want 50", got)
	}
}

func TestPressEndsStaleGesture(t *testing.T) {
	m := loggedIn(t, 200, 50)
	press(m, 12, 5)
	release(m, 12, 5)

	// Move about to the right so skills only partly covers it.
	press(m, 30, 6)
	drag(m, 80, 6)
	release(m, 80, 6)
	if got := window(t, m, "about").Position; got != (geometry.Point{X: 600, Y: 100}) {
		t.Fatalf("about at %+v", got)
	}
	m.Update(ipcRequestMsg{op: opOpen, id: "skills", reply: make(chan ipcReply, 1)})

	// Start dragging skills; its release never arrives.
	press(m, 30, 6)
	drag(m, 31, 6)

	press(m, 120, 6)
	if m.hub.Len() != 1 {
		t.Fatalf("listeners = %d, want only the new gesture", m.hub.Len())
	}
	skills := window(t, m, "skills").Position
	drag(m, 125, 7)
	if got := window(t, m, "about").Position; got != (geometry.Point{X: 650, Y: 120}) {
		t.Fatalf("about at %+v after drag", got)
	}
	if got := window(t, m, "skills").Position; got != skills {
		t.Fatalf("stale gesture moved skills from %+v to %+v", skills, got)
	}
}

func TestHandleIPC_OpenRejectsActions(t *testing.T) {
	m := loggedIn(t, 200, 50)
	m.entries = panels.PaletteCatalog(m.cfg)

	reply := make(chan ipcReply, 1)
	m.Update(ipcRequestMsg{op: opOpen, id: launcher.LogoutID, reply: reply})
	r := <-reply
	if r.err == nil || !strings.Contains(r.err.Error(), "cannot be opened") {
		t.Fatalf("open logout = %+v", r)
	}
	if m.confirm != nil || m.session.State() != session.Active {
		t.Fatalf("IPC open must not start a logout")
	}
	if m.session.Registry().Len() != 0 {
		t.Fatalf("logout entry opened a window")
	}
}
