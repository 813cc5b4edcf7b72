package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/deskshell/internal/arrange"
	"github.com/1broseidon/deskshell/internal/compositor"
	"github.com/1broseidon/deskshell/internal/config"
	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/launcher"
	"github.com/1broseidon/deskshell/internal/panels"
	"github.com/1broseidon/deskshell/internal/pointer"
	"github.com/1broseidon/deskshell/internal/registry"
	"github.com/1broseidon/deskshell/internal/session"
	"github.com/1broseidon/deskshell/internal/surface"
)

type clockMsg time.Time

type loginDoneMsg struct{}

// configMsg carries a reloaded configuration.
type configMsg struct {
	cfg *config.Config
}

// logoutConfirm lives on the heap so the form's value pointer stays valid.
type logoutConfirm struct {
	form *huh.Form
	yes  bool
}

func newLogoutConfirm() *logoutConfirm {
	c := &logoutConfirm{}
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("logout").
				Title("Log out?").
				Description("All open windows will be closed.").
				Affirmative("Log out").
				Negative("Cancel").
				Value(&c.yes),
		),
	).WithWidth(36).WithShowHelp(false)
	return c
}

// model is the root bubbletea model: the login screen and the desktop.
type model struct {
	cfg    *config.Config
	logger *slog.Logger

	session *session.Manager
	entries launcher.Catalog
	comp    compositor.Compositor
	grid    grid

	hub      *pointer.Hub
	surfaces map[string]*surface.Surface

	palette palette
	confirm *logoutConfirm
	spinner spinner.Model

	now time.Time

	// Terminal dimensions
	width  int
	height int
}

func newModel(cfg *config.Config, logger *slog.Logger) *model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := cfg.RegistryOptions()
	opts.Observer = registry.LogObserver(logger)

	return &model{
		cfg:      cfg,
		logger:   logger,
		session:  session.NewManager(opts),
		entries:  panels.Catalog(cfg),
		comp:     compositor.New(cfg.MobileWidthPx),
		grid:     newGrid(cfg.CellWidthPx, cfg.CellHeightPx),
		hub:      pointer.NewHub(),
		surfaces: map[string]*surface.Surface{},
		palette:  newPalette(panels.PaletteCatalog(cfg), cfg.PaletteFuzzyMatching),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		now:      time.Now(),
	}
}

// applyConfig swaps in a reloaded configuration. Catalogs, metrics and
// layout change at once; window defaults apply from the next login.
func (m *model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.entries = panels.Catalog(cfg)
	m.comp = compositor.New(cfg.MobileWidthPx)
	m.grid = newGrid(cfg.CellWidthPx, cfg.CellHeightPx)

	m.palette.catalog = panels.PaletteCatalog(cfg)
	m.palette.fuzzy = cfg.PaletteFuzzyMatching
	if m.palette.open {
		m.palette.refresh()
	}

	opts := cfg.RegistryOptions()
	opts.Observer = registry.LogObserver(m.logger)
	m.session.SetOptions(opts)
	m.logger.Info("config reloaded", "panels", len(m.entries))
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("deskshell"), clockTick())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case loginDoneMsg:
		if m.session.CompleteLogin() {
			m.logger.Info("session started", "session", m.session.ID())
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.State() != session.LoggingIn {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ipcRequestMsg:
		msg.reply <- m.handleIPC(msg)
		return m, nil

	case configMsg:
		m.applyConfig(msg.cfg)
		return m, nil
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	if m.palette.open {
		var cmd tea.Cmd
		m.palette.input, cmd = m.palette.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.shutdown()
		return m, tea.Quit
	}

	switch m.session.State() {
	case session.LoggedOut:
		if msg.String() == "enter" {
			return m, m.beginLogin()
		}
		return m, nil
	case session.LoggingIn:
		return m, nil
	}

	if m.palette.open {
		e, chosen, cmd := m.palette.update(msg)
		if chosen {
			return m, m.choose(e)
		}
		return m, cmd
	}

	switch msg.String() {
	case m.cfg.PaletteHotkey:
		return m, m.palette.show()
	case "ctrl+w":
		if w, ok := m.session.Registry().Topmost(); ok {
			m.closeWindow(w.ID)
		}
	case "ctrl+t":
		m.tile()
	case "alt+up":
		m.focusToward(geometry.North)
	case "alt+down":
		m.focusToward(geometry.South)
	case "alt+left":
		m.focusToward(geometry.West)
	case "alt+right":
		m.focusToward(geometry.East)
	}
	return m, nil
}

// tileGap separates tiled windows, in pixels.
const tileGap = 20

// tile arranges every visible, restored window in a grid over the desktop.
func (m *model) tile() {
	if m.mobile() {
		return
	}
	reg := m.session.Registry()
	var ids []string
	for _, w := range reg.Windows() {
		if !w.Minimized && !w.Maximized {
			ids = append(ids, w.ID)
		}
	}
	for i, f := range arrange.Tile(len(ids), m.viewport(), tileGap) {
		reg.UpdatePosition(ids[i], f.Origin())
		reg.UpdateSize(ids[i], f.Dim())
	}
}

// focusToward focuses the visible window nearest the focused one in dir.
func (m *model) focusToward(dir geometry.Direction) {
	reg := m.session.Registry()
	top, ok := reg.Topmost()
	if !ok {
		return
	}
	ps := m.placements()
	frames := make([]geometry.Rect, len(ps))
	current := -1
	for i, p := range ps {
		frames[i] = p.Frame
		if p.ID == top.ID {
			current = i
		}
	}
	if next, ok := arrange.Neighbor(frames, current, dir); ok {
		reg.Focus(ps[next].ID)
	}
}

func (m *model) beginLogin() tea.Cmd {
	if !m.session.BeginLogin() {
		return nil
	}
	done := func() tea.Msg { return loginDoneMsg{} }
	if d := m.cfg.LoginDelay(); d > 0 {
		done = tea.Tick(d, func(time.Time) tea.Msg { return loginDoneMsg{} })
	}
	return tea.Batch(m.spinner.Tick, done)
}

// choose runs a palette or taskbar selection.
func (m *model) choose(e launcher.Entry) tea.Cmd {
	if e.Action == launcher.ActionLogout {
		return m.askLogout()
	}
	launcher.Activate(m.session.Registry(), e)
	return nil
}

func (m *model) askLogout() tea.Cmd {
	m.palette.hide()
	m.confirm = newLogoutConfirm()
	return m.confirm.form.Init()
}

func (m *model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "esc":
			m.confirm = nil
			return m, nil
		}
	}

	form, cmd := m.confirm.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm.form = f
	}

	switch m.confirm.form.State {
	case huh.StateCompleted:
		yes := m.confirm.yes
		m.confirm = nil
		if yes {
			m.logout()
		}
		return m, nil
	case huh.StateAborted:
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}

func (m *model) logout() {
	m.teardownSurfaces()
	m.palette.hide()
	m.logger.Info("session ended", "session", m.session.ID())
	m.session.Logout()
}

// shutdown releases every gesture before the program exits.
func (m *model) shutdown() {
	m.teardownSurfaces()
}

func (m *model) teardownSurfaces() {
	for id, s := range m.surfaces {
		s.Teardown()
		delete(m.surfaces, id)
	}
}

// syncSurfaces drops surfaces whose windows are gone.
func (m *model) syncSurfaces() {
	reg := m.session.Registry()
	for id, s := range m.surfaces {
		if reg == nil || !reg.Has(id) {
			s.Teardown()
			delete(m.surfaces, id)
		}
	}
}

func (m *model) surfaceFor(id string) *surface.Surface {
	s, ok := m.surfaces[id]
	if !ok {
		s = surface.New(id, m.session.Registry(), m.hub)
		m.surfaces[id] = s
	}
	return s
}

func (m *model) closeWindow(id string) {
	if s, ok := m.surfaces[id]; ok {
		s.Teardown()
		delete(m.surfaces, id)
	}
	m.session.Registry().Close(id)
}

func (m *model) viewport() geometry.Rect {
	return m.grid.viewport(m.width, m.height)
}

func (m *model) mobile() bool {
	return m.comp.IsMobile(m.viewport())
}

// placements composes the registry and snaps every frame to whole cells.
func (m *model) placements() []compositor.Placement {
	reg := m.session.Registry()
	if reg == nil {
		return nil
	}
	out := m.comp.Compose(reg.Windows(), m.viewport())
	for i := range out {
		out[i].Frame = m.grid.snap(out[i].Frame)
	}
	return out
}

func (m *model) taskbarEntries() launcher.Catalog {
	if m.mobile() {
		return launcher.MobileTaskbar(m.entries)
	}
	return m.entries.Windows()
}

func (m *model) taskbarButtons() []taskbarButton {
	clock, _ := session.Clock(m.now)
	return layoutTaskbar(m.taskbarEntries(), m.width, clock)
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.session.State() != session.Active {
		return nil
	}
	px := m.grid.toPx(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.hub.Move(px)
	case tea.MouseActionRelease:
		m.hub.Up(px)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if m.palette.open {
			m.palette.hide()
			return nil
		}
		cmd := m.press(msg.X, msg.Y)
		m.syncSurfaces()
		return cmd
	}
	m.syncSurfaces()
	return nil
}

func (m *model) press(x, y int) tea.Cmd {
	reg := m.session.Registry()

	// A release can be lost outside the terminal; a new press ends any
	// gesture still in progress.
	for _, sf := range m.surfaces {
		sf.Teardown()
	}

	if y == m.height-1 {
		b, ok := taskbarButtonAt(m.taskbarButtons(), x)
		if !ok {
			return nil
		}
		if b.logout {
			return m.askLogout()
		}
		launcher.TaskbarActivate(reg, b.entry)
		return nil
	}

	at := geometry.Point{X: x, Y: y}
	if p, ok := compositor.TopmostAt(m.placements(), m.grid.toPx(x, y)); ok {
		h := surface.HitTest(m.grid.toCells(p.Frame), at, cellMetrics, p.Maximized)
		if m.mobile() && h.Kind == surface.HandleTitleBar {
			// Windows fill a small viewport; there is nothing to drag.
			h = surface.Handle{Kind: surface.HandleBody}
		}
		m.surfaceFor(p.ID).PointerDown(h, m.grid.toPx(x, y))
		return nil
	}

	icons := layoutIcons(m.entries, m.grid)
	if m.mobile() {
		icons = layoutTiles(m.entries, m.width)
	}
	if e, ok := iconAt(icons, at); ok {
		launcher.Activate(reg, e)
	}
	return nil
}
