package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/deskshell/internal/compositor"
	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/session"
	"github.com/1broseidon/deskshell/internal/surface"
)

var controlLabels = [3]string{" _ ", " □ ", " × "}

func (m *model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.session.State() != session.Active {
		return m.viewLogin()
	}

	lines := m.paint().lines()
	switch {
	case m.confirm != nil:
		box := overlayStyle.Render(m.confirm.form.View())
		top := max(0, (m.height-lipgloss.Height(box))/2)
		overlayRows(lines, box, top, m.width)
	case m.palette.open:
		overlayRows(lines, m.palette.view(), 2, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m *model) viewLogin() string {
	clock, date := session.Clock(m.now)

	hint := "Press Enter to log in"
	if m.session.State() == session.LoggingIn {
		hint = m.spinner.View() + " Logging in..."
	}

	parts := []string{
		loginClockStyle.Render(clock),
		loginDateStyle.Render(date),
		loginNameStyle.Render(m.cfg.Owner.Name),
	}
	if m.cfg.Owner.Tagline != "" {
		parts = append(parts, loginDateStyle.Render(m.cfg.Owner.Tagline))
	}
	parts = append(parts, loginHintStyle.Render(hint))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// paint draws the desktop, its windows and the taskbar onto a fresh canvas.
func (m *model) paint() *canvas {
	c := newCanvas(m.width, m.height, styleDesktop)

	if m.mobile() {
		m.paintTiles(c)
	} else {
		for _, ic := range layoutIcons(m.entries, m.grid) {
			paintIcon(c, ic)
		}
	}

	focused := ""
	if w, ok := m.session.Registry().Topmost(); ok {
		focused = w.ID
	}
	for _, p := range m.placements() {
		paintWindow(c, p, m.grid.toCells(p.Frame), p.ID == focused)
	}

	m.paintTaskbar(c, focused)
	return c
}

func paintIcon(c *canvas, ic iconCell) {
	b := ic.bounds
	glyph := ic.entry.Icon
	c.text(b.X+(b.Width-runewidth.StringWidth(glyph))/2, b.Y, glyph, styleIcon, b.Width)
	label := runewidth.Truncate(ic.entry.Title, b.Width, "…")
	c.text(b.X+(b.Width-runewidth.StringWidth(label))/2, b.Y+1, label, styleIconLabel, b.Width)
}

func (m *model) paintTiles(c *canvas) {
	header := m.cfg.Owner.Name
	c.text(max(0, (m.width-runewidth.StringWidth(header))/2), 0, header, styleHeader, m.width)

	for _, ic := range layoutTiles(m.entries, m.width) {
		b := ic.bounds
		c.fill(b, styleTile)
		label := runewidth.Truncate(ic.entry.Icon+"  "+ic.entry.Title, b.Width-2, "…")
		c.text(b.X+1, b.Y+b.Height/2, label, styleTile, b.Width-2)
	}
}

// paintWindow draws one window frame r (in cells): top border, title row
// with controls, body, bottom border.
func paintWindow(c *canvas, p compositor.Placement, r geometry.Rect, focused bool) {
	frame, title := styleFrame, styleTitle
	if focused {
		frame, title = styleFrameFocused, styleTitleFocused
	}
	if r.Width < 2 || r.Height < 3 {
		c.fill(r, frame)
		return
	}

	right, bottom := r.Right()-1, r.Bottom()-1

	c.put(r.X, r.Y, '┌', 1, frame)
	c.hline(r.X+1, right, r.Y, '─', frame)
	c.put(right, r.Y, '┐', 1, frame)

	titleRow := r.Y + 1
	c.put(r.X, titleRow, '│', 1, frame)
	c.fill(geometry.Rect{X: r.X + 1, Y: titleRow, Width: r.Width - 2, Height: 1}, title)
	controls := surface.ControlRects(r, cellMetrics)
	if w := controls[0].X - r.X - 3; w > 0 {
		c.text(r.X+2, titleRow, p.Title, title, w)
	}
	for i, cr := range controls {
		st := styleControl
		if i == 2 {
			st = styleClose
		}
		c.text(cr.X, titleRow, controlLabels[i], st, cr.Width)
	}
	c.put(right, titleRow, '│', 1, frame)

	bodyTop := r.Y + cellMetrics.TitleBar
	bodyW, bodyH := r.Width-2, bottom-bodyTop
	c.fill(geometry.Rect{X: r.X + 1, Y: bodyTop, Width: bodyW, Height: max(0, bodyH)}, styleBody)
	for i, line := range p.Content.Render(p.Props, bodyW-2, bodyH) {
		c.text(r.X+2, bodyTop+i, line, styleBody, bodyW-2)
	}
	for y := bodyTop; y < bottom; y++ {
		c.put(r.X, y, '│', 1, frame)
		c.put(right, y, '│', 1, frame)
	}

	c.put(r.X, bottom, '└', 1, frame)
	c.hline(r.X+1, right, bottom, '─', frame)
	c.put(right, bottom, '┘', 1, frame)
}

func (m *model) paintTaskbar(c *canvas, focused string) {
	y := m.height - 1
	c.fill(geometry.Rect{X: 0, Y: y, Width: m.width, Height: 1}, styleTaskbar)

	reg := m.session.Registry()
	for _, b := range m.taskbarButtons() {
		st := styleTaskbar
		switch {
		case b.logout:
			st = styleLogout
		case b.entry.ID == focused:
			st = styleTaskbarFocused
		case reg.Has(b.entry.ID):
			st = styleTaskbarOpen
		}
		c.text(b.x0, y, b.label, st, b.x1-b.x0)
	}

	clock, _ := session.Clock(m.now)
	x := m.width - runewidth.StringWidth(logoutLabel) - runewidth.StringWidth(clock) - 1
	c.text(x, y, clock, styleTaskbarClock, 0)
}

// overlayRows replaces whole rows of base with the lines of box, centred
// horizontally. Whole-row replacement keeps styled rows intact.
func overlayRows(base []string, box string, top, width int) {
	for i, line := range strings.Split(box, "\n") {
		row := top + i
		if row < 0 || row >= len(base) {
			continue
		}
		base[row] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
}
