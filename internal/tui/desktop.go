package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/launcher"
	"github.com/1broseidon/deskshell/internal/surface"
)

// cellMetrics are the frame chrome sizes in terminal cells: a one-row top
// border, a title row, and three-column controls flush with the right border.
var cellMetrics = surface.Metrics{
	Edge:      1,
	Corner:    1,
	TitleBar:  2,
	Button:    3,
	ButtonGap: 0,
	Inset:     1,
}

// iconWidth is the clickable width of a desktop icon label.
const iconWidth = 12

// mobileTileHeight is the height of a launcher tile on a small viewport.
const mobileTileHeight = 3

// grid maps between terminal cells and the pixel space windows live in.
type grid struct {
	cw, ch int
}

func newGrid(cw, ch int) grid {
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	return grid{cw: cw, ch: ch}
}

func (g grid) toPx(col, row int) geometry.Point {
	return geometry.Point{X: col * g.cw, Y: row * g.ch}
}

func (g grid) toCell(p geometry.Point) geometry.Point {
	return geometry.Point{X: floorDiv(p.X, g.cw), Y: floorDiv(p.Y, g.ch)}
}

// toCells returns the cell rectangle a pixel frame occupies.
func (g grid) toCells(r geometry.Rect) geometry.Rect {
	o := g.toCell(r.Origin())
	return geometry.Rect{
		X:      o.X,
		Y:      o.Y,
		Width:  max(1, r.Width/g.cw),
		Height: max(1, r.Height/g.ch),
	}
}

// snap aligns a pixel frame to whole cells, so pixel containment and cell
// containment agree.
func (g grid) snap(r geometry.Rect) geometry.Rect {
	c := g.toCells(r)
	return geometry.Rect{X: c.X * g.cw, Y: c.Y * g.ch, Width: c.Width * g.cw, Height: c.Height * g.ch}
}

// viewport is the desktop area in pixels for a terminal of w×h cells. The
// last row belongs to the taskbar.
func (g grid) viewport(w, h int) geometry.Rect {
	return geometry.Rect{Width: w * g.cw, Height: max(0, h-1) * g.ch}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// iconCell is a desktop icon in cell space.
type iconCell struct {
	entry launcher.Entry
	bounds geometry.Rect
}

func layoutIcons(c launcher.Catalog, g grid) []iconCell {
	placed := launcher.IconGrid(c, launcher.DefaultGridSpec())
	out := make([]iconCell, 0, len(placed))
	for _, p := range placed {
		o := g.toCell(p.Position)
		out = append(out, iconCell{
			entry:  p.Entry,
			bounds: geometry.Rect{X: o.X, Y: o.Y, Width: iconWidth, Height: 2},
		})
	}
	return out
}

// layoutTiles places every entry in a two-column grid below the mobile
// header row.
func layoutTiles(c launcher.Catalog, width int) []iconCell {
	entries := c.Windows()
	colW := max(1, width/2)
	out := make([]iconCell, 0, len(entries))
	for i, e := range entries {
		out = append(out, iconCell{
			entry: e,
			bounds: geometry.Rect{
				X:      (i % 2) * colW,
				Y:      2 + (i/2)*(mobileTileHeight+1),
				Width:  colW - 1,
				Height: mobileTileHeight,
			},
		})
	}
	return out
}

func iconAt(icons []iconCell, p geometry.Point) (launcher.Entry, bool) {
	for _, ic := range icons {
		if ic.bounds.Contains(p) {
			return ic.entry, true
		}
	}
	return launcher.Entry{}, false
}

// taskbarButton is a clickable span of the taskbar row.
type taskbarButton struct {
	entry  launcher.Entry
	logout bool
	label  string
	x0, x1 int
}

const logoutLabel = " ⏻ "

// layoutTaskbar lays entries out left to right, falling back to icon-only
// labels when titles don't fit beside the clock. The logout button always
// takes the right edge.
func layoutTaskbar(entries launcher.Catalog, width int, clock string) []taskbarButton {
	logoutW := runewidth.StringWidth(logoutLabel)
	avail := width - logoutW - runewidth.StringWidth(clock) - 2

	labels := make([]string, len(entries))
	total := 0
	for i, e := range entries {
		labels[i] = " " + e.Icon + " " + e.Title + " "
		total += runewidth.StringWidth(labels[i]) + 1
	}
	if total > avail {
		for i, e := range entries {
			labels[i] = " " + e.Icon + " "
		}
	}

	var out []taskbarButton
	x := 1
	for i, e := range entries {
		w := runewidth.StringWidth(labels[i])
		if x+w > avail {
			break
		}
		out = append(out, taskbarButton{entry: e, label: labels[i], x0: x, x1: x + w})
		x += w + 1
	}
	if width >= logoutW {
		out = append(out, taskbarButton{logout: true, label: logoutLabel, x0: width - logoutW, x1: width})
	}
	return out
}

func taskbarButtonAt(buttons []taskbarButton, x int) (taskbarButton, bool) {
	for _, b := range buttons {
		if x >= b.x0 && x < b.x1 {
			return b, true
		}
	}
	return taskbarButton{}, false
}
