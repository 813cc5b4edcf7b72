package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/deskshell/internal/geometry"
)

// cell is one terminal column. An empty s marks the right half of a wide
// rune whose head sits in the previous column.
type cell struct {
	s     string
	style styleID
}

// canvas is a fixed grid of styled cells, painted back to front.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int, fill styleID) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{s: " ", style: fill}
	}
	return c
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) at(x, y int) *cell {
	return &c.cells[y*c.w+x]
}

// put writes a single rune of the given display width at (x, y), clearing
// any wide rune it partially overwrites.
func (c *canvas) put(x, y int, r rune, width int, st styleID) {
	if !c.in(x, y) || (width == 2 && !c.in(x+1, y)) {
		return
	}
	c.clearWide(x, y)
	if width == 2 {
		c.clearWide(x+1, y)
	}
	*c.at(x, y) = cell{s: string(r), style: st}
	if width == 2 {
		*c.at(x+1, y) = cell{s: "", style: st}
	}
}

// clearWide blanks the other half of a wide rune touching (x, y).
func (c *canvas) clearWide(x, y int) {
	cur := c.at(x, y)
	if cur.s == "" && x > 0 {
		*c.at(x-1, y) = cell{s: " ", style: c.at(x-1, y).style}
	}
	if cur.s != "" && x+1 < c.w && c.at(x+1, y).s == "" {
		*c.at(x+1, y) = cell{s: " ", style: c.at(x+1, y).style}
	}
}

// text writes s starting at (x, y), clipped to the canvas and to limit
// cells (limit <= 0 means no limit). It returns the columns consumed.
func (c *canvas) text(x, y int, s string, st styleID, limit int) int {
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if limit > 0 && used+rw > limit {
			break
		}
		c.put(x+used, y, r, rw, st)
		used += rw
	}
	return used
}

// fill paints r with spaces in style st.
func (c *canvas) fill(r geometry.Rect, st styleID) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if c.in(x, y) {
				c.clearWide(x, y)
				*c.at(x, y) = cell{s: " ", style: st}
			}
		}
	}
}

// hline repeats r across [x0, x1) on row y.
func (c *canvas) hline(x0, x1, y int, r rune, st styleID) {
	for x := x0; x < x1; x++ {
		c.put(x, y, r, 1, st)
	}
}

// plain returns row y without styling.
func (c *canvas) plain(y int) string {
	var b strings.Builder
	for x := 0; x < c.w; x++ {
		b.WriteString(c.at(x, y).s)
	}
	return b.String()
}

// lines renders every row, grouping runs of equal style.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		var row strings.Builder
		cur := styleID(255)
		flush := func() {
			if run.Len() > 0 {
				row.WriteString(cellStyles[cur].Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < c.w; x++ {
			cl := c.at(x, y)
			if cl.s == "" {
				continue
			}
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteString(cl.s)
		}
		flush()
		out[y] = row.String()
	}
	return out
}
