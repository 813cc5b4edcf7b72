// Package compositor turns registry state into the ordered list of window
// placements to draw.
package compositor

import (
	"slices"

	"github.com/1broseidon/deskshell/internal/content"
	"github.com/1broseidon/deskshell/internal/geometry"
	"github.com/1broseidon/deskshell/internal/registry"
)

// DefaultMobileWidth is the viewport width below which every window fills
// the viewport.
const DefaultMobileWidth = 768

// Placement is one window ready to draw.
type Placement struct {
	ID         string
	Title      string
	Content    content.Ref
	Props      content.Props
	Frame      geometry.Rect
	StackOrder int
	Maximized  bool
	// Filled is true when Frame is the viewport rather than stored geometry.
	Filled bool
}

// Compositor orders and sizes windows for one viewport.
type Compositor struct {
	MobileWidth int
}

// New returns a compositor with the given small-form-factor threshold.
// A non-positive width selects DefaultMobileWidth.
func New(mobileWidth int) Compositor {
	if mobileWidth <= 0 {
		mobileWidth = DefaultMobileWidth
	}
	return Compositor{MobileWidth: mobileWidth}
}

// IsMobile reports whether the viewport is below the small-form-factor width.
func (c Compositor) IsMobile(viewport geometry.Rect) bool {
	return viewport.Width < c.MobileWidth
}

// Compose returns every visible window in paint order (lowest stack order
// first). Minimized windows are skipped. Maximized windows, and all windows
// on a small viewport, take the viewport bounds; stored geometry is left as is.
func (c Compositor) Compose(windows []registry.Window, viewport geometry.Rect) []Placement {
	mobile := c.IsMobile(viewport)

	out := make([]Placement, 0, len(windows))
	for _, w := range windows {
		if w.Minimized {
			continue
		}
		p := Placement{
			ID:         w.ID,
			Title:      w.Title,
			Content:    w.Content,
			Props:      w.Props,
			Frame:      w.Frame(),
			StackOrder: w.StackOrder,
			Maximized:  w.Maximized || mobile,
		}
		if p.Maximized {
			p.Frame = viewport
			p.Filled = true
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b Placement) int {
		return a.StackOrder - b.StackOrder
	})
	return out
}

// TopmostAt returns the placement that receives input at p: the last one
// in paint order whose frame contains it.
func TopmostAt(placements []Placement, p geometry.Point) (Placement, bool) {
	for i := len(placements) - 1; i >= 0; i-- {
		if placements[i].Frame.Contains(p) {
			return placements[i], true
		}
	}
	return Placement{}, false
}
