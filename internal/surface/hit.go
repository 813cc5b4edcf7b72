package surface

import "github.com/1broseidon/deskshell/internal/geometry"

// HandleKind identifies which affordance of a window a point falls on.
type HandleKind int

const (
	HandleNone HandleKind = iota
	HandleBody
	HandleTitleBar
	HandleMinimize
	HandleMaximize
	HandleClose
	HandleResize
)

// String returns the string representation of the handle kind
func (k HandleKind) String() string {
	switch k {
	case HandleNone:
		return "none"
	case HandleBody:
		return "body"
	case HandleTitleBar:
		return "titlebar"
	case HandleMinimize:
		return "minimize"
	case HandleMaximize:
		return "maximize"
	case HandleClose:
		return "close"
	case HandleResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Handle is the result of a hit test. Dir is set only for HandleResize.
type Handle struct {
	Kind HandleKind
	Dir  geometry.Direction
}

// Metrics sizes the hot zones of a window, in the same unit as the frame
// and point passed to HitTest.
type Metrics struct {
	Edge      int // thickness of the four edge resize zones
	Corner    int // side of the four square corner resize zones
	TitleBar  int // height of the title bar, measured from the frame top
	Button    int // width of each title bar control
	ButtonGap int // space between controls
	Inset     int // space between the last control and the right edge
}

// DefaultMetrics returns pixel metrics for a pointer-driven desktop.
func DefaultMetrics() Metrics {
	return Metrics{Edge: 8, Corner: 16, TitleBar: 48, Button: 24, ButtonGap: 8, Inset: 16}
}

// HitTest classifies p against a window frame. Resize zones are inactive
// while the window is maximized.
func HitTest(frame geometry.Rect, p geometry.Point, m Metrics, maximized bool) Handle {
	if !frame.Contains(p) {
		return Handle{Kind: HandleNone}
	}

	if !maximized {
		if dir, ok := resizeZone(frame, p, m); ok {
			return Handle{Kind: HandleResize, Dir: dir}
		}
	}

	if p.Y < frame.Y+m.TitleBar {
		if kind, ok := controlAt(frame, p, m); ok {
			return Handle{Kind: kind}
		}
		return Handle{Kind: HandleTitleBar}
	}
	return Handle{Kind: HandleBody}
}

// ControlRects returns the minimize, maximize and close button rects, in
// that order, left to right.
func ControlRects(frame geometry.Rect, m Metrics) [3]geometry.Rect {
	var out [3]geometry.Rect
	x := frame.Right() - m.Inset
	top := frame.Y + m.Edge
	height := m.TitleBar - m.Edge
	for i := 2; i >= 0; i-- {
		x -= m.Button
		out[i] = geometry.Rect{X: x, Y: top, Width: m.Button, Height: height}
		x -= m.ButtonGap
	}
	return out
}

func controlAt(frame geometry.Rect, p geometry.Point, m Metrics) (HandleKind, bool) {
	kinds := [3]HandleKind{HandleMinimize, HandleMaximize, HandleClose}
	for i, r := range ControlRects(frame, m) {
		if r.Contains(p) {
			return kinds[i], true
		}
	}
	return HandleNone, false
}

func resizeZone(frame geometry.Rect, p geometry.Point, m Metrics) (geometry.Direction, bool) {
	nearLeft := p.X < frame.X+m.Corner
	nearRight := p.X >= frame.Right()-m.Corner
	nearTop := p.Y < frame.Y+m.Corner
	nearBottom := p.Y >= frame.Bottom()-m.Corner

	switch {
	case nearTop && nearLeft:
		return geometry.NorthWest, true
	case nearTop && nearRight:
		return geometry.NorthEast, true
	case nearBottom && nearLeft:
		return geometry.SouthWest, true
	case nearBottom && nearRight:
		return geometry.SouthEast, true
	}

	switch {
	case p.Y < frame.Y+m.Edge:
		return geometry.North, true
	case p.Y >= frame.Bottom()-m.Edge:
		return geometry.South, true
	case p.X < frame.X+m.Edge:
		return geometry.West, true
	case p.X >= frame.Right()-m.Edge:
		return geometry.East, true
	}
	return "", false
}
