package geometry

import "strings"

// Hard size floor for every window.
const (
	MinWidth  = 400
	MinHeight = 300
)

// Point is a viewport position, top-left anchored.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect represents a window position and size
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectOf builds a Rect from a position and a size.
func RectOf(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Dim returns the rect's size.
func (r Rect) Dim() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ClampSize raises s to the window size floor.
func ClampSize(s Size) Size {
	return Size{Width: max(MinWidth, s.Width), Height: max(MinHeight, s.Height)}
}

// Direction tags a gesture: one of the eight resize edges/corners or Move.
//
// Edge membership is substring containment, so "ne" resizes both the north
// and east edges.
type Direction string

const (
	Move      Direction = "move"
	North     Direction = "n"
	South     Direction = "s"
	East      Direction = "e"
	West      Direction = "w"
	NorthEast Direction = "ne"
	NorthWest Direction = "nw"
	SouthEast Direction = "se"
	SouthWest Direction = "sw"
)

// ResizeDirections lists every resize tag, edges first.
var ResizeDirections = []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// Has reports whether d touches the given edge ("n", "s", "e" or "w").
func (d Direction) Has(edge Direction) bool {
	if d == Move || d == "" {
		return false
	}
	return strings.Contains(string(d), string(edge))
}

// IsResize reports whether d is one of the eight resize tags.
func (d Direction) IsResize() bool {
	for _, r := range ResizeDirections {
		if d == r {
			return true
		}
	}
	return false
}

// ParseDirection accepts the short tags, "move", and the long forms used by
// pointer handles ("top", "bottom-right", ...). ok is false for anything else.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move", "drag":
		return Move, true
	case "n", "top", "north":
		return North, true
	case "s", "bottom", "south":
		return South, true
	case "e", "right", "east":
		return East, true
	case "w", "left", "west":
		return West, true
	case "ne", "top-right", "northeast":
		return NorthEast, true
	case "nw", "top-left", "northwest":
		return NorthWest, true
	case "se", "bottom-right", "southeast":
		return SouthEast, true
	case "sw", "bottom-left", "southwest":
		return SouthWest, true
	default:
		return "", false
	}
}
