// Package arrange computes whole-desktop window arrangements: grid tiling
// and directional focus navigation between window frames.
package arrange

import (
	"math"

	"github.com/1broseidon/deskshell/internal/geometry"
)

// Grid determines the grid dimensions for n windows: as many columns as
// the ceiling of the square root, and just enough rows.
func Grid(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return rows, cols
}

// Tile computes n frames in a grid over area, separated and surrounded by
// gap. Cells smaller than the window size floor are clamped up to it, so a
// crowded grid overlaps rather than shrinking windows below the minimum.
func Tile(n int, area geometry.Rect, gap int) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	rows, cols := Grid(n)

	cellWidth := (area.Width - (cols+1)*gap) / cols
	cellHeight := (area.Height - (rows+1)*gap) / rows
	size := geometry.ClampSize(geometry.Size{Width: cellWidth, Height: cellHeight})

	out := make([]geometry.Rect, n)
	for i := range out {
		row, col := i/cols, i%cols
		out[i] = geometry.Rect{
			X:      area.X + gap + col*(cellWidth+gap),
			Y:      area.Y + gap + row*(cellHeight+gap),
			Width:  size.Width,
			Height: size.Height,
		}
	}
	return out
}

// Neighbor returns the index of the frame nearest to frames[current] in
// direction dir (North, South, East or West), comparing frame centres by
// Manhattan distance. With nothing in that direction it wraps to the frame
// furthest the other way, preferring the same row or column. ok is false
// when there is no other frame.
func Neighbor(frames []geometry.Rect, current int, dir geometry.Direction) (int, bool) {
	if current < 0 || current >= len(frames) || len(frames) < 2 {
		return current, false
	}
	cx, cy := center(frames[current])

	best, bestDist := -1, 0
	for i, f := range frames {
		if i == current {
			continue
		}
		x, y := center(f)
		var ahead bool
		switch dir {
		case geometry.North:
			ahead = y < cy
		case geometry.South:
			ahead = y > cy
		case geometry.West:
			ahead = x < cx
		case geometry.East:
			ahead = x > cx
		}
		if !ahead {
			continue
		}
		dist := abs(x-cx) + abs(y-cy)
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best >= 0 {
		return best, true
	}

	// Wrap: the frame furthest in the opposite direction, nearest on the
	// cross axis.
	bestScore := 0
	for i, f := range frames {
		if i == current {
			continue
		}
		x, y := center(f)
		var score int
		switch dir {
		case geometry.North:
			score = y*10000 - abs(x-cx)
		case geometry.South:
			score = -y*10000 - abs(x-cx)
		case geometry.West:
			score = x*10000 - abs(y-cy)
		case geometry.East:
			score = -x*10000 - abs(y-cy)
		default:
			return current, false
		}
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func center(r geometry.Rect) (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
