package geometry

// Apply computes the frame produced by a gesture that started at start and
// has since moved the pointer by (dx, dy).
//
// Each axis is clamped on its own. When the west or north floor is hit the
// opposite edge stays where it was at gesture start.
func Apply(start Rect, dx, dy int, dir Direction) Rect {
	if dir == Move {
		return Rect{X: start.X + dx, Y: start.Y + dy, Width: start.Width, Height: start.Height}
	}

	out := start

	if dir.Has(East) {
		out.Width = max(MinWidth, start.Width+dx)
	}
	if dir.Has(West) {
		out.Width = max(MinWidth, start.Width-dx)
		out.X = start.X + dx
		if out.Width == MinWidth {
			out.X = start.X + (start.Width - MinWidth)
		}
	}
	if dir.Has(South) {
		out.Height = max(MinHeight, start.Height+dy)
	}
	if dir.Has(North) {
		out.Height = max(MinHeight, start.Height-dy)
		out.Y = start.Y + dy
		if out.Height == MinHeight {
			out.Y = start.Y + (start.Height - MinHeight)
		}
	}

	return out
}
