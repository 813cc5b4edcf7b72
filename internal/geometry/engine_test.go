package geometry

import "testing"

func TestApply_MoveTranslatesOnly(t *testing.T) {
	start := Rect{X: 120, Y: 140, Width: 800, Height: 600}

	got := Apply(start, -30, 45, Move)
	want := Rect{X: 90, Y: 185, Width: 800, Height: 600}
	if got != want {
		t.Fatalf("Apply(move) = %+v, want %+v", got, want)
	}
}

func TestApply_SingleEdges(t *testing.T) {
	start := Rect{X: 120, Y: 140, Width: 800, Height: 600}

	tests := []struct {
		name   string
		dir    Direction
		dx, dy int
		want   Rect
	}{
		{"east grows", East, 50, 99, Rect{X: 120, Y: 140, Width: 850, Height: 600}},
		{"east floor", East, -1000, 0, Rect{X: 120, Y: 140, Width: 400, Height: 600}},
		{"south grows", South, 99, 25, Rect{X: 120, Y: 140, Width: 800, Height: 625}},
		{"south floor", South, 0, -1000, Rect{X: 120, Y: 140, Width: 800, Height: 300}},
		{"west grows left", West, -50, 0, Rect{X: 70, Y: 140, Width: 850, Height: 600}},
		{"west shrinks", West, 100, 0, Rect{X: 220, Y: 140, Width: 700, Height: 600}},
		{"north grows up", North, 0, -40, Rect{X: 120, Y: 100, Width: 800, Height: 640}},
		{"north shrinks", North, 0, 100, Rect{X: 120, Y: 240, Width: 800, Height: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(start, tt.dx, tt.dy, tt.dir)
			if got != tt.want {
				t.Errorf("Apply(%s, %d, %d) = %+v, want %+v", tt.dir, tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestApply_WestFloorPinsRightEdge(t *testing.T) {
	start := Rect{X: 120, Y: 140, Width: 800, Height: 600}

	// Dragging the left edge 500px to the right asks for width 300; the
	// floor holds it at 400 and x moves by exactly 800-400.
	got := Apply(start, 500, 0, West)
	if got.Width != MinWidth {
		t.Fatalf("width = %d, want %d", got.Width, MinWidth)
	}
	if got.X != 120+(800-MinWidth) {
		t.Fatalf("x = %d, want %d", got.X, 120+(800-MinWidth))
	}
	if got.Right() != start.Right() {
		t.Fatalf("right edge moved: %d -> %d", start.Right(), got.Right())
	}

	further := Apply(start, 900, 0, West)
	if further != got {
		t.Fatalf("further movement past the floor changed the frame: %+v vs %+v", further, got)
	}
}

func TestApply_NorthFloorPinsBottomEdge(t *testing.T) {
	start := Rect{X: 10, Y: 50, Width: 800, Height: 600}

	got := Apply(start, 0, 10000, North)
	if got.Height != MinHeight || got.Y != 50+(600-MinHeight) {
		t.Fatalf("got %+v, want height %d at y %d", got, MinHeight, 50+(600-MinHeight))
	}
	if got.Bottom() != start.Bottom() {
		t.Fatalf("bottom edge moved: %d -> %d", start.Bottom(), got.Bottom())
	}
}

func TestApply_DiagonalComposesAxes(t *testing.T) {
	start := Rect{X: 100, Y: 100, Width: 800, Height: 600}

	for _, dir := range []Direction{NorthEast, NorthWest, SouthEast, SouthWest} {
		got := Apply(start, 37, -21, dir)

		want := start
		if dir.Has(East) {
			want.Width = Apply(start, 37, -21, East).Width
		} else {
			w := Apply(start, 37, -21, West)
			want.X, want.Width = w.X, w.Width
		}
		if dir.Has(South) {
			want.Height = Apply(start, 37, -21, South).Height
		} else {
			n := Apply(start, 37, -21, North)
			want.Y, want.Height = n.Y, n.Height
		}

		if got != want {
			t.Errorf("Apply(%s) = %+v, want %+v", dir, got, want)
		}
	}
}

func TestApply_FloorHoldsForAnyDelta(t *testing.T) {
	start := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	deltas := []int{-100000, -5000, -801, -1, 0, 1, 399, 400, 401, 801, 5000, 100000}

	for _, dir := range ResizeDirections {
		for _, dx := range deltas {
			for _, dy := range deltas {
				got := Apply(start, dx, dy, dir)
				if got.Width < MinWidth || got.Height < MinHeight {
					t.Fatalf("Apply(%s, %d, %d) = %+v violates the size floor", dir, dx, dy, got)
				}
			}
		}
	}
}

func TestDirection_Has(t *testing.T) {
	if !SouthEast.Has(South) || !SouthEast.Has(East) {
		t.Fatalf("se should contain s and e")
	}
	if SouthEast.Has(North) || SouthEast.Has(West) {
		t.Fatalf("se should not contain n or w")
	}
	if Move.Has(East) {
		t.Fatalf("move should not touch any edge")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"bottom-right", SouthEast, true},
		{"top-left", NorthWest, true},
		{"LEFT", West, true},
		{" ne ", NorthEast, true},
		{"move", Move, true},
		{"sideways", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDirection(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClampSize(t *testing.T) {
	if got := ClampSize(Size{Width: 10, Height: 1000}); got != (Size{Width: MinWidth, Height: 1000}) {
		t.Fatalf("ClampSize = %+v", got)
	}
}
