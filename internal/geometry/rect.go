// Package geometry computes non-overlapping rectangular regions for tiles.
package geometry

// Rect is an axis-aligned rectangle. Units are whatever the caller renders
// in: terminal cells or CSS pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns Width*Height, or 0 for an empty rect.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (px, py) lies inside r.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.Right() && py >= r.Y && py < r.Bottom()
}

// Intersect returns the overlapping region of r and o, or a zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Overlaps reports whether r and o share any area. Empty rects never overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Inset shrinks r by n on every side, clamping at zero size.
func (r Rect) Inset(n int) Rect {
	if n <= 0 {
		return r
	}
	out := Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

func (r Rect) transpose() Rect {
	return Rect{X: r.Y, Y: r.X, Width: r.Height, Height: r.Width}
}
