package textnode

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// Width and Height may be zero (a null rectangle) but are never expected to
// be negative.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// IsNull reports whether both width and height are zero.
func (r Rect) IsNull() bool {
	return fuzzyIsNull(r.Width) && fuzzyIsNull(r.Height)
}

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// SetLeft moves the left edge, keeping the right edge fixed.
func (r Rect) SetLeft(x float64) Rect {
	right := r.Right()
	r.X = x
	r.Width = right - x
	return r
}

// SetRight moves the right edge, keeping the left edge fixed.
func (r Rect) SetRight(x float64) Rect {
	r.Width = x - r.X
	return r
}

// Union returns the smallest rectangle containing both rectangles.
// A null rectangle is the identity.
func (r Rect) Union(o Rect) Rect {
	if r.IsNull() {
		return o
	}
	if o.IsNull() {
		return r
	}
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersect returns the overlap of both rectangles, or a zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Adjusted returns the rectangle with each edge moved by the given deltas.
func (r Rect) Adjusted(dx0, dy0, dx1, dy1 float64) Rect {
	return Rect{X: r.X + dx0, Y: r.Y + dy0, Width: r.Width - dx0 + dx1, Height: r.Height - dy0 + dy1}
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}
