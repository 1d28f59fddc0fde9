// Package rect implements inclusive integer rectangles and the rectangle-list
// algebra used to work out which parts of a window are visible.
package rect

import "fmt"

// Rect is an axis-aligned rectangle with inclusive bounds. A rectangle with
// Right < Left or Bottom < Top is empty.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// FromSize returns the rectangle with origin (x, y) and the given size.
func FromSize(x, y, width, height int) Rect {
	return Rect{Left: x, Top: y, Right: x + width - 1, Bottom: y + height - 1}
}

func (r Rect) Width() int {
	return r.Right - r.Left + 1
}

func (r Rect) Height() int {
	return r.Bottom - r.Top + 1
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Right < r.Left || r.Bottom < r.Top
}

// Area returns the pixel count of r, or 0 when r is empty.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return r.Right >= o.Left && r.Bottom >= o.Top && r.Left <= o.Right && r.Top <= o.Bottom
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Intersect returns the overlap of r and o. The result is empty when they do
// not intersect.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// MinBound returns the smallest rectangle containing both a and b.
func MinBound(a, b Rect) Rect {
	return Rect{
		Left:   min(a.Left, b.Left),
		Top:    min(a.Top, b.Top),
		Right:  max(a.Right, b.Right),
		Bottom: max(a.Bottom, b.Bottom),
	}
}

// InsideBound clips r to bound. When they do not overlap it returns r
// unchanged and false.
func InsideBound(r, bound Rect) (Rect, bool) {
	if !r.Intersects(bound) {
		return r, false
	}

	out := r
	if bound.Left > r.Left {
		out.Left = bound.Left
	}
	if bound.Right < r.Right {
		out.Right = bound.Right
	}
	if bound.Top > r.Top {
		out.Top = bound.Top
	}
	if bound.Bottom < r.Bottom {
		out.Bottom = bound.Bottom
	}
	return out, true
}
