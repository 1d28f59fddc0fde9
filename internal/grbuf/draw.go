package grbuf

import "github.com/1broseidon/gnw/internal/rect"

// Line draws a line from (x1, y1) to (x2, y2) inclusive. Pixels that fall
// outside the buffer are dropped.
func (b *Buffer) Line(x1, y1, x2, y2 int, c byte) {
	switch {
	case y1 == y2:
		b.Fill(rect.Rect{Left: min(x1, x2), Top: y1, Right: max(x1, x2), Bottom: y1}, c)
		return
	case x1 == x2:
		b.Fill(rect.Rect{Left: x1, Top: min(y1, y2), Right: x1, Bottom: max(y1, y2)}, c)
		return
	}

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		b.Set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// Box outlines r with c.
func (b *Buffer) Box(r rect.Rect, c byte) {
	b.ShadedBox(r, c, c)
}

// ShadedBox outlines r, drawing the top and left edges with light and the
// bottom and right edges with dark.
func (b *Buffer) ShadedBox(r rect.Rect, light, dark byte) {
	b.Line(r.Left, r.Top, r.Right, r.Top, light)
	b.Line(r.Left, r.Bottom, r.Right, r.Bottom, dark)
	b.Line(r.Left, r.Top, r.Left, r.Bottom, light)
	b.Line(r.Right, r.Top, r.Right, r.Bottom, dark)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
