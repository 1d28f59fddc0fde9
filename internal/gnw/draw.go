package gnw

import "github.com/1broseidon/gnw/internal/rect"

// The helpers below draw into a window's buffer only. Call Draw or DrawRect
// to put the result on screen. Colors accept ColorTexture and ThemeColor
// values.

// Fill paints a width×height block at (x, y) in window coordinates.
func (m *Manager) Fill(id, x, y, width, height, color int) {
	w := m.Find(id)
	if w == nil || w.buf == nil {
		return
	}
	r := rect.FromSize(x, y, width, height)
	c, tex := m.resolve(color)
	if tex {
		w.buf.Texture(r, m.texture, x+w.tx, y+w.ty)
		return
	}
	w.buf.Fill(r, c)
}

// Line draws from (x1, y1) to (x2, y2) inclusive.
func (m *Manager) Line(id, x1, y1, x2, y2, color int) {
	w := m.Find(id)
	if w == nil || w.buf == nil {
		return
	}
	c, _ := m.resolve(color)
	w.buf.Line(x1, y1, x2, y2, c)
}

// Box outlines the rectangle with corners (left, top) and (right, bottom),
// in either order.
func (m *Manager) Box(id, left, top, right, bottom, color int) {
	w := m.Find(id)
	if w == nil || w.buf == nil {
		return
	}
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	c, _ := m.resolve(color)
	w.buf.Box(rect.Rect{Left: left, Top: top, Right: right, Bottom: bottom}, c)
}

// ShadedBox outlines r with light top and left edges and dark bottom and
// right edges.
func (m *Manager) ShadedBox(id int, r rect.Rect, light, dark int) {
	w := m.Find(id)
	if w == nil || w.buf == nil {
		return
	}
	lc, _ := m.resolve(light)
	dc, _ := m.resolve(dark)
	w.buf.ShadedBox(r, lc, dc)
}

// Border brightens a five pixel frame around the window edge and draws a
// double bevel over it in theme colors.
func (m *Manager) Border(id int) {
	w := m.Find(id)
	if w == nil || w.buf == nil {
		return
	}
	b := w.buf
	width, height := w.width, w.height

	b.Lighten(rect.FromSize(5, 0, width-10, 5), m.lighten)
	b.Lighten(rect.FromSize(0, 0, 5, height), m.lighten)
	b.Lighten(rect.FromSize(width-5, 0, 5, height), m.lighten)
	b.Lighten(rect.FromSize(5, height-5, width-10, 5), m.lighten)

	b.Box(b.Bounds(), 0)
	b.ShadedBox(rect.Rect{Left: 1, Top: 1, Right: width - 2, Bottom: height - 2}, m.theme[1], m.theme[2])
	b.ShadedBox(rect.Rect{Left: 5, Top: 5, Right: width - 6, Bottom: height - 6}, m.theme[2], m.theme[1])
}
