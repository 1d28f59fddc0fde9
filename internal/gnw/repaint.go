package gnw

import (
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

// repaint carries the state of one pass through the engine. batch is set
// while refreshAll walks every window; the screen flush and cursor re-show
// are then left to refreshAll. A non-nil dst receives pixels instead of the
// screen, with its top-left at the dirty rectangle's top-left.
type repaint struct {
	batch bool
	dst   *grbuf.Buffer
}

// Refresh repaints the part of dirty (screen coordinates) covered by w and
// not by anything above it. With a non-nil dst the pixels go there instead
// of to the screen.
func (m *Manager) Refresh(w *Window, dirty rect.Rect, dst *grbuf.Buffer) {
	if !m.active() || w == nil || m.Find(w.id) != w {
		return
	}
	m.refresh(w, dirty, repaint{dst: dst})
}

// RefreshAll repaints dirty through every window, bottom to top.
func (m *Manager) RefreshAll(dirty rect.Rect) {
	if !m.active() {
		return
	}
	m.refreshAll(dirty, nil)
}

// ComposeUnder renders every window under r into dst without touching the
// screen. dst's top-left corresponds to r's top-left.
func (m *Manager) ComposeUnder(r rect.Rect, dst *grbuf.Buffer) {
	if !m.active() || dst == nil {
		return
	}
	m.refreshAll(r, dst)
}

// Draw repaints the whole window.
func (m *Manager) Draw(id int) {
	w := m.Find(id)
	if w == nil {
		return
	}
	m.refresh(w, w.rect, repaint{})
}

// DrawRect repaints r, given in window coordinates.
func (m *Manager) DrawRect(id int, r rect.Rect) {
	w := m.Find(id)
	if w == nil {
		return
	}
	m.refresh(w, r.Offset(w.rect.Left, w.rect.Top), repaint{})
}

func (m *Manager) refreshAll(dirty rect.Rect, dst *grbuf.Buffer) {
	rp := repaint{batch: true, dst: dst}
	for _, w := range m.windows {
		m.refresh(w, dirty, rp)
	}

	if dst != nil {
		return
	}
	if m.buffering {
		m.flush(dirty)
	}
	if m.cursorShown() && m.cursor.Intersects(dirty) {
		m.cursor.Show()
	}
}

func (m *Manager) refresh(w *Window, dirty rect.Rect, rp repaint) {
	if w.flags&FlagHidden != 0 {
		return
	}

	area := dirty.Intersect(w.rect)
	if area.Empty() {
		return
	}

	// A transparent window drawn on its own needs fresh pixels beneath it,
	// so the whole stack under it is recomposed.
	if w.flags&FlagTransparent != 0 && m.buffering && !rp.batch && rp.dst == nil {
		m.refreshAll(area, nil)
		return
	}

	head := m.pool.New(area)
	if head == nil {
		m.logger.Warn("rect pool exhausted", "window", w.id, "rect", area.String())
		return
	}
	if !m.clip(w, &head, dirty, rp) {
		m.pool.PutList(head)
		m.logger.Warn("rect pool exhausted while clipping", "window", w.id, "rect", area.String())
		return
	}

	for n := head; n != nil; n = n.Next {
		m.blit(w, n.Rect, dirty, rp)
	}

	if m.buffering && rp.dst == nil && !rp.batch {
		for n := head; n != nil; n = n.Next {
			m.flush(n.Rect)
		}
	}
	m.pool.PutList(head)

	if !rp.batch && rp.dst == nil && m.cursorShown() && m.cursor.Intersects(dirty) {
		m.cursor.Show()
	}
}

// clip removes from the list everything covered by visible windows above w
// and by the cursor. It reports false if the rect pool ran dry.
func (m *Manager) clip(w *Window, head **rect.Node, dirty rect.Rect, rp repaint) bool {
	for z := m.index[w.id] + 1; z < len(m.windows) && *head != nil; z++ {
		above := m.windows[z]
		if above.flags&FlagHidden != 0 {
			continue
		}
		if !m.buffering || above.flags&FlagTransparent == 0 {
			if !m.pool.ClipList(head, above.rect) {
				return false
			}
			continue
		}
		// In a batch the transparent window is composited over this one
		// later in the same pass.
		if rp.batch {
			continue
		}
		m.refresh(above, dirty, repaint{dst: rp.dst})
		if !m.pool.ClipList(head, above.rect) {
			return false
		}
	}

	if (rp.dst == nil || rp.dst == m.back) && m.cursorShown() {
		if !m.pool.ClipList(head, m.cursor.Rect()) {
			return false
		}
	}
	return true
}

// blit copies one visible fragment f of w to its destination.
func (m *Manager) blit(w *Window, f, dirty rect.Rect, rp repaint) {
	if w.id == 0 {
		m.paintBackground(f, dirty, rp)
		return
	}

	if m.buttons != nil {
		m.buttons.RefreshButtons(w, f)
	}

	src := f.Offset(-w.rect.Left, -w.rect.Top)
	var b grbuf.Blitter = grbuf.Opaque{}
	if m.buffering && w.flags&FlagTransparent != 0 {
		b = w.blitter
	}

	switch {
	case rp.dst != nil:
		b.Blit(rp.dst, f.Left-dirty.Left, f.Top-dirty.Top, w.buf, src)
	case m.buffering:
		b.Blit(m.back, f.Left, f.Top, w.buf, src)
	default:
		m.screen.Blit(w.buf, src, f.Left, f.Top)
	}
}

func (m *Manager) paintBackground(f, dirty rect.Rect, rp repaint) {
	switch {
	case rp.dst != nil:
		rp.dst.Fill(f.Offset(-dirty.Left, -dirty.Top), m.background)
	case m.buffering:
		m.back.Fill(f, m.background)
	default:
		fill := m.scratch.Sub(rect.FromSize(0, 0, f.Width(), f.Height()))
		fill.Fill(fill.Bounds(), m.background)
		m.screen.Blit(fill, fill.Bounds(), f.Left, f.Top)
	}
}

// flush copies r from the back buffer to the screen.
func (m *Manager) flush(r rect.Rect) {
	r = r.Intersect(m.bounds)
	if r.Empty() {
		return
	}
	m.screen.Blit(m.back, r, r.Left, r.Top)
}
