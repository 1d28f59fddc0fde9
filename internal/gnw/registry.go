package gnw

import (
	"fmt"

	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

// Add creates a window of the given size, fills it with color and places it
// at (x, y), clamped to the screen. It returns the new id, which is the
// smallest id not in use. Nothing is drawn until Show or Draw.
//
// Windows without FlagMoveOnTop are inserted below any FlagMoveOnTop
// windows.
func (m *Manager) Add(x, y, width, height, color int, flags Flag) (int, error) {
	if !m.active() {
		return InvalidID, ErrNotInitialized
	}
	if len(m.windows) == MaxWindows {
		return InvalidID, ErrRegistryFull
	}
	if width > m.bounds.Width() || height > m.bounds.Height() {
		return InvalidID, fmt.Errorf("%w: %dx%d on %dx%d screen", ErrTooLarge, width, height, m.bounds.Width(), m.bounds.Height())
	}

	buf, err := grbuf.New(width, height)
	if err != nil {
		m.logger.Warn("window buffer allocation failed", "width", width, "height", height, "error", err)
		return InvalidID, fmt.Errorf("%w: %w", ErrNoMemory, err)
	}

	id := 1
	for m.index[id] != -1 {
		id++
	}

	if flags&FlagUseDefaults != 0 {
		flags |= m.defaultFlags
	}

	w := &Window{
		id:      id,
		width:   width,
		height:  height,
		flags:   flags,
		buf:     buf,
		tx:      m.rng.Int() & 0xFFFE,
		ty:      m.rng.Int() & 0xFFFE,
		blitter: grbuf.Transparent{},
	}
	if idx, tex := m.resolve(color); tex {
		w.color = ColorTexture
	} else {
		w.color = int(idx)
	}

	m.index[id] = len(m.windows)
	m.windows = append(m.windows, w)

	m.Fill(id, 0, 0, width, height, w.color)

	w.flags |= FlagHidden
	m.Move(id, x, y)
	w.flags = flags

	if flags&FlagMoveOnTop == 0 {
		top := len(m.windows) - 2
		pos := top
		for pos > 0 && m.windows[pos].flags&FlagMoveOnTop != 0 {
			pos--
		}
		if pos != top {
			copy(m.windows[pos+2:], m.windows[pos+1:len(m.windows)-1])
			m.windows[pos+1] = w
			m.reindex(pos + 1)
		}
	}

	m.logger.Debug("window added", "id", id, "rect", w.rect.String(), "flags", flags.String())
	return id, nil
}

// reindex refreshes the id index for windows from position z upwards.
func (m *Manager) reindex(z int) {
	for ; z < len(m.windows); z++ {
		m.index[m.windows[z].id] = z
	}
}

// Delete destroys a window and repaints the area it covered. The root
// window cannot be deleted.
func (m *Manager) Delete(id int) {
	w := m.Find(id)
	if w == nil || id == 0 {
		return
	}

	vacated := w.rect
	z := m.index[id]
	m.free(w)
	m.index[id] = -1

	copy(m.windows[z:], m.windows[z+1:])
	m.windows[len(m.windows)-1] = nil
	m.windows = m.windows[:len(m.windows)-1]
	m.reindex(z)

	m.logger.Debug("window deleted", "id", id, "rect", vacated.String())
	m.refreshAll(vacated, nil)
}

// Find returns the window with the given id, or nil.
func (m *Manager) Find(id int) *Window {
	if !m.active() || id < 0 || id >= MaxWindows {
		return nil
	}
	z := m.index[id]
	if z == -1 {
		return nil
	}
	return m.windows[z]
}

// Show clears FlagHidden and, unless the window has FlagDontMoveTop, raises
// it as far as the FlagMoveOnTop rule allows. The window's full rect is
// then redrawn, also when it was already visible.
func (m *Manager) Show(id int) {
	w := m.Find(id)
	if w == nil || id == 0 {
		return
	}

	z := m.index[id]
	top := len(m.windows) - 1

	w.flags &^= FlagHidden

	if z < top && w.flags&FlagDontMoveTop == 0 {
		for z < top && (w.flags&FlagMoveOnTop != 0 || m.windows[z+1].flags&FlagMoveOnTop == 0) {
			m.windows[z] = m.windows[z+1]
			m.index[m.windows[z].id] = z
			z++
		}
		m.windows[z] = w
		m.index[id] = z
	}
	m.refresh(w, w.rect, repaint{})
}

// Hide sets FlagHidden and repaints what the window covered.
func (m *Manager) Hide(id int) {
	w := m.Find(id)
	if w == nil || id == 0 || w.flags&FlagHidden != 0 {
		return
	}
	w.flags |= FlagHidden
	m.refreshAll(w.rect, nil)
}

// Move places the window's top-left at (x, y), clamped so the window stays
// on screen. Visible windows are redrawn at the new position and the
// vacated area is repainted.
func (m *Manager) Move(id, x, y int) {
	w := m.Find(id)
	if w == nil || id == 0 {
		return
	}

	x = max(x, 0)
	y = max(y, 0)
	if w.flags&FlagManaged != 0 {
		x += 2
	}
	if x+w.width-1 > m.bounds.Right {
		x = m.bounds.Right - w.width + 1
	}
	if y+w.height-1 > m.bounds.Bottom {
		y = m.bounds.Bottom - w.height + 1
	}
	if w.flags&FlagManaged != 0 {
		x &^= 3
	}

	m.place(w, x, y)
}

// place sets the window origin and repaints both rectangles.
func (m *Manager) place(w *Window, x, y int) {
	old := w.rect
	w.rect = rect.FromSize(x, y, w.width, w.height)
	if w.flags&FlagHidden != 0 {
		return
	}
	m.logger.Debug("window moved", "id", w.id, "from", old.String(), "to", w.rect.String())
	m.refresh(w, w.rect, repaint{})
	m.refreshAll(old, nil)
}

// Drag shows the window and drops it at (x, y), clamped to the screen but
// without the managed-window adjustments. A managed window left off its
// four pixel grid is then snapped with Move.
func (m *Manager) Drag(id, x, y int) {
	w := m.Find(id)
	if w == nil || id == 0 {
		return
	}
	m.Show(id)

	x = min(max(x, 0), m.bounds.Right-w.width+1)
	y = min(max(y, 0), m.bounds.Bottom-w.height+1)
	m.place(w, x, y)

	if w.flags&FlagManaged != 0 && w.rect.Left&3 != 0 {
		m.Move(id, w.rect.Left, w.rect.Top)
	}
}

// Buffer returns the window's pixels, or nil.
func (m *Manager) Buffer(id int) *grbuf.Buffer {
	if w := m.Find(id); w != nil {
		return w.buf
	}
	return nil
}

// Width returns the window's width, or -1.
func (m *Manager) Width(id int) int {
	if w := m.Find(id); w != nil {
		return w.width
	}
	return -1
}

// Height returns the window's height, or -1.
func (m *Manager) Height(id int) int {
	if w := m.Find(id); w != nil {
		return w.height
	}
	return -1
}

func (m *Manager) Rect(id int) (rect.Rect, bool) {
	if w := m.Find(id); w != nil {
		return w.rect, true
	}
	return rect.Rect{}, false
}

// TopWindowAt returns the id of the highest window containing (x, y),
// hidden windows included, or InvalidID.
func (m *Manager) TopWindowAt(x, y int) int {
	if !m.active() {
		return InvalidID
	}
	for z := len(m.windows) - 1; z >= 0; z-- {
		if m.windows[z].rect.Contains(x, y) {
			return m.windows[z].id
		}
	}
	return InvalidID
}

// IDs lists window ids in z-order, bottom first.
func (m *Manager) IDs() []int {
	if !m.active() {
		return nil
	}
	ids := make([]int, len(m.windows))
	for z, w := range m.windows {
		ids[z] = w.id
	}
	return ids
}

// Count is the number of windows, root included.
func (m *Manager) Count() int {
	if !m.active() {
		return 0
	}
	return len(m.windows)
}

// SetBlitter installs the blitter a FlagTransparent window is composited
// with while buffering. nil restores the default, which treats index 0 as
// clear. Windows without FlagTransparent are left alone.
func (m *Manager) SetBlitter(id int, b grbuf.Blitter) {
	w := m.Find(id)
	if w == nil || w.flags&FlagTransparent == 0 {
		return
	}
	if b == nil {
		b = grbuf.Transparent{}
	}
	w.blitter = b
}
