package scene

import (
	"fmt"
	"slices"

	"github.com/1broseidon/gnw/internal/button"
	"github.com/1broseidon/gnw/internal/gnw"
)

// Session drives a loaded scene interactively: one window is selected and
// keys or pointer events act on it.
type Session struct {
	scene   *Scene
	m       *gnw.Manager
	buttons *button.List
	res     *Result

	selected int
	pressed  int
	grab     *grab
	step     int
}

type grab struct {
	id     int
	dx, dy int
}

// NewSession wraps an applied scene. Steps already run by Apply are not
// replayed by Step.
func NewSession(s *Scene, m *gnw.Manager, buttons *button.List, res *Result) *Session {
	ss := &Session{
		scene:    s,
		m:        m,
		buttons:  buttons,
		res:      res,
		selected: gnw.InvalidID,
		pressed:  gnw.InvalidID,
		step:     len(s.Steps),
	}
	ss.Next()
	return ss
}

// Start creates only the scene's windows; its steps are left for Step.
func Start(s *Scene, m *gnw.Manager, buttons *button.List) (*Session, error) {
	windows := &Scene{Background: s.Background, Theme: s.Theme, Windows: s.Windows}
	res, err := windows.Apply(m, buttons)
	if err != nil {
		return nil, err
	}
	ss := NewSession(s, m, buttons, res)
	ss.step = 0
	return ss, nil
}

func (s *Session) Manager() *gnw.Manager { return s.m }

// Selected returns the selected window id and its scene name.
func (s *Session) Selected() (int, string) {
	if s.m.Find(s.selected) == nil {
		return gnw.InvalidID, ""
	}
	return s.selected, s.res.Name(s.selected)
}

// Name returns the scene name of a live window, or "".
func (s *Session) Name(id int) string {
	if s.m.Find(id) == nil {
		return ""
	}
	return s.res.Name(id)
}

// selectable lists named windows still alive, bottom first.
func (s *Session) selectable() []int {
	var ids []int
	for _, id := range s.m.IDs() {
		if s.res.Name(id) != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Next selects the window above the current one, wrapping to the bottom.
func (s *Session) Next() { s.cycle(1) }

func (s *Session) Prev() { s.cycle(-1) }

func (s *Session) cycle(dir int) {
	ids := s.selectable()
	if len(ids) == 0 {
		s.selected = gnw.InvalidID
		return
	}
	i := slices.Index(ids, s.selected)
	if i < 0 {
		s.selected = ids[len(ids)-1]
		return
	}
	s.selected = ids[(i+dir+len(ids))%len(ids)]
}

// MoveBy shifts the selected window.
func (s *Session) MoveBy(dx, dy int) {
	r, ok := s.m.Rect(s.selected)
	if !ok {
		return
	}
	s.m.Move(s.selected, r.Left+dx, r.Top+dy)
}

// ToggleHidden shows a hidden selected window or hides a visible one.
func (s *Session) ToggleHidden() {
	w := s.m.Find(s.selected)
	if w == nil {
		return
	}
	if w.Hidden() {
		s.m.Show(w.ID())
	} else {
		s.m.Hide(w.ID())
	}
}

func (s *Session) Raise() {
	if s.m.Find(s.selected) != nil {
		s.m.Show(s.selected)
	}
}

// Delete removes the selected window and selects the next one down.
func (s *Session) Delete() {
	id, name := s.Selected()
	if id == gnw.InvalidID {
		return
	}
	ids := s.selectable()
	i := slices.Index(ids, id)
	s.m.Delete(id)
	delete(s.res.Windows, name)
	s.selected = gnw.InvalidID
	if i > 0 {
		s.selected = ids[i-1]
	} else {
		s.cycle(1)
	}
}

// Step runs the next scripted step. It reports false once the script is
// done.
func (s *Session) Step() (bool, error) {
	if s.step >= len(s.scene.Steps) {
		return false, nil
	}
	err := s.scene.RunStep(s.m, s.buttons, s.res, s.step)
	s.step++
	if s.m.Find(s.selected) == nil {
		s.selected = gnw.InvalidID
		s.cycle(1)
	}
	return true, err
}

// Press handles a pointer press at a screen position. A button under the
// pointer is pressed; otherwise the window is selected, raised and grabbed
// for dragging. The root cannot be grabbed.
func (s *Session) Press(x, y int) {
	w := s.visibleAt(x, y)
	if w == nil || w.ID() == 0 {
		return
	}
	id := w.ID()
	r := w.Rect()
	if s.buttons != nil {
		if bid := s.buttons.Hit(id, x-r.Left, y-r.Top); bid != gnw.InvalidID {
			s.pressed = bid
			s.buttons.Press(bid)
			return
		}
	}
	if s.res.Name(id) != "" {
		s.selected = id
	}
	s.m.Show(id)
	s.grab = &grab{id: id, dx: x - r.Left, dy: y - r.Top}
}

// visibleAt returns the topmost shown window containing (x, y).
func (s *Session) visibleAt(x, y int) *gnw.Window {
	ids := s.m.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		w := s.m.Find(ids[i])
		if w != nil && !w.Hidden() && w.Rect().Contains(x, y) {
			return w
		}
	}
	return nil
}

// Motion drags a grabbed window.
func (s *Session) Motion(x, y int) {
	if s.grab == nil {
		return
	}
	s.m.Drag(s.grab.id, x-s.grab.dx, y-s.grab.dy)
}

// Release ends a drag or releases a pressed button.
func (s *Session) Release(x, y int) {
	s.Motion(x, y)
	s.grab = nil
	if s.pressed != gnw.InvalidID {
		s.buttons.Release(s.pressed)
		s.pressed = gnw.InvalidID
	}
}

// Status is a one-line summary of the selection.
func (s *Session) Status() string {
	id, name := s.Selected()
	if id == gnw.InvalidID {
		return fmt.Sprintf("no selection, %d windows", s.m.Count())
	}
	w := s.m.Find(id)
	r := w.Rect()
	state := "shown"
	if w.Hidden() {
		state = "hidden"
	}
	return fmt.Sprintf("%s #%d at %d,%d %dx%d %s, step %d/%d",
		name, id, r.Left, r.Top, w.Width(), w.Height(), state, s.step, len(s.scene.Steps))
}
