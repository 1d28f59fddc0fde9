package scene

import (
	"strings"
	"testing"

	"github.com/1broseidon/gnw/internal/button"
	"github.com/1broseidon/gnw/internal/gnw"
)

const board = `
windows:
  - {name: a, x: 0, y: 0, width: 20, height: 20, color: 5, show: true}
  - {name: b, x: 40, y: 0, width: 20, height: 20, color: 6, show: true}
  - name: c
    x: 80
    y: 40
    width: 30
    height: 30
    color: 7
    show: true
    buttons:
      - {name: go, x: 5, y: 5, width: 10, height: 10, normal: 8, pressed: 9}
steps:
  - hide: b
  - move: {window: a, x: 0, y: 50}
`

func startBoard(t *testing.T) (*Session, fixture) {
	t.Helper()
	f := newFixture(t)
	s, err := Start(mustParse(t, board), f.m, f.buttons)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, f
}

func TestSessionSelectsTopWindow(t *testing.T) {
	s, _ := startBoard(t)
	if _, name := s.Selected(); name != "c" {
		t.Fatalf("selected %q, want c", name)
	}
	s.Next()
	if _, name := s.Selected(); name != "a" {
		t.Fatalf("after Next selected %q, want a", name)
	}
	s.Prev()
	s.Prev()
	if _, name := s.Selected(); name != "b" {
		t.Fatalf("after Prev selected %q, want b", name)
	}
}

func TestSessionMoveToggleRaise(t *testing.T) {
	s, f := startBoard(t)
	s.Next() // a

	s.MoveBy(5, 7)
	if r, _ := f.m.Rect(1); r.Left != 5 || r.Top != 7 {
		t.Fatalf("rect after MoveBy = %v", r)
	}
	s.ToggleHidden()
	if !f.m.Find(1).Hidden() {
		t.Fatalf("window not hidden")
	}
	s.ToggleHidden()
	if f.m.Find(1).Hidden() {
		t.Fatalf("window not shown again")
	}
	s.Raise()
	if ids := f.m.IDs(); ids[len(ids)-1] != 1 {
		t.Fatalf("z-order after Raise = %v", ids)
	}
}

func TestSessionDelete(t *testing.T) {
	s, f := startBoard(t)
	s.Delete() // c
	if f.m.Count() != 3 {
		t.Fatalf("count = %d", f.m.Count())
	}
	if _, name := s.Selected(); name != "b" {
		t.Fatalf("selected %q after delete, want b", name)
	}
	s.Delete()
	s.Delete()
	if id, _ := s.Selected(); id != gnw.InvalidID {
		t.Fatalf("selection survived deleting everything")
	}
	s.Delete()
	if !strings.HasPrefix(s.Status(), "no selection") {
		t.Fatalf("status = %q", s.Status())
	}
}

func TestSessionSteps(t *testing.T) {
	s, f := startBoard(t)
	for i := 0; i < 2; i++ {
		ok, err := s.Step()
		if !ok || err != nil {
			t.Fatalf("step %d: %v %v", i, ok, err)
		}
	}
	if ok, _ := s.Step(); ok {
		t.Fatalf("script should be finished")
	}
	if !f.m.Find(2).Hidden() {
		t.Fatalf("b not hidden")
	}
	if r, _ := f.m.Rect(1); r.Top != 50 {
		t.Fatalf("a not moved: %v", r)
	}
	if !strings.Contains(s.Status(), "step 2/2") {
		t.Fatalf("status = %q", s.Status())
	}
}

func TestSessionPointer(t *testing.T) {
	s, f := startBoard(t)

	s.Press(90, 50)
	bid := f.buttons.Buttons(3)[0]
	if f.buttons.Get(bid).State() != button.StatePressed {
		t.Fatalf("button not pressed")
	}
	if f.screen.Framebuffer().At(90, 50) != 9 {
		t.Fatalf("pressed image not on screen")
	}
	s.Release(90, 50)
	if f.buttons.Get(bid).State() != button.StateNormal {
		t.Fatalf("button not released")
	}

	s.Press(45, 5)
	if _, name := s.Selected(); name != "b" {
		t.Fatalf("press did not select b, got %q", name)
	}
	s.Motion(55, 25)
	s.Release(55, 25)
	if r, _ := f.m.Rect(2); r.Left != 50 || r.Top != 20 {
		t.Fatalf("drag ended at %v, want 50,20", r)
	}

	s.Press(110, 5)
	s.Motion(0, 0)
	if r, _ := f.m.Rect(0); r.Left != 0 || r.Top != 0 {
		t.Fatalf("root moved")
	}
}

func TestSessionPressSkipsHiddenWindows(t *testing.T) {
	f := newFixture(t)
	s, err := Start(mustParse(t, `
windows:
  - {name: under, x: 0, y: 0, width: 30, height: 30, color: 5, show: true}
  - {name: cover, x: 0, y: 0, width: 30, height: 30, color: 6, flags: [hidden]}
`), f.m, f.buttons)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, name := s.Selected(); name != "cover" {
		t.Fatalf("selected %q, want cover", name)
	}

	s.Press(10, 10)
	if _, name := s.Selected(); name != "under" {
		t.Fatalf("press selected %q, want the visible window under", name)
	}
	s.Motion(14, 10)
	s.Release(14, 10)
	if r, _ := f.m.Rect(1); r.Left != 4 {
		t.Fatalf("visible window not dragged: %v", r)
	}
	if !f.m.Find(2).Hidden() {
		t.Fatalf("hidden window was shown")
	}
}
