package button

import (
	"errors"
	"testing"

	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/platform"
	"github.com/1broseidon/gnw/internal/rect"
)

func newTestSetup(t *testing.T) (*gnw.Manager, *List, *platform.MemoryScreen) {
	t.Helper()
	screen, err := platform.NewMemoryScreen(100, 100)
	if err != nil {
		t.Fatalf("NewMemoryScreen: %v", err)
	}
	list := NewList(nil)
	m, err := gnw.New(screen, gnw.WithButtons(list))
	if err != nil {
		t.Fatalf("gnw.New: %v", err)
	}
	list.Attach(m)
	t.Cleanup(m.Close)
	return m, list, screen
}

func solid(t *testing.T, w, h int, c byte) *grbuf.Buffer {
	t.Helper()
	b, err := grbuf.New(w, h)
	if err != nil {
		t.Fatalf("grbuf.New: %v", err)
	}
	b.Fill(b.Bounds(), c)
	return b
}

func TestAddDrawsNormalImage(t *testing.T) {
	m, list, screen := newTestSetup(t)
	win, _ := m.Add(10, 10, 40, 40, 1, 0)

	id, err := list.Add(win, rect.FromSize(5, 5, 10, 10), Images{Normal: solid(t, 10, 10, 7)}, 0)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := m.Buffer(win).At(5, 5); got != 7 {
		t.Fatalf("window buffer = %d, want 7", got)
	}
	if screen.Framebuffer().At(15, 15) != 0 {
		t.Fatalf("Add must not touch the screen")
	}
	m.Draw(win)
	if screen.Framebuffer().At(15, 15) != 7 || screen.Framebuffer().At(25, 25) != 1 {
		t.Fatalf("button not on screen after Draw")
	}
	if ids := list.Buttons(win); len(ids) != 1 || ids[0] != id {
		t.Fatalf("Buttons = %v", ids)
	}
}

func TestAddValidation(t *testing.T) {
	m, list, _ := newTestSetup(t)
	win, _ := m.Add(0, 0, 20, 20, 1, 0)

	if _, err := list.Add(99, rect.FromSize(0, 0, 4, 4), Images{}, 0); !errors.Is(err, ErrNoWindow) {
		t.Fatalf("unknown window: %v", err)
	}
	if _, err := list.Add(win, rect.FromSize(0, 0, 4, 4), Images{Pressed: solid(t, 4, 4, 1)}, 0); !errors.Is(err, ErrNoImage) {
		t.Fatalf("missing normal image: %v", err)
	}
	if _, err := list.Add(win, rect.FromSize(0, 0, 4, 4), Images{Normal: solid(t, 2, 2, 1)}, 0); !errors.Is(err, ErrImageSize) {
		t.Fatalf("small image: %v", err)
	}
	if _, err := NewList(nil).Add(win, rect.FromSize(0, 0, 4, 4), Images{}, 0); !errors.Is(err, ErrNoWindow) {
		t.Fatalf("unattached list: %v", err)
	}
}

func TestPressReleaseRedrawsAndNotifies(t *testing.T) {
	m, list, screen := newTestSetup(t)
	win, _ := m.Add(0, 0, 30, 30, 1, 0)
	m.Show(win)

	id, _ := list.Add(win, rect.FromSize(2, 2, 6, 6), Images{
		Normal:  solid(t, 6, 6, 10),
		Pressed: solid(t, 6, 6, 11),
	}, 0)
	var events []string
	b := list.Get(id)
	b.OnPress = func(int) { events = append(events, "press") }
	b.OnRelease = func(int) { events = append(events, "release") }

	list.Press(id)
	if screen.Framebuffer().At(4, 4) != 11 {
		t.Fatalf("pressed image not on screen")
	}
	list.Press(id)
	list.Release(id)
	if screen.Framebuffer().At(4, 4) != 10 {
		t.Fatalf("normal image not restored")
	}
	if len(events) != 2 || events[0] != "press" || events[1] != "release" {
		t.Fatalf("events = %v", events)
	}
}

func TestToggleStaysPressed(t *testing.T) {
	m, list, screen := newTestSetup(t)
	win, _ := m.Add(0, 0, 30, 30, 1, 0)
	m.Show(win)
	id, _ := list.Add(win, rect.FromSize(0, 0, 5, 5), Images{
		Normal:  solid(t, 5, 5, 20),
		Pressed: solid(t, 5, 5, 21),
	}, FlagToggle)

	list.Press(id)
	list.Release(id)
	if screen.Framebuffer().At(1, 1) != 21 {
		t.Fatalf("toggle released visually")
	}
	list.Press(id)
	if screen.Framebuffer().At(1, 1) != 20 {
		t.Fatalf("second press did not uncheck")
	}
}

func TestHoverAndDisable(t *testing.T) {
	m, list, _ := newTestSetup(t)
	win, _ := m.Add(0, 0, 30, 30, 1, 0)
	id, _ := list.Add(win, rect.FromSize(0, 0, 5, 5), Images{
		Normal: solid(t, 5, 5, 30),
		Hover:  solid(t, 5, 5, 31),
	}, 0)

	list.Hover(id, true)
	if m.Buffer(win).At(0, 0) != 31 || list.Get(id).State() != StateHover {
		t.Fatalf("hover image not drawn")
	}
	list.Hover(id, false)

	if err := list.Disable(id, Images{Normal: solid(t, 5, 5, 32)}); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if m.Buffer(win).At(0, 0) != 32 {
		t.Fatalf("disabled image not drawn")
	}
	list.Hover(id, true)
	list.Press(id)
	if m.Buffer(win).At(0, 0) != 32 {
		t.Fatalf("disabled button reacted to input")
	}
	if list.Hit(win, 1, 1) != gnw.InvalidID {
		t.Fatalf("disabled button hit")
	}
	list.Enable(id)
	if m.Buffer(win).At(0, 0) != 30 {
		t.Fatalf("enable did not restore normal image")
	}
}

func TestHitPrefersNewest(t *testing.T) {
	m, list, _ := newTestSetup(t)
	win, _ := m.Add(0, 0, 30, 30, 1, 0)
	a, _ := list.Add(win, rect.FromSize(0, 0, 10, 10), Images{Normal: solid(t, 10, 10, 2)}, 0)
	b, _ := list.Add(win, rect.FromSize(5, 5, 10, 10), Images{Normal: solid(t, 10, 10, 3)}, 0)

	if got := list.Hit(win, 7, 7); got != b {
		t.Fatalf("Hit overlap = %d, want %d", got, b)
	}
	if got := list.Hit(win, 1, 1); got != a {
		t.Fatalf("Hit = %d, want %d", got, a)
	}
	if got := list.Hit(win, 20, 1); got != gnw.InvalidID {
		t.Fatalf("Hit miss = %d", got)
	}
}

func TestRefreshRedrawsOverWindowContents(t *testing.T) {
	m, list, screen := newTestSetup(t)
	win, _ := m.Add(20, 20, 30, 30, 1, 0)
	list.Add(win, rect.FromSize(0, 0, 8, 8), Images{Normal: solid(t, 8, 8, 40)}, 0)

	mask := solid(t, 8, 8, 0)
	mask.Fill(rect.FromSize(2, 2, 4, 4), 41)
	list.Add(win, rect.FromSize(0, 0, 8, 8), Images{Normal: mask}, FlagTransparent)

	m.Fill(win, 0, 0, 30, 30, 1)
	m.Draw(win)

	fb := screen.Framebuffer()
	if fb.At(20, 20) != 40 {
		t.Fatalf("opaque button not refreshed: %d", fb.At(20, 20))
	}
	if fb.At(23, 23) != 41 {
		t.Fatalf("transparent button not drawn over: %d", fb.At(23, 23))
	}
	if fb.At(30, 30) != 1 {
		t.Fatalf("window body = %d", fb.At(30, 30))
	}
}

func TestDeleteWindowReleasesButtons(t *testing.T) {
	m, list, _ := newTestSetup(t)
	win, _ := m.Add(0, 0, 30, 30, 1, 0)
	id, _ := list.Add(win, rect.FromSize(0, 0, 5, 5), Images{Normal: solid(t, 5, 5, 2)}, 0)

	m.Delete(win)
	if list.Get(id) != nil || len(list.Buttons(win)) != 0 {
		t.Fatalf("buttons survived window deletion")
	}

	other, _ := m.Add(0, 0, 30, 30, 1, 0)
	b, _ := list.Add(other, rect.FromSize(0, 0, 5, 5), Images{Normal: solid(t, 5, 5, 2)}, 0)
	list.Delete(b)
	if list.Get(b) != nil || list.Hit(other, 1, 1) != gnw.InvalidID {
		t.Fatalf("Delete left the button behind")
	}
}

func TestMaskedButtonKeepsWindowPixels(t *testing.T) {
	m, list, screen := newTestSetup(t)
	win, _ := m.Add(0, 0, 20, 20, 1, 0)

	mask := solid(t, 4, 4, 1)
	mask.Set(0, 0, 0)
	images := Images{Normal: solid(t, 4, 4, 7), Pressed: solid(t, 4, 4, 8), Mask: mask}
	id, err := list.Add(win, rect.FromSize(2, 2, 4, 4), images, 0)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	buf := m.Buffer(win)
	if buf.At(2, 2) != 1 || buf.At(3, 3) != 7 {
		t.Fatalf("masked normal image: (2,2)=%d (3,3)=%d", buf.At(2, 2), buf.At(3, 3))
	}

	m.Show(win)
	list.Press(id)
	fb := screen.Framebuffer()
	if fb.At(2, 2) != 1 || fb.At(3, 3) != 8 {
		t.Fatalf("masked pressed image on screen: (2,2)=%d (3,3)=%d", fb.At(2, 2), fb.At(3, 3))
	}

	if _, err := list.Add(win, rect.FromSize(0, 0, 4, 4), Images{Normal: solid(t, 4, 4, 7), Mask: solid(t, 2, 2, 1)}, 0); !errors.Is(err, ErrImageSize) {
		t.Fatalf("small mask: %v", err)
	}
}
