package button

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

// Windows is the part of gnw.Manager a List draws through.
type Windows interface {
	Rect(id int) (rect.Rect, bool)
	Buffer(id int) *grbuf.Buffer
	DrawRect(id int, r rect.Rect)
}

// List owns every button. Buttons of one window are kept in registration
// order; later buttons draw over earlier ones and win hit tests.
type List struct {
	wins   Windows
	byWin  map[int][]*Button
	byID   map[int]*Button
	next   int
	logger *slog.Logger
}

var (
	_ gnw.ButtonRefresher = (*List)(nil)
	_ gnw.ButtonReleaser  = (*List)(nil)
)

// NewList creates an empty list. Attach must be called before buttons are
// added.
func NewList(logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &List{
		byWin:  make(map[int][]*Button),
		byID:   make(map[int]*Button),
		next:   1,
		logger: logger,
	}
}

// Attach connects the list to the windows it draws into.
func (l *List) Attach(w Windows) { l.wins = w }

// Add registers a button at r (window coordinates) and draws its normal
// image into the window buffer. The screen is not updated.
func (l *List) Add(win int, r rect.Rect, images Images, flags Flag) (int, error) {
	if l.wins == nil {
		return gnw.InvalidID, ErrNoWindow
	}
	if _, ok := l.wins.Rect(win); !ok {
		return gnw.InvalidID, fmt.Errorf("%w: %d", ErrNoWindow, win)
	}
	if err := images.validate(r.Width(), r.Height()); err != nil {
		return gnw.InvalidID, err
	}

	b := &Button{
		id:     l.next,
		win:    win,
		rect:   r,
		flags:  flags,
		images: images,
	}
	l.next++
	l.byWin[win] = append(l.byWin[win], b)
	l.byID[b.id] = b
	l.paint(b, r)
	l.logger.Debug("button added", "button", b.id, "window", win, "rect", r.String())
	return b.id, nil
}

// Get returns the button with id, or nil.
func (l *List) Get(id int) *Button { return l.byID[id] }

// Buttons returns the ids of win's buttons in drawing order.
func (l *List) Buttons(win int) []int {
	bs := l.byWin[win]
	ids := make([]int, len(bs))
	for i, b := range bs {
		ids[i] = b.id
	}
	return ids
}

// Delete removes a button. Its pixels stay in the window buffer until the
// window is redrawn by its owner.
func (l *List) Delete(id int) {
	b := l.byID[id]
	if b == nil {
		return
	}
	delete(l.byID, id)
	bs := l.byWin[b.win]
	for i, o := range bs {
		if o == b {
			l.byWin[b.win] = append(bs[:i], bs[i+1:]...)
			break
		}
	}
	if len(l.byWin[b.win]) == 0 {
		delete(l.byWin, b.win)
	}
}

// ReleaseWindow drops every button of a deleted window.
func (l *List) ReleaseWindow(win int) {
	for _, b := range l.byWin[win] {
		delete(l.byID, b.id)
	}
	delete(l.byWin, win)
}

// Hit returns the topmost enabled button of win containing the window
// coordinate (x, y), or gnw.InvalidID.
func (l *List) Hit(win, x, y int) int {
	bs := l.byWin[win]
	for i := len(bs) - 1; i >= 0; i-- {
		if !bs[i].off && bs[i].rect.Contains(x, y) {
			return bs[i].id
		}
	}
	return gnw.InvalidID
}

// Press shows the pressed image. A toggle button flips its checked state
// instead.
func (l *List) Press(id int) {
	b := l.byID[id]
	if b == nil || b.off {
		return
	}
	if b.flags&FlagToggle != 0 {
		b.checked = !b.checked
		l.redraw(b)
		if b.checked {
			l.fire(b.OnPress, b.id)
		} else {
			l.fire(b.OnRelease, b.id)
		}
		return
	}
	if b.state == StatePressed {
		return
	}
	b.state = StatePressed
	l.redraw(b)
	l.fire(b.OnPress, b.id)
}

// Release returns a pressed button to its normal image.
func (l *List) Release(id int) {
	b := l.byID[id]
	if b == nil || b.state != StatePressed {
		return
	}
	b.state = StateNormal
	l.redraw(b)
	if b.flags&FlagToggle == 0 {
		l.fire(b.OnRelease, b.id)
	}
}

// Hover switches between the hover and normal images. A pressed button
// is left alone.
func (l *List) Hover(id int, on bool) {
	b := l.byID[id]
	if b == nil || b.off || b.state == StatePressed {
		return
	}
	want := StateNormal
	if on {
		want = StateHover
	}
	if b.state == want {
		return
	}
	b.state = want
	l.redraw(b)
}

// Disable stops the button reacting to input and shows images, if given,
// in place of its normal ones.
func (l *List) Disable(id int, images Images) error {
	b := l.byID[id]
	if b == nil {
		return fmt.Errorf("button %d not found", id)
	}
	if err := images.validate(b.rect.Width(), b.rect.Height()); err != nil {
		return err
	}
	b.off = true
	b.disabled = images
	b.state = StateNormal
	l.redraw(b)
	return nil
}

func (l *List) Enable(id int) {
	b := l.byID[id]
	if b == nil || !b.off {
		return
	}
	b.off = false
	l.redraw(b)
}

// RefreshButtons draws the buttons of w that intersect r, given in screen
// coordinates, into w's buffer.
func (l *List) RefreshButtons(w *gnw.Window, r rect.Rect) {
	wr := w.Rect()
	local := r.Offset(-wr.Left, -wr.Top)
	for _, b := range l.byWin[w.ID()] {
		l.paint(b, local)
	}
}

// paint copies the part of b inside clip, in window coordinates, into the
// window buffer.
func (l *List) paint(b *Button, clip rect.Rect) {
	img := b.image()
	if img == nil {
		return
	}
	buf := l.wins.Buffer(b.win)
	if buf == nil {
		return
	}
	area := b.rect.Intersect(clip)
	if area.Empty() {
		return
	}
	src := area.Offset(-b.rect.Left, -b.rect.Top)
	switch {
	case b.images.Mask != nil:
		buf.MaskCopyFrom(area.Left, area.Top, img, b.images.Mask, src)
	case b.flags&FlagTransparent != 0:
		buf.TransCopyFrom(area.Left, area.Top, img, src)
	default:
		buf.CopyFrom(area.Left, area.Top, img, src)
	}
}

// redraw puts the current image in the buffer and on screen.
func (l *List) redraw(b *Button) {
	l.paint(b, b.rect)
	l.wins.DrawRect(b.win, b.rect)
}

func (l *List) fire(fn func(int), id int) {
	if fn != nil {
		fn(id)
	}
}
