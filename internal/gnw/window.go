package gnw

import (
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

// Window is a retained window: a private pixel buffer placed on the screen.
// Only the manager creates and destroys windows.
type Window struct {
	id     int
	rect   rect.Rect
	width  int
	height int
	flags  Flag
	color  int
	buf    *grbuf.Buffer

	// texture phase
	tx, ty int

	blitter grbuf.Blitter
}

func (w *Window) ID() int { return w.id }

// Rect is the window's screen rectangle.
func (w *Window) Rect() rect.Rect { return w.rect }

func (w *Window) Flags() Flag { return w.flags }

// Color is the resolved fill color the window was created with.
func (w *Window) Color() int { return w.color }

// Buffer is the window's pixels. The root window has none.
func (w *Window) Buffer() *grbuf.Buffer { return w.buf }

func (w *Window) Width() int  { return w.width }
func (w *Window) Height() int { return w.height }

// Hidden reports whether the window is currently hidden.
func (w *Window) Hidden() bool { return w.flags&FlagHidden != 0 }
