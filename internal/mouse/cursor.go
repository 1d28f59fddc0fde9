// Package mouse draws a software pointer on top of a gnw.Manager's screen.
package mouse

import (
	"errors"

	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

// Compositor is the part of gnw.Manager the cursor needs.
type Compositor interface {
	ComposeUnder(r rect.Rect, dst *grbuf.Buffer)
	RefreshAll(r rect.Rect)
}

// Cursor is a shape composited over whatever windows lie beneath it and
// written straight to the screen. It starts hidden.
type Cursor struct {
	screen gnw.Screen
	wins   Compositor
	shape  *grbuf.Buffer
	trans  byte
	hotX   int
	hotY   int
	under  *grbuf.Buffer
	x, y   int
	hidden bool
}

var _ gnw.Cursor = (*Cursor)(nil)

// New creates a hidden cursor. Pixels of shape equal to trans are not drawn.
func New(wins Compositor, screen gnw.Screen, shape *grbuf.Buffer, trans byte) (*Cursor, error) {
	if wins == nil || screen == nil {
		return nil, errors.New("cursor needs a compositor and a screen")
	}
	c := &Cursor{screen: screen, wins: wins, hidden: true}
	if err := c.SetShape(shape, trans, 0, 0); err != nil {
		return nil, err
	}
	return c, nil
}

// SetShape replaces the picture. (hotX, hotY) is the pixel of the shape
// placed at the pointer position.
func (c *Cursor) SetShape(shape *grbuf.Buffer, trans byte, hotX, hotY int) error {
	if shape == nil {
		return errors.New("nil cursor shape")
	}
	under, err := grbuf.New(shape.Width, shape.Height)
	if err != nil {
		return err
	}
	shown := !c.hidden
	c.Hide()
	c.shape, c.trans, c.hotX, c.hotY, c.under = shape, trans, hotX, hotY, under
	if shown {
		c.Show()
	}
	return nil
}

func (c *Cursor) Hidden() bool { return c.hidden }

// Rect is the screen area the shape covers.
func (c *Cursor) Rect() rect.Rect {
	return rect.FromSize(c.x-c.hotX, c.y-c.hotY, c.shape.Width, c.shape.Height)
}

func (c *Cursor) Intersects(r rect.Rect) bool {
	return c.Rect().Intersects(r)
}

// Position is the pointer position in screen coordinates.
func (c *Cursor) Position() (int, int) { return c.x, c.y }

// Show composes the windows under the cursor, lays the shape over them and
// writes the visible part to the screen.
func (c *Cursor) Show() {
	r := c.Rect()
	c.wins.ComposeUnder(r, c.under)
	grbuf.Keyed{Key: c.trans}.Blit(c.under, 0, 0, c.shape, c.shape.Bounds())

	visible := r.Intersect(c.screen.Bounds())
	c.hidden = false
	if visible.Empty() {
		return
	}
	c.screen.Blit(c.under, visible.Offset(-r.Left, -r.Top), visible.Left, visible.Top)
}

// PaintOnto draws a shown cursor into dst, a buffer covering the whole
// screen.
func (c *Cursor) PaintOnto(dst *grbuf.Buffer) {
	if c.hidden {
		return
	}
	r := c.Rect()
	grbuf.Keyed{Key: c.trans}.Blit(dst, r.Left, r.Top, c.shape, c.shape.Bounds())
}

// Hide repaints the windows the cursor was covering.
func (c *Cursor) Hide() {
	if c.hidden {
		return
	}
	c.hidden = true
	c.wins.RefreshAll(c.Rect())
}

// MoveTo places the pointer at (x, y), redrawing it if it is shown.
func (c *Cursor) MoveTo(x, y int) {
	if x == c.x && y == c.y {
		return
	}
	if c.hidden {
		c.x, c.y = x, y
		return
	}
	c.Hide()
	c.x, c.y = x, y
	c.Show()
}

// DefaultShape returns an 8×12 arrow: outline in index 16, body in 15,
// transparent pixels 0.
func DefaultShape() (*grbuf.Buffer, byte) {
	rows := [...]string{
		"X.......",
		"XX......",
		"XoX.....",
		"XooX....",
		"XoooX...",
		"XooooX..",
		"XoooooX.",
		"XooooooX",
		"XoooXXXX",
		"XoXooX..",
		"XX.XooX.",
		"....XX..",
	}
	shape, _ := grbuf.New(8, len(rows))
	for y, row := range rows {
		for x, ch := range row {
			switch ch {
			case 'X':
				shape.Set(x, y, 16)
			case 'o':
				shape.Set(x, y, 15)
			}
		}
	}
	return shape, 0
}
