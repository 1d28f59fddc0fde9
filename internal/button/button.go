// Package button keeps per-window lists of image buttons. A List plugs into
// gnw.Manager so buttons are redrawn into their window's buffer every time
// a fragment of that window is repainted.
package button

import (
	"errors"
	"fmt"

	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

var (
	ErrNoWindow  = errors.New("window not found")
	ErrNoImage   = errors.New("pressed or hover image without a normal image")
	ErrImageSize = errors.New("image smaller than button")
)

// Flag modifies how a button is drawn.
type Flag uint32

const (
	// FlagTransparent skips index 0 in the button images.
	FlagTransparent Flag = 0x20
	// FlagToggle keeps the button pressed after release until pressed again.
	FlagToggle Flag = 0x20000
)

// State selects which image a button shows.
type State int

const (
	StateNormal State = iota
	StatePressed
	StateHover
)

func (s State) String() string {
	switch s {
	case StatePressed:
		return "pressed"
	case StateHover:
		return "hover"
	default:
		return "normal"
	}
}

// Images holds one picture per state. Pressed and Hover fall back to Normal.
// Where Mask is set, only pixels with a non-zero mask value are drawn, in
// every state.
type Images struct {
	Normal  *grbuf.Buffer
	Pressed *grbuf.Buffer
	Hover   *grbuf.Buffer
	Mask    *grbuf.Buffer
}

func (im Images) pick(s State) *grbuf.Buffer {
	switch {
	case s == StatePressed && im.Pressed != nil:
		return im.Pressed
	case s == StateHover && im.Hover != nil:
		return im.Hover
	}
	return im.Normal
}

func (im Images) validate(width, height int) error {
	if im.Normal == nil && (im.Pressed != nil || im.Hover != nil) {
		return ErrNoImage
	}
	for _, b := range []*grbuf.Buffer{im.Normal, im.Pressed, im.Hover, im.Mask} {
		if b != nil && (b.Width < width || b.Height < height) {
			return fmt.Errorf("%w: %dx%d for %dx%d", ErrImageSize, b.Width, b.Height, width, height)
		}
	}
	return nil
}

// Button is a rectangle inside a window with a picture per state.
type Button struct {
	id       int
	win      int
	rect     rect.Rect
	flags    Flag
	images   Images
	disabled Images
	state    State
	checked  bool
	off      bool

	// OnPress and OnRelease run when the pressed state changes.
	OnPress   func(id int)
	OnRelease func(id int)
}

func (b *Button) ID() int { return b.id }

// Window is the id of the owning window.
func (b *Button) Window() int { return b.win }

// Rect is the button's rectangle in window coordinates.
func (b *Button) Rect() rect.Rect { return b.rect }

func (b *Button) State() State   { return b.state }
func (b *Button) Disabled() bool { return b.off }

// image is the picture the button currently shows, or nil.
func (b *Button) image() *grbuf.Buffer {
	s := b.state
	if b.checked && s == StateNormal {
		s = StatePressed
	}
	if b.off && b.disabled.Normal != nil {
		return b.disabled.pick(s)
	}
	return b.images.pick(s)
}
