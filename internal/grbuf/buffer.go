// Package grbuf holds palette-indexed pixel buffers and the fill, copy and
// line primitives that operate on them. Every operation takes explicit
// rectangles and clips them to the buffers involved.
package grbuf

import (
	"errors"
	"fmt"

	"github.com/1broseidon/gnw/internal/rect"
)

// ErrBadSize is returned when a buffer is requested with a non-positive size.
var ErrBadSize = errors.New("buffer size must be positive")

// Buffer is a width×height array of palette indices. Pix row y starts at
// y*Stride.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// New allocates a zeroed buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	return &Buffer{
		Pix:    make([]byte, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}, nil
}

// Wrap returns a buffer over existing pixels. pix must hold at least
// stride*(height-1)+width bytes.
func Wrap(pix []byte, width, height, stride int) (*Buffer, error) {
	if width <= 0 || height <= 0 || stride < width {
		return nil, fmt.Errorf("%w: %dx%d stride %d", ErrBadSize, width, height, stride)
	}
	if need := stride*(height-1) + width; len(pix) < need {
		return nil, fmt.Errorf("pixel slice holds %d bytes, need %d", len(pix), need)
	}
	return &Buffer{Pix: pix, Width: width, Height: height, Stride: stride}, nil
}

// Bounds is the buffer rectangle in its own coordinates.
func (b *Buffer) Bounds() rect.Rect {
	return rect.Rect{Left: 0, Top: 0, Right: b.Width - 1, Bottom: b.Height - 1}
}

// Sub returns a view of r sharing b's pixels. r is clipped to b; nil is
// returned if nothing remains.
func (b *Buffer) Sub(r rect.Rect) *Buffer {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return nil
	}
	off := r.Top*b.Stride + r.Left
	end := (r.Bottom)*b.Stride + r.Right + 1
	return &Buffer{
		Pix:    b.Pix[off:end],
		Width:  r.Width(),
		Height: r.Height(),
		Stride: b.Stride,
	}
}

// At returns the pixel at (x, y), or 0 outside the buffer.
func (b *Buffer) At(x, y int) byte {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Stride+x]
}

// Set stores c at (x, y); points outside the buffer are ignored.
func (b *Buffer) Set(x, y int, c byte) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Stride+x] = c
}

// Row returns the pixels of row y between columns x0 and x1 inclusive.
func (b *Buffer) Row(y, x0, x1 int) []byte {
	off := y * b.Stride
	return b.Pix[off+x0 : off+x1+1]
}

// Fill sets every pixel of r to c.
func (b *Buffer) Fill(r rect.Rect, c byte) {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Top; y <= r.Bottom; y++ {
		row := b.Row(y, r.Left, r.Right)
		for i := range row {
			row[i] = c
		}
	}
}

// clipCopy narrows the source rectangle sr and destination origin (dx, dy)
// so that both lie inside their buffers. ok is false when nothing remains.
func clipCopy(dst *Buffer, dx, dy int, src *Buffer, sr rect.Rect) (rect.Rect, int, int, bool) {
	clipped := sr.Intersect(src.Bounds())
	if clipped.Empty() {
		return clipped, dx, dy, false
	}
	dx += clipped.Left - sr.Left
	dy += clipped.Top - sr.Top

	target := rect.FromSize(dx, dy, clipped.Width(), clipped.Height())
	visible := target.Intersect(dst.Bounds())
	if visible.Empty() {
		return visible, dx, dy, false
	}
	clipped.Left += visible.Left - target.Left
	clipped.Top += visible.Top - target.Top
	clipped.Right -= target.Right - visible.Right
	clipped.Bottom -= target.Bottom - visible.Bottom
	return clipped, visible.Left, visible.Top, true
}

// CopyFrom copies sr of src to dst with its top-left at (dx, dy).
func (b *Buffer) CopyFrom(dx, dy int, src *Buffer, sr rect.Rect) {
	sr, dx, dy, ok := clipCopy(b, dx, dy, src, sr)
	if !ok {
		return
	}
	for y := 0; y < sr.Height(); y++ {
		copy(b.Row(dy+y, dx, dx+sr.Width()-1), src.Row(sr.Top+y, sr.Left, sr.Right))
	}
}

// TransCopyFrom is CopyFrom that leaves destination pixels alone where the
// source is 0.
func (b *Buffer) TransCopyFrom(dx, dy int, src *Buffer, sr rect.Rect) {
	sr, dx, dy, ok := clipCopy(b, dx, dy, src, sr)
	if !ok {
		return
	}
	for y := 0; y < sr.Height(); y++ {
		d := b.Row(dy+y, dx, dx+sr.Width()-1)
		s := src.Row(sr.Top+y, sr.Left, sr.Right)
		for i, c := range s {
			if c != 0 {
				d[i] = c
			}
		}
	}
}

// MaskCopyFrom copies pixels of sr where the mask, read from the same
// coordinates, is non-zero.
func (b *Buffer) MaskCopyFrom(dx, dy int, src, mask *Buffer, sr rect.Rect) {
	masked := sr.Intersect(mask.Bounds())
	if masked.Empty() {
		return
	}
	dx += masked.Left - sr.Left
	dy += masked.Top - sr.Top
	sr, dx, dy, ok := clipCopy(b, dx, dy, src, masked)
	if !ok {
		return
	}
	for y := 0; y < sr.Height(); y++ {
		d := b.Row(dy+y, dx, dx+sr.Width()-1)
		s := src.Row(sr.Top+y, sr.Left, sr.Right)
		m := mask.Row(sr.Top+y, sr.Left, sr.Right)
		for i, c := range s {
			if m[i] != 0 {
				d[i] = c
			}
		}
	}
}

// Texture tiles tex over r. (phaseX, phaseY) is the texture coordinate of
// r's top-left corner.
func (b *Buffer) Texture(r rect.Rect, tex *Buffer, phaseX, phaseY int) {
	if tex == nil {
		return
	}
	clipped := r.Intersect(b.Bounds())
	if clipped.Empty() {
		return
	}
	phaseX += clipped.Left - r.Left
	phaseY += clipped.Top - r.Top
	for y := clipped.Top; y <= clipped.Bottom; y++ {
		ty := mod(phaseY+y-clipped.Top, tex.Height)
		row := b.Row(y, clipped.Left, clipped.Right)
		for i := range row {
			row[i] = tex.Pix[ty*tex.Stride+mod(phaseX+i, tex.Width)]
		}
	}
}

// Lighten maps every pixel of r through table.
func (b *Buffer) Lighten(r rect.Rect, table *[256]byte) {
	r = r.Intersect(b.Bounds())
	if r.Empty() || table == nil {
		return
	}
	for y := r.Top; y <= r.Bottom; y++ {
		row := b.Row(y, r.Left, r.Right)
		for i, c := range row {
			row[i] = table[c]
		}
	}
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
