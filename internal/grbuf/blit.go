package grbuf

import "github.com/1broseidon/gnw/internal/rect"

// Blitter composites sr of src onto dst with its top-left at (dx, dy).
type Blitter interface {
	Blit(dst *Buffer, dx, dy int, src *Buffer, sr rect.Rect)
}

// BlitFunc adapts a plain function to Blitter.
type BlitFunc func(dst *Buffer, dx, dy int, src *Buffer, sr rect.Rect)

func (f BlitFunc) Blit(dst *Buffer, dx, dy int, src *Buffer, sr rect.Rect) {
	f(dst, dx, dy, src, sr)
}

// Opaque copies every pixel.
type Opaque struct{}

func (Opaque) Blit(dst *Buffer, dx, dy int, src *Buffer, sr rect.Rect) {
	dst.CopyFrom(dx, dy, src, sr)
}

// Transparent copies every pixel except index 0.
type Transparent struct{}

func (Transparent) Blit(dst *Buffer, dx, dy int, src *Buffer, sr rect.Rect) {
	dst.TransCopyFrom(dx, dy, src, sr)
}

// Keyed copies every pixel except Key.
type Keyed struct {
	Key byte
}

func (k Keyed) Blit(dst *Buffer, dx, dy int, src *Buffer, sr rect.Rect) {
	sr, dx, dy, ok := clipCopy(dst, dx, dy, src, sr)
	if !ok {
		return
	}
	for y := 0; y < sr.Height(); y++ {
		d := dst.Row(dy+y, dx, dx+sr.Width()-1)
		s := src.Row(sr.Top+y, sr.Left, sr.Right)
		for i, c := range s {
			if c != k.Key {
				d[i] = c
			}
		}
	}
}
