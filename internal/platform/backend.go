// Package platform provides the screens a gnw.Manager draws to.
package platform

import (
	"fmt"

	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/palette"
	"github.com/1broseidon/gnw/internal/rect"
)

// Backend is a screen with a lifetime.
type Backend interface {
	gnw.Screen
	// Framebuffer is the current screen contents.
	Framebuffer() *grbuf.Buffer
	Close() error
}

// MemoryScreen is an in-memory framebuffer. It keeps the destination
// rectangle of every blit until ResetBlits.
type MemoryScreen struct {
	fb    *grbuf.Buffer
	blits []rect.Rect
}

var _ Backend = (*MemoryScreen)(nil)

// NewMemoryScreen creates a width×height framebuffer cleared to index 0.
func NewMemoryScreen(width, height int) (*MemoryScreen, error) {
	fb, err := grbuf.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("memory screen: %w", err)
	}
	return &MemoryScreen{fb: fb}, nil
}

func (s *MemoryScreen) Bounds() rect.Rect { return s.fb.Bounds() }

// Blit copies sr of src into the framebuffer at (dx, dy).
func (s *MemoryScreen) Blit(src *grbuf.Buffer, sr rect.Rect, dx, dy int) {
	s.fb.CopyFrom(dx, dy, src, sr)
	dr := rect.FromSize(dx, dy, sr.Width(), sr.Height()).Intersect(s.fb.Bounds())
	if !dr.Empty() {
		s.blits = append(s.blits, dr)
	}
}

func (s *MemoryScreen) Framebuffer() *grbuf.Buffer { return s.fb }

// Blits returns the screen rectangles written since the last ResetBlits.
func (s *MemoryScreen) Blits() []rect.Rect { return s.blits }

func (s *MemoryScreen) ResetBlits() { s.blits = s.blits[:0] }

func (s *MemoryScreen) Close() error { return nil }

// expandScaled converts r of src to BGRX through pal, repeating every pixel
// scale times in each direction. buf is reused when large enough.
func expandScaled(buf []byte, src *grbuf.Buffer, r rect.Rect, pal *palette.Palette, scale int) []byte {
	w, h := r.Width()*scale, r.Height()*scale
	need := w * h * 4
	if cap(buf) < need {
		buf = make([]byte, need)
	}
	buf = buf[:need]

	line := w * 4
	for y := 0; y < r.Height(); y++ {
		row := src.Row(r.Top+y, r.Left, r.Right)
		out := buf[y*scale*line : (y*scale+1)*line]
		if scale == 1 {
			pal.Expand(out, row)
			continue
		}
		for x, idx := range row {
			c := pal[idx]
			for k := 0; k < scale; k++ {
				o := (x*scale + k) * 4
				out[o], out[o+1], out[o+2], out[o+3] = c.B, c.G, c.R, 0
			}
		}
		for k := 1; k < scale; k++ {
			copy(buf[(y*scale+k)*line:], out)
		}
	}
	return buf
}
