// Package palette holds the 256-entry color table window buffers index into.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"os"
)

// PALSize is the size of a .PAL file: 256 RGB triples of 6-bit components.
const PALSize = 768

// lightenStep is how far Lighten pulls each component towards white, in
// 128ths.
const lightenStep = 19

// ErrBadPAL is returned for palette data of the wrong size.
var ErrBadPAL = errors.New("palette data must be 768 bytes")

// Palette maps palette indices to colors.
type Palette [256]color.RGBA

// Default returns the xterm 256-color layout: 16 system colors, a 6×6×6
// cube and a 24 step gray ramp.
func Default() *Palette {
	var p Palette
	system := [16][3]uint8{
		{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
		{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
		{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, c := range system {
		p[i] = color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
	}

	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for i := 0; i < 216; i++ {
		p[16+i] = color.RGBA{R: levels[i/36], G: levels[(i/6)%6], B: levels[i%6], A: 0xff}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		p[232+i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return &p
}

// ParsePAL decodes 768 bytes of 6-bit RGB components.
func ParsePAL(data []byte) (*Palette, error) {
	if len(data) != PALSize {
		return nil, fmt.Errorf("%w, got %d", ErrBadPAL, len(data))
	}
	var p Palette
	for i := range p {
		p[i] = color.RGBA{
			R: scale6(data[i*3]),
			G: scale6(data[i*3+1]),
			B: scale6(data[i*3+2]),
			A: 0xff,
		}
	}
	return &p, nil
}

// LoadPAL reads a .PAL file.
func LoadPAL(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette %s: %w", path, err)
	}
	p, err := ParsePAL(data)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

func scale6(v byte) uint8 {
	if v > 63 {
		v = 63
	}
	return v * 4
}

// Nearest returns the index of the entry closest to c.
func (p *Palette) Nearest(c color.RGBA) byte {
	best, bestDist := 0, -1
	for i, e := range p {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return byte(best)
}

// LightenTable maps every index to the entry nearest to a slightly brighter
// version of its color.
func (p *Palette) LightenTable() *[256]byte {
	var t [256]byte
	for i, c := range p {
		t[i] = p.Nearest(color.RGBA{
			R: lighten(c.R),
			G: lighten(c.G),
			B: lighten(c.B),
			A: 0xff,
		})
	}
	return &t
}

func lighten(v uint8) uint8 {
	return v + uint8((int(255-v)*lightenStep)/128)
}

// Colors returns the palette as a color.Palette for image encoders.
func (p *Palette) Colors() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = c
	}
	return out
}

// Expand writes src, one index per pixel, to dst as 4-byte BGRX pixels.
// dst must hold 4*len(src) bytes.
func (p *Palette) Expand(dst, src []byte) {
	for i, idx := range src {
		c := p[idx]
		o := i * 4
		dst[o] = c.B
		dst[o+1] = c.G
		dst[o+2] = c.R
		dst[o+3] = 0
	}
}
