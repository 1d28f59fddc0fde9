// Package screendump saves the composed screen as numbered BMP files.
package screendump

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/palette"
	"golang.org/x/image/bmp"
)

// MaxFiles is how many scrNNNNN.bmp names WriteNext tries.
const MaxFiles = 100000

// ErrNoFreeName is returned when every dump name in a directory is taken.
var ErrNoFreeName = errors.New("no free screen dump name")

var nameLimit = MaxFiles

// Overlay draws something that is not a window, such as the mouse
// cursor, over a captured screen.
type Overlay interface {
	PaintOnto(dst *grbuf.Buffer)
}

// Capture composes every window into a new screen-sized buffer, then
// applies the overlays in order. The screen itself is not touched.
func Capture(m *gnw.Manager, overlays ...Overlay) (*grbuf.Buffer, error) {
	if m.Count() == 0 {
		return nil, errors.New("manager is closed")
	}
	r := m.Bounds()
	buf, err := grbuf.New(r.Width(), r.Height())
	if err != nil {
		return nil, err
	}
	m.ComposeUnder(r, buf)
	for _, o := range overlays {
		o.PaintOnto(buf)
	}
	return buf, nil
}

// Image wraps buf as an image.Paletted sharing its pixels.
func Image(buf *grbuf.Buffer, pal *palette.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     buf.Pix,
		Stride:  buf.Stride,
		Rect:    image.Rect(0, 0, buf.Width, buf.Height),
		Palette: pal.Colors(),
	}
}

// Encode writes buf as an 8-bit paletted BMP.
func Encode(w io.Writer, buf *grbuf.Buffer, pal *palette.Palette) error {
	if pal == nil {
		pal = palette.Default()
	}
	return bmp.Encode(w, Image(buf, pal))
}

// WriteFile encodes buf to path.
func WriteFile(path string, buf *grbuf.Buffer, pal *palette.Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, buf, pal); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteNext writes buf to the first scrNNNNN.bmp in dir that does not
// exist yet and returns its path.
func WriteNext(dir string, buf *grbuf.Buffer, pal *palette.Palette) (string, error) {
	for i := 0; i < nameLimit; i++ {
		path := filepath.Join(dir, fmt.Sprintf("scr%05d.bmp", i))
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := WriteFile(path, buf, pal); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", ErrNoFreeName
}
