package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/palette"
)

// canvas maps terminal cells onto framebuffer pixels. Each cell shows two
// pixels stacked vertically; scale pixels are skipped between samples.
type canvas struct {
	cols, rows int
	scale      int
}

// fit picks the smallest integer scale at which a w×h framebuffer fits in
// maxCols×maxRows cells.
func fit(w, h, maxCols, maxRows int) canvas {
	if maxCols < 1 || maxRows < 1 {
		return canvas{}
	}
	scale := max((w+maxCols-1)/maxCols, (h+2*maxRows-1)/(2*maxRows), 1)
	return canvas{
		cols:  w / scale,
		rows:  (h + 2*scale - 1) / (2 * scale),
		scale: scale,
	}
}

// pixel converts a cell position to the framebuffer pixel under its upper
// half.
func (c canvas) pixel(col, row int) (int, int) {
	return col * c.scale, 2 * row * c.scale
}

type cellColors struct{ top, bottom byte }

// renderer caches one lipgloss style per color pair.
type renderer struct {
	pal    *palette.Palette
	styles map[cellColors]lipgloss.Style
}

func newRenderer(pal *palette.Palette) *renderer {
	if pal == nil {
		pal = palette.Default()
	}
	return &renderer{pal: pal, styles: make(map[cellColors]lipgloss.Style)}
}

func (r *renderer) hex(i byte) lipgloss.Color {
	c := r.pal[i]
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func (r *renderer) style(cc cellColors) lipgloss.Style {
	s, ok := r.styles[cc]
	if !ok {
		s = lipgloss.NewStyle().Foreground(r.hex(cc.top)).Background(r.hex(cc.bottom))
		r.styles[cc] = s
	}
	return s
}

// render draws fb with upper half blocks. Runs of equal cells share one
// styled segment.
func (r *renderer) render(fb *grbuf.Buffer, c canvas) string {
	if c.cols == 0 || c.rows == 0 {
		return ""
	}
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var run cellColors
		n := 0
		for col := 0; col < c.cols; col++ {
			x, y := c.pixel(col, row)
			cc := cellColors{top: fb.At(x, y), bottom: fb.At(x, y+c.scale)}
			if n > 0 && cc != run {
				sb.WriteString(r.style(run).Render(strings.Repeat("▀", n)))
				n = 0
			}
			run = cc
			n++
		}
		sb.WriteString(r.style(run).Render(strings.Repeat("▀", n)))
	}
	return sb.String()
}
