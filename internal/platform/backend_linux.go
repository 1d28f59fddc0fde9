//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/palette"
	"github.com/1broseidon/gnw/internal/rect"
	"github.com/1broseidon/gnw/internal/x11"
)

// X11Options configures an X11Screen.
type X11Options struct {
	// Display overrides $DISPLAY.
	Display string
	Title   string
	// Scale is the integer zoom factor; values below 1 mean 1.
	Scale   int
	Palette *palette.Palette
	Logger  *slog.Logger
}

// X11Screen presents the framebuffer in an X11 window. It keeps a mirror of
// everything blitted so exposed areas can be redrawn without the Manager.
type X11Screen struct {
	conn   *x11.Connection
	win    *x11.Window
	pal    *palette.Palette
	mirror *grbuf.Buffer
	scale  int
	pixels []byte
	logger *slog.Logger
}

var _ Backend = (*X11Screen)(nil)

// NewX11Screen opens a connection and a width×height window centered on the
// monitor under the pointer.
func NewX11Screen(width, height int, opts X11Options) (*X11Screen, error) {
	mirror, err := grbuf.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("x11 screen: %w", err)
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	pal := opts.Palette
	if pal == nil {
		pal = palette.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := x11.NewConnection(opts.Display)
	if err != nil {
		return nil, err
	}

	mon := conn.ActiveMonitor()
	x, y := x11.CenterOn(mon, width*scale, height*scale)
	win, err := conn.CreateWindow(x11.WindowOptions{
		Title:   opts.Title,
		X:       x,
		Y:       y,
		Width:   width * scale,
		Height:  height * scale,
		OnClose: conn.Quit,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	logger.Debug("x11 window created", "monitor", mon.Name, "x", x, "y", y, "scale", scale)

	s := &X11Screen{
		conn:   conn,
		win:    win,
		pal:    pal,
		mirror: mirror,
		scale:  scale,
		logger: logger,
	}
	conn.OnExpose(win.Id, s.expose)
	return s, nil
}

func (s *X11Screen) Bounds() rect.Rect { return s.mirror.Bounds() }

// Blit updates the mirror and pushes the changed area to the window.
func (s *X11Screen) Blit(src *grbuf.Buffer, sr rect.Rect, dx, dy int) {
	s.mirror.CopyFrom(dx, dy, src, sr)
	s.present(rect.FromSize(dx, dy, sr.Width(), sr.Height()))
}

func (s *X11Screen) Framebuffer() *grbuf.Buffer { return s.mirror }

// SetPalette replaces the palette and redraws the whole window.
func (s *X11Screen) SetPalette(p *palette.Palette) {
	s.pal = p
	s.present(s.mirror.Bounds())
}

func (s *X11Screen) present(r rect.Rect) {
	r = r.Intersect(s.mirror.Bounds())
	if r.Empty() {
		return
	}
	s.pixels = expandScaled(s.pixels, s.mirror, r, s.pal, s.scale)
	s.win.PutImage(r.Left*s.scale, r.Top*s.scale, r.Width()*s.scale, r.Height()*s.scale, s.pixels)
}

// expose maps window pixels back to framebuffer pixels and redraws them.
func (s *X11Screen) expose(x, y, width, height int) {
	left, top := x/s.scale, y/s.scale
	right := (x + width - 1) / s.scale
	bottom := (y + height - 1) / s.scale
	s.present(rect.Rect{Left: left, Top: top, Right: right, Bottom: bottom})
}

// Connection exposes the X11 connection for input bindings.
func (s *X11Screen) Connection() *x11.Connection { return s.conn }

// Window is the presenter window.
func (s *X11Screen) Window() *x11.Window { return s.win }

// Scale is the zoom factor between window and framebuffer pixels.
func (s *X11Screen) Scale() int { return s.scale }

// EventLoop blocks until the window is closed or Quit is called.
func (s *X11Screen) EventLoop() {
	s.conn.EventLoop()
}

func (s *X11Screen) Quit() {
	s.conn.Quit()
}

// Close destroys the window and disconnects.
func (s *X11Screen) Close() error {
	s.win.Destroy()
	s.conn.Close()
	return nil
}
