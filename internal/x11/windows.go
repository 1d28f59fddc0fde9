package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// putImageHeader is the fixed part of a PutImage request.
const putImageHeader = 24

// WindowOptions describes a presenter window.
type WindowOptions struct {
	Title  string
	Class  string
	X, Y   int
	Width  int
	Height int
	// OnClose runs when the window manager asks the window to close.
	OnClose func()
}

// Window is a fixed-size top-level window that accepts 32-bit ZPixmap
// images.
type Window struct {
	*xwindow.Window
	conn  *Connection
	gc    xproto.Gcontext
	depth byte
}

// CreateWindow creates and maps a top-level window that cannot be resized.
func (c *Connection) CreateWindow(opts WindowOptions) (*Window, error) {
	depth := c.Depth()
	if bpp := c.bitsPerPixel(depth); bpp != 32 {
		return nil, fmt.Errorf("unsupported visual: depth %d uses %d bits per pixel", depth, bpp)
	}

	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}
	mask := xproto.EventMaskExposure | xproto.EventMaskKeyPress |
		xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion | xproto.EventMaskStructureNotify
	if err := win.CreateChecked(c.Root, opts.X, opts.Y, opts.Width, opts.Height,
		xproto.CwBackPixel|xproto.CwEventMask, 0, uint32(mask)); err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if opts.Title != "" {
		// Not every window manager reads _NET_WM_NAME.
		_ = ewmh.WmNameSet(c.XUtil, win.Id, opts.Title)
		_ = icccm.WmNameSet(c.XUtil, win.Id, opts.Title)
	}
	class := opts.Class
	if class == "" {
		class = "gnw"
	}
	_ = icccm.WmClassSet(c.XUtil, win.Id, &icccm.WmClass{Instance: class, Class: class})
	_ = icccm.WmNormalHintsSet(c.XUtil, win.Id, &icccm.NormalHints{
		Flags:     icccm.SizeHintPPosition | icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		X:         opts.X,
		Y:         opts.Y,
		MinWidth:  uint(opts.Width),
		MinHeight: uint(opts.Height),
		MaxWidth:  uint(opts.Width),
		MaxHeight: uint(opts.Height),
	})
	if opts.OnClose != nil {
		win.WMGracefulClose(func(*xwindow.Window) { opts.OnClose() })
	}

	gc, err := xproto.NewGcontextId(c.XUtil.Conn())
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to allocate graphics context: %w", err)
	}
	if err := xproto.CreateGCChecked(c.XUtil.Conn(), gc, xproto.Drawable(win.Id), 0, nil).Check(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to create graphics context: %w", err)
	}

	win.Map()
	return &Window{Window: win, conn: c, gc: gc, depth: depth}, nil
}

func (c *Connection) bitsPerPixel(depth byte) int {
	for _, f := range c.XUtil.Setup().PixmapFormats {
		if f.Depth == depth {
			return int(f.BitsPerPixel)
		}
	}
	return 0
}

// PutImage draws width×height BGRX pixels at (x, y). Images larger than
// one request are sent in horizontal bands.
func (w *Window) PutImage(x, y, width, height int, data []byte) {
	if width <= 0 || height <= 0 {
		return
	}
	rowBytes := width * 4
	rows := (w.conn.maxRequestBytes() - putImageHeader) / rowBytes
	if rows < 1 {
		rows = 1
	}
	for top := 0; top < height; top += rows {
		n := min(rows, height-top)
		xproto.PutImage(w.conn.XUtil.Conn(), xproto.ImageFormatZPixmap,
			xproto.Drawable(w.Id), w.gc,
			uint16(width), uint16(n), int16(x), int16(y+top), 0, w.depth,
			data[top*rowBytes:(top+n)*rowBytes])
	}
}

// Destroy frees the graphics context and destroys the window.
func (w *Window) Destroy() {
	xproto.FreeGC(w.conn.XUtil.Conn(), w.gc)
	w.Window.Destroy()
}
