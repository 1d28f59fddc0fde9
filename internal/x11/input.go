package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// BindKey runs fn whenever keySequence (e.g. "Left", "Shift-Tab") is pressed
// while win has focus.
func (c *Connection) BindKey(win xproto.Window, keySequence string, fn func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		fn()
	}).Connect(c.XUtil, win, keySequence, false)
}

// BindButton runs press and release with window coordinates for the given
// mouse button ("1" is the left button). Either callback may be nil.
func (c *Connection) BindButton(win xproto.Window, button string, press, release func(x, y int)) error {
	if press != nil {
		err := mousebind.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
			press(int(ev.EventX), int(ev.EventY))
		}).Connect(c.XUtil, win, button, false, false)
		if err != nil {
			return err
		}
	}
	if release != nil {
		return mousebind.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
			release(int(ev.EventX), int(ev.EventY))
		}).Connect(c.XUtil, win, button, false, false)
	}
	return nil
}

// OnMotion runs fn with window coordinates on every pointer motion.
func (c *Connection) OnMotion(win xproto.Window, fn func(x, y int)) {
	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		fn(int(ev.EventX), int(ev.EventY))
	}).Connect(c.XUtil, win)
}

// OnExpose runs fn with the damaged area of win.
func (c *Connection) OnExpose(win xproto.Window, fn func(x, y, width, height int)) {
	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		fn(int(ev.X), int(ev.Y), int(ev.Width), int(ev.Height))
	}).Connect(c.XUtil, win)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
