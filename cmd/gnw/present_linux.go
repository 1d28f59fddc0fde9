//go:build linux

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/gnw/internal/mouse"
	"github.com/1broseidon/gnw/internal/platform"
	"github.com/1broseidon/gnw/internal/scene"
	"github.com/1broseidon/gnw/internal/screendump"
)

func runPresent(args []string) int {
	fs := flag.NewFlagSet("present", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/gnw/config.yaml)")
	scenePath := fs.String("scene", "", "Scene file to show (required)")
	display := fs.String("display", "", "X display (default: x11.display from config, then $DISPLAY)")
	scale := fs.Int("scale", 0, "Integer zoom (default: x11.scale from config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gnw present --scene FILE [--display D] [--scale N] [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an X11 window showing the scene. Drag windows with the left button.")
		fmt.Fprintln(os.Stderr, "Keys: Tab next window, arrows move, h hide/show, r raise, d delete,")
		fmt.Fprintln(os.Stderr, "n next step, p screen dump, q or Escape quit.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *scenePath == "" || fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	e, err := loadEnv(*configPath, *scenePath, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	opts := platform.X11Options{
		Display: e.cfg.X11.Display,
		Title:   e.cfg.X11.Title,
		Scale:   e.cfg.X11.Scale,
		Palette: e.pal,
		Logger:  e.logger.With("component", "x11"),
	}
	if *display != "" {
		opts.Display = *display
	}
	if *scale > 0 {
		opts.Scale = *scale
	}

	screen, err := platform.NewX11Screen(e.cfg.Screen.Width, e.cfg.Screen.Height, opts)
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer screen.Close()

	m, err := e.newManager(screen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer m.Close()

	sess, err := scene.Start(e.scene, m, e.buttons)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var cur *mouse.Cursor
	if e.cfg.Cursor.Enabled {
		shape, trans := mouse.DefaultShape()
		cur, err = mouse.New(m, screen, shape, trans)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		m.SetCursor(cur)
		cur.MoveTo(e.cfg.Cursor.X, e.cfg.Cursor.Y)
		cur.Show()
	}

	if err := bindPresenter(screen, sess, cur, e); err != nil {
		log.Printf("Failed to bind input: %v", err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		screen.Quit()
	}()
	defer signal.Stop(sigCh)

	log.Printf("Presenting %s (%dx%d, scale %d)", *scenePath, e.cfg.Screen.Width, e.cfg.Screen.Height, screen.Scale())
	screen.EventLoop()
	return 0
}

// bindPresenter routes X11 input to the session. Window coordinates are
// divided by the zoom factor to get screen pixels.
func bindPresenter(screen *platform.X11Screen, sess *scene.Session, cur *mouse.Cursor, e *env) error {
	conn := screen.Connection()
	win := screen.Window().Id
	scale := screen.Scale()

	keys := []struct {
		seq string
		fn  func()
	}{
		{"Tab", sess.Next},
		{"shift-Tab", sess.Prev},
		{"Left", func() { sess.MoveBy(-8, 0) }},
		{"Right", func() { sess.MoveBy(8, 0) }},
		{"Up", func() { sess.MoveBy(0, -8) }},
		{"Down", func() { sess.MoveBy(0, 8) }},
		{"h", sess.ToggleHidden},
		{"r", sess.Raise},
		{"d", sess.Delete},
		{"n", func() {
			if _, err := sess.Step(); err != nil {
				e.logger.Warn("scene step failed", "error", err)
			}
			e.logger.Info(sess.Status())
		}},
		{"p", func() { dumpPresented(sess, cur, e) }},
		{"q", screen.Quit},
		{"Escape", screen.Quit},
	}
	for _, k := range keys {
		if err := conn.BindKey(win, k.seq, k.fn); err != nil {
			return fmt.Errorf("bind %s: %w", k.seq, err)
		}
	}

	err := conn.BindButton(win, "1",
		func(x, y int) { sess.Press(x/scale, y/scale) },
		func(x, y int) { sess.Release(x/scale, y/scale) },
	)
	if err != nil {
		return fmt.Errorf("bind button: %w", err)
	}
	conn.OnMotion(win, func(x, y int) {
		x, y = x/scale, y/scale
		if cur != nil {
			cur.MoveTo(x, y)
		}
		sess.Motion(x, y)
	})
	return nil
}

func dumpPresented(sess *scene.Session, cur *mouse.Cursor, e *env) {
	var overlays []screendump.Overlay
	if cur != nil {
		overlays = append(overlays, cur)
	}
	buf, err := screendump.Capture(sess.Manager(), overlays...)
	if err != nil {
		e.logger.Warn("screen dump failed", "error", err)
		return
	}
	path, err := screendump.WriteNext(e.cfg.DumpDir, buf, e.pal)
	if err != nil {
		e.logger.Warn("screen dump failed", "error", err)
		return
	}
	e.logger.Info("screen dumped", "path", path)
}
