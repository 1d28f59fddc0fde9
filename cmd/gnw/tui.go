package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/gnw/internal/platform"
	"github.com/1broseidon/gnw/internal/scene"
	"github.com/1broseidon/gnw/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/gnw/config.yaml)")
	scenePath := fs.String("scene", "", "Scene file to explore (required)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: gnw tui --scene FILE [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Draw a scene in the terminal and drive its windows by hand.")
		fmt.Fprintln(os.Stderr, "Scripted steps run one at a time with n.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  tab, shift+tab  Select next/previous window")
		fmt.Fprintln(os.Stderr, "  arrows          Move the selected window")
		fmt.Fprintln(os.Stderr, "  h               Hide or show")
		fmt.Fprintln(os.Stderr, "  r               Raise")
		fmt.Fprintln(os.Stderr, "  d               Delete")
		fmt.Fprintln(os.Stderr, "  n               Run the next scripted step")
		fmt.Fprintln(os.Stderr, "  p               Write a screen dump")
		fmt.Fprintln(os.Stderr, "  mouse           Click to select, drag to move, press buttons")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C       Quit")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "tui requires --scene")
		return 2
	}

	// The terminal belongs to the explorer while it runs.
	e, err := loadEnv(*configPath, *scenePath, io.Discard)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	screen, err := platform.NewMemoryScreen(e.cfg.Screen.Width, e.cfg.Screen.Height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
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
	err = tui.Run(tui.Options{
		Session: sess,
		Screen:  screen,
		Palette: e.pal,
		DumpDir: e.cfg.DumpDir,
		Logger:  e.logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
