// Package tui explores a scene in the terminal: the composed screen is drawn
// with half-block cells next to a list of windows, and keys or the mouse act
// on the selected window.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/gnw/internal/palette"
	"github.com/1broseidon/gnw/internal/platform"
	"github.com/1broseidon/gnw/internal/scene"
)

// Options configures Run.
type Options struct {
	Session *scene.Session
	// Screen must be the screen the session's manager draws to.
	Screen  *platform.MemoryScreen
	Palette *palette.Palette
	// DumpDir receives screen dumps; defaults to the working directory.
	DumpDir string
	Logger  *slog.Logger
}

// Run starts the explorer and blocks until the user quits.
func Run(opts Options) error {
	if opts.Session == nil || opts.Screen == nil {
		return errors.New("tui needs a session and a memory screen")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if opts.DumpDir == "" {
		opts.DumpDir = "."
	}

	m := newModel(opts)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
		m.resize()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
