package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/gnw/internal/button"
	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/platform"
	"github.com/1broseidon/gnw/internal/scene"
)

const testScene = `
windows:
  - {name: left, x: 0, y: 0, width: 16, height: 16, color: 9, show: true}
  - {name: right, x: 32, y: 0, width: 16, height: 16, color: 12, show: true}
steps:
  - hide: left
`

func newTestModel(t *testing.T) (model, *gnw.Manager) {
	t.Helper()
	screen, err := platform.NewMemoryScreen(64, 32)
	if err != nil {
		t.Fatalf("NewMemoryScreen: %v", err)
	}
	list := button.NewList(nil)
	mgr, err := gnw.New(screen, gnw.WithButtons(list))
	if err != nil {
		t.Fatalf("gnw.New: %v", err)
	}
	list.Attach(mgr)
	t.Cleanup(mgr.Close)

	sc, err := scene.Parse([]byte(testScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sess, err := scene.Start(sc, mgr, list)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	m := newModel(Options{Session: sess, Screen: screen, DumpDir: t.TempDir()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model), mgr
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestFitKeepsAspect(t *testing.T) {
	c := fit(640, 480, 80, 22)
	if c.scale != 11 || c.cols != 58 || c.rows != 22 {
		t.Fatalf("fit = %+v", c)
	}
	if c := fit(10, 10, 80, 40); c.scale != 1 || c.cols != 10 || c.rows != 5 {
		t.Fatalf("small fit = %+v", c)
	}
	if c := fit(10, 10, 0, 5); c.cols != 0 {
		t.Fatalf("fit into nothing = %+v", c)
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	fb, _ := grbuf.New(4, 4)
	fb.Fill(fb.Bounds(), 9)
	fb.Set(0, 1, 12)

	out := newRenderer(nil).render(fb, fit(4, 4, 10, 10))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rows = %d, want 2", len(lines))
	}
	if n := strings.Count(out, "▀"); n != 8 {
		t.Fatalf("cells = %d, want 8", n)
	}
}

func TestKeysDriveSession(t *testing.T) {
	m, mgr := newTestModel(t)

	if _, name := m.session.Selected(); name != "right" {
		t.Fatalf("initial selection %q", name)
	}
	m = press(t, m, "right")
	if r, _ := mgr.Rect(2); r.Left != 32+moveStep {
		t.Fatalf("right key moved to %v", r)
	}

	m = press(t, m, "tab")
	if _, name := m.session.Selected(); name != "left" {
		t.Fatalf("tab selected %q", name)
	}
	m = press(t, m, "h")
	if !mgr.Find(1).Hidden() {
		t.Fatalf("h did not hide")
	}
	m = press(t, m, "r")
	if mgr.Find(1).Hidden() {
		t.Fatalf("r did not show the hidden window")
	}

	m = press(t, m, "d")
	if mgr.Find(1) != nil {
		t.Fatalf("d did not delete")
	}
	if len(m.list.Items()) != 1 {
		t.Fatalf("sidebar has %d items", len(m.list.Items()))
	}
	if !strings.Contains(m.View(), "right #2") {
		t.Fatalf("view missing sidebar entry:\n%s", m.View())
	}
}

func TestStepKey(t *testing.T) {
	m, mgr := newTestModel(t)
	m = press(t, m, "n")
	if !mgr.Find(1).Hidden() {
		t.Fatalf("step did not run")
	}
	m = press(t, m, "n")
	if m.message != "script finished" {
		t.Fatalf("message = %q", m.message)
	}
}

func TestDumpKey(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "p")
	if m.err != nil {
		t.Fatalf("dump: %v", m.err)
	}
	if _, err := os.Stat(filepath.Join(m.dumpDir, "scr00000.bmp")); err != nil {
		t.Fatalf("dump file: %v", err)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestMouseSelectsAndDrags(t *testing.T) {
	m, mgr := newTestModel(t)
	scale := m.canvas.scale

	// Row 0 is the status line.
	next, _ := m.Update(tea.MouseMsg{X: 2 / scale, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(model)
	if _, name := m.session.Selected(); name != "left" {
		t.Fatalf("click selected %q", name)
	}
	next, _ = m.Update(tea.MouseMsg{X: 10 / scale, Y: 1, Action: tea.MouseActionRelease})
	m = next.(model)
	if r, _ := mgr.Rect(1); r.Left == 0 {
		t.Fatalf("drag did not move window: %v", r)
	}
}
