package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

const testConfig = `screen:
  width: 64
  height: 48
background_color: 4
log_level: error
cursor:
  enabled: true
  x: 60
  y: 40
dump_dir: dumps
`

const testScene = `windows:
  - {name: box, x: 8, y: 8, width: 16, height: 16, color: 9, show: true}
steps:
  - move: {window: box, x: 20, y: 10}
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunRenderWritesBMP(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", testConfig)
	sc := writeFile(t, dir, "scene.yaml", testScene)
	out := filepath.Join(dir, "out.bmp")

	if rc := runRender([]string{"--config", cfg, "--scene", sc, "--out", out}); rc != 0 {
		t.Fatalf("runRender rc=%d, want 0", rc)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}
	// Index 9 is red, index 4 navy.
	if r, g, _, _ := img.At(25, 15).RGBA(); r>>8 != 255 || g != 0 {
		t.Fatalf("moved window pixel = %v", img.At(25, 15))
	}
	if _, _, b, _ := img.At(10, 9).RGBA(); b>>8 != 128 {
		t.Fatalf("vacated pixel = %v, want background", img.At(10, 9))
	}
	// The cursor outline sits at its hot spot.
	if r, g, b, _ := img.At(60, 40).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Fatalf("cursor pixel = %v, want black outline", img.At(60, 40))
	}
}

func TestRunDumpUsesConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", testConfig)
	sc := writeFile(t, dir, "scene.yaml", testScene)
	if err := os.Mkdir(filepath.Join(dir, "dumps"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	for i := 0; i < 2; i++ {
		if rc := runDump([]string{"--config", cfg, "--scene", sc}); rc != 0 {
			t.Fatalf("runDump rc=%d, want 0", rc)
		}
	}
	for _, name := range []string{"scr00000.bmp", "scr00001.bmp"} {
		if _, err := os.Stat(filepath.Join(dir, "dumps", name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestRunRenderUsage(t *testing.T) {
	if rc := runRender(nil); rc != 2 {
		t.Fatalf("missing --scene rc=%d, want 2", rc)
	}
	if rc := runRender([]string{"--help"}); rc != 0 {
		t.Fatalf("--help rc=%d, want 0", rc)
	}
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", testConfig)
	bad := writeFile(t, dir, "bad.yaml", "windows:\n  - {name: a, width: 0, height: 1}\n")
	if rc := runRender([]string{"--config", cfg, "--scene", bad}); rc != 1 {
		t.Fatalf("bad scene rc=%d, want 1", rc)
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", testConfig)
	bad := writeFile(t, dir, "bad.yaml", "screen:\n  width: -1\n")

	if rc := runConfig([]string{"validate", "--path", cfg}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"validate", "--path", bad}); rc != 1 {
		t.Fatalf("validate bad rc=%d, want 1", rc)
	}
	if rc := runConfig([]string{"print", "--defaults"}); rc != 0 {
		t.Fatalf("print rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"explain", "--path", cfg, "screen.width"}); rc != 0 {
		t.Fatalf("explain rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"frobnicate"}); rc != 2 {
		t.Fatalf("unknown subcommand rc=%d, want 2", rc)
	}
}
