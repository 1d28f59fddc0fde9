package palette

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLayout(t *testing.T) {
	p := Default()
	if p[0] != (color.RGBA{A: 0xff}) {
		t.Fatalf("index 0 = %v, want black", p[0])
	}
	if p[196] != (color.RGBA{R: 255, A: 0xff}) {
		t.Fatalf("index 196 = %v, want pure red", p[196])
	}
	if p[255] != (color.RGBA{R: 238, G: 238, B: 238, A: 0xff}) {
		t.Fatalf("index 255 = %v", p[255])
	}
}

func TestParsePALScalesComponents(t *testing.T) {
	data := make([]byte, PALSize)
	data[3], data[4], data[5] = 63, 32, 0
	data[6] = 200

	p, err := ParsePAL(data)
	if err != nil {
		t.Fatalf("ParsePAL: %v", err)
	}
	if p[1] != (color.RGBA{R: 252, G: 128, B: 0, A: 0xff}) {
		t.Fatalf("entry 1 = %v", p[1])
	}
	if p[2].R != 252 {
		t.Fatalf("out of range component should clamp, got %d", p[2].R)
	}

	if _, err := ParsePAL(data[:10]); !errors.Is(err, ErrBadPAL) {
		t.Fatalf("expected ErrBadPAL, got %v", err)
	}
}

func TestLoadPAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.pal")
	if err := os.WriteFile(path, make([]byte, PALSize), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPAL(path); err != nil {
		t.Fatalf("LoadPAL: %v", err)
	}
	if _, err := LoadPAL(filepath.Join(t.TempDir(), "missing.pal")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLightenTableBrightens(t *testing.T) {
	p := Default()
	table := p.LightenTable()

	if table[15] != 15 {
		t.Fatalf("white should stay white, got %d", table[15])
	}
	lum := func(c color.RGBA) int { return int(c.R) + int(c.G) + int(c.B) }
	for _, idx := range []int{232, 240, 244} {
		if lum(p[table[idx]]) <= lum(p[idx]) {
			t.Fatalf("index %d did not get brighter (-> %d)", idx, table[idx])
		}
	}
}

func TestExpandBGRX(t *testing.T) {
	p := Default()
	dst := make([]byte, 8)
	p.Expand(dst, []byte{9, 12})
	want := []byte{0, 0, 255, 0, 255, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (got %v)", i, dst[i], want[i], dst)
		}
	}
}
