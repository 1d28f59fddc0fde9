package gnw

import (
	"testing"

	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

func TestThemedColorsResolve(t *testing.T) {
	theme := Theme{10, 11, 12, 13, 14, 15}
	m, _ := newTestManager(t, 50, 50, WithTheme(theme))

	id := mustAdd(t, m, 0, 0, 4, 4, ThemeColor(2), 0)
	if got := m.Buffer(id).At(0, 0); got != 12 {
		t.Fatalf("themed fill = %d, want 12", got)
	}

	tex := mustAdd(t, m, 0, 0, 4, 4, ColorTexture, 0)
	if got := m.Buffer(tex).At(1, 1); got != 10 {
		t.Fatalf("texture fill without texture = %d, want Theme[0]", got)
	}

	m.Line(id, 0, 3, 3, 3, ThemeColor(5))
	if got := m.Buffer(id).At(2, 3); got != 15 {
		t.Fatalf("themed line = %d, want 15", got)
	}
}

func TestTextureFill(t *testing.T) {
	m, _ := newTestManager(t, 50, 50)
	tex, _ := grbuf.New(3, 3)
	for i := range tex.Pix {
		tex.Pix[i] = byte(100 + i)
	}
	m.SetTexture(tex)

	id := mustAdd(t, m, 0, 0, 8, 8, ColorTexture, 0)
	if m.Find(id).Color() != ColorTexture {
		t.Fatalf("window color = %d, want texture sentinel", m.Find(id).Color())
	}
	seen := map[byte]bool{}
	for _, c := range m.Buffer(id).Pix {
		if c < 100 || c > 108 {
			t.Fatalf("pixel %d not from texture", c)
		}
		seen[c] = true
	}
	if len(seen) != 9 {
		t.Fatalf("expected every texel to appear, saw %d", len(seen))
	}

	m.NoTexture()
	m.Fill(id, 0, 0, 8, 8, ColorTexture)
	if got := m.Buffer(id).At(0, 0); got != DefaultTheme[0] {
		t.Fatalf("fill after NoTexture = %d, want %d", got, DefaultTheme[0])
	}
}

func TestBoxNormalizesCorners(t *testing.T) {
	m, _ := newTestManager(t, 50, 50)
	id := mustAdd(t, m, 0, 0, 10, 10, 0, 0)

	m.Box(id, 8, 8, 1, 1, 5)
	buf := m.Buffer(id)
	for _, p := range [][2]int{{1, 1}, {8, 1}, {1, 8}, {8, 8}, {4, 1}, {1, 4}} {
		if buf.At(p[0], p[1]) != 5 {
			t.Fatalf("box edge (%d,%d) not drawn", p[0], p[1])
		}
	}
	if buf.At(4, 4) != 0 {
		t.Fatalf("box interior drawn")
	}
}

func TestShadedBoxAndFill(t *testing.T) {
	m, _ := newTestManager(t, 50, 50)
	id := mustAdd(t, m, 0, 0, 10, 10, 0, 0)

	m.Fill(id, 2, 2, 3, 3, 9)
	m.ShadedBox(id, rect.Rect{Left: 0, Top: 0, Right: 9, Bottom: 9}, 1, 2)
	buf := m.Buffer(id)
	if buf.At(3, 3) != 9 || buf.At(5, 5) != 0 {
		t.Fatalf("fill wrong")
	}
	if buf.At(5, 0) != 1 || buf.At(5, 9) != 2 {
		t.Fatalf("shaded box wrong")
	}
}

func TestBorder(t *testing.T) {
	var table [256]byte
	for i := range table {
		table[i] = byte(i + 1)
	}
	theme := Theme{20, 21, 22, 23, 24, 25}
	m, _ := newTestManager(t, 100, 100, WithTheme(theme), WithLightenTable(&table))
	id := mustAdd(t, m, 0, 0, 30, 20, 50, 0)

	m.Border(id)
	buf := m.Buffer(id)

	if buf.At(0, 0) != 0 || buf.At(29, 19) != 0 {
		t.Fatalf("outer box not drawn")
	}
	if buf.At(1, 10) != 21 || buf.At(28, 10) != 22 {
		t.Fatalf("outer bevel = %d/%d", buf.At(1, 10), buf.At(28, 10))
	}
	if buf.At(5, 10) != 22 || buf.At(24, 10) != 21 {
		t.Fatalf("inner bevel = %d/%d", buf.At(5, 10), buf.At(24, 10))
	}
	if buf.At(3, 10) != 51 {
		t.Fatalf("frame not lightened: %d", buf.At(3, 10))
	}
	if buf.At(15, 10) != 50 {
		t.Fatalf("interior changed: %d", buf.At(15, 10))
	}
}

func TestFlagNames(t *testing.T) {
	f, ok := ParseFlag(" Move_On_Top ")
	if !ok || f != FlagMoveOnTop {
		t.Fatalf("ParseFlag = %v %v", f, ok)
	}
	if _, ok := ParseFlag("sticky"); ok {
		t.Fatalf("unknown flag accepted")
	}
	if got := (FlagHidden | FlagManaged | 0x40).String(); got != "hidden|managed|0x40" {
		t.Fatalf("String = %q", got)
	}
}
