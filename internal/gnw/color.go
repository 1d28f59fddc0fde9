package gnw

// ColorTexture as a fill color paints the background texture, or Theme[0]
// when no texture is installed.
const ColorTexture = 256

// Theme is the six palette indices themed colors resolve to. Index 0 is the
// window face, 1 and 2 are the light and dark bevel.
type Theme [6]byte

// DefaultTheme indexes the xterm-256 layout used by palette.Default.
var DefaultTheme = Theme{239, 244, 238, 248, 227, 196}

// ThemeColor returns the color argument that resolves to Theme[i].
func ThemeColor(i int) int {
	return 0x100 | (i + 1)
}

// resolve maps a color argument to a palette index. texture is true when
// the texture sentinel applies and a texture is installed.
func (m *Manager) resolve(c int) (idx byte, texture bool) {
	if c == ColorTexture {
		if m.texture != nil {
			return 0, true
		}
		return m.theme[0], false
	}
	if c&0xFF00 != 0 {
		i := (c & 0xFF) - 1
		if i < 0 || i >= len(m.theme) {
			return m.theme[0], false
		}
		return m.theme[i], false
	}
	return byte(c), false
}
