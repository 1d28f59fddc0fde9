package gnw

import (
	"strconv"
	"strings"
)

// Flag controls how a window is placed and composited.
type Flag uint32

const (
	// FlagUseDefaults ORs in the manager's default flags at Add time.
	FlagUseDefaults Flag = 0x1
	// FlagDontMoveTop keeps Show from raising the window.
	FlagDontMoveTop Flag = 0x2
	// FlagMoveOnTop keeps the window above every window without it.
	FlagMoveOnTop Flag = 0x4
	FlagHidden    Flag = 0x8
	FlagModal     Flag = 0x10
	// FlagTransparent composites the window through its Blitter while
	// buffering is on.
	FlagTransparent Flag = 0x20
	// FlagManaged windows are nudged right by two pixels and snapped to a
	// four pixel grid horizontally when moved.
	FlagManaged Flag = 0x100
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagUseDefaults, "use_defaults"},
	{FlagDontMoveTop, "dont_move_top"},
	{FlagMoveOnTop, "move_on_top"},
	{FlagHidden, "hidden"},
	{FlagModal, "modal"},
	{FlagTransparent, "transparent"},
	{FlagManaged, "managed"},
}

// ParseFlag maps a lower-case flag name to its value.
func ParseFlag(name string) (Flag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range flagNames {
		if f.name == name {
			return f.flag, true
		}
	}
	return 0, false
}

// FlagNames lists every accepted flag name.
func FlagNames() []string {
	out := make([]string, 0, len(flagNames))
	for _, f := range flagNames {
		out = append(out, f.name)
	}
	return out
}

func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(f), 16))
	}
	return strings.Join(parts, "|")
}
