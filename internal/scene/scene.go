// Package scene describes windows and scripted steps in YAML and plays them
// against a gnw.Manager.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/gnw/internal/gnw"
	"gopkg.in/yaml.v3"
)

// Color is a palette index, a theme slot ("theme:N") or "texture".
type Color int

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", value.Line)
	}
	s := strings.ToLower(strings.TrimSpace(value.Value))
	switch {
	case s == "texture":
		*c = Color(gnw.ColorTexture)
		return nil
	case strings.HasPrefix(s, "theme:"):
		i, err := strconv.Atoi(strings.TrimPrefix(s, "theme:"))
		if err != nil || i < 0 || i >= len(gnw.Theme{}) {
			return fmt.Errorf("line %d: theme slot must be 0-%d", value.Line, len(gnw.Theme{})-1)
		}
		*c = Color(gnw.ThemeColor(i))
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 255 {
		return fmt.Errorf("line %d: color %q must be 0-255, theme:N or texture", value.Line, value.Value)
	}
	*c = Color(v)
	return nil
}

// Flags is a list of window flag names.
type Flags []string

func (f Flags) value() (gnw.Flag, error) {
	var out gnw.Flag
	for _, name := range f {
		v, ok := gnw.ParseFlag(name)
		if !ok {
			return 0, fmt.Errorf("unknown flag %q", name)
		}
		out |= v
	}
	return out, nil
}

type FillOp struct {
	X      int   `yaml:"x"`
	Y      int   `yaml:"y"`
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Color  Color `yaml:"color"`
}

type LineOp struct {
	X1    int   `yaml:"x1"`
	Y1    int   `yaml:"y1"`
	X2    int   `yaml:"x2"`
	Y2    int   `yaml:"y2"`
	Color Color `yaml:"color"`
}

type BoxOp struct {
	Left   int   `yaml:"left"`
	Top    int   `yaml:"top"`
	Right  int   `yaml:"right"`
	Bottom int   `yaml:"bottom"`
	Color  Color `yaml:"color"`
	// Dark, when set, draws a shaded box with Color on the light edges.
	Dark *Color `yaml:"dark"`
}

// DrawOp is one drawing call; exactly one field is set.
type DrawOp struct {
	Fill *FillOp `yaml:"fill"`
	Line *LineOp `yaml:"line"`
	Box  *BoxOp  `yaml:"box"`
}

// ButtonSpec is a button with solid color images.
type ButtonSpec struct {
	Name    string `yaml:"name"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Normal  int    `yaml:"normal"`
	Pressed *int   `yaml:"pressed"`
	Hover   *int   `yaml:"hover"`
	Toggle  bool   `yaml:"toggle"`
	// Round masks out the four corner pixels.
	Round   bool   `yaml:"round"`
}

type WindowSpec struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Color  Color  `yaml:"color"`
	Flags  Flags  `yaml:"flags"`
	// TransparentKey replaces the see-through index of a transparent window.
	TransparentKey *int         `yaml:"transparent_key"`
	Border         bool         `yaml:"border"`
	Draw           []DrawOp     `yaml:"draw"`
	Buttons        []ButtonSpec `yaml:"buttons"`
	Show           bool         `yaml:"show"`
}

type MoveStep struct {
	Window string `yaml:"window"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

type FillStep struct {
	Window string `yaml:"window"`
	FillOp `yaml:",inline"`
}

type ButtonRef struct {
	Button string `yaml:"button"`
}

// Step is one scripted action; exactly one field is set.
type Step struct {
	Move       *MoveStep  `yaml:"move"`
	Drag       *MoveStep  `yaml:"drag"`
	Show       *string    `yaml:"show"`
	Hide       *string    `yaml:"hide"`
	Raise      *string    `yaml:"raise"`
	Delete     *string    `yaml:"delete"`
	Draw       *string    `yaml:"draw"`
	Fill       *FillStep  `yaml:"fill"`
	Background *int       `yaml:"background"`
	Press      *ButtonRef `yaml:"press"`
	Release    *ButtonRef `yaml:"release"`
}

func (s Step) kind() (string, error) {
	set := map[string]bool{
		"move":       s.Move != nil,
		"drag":       s.Drag != nil,
		"show":       s.Show != nil,
		"hide":       s.Hide != nil,
		"raise":      s.Raise != nil,
		"delete":     s.Delete != nil,
		"draw":       s.Draw != nil,
		"fill":       s.Fill != nil,
		"background": s.Background != nil,
		"press":      s.Press != nil,
		"release":    s.Release != nil,
	}
	found := ""
	for name, ok := range set {
		if !ok {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("step sets both %s and %s", found, name)
		}
		found = name
	}
	if found == "" {
		return "", errors.New("empty step")
	}
	return found, nil
}

// Scene is a parsed scene file.
type Scene struct {
	Background *int         `yaml:"background"`
	// Theme replaces the six theme colors before any window is created.
	Theme      []int        `yaml:"theme"`
	Windows    []WindowSpec `yaml:"windows"`
	Steps      []Step       `yaml:"steps"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene strictly and checks names and step shapes.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func checkIndex(what string, v *int) error {
	if v != nil && (*v < 0 || *v > 255) {
		return fmt.Errorf("%s %d must be 0-255", what, *v)
	}
	return nil
}

func (s *Scene) validate() error {
	if err := checkIndex("background", s.Background); err != nil {
		return err
	}
	if s.Theme != nil {
		if len(s.Theme) != len(gnw.Theme{}) {
			return fmt.Errorf("theme needs %d colors, got %d", len(gnw.Theme{}), len(s.Theme))
		}
		for i := range s.Theme {
			if err := checkIndex("theme color", &s.Theme[i]); err != nil {
				return err
			}
		}
	}
	names := make(map[string]bool)
	buttons := make(map[string]bool)
	for i, w := range s.Windows {
		if w.Name == "" {
			return fmt.Errorf("windows[%d]: name is required", i)
		}
		if names[w.Name] {
			return fmt.Errorf("windows[%d]: duplicate name %q", i, w.Name)
		}
		names[w.Name] = true
		if w.Width <= 0 || w.Height <= 0 {
			return fmt.Errorf("window %q: width and height must be > 0", w.Name)
		}
		if _, err := w.Flags.value(); err != nil {
			return fmt.Errorf("window %q: %w", w.Name, err)
		}
		if err := checkIndex("transparent_key", w.TransparentKey); err != nil {
			return fmt.Errorf("window %q: %w", w.Name, err)
		}
		for j, op := range w.Draw {
			n := 0
			for _, set := range []bool{op.Fill != nil, op.Line != nil, op.Box != nil} {
				if set {
					n++
				}
			}
			if n != 1 {
				return fmt.Errorf("window %q: draw[%d] must set exactly one of fill, line, box", w.Name, j)
			}
		}
		for j, b := range w.Buttons {
			if b.Name == "" {
				return fmt.Errorf("window %q: buttons[%d]: name is required", w.Name, j)
			}
			if buttons[b.Name] {
				return fmt.Errorf("window %q: duplicate button %q", w.Name, b.Name)
			}
			buttons[b.Name] = true
			if b.Width <= 0 || b.Height <= 0 {
				return fmt.Errorf("button %q: width and height must be > 0", b.Name)
			}
			for _, c := range []*int{&b.Normal, b.Pressed, b.Hover} {
				if err := checkIndex("button color", c); err != nil {
					return fmt.Errorf("button %q: %w", b.Name, err)
				}
			}
		}
	}

	for i, st := range s.Steps {
		kind, err := st.kind()
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		var ref string
		switch kind {
		case "background":
			if err := checkIndex("background", st.Background); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
			continue
		case "move":
			ref = st.Move.Window
		case "drag":
			ref = st.Drag.Window
		case "show":
			ref = *st.Show
		case "hide":
			ref = *st.Hide
		case "raise":
			ref = *st.Raise
		case "delete":
			ref = *st.Delete
		case "draw":
			ref = *st.Draw
		case "fill":
			ref = st.Fill.Window
		case "press", "release":
			b := st.Press
			if b == nil {
				b = st.Release
			}
			if !buttons[b.Button] {
				return fmt.Errorf("steps[%d]: unknown button %q", i, b.Button)
			}
			continue
		default:
			continue
		}
		if !names[ref] {
			return fmt.Errorf("steps[%d]: unknown window %q", i, ref)
		}
	}
	return nil
}
