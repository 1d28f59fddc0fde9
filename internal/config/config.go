package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/gnw/internal/gnw"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScreenWidth  = 640
	DefaultScreenHeight = 480
	DefaultTitle        = "gnw"
	maxScreenSide       = 4096
	maxScale            = 8
)

// ScreenConfig is the size of the palette framebuffer.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CursorConfig controls the software pointer.
type CursorConfig struct {
	Enabled bool `yaml:"enabled"`
	X       int  `yaml:"x"`
	Y       int  `yaml:"y"`
}

// X11Config controls the X11 presenter window.
type X11Config struct {
	Display string `yaml:"display"`
	Title   string `yaml:"title"`
	Scale   int    `yaml:"scale"`
}

// Config is the effective configuration.
type Config struct {
	Screen          ScreenConfig `yaml:"screen"`
	BackBuffer      bool         `yaml:"back_buffer"`
	Buffering       bool         `yaml:"buffering"`
	DefaultFlags    []string     `yaml:"default_flags"`
	BackgroundColor int          `yaml:"background_color"`
	Theme           []int        `yaml:"theme"`
	// Palette is a .PAL file; empty means the built-in palette.
	Palette       string       `yaml:"palette,omitempty"`
	Texture       string       `yaml:"texture,omitempty"`
	TextureWidth  int          `yaml:"texture_width,omitempty"`
	RectPoolLimit int          `yaml:"rect_pool_limit"`
	Seed          int64        `yaml:"seed"`
	LogLevel      string       `yaml:"log_level"`
	Cursor        CursorConfig `yaml:"cursor"`
	X11           X11Config    `yaml:"x11"`
	DumpDir       string       `yaml:"dump_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Screen: ScreenConfig{
			Width:  DefaultScreenWidth,
			Height: DefaultScreenHeight,
		},
		BackBuffer:      true,
		Buffering:       false,
		DefaultFlags:    []string{},
		BackgroundColor: 0,
		Theme:           defaultTheme(),
		Seed:            1,
		LogLevel:        "info",
		Cursor: CursorConfig{
			Enabled: true,
			X:       DefaultScreenWidth / 2,
			Y:       DefaultScreenHeight / 2,
		},
		X11: X11Config{
			Title: DefaultTitle,
			Scale: 1,
		},
		DumpDir: ".",
	}
}

func defaultTheme() []int {
	out := make([]int, len(gnw.DefaultTheme))
	for i, c := range gnw.DefaultTheme {
		out[i] = int(c)
	}
	return out
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Width > maxScreenSide {
		return &ValidationError{Path: "screen.width", Err: fmt.Errorf("width must be between 1 and %d", maxScreenSide)}
	}
	if c.Screen.Height <= 0 || c.Screen.Height > maxScreenSide {
		return &ValidationError{Path: "screen.height", Err: fmt.Errorf("height must be between 1 and %d", maxScreenSide)}
	}
	if c.Buffering && !c.BackBuffer {
		return &ValidationError{Path: "buffering", Err: fmt.Errorf("buffering requires back_buffer")}
	}
	for _, name := range c.DefaultFlags {
		if _, ok := gnw.ParseFlag(name); !ok {
			return &ValidationError{Path: "default_flags", Err: fmt.Errorf("unknown flag %q (known: %s)", name, strings.Join(gnw.FlagNames(), ", "))}
		}
	}
	if !isIndex(c.BackgroundColor) {
		return &ValidationError{Path: "background_color", Err: fmt.Errorf("background_color must be a palette index 0-255")}
	}
	if len(c.Theme) != len(gnw.Theme{}) {
		return &ValidationError{Path: "theme", Err: fmt.Errorf("theme must list %d palette indices", len(gnw.Theme{}))}
	}
	for i, v := range c.Theme {
		if !isIndex(v) {
			return &ValidationError{Path: "theme", Err: fmt.Errorf("theme[%d] must be a palette index 0-255", i)}
		}
	}
	if c.Texture != "" && c.TextureWidth <= 0 {
		return &ValidationError{Path: "texture", Err: fmt.Errorf("texture_width must be > 0 when texture is set")}
	}
	if c.RectPoolLimit < 0 {
		return &ValidationError{Path: "rect_pool_limit", Err: fmt.Errorf("rect_pool_limit must be >= 0")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Cursor.X < 0 || c.Cursor.X >= c.Screen.Width || c.Cursor.Y < 0 || c.Cursor.Y >= c.Screen.Height {
		return &ValidationError{Path: "cursor", Err: fmt.Errorf("cursor position must be on screen")}
	}
	if c.X11.Scale < 1 || c.X11.Scale > maxScale {
		return &ValidationError{Path: "x11.scale", Err: fmt.Errorf("scale must be between 1 and %d", maxScale)}
	}
	if strings.TrimSpace(c.DumpDir) == "" {
		return &ValidationError{Path: "dump_dir", Err: fmt.Errorf("dump_dir must not be empty")}
	}
	return nil
}

func isIndex(v int) bool { return v >= 0 && v <= 255 }

// Marshal renders the effective config as YAML. Comments and includes from
// the source files are not preserved.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
