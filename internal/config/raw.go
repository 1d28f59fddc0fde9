package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawScreen struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawCursor struct {
	Enabled *bool `yaml:"enabled"`
	X       *int  `yaml:"x"`
	Y       *int  `yaml:"y"`
}

type RawX11 struct {
	Display *string `yaml:"display"`
	Title   *string `yaml:"title"`
	Scale   *int    `yaml:"scale"`
}

// RawConfig is one file's worth of settings. Nil fields were not set.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Screen          *RawScreen `yaml:"screen"`
	BackBuffer      *bool      `yaml:"back_buffer"`
	Buffering       *bool      `yaml:"buffering"`
	DefaultFlags    *[]string  `yaml:"default_flags"`
	BackgroundColor *int       `yaml:"background_color"`
	Theme           *[]int     `yaml:"theme"`
	Palette         *string    `yaml:"palette"`
	Texture         *string    `yaml:"texture"`
	TextureWidth    *int       `yaml:"texture_width"`
	RectPoolLimit   *int       `yaml:"rect_pool_limit"`
	Seed            *int64     `yaml:"seed"`
	LogLevel        *string    `yaml:"log_level"`
	Cursor          *RawCursor `yaml:"cursor"`
	X11             *RawX11    `yaml:"x11"`
	DumpDir         *string    `yaml:"dump_dir"`
}

// merge returns c with every field set in overlay replaced.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	if overlay.Screen != nil {
		out.Screen = mergeRawScreen(c.Screen, overlay.Screen)
	}
	if overlay.BackBuffer != nil {
		out.BackBuffer = overlay.BackBuffer
	}
	if overlay.Buffering != nil {
		out.Buffering = overlay.Buffering
	}
	if overlay.DefaultFlags != nil {
		out.DefaultFlags = overlay.DefaultFlags
	}
	if overlay.BackgroundColor != nil {
		out.BackgroundColor = overlay.BackgroundColor
	}
	if overlay.Theme != nil {
		out.Theme = overlay.Theme
	}
	if overlay.Palette != nil {
		out.Palette = overlay.Palette
	}
	if overlay.Texture != nil {
		out.Texture = overlay.Texture
	}
	if overlay.TextureWidth != nil {
		out.TextureWidth = overlay.TextureWidth
	}
	if overlay.RectPoolLimit != nil {
		out.RectPoolLimit = overlay.RectPoolLimit
	}
	if overlay.Seed != nil {
		out.Seed = overlay.Seed
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Cursor != nil {
		out.Cursor = mergeRawCursor(c.Cursor, overlay.Cursor)
	}
	if overlay.X11 != nil {
		out.X11 = mergeRawX11(c.X11, overlay.X11)
	}
	if overlay.DumpDir != nil {
		out.DumpDir = overlay.DumpDir
	}
	return out
}

func mergeRawScreen(base, overlay *RawScreen) *RawScreen {
	out := RawScreen{}
	if base != nil {
		out = *base
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return &out
}

func mergeRawCursor(base, overlay *RawCursor) *RawCursor {
	out := RawCursor{}
	if base != nil {
		out = *base
	}
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	return &out
}

func mergeRawX11(base, overlay *RawX11) *RawX11 {
	out := RawX11{}
	if base != nil {
		out = *base
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Title != nil {
		out.Title = overlay.Title
	}
	if overlay.Scale != nil {
		out.Scale = overlay.Scale
	}
	return &out
}
