package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if !e.Source.IsDefault() && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw over DefaultConfig. The cursor starts at
// the center of the configured screen unless its position is set.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Screen != nil {
		cfg.Screen.Width = derefInt(raw.Screen.Width, cfg.Screen.Width)
		cfg.Screen.Height = derefInt(raw.Screen.Height, cfg.Screen.Height)
	}
	cfg.Cursor.X = cfg.Screen.Width / 2
	cfg.Cursor.Y = cfg.Screen.Height / 2

	if raw.BackBuffer != nil {
		cfg.BackBuffer = *raw.BackBuffer
	}
	if raw.Buffering != nil {
		cfg.Buffering = *raw.Buffering
	}
	if raw.DefaultFlags != nil {
		cfg.DefaultFlags = append([]string(nil), (*raw.DefaultFlags)...)
	}
	if raw.BackgroundColor != nil {
		cfg.BackgroundColor = *raw.BackgroundColor
	}
	if raw.Theme != nil {
		cfg.Theme = append([]int(nil), (*raw.Theme)...)
	}
	if raw.Palette != nil {
		cfg.Palette = *raw.Palette
	}
	if raw.Texture != nil {
		cfg.Texture = *raw.Texture
	}
	if raw.TextureWidth != nil {
		cfg.TextureWidth = *raw.TextureWidth
	}
	if raw.RectPoolLimit != nil {
		cfg.RectPoolLimit = *raw.RectPoolLimit
	}
	if raw.Seed != nil {
		cfg.Seed = *raw.Seed
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Cursor != nil {
		if raw.Cursor.Enabled != nil {
			cfg.Cursor.Enabled = *raw.Cursor.Enabled
		}
		cfg.Cursor.X = derefInt(raw.Cursor.X, cfg.Cursor.X)
		cfg.Cursor.Y = derefInt(raw.Cursor.Y, cfg.Cursor.Y)
	}
	if raw.X11 != nil {
		if raw.X11.Display != nil {
			cfg.X11.Display = *raw.X11.Display
		}
		if raw.X11.Title != nil {
			cfg.X11.Title = *raw.X11.Title
		}
		cfg.X11.Scale = derefInt(raw.X11.Scale, cfg.X11.Scale)
	}
	if raw.DumpDir != nil {
		cfg.DumpDir = *raw.DumpDir
	}

	if cfg.LogLevel == "warn" {
		cfg.LogLevel = "warning"
	}
	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
