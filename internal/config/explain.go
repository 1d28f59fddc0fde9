package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	screen.width
//	screen.height
//	back_buffer
//	buffering
//	default_flags
//	background_color
//	theme
//	theme.<index>
//	palette
//	texture
//	texture_width
//	rect_pool_limit
//	seed
//	log_level
//	cursor.enabled
//	cursor.x
//	x11.display
//	x11.scale
//	dump_dir
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	// theme.N comes from wherever the whole list was set.
	if strings.HasPrefix(path, "theme.") {
		if src, ok := res.Sources["theme"]; ok {
			return value, src, nil
		}
	}
	return value, Source{}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "screen":
		if len(parts) == 1 {
			return cfg.Screen, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "width":
			return cfg.Screen.Width, nil
		case "height":
			return cfg.Screen.Height, nil
		}
	case "back_buffer":
		return leaf(cfg.BackBuffer)
	case "buffering":
		return leaf(cfg.Buffering)
	case "default_flags":
		return leaf(cfg.DefaultFlags)
	case "background_color":
		return leaf(cfg.BackgroundColor)
	case "theme":
		if len(parts) == 1 {
			return cfg.Theme, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		var i int
		if _, err := fmt.Sscanf(parts[1], "%d", &i); err != nil || i < 0 || i >= len(cfg.Theme) {
			return nil, fmt.Errorf("theme index %q out of range", parts[1])
		}
		return cfg.Theme[i], nil
	case "palette":
		return leaf(cfg.Palette)
	case "texture":
		return leaf(cfg.Texture)
	case "texture_width":
		return leaf(cfg.TextureWidth)
	case "rect_pool_limit":
		return leaf(cfg.RectPoolLimit)
	case "seed":
		return leaf(cfg.Seed)
	case "log_level":
		return leaf(cfg.LogLevel)
	case "dump_dir":
		return leaf(cfg.DumpDir)
	case "cursor":
		if len(parts) == 1 {
			return cfg.Cursor, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "enabled":
			return cfg.Cursor.Enabled, nil
		case "x":
			return cfg.Cursor.X, nil
		case "y":
			return cfg.Cursor.Y, nil
		}
	case "x11":
		if len(parts) == 1 {
			return cfg.X11, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "display":
			return cfg.X11.Display, nil
		case "title":
			return cfg.X11.Title, nil
		case "scale":
			return cfg.X11.Scale, nil
		}
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
