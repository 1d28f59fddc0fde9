package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/palette"
)

// Flags returns default_flags as a flag set. Unknown names are ignored;
// Validate reports them.
func (c *Config) Flags() gnw.Flag {
	var f gnw.Flag
	for _, name := range c.DefaultFlags {
		if v, ok := gnw.ParseFlag(name); ok {
			f |= v
		}
	}
	return f
}

func (c *Config) ThemeValue() gnw.Theme {
	t := gnw.DefaultTheme
	for i := range t {
		if i < len(c.Theme) {
			t[i] = byte(c.Theme[i])
		}
	}
	return t
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadPalette reads the configured .PAL file, or returns the built-in
// palette when none is set.
func (c *Config) LoadPalette() (*palette.Palette, error) {
	if c.Palette == "" {
		return palette.Default(), nil
	}
	return palette.LoadPAL(c.Palette)
}

// LoadTexture reads the texture file: raw palette indices, texture_width
// per row. It returns nil when no texture is configured.
func (c *Config) LoadTexture() (*grbuf.Buffer, error) {
	if c.Texture == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Texture)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture %s: %w", c.Texture, err)
	}
	w := c.TextureWidth
	if w <= 0 || len(data) == 0 || len(data)%w != 0 {
		return nil, fmt.Errorf("texture %s: %d bytes is not a whole number of %d pixel rows", c.Texture, len(data), w)
	}
	return grbuf.Wrap(data, w, len(data)/w, w)
}

// ManagerOptions translates the config into gnw options. pal drives the
// lighten table Border uses.
func (c *Config) ManagerOptions(pal *palette.Palette, logger *slog.Logger) []gnw.Option {
	opts := []gnw.Option{
		gnw.WithDefaultFlags(c.Flags()),
		gnw.WithPoolLimit(c.RectPoolLimit),
		gnw.WithTheme(c.ThemeValue()),
		gnw.WithSeed(c.Seed),
	}
	if c.BackBuffer {
		opts = append(opts, gnw.WithBackBuffer())
	}
	if pal != nil {
		opts = append(opts, gnw.WithLightenTable(pal.LightenTable()))
	}
	if logger != nil {
		opts = append(opts, gnw.WithLogger(logger))
	}
	return opts
}
