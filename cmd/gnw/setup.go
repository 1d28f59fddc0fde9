package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/gnw/internal/button"
	"github.com/1broseidon/gnw/internal/config"
	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/palette"
	"github.com/1broseidon/gnw/internal/scene"
)

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func newLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// env is everything a subcommand needs to play a scene.
type env struct {
	cfg     *config.Config
	pal     *palette.Palette
	logger  *slog.Logger
	scene   *scene.Scene
	buttons *button.List
}

// loadEnv loads the config and scene. Logs go to logOut.
func loadEnv(configPath, scenePath string, logOut io.Writer) (*env, error) {
	res, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	cfg := res.Config
	pal, err := cfg.LoadPalette()
	if err != nil {
		return nil, err
	}
	sc, err := scene.Load(scenePath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, logOut)
	return &env{
		cfg:     cfg,
		pal:     pal,
		logger:  logger,
		scene:   sc,
		buttons: button.NewList(logger.With("component", "button")),
	}, nil
}

// newManager builds a manager on screen and applies the configured
// buffering, background and texture.
func (e *env) newManager(screen gnw.Screen) (*gnw.Manager, error) {
	opts := e.cfg.ManagerOptions(e.pal, e.logger.With("component", "gnw"))
	opts = append(opts, gnw.WithButtons(e.buttons))
	m, err := gnw.New(screen, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start window manager: %w", err)
	}
	e.buttons.Attach(m)

	tex, err := e.cfg.LoadTexture()
	if err != nil {
		m.Close()
		return nil, err
	}
	if tex != nil {
		m.SetTexture(tex)
	}
	m.SetBuffering(e.cfg.Buffering)
	m.SetBackground(byte(e.cfg.BackgroundColor))
	return m, nil
}
