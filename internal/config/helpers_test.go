package config

import (
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

type nullScreen struct{ w, h int }

func (s *nullScreen) Bounds() rect.Rect { return rect.FromSize(0, 0, s.w, s.h) }
func (s *nullScreen) Blit(*grbuf.Buffer, rect.Rect, int, int) {}
