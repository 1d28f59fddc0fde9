package scene

import (
	"fmt"

	"github.com/1broseidon/gnw/internal/button"
	"github.com/1broseidon/gnw/internal/gnw"
	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/rect"
)

// Result maps scene names to the ids they were given.
type Result struct {
	Windows map[string]int
	Buttons map[string]int
	// Order lists window names in the order they were created.
	Order []string
}

// Name returns the scene name of a window id.
func (r *Result) Name(id int) string {
	for name, wid := range r.Windows {
		if wid == id {
			return name
		}
	}
	return ""
}

// Apply creates the scene's windows and then runs every step. buttons may be
// nil when the scene declares no buttons.
func (s *Scene) Apply(m *gnw.Manager, buttons *button.List) (*Result, error) {
	res := &Result{
		Windows: make(map[string]int),
		Buttons: make(map[string]int),
	}
	if s.Theme != nil {
		var t gnw.Theme
		for i, c := range s.Theme {
			t[i] = byte(c)
		}
		m.SetTheme(t)
	}
	if s.Background != nil {
		m.SetBackground(byte(*s.Background))
	}
	for _, ws := range s.Windows {
		if err := s.addWindow(m, buttons, ws, res); err != nil {
			return res, err
		}
	}
	for i := range s.Steps {
		if err := s.RunStep(m, buttons, res, i); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Scene) addWindow(m *gnw.Manager, buttons *button.List, ws WindowSpec, res *Result) error {
	flags, err := ws.Flags.value()
	if err != nil {
		return fmt.Errorf("window %q: %w", ws.Name, err)
	}
	id, err := m.Add(ws.X, ws.Y, ws.Width, ws.Height, int(ws.Color), flags)
	if err != nil {
		return fmt.Errorf("window %q: %w", ws.Name, err)
	}
	res.Windows[ws.Name] = id
	res.Order = append(res.Order, ws.Name)

	if ws.TransparentKey != nil {
		m.SetBlitter(id, grbuf.Keyed{Key: byte(*ws.TransparentKey)})
	}
	if ws.Border {
		m.Border(id)
	}
	for _, op := range ws.Draw {
		switch {
		case op.Fill != nil:
			f := op.Fill
			m.Fill(id, f.X, f.Y, f.Width, f.Height, int(f.Color))
		case op.Line != nil:
			l := op.Line
			m.Line(id, l.X1, l.Y1, l.X2, l.Y2, int(l.Color))
		case op.Box != nil:
			b := op.Box
			if b.Dark != nil {
				m.ShadedBox(id, rect.Rect{Left: b.Left, Top: b.Top, Right: b.Right, Bottom: b.Bottom}, int(b.Color), int(*b.Dark))
			} else {
				m.Box(id, b.Left, b.Top, b.Right, b.Bottom, int(b.Color))
			}
		}
	}

	if len(ws.Buttons) > 0 && buttons == nil {
		return fmt.Errorf("window %q declares buttons but no button list was given", ws.Name)
	}
	for _, bs := range ws.Buttons {
		bid, err := addButton(buttons, id, bs)
		if err != nil {
			return fmt.Errorf("button %q: %w", bs.Name, err)
		}
		res.Buttons[bs.Name] = bid
	}

	if ws.Show {
		m.Show(id)
	}
	return nil
}

func addButton(l *button.List, win int, bs ButtonSpec) (int, error) {
	solid := func(c int) (*grbuf.Buffer, error) {
		b, err := grbuf.New(bs.Width, bs.Height)
		if err != nil {
			return nil, err
		}
		b.Fill(b.Bounds(), byte(c))
		return b, nil
	}
	var images button.Images
	var err error
	if images.Normal, err = solid(bs.Normal); err != nil {
		return gnw.InvalidID, err
	}
	if bs.Pressed != nil {
		if images.Pressed, err = solid(*bs.Pressed); err != nil {
			return gnw.InvalidID, err
		}
	}
	if bs.Hover != nil {
		if images.Hover, err = solid(*bs.Hover); err != nil {
			return gnw.InvalidID, err
		}
	}
	if bs.Round {
		mask, err := solid(1)
		if err != nil {
			return gnw.InvalidID, err
		}
		r := mask.Bounds()
		for _, p := range [][2]int{{r.Left, r.Top}, {r.Right, r.Top}, {r.Left, r.Bottom}, {r.Right, r.Bottom}} {
			mask.Set(p[0], p[1], 0)
		}
		images.Mask = mask
	}
	var flags button.Flag
	if bs.Toggle {
		flags |= button.FlagToggle
	}
	return l.Add(win, rect.FromSize(bs.X, bs.Y, bs.Width, bs.Height), images, flags)
}

// RunStep executes step i. Steps naming deleted windows are skipped.
func (s *Scene) RunStep(m *gnw.Manager, buttons *button.List, res *Result, i int) error {
	if i < 0 || i >= len(s.Steps) {
		return fmt.Errorf("step %d out of range", i)
	}
	st := s.Steps[i]
	win := func(name string) (int, bool) {
		id, ok := res.Windows[name]
		return id, ok
	}
	switch {
	case st.Move != nil:
		if id, ok := win(st.Move.Window); ok {
			m.Move(id, st.Move.X, st.Move.Y)
		}
	case st.Drag != nil:
		if id, ok := win(st.Drag.Window); ok {
			m.Drag(id, st.Drag.X, st.Drag.Y)
		}
	case st.Show != nil:
		if id, ok := win(*st.Show); ok {
			m.Show(id)
		}
	case st.Raise != nil:
		if id, ok := win(*st.Raise); ok {
			m.Show(id)
		}
	case st.Hide != nil:
		if id, ok := win(*st.Hide); ok {
			m.Hide(id)
		}
	case st.Draw != nil:
		if id, ok := win(*st.Draw); ok {
			m.Draw(id)
		}
	case st.Delete != nil:
		if id, ok := win(*st.Delete); ok {
			m.Delete(id)
			delete(res.Windows, *st.Delete)
		}
	case st.Fill != nil:
		if id, ok := win(st.Fill.Window); ok {
			f := st.Fill
			m.Fill(id, f.X, f.Y, f.Width, f.Height, int(f.Color))
		}
	case st.Background != nil:
		m.SetBackground(byte(*st.Background))
	case st.Press != nil || st.Release != nil:
		if buttons == nil {
			return fmt.Errorf("step %d: no button list", i)
		}
		ref := st.Press
		if ref == nil {
			ref = st.Release
		}
		bid, ok := res.Buttons[ref.Button]
		if !ok {
			return nil
		}
		if st.Press != nil {
			buttons.Press(bid)
		} else {
			buttons.Release(bid)
		}
	}
	return nil
}
