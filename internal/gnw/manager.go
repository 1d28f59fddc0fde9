// Package gnw is a retained-mode window compositor for palette-indexed
// screens. Windows own private pixel buffers; the Manager keeps them in
// z-order and repaints only the parts of a dirty rectangle that are not
// covered by windows above.
//
// A Manager is single-threaded. Operations on unknown window ids, or on a
// closed Manager, do nothing.
package gnw

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/1broseidon/gnw/internal/grbuf"
	"github.com/1broseidon/gnw/internal/palette"
	"github.com/1broseidon/gnw/internal/rect"
)

// MaxWindows bounds the registry, root window included.
const MaxWindows = 50

// Screen is the display surface repaints end up on.
type Screen interface {
	// Bounds is the screen rectangle; its top-left is (0, 0).
	Bounds() rect.Rect
	// Blit copies sr of src to the screen with its top-left at (dx, dy).
	Blit(src *grbuf.Buffer, sr rect.Rect, dx, dy int)
}

// Cursor is a software pointer drawn on the screen outside every window
// buffer. Repaints treat it as the topmost occluder.
type Cursor interface {
	Hidden() bool
	Rect() rect.Rect
	Intersects(r rect.Rect) bool
	Show()
}

// ButtonRefresher redraws a window's buttons into its buffer. r is a
// visible fragment in screen coordinates, about to be copied out.
type ButtonRefresher interface {
	RefreshButtons(w *Window, r rect.Rect)
}

// ButtonReleaser is implemented by button sets that hold per-window state.
type ButtonReleaser interface {
	ReleaseWindow(id int)
}

// Manager owns the window registry and the repaint engine.
type Manager struct {
	screen Screen
	bounds rect.Rect

	// windows is in z-order, bottom first; windows[0] is the root.
	windows []*Window
	// index maps id to position in windows, -1 when unused.
	index [MaxWindows]int

	pool *rect.Pool

	back      *grbuf.Buffer
	buffering bool
	scratch   *grbuf.Buffer

	background   byte
	defaultFlags Flag
	texture      *grbuf.Buffer
	theme        Theme
	lighten      *[256]byte

	cursor  Cursor
	buttons ButtonRefresher

	rng    *rand.Rand
	logger *slog.Logger
	closed bool
}

type options struct {
	backBuffer   bool
	defaultFlags Flag
	poolLimit    int
	theme        Theme
	lighten      *[256]byte
	buttons      ButtonRefresher
	seed         int64
	logger       *slog.Logger
}

// Option configures a Manager at construction.
type Option func(*options)

// WithBackBuffer allocates a screen-sized composition buffer. Buffering
// stays off until SetBuffering(true).
func WithBackBuffer() Option {
	return func(o *options) { o.backBuffer = true }
}

// WithDefaultFlags sets the flags windows created with FlagUseDefaults
// receive.
func WithDefaultFlags(f Flag) Option {
	return func(o *options) { o.defaultFlags = f }
}

// WithPoolLimit caps how many rectangle nodes repaint may allocate.
func WithPoolLimit(n int) Option {
	return func(o *options) { o.poolLimit = n }
}

func WithTheme(t Theme) Option {
	return func(o *options) { o.theme = t }
}

// WithLightenTable sets the table Border uses to brighten its bevel.
func WithLightenTable(t *[256]byte) Option {
	return func(o *options) { o.lighten = t }
}

func WithButtons(b ButtonRefresher) Option {
	return func(o *options) { o.buttons = b }
}

// WithSeed seeds the per-window texture phases.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Manager drawing to screen. The root window, id 0, covers
// the whole screen and paints the background color.
func New(screen Screen, opts ...Option) (*Manager, error) {
	if screen == nil {
		return nil, errors.New("nil screen")
	}
	bounds := screen.Bounds()
	if bounds.Empty() || bounds.Left != 0 || bounds.Top != 0 {
		return nil, fmt.Errorf("unusable screen bounds %v", bounds)
	}

	o := options{theme: DefaultTheme, seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.lighten == nil {
		o.lighten = palette.Default().LightenTable()
	}

	m := &Manager{
		screen:       screen,
		bounds:       bounds,
		pool:         rect.NewPool(o.poolLimit),
		defaultFlags: o.defaultFlags,
		theme:        o.theme,
		lighten:      o.lighten,
		buttons:      o.buttons,
		rng:          rand.New(rand.NewSource(o.seed)),
		logger:       o.logger,
	}
	for i := range m.index {
		m.index[i] = -1
	}

	var err error
	m.scratch, err = grbuf.New(bounds.Width(), bounds.Height())
	if err != nil {
		return nil, fmt.Errorf("allocate scratch buffer: %w", err)
	}
	if o.backBuffer {
		m.back, err = grbuf.New(bounds.Width(), bounds.Height())
		if err != nil {
			return nil, fmt.Errorf("allocate back buffer: %w", err)
		}
	}

	root := &Window{
		id:     0,
		rect:   bounds,
		width:  bounds.Width(),
		height: bounds.Height(),
	}
	m.windows = append(m.windows, root)
	m.index[0] = 0

	m.logger.Debug("window manager initialized",
		"width", bounds.Width(),
		"height", bounds.Height(),
		"back_buffer", m.back != nil)
	return m, nil
}

// Close frees every window and buffer. The Manager is unusable afterwards.
func (m *Manager) Close() {
	if !m.active() {
		return
	}
	for i := len(m.windows) - 1; i >= 0; i-- {
		m.free(m.windows[i])
	}
	m.windows = nil
	for i := range m.index {
		m.index[i] = -1
	}
	m.texture = nil
	m.back = nil
	m.scratch = nil
	m.buffering = false
	m.pool.Close()
	m.closed = true
	m.logger.Debug("window manager closed")
}

func (m *Manager) active() bool {
	return m != nil && !m.closed
}

// free releases what the window owns.
func (m *Manager) free(w *Window) {
	if r, ok := m.buttons.(ButtonReleaser); ok {
		r.ReleaseWindow(w.id)
	}
	w.buf = nil
	w.blitter = nil
}

// Bounds is the screen rectangle.
func (m *Manager) Bounds() rect.Rect { return m.bounds }

// SetBuffering turns composition through the back buffer on or off. It has
// no effect without WithBackBuffer.
func (m *Manager) SetBuffering(on bool) {
	if !m.active() || m.back == nil {
		return
	}
	m.buffering = on
}

func (m *Manager) Buffering() bool { return m.active() && m.buffering }

// BackBuffer returns the composition buffer, or nil.
func (m *Manager) BackBuffer() *grbuf.Buffer {
	if !m.active() {
		return nil
	}
	return m.back
}

// SetBackground changes the color the root window paints and redraws it.
func (m *Manager) SetBackground(c byte) {
	if !m.active() {
		return
	}
	m.background = c
	m.Draw(0)
}

func (m *Manager) Background() byte { return m.background }

// SetTexture installs the texture ColorTexture fills paint with. Windows
// already filled keep their pixels.
func (m *Manager) SetTexture(tex *grbuf.Buffer) {
	if !m.active() {
		return
	}
	m.texture = tex
}

// NoTexture drops the texture and restores the default theme.
func (m *Manager) NoTexture() {
	if !m.active() {
		return
	}
	m.texture = nil
	m.theme = DefaultTheme
}

// SetTheme replaces the colors ThemeColor values resolve to. Windows
// already drawn keep their pixels.
func (m *Manager) SetTheme(t Theme) {
	if !m.active() {
		return
	}
	m.theme = t
}

func (m *Manager) Theme() Theme { return m.theme }

// SetCursor installs the software cursor repaints clip around. nil removes
// it.
func (m *Manager) SetCursor(c Cursor) {
	if !m.active() {
		return
	}
	m.cursor = c
}

func (m *Manager) cursorShown() bool {
	return m.cursor != nil && !m.cursor.Hidden()
}
