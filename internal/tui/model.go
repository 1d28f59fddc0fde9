package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/gnw/internal/palette"
	"github.com/1broseidon/gnw/internal/platform"
	"github.com/1broseidon/gnw/internal/scene"
	"github.com/1broseidon/gnw/internal/screendump"
)

const (
	sidebarWidth = 26
	// moveStep is how far the arrow keys move a window, in pixels.
	moveStep = 8
)

// windowItem implements list.Item for the window sidebar.
type windowItem struct {
	id       int
	name     string
	hidden   bool
	selected bool
}

func (i windowItem) Title() string {
	prefix := "  "
	if i.selected {
		prefix = "* "
	}
	suffix := ""
	if i.hidden {
		suffix = " (hidden)"
	}
	return fmt.Sprintf("%s%s #%d%s", prefix, i.name, i.id, suffix)
}

func (i windowItem) Description() string { return "" }
func (i windowItem) FilterValue() string { return i.name }

var (
	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// model is the bubbletea model of the explorer.
type model struct {
	session *scene.Session
	screen  *platform.MemoryScreen
	rend    *renderer
	dumpDir string
	pal     *palette.Palette
	logger  *slog.Logger

	keys keyMap
	help help.Model
	list list.Model

	canvas  canvas
	message string
	err     error

	width  int
	height int
}

func newModel(opts Options) model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := model{
		session: opts.Session,
		screen:  opts.Screen,
		rend:    newRenderer(opts.Palette),
		dumpDir: opts.DumpDir,
		pal:     opts.Palette,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		list:    l,
	}
	m.refreshList()
	return m
}

// refreshList rebuilds the sidebar from the manager's z-order, top first.
func (m *model) refreshList() {
	mgr := m.session.Manager()
	sel, _ := m.session.Selected()
	ids := mgr.IDs()

	items := make([]list.Item, 0, len(ids))
	cursor := 0
	for i := len(ids) - 1; i > 0; i-- {
		w := mgr.Find(ids[i])
		if ids[i] == sel {
			cursor = len(items)
		}
		items = append(items, windowItem{
			id:       ids[i],
			name:     m.name(ids[i]),
			hidden:   w.Hidden(),
			selected: ids[i] == sel,
		})
	}
	m.list.SetItems(items)
	m.list.Select(cursor)
}

func (m model) name(id int) string {
	if n := m.session.Name(id); n != "" {
		return n
	}
	return "window"
}

func (m *model) resize() {
	m.list.SetSize(sidebarWidth, max(m.height-2, 1))
	m.help.Width = m.width
	fb := m.screen.Framebuffer()
	m.canvas = fit(fb.Width, fb.Height, m.width-sidebarWidth-1, m.height-2)
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		m.message = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			m.session.Next()
		case key.Matches(msg, m.keys.Prev):
			m.session.Prev()
		case key.Matches(msg, m.keys.Up):
			m.session.MoveBy(0, -moveStep)
		case key.Matches(msg, m.keys.Down):
			m.session.MoveBy(0, moveStep)
		case key.Matches(msg, m.keys.Left):
			m.session.MoveBy(-moveStep, 0)
		case key.Matches(msg, m.keys.Right):
			m.session.MoveBy(moveStep, 0)
		case key.Matches(msg, m.keys.Hide):
			m.session.ToggleHidden()
		case key.Matches(msg, m.keys.Raise):
			m.session.Raise()
		case key.Matches(msg, m.keys.Delete):
			m.session.Delete()
		case key.Matches(msg, m.keys.Step):
			ran, err := m.session.Step()
			m.err = err
			if !ran {
				m.message = "script finished"
			}
		case key.Matches(msg, m.keys.Dump):
			m.dump()
		}
		m.refreshList()
		return m, nil

	case tea.MouseMsg:
		x, y, ok := m.mousePixel(msg.X, msg.Y)
		if !ok && msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.session.Press(x, y)
			}
		case tea.MouseActionMotion:
			m.session.Motion(x, y)
		case tea.MouseActionRelease:
			m.session.Release(x, y)
		}
		m.refreshList()
		return m, nil
	}
	return m, nil
}

// mousePixel maps a terminal cell to a framebuffer pixel.
func (m model) mousePixel(col, row int) (int, int, bool) {
	row--
	if col < 0 || row < 0 || col >= m.canvas.cols || row >= m.canvas.rows {
		return 0, 0, false
	}
	x, y := m.canvas.pixel(col, row)
	return x, y, true
}

func (m *model) dump() {
	buf, err := screendump.Capture(m.session.Manager())
	if err != nil {
		m.err = err
		return
	}
	path, err := screendump.WriteNext(m.dumpDir, buf, m.pal)
	if err != nil {
		m.err = err
		return
	}
	m.logger.Info("screen dumped", "path", path)
	m.message = "wrote " + path
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	line := m.session.Status()
	switch {
	case m.err != nil:
		line += "  " + errorStyle.Render(m.err.Error())
	case m.message != "":
		line += "  " + m.message
	}
	status := statusStyle.Width(m.width).Render(line)

	screen := m.rend.render(m.screen.Framebuffer(), m.canvas)
	body := lipgloss.JoinHorizontal(lipgloss.Top, screen, " ", m.list.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		body,
		m.help.View(m.keys),
	)
}
