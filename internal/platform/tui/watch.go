package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-life/internal/life"
	"github.com/vovakirdan/tui-life/internal/shapes"
)

// Watch layout and speed limits.
const (
	chromeLines     = 2 // status line + help line
	minTickRate     = 1
	maxTickRate     = 60
	defaultTickRate = 10
	fallbackColumns = 40
	fallbackRows    = 20
)

// WatchOptions configures a watch session.
type WatchOptions struct {
	Columns  int           // 0 = follow the window width
	Rows     int           // 0 = follow the window height
	Shape    *shapes.Shape // Seed pattern, nil for an empty field
	TickRate int           // Generations per second
}

// WatchModel animates one grid. It is the only owner of the grid.
type WatchModel struct {
	grid     *life.Grid
	shape    *shapes.Shape
	fitWidth bool
	fitRows  bool
	tickRate int
	paused   bool
	keys     WatchKeyMap
	help     help.Model
	quitting bool
}

// NewWatchModel creates a watch model seeded with opts.Shape.
func NewWatchModel(opts WatchOptions) (WatchModel, error) {
	columns, rows := opts.Columns, opts.Rows
	m := WatchModel{
		shape:    opts.Shape,
		fitWidth: columns <= 0,
		fitRows:  rows <= 0,
		tickRate: clampTickRate(opts.TickRate),
		keys:     DefaultWatchKeyMap(),
		help:     help.New(),
	}
	if m.fitWidth {
		columns = fallbackColumns
	}
	if m.fitRows {
		rows = fallbackRows
	}

	if opts.Shape != nil && !m.fitWidth && !m.fitRows && !opts.Shape.Fits(columns, rows) {
		return WatchModel{}, fmt.Errorf("shape %q (%dx%d) does not fit into a %dx%d field",
			opts.Shape.Name, opts.Shape.Columns, opts.Shape.Rows, columns, rows)
	}

	grid, err := life.New(columns, rows)
	if err != nil {
		return WatchModel{}, err
	}
	m.grid = grid
	m.seed()
	return m, nil
}

func clampTickRate(rate int) int {
	switch {
	case rate <= 0:
		return defaultTickRate
	case rate > maxTickRate:
		return maxTickRate
	}
	return rate
}

// seed clears the grid and places the shape centered when it fits.
func (m *WatchModel) seed() {
	m.grid.Clear()
	if m.shape != nil && m.shape.Fits(m.grid.Columns(), m.grid.Rows()) {
		m.grid.PlaceShape(m.shape.Cells, m.shape.Columns, m.shape.Rows)
	}
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if !m.paused {
			m.grid.Next()
		}
		return m, tickCmd(m.tickRate)
	}
	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.grid.Next()
		}
	case key.Matches(msg, m.keys.Clear):
		m.grid.Clear()
	case key.Matches(msg, m.keys.Reseed):
		m.seed()
	case key.Matches(msg, m.keys.Faster):
		m.tickRate = min(m.tickRate+1, maxTickRate)
	case key.Matches(msg, m.keys.Slower):
		m.tickRate = max(m.tickRate-1, minTickRate)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleResize follows the window in the dimensions that were left at 0.
// A grid that has not evolved yet is reseeded so the shape stays centered.
func (m WatchModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.help.Width = msg.Width
	if !m.fitWidth && !m.fitRows {
		return m, nil
	}

	columns, rows := m.grid.Columns(), m.grid.Rows()
	if m.fitWidth {
		columns = max(msg.Width, 1)
	}
	if m.fitRows {
		rows = max(msg.Height-chromeLines, 1)
	}
	if err := m.grid.Resize(columns, rows); err != nil {
		return m, nil
	}
	if m.grid.Generations() == 0 {
		m.seed()
	}
	return m, nil
}

// View renders the status line, the board and the help line.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.statusLine())
	sb.WriteRune('\n')
	sb.WriteString(RenderBoard(m.grid))
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m WatchModel) statusLine() string {
	status := fmt.Sprintf("generation %d  population %d  %d gen/s  %dx%d",
		m.grid.Generations(), m.grid.Len(), m.tickRate, m.grid.Columns(), m.grid.Rows())
	if m.paused {
		return statusStyle.Render(status) + " " + pausedStyle.Render("PAUSED")
	}
	return statusStyle.Render(status)
}

// Grid returns the animated grid.
func (m WatchModel) Grid() *life.Grid {
	return m.grid
}

// TickRate returns the current speed in generations per second.
func (m WatchModel) TickRate() int {
	return m.tickRate
}

// Paused reports whether the animation is paused.
func (m WatchModel) Paused() bool {
	return m.paused
}

// IsQuitting returns true if the user requested to quit.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}
