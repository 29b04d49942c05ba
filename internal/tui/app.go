package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/screenscape/internal/config"
	"github.com/1broseidon/screenscape/internal/layout"
)

// loadFunc returns the current configuration from wherever it lives.
type loadFunc func() (*config.LoadResult, error)

// model is the root bubbletea model for the planner.
type model struct {
	load    loadFunc
	seed    []config.DisplayConfig
	logger  *slog.Logger
	watcher *configWatcher

	cfg   *config.Config
	state layout.State

	keys keyMap
	help help.Model
	form *editForm

	selected string
	hovered  string
	status   string
	lastErr  string

	// Terminal dimensions
	width  int
	height int
}

func newModel(load loadFunc, seed []config.DisplayConfig, watcher *configWatcher, logger *slog.Logger) model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := model{
		load:    load,
		seed:    seed,
		logger:  logger,
		watcher: watcher,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	if err := m.reload(); err != nil {
		m.cfg = config.DefaultConfig()
		m.state = m.cfg.State()
		m.selected = "A"
	}
	return m
}

// reload re-reads the configuration and rebuilds the plan from it. On error
// the current plan is kept and the error is shown in the status line.
func (m *model) reload() error {
	res, err := m.load()
	if err != nil {
		m.lastErr = err.Error()
		m.logger.Warn("config load failed", "error", err)
		return err
	}
	cfg := res.Config
	if len(m.seed) > 0 {
		cfg.ApplyDetected(m.seed)
	}

	canvas := m.state.Viewport.Canvas
	m.cfg = cfg
	m.state = layout.Resize(cfg.State(), canvas.W, canvas.H)
	m.lastErr = ""

	if _, ok := m.state.Display(m.selected); !ok {
		m.selected = ""
		if ds := m.state.Displays(); len(ds) > 0 {
			m.selected = ds[0].Label()
		}
	}
	m.hovered = ""

	if m.watcher != nil {
		if err := m.watcher.Watch(res.Files); err != nil {
			m.logger.Warn("config watch failed", "error", err)
		}
	}
	m.logger.Info("config loaded", "files", len(res.Files), "displays", len(cfg.Displays))
	return nil
}

func (m model) cellSize() (w, h float64) {
	w, h = 8, 16
	if m.cfg != nil && m.cfg.CellWidth > 0 && m.cfg.CellHeight > 0 {
		w, h = float64(m.cfg.CellWidth), float64(m.cfg.CellHeight)
	}
	return w, h
}

// panelHeight is the number of lines below the canvas: zoom slider, summary
// header, one row per display, total, status and help.
func (m model) panelHeight() int {
	helpLines := 1
	if m.help.ShowAll {
		for _, col := range m.keys.FullHelp() {
			helpLines = max(helpLines, len(col))
		}
	}
	return 4 + len(m.state.Displays()) + helpLines
}

// canvasRows returns the height of the drawing area in cells.
func (m model) canvasRows() int {
	return max(1, m.height-m.panelHeight())
}

func (m model) sliderRow() int {
	return m.canvasRows()
}

// resize records the canvas size in scene pixels.
func (m *model) resize() {
	cw, ch := m.cellSize()
	m.state = layout.Resize(m.state, float64(m.width)*cw, float64(m.canvasRows())*ch)
}

// pointer converts a cell position into the scene pixel at its center.
func (m model) pointer(col, row int) (px, py float64) {
	cw, ch := m.cellSize()
	return (float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.Next()
	}
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		if m.form != nil {
			_, cmd := m.form.Update(msg)
			return m, cmd
		}
		return m, nil

	case configChangedMsg:
		if err := m.reload(); err == nil {
			m.resize()
			m.status = "reloaded " + msg.path
		}
		return m, m.watcher.Next()
	}

	// The edit form captures all input while open; only ctrl+c escapes to quit.
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}
	return m, nil
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.form = nil
			m.status = "edit cancelled"
			return m, nil
		}
	}
	done, cmd := m.form.Update(msg)
	if !done {
		return m, cmd
	}
	if m.form.Completed() {
		m.state = m.form.Apply(m.state)
		m.status = "updated display " + m.form.label
		m.logger.Debug("display edited", "label", m.form.label)
	}
	m.form = nil
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		idx := int(msg.String()[0] - '1')
		if ds := m.state.Displays(); idx >= 0 && idx < len(ds) {
			m.selected = ds[idx].Label()
		}

	case key.Matches(msg, m.keys.Toggle):
		if d, ok := m.state.Display(m.selected); ok {
			if drag, dragging := m.state.Dragging(); dragging && drag.Label == d.Label() {
				m.state = layout.EndDrag(m.state)
			}
			m.state = layout.SetEnabled(m.state, d.Label(), !d.Enabled)
		}

	case key.Matches(msg, m.keys.Rotate):
		m.state = layout.Rotate(m.state, m.selected)

	case key.Matches(msg, m.keys.Edit):
		if d, ok := m.state.Display(m.selected); ok {
			m.state = layout.EndDrag(m.state)
			m.form = newEditForm(d, m.width)
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.ZoomIn):
		m.state = layout.SetZoom(m.state, layout.StepZoom(m.state.Viewport.Zoom, 1))

	case key.Matches(msg, m.keys.ZoomOut):
		m.state = layout.SetZoom(m.state, layout.StepZoom(m.state.Viewport.Zoom, -1))

	case key.Matches(msg, m.keys.ZoomReset):
		m.state = layout.SetZoom(m.state, layout.DefaultZoom)

	case key.Matches(msg, m.keys.Reload):
		if err := m.reload(); err == nil {
			m.resize()
			m.status = "config reloaded"
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.state = layout.SetZoom(m.state, layout.StepZoom(m.state.Viewport.Zoom, 1))
		return m
	case tea.MouseButtonWheelDown:
		m.state = layout.SetZoom(m.state, layout.StepZoom(m.state.Viewport.Zoom, -1))
		return m
	}

	// Outside the canvas: pointer-leave semantics, plus the zoom slider.
	if msg.Y < 0 || msg.Y >= m.canvasRows() || msg.X < 0 || msg.X >= m.width {
		if _, dragging := m.state.Dragging(); dragging {
			m.state = layout.EndDrag(m.state)
			m.logger.Debug("drag ended", "reason", "left canvas")
		}
		m.hovered = ""
		if msg.Y == m.sliderRow() && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if z, ok := sliderZoomAt(msg.X, m.width); ok {
				m.state = layout.SetZoom(m.state, z)
			}
		}
		return m
	}

	px, py := m.pointer(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		var hit layout.Hit
		m.state, hit = layout.PointerDown(m.state, px, py)
		if hit.Kind != layout.HitNone {
			m.selected = hit.Label
			m.logger.Debug("pointer down", "label", hit.Label, "hit", hit.Kind.String())
		}
	case tea.MouseActionMotion:
		m.state = layout.ContinueDrag(m.state, px, py)
		m.hovered = layout.HitTest(m.state, px, py).Label
	case tea.MouseActionRelease:
		m.state = layout.EndDrag(m.state)
	}
	return m
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.form != nil {
		return m.viewEditing()
	}

	cw, ch := m.cellSize()
	canvas := drawCanvas(m.state, m.width, m.canvasRows(), cw, ch, m.selected, m.hovered)

	return lipgloss.JoinVertical(lipgloss.Left,
		canvas.render(),
		renderSlider(m.state.Viewport.Zoom, m.width),
		renderSummary(layout.Summarize(m.state), m.selected, layout.TotalArea(m.state), m.width),
		renderStatus(m.status, m.lastErr, m.width),
		m.help.View(m.keys),
	)
}

func (m model) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Display "+m.form.label) +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(1, 2)

	return style.Render(header + "\n\n" + m.form.View())
}
