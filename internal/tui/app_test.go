package tui

import (
	"errors"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/screenscape/internal/config"
	"github.com/1broseidon/screenscape/internal/layout"
)

func defaultLoader() (*config.LoadResult, error) {
	return &config.LoadResult{Config: config.DefaultConfig()}, nil
}

// newTestModel returns a planner sized 100×40 cells: 31 canvas rows, so an
// 800×496 pixel canvas at the default 8×16 cell size.
func newTestModel(t *testing.T) model {
	t.Helper()
	m := newModel(defaultLoader, nil, nil, nil)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func display(t *testing.T, m model, label string) layout.Display {
	t.Helper()
	d, ok := m.state.Display(label)
	if !ok {
		t.Fatalf("display %s missing", label)
	}
	return d
}

func TestWindowSize_SetsCanvasInScenePixels(t *testing.T) {
	m := newTestModel(t)
	if m.canvasRows() != 31 {
		t.Fatalf("canvasRows=%d", m.canvasRows())
	}
	if got := m.state.Viewport.Canvas; got.W != 800 || got.H != 496 {
		t.Fatalf("canvas=%+v", got)
	}
}

func TestMouse_DragMovesDisplay(t *testing.T) {
	m := newTestModel(t)

	// Cell (10,5) centers on (84,88), inside A and clear of B.
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 5))
	drag, ok := m.state.Dragging()
	if !ok || drag.Label != "A" {
		t.Fatalf("expected drag on A, got %+v ok=%v", drag, ok)
	}
	if m.selected != "A" {
		t.Fatalf("selected=%q", m.selected)
	}
	if top := layout.RenderOrder(m.state); top[len(top)-1].Label() != "A" {
		t.Fatalf("expected A brought to front")
	}

	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonNone, 20, 10))
	if p := display(t, m, "A").Position; p.X != 130 || p.Y != 130 {
		t.Fatalf("position=%+v, want (130,130)", p)
	}

	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 20, 10))
	if _, ok := m.state.Dragging(); ok {
		t.Fatalf("expected idle after release")
	}

	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonNone, 30, 12))
	if p := display(t, m, "A").Position; p.X != 130 || p.Y != 130 {
		t.Fatalf("idle motion moved display: %+v", p)
	}
}

func TestMouse_LeavingCanvasEndsDrag(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 5))
	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonNone, 10, m.canvasRows()))
	if _, ok := m.state.Dragging(); ok {
		t.Fatalf("expected drag to end when the pointer leaves the canvas")
	}
	if p := display(t, m, "A").Position; p.X != 50 || p.Y != 50 {
		t.Fatalf("position changed: %+v", p)
	}
}

func TestMouse_RotateHandleRotatesWithoutDrag(t *testing.T) {
	m := newTestModel(t)

	// A's handle spans x 629.5-659.5, y 48-78; cell (79,3) centers on (636,56).
	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonNone, 79, 3))
	if m.hovered != "A" {
		t.Fatalf("hovered=%q", m.hovered)
	}
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 79, 3))
	if got := display(t, m, "A").Rotation; got != 90 {
		t.Fatalf("rotation=%d", got)
	}
	if _, ok := m.state.Dragging(); ok {
		t.Fatalf("rotate must not start a drag")
	}
}

func TestMouse_EmptySpaceIsNoop(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, 1))
	if _, ok := m.state.Dragging(); ok {
		t.Fatalf("unexpected drag")
	}
	if m.selected != "A" {
		t.Fatalf("selection changed to %q", m.selected)
	}
}

func TestMouse_WheelAndSliderZoom(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 10, 5))
	if z := m.state.Viewport.Zoom; z != 1.05 {
		t.Fatalf("zoom after wheel up=%v", z)
	}
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 10, 5))
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 10, 5))
	if z := m.state.Viewport.Zoom; z != 0.95 {
		t.Fatalf("zoom after wheel down=%v", z)
	}

	start, length := sliderTrack(m.width)
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, start, m.sliderRow()))
	if z := m.state.Viewport.Zoom; z != layout.MinZoom {
		t.Fatalf("zoom at track start=%v", z)
	}
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, start+length-1, m.sliderRow()))
	if z := m.state.Viewport.Zoom; z != layout.MaxZoom {
		t.Fatalf("zoom at track end=%v", z)
	}
	if p := display(t, m, "A").Position; p.X != 50 || p.Y != 50 {
		t.Fatalf("zoom changed position: %+v", p)
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyMsg("2"))
	if m.selected != "B" {
		t.Fatalf("selected=%q", m.selected)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if display(t, m, "B").Enabled {
		t.Fatalf("expected B disabled")
	}
	m = update(t, m, keyMsg("r"))
	m = update(t, m, keyMsg("r"))
	if got := display(t, m, "B").Rotation; got != 180 {
		t.Fatalf("rotation=%d", got)
	}

	m = update(t, m, keyMsg("+"))
	m = update(t, m, keyMsg("+"))
	if z := m.state.Viewport.Zoom; math.Abs(z-1.1) > 1e-9 {
		t.Fatalf("zoom=%v", z)
	}
	m = update(t, m, keyMsg("0"))
	if z := m.state.Viewport.Zoom; z != layout.DefaultZoom {
		t.Fatalf("zoom after reset=%v", z)
	}

	m = update(t, m, keyMsg("9"))
	if m.selected != "B" {
		t.Fatalf("unbound key changed selection to %q", m.selected)
	}
}

func TestKeys_EditOpensForm(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, keyMsg("3"))
	m = update(t, m, keyMsg("e"))
	if m.form == nil || m.form.label != "C" {
		t.Fatalf("expected edit form for C")
	}

	// Keys go to the form while it is open.
	m = update(t, m, keyMsg("r"))
	if got := display(t, m, "C").Rotation; got != 0 {
		t.Fatalf("rotate leaked through form: %d", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.form != nil {
		t.Fatalf("expected esc to close the form")
	}
}

func TestEditForm_Apply(t *testing.T) {
	s := config.DefaultConfig().State()
	d, _ := s.Display("C")

	f := newEditForm(d, 80)
	f.fEnabled = true
	f.fDiagonal = "abc"
	f.fAspect = string(layout.AspectCustom)
	f.fCustomW = "4"
	f.fCustomH = "3"
	s = f.Apply(s)

	got, _ := s.Display("C")
	if !got.Enabled || got.Diagonal != 0 || got.Aspect != layout.AspectCustom {
		t.Fatalf("unexpected C: %+v", got)
	}
	if got.Custom != (layout.Ratio{W: 4, H: 3}) {
		t.Fatalf("custom=%+v", got.Custom)
	}

	f = newEditForm(got, 80)
	f.fDiagonal = "24"
	f.fCustomW = "-1"
	s = f.Apply(s)
	got, _ = s.Display("C")
	if got.Diagonal != 24 || got.Custom != (layout.Ratio{W: 4, H: 3}) {
		t.Fatalf("invalid custom width should keep previous ratio: %+v", got)
	}
}

func TestReload_KeepsPlanOnError(t *testing.T) {
	fail := false
	load := func() (*config.LoadResult, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return defaultLoader()
	}
	m := newModel(load, nil, nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, keyMsg("r"))

	fail = true
	m = update(t, m, keyMsg("R"))
	if m.lastErr != "boom" {
		t.Fatalf("lastErr=%q", m.lastErr)
	}
	if got := display(t, m, "A").Rotation; got != 90 {
		t.Fatalf("plan was replaced on failed reload")
	}

	fail = false
	m = update(t, m, keyMsg("R"))
	if m.lastErr != "" {
		t.Fatalf("lastErr not cleared: %q", m.lastErr)
	}
	if got := display(t, m, "A").Rotation; got != 0 {
		t.Fatalf("expected fresh plan after reload, rotation=%d", got)
	}
	if got := m.state.Viewport.Canvas; got.W != 800 || got.H != 496 {
		t.Fatalf("canvas lost on reload: %+v", got)
	}
}

func TestSeed_ReplacesDisplays(t *testing.T) {
	seed := []config.DisplayConfig{
		{Label: "A", Enabled: true, Diagonal: 15.6, AspectRatio: "16:9", Color: "#3B82F6"},
	}
	m := newModel(defaultLoader, seed, nil, nil)
	if d := display(t, m, "A"); d.Diagonal != 15.6 {
		t.Fatalf("seed not applied: %+v", d)
	}
	if display(t, m, "B").Enabled {
		t.Fatalf("expected undetected B disabled")
	}
}

func TestView_RendersPanels(t *testing.T) {
	m := newTestModel(t)
	if m.View() == "" {
		t.Fatalf("empty view")
	}
	if newModel(defaultLoader, nil, nil, nil).View() != "" {
		t.Fatalf("expected empty view before the first size message")
	}
}
