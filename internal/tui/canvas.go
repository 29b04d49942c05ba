package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/1broseidon/screenscape/internal/layout"
)

const (
	canvasBackground = "#1F2937"
	labelForeground  = "#F9FAFB"
	fillBlend        = 0.25
	rotateGlyph      = '↻'
)

// cell is one terminal character of the canvas.
type cell struct {
	ch   rune
	fg   string
	bg   string
	bold bool
}

// grid maps scene pixels onto terminal cells. A cell belongs to a display
// when the pixel at its center lies inside the display's screen rectangle,
// the same test the pointer uses.
type grid struct {
	cols  int
	rows  int
	cellW float64
	cellH float64
	cells [][]cell
}

func newGrid(cols, rows int, cellW, cellH float64) grid {
	g := grid{cols: cols, rows: rows, cellW: cellW, cellH: cellH}
	g.cells = make([][]cell, rows)
	for r := range g.cells {
		g.cells[r] = make([]cell, cols)
		for c := range g.cells[r] {
			g.cells[r][c] = cell{ch: ' ', bg: canvasBackground}
		}
	}
	return g
}

// center returns the scene pixel at the middle of a cell.
func (g grid) center(col, row int) layout.Point {
	return layout.Point{
		X: (float64(col) + 0.5) * g.cellW,
		Y: (float64(row) + 0.5) * g.cellH,
	}
}

// cellAt returns the cell containing scene pixel p.
func (g grid) cellAt(p layout.Point) (col, row int) {
	return int(math.Floor(p.X / g.cellW)), int(math.Floor(p.Y / g.cellH))
}

func (g grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

func (g grid) covered(r layout.Rect, col, row int) bool {
	return r.Contains(g.center(col, row))
}

type borderSet struct {
	h, v, tl, tr, bl, br rune
}

var (
	thinBorder  = borderSet{h: '─', v: '│', tl: '┌', tr: '┐', bl: '└', br: '┘'}
	thickBorder = borderSet{h: '━', v: '┃', tl: '┏', tr: '┓', bl: '┗', br: '┛'}
)

// drawItem paints one display: tinted body, colored outline, centered caption.
func (g *grid) drawItem(it layout.Item, selected, hovered bool) {
	fill := blend(canvasBackground, it.Color, fillBlend)
	border := thinBorder
	if selected {
		border = thickBorder
	}

	c0, r0 := g.cellAt(layout.Point{X: it.Bounds.X, Y: it.Bounds.Y})
	c1, r1 := g.cellAt(layout.Point{X: it.Bounds.X + it.Bounds.W, Y: it.Bounds.Y + it.Bounds.H})
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, g.cols-1), min(r1, g.rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !g.covered(it.Bounds, col, row) {
				continue
			}
			left := !g.covered(it.Bounds, col-1, row)
			right := !g.covered(it.Bounds, col+1, row)
			top := !g.covered(it.Bounds, col, row-1)
			bottom := !g.covered(it.Bounds, col, row+1)

			ch := ' '
			switch {
			case top && left:
				ch = border.tl
			case top && right:
				ch = border.tr
			case bottom && left:
				ch = border.bl
			case bottom && right:
				ch = border.br
			case top || bottom:
				ch = border.h
			case left || right:
				ch = border.v
			}
			g.cells[row][col] = cell{ch: ch, fg: it.Color, bg: fill}
		}
	}

	g.drawText(it.Text, it.Bounds.Center(), labelForeground, fill)

	if hovered && !it.RotateHandle.Empty() {
		col, row := g.cellAt(it.RotateHandle.Center())
		if g.inBounds(col, row) {
			bg := g.cells[row][col].bg
			g.cells[row][col] = cell{ch: rotateGlyph, fg: it.Color, bg: bg, bold: true}
		}
	}
}

// drawText writes text centered on p. Labels are never rotated.
func (g *grid) drawText(text string, p layout.Point, fg, bg string) {
	runes := []rune(text)
	col, row := g.cellAt(p)
	start := col - len(runes)/2
	for i, ch := range runes {
		c := start + i
		if !g.inBounds(c, row) {
			continue
		}
		g.cells[row][c] = cell{ch: ch, fg: fg, bg: bg, bold: true}
	}
}

// render turns the grid into styled terminal lines, one style per run.
func (g grid) render() string {
	lines := make([]string, g.rows)
	for r, row := range g.cells {
		var sb strings.Builder
		start := 0
		for c := 1; c <= len(row); c++ {
			if c < len(row) && sameStyle(row[c], row[start]) {
				continue
			}
			run := make([]rune, 0, c-start)
			for _, cl := range row[start:c] {
				run = append(run, cl.ch)
			}
			sb.WriteString(cellStyle(row[start]).Render(string(run)))
			start = c
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// plain returns the grid's characters without styling.
func (g grid) plain() []string {
	lines := make([]string, g.rows)
	for r, row := range g.cells {
		run := make([]rune, len(row))
		for c, cl := range row {
			run[c] = cl.ch
		}
		lines[r] = string(run)
	}
	return lines
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func cellStyle(c cell) lipgloss.Style {
	style := lipgloss.NewStyle().Background(lipgloss.Color(c.bg)).Bold(c.bold)
	if c.fg != "" {
		style = style.Foreground(lipgloss.Color(c.fg))
	}
	return style
}

// blend mixes over into base by t and returns the hex result. Unparseable
// colors fall back to base.
func blend(base, over string, t float64) string {
	b, err := colorful.Hex(base)
	if err != nil {
		return base
	}
	o, err := colorful.Hex(over)
	if err != nil {
		return base
	}
	return b.BlendRgb(o, t).Clamped().Hex()
}

// drawCanvas composes the scene for s onto a cols×rows grid.
func drawCanvas(s layout.State, cols, rows int, cellW, cellH float64, selected, hovered string) grid {
	g := newGrid(cols, rows, cellW, cellH)
	for _, it := range layout.BuildScene(s).Items {
		g.drawItem(it, it.Label == selected, it.Label == hovered)
	}
	return g
}
