package layout

import (
	"fmt"
	"strconv"
)

// Rotate affordance placement, in scene units relative to the display anchor.
const (
	handleInset = 28.0
	handleLift  = 2.0
	handleSize  = 30.0
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r (edges inclusive). An empty
// rectangle contains nothing.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) scale(k float64) Rect {
	return Rect{X: r.X * k, Y: r.Y * k, W: r.W * k, H: r.H * k}
}

// Item is one display as drawn, in final screen pixels.
type Item struct {
	Label    string
	Color    string
	Rotation int
	Text     string

	Bounds       Rect // after rotating about the center
	RotateHandle Rect // empty when the display has no area
}

// Scene is the fully composed frame: inches × Scale × Zoom.
type Scene struct {
	Scale float64
	Zoom  float64
	Items []Item // bottom to top
}

// BuildScene composes every enabled display into screen space.
func BuildScene(s State) Scene {
	scale := s.Scale()
	zoom := ClampZoom(s.Viewport.Zoom)
	order := RenderOrder(s)

	sc := Scene{Scale: scale, Zoom: zoom, Items: make([]Item, 0, len(order))}
	for _, d := range order {
		g := Derive(d)
		w, h := g.Width*scale, g.Height*scale
		body := Rect{X: d.Position.X, Y: d.Position.Y, W: w, H: h}

		bounds := body
		if d.Rotation == 90 || d.Rotation == 270 {
			c := body.Center()
			bounds = Rect{X: c.X - h/2, Y: c.Y - w/2, W: h, H: w}
		}

		var handle Rect
		if g.Area > 0 {
			handle = Rect{
				X: d.Position.X + w - handleInset,
				Y: d.Position.Y - handleLift,
				W: handleSize,
				H: handleSize,
			}
		}

		sc.Items = append(sc.Items, Item{
			Label:        d.label,
			Color:        d.color,
			Rotation:     d.Rotation,
			Text:         DisplayText(d),
			Bounds:       bounds.scale(zoom),
			RotateHandle: handle.scale(zoom),
		})
	}
	return sc
}

// DisplayText is the centered caption, e.g. `A: 27"`.
func DisplayText(d Display) string {
	return fmt.Sprintf("%s: %s\"", d.label, strconv.FormatFloat(d.Diagonal, 'f', -1, 64))
}
