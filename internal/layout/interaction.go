package layout

// HitKind says which part of a display a pointer landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitRotate
)

func (k HitKind) String() string {
	switch k {
	case HitBody:
		return "body"
	case HitRotate:
		return "rotate"
	default:
		return "none"
	}
}

// Hit is the result of a pointer hit test.
type Hit struct {
	Label string
	Kind  HitKind
}

// HitTest finds the topmost display under a screen-space point. The rotate
// affordance of a display wins over its own body.
func HitTest(s State, px, py float64) Hit {
	p := Point{X: px, Y: py}
	items := BuildScene(s).Items
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if it.RotateHandle.Contains(p) {
			return Hit{Label: it.Label, Kind: HitRotate}
		}
		if it.Bounds.Contains(p) {
			return Hit{Label: it.Label, Kind: HitBody}
		}
	}
	return Hit{}
}

// PointerDown dispatches a press on the canvas: the rotate affordance rotates
// without starting a drag, a display body starts a drag, empty space does
// nothing.
func PointerDown(s State, px, py float64) (State, Hit) {
	hit := HitTest(s, px, py)
	switch hit.Kind {
	case HitRotate:
		return Rotate(s, hit.Label), hit
	case HitBody:
		return BeginDrag(s, hit.Label, px, py), hit
	}
	return s, hit
}

// BeginDrag starts dragging a display from a screen-space pointer position
// and brings it to the front of the render sequence.
func BeginDrag(s State, label string, px, py float64) State {
	d, ok := s.Display(label)
	if !ok || !d.Enabled {
		return s
	}
	zoom := ClampZoom(s.Viewport.Zoom)
	top := s.topZ()
	if d.ZOrder != top || s.zTied(label, top) {
		s = s.update(label, func(front *Display) { front.ZOrder = top + 1 })
	}
	s.drag = &Drag{
		Label: label,
		Offset: Point{
			X: px/zoom - d.Position.X,
			Y: py/zoom - d.Position.Y,
		},
	}
	return s
}

// ContinueDrag moves the dragged display so the pointer keeps its offset.
// There is no clamping; displays may leave the canvas.
func ContinueDrag(s State, px, py float64) State {
	if s.drag == nil {
		return s
	}
	zoom := ClampZoom(s.Viewport.Zoom)
	drag := *s.drag
	return SetPosition(s, drag.Label, Point{
		X: px/zoom - drag.Offset.X,
		Y: py/zoom - drag.Offset.Y,
	})
}

// EndDrag returns to idle, keeping the last computed position.
func EndDrag(s State) State {
	s.drag = nil
	return s
}

func (s State) zTied(label string, z int) bool {
	for _, d := range s.displays {
		if d.label != label && d.ZOrder == z {
			return true
		}
	}
	return false
}
