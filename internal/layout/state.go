package layout

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// MaxDisplays is the fixed number of displays a plan holds.
const MaxDisplays = 4

// Point is a position in scene units (pre-zoom pixels) or screen pixels.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Display is one virtual monitor in the plan. Label and color are fixed at
// creation; everything else is edited through the update functions.
type Display struct {
	label string
	color string

	Enabled  bool
	Diagonal float64
	Aspect   AspectRatio
	Custom   Ratio
	Rotation int   // 0, 90, 180 or 270
	Position Point // top-left anchor, scene units
	ZOrder   int   // render sequence; higher draws later (on top)
}

// NewDisplay creates an enabled 16:9 display with the given identity.
func NewDisplay(label, color string) Display {
	return Display{
		label:   label,
		color:   color,
		Enabled: true,
		Aspect:  Aspect16x9,
		Custom:  presetRatios[Aspect16x9],
	}
}

// Label returns the display's stable identifier.
func (d Display) Label() string { return d.label }

// Color returns the display's color tag.
func (d Display) Color() string { return d.color }

// ActiveRatio returns the custom pair for AspectCustom, else the preset pair.
func (d Display) ActiveRatio() Ratio {
	if d.Aspect == AspectCustom {
		return d.Custom
	}
	return presetRatios[d.Aspect]
}

// NormalizeRotation maps any angle to the nearest of 0, 90, 180, 270.
func NormalizeRotation(deg int) int {
	steps := int(math.Round(float64(deg) / 90))
	return ((steps%4)+4)%4*90
}

// Drag is the in-flight pointer drag.
type Drag struct {
	Label  string
	Offset Point
}

// State is the whole planner model. Update functions take a State by value
// and return the next one; the receiver is never modified.
type State struct {
	displays []Display
	Viewport Viewport
	drag     *Drag
}

// NewState creates a state holding the given displays, in that storage order.
// Render sequence starts out matching storage order.
func NewState(displays ...Display) State {
	if len(displays) > MaxDisplays {
		displays = displays[:MaxDisplays]
	}
	ds := make([]Display, len(displays))
	for i, d := range displays {
		d.Rotation = NormalizeRotation(d.Rotation)
		d.ZOrder = i
		ds[i] = d
	}
	return State{
		displays: ds,
		Viewport: Viewport{Zoom: DefaultZoom},
	}
}

// Displays returns a copy of all displays in storage order.
func (s State) Displays() []Display {
	out := make([]Display, len(s.displays))
	copy(out, s.displays)
	return out
}

// Display looks up a display by label.
func (s State) Display(label string) (Display, bool) {
	for _, d := range s.displays {
		if d.label == label {
			return d, true
		}
	}
	return Display{}, false
}

// Dragging returns the active drag, if any.
func (s State) Dragging() (Drag, bool) {
	if s.drag == nil {
		return Drag{}, false
	}
	return *s.drag, true
}

// Scale returns the auto-fit scale for the current displays and canvas.
func (s State) Scale() float64 {
	return AutoFitScale(s.displays, s.Viewport.Canvas)
}

// FitScale returns the auto-fit scale and whether it is the fallback.
func (s State) FitScale() (float64, bool) {
	return FitScale(s.displays, s.Viewport.Canvas)
}

// update returns a copy of s with fn applied to the named display.
func (s State) update(label string, fn func(*Display)) State {
	ds := make([]Display, len(s.displays))
	copy(ds, s.displays)
	for i := range ds {
		if ds[i].label == label {
			fn(&ds[i])
		}
	}
	s.displays = ds
	return s
}

// SetEnabled toggles whether a display participates in the plan.
func SetEnabled(s State, label string, enabled bool) State {
	return s.update(label, func(d *Display) { d.Enabled = enabled })
}

// SetDiagonal sets the diagonal size in inches. Negative or non-finite
// values are stored as 0.
func SetDiagonal(s State, label string, inches float64) State {
	if inches < 0 || !finite(inches) {
		inches = 0
	}
	return s.update(label, func(d *Display) { d.Diagonal = inches })
}

// SetDiagonalText applies raw text from an input field; anything that does
// not parse as a number becomes 0.
func SetDiagonalText(s State, label, text string) State {
	return SetDiagonal(s, label, ParseDiagonal(text))
}

// ParseDiagonal parses a diagonal size, returning 0 for invalid input.
func ParseDiagonal(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v < 0 || !finite(v) {
		return 0
	}
	return v
}

// SetAspect selects a named preset or AspectCustom. Unknown values are ignored.
func SetAspect(s State, label string, aspect AspectRatio) State {
	if !aspect.Valid() {
		return s
	}
	return s.update(label, func(d *Display) { d.Aspect = aspect })
}

// SetCustomRatio stores the pair used when the aspect is AspectCustom.
func SetCustomRatio(s State, label string, r Ratio) State {
	return s.update(label, func(d *Display) { d.Custom = r })
}

// SetPosition moves a display's anchor directly.
func SetPosition(s State, label string, p Point) State {
	return s.update(label, func(d *Display) { d.Position = p })
}

// Rotate turns a display a quarter turn clockwise.
func Rotate(s State, label string) State {
	return s.update(label, func(d *Display) {
		d.Rotation = NormalizeRotation(d.Rotation + 90)
	})
}

// SetRotation sets a rotation directly, normalized to a quarter turn.
func SetRotation(s State, label string, deg int) State {
	return s.update(label, func(d *Display) { d.Rotation = NormalizeRotation(deg) })
}

// RenderOrder returns the enabled displays from bottom to top.
func RenderOrder(s State) []Display {
	out := make([]Display, 0, len(s.displays))
	for _, d := range s.displays {
		if d.Enabled {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZOrder < out[j].ZOrder
	})
	return out
}

func (s State) topZ() int {
	top := 0
	for i, d := range s.displays {
		if i == 0 || d.ZOrder > top {
			top = d.ZOrder
		}
	}
	return top
}
