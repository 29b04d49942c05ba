package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AspectRatio names a width:height preset, or AspectCustom.
type AspectRatio string

const (
	Aspect16x9   AspectRatio = "16:9"
	Aspect16x10  AspectRatio = "16:10"
	Aspect21x9   AspectRatio = "21:9"
	Aspect32x9   AspectRatio = "32:9"
	AspectCustom AspectRatio = "custom" // Uses Display.Custom.
)

// Ratio is a width:height pair.
type Ratio struct {
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// Value returns W/H, or 0 when the pair cannot form a ratio.
func (r Ratio) Value() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	v := r.W / r.H
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (r Ratio) String() string {
	return strconv.FormatFloat(r.W, 'f', -1, 64) + ":" + strconv.FormatFloat(r.H, 'f', -1, 64)
}

// presetMatchTolerance decides when a literal W:H pair is the same ratio as a
// preset (e.g. 32:18 is 16:9).
const presetMatchTolerance = 1e-9

var presetRatios = map[AspectRatio]Ratio{
	Aspect16x9:  {W: 16, H: 9},
	Aspect16x10: {W: 16, H: 10},
	Aspect21x9:  {W: 21, H: 9},
	Aspect32x9:  {W: 32, H: 9},
}

// Presets returns the named presets in selector order.
func Presets() []AspectRatio {
	return []AspectRatio{Aspect16x9, Aspect16x10, Aspect21x9, Aspect32x9}
}

// PresetRatio returns the pair for a named preset.
func PresetRatio(a AspectRatio) (Ratio, bool) {
	r, ok := presetRatios[a]
	return r, ok
}

// Valid reports whether a is a preset or AspectCustom.
func (a AspectRatio) Valid() bool {
	if a == AspectCustom {
		return true
	}
	_, ok := presetRatios[a]
	return ok
}

// ParseAspectRatio accepts a preset name, "custom", or a literal "W:H" pair.
// A literal pair with the same ratio as a preset (16.0:9, 32:18, 8:5) resolves
// to that preset; any other pair resolves to AspectCustom with the pair
// returned as the custom ratio.
func ParseAspectRatio(s string) (AspectRatio, Ratio, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == string(AspectCustom) {
		return AspectCustom, Ratio{}, nil
	}
	if r, ok := presetRatios[AspectRatio(s)]; ok {
		return AspectRatio(s), r, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "", Ratio{}, fmt.Errorf("invalid aspect ratio %q (want 16:9, 16:10, 21:9, 32:9, custom, or W:H)", s)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil {
		return "", Ratio{}, fmt.Errorf("invalid aspect ratio %q: components must be numeric", s)
	}
	r := Ratio{W: w, H: h}
	if r.Value() == 0 {
		return "", Ratio{}, fmt.Errorf("invalid aspect ratio %q: components must be positive", s)
	}
	if preset, ok := NearestPreset(r, presetMatchTolerance); ok {
		return preset, presetRatios[preset], nil
	}
	return AspectCustom, r, nil
}

// Geometry is the physical size of a display in inches.
type Geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
}

// Derive computes physical geometry from the diagonal and the active ratio.
// The diagonal is the hypotenuse of a right triangle whose legs are in ratio
// a:1, so height = diagonal / sqrt(a²+1) and width = height * a.
// Disabled displays and degenerate inputs yield zero geometry.
func Derive(d Display) Geometry {
	if !d.Enabled {
		return Geometry{}
	}
	return DeriveFrom(d.Diagonal, d.ActiveRatio())
}

// DeriveFrom computes geometry for a bare diagonal and ratio pair.
func DeriveFrom(diagonal float64, r Ratio) Geometry {
	a := r.Value()
	if a == 0 || diagonal <= 0 || math.IsNaN(diagonal) || math.IsInf(diagonal, 0) {
		return Geometry{}
	}

	height := diagonal / math.Sqrt(a*a+1)
	width := height * a
	g := Geometry{Width: width, Height: height, Area: width * height}
	if !finite(g.Width) || !finite(g.Height) || !finite(g.Area) {
		return Geometry{}
	}
	return g
}

// NearestPreset returns the preset whose ratio is closest to r, and whether it
// lies within tolerance (relative difference of the W/H values).
func NearestPreset(r Ratio, tolerance float64) (AspectRatio, bool) {
	v := r.Value()
	if v == 0 {
		return "", false
	}
	best := AspectRatio("")
	bestDiff := math.Inf(1)
	for _, a := range Presets() {
		diff := math.Abs(presetRatios[a].Value()-v) / v
		if diff < bestDiff {
			best, bestDiff = a, diff
		}
	}
	return best, bestDiff <= tolerance
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
