package layout

import "math"

const (
	MinZoom     = 0.2
	MaxZoom     = 3.0
	ZoomStep    = 0.05
	DefaultZoom = 1.0

	// FitPadding is the total margin (both sides) kept free when fitting.
	FitPadding = 80.0
	// FallbackScale is used when there is nothing to fit or no canvas yet.
	FallbackScale = 10.0
)

// Viewport is the global zoom plus the observed canvas size.
type Viewport struct {
	Zoom   float64
	Canvas Size
}

// ClampZoom bounds z to [MinZoom, MaxZoom]; NaN becomes DefaultZoom.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return DefaultZoom
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// StepZoom moves z by n slider steps, snapping to the step grid.
func StepZoom(z float64, n int) float64 {
	ticks := math.Round(ClampZoom(z)/ZoomStep) + float64(n)
	return ClampZoom(math.Round(ticks*ZoomStep*100) / 100)
}

// SetZoom sets the scene zoom. Display positions are not touched.
func SetZoom(s State, z float64) State {
	s.Viewport.Zoom = ClampZoom(z)
	return s
}

// Resize records the rendering surface's pixel size.
func Resize(s State, width, height float64) State {
	s.Viewport.Canvas = Size{W: math.Max(0, width), H: math.Max(0, height)}
	return s
}

// AutoFitScale returns pixels-per-inch such that the widest and the tallest
// enabled display each fit inside canvas minus FitPadding. Only the largest
// display drives the result; placement is not considered.
func AutoFitScale(displays []Display, canvas Size) float64 {
	scale, _ := FitScale(displays, canvas)
	return scale
}

// FitScale is AutoFitScale that also reports whether FallbackScale was used:
// no measured canvas, nothing enabled, or no positive finite fit (e.g. a
// canvas smaller than FitPadding).
func FitScale(displays []Display, canvas Size) (scale float64, fallback bool) {
	if canvas.W <= 0 || canvas.H <= 0 {
		return FallbackScale, true
	}

	var maxW, maxH float64
	enabled := 0
	for _, d := range displays {
		if !d.Enabled {
			continue
		}
		enabled++
		g := Derive(d)
		maxW = math.Max(maxW, g.Width)
		maxH = math.Max(maxH, g.Height)
	}
	if enabled == 0 {
		return FallbackScale, true
	}

	scaleX := (canvas.W - FitPadding) / maxW
	scaleY := (canvas.H - FitPadding) / maxH
	scale = math.Min(scaleX, scaleY)
	if !finite(scale) || scale <= 0 {
		return FallbackScale, true
	}
	return scale, false
}
