package x11

import (
	"math"
	"sort"

	"github.com/1broseidon/screenscape/internal/config"
	"github.com/1broseidon/screenscape/internal/layout"
)

const (
	mmPerInch = 25.4

	// presetTolerance is how far (relative) a panel's ratio may be from a
	// preset and still be reported as that preset.
	presetTolerance = 0.03

	// DefaultPixelScale maps desktop pixels to scene units.
	DefaultPixelScale = 0.25
	sceneOrigin       = 50.0
)

// DiagonalInches returns the physical diagonal, or 0 if unknown.
func (m Monitor) DiagonalInches() float64 {
	if m.WidthMM <= 0 || m.HeightMM <= 0 {
		return 0
	}
	return math.Round(math.Hypot(float64(m.WidthMM), float64(m.HeightMM))/mmPerInch*10) / 10
}

// nativeRatio returns the unrotated width:height of the panel, preferring
// physical size and falling back to pixel dimensions.
func (m Monitor) nativeRatio() layout.Ratio {
	if m.WidthMM > 0 && m.HeightMM > 0 {
		return layout.Ratio{W: float64(m.WidthMM), H: float64(m.HeightMM)}
	}
	w, h := m.Width, m.Height
	if m.Rotation == 90 || m.Rotation == 270 {
		w, h = h, w
	}
	return layout.Ratio{W: float64(w), H: float64(h)}
}

// PlanDisplays converts detected monitors into planner displays labelled
// A, B, C, D. The primary monitor comes first, the rest follow left to right.
// Desktop positions are mapped to scene units with pixelScale, anchored so
// the top-left-most monitor sits at the default origin.
func PlanDisplays(monitors []Monitor, pixelScale float64) []config.DisplayConfig {
	if len(monitors) == 0 {
		return nil
	}
	if pixelScale <= 0 {
		pixelScale = DefaultPixelScale
	}

	ordered := make([]Monitor, len(monitors))
	copy(ordered, monitors)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Primary != ordered[j].Primary {
			return ordered[i].Primary
		}
		if ordered[i].X != ordered[j].X {
			return ordered[i].X < ordered[j].X
		}
		return ordered[i].Y < ordered[j].Y
	})
	if len(ordered) > layout.MaxDisplays {
		ordered = ordered[:layout.MaxDisplays]
	}

	minX, minY := ordered[0].X, ordered[0].Y
	for _, m := range ordered[1:] {
		minX = min(minX, m.X)
		minY = min(minY, m.Y)
	}

	out := make([]config.DisplayConfig, 0, len(ordered))
	for i, m := range ordered {
		ratio := m.nativeRatio()
		aspect := layout.AspectCustom
		if preset, ok := layout.NearestPreset(ratio, presetTolerance); ok {
			aspect = preset
			ratio, _ = layout.PresetRatio(preset)
		}

		out = append(out, config.DisplayConfig{
			Label:       string(rune('A' + i)),
			Enabled:     true,
			Diagonal:    m.DiagonalInches(),
			AspectRatio: string(aspect),
			CustomRatio: ratio,
			Color:       config.DefaultColors[i%len(config.DefaultColors)],
			Rotation:    m.Rotation,
			Position: layout.Point{
				X: sceneOrigin + float64(m.X-minX)*pixelScale,
				Y: sceneOrigin + float64(m.Y-minY)*pixelScale,
			},
		})
	}
	return out
}
