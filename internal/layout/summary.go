package layout

import "fmt"

// SummaryRow is one entry of the per-display summary panel.
type SummaryRow struct {
	Label    string
	Color    string
	Enabled  bool
	Diagonal float64
	Aspect   AspectRatio
	Ratio    Ratio
	Rotation int
	Geometry Geometry

	// Dimensions and Area are empty for disabled displays.
	Dimensions string
	Area       string
}

// Summarize lists every display, enabled or not, in storage order.
func Summarize(s State) []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.displays))
	for _, d := range s.displays {
		row := SummaryRow{
			Label:    d.label,
			Color:    d.color,
			Enabled:  d.Enabled,
			Diagonal: d.Diagonal,
			Aspect:   d.Aspect,
			Ratio:    d.ActiveRatio(),
			Rotation: d.Rotation,
		}
		if d.Enabled {
			row.Geometry = Derive(d)
			row.Dimensions = FormatDimensions(row.Geometry)
			row.Area = FormatArea(row.Geometry.Area)
		}
		rows = append(rows, row)
	}
	return rows
}

// TotalArea sums the screen area of enabled displays.
func TotalArea(s State) float64 {
	var total float64
	for _, d := range s.displays {
		total += Derive(d).Area
	}
	return total
}

// FormatDimensions renders width × height to one decimal.
func FormatDimensions(g Geometry) string {
	return fmt.Sprintf("%.1f\" × %.1f\"", g.Width, g.Height)
}

// FormatArea renders an area rounded to whole square inches.
func FormatArea(area float64) string {
	return fmt.Sprintf("%.0f in²", area)
}
