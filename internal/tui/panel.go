package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/screenscape/internal/layout"
)

const sliderLabel = "Zoom "

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	trackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	filledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	selectedMark = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true).Render("›")
)

// sliderTrack returns the first column and the length of the zoom track.
func sliderTrack(width int) (start, length int) {
	length = min(60, max(10, width-len(sliderLabel)-6))
	return len(sliderLabel), length
}

// sliderZoomAt maps a click on the zoom track to a zoom level on the step grid.
func sliderZoomAt(col, width int) (float64, bool) {
	start, length := sliderTrack(width)
	if col < start || col >= start+length {
		return 0, false
	}
	frac := float64(col-start) / float64(length-1)
	return layout.StepZoom(layout.MinZoom+frac*(layout.MaxZoom-layout.MinZoom), 0), true
}

func sliderKnob(zoom float64, length int) int {
	frac := (layout.ClampZoom(zoom) - layout.MinZoom) / (layout.MaxZoom - layout.MinZoom)
	return int(math.Round(frac * float64(length-1)))
}

func renderSlider(zoom float64, width int) string {
	_, length := sliderTrack(width)
	knob := sliderKnob(zoom, length)

	track := filledStyle.Render(strings.Repeat("━", knob)) +
		valueStyle.Render("●") +
		trackStyle.Render(strings.Repeat("─", length-knob-1))

	pct := fmt.Sprintf(" %3.0f%%", layout.ClampZoom(zoom)*100)
	return dimStyle.Render(sliderLabel) + track + valueStyle.Render(pct)
}

func formatAspect(row layout.SummaryRow) string {
	if row.Aspect == layout.AspectCustom {
		return row.Ratio.String()
	}
	return string(row.Aspect)
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "\""
}

// summaryLine renders one display row without the selection marker.
func summaryLine(row layout.SummaryRow) string {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color))
	if !row.Enabled {
		return swatch.Render("□") + " " + dimStyle.Render(fmt.Sprintf("%-2s %-7s %-7s %-5s %s",
			row.Label, formatInches(row.Diagonal), formatAspect(row), fmt.Sprintf("%d°", row.Rotation), "off"))
	}
	return swatch.Render("■") + " " + valueStyle.Render(fmt.Sprintf("%-2s", row.Label)) +
		fmt.Sprintf(" %-7s %-7s %-5s %-16s %s",
			formatInches(row.Diagonal), formatAspect(row), fmt.Sprintf("%d°", row.Rotation),
			row.Dimensions, row.Area)
}

func renderSummary(rows []layout.SummaryRow, selected string, total float64, width int) string {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, headerStyle.Render(fmt.Sprintf("     %-2s %-7s %-7s %-5s %-16s %s",
		"", "Size", "Ratio", "Rot", "Dimensions", "Area")))
	for _, row := range rows {
		mark := " "
		if row.Label == selected {
			mark = selectedMark
		}
		lines = append(lines, " "+mark+" "+summaryLine(row))
	}
	lines = append(lines, dimStyle.Render("   Total enabled area: ")+valueStyle.Render(layout.FormatArea(total)))

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

func renderStatus(status, lastErr string, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1).
		MaxHeight(1)
	if lastErr != "" {
		return style.Render(errorStyle.Render("error: " + lastErr))
	}
	if status == "" {
		status = "drag displays with the mouse • hover for ↻ rotate"
	}
	return style.Render(status)
}
