package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/screenscape/internal/config"
	"github.com/1broseidon/screenscape/internal/layout"
	"github.com/1broseidon/screenscape/internal/x11"
)

// detectDisplays reads connected monitors from the X server and converts
// them into planner displays.
func detectDisplays(display string, pixelScale float64) ([]config.DisplayConfig, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no connected monitors found")
	}
	return x11.PlanDisplays(monitors, pixelScale), nil
}

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asYAML := fs.Bool("yaml", false, "Print a config 'displays:' snippet")
	display := fs.String("display", "", "X display to query (default: $DISPLAY)")
	scale := fs.Float64("scale", x11.DefaultPixelScale, "Scene units per desktop pixel for positions")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: screenscape detect [--yaml] [--display :0] [--scale 0.25]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected monitors with their physical size, nearest aspect ratio,")
		fmt.Fprintln(os.Stderr, "rotation and position. At most four are reported, primary first.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	displays, err := detectDisplays(*display, *scale)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asYAML {
		data, err := yaml.Marshal(struct {
			Displays []config.DisplayConfig `yaml:"displays"`
		}{Displays: displays})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderHeader(false).
		Headers("LABEL", "DIAGONAL", "RATIO", "ROTATION", "DIMENSIONS", "POSITION")
	for _, d := range displays {
		ratio := d.AspectRatio
		if ratio == string(layout.AspectCustom) {
			ratio = d.CustomRatio.String()
		}
		g := layout.DeriveFrom(d.Diagonal, d.CustomRatio)
		if r, ok := layout.PresetRatio(layout.AspectRatio(d.AspectRatio)); ok {
			g = layout.DeriveFrom(d.Diagonal, r)
		}
		t.Row(
			d.Label,
			fmt.Sprintf("%.1f\"", d.Diagonal),
			ratio,
			fmt.Sprintf("%d°", d.Rotation),
			layout.FormatDimensions(g),
			fmt.Sprintf("%.0f,%.0f", d.Position.X, d.Position.Y),
		)
	}
	fmt.Println(t.Render())
	return 0
}
