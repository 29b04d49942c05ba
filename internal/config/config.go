package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/1broseidon/screenscape/internal/layout"
)

// DisplayConfig is the startup definition of one planned display.
type DisplayConfig struct {
	Label       string       `yaml:"label"`
	Enabled     bool         `yaml:"enabled"`
	Diagonal    float64      `yaml:"diagonal"`     // inches
	AspectRatio string       `yaml:"aspect_ratio"` // 16:9, 16:10, 21:9, 32:9, custom
	CustomRatio layout.Ratio `yaml:"custom_ratio"` // used when aspect_ratio is custom
	Color       string       `yaml:"color"`        // #RRGGBB
	Rotation    int          `yaml:"rotation"`     // 0, 90, 180, 270
	Position    layout.Point `yaml:"position"`     // scene units
}

// Config is the effective screenscape configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	// LogFile is where the interactive planner writes its log (default: runtime dir).
	LogFile string `yaml:"log_file,omitempty"`

	// CellWidth and CellHeight map one terminal cell to scene pixels.
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`

	// Zoom is the initial scene zoom.
	Zoom float64 `yaml:"zoom"`

	Displays []DisplayConfig `yaml:"displays"`
}

// DefaultColors are the fixed color tags of displays A through D.
var DefaultColors = []string{"#3B82F6", "#EF4444", "#10B981", "#F59E0B"}

// DefaultDisplays returns the four startup displays.
func DefaultDisplays() []DisplayConfig {
	return []DisplayConfig{
		{Label: "A", Enabled: true, Diagonal: 27, AspectRatio: "16:9", CustomRatio: layout.Ratio{W: 16, H: 9}, Color: DefaultColors[0], Position: layout.Point{X: 50, Y: 50}},
		{Label: "B", Enabled: true, Diagonal: 32, AspectRatio: "16:9", CustomRatio: layout.Ratio{W: 16, H: 9}, Color: DefaultColors[1], Position: layout.Point{X: 450, Y: 100}},
		{Label: "C", Enabled: false, Diagonal: 32, AspectRatio: "16:9", CustomRatio: layout.Ratio{W: 16, H: 9}, Color: DefaultColors[2], Position: layout.Point{X: 100, Y: 200}},
		{Label: "D", Enabled: false, Diagonal: 34, AspectRatio: "21:9", CustomRatio: layout.Ratio{W: 21, H: 9}, Color: DefaultColors[3], Position: layout.Point{X: 150, Y: 250}},
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		CellWidth:  8,
		CellHeight: 16,
		Zoom:       layout.DefaultZoom,
		Displays:   DefaultDisplays(),
	}
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.CellWidth <= 0 {
		return &ValidationError{Path: "cell_width", Err: fmt.Errorf("cell_width must be > 0")}
	}
	if c.CellHeight <= 0 {
		return &ValidationError{Path: "cell_height", Err: fmt.Errorf("cell_height must be > 0")}
	}
	if c.Zoom < layout.MinZoom || c.Zoom > layout.MaxZoom {
		return &ValidationError{Path: "zoom", Err: fmt.Errorf("zoom must be between %.2f and %.2f", layout.MinZoom, layout.MaxZoom)}
	}

	if len(c.Displays) == 0 {
		return &ValidationError{Path: "displays", Err: fmt.Errorf("displays must not be empty")}
	}
	if len(c.Displays) > layout.MaxDisplays {
		return &ValidationError{Path: "displays", Err: fmt.Errorf("at most %d displays are supported", layout.MaxDisplays)}
	}
	seen := make(map[string]struct{}, len(c.Displays))
	for i, d := range c.Displays {
		if strings.TrimSpace(d.Label) == "" {
			return &ValidationError{Path: fmt.Sprintf("displays[%d].label", i), Err: fmt.Errorf("label is required")}
		}
		path := "displays." + d.Label
		if _, dup := seen[d.Label]; dup {
			return &ValidationError{Path: path, Err: fmt.Errorf("duplicate label %q", d.Label)}
		}
		seen[d.Label] = struct{}{}
		if err := validateDisplay(d); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	if d.Diagonal < 0 {
		return fmt.Errorf("diagonal must be >= 0")
	}
	if !layout.AspectRatio(d.AspectRatio).Valid() {
		return fmt.Errorf("aspect_ratio must be one of: 16:9, 16:10, 21:9, 32:9, custom")
	}
	if layout.AspectRatio(d.AspectRatio) == layout.AspectCustom && d.CustomRatio.Value() == 0 {
		return fmt.Errorf("custom_ratio must have positive w and h when aspect_ratio is custom")
	}
	if !hexColor.MatchString(d.Color) {
		return fmt.Errorf("color must be #RRGGBB, got %q", d.Color)
	}
	if d.Rotation%90 != 0 {
		return fmt.Errorf("rotation must be a multiple of 90")
	}
	return nil
}

// State builds the initial planner state from the configured displays.
func (c *Config) State() layout.State {
	displays := make([]layout.Display, 0, len(c.Displays))
	for _, dc := range c.Displays {
		d := layout.NewDisplay(dc.Label, dc.Color)
		d.Enabled = dc.Enabled
		d.Diagonal = dc.Diagonal
		d.Aspect = layout.AspectRatio(dc.AspectRatio)
		d.Custom = dc.CustomRatio
		d.Rotation = dc.Rotation
		d.Position = dc.Position
		displays = append(displays, d)
	}
	return layout.SetZoom(layout.NewState(displays...), c.Zoom)
}

// ApplyDetected replaces displays by label with detected ones. Configured
// displays that were not detected are disabled.
func (c *Config) ApplyDetected(detected []DisplayConfig) {
	byLabel := make(map[string]DisplayConfig, len(detected))
	for _, d := range detected {
		byLabel[d.Label] = d
	}
	for i, d := range c.Displays {
		if det, ok := byLabel[d.Label]; ok {
			c.Displays[i] = det
			delete(byLabel, d.Label)
			continue
		}
		c.Displays[i].Enabled = false
	}
	for _, d := range detected {
		if _, ok := byLabel[d.Label]; ok && len(c.Displays) < layout.MaxDisplays {
			c.Displays = append(c.Displays, d)
		}
	}
}
