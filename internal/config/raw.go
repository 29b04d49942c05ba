package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/screenscape/internal/layout"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawPoint struct {
	X *float64 `yaml:"x"`
	Y *float64 `yaml:"y"`
}

type RawRatio struct {
	W *float64 `yaml:"w"`
	H *float64 `yaml:"h"`
}

// RawDisplay overrides fields of the display with the same label.
type RawDisplay struct {
	Label       string    `yaml:"label"`
	Enabled     *bool     `yaml:"enabled"`
	Diagonal    *float64  `yaml:"diagonal"`
	AspectRatio *string   `yaml:"aspect_ratio"`
	CustomRatio *RawRatio `yaml:"custom_ratio"`
	Color       *string   `yaml:"color"`
	Rotation    *int      `yaml:"rotation"`
	Position    *RawPoint `yaml:"position"`
}

// RawConfig mirrors Config with every field optional so files can be layered.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	LogLevel   *string      `yaml:"log_level"`
	LogFile    *string      `yaml:"log_file"`
	CellWidth  *int         `yaml:"cell_width"`
	CellHeight *int         `yaml:"cell_height"`
	Zoom       *float64     `yaml:"zoom"`
	Displays   []RawDisplay `yaml:"displays"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != nil {
		out.LogFile = overlay.LogFile
	}
	if overlay.CellWidth != nil {
		out.CellWidth = overlay.CellWidth
	}
	if overlay.CellHeight != nil {
		out.CellHeight = overlay.CellHeight
	}
	if overlay.Zoom != nil {
		out.Zoom = overlay.Zoom
	}

	if len(overlay.Displays) > 0 {
		merged := make([]RawDisplay, len(c.Displays))
		copy(merged, c.Displays)
		for _, od := range overlay.Displays {
			found := false
			for i := range merged {
				if merged[i].Label == od.Label {
					merged[i] = mergeRawDisplay(merged[i], od)
					found = true
					break
				}
			}
			if !found {
				merged = append(merged, od)
			}
		}
		out.Displays = merged
	}
	return out
}

func mergeRawDisplay(base RawDisplay, overlay RawDisplay) RawDisplay {
	out := base
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.Diagonal != nil {
		out.Diagonal = overlay.Diagonal
	}
	if overlay.AspectRatio != nil {
		out.AspectRatio = overlay.AspectRatio
	}
	if overlay.CustomRatio != nil {
		if out.CustomRatio == nil {
			out.CustomRatio = &RawRatio{}
		}
		r := *out.CustomRatio
		if overlay.CustomRatio.W != nil {
			r.W = overlay.CustomRatio.W
		}
		if overlay.CustomRatio.H != nil {
			r.H = overlay.CustomRatio.H
		}
		out.CustomRatio = &r
	}
	if overlay.Color != nil {
		out.Color = overlay.Color
	}
	if overlay.Rotation != nil {
		out.Rotation = overlay.Rotation
	}
	if overlay.Position != nil {
		if out.Position == nil {
			out.Position = &RawPoint{}
		}
		p := *out.Position
		if overlay.Position.X != nil {
			p.X = overlay.Position.X
		}
		if overlay.Position.Y != nil {
			p.Y = overlay.Position.Y
		}
		out.Position = &p
	}
	return out
}

// applyRawDisplay layers raw onto dc. A literal W:H aspect_ratio is accepted
// and stored as a custom ratio.
func applyRawDisplay(dc *DisplayConfig, raw RawDisplay) error {
	if raw.Enabled != nil {
		dc.Enabled = *raw.Enabled
	}
	if raw.Diagonal != nil {
		dc.Diagonal = *raw.Diagonal
	}
	if raw.AspectRatio != nil {
		aspect, ratio, err := layout.ParseAspectRatio(*raw.AspectRatio)
		if err != nil {
			return err
		}
		dc.AspectRatio = string(aspect)
		if aspect == layout.AspectCustom && ratio.Value() > 0 {
			dc.CustomRatio = ratio
		}
	}
	if raw.CustomRatio != nil {
		if raw.CustomRatio.W != nil {
			dc.CustomRatio.W = *raw.CustomRatio.W
		}
		if raw.CustomRatio.H != nil {
			dc.CustomRatio.H = *raw.CustomRatio.H
		}
	}
	if raw.Color != nil {
		dc.Color = *raw.Color
	}
	if raw.Rotation != nil {
		dc.Rotation = *raw.Rotation
	}
	if raw.Position != nil {
		if raw.Position.X != nil {
			dc.Position.X = *raw.Position.X
		}
		if raw.Position.Y != nil {
			dc.Position.Y = *raw.Position.Y
		}
	}
	return nil
}
