package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	log_level
//	log_file
//	cell_width
//	cell_height
//	zoom
//	displays
//	displays.<label>
//	displays.<label>.diagonal
//	displays.<label>.custom_ratio.w
//	displays.<label>.position.x
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] != "displays" && len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch parts[0] {
	case "log_level":
		return cfg.LogLevel, nil
	case "log_file":
		return cfg.LogFile, nil
	case "cell_width":
		return cfg.CellWidth, nil
	case "cell_height":
		return cfg.CellHeight, nil
	case "zoom":
		return cfg.Zoom, nil
	case "displays":
		if len(parts) == 1 {
			return cfg.Displays, nil
		}
		for _, d := range cfg.Displays {
			if d.Label == parts[1] {
				return lookupDisplayValue(d, path, parts[2:])
			}
		}
		return nil, fmt.Errorf("unknown display: %s", parts[1])
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

func lookupDisplayValue(d DisplayConfig, path string, parts []string) (any, error) {
	if len(parts) == 0 {
		return d, nil
	}
	leaf := len(parts) == 1
	switch parts[0] {
	case "label":
		if leaf {
			return d.Label, nil
		}
	case "enabled":
		if leaf {
			return d.Enabled, nil
		}
	case "diagonal":
		if leaf {
			return d.Diagonal, nil
		}
	case "aspect_ratio":
		if leaf {
			return d.AspectRatio, nil
		}
	case "color":
		if leaf {
			return d.Color, nil
		}
	case "rotation":
		if leaf {
			return d.Rotation, nil
		}
	case "custom_ratio":
		if leaf {
			return d.CustomRatio, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "w":
				return d.CustomRatio.W, nil
			case "h":
				return d.CustomRatio.H, nil
			}
		}
	case "position":
		if leaf {
			return d.Position, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "x":
				return d.Position.X, nil
			case "y":
				return d.Position.Y, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
