package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig layers raw over DefaultConfig. Displays are matched by
// label; a label not among the defaults adds a display with the next free
// default color.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}
	if raw.CellWidth != nil {
		cfg.CellWidth = *raw.CellWidth
	}
	if raw.CellHeight != nil {
		cfg.CellHeight = *raw.CellHeight
	}
	if raw.Zoom != nil {
		cfg.Zoom = *raw.Zoom
	}

	for i, rd := range raw.Displays {
		if strings.TrimSpace(rd.Label) == "" {
			return nil, &ValidationError{Path: fmt.Sprintf("displays[%d].label", i), Err: fmt.Errorf("label is required")}
		}
		idx := -1
		for j := range cfg.Displays {
			if cfg.Displays[j].Label == rd.Label {
				idx = j
				break
			}
		}
		if idx < 0 {
			cfg.Displays = append(cfg.Displays, DisplayConfig{
				Label:       rd.Label,
				Enabled:     true,
				AspectRatio: "16:9",
				Color:       DefaultColors[len(cfg.Displays)%len(DefaultColors)],
			})
			idx = len(cfg.Displays) - 1
		}
		if err := applyRawDisplay(&cfg.Displays[idx], rd); err != nil {
			return nil, &ValidationError{Path: "displays." + rd.Label, Err: err}
		}
	}

	return cfg, nil
}
