package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/screenscape/internal/layout"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if len(cfg.Displays) != 4 {
		t.Fatalf("expected 4 default displays, got %d", len(cfg.Displays))
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
	if res.Config.Displays[0].Diagonal != 27 {
		t.Fatalf("expected default A diagonal 27, got %v", res.Config.Displays[0].Diagonal)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
}

func TestLoadFromPath_OverridesDisplayByLabel(t *testing.T) {
	data := strings.Join([]string{
		"zoom: 1.5",
		"displays:",
		"  - label: C",
		"    enabled: true",
		"    aspect_ratio: \"4:3\"",
		"    position: {x: 10}",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Zoom != 1.5 {
		t.Fatalf("zoom=%v", cfg.Zoom)
	}
	c := cfg.Displays[2]
	if !c.Enabled || c.Diagonal != 32 {
		t.Fatalf("expected C enabled keeping 32\", got %+v", c)
	}
	if c.AspectRatio != "custom" || c.CustomRatio != (layout.Ratio{W: 4, H: 3}) {
		t.Fatalf("expected custom 4:3, got %q %v", c.AspectRatio, c.CustomRatio)
	}
	if c.Position != (layout.Point{X: 10, Y: 200}) {
		t.Fatalf("expected partial position override, got %+v", c.Position)
	}
	if c.Color != "#10B981" {
		t.Fatalf("color changed: %q", c.Color)
	}
}

func TestLoadFromPath_IncludeThenFileWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "cell_width: 10\ncell_height: 20\n")
	path := writeConfig(t, dir, "config.yaml", "include: base.yaml\ncell_width: 9\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.CellWidth != 9 || res.Config.CellHeight != 20 {
		t.Fatalf("expected 9x20 cells, got %dx%d", res.Config.CellWidth, res.Config.CellHeight)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	path := writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "gap_size: 8\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "log_level: info\nzoom: 9\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "zoom" || verr.Source.Line != 2 {
		t.Fatalf("expected zoom at line 2, got path=%q line=%d", verr.Path, verr.Source.Line)
	}
}

func TestLoadFromPath_BadAspectRatio(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "displays:\n  - label: A\n    aspect_ratio: wide\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected aspect ratio error")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"cell width", func(c *Config) { c.CellWidth = 0 }, "cell_width"},
		{"zoom", func(c *Config) { c.Zoom = 0.1 }, "zoom"},
		{"no displays", func(c *Config) { c.Displays = nil }, "displays"},
		{"too many", func(c *Config) { c.Displays = append(c.Displays, c.Displays[0]) }, "displays"},
		{"duplicate", func(c *Config) { c.Displays[1].Label = "A" }, "displays.A"},
		{"color", func(c *Config) { c.Displays[0].Color = "blue" }, "displays.A"},
		{"rotation", func(c *Config) { c.Displays[0].Rotation = 45 }, "displays.A"},
		{"custom ratio", func(c *Config) {
			c.Displays[0].AspectRatio = "custom"
			c.Displays[0].CustomRatio = layout.Ratio{}
		}, "displays.A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path=%q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestConfigState_SeedsLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zoom = 2
	cfg.Displays[3].Rotation = 450

	s := cfg.State()
	if s.Viewport.Zoom != 2 {
		t.Fatalf("zoom=%v", s.Viewport.Zoom)
	}
	d, ok := s.Display("D")
	if !ok || d.Aspect != layout.Aspect21x9 || d.Rotation != 90 || d.Color() != "#F59E0B" {
		t.Fatalf("unexpected D: %+v", d)
	}
	if got := len(layout.RenderOrder(s)); got != 2 {
		t.Fatalf("expected 2 enabled displays, got %d", got)
	}
}

func TestApplyDetected_ReplacesByLabelAndDisablesRest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyDetected([]DisplayConfig{
		{Label: "A", Enabled: true, Diagonal: 24, AspectRatio: "16:10", Color: "#3B82F6"},
		{Label: "C", Enabled: true, Diagonal: 13.3, AspectRatio: "16:10", Color: "#10B981", Rotation: 90},
	})

	if len(cfg.Displays) != 4 {
		t.Fatalf("expected 4 displays, got %d", len(cfg.Displays))
	}
	if d := cfg.Displays[0]; d.Diagonal != 24 || d.AspectRatio != "16:10" {
		t.Fatalf("A not replaced: %+v", d)
	}
	if cfg.Displays[1].Enabled {
		t.Fatalf("expected undetected B to be disabled")
	}
	if d := cfg.Displays[2]; !d.Enabled || d.Rotation != 90 {
		t.Fatalf("C not replaced: %+v", d)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
