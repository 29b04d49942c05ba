package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/screenscape/internal/config"
	"github.com/1broseidon/screenscape/internal/export"
	"github.com/1broseidon/screenscape/internal/layout"
)

const (
	defaultRenderWidth  = 800
	defaultRenderHeight = 600
)

func runRender(args []string) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/screenscape/config.yaml)")
	width := fs.Int("width", 0, "Canvas width in pixels (default: terminal size in cells, else 800)")
	height := fs.Int("height", 0, "Canvas height in pixels (default: terminal size in cells, else 600)")
	zoom := fs.Float64("zoom", 0, "Zoom factor 0.2-3.0 (default: configured zoom)")
	out := fs.String("out", "", "Output PNG file (default: stdout)")
	detect := fs.Bool("detect", false, "Use connected monitors instead of configured displays")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: screenscape render [--path PATH] [--width W] [--height H] [--zoom Z] [--out FILE] [--detect]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Render the enabled displays to a PNG image.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *width < 0 || *height < 0 || *zoom < 0 {
		fmt.Fprintln(os.Stderr, "width, height and zoom must not be negative")
		return 2
	}
	if *out == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "refusing to write PNG data to a terminal; use --out FILE or redirect stdout")
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if *detect {
		detected, err := detectDisplays("", 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Monitor detection failed: %v\n", err)
			return 1
		}
		cfg.ApplyDetected(detected)
	}

	w, h := renderSize(cfg, *width, *height)
	s := cfg.State()
	if *zoom > 0 {
		s = layout.SetZoom(s, *zoom)
	}

	var buf bytes.Buffer
	if err := export.RenderPNG(&buf, s, export.Options{Width: w, Height: h}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *out == "" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%dx%d)\n", *out, w, h)
	return 0
}

// renderSize fills in missing dimensions from the controlling terminal, so
// the image matches what the planner would show, falling back to 800×600.
func renderSize(cfg *config.Config, width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	tw, th := defaultRenderWidth, defaultRenderHeight
	if cols, rows, err := term.GetSize(int(os.Stderr.Fd())); err == nil && cols > 0 && rows > 0 {
		tw, th = cols*cfg.CellWidth, rows*cfg.CellHeight
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return width, height
}
