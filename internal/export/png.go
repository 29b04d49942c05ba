// Package export draws a plan to a raster image.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/1broseidon/screenscape/internal/layout"
)

const (
	fillAlpha   = 0x40 // semi-transparent body fill
	strokeWidth = 2.0  // scene units
	labelSize   = 14.0 // scene units
)

// Options controls the output image.
type Options struct {
	Width      int
	Height     int
	Background color.Color
}

// DefaultBackground matches the planner canvas.
var DefaultBackground = color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}

// Render draws every enabled display of s onto a Width×Height canvas. The
// canvas size is also the surface the auto-fit scale is computed against.
func Render(s layout.State, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	bg := opts.Background
	if bg == nil {
		bg = DefaultBackground
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	ttf, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}

	s = layout.Resize(s, float64(opts.Width), float64(opts.Height))
	scene := layout.BuildScene(s)
	for _, item := range scene.Items {
		c, err := colorful.Hex(item.Color)
		if err != nil {
			return nil, fmt.Errorf("display %s: %w", item.Label, err)
		}
		r, g, b := c.RGB255()

		bounds := toRect(item.Bounds)
		draw.Draw(img, bounds, image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: fillAlpha}), image.Point{}, draw.Over)
		drawStroke(img, bounds, strokeWidth*scene.Zoom, color.NRGBA{R: r, G: g, B: b, A: 0xFF})

		if err := drawLabel(img, ttf, item.Text, item.Bounds.Center(), labelSize*scene.Zoom); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// RenderPNG renders s and encodes it as PNG to w.
func RenderPNG(w io.Writer, s layout.State, opts Options) error {
	img, err := Render(s, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func toRect(r layout.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)),
		int(math.Round(r.Y+r.H)),
	)
}

func drawStroke(img draw.Image, r image.Rectangle, width float64, c color.Color) {
	w := max(1, int(math.Round(width)))
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w),
		image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}

// drawLabel writes text centered on p. Labels are never rotated.
func drawLabel(img *image.RGBA, ttf *truetype.Font, text string, p layout.Point, size float64) error {
	if size < 1 {
		return nil
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	defer face.Close()
	width := font.MeasureString(face, text).Round()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingNone)

	x := int(math.Round(p.X)) - width/2
	y := int(math.Round(p.Y + size*0.35))
	if _, err := ctx.DrawString(text, freetype.Pt(x, y)); err != nil {
		return fmt.Errorf("failed to draw label %q: %w", text, err)
	}
	return nil
}
