package mcp

import (
	"context"
	"math"
	"testing"

	"github.com/1broseidon/screenscape/internal/config"
	"github.com/1broseidon/screenscape/internal/layout"
)

func newTestServer() *Server {
	return NewServer(config.DefaultConfig(), nil)
}

func ptr[T any](v T) *T { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestDisplayGeometry(t *testing.T) {
	s := newTestServer()

	_, out, err := s.handleDisplayGeometry(context.Background(), nil, DisplayGeometryInput{Diagonal: 10, AspectRatio: "4:3"})
	if err != nil {
		t.Fatalf("display_geometry: %v", err)
	}
	if !approx(out.Width, 8) || !approx(out.Height, 6) || !approx(out.Area, 48) {
		t.Fatalf("unexpected geometry: %+v", out)
	}
	if out.AspectRatio != "custom" || out.Ratio != "4:3" {
		t.Fatalf("aspect=%q ratio=%q", out.AspectRatio, out.Ratio)
	}

	_, out, err = s.handleDisplayGeometry(context.Background(), nil, DisplayGeometryInput{Diagonal: 27, AspectRatio: "16:9"})
	if err != nil {
		t.Fatalf("display_geometry: %v", err)
	}
	if out.Dimensions != "23.5\" × 13.2\"" {
		t.Fatalf("dimensions=%q", out.Dimensions)
	}
}

func TestDisplayGeometry_RejectsBadInput(t *testing.T) {
	s := newTestServer()
	tests := []DisplayGeometryInput{
		{Diagonal: 27, AspectRatio: "wide"},
		{Diagonal: 27, AspectRatio: "custom"},
		{Diagonal: 0, AspectRatio: "16:9"},
		{Diagonal: -3, AspectRatio: "16:9"},
	}
	for _, in := range tests {
		if _, _, err := s.handleDisplayGeometry(context.Background(), nil, in); err == nil {
			t.Fatalf("expected error for %+v", in)
		}
	}
}

func TestFitScale(t *testing.T) {
	s := newTestServer()

	// B (32" 16:9) is the largest enabled display: min(720/27.89, 520/15.69).
	_, out, err := s.handleFitScale(context.Background(), nil, FitScaleInput{CanvasWidth: 800, CanvasHeight: 600})
	if err != nil {
		t.Fatalf("fit_scale: %v", err)
	}
	if out.Fallback || out.Enabled != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if math.Abs(out.Scale-25.8153) > 1e-3 {
		t.Fatalf("scale=%v", out.Scale)
	}

	_, out, err = s.handleFitScale(context.Background(), nil, FitScaleInput{
		Displays: []DisplayInput{
			{Label: "A", Enabled: ptr(false)},
			{Label: "B", Enabled: ptr(false)},
		},
		CanvasWidth:  800,
		CanvasHeight: 600,
	})
	if err != nil {
		t.Fatalf("fit_scale: %v", err)
	}
	if !out.Fallback || out.Scale != 10 {
		t.Fatalf("expected fallback scale 10, got %+v", out)
	}
}

func TestFitScale_CanvasSmallerThanPadding(t *testing.T) {
	s := newTestServer()

	_, out, err := s.handleFitScale(context.Background(), nil, FitScaleInput{CanvasWidth: 60, CanvasHeight: 60})
	if err != nil {
		t.Fatalf("fit_scale: %v", err)
	}
	if !out.Fallback || out.Scale != layout.FallbackScale || out.Enabled != 2 {
		t.Fatalf("expected fallback for 60x60 canvas, got %+v", out)
	}
}

func TestPlanLayout_ZoomAndRotation(t *testing.T) {
	s := newTestServer()

	_, out, err := s.handlePlanLayout(context.Background(), nil, PlanLayoutInput{
		Displays: []DisplayInput{
			{Label: "B", Enabled: ptr(false)},
			{Label: "A", Rotation: ptr(90)},
		},
		CanvasWidth:  800,
		CanvasHeight: 600,
		Zoom:         ptr(2.0),
	})
	if err != nil {
		t.Fatalf("plan_layout: %v", err)
	}
	if out.Zoom != 2 || len(out.Displays) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}

	a := out.Displays[0]
	g := layout.DeriveFrom(27, layout.Ratio{W: 16, H: 9})
	w := g.Width * out.Scale * 2
	h := g.Height * out.Scale * 2
	if math.Abs(a.Width-h) > 0.01 || math.Abs(a.Height-w) > 0.01 {
		t.Fatalf("rotated bounds not swapped: %+v (w=%v h=%v)", a, w, h)
	}
	// The body's anchor (50,50) is drawn at (100,100); rotation keeps its center.
	cx, cy := a.X+a.Width/2, a.Y+a.Height/2
	if math.Abs(cx-(100+w/2)) > 0.01 || math.Abs(cy-(100+h/2)) > 0.01 {
		t.Fatalf("rotated center moved: (%v,%v)", cx, cy)
	}
	if a.Text != `A: 27"` || a.Area != "312 in²" || out.TotalArea != "312 in²" {
		t.Fatalf("unexpected text fields: %+v total=%q", a, out.TotalArea)
	}
}

func TestPlanLayout_Overrides(t *testing.T) {
	s := newTestServer()

	_, out, err := s.handlePlanLayout(context.Background(), nil, PlanLayoutInput{
		Displays: []DisplayInput{
			{Label: "C", Enabled: ptr(true), AspectRatio: "4:3", Diagonal: ptr(20.0), X: ptr(10.0)},
		},
		CanvasWidth:  800,
		CanvasHeight: 600,
	})
	if err != nil {
		t.Fatalf("plan_layout: %v", err)
	}
	if len(out.Displays) != 3 {
		t.Fatalf("expected 3 enabled displays, got %d", len(out.Displays))
	}
	c := out.Displays[2]
	if c.Label != "C" || c.X != 10 || c.Y != 200 {
		t.Fatalf("unexpected C: %+v", c)
	}
	if c.Dimensions != "16.0\" × 12.0\"" {
		t.Fatalf("dimensions=%q", c.Dimensions)
	}
}

func TestPlanLayout_UnknownLabel(t *testing.T) {
	s := newTestServer()
	_, _, err := s.handlePlanLayout(context.Background(), nil, PlanLayoutInput{
		Displays:     []DisplayInput{{Label: "E"}},
		CanvasWidth:  800,
		CanvasHeight: 600,
	})
	if err == nil {
		t.Fatalf("expected error for unknown label")
	}
}
