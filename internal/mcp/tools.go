package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/screenscape/internal/layout"
)

func (s *Server) handleDisplayGeometry(_ context.Context, _ *mcpsdk.CallToolRequest, args DisplayGeometryInput) (*mcpsdk.CallToolResult, DisplayGeometryOutput, error) {
	aspect, ratio, err := layout.ParseAspectRatio(args.AspectRatio)
	if err != nil {
		return nil, DisplayGeometryOutput{}, err
	}
	if ratio.Value() == 0 {
		return nil, DisplayGeometryOutput{}, fmt.Errorf("aspect ratio %q needs a W:H pair", args.AspectRatio)
	}
	if args.Diagonal <= 0 {
		return nil, DisplayGeometryOutput{}, fmt.Errorf("diagonal must be > 0, got %v", args.Diagonal)
	}

	g := layout.DeriveFrom(args.Diagonal, ratio)
	s.logger.Debug("display_geometry", "diagonal", args.Diagonal, "aspect", aspect, "area", g.Area)
	return nil, DisplayGeometryOutput{
		Width:       g.Width,
		Height:      g.Height,
		Area:        g.Area,
		AspectRatio: string(aspect),
		Ratio:       ratio.String(),
		Dimensions:  layout.FormatDimensions(g),
	}, nil
}

func (s *Server) handleFitScale(_ context.Context, _ *mcpsdk.CallToolRequest, args FitScaleInput) (*mcpsdk.CallToolResult, FitScaleOutput, error) {
	st, err := applyOverrides(s.config.State(), args.Displays)
	if err != nil {
		return nil, FitScaleOutput{}, err
	}
	st = layout.Resize(st, args.CanvasWidth, args.CanvasHeight)

	var out FitScaleOutput
	out.Scale, out.Fallback = st.FitScale()
	for _, d := range st.Displays() {
		if d.Enabled && layout.Derive(d).Area > 0 {
			out.Enabled++
		}
	}
	s.logger.Debug("fit_scale", "scale", out.Scale, "fallback", out.Fallback)
	return nil, out, nil
}

func (s *Server) handlePlanLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args PlanLayoutInput) (*mcpsdk.CallToolResult, PlanLayoutOutput, error) {
	st, err := applyOverrides(s.config.State(), args.Displays)
	if err != nil {
		return nil, PlanLayoutOutput{}, err
	}
	st = layout.Resize(st, args.CanvasWidth, args.CanvasHeight)
	if args.Zoom != nil {
		st = layout.SetZoom(st, *args.Zoom)
	}

	scene := layout.BuildScene(st)
	out := PlanLayoutOutput{
		Scale:     scene.Scale,
		Zoom:      scene.Zoom,
		Displays:  make([]PlacedDisplay, 0, len(scene.Items)),
		TotalArea: layout.FormatArea(layout.TotalArea(st)),
	}
	for _, it := range scene.Items {
		d, _ := st.Display(it.Label)
		g := layout.Derive(d)
		out.Displays = append(out.Displays, PlacedDisplay{
			Label:      it.Label,
			Color:      it.Color,
			Text:       it.Text,
			Rotation:   it.Rotation,
			X:          it.Bounds.X,
			Y:          it.Bounds.Y,
			Width:      it.Bounds.W,
			Height:     it.Bounds.H,
			Dimensions: layout.FormatDimensions(g),
			Area:       layout.FormatArea(g.Area),
		})
	}
	s.logger.Debug("plan_layout", "displays", len(out.Displays), "scale", out.Scale)
	return nil, out, nil
}

// applyOverrides edits st by label. Unknown labels and bad aspect ratios are
// errors; everything else goes through the planner's own update rules.
func applyOverrides(st layout.State, overrides []DisplayInput) (layout.State, error) {
	for _, o := range overrides {
		d, ok := st.Display(o.Label)
		if !ok {
			return st, fmt.Errorf("unknown display %q", o.Label)
		}
		if o.Enabled != nil {
			st = layout.SetEnabled(st, o.Label, *o.Enabled)
		}
		if o.Diagonal != nil {
			st = layout.SetDiagonal(st, o.Label, *o.Diagonal)
		}
		if o.AspectRatio != "" {
			aspect, ratio, err := layout.ParseAspectRatio(o.AspectRatio)
			if err != nil {
				return st, fmt.Errorf("display %s: %w", o.Label, err)
			}
			st = layout.SetAspect(st, o.Label, aspect)
			if aspect == layout.AspectCustom && ratio.Value() > 0 {
				st = layout.SetCustomRatio(st, o.Label, ratio)
			}
		}
		if o.Rotation != nil {
			st = layout.SetRotation(st, o.Label, *o.Rotation)
		}
		if o.X != nil || o.Y != nil {
			p := d.Position
			if o.X != nil {
				p.X = *o.X
			}
			if o.Y != nil {
				p.Y = *o.Y
			}
			st = layout.SetPosition(st, o.Label, p)
		}
	}
	return st, nil
}
