package mcp

// DisplayGeometryInput is the input for the display_geometry tool.
type DisplayGeometryInput struct {
	Diagonal    float64 `json:"diagonal" jsonschema:"required,Diagonal size in inches"`
	AspectRatio string  `json:"aspect_ratio" jsonschema:"required,Aspect ratio preset (16:9, 16:10, 21:9, 32:9) or a W:H pair such as 4:3"`
}

// DisplayGeometryOutput is the output for the display_geometry tool.
type DisplayGeometryOutput struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Area        float64 `json:"area"`
	AspectRatio string  `json:"aspect_ratio"`
	Ratio       string  `json:"ratio"`
	Dimensions  string  `json:"dimensions"`
}

// DisplayInput describes one display for fit_scale and plan_layout. Fields
// left unset keep the configured value for that label.
type DisplayInput struct {
	Label       string   `json:"label" jsonschema:"required,Display label (A-D)"`
	Enabled     *bool    `json:"enabled,omitempty" jsonschema:"Whether the display takes part in the plan"`
	Diagonal    *float64 `json:"diagonal,omitempty" jsonschema:"Diagonal size in inches"`
	AspectRatio string   `json:"aspect_ratio,omitempty" jsonschema:"Aspect ratio preset or W:H pair"`
	Rotation    *int     `json:"rotation,omitempty" jsonschema:"Rotation in degrees (multiple of 90)"`
	X           *float64 `json:"x,omitempty" jsonschema:"Left edge in scene units"`
	Y           *float64 `json:"y,omitempty" jsonschema:"Top edge in scene units"`
}

// FitScaleInput is the input for the fit_scale tool.
type FitScaleInput struct {
	Displays     []DisplayInput `json:"displays,omitempty" jsonschema:"Display overrides applied on top of the configured displays"`
	CanvasWidth  float64        `json:"canvas_width" jsonschema:"required,Canvas width in pixels"`
	CanvasHeight float64        `json:"canvas_height" jsonschema:"required,Canvas height in pixels"`
}

// FitScaleOutput is the output for the fit_scale tool.
type FitScaleOutput struct {
	Scale    float64 `json:"scale"`
	Fallback bool    `json:"fallback"`
	Enabled  int     `json:"enabled"`
}

// PlanLayoutInput is the input for the plan_layout tool.
type PlanLayoutInput struct {
	Displays     []DisplayInput `json:"displays,omitempty" jsonschema:"Display overrides applied on top of the configured displays"`
	CanvasWidth  float64        `json:"canvas_width" jsonschema:"required,Canvas width in pixels"`
	CanvasHeight float64        `json:"canvas_height" jsonschema:"required,Canvas height in pixels"`
	Zoom         *float64       `json:"zoom,omitempty" jsonschema:"Zoom factor, clamped to 0.2-3.0 (default: configured zoom)"`
}

// PlacedDisplay is one enabled display as drawn.
type PlacedDisplay struct {
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Text       string  `json:"text"`
	Rotation   int     `json:"rotation"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Dimensions string  `json:"dimensions"`
	Area       string  `json:"area"`
}

// PlanLayoutOutput is the output for the plan_layout tool.
type PlanLayoutOutput struct {
	Scale     float64         `json:"scale"`
	Zoom      float64         `json:"zoom"`
	Displays  []PlacedDisplay `json:"displays"`
	TotalArea string          `json:"total_area"`
}
