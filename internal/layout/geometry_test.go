package layout

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestDerive_RatioAndDiagonalIdentities(t *testing.T) {
	diagonals := []float64{13.3, 24, 27, 32, 34, 49}
	for _, aspect := range Presets() {
		for _, diag := range diagonals {
			d := NewDisplay("A", "#000000")
			d.Diagonal = diag
			d.Aspect = aspect

			g := Derive(d)
			r, _ := PresetRatio(aspect)
			if got, want := g.Width/g.Height, r.W/r.H; math.Abs(got-want) > eps {
				t.Fatalf("%s %.1f\": ratio=%v, want %v", aspect, diag, got, want)
			}
			if got := math.Hypot(g.Width, g.Height); math.Abs(got-diag) > 1e-9*diag {
				t.Fatalf("%s %.1f\": hypot=%v, want %v", aspect, diag, got, diag)
			}
			if math.Abs(g.Area-g.Width*g.Height) > eps {
				t.Fatalf("%s %.1f\": area=%v, want %v", aspect, diag, g.Area, g.Width*g.Height)
			}
		}
	}
}

func TestDerive_27Inch16x9(t *testing.T) {
	d := NewDisplay("A", "#3B82F6")
	d.Diagonal = 27

	g := Derive(d)
	if math.Abs(g.Height-13.2373) > 1e-3 {
		t.Fatalf("height=%v, want ~13.237", g.Height)
	}
	if math.Abs(g.Width-23.5330) > 1e-3 {
		t.Fatalf("width=%v, want ~23.533", g.Width)
	}
	if math.Abs(g.Area-311.51) > 0.05 {
		t.Fatalf("area=%v, want ~311.5", g.Area)
	}
	if got := FormatDimensions(g); got != "23.5\" × 13.2\"" {
		t.Fatalf("dimensions=%q", got)
	}
}

func TestDerive_DisabledIsZeroRegardlessOfFields(t *testing.T) {
	d := NewDisplay("C", "#10B981")
	d.Enabled = false
	d.Diagonal = 32
	d.Aspect = AspectCustom
	d.Custom = Ratio{W: 0, H: 0}

	if g := Derive(d); g != (Geometry{}) {
		t.Fatalf("expected zero geometry, got %+v", g)
	}
}

func TestDerive_DegenerateInputsYieldZero(t *testing.T) {
	tests := []struct {
		name     string
		diagonal float64
		custom   Ratio
	}{
		{"zero diagonal", 0, Ratio{W: 16, H: 9}},
		{"negative diagonal", -5, Ratio{W: 16, H: 9}},
		{"nan diagonal", math.NaN(), Ratio{W: 16, H: 9}},
		{"inf diagonal", math.Inf(1), Ratio{W: 16, H: 9}},
		{"zero height ratio", 27, Ratio{W: 16, H: 0}},
		{"zero width ratio", 27, Ratio{W: 0, H: 9}},
		{"negative ratio", 27, Ratio{W: -16, H: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDisplay("A", "#000000")
			d.Diagonal = tt.diagonal
			d.Aspect = AspectCustom
			d.Custom = tt.custom
			if g := Derive(d); g != (Geometry{}) {
				t.Fatalf("expected zero geometry, got %+v", g)
			}
		})
	}
}

func TestDerive_CustomRatio(t *testing.T) {
	d := NewDisplay("A", "#000000")
	d.Diagonal = 5
	d.Aspect = AspectCustom
	d.Custom = Ratio{W: 4, H: 3}

	g := Derive(d)
	if math.Abs(g.Width-4) > eps || math.Abs(g.Height-3) > eps {
		t.Fatalf("expected 4x3, got %vx%v", g.Width, g.Height)
	}
}

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		in      string
		aspect  AspectRatio
		ratio   Ratio
		wantErr bool
	}{
		{"16:9", Aspect16x9, Ratio{W: 16, H: 9}, false},
		{" 21:9 ", Aspect21x9, Ratio{W: 21, H: 9}, false},
		{"custom", AspectCustom, Ratio{}, false},
		{"CUSTOM", AspectCustom, Ratio{}, false},
		{"4:3", AspectCustom, Ratio{W: 4, H: 3}, false},
		{"3.5:1", AspectCustom, Ratio{W: 3.5, H: 1}, false},
		{"16.0:9", Aspect16x9, Ratio{W: 16, H: 9}, false},
		{"32:18", Aspect16x9, Ratio{W: 16, H: 9}, false},
		{"8:5", Aspect16x10, Ratio{W: 16, H: 10}, false},
		{"7:3", Aspect21x9, Ratio{W: 21, H: 9}, false},
		{"16:9.1", AspectCustom, Ratio{W: 16, H: 9.1}, false},
		{"4:0", "", Ratio{}, true},
		{"wide", "", Ratio{}, true},
		{"a:b", "", Ratio{}, true},
	}
	for _, tt := range tests {
		aspect, ratio, err := ParseAspectRatio(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseAspectRatio(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if aspect != tt.aspect || ratio != tt.ratio {
			t.Fatalf("ParseAspectRatio(%q) = %q %v, want %q %v", tt.in, aspect, ratio, tt.aspect, tt.ratio)
		}
	}
}

func TestNearestPreset(t *testing.T) {
	if a, ok := NearestPreset(Ratio{W: 597, H: 336}, 0.02); !ok || a != Aspect16x9 {
		t.Fatalf("expected 16:9 match, got %q ok=%v", a, ok)
	}
	if a, ok := NearestPreset(Ratio{W: 800, H: 343}, 0.02); !ok || a != Aspect21x9 {
		t.Fatalf("expected 21:9 match, got %q ok=%v", a, ok)
	}
	if _, ok := NearestPreset(Ratio{W: 4, H: 3}, 0.02); ok {
		t.Fatalf("expected 4:3 to fall outside tolerance")
	}
	if _, ok := NearestPreset(Ratio{}, 1); ok {
		t.Fatalf("expected empty ratio to have no preset")
	}
}
