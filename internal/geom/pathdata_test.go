// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"errors"
	"math"
	"testing"
)

func TestParsePathDataCommands(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want string
	}{
		{"absolute lines", "M0 0 L10 0 L10 10 Z", "M0 0 L10 0 L10 10 Z"},
		{"relative lines", "m5 5 l10 0 l0 10 z", "M5 5 L15 5 L15 15 Z"},
		{"implicit lineto", "M0 0 10 0 10 10", "M0 0 L10 0 L10 10"},
		{"horizontal vertical", "M1 1 H5 V7 h-2 v-3", "M1 1 L5 1 L5 7 L3 7 L3 4"},
		{"compact numbers", "M0,0L.5-.5", "M0 0 L0.5 -0.5"},
		{"exponent", "M1e1 2E0", "M10 2"},
		{"cubic", "M0 0 C1 1 2 1 3 0", "M0 0 C1 1 2 1 3 0"},
		{"smooth cubic reflects", "M0 0 C1 1 2 1 3 0 S5 -1 6 0", "M0 0 C1 1 2 1 3 0 C4 -1 5 -1 6 0"},
		{"smooth cubic without predecessor", "M0 0 S1 1 2 0", "M0 0 C0 0 1 1 2 0"},
		{"quad", "M0 0 q1 2 2 0", "M0 0 Q1 2 2 0"},
		{"smooth quad reflects", "M0 0 Q1 2 2 0 T4 0", "M0 0 Q1 2 2 0 Q3 -2 4 0"},
		{"multiple subpaths", "M0 0 L1 0 Z M5 5 L6 5 Z", "M0 0 L1 0 Z M5 5 L6 5 Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePathData(tt.d)
			if err != nil {
				t.Fatalf("ParsePathData(%q): %v", tt.d, err)
			}
			if got := EncodePathData(p, 1000); got != tt.want {
				t.Errorf("ParsePathData(%q) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"missing command", "10 10"},
		{"no moveto", "L10 10"},
		{"truncated pair", "M10"},
		{"garbage", "M0 0 L x 1"},
		{"number after close", "M0 0 L1 1 Z 4 4"},
		{"bad arc flag", "M0 0 A5 5 0 2 0 10 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePathData(tt.d)
			if err == nil {
				t.Fatalf("ParsePathData(%q) succeeded, want error", tt.d)
			}
			if !errors.Is(err, ErrPathData) {
				t.Errorf("error %v does not wrap ErrPathData", err)
			}
			var pde *PathDataError
			if !errors.As(err, &pde) {
				t.Errorf("error %T is not a *PathDataError", err)
			}
		})
	}
}

func TestArcEndsAtTarget(t *testing.T) {
	p, err := ParsePathData("M0 0 A10 10 0 0 1 20 0")
	if err != nil {
		t.Fatal(err)
	}
	end := p.CurrentPoint()
	if end.Distance(Pt(20, 0)) > 1e-9 {
		t.Errorf("arc ends at %v, want (20,0)", end)
	}
	b := p.Bounds()
	// Half circle of radius 10 centred at (10,0), sweeping through y=+10.
	if math.Abs(b.Height()-10) > 0.05 {
		t.Errorf("arc bounds height = %v, want ~10", b.Height())
	}
}

func TestPackedArcFlags(t *testing.T) {
	p, err := ParsePathData("M0 0a5 5 0 0010 0")
	if err != nil {
		t.Fatalf("packed flags: %v", err)
	}
	if end := p.CurrentPoint(); end.Distance(Pt(10, 0)) > 1e-9 {
		t.Errorf("arc ends at %v, want (10,0)", end)
	}
}

func TestEncodePathDataRounding(t *testing.T) {
	p := NewPath()
	p.MoveTo(0.123456, -0.0001)
	p.LineTo(1.005, 2.5)
	if got, want := EncodePathData(p, 100), "M0.12 0 L1 2.5"; got != want {
		t.Errorf("EncodePathData = %q, want %q", got, want)
	}
}

func TestCubicToQuadsKeepsEndpoints(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 100), P2: Pt(100, 100), P3: Pt(100, 0)}
	quads := c.ToQuads(0.1)
	if len(quads) < 2 {
		t.Fatalf("expected the curve to be split, got %d quads", len(quads))
	}
	if quads[0].P0 != c.P0 || quads[len(quads)-1].P2 != c.P3 {
		t.Errorf("quads do not span the cubic end points")
	}
	for i := 1; i < len(quads); i++ {
		if quads[i].P0.Distance(quads[i-1].P2) > 1e-9 {
			t.Errorf("quad %d is not joined to its predecessor", i)
		}
	}
	for i := 0; i <= 20; i++ {
		tt := float64(i) / 20
		want := c.Eval(tt)
		best := math.Inf(1)
		for _, q := range quads {
			for j := 0; j <= 50; j++ {
				best = math.Min(best, q.Eval(float64(j)/50).Distance(want))
			}
		}
		if best > 1.0 {
			t.Errorf("cubic point %v is %v away from the approximation", want, best)
		}
	}
}

func TestPathBoundsAndTransform(t *testing.T) {
	p := NewPath()
	p.Circle(10, 10, 5)
	b := p.Bounds()
	if math.Abs(b.Min.X-5) > 1e-6 || math.Abs(b.Max.Y-15) > 1e-6 {
		t.Errorf("circle bounds = %+v", b)
	}

	flipped := p.Transform(Scale(1, -1).Multiply(Translate(0, -20)))
	fb := flipped.Bounds()
	if math.Abs(fb.Min.Y-5) > 1e-6 || math.Abs(fb.Max.Y-15) > 1e-6 {
		t.Errorf("flipped bounds = %+v", fb)
	}

	if !NewPath().Bounds().Empty() {
		t.Error("empty path should have empty bounds")
	}
}

func TestRoundedRectangleStaysInside(t *testing.T) {
	p := NewPath()
	p.RoundedRectangle(0, 0, 10, 4, 3, 3)
	b := p.Bounds()
	if b.Min.X < -1e-9 || b.Max.X > 10+1e-9 || b.Min.Y < -1e-9 || b.Max.Y > 4+1e-9 {
		t.Errorf("rounded rect bounds = %+v", b)
	}
}
