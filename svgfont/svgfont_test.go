// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package svgfont

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/webfont/internal/geom"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100"><path d="M10 10H90V90H10Z"/></svg>`

func TestParseIconShapes(t *testing.T) {
	tests := []struct {
		name       string
		svg        string
		wantBounds [4]float64 // minX minY maxX maxY
	}{
		{"path", square, [4]float64{10, 10, 90, 90}},
		{"rect", `<svg width="20" height="20"><rect x="2" y="3" width="10" height="5"/></svg>`, [4]float64{2, 3, 12, 8}},
		{"rounded rect", `<svg width="20" height="20"><rect width="10" height="10" rx="2"/></svg>`, [4]float64{0, 0, 10, 10}},
		{"circle", `<svg width="20" height="20"><circle cx="10" cy="10" r="4"/></svg>`, [4]float64{6, 6, 14, 14}},
		{"ellipse", `<svg width="20" height="20"><ellipse cx="10" cy="10" rx="6" ry="2"/></svg>`, [4]float64{4, 8, 16, 12}},
		{"line", `<svg width="20" height="20"><line x1="1" y1="2" x2="5" y2="9"/></svg>`, [4]float64{1, 2, 5, 9}},
		{"polygon", `<svg width="20" height="20"><polygon points="0,0 10,0 5,8"/></svg>`, [4]float64{0, 0, 10, 8}},
		{"polyline", `<svg width="20" height="20"><polyline points="1 1 3 7"/></svg>`, [4]float64{1, 1, 3, 7}},
		{"group transform", `<svg width="20" height="20"><g transform="translate(5 5)"><rect width="2" height="2" transform="scale(2)"/></g></svg>`, [4]float64{5, 5, 9, 9}},
		{"viewBox", `<svg viewBox="10 10 10 10" width="100" height="100"><rect x="10" y="10" width="5" height="5"/></svg>`, [4]float64{0, 0, 50, 50}},
		{"defs skipped", `<svg width="20" height="20"><defs><rect width="20" height="20"/></defs><rect x="1" y="1" width="2" height="2"/></svg>`, [4]float64{1, 1, 3, 3}},
		{"hidden skipped", `<svg width="20" height="20"><g display="none"><rect width="20" height="20"/></g><rect x="1" y="1" width="2" height="2"/></svg>`, [4]float64{1, 1, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon, err := ParseIcon([]byte(tt.svg))
			if err != nil {
				t.Fatalf("ParseIcon: %v", err)
			}
			b := icon.Path.Bounds()
			got := [4]float64{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y}
			for i := range got {
				if math.Abs(got[i]-tt.wantBounds[i]) > 1e-6 {
					t.Fatalf("bounds = %v, want %v", got, tt.wantBounds)
				}
			}
		})
	}
}

func TestParseIconSize(t *testing.T) {
	tests := []struct {
		svg  string
		w, h float64
	}{
		{`<svg width="24px" height="16"></svg>`, 24, 16},
		{`<svg viewBox="0 0 32 48"></svg>`, 32, 48},
		{`<svg viewBox="0,0,32,48" width="64"></svg>`, 64, 48},
		{`<svg><rect width="7" height="9"/></svg>`, 7, 9},
	}
	for _, tt := range tests {
		icon, err := ParseIcon([]byte(tt.svg))
		if err != nil {
			t.Fatalf("ParseIcon(%s): %v", tt.svg, err)
		}
		if icon.Width != tt.w || icon.Height != tt.h {
			t.Errorf("ParseIcon(%s) size = %vx%v, want %vx%v", tt.svg, icon.Width, icon.Height, tt.w, tt.h)
		}
	}
}

func TestParseIconErrors(t *testing.T) {
	tests := []string{
		`<div></div>`,
		`<svg width="10" height="10"><path d="M0 0 L"/></svg>`,
		`<svg viewBox="0 0 0 10"></svg>`,
		`<svg></svg>`,
		`<svg width="10" height="10"><g transform="spin(3)"><rect width="1" height="1"/></g></svg>`,
		`not xml at all`,
	}
	for _, svg := range tests {
		if _, err := ParseIcon([]byte(svg)); !errors.Is(err, ErrIcon) {
			t.Errorf("ParseIcon(%q) error = %v, want ErrIcon", svg, err)
		}
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in   string
		pt   geom.Point
		want geom.Point
	}{
		{"translate(10)", geom.Pt(1, 1), geom.Pt(11, 1)},
		{"translate(10, 20) scale(2)", geom.Pt(1, 1), geom.Pt(12, 22)},
		{"scale(2 3)", geom.Pt(1, 1), geom.Pt(2, 3)},
		{"rotate(90)", geom.Pt(1, 0), geom.Pt(0, 1)},
		{"rotate(180 5 5)", geom.Pt(0, 0), geom.Pt(10, 10)},
		{"matrix(1 0 0 1 7 8)", geom.Pt(0, 0), geom.Pt(7, 8)},
		{"skewX(45)", geom.Pt(0, 1), geom.Pt(1, 1)},
		{"", geom.Pt(3, 4), geom.Pt(3, 4)},
	}
	for _, tt := range tests {
		m, err := ParseTransform(tt.in)
		if err != nil {
			t.Fatalf("ParseTransform(%q): %v", tt.in, err)
		}
		if got := m.TransformPoint(tt.pt); got.Distance(tt.want) > 1e-9 {
			t.Errorf("ParseTransform(%q) maps %v to %v, want %v", tt.in, tt.pt, got, tt.want)
		}
	}
}

func assemble(t *testing.T, opts Options, glyphs ...Glyph) []byte {
	t.Helper()
	a := NewAssembler(opts)
	for _, g := range glyphs {
		if err := a.Add(g); err != nil {
			t.Fatalf("Add(%s): %v", g.Name, err)
		}
	}
	out, err := a.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return out
}

func TestAssemblerDocument(t *testing.T) {
	out := assemble(t, Options{FontName: "icons", Round: DefaultRound, Metadata: "a & b"},
		Glyph{Name: "square", Unicode: []string{"\uEA01"}, Contents: []byte(square)},
		Glyph{Name: "lig", Unicode: []string{"\uEA02", "ab"}, Contents: []byte(square)},
	)
	doc := string(out)
	for _, want := range []string{
		`<font id="icons" horiz-adv-x="100">`,
		`font-family="icons"`,
		`units-per-em="100" ascent="100"`,
		`<metadata>a &amp; b</metadata>`,
		`<missing-glyph horiz-adv-x="0" />`,
		`glyph-name="square"`,
		`unicode="&#xEA01;"`,
		`glyph-name="lig-1"`,
		`unicode="&#x61;&#x62;"`,
		`d="M10 90 L90 90 L90 10 L10 10 Z"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document lacks %q:\n%s", want, doc)
		}
	}
	if strings.Index(doc, `"square"`) > strings.Index(doc, `"lig"`) {
		t.Error("glyphs are not in insertion order")
	}
}

func TestAssemblerRoundTrip(t *testing.T) {
	ascent := 80.0
	out := assemble(t, Options{
		FontName: "icons", FontID: "icons-id", FontWeight: "400", FontStyle: "normal",
		FontHeight: 1000, Ascent: &ascent, Descent: 20, Round: 100,
	},
		Glyph{Name: "wide", Unicode: []string{"\uE001"}, Contents: []byte(`<svg width="200" height="100"><rect width="200" height="100"/></svg>`)},
		Glyph{Name: "small", Unicode: []string{"\uE002"}, Contents: []byte(`<svg width="50" height="50"><rect width="50" height="50"/></svg>`)},
	)

	f, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.ID != "icons-id" || f.Family != "icons" || f.UnitsPerEm != 1000 || f.Ascent != 80 || f.Descent != 20 {
		t.Errorf("font header = %+v", f)
	}
	if f.Weight != "400" || f.Style != "normal" {
		t.Errorf("weight/style = %q/%q", f.Weight, f.Style)
	}
	if f.MissingGlyph == nil || f.MissingGlyph.HorizAdvX != 0 {
		t.Errorf("missing glyph = %+v", f.MissingGlyph)
	}
	if len(f.Glyphs) != 2 {
		t.Fatalf("got %d glyphs", len(f.Glyphs))
	}
	// Scaled by 1000/100 relative to the tallest icon.
	if f.HorizAdvX != 2000 || f.Glyphs[0].HorizAdvX != 2000 || f.Glyphs[1].HorizAdvX != 500 {
		t.Errorf("advances = %v %v %v", f.HorizAdvX, f.Glyphs[0].HorizAdvX, f.Glyphs[1].HorizAdvX)
	}
	b := f.Glyphs[1].Path.Bounds()
	// height 500, flipped around 500 - descent.
	if b.Min.Y != -20 || b.Max.Y != 480 {
		t.Errorf("small glyph y range = [%v, %v], want [-20, 480]", b.Min.Y, b.Max.Y)
	}
	if f.Glyphs[0].Unicode != "\uE001" {
		t.Errorf("unicode = %q", f.Glyphs[0].Unicode)
	}
}

func TestAssemblerNormalizeFixedCenter(t *testing.T) {
	out := assemble(t, Options{FontName: "f", FontHeight: 100, Normalize: true, FixedWidth: true, CenterHorizontally: true},
		Glyph{Name: "tall", Unicode: []string{"a"}, Contents: []byte(`<svg width="10" height="20"><rect width="10" height="20"/></svg>`)},
		Glyph{Name: "wide", Unicode: []string{"b"}, Contents: []byte(`<svg width="40" height="20"><rect width="20" height="20"/></svg>`)},
	)
	f, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	// Normalized widths are 50 and 200; fixed width takes the widest.
	for _, g := range f.Glyphs {
		if g.HorizAdvX != 200 {
			t.Errorf("%s advance = %v, want 200", g.Name, g.HorizAdvX)
		}
		b := g.Path.Bounds()
		if math.Abs((b.Min.X+b.Max.X)/2-100) > 1e-6 {
			t.Errorf("%s is not centered: %+v", g.Name, b)
		}
		if b.Height() != 100 {
			t.Errorf("%s height = %v, want 100", g.Name, b.Height())
		}
	}
}

func TestAssemblerRejectsBrokenGlyph(t *testing.T) {
	a := NewAssembler(Options{FontName: "f"})
	err := a.Add(Glyph{Name: "bad", Unicode: []string{"a"}, Contents: []byte(`<svg width="1" height="1"><path d="Q"/></svg>`)})
	if !errors.Is(err, ErrIcon) {
		t.Fatalf("Add error = %v, want ErrIcon", err)
	}
	if a.Len() != 0 {
		t.Error("broken glyph was kept")
	}
	if err := a.Add(Glyph{Name: "nocode", Contents: []byte(square)}); !errors.Is(err, ErrIcon) {
		t.Errorf("glyph without unicode: %v", err)
	}
}

func TestAssemblerReportsGlyphLayoutError(t *testing.T) {
	a := NewAssembler(Options{FontName: "f", FontHeight: 1000, Normalize: true})
	if err := a.Add(Glyph{Name: "ok", Unicode: []string{"a"}, Contents: []byte(square), Source: "ok.svg"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	flat := `<svg width="1" height="1e-320"><path d="M0 0H1V1e-320Z"/></svg>`
	if err := a.Add(Glyph{Name: "flat", Unicode: []string{"b"}, Contents: []byte(flat), Source: "icons/flat.svg"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := a.Finalize()
	var ge *GlyphError
	if !errors.As(err, &ge) {
		t.Fatalf("Finalize error = %v, want *GlyphError", err)
	}
	if ge.Source != "icons/flat.svg" || ge.Name != "flat" {
		t.Errorf("GlyphError = {%q, %q}, want {icons/flat.svg, flat}", ge.Source, ge.Name)
	}
	if !errors.Is(err, ErrIcon) {
		t.Errorf("error %v does not wrap ErrIcon", err)
	}
	if !strings.Contains(err.Error(), "icons/flat.svg") {
		t.Errorf("error %q does not name the source", err)
	}
}

func TestParseRejectsNonFont(t *testing.T) {
	for _, doc := range []string{square, `<svg><defs><font><glyph d="M0"/></font></defs></svg>`, `<<`} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrFont) {
			t.Errorf("Parse(%q) error = %v, want ErrFont", doc, err)
		}
	}
}
