// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package svgfont

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/webfont/internal/geom"
)

// Font is an SVG font document read back into memory.
type Font struct {
	ID         string
	Family     string
	Weight     string
	Style      string
	UnitsPerEm float64
	Ascent     float64
	Descent    float64
	HorizAdvX  float64

	MissingGlyph *FontGlyph
	Glyphs       []FontGlyph
}

// FontGlyph is one <glyph> element. Unicode holds the decoded character
// sequence; more than one rune denotes a ligature.
type FontGlyph struct {
	Name      string
	Unicode   string
	HorizAdvX float64
	Path      *geom.Path
}

// Parse reads an SVG font document. Glyph outlines are in font units
// with y pointing up.
func Parse(data []byte) (*Font, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var (
		f       Font
		inFont  bool
		sawFont bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFont, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			a := attrMap(t.Attr)
			switch t.Name.Local {
			case "font":
				if sawFont {
					return nil, fmt.Errorf("%w: more than one <font> element", ErrFont)
				}
				sawFont, inFont = true, true
				f.ID = a["id"]
				f.HorizAdvX = floatAttr(a, "horiz-adv-x", 0)
			case "font-face":
				if !inFont {
					continue
				}
				f.Family = a["font-family"]
				f.Weight = a["font-weight"]
				f.Style = a["font-style"]
				f.UnitsPerEm = floatAttr(a, "units-per-em", 1000)
				f.Ascent = floatAttr(a, "ascent", 0)
				f.Descent = floatAttr(a, "descent", 0)
			case "missing-glyph", "glyph":
				if !inFont {
					continue
				}
				g := FontGlyph{
					Name:      a["glyph-name"],
					Unicode:   a["unicode"],
					HorizAdvX: floatAttr(a, "horiz-adv-x", f.HorizAdvX),
					Path:      geom.NewPath(),
				}
				if d := a["d"]; d != "" {
					p, err := geom.ParsePathData(d)
					if err != nil {
						return nil, fmt.Errorf("%w: glyph %q: %w", ErrFont, g.Name, err)
					}
					g.Path = p
				}
				if t.Name.Local == "missing-glyph" {
					f.MissingGlyph = &g
				} else {
					f.Glyphs = append(f.Glyphs, g)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "font" {
				inFont = false
			}
		}
	}

	if !sawFont {
		return nil, fmt.Errorf("%w: no <font> element", ErrFont)
	}
	if f.UnitsPerEm <= 0 {
		return nil, fmt.Errorf("%w: units-per-em must be positive, got %v", ErrFont, f.UnitsPerEm)
	}
	if f.Family == "" {
		f.Family = f.ID
	}
	return &f, nil
}

func floatAttr(a map[string]string, key string, def float64) float64 {
	s, ok := a[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
