// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package svgfont

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/webfont/internal/geom"
)

// DefaultRound is the default coordinate rounding precision factor.
const DefaultRound = 10e12

// Options are the global font parameters of an assembled font.
type Options struct {
	FontName   string
	FontID     string // defaults to FontName
	FontStyle  string
	FontWeight string

	// FontHeight is the units-per-em of the font. Zero means the height of
	// the tallest icon.
	FontHeight float64

	// Ascent defaults to FontHeight - Descent when nil.
	Ascent  *float64
	Descent float64

	FixedWidth         bool
	CenterHorizontally bool

	// Normalize scales every icon to the font height instead of keeping
	// icons proportional to the tallest one.
	Normalize bool

	// Round is the coordinate precision factor: coordinates are rounded to
	// 1/Round steps. Zero or negative disables rounding.
	Round float64

	// Metadata is written into the document's <metadata> element.
	Metadata string
}

// Glyph is one icon to be added to the font.
type Glyph struct {
	Name     string
	Unicode  []string
	Contents []byte

	// Source names where the icon came from, usually its file path.
	// It is only used in errors.
	Source string
}

// GlyphError reports a glyph that could not be laid out.
type GlyphError struct {
	Source string
	Name   string
	Err    error
}

func (e *GlyphError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("svgfont: glyph %q (%s): %v", e.Name, e.Source, e.Err)
	}
	return fmt.Sprintf("svgfont: glyph %q: %v", e.Name, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}

type pendingGlyph struct {
	name    string
	unicode []string
	source  string
	icon    *Icon
}

// Assembler folds icons, in order, into an SVG font document.
// Glyphs are parsed as they are added so a broken icon fails fast;
// layout happens once every glyph is known, in Finalize.
type Assembler struct {
	opts   Options
	glyphs []pendingGlyph
	done   bool
}

// NewAssembler returns an Assembler for one font.
func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Add parses g and appends it to the font.
func (a *Assembler) Add(g Glyph) error {
	if a.done {
		return fmt.Errorf("svgfont: Add after Finalize")
	}
	if len(g.Unicode) == 0 {
		return fmt.Errorf("%w: glyph %q has no unicode value", ErrIcon, g.Name)
	}
	icon, err := ParseIcon(g.Contents)
	if err != nil {
		return err
	}
	a.glyphs = append(a.glyphs, pendingGlyph{name: g.Name, unicode: g.Unicode, source: g.Source, icon: icon})
	return nil
}

// Len returns the number of glyphs added so far.
func (a *Assembler) Len() int {
	return len(a.glyphs)
}

// Finalize lays out every glyph and returns the font document.
func (a *Assembler) Finalize() ([]byte, error) {
	if a.done {
		return nil, fmt.Errorf("svgfont: Finalize called twice")
	}
	a.done = true
	o := a.opts

	var maxHeight, maxWidth float64
	for _, g := range a.glyphs {
		maxHeight = math.Max(maxHeight, g.icon.Height)
		maxWidth = math.Max(maxWidth, g.icon.Width)
	}

	fontHeight := o.FontHeight
	if fontHeight <= 0 {
		fontHeight = maxHeight
	}
	fontWidth := maxWidth
	switch {
	case o.Normalize:
		fontWidth = 0
		for _, g := range a.glyphs {
			fontWidth = math.Max(fontWidth, fontHeight/g.icon.Height*g.icon.Width)
		}
	case o.FontHeight > 0 && maxHeight > 0:
		fontWidth *= fontHeight / maxHeight
	}

	ascent := fontHeight - o.Descent
	if o.Ascent != nil {
		ascent = *o.Ascent
	}
	fontID := o.FontID
	if fontID == "" {
		fontID = o.FontName
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" standalone="no"?>` + "\n")
	b.WriteString(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd" >` + "\n")
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">` + "\n")
	if o.Metadata != "" {
		b.WriteString("<metadata>")
		escapeText(&b, o.Metadata)
		b.WriteString("</metadata>\n")
	}
	b.WriteString("<defs>\n")
	fmt.Fprintf(&b, "  <font id=\"%s\" horiz-adv-x=\"%s\">\n", attr(fontID), num(fontWidth))
	fmt.Fprintf(&b, "    <font-face font-family=\"%s\"\n", attr(o.FontName))
	fmt.Fprintf(&b, "      units-per-em=\"%s\" ascent=\"%s\"\n", num(fontHeight), num(ascent))
	fmt.Fprintf(&b, "      descent=\"%s\"", num(o.Descent))
	if o.FontWeight != "" {
		fmt.Fprintf(&b, "\n      font-weight=\"%s\"", attr(o.FontWeight))
	}
	if o.FontStyle != "" {
		fmt.Fprintf(&b, "\n      font-style=\"%s\"", attr(o.FontStyle))
	}
	b.WriteString(" />\n")
	b.WriteString("    <missing-glyph horiz-adv-x=\"0\" />\n")

	for _, g := range a.glyphs {
		ratio := fontHeight / maxHeight
		if o.Normalize {
			ratio = fontHeight / g.icon.Height
		}
		if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
			return nil, &GlyphError{Source: g.source, Name: g.name, Err: fmt.Errorf("%w: degenerate size", ErrIcon)}
		}
		width := g.icon.Width * ratio
		height := g.icon.Height * ratio
		if o.FixedWidth {
			width = fontWidth
		}

		// Flip into font space: y up, baseline at height - descent.
		m := geom.Matrix{A: 1, E: -1, F: height - o.Descent}.Multiply(geom.Scale(ratio, ratio))
		path := g.icon.Path.Transform(m)
		if o.CenterHorizontally {
			if bounds := path.Bounds(); !bounds.Empty() {
				path = path.Transform(geom.Translate((width-bounds.Width())/2-bounds.Min.X, 0))
			}
		}
		d := geom.EncodePathData(path, o.Round)

		for i, u := range g.unicode {
			name := g.name
			if i > 0 {
				name = fmt.Sprintf("%s-%d", g.name, i)
			}
			fmt.Fprintf(&b, "    <glyph glyph-name=\"%s\"\n", attr(name))
			fmt.Fprintf(&b, "      unicode=\"%s\"\n", unicodeEntities(u))
			fmt.Fprintf(&b, "      horiz-adv-x=\"%s\" d=\"%s\" />\n", num(width), d)
		}
	}
	b.WriteString("  </font>\n</defs>\n</svg>\n")
	return []byte(b.String()), nil
}

func num(v float64) string {
	return geom.FormatNumber(v)
}

func unicodeEntities(s string) string {
	var b strings.Builder
	for _, r := range s {
		fmt.Fprintf(&b, "&#x%X;", r)
	}
	return b.String()
}

func attr(s string) string {
	var b strings.Builder
	escapeText(&b, s)
	return b.String()
}

func escapeText(b *strings.Builder, s string) {
	// strings.Builder never fails to write.
	_ = xml.EscapeText(b, []byte(s))
}
