// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ttf converts an SVG font document into a TrueType font.
//
// The encoder writes the tables a web font needs: head, hhea, maxp, OS/2,
// hmtx, cmap, glyf, loca, name and post, plus a GSUB "liga" feature when
// glyphs carry multi-character unicode values. Output is deterministic:
// the created/modified timestamps come from Options, never the clock.
package ttf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/webfont/internal/otf"
	"github.com/gogpu/webfont/svgfont"
)

var (
	// ErrEncode is returned (wrapped) when a font cannot be encoded.
	ErrEncode = errors.New("ttf: cannot encode font")

	// ErrVerify is returned (wrapped) when an encoded font fails verification.
	ErrVerify = errors.New("ttf: verification failed")
)

// Options are the TrueType specific build options.
type Options struct {
	Copyright   string
	Description string
	URL         string

	// Version is written as "Version <Version>"; it defaults to "1.0".
	Version string

	// Timestamp is the created and modified date in Unix seconds.
	// Zero means the Unix epoch.
	Timestamp int64
}

// Encoder converts SVG fonts to TrueType. An Encoder is safe for
// concurrent use if its cache is.
type Encoder struct {
	opts  Options
	cache *GlyphCache
}

// NewEncoder returns an Encoder. cache may be nil.
func NewEncoder(opts Options, cache *GlyphCache) *Encoder {
	return &Encoder{opts: opts, cache: cache}
}

// Convert implements the webfont converter contract.
func (e *Encoder) Convert(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.Encode(src)
}

// Encode converts an SVG font document.
func (e *Encoder) Encode(svg []byte) ([]byte, error) {
	f, err := svgfont.Parse(svg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return e.EncodeFont(f)
}

// EncodeFont converts an already parsed SVG font.
func (e *Encoder) EncodeFont(f *svgfont.Font) ([]byte, error) {
	if len(f.Glyphs) > 0xFFFE {
		return nil, fmt.Errorf("%w: %d glyphs exceed the TrueType limit", ErrEncode, len(f.Glyphs))
	}

	// Keep integral em sizes as they are; anything else is rescaled to 1000.
	upm := f.UnitsPerEm
	scale := 1.0
	if upm != math.Trunc(upm) || upm < 16 || upm > 16384 {
		scale = 1000 / upm
		upm = 1000
	}
	units := func(v float64) int { return int(math.Round(v * scale)) }

	notdef := svgfont.FontGlyph{Name: ".notdef", HorizAdvX: 0}
	if f.MissingGlyph != nil {
		notdef = *f.MissingGlyph
		notdef.Name = ".notdef"
	}
	glyphs := append([]svgfont.FontGlyph{notdef}, f.Glyphs...)

	n := len(glyphs)
	outlines := make([]*outline, n)
	advances := make([]int, n)
	lsbs := make([]int, n)
	names := make([]string, n)
	for i, g := range glyphs {
		o := &outline{}
		if g.Path != nil && !g.Path.Empty() {
			o = e.encodeGlyph(g.Path, scale)
		}
		if !o.empty() && (o.xMin < math.MinInt16 || o.yMin < math.MinInt16 || o.xMax > math.MaxInt16 || o.yMax > math.MaxInt16) {
			return nil, fmt.Errorf("%w: glyph %q exceeds the coordinate range", ErrEncode, g.Name)
		}
		adv := units(g.HorizAdvX)
		if adv < 0 || adv > math.MaxUint16 {
			return nil, fmt.Errorf("%w: glyph %q advance %v out of range", ErrEncode, g.Name, g.HorizAdvX)
		}
		outlines[i] = o
		advances[i] = adv
		lsbs[i] = o.xMin
		names[i] = g.Name
	}

	cmap, ligs, err := charMap(glyphs)
	if err != nil {
		return nil, err
	}

	m := e.metrics(f, outlines, advances, cmap, ligs)
	m.unitsPerEm = int(upm)
	m.ascender = units(f.Ascent)
	m.descender = -units(math.Abs(f.Descent))

	// glyf and loca
	var glyf []byte
	offsets := make([]int, 0, n+1)
	for _, o := range outlines {
		offsets = append(offsets, len(glyf))
		glyf = append(glyf, o.data...)
		for len(glyf)%4 != 0 {
			glyf = append(glyf, 0)
		}
	}
	offsets = append(offsets, len(glyf))
	m.longLoca = len(glyf) > 0x1FFFC

	familyNames, err := e.names(f, m)
	if err != nil {
		return nil, err
	}

	tables := []otf.Table{
		{Tag: "head", Data: encodeHead(m)},
		{Tag: "hhea", Data: encodeHhea(m)},
		{Tag: "maxp", Data: encodeMaxp(m)},
		{Tag: "OS/2", Data: encodeOS2(m)},
		{Tag: "hmtx", Data: encodeHmtx(advances, lsbs)},
		{Tag: "cmap", Data: encodeCmap(cmap)},
		{Tag: "glyf", Data: glyf},
		{Tag: "loca", Data: encodeLoca(offsets, m.longLoca)},
		{Tag: "name", Data: familyNames},
		{Tag: "post", Data: encodePost(m, names)},
	}
	if len(ligs) > 0 {
		tables = append(tables, otf.Table{Tag: "GSUB", Data: encodeGSUB(ligs)})
	}
	return otf.Write(otf.VersionTrueType, tables), nil
}

// charMap maps single code points to glyphs and collects ligatures.
// Glyph 0 (.notdef) is never mapped. The first glyph claiming a code point
// keeps it. Ligatures whose components have no glyph are dropped.
func charMap(glyphs []svgfont.FontGlyph) (map[rune]uint16, []ligature, error) {
	cmap := make(map[rune]uint16)
	for i, g := range glyphs[1:] {
		rs := []rune(g.Unicode)
		if len(rs) != 1 {
			continue
		}
		if r := rs[0]; r > 0x10FFFF || (r >= 0xD800 && r <= 0xDFFF) {
			return nil, nil, fmt.Errorf("%w: glyph %q has invalid code point U+%04X", ErrEncode, g.Name, r)
		}
		if _, ok := cmap[rs[0]]; !ok {
			cmap[rs[0]] = uint16(i + 1)
		}
	}

	var ligs []ligature
	for i, g := range glyphs[1:] {
		rs := []rune(g.Unicode)
		if len(rs) < 2 {
			continue
		}
		comps := make([]uint16, 0, len(rs))
		for _, r := range rs {
			gid, ok := cmap[r]
			if !ok {
				comps = nil
				break
			}
			comps = append(comps, gid)
		}
		if comps != nil {
			ligs = append(ligs, ligature{components: comps, glyph: uint16(i + 1)})
		}
	}
	return cmap, ligs, nil
}

func (e *Encoder) metrics(f *svgfont.Font, outlines []*outline, advances []int, cmap map[rune]uint16, ligs []ligature) *metrics {
	m := &metrics{
		numGlyphs: len(outlines),
		weight:    weightClass(f.Weight),
		minLSB:    math.MaxInt16,
		minRSB:    math.MaxInt16,
	}
	m.bold = m.weight >= 700
	style := strings.ToLower(f.Style)
	m.italic = style == "italic" || style == "oblique"
	_, m.revision = versionString(e.opts.Version)
	m.createdModified = e.opts.Timestamp + macEpochOffset

	bounded := false
	var advSum, advCount int
	pitch := -1
	m.fixedPitch = true
	for i, o := range outlines {
		adv := advances[i]
		m.advanceMax = max(m.advanceMax, adv)
		if adv > 0 {
			advSum += adv
			advCount++
			if pitch >= 0 && pitch != adv {
				m.fixedPitch = false
			}
			pitch = adv
		}
		if o.empty() {
			continue
		}
		m.maxPoints = max(m.maxPoints, o.points)
		m.maxContours = max(m.maxContours, o.contours)
		if !bounded {
			m.xMin, m.yMin, m.xMax, m.yMax = o.xMin, o.yMin, o.xMax, o.yMax
			bounded = true
		} else {
			m.xMin, m.yMin = min(m.xMin, o.xMin), min(m.yMin, o.yMin)
			m.xMax, m.yMax = max(m.xMax, o.xMax), max(m.yMax, o.yMax)
		}
		m.minLSB = min(m.minLSB, o.xMin)
		m.minRSB = min(m.minRSB, adv-o.xMax)
		m.xMaxExtent = max(m.xMaxExtent, o.xMax)
	}
	if !bounded {
		m.minLSB, m.minRSB = 0, 0
	}
	if advCount > 0 {
		m.avgAdvance = int(math.Round(float64(advSum) / float64(advCount)))
	}
	if pitch < 0 {
		m.fixedPitch = false
	}

	cps := make([]rune, 0, len(cmap))
	for r := range cmap {
		cps = append(cps, r)
	}
	slices.Sort(cps)
	if len(cps) > 0 {
		m.firstChar = int(min(cps[0], 0xFFFF))
		m.lastChar = int(min(cps[len(cps)-1], 0xFFFF))
	}
	m.unicodeRanges = unicodeRanges(cps)
	for _, l := range ligs {
		m.maxContext = max(m.maxContext, len(l.components))
	}
	return m
}

func (e *Encoder) names(f *svgfont.Font, m *metrics) ([]byte, error) {
	family := f.Family
	if family == "" {
		family = "webfont"
	}
	sub := "Regular"
	switch {
	case m.bold && m.italic:
		sub = "Bold Italic"
	case m.bold:
		sub = "Bold"
	case m.italic:
		sub = "Italic"
	}
	full := family
	if sub != "Regular" {
		full += " " + sub
	}
	version, _ := versionString(e.opts.Version)
	desc := e.opts.Description
	if desc == "" {
		desc = "Generated by webfont"
	}

	table, err := otf.EncodeNames(map[uint16]string{
		otf.NameCopyright:   e.opts.Copyright,
		otf.NameFamily:      family,
		otf.NameSubfamily:   sub,
		otf.NameUniqueID:    family + ":" + sub + ":" + strings.TrimPrefix(version, "Version "),
		otf.NameFull:        full,
		otf.NameVersion:     version,
		otf.NamePostScript:  postScriptName(strings.ReplaceAll(full, " ", "-"), 63),
		otf.NameDescription: desc,
		otf.NameVendorURL:   e.opts.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return table, nil
}
