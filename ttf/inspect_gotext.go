// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ttf

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// gotextInspector implements Inspector using go-text/typesetting, which
// also runs the HarfBuzz shaper so GSUB ligatures get exercised.
type gotextInspector struct{}

// Inspect implements Inspector.Inspect.
func (gotextInspector) Inspect(data []byte) (InspectedFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ttf: failed to parse font: %w", err)
	}
	f := &gotextFont{face: face}
	// The face does not expose maxp; glyph data ends where the ids run out.
	for f.numGlyphs < 0xFFFF && face.GlyphData(font.GID(f.numGlyphs)) != nil {
		f.numGlyphs++
	}
	return f, nil
}

type gotextFont struct {
	face      *font.Face
	numGlyphs int
	shaper    shaping.HarfbuzzShaper
}

func (f *gotextFont) NumGlyphs() int {
	return f.numGlyphs
}

func (f *gotextFont) UnitsPerEm() int {
	return int(f.face.Font.Upem())
}

func (f *gotextFont) GlyphIndex(r rune) (uint16, bool) {
	gid, ok := f.face.Font.NominalGlyph(r)
	return uint16(gid), ok
}

func (f *gotextFont) CheckGlyph(gid uint16) error {
	if _, ok := f.face.GlyphDataOutline(gid); !ok {
		return fmt.Errorf("no outline data for glyph %d", gid)
	}
	return nil
}

func (f *gotextFont) Ligature(text []rune) (uint16, bool) {
	input := shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      fixed.I(f.UnitsPerEm()),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
	out := f.shaper.Shape(input)
	if len(out.Glyphs) != 1 {
		return 0, false
	}
	return uint16(out.Glyphs[0].GlyphID), true
}
