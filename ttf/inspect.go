// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ttf

import (
	"fmt"
	"sync"

	"github.com/gogpu/webfont/svgfont"
)

// Inspector parses an encoded font with an independent implementation so
// the output can be checked by a reader other than the encoder itself.
type Inspector interface {
	Inspect(data []byte) (InspectedFont, error)
}

// InspectedFont is the view of a parsed font used for verification.
type InspectedFont interface {
	// NumGlyphs returns the number of glyphs, .notdef included.
	NumGlyphs() int

	// UnitsPerEm returns the em size.
	UnitsPerEm() int

	// GlyphIndex returns the glyph mapped to r by the cmap.
	GlyphIndex(r rune) (uint16, bool)

	// CheckGlyph decodes the outline of a glyph.
	CheckGlyph(gid uint16) error
}

// LigatureShaper is implemented by inspected fonts that can shape text,
// which lets Verify check GSUB ligatures as well.
type LigatureShaper interface {
	Ligature(text []rune) (uint16, bool)
}

// DefaultInspector is used when no inspector name is given.
const DefaultInspector = "ximage"

var (
	inspectorsMu sync.RWMutex
	inspectors   = map[string]Inspector{
		"ximage": ximageInspector{},
		"gotext": gotextInspector{},
	}
)

// RegisterInspector makes an inspector available to Verify under name.
func RegisterInspector(name string, in Inspector) {
	inspectorsMu.Lock()
	defer inspectorsMu.Unlock()
	inspectors[name] = in
}

// LookupInspector returns the inspector registered under name.
// An empty name selects DefaultInspector.
func LookupInspector(name string) (Inspector, bool) {
	if name == "" {
		name = DefaultInspector
	}
	inspectorsMu.RLock()
	defer inspectorsMu.RUnlock()
	in, ok := inspectors[name]
	return in, ok
}

// Verify parses ttf with the named inspector and checks it against the SVG
// font it was encoded from: glyph count, every single code point mapping
// to its glyph, every outline decoding and, when the inspector can shape
// text, every ligature resolving to its glyph.
func Verify(ttf, svg []byte, inspector string) error {
	in, ok := LookupInspector(inspector)
	if !ok {
		return fmt.Errorf("%w: unknown inspector %q", ErrVerify, inspector)
	}
	src, err := svgfont.Parse(svg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	font, err := in.Inspect(ttf)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}

	if got, want := font.NumGlyphs(), len(src.Glyphs)+1; got != want {
		return fmt.Errorf("%w: font has %d glyphs, want %d", ErrVerify, got, want)
	}
	glyphs := append([]svgfont.FontGlyph{{}}, src.Glyphs...)
	cmap, ligs, err := charMap(glyphs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	for r, want := range cmap {
		got, ok := font.GlyphIndex(r)
		if !ok || got != want {
			return fmt.Errorf("%w: U+%04X maps to glyph %d, want %d", ErrVerify, r, got, want)
		}
	}
	for gid := range font.NumGlyphs() {
		if err := font.CheckGlyph(uint16(gid)); err != nil {
			return fmt.Errorf("%w: glyph %d: %w", ErrVerify, gid, err)
		}
	}

	shaper, ok := font.(LigatureShaper)
	if !ok {
		return nil
	}
	for _, l := range ligs {
		text := []rune(glyphs[l.glyph].Unicode)
		if got, ok := shaper.Ligature(text); !ok || got != l.glyph {
			return fmt.Errorf("%w: ligature %q shapes to glyph %d, want %d", ErrVerify, string(text), got, l.glyph)
		}
	}
	return nil
}
