// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import "slices"

// GlyphMetadata describes one glyph of the font.
type GlyphMetadata struct {
	// Path is the icon file the glyph was read from.
	Path string

	Name string

	// Unicode holds the unicode values mapped to the glyph. A value of more
	// than one rune is a ligature sequence.
	Unicode []string

	// Renamed is set when the glyph was auto-numbered with PrependUnicode;
	// RenamedPath is then the file name carrying its code point.
	Renamed     bool
	RenamedPath string
}

// Codepoints returns the runes of the first unicode value.
func (m GlyphMetadata) Codepoints() []rune {
	if len(m.Unicode) == 0 {
		return nil
	}
	return []rune(m.Unicode[0])
}

func (m GlyphMetadata) clone() GlyphMetadata {
	m.Unicode = slices.Clone(m.Unicode)
	return m
}

// Glyph is one ingested icon.
type Glyph struct {
	Path     string
	Contents []byte
	Metadata GlyphMetadata
}
