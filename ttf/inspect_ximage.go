// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ttf

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageInspector implements Inspector using golang.org/x/image/font/sfnt.
type ximageInspector struct{}

// Inspect implements Inspector.Inspect.
func (ximageInspector) Inspect(data []byte) (InspectedFont, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ttf: failed to parse font: %w", err)
	}
	return &ximageFont{font: f}, nil
}

type ximageFont struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

func (f *ximageFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

func (f *ximageFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

func (f *ximageFont) GlyphIndex(r rune) (uint16, bool) {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return uint16(idx), true
}

func (f *ximageFont) CheckGlyph(gid uint16) error {
	ppem := fixed.I(f.UnitsPerEm())
	if _, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), ppem, nil); err != nil {
		return err
	}
	return nil
}
