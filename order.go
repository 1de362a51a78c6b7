// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"slices"

	"github.com/gogpu/webfont/internal/natsort"
)

// orderGlyphs puts glyphs in final build order: naturally sorted by path
// when cfg.Sort is set, otherwise left in input order.
func orderGlyphs(cfg Config, glyphs []Glyph) {
	if !cfg.Sort {
		return
	}
	slices.SortStableFunc(glyphs, func(a, b Glyph) int {
		return natsort.ComparePaths(a.Path, b.Path)
	})
}
