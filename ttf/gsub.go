// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ttf

import (
	"slices"

	"github.com/gogpu/webfont/internal/otf"
)

// ligature replaces the component glyph sequence with glyph.
type ligature struct {
	components []uint16
	glyph      uint16
}

// encodeGSUB writes a GSUB table with a single "liga" feature, registered
// for the DFLT and latn scripts, holding one ligature substitution lookup.
func encodeGSUB(ligs []ligature) []byte {
	// Group by first component; longer ligatures are tried first.
	sets := make(map[uint16][]ligature)
	var coverage []uint16
	for _, l := range ligs {
		first := l.components[0]
		if _, ok := sets[first]; !ok {
			coverage = append(coverage, first)
		}
		sets[first] = append(sets[first], l)
	}
	slices.Sort(coverage)
	for _, g := range coverage {
		slices.SortStableFunc(sets[g], func(a, b ligature) int {
			if len(a.components) != len(b.components) {
				return len(b.components) - len(a.components)
			}
			return slices.Compare(a.components, b.components)
		})
	}

	subst := encodeLigatureSubst(coverage, sets)

	const (
		headerLen      = 10
		scriptLen      = 12 // Script with an inline default LangSys
		scriptListLen  = 2 + 2*6 + 2*scriptLen
		featureListLen = 2 + 6 + 6
		lookupListLen  = 2 + 2 + 8
	)
	w := otf.NewBuffer(headerLen + scriptListLen + featureListLen + lookupListLen + len(subst))
	w.U16(1) // majorVersion
	w.U16(0)
	w.U16(headerLen)
	w.U16(headerLen + scriptListLen)
	w.U16(headerLen + scriptListLen + featureListLen)

	// ScriptList
	w.U16(2)
	for i, tag := range []string{"DFLT", "latn"} {
		w.Tag(tag)
		w.U16(uint16(2 + 2*6 + i*scriptLen))
	}
	for range 2 {
		w.U16(4) // defaultLangSysOffset
		w.U16(0) // langSysCount
		w.U16(0) // lookupOrderOffset
		w.U16(0xFFFF)
		w.U16(1)
		w.U16(0) // feature index
	}

	// FeatureList
	w.U16(1)
	w.Tag("liga")
	w.U16(8)
	w.U16(0) // featureParamsOffset
	w.U16(1)
	w.U16(0) // lookup index

	// LookupList
	w.U16(1)
	w.U16(4)
	w.U16(4) // LigatureSubst
	w.U16(0) // lookupFlag
	w.U16(1)
	w.U16(8)

	w.Write(subst)
	return w.Bytes()
}

func encodeLigatureSubst(coverage []uint16, sets map[uint16][]ligature) []byte {
	n := len(coverage)
	headerLen := 6 + 2*n
	coverageLen := 4 + 2*n

	setBufs := make([][]byte, n)
	for i, g := range coverage {
		set := sets[g]
		sw := otf.NewBuffer(64)
		sw.U16(uint16(len(set)))
		off := 2 + 2*len(set)
		for _, l := range set {
			sw.U16(uint16(off))
			off += 4 + 2*(len(l.components)-1)
		}
		for _, l := range set {
			sw.U16(l.glyph)
			sw.U16(uint16(len(l.components)))
			for _, c := range l.components[1:] {
				sw.U16(c)
			}
		}
		setBufs[i] = sw.Bytes()
	}

	w := otf.NewBuffer(256)
	w.U16(1) // substFormat
	w.U16(uint16(headerLen))
	w.U16(uint16(n))
	off := headerLen + coverageLen
	for _, b := range setBufs {
		w.U16(uint16(off))
		off += len(b)
	}
	w.U16(1) // coverage format
	w.U16(uint16(n))
	for _, g := range coverage {
		w.U16(g)
	}
	for _, b := range setBufs {
		w.Write(b)
	}
	return w.Bytes()
}
