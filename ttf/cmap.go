// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ttf

import (
	"slices"

	"github.com/gogpu/webfont/internal/otf"
)

type mapping struct {
	r   rune
	gid uint16
}

// run is a range of consecutive code points mapped to consecutive glyphs.
type run struct {
	start, end rune
	gid        uint16
}

func runs(ms []mapping, limit rune) []run {
	var out []run
	for _, m := range ms {
		if m.r > limit {
			break
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			if m.r == last.end+1 && int(m.gid) == int(last.gid)+int(m.r-last.start) {
				last.end = m.r
				continue
			}
		}
		out = append(out, run{start: m.r, end: m.r, gid: m.gid})
	}
	return out
}

// encodeCmap writes format 4 subtables for the BMP and, when any code
// point lies outside it, format 12 subtables for the full range.
func encodeCmap(cmap map[rune]uint16) []byte {
	ms := make([]mapping, 0, len(cmap))
	for r, g := range cmap {
		ms = append(ms, mapping{r, g})
	}
	slices.SortFunc(ms, func(a, b mapping) int { return int(a.r) - int(b.r) })

	f4 := encodeFormat4(runs(ms, 0xFFFE))
	var f12 []byte
	if len(ms) > 0 && ms[len(ms)-1].r > 0xFFFF {
		f12 = encodeFormat12(runs(ms, 0x10FFFF))
	}

	type record struct {
		platform, encoding uint16
		full               bool
	}
	records := []record{{0, 3, false}, {3, 1, false}}
	if f12 != nil {
		records = []record{{0, 3, false}, {0, 4, true}, {3, 1, false}, {3, 10, true}}
	}

	w := otf.NewBuffer(64 + len(f4) + len(f12))
	w.U16(0)
	w.U16(uint16(len(records)))
	f4Off := 4 + 8*len(records)
	f12Off := f4Off + len(f4)
	for _, r := range records {
		w.U16(r.platform)
		w.U16(r.encoding)
		if r.full {
			w.U32(uint32(f12Off))
		} else {
			w.U32(uint32(f4Off))
		}
	}
	w.Write(f4)
	w.Write(f12)
	return w.Bytes()
}

func encodeFormat4(rs []run) []byte {
	// Every table ends with the 0xFFFF sentinel segment.
	rs = append(rs, run{start: 0xFFFF, end: 0xFFFF, gid: 0})
	segs := len(rs)
	length := 16 + 8*segs

	w := otf.NewBuffer(length)
	w.U16(4)
	w.U16(uint16(length))
	w.U16(0) // language
	sr, es, rsh := otf.SearchParams(segs, 2)
	w.U16(uint16(segs * 2))
	w.U16(sr)
	w.U16(es)
	w.U16(rsh)
	for _, r := range rs {
		w.U16(uint16(r.end))
	}
	w.U16(0) // reservedPad
	for _, r := range rs {
		w.U16(uint16(r.start))
	}
	for i, r := range rs {
		delta := uint16(int(r.gid) - int(r.start))
		if i == segs-1 {
			delta = 1
		}
		w.U16(delta)
	}
	for range rs {
		w.U16(0) // idRangeOffset
	}
	return w.Bytes()
}

func encodeFormat12(rs []run) []byte {
	length := 16 + 12*len(rs)
	w := otf.NewBuffer(length)
	w.U16(12)
	w.U16(0)
	w.U32(uint32(length))
	w.U32(0) // language
	w.U32(uint32(len(rs)))
	for _, r := range rs {
		w.U32(uint32(r.start))
		w.U32(uint32(r.end))
		w.U32(uint32(r.gid))
	}
	return w.Bytes()
}
