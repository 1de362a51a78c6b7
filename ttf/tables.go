// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ttf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/webfont/internal/otf"
)

// macEpochOffset is the number of seconds between 1904-01-01 and 1970-01-01.
const macEpochOffset = 2082844800

// metrics are the font-wide figures shared by several tables.
type metrics struct {
	unitsPerEm             int
	ascender, descender    int
	xMin, yMin, xMax, yMax int

	advanceMax      int
	minLSB, minRSB  int
	xMaxExtent      int
	avgAdvance      int
	maxPoints       int
	maxContours     int
	fixedPitch      bool
	longLoca        bool
	weight          int
	bold, italic    bool
	firstChar       int
	lastChar        int
	maxContext      int
	unicodeRanges   [4]uint32
	numGlyphs       int
	revision        float64
	createdModified int64
}

func encodeHead(m *metrics) []byte {
	w := otf.NewBuffer(54)
	w.U16(1)
	w.U16(0)
	w.Fixed(m.revision)
	w.U32(0) // checkSumAdjustment, set by otf.Write
	w.U32(0x5F0F3CF5)
	w.U16(0x000B) // baseline at y=0, lsb at x=0, integer ppem
	w.U16(uint16(m.unitsPerEm))
	w.U64(uint64(m.createdModified))
	w.U64(uint64(m.createdModified))
	w.I16(int16(m.xMin))
	w.I16(int16(m.yMin))
	w.I16(int16(m.xMax))
	w.I16(int16(m.yMax))
	var macStyle uint16
	if m.bold {
		macStyle |= 1
	}
	if m.italic {
		macStyle |= 2
	}
	w.U16(macStyle)
	w.U16(8) // lowestRecPPEM
	w.I16(2) // fontDirectionHint
	if m.longLoca {
		w.I16(1)
	} else {
		w.I16(0)
	}
	w.I16(0) // glyphDataFormat
	return w.Bytes()
}

func encodeHhea(m *metrics) []byte {
	w := otf.NewBuffer(36)
	w.U16(1)
	w.U16(0)
	w.I16(int16(m.ascender))
	w.I16(int16(m.descender))
	w.I16(0) // lineGap
	w.U16(uint16(m.advanceMax))
	w.I16(int16(m.minLSB))
	w.I16(int16(m.minRSB))
	w.I16(int16(m.xMaxExtent))
	w.I16(1) // caretSlopeRise
	w.I16(0) // caretSlopeRun
	w.I16(0) // caretOffset
	for range 4 {
		w.I16(0)
	}
	w.I16(0) // metricDataFormat
	w.U16(uint16(m.numGlyphs))
	return w.Bytes()
}

func encodeMaxp(m *metrics) []byte {
	w := otf.NewBuffer(32)
	w.U32(0x00010000)
	w.U16(uint16(m.numGlyphs))
	w.U16(uint16(m.maxPoints))
	w.U16(uint16(m.maxContours))
	w.U16(0) // maxCompositePoints
	w.U16(0) // maxCompositeContours
	w.U16(2) // maxZones
	for range 8 {
		w.U16(0)
	}
	return w.Bytes()
}

func encodeOS2(m *metrics) []byte {
	upm := float64(m.unitsPerEm)
	pct := func(f float64) int16 { return int16(f * upm) }

	w := otf.NewBuffer(96)
	w.U16(4)
	w.I16(int16(m.avgAdvance))
	w.U16(uint16(m.weight))
	w.U16(5) // usWidthClass: medium
	w.U16(0) // fsType: installable embedding
	w.I16(pct(0.65))
	w.I16(pct(0.6))
	w.I16(0)
	w.I16(pct(0.075))
	w.I16(pct(0.65))
	w.I16(pct(0.6))
	w.I16(0)
	w.I16(pct(0.35))
	w.I16(pct(0.05))
	w.I16(pct(0.26))
	w.I16(0)                  // sFamilyClass
	w.Write(make([]byte, 10)) // panose
	for _, r := range m.unicodeRanges {
		w.U32(r)
	}
	w.Tag("WFNT")
	var sel uint16
	if m.italic {
		sel |= 0x01
	}
	if m.bold {
		sel |= 0x20
	}
	if sel == 0 {
		sel = 0x40
	}
	w.U16(sel)
	w.U16(uint16(m.firstChar))
	w.U16(uint16(m.lastChar))
	w.I16(int16(m.ascender))
	w.I16(int16(m.descender))
	w.I16(0) // sTypoLineGap
	w.U16(uint16(max(m.ascender, m.yMax, 0)))
	w.U16(uint16(max(-m.descender, -m.yMin, 0)))
	w.U32(1) // ulCodePageRange1: Latin 1
	w.U32(0)
	w.I16(0) // sxHeight
	w.I16(0) // sCapHeight
	w.U16(0) // usDefaultChar
	w.U16(32)
	w.U16(uint16(m.maxContext))
	return w.Bytes()
}

// unicodeRanges sets the OS/2 ulUnicodeRange bits for the ranges icon
// fonts touch.
func unicodeRanges(cps []rune) [4]uint32 {
	var bits [4]uint32
	set := func(bit int) { bits[bit/32] |= 1 << (bit % 32) }
	for _, r := range cps {
		switch {
		case r < 0x80:
			set(0)
		case r < 0x100:
			set(1)
		case r >= 0xE000 && r <= 0xF8FF:
			set(60)
		case r >= 0xF0000:
			set(90)
			set(57)
		case r > 0xFFFF:
			set(57)
		}
	}
	return bits
}

func encodeHmtx(advances []int, lsbs []int) []byte {
	w := otf.NewBuffer(4 * len(advances))
	for i := range advances {
		w.U16(uint16(advances[i]))
		w.I16(int16(lsbs[i]))
	}
	return w.Bytes()
}

func encodeLoca(offsets []int, long bool) []byte {
	w := otf.NewBuffer(4 * len(offsets))
	for _, off := range offsets {
		if long {
			w.U32(uint32(off))
		} else {
			w.U16(uint16(off / 2))
		}
	}
	return w.Bytes()
}

var psInvalid = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// postScriptName sanitizes s into a PostScript glyph or font name.
func postScriptName(s string, limit int) string {
	s = psInvalid.ReplaceAllString(s, "_")
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}

// encodePost writes a version 2.0 post table. names[0] is .notdef.
func encodePost(m *metrics, names []string) []byte {
	w := otf.NewBuffer(64 + 8*len(names))
	w.U32(0x00020000)
	w.Fixed(0) // italicAngle
	w.I16(0)   // underlinePosition
	w.I16(0)   // underlineThickness
	if m.fixedPitch {
		w.U32(1)
	} else {
		w.U32(0)
	}
	for range 4 {
		w.U32(0)
	}
	w.U16(uint16(len(names)))

	seen := map[string]bool{".notdef": true}
	var custom []string
	for i, name := range names {
		if i == 0 {
			w.U16(0)
			continue
		}
		name = postScriptName(name, 63)
		if name == "" {
			name = "glyph" + strconv.Itoa(i)
		}
		for base, n := name, 1; seen[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		seen[name] = true
		w.U16(uint16(258 + len(custom)))
		custom = append(custom, name)
	}
	for _, name := range custom {
		w.U8(uint8(len(name)))
		w.Write([]byte(name))
	}
	return w.Bytes()
}

// versionString returns a name table version string and the matching
// head fontRevision.
func versionString(v string) (string, float64) {
	v = strings.TrimSpace(v)
	if v == "" {
		v = "1.0"
	}
	if !strings.HasPrefix(v, "Version ") {
		v = "Version " + v
	}
	num := strings.TrimPrefix(v, "Version ")
	if i := strings.IndexFunc(num, func(r rune) bool { return (r < '0' || r > '9') && r != '.' }); i >= 0 {
		num = num[:i]
	}
	rev, err := strconv.ParseFloat(num, 64)
	if err != nil {
		rev = 1
	}
	return v, rev
}

// weightClass maps a CSS font-weight to usWeightClass.
func weightClass(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return 400
	case "bold":
		return 700
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 1000 {
		return n
	}
	return 400
}
