// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ttf

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/webfont/internal/geom"
)

// quadTolerance is the maximum distance, in font units, between a cubic
// segment and its quadratic approximation.
const quadTolerance = 0.3

// Simple glyph flags.
const (
	flagOnCurve = 0x01
	flagXShort  = 0x02
	flagYShort  = 0x04
	flagRepeat  = 0x08
	flagXSame   = 0x10
	flagYSame   = 0x20
)

type point struct {
	x, y int
	on   bool
}

// outline is an encoded glyf record and the figures other tables need.
type outline struct {
	data                   []byte
	xMin, yMin, xMax, yMax int
	points, contours       int
}

func (o *outline) empty() bool { return o.contours == 0 }

// GlyphCache memoizes glyph encodings across builds. It is safe for
// concurrent use.
type GlyphCache struct {
	lru *lru.Cache[string, *outline]
}

// NewGlyphCache returns a cache holding up to size glyph encodings.
// A size below one returns nil, which disables caching.
func NewGlyphCache(size int) *GlyphCache {
	if size < 1 {
		return nil
	}
	c, err := lru.New[string, *outline](size)
	if err != nil {
		return nil
	}
	return &GlyphCache{lru: c}
}

// Len returns the number of cached encodings.
func (c *GlyphCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

func (c *GlyphCache) get(key string) (*outline, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *GlyphCache) add(key string, o *outline) {
	if c != nil {
		c.lru.Add(key, o)
	}
}

// encodeGlyph converts a path in font units, scaled by scale, into a
// TrueType simple glyph.
func (e *Encoder) encodeGlyph(p *geom.Path, scale float64) *outline {
	key := geom.FormatNumber(scale) + "|" + geom.EncodePathData(p, 0)
	if o, ok := e.cache.get(key); ok {
		return o
	}
	if scale != 1 {
		p = p.Transform(geom.Scale(scale, scale))
	}
	o := encodeOutline(contours(p))
	e.cache.add(key, o)
	return o
}

// contours flattens a path into TrueType contours made of on-curve and
// quadratic off-curve points on the integer grid.
func contours(p *geom.Path) [][]point {
	var (
		out [][]point
		cur []point
		pos geom.Point
	)
	add := func(pt geom.Point, on bool) {
		cur = append(cur, point{x: int(math.Round(pt.X)), y: int(math.Round(pt.Y)), on: on})
	}
	flush := func() {
		if c := cleanContour(cur); len(c) > 1 {
			out = append(out, c)
		}
		cur = nil
	}

	for _, el := range p.Elements() {
		switch e := el.(type) {
		case geom.MoveTo:
			flush()
			add(e.Point, true)
			pos = e.Point
		case geom.LineTo:
			add(e.Point, true)
			pos = e.Point
		case geom.QuadTo:
			add(e.Control, false)
			add(e.Point, true)
			pos = e.Point
		case geom.CubicTo:
			c := geom.CubicBez{P0: pos, P1: e.Control1, P2: e.Control2, P3: e.Point}
			for _, q := range c.ToQuads(quadTolerance) {
				add(q.P1, false)
				add(q.P2, true)
			}
			pos = e.Point
		case geom.Close:
			flush()
		}
	}
	flush()
	return out
}

// cleanContour drops points that do not change the outline once on the
// integer grid: repeated points, the closing point that duplicates the
// start, and on-curve points implied halfway between two off-curve points.
func cleanContour(c []point) []point {
	if len(c) == 0 {
		return nil
	}
	dedup := c[:1]
	for _, pt := range c[1:] {
		last := dedup[len(dedup)-1]
		if pt.x == last.x && pt.y == last.y {
			if pt.on {
				dedup[len(dedup)-1] = pt
			}
			continue
		}
		dedup = append(dedup, pt)
	}
	for len(dedup) > 1 {
		first, last := dedup[0], dedup[len(dedup)-1]
		if first.x != last.x || first.y != last.y {
			break
		}
		if last.on {
			dedup[0].on = true
		}
		dedup = dedup[:len(dedup)-1]
	}

	n := len(dedup)
	if n < 3 {
		return dedup
	}
	out := make([]point, 0, n)
	for i, pt := range dedup {
		prev, next := dedup[(i+n-1)%n], dedup[(i+1)%n]
		if pt.on && !prev.on && !next.on && 2*pt.x == prev.x+next.x && 2*pt.y == prev.y+next.y {
			continue
		}
		out = append(out, pt)
	}
	return out
}

// encodeOutline writes a simple glyph description.
func encodeOutline(cs [][]point) *outline {
	o := &outline{}
	if len(cs) == 0 {
		return o
	}
	o.xMin, o.yMin = math.MaxInt, math.MaxInt
	o.xMax, o.yMax = math.MinInt, math.MinInt
	for _, c := range cs {
		for _, pt := range c {
			o.xMin, o.xMax = min(o.xMin, pt.x), max(o.xMax, pt.x)
			o.yMin, o.yMax = min(o.yMin, pt.y), max(o.yMax, pt.y)
		}
		o.points += len(c)
	}
	o.contours = len(cs)

	var (
		flags  []byte
		xs, ys []byte
		px, py int
	)
	for _, c := range cs {
		for _, pt := range c {
			var f byte
			if pt.on {
				f = flagOnCurve
			}
			f, xs = appendDelta(f, xs, pt.x-px, flagXShort, flagXSame)
			f, ys = appendDelta(f, ys, pt.y-py, flagYShort, flagYSame)
			flags = append(flags, f)
			px, py = pt.x, pt.y
		}
	}

	size := 10 + 2*len(cs) + 2 + len(flags) + len(xs) + len(ys)
	w := make([]byte, 0, size)
	w = be16(w, uint16(int16(len(cs))))
	w = be16(w, uint16(int16(o.xMin)))
	w = be16(w, uint16(int16(o.yMin)))
	w = be16(w, uint16(int16(o.xMax)))
	w = be16(w, uint16(int16(o.yMax)))
	end := -1
	for _, c := range cs {
		end += len(c)
		w = be16(w, uint16(end))
	}
	w = be16(w, 0) // instructionLength
	w = appendFlags(w, flags)
	w = append(w, xs...)
	w = append(w, ys...)
	o.data = w
	return o
}

func appendDelta(f byte, buf []byte, d int, short, same byte) (byte, []byte) {
	switch {
	case d == 0:
		return f | same, buf
	case d >= -255 && d <= 255:
		f |= short
		if d > 0 {
			f |= same
		} else {
			d = -d
		}
		return f, append(buf, byte(d))
	}
	return f, be16(buf, uint16(int16(d)))
}

// appendFlags run-length encodes repeated flags.
func appendFlags(w, flags []byte) []byte {
	for i := 0; i < len(flags); {
		f := flags[i]
		run := 1
		for i+run < len(flags) && flags[i+run] == f && run < 256 {
			run++
		}
		if run > 1 {
			w = append(w, f|flagRepeat, byte(run-1))
		} else {
			w = append(w, f)
		}
		i += run
	}
	return w
}

func be16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}
