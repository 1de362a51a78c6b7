// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package svgfont

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/webfont/internal/geom"
)

// ParseTransform parses an SVG transform list such as
// "translate(10 5) rotate(45) scale(2)". The functions compose left to
// right, so the rightmost one applies to the geometry first.
func ParseTransform(s string) (geom.Matrix, error) {
	m := geom.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return m, fmt.Errorf("%w: transform %q: missing '('", ErrIcon, s)
		}
		closing := strings.IndexByte(rest[open:], ')')
		if closing < 0 {
			return m, fmt.Errorf("%w: transform %q: missing ')'", ErrIcon, s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : open+closing])
		if err != nil {
			return m, fmt.Errorf("%w: transform %q: %v", ErrIcon, s, err)
		}
		t, err := transformFunc(name, args)
		if err != nil {
			return m, fmt.Errorf("%w: transform %q: %v", ErrIcon, s, err)
		}
		m = m.Multiply(t)
		rest = strings.TrimLeft(rest[open+closing+1:], " \t\r\n,")
	}
	return m, nil
}

func transformFunc(name string, a []float64) (geom.Matrix, error) {
	arity := func(allowed ...int) error {
		for _, n := range allowed {
			if len(a) == n {
				return nil
			}
		}
		return fmt.Errorf("%s takes %v arguments, got %d", name, allowed, len(a))
	}
	switch name {
	case "matrix":
		if err := arity(6); err != nil {
			return geom.Matrix{}, err
		}
		return geom.Matrix{A: a[0], B: a[2], C: a[4], D: a[1], E: a[3], F: a[5]}, nil
	case "translate":
		if err := arity(1, 2); err != nil {
			return geom.Matrix{}, err
		}
		if len(a) == 1 {
			return geom.Translate(a[0], 0), nil
		}
		return geom.Translate(a[0], a[1]), nil
	case "scale":
		if err := arity(1, 2); err != nil {
			return geom.Matrix{}, err
		}
		if len(a) == 1 {
			return geom.Scale(a[0], a[0]), nil
		}
		return geom.Scale(a[0], a[1]), nil
	case "rotate":
		if err := arity(1, 3); err != nil {
			return geom.Matrix{}, err
		}
		r := geom.Rotate(a[0] * math.Pi / 180)
		if len(a) == 3 {
			return geom.Translate(a[1], a[2]).Multiply(r).Multiply(geom.Translate(-a[1], -a[2])), nil
		}
		return r, nil
	case "skewX":
		if err := arity(1); err != nil {
			return geom.Matrix{}, err
		}
		return geom.Shear(math.Tan(a[0]*math.Pi/180), 0), nil
	case "skewY":
		if err := arity(1); err != nil {
			return geom.Matrix{}, err
		}
		return geom.Shear(0, math.Tan(a[0]*math.Pi/180)), nil
	}
	return geom.Matrix{}, fmt.Errorf("unknown transform function %q", name)
}

// parseNumberList splits a whitespace and/or comma separated list.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseLength reads the numeric prefix of an SVG length ("24", "24px",
// "1.5e1pt"). Units are ignored; percentages are rejected.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return 0, false
	}
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			end--
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
