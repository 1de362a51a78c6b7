// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPathData is returned (wrapped) for malformed SVG path data.
var ErrPathData = errors.New("geom: invalid path data")

// PathDataError locates a syntax error inside a path data string.
type PathDataError struct {
	Offset int
	Msg    string
}

func (e *PathDataError) Error() string {
	return fmt.Sprintf("geom: invalid path data at offset %d: %s", e.Offset, e.Msg)
}

func (e *PathDataError) Unwrap() error { return ErrPathData }

// ParsePathData parses the SVG path grammar ("d" attribute) into an
// absolute Path. Relative commands are resolved, H/V become lines,
// S/T reflections are expanded and arcs are converted to cubics.
func ParsePathData(d string) (*Path, error) {
	s := &pathScanner{src: d}
	p := NewPath()

	var (
		cmd      byte
		lastCtrl Point // last control point, for S/T reflection
		lastCmd  byte
	)

	for {
		s.skipSeparators()
		if s.eof() {
			break
		}
		if c := s.peek(); isCommand(c) {
			cmd = c
			s.pos++
		} else if cmd == 0 {
			return nil, s.errorf("expected command, found %q", c)
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, s.errorf("unexpected number after closepath")
		}

		rel := cmd >= 'a'
		cur := p.current
		base := Point{}
		if rel {
			base = cur
		}

		switch cmd {
		case 'M', 'm':
			pt, err := s.point()
			if err != nil {
				return nil, err
			}
			pt = pt.Add(base)
			p.MoveTo(pt.X, pt.Y)
			// Subsequent pairs are implicit lineto commands.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
			lastCmd = 'M'
			continue
		case 'Z', 'z':
			p.Close()
			lastCmd = 'Z'
			cmd = 0
			// A command letter must follow closepath.
			s.skipSeparators()
			if !s.eof() && !isCommand(s.peek()) {
				return nil, s.errorf("unexpected number after closepath")
			}
			continue
		}

		if !p.HasCurrentPoint() {
			return nil, s.errorf("path must start with moveto")
		}

		switch cmd {
		case 'L', 'l':
			pt, err := s.point()
			if err != nil {
				return nil, err
			}
			pt = pt.Add(base)
			p.LineTo(pt.X, pt.Y)
		case 'H', 'h':
			x, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			p.LineTo(x, cur.Y)
		case 'V', 'v':
			y, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			p.LineTo(cur.X, y)
		case 'C', 'c':
			pts, err := s.points(3)
			if err != nil {
				return nil, err
			}
			c1, c2, end := pts[0].Add(base), pts[1].Add(base), pts[2].Add(base)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl = c2
		case 'S', 's':
			pts, err := s.points(2)
			if err != nil {
				return nil, err
			}
			c1 := cur
			if lastCmd == 'C' || lastCmd == 'S' {
				c1 = cur.Add(cur.Sub(lastCtrl))
			}
			c2, end := pts[0].Add(base), pts[1].Add(base)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl = c2
		case 'Q', 'q':
			pts, err := s.points(2)
			if err != nil {
				return nil, err
			}
			ctrl, end := pts[0].Add(base), pts[1].Add(base)
			p.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
			lastCtrl = ctrl
		case 'T', 't':
			pt, err := s.point()
			if err != nil {
				return nil, err
			}
			ctrl := cur
			if lastCmd == 'Q' || lastCmd == 'T' {
				ctrl = cur.Add(cur.Sub(lastCtrl))
			}
			end := pt.Add(base)
			p.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
			lastCtrl = ctrl
		case 'A', 'a':
			rx, err := s.number()
			if err != nil {
				return nil, err
			}
			ry, err := s.number()
			if err != nil {
				return nil, err
			}
			rot, err := s.number()
			if err != nil {
				return nil, err
			}
			large, err := s.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := s.flag()
			if err != nil {
				return nil, err
			}
			pt, err := s.point()
			if err != nil {
				return nil, err
			}
			end := pt.Add(base)
			p.ArcTo(rx, ry, rot, large, sweep, end.X, end.Y)
		}
		lastCmd = upper(cmd)
	}

	return p, nil
}

// HasCurrentPoint returns true if the path has a current point.
func (p *Path) HasCurrentPoint() bool {
	return len(p.elements) > 0
}

// EncodePathData serializes the path with absolute commands, rounding
// every coordinate at the given precision factor (see RoundTo).
func EncodePathData(p *Path, precision float64) string {
	var b strings.Builder
	for _, elem := range p.elements {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch e := elem.(type) {
		case MoveTo:
			b.WriteByte('M')
			writePoints(&b, precision, e.Point)
		case LineTo:
			b.WriteByte('L')
			writePoints(&b, precision, e.Point)
		case QuadTo:
			b.WriteByte('Q')
			writePoints(&b, precision, e.Control, e.Point)
		case CubicTo:
			b.WriteByte('C')
			writePoints(&b, precision, e.Control1, e.Control2, e.Point)
		case Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// FormatNumber renders v in the shortest form that round-trips.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writePoints(b *strings.Builder, precision float64, pts ...Point) {
	for i, pt := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatNumber(RoundTo(pt.X, precision)))
		b.WriteByte(' ')
		b.WriteString(FormatNumber(RoundTo(pt.Y, precision)))
	}
}

type pathScanner struct {
	src string
	pos int
}

func (s *pathScanner) eof() bool  { return s.pos >= len(s.src) }
func (s *pathScanner) peek() byte { return s.src[s.pos] }

func (s *pathScanner) errorf(format string, args ...any) error {
	return &PathDataError{Offset: s.pos, Msg: fmt.Sprintf(format, args...)}
}

func (s *pathScanner) skipSeparators() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) number() (float64, error) {
	s.skipSeparators()
	if s.eof() {
		return 0, s.errorf("unexpected end of data, expected number")
	}
	start := s.pos
	if c := s.peek(); c == '+' || c == '-' {
		s.pos++
	}
	digits := 0
	for !s.eof() && isDigit(s.peek()) {
		s.pos++
		digits++
	}
	if !s.eof() && s.peek() == '.' {
		s.pos++
		for !s.eof() && isDigit(s.peek()) {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		s.pos = start
		return 0, s.errorf("expected number, found %q", s.src[start:min(start+8, len(s.src))])
	}
	if !s.eof() && (s.peek() == 'e' || s.peek() == 'E') {
		mark := s.pos
		s.pos++
		if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
			s.pos++
		}
		expDigits := 0
		for !s.eof() && isDigit(s.peek()) {
			s.pos++
			expDigits++
		}
		if expDigits == 0 {
			s.pos = mark
		}
	}
	v, err := strconv.ParseFloat(s.src[start:s.pos], 64)
	if err != nil {
		return 0, &PathDataError{Offset: start, Msg: err.Error()}
	}
	return v, nil
}

// flag reads an arc flag, which may be packed without separators ("a1 1 0 00 10 10").
func (s *pathScanner) flag() (bool, error) {
	s.skipSeparators()
	if s.eof() {
		return false, s.errorf("unexpected end of data, expected flag")
	}
	switch s.peek() {
	case '0':
		s.pos++
		return false, nil
	case '1':
		s.pos++
		return true, nil
	}
	return false, s.errorf("expected arc flag, found %q", s.peek())
}

func (s *pathScanner) point() (Point, error) {
	x, err := s.number()
	if err != nil {
		return Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return Point{}, err
	}
	return Pt(x, y), nil
}

func (s *pathScanner) points(n int) ([]Point, error) {
	pts := make([]Point, n)
	for i := range pts {
		pt, err := s.point()
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isCommand(c byte) bool {
	return strings.IndexByte("MmZzLlHhVvCcSsQqTtAa", c) >= 0
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
