// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package svgfont assembles SVG icons into an SVG 1.1 font document and
// reads such documents back.
package svgfont

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/webfont/internal/geom"
)

var (
	// ErrIcon is returned (wrapped) when an icon cannot be turned into an outline.
	ErrIcon = errors.New("svgfont: invalid icon")

	// ErrFont is returned (wrapped) when an SVG font document cannot be read.
	ErrFont = errors.New("svgfont: invalid font document")
)

// Icon is the outline of one SVG icon in icon space (y down), together
// with the icon box.
type Icon struct {
	Width  float64
	Height float64
	Path   *geom.Path
}

// Elements whose subtree never contributes to the glyph outline.
var skippedElements = map[string]bool{
	"defs":           true,
	"clipPath":       true,
	"mask":           true,
	"symbol":         true,
	"pattern":        true,
	"marker":         true,
	"linearGradient": true,
	"radialGradient": true,
	"filter":         true,
	"style":          true,
	"script":         true,
	"title":          true,
	"desc":           true,
	"metadata":       true,
}

// ParseIcon extracts the outline of an SVG icon. Supported shapes are
// path, rect, circle, ellipse, line, polyline and polygon, in nested
// groups with transform attributes. The icon box comes from the root
// width/height attributes, falling back to the viewBox size and finally
// to the outline's extent.
func ParseIcon(data []byte) (*Icon, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	type frame struct {
		ctm  geom.Matrix
		skip bool
	}
	var (
		stack []frame
		icon  = &Icon{Path: geom.NewPath()}
		root  bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIcon, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			attrs := attrMap(t.Attr)

			if !root {
				if name != "svg" {
					return nil, fmt.Errorf("%w: root element is <%s>, want <svg>", ErrIcon, name)
				}
				root = true
				ctm, err := icon.setBox(attrs)
				if err != nil {
					return nil, err
				}
				stack = append(stack, frame{ctm: ctm})
				continue
			}

			parent := stack[len(stack)-1]
			f := frame{ctm: parent.ctm, skip: parent.skip || skippedElements[name] || attrs["display"] == "none"}
			if tr, ok := attrs["transform"]; ok && !f.skip {
				m, err := ParseTransform(tr)
				if err != nil {
					return nil, err
				}
				f.ctm = f.ctm.Multiply(m)
			}
			stack = append(stack, f)
			if f.skip {
				continue
			}

			shape, err := shapePath(name, attrs)
			if err != nil {
				return nil, err
			}
			if shape != nil {
				icon.Path.Append(shape.Transform(f.ctm))
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !root {
		return nil, fmt.Errorf("%w: no <svg> element", ErrIcon)
	}
	if icon.Width <= 0 || icon.Height <= 0 {
		b := icon.Path.Bounds()
		if icon.Width <= 0 && !b.Empty() {
			icon.Width = b.Max.X
		}
		if icon.Height <= 0 && !b.Empty() {
			icon.Height = b.Max.Y
		}
	}
	if icon.Width <= 0 || icon.Height <= 0 {
		return nil, fmt.Errorf("%w: cannot determine icon size (no width/height or viewBox)", ErrIcon)
	}
	return icon, nil
}

// setBox records the icon size and returns the viewBox-to-viewport transform.
func (icon *Icon) setBox(attrs map[string]string) (geom.Matrix, error) {
	w, hasW := parseLength(attrs["width"])
	h, hasH := parseLength(attrs["height"])

	vbAttr, ok := attrs["viewBox"]
	if !ok {
		icon.Width, icon.Height = w, h
		return geom.Identity(), nil
	}
	vb, err := parseNumberList(vbAttr)
	if err != nil || len(vb) != 4 {
		return geom.Matrix{}, fmt.Errorf("%w: invalid viewBox %q", ErrIcon, vbAttr)
	}
	if vb[2] <= 0 || vb[3] <= 0 {
		return geom.Matrix{}, fmt.Errorf("%w: viewBox %q has no area", ErrIcon, vbAttr)
	}
	if !hasW {
		w = vb[2]
	}
	if !hasH {
		h = vb[3]
	}
	icon.Width, icon.Height = w, h
	return geom.Scale(w/vb[2], h/vb[3]).Multiply(geom.Translate(-vb[0], -vb[1])), nil
}

func shapePath(name string, a map[string]string) (*geom.Path, error) {
	num := func(key string) float64 {
		v, _ := parseLength(a[key])
		return v
	}

	switch name {
	case "path":
		d := strings.TrimSpace(a["d"])
		if d == "" {
			return nil, nil
		}
		p, err := geom.ParsePathData(d)
		if err != nil {
			return nil, fmt.Errorf("%w: <path>: %w", ErrIcon, err)
		}
		return p, nil

	case "rect":
		w, h := num("width"), num("height")
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		rx, hasRx := parseLength(a["rx"])
		ry, hasRy := parseLength(a["ry"])
		switch {
		case hasRx && !hasRy:
			ry = rx
		case hasRy && !hasRx:
			rx = ry
		}
		p := geom.NewPath()
		p.RoundedRectangle(num("x"), num("y"), w, h, rx, ry)
		return p, nil

	case "circle":
		r := num("r")
		if r <= 0 {
			return nil, nil
		}
		p := geom.NewPath()
		p.Circle(num("cx"), num("cy"), r)
		return p, nil

	case "ellipse":
		rx, ry := num("rx"), num("ry")
		if rx <= 0 || ry <= 0 {
			return nil, nil
		}
		p := geom.NewPath()
		p.Ellipse(num("cx"), num("cy"), rx, ry)
		return p, nil

	case "line":
		p := geom.NewPath()
		p.MoveTo(num("x1"), num("y1"))
		p.LineTo(num("x2"), num("y2"))
		p.Close()
		return p, nil

	case "polyline", "polygon":
		pts := strings.TrimSpace(a["points"])
		if pts == "" {
			return nil, nil
		}
		d := "M" + pts
		if name == "polygon" {
			d += "Z"
		}
		p, err := geom.ParsePathData(d)
		if err != nil {
			return nil, fmt.Errorf("%w: <%s> points: %w", ErrIcon, name, err)
		}
		return p, nil
	}
	return nil, nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space != "" && a.Name.Space != "svg" && a.Name.Space != "http://www.w3.org/2000/svg" {
			continue
		}
		m[a.Name.Local] = a.Value
	}
	return m
}
