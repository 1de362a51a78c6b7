// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package templates

import (
	"fmt"
	htmltemplate "html/template"
	"slices"
	"strings"
)

// Glyph is the template view of one glyph.
type Glyph struct {
	Name    string
	Unicode []string
	Path    string
}

// Codepoint returns the first code point of the first unicode value as
// lower-case hex, e.g. "ea01".
func (g Glyph) Codepoint() string {
	for _, r := range g.first() {
		return fmt.Sprintf("%x", r)
	}
	return ""
}

// CSSContent returns the first unicode value as a CSS string escape,
// e.g. `\ea01`, suitable for the content property.
func (g Glyph) CSSContent() string {
	var b strings.Builder
	for _, r := range g.first() {
		fmt.Fprintf(&b, `\%x`, r)
	}
	return b.String()
}

// HTMLEntity returns the first unicode value as HTML character references.
func (g Glyph) HTMLEntity() htmltemplate.HTML {
	var b strings.Builder
	for _, r := range g.first() {
		fmt.Fprintf(&b, "&#x%x;", r)
	}
	return htmltemplate.HTML(b.String())
}

func (g Glyph) first() string {
	if len(g.Unicode) == 0 {
		return ""
	}
	return g.Unicode[0]
}

// Data is the rendering context.
type Data struct {
	Glyphs []Glyph

	// Config is the effective build configuration.
	Config any

	ClassName string
	FontName  string

	// FontID is the id of the <font> element of the SVG font, used as the
	// fragment of its URL. Empty means FontName.
	FontID string

	// FontPath is the URL prefix of the font files; it ends in "/".
	FontPath string

	// Hash is the font fingerprint, set only when cache busting is enabled.
	Hash string

	// Formats are the requested font formats.
	Formats []string
}

// Source is one entry of an @font-face src list.
type Source struct {
	URL    string
	Format string
}

// sourceOrder is the preference order browsers should try formats in.
var sourceOrder = []struct{ ext, format string }{
	{"eot", "embedded-opentype"},
	{"woff2", "woff2"},
	{"woff", "woff"},
	{"ttf", "truetype"},
	{"svg", "svg"},
}

// HasFormat reports whether format was requested.
func (d Data) HasFormat(format string) bool {
	return slices.Contains(d.Formats, format)
}

// FontURL returns the URL of the font file of the given format, with the
// fingerprint as query string when set.
func (d Data) FontURL(format string) string {
	u := d.FontPath + d.FontName + "." + format
	if d.Hash != "" {
		u += "?" + d.Hash
	}
	return u
}

// Sources lists the requested formats in browser preference order.
func (d Data) Sources() []Source {
	var out []Source
	for _, s := range sourceOrder {
		if !d.HasFormat(s.ext) {
			continue
		}
		u := d.FontURL(s.ext)
		switch s.ext {
		case "eot":
			if d.Hash != "" {
				u += "#iefix"
			} else {
				u += "?#iefix"
			}
		case "svg":
			id := d.FontID
			if id == "" {
				id = d.FontName
			}
			u += "#" + id
		}
		out = append(out, Source{URL: u, Format: s.format})
	}
	return out
}
