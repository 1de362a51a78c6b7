// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MetadataProvider derives the name and unicode values of a glyph from its
// file path. A provider is called once per glyph, sequentially, in final
// glyph order.
type MetadataProvider interface {
	Metadata(path string) (GlyphMetadata, error)
}

// MetadataProviderFunc adapts a function to MetadataProvider.
type MetadataProviderFunc func(path string) (GlyphMetadata, error)

// Metadata calls f(path).
func (f MetadataProviderFunc) Metadata(path string) (GlyphMetadata, error) {
	return f(path)
}

// MetadataOptions configure the default provider.
type MetadataOptions struct {
	// StartUnicode is the first code point handed out to glyphs without an
	// explicit one.
	StartUnicode rune

	// PrependUnicode marks auto-numbered glyphs as renamed.
	PrependUnicode bool

	// Reserved unicode values are never handed out.
	Reserved map[string]bool
}

// fileNamePattern splits an icon file name into its optional code point
// prefix and its name.
var fileNamePattern = regexp.MustCompile(`(?i)^(?:((?:u[0-9a-f]{4,6},?)+)-)?(.+)$`)

var errNoName = errors.New("empty glyph name")

// fileProvider is the default, file name based provider. It is not safe
// for concurrent use.
type fileProvider struct {
	next    rune
	prepend bool
	used    map[string]bool
}

// NewMetadataProvider returns the default provider. A file named
// "uEA01-home.svg" yields the glyph "home" at U+EA01; "uE001uE002-x.svg"
// maps the ligature U+E001 U+E002 and "uE001,uE002-x.svg" maps both code
// points. Other files get the next code point from StartUnicode on that is
// neither reserved nor handed out yet.
func NewMetadataProvider(opts MetadataOptions) MetadataProvider {
	start := opts.StartUnicode
	if start == 0 {
		start = DefaultStartUnicode
	}
	used := make(map[string]bool, len(opts.Reserved))
	for u := range opts.Reserved {
		used[u] = true
	}
	return &fileProvider{next: start, prepend: opts.PrependUnicode, used: used}
}

func (p *fileProvider) Metadata(path string) (GlyphMetadata, error) {
	dir, base := filepath.Split(path)
	prefix, name, err := splitFileName(base)
	if err != nil {
		return GlyphMetadata{}, err
	}
	md := GlyphMetadata{Path: path, Name: name}

	if prefix != "" {
		md.Unicode, err = parseCodepointPrefix(prefix)
		if err != nil {
			return GlyphMetadata{}, err
		}
		for _, u := range md.Unicode {
			p.used[u] = true
		}
		return md, nil
	}

	for {
		if !utf8.ValidRune(p.next) {
			if p.next > utf8.MaxRune {
				return GlyphMetadata{}, fmt.Errorf("code points exhausted")
			}
			p.next++
			continue
		}
		u := string(p.next)
		p.next++
		if p.used[u] {
			continue
		}
		p.used[u] = true
		md.Unicode = []string{u}
		break
	}
	if p.prepend {
		md.Renamed = true
		md.RenamedPath = filepath.Join(dir, fmt.Sprintf("u%X-%s", md.Codepoints()[0], base))
	}
	return md, nil
}

// splitFileName returns the code point prefix and the NFC-normalized glyph
// name of an icon file name.
func splitFileName(base string) (prefix, name string, err error) {
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".svg") {
		base = base[:len(base)-len(ext)]
	}
	m := fileNamePattern.FindStringSubmatch(base)
	if m == nil {
		return "", "", errNoName
	}
	name = norm.NFC.String(m[2])
	if name == "" {
		return "", "", errNoName
	}
	return m[1], name, nil
}

// parseCodepointPrefix parses "uE001uE002,uE003" into its unicode values.
func parseCodepointPrefix(prefix string) ([]string, error) {
	var out []string
	for _, entry := range strings.Split(prefix, ",") {
		if entry == "" {
			continue
		}
		var b strings.Builder
		for _, code := range strings.FieldsFunc(entry, func(r rune) bool { return r == 'u' || r == 'U' }) {
			v, err := strconv.ParseUint(code, 16, 32)
			if err != nil {
				return nil, fmt.Errorf("code point %q: %w", code, err)
			}
			if !validCodepoint(rune(v)) {
				return nil, fmt.Errorf("code point %q is not a valid unicode scalar value", code)
			}
			b.WriteRune(rune(v))
		}
		out = append(out, b.String())
	}
	return out, nil
}

// ReservedCodepoints returns the unicode values pinned by the file names
// of paths, so sequential allocation can skip them.
func ReservedCodepoints(paths []string) map[string]bool {
	reserved := make(map[string]bool)
	for _, path := range paths {
		prefix, _, err := splitFileName(filepath.Base(path))
		if err != nil || prefix == "" {
			continue
		}
		us, err := parseCodepointPrefix(prefix)
		if err != nil {
			continue
		}
		for _, u := range us {
			reserved[u] = true
		}
	}
	return reserved
}

// assignMetadata fills in the metadata of glyphs, in order, and checks
// that no unicode value is claimed twice.
func assignMetadata(ctx context.Context, cfg Config, glyphs []Glyph) error {
	provider := cfg.MetadataProvider
	if provider == nil {
		paths := make([]string, len(glyphs))
		for i, g := range glyphs {
			paths[i] = g.Path
		}
		provider = NewMetadataProvider(MetadataOptions{
			StartUnicode:   cfg.StartUnicode,
			PrependUnicode: cfg.PrependUnicode,
			Reserved:       ReservedCodepoints(paths),
		})
	}

	claims := make(map[string]string, len(glyphs))
	for i := range glyphs {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := glyphs[i].Path
		md, err := provider.Metadata(path)
		if err != nil {
			return &MetadataProviderError{Path: path, Err: err}
		}
		if md.Path == "" {
			md.Path = path
		}
		if err := checkMetadata(md); err != nil {
			return &MetadataProviderError{Path: path, Err: err}
		}
		for _, u := range md.Unicode {
			if first, ok := claims[u]; ok {
				return &DuplicateCodepointError{Codepoint: u, Paths: []string{first, path}}
			}
			claims[u] = path
		}
		glyphs[i].Metadata = md.clone()
	}
	return nil
}

func checkMetadata(md GlyphMetadata) error {
	if md.Name == "" {
		return errNoName
	}
	if len(md.Unicode) == 0 {
		return fmt.Errorf("glyph %q has no unicode value", md.Name)
	}
	for _, u := range md.Unicode {
		if u == "" {
			return fmt.Errorf("glyph %q has an empty unicode value", md.Name)
		}
		if !utf8.ValidString(u) {
			return fmt.Errorf("glyph %q has an invalid unicode value %q", md.Name, u)
		}
	}
	return nil
}
