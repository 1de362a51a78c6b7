// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileProvider(t *testing.T) {
	p := NewMetadataProvider(MetadataOptions{StartUnicode: 0xE000})
	tests := []struct {
		path    string
		name    string
		unicode []string
	}{
		{"icons/home.svg", "home", []string{"\uE000"}},
		{"icons/uEA01-star.svg", "star", []string{"\uEA01"}},
		{"icons/uE001uE002-lig.SVG", "lig", []string{"\uE001\uE002"}},
		{"icons/uE003,uE004-multi.svg", "multi", []string{"\uE003", "\uE004"}},
		{"icons/ue005-lower.svg", "lower", []string{"\uE005"}},
		{"icons/next.svg", "next", []string{"\uE001"}},
		{"icons/u12-short.svg", "u12-short", []string{"\uE002"}},
	}
	for _, tt := range tests {
		md, err := p.Metadata(tt.path)
		if err != nil {
			t.Fatalf("Metadata(%q): %v", tt.path, err)
		}
		if md.Name != tt.name {
			t.Errorf("Metadata(%q).Name = %q, want %q", tt.path, md.Name, tt.name)
		}
		if !reflect.DeepEqual(md.Unicode, tt.unicode) {
			t.Errorf("Metadata(%q).Unicode = %q, want %q", tt.path, md.Unicode, tt.unicode)
		}
		if md.Path != tt.path {
			t.Errorf("Metadata(%q).Path = %q", tt.path, md.Path)
		}
	}
}

func TestFileProviderReserved(t *testing.T) {
	reserved := ReservedCodepoints([]string{"a.svg", "uEA01-x.svg", "uEA02,uEA03-y.svg", "uD800-bad.svg"})
	if len(reserved) != 3 {
		t.Fatalf("ReservedCodepoints = %v, want 3 entries", reserved)
	}
	p := NewMetadataProvider(MetadataOptions{StartUnicode: 0xEA01, Reserved: reserved})
	md, err := p.Metadata("a.svg")
	if err != nil {
		t.Fatal(err)
	}
	if got := md.Codepoints(); len(got) != 1 || got[0] != 0xEA04 {
		t.Errorf("Codepoints = %U, want U+EA04", got)
	}
}

func TestFileProviderSkipsSurrogates(t *testing.T) {
	p := NewMetadataProvider(MetadataOptions{StartUnicode: 0xD7FF})
	var got []rune
	for _, name := range []string{"a.svg", "b.svg"} {
		md, err := p.Metadata(name)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, md.Codepoints()...)
	}
	if got[0] != 0xD7FF || got[1] != 0xE000 {
		t.Errorf("allocated %U, want U+D7FF U+E000", got)
	}
}

func TestFileProviderPrepend(t *testing.T) {
	p := NewMetadataProvider(MetadataOptions{StartUnicode: 0xEA01, PrependUnicode: true})
	md, err := p.Metadata(filepath.Join("icons", "home.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !md.Renamed || md.RenamedPath != filepath.Join("icons", "uEA01-home.svg") {
		t.Errorf("got Renamed=%v RenamedPath=%q", md.Renamed, md.RenamedPath)
	}

	md, err = p.Metadata("uEB00-fixed.svg")
	if err != nil {
		t.Fatal(err)
	}
	if md.Renamed {
		t.Error("glyph with explicit code point marked renamed")
	}
}

func TestFileProviderInvalid(t *testing.T) {
	p := NewMetadataProvider(MetadataOptions{})
	if _, err := p.Metadata("uD800-bad.svg"); err == nil {
		t.Error("surrogate code point: expected error")
	}
	if _, err := p.Metadata("uFFFFFF-big.svg"); err == nil {
		t.Error("code point beyond U+10FFFF: expected error")
	}
}

func TestNameNormalization(t *testing.T) {
	p := NewMetadataProvider(MetadataOptions{})
	md, err := p.Metadata("cafe\u0301.svg")
	if err != nil {
		t.Fatal(err)
	}
	if md.Name != "caf\u00e9" {
		t.Errorf("Name = %q, want NFC form", md.Name)
	}
}

func TestAssignMetadataInvalidProvider(t *testing.T) {
	tests := []struct {
		name string
		md   GlyphMetadata
	}{
		{"no name", GlyphMetadata{Unicode: []string{"a"}}},
		{"no unicode", GlyphMetadata{Name: "x"}},
		{"empty unicode", GlyphMetadata{Name: "x", Unicode: []string{""}}},
		{"invalid utf8", GlyphMetadata{Name: "x", Unicode: []string{"\xff"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MetadataProvider = MetadataProviderFunc(func(string) (GlyphMetadata, error) { return tt.md, nil })
			err := assignMetadata(context.Background(), cfg, []Glyph{{Path: "a.svg"}})
			var me *MetadataProviderError
			if !errors.As(err, &me) {
				t.Fatalf("err = %v, want *MetadataProviderError", err)
			}
		})
	}
}
