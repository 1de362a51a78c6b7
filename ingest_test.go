// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckMarkup(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{"svg", `<svg><path d="M0 0"/></svg>`, true},
		{"prolog", "<?xml version=\"1.0\"?>\n<!-- c -->\n<svg/>\n", true},
		{"doctype", `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "x"><svg/>`, true},
		{"html entity", `<svg><title>a&nbsp;b</title></svg>`, true},
		{"unclosed", `<svg><g></svg>`, false},
		{"truncated", `<svg><path`, false},
		{"text only", `hello`, false},
		{"two roots", `<svg/><svg/>`, false},
		{"trailing text", `<svg/>junk`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMarkup([]byte(tt.src))
			if (err == nil) != tt.ok {
				t.Errorf("checkMarkup(%q) = %v, want ok=%v", tt.src, err, tt.ok)
			}
		})
	}
}

func TestStripBOM(t *testing.T) {
	utf16le := []byte{0xff, 0xfe}
	for _, r := range "<svg/>" {
		utf16le = append(utf16le, byte(r), 0)
	}
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"none", []byte("<svg/>"), "<svg/>"},
		{"utf-8", []byte("\xef\xbb\xbf<svg/>"), "<svg/>"},
		{"utf-16le", utf16le, "<svg/>"},
		{"mark only", []byte("\xef\xbb\xbf"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stripBOM(tt.in)
			if err != nil {
				t.Fatalf("stripBOM(%q): %v", tt.in, err)
			}
			if string(got) != tt.want {
				t.Errorf("stripBOM(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.svg", "B.SVG", "c.png", "sub/d.svg", "dir.svg/e.svg"} {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("<svg/>"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := discover([]string{filepath.Join(dir, "**", "*"), filepath.Join(dir, "a.svg")})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{
		filepath.Join(dir, "a.svg"):            true,
		filepath.Join(dir, "B.SVG"):            true,
		filepath.Join(dir, "sub", "d.svg"):     true,
		filepath.Join(dir, "dir.svg", "e.svg"): true,
	}
	if len(files) != len(want) {
		t.Fatalf("discover() = %v, want %d files", files, len(want))
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file %s", f)
		}
	}

	_, err = discover([]string{filepath.Join(dir, "*.png")})
	var nm *NoMatchingFilesError
	if !errors.As(err, &nm) {
		t.Errorf("discover(*.png) = %v, want *NoMatchingFilesError", err)
	}
}

func TestIngestOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"z.svg", "m.svg", "a.svg", "q.svg"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("<svg id=\""+name+"\"/>"), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	cfg := DefaultConfig()
	cfg.MaxConcurrency = 2
	glyphs, err := ingest(context.Background(), cfg, paths)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range glyphs {
		if g.Path != paths[i] {
			t.Errorf("glyph %d path = %s, want %s", i, g.Path, paths[i])
		}
		if len(g.Contents) == 0 {
			t.Errorf("glyph %d has no contents", i)
		}
	}

	_, err = ingest(context.Background(), cfg, []string{filepath.Join(dir, "missing.svg")})
	var re *InputReadError
	if !errors.As(err, &re) || !errors.Is(err, os.ErrNotExist) || !errors.Is(err, ErrInput) {
		t.Errorf("missing file: err = %v", err)
	}
}
