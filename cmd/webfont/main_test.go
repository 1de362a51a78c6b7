// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M4 4h16v16H4z"/></svg>`

func setup(t *testing.T, names ...string) (dir, cfg string) {
	t.Helper()
	dir = t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(icon), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	cfg = filepath.Join(dir, "webfont.config.yaml")
	if err := os.WriteFile(cfg, []byte("fontName: fromconfig\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir, cfg
}

func TestRunWritesFonts(t *testing.T) {
	dir, cfg := setup(t, "a.svg", "b.svg")
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", cfg,
		"-dest", out,
		"-formats", "ttf,woff2",
		"-template", "scss",
		"-font-name", "icons",
		filepath.Join(dir, "*.svg"),
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	for _, name := range []string{"icons.ttf", "icons.woff2", "icons.scss"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "icons.svg")); err == nil {
		t.Error("svg written although not requested")
	}
	if got := strings.Count(stdout.String(), "\n"); got != 3 {
		t.Errorf("stdout lists %d files, want 3:\n%s", got, stdout.String())
	}
}

func TestRunUsesConfigFile(t *testing.T) {
	dir, cfg := setup(t, "a.svg")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", cfg, "-dest", dir, "-formats", "svg", filepath.Join(dir, "a.svg")}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "fromconfig.svg")); err != nil {
		t.Errorf("font name from configuration not used: %v", err)
	}
}

func TestRunPrependUnicode(t *testing.T) {
	dir, cfg := setup(t, "home.svg")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", cfg, "-dest", filepath.Join(dir, "out"), "-formats", "svg",
		"-prepend-unicode", "-start-unicode", "U+E100",
		filepath.Join(dir, "home.svg"),
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "uE100-home.svg")); err != nil {
		t.Errorf("icon not renamed: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	dir, cfg := setup(t)
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no matches", []string{"-config", cfg, filepath.Join(dir, "*.svg")}, 1},
		{"bad format", []string{"-config", cfg, "-formats", "otf", "x.svg"}, 2},
		{"bad start unicode", []string{"-config", cfg, "-start-unicode", "zz", "x.svg"}, 2},
		{"unknown flag", []string{"-nope"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("run() = %d, want %d; stderr:\n%s", code, tt.code, stderr.String())
			}
		})
	}
}

func TestParseCodepoint(t *testing.T) {
	tests := map[string]rune{
		"0xea01": 0xEA01,
		"U+E001": 0xE001,
		"uF000":  0xF000,
		"EA01":   0xEA01,
		"59905":  0xEA01,
	}
	for in, want := range tests {
		got, err := parseCodepoint(in)
		if err != nil || got != want {
			t.Errorf("parseCodepoint(%q) = %#x, %v; want %#x", in, got, err, want)
		}
	}
	for _, in := range []string{"", "0x110000", "-1", "0x0"} {
		if _, err := parseCodepoint(in); err == nil {
			t.Errorf("parseCodepoint(%q): expected error", in)
		}
	}
}
