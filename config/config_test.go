// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/webfont"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestSearchWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".webfontrc.yaml"), "fontName: rooticons\n")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	f, err := Search(deep)
	if err != nil {
		t.Fatal(err)
	}
	if f == nil || f.Patch.FontName == nil || *f.Patch.FontName != "rooticons" {
		t.Fatalf("Search() = %+v", f)
	}
	if f.Path != filepath.Join(root, ".webfontrc.yaml") {
		t.Errorf("Path = %s", f.Path)
	}
}

func TestSearchPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "x", "version": "1.0.0"}`)
	writeFile(t, filepath.Join(dir, ".webfontrc"), `{"fontName": "rc", "formats": ["woff2"]}`)
	writeFile(t, filepath.Join(dir, "webfont.config.yml"), "fontName: cfg\n")

	f, err := Search(dir)
	if err != nil {
		t.Fatal(err)
	}
	if *f.Patch.FontName != "rc" {
		t.Errorf("FontName = %q, want the .webfontrc value", *f.Patch.FontName)
	}
	if len(f.Patch.Formats) != 1 || f.Patch.Formats[0] != "woff2" {
		t.Errorf("Formats = %v", f.Patch.Formats)
	}

	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "x", "webfont": {"fontName": "pkg", "files": "icons/*.svg"}}`)
	f, err = Search(dir)
	if err != nil {
		t.Fatal(err)
	}
	if *f.Patch.FontName != "pkg" || len(f.Patch.Files) != 1 {
		t.Errorf("package.json property not used: %+v", f.Patch)
	}
}

func TestSearchNone(t *testing.T) {
	f, err := Search(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// A configuration in an ancestor of the temp dir would be found too.
	if f != nil && filepath.Dir(f.Path) == os.TempDir() {
		t.Errorf("unexpected configuration %s", f.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yml")); !errors.Is(err, ErrConfig) {
		t.Errorf("missing file: err = %v, want ErrConfig", err)
	}
	bad := filepath.Join(dir, "bad.yml")
	writeFile(t, bad, "fontName: [unterminated\n")
	if _, err := Load(bad); !errors.Is(err, ErrConfig) {
		t.Errorf("malformed file: err = %v, want ErrConfig", err)
	}
	wrongType := filepath.Join(dir, "type.yml")
	writeFile(t, wrongType, "maxConcurrency: lots\n")
	if _, err := Load(wrongType); !errors.Is(err, ErrConfig) {
		t.Errorf("wrong type: err = %v, want ErrConfig", err)
	}
}

func TestFromEnv(t *testing.T) {
	p, err := FromEnv([]string{
		"HOME=/root",
		"WEBFONT_FONT_NAME=envicons",
		"WEBFONT_FORMATS=woff, woff2",
		"WEBFONT_START_UNICODE=0xE100",
		"WEBFONT_SORT=false",
		"WEBFONT_FONT_HEIGHT=1000",
		"WEBFONT_TTF_TS=42",
	})
	if err != nil {
		t.Fatal(err)
	}
	c := webfont.DefaultConfig().Apply(p)
	if c.FontName != "envicons" || c.StartUnicode != 0xE100 || c.Sort || c.FontHeight != 1000 {
		t.Errorf("unexpected config: %+v", c)
	}
	if len(c.Formats) != 2 || c.Formats[0] != webfont.FormatWOFF {
		t.Errorf("Formats = %v", c.Formats)
	}
	if c.FormatsOptions.TTF.Timestamp != 42 {
		t.Errorf("Timestamp = %d", c.FormatsOptions.TTF.Timestamp)
	}

	if _, err := FromEnv([]string{"WEBFONT_NORMALIZE=maybe"}); !errors.Is(err, ErrConfig) {
		t.Errorf("bad bool: err = %v, want ErrConfig", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	writeFile(t, env, "WEBFONT_TEST_DOTENV=loaded\n")
	t.Cleanup(func() { os.Unsetenv("WEBFONT_TEST_DOTENV") })

	if err := LoadDotEnv(env, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("WEBFONT_TEST_DOTENV"); got != "loaded" {
		t.Errorf("WEBFONT_TEST_DOTENV = %q", got)
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "webfont.config.json")
	writeFile(t, cfgPath, `{"fontName": "file", "descent": 10, "formatsOptions": {"ttf": {"copyright": "ACME"}}}`)

	name := "flag"
	version := "2.0"
	cfg, err := Resolve(Options{
		SearchDir: dir,
		Environ:   []string{"WEBFONT_FONT_NAME=env", "WEBFONT_ROUND=100"},
	}, webfont.ConfigPatch{
		FontName:       &name,
		FormatsOptions: &webfont.FormatsOptionsPatch{TTF: &webfont.TTFOptionsPatch{Version: &version}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FontName != "flag" {
		t.Errorf("FontName = %q, want the override", cfg.FontName)
	}
	if cfg.Descent != 10 || cfg.Round != 100 {
		t.Errorf("Descent = %v, Round = %v", cfg.Descent, cfg.Round)
	}
	if cfg.FormatsOptions.TTF.Copyright != "ACME" || cfg.FormatsOptions.TTF.Version != "2.0" {
		t.Errorf("TTF = %+v", cfg.FormatsOptions.TTF)
	}
	if cfg.ConfigFile != cfgPath {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}

	cfg, err = Resolve(Options{ConfigFile: cfgPath}, webfont.ConfigPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FontName != "file" {
		t.Errorf("explicit file: FontName = %q", cfg.FontName)
	}
}
