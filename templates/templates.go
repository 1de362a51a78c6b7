// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package templates renders usage artifacts (stylesheets, preview pages)
// for a built icon font.
//
// Three templates are built in: "css", "scss" and "html". Any other name
// is a path to a Go template file, resolved against the Renderer's base
// directory. Files ending in .html or .htm are rendered with html/template,
// everything else with text/template.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
)

//go:embed builtin/*.tmpl
var builtinFS embed.FS

var builtins = map[string]string{
	"css":  "builtin/template.css.tmpl",
	"scss": "builtin/template.scss.tmpl",
	"html": "builtin/template.html.tmpl",
}

// ErrNotFound is returned (wrapped) when a template file does not exist.
var ErrNotFound = errors.New("templates: template not found")

// Builtins returns the names of the built-in templates.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsBuiltin reports whether name refers to a built-in template.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Renderer renders templates for one build. It holds no global state;
// separate builds use separate renderers.
type Renderer struct {
	baseDir string
}

// NewRenderer returns a Renderer resolving relative template paths
// against baseDir. An empty baseDir means the working directory.
func NewRenderer(baseDir string) *Renderer {
	return &Renderer{baseDir: baseDir}
}

// Resolve returns the file path a non built-in template name refers to.
func (r *Renderer) Resolve(name string) string {
	if filepath.IsAbs(name) || r.baseDir == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(r.baseDir, name)
}

// Render renders the named template with data and reports whether a
// built-in template was used.
func (r *Renderer) Render(name string, data Data) (string, bool, error) {
	if name == "" {
		return "", false, fmt.Errorf("templates: empty template name")
	}

	var (
		src     []byte
		path    string
		builtin = IsBuiltin(name)
	)
	if builtin {
		path = builtins[name]
		b, err := builtinFS.ReadFile(path)
		if err != nil {
			return "", true, err
		}
		src = b
	} else {
		path = r.Resolve(name)
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return "", false, err
		}
		src = b
	}

	var buf bytes.Buffer
	if isHTML(path) {
		t, err := htmltemplate.New(filepath.Base(path)).Funcs(htmltemplate.FuncMap(funcs)).Parse(string(src))
		if err != nil {
			return "", builtin, err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", builtin, err
		}
	} else {
		t, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(src))
		if err != nil {
			return "", builtin, err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", builtin, err
		}
	}
	return buf.String(), builtin, nil
}

func isHTML(path string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".tmpl")))
	return ext == ".html" || ext == ".htm"
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"join":  strings.Join,
}
