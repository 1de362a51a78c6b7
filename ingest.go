// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// discover expands file patterns and keeps the .svg files, in pattern
// order, without duplicates.
func discover(patterns []string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, &InputReadError{Path: pattern, Err: err}
		}
		for _, m := range matches {
			if !strings.EqualFold(filepath.Ext(m), ".svg") || seen[m] {
				continue
			}
			if fi, err := os.Stat(m); err != nil || fi.IsDir() {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, &NoMatchingFilesError{Patterns: patterns}
	}
	return files, nil
}

// ingest reads every file through the concurrency gate. The result is in
// the order of paths, whatever order the reads complete in.
func ingest(ctx context.Context, cfg Config, paths []string) ([]Glyph, error) {
	glyphs := make([]Glyph, len(paths))
	err := runGated(ctx, cfg.MaxConcurrency, len(paths), func(ctx context.Context, i int) error {
		path := paths[i]
		data, err := os.ReadFile(path)
		if err != nil {
			return &InputReadError{Path: path, Err: err}
		}
		if len(data) == 0 {
			return &EmptyInputError{Path: path}
		}
		data, err = stripBOM(data)
		if err != nil {
			return &MalformedMarkupError{Path: path, Err: err}
		}
		if err := checkMarkup(data); err != nil {
			return &MalformedMarkupError{Path: path, Err: err}
		}
		glyphs[i] = Glyph{Path: path, Contents: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return glyphs, nil
}

var errNoRoot = errors.New("no root element")

// stripBOM removes a leading byte order mark. UTF-16 input is converted to
// UTF-8; anything without a mark is returned as is.
func stripBOM(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
	return out, err
}

// checkMarkup checks that data is one well-formed XML document. Only the
// structure is checked; whether the document is a usable icon is decided
// at assembly.
func checkMarkup(data []byte) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Entity = xml.HTMLEntity
	depth, roots := 0, 0
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					line, _ := d.InputPos()
					return fmt.Errorf("line %d: more than one root element", line)
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := d.InputPos()
				return fmt.Errorf("line %d: text outside the root element", line)
			}
		}
	}
	if roots == 0 {
		return errNoRoot
	}
	return nil
}
