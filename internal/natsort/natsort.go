// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package natsort compares file paths in natural order: digit runs compare
// by numeric value and letters compare case-insensitively, so icon-2.svg
// sorts before icon-10.svg.
package natsort

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// codepointPrefix matches the "uE001-" style prefix written by the
// prepend-unicode mode. It is ignored for ordering so that renamed files keep
// their position between builds.
var codepointPrefix = regexp.MustCompile(`(?i)^(?:u[0-9a-f]{4,6},?)+-`)

var folder = cases.Fold()

// Compare returns -1, 0 or +1 comparing a and b in natural order.
// Two strings compare equal only when they are byte-identical.
func Compare(a, b string) int {
	if c := compareFolded(folder.String(a), folder.String(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// ComparePaths orders two file paths: by directory first, then by base name
// with any codepoint prefix stripped, falling back to the raw paths.
func ComparePaths(a, b string) int {
	da, fa := filepath.Split(filepath.ToSlash(a))
	db, fb := filepath.Split(filepath.ToSlash(b))
	if c := Compare(da, db); c != 0 {
		return c
	}
	if c := Compare(StripCodepointPrefix(fa), StripCodepointPrefix(fb)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// StripCodepointPrefix removes a leading "uXXXX-" (or "uXXXX,uYYYY-") prefix.
func StripCodepointPrefix(name string) string {
	return codepointPrefix.ReplaceAllString(name, "")
}

func compareFolded(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			if c := compareNumeric(a[si:i], b[sj:j]); c != 0 {
				return c
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return 0
}

// compareNumeric compares two digit runs by value without overflow.
// Equal values with different zero padding compare by run length so that
// "01" and "1" are not considered equal.
func compareNumeric(x, y string) int {
	tx := strings.TrimLeft(x, "0")
	ty := strings.TrimLeft(y, "0")
	if len(tx) != len(ty) {
		if len(tx) < len(ty) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(tx, ty); c != 0 {
		return c
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
