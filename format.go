// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"fmt"
	"slices"
	"strings"
)

// Format is an output font format. Its value is the file extension.
type Format string

// Output formats.
const (
	FormatSVG   Format = "svg"
	FormatTTF   Format = "ttf"
	FormatEOT   Format = "eot"
	FormatWOFF  Format = "woff"
	FormatWOFF2 Format = "woff2"
)

// AllFormats returns every format, in derivation order.
func AllFormats() []Format {
	return []Format{FormatSVG, FormatTTF, FormatEOT, FormatWOFF, FormatWOFF2}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", &ConfigurationError{Field: "formats", Reason: fmt.Sprintf("unknown format %q", s)}
	}
	return f, nil
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return slices.Contains(AllFormats(), f)
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// source returns the format f is derived from; "" for the SVG font.
func (f Format) source() Format {
	switch f {
	case FormatTTF:
		return FormatSVG
	case FormatEOT, FormatWOFF, FormatWOFF2:
		return FormatTTF
	}
	return ""
}

// needsTTF reports whether any of formats is computed through TrueType.
func needsTTF(formats []Format) bool {
	for _, f := range formats {
		if f != FormatSVG {
			return true
		}
	}
	return false
}
