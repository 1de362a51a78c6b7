// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by a build matches exactly one of
// these through errors.Is, except context cancellation, which is
// returned as is.
var (
	// ErrInput is the kind of errors about the input file set.
	ErrInput = errors.New("webfont: input error")

	// ErrParse is the kind of errors about malformed icon markup.
	ErrParse = errors.New("webfont: parse error")

	// ErrMetadata is the kind of errors about glyph names and code points.
	ErrMetadata = errors.New("webfont: metadata error")

	// ErrAssembly is the kind of errors raised while building the SVG font.
	ErrAssembly = errors.New("webfont: assembly error")

	// ErrConversion is the kind of errors raised while deriving a format.
	ErrConversion = errors.New("webfont: conversion error")

	// ErrTemplate is the kind of errors raised while rendering a template.
	ErrTemplate = errors.New("webfont: template error")

	// ErrConfiguration is the kind of invalid configuration errors.
	ErrConfiguration = errors.New("webfont: configuration error")
)

// NoMatchingFilesError is returned when the file patterns match no .svg file.
type NoMatchingFilesError struct {
	Patterns []string
}

func (e *NoMatchingFilesError) Error() string {
	return fmt.Sprintf("webfont: file patterns %q did not match any .svg files", e.Patterns)
}

func (e *NoMatchingFilesError) Unwrap() error { return ErrInput }

// EmptyInputError is returned when an icon file has no content.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	return "webfont: empty file " + e.Path
}

func (e *EmptyInputError) Unwrap() error { return ErrInput }

// InputReadError is returned when an icon file cannot be read or a file
// pattern cannot be expanded.
type InputReadError struct {
	Path string
	Err  error
}

func (e *InputReadError) Error() string {
	return fmt.Sprintf("webfont: read %s: %v", e.Path, e.Err)
}

func (e *InputReadError) Unwrap() []error { return []error{ErrInput, e.Err} }

// MalformedMarkupError is returned when an icon file is not well-formed XML.
type MalformedMarkupError struct {
	Path string
	Err  error
}

func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("webfont: malformed markup in %s: %v", e.Path, e.Err)
}

func (e *MalformedMarkupError) Unwrap() []error { return []error{ErrParse, e.Err} }

// MetadataProviderError is returned when no metadata can be derived for
// an icon.
type MetadataProviderError struct {
	Path string
	Err  error
}

func (e *MetadataProviderError) Error() string {
	return fmt.Sprintf("webfont: metadata for %s: %v", e.Path, e.Err)
}

func (e *MetadataProviderError) Unwrap() []error { return []error{ErrMetadata, e.Err} }

// DuplicateCodepointError is returned when two glyphs claim the same
// unicode value.
type DuplicateCodepointError struct {
	// Codepoint is the claimed unicode value; more than one rune for a
	// ligature sequence.
	Codepoint string
	Paths     []string
}

func (e *DuplicateCodepointError) Error() string {
	return fmt.Sprintf("webfont: code point %s claimed by %s",
		formatCodepoint(e.Codepoint), strings.Join(e.Paths, ", "))
}

func (e *DuplicateCodepointError) Unwrap() error { return ErrMetadata }

// GlyphAssemblyError is returned when an icon cannot be added to the font.
// Path is empty when the font as a whole could not be laid out.
type GlyphAssemblyError struct {
	Path string
	Name string
	Err  error
}

func (e *GlyphAssemblyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("webfont: assemble font: %v", e.Err)
	}
	return fmt.Sprintf("webfont: assemble glyph %q (%s): %v", e.Name, e.Path, e.Err)
}

func (e *GlyphAssemblyError) Unwrap() []error { return []error{ErrAssembly, e.Err} }

// FormatConversionError is returned when a format cannot be derived.
type FormatConversionError struct {
	Format Format
	Err    error
}

func (e *FormatConversionError) Error() string {
	return fmt.Sprintf("webfont: convert to %s: %v", e.Format, e.Err)
}

func (e *FormatConversionError) Unwrap() []error { return []error{ErrConversion, e.Err} }

// TemplateRenderError is returned when the usage template cannot be rendered.
type TemplateRenderError struct {
	Template string
	Err      error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("webfont: render template %s: %v", e.Template, e.Err)
}

func (e *TemplateRenderError) Unwrap() []error { return []error{ErrTemplate, e.Err} }

// ConfigurationError is returned for an invalid configuration value.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("webfont: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// formatCodepoint renders a unicode value as U+XXXX runes.
func formatCodepoint(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("U+%04X", r))
	}
	return strings.Join(parts, " ")
}
