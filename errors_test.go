// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		err   error
		kind  error
		cause bool
		text  string
	}{
		{&NoMatchingFilesError{Patterns: []string{"*.svg"}}, ErrInput, false, "*.svg"},
		{&EmptyInputError{Path: "a.svg"}, ErrInput, false, "a.svg"},
		{&InputReadError{Path: "a.svg", Err: cause}, ErrInput, true, "a.svg"},
		{&MalformedMarkupError{Path: "a.svg", Err: cause}, ErrParse, true, "a.svg"},
		{&MetadataProviderError{Path: "a.svg", Err: cause}, ErrMetadata, true, "a.svg"},
		{&DuplicateCodepointError{Codepoint: "ab", Paths: []string{"a.svg", "b.svg"}}, ErrMetadata, false, "U+0061 U+0062"},
		{&GlyphAssemblyError{Path: "a.svg", Name: "a", Err: cause}, ErrAssembly, true, `"a"`},
		{&GlyphAssemblyError{Err: cause}, ErrAssembly, true, "assemble font"},
		{&FormatConversionError{Format: FormatWOFF, Err: cause}, ErrConversion, true, "woff"},
		{&TemplateRenderError{Template: "css", Err: cause}, ErrTemplate, true, "css"},
		{&ConfigurationError{Field: "round", Reason: "bad"}, ErrConfiguration, false, "round"},
	}
	kinds := []error{ErrInput, ErrParse, ErrMetadata, ErrAssembly, ErrConversion, ErrTemplate, ErrConfiguration}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.kind) {
			t.Errorf("%T does not match %v", tt.err, tt.kind)
		}
		for _, k := range kinds {
			if k != tt.kind && errors.Is(tt.err, k) {
				t.Errorf("%T also matches %v", tt.err, k)
			}
		}
		if got := errors.Is(tt.err, cause); got != tt.cause {
			t.Errorf("%T: errors.Is(cause) = %v, want %v", tt.err, got, tt.cause)
		}
		if !strings.Contains(tt.err.Error(), tt.text) {
			t.Errorf("%T.Error() = %q, want it to contain %q", tt.err, tt.err.Error(), tt.text)
		}
	}
}
