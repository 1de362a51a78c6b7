// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/webfont/svgfont"
	"github.com/gogpu/webfont/ttf"
)

// Default configuration values.
const (
	DefaultFontName       = "webfont"
	DefaultMaxConcurrency = 100
	DefaultStartUnicode   = 0xEA01
	DefaultFontPath       = "./"
	DefaultRound          = svgfont.DefaultRound
)

// TTFOptions are the TrueType encoder options.
type TTFOptions struct {
	Copyright   string
	Description string
	URL         string
	Version     string

	// Timestamp is the font creation date in Unix seconds. Zero means the
	// Unix epoch, which keeps builds reproducible.
	Timestamp int64
}

// FormatsOptions holds per-format options.
type FormatsOptions struct {
	TTF TTFOptions
}

// Config is the configuration of one build. A Config is a value: stages
// receive copies, and Apply returns a new Config.
type Config struct {
	// Files are file paths or doublestar glob patterns ("icons/**/*.svg").
	// Only files with the .svg extension are used.
	Files []string

	FontName   string
	FontID     string
	FontStyle  string
	FontWeight string

	// FontHeight is the units-per-em of the font; zero means the height
	// of the tallest icon.
	FontHeight float64

	// Ascent defaults to the font height minus Descent when nil.
	Ascent  *float64
	Descent float64

	FixedWidth         bool
	CenterHorizontally bool
	Normalize          bool

	// Round is the coordinate precision factor of the SVG font.
	Round float64

	// Metadata is written into the SVG font and the WOFF metadata block.
	Metadata string

	Formats        []Format
	FormatsOptions FormatsOptions

	// MaxConcurrency bounds the number of files read at once.
	MaxConcurrency int

	// Sort orders glyphs naturally by path; when false the order of Files
	// (and of each pattern's matches) is kept.
	Sort bool

	StartUnicode rune

	// PrependUnicode marks auto-numbered glyphs for renaming to
	// "u<HEX>-<name>.svg"; see GlyphMetadata.RenamedPath.
	PrependUnicode bool

	// Template is a built-in template name ("css", "scss", "html") or a
	// template file path. Empty disables template rendering.
	Template          string
	TemplateClassName string
	TemplateFontName  string
	TemplateFontPath  string
	AddHashInFontURL  bool

	// Verify parses the TrueType font back with the named Inspector and
	// checks every glyph and code point.
	Verify    bool
	Inspector string

	// GlyphTransform, when set, rewrites the metadata of every glyph as
	// passed to the template.
	GlyphTransform func(GlyphMetadata) GlyphMetadata

	// MetadataProvider replaces the default file name based provider.
	MetadataProvider MetadataProvider

	// ConfigFile is the file the configuration was loaded from, if any.
	ConfigFile string
}

// DefaultConfig returns the default configuration. Files is empty.
func DefaultConfig() Config {
	return Config{
		FontName:         DefaultFontName,
		Round:            DefaultRound,
		Formats:          AllFormats(),
		MaxConcurrency:   DefaultMaxConcurrency,
		Sort:             true,
		StartUnicode:     DefaultStartUnicode,
		TemplateFontPath: DefaultFontPath,
		Inspector:        ttf.DefaultInspector,
	}
}

// Clone returns a copy of c that shares no slices or pointers with it.
func (c Config) Clone() Config {
	c.Files = slices.Clone(c.Files)
	c.Formats = slices.Clone(c.Formats)
	if c.Ascent != nil {
		a := *c.Ascent
		c.Ascent = &a
	}
	return c
}

// Validate checks c and returns a *ConfigurationError for the first
// invalid field.
func (c Config) Validate() error {
	switch {
	case len(c.Files) == 0:
		return &ConfigurationError{Field: "files", Reason: "no file patterns given"}
	case strings.TrimSpace(c.FontName) == "":
		return &ConfigurationError{Field: "fontName", Reason: "must not be empty"}
	case c.MaxConcurrency < 1:
		return &ConfigurationError{Field: "maxConcurrency", Reason: fmt.Sprintf("must be at least 1, got %d", c.MaxConcurrency)}
	case c.FontHeight < 0:
		return &ConfigurationError{Field: "fontHeight", Reason: "must not be negative"}
	case c.Round < 0:
		return &ConfigurationError{Field: "round", Reason: "must not be negative"}
	case !validCodepoint(c.StartUnicode):
		return &ConfigurationError{Field: "startUnicode", Reason: fmt.Sprintf("%#x is not a valid code point", c.StartUnicode)}
	}
	for _, f := range c.Formats {
		if !f.Valid() {
			return &ConfigurationError{Field: "formats", Reason: fmt.Sprintf("unknown format %q", f)}
		}
	}
	if c.Verify {
		if _, ok := ttf.LookupInspector(c.Inspector); !ok {
			return &ConfigurationError{Field: "inspector", Reason: fmt.Sprintf("unknown inspector %q", c.Inspector)}
		}
	}
	return nil
}

// Wants reports whether format f was requested.
func (c Config) Wants(f Format) bool {
	return slices.Contains(c.Formats, f)
}

func (c Config) className() string {
	if c.TemplateClassName != "" {
		return c.TemplateClassName
	}
	return c.FontName
}

func (c Config) templateFontName() string {
	if c.TemplateFontName != "" {
		return c.TemplateFontName
	}
	return c.FontName
}

// fontID returns the id of the SVG font element.
func (c Config) fontID() string {
	if c.FontID != "" {
		return c.FontID
	}
	return c.FontName
}

// fontPath returns TemplateFontPath with exactly one trailing slash.
func (c Config) fontPath() string {
	return strings.TrimSuffix(c.TemplateFontPath, "/") + "/"
}

func validCodepoint(r rune) bool {
	return r > 0 && utf8.ValidRune(r)
}
