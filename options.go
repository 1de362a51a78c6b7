// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

// DefaultGlyphCacheSize is the default number of encoded glyph outlines a
// Builder keeps between builds.
const DefaultGlyphCacheSize = 1024

// BuilderOption configures a Builder during creation.
// Use functional options to customize Builder behavior.
//
// Example:
//
//	// Default builder
//	b := webfont.NewBuilder()
//
//	// Custom WOFF2 encoder (dependency injection)
//	b := webfont.NewBuilder(webfont.WithConverter(webfont.FormatWOFF2, myEncoder))
type BuilderOption func(*builderOptions)

// builderOptions holds optional configuration for Builder creation.
type builderOptions struct {
	converters  map[Format]Converter
	assembler   AssemblerFactory
	cacheSize   int
	templateDir string
}

// defaultOptions returns the default builder options.
func defaultOptions() builderOptions {
	return builderOptions{
		converters: make(map[Format]Converter),
		assembler:  NewSVGFontAssembler,
		cacheSize:  DefaultGlyphCacheSize,
	}
}

// WithConverter replaces the converter deriving format f. The converter
// of FormatSVG is never used; the SVG font comes from the assembler.
//
// Example:
//
//	b := webfont.NewBuilder(webfont.WithConverter(webfont.FormatTTF,
//	    webfont.ConverterFunc(func(ctx context.Context, svg []byte) ([]byte, error) {
//	        return external.SVGToTTF(svg)
//	    })))
func WithConverter(f Format, c Converter) BuilderOption {
	return func(o *builderOptions) {
		if c == nil {
			delete(o.converters, f)
			return
		}
		o.converters[f] = c
	}
}

// WithAssemblerFactory replaces the SVG font assembler.
func WithAssemblerFactory(f AssemblerFactory) BuilderOption {
	return func(o *builderOptions) {
		if f != nil {
			o.assembler = f
		}
	}
}

// WithGlyphCacheSize sets the size of the glyph outline cache shared by
// the builds of a Builder. Zero disables caching.
func WithGlyphCacheSize(n int) BuilderOption {
	return func(o *builderOptions) {
		o.cacheSize = n
	}
}

// WithTemplateDir sets the directory relative template file paths are
// resolved against. It defaults to the working directory, like Config.Files.
func WithTemplateDir(dir string) BuilderOption {
	return func(o *builderOptions) {
		o.templateDir = dir
	}
}
