// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"bytes"
	"context"
	"time"

	"github.com/gogpu/webfont/eot"
	"github.com/gogpu/webfont/ttf"
	"github.com/gogpu/webfont/woff"
	"github.com/gogpu/webfont/woff2"
)

// Converter derives one font format from the bytes of its source format:
// the SVG font for ttf, the TrueType font for eot, woff and woff2.
type Converter interface {
	Convert(ctx context.Context, src []byte) ([]byte, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(ctx context.Context, src []byte) ([]byte, error)

// Convert calls f(ctx, src).
func (f ConverterFunc) Convert(ctx context.Context, src []byte) ([]byte, error) {
	return f(ctx, src)
}

// derivedFormats are the formats computed from the TrueType font, in the
// order they are derived.
var derivedFormats = []Format{FormatEOT, FormatWOFF, FormatWOFF2}

// converter returns the converter installed for f, or the default one.
func (b *Builder) converter(f Format, cfg Config) Converter {
	if c, ok := b.opts.converters[f]; ok {
		return c
	}
	switch f {
	case FormatTTF:
		t := cfg.FormatsOptions.TTF
		return ttf.NewEncoder(ttf.Options{
			Copyright:   t.Copyright,
			Description: t.Description,
			URL:         t.URL,
			Version:     t.Version,
			Timestamp:   t.Timestamp,
		}, b.cache)
	case FormatEOT:
		return eot.Converter{}
	case FormatWOFF:
		return woff.Converter{Options: woff.Options{Metadata: cfg.Metadata}}
	case FormatWOFF2:
		return woff2.Converter{}
	}
	return nil
}

// derive computes the requested formats from the SVG font. TrueType is
// computed whenever a format depends on it, and kept only if requested.
// The first failure stops the chain.
func (b *Builder) derive(ctx context.Context, cfg Config, svg []byte) (map[Format][]byte, error) {
	out := make(map[Format][]byte, len(cfg.Formats))
	if cfg.Wants(FormatSVG) {
		out[FormatSVG] = svg
	}
	if !needsTTF(cfg.Formats) {
		return out, nil
	}

	base, err := b.convert(ctx, cfg, FormatTTF, svg)
	if err != nil {
		return nil, err
	}
	if cfg.Verify {
		if err := ttf.Verify(base, svg, cfg.Inspector); err != nil {
			return nil, &FormatConversionError{Format: FormatTTF, Err: err}
		}
		Logger().Debug("webfont: ttf verified", "inspector", cfg.Inspector)
	}
	if cfg.Wants(FormatTTF) {
		out[FormatTTF] = base
	}

	for _, f := range derivedFormats {
		if !cfg.Wants(f) {
			continue
		}
		// Every format gets its own copy of the same TrueType bytes.
		data, err := b.convert(ctx, cfg, f, bytes.Clone(base))
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}

func (b *Builder) convert(ctx context.Context, cfg Config, f Format, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	data, err := b.converter(f, cfg).Convert(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FormatConversionError{Format: f, Err: err}
	}
	Logger().Debug("webfont: converted",
		"format", f.String(),
		"from", f.source().String(),
		"bytes", len(data),
		"elapsed", time.Since(start))
	return data, nil
}
