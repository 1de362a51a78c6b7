// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"context"
	"time"

	"github.com/gogpu/webfont/templates"
	"github.com/gogpu/webfont/ttf"
)

// Result is the outcome of a successful build.
type Result struct {
	// Glyphs are the glyphs of the font, in font order.
	Glyphs []Glyph

	// Artifacts holds one entry per requested format.
	Artifacts map[Format][]byte

	// Hash is the fingerprint of the SVG font.
	Hash string

	// Template is the rendered template; empty when none was requested.
	Template            string
	UsedBuiltinTemplate bool

	// Config is the effective configuration.
	Config Config
}

// Metadata returns the metadata of every glyph, in font order.
func (r *Result) Metadata() []GlyphMetadata {
	out := make([]GlyphMetadata, len(r.Glyphs))
	for i, g := range r.Glyphs {
		out[i] = g.Metadata.clone()
	}
	return out
}

// Builder runs builds. A Builder is safe for concurrent use; builds share
// only the glyph outline cache.
type Builder struct {
	opts  builderOptions
	cache *ttf.GlyphCache
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{opts: o, cache: ttf.NewGlyphCache(o.cacheSize)}
}

// Build builds a font with a default Builder.
func Build(ctx context.Context, cfg Config) (*Result, error) {
	return NewBuilder().Build(ctx, cfg)
}

// Build runs one build. Every error is fatal; on error the Result is nil.
func (b *Builder) Build(ctx context.Context, cfg Config) (*Result, error) {
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := Logger()
	start := time.Now()

	files, err := discover(cfg.Files)
	if err != nil {
		return nil, err
	}
	log.Debug("webfont: discovered files", "count", len(files))

	glyphs, err := ingest(ctx, cfg, files)
	if err != nil {
		return nil, err
	}
	log.Debug("webfont: ingested glyphs", "count", len(glyphs), "elapsed", time.Since(start))

	orderGlyphs(cfg, glyphs)
	if err := assignMetadata(ctx, cfg, glyphs); err != nil {
		return nil, err
	}

	svg, err := assemble(ctx, b.opts.assembler, cfg, glyphs)
	if err != nil {
		return nil, err
	}
	log.Debug("webfont: assembled svg font", "glyphs", len(glyphs), "bytes", len(svg))

	artifacts, err := b.derive(ctx, cfg, svg)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Glyphs:    glyphs,
		Artifacts: artifacts,
		Hash:      fingerprint(svg),
		Config:    cfg,
	}

	if cfg.Template != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := templates.NewRenderer(b.opts.templateDir)
		res.Template, res.UsedBuiltinTemplate, err = renderTemplate(r, cfg, glyphs, res.Hash)
		if err != nil {
			return nil, err
		}
	}

	log.Info("webfont: build complete",
		"font", cfg.FontName,
		"glyphs", len(glyphs),
		"formats", len(artifacts),
		"elapsed", time.Since(start))
	return res, nil
}
