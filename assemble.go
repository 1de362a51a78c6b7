// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"context"
	"errors"

	"github.com/gogpu/webfont/svgfont"
)

// FontAssembler folds glyphs, in order, into an SVG font document.
type FontAssembler interface {
	Add(g Glyph) error
	Finalize() ([]byte, error)
}

// AssemblerFactory creates the assembler of one build.
type AssemblerFactory func(cfg Config) FontAssembler

// NewSVGFontAssembler is the default AssemblerFactory.
func NewSVGFontAssembler(cfg Config) FontAssembler {
	return &svgFontAssembler{a: svgfont.NewAssembler(svgfont.Options{
		FontName:           cfg.FontName,
		FontID:             cfg.FontID,
		FontStyle:          cfg.FontStyle,
		FontWeight:         cfg.FontWeight,
		FontHeight:         cfg.FontHeight,
		Ascent:             cfg.Ascent,
		Descent:            cfg.Descent,
		FixedWidth:         cfg.FixedWidth,
		CenterHorizontally: cfg.CenterHorizontally,
		Normalize:          cfg.Normalize,
		Round:              cfg.Round,
		Metadata:           cfg.Metadata,
	})}
}

type svgFontAssembler struct {
	a *svgfont.Assembler
}

func (s *svgFontAssembler) Add(g Glyph) error {
	return s.a.Add(svgfont.Glyph{
		Name:     g.Metadata.Name,
		Unicode:  g.Metadata.Unicode,
		Contents: g.Contents,
		Source:   g.Path,
	})
}

func (s *svgFontAssembler) Finalize() ([]byte, error) {
	return s.a.Finalize()
}

// assemble builds the SVG font of glyphs with a fresh assembler.
func assemble(ctx context.Context, factory AssemblerFactory, cfg Config, glyphs []Glyph) ([]byte, error) {
	a := factory(cfg)
	for _, g := range glyphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.Add(g); err != nil {
			return nil, &GlyphAssemblyError{Path: g.Path, Name: g.Metadata.Name, Err: err}
		}
	}
	svg, err := a.Finalize()
	if err != nil {
		ae := &GlyphAssemblyError{Err: err}
		var ge *svgfont.GlyphError
		if errors.As(err, &ge) {
			ae.Path, ae.Name = ge.Source, ge.Name
		}
		return nil, ae
	}
	return svg, nil
}
