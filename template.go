// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"github.com/gogpu/webfont/templates"
)

// renderTemplate renders cfg.Template for the built font.
func renderTemplate(r *templates.Renderer, cfg Config, glyphs []Glyph, hash string) (string, bool, error) {
	data := templates.Data{
		Glyphs:    make([]templates.Glyph, 0, len(glyphs)),
		Config:    cfg,
		ClassName: cfg.className(),
		FontName:  cfg.templateFontName(),
		FontID:    cfg.fontID(),
		FontPath:  cfg.fontPath(),
		Formats:   make([]string, 0, len(cfg.Formats)),
	}
	if cfg.AddHashInFontURL {
		data.Hash = hash
	}
	for _, f := range cfg.Formats {
		data.Formats = append(data.Formats, f.String())
	}
	for _, g := range glyphs {
		md := g.Metadata.clone()
		if cfg.GlyphTransform != nil {
			md = cfg.GlyphTransform(md)
		}
		data.Glyphs = append(data.Glyphs, templates.Glyph{
			Name:    md.Name,
			Unicode: md.Unicode,
			Path:    md.Path,
		})
	}

	out, builtin, err := r.Render(cfg.Template, data)
	if err != nil {
		return "", builtin, &TemplateRenderError{Template: cfg.Template, Err: err}
	}
	return out, builtin, nil
}
