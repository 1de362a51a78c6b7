// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webfont builds icon fonts from SVG icons.
//
// # Overview
//
// A build reads a set of SVG icon files and produces one icon-font bundle:
// an SVG font document plus TrueType, EOT, WOFF and WOFF2 binaries derived
// from it, optionally accompanied by a rendered usage template (CSS, SCSS,
// HTML or a user supplied template).
//
// # Quick Start
//
//	cfg := webfont.DefaultConfig()
//	cfg.Files = []string{"icons/**/*.svg"}
//	cfg.Template = "css"
//
//	res, err := webfont.Build(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("webfont.woff2", res.Artifacts[webfont.FormatWOFF2], 0o644)
//
// # Pipeline
//
// A build runs these stages:
//   - discovery: file patterns are expanded and filtered to .svg files
//   - ingestion: files are read concurrently, bounded by MaxConcurrency
//   - ordering: glyphs are sorted naturally by path (unless Sort is false)
//   - metadata: names and code points are assigned in final order
//   - assembly: glyphs are folded into one SVG font document
//   - derivation: svg → ttf → {eot, woff, woff2}
//   - fingerprint and template rendering
//
// Only ingestion is concurrent. Every derived format is computed from the
// same TrueType bytes, so all formats agree on glyph order and code points.
//
// # Code Points
//
// File names of the form "uEA01-name.svg" pin a glyph to a code point;
// "uE001uE002-name.svg" maps a ligature sequence and "uE001,uE002-name.svg"
// maps several code points. Other glyphs get the next free code point from
// StartUnicode on, skipping every pinned code point of the build.
//
// # Customization
//
// The stages are replaceable through [MetadataProvider], [AssemblerFactory]
// and [Converter], installed with [BuilderOption] values on a [Builder].
//
// # Logging
//
// Builds are silent by default; see [SetLogger].
package webfont
