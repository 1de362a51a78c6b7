// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package woff wraps a TrueType font in a WOFF 1.0 container, compressing
// each table with zlib.
package woff

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/gogpu/webfont/internal/otf"
)

// Signature is the WOFF 1.0 magic number, "wOFF".
const Signature = 0x774F4646

const (
	headerLen   = 44
	dirEntryLen = 20
)

// ErrEncode is returned (wrapped) when a font cannot be wrapped.
var ErrEncode = errors.New("woff: cannot encode font")

// Options control optional WOFF blocks.
type Options struct {
	// Metadata is the extended metadata block. A value starting with '<'
	// is used as the XML document verbatim; anything else becomes the
	// description of a minimal metadata document.
	Metadata string
}

// Encode converts a TrueType font to WOFF. Tables that do not shrink under
// compression are stored as is, as the format requires.
func Encode(ttf []byte, opts Options) ([]byte, error) {
	f, err := otf.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	tables := f.Tables
	n := len(tables)
	sorted := slices.Clone(tables)
	slices.SortFunc(sorted, func(a, b otf.Table) int { return strings.Compare(a.Tag, b.Tag) })

	sfntSize := 12 + 16*n
	offset := headerLen + dirEntryLen*n
	dir := otf.NewBuffer(dirEntryLen * n)
	var body bytes.Buffer
	for _, t := range sorted {
		sfntSize += otf.Pad4(len(t.Data))
		data, err := compress(t.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: table %q: %w", ErrEncode, t.Tag, err)
		}
		if len(data) >= len(t.Data) {
			data = t.Data
		}
		dir.Tag(t.Tag)
		dir.U32(uint32(offset))
		dir.U32(uint32(len(data)))
		dir.U32(uint32(len(t.Data)))
		dir.U32(t.Checksum)

		body.Write(data)
		for body.Len()%4 != 0 {
			body.WriteByte(0)
		}
		offset = headerLen + dirEntryLen*n + body.Len()
	}

	var metaOffset, metaLength, metaOrigLength int
	if opts.Metadata != "" {
		doc := metadataDocument(opts.Metadata)
		data, err := compress(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata: %w", ErrEncode, err)
		}
		metaOffset, metaLength, metaOrigLength = offset, len(data), len(doc)
		body.Write(data)
	}

	total := headerLen + dir.Len() + body.Len()
	// The file is padded to four bytes unless it ends with metadata.
	if metaLength == 0 && total%4 != 0 {
		total = otf.Pad4(total)
	}

	rev := otf.Reader(f.Table("head")).U32(4)

	w := otf.NewBuffer(total)
	w.U32(Signature)
	w.U32(f.Version)
	w.U32(uint32(total))
	w.U16(uint16(n))
	w.U16(0) // reserved
	w.U32(uint32(sfntSize))
	w.U16(uint16(rev >> 16))
	w.U16(uint16(rev))
	w.U32(uint32(metaOffset))
	w.U32(uint32(metaLength))
	w.U32(uint32(metaOrigLength))
	w.U32(0) // privOffset
	w.U32(0) // privLength
	w.Write(dir.Bytes())
	w.Write(body.Bytes())
	for w.Len() < total {
		w.U8(0)
	}
	return w.Bytes(), nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func metadataDocument(meta string) []byte {
	if strings.HasPrefix(strings.TrimSpace(meta), "<") {
		return []byte(meta)
	}
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<metadata version="1.0"><description><text lang="en">`)
	_ = xml.EscapeText(&b, []byte(meta))
	b.WriteString(`</text></description></metadata>`)
	return b.Bytes()
}

// Converter adapts Encode to the webfont converter contract.
type Converter struct {
	Options Options
}

// Convert implements the webfont converter contract.
func (c Converter) Convert(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Encode(src, c.Options)
}
