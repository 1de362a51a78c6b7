// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package woff2 wraps a TrueType font in a WOFF2 container. Tables are
// stored with the null transform (glyf and loca included) and compressed
// together in a single Brotli stream.
package woff2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/gogpu/webfont/internal/otf"
)

// Signature is the WOFF2 magic number, "wOF2".
const Signature = 0x774F4632

const headerLen = 48

// transformNull marks glyf and loca as stored without the glyf transform.
// For every other table the null transform is version 0.
const transformNull = 3

// ErrEncode is returned (wrapped) when a font cannot be wrapped.
var ErrEncode = errors.New("woff2: cannot encode font")

// knownTags are the table tags with a one byte encoding in the table
// directory, indexed by that encoding.
var knownTags = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

// Encode converts a TrueType font to WOFF2.
func Encode(ttf []byte) ([]byte, error) {
	f, err := otf.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	tables := directoryOrder(f.Tables)

	dir := otf.NewBuffer(8 * len(tables))
	var stream bytes.Buffer
	sfntSize := 12 + 16*len(tables)
	for _, t := range tables {
		sfntSize += otf.Pad4(len(t.Data))
		flags := byte(63)
		if i := slices.Index(knownTags, t.Tag); i >= 0 {
			flags = byte(i)
		}
		if t.Tag == "glyf" || t.Tag == "loca" {
			flags |= transformNull << 6
		}
		dir.U8(flags)
		if flags&63 == 63 {
			dir.Tag(t.Tag)
		}
		dir.Write(AppendUIntBase128(nil, uint32(len(t.Data))))
		stream.Write(t.Data)
	}

	var compressed bytes.Buffer
	bw := brotli.NewWriterLevel(&compressed, brotli.BestCompression)
	if _, err := bw.Write(stream.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	total := otf.Pad4(headerLen + dir.Len() + compressed.Len())
	rev := otf.Reader(f.Table("head")).U32(4)

	w := otf.NewBuffer(total)
	w.U32(Signature)
	w.U32(f.Version)
	w.U32(uint32(total))
	w.U16(uint16(len(tables)))
	w.U16(0) // reserved
	w.U32(uint32(sfntSize))
	w.U32(uint32(compressed.Len()))
	w.U16(uint16(rev >> 16))
	w.U16(uint16(rev))
	for range 5 {
		w.U32(0) // no metadata or private block
	}
	w.Write(dir.Bytes())
	w.Write(compressed.Bytes())
	w.Pad()
	return w.Bytes(), nil
}

// directoryOrder sorts tables by tag and moves loca right behind glyf.
func directoryOrder(in []otf.Table) []otf.Table {
	ts := slices.Clone(in)
	slices.SortFunc(ts, func(a, b otf.Table) int { return strings.Compare(a.Tag, b.Tag) })
	li := slices.IndexFunc(ts, func(t otf.Table) bool { return t.Tag == "loca" })
	if li < 0 {
		return ts
	}
	loca := ts[li]
	ts = slices.Delete(ts, li, li+1)
	gi := slices.IndexFunc(ts, func(t otf.Table) bool { return t.Tag == "glyf" })
	if gi < 0 {
		return append(ts, loca)
	}
	return slices.Insert(ts, gi+1, loca)
}

// AppendUIntBase128 appends v in the variable length UIntBase128 encoding:
// seven bits per byte, most significant first, high bit set on every byte
// but the last.
func AppendUIntBase128(b []byte, v uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
	}
	return append(b, tmp[i:]...)
}

// Converter adapts Encode to the webfont converter contract.
type Converter struct{}

// Convert implements the webfont converter contract.
func (Converter) Convert(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Encode(src)
}
