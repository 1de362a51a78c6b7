// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package eot wraps a TrueType font in an Embedded OpenType (version 2.1)
// container, the format legacy Internet Explorer expects in @font-face.
// Font data is stored uncompressed and unobfuscated.
package eot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/gogpu/webfont/internal/otf"
)

// Version is the EOT header version written by Encode.
const Version = 0x00020001

const magic = 0x504C

// ErrEncode is returned (wrapped) when the input is not a usable TrueType font.
var ErrEncode = errors.New("eot: cannot encode font")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Encode converts a TrueType font to EOT.
func Encode(ttf []byte) ([]byte, error) {
	f, err := otf.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	os2 := otf.Reader(f.Table("OS/2"))
	head := otf.Reader(f.Table("head"))
	if len(os2) < 86 {
		return nil, fmt.Errorf("%w: OS/2 table missing or too short", ErrEncode)
	}
	if len(head) < 54 {
		return nil, fmt.Errorf("%w: head table missing or too short", ErrEncode)
	}
	names, err := otf.ParseNames(f.Table("name"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	var strs [][]byte
	for _, id := range []uint16{otf.NameFamily, otf.NameSubfamily, otf.NameVersion, otf.NameFull} {
		b, err := utf16le.NewEncoder().Bytes([]byte(names[id]))
		if err != nil {
			return nil, fmt.Errorf("%w: name %d: %w", ErrEncode, id, err)
		}
		strs = append(strs, b)
	}

	h := make([]byte, 0, 128+len(ttf))
	le16 := func(v uint16) { h = binary.LittleEndian.AppendUint16(h, v) }
	le32 := func(v uint32) { h = binary.LittleEndian.AppendUint32(h, v) }

	le32(0) // EOTSize, patched below
	le32(uint32(len(ttf)))
	le32(Version)
	le32(0)                      // Flags
	h = append(h, os2[32:42]...) // PANOSE
	h = append(h, 1)             // DEFAULT_CHARSET
	if os2.U16(62)&1 != 0 {
		h = append(h, 1)
	} else {
		h = append(h, 0)
	}
	le32(uint32(os2.U16(4))) // usWeightClass
	le16(os2.U16(8))         // fsType
	le16(magic)
	for i := range 4 {
		le32(os2.U32(42 + 4*i)) // ulUnicodeRange1-4
	}
	le32(os2.U32(78)) // ulCodePageRange1
	le32(os2.U32(82))
	le32(head.U32(8)) // checkSumAdjustment
	for range 4 {
		le32(0) // Reserved1-4
	}
	le16(0) // Padding1
	for i, s := range strs {
		if i > 0 {
			le16(0) // Padding
		}
		le16(uint16(len(s)))
		h = append(h, s...)
	}
	le16(0) // Padding5
	le16(0) // RootStringSize

	h = append(h, ttf...)
	binary.LittleEndian.PutUint32(h, uint32(len(h)))
	return h, nil
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
