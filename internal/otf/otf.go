// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package otf reads and writes the sfnt container shared by TrueType,
// EOT, WOFF and WOFF2: the offset table, the table directory and table
// checksums. It knows nothing about the contents of individual tables.
package otf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"slices"
)

// VersionTrueType is the sfnt version of fonts with TrueType outlines.
const VersionTrueType = 0x00010000

// checksumMagic is the value the whole-font checksum must sum to.
const checksumMagic = 0xB1B0AFBA

// ErrFormat is returned (wrapped) when the input is not a usable sfnt.
var ErrFormat = errors.New("otf: malformed font")

// Table is one sfnt table.
type Table struct {
	Tag      string
	Checksum uint32
	Data     []byte
}

// Font is a parsed sfnt container. Tables keep file order.
type Font struct {
	Version uint32
	Tables  []Table
}

// Table returns the data of the table with the given tag, or nil.
func (f *Font) Table(tag string) []byte {
	for _, t := range f.Tables {
		if t.Tag == tag {
			return t.Data
		}
	}
	return nil
}

// Parse reads the table directory of an sfnt font. Table data slices
// alias data.
func Parse(data []byte) (*Font, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: %d bytes is too short for an offset table", ErrFormat, len(data))
	}
	f := &Font{Version: binary.BigEndian.Uint32(data)}
	n := int(binary.BigEndian.Uint16(data[4:]))
	if len(data) < 12+16*n {
		return nil, fmt.Errorf("%w: table directory truncated", ErrFormat)
	}
	f.Tables = make([]Table, 0, n)
	for i := range n {
		rec := data[12+16*i:]
		off := binary.BigEndian.Uint32(rec[8:])
		length := binary.BigEndian.Uint32(rec[12:])
		if uint64(off)+uint64(length) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: table %q out of bounds", ErrFormat, rec[:4])
		}
		f.Tables = append(f.Tables, Table{
			Tag:      string(rec[:4]),
			Checksum: binary.BigEndian.Uint32(rec[4:]),
			Data:     data[off : off+length],
		})
	}
	return f, nil
}

// Checksum computes the sfnt checksum of b, padding it with zeros to a
// multiple of four bytes.
func Checksum(b []byte) uint32 {
	var sum uint32
	for len(b) >= 4 {
		sum += binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	if len(b) > 0 {
		var tail [4]byte
		copy(tail[:], b)
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}

// Pad4 returns n rounded up to a multiple of four.
func Pad4(n int) int {
	return (n + 3) &^ 3
}

// SearchParams returns the binary search hints used by the sfnt table
// directory and cmap format 4: searchRange, entrySelector and rangeShift
// for n entries of the given unit size.
func SearchParams(n, unit int) (searchRange, entrySelector, rangeShift uint16) {
	if n == 0 {
		return 0, 0, 0
	}
	es := bits.Len(uint(n)) - 1
	sr := (1 << es) * unit
	return uint16(sr), uint16(es), uint16(n*unit - sr)
}

// Write serializes tables into an sfnt font. Tables are sorted by tag,
// each checksum is recomputed and, when a head table is present, its
// checkSumAdjustment is set so the font checksums to the magic value.
// The input slices are not modified.
func Write(version uint32, tables []Table) []byte {
	sorted := slices.Clone(tables)
	slices.SortFunc(sorted, func(a, b Table) int {
		switch {
		case a.Tag < b.Tag:
			return -1
		case a.Tag > b.Tag:
			return 1
		}
		return 0
	})

	headerLen := 12 + 16*len(sorted)
	size := headerLen
	for _, t := range sorted {
		size += Pad4(len(t.Data))
	}
	out := make([]byte, size)

	binary.BigEndian.PutUint32(out, version)
	binary.BigEndian.PutUint16(out[4:], uint16(len(sorted)))
	sr, es, rs := SearchParams(len(sorted), 16)
	binary.BigEndian.PutUint16(out[6:], sr)
	binary.BigEndian.PutUint16(out[8:], es)
	binary.BigEndian.PutUint16(out[10:], rs)

	headOffset := -1
	off := headerLen
	for i, t := range sorted {
		data := t.Data
		if t.Tag == "head" && len(data) >= 12 {
			data = slices.Clone(data)
			binary.BigEndian.PutUint32(data[8:], 0)
			headOffset = off
		}
		rec := out[12+16*i:]
		copy(rec[:4], tagBytes(t.Tag))
		binary.BigEndian.PutUint32(rec[4:], Checksum(data))
		binary.BigEndian.PutUint32(rec[8:], uint32(off))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(data)))
		copy(out[off:], data)
		off += Pad4(len(data))
	}

	if headOffset >= 0 {
		binary.BigEndian.PutUint32(out[headOffset+8:], checksumMagic-Checksum(out))
	}
	return out
}

func tagBytes(tag string) []byte {
	b := []byte("    ")
	copy(b, tag)
	return b
}
