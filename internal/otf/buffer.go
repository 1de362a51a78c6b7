// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package otf

import (
	"encoding/binary"
	"math"
)

// Buffer appends big-endian values, the byte order of every sfnt structure.
type Buffer struct {
	b []byte
}

// NewBuffer returns a Buffer with capacity for n bytes.
func NewBuffer(n int) *Buffer {
	return &Buffer{b: make([]byte, 0, n)}
}

// Bytes returns the accumulated bytes.
func (w *Buffer) Bytes() []byte { return w.b }

// Len returns the number of bytes written so far.
func (w *Buffer) Len() int { return len(w.b) }

func (w *Buffer) U8(v uint8)   { w.b = append(w.b, v) }
func (w *Buffer) U16(v uint16) { w.b = binary.BigEndian.AppendUint16(w.b, v) }
func (w *Buffer) I16(v int16)  { w.U16(uint16(v)) }
func (w *Buffer) U32(v uint32) { w.b = binary.BigEndian.AppendUint32(w.b, v) }
func (w *Buffer) I32(v int32)  { w.U32(uint32(v)) }
func (w *Buffer) U64(v uint64) { w.b = binary.BigEndian.AppendUint64(w.b, v) }

// Fixed writes a 16.16 fixed point number.
func (w *Buffer) Fixed(v float64) {
	w.I32(int32(math.Round(v * 65536)))
}

// Write appends raw bytes.
func (w *Buffer) Write(p []byte) { w.b = append(w.b, p...) }

// Tag writes a four byte tag, space padded.
func (w *Buffer) Tag(tag string) { w.b = append(w.b, tagBytes(tag)...) }

// Pad appends zeros until the length is a multiple of four.
func (w *Buffer) Pad() {
	for len(w.b)%4 != 0 {
		w.b = append(w.b, 0)
	}
}

// PutU16 overwrites two bytes at off.
func (w *Buffer) PutU16(off int, v uint16) {
	binary.BigEndian.PutUint16(w.b[off:], v)
}

// PutU32 overwrites four bytes at off.
func (w *Buffer) PutU32(off int, v uint32) {
	binary.BigEndian.PutUint32(w.b[off:], v)
}

// Reader reads big-endian values at fixed offsets. Out of range reads
// return zero; callers check the table length up front.
type Reader []byte

func (r Reader) U8(off int) uint8 {
	if off < 0 || off >= len(r) {
		return 0
	}
	return r[off]
}

func (r Reader) U16(off int) uint16 {
	if off < 0 || off+2 > len(r) {
		return 0
	}
	return binary.BigEndian.Uint16(r[off:])
}

func (r Reader) I16(off int) int16 { return int16(r.U16(off)) }

func (r Reader) U32(off int) uint32 {
	if off < 0 || off+4 > len(r) {
		return 0
	}
	return binary.BigEndian.Uint32(r[off:])
}
