// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package otf

import (
	"fmt"
	"slices"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Name IDs used by the name table.
const (
	NameCopyright       = 0
	NameFamily          = 1
	NameSubfamily       = 2
	NameUniqueID        = 3
	NameFull            = 4
	NameVersion         = 5
	NamePostScript      = 6
	NameDescription     = 10
	NameVendorURL       = 11
	NamePreferredFamily = 16
)

const (
	platformMac     = 1
	platformWindows = 3
	encodingUnicode = 1 // Windows Unicode BMP
	languageEnUS    = 0x0409
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// EncodeNames builds a format 0 name table holding each entry twice:
// Mac Roman for legacy consumers and Windows UTF-16BE.
func EncodeNames(names map[uint16]string) ([]byte, error) {
	ids := make([]uint16, 0, len(names))
	for id, s := range names {
		if s != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	type record struct {
		platform, encoding, language, id uint16
		data                             []byte
	}
	records := make([]record, 0, 2*len(ids))
	for _, id := range ids {
		mac, err := charmap.Macintosh.NewEncoder().String(names[id])
		if err != nil {
			// Not representable in Mac Roman; the Windows record carries it.
			mac = ""
		}
		if mac != "" {
			records = append(records, record{platformMac, 0, 0, id, []byte(mac)})
		}
	}
	for _, id := range ids {
		win, err := utf16be.NewEncoder().Bytes([]byte(names[id]))
		if err != nil {
			return nil, fmt.Errorf("otf: encode name %d: %w", id, err)
		}
		records = append(records, record{platformWindows, encodingUnicode, languageEnUS, id, win})
	}

	w := NewBuffer(256)
	w.U16(0) // format
	w.U16(uint16(len(records)))
	w.U16(uint16(6 + 12*len(records)))
	var storage []byte
	for _, r := range records {
		w.U16(r.platform)
		w.U16(r.encoding)
		w.U16(r.language)
		w.U16(r.id)
		w.U16(uint16(len(r.data)))
		w.U16(uint16(len(storage)))
		storage = append(storage, r.data...)
	}
	w.Write(storage)
	return w.Bytes(), nil
}

// ParseNames decodes the Windows Unicode records of a name table, falling
// back to Mac Roman records for IDs without a Windows entry.
func ParseNames(table []byte) (map[uint16]string, error) {
	r := Reader(table)
	if len(table) < 6 {
		return nil, fmt.Errorf("%w: name table too short", ErrFormat)
	}
	count := int(r.U16(2))
	storage := int(r.U16(4))
	if len(table) < 6+12*count {
		return nil, fmt.Errorf("%w: name records truncated", ErrFormat)
	}
	names := make(map[uint16]string)
	mac := make(map[uint16]string)
	for i := range count {
		rec := 6 + 12*i
		platform, encoding := r.U16(rec), r.U16(rec+2)
		id := r.U16(rec + 6)
		length, offset := int(r.U16(rec+8)), int(r.U16(rec+10))
		start := storage + offset
		if start+length > len(table) {
			return nil, fmt.Errorf("%w: name %d out of bounds", ErrFormat, id)
		}
		raw := table[start : start+length]
		switch {
		case platform == platformWindows && (encoding == 1 || encoding == 10):
			s, err := utf16be.NewDecoder().Bytes(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: name %d: %v", ErrFormat, id, err)
			}
			names[id] = string(s)
		case platform == platformMac && encoding == 0:
			s, err := charmap.Macintosh.NewDecoder().Bytes(raw)
			if err == nil {
				mac[id] = string(s)
			}
		}
	}
	for id, s := range mac {
		if _, ok := names[id]; !ok {
			names[id] = s
		}
	}
	return names, nil
}
