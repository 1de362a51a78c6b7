// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package otf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriteParseRoundTrip(t *testing.T) {
	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[8:], 0xDEADBEEF) // stale adjustment is ignored
	tables := []Table{
		{Tag: "maxp", Data: []byte{0, 0, 0x50, 0, 0, 3}},
		{Tag: "head", Data: head},
		{Tag: "OS/2", Data: []byte{1, 2, 3}},
	}

	out := Write(VersionTrueType, tables)
	if got := Checksum(out); got != checksumMagic {
		t.Errorf("font checksum = %#x, want %#x", got, uint32(checksumMagic))
	}
	if tables[1].Data[8] != 0xDE {
		t.Error("Write modified the caller's head table")
	}

	f, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Version != VersionTrueType {
		t.Errorf("version = %#x", f.Version)
	}
	var tags []string
	for _, tbl := range f.Tables {
		tags = append(tags, tbl.Tag)
		if tbl.Tag != "head" && tbl.Checksum != Checksum(tbl.Data) {
			t.Errorf("%s checksum = %#x, want %#x", tbl.Tag, tbl.Checksum, Checksum(tbl.Data))
		}
	}
	if want := []string{"OS/2", "head", "maxp"}; !equalStrings(tags, want) {
		t.Errorf("table order = %v, want %v", tags, want)
	}
	if !bytes.Equal(f.Table("OS/2"), []byte{1, 2, 3}) {
		t.Errorf("OS/2 data = %v", f.Table("OS/2"))
	}
	if f.Table("glyf") != nil {
		t.Error("missing table should be nil")
	}
	if len(out)%4 != 0 {
		t.Errorf("font length %d is not 4-byte aligned", len(out))
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	out := Write(VersionTrueType, []Table{{Tag: "name", Data: make([]byte, 40)}})
	for _, n := range []int{0, 11, 20, len(out) - 8} {
		if _, err := Parse(out[:n]); !errors.Is(err, ErrFormat) {
			t.Errorf("Parse(%d bytes) error = %v, want ErrFormat", n, err)
		}
	}
}

func TestSearchParams(t *testing.T) {
	tests := []struct {
		n, unit    int
		sr, es, rs uint16
	}{
		{1, 16, 16, 0, 0},
		{9, 16, 128, 3, 16},
		{16, 16, 256, 4, 0},
		{3, 2, 4, 1, 2},
	}
	for _, tt := range tests {
		sr, es, rs := SearchParams(tt.n, tt.unit)
		if sr != tt.sr || es != tt.es || rs != tt.rs {
			t.Errorf("SearchParams(%d,%d) = %d,%d,%d want %d,%d,%d", tt.n, tt.unit, sr, es, rs, tt.sr, tt.es, tt.rs)
		}
	}
}

func TestChecksumPadsTail(t *testing.T) {
	if got := Checksum([]byte{0, 0, 0, 1, 2}); got != 1+0x02000000 {
		t.Errorf("Checksum = %#x", got)
	}
}

func TestNamesRoundTrip(t *testing.T) {
	in := map[uint16]string{
		NameFamily:    "webfont",
		NameCopyright: "© Example",
		NameVersion:   "Version 1.0",
		NameFull:      "アイコン",
	}
	table, err := EncodeNames(in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseNames(table)
	if err != nil {
		t.Fatal(err)
	}
	for id, want := range in {
		if got[id] != want {
			t.Errorf("name %d = %q, want %q", id, got[id], want)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
