// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package eot

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/webfont/svgfont"
	"github.com/gogpu/webfont/ttf"
)

func testFont(t *testing.T) []byte {
	t.Helper()
	a := svgfont.NewAssembler(svgfont.Options{FontName: "eotfont", FontWeight: "bold", FontStyle: "italic", Round: svgfont.DefaultRound})
	if err := a.Add(svgfont.Glyph{Name: "sq", Unicode: []string{"\uEA01"}, Contents: []byte(`<svg width="24" height="24"><rect width="20" height="20"/></svg>`)}); err != nil {
		t.Fatal(err)
	}
	svg, err := a.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	data, err := ttf.NewEncoder(ttf.Options{}, nil).Encode(svg)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestEncodeHeader(t *testing.T) {
	font := testFont(t)
	out, err := Encode(font)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	le := binary.LittleEndian
	if got := le.Uint32(out); int(got) != len(out) {
		t.Errorf("EOTSize = %d, want %d", got, len(out))
	}
	if got := le.Uint32(out[4:]); int(got) != len(font) {
		t.Errorf("FontDataSize = %d, want %d", got, len(font))
	}
	if got := le.Uint32(out[8:]); got != Version {
		t.Errorf("Version = %#x", got)
	}
	if out[26] != 1 {
		t.Errorf("Charset = %d, want 1", out[26])
	}
	if out[27] != 1 {
		t.Error("italic flag not set")
	}
	if got := le.Uint32(out[28:]); got != 700 {
		t.Errorf("Weight = %d, want 700", got)
	}
	if got := le.Uint16(out[34:]); got != magic {
		t.Errorf("MagicNumber = %#x", got)
	}
	if !bytes.HasSuffix(out, font) {
		t.Error("font data is not appended verbatim")
	}

	// Family name follows the fixed header: 82 bytes, then its size.
	size := int(le.Uint16(out[82:]))
	name := out[84 : 84+size]
	want := []byte{'e', 0, 'o', 0, 't', 0, 'f', 0, 'o', 0, 'n', 0, 't', 0}
	if !bytes.Equal(name, want) {
		t.Errorf("FamilyName = % x, want % x", name, want)
	}
}

func TestEncodeRejectsGarbage(t *testing.T) {
	if _, err := Encode([]byte("definitely not a font")); !errors.Is(err, ErrEncode) {
		t.Errorf("Encode error = %v, want ErrEncode", err)
	}
}

func TestConverterHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Converter{}).Convert(ctx, testFont(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert error = %v, want context.Canceled", err)
	}
}
