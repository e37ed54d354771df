package ot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func TestChecksum(t *testing.T) {
	if sum := checksum([]byte{0, 0, 0, 1, 0, 0, 0, 2}); sum != 3 {
		t.Errorf("expected checksum 3, have %d", sum)
	}
	if sum := checksum([]byte{0, 0, 0, 1, 1}); sum != 0x01000001 {
		t.Errorf("expected trailing byte to be zero-padded, checksum is %#x", sum)
	}
	if sum := checksum([]byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 2}); sum != 1 {
		t.Errorf("expected checksum to wrap around, is %d", sum)
	}
}

func TestEncodeGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	out, err := otf.Encode()
	if err != nil {
		t.Fatalf("encoding Go Regular failed: %v", err)
	}
	if sum := checksum(out); sum != checkSumMagic {
		t.Errorf("expected whole-font checksum %#x, have %#x", checkSumMagic, sum)
	}
	if err := CompareTables(goregular.TTF, out, T("name"), T("head")); err != nil {
		t.Errorf("expected tables to pass through unchanged: %v", err)
	}
	reparsed, err := Parse(out)
	if err != nil {
		t.Fatalf("cannot re-parse encoded font: %v", err)
	}
	if diff := cmp.Diff(otf.Name().Records, reparsed.Name().Records); diff != "" {
		t.Errorf("name records changed (-want +got):\n%s", diff)
	}
	if len(reparsed.Warnings()) != 0 {
		t.Errorf("expected encoded font to have valid checksums, warnings: %v", reparsed.Warnings())
	}
	// the rasterizing stack has to accept the result as well
	f1, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := sfnt.Parse(out)
	if err != nil {
		t.Fatalf("x/image cannot parse encoded font: %v", err)
	}
	if f1.NumGlyphs() != f2.NumGlyphs() {
		t.Errorf("expected %d glyphs, have %d", f1.NumGlyphs(), f2.NumGlyphs())
	}
	full1, _ := f1.Name(nil, sfnt.NameIDFull)
	full2, _ := f2.Name(nil, sfnt.NameIDFull)
	if full1 != full2 {
		t.Errorf("expected full name %q, have %q", full1, full2)
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestdataFont(t, map[string][]byte{"glyf": {1, 2, 3}})
	out1, err := otf.Encode()
	if err != nil {
		t.Fatal(err)
	}
	otf2, err := Parse(out1)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := otf2.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out1, out2) {
		t.Errorf("expected second encoding to reproduce the first")
	}
}

func TestEncodePadsTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestdataFont(t, map[string][]byte{"glyf": {1, 2, 3}, "cvt ": {4, 5}})
	out, err := otf.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(out)%4 != 0 {
		t.Errorf("expected font size to be a multiple of 4, is %d", len(out))
	}
	reparsed, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	glyf := reparsed.Table(T("glyf"))
	if glyf == nil {
		t.Fatalf("expected glyf table")
	}
	if off, size := glyf.Extent(); off%4 != 0 || size != 3 {
		t.Errorf("expected aligned glyf of 3 bytes, have offset %d, size %d", off, size)
	}
	if !bytes.Equal(glyf.Binary(), []byte{1, 2, 3}) {
		t.Errorf("expected glyf bytes to pass through, have %v", glyf.Binary())
	}
}

func TestEncodeChangedName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	before := buildTestdataFont(t, map[string][]byte{"glyf": {1, 2, 3}})
	otf, err := Parse(before)
	if err != nil {
		t.Fatal(err)
	}
	names := otf.Name()
	names.Records[2].Value = utf16be("Regular")
	after, err := otf.Encode()
	if err != nil {
		t.Fatal(err)
	}
	reparsed, err := Parse(after)
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := reparsed.Name().Lookup(PlatformWindows, 1, 0x409, sfnt.NameIDSubfamily)
	if !ok || !bytes.Equal(rec.Value, utf16be("Regular")) {
		t.Errorf("expected subfamily 'Regular', have %q", rec.Value)
	}
	if err := CompareTables(before, after, T("name"), T("head")); err != nil {
		t.Errorf("expected other tables to be unchanged: %v", err)
	}
	err = CompareTables(before, after)
	if !errors.Is(err, ErrTableMismatch) {
		t.Errorf("expected name table to differ, error is %v", err)
	}
}
