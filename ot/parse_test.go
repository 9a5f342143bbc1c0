package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontscale/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func smallFont() []byte {
	return fonttest.Canonical(fonttest.Tables([]fonttest.Metric{
		{Advance: 500, LSB: 10}, {Advance: 1000, LSB: -20},
	}, 30))
}

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	otf, err := Parse(smallFont())
	if err != nil {
		t.Fatal(err)
	}
	if otf.Header.Version != Tag(fonttest.TrueTypeVersion) {
		t.Errorf("expected font to be OT 0x00010000, is %x", uint32(otf.Header.Version))
	}
	if otf.Header.TableCount != 5 || len(otf.Directory) != 5 {
		t.Fatalf("expected 5 tables, header has %d, directory has %d",
			otf.Header.TableCount, len(otf.Directory))
	}
	if otf.Header.SearchRange != 64 || otf.Header.EntrySelector != 2 || otf.Header.RangeShift != 16 {
		t.Errorf("unexpected search hints %+v", otf.Header)
	}
	for i, tag := range []string{"head", "hhea", "hmtx", "maxp", "name"} {
		if otf.Directory[i].Tag != T(tag) {
			t.Errorf("expected directory entry %d to be %s, is %s", i, tag, otf.Directory[i].Tag)
		}
	}
	hmtx := otf.Table(TagHMtx)
	if hmtx == nil {
		t.Fatal("expected font to have table 'hmtx'")
	}
	if hmtx.Len() != 10 || hmtx.Entry.Length != 10 {
		t.Errorf("expected table 'hmtx' of 10 bytes, have %d", hmtx.Len())
	}
	if hmtx.Checksum() != hmtx.Entry.Checksum {
		t.Errorf("expected checksum %08x, have %08x", hmtx.Entry.Checksum, hmtx.Checksum())
	}
	if otf.Table(T("glyf")) != nil {
		t.Errorf("expected font to have no table 'glyf'")
	}
}

func TestParseCopiesTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	font := smallFont()
	otf, err := Parse(font)
	if err != nil {
		t.Fatal(err)
	}
	rec := otf.Table(TagHMtx).Entry
	font[rec.Offset] ^= 0xff
	if otf.Table(TagHMtx).Binary()[0] == font[rec.Offset] {
		t.Errorf("expected parsed font to be independent of input bytes")
	}
}

func TestParseEmptyFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	otf, err := Parse(fonttest.Raw(fonttest.TrueTypeVersion, nil))
	if err != nil {
		t.Fatal(err)
	}
	if otf.Tables.Len() != 0 || len(otf.TableTags()) != 0 {
		t.Errorf("expected font without tables")
	}
}

func TestParseZeroLengthTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	font := fonttest.Raw(fonttest.TrueTypeVersion, []fonttest.Entry{
		{Tag: "DSIG", Data: []byte{}},
		{Tag: "name", Data: []byte{1, 2, 3, 4}},
	})
	otf, err := Parse(font)
	if err != nil {
		t.Fatal(err)
	}
	if tbl := otf.Table(T("DSIG")); tbl == nil || tbl.Len() != 0 {
		t.Errorf("expected empty table 'DSIG'")
	}
}

func TestParseDuplicateTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	font := fonttest.Raw(fonttest.TrueTypeVersion, []fonttest.Entry{
		{Tag: "name", Data: []byte{1, 1, 1, 1}},
		{Tag: "post", Data: []byte{3, 3, 3, 3}},
		{Tag: "name", Data: []byte{2, 2, 2, 2}},
	})
	otf, err := Parse(font)
	if err != nil {
		t.Fatal(err)
	}
	if len(otf.Directory) != 3 || otf.Tables.Len() != 2 {
		t.Fatalf("expected 3 directory entries for 2 tables, have %d/%d",
			len(otf.Directory), otf.Tables.Len())
	}
	if b, _ := otf.Tables.Bytes(T("name")); b[0] != 2 {
		t.Errorf("expected later table 'name' to win, have %v", b)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	valid := fonttest.Raw(fonttest.TrueTypeVersion, []fonttest.Entry{
		{Tag: "name", Data: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
	})
	outOfBounds := append([]byte(nil), valid...)
	putU32(outOfBounds[HeaderSize+8:], 30) // offset 30 + length 8 > 36
	overflow := append([]byte(nil), valid...)
	putU32(overflow[HeaderSize+8:], 0xfffffffc)
	tooManyTables := append([]byte(nil), valid...)
	putU16(tooManyTables[4:], 3)
	collection := append([]byte(nil), valid...)
	copy(collection, "ttcf")
	woff := append([]byte(nil), valid...)
	copy(woff, "wOFF")
	tests := []struct {
		name  string
		font  []byte
		err   error
		table Tag
	}{
		{"empty input", nil, ErrTruncatedInput, 0},
		{"short header", valid[:11], ErrTruncatedInput, 0},
		{"truncated directory", valid[:HeaderSize+10], ErrMalformedHeader, 0},
		{"table count exceeds data", tooManyTables, ErrMalformedHeader, 0},
		{"table beyond end of data", outOfBounds, ErrTruncatedInput, T("name")},
		{"table bounds overflow", overflow, ErrTruncatedInput, T("name")},
		{"truncated table", valid[:len(valid)-1], ErrTruncatedInput, T("name")},
		{"font collection", collection, ErrMalformedHeader, 0},
		{"WOFF", woff, ErrMalformedHeader, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otf, err := Parse(tt.font)
			if err == nil {
				t.Fatalf("expected error, got font %v", otf.Directory)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("expected error %v, got %v", tt.err, err)
			}
			var ferr FontError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected FontError, got %T", err)
			}
			if ferr.Table != tt.table {
				t.Errorf("expected error for table %q, got %q", tt.table, ferr.Table)
			}
		})
	}
}
