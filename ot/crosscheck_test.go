package ot

import (
	"bytes"
	"testing"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/fontscale/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"seehuhn.de/go/sfnt/header"
)

// Encoded fonts are read back with independent sfnt readers.

func unalignedFont() []byte {
	return fonttest.Raw(fonttest.TrueTypeVersion, []fonttest.Entry{
		{Tag: "name", Data: []byte{0, 0, 0, 0, 0, 6, 'x'}},
		{Tag: "head", Data: fonttest.Head(1000), Gap: 1},
		{Tag: "hhea", Data: fonttest.HHea(2, 700), Gap: 2},
		{Tag: "hmtx", Data: fonttest.HMtx([]fonttest.Metric{{Advance: 700, LSB: 1}, {Advance: 300, LSB: 2}}, 3)},
		{Tag: "maxp", Data: fonttest.MaxP(3)},
	})
}

func TestEncodedFontReadsWithSfntHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	otf, out := parseAndEncode(t, unalignedFont())
	r := bytes.NewReader(out)
	info, err := header.Read(r)
	if err != nil {
		t.Fatalf("sfnt header cannot read encoded font: %v", err)
	}
	if len(info.Toc) != len(otf.Directory) {
		t.Fatalf("expected %d tables, sfnt header reads %d", len(otf.Directory), len(info.Toc))
	}
	for _, rec := range otf.Directory {
		name := rec.Tag.String()
		toc, ok := info.Toc[name]
		if !ok {
			t.Errorf("table %s not found", name)
			continue
		}
		if toc.Offset != rec.Offset || toc.Length != rec.Length {
			t.Errorf("table %s: sfnt header reads %d[%d], directory has %d[%d]",
				name, toc.Offset, toc.Length, rec.Offset, rec.Length)
		}
		data, err := info.ReadTableBytes(r, name)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, otf.Table(rec.Tag).Binary()) {
			t.Errorf("table %s differs", name)
		}
	}
}

func TestEncodedFontReadsWithOpentypeLoader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	otf, out := parseAndEncode(t, unalignedFont())
	ld, err := opentype.NewLoader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("opentype loader cannot read encoded font: %v", err)
	}
	for _, tag := range otf.TableTags() {
		data, err := ld.RawTable(opentype.MustNewTag(tag.String()))
		if err != nil {
			t.Errorf("table %s: %v", tag, err)
			continue
		}
		if !bytes.Equal(data, otf.Table(tag).Binary()) {
			t.Errorf("table %s differs", tag)
		}
	}
}

func TestCanonicalFontMatchesSfntHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	font := smallFont()
	otf, err := Parse(font)
	if err != nil {
		t.Fatal(err)
	}
	info, err := header.Read(bytes.NewReader(font))
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range otf.Directory {
		toc := info.Toc[rec.Tag.String()]
		if toc.Offset != rec.Offset || toc.Length != rec.Length {
			t.Errorf("table %s: sfnt header reads %d[%d], Parse reads %d[%d]",
				rec.Tag, toc.Offset, toc.Length, rec.Offset, rec.Length)
		}
	}
}
