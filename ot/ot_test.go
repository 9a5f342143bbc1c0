package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	tag := Tag(0x686d7478)
	if tag.String() != "hmtx" {
		t.Errorf("expected tag 0x686d7478 to be 'hmtx', is %s", tag.String())
	}
	tag = MakeTag([]byte("hmtx"))
	if tag.String() != "hmtx" {
		t.Errorf("expected tag MakeTag(hmtx) to be 'hmtx', is %s", tag.String())
	}
	tag = T("cvt")
	if tag.String() != "cvt " {
		t.Errorf("expected tag T(cvt) to be padded with a space, is %q", tag.String())
	}
	if MakeTag(nil) != 0 {
		t.Errorf("expected tag MakeTag(nil) to be 0, is %x", uint32(MakeTag(nil)))
	}
	c := cursor{data: binarySegm("OTTOhmtx")}
	if tag, err := c.tag(); err != nil || tag != T("OTTO") {
		t.Errorf("expected cursor to read tag 'OTTO', is %s", tag)
	}
	if tag, err := c.tag(); err != nil || tag != TagHMtx || c.pos != 8 {
		t.Errorf("expected cursor to read tag 'hmtx', is %s", tag)
	}
}

func TestTableSetKeepsOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	ts := NewTableSet()
	for _, tag := range []string{"name", "head", "hmtx", "cmap"} {
		ts.Add(&Table{Tag: T(tag), data: []byte(tag)})
	}
	ts.Add(&Table{Tag: T("head"), data: []byte("HEAD")})
	if ts.Len() != 4 {
		t.Fatalf("expected 4 tables, have %d", ts.Len())
	}
	tags := ts.Tags()
	for i, exp := range []string{"name", "head", "hmtx", "cmap"} {
		if tags[i] != T(exp) {
			t.Errorf("expected table #%d to be %s, is %s", i, exp, tags[i])
		}
	}
	if b, _ := ts.Bytes(TagHead); string(b) != "HEAD" {
		t.Errorf("expected later table 'head' to win, have %q", b)
	}
	if err := ts.Replace(TagHMtx, []byte("longer table")); err != nil {
		t.Fatal(err)
	}
	if tbl, ok := ts.Lookup(TagHMtx); !ok || tbl.Len() != 12 {
		t.Errorf("expected replaced table 'hmtx' of 12 bytes")
	}
	if err := ts.Replace(T("glyf"), nil); err == nil {
		t.Errorf("expected replacing a missing table to fail")
	}
	if _, ok := ts.Lookup(T("glyf")); ok {
		t.Errorf("expected no table 'glyf'")
	}
	n := 0
	ts.Each(func(*Table) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("expected Each to stop after 2 tables, visited %d", n)
	}
}

func TestAlignment(t *testing.T) {
	for n, exp := range map[int]int{0: 0, 1: 4, 3: 4, 4: 4, 5: 8, 60: 60} {
		if align4(n) != exp {
			t.Errorf("align4(%d) = %d, want %d", n, align4(n), exp)
		}
		if padding(n) != exp-n {
			t.Errorf("padding(%d) = %d, want %d", n, padding(n), exp-n)
		}
	}
}

func TestBinarySegmBounds(t *testing.T) {
	b := binarySegm{1, 2, 3}
	if _, err := b.u32(0); err == nil {
		t.Errorf("expected reading 4 bytes from 3 to fail")
	}
	if v, err := b.view(3, 0); err != nil || len(v) != 0 {
		t.Errorf("expected empty view at end of segment")
	}
	if _, err := b.view(-1, 1); err == nil {
		t.Errorf("expected negative offset to fail")
	}
	if n, err := U16(b, 1); err != nil || n != 0x0203 {
		t.Errorf("expected U16 at 1 to be 0x0203, is %x", n)
	}
	c := cursor{data: b, pos: 1}
	if _, err := c.tag(); err == nil || c.pos != 1 {
		t.Errorf("expected reading a tag beyond end of segment to fail")
	}
}
