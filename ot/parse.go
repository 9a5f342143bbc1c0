package ot

import (
	"fmt"
	"math"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// Parse reads the container structure of an OpenType font from a byte slice.
//
// Every table's bytes are copied into the returned font's table set, thus the
// font does not refer to the input slice after Parse returns.
//
// Parse fails with an error wrapping ErrTruncatedInput if the header, the
// directory or any table reaches beyond the end of font, and with an error
// wrapping ErrMalformedHeader if the table count announced by the header
// cannot possibly fit into font.
func Parse(font []byte) (*Font, error) {
	src := binarySegm(font)
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	h, err := parseHeader(src)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("header = %+v, tag = %x|%s", h, uint32(h.Version), h.Version.String())

	// "The Offset Table is followed immediately by the Table Record entries",
	// 16 bytes each.
	dir, err := parseDirectory(src, h)
	if err != nil {
		return nil, err
	}
	otf := &Font{Header: h, Directory: dir, Tables: NewTableSet()}
	for i := range otf.Directory {
		rec := &otf.Directory[i]
		data, err := extractTable(src, rec)
		if err != nil {
			return nil, err
		}
		if _, dup := otf.Tables.Lookup(rec.Tag); dup {
			tracer().Infof("duplicate table %s in directory, later entry wins", rec.Tag)
		}
		otf.Tables.Add(&Table{Tag: rec.Tag, Entry: rec, data: data})
	}
	tracer().Debugf("font has %d tables: %v", otf.Tables.Len(), otf.Tables.Tags())
	return otf, nil
}

func parseHeader(src binarySegm) (Header, error) {
	h := Header{}
	if len(src) < HeaderSize {
		return h, NewFontError(0, "Header", 0, ErrTruncatedInput,
			"font data of %d bytes shorter than header", len(src))
	}
	c := cursor{data: src}
	h.Version, _ = c.tag()
	h.TableCount, _ = c.u16()
	h.SearchRange, _ = c.u16()
	h.EntrySelector, _ = c.u16()
	h.RangeShift, _ = c.u16()
	switch h.Version {
	case tagCollection:
		return h, NewFontError(0, "Header", 0, ErrMalformedHeader, "font collections are not supported")
	case tagWOFF, tagWOFF2:
		return h, NewFontError(0, "Header", 0, ErrMalformedHeader, "compressed fonts are not supported")
	}
	return h, nil
}

func parseDirectory(src binarySegm, h Header) ([]DirectoryEntry, error) {
	dirSize, err := checkedMulInt(DirectoryEntrySize, int(h.TableCount))
	if err != nil {
		return nil, NewFontError(0, "Directory", HeaderSize, ErrMalformedHeader,
			"table count too large: %v", err)
	}
	end, err := checkedAddInt(HeaderSize, dirSize)
	if err != nil || end > len(src) {
		return nil, NewFontError(0, "Directory", HeaderSize, ErrMalformedHeader,
			"directory of %d tables exceeds font size %d", h.TableCount, len(src))
	}
	dir := make([]DirectoryEntry, h.TableCount)
	c := cursor{data: src, pos: HeaderSize}
	for i := range dir {
		var errs [4]error
		dir[i].Tag, errs[0] = c.tag()
		dir[i].Checksum, errs[1] = c.u32()
		dir[i].Offset, errs[2] = c.u32()
		dir[i].Length, errs[3] = c.u32()
		for _, err := range errs {
			if err != nil {
				return nil, NewFontError(0, "Directory", uint32(c.pos), ErrTruncatedInput,
					"table record %d", i)
			}
		}
		tracer().Debugf("table record %d = %s", i, dir[i])
	}
	return dir, nil
}

// extractTable copies a table's bytes out of the font data.
func extractTable(src binarySegm, rec *DirectoryEntry) ([]byte, error) {
	tableEnd, err := checkedAddUint32(rec.Offset, rec.Length)
	if err != nil {
		return nil, NewFontError(rec.Tag, "Bounds", rec.Offset, ErrTruncatedInput,
			"size calculation overflow: %v", err)
	}
	if uint64(tableEnd) > uint64(len(src)) {
		return nil, NewFontError(rec.Tag, "Bounds", rec.Offset, ErrTruncatedInput,
			"bounds [%d:%d] exceed font size %d", rec.Offset, tableEnd, len(src))
	}
	view, err := src.view(int(rec.Offset), int(rec.Length))
	if err != nil {
		return nil, NewFontError(rec.Tag, "Bounds", rec.Offset, ErrTruncatedInput, "%v", err)
	}
	data := make([]byte, len(view))
	copy(data, view)
	return data, nil
}
