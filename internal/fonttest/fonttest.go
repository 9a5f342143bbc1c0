/*
Package fonttest builds small synthetic fonts for tests.

Fonts created by Canonical follow the recommended layout of an sfnt file:
tables start at four-byte boundaries directly after the table directory.
Fonts created by Raw may lay out tables in any order and at arbitrary
offsets, to exercise readers and writers with unusual input.

Tables created by this package carry only the fields relevant for
horizontal metrics; everything else is zero.
*/
package fonttest

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"seehuhn.de/go/sfnt/header"
)

// TrueTypeVersion is the sfnt version of fonts with TrueType outlines.
const TrueTypeVersion uint32 = 0x00010000

// Metric is a long horizontal metric record of table 'hmtx'.
type Metric struct {
	Advance uint16
	LSB     int16
}

// Head creates a table 'head' of 54 bytes.
func Head(unitsPerEm uint16) []byte {
	b := make([]byte, 54)
	binary.BigEndian.PutUint32(b[0:], 0x00010000) // version 1.0
	binary.BigEndian.PutUint32(b[12:], 0x5F0F3CF5) // magic number
	binary.BigEndian.PutUint16(b[18:], unitsPerEm)
	return b
}

// HHea creates a table 'hhea' of 36 bytes.
func HHea(numberOfHMetrics, advanceWidthMax uint16) []byte {
	b := make([]byte, 36)
	binary.BigEndian.PutUint32(b[0:], 0x00010000)
	binary.BigEndian.PutUint16(b[10:], advanceWidthMax)
	binary.BigEndian.PutUint16(b[34:], numberOfHMetrics)
	return b
}

// HMtx creates a table 'hmtx' from long metrics, followed by left side
// bearings for glyphs without a long metric.
func HMtx(metrics []Metric, lsbs ...int16) []byte {
	b := make([]byte, 0, 4*len(metrics)+2*len(lsbs))
	for _, m := range metrics {
		b = binary.BigEndian.AppendUint16(b, m.Advance)
		b = binary.BigEndian.AppendUint16(b, uint16(m.LSB))
	}
	for _, lsb := range lsbs {
		b = binary.BigEndian.AppendUint16(b, uint16(lsb))
	}
	return b
}

// MaxP creates a table 'maxp' of version 0.5.
func MaxP(numGlyphs uint16) []byte {
	b := make([]byte, 6)
	binary.BigEndian.PutUint32(b[0:], 0x00005000)
	binary.BigEndian.PutUint16(b[4:], numGlyphs)
	return b
}

// Tables creates the tables of a small font with horizontal metrics.
// The set includes a table 'name' of odd length, which has to be padded
// when written.
func Tables(metrics []Metric, lsbs ...int16) map[string][]byte {
	var awMax uint16
	for _, m := range metrics {
		awMax = max(awMax, m.Advance)
	}
	return map[string][]byte{
		"head": Head(1000),
		"hhea": HHea(uint16(len(metrics)), awMax),
		"hmtx": HMtx(metrics, lsbs...),
		"maxp": MaxP(uint16(len(metrics) + len(lsbs))),
		"name": {0, 0, 0, 0, 0, 6, 'x'},
	}
}

// Canonical creates a font from tables, in the layout recommended by the
// OpenType specification. The checksum adjustment of table 'head' is
// set in place.
func Canonical(tables map[string][]byte) []byte {
	var buf bytes.Buffer
	if _, err := header.Write(&buf, TrueTypeVersion, tables); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Entry describes a table for Raw.
type Entry struct {
	Tag  string
	Data []byte
	Gap  int // number of filler bytes in front of the table body
}

// Raw creates a font with a table directory in the order of entries.
// Table bodies follow the directory in the same order, each preceded by
// Gap bytes of filler 0xEE and not padded in any other way. Directory
// checksums are computed from the table data.
func Raw(version uint32, entries []Entry) []byte {
	n := len(entries)
	b := binary.BigEndian.AppendUint32(nil, version)
	b = binary.BigEndian.AppendUint16(b, uint16(n))
	var searchRange, entrySelector, rangeShift uint16
	if n > 0 {
		entrySelector = uint16(bits.Len(uint(n)) - 1)
		searchRange = 16 << entrySelector
		rangeShift = uint16(16*n) - searchRange
	}
	b = binary.BigEndian.AppendUint16(b, searchRange)
	b = binary.BigEndian.AppendUint16(b, entrySelector)
	b = binary.BigEndian.AppendUint16(b, rangeShift)
	offset := 12 + 16*n
	for _, e := range entries {
		offset += e.Gap
		b = append(b, e.Tag[:4]...)
		b = binary.BigEndian.AppendUint32(b, Checksum(e.Data))
		b = binary.BigEndian.AppendUint32(b, uint32(offset))
		b = binary.BigEndian.AppendUint32(b, uint32(len(e.Data)))
		offset += len(e.Data)
	}
	for _, e := range entries {
		b = append(b, bytes.Repeat([]byte{0xEE}, e.Gap)...)
		b = append(b, e.Data...)
	}
	return b
}

// Checksum computes an sfnt table checksum.
func Checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
