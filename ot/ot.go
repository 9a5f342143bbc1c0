package ot

import (
	"fmt"
)

// Sizes of the fixed-size records of the sfnt container.
const (
	HeaderSize         = 12 // offset table
	DirectoryEntrySize = 16 // table record
)

// Font represents the container structure of an OpenType font: its header,
// its table directory in file order, and the tables themselves.
//
// Directory holds the records as read from the font file until the font is
// encoded; Encode replaces offsets, lengths and checksums with the values of
// the encoded output.
type Font struct {
	Header    Header
	Directory []DirectoryEntry
	Tables    *TableSet
}

// Header is the offset table at the start of a font file. If the font file
// contains only one font, the table directory will begin at byte 12 of the file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the Version. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1'.
// Package ot treats the version as opaque.
type Header struct {
	Version       Tag
	TableCount    uint16
	SearchRange   uint16 // binary search hint
	EntrySelector uint16 // binary search hint
	RangeShift    uint16 // binary search hint
}

// DirectoryEntry is a table record of the table directory.
type DirectoryEntry struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32 // from start of font file
	Length   uint32 // actual length, without padding
}

func (e DirectoryEntry) String() string {
	return fmt.Sprintf("%s@%d[%d]#%08x", e.Tag, e.Offset, e.Length, e.Checksum)
}

// Table returns the table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
func (otf *Font) Table(tag Tag) *Table {
	if otf == nil || otf.Tables == nil {
		return nil
	}
	t, _ := otf.Tables.Lookup(tag)
	return t
}

// TableTags returns a list of tags, one for each table contained in the font,
// in directory order.
func (otf *Font) TableTags() []Tag {
	if otf == nil || otf.Tables == nil {
		return nil
	}
	return otf.Tables.Tags()
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("hmtx"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Tags of the tables and container versions package ot knows about.
var (
	TagHead = T("head")
	TagHHea = T("hhea")
	TagHMtx = T("hmtx")

	tagCollection = T("ttcf")
	tagWOFF       = T("wOFF")
	tagWOFF2      = T("wOF2")
)
