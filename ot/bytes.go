package ot

import (
	"errors"
)

// Reading and writing bytes of a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func putU16(b []byte, n uint16) {
	_ = b[1]
	b[0] = byte(n >> 8)
	b[1] = byte(n)
}

func putU32(b []byte, n uint32) {
	_ = b[3]
	b[0] = byte(n >> 24)
	b[1] = byte(n >> 16)
	b[2] = byte(n >> 8)
	b[3] = byte(n)
}

// U16 returns the big-endian uint16 at byte offset i of b.
func U16(b []byte, i int) (uint16, error) {
	return binarySegm(b).u16(i)
}

// --- Byte segments ---------------------------------------------------------

// binarySegm is a segment of byte data. All reads from font data go through
// its bounds-checked accessors.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b. A view of size 0 is legal
// as long as offset is within b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset > len(b) || n > len(b)-offset {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Cursor ----------------------------------------------------------------

// cursor reads consecutive big-endian fields from a segment.
type cursor struct {
	data binarySegm
	pos  int
}

func (c *cursor) u16() (uint16, error) {
	n, err := c.data.u16(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 2
	return n, nil
}

func (c *cursor) u32() (uint32, error) {
	n, err := c.data.u32(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return n, nil
}

func (c *cursor) tag() (Tag, error) {
	b, err := c.data.view(c.pos, 4)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return MakeTag(b), nil
}

// --- Alignment -------------------------------------------------------------

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + 3) &^ 3
}

// padding returns the number of zero bytes needed to extend n bytes to a
// multiple of 4.
func padding(n int) int {
	return align4(n) - n
}
