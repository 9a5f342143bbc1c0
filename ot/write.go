package ot

import (
	"io"
	"math"
)

// Encode lays out a font from a header, a table directory and a table set,
// and returns the font's binary together with the directory as written.
//
// Tables are written in directory order. The first table starts right after
// the directory, every table starts at a four-byte boundary, and the gaps
// between tables are filled with zero bytes. Lengths are taken from the table
// set, checksums are computed from the table bytes. The header is written as
// given; as the number of tables does not change, its binary search hints stay
// valid.
//
// The directory region is built with placeholder checksums, the body region
// is assembled separately, and the checksums are patched into the directory
// region afterwards. The result is a single buffer, thus a sink receives
// nothing if encoding fails.
func Encode(h Header, dir []DirectoryEntry, ts *TableSet) ([]byte, []DirectoryEntry, error) {
	if int(h.TableCount) != len(dir) {
		return nil, nil, NewFontError(0, "Header", 0, ErrMalformedHeader,
			"header announces %d tables, directory has %d", h.TableCount, len(dir))
	}
	n := len(dir)
	start := align4(HeaderSize + n*DirectoryEntrySize)
	out := make([]DirectoryEntry, n)
	bodies := make([][]byte, n)
	offset := start
	for i, rec := range dir {
		data, ok := ts.Bytes(rec.Tag)
		if !ok {
			return nil, nil, NewFontError(rec.Tag, "Directory", 0, ErrMalformedHeader,
				"no table data for directory entry %d", i)
		}
		bodies[i] = data
		out[i] = DirectoryEntry{Tag: rec.Tag, Offset: uint32(offset), Length: uint32(len(data))}
		next, err := checkedAddInt(offset, len(data))
		if err != nil || uint64(align4(next)) > math.MaxUint32 {
			return nil, nil, NewFontError(rec.Tag, "Offset", uint32(offset), ErrMalformedHeader,
				"font exceeds 32-bit offsets")
		}
		offset = align4(next)
	}
	total := offset

	head := make([]byte, 0, start)
	head = appendHeader(head, h)
	for _, rec := range out {
		head = appendDirectoryEntry(head, rec) // checksum is 0 for now
	}
	head = appendZeros(head, padding(len(head)))
	body := make([]byte, 0, total-start)
	for i := range out {
		body = appendZeros(body, padding(len(body)))
		if pos := start + len(body); pos&3 != 0 || uint32(pos) != out[i].Offset {
			return nil, nil, NewFontError(out[i].Tag, "Layout", uint32(pos), ErrWriteAlignment,
				"table body at position %d, directory says %d", pos, out[i].Offset)
		}
		body = append(body, bodies[i]...)
		out[i].Checksum = Checksum(bodies[i])
		// patch the checksum placeholder of the directory entry
		putU32(head[HeaderSize+i*DirectoryEntrySize+4:], out[i].Checksum)
		tracer().Debugf("wrote table %s", out[i])
	}
	body = appendZeros(body, padding(len(body)))
	if len(head) != start || start+len(body) != total {
		return nil, nil, NewFontError(0, "Layout", uint32(start+len(body)), ErrWriteAlignment,
			"font size %d differs from layout size %d", len(head)+len(body), total)
	}
	return append(head, body...), out, nil
}

// Encode writes the font's binary. On success, the font's directory is
// updated to reflect the offsets, lengths and checksums of the output.
func (otf *Font) Encode() ([]byte, error) {
	b, dir, err := Encode(otf.Header, otf.Directory, otf.Tables)
	if err != nil {
		return nil, err
	}
	for i := range dir {
		otf.Directory[i] = dir[i]
	}
	return b, nil
}

// WriteTo encodes the font and writes it to w. Nothing is written if encoding
// fails.
func (otf *Font) WriteTo(w io.Writer) (int64, error) {
	b, err := otf.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

func appendHeader(buf []byte, h Header) []byte {
	var b [HeaderSize]byte
	putU32(b[0:], uint32(h.Version))
	putU16(b[4:], h.TableCount)
	putU16(b[6:], h.SearchRange)
	putU16(b[8:], h.EntrySelector)
	putU16(b[10:], h.RangeShift)
	return append(buf, b[:]...)
}

func appendDirectoryEntry(buf []byte, rec DirectoryEntry) []byte {
	var b [DirectoryEntrySize]byte
	putU32(b[0:], uint32(rec.Tag))
	putU32(b[4:], rec.Checksum)
	putU32(b[8:], rec.Offset)
	putU32(b[12:], rec.Length)
	return append(buf, b[:]...)
}

var zeros [3]byte

func appendZeros(buf []byte, n int) []byte {
	return append(buf, zeros[:n]...)
}
