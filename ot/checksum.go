package ot

import (
	"fmt"
)

// Checksum computes the sfnt checksum of a table: the sum of all big-endian
// uint32 words of data, modulo 2^32. If the length of data is not a multiple
// of 4, data is padded with zero bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += u32(data[i : i+4])
	}
	if n < len(data) {
		var last [4]byte
		copy(last[:], data[n:])
		sum += u32(last[:])
	}
	return sum
}

// headChecksum computes the checksum of a 'head' table with its
// checkSumAdjustment field taken as 0.
func headChecksum(data []byte) uint32 {
	sum := Checksum(data)
	if adj, err := binarySegm(data).u32(8); err == nil {
		sum -= adj
	}
	return sum
}

// Verify checks the font's directory against the table data and returns a
// warning for every checksum mismatch and every table not starting at a
// four-byte boundary. None of these issues hinders reading or writing the font.
// Misplaced tables and wrong checksums are minor, as Encode repairs them.
// Directory entries not matching the table data are major.
//
// The checksum of table 'head' is accepted either with or without its
// checkSumAdjustment field.
func (otf *Font) Verify() []FontWarning {
	wc := &warningCollector{}
	for _, rec := range otf.Directory {
		if rec.Offset&3 != 0 {
			wc.addWarning(rec.Tag, SeverityMinor, "table does not start at a four-byte boundary", rec.Offset)
		}
		data, ok := otf.Tables.Bytes(rec.Tag)
		if !ok {
			wc.addWarning(rec.Tag, SeverityMajor, "directory entry without table data", rec.Offset)
			continue
		}
		if uint32(len(data)) != rec.Length {
			wc.addWarning(rec.Tag, SeverityMajor, fmt.Sprintf("table length %d differs from directory length %d",
				len(data), rec.Length), rec.Offset)
			continue
		}
		sum := Checksum(data)
		if sum == rec.Checksum || (rec.Tag == TagHead && headChecksum(data) == rec.Checksum) {
			continue
		}
		wc.addWarning(rec.Tag, SeverityMinor, fmt.Sprintf("checksum mismatch: directory has %08x, data has %08x",
			rec.Checksum, sum), rec.Offset)
	}
	if !wc.hasWarnings() {
		tracer().Debugf("all %d table checksums verified", len(otf.Directory))
	}
	return wc.warnings
}
