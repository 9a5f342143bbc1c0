package otmetrics

import (
	"github.com/npillmayer/fontscale/ot"
)

// Byte layout of table 'hhea', see
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
const (
	hheaAdvanceWidthMax  = 10 // uint16
	hheaNumberOfHMetrics = 34 // uint16
	hheaTableSize        = 36
)

// HorizontalHeader is a view onto the bytes of table 'hhea'. It does not copy
// the table.
type HorizontalHeader struct {
	data []byte
}

// HorizontalHeaderOf returns a view onto table 'hhea' of a table set.
// If the table set does not contain table 'hhea', false is returned.
func HorizontalHeaderOf(ts *ot.TableSet) (HorizontalHeader, bool) {
	b, ok := ts.Bytes(ot.TagHHea)
	if !ok {
		return HorizontalHeader{}, false
	}
	return HorizontalHeader{data: b}, true
}

// NumberOfHMetrics returns the number of long metric records in table 'hmtx'.
func (h HorizontalHeader) NumberOfHMetrics() (int, error) {
	n, err := ot.U16(h.data, hheaNumberOfHMetrics)
	if err != nil {
		return 0, ot.NewFontError(ot.TagHHea, "NumberOfHMetrics", hheaNumberOfHMetrics, ot.ErrTruncatedInput,
			"table of %d bytes, need %d", len(h.data), hheaTableSize)
	}
	return int(n), nil
}

// AdvanceWidthMax returns the maximum advance width as recorded in 'hhea'.
// Scaling advance widths does not update this field.
func (h HorizontalHeader) AdvanceWidthMax() (uint16, error) {
	n, err := ot.U16(h.data, hheaAdvanceWidthMax)
	if err != nil {
		return 0, ot.NewFontError(ot.TagHHea, "AdvanceWidthMax", hheaAdvanceWidthMax, ot.ErrTruncatedInput,
			"table of %d bytes, need %d", len(h.data), hheaTableSize)
	}
	return n, nil
}
