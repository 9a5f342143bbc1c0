package otmetrics

import (
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/fontscale/ot"
)

// MetricsInfo summarizes the tables governing horizontal metrics. Fields are
// decoded directly from the raw table bytes; fields of missing or truncated
// tables are left 0.
type MetricsInfo struct {
	UnitsPerEm         uint16 // from 'head'
	CheckSumAdjustment uint32 // from 'head'; never recomputed by this module
	NumGlyphs          uint16 // from 'maxp'
	NumberOfHMetrics   int    // from 'hhea'
	AdvanceWidthMax    uint16 // from 'hhea'
	HMtxLength         int    // length of table 'hmtx' in bytes
	HasMetrics         bool   // font has both 'hhea' and 'hmtx'
}

const (
	headTableSize = 54
	maxpMinSize   = 6
)

// Info collects horizontal metrics information from a table set.
func Info(ts *ot.TableSet) MetricsInfo {
	var info MetricsInfo
	if b, ok := ts.Bytes(ot.TagHead); ok && len(b) >= headTableSize {
		info.CheckSumAdjustment = binary.BigEndian.Uint32(b[8:12])
		info.UnitsPerEm = binary.BigEndian.Uint16(b[18:20])
	}
	if b, ok := ts.Bytes(ot.T("maxp")); ok && len(b) >= maxpMinSize {
		info.NumGlyphs = binary.BigEndian.Uint16(b[4:6])
	}
	hhea, hasHHea := HorizontalHeaderOf(ts)
	if hasHHea {
		info.NumberOfHMetrics, _ = hhea.NumberOfHMetrics()
		info.AdvanceWidthMax, _ = hhea.AdvanceWidthMax()
	}
	hmtx, hasHMtx := ts.Bytes(ot.TagHMtx)
	info.HMtxLength = len(hmtx)
	info.HasMetrics = hasHHea && hasHMtx
	return info
}

// Check cross-checks 'hhea', 'hmtx' and 'maxp' and returns a warning for each
// inconsistency found. Inconsistencies other than a too short 'hmtx' do not
// prevent scaling, as trailing bytes of 'hmtx' are carried over as they are.
// Thus only a 'hmtx' too short for its long metrics is a major issue.
func (info MetricsInfo) Check() []ot.FontWarning {
	if !info.HasMetrics {
		return nil
	}
	var warnings []ot.FontWarning
	if info.HMtxLength < info.NumberOfHMetrics*longMetricSize {
		warnings = append(warnings, ot.FontWarning{
			Table:    ot.TagHMtx,
			Severity: ot.SeverityMajor,
			Issue: fmt.Sprintf("table of %d bytes cannot hold %d long metrics",
				info.HMtxLength, info.NumberOfHMetrics),
		})
	}
	if info.NumGlyphs == 0 {
		return warnings
	}
	if info.NumberOfHMetrics > int(info.NumGlyphs) {
		warnings = append(warnings, ot.FontWarning{
			Table:    ot.TagHHea,
			Severity: ot.SeverityMinor,
			Issue: fmt.Sprintf("numberOfHMetrics %d exceeds maxp.numGlyphs %d",
				info.NumberOfHMetrics, info.NumGlyphs),
		})
	} else if required := info.NumberOfHMetrics*longMetricSize +
		(int(info.NumGlyphs)-info.NumberOfHMetrics)*2; info.HMtxLength < required {
		warnings = append(warnings, ot.FontWarning{
			Table:    ot.TagHMtx,
			Severity: ot.SeverityMinor,
			Issue: fmt.Sprintf("table size %d insufficient for %d glyphs (need %d)",
				info.HMtxLength, info.NumGlyphs, required),
		})
	}
	return warnings
}
