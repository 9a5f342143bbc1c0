package otmetrics

import (
	"fmt"
	"math"

	"github.com/npillmayer/fontscale/ot"
)

const longMetricSize = 4 // advance width + left side bearing

// LongMetric is a long horizontal metric record from table 'hmtx'.
type LongMetric struct {
	Advance uint16
	LSB     int16
}

// Result reports what ScaleAdvances did.
type Result struct {
	NumLongMetrics   int    // numberOfHMetrics from 'hhea'
	Adjusted         int    // number of records whose advance width changed
	Skipped          bool   // true if the font has no horizontal metrics
	MaxAdvanceBefore uint16 // largest advance width before scaling
	MaxAdvanceAfter  uint16 // largest advance width after scaling
}

// ValidateFactor checks that a scale factor is a finite number greater than 0.
func ValidateFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return fmt.Errorf("%w: %v", ot.ErrInvalidScaleFactor, factor)
	}
	return nil
}

// ScaleAdvance scales a single advance width. The result is rounded to the
// nearest integer, with ties rounded away from zero, and kept within
// [1…65535]: an advance width of 0 is never produced.
func ScaleAdvance(advance uint16, factor float64) uint16 {
	v := math.Round(float64(advance) * factor)
	if v < 1 {
		return 1
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

// ScaleAdvances multiplies the advance widths of all long metric records in
// table 'hmtx' by factor and replaces the table in ts.
//
// If ts lacks table 'hhea' or table 'hmtx', nothing is changed and an error
// wrapping ot.ErrSkippedNoMetrics is returned, together with a result flagged
// as Skipped. Clients usually treat this as a warning.
func ScaleAdvances(ts *ot.TableSet, factor float64) (Result, error) {
	var result Result
	if err := ValidateFactor(factor); err != nil {
		return result, err
	}
	hmtx, n, err := metricsTables(ts)
	if err != nil {
		if ot.IsSkipped(err) {
			result.Skipped = true
		}
		return result, err
	}
	result.NumLongMetrics = n
	scaled := make([]byte, 0, len(hmtx))
	for i := 0; i < n; i++ {
		rec := hmtx[i*longMetricSize : (i+1)*longMetricSize]
		advance, _ := ot.U16(rec, 0)
		newAdvance := ScaleAdvance(advance, factor)
		if newAdvance != advance {
			result.Adjusted++
		}
		result.MaxAdvanceBefore = max(result.MaxAdvanceBefore, advance)
		result.MaxAdvanceAfter = max(result.MaxAdvanceAfter, newAdvance)
		// the left side bearing is carried over as its raw 16-bit pattern
		scaled = append(scaled, byte(newAdvance>>8), byte(newAdvance), rec[2], rec[3])
	}
	scaled = append(scaled, hmtx[n*longMetricSize:]...)
	if err := ts.Replace(ot.TagHMtx, scaled); err != nil {
		return result, err
	}
	tracer().Infof("scaled %d of %d advance widths by %.4f", result.Adjusted, n, factor)
	return result, nil
}

// LongMetrics decodes the long metric records of table 'hmtx' and returns them
// together with the trailing bytes, which hold the left side bearings of
// glyphs sharing the last record's advance width.
func LongMetrics(ts *ot.TableSet) ([]LongMetric, []byte, error) {
	hmtx, n, err := metricsTables(ts)
	if err != nil {
		return nil, nil, err
	}
	metrics := make([]LongMetric, n)
	for i := range metrics {
		aw, _ := ot.U16(hmtx, i*longMetricSize)
		lsb, _ := ot.U16(hmtx, i*longMetricSize+2)
		metrics[i] = LongMetric{Advance: aw, LSB: int16(lsb)}
	}
	return metrics, hmtx[n*longMetricSize:], nil
}

// metricsTables locates tables 'hhea' and 'hmtx' and checks that 'hmtx' is
// large enough to hold numberOfHMetrics long records.
func metricsTables(ts *ot.TableSet) ([]byte, int, error) {
	hhea, ok := HorizontalHeaderOf(ts)
	if !ok {
		tracer().Infof("font has no table 'hhea'")
		return nil, 0, ot.NewFontError(ot.TagHHea, "Missing", 0, ot.ErrSkippedNoMetrics, "table missing")
	}
	hmtx, ok := ts.Bytes(ot.TagHMtx)
	if !ok {
		tracer().Infof("font has no table 'hmtx'")
		return nil, 0, ot.NewFontError(ot.TagHMtx, "Missing", 0, ot.ErrSkippedNoMetrics, "table missing")
	}
	n, err := hhea.NumberOfHMetrics()
	if err != nil {
		return nil, 0, err
	}
	if len(hmtx) < n*longMetricSize {
		return nil, 0, ot.NewFontError(ot.TagHMtx, "NumberOfHMetrics", 0, ot.ErrMalformedHeader,
			"table of %d bytes cannot hold %d long metrics", len(hmtx), n)
	}
	tracer().Debugf("hhea.numberOfHMetrics = %d, hmtx has %d bytes", n, len(hmtx))
	return hmtx, n, nil
}
