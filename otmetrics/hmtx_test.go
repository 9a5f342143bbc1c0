package otmetrics

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/fontscale/internal/fonttest"
	"github.com/npillmayer/fontscale/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type MetricsTestEnviron struct {
	suite.Suite
}

// listen for 'go test' command --> run test methods
func TestMetricsFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.metrics")
	defer teardown()
	suite.Run(t, new(MetricsTestEnviron))
}

// run once, before test suite methods
func (env *MetricsTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.sfnt").SetTraceLevel(tracing.LevelError)
}

// tableSet parses a font built from tables and returns its table set.
func (env *MetricsTestEnviron) tableSet(tables map[string][]byte) *ot.TableSet {
	otf, err := ot.Parse(fonttest.Canonical(tables))
	env.Require().NoError(err, "cannot parse test font")
	return otf.Tables
}

func (env *MetricsTestEnviron) hmtx(ts *ot.TableSet) []byte {
	b, ok := ts.Bytes(ot.TagHMtx)
	env.Require().True(ok, "expected table 'hmtx'")
	return b
}

// --- Tests -----------------------------------------------------------------

func (env *MetricsTestEnviron) TestScaleHalf() {
	ts := env.tableSet(fonttest.Tables([]fonttest.Metric{
		{Advance: 500, LSB: 10}, {Advance: 1000, LSB: -20},
	}))
	before := len(env.hmtx(ts))
	r, err := ScaleAdvances(ts, 0.5)
	env.Require().NoError(err)
	env.Equal(2, r.NumLongMetrics)
	env.Equal(2, r.Adjusted)
	env.Equal(uint16(1000), r.MaxAdvanceBefore)
	env.Equal(uint16(500), r.MaxAdvanceAfter)
	env.Len(env.hmtx(ts), before, "length of 'hmtx' must not change")

	metrics, trailer, err := LongMetrics(ts)
	env.Require().NoError(err)
	env.Equal([]LongMetric{{Advance: 250, LSB: 10}, {Advance: 500, LSB: -20}}, metrics)
	env.Empty(trailer)
}

func (env *MetricsTestEnviron) TestScaleKeepsTrailingBearings() {
	ts := env.tableSet(fonttest.Tables([]fonttest.Metric{{Advance: 600, LSB: 1}}, -7, 8, 9))
	_, err := ScaleAdvances(ts, 1.5)
	env.Require().NoError(err)
	env.Equal(fonttest.HMtx([]fonttest.Metric{{Advance: 900, LSB: 1}}, -7, 8, 9), env.hmtx(ts))
}

func (env *MetricsTestEnviron) TestScaleKeepsOddTrailingBytes() {
	hmtx := append(fonttest.HMtx([]fonttest.Metric{{Advance: 100, LSB: 3}}), 0xAB, 0xCD, 0xEF)
	ts := env.tableSet(map[string][]byte{
		"hhea": fonttest.HHea(1, 100),
		"hmtx": hmtx,
	})
	_, err := ScaleAdvances(ts, 2)
	env.Require().NoError(err)
	env.Equal([]byte{0, 200, 0, 3, 0xAB, 0xCD, 0xEF}, env.hmtx(ts))
}

func (env *MetricsTestEnviron) TestScaleNeverProducesZero() {
	ts := env.tableSet(fonttest.Tables([]fonttest.Metric{{Advance: 1}, {Advance: 0}, {Advance: 4}}))
	r, err := ScaleAdvances(ts, 0.1)
	env.Require().NoError(err)
	metrics, _, err := LongMetrics(ts)
	env.Require().NoError(err)
	for _, m := range metrics {
		env.Equal(uint16(1), m.Advance)
	}
	env.Equal(2, r.Adjusted, "advance 1 stays 1")
}

func (env *MetricsTestEnviron) TestScaleSaturates() {
	ts := env.tableSet(fonttest.Tables([]fonttest.Metric{{Advance: 40000}, {Advance: 65535}}))
	_, err := ScaleAdvances(ts, 4)
	env.Require().NoError(err)
	metrics, _, err := LongMetrics(ts)
	env.Require().NoError(err)
	env.Equal(uint16(math.MaxUint16), metrics[0].Advance)
	env.Equal(uint16(math.MaxUint16), metrics[1].Advance)
}

func (env *MetricsTestEnviron) TestScaleIdentity() {
	tables := fonttest.Tables([]fonttest.Metric{{Advance: 555, LSB: 5}, {Advance: 1, LSB: -1}}, 2)
	original := append([]byte(nil), tables["hmtx"]...)
	ts := env.tableSet(tables)
	r, err := ScaleAdvances(ts, 1.0)
	env.Require().NoError(err)
	env.Equal(0, r.Adjusted)
	env.Equal(original, env.hmtx(ts))
}

func (env *MetricsTestEnviron) TestNoLongMetrics() {
	ts := env.tableSet(map[string][]byte{
		"hhea": fonttest.HHea(0, 0),
		"hmtx": fonttest.HMtx(nil, 1, 2),
	})
	r, err := ScaleAdvances(ts, 0.5)
	env.Require().NoError(err)
	env.Equal(0, r.NumLongMetrics)
	env.Equal(fonttest.HMtx(nil, 1, 2), env.hmtx(ts))
}

func (env *MetricsTestEnviron) TestMissingTablesSkip() {
	for _, missing := range []string{"hhea", "hmtx"} {
		tables := fonttest.Tables([]fonttest.Metric{{Advance: 500}})
		delete(tables, missing)
		ts := env.tableSet(tables)
		r, err := ScaleAdvances(ts, 0.5)
		env.Require().Error(err)
		env.True(ot.IsSkipped(err), "expected missing %s to skip scaling, got %v", missing, err)
		env.True(r.Skipped)
		var ferr ot.FontError
		env.Require().True(errors.As(err, &ferr))
		env.Equal(ot.T(missing), ferr.Table)
		env.Equal(ot.SeverityMinor, ferr.Severity)
		if b, ok := ts.Bytes(ot.TagHMtx); ok {
			env.Equal(fonttest.HMtx([]fonttest.Metric{{Advance: 500}}), b, "'hmtx' must not change")
		}
	}
}

func (env *MetricsTestEnviron) TestHMtxTooShort() {
	ts := env.tableSet(map[string][]byte{
		"hhea": fonttest.HHea(3, 500),
		"hmtx": fonttest.HMtx([]fonttest.Metric{{Advance: 500}, {Advance: 400}}),
	})
	_, err := ScaleAdvances(ts, 0.5)
	env.ErrorIs(err, ot.ErrMalformedHeader)
	env.False(ot.IsSkipped(err))
}

func (env *MetricsTestEnviron) TestHHeaTooShort() {
	ts := env.tableSet(map[string][]byte{
		"hhea": fonttest.HHea(1, 500)[:34],
		"hmtx": fonttest.HMtx([]fonttest.Metric{{Advance: 500}}),
	})
	_, err := ScaleAdvances(ts, 0.5)
	env.ErrorIs(err, ot.ErrTruncatedInput)
	var ferr ot.FontError
	env.Require().True(errors.As(err, &ferr))
	env.Equal(ot.TagHHea, ferr.Table)
}

func (env *MetricsTestEnviron) TestInvalidFactor() {
	ts := env.tableSet(fonttest.Tables([]fonttest.Metric{{Advance: 500}}))
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ScaleAdvances(ts, f)
		env.ErrorIs(err, ot.ErrInvalidScaleFactor, "factor %v", f)
	}
	env.Equal(fonttest.HMtx([]fonttest.Metric{{Advance: 500}}), env.hmtx(ts))
}

func (env *MetricsTestEnviron) TestHorizontalHeader() {
	ts := env.tableSet(fonttest.Tables([]fonttest.Metric{{Advance: 300}, {Advance: 700}}))
	hhea, ok := HorizontalHeaderOf(ts)
	env.Require().True(ok)
	n, err := hhea.NumberOfHMetrics()
	env.Require().NoError(err)
	env.Equal(2, n)
	aw, err := hhea.AdvanceWidthMax()
	env.Require().NoError(err)
	env.Equal(uint16(700), aw)
	_, ok = HorizontalHeaderOf(ot.NewTableSet())
	env.False(ok)
}

// --- Plain tests -----------------------------------------------------------

func TestScaleAdvance(t *testing.T) {
	tests := []struct {
		advance uint16
		factor  float64
		want    uint16
	}{
		{500, 0.5, 250},
		{1000, 0.5, 500},
		{3, 0.5, 2}, // 1.5 rounds up
		{5, 0.5, 3}, // 2.5 rounds up
		{7, 0.3, 2}, // 2.1
		{1, 0.1, 1},
		{0, 2, 1},
		{1000, 0.9, 900},
		{333, 1.1, 366}, // 366.3
		{1001, 0.5, 501},
		{65535, 0.5, 32768},
		{1, 0.49999999999999994, 1},
		{3, 0.49999999999999994, 1},
		{20000, 4, 65535},
	}
	for _, tt := range tests {
		if got := ScaleAdvance(tt.advance, tt.factor); got != tt.want {
			t.Errorf("ScaleAdvance(%d, %v) = %d, want %d", tt.advance, tt.factor, got, tt.want)
		}
	}
}
