/*
Package fontscale narrows or widens the glyphs of a TrueType/OpenType font by
scaling their advance widths.

The transformation is a linear pipeline:

▪︎ package `ot` reads the font container (header, table directory, tables),

▪︎ package `otmetrics` scales every advance width of table 'hmtx' by a uniform
factor, with the number of advance widths governed by table 'hhea',

▪︎ package `ot` writes the container again, with recomputed offsets, four-byte
alignment and table checksums.

Outlines are not touched, neither are any tables other than 'hmtx'. Scaling
advance widths by 0.9 will therefore set glyphs closer together, as if they had
been narrowed by 10%, without changing their shapes.

# Status

The font-wide checksum adjustment in table 'head' is not recomputed. Strict
font validators may complain about this; font renderers usually do not.
Font collections (*.ttc) and WOFF containers are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontscale

import (
	"fmt"

	"github.com/npillmayer/fontscale/ot"
	"github.com/npillmayer/fontscale/otmetrics"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontscale'
func tracer() tracing.Trace {
	return tracing.Select("fontscale")
}

// MaxScaleFactor is the largest scale factor accepted by Scale.
const MaxScaleFactor = 4.0

// ValidateScaleFactor checks that factor is a finite number in (0…MaxScaleFactor].
// Errors wrap ot.ErrInvalidScaleFactor.
func ValidateScaleFactor(factor float64) error {
	if err := otmetrics.ValidateFactor(factor); err != nil {
		return err
	}
	if factor > MaxScaleFactor {
		return fmt.Errorf("%w: %v exceeds %v", ot.ErrInvalidScaleFactor, factor, MaxScaleFactor)
	}
	return nil
}

// Report describes the outcome of scaling a font.
type Report struct {
	Tables    int                 // number of tables in the font
	Metrics   otmetrics.Result    // outcome of scaling table 'hmtx'
	Skipped   bool                // true if the font has no horizontal metrics
	Warnings  []ot.FontWarning    // issues found in the input font
	Directory []ot.DirectoryEntry // table directory of the output font
}

// Scale applies a scale factor to all advance widths of a font and returns
// the binary of the transformed font.
//
// The scale factor is checked before the font is parsed. A font without
// tables 'hhea' or 'hmtx' is not an error: it is written unchanged and
// reported as Skipped. On errors, no font data is returned.
func Scale(data []byte, factor float64) ([]byte, *Report, error) {
	if err := ValidateScaleFactor(factor); err != nil {
		return nil, nil, err
	}
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	report := &Report{Tables: otf.Tables.Len()}
	report.Warnings = append(report.Warnings, otf.Verify()...)
	report.Warnings = append(report.Warnings, otmetrics.Info(otf.Tables).Check()...)

	result, err := otmetrics.ScaleAdvances(otf.Tables, factor)
	if ot.IsSkipped(err) {
		tracer().Infof("%v; writing font unchanged", err)
		report.Skipped = true
	} else if err != nil {
		return nil, nil, err
	}
	report.Metrics = result
	out, err := otf.Encode()
	if err != nil {
		return nil, nil, err
	}
	report.Directory = append([]ot.DirectoryEntry(nil), otf.Directory...)
	tracer().Debugf("encoded font of %d tables, %d bytes", report.Tables, len(out))
	return out, report, nil
}
