/*
Package otmetrics interprets and transforms the horizontal metrics of a font,
i.e. tables 'hhea' and 'hmtx'.

Function ScaleAdvances applies a uniform scale factor to every advance width
of table 'hmtx', leaving left side bearings untouched. The number of long
metric records is taken from field numberOfHMetrics of table 'hhea'. Left
side bearings following the long records belong to glyphs sharing the last
record's advance width; they are copied without change.

Package otmetrics works on the tables of an ot.TableSet and exchanges table
'hmtx' wholesale. All other tables, including 'hhea', stay untouched.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otmetrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.metrics'
func tracer() tracing.Trace {
	return tracing.Select("font.metrics")
}
