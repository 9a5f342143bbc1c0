/*
Package ot reads and writes the binary container of OpenType/TrueType fonts
(the "sfnt" wrapper): the 12-byte offset table, the table directory, and the
tagged table bodies.

Package `ot` does not interpret any table. Tables are held as opaque byte blobs
in a TableSet, which preserves the order of the font's table directory and
offers lookup by tag. Clients interpreting a table (as package `otmetrics` does
for 'hhea' and 'hmtx') work on the table bytes and hand replacements back to
the TableSet.

Writing a font re-lays-out every table: offsets are recomputed starting right
after the directory, each table is padded to a four-byte boundary, and each
directory entry receives a freshly computed checksum. Tables not replaced by a
client are written byte-for-byte as they have been read.

# Status

Font collections (*.ttc) and compressed containers (WOFF, WOFF2) are not
supported. The 'head' table's checkSumAdjustment is not recomputed when
writing a font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.sfnt'
func tracer() tracing.Trace {
	return tracing.Select("font.sfnt")
}

