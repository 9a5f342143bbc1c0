package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "hmtx", "hhea", "metrics":
		pterm.Info.Println("hhea / hmtx")
		pterm.Println(`
	Table 'hhea' holds numberOfHMetrics at byte offset 34.
	Table 'hmtx' starts with numberOfHMetrics long records of 4 bytes:
	+------------------------+------------------------+
	| advanceWidth (uint16)  | leftSideBearing (int16)|
	+------------------------+------------------------+
	It is followed by one leftSideBearing for every remaining glyph. These
	glyphs share the advance width of the last long record.
	hmtx:<n> lists the first n long records.
	`)
	case "scale":
		pterm.Info.Println("scale:<factor>")
		pterm.Println(`
	Multiplies every advance width by factor, rounding to the nearest
	integer. Results are kept within [1…65535]. Left side bearings and all
	other tables stay as they are. Factors are accepted in (0…4].
	Scaling repeatedly multiplies onto the scaled widths; save:<path> writes
	the font.
	`)
	case "checksum", "verify":
		pterm.Info.Println("verify")
		pterm.Println(`
	A table checksum is the sum of the table's big-endian uint32 words,
	with the table padded by zero bytes to a multiple of 4. verify compares
	the directory against the tables. Checksums of changed tables are
	recomputed when the font is saved.
	`)
	default:
		pterm.Info.Println("Commands (combine with spaces, e.g. 'table:hhea hmtx:5')")
		pterm.Println(`
	tables           list the table directory
	table:<tag>      select a table and dump its first bytes
	hmtx[:n]         list long horizontal metrics
	scale:<factor>   scale advance widths
	verify           check checksums and metrics consistency
	save:<path>      write the font to a file
	help[:topic]     help on hmtx, scale, verify
	quit             leave
	`)
	}
}
