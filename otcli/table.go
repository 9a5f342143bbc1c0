package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/npillmayer/fontscale/ot"
	"github.com/npillmayer/fontscale/otmetrics"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	data := pterm.TableData{{"Tag", "Offset", "Length", "Checksum"}}
	for _, rec := range intp.font.Directory {
		data = append(data, []string{
			rec.Tag.String(),
			strconv.Itoa(int(rec.Offset)),
			strconv.Itoa(int(rec.Length)),
			fmt.Sprintf("%08x", rec.Checksum),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render(), false
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	tag, ok := op.hasArg()
	if !ok {
		if err := intp.checkTable(); err != nil {
			return err, false
		}
		tag = intp.table.Tag.String()
	}
	t := intp.font.Table(ot.T(tag))
	if t == nil {
		return fmt.Errorf("table %q not found in font", tag), false
	}
	intp.table = t
	tracer().Infof("setting table: %v", tag)
	pterm.Printf("table %s: %d bytes, checksum %08x\n", t.Tag, t.Len(), t.Checksum())
	if t.Entry != nil && t.Entry.Checksum != t.Checksum() {
		pterm.Warning.Printf("directory records checksum %08x\n", t.Entry.Checksum)
	}
	b := t.Binary()
	if len(b) > 64 {
		b = b[:64]
	}
	pterm.Println(hex.Dump(b))
	return nil, false
}

func hmtxOp(intp *Intp, op *Op) (error, bool) {
	count := 10
	if arg, ok := op.hasArg(); ok {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return fmt.Errorf("hmtx count not a number: %v", arg), false
		}
		count = n
	}
	metrics, trailer, err := otmetrics.LongMetrics(intp.font.Tables)
	if err != nil {
		return err, false
	}
	if count > len(metrics) {
		count = len(metrics)
	}
	data := pterm.TableData{{"Glyph", "Advance", "LSB"}}
	for i, m := range metrics[:count] {
		data = append(data, []string{strconv.Itoa(i), strconv.Itoa(int(m.Advance)), strconv.Itoa(int(m.LSB))})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err, false
	}
	pterm.Printf("%d long metrics, %d trailing bytes\n", len(metrics), len(trailer))
	return nil, false
}
