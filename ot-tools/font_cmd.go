package main

import (
	"fmt"

	"github.com/npillmayer/fontscale/ot"
	"github.com/npillmayer/fontscale/otmetrics"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	initTracing(flags)
	f, otf := mustLoadFont(mustArg(args, "font"))

	pterm.DefaultSection.Println(f.Filepath)
	if f.Fontname != "" {
		pterm.Printfln("Name:    %s", f.Fontname)
	}
	pterm.Printfln("Version: %s (%08x)", printableTag(otf.Header.Version), uint32(otf.Header.Version))
	pterm.Println(numbers.Sprintf("Size:    %d bytes, %d tables", len(f.Binary), otf.Header.TableCount))

	warnings := otf.Verify()
	issues := make(map[ot.Tag]ot.ErrorSeverity, len(warnings))
	for _, w := range warnings {
		if s, ok := issues[w.Table]; !ok || w.Severity < s {
			issues[w.Table] = w.Severity
		}
	}
	data := pterm.TableData{{"Tag", "Offset", "Length", "Checksum", "OK"}}
	for _, rec := range otf.Directory {
		ok := "yes"
		if s, found := issues[rec.Tag]; found {
			ok = "repairable"
			if s <= ot.SeverityMajor {
				ok = "no"
			}
		}
		data = append(data, []string{
			rec.Tag.String(),
			numbers.Sprintf("%d", rec.Offset),
			numbers.Sprintf("%d", rec.Length),
			fmt.Sprintf("%08x", rec.Checksum),
			ok,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fatalf("%v", err)
	}
	printWarnings(warnings)

	info := otmetrics.Info(otf.Tables)
	if !info.HasMetrics {
		pterm.Warning.Println("font has no horizontal metrics")
		return
	}
	pterm.DefaultSection.Println("Horizontal metrics")
	pterm.Println(numbers.Sprintf("unitsPerEm       %d", info.UnitsPerEm))
	pterm.Println(numbers.Sprintf("numGlyphs        %d", info.NumGlyphs))
	pterm.Println(numbers.Sprintf("numberOfHMetrics %d", info.NumberOfHMetrics))
	pterm.Println(numbers.Sprintf("advanceWidthMax  %d", info.AdvanceWidthMax))
	pterm.Println(numbers.Sprintf("hmtx length      %d bytes", info.HMtxLength))
	printWarnings(info.Check())
}

func runMetricsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	initTracing(flags)
	_, otf := mustLoadFont(mustArg(args, "font"))
	first := mustFlagInt(flags["first"], "first")
	if first < 0 {
		fatalf("--first must be >= 0")
	}
	metrics, trailer, err := otmetrics.LongMetrics(otf.Tables)
	if err != nil {
		fatalf("%v", err)
	}
	n := len(metrics)
	if first > 0 && first < n {
		n = first
	}
	data := pterm.TableData{{"Glyph", "Advance", "LSB"}}
	for i, m := range metrics[:n] {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			numbers.Sprintf("%d", m.Advance),
			fmt.Sprintf("%d", m.LSB),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Render(); err != nil {
		fatalf("%v", err)
	}
	pterm.Println(numbers.Sprintf("%d of %d long metrics, %d trailing bytes", n, len(metrics), len(trailer)))
}

// printableTag returns a tag's string, or "-" for binary version numbers.
func printableTag(t ot.Tag) string {
	s := t.String()
	for _, c := range []byte(s) {
		if c < 0x20 || c > 0x7e {
			return "-"
		}
	}
	return s
}

// printWarnings prints major issues as warnings and minor ones as infos.
func printWarnings(warnings []ot.FontWarning) {
	for _, w := range warnings {
		if w.IsMajor() {
			pterm.Warning.Println(w.String())
		} else {
			pterm.Info.Println(w.String())
		}
	}
}
