package main

import (
	"fmt"

	"github.com/npillmayer/fontscale"
	"github.com/npillmayer/fontscale/internal/fontload"
	"github.com/npillmayer/fontscale/ot"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runScaleCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	initTracing(flags)
	input := mustArg(args, "input")
	output := mustArg(args, "output")
	factor, err := parseFactor(flags["factor"])
	if err != nil {
		fatalf("%v", err)
	}
	tracer().Debugf("scale %s -> %s by %v", input, output, factor)

	report, err := fontscale.ScaleFile(input, output, factor)
	if err != nil {
		fatalf("%v", err)
	}
	printWarnings(report.Warnings)
	if report.Skipped {
		pterm.Warning.Printfln("font has no horizontal metrics; %s written unchanged", output)
	} else {
		m := report.Metrics
		pterm.Success.Println(numbers.Sprintf("scaled %d of %d advance widths by %.4f (max %d → %d)",
			m.Adjusted, m.NumLongMetrics, factor, m.MaxAdvanceBefore, m.MaxAdvanceAfter))
	}
	if mustFlagBool(flags["verify"], "verify") {
		if err := verifyOutput(output); err != nil {
			fatalf("verification of %s failed: %v", output, err)
		}
		pterm.Success.Printfln("%s verified", output)
	}
}

// verifyOutput re-reads a written font with both the module's parser and an
// independent sfnt parser.
func verifyOutput(path string) error {
	f, err := fontload.Load(path)
	if err != nil {
		return err
	}
	otf, err := ot.Parse(f.Binary)
	if err != nil {
		return err
	}
	if w := otf.Verify(); len(w) > 0 {
		return fmt.Errorf("%d table(s) with issues, first: %s", len(w), w[0])
	}
	return fontload.Check(f.Binary)
}
