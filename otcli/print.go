package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/npillmayer/fontscale"
	"github.com/npillmayer/fontscale/internal/fontload"
	"github.com/npillmayer/fontscale/ot"
	"github.com/npillmayer/fontscale/otmetrics"
	"github.com/pterm/pterm"
)

// scaleOp scales the advance widths of the loaded font. Scaling again
// multiplies onto the already scaled widths.
func scaleOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return errors.New("scale needs a factor, e.g. scale:0.9"), false
	}
	factor, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return err, false
	}
	if err := fontscale.ValidateScaleFactor(factor); err != nil {
		return err, false
	}
	r, err := otmetrics.ScaleAdvances(intp.font.Tables, factor)
	if ot.IsSkipped(err) {
		pterm.Warning.Println(err)
		return nil, false
	} else if err != nil {
		return err, false
	}
	intp.factors = append(intp.factors, factor)
	pterm.Success.Printf("scaled %d of %d advance widths, max %d → %d\n",
		r.Adjusted, r.NumLongMetrics, r.MaxAdvanceBefore, r.MaxAdvanceAfter)
	return nil, false
}

// verifyOp checks the directory of the loaded font against its tables.
// After scaling, the checksum of 'hmtx' will differ until the font is saved.
func verifyOp(intp *Intp, op *Op) (error, bool) {
	warnings := intp.font.Verify()
	warnings = append(warnings, otmetrics.Info(intp.font.Tables).Check()...)
	if len(warnings) == 0 {
		pterm.Success.Println("no issues found")
	}
	for _, w := range warnings {
		if w.IsMajor() {
			pterm.Warning.Println(w.String())
		} else {
			pterm.Info.Println(w.String())
		}
	}
	return nil, false
}

// saveOp encodes the font and writes it to a file. The font's directory
// reflects the saved layout afterwards.
func saveOp(intp *Intp, op *Op) (error, bool) {
	path, ok := op.hasArg()
	if !ok {
		return errors.New("save needs a file path, e.g. save:narrow.ttf"), false
	}
	b, err := intp.font.Encode()
	if err != nil {
		return err, false
	}
	if err := fontload.Check(b); err != nil {
		return err, false
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err, false
	}
	pterm.Success.Printf("wrote %s (%d bytes)\n", path, len(b))
	return nil, false
}
