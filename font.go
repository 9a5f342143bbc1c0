package fontscale

import (
	"fmt"
	"os"

	"github.com/npillmayer/fontscale/internal/fontload"
)

// ScaleFile loads a font from file input, scales its advance widths and writes
// the result to file output. The output file is written only after the
// complete transformation succeeded.
//
// If input is a plain file name not found in the working directory, it is
// looked up among the fonts installed on the system.
func ScaleFile(input, output string, factor float64) (*Report, error) {
	if err := ValidateScaleFactor(factor); err != nil {
		return nil, err
	}
	f, err := fontload.Load(input)
	if err != nil {
		return nil, err
	}
	if f.Fontname != "" {
		tracer().Infof("scaling font %s by %.4f", f.Fontname, factor)
	}
	out, report, err := Scale(f.Binary, factor)
	if err != nil {
		return nil, fmt.Errorf("cannot scale font %s: %w", f.Filepath, err)
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return nil, err
	}
	tracer().Infof("wrote %s (%d bytes)", output, len(out))
	return report, nil
}
