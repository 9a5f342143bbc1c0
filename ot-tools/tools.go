package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/fontscale"
	"github.com/npillmayer/fontscale/internal/fontload"
	"github.com/npillmayer/fontscale/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// tracer traces with key 'fontscale'
func tracer() tracing.Trace {
	return tracing.Select("fontscale")
}

// traceKeys are the tracers of the module's packages.
var traceKeys = []string{"fontscale", "font.sfnt", "font.metrics"}

// numbers formats counts and sizes for humans.
var numbers = message.NewPrinter(language.English)

func main() {
	initDisplay()

	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for scaling the advance widths of OpenType fonts and for font diagnostics.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("scale").
		SetDescription("Scale all advance widths of a font by a factor and write the result to a new font file.").
		SetShortDescription("scale advance widths").
		AddArgument("input", "OpenType font file path or name of an installed font", "").
		AddArgument("output", "output font file path", "").
		AddFlag("factor,f", "scale factor in (0…4], e.g. 0.9 to narrow by 10%", commando.String, "0.9").
		AddFlag("verify,v", "re-read the output font and verify it", commando.Bool, nil).
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runScaleCommand)

	commando.
		Register("info").
		SetDescription("Print the header, table directory and horizontal metrics summary of a font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path or name of an installed font", "").
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runInfoCommand)

	commando.
		Register("metrics").
		SetDescription("Print the long horizontal metrics of a font.").
		SetShortDescription("list advance widths").
		AddArgument("font", "OpenType font file path or name of an installed font", "").
		AddFlag("first,n", "number of records to print (0 prints all)", commando.Int, 20).
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runMetricsCommand)

	commando.Parse(nil)
}

// We use pterm for moderately fancy output, without colors if stdout is
// redirected.
func initDisplay() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableColor()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func initTracing(flags map[string]commando.FlagValue) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	level, err := flags["trace"].GetString()
	if err != nil {
		fatalf("invalid --trace flag: %v", err)
	}
	l := tracing.LevelError
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	case "error", "":
	default:
		fatalf("invalid trace level: %s", level)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// parseFactor reads the scale factor from a string flag, as commando knows
// no float flags.
func parseFactor(flag commando.FlagValue) (float64, error) {
	s, err := flag.GetString()
	if err != nil {
		return 0, fmt.Errorf("invalid --factor flag: %w", err)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ot.ErrInvalidScaleFactor, s)
	}
	if err := fontscale.ValidateScaleFactor(f); err != nil {
		return 0, err
	}
	return f, nil
}

func mustLoadFont(name string) (*fontload.ScalableFont, *ot.Font) {
	f, err := fontload.Load(name)
	if err != nil {
		fatalf("cannot load font %s: %v", name, err)
	}
	otf, err := ot.Parse(f.Binary)
	if err != nil {
		fatalf("cannot parse font %s: %v", f.Filepath, err)
	}
	return f, otf
}

func mustArg(args map[string]commando.ArgValue, name string) string {
	v := strings.TrimSpace(args[name].Value)
	if v == "" {
		fatalf("argument <%s> is required", name)
	}
	return v
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	pterm.Error.Printfln("ot-tools: "+format, args...)
	os.Exit(1)
}
