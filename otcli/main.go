package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontscale/internal/fontload"
	"github.com/npillmayer/fontscale/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontscale'
func tracer() tracing.Trace {
	return tracing.Select("fontscale")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.fontscale":    "Info",
		"trace.font.sfnt":    "Error",
		"trace.font.metrics": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)            // will set the correct level later
	pterm.Info.Println("Welcome to the font scaling CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("otf > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font    *ot.Font
	path    string
	repl    *readline.Instance
	table   *ot.Table // currently selected table
	factors []float64 // scale factors applied so far
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s", intp.path))
	if intp.table != nil {
		sb.WriteString(fmt.Sprintf(" table=%s", intp.table.Tag))
	}
	for _, f := range intp.factors {
		sb.WriteString(fmt.Sprintf(" ×%g", f))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	TABLES
	TABLE
	HMTX
	SCALE
	VERIFY
	SAVE
)

var opMap = map[string]int{
	"quit":   QUIT,
	"help":   HELP,
	"tables": TABLES,
	"table":  TABLE,
	"hmtx":   HMTX,
	"scale":  SCALE,
	"verify": VERIFY,
	"save":   SAVE,
}

var opNames = []string{
	"quit",
	"help",
	"tables",
	"table",
	"hmtx",
	"scale",
	"verify",
	"save",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
	}
}

// parseCommand splits a line into steps, e.g. "table:hmtx scale:0.9 hmtx:5".
// Arguments follow the first colon, thus paths in "save:/tmp/x.ttf" are
// kept intact.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		name, arg, _ := strings.Cut(step, ":")
		code, ok := opMap[strings.ToLower(name)]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].arg = arg
		if arg == "" {
			tracer().Infof("%s", opNames[code])
		} else {
			tracer().Infof("%s: '%s'", opNames[code], arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:   quitOp,
	HELP:   helpOp,
	TABLES: tablesOp,
	TABLE:  tableOp,
	HMTX:   hmtxOp,
	SCALE:  scaleOp,
	VERIFY: verifyOp,
	SAVE:   saveOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string) error {
	if fontname == "" {
		return errors.New("no font given, use -font <file or font name>")
	}
	f, err := fontload.Load(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	otf, err := ot.Parse(f.Binary)
	if err != nil {
		tracer().Errorf("cannot decode font %s: %s", fontname, err)
		return err
	}
	intp.font, intp.path = otf, f.Filepath
	pterm.Printf("font tables: %v\n", intp.font.TableTags())
	return nil
}

// ----------------------------------------------------------------------

var errNoTable = errors.New("no table set")

func (intp *Intp) checkTable() error {
	if intp.table == nil {
		return errNoTable
	}
	return nil
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
