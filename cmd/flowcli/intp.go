package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"golang.org/x/image/font"
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/core/parameters"
	"github.com/npillmayer/lineflow/engine/frame/framedebug"
	"github.com/npillmayer/lineflow/engine/frame/layout"
	"github.com/npillmayer/lineflow/engine/text"
	"github.com/npillmayer/lineflow/engine/text/monospace"
	"github.com/npillmayer/lineflow/engine/text/sfnt"
	"github.com/npillmayer/lineflow/input/html"
)

// Intp is our interpreter object
type Intp struct {
	width    dimen.Dimen
	dir      bidi.Direction
	selector string
	fontSize dimen.Dimen
	measurer text.Measurer
	face     font.Face // nil for monospace
	doc      string    // HTML source of the last layout
	result   *layout.Result
}

// NewIntp creates an interpreter measuring text with a named font.
func NewIntp(fontname string, fontsize int) (*Intp, error) {
	if fontsize <= 0 {
		return nil, core.Error(core.EINVALID, "font size has to be positive")
	}
	intp := &Intp{
		width:    400 * dimen.PX,
		dir:      bidi.LeftToRight,
		selector: "body",
		fontSize: dimen.Dimen(fontsize) * dimen.PX,
	}
	switch strings.ToLower(fontname) {
	case "", "mono", "monospace":
		intp.measurer = monospace.New(0, nil)
	case "go", "goregular":
		m := sfnt.GoRegular()
		intp.measurer, intp.face = m, m.Face(intp.fontSize)
	default:
		return nil, core.Error(core.EINVALID, "unknown font %q, use mono or go", fontname)
	}
	return intp, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		quit, err := intp.Execute(line)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Infof(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op codes of commands
const (
	NOOP int = iota
	QUIT
	HELP
	WIDTH
	DIR
	SELECT
	LAYOUT
	LOAD
	DOT
	DUMP
)

// Command is a parsed input line.
type Command struct {
	op  int
	arg string
}

var commands = map[string]int{
	"quit":   QUIT,
	"exit":   QUIT,
	"help":   HELP,
	"width":  WIDTH,
	"dir":    DIR,
	"select": SELECT,
	"layout": LAYOUT,
	"load":   LOAD,
	"dot":    DOT,
	"dump":   DUMP,
}

func parseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{op: NOOP}, nil
	}
	word, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i > 0 {
		word, arg = line[:i], strings.TrimSpace(line[i:])
	}
	op, ok := commands[strings.ToLower(word)]
	if !ok {
		return Command{op: HELP}, core.Error(core.EINVALID, "unknown command %q", word)
	}
	switch op {
	case WIDTH, DIR, SELECT, LAYOUT, LOAD, DOT:
		if arg == "" {
			return Command{op: op}, core.Error(core.EMISSING, "command %q needs an argument", word)
		}
	}
	tracer().Debugf("parse command = %d %q", op, arg)
	return Command{op: op, arg: arg}, nil
}

// Execute interprets a command line. It returns true if the user wants to
// quit.
func (intp *Intp) Execute(line string) (bool, error) {
	cmd, err := parseCommand(line)
	if err != nil {
		return false, err
	}
	switch cmd.op {
	case NOOP:
	case QUIT:
		return true, nil
	case HELP:
		help(cmd.arg)
	case WIDTH:
		w, err := strconv.Atoi(cmd.arg)
		if err != nil || w <= 0 {
			return false, core.Error(core.EINVALID, "width has to be a positive number of pixels")
		}
		intp.width = dimen.Dimen(w) * dimen.PX
		return false, intp.relayout()
	case DIR:
		switch strings.ToLower(cmd.arg) {
		case "ltr":
			intp.dir = bidi.LeftToRight
		case "rtl":
			intp.dir = bidi.RightToLeft
		default:
			return false, core.Error(core.EINVALID, "direction has to be ltr or rtl")
		}
		return false, intp.relayout()
	case SELECT:
		intp.selector = cmd.arg
		return false, intp.relayout()
	case LAYOUT:
		intp.doc = cmd.arg
		return false, intp.relayout()
	case LOAD:
		src, err := os.ReadFile(cmd.arg)
		if err != nil {
			return false, core.WrapError(err, core.EMISSING, "cannot read %s", cmd.arg)
		}
		intp.doc = string(src)
		return false, intp.relayout()
	case DOT:
		return false, intp.writeDot(cmd.arg)
	case DUMP:
		if intp.result == nil {
			return false, errNoLayout
		}
		return false, framedebug.Dump(intp.result, os.Stdout)
	}
	return false, nil
}

var errNoLayout = core.Error(core.EMISSING, "nothing laid out yet")

// relayout lays out the current document again with the current settings.
func (intp *Intp) relayout() error {
	if intp.doc == "" {
		return nil
	}
	root, err := html.Build(strings.NewReader(intp.doc), intp.selector, intp.measurer, intp.fontSize,
		html.ContainerWidth(intp.width))
	if err != nil {
		return err
	}
	regs := parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_TEXTDIRECTION, intp.dir)
	regs.Push(parameters.P_FONTSIZE, intp.fontSize)
	var opts []layout.Option
	if intp.face != nil {
		opts = append(opts, layout.WithFont(intp.face))
	}
	if intp.result, err = layout.Layout(root, intp.width, regs, opts...); err != nil {
		return err
	}
	return intp.show()
}

func (intp *Intp) show() error {
	r := intp.result
	pterm.Info.Printfln("%d elements in %d fragments, %s × %s", len(r.Elements), r.Arena.Len(),
		r.Width, r.Height)
	data := pterm.TableData{{"element", "#", "x", "y", "width", "height"}}
	for _, p := range r.Placements() {
		data = append(data, []string{
			p.Element,
			strconv.Itoa(int(p.Fragment)),
			p.Box.TopL.X.String(),
			p.Box.TopL.Y.String(),
			p.Box.Width().String(),
			p.Box.Height().String(),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) writeDot(path string) error {
	if intp.result == nil {
		return errNoLayout
	}
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", path)
	}
	if err = framedebug.ToGraphViz(intp.result, f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	pterm.Info.Printfln("fragments written to %s", path)
	return nil
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "layout", "load":
		pterm.Info.Println("layout <html> | load <file>")
		pterm.Println(`
	Lays out an HTML snippet or file. The element matching the current
	selector (default: body) becomes the root of the layout. Supported
	inline styles are display, float, clear, position, width, height,
	margin, padding, border-width, direction, vertical-align, line-height
	and font-size.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	width <px>       set the line width
	dir ltr|rtl      set the text direction
	select <css>     select the layout root
	layout <html>    lay out an HTML snippet
	load <file>      lay out an HTML file
	dot <file>       write the fragment tree in GraphViz format
	dump             print the fragment tree
	help [topic]     this help
	quit             leave
	`)
	}
}
