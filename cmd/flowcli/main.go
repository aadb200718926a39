/*
Command flowcli is an interactive tool for line-box layout.

It reads HTML snippets or files, lays them out into lines of a given width
and prints the resulting placements. Fragment trees may be written in
GraphViz format.

	flowcli -width 300 -font go
	flow > layout <p>Hello <b>brave new</b> world</p>
	flow > dot layout.dot

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lineflow.frame'
func tracer() tracing.Trace {
	return tracing.Select("lineflow.frame")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	width := flag.Int("width", 400, "Line width in pixels")
	dir := flag.String("dir", "ltr", "Text direction [ltr|rtl]")
	selector := flag.String("select", "body", "CSS selector of the element to lay out")
	fontname := flag.String("font", "mono", "Font to measure text with [mono|go]")
	fontsize := flag.Int("fontsize", 12, "Font size in pixels")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.lineflow.frame": *tlevel,
		"trace.lineflow.text":  *tlevel,
		"trace.lineflow.input": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the line flow CLI")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	intp, err := NewIntp(*fontname, *fontsize)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	intp.selector = *selector
	for _, cmd := range []string{fmt.Sprintf("width %d", *width), "dir " + *dir} {
		if _, err := intp.Execute(cmd); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	for _, file := range flag.Args() {
		if _, err := intp.Execute("load " + file); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	//
	// set up REPL
	repl, err := readline.New("flow > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL(repl)                        // go into interactive mode
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
