/*
Package parameters holds the layout registers consulted by flow contexts.

Registers are grouped: a layout driver opens a group when it enters an
element, pushes the element's local settings and closes the group when it
leaves the element. Reading a register returns the innermost value set,
which gives CSS-like inheritance of vertical alignment, line height,
fonts and text direction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/lineflow/core/dimen"
)

// TypesettingParameter is a key for a layout register.
type TypesettingParameter int

//go:generate stringer -type=TypesettingParameter
const (
	none TypesettingParameter = iota
	P_LANGUAGE
	P_SCRIPT
	P_TEXTDIRECTION
	P_VALIGN
	P_VALIGNOFFSET
	P_LINEHEIGHT
	P_FONTSIZE
	P_FONTFACE
	P_STOPPER
)

var parameterNames = [...]string{
	"none", "P_LANGUAGE", "P_SCRIPT", "P_TEXTDIRECTION", "P_VALIGN", "P_VALIGNOFFSET",
	"P_LINEHEIGHT", "P_FONTSIZE", "P_FONTFACE", "P_STOPPER",
}

func (p TypesettingParameter) String() string {
	if p < 0 || int(p) >= len(parameterNames) {
		return "P_UNKNOWN"
	}
	return parameterNames[p]
}

// ParameterGroup is a set of register values local to a group level.
type ParameterGroup struct {
	params map[TypesettingParameter]interface{}
	level  int
	next   *ParameterGroup
}

// TypesettingRegisters is a stack of parameter groups on top of a set of
// base values.
type TypesettingRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewTypesettingRegisters creates a register set initialized to default values.
func NewTypesettingRegisters() *TypesettingRegisters {
	regs := &TypesettingRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_LANGUAGE] = "en_EN"               // a string
	p[P_SCRIPT] = "Latin"                 // a string
	p[P_TEXTDIRECTION] = bidi.LeftToRight // bidi.Direction
	p[P_VALIGN] = 0                       // vertical alignment mode, 0 = baseline
	p[P_VALIGNOFFSET] = dimen.Zero        // dimension
	p[P_LINEHEIGHT] = dimen.Zero          // dimension, zero = from content
	p[P_FONTSIZE] = 12 * dimen.PX         // dimension
	p[P_FONTFACE] = "goregular"           // a string
}

// Begingroup opens a new group level. Values pushed from now on are
// dropped at the matching Endgroup.
func (regs *TypesettingRegisters) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost group level.
func (regs *TypesettingRegisters) Endgroup() {
	if regs.grouplevel == 0 {
		return
	}
	if regs.groups != nil && regs.groups.level == regs.grouplevel {
		regs.groups = regs.groups.next
	}
	regs.grouplevel--
}

// Level returns the current group nesting level.
func (regs *TypesettingRegisters) Level() int {
	return regs.grouplevel
}

// Push sets a register value local to the current group. Outside of any
// group the base value is overwritten.
func (regs *TypesettingRegisters) Push(key TypesettingParameter, value interface{}) {
	checkKey(key)
	if regs.grouplevel == 0 {
		regs.base[key] = value
		return
	}
	g := regs.groups
	if g == nil || g.level < regs.grouplevel {
		g = &ParameterGroup{
			params: make(map[TypesettingParameter]interface{}),
			level:  regs.grouplevel,
			next:   regs.groups,
		}
		regs.groups = g
	}
	g.params[key] = value
}

// Get returns the innermost value set for a register.
func (regs *TypesettingRegisters) Get(key TypesettingParameter) interface{} {
	checkKey(key)
	for g := regs.groups; g != nil; g = g.next {
		if value, ok := g.params[key]; ok && value != nil {
			return value
		}
	}
	return regs.base[key]
}

func checkKey(key TypesettingParameter) {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
}

// S returns a string register.
func (regs *TypesettingRegisters) S(key TypesettingParameter) string {
	return regs.Get(key).(string)
}

// N returns an integer register.
func (regs *TypesettingRegisters) N(key TypesettingParameter) int {
	return regs.Get(key).(int)
}

// D returns a dimension register.
func (regs *TypesettingRegisters) D(key TypesettingParameter) dimen.Dimen {
	return regs.Get(key).(dimen.Dimen)
}

// Direction returns the text direction register.
func (regs *TypesettingRegisters) Direction() bidi.Direction {
	return regs.Get(P_TEXTDIRECTION).(bidi.Direction)
}

// GoingLeftwards is true if text direction is right-to-left.
func (regs *TypesettingRegisters) GoingLeftwards() bool {
	return regs.Direction() == bidi.RightToLeft
}
