package frame

import "bytes"

// DisplayMode is a type for CSS property "display".
type DisplayMode uint16

// Flags for box context and display mode (outer and inner).
const (
	NoMode      DisplayMode = iota   // unset or error condition
	DisplayNone DisplayMode = 0x0001 // CSS outer display = none
	FlowMode    DisplayMode = 0x0002 // CSS inner display = flow
	BlockMode   DisplayMode = 0x0004 // CSS outer display = block
	InlineMode  DisplayMode = 0x0008 // CSS outer display = inline
	FlowRoot    DisplayMode = 0x0020 // box establishes a new formatting context
)

// Common display modes.
const (
	Inline      = InlineMode | FlowMode // ordinary inline: text, spans
	Block       = BlockMode | FlowMode  // ordinary block
	InlineBlock = InlineMode | FlowRoot // atomic inline: inline-blocks, images
	BlockRoot   = BlockMode | FlowRoot  // block establishing a new flow root
)

var allDisplayModes = []DisplayMode{
	DisplayNone, FlowMode, BlockMode, InlineMode, FlowRoot,
}

// Set sets a given atomic mode within this display mode.
func (disp *DisplayMode) Set(d DisplayMode) {
	*disp = (*disp) | d
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

// IsOrdinaryInline is true for non-atomic inline boxes. Their border and
// padding do not count for line height.
func (disp DisplayMode) IsOrdinaryInline() bool {
	return disp == Inline
}

// IsInlineLevel is true for boxes participating in an inline formatting context.
func (disp DisplayMode) IsInlineLevel() bool {
	return disp.Contains(InlineMode)
}

// IsBlockLevel is true for boxes which stack vertically.
func (disp DisplayMode) IsBlockLevel() bool {
	return disp.Contains(BlockMode)
}

// IsFlowRoot is true for boxes establishing their own formatting context.
func (disp DisplayMode) IsFlowRoot() bool {
	return disp.Contains(FlowRoot)
}

func (disp DisplayMode) String() string {
	switch disp {
	case NoMode:
		return "NoMode"
	case DisplayNone:
		return "DisplayNone"
	case FlowMode:
		return "FlowMode"
	case BlockMode:
		return "BlockMode"
	case InlineMode:
		return "InlineMode"
	case FlowRoot:
		return "FlowRoot"
	case Inline:
		return "Inline"
	case Block:
		return "Block"
	case InlineBlock:
		return "InlineBlock"
	case BlockRoot:
		return "BlockRoot"
	}
	return disp.FullString()
}

// FullString returns all atomic modes set in a display mode.
func (disp DisplayMode) FullString() string {
	var b bytes.Buffer
	first := true
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(m.String())
		}
	}
	return b.String()
}

// Symbol returns a Unicode symbol for a mode.
func (disp DisplayMode) Symbol() string {
	switch {
	case disp == DisplayNone:
		return "∅"
	case disp.Contains(BlockMode):
		return "▩"
	case disp.IsFlowRoot():
		return "▣"
	case disp.Contains(InlineMode):
		return "►"
	}
	return "?"
}

// --- Positioning -----------------------------------------------------------

// PositionMode is a type for CSS property "position".
type PositionMode uint8

// Position modes. Absolute and fixed boxes are out of flow.
const (
	Static PositionMode = iota
	Relative
	Absolute
	Fixed
)

// IsInFlow is true for boxes taking part in line flow.
func (pos PositionMode) IsInFlow() bool {
	return pos == Static || pos == Relative
}

func (pos PositionMode) String() string {
	switch pos {
	case Static:
		return "static"
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	case Fixed:
		return "fixed"
	}
	return "?"
}

// --- Floats ----------------------------------------------------------------

// FloatMode is a side mask for CSS properties "float" and "clear".
type FloatMode uint8

// Float sides.
const (
	FloatNone  FloatMode = 0
	FloatLeft  FloatMode = 1
	FloatRight FloatMode = 2
	FloatBoth  FloatMode = FloatLeft | FloatRight
)

// Opposite returns the other side. Masks of both or no sides stay unchanged.
func (f FloatMode) Opposite() FloatMode {
	switch f {
	case FloatLeft:
		return FloatRight
	case FloatRight:
		return FloatLeft
	}
	return f
}

// Logical maps a physical side to a side relative to the line start:
// FloatLeft is the line-start side, FloatRight the line-end side. For
// right-to-left text, sides invert.
func (f FloatMode) Logical(leftwards bool) FloatMode {
	if leftwards {
		return f.Opposite()
	}
	return f
}

// Has is true if mask f includes side.
func (f FloatMode) Has(side FloatMode) bool {
	return f&side != 0
}

func (f FloatMode) String() string {
	switch f {
	case FloatNone:
		return "none"
	case FloatLeft:
		return "left"
	case FloatRight:
		return "right"
	}
	return "both"
}

// --- Vertical alignment ----------------------------------------------------

// VerticalAlign is a type for CSS property "vertical-align".
type VerticalAlign int

// Vertical alignment modes for inline-level boxes.
const (
	AlignBaseline VerticalAlign = iota
	AlignTop
	AlignMiddle
	AlignBottom
)

func (va VerticalAlign) String() string {
	switch va {
	case AlignBaseline:
		return "baseline"
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return "?"
}
