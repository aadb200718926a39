package layout

import (
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/core/parameters"
	"github.com/npillmayer/lineflow/engine/frame"
)

// Content is a node of the content-box tree. Layout only reads from it;
// measurement of text and images has to be done beforehand.
type Content interface {
	Name() string
	Display() frame.DisplayMode
	Position() frame.PositionMode
	Float() frame.FloatMode
	Clear() frame.FloatMode
	Decoration() (margin, border, padding frame.Edges)
	Extent() Extent
	Params() []Param
	Children() []Content
	BreakAfter() bool // force a line break after this box
}

// Extent is the pre-measured size of a box's inner area. A width of zero
// means "auto": block-level boxes stretch to their container, inline-blocks
// and floats shrink to fit their content. A height of zero is derived from
// the content.
type Extent struct {
	Width, Height dimen.Dimen
	Baseline      dimen.Dimen // distance from the bottom edge up to the baseline
}

// Param is a register setting local to a box. It is inherited by the box's
// descendants unless they override it.
type Param struct {
	Key   parameters.TypesettingParameter
	Value interface{}
}

// Box is a straightforward implementation of Content.
type Box struct {
	Tag        string
	Mode       frame.DisplayMode
	Pos        frame.PositionMode
	FloatSide  frame.FloatMode
	ClearSides frame.FloatMode
	Margin     frame.Edges
	Border     frame.Edges
	Padding    frame.Edges
	Size       Extent
	Overrides  []Param
	Kids       []*Box
	Break      bool
}

var _ Content = &Box{}

// NewBox creates a box with a given display mode.
func NewBox(name string, display frame.DisplayMode) *Box {
	return &Box{Tag: name, Mode: display}
}

// Word creates a measured piece of text.
func Word(text string, w, h, baseline dimen.Dimen) *Box {
	b := NewBox(text, frame.Inline)
	b.Size = Extent{Width: w, Height: h, Baseline: baseline}
	return b
}

// Block creates a block-level box.
func Block(name string, children ...*Box) *Box {
	return NewBox(name, frame.Block).Add(children...)
}

// Span creates an ordinary inline box.
func Span(name string, children ...*Box) *Box {
	return NewBox(name, frame.Inline).Add(children...)
}

// InlineBlock creates an atomic inline box laying out its children in a
// formatting context of its own. Width 0 lets it shrink to fit.
func InlineBlock(name string, width dimen.Dimen, children ...*Box) *Box {
	b := NewBox(name, frame.InlineBlock).Add(children...)
	b.Size.Width = width
	return b
}

// Replaced creates an atomic inline box without children, e.g. an image.
func Replaced(name string, w, h dimen.Dimen) *Box {
	b := NewBox(name, frame.InlineBlock)
	b.Size = Extent{Width: w, Height: h}
	return b
}

// Break creates a forced line break.
func Break() *Box {
	return &Box{Tag: "br", Mode: frame.DisplayNone, Break: true}
}

// Add appends children.
func (b *Box) Add(children ...*Box) *Box {
	b.Kids = append(b.Kids, children...)
	return b
}

// Floated makes b float to a side.
func (b *Box) Floated(side frame.FloatMode) *Box {
	b.FloatSide = side
	return b
}

// Absolute takes b out of flow.
func (b *Box) Absolute() *Box {
	b.Pos = frame.Absolute
	return b
}

// Cleared makes b start below floats on the given sides.
func (b *Box) Cleared(sides frame.FloatMode) *Box {
	b.ClearSides = sides
	return b
}

// WithMargin sets the margins of b.
func (b *Box) WithMargin(e frame.Edges) *Box {
	b.Margin = e
	return b
}

// WithBorder sets the border widths of b.
func (b *Box) WithBorder(e frame.Edges) *Box {
	b.Border = e
	return b
}

// WithPadding sets the paddings of b.
func (b *Box) WithPadding(e frame.Edges) *Box {
	b.Padding = e
	return b
}

// WithSize sets the inner width and height of b.
func (b *Box) WithSize(w, h dimen.Dimen) *Box {
	b.Size.Width, b.Size.Height = w, h
	return b
}

// WithParam sets a register locally for b and its descendants.
func (b *Box) WithParam(key parameters.TypesettingParameter, value interface{}) *Box {
	b.Overrides = append(b.Overrides, Param{Key: key, Value: value})
	return b
}

// WithBreak forces a line break after b.
func (b *Box) WithBreak() *Box {
	b.Break = true
	return b
}

// Name is part of interface Content.
func (b *Box) Name() string { return b.Tag }

// Display is part of interface Content.
func (b *Box) Display() frame.DisplayMode { return b.Mode }

// Position is part of interface Content.
func (b *Box) Position() frame.PositionMode { return b.Pos }

// Float is part of interface Content.
func (b *Box) Float() frame.FloatMode { return b.FloatSide }

// Clear is part of interface Content.
func (b *Box) Clear() frame.FloatMode { return b.ClearSides }

// Decoration is part of interface Content.
func (b *Box) Decoration() (frame.Edges, frame.Edges, frame.Edges) {
	return b.Margin, b.Border, b.Padding
}

// Extent is part of interface Content.
func (b *Box) Extent() Extent { return b.Size }

// Params is part of interface Content.
func (b *Box) Params() []Param { return b.Overrides }

// BreakAfter is part of interface Content.
func (b *Box) BreakAfter() bool { return b.Break }

// Children is part of interface Content.
func (b *Box) Children() []Content {
	if len(b.Kids) == 0 {
		return nil
	}
	children := make([]Content, len(b.Kids))
	for i, k := range b.Kids {
		children[i] = k
	}
	return children
}
