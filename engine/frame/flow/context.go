package flow

import (
	"fmt"

	"golang.org/x/image/font"

	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/core/parameters"
	"github.com/npillmayer/lineflow/engine/frame"
)

// Kind tags the variant of a line context.
type Kind uint8

// Variants of line contexts.
const (
	BlockKind Kind = iota
	InlineKind
	InlineBlockKind
)

func (k Kind) String() string {
	switch k {
	case BlockKind:
		return "block"
	case InlineKind:
		return "inline"
	case InlineBlockKind:
		return "inline-block"
	}
	return "?"
}

// LineSpace is the result of probing a line for room.
type LineSpace int

// Outcomes of GetLineSpace.
const (
	Fits        LineSpace = 0 // fits on the current line
	BreakLine   LineSpace = 1 // fits on a fresh line
	BreakInside LineSpace = 2 // does not fit on any line, content has to be broken
)

func (ls LineSpace) String() string {
	switch ls {
	case Fits:
		return "fits"
	case BreakLine:
		return "break-line"
	case BreakInside:
		return "break-inside"
	}
	return "?"
}

// LineMetrics describes a completed line of a flow root.
type LineMetrics struct {
	Top      dimen.Dimen // pen y at the start of the line
	Height   dimen.Dimen
	Baseline dimen.Dimen // distance of the baseline from the bottom of the line
}

// Context is a line context. It is a tagged variant: Kind selects whether
// it acts as a flow root or delegates to its host block.
type Context struct {
	kind      Kind
	blockMode bool // inline-block with resolved width
	arena     *frame.Arena
	parent    *Context
	host      *Context // nearest flow root, c itself for flow roots
	geom      Geometry
	own       *ownGeometry // flow roots only
	current   frame.FragmentID
	element   *frame.RenderData

	penX       dimen.Dimen
	lineStart  dimen.Dimen
	maxOffset  dimen.Dimen // offset of this context's origin within the host's lines
	lineHeight dimen.Dimen
	baseline   dimen.Dimen // largest baseline on the current line
	strut      dimen.Dimen // minimum height of non-empty lines

	valign       frame.VerticalAlign
	valignOffset dimen.Dimen
	fontSize     dimen.Dimen

	onLine     []frame.FragmentID
	outOfFlow  []frame.FragmentID
	lineStarts []frame.FragmentID

	// flow roots only
	floats   *FloatRegistry
	clearTo  dimen.Dimen // pending clearance, applied when the next line starts
	origin   dimen.Dimen // line start without floats
	limit    dimen.Dimen // max x without floats
	lastLine LineMetrics
	lines    int
}

// NewBlockContext creates a flow root laying out the content of fragment
// box, with lines of the given width. parent is nil for the outermost
// context.
func NewBlockContext(parent *Context, arena *frame.Arena, box frame.FragmentID,
	width dimen.Dimen, regs *parameters.TypesettingRegisters) *Context {
	//
	c := newContext(BlockKind, parent, arena, box, regs)
	var face font.Face
	if parent != nil {
		face = parent.Font()
	}
	c.makeRoot(width, regs.GoingLeftwards(), face)
	tracer().Debugf("new %s context for %d, width=%s", c.kind, box, width)
	return c
}

// NewInlineContext creates a context for the content of an ordinary inline
// fragment box. The fragment must already have been added to the line of
// parent.
func NewInlineContext(parent *Context, box frame.FragmentID,
	regs *parameters.TypesettingRegisters) *Context {
	//
	if parent == nil {
		panic(core.Error(core.EINVARIANT, "inline context for %d requires a parent context", box))
	}
	c := newContext(InlineKind, parent, parent.arena, box, regs)
	c.delegate()
	tracer().Debugf("new %s context for %d, max-offset=%s", c.kind, box, c.maxOffset)
	return c
}

// NewInlineBlockContext creates a context for an inline-block fragment box.
// With a width > 0 the context is a flow root ("block mode"), otherwise it
// delegates to its host block until Promote is called.
func NewInlineBlockContext(parent *Context, box frame.FragmentID, width dimen.Dimen,
	regs *parameters.TypesettingRegisters) *Context {
	//
	if parent == nil {
		panic(core.Error(core.EINVARIANT, "inline-block context for %d requires a parent context", box))
	}
	c := newContext(InlineBlockKind, parent, parent.arena, box, regs)
	if width > 0 {
		c.blockMode = true
		c.makeRoot(width, regs.GoingLeftwards(), parent.Font())
	} else {
		c.delegate()
	}
	tracer().Debugf("new %s context for %d, block mode=%v", c.kind, box, c.blockMode)
	return c
}

func newContext(kind Kind, parent *Context, arena *frame.Arena, box frame.FragmentID,
	regs *parameters.TypesettingRegisters) *Context {
	//
	c := &Context{
		kind:         kind,
		parent:       parent,
		arena:        arena,
		current:      box,
		valign:       frame.VerticalAlign(regs.N(parameters.P_VALIGN)),
		valignOffset: regs.D(parameters.P_VALIGNOFFSET),
		strut:        regs.D(parameters.P_LINEHEIGHT),
		fontSize:     regs.D(parameters.P_FONTSIZE),
	}
	c.element = arena.At(box).Element
	return c
}

func (c *Context) makeRoot(width dimen.Dimen, leftwards bool, face font.Face) {
	c.own = &ownGeometry{
		maxX:      width,
		width:     width,
		leftwards: leftwards,
		face:      face,
	}
	c.geom = c.own
	c.host = c
	c.floats = NewFloatRegistry()
	c.origin, c.limit = 0, width
	c.penX, c.lineStart, c.maxOffset = 0, 0, 0
}

func (c *Context) delegate() {
	c.host = c.parent.hostBlock()
	c.geom = hostGeometry{c: c}
	c.reanchor()
}

// reanchor computes the offset of this context's content origin within the
// lines of the host block. The parent's pen has to be positioned where the
// fragment of this context starts.
func (c *Context) reanchor() {
	if c.IsFlowRoot() {
		c.maxOffset = 0
		return
	}
	box := c.arena.At(c.current)
	c.maxOffset = c.parent.maxOffset + c.parent.penX + box.DecorationStart()
}

// Promote switches an inline-block context without resolved width to block
// mode, once its width is known. No content may have been added before.
func (c *Context) Promote(width dimen.Dimen) {
	if c.kind != InlineBlockKind {
		panic(core.Error(core.EINVARIANT, "cannot promote %s context", c.kind))
	}
	if c.blockMode {
		c.own.width, c.own.maxX, c.limit = width, width, width
		return
	}
	if len(c.onLine) > 0 || len(c.outOfFlow) > 0 || len(c.lineStarts) > 0 {
		panic(core.Error(core.EINVARIANT, "inline-block context for %d already holds content", c.current))
	}
	leftwards, face := c.GoingLeftwards(), c.Font()
	c.blockMode = true
	c.makeRoot(width, leftwards, face)
	tracer().Debugf("inline-block context for %d promoted to block mode, width=%s", c.current, width)
}

// --- Accessors -------------------------------------------------------------

// Kind returns the variant tag of a context.
func (c *Context) Kind() Kind { return c.kind }

// IsFlowRoot is true for block contexts and inline-block contexts in block mode.
func (c *Context) IsFlowRoot() bool {
	return c.kind == BlockKind || (c.kind == InlineBlockKind && c.blockMode)
}

func (c *Context) hostBlock() *Context {
	if c.IsFlowRoot() {
		return c
	}
	return c.host
}

// Parent returns the parent context, or nil.
func (c *Context) Parent() *Context { return c.parent }

// Host returns the nearest flow root; a flow root returns itself.
func (c *Context) Host() *Context { return c.hostBlock() }

// Arena returns the fragment arena of this layout pass.
func (c *Context) Arena() *frame.Arena { return c.arena }

// Current returns the fragment this context is producing.
func (c *Context) Current() frame.FragmentID { return c.current }

// Element returns the render data of the element this context lays out.
func (c *Context) Element() *frame.RenderData { return c.element }

// Geometry returns the absolute geometry this context works against.
func (c *Context) Geometry() Geometry { return c.geom }

// PenX returns the horizontal pen position.
func (c *Context) PenX() dimen.Dimen { return c.penX }

// PenY returns the vertical pen position of the host block.
func (c *Context) PenY() dimen.Dimen { return c.geom.PenY() }

// MaxX returns the horizontal bound of lines.
func (c *Context) MaxX() dimen.Dimen { return c.geom.MaxX() }

// LineStart returns the horizontal start position of lines.
func (c *Context) LineStart() dimen.Dimen { return c.lineStart }

// MaxOffset returns the horizontal offset of this context's content origin
// within the lines of its host block.
func (c *Context) MaxOffset() dimen.Dimen { return c.maxOffset }

// LineHeight returns the height accumulated for the current line.
func (c *Context) LineHeight() dimen.Dimen { return c.lineHeight }

// Baseline returns the largest baseline on the current line.
func (c *Context) Baseline() dimen.Dimen { return c.baseline }

// Consumed returns the horizontal space taken on the current line.
func (c *Context) Consumed() dimen.Dimen { return c.penX - c.lineStart }

// GoingLeftwards is true for right-to-left text.
func (c *Context) GoingLeftwards() bool { return c.geom.GoingLeftwards() }

// LargestLineWidth returns the widest line of the host block so far.
func (c *Context) LargestLineWidth() dimen.Dimen { return c.geom.LargestLineWidth() }

// Font returns the font of the host block.
func (c *Context) Font() font.Face { return c.geom.Font() }

// SetFont sets the font of the host block.
func (c *Context) SetFont(face font.Face) { c.geom.SetFont(face) }

// FontSize returns the font size this context has been created with.
func (c *Context) FontSize() dimen.Dimen { return c.fontSize }

// VerticalAlign returns the vertical alignment mode and offset.
func (c *Context) VerticalAlign() (frame.VerticalAlign, dimen.Dimen) {
	return c.valign, c.valignOffset
}

// SetVerticalAlign overrides the vertical alignment of this context's content.
func (c *Context) SetVerticalAlign(va frame.VerticalAlign, offset dimen.Dimen) {
	c.valign, c.valignOffset = va, offset
}

// Floats returns the float registry of the host block.
func (c *Context) Floats() *FloatRegistry { return c.hostBlock().floats }

// FloatBottom returns the lowest bottom edge of the floats pending in the
// host block, or zero.
func (c *Context) FloatBottom() dimen.Dimen {
	return c.hostBlock().floats.Clearance(frame.FloatBoth)
}

// IsLineEmpty is true if no in-flow fragment is on the current line.
func (c *Context) IsLineEmpty() bool { return len(c.onLine) == 0 }

// OnLine returns the in-flow fragments of the current line.
func (c *Context) OnLine() []frame.FragmentID {
	return append([]frame.FragmentID(nil), c.onLine...)
}

// OutOfFlow returns the out-of-flow fragments of the current line.
func (c *Context) OutOfFlow() []frame.FragmentID {
	return append([]frame.FragmentID(nil), c.outOfFlow...)
}

// LineStarts returns the first fragment of every line started so far.
func (c *Context) LineStarts() []frame.FragmentID {
	return append([]frame.FragmentID(nil), c.lineStarts...)
}

// FirstOnLine returns the first fragment of the current line, or NoFragment.
func (c *Context) FirstOnLine() frame.FragmentID {
	if len(c.onLine) == 0 {
		return frame.NoFragment
	}
	return c.onLine[0]
}

// LastOnLine returns the last fragment of the current line, or NoFragment.
func (c *Context) LastOnLine() frame.FragmentID {
	if len(c.onLine) == 0 {
		return frame.NoFragment
	}
	return c.onLine[len(c.onLine)-1]
}

// LastLine returns the metrics of the last completed line of a flow root.
// The flag is false if no line with content has been completed.
func (c *Context) LastLine() (LineMetrics, bool) {
	root := c.hostBlock()
	return root.lastLine, root.lines > 0
}

// Lines returns the number of lines with content completed in a flow root.
func (c *Context) Lines() int { return c.hostBlock().lines }

func (c *Context) String() string {
	return fmt.Sprintf("%s-context(%d, pen=%s/%s, line=%s…%s)", c.kind, c.current,
		c.penX, c.PenY(), c.lineStart, c.MaxX())
}
