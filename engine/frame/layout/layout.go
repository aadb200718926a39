package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/core/parameters"
	"github.com/npillmayer/lineflow/engine/frame"
	"github.com/npillmayer/lineflow/engine/frame/flow"
)

/*
  Layout is set up as a driver walking the content tree top-down, instead of
  making it part of the line contexts. Contexts only know about fragments and
  lines; everything concerned with the structure of the content (which
  context a box starts, where margins collapse, how wide an auto-width box
  should be) lives here.
*/

// Result is the outcome of a layout pass.
type Result struct {
	Arena    *frame.Arena
	Root     frame.FragmentID
	Elements []*frame.RenderData // in tree order
	Width    dimen.Dimen         // margin box of the root
	Height   dimen.Dimen
	Font     font.Face // font of the root context, if any
}

type driver struct {
	arena    *frame.Arena
	regs     *parameters.TypesettingRegisters
	elements []*frame.RenderData
	face     font.Face
}

// Option configures a layout pass.
type Option func(*driver)

// WithFont sets the font of the root context, which every context inherits.
// Unless a line height is set, non-empty lines will be at least as high as
// the line height of the font.
func WithFont(face font.Face) Option {
	return func(d *driver) {
		d.face = face
	}
}

// Layout lays out a content tree into lines of a given width. width is the
// width available to the margin box of root. Register settings of regs are
// inherited by every box; regs may be nil for default settings.
//
// The root box always establishes a block formatting context.
func Layout(root Content, width dimen.Dimen, regs *parameters.TypesettingRegisters,
	opts ...Option) (*Result, error) {
	if root == nil {
		return nil, core.Error(core.EINVALID, "layout requires a root box")
	}
	if width <= 0 {
		return nil, core.Error(core.EINVALID, "layout width has to be positive, is %s", width)
	}
	if regs == nil {
		regs = parameters.NewTypesettingRegisters()
	}
	d := &driver{arena: frame.NewArena(), regs: regs}
	for _, opt := range opts {
		opt(d)
	}
	regs.Begingroup()
	defer regs.Endgroup()
	d.pushParams(root)
	if d.face != nil && regs.D(parameters.P_LINEHEIGHT) == 0 {
		regs.Push(parameters.P_LINEHEIGHT, fromFixed(d.face.Metrics().Height))
	}
	//
	f := d.newFragment(root)
	if !f.Display.IsBlockLevel() {
		f.Display = frame.BlockRoot
	}
	inner := root.Extent().Width
	if inner == 0 {
		inner = dimen.Max(0, width-decoration(f))
	}
	tracer().Infof("layout of %q, width=%s, inner width=%s", root.Name(), width, inner)
	d.flowRoot(nil, root, f, inner)
	f.ParentOffsetLeft, f.ParentOffsetTop = f.Margin[frame.Left], f.Margin[frame.Top]
	r := &Result{
		Arena:    d.arena,
		Root:     f.ID,
		Elements: d.elements,
		Width:    f.TotalWidth(),
		Height:   f.TotalHeight(),
		Font:     d.face,
	}
	tracer().Infof("layout produced %d fragments for %d elements, height=%s", d.arena.Len(),
		len(d.elements), r.Height)
	return r, nil
}

func (d *driver) pushParams(c Content) {
	for _, p := range c.Params() {
		d.regs.Push(p.Key, p.Value)
	}
}

// newFragment creates the principal fragment of a content box, together
// with the render data of the element.
func (d *driver) newFragment(c Content) *frame.Fragment {
	rd := frame.NewRenderData(c.Name(), d.arena)
	d.elements = append(d.elements, rd)
	f := rd.NewFragment()
	f.Display, f.Position = c.Display(), c.Position()
	f.Float, f.Clear = c.Float(), c.Clear()
	f.Margin, f.Border, f.Padding = c.Decoration()
	ext := c.Extent()
	f.InnerWidth, f.InnerHeight = ext.Width, ext.Height
	f.SetDimensions()
	f.Baseline = ext.Baseline
	return f
}

func fromFixed(x fixed.Int26_6) dimen.Dimen {
	return dimen.Dimen(int64(x) * int64(dimen.PX) / 64)
}

func decoration(f *frame.Fragment) dimen.Dimen {
	return f.Margin.Horizontal() + f.Border.Horizontal() + f.Padding.Horizontal()
}

func (d *driver) layoutChildren(ctx *flow.Context, c Content) {
	prevBlock := frame.NoFragment
	for _, child := range c.Children() {
		d.regs.Begingroup()
		d.pushParams(child)
		prevBlock = d.layoutBox(ctx, child, prevBlock)
		d.regs.Endgroup()
		if child.BreakAfter() {
			ctx.CompleteLine(true, false)
			prevBlock = frame.NoFragment
		}
	}
}

// layoutBox dispatches on the classification of c. It returns the fragment
// of c if it is a block-level box whose bottom margin may collapse with the
// next sibling, prevBlock if c does not separate block siblings, and
// NoFragment otherwise.
func (d *driver) layoutBox(ctx *flow.Context, c Content, prevBlock frame.FragmentID) frame.FragmentID {
	switch {
	case isSkipped(c):
		return prevBlock
	case !c.Position().IsInFlow():
		d.layoutOutOfFlow(ctx, c)
		return prevBlock
	case c.Float() != frame.FloatNone:
		d.layoutFloat(ctx, c)
		return prevBlock
	case c.Display().IsBlockLevel() && ctx.IsFlowRoot():
		return d.layoutBlock(ctx, c, prevBlock)
	case c.Display().IsOrdinaryInline() && len(c.Children()) > 0:
		d.layoutInline(ctx, c)
	case c.Display().IsOrdinaryInline():
		d.layoutWord(ctx, c)
	default:
		d.layoutAtomic(ctx, c)
	}
	return frame.NoFragment
}

// --- Flow roots ------------------------------------------------------------

// flowRoot lays out the children of c in a block context of its own, with
// lines of the given width, and sizes fragment f to hold them.
func (d *driver) flowRoot(parent *flow.Context, c Content, f *frame.Fragment, width dimen.Dimen) {
	f.InnerWidth = width
	f.SetDimensions()
	bctx := flow.NewBlockContext(parent, d.arena, f.ID, width, d.regs)
	if parent == nil && d.face != nil {
		bctx.SetFont(d.face)
	}
	d.layoutChildren(bctx, c)
	d.finish(bctx, f, c)
}

// finish flushes the last line of a flow root and grows its fragment to
// contain lines and floats.
func (d *driver) finish(bctx *flow.Context, f *frame.Fragment, c Content) {
	bctx.CompleteLine(false, true)
	h := dimen.Max(bctx.PenY(), bctx.FloatBottom())
	f.ContentWidth, f.ContentHeight = bctx.LargestLineWidth(), h
	if c.Extent().Height == 0 {
		f.InnerHeight = h
	}
	f.SetDimensions()
	tracer().Debugf("%s holds %d lines", f, bctx.Lines())
}

func (d *driver) layoutBlock(ctx *flow.Context, c Content, prevBlock frame.FragmentID) frame.FragmentID {
	if !ctx.IsLineEmpty() {
		ctx.CompleteLine(true, false)
		prevBlock = frame.NoFragment
	}
	if c.Clear() != frame.FloatNone {
		ctx.ClearFloat(c.Clear())
	}
	f := d.newFragment(c)
	if prevBlock != frame.NoFragment {
		prev := d.arena.At(prevBlock)
		_, shrink := frame.CollapseMargins(prev.Margin[frame.Bottom], f.Margin[frame.Top])
		f.Margin[frame.Top] -= shrink
	}
	width := c.Extent().Width
	if width == 0 {
		width = dimen.Max(0, ctx.MaxX()-ctx.LineStart()-decoration(f))
	}
	d.flowRoot(ctx, c, f, width)
	ctx.AddToLine(f.ID)
	ctx.AdvancePen(f.ID)
	ctx.CompleteLine(true, false)
	return f.ID
}

func (d *driver) layoutFloat(ctx *flow.Context, c Content) {
	f := d.newFragment(c)
	f.Display = frame.BlockRoot
	if len(c.Children()) > 0 {
		host := ctx.Host()
		width := c.Extent().Width
		if width == 0 {
			width = shrinkToFit(c, host.MaxX()-host.LineStart()-decoration(f))
		}
		d.flowRoot(ctx, c, f, width)
	}
	ctx.AddToLine(f.ID)
	ctx.AdvancePen(f.ID)
}

func (d *driver) layoutOutOfFlow(ctx *flow.Context, c Content) {
	f := d.newFragment(c)
	if len(c.Children()) > 0 {
		host := ctx.Host()
		width := c.Extent().Width
		if width == 0 {
			width = shrinkToFit(c, host.MaxX()-host.LineStart()-decoration(f))
		}
		d.flowRoot(ctx, c, f, width)
	}
	ctx.AddToLine(f.ID)
}

// --- Inline content --------------------------------------------------------

func (d *driver) layoutWord(ctx *flow.Context, c Content) {
	f := d.newFragment(c)
	d.makeRoom(ctx, c.Name(), f.TotalWidth())
	ctx.AddToLine(f.ID)
	ctx.AdvancePen(f.ID)
}

func (d *driver) layoutInline(ctx *flow.Context, c Content) {
	f := d.newFragment(c)
	ctx.AddToLine(f.ID)
	ictx := flow.NewInlineContext(ctx, f.ID, d.regs)
	d.layoutChildren(ictx, c)
	ictx.CompleteLine(false, true)
}

// layoutAtomic places inline-blocks and replaced boxes. Inline-blocks of
// automatic width shrink to fit their content, but not below their
// min-content width. Block-level boxes inside ordinary inline boxes are
// treated as inline-blocks.
func (d *driver) layoutAtomic(ctx *flow.Context, c Content) {
	f := d.newFragment(c)
	if !f.Display.IsInlineLevel() {
		f.Display = frame.InlineBlock
	}
	if len(c.Children()) == 0 {
		d.makeRoom(ctx, c.Name(), f.TotalWidth())
		ctx.AddToLine(f.ID)
		ctx.AdvancePen(f.ID)
		return
	}
	width := c.Extent().Width
	auto := width == 0
	if auto {
		width = shrinkToFit(c, ctx.MaxX()-ctx.LineStart()-decoration(f))
	}
	f.InnerWidth = width
	f.SetDimensions()
	d.makeRoom(ctx, c.Name(), f.TotalWidth())
	ctx.AddToLine(f.ID)
	var ibctx *flow.Context
	if auto {
		ibctx = flow.NewInlineBlockContext(ctx, f.ID, 0, d.regs)
		ibctx.Promote(width)
	} else {
		ibctx = flow.NewInlineBlockContext(ctx, f.ID, width, d.regs)
	}
	d.layoutChildren(ibctx, c)
	d.finish(ibctx, f, c)
	if c.Extent().Baseline == 0 {
		f.Baseline = lastBaseline(ibctx, f)
	}
	ctx.AdvancePen(f.ID)
}

// lastBaseline is the baseline of the last line of an inline-block, measured
// from the bottom of its margin box. Without lines, the baseline is the
// bottom margin edge.
func lastBaseline(bctx *flow.Context, f *frame.Fragment) dimen.Dimen {
	m, ok := bctx.LastLine()
	if !ok {
		return 0
	}
	lineBottom := f.ContentTop() + m.Top + m.Height
	return f.Margin[frame.Bottom] + f.Height - lineBottom + m.Baseline
}

// --- Line breaking ---------------------------------------------------------

// makeRoom makes sure the pen of ctx is positioned where a box of width w
// may be placed, breaking the line if necessary.
func (d *driver) makeRoom(ctx *flow.Context, name string, w dimen.Dimen) {
	switch ctx.GetLineSpace(w, ctx.Consumed()) {
	case flow.Fits:
	case flow.BreakLine:
		d.breakLine(ctx)
	case flow.BreakInside:
		if !startsLine(ctx) {
			d.breakLine(ctx)
		}
		tracer().Errorf("%q is wider than its line, %s > %s", name, w, ctx.MaxX()-ctx.LineStart())
	}
}

// breakLine ends the current line of ctx. If ctx has nothing on its line
// yet, its fragment is moved to a new line of the parent instead.
func (d *driver) breakLine(ctx *flow.Context) {
	if !ctx.IsFlowRoot() && ctx.IsLineEmpty() {
		if !ctx.TryBreakParent() {
			tracer().Debugf("%s cannot move to a new line", ctx)
		}
		return
	}
	ctx.CompleteLine(true, false)
}

// startsLine is true if nothing precedes the pen of ctx on the current line
// of its flow root.
func startsLine(ctx *flow.Context) bool {
	if !ctx.IsLineEmpty() {
		return false
	}
	for c := ctx; !c.IsFlowRoot(); c = c.Parent() {
		if c.Parent().FirstOnLine() != c.Current() {
			return false
		}
	}
	return true
}
