package flow

import (
	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/engine/frame"
)

// AdvancePen places a fragment which has been added to the line
// horizontally and moves the pen past it. Line height and baseline of the
// line grow to hold the fragment.
//
// Floats are placed by the host block, flush to their side; the line
// shrinks accordingly. Out-of-flow fragments do not move the pen.
func (c *Context) AdvancePen(id frame.FragmentID) {
	f := c.arena.At(id)
	if !f.IsInFlow() {
		return
	}
	if f.IsFloated() {
		if !c.IsFlowRoot() {
			penX := c.host.penX
			c.host.AdvancePen(id)
			c.shiftOrigin(c.host.penX - penX)
			return
		}
		c.placeFloat(f)
		return
	}
	if c.GoingLeftwards() {
		c.penX += f.Margin[frame.Right]
		f.ParentOffsetLeft = c.mirrorAxis() - c.penX - f.Width
		c.penX += f.Width + f.Margin[frame.Left]
	} else {
		c.penX += f.Margin[frame.Left]
		f.ParentOffsetLeft = c.penX
		c.penX += f.Width + f.Margin[frame.Right]
	}
	c.lineHeight = dimen.Max(c.lineHeight, f.LineHeightContribution())
	c.baseline = dimen.Max(c.baseline, f.Baseline)
}

// shiftOrigin moves the content origin of this context and of every inline
// context up to the host block. Called after a float at the line start has
// pushed the host's pen.
func (c *Context) shiftOrigin(by dimen.Dimen) {
	if by == 0 {
		return
	}
	for ic := c; !ic.IsFlowRoot(); ic = ic.parent {
		ic.maxOffset += by
	}
}

// mirrorAxis is the right edge for right-to-left placement. Inline
// contexts place relative to the end of their content and shift their
// fragments once the content width is known.
func (c *Context) mirrorAxis() dimen.Dimen {
	if c.IsFlowRoot() {
		return c.own.width
	}
	return 0
}

// placeFloat puts a float flush to its side of the line. Called on flow
// roots only.
func (c *Context) placeFloat(f *frame.Fragment) {
	side, ok := c.floats.Side(f.ID)
	if !ok {
		panic(core.Error(core.EINVARIANT, "float %d has not been added to a line", f.ID))
	}
	total := f.TotalWidth()
	if c.own.maxX-total < c.lineStart {
		c.clearLogical(side.Opposite())
	}
	leftwards := c.own.leftwards
	startMargin := f.Margin[frame.Left]
	if leftwards {
		startMargin = f.Margin[frame.Right]
	}
	f.ParentOffsetTop = dimen.Max(c.own.penY, c.clearTo) + f.Margin[frame.Top]
	bottom := f.ParentOffsetTop + f.Height + f.Margin[frame.Bottom]
	var x, edge dimen.Dimen // x is logical
	if side == frame.FloatLeft {
		x = c.lineStart + startMargin
		c.lineStart += total
		c.penX += total
		edge = c.lineStart
		c.shiftLine(total)
	} else {
		x = dimen.Max(0, c.own.maxX-total+startMargin)
		c.own.maxX -= total
		edge = c.own.maxX
	}
	if leftwards {
		f.ParentOffsetLeft = c.own.width - x - f.Width
	} else {
		f.ParentOffsetLeft = x
	}
	c.floats.Place(f.ID, bottom, edge)
	tracer().Debugf("float %d placed at (%s,%s), line %s…%s", f.ID, f.ParentOffsetLeft,
		f.ParentOffsetTop, c.lineStart, c.own.maxX)
}

// shiftLine moves fragments already placed on the line towards the line
// end, making room for a float at the line start.
func (c *Context) shiftLine(by dimen.Dimen) {
	if c.own.leftwards {
		by = -by
	}
	for _, id := range c.onLine {
		c.arena.At(id).ParentOffsetLeft += by
	}
}
