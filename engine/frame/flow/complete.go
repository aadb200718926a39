package flow

import (
	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/engine/frame"
)

// CompleteLine ends the current line. breakLine forces a line break,
// topOfStack flags the final flush of a context's content. With either flag
// set, all fragments of the line are resolved to their final vertical
// position.
//
// Inline contexts then finish the fragment they produce and push line
// height, baseline and pen advance to their parent. A line break inside an
// inline context breaks the parent's line as well and continues the
// element with a new fragment.
//
// Flow roots advance their pen below the line and clear floats the pen has
// passed.
//
// Calling CompleteLine with neither flag set does nothing.
func (c *Context) CompleteLine(breakLine, topOfStack bool) {
	if !breakLine && !topOfStack {
		return
	}
	line := c.onLine
	lineHeight := c.alignLine()
	c.placeOutOfFlow(lineHeight)
	c.lineHeight = lineHeight
	c.onLine, c.outOfFlow = nil, nil
	tracer().Debugf("completed line of %s, height=%s, %d fragments", c, lineHeight, len(line))
	if c.IsFlowRoot() {
		c.advanceRoot(lineHeight, len(line) > 0)
	} else {
		c.propagate(line, lineHeight, breakLine)
	}
	if breakLine {
		c.penX = c.lineStart
		c.lineHeight = 0
		c.baseline = 0
		c.reanchor()
	}
}

// lineTop is the vertical position of the current line in the coordinates of
// the fragment this context produces.
func (c *Context) lineTop() dimen.Dimen {
	if c.IsFlowRoot() {
		return c.own.penY
	}
	return 0
}

// alignLine resolves the vertical position of the in-flow fragments of the
// line. A fragment raised by baseline alignment may need a taller line than
// the fragments placed before it; the pass then starts over with the larger
// height. Every fragment can enlarge the line at most once, so there are at
// most len(c.onLine)+1 passes.
func (c *Context) alignLine() dimen.Dimen {
	lineHeight := c.lineHeight
	if len(c.onLine) > 0 {
		lineHeight = dimen.Max(lineHeight, c.strut)
	}
	top := c.lineTop()
	maxPasses := len(c.onLine) + 1
	for pass := 1; ; pass++ {
		if pass > maxPasses {
			panic(core.Error(core.EINVARIANT, "vertical alignment of %s did not settle", c))
		}
		stalled := false
		for _, id := range c.onLine {
			f := c.arena.At(id)
			delta, needed := c.verticalDelta(f, lineHeight)
			if needed > lineHeight {
				tracer().Debugf("fragment %d needs line height %s, restarting alignment", id, needed)
				lineHeight = needed
				stalled = true
				break
			}
			f.ParentOffsetTop = top + delta + lineHeight
		}
		if !stalled {
			return lineHeight
		}
	}
}

// verticalDelta returns the offset of a fragment's top edge from the bottom
// of the line, and the line height the fragment requires (zero if it puts no
// extra demand on the line).
func (c *Context) verticalDelta(f *frame.Fragment, lineHeight dimen.Dimen) (dimen.Dimen, dimen.Dimen) {
	delta := -(f.Height + f.Margin[frame.Bottom])
	if f.IsOrdinaryInline() {
		delta += f.Border[frame.Bottom] + f.Padding[frame.Bottom]
	}
	if !f.Display.IsInlineLevel() {
		return delta, 0
	}
	var needed dimen.Dimen
	switch c.valign {
	case frame.AlignBaseline:
		shift := c.baseline - f.Baseline + c.valignOffset
		delta -= shift
		if shift > 0 {
			needed = shift + f.LineHeightContribution()
		}
	case frame.AlignTop:
		delta = -lineHeight + c.topInset(f) - c.valignOffset
	case frame.AlignMiddle:
		delta = -lineHeight + (lineHeight-f.LineHeightContribution())/2 + c.topInset(f) - c.valignOffset
	case frame.AlignBottom:
		delta -= c.valignOffset
	}
	return delta, needed
}

// topInset is the distance from the top of the area a fragment claims on a
// line to its border edge.
func (c *Context) topInset(f *frame.Fragment) dimen.Dimen {
	if f.IsOrdinaryInline() {
		return -(f.Border[frame.Top] + f.Padding[frame.Top])
	}
	return f.Margin[frame.Top]
}

// placeOutOfFlow positions out-of-flow fragments by their own margins.
func (c *Context) placeOutOfFlow(lineHeight dimen.Dimen) {
	top := c.lineTop()
	for _, id := range c.outOfFlow {
		f := c.arena.At(id)
		delta := -f.Margin[frame.Bottom]
		if f.Display.IsInlineLevel() {
			delta += f.Border[frame.Bottom] + f.Padding[frame.Bottom]
		} else {
			f.ParentOffsetLeft = c.lineStart
		}
		f.ParentOffsetTop = top + delta + lineHeight
	}
}

// propagate finishes the fragment of an inline context for the line just
// completed and hands it to the parent context.
func (c *Context) propagate(line []frame.FragmentID, lineHeight dimen.Dimen, breakLine bool) {
	box := c.arena.At(c.current)
	parent := c.parent
	if box.IsOrdinaryInline() || (box.InnerWidth == 0 && box.InnerHeight == 0) {
		box.InnerHeight = lineHeight
		box.InnerWidth = c.penX - c.lineStart
		box.SetDimensions()
	}
	box.ContentWidth, box.ContentHeight = c.penX-c.lineStart, lineHeight
	if box.IsOrdinaryInline() {
		box.Baseline = c.baseline
	}
	if c.GoingLeftwards() {
		for _, id := range line {
			c.arena.At(id).ParentOffsetLeft += box.ContentWidth
		}
	}
	inFlow := box.IsInFlow()
	if inFlow {
		parent.lineHeight = dimen.Max(parent.lineHeight, lineHeight)
		parent.baseline = dimen.Max(parent.baseline, box.Baseline)
		parent.AdvancePen(c.current)
	}
	if inFlow && breakLine && !box.Display.IsFlowRoot() {
		if c.element == nil || box.Element != c.element {
			panic(core.Error(core.EINVARIANT, "fragment %d is not part of a fragment chain", c.current))
		}
		parent.CompleteLine(true, false)
		cont := c.arena.New()
		cont.CopyDecoration(box)
		cont.Margin[frame.Left] = 0
		c.element.Append(cont.ID)
		tracer().Debugf("element %q continues with fragment %d", c.element.Name, cont.ID)
		c.current = cont.ID
		parent.AddToLine(cont.ID)
	}
}

// advanceRoot moves the pen of a flow root below the line just completed.
func (c *Context) advanceRoot(lineHeight dimen.Dimen, hasContent bool) {
	if c.penX > c.own.largest {
		c.own.largest = c.penX
	}
	if hasContent {
		c.lastLine = LineMetrics{Top: c.own.penY, Height: lineHeight, Baseline: c.baseline}
		c.lines++
	}
	c.own.penY += lineHeight
	if cleared := c.floats.removeCleared(c.own.penY); len(cleared) > 0 {
		c.restoreBounds()
		tracer().Debugf("%d float(s) cleared at y=%s, line %s…%s", len(cleared), c.own.penY,
			c.lineStart, c.own.maxX)
	}
}
