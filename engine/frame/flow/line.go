package flow

import (
	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/engine/frame"
)

// AddToLine adds a fragment to the current line. Out-of-flow fragments are
// queued and get a provisional position, floats are registered with the
// host block, everything else becomes part of the line.
//
// Classification and dimensions of the fragment have to be set.
func (c *Context) AddToLine(id frame.FragmentID) {
	f := c.arena.At(id)
	switch {
	case !f.IsInFlow():
		f.Parent = c.current
		c.outOfFlow = append(c.outOfFlow, id)
		f.ParentOffsetLeft = c.penX + f.Margin[frame.Left]
		f.ParentOffsetTop = c.PenY() + f.Margin[frame.Top]
	case f.IsFloated():
		if !c.IsFlowRoot() {
			c.host.AddToLine(id)
			return
		}
		f.Parent = c.current
		side := f.Float.Logical(c.GoingLeftwards())
		c.floats.Add(id, side)
		tracer().Debugf("float %d registered at logical side %s", id, side)
	default:
		if c.IsFlowRoot() && len(c.onLine) == 0 {
			c.applyClearance()
		}
		f.Parent = c.current
		if len(c.onLine) == 0 {
			if cur := c.arena.At(c.current); cur.FirstChild == frame.NoFragment {
				cur.FirstChild = id
			}
			c.lineStarts = append(c.lineStarts, id)
		}
		c.onLine = append(c.onLine, id)
	}
}

// RemoveFromLine takes a fragment off the current line. The first fragment
// of a line cannot be removed.
func (c *Context) RemoveFromLine(id frame.FragmentID) {
	if len(c.onLine) == 0 {
		panic(core.Error(core.EINVARIANT, "cannot remove fragment %d from an empty line", id))
	}
	if c.onLine[0] == id {
		panic(core.Error(core.EINVARIANT, "cannot remove first fragment %d from a line", id))
	}
	for i, fid := range c.onLine {
		if fid == id {
			c.onLine = append(c.onLine[:i], c.onLine[i+1:]...)
			return
		}
	}
	panic(core.Error(core.EINVARIANT, "fragment %d is not on the current line", id))
}

// GetLineSpace probes for room for a fragment of a given width.
// initialOffset is the space already taken on the current line, measured
// from line start; usually this is Consumed(). If the fragment fits on no
// fresh line either, floats are cleared, shortest first, until it does.
func (c *Context) GetLineSpace(width, initialOffset dimen.Dimen) LineSpace {
	if initialOffset+width <= c.MaxX()-c.lineStart {
		return Fits
	}
	if width <= c.freshLineRoom() {
		return BreakLine
	}
	for c.TryClearFloat() {
		if width <= c.freshLineRoom() {
			return BreakLine
		}
	}
	return BreakInside
}

// freshLineRoom is the horizontal space of an empty line.
func (c *Context) freshLineRoom() dimen.Dimen {
	if c.IsFlowRoot() {
		return c.own.maxX - c.lineStart
	}
	box := c.arena.At(c.current)
	return c.parent.freshLineRoom() - box.Border[frame.Left] - box.Padding[frame.Left]
}

// TryBreakParent moves the fragment produced by this context to a new line
// of the parent context. If the fragment is first on its parent's line,
// the parent itself is moved, up to the nearest flow root. Returns false if
// nothing could be moved.
func (c *Context) TryBreakParent() bool {
	if c.IsFlowRoot() || c.parent == nil {
		return false
	}
	parent := c.parent
	if parent.FirstOnLine() == c.current {
		if parent.IsFlowRoot() || !parent.TryBreakParent() {
			return false
		}
	} else {
		tracer().Debugf("moving %d to a new line of its parent", c.current)
		parent.RemoveFromLine(c.current)
		parent.CompleteLine(true, true)
		parent.AddToLine(c.current)
	}
	c.reanchor()
	return true
}

// --- Floats ----------------------------------------------------------------

// ClearFloat clears the floats on the physical sides of mask: they are
// dropped from the registry, the next line will start below them and the
// horizontal space they took is given back.
func (c *Context) ClearFloat(mask frame.FloatMode) {
	root := c.hostBlock()
	root.clearLogical(mask.Logical(root.GoingLeftwards()))
}

// TryClearFloat clears the floats of one side. If floats are pending on both
// sides, the side clearing at the smaller pen position goes first. Returns
// false if no float is pending.
func (c *Context) TryClearFloat() bool {
	root := c.hostBlock()
	start, end := root.floats.Len(frame.FloatLeft), root.floats.Len(frame.FloatRight)
	switch {
	case start == 0 && end == 0:
		return false
	case end == 0:
		root.clearLogical(frame.FloatLeft)
	case start == 0:
		root.clearLogical(frame.FloatRight)
	case root.floats.Clearance(frame.FloatRight) < root.floats.Clearance(frame.FloatLeft):
		root.clearLogical(frame.FloatRight)
	default:
		root.clearLogical(frame.FloatLeft)
	}
	return true
}

// clearLogical is called on flow roots only.
func (c *Context) clearLogical(mask frame.FloatMode) {
	removed := c.floats.remove(mask)
	if len(removed) == 0 {
		return
	}
	for _, pf := range removed {
		if pf.placed && pf.bottom > dimen.Max(c.own.penY, c.clearTo) {
			c.clearTo = pf.bottom
		}
	}
	c.restoreBounds()
	tracer().Debugf("cleared %d float(s) at side %s, next line starts at y ≥ %s",
		len(removed), mask, c.clearTo)
}

// restoreBounds recomputes line start and max x from the floats still
// pending. Called on flow roots only.
func (c *Context) restoreBounds() {
	c.lineStart = c.floats.InnerEdge(frame.FloatLeft, c.origin)
	c.own.maxX = c.floats.InnerEdge(frame.FloatRight, c.limit)
	if len(c.onLine) == 0 {
		c.penX = c.lineStart
	}
}

// applyClearance moves the pen below floats cleared before. Called on flow
// roots only.
func (c *Context) applyClearance() {
	if c.clearTo > c.own.penY {
		tracer().Debugf("pen y cleared from %s to %s", c.own.penY, c.clearTo)
		c.own.penY = c.clearTo
	}
	c.clearTo = 0
}
