package layout

import (
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/engine/frame"
)

// IntrinsicWidths returns the min-content and max-content width of the
// margin box of c. The min-content width is the widest unbreakable piece
// of content, the max-content width is the width of the content laid out
// without any soft line breaks.
//
// Boxes with an explicit width and boxes without children are measured by
// their extent alone.
func IntrinsicWidths(c Content) (min, max dimen.Dimen) {
	margin, border, padding := c.Decoration()
	deco := margin.Horizontal() + border.Horizontal() + padding.Horizontal()
	children := c.Children()
	if w := c.Extent().Width; w > 0 || len(children) == 0 {
		return w + deco, w + deco
	}
	var line dimen.Dimen
	endLine := func() {
		max = dimen.Max(max, line)
		line = 0
	}
	for _, child := range children {
		if isSkipped(child) || !child.Position().IsInFlow() {
			if child.BreakAfter() {
				endLine()
			}
			continue
		}
		cmin, cmax := IntrinsicWidths(child)
		min = dimen.Max(min, cmin)
		if child.Display().IsBlockLevel() && child.Float() == frame.FloatNone {
			endLine()
			max = dimen.Max(max, cmax)
		} else {
			line += cmax
		}
		if child.BreakAfter() {
			endLine()
		}
	}
	endLine()
	return min + deco, max + deco
}

// shrinkToFit returns the inner width of a box of automatic width, given
// the inner width available to it.
func shrinkToFit(c Content, available dimen.Dimen) dimen.Dimen {
	min, max := IntrinsicWidths(c)
	margin, border, padding := c.Decoration()
	deco := margin.Horizontal() + border.Horizontal() + padding.Horizontal()
	w := dimen.Min(dimen.Max(min-deco, available), max-deco)
	return dimen.Max(0, w)
}

func isSkipped(c Content) bool {
	d := c.Display()
	return d == frame.NoMode || d.Contains(frame.DisplayNone)
}
