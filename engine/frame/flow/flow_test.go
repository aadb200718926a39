package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/core/parameters"
	"github.com/npillmayer/lineflow/engine/frame"
)

const px = dimen.PX

func newRoot(arena *frame.Arena, regs *parameters.TypesettingRegisters, width dimen.Dimen) *Context {
	rd := frame.NewRenderData("body", arena)
	body := rd.NewFragment()
	body.Display = frame.Block
	return NewBlockContext(nil, arena, body.ID, width, regs)
}

func word(arena *frame.Arena, w, h, baseline dimen.Dimen) *frame.Fragment {
	f := arena.New()
	f.Display = frame.Inline
	f.InnerWidth, f.InnerHeight = w, h
	f.SetDimensions()
	f.Baseline = baseline
	return f
}

func atomic(arena *frame.Arena, w, h, baseline dimen.Dimen) *frame.Fragment {
	f := arena.New()
	f.Display = frame.InlineBlock
	f.InnerWidth, f.InnerHeight = w, h
	f.SetDimensions()
	f.Baseline = baseline
	return f
}

func float(arena *frame.Arena, side frame.FloatMode, w, h dimen.Dimen) *frame.Fragment {
	f := arena.New()
	f.Display = frame.BlockRoot
	f.Float = side
	f.InnerWidth, f.InnerHeight = w, h
	f.SetDimensions()
	return f
}

func place(c *Context, f *frame.Fragment) {
	c.AddToLine(f.ID)
	c.AdvancePen(f.ID)
}

func contractCode(fn func()) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				code = core.Code(err)
			}
		}
	}()
	fn()
	return core.NOERROR
}

func TestPlainTextLineWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	w1 := word(arena, 40*px, 10*px, 0)
	w2 := word(arena, 50*px, 10*px, 0)
	w3 := word(arena, 30*px, 10*px, 0)
	assert.Equal(t, Fits, root.GetLineSpace(w1.Width, root.Consumed()))
	place(root, w1)
	assert.Equal(t, Fits, root.GetLineSpace(w2.Width, root.Consumed()))
	place(root, w2)
	assert.Equal(t, 90*px, root.Consumed())
	assert.Equal(t, BreakLine, root.GetLineSpace(w3.Width, 90*px))
	root.CompleteLine(true, false)
	assert.Equal(t, dimen.Zero, root.PenX(), "pen has to return to line start")
	place(root, w3)
	root.CompleteLine(false, true)
	//
	assert.Equal(t, dimen.Zero, w1.ParentOffsetLeft)
	assert.Equal(t, 40*px, w2.ParentOffsetLeft)
	assert.Equal(t, dimen.Zero, w3.ParentOffsetLeft)
	assert.Equal(t, dimen.Zero, w1.ParentOffsetTop)
	assert.Equal(t, 10*px, w3.ParentOffsetTop)
	assert.Equal(t, 20*px, root.PenY())
	assert.Equal(t, 90*px, root.LargestLineWidth())
	assert.Equal(t, []frame.FragmentID{w1.ID, w3.ID}, root.LineStarts())
	assert.Equal(t, w1.ID, arena.At(root.Current()).FirstChild)
}

func TestBreakInside(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	assert.Equal(t, BreakInside, root.GetLineSpace(120*px, 0))
	fl := float(arena, frame.FloatLeft, 30*px, 20*px)
	place(root, fl)
	// 90 does not fit beside the float, but below it
	assert.Equal(t, BreakLine, root.GetLineSpace(90*px, 0))
	assert.Equal(t, 0, root.Floats().Len(frame.FloatBoth))
	assert.Equal(t, dimen.Zero, root.LineStart())
	root.CompleteLine(true, false)
	w := word(arena, 90*px, 10*px, 0)
	place(root, w)
	root.CompleteLine(false, true)
	assert.Equal(t, 20*px, w.ParentOffsetTop, "content has to move below the cleared float")
}

func TestLeftFloatThenInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	fl := float(arena, frame.FloatLeft, 30*px, 20*px)
	place(root, fl)
	assert.Equal(t, dimen.Zero, fl.ParentOffsetLeft)
	assert.Equal(t, 30*px, root.LineStart())
	assert.Equal(t, 100*px, root.MaxX())
	w := word(arena, 20*px, 10*px, 0)
	place(root, w)
	assert.Equal(t, 30*px, w.ParentOffsetLeft)
	assert.False(t, root.IsLineEmpty())
	assert.Equal(t, []frame.FragmentID{fl.ID}, root.Floats().Floats(frame.FloatLeft))
}

func TestFloatShiftsPlacedFragments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	w := word(arena, 20*px, 10*px, 0)
	place(root, w)
	fl := float(arena, frame.FloatLeft, 30*px, 20*px)
	fl.Margin[frame.Right] = 5 * px
	place(root, fl)
	assert.Equal(t, dimen.Zero, fl.ParentOffsetLeft)
	assert.Equal(t, 35*px, w.ParentOffsetLeft, "word has to make room for the float")
	assert.Equal(t, 55*px, root.PenX())
	right := float(arena, frame.FloatRight, 10*px, 20*px)
	place(root, right)
	assert.Equal(t, 90*px, right.ParentOffsetLeft)
	assert.Equal(t, 90*px, root.MaxX())
	assert.Equal(t, 35*px, w.ParentOffsetLeft, "line-end floats do not shift content")
}

func TestFloatClearingOnPenAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	fl := float(arena, frame.FloatLeft, 30*px, 50*px)
	place(root, fl)
	assert.Equal(t, 50*px, root.FloatBottom())
	tall := atomic(arena, 20*px, 60*px, 0)
	place(root, tall)
	assert.Equal(t, 30*px, root.LineStart())
	root.CompleteLine(true, false)
	assert.Equal(t, 60*px, root.PenY())
	assert.True(t, root.Floats().IsEmpty())
	assert.Equal(t, dimen.Zero, root.LineStart(), "line start reverts by the float's width")
	assert.Equal(t, dimen.Zero, root.PenX())
}

func TestFloatConservation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 200*px)
	place(root, float(arena, frame.FloatLeft, 30*px, 25*px))
	place(root, float(arena, frame.FloatLeft, 20*px, 45*px))
	place(root, float(arena, frame.FloatRight, 40*px, 15*px))
	assert.Equal(t, 50*px, root.LineStart())
	assert.Equal(t, 160*px, root.MaxX())
	for i := 0; i < 5; i++ {
		place(root, word(arena, 30*px, 10*px, 0))
		root.CompleteLine(true, false)
		assert.True(t, root.LineStart() >= 0 && root.LineStart() <= 50*px)
		assert.True(t, root.MaxX() >= 160*px && root.MaxX() <= 200*px)
	}
	assert.Equal(t, 50*px, root.PenY())
	assert.True(t, root.Floats().IsEmpty())
	assert.Equal(t, dimen.Zero, root.LineStart())
	assert.Equal(t, 200*px, root.MaxX())
}

func TestOutOfOrderFloatClearing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 200*px)
	place(root, float(arena, frame.FloatLeft, 30*px, 25*px)) // [0,30) until y=25
	place(root, float(arena, frame.FloatLeft, 20*px, 45*px)) // [30,50) until y=45
	place(root, atomic(arena, 10*px, 30*px, 0))
	root.CompleteLine(true, false)
	// the lower float still occupies [30,50), its neighbour has gone
	assert.Equal(t, 30*px, root.PenY())
	assert.Equal(t, 1, root.Floats().Len(frame.FloatLeft))
	assert.Equal(t, 50*px, root.LineStart())
}

func TestTryClearFloatShortestFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	place(root, float(arena, frame.FloatLeft, 30*px, 80*px))
	place(root, float(arena, frame.FloatRight, 30*px, 40*px))
	require.True(t, root.TryClearFloat())
	assert.Equal(t, 0, root.Floats().Len(frame.FloatRight))
	assert.Equal(t, 1, root.Floats().Len(frame.FloatLeft))
	assert.Equal(t, 100*px, root.MaxX())
	assert.Equal(t, 30*px, root.LineStart())
	require.True(t, root.TryClearFloat())
	assert.Equal(t, dimen.Zero, root.LineStart())
	assert.False(t, root.TryClearFloat())
	// pending clearance moves the next line below both floats
	w := word(arena, 10*px, 10*px, 0)
	place(root, w)
	root.CompleteLine(false, true)
	assert.Equal(t, 80*px, w.ParentOffsetTop)
	assert.Equal(t, 90*px, root.PenY())
}

func TestClearFloatRightToLeft(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	regs.Begingroup()
	regs.Push(parameters.P_TEXTDIRECTION, bidi.RightToLeft)
	root := newRoot(arena, regs, 100*px)
	regs.Endgroup()
	fl := float(arena, frame.FloatRight, 30*px, 20*px)
	place(root, fl)
	// a right float starts right-to-left lines
	assert.Equal(t, 30*px, root.LineStart())
	assert.Equal(t, 70*px, fl.ParentOffsetLeft)
	w := word(arena, 20*px, 10*px, 0)
	place(root, w)
	assert.Equal(t, 50*px, w.ParentOffsetLeft)
	root.CompleteLine(true, false)
	root.ClearFloat(frame.FloatRight)
	assert.Equal(t, dimen.Zero, root.LineStart())
	assert.Equal(t, dimen.Zero, root.PenX())
}

func TestBaselineStall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	w := word(arena, 20*px, 10*px, 10*px)
	ib := atomic(arena, 20*px, 30*px, 5*px)
	place(root, w)
	place(root, ib)
	assert.Equal(t, 30*px, root.LineHeight())
	root.CompleteLine(false, true)
	assert.Equal(t, 35*px, root.PenY(), "line has to grow for the raised inline-block")
	assert.Equal(t, 25*px, w.ParentOffsetTop)
	assert.Equal(t, dimen.Zero, ib.ParentOffsetTop)
	// both baselines at the same height
	assert.Equal(t, w.ParentOffsetTop+w.Height-w.Baseline, ib.ParentOffsetTop+ib.Height-ib.Baseline)
}

func TestMonotonicLineHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 500*px)
	frags := []*frame.Fragment{
		word(arena, 20*px, 10*px, 3*px),
		atomic(arena, 20*px, 30*px, 5*px),
		atomic(arena, 20*px, 24*px, 0),
		word(arena, 20*px, 14*px, 4*px),
		atomic(arena, 20*px, 34*px, 1*px),
		atomic(arena, 20*px, 8*px, 0),
	}
	frags[2].Margin = frame.Uniform(2 * px)
	var tallest dimen.Dimen
	for _, f := range frags {
		place(root, f)
		tallest = dimen.Max(tallest, f.LineHeightContribution())
	}
	before := root.LineHeight()
	assert.Equal(t, tallest, before)
	root.CompleteLine(false, true)
	lineHeight := root.PenY()
	assert.True(t, lineHeight >= before, "line height must not shrink")
	baselineY := func(f *frame.Fragment) dimen.Dimen {
		y := f.ParentOffsetTop + f.Height + f.Margin[frame.Bottom] - f.Baseline
		if f.IsOrdinaryInline() {
			y -= f.Border[frame.Bottom] + f.Padding[frame.Bottom]
		}
		return y
	}
	for _, f := range frags {
		assert.Equal(t, baselineY(frags[0]), baselineY(f), "fragment %d off baseline", f.ID)
		assert.True(t, f.ParentOffsetTop-f.Margin[frame.Top] >= 0, "fragment %d above line", f.ID)
		assert.True(t, f.ParentOffsetTop+f.Height+f.Margin[frame.Bottom] <= lineHeight,
			"fragment %d below line", f.ID)
	}
}

func TestStrutLineHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_LINEHEIGHT, 18*px)
	root := newRoot(arena, regs, 100*px)
	root.CompleteLine(true, false)
	assert.Equal(t, dimen.Zero, root.PenY(), "empty lines take no space")
	w := word(arena, 10*px, 10*px, 0)
	place(root, w)
	root.CompleteLine(true, false)
	assert.Equal(t, 18*px, root.PenY())
	assert.Equal(t, 8*px, w.ParentOffsetTop)
}

func TestVerticalAlignModes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	for _, tc := range []struct {
		va  frame.VerticalAlign
		top dimen.Dimen
	}{
		{frame.AlignTop, 0},
		{frame.AlignMiddle, 10 * px},
		{frame.AlignBottom, 20 * px},
	} {
		arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
		regs.Push(parameters.P_VALIGN, int(tc.va))
		root := newRoot(arena, regs, 100*px)
		place(root, atomic(arena, 10*px, 30*px, 0))
		small := atomic(arena, 10*px, 10*px, 0)
		place(root, small)
		root.CompleteLine(false, true)
		assert.Equal(t, tc.top, small.ParentOffsetTop, "vertical-align %s", tc.va)
	}
}

func TestDirectionSymmetry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	widths := []dimen.Dimen{40 * px, 15 * px, 25 * px}
	layout := func(dir bidi.Direction) []dimen.Dimen {
		arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
		regs.Push(parameters.P_TEXTDIRECTION, dir)
		root := newRoot(arena, regs, 100*px)
		var xs []dimen.Dimen
		var frags []*frame.Fragment
		for _, w := range widths {
			f := atomic(arena, w, 10*px, 0)
			place(root, f)
			frags = append(frags, f)
		}
		root.CompleteLine(false, true)
		for _, f := range frags {
			xs = append(xs, f.ParentOffsetLeft)
		}
		return xs
	}
	ltr, rtl := layout(bidi.LeftToRight), layout(bidi.RightToLeft)
	var mirrored []dimen.Dimen
	for i, x := range ltr {
		mirrored = append(mirrored, 100*px-x-widths[i])
	}
	if diff := cmp.Diff(mirrored, rtl); diff != "" {
		t.Errorf("right-to-left placement is not the mirror image (-want +got):\n%s", diff)
	}
}

func TestFragmentChainIntegrity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	const breaks = 3
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	rd := frame.NewRenderData("span", arena)
	span := rd.NewFragment()
	span.Display = frame.Inline
	span.Margin[frame.Left] = 5 * px
	span.Padding[frame.Left] = 1 * px
	root.AddToLine(span.ID)
	ictx := NewInlineContext(root, span.ID, regs)
	assert.Equal(t, 6*px, ictx.MaxOffset())
	assert.Equal(t, 94*px, ictx.MaxX())
	for i := 0; i < breaks; i++ {
		place(ictx, word(arena, 60*px, 10*px, 0))
		ictx.CompleteLine(true, false)
		onLine := root.OnLine()
		require.Len(t, onLine, 1)
		assert.Equal(t, ictx.Current(), onLine[0], "continuation has to start the parent's new line")
		assert.Equal(t, 1*px, ictx.MaxOffset())
	}
	place(ictx, word(arena, 60*px, 10*px, 0))
	ictx.CompleteLine(false, true)
	root.CompleteLine(false, true)
	//
	chain := rd.Fragments()
	require.Len(t, chain, breaks+1)
	for i, id := range chain {
		f := arena.At(id)
		assert.Equal(t, rd, f.Element)
		assert.Equal(t, root.Current(), f.Parent)
		assert.Equal(t, dimen.Dimen(i)*10*px, f.ParentOffsetTop)
		assert.Equal(t, 61*px, f.Width)
		if i > 0 {
			assert.Equal(t, dimen.Zero, f.Margin[frame.Left], "continuations start without margin")
			assert.Equal(t, 1*px, f.Padding[frame.Left])
			assert.Equal(t, dimen.Zero, f.ParentOffsetLeft)
		}
		if i < breaks {
			assert.Equal(t, chain[i+1], f.NextInElement)
		} else {
			assert.Equal(t, frame.NoFragment, f.NextInElement)
		}
	}
	assert.Equal(t, 5*px, arena.At(chain[0]).ParentOffsetLeft)
	assert.Equal(t, 40*px, root.PenY())
}

func TestNestedInlineBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	outer := frame.NewRenderData("b", arena)
	inner := frame.NewRenderData("i", arena)
	b := outer.NewFragment()
	b.Display = frame.Inline
	root.AddToLine(b.ID)
	bctx := NewInlineContext(root, b.ID, regs)
	place(bctx, word(arena, 30*px, 10*px, 0))
	i := inner.NewFragment()
	i.Display = frame.Inline
	bctx.AddToLine(i.ID)
	ictx := NewInlineContext(bctx, i.ID, regs)
	assert.Equal(t, 30*px, ictx.MaxOffset())
	assert.Equal(t, 70*px, ictx.MaxX())
	place(ictx, word(arena, 50*px, 10*px, 0))
	ictx.CompleteLine(true, false)
	place(ictx, word(arena, 20*px, 10*px, 0))
	ictx.CompleteLine(false, true)
	bctx.CompleteLine(false, true)
	root.CompleteLine(false, true)
	assert.Equal(t, 2, outer.Len())
	assert.Equal(t, 2, inner.Len())
	assert.Equal(t, 20*px, root.PenY())
	second := arena.At(inner.Last)
	assert.Equal(t, outer.Last, second.Parent)
	assert.Equal(t, 20*px, arena.At(outer.Last).Width)
}

func TestRightToLeftInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_TEXTDIRECTION, bidi.RightToLeft)
	root := newRoot(arena, regs, 100*px)
	rd := frame.NewRenderData("span", arena)
	span := rd.NewFragment()
	span.Display = frame.Inline
	root.AddToLine(span.ID)
	ictx := NewInlineContext(root, span.ID, regs)
	assert.True(t, ictx.GoingLeftwards())
	w1, w2 := word(arena, 40*px, 10*px, 0), word(arena, 20*px, 10*px, 0)
	place(ictx, w1)
	place(ictx, w2)
	ictx.CompleteLine(false, true)
	root.CompleteLine(false, true)
	assert.Equal(t, 40*px, span.ParentOffsetLeft)
	assert.Equal(t, 20*px, w1.ParentOffsetLeft)
	assert.Equal(t, dimen.Zero, w2.ParentOffsetLeft)
}

func TestTryBreakParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	place(root, word(arena, 70*px, 10*px, 0))
	rd := frame.NewRenderData("span", arena)
	span := rd.NewFragment()
	span.Display = frame.Inline
	root.AddToLine(span.ID)
	ictx := NewInlineContext(root, span.ID, regs)
	assert.Equal(t, BreakLine, ictx.GetLineSpace(50*px, ictx.Consumed()))
	require.True(t, ictx.IsLineEmpty())
	require.True(t, ictx.TryBreakParent())
	assert.Equal(t, span.ID, root.FirstOnLine())
	// a fragment starting the line of a flow root cannot move
	assert.False(t, ictx.TryBreakParent())
	assert.Equal(t, dimen.Zero, ictx.MaxOffset())
	assert.Equal(t, Fits, ictx.GetLineSpace(50*px, ictx.Consumed()))
	place(ictx, word(arena, 50*px, 10*px, 0))
	ictx.CompleteLine(false, true)
	root.CompleteLine(false, true)
	assert.Equal(t, 1, rd.Len())
	assert.Equal(t, dimen.Zero, span.ParentOffsetLeft)
	assert.Equal(t, 10*px, span.ParentOffsetTop)
}

func TestRemoveFromLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	w1, w2 := word(arena, 10*px, 10*px, 0), word(arena, 10*px, 10*px, 0)
	assert.Equal(t, core.EINVARIANT, contractCode(func() { root.RemoveFromLine(w1.ID) }))
	place(root, w1)
	place(root, w2)
	assert.Equal(t, core.EINVARIANT, contractCode(func() { root.RemoveFromLine(w1.ID) }))
	root.RemoveFromLine(w2.ID)
	assert.Equal(t, w1.ID, root.LastOnLine())
	assert.Equal(t, core.EINVARIANT, contractCode(func() { root.RemoveFromLine(w2.ID) }))
}

func TestInlineBlockDelegation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	root.CompleteLine(true, false)
	place(root, word(arena, 30*px, 10*px, 0))
	ib := atomic(arena, 0, 0, 0)
	root.AddToLine(ib.ID)
	ibctx := NewInlineBlockContext(root, ib.ID, 0, regs)
	assert.False(t, ibctx.IsFlowRoot())
	assert.Equal(t, root, ibctx.Host())
	assert.Equal(t, 70*px, ibctx.MaxX())
	assert.Equal(t, root.PenY(), ibctx.PenY())
	ibctx.Geometry().SetLargestLineWidth(42 * px)
	assert.Equal(t, 42*px, root.LargestLineWidth(), "writes have to reach the host block")
	ibctx.Promote(50 * px)
	assert.True(t, ibctx.IsFlowRoot())
	assert.Equal(t, ibctx, ibctx.Host())
	assert.Equal(t, 50*px, ibctx.MaxX())
	assert.Equal(t, dimen.Zero, ibctx.PenY())
	//
	rd := frame.NewRenderData("span", arena)
	span := rd.NewFragment()
	span.Display = frame.Inline
	root.AddToLine(span.ID)
	ictx := NewInlineContext(root, span.ID, regs)
	assert.Equal(t, core.EINVARIANT, contractCode(func() { ictx.Promote(10 * px) }))
	other := atomic(arena, 0, 0, 0)
	root.AddToLine(other.ID)
	octx := NewInlineBlockContext(root, other.ID, 0, regs)
	place(octx, word(arena, 10*px, 10*px, 0))
	assert.Equal(t, core.EINVARIANT, contractCode(func() { octx.Promote(10 * px) }),
		"inline-block holding content cannot be promoted")
}

func TestInlineBlockInBlockMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	ib := atomic(arena, 40*px, 0, 0)
	root.AddToLine(ib.ID)
	ibctx := NewInlineBlockContext(root, ib.ID, 40*px, regs)
	require.True(t, ibctx.IsFlowRoot())
	// floats inside stay inside
	fl := float(arena, frame.FloatLeft, 10*px, 10*px)
	place(ibctx, fl)
	assert.Equal(t, 1, ibctx.Floats().Len(frame.FloatLeft))
	assert.True(t, root.Floats().IsEmpty())
	place(ibctx, word(arena, 30*px, 10*px, 0))
	ibctx.CompleteLine(false, true)
	ib.InnerHeight = ibctx.PenY()
	ib.SetDimensions()
	root.AdvancePen(ib.ID)
	root.CompleteLine(false, true)
	assert.Equal(t, 10*px, root.PenY())
	m, ok := ibctx.LastLine()
	assert.True(t, ok)
	assert.Equal(t, 10*px, m.Height)
}

func TestFloatsDelegatedFromInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	rd := frame.NewRenderData("span", arena)
	span := rd.NewFragment()
	span.Display = frame.Inline
	root.AddToLine(span.ID)
	ictx := NewInlineContext(root, span.ID, regs)
	fl := float(arena, frame.FloatRight, 20*px, 20*px)
	place(ictx, fl)
	assert.Equal(t, 1, root.Floats().Len(frame.FloatRight))
	assert.Equal(t, root.Current(), fl.Parent)
	assert.Equal(t, 80*px, fl.ParentOffsetLeft)
	assert.Equal(t, 80*px, ictx.MaxX())
	assert.True(t, ictx.IsLineEmpty(), "floats are not part of the line")
}

func TestStartFloatDelegatedFromInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	rd := frame.NewRenderData("span", arena)
	span := rd.NewFragment()
	span.Display = frame.Inline
	root.AddToLine(span.ID)
	ictx := NewInlineContext(root, span.ID, regs)
	w := word(arena, 40*px, 10*px, 0)
	place(ictx, w)
	fl := float(arena, frame.FloatLeft, 30*px, 20*px)
	place(ictx, fl)
	assert.Equal(t, 30*px, root.LineStart())
	assert.Equal(t, 30*px, span.ParentOffsetLeft, "span moves past the float")
	assert.Equal(t, dimen.Zero, w.ParentOffsetLeft)
	assert.Equal(t, 30*px, ictx.MaxOffset())
	assert.Equal(t, 70*px, ictx.MaxX())
	assert.Equal(t, 40*px, ictx.Consumed())
	assert.Equal(t, BreakLine, ictx.GetLineSpace(50*px, ictx.Consumed()),
		"line holds 70px beside the float")
	assert.Equal(t, Fits, ictx.GetLineSpace(30*px, ictx.Consumed()))
	//
	inner := arena.New()
	inner.Display = frame.Inline
	ictx.AddToLine(inner.ID)
	nested := NewInlineContext(ictx, inner.ID, regs)
	assert.Equal(t, 70*px, nested.MaxOffset())
}

func TestOutOfFlowPlacement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.frame")
	defer teardown()
	//
	arena, regs := frame.NewArena(), parameters.NewTypesettingRegisters()
	root := newRoot(arena, regs, 100*px)
	place(root, word(arena, 30*px, 10*px, 0))
	abs := arena.New()
	abs.Display = frame.Block
	abs.Position = frame.Absolute
	abs.Margin = frame.Edges{3 * px, 0, 2 * px, 4 * px}
	abs.InnerWidth, abs.InnerHeight = 10*px, 10*px
	abs.SetDimensions()
	place(root, abs)
	assert.Equal(t, 34*px, abs.ParentOffsetLeft)
	assert.Equal(t, 3*px, abs.ParentOffsetTop)
	assert.Equal(t, 30*px, root.PenX(), "out-of-flow boxes do not move the pen")
	assert.Equal(t, []frame.FragmentID{abs.ID}, root.OutOfFlow())
	root.CompleteLine(true, false)
	assert.Equal(t, dimen.Zero, abs.ParentOffsetLeft)
	assert.Equal(t, 8*px, abs.ParentOffsetTop)
	assert.Empty(t, root.OutOfFlow())
}

func TestFloatRegistry(t *testing.T) {
	reg := NewFloatRegistry()
	reg.Add(1, frame.FloatLeft)
	reg.Add(2, frame.FloatRight)
	reg.Add(3, frame.FloatLeft)
	assert.Equal(t, dimen.Zero, reg.Clearance(frame.FloatBoth), "unplaced floats do not clear")
	reg.Place(1, 40*px, 30*px)
	reg.Place(2, 10*px, 70*px)
	reg.Place(3, 20*px, 50*px)
	assert.Equal(t, []frame.FragmentID{2, 3, 1}, reg.Floats(frame.FloatBoth))
	assert.Equal(t, 40*px, reg.Clearance(frame.FloatLeft))
	assert.Equal(t, 50*px, reg.InnerEdge(frame.FloatLeft, 0))
	assert.Equal(t, 70*px, reg.InnerEdge(frame.FloatRight, 100*px))
	removed := reg.removeCleared(20 * px)
	assert.Len(t, removed, 2)
	assert.Equal(t, 30*px, reg.InnerEdge(frame.FloatLeft, 0))
	assert.Equal(t, 100*px, reg.InnerEdge(frame.FloatRight, 100*px))
	side, ok := reg.Side(1)
	assert.True(t, ok)
	assert.Equal(t, frame.FloatLeft, side)
	assert.Len(t, reg.remove(frame.FloatLeft), 1)
	assert.True(t, reg.IsEmpty())
}
