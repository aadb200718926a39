package frame

/*
BSD License

Copyright (c) 2017–2021, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"fmt"

	"github.com/npillmayer/lineflow/core/dimen"
)

// For padding, margins, etc. 4-way values always start at the top and travel
// clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Edges is a 4-way value for margins, border widths and paddings.
type Edges [4]dimen.Dimen

// Uniform returns edges of equal size on all 4 sides.
func Uniform(d dimen.Dimen) Edges {
	return Edges{d, d, d, d}
}

// Horizontal returns the sum of left and right edge.
func (e Edges) Horizontal() dimen.Dimen {
	return e[Left] + e[Right]
}

// Vertical returns the sum of top and bottom edge.
func (e Edges) Vertical() dimen.Dimen {
	return e[Top] + e[Bottom]
}

func (e Edges) String() string {
	return fmt.Sprintf("[%s %s %s %s]", e[Top], e[Right], e[Bottom], e[Left])
}

// FragmentID references a fragment within an Arena.
type FragmentID int32

// NoFragment is the null reference.
const NoFragment FragmentID = -1

// Fragment is one rectangular layout result for (a part of) an element on
// one physical line, following the CSS box model.
//
// Inner dimensions measure the area inside of padding. Width and Height
// measure the border box. Baseline is the distance from the bottom edge of
// the fragment up to its baseline; for ordinary inline fragments the bottom
// edge is the bottom of the inner area.
//
// ParentOffsetLeft and ParentOffsetTop position the border box relative to
// the content origin of Parent. They are valid once the line holding the
// fragment has been completed.
type Fragment struct {
	ID            FragmentID
	Element       *RenderData // owning element, may be nil for anonymous fragments
	NextInElement FragmentID  // next fragment of the same element
	Parent        FragmentID  // box this fragment has been placed into
	FirstChild    FragmentID  // first fragment placed into this one

	Width, Height               dimen.Dimen // border box
	InnerWidth, InnerHeight     dimen.Dimen // inside of padding
	ContentWidth, ContentHeight dimen.Dimen // extent of the content placed inside
	Margin, Border, Padding     Edges
	Baseline                    dimen.Dimen

	ParentOffsetLeft dimen.Dimen
	ParentOffsetTop  dimen.Dimen

	Display  DisplayMode
	Position PositionMode
	Float    FloatMode
	Clear    FloatMode
}

func (f *Fragment) reset(id FragmentID) {
	*f = Fragment{
		ID:            id,
		NextInElement: NoFragment,
		Parent:        NoFragment,
		FirstChild:    NoFragment,
	}
}

func (f *Fragment) String() string {
	name := "anon"
	if f.Element != nil {
		name = f.Element.Name
	}
	return fmt.Sprintf("%s#%d<%s>(%s×%s @%s,%s)", f.Display.Symbol(), f.ID, name,
		f.Width, f.Height, f.ParentOffsetLeft, f.ParentOffsetTop)
}

// TotalWidth is the width of the margin box.
func (f *Fragment) TotalWidth() dimen.Dimen {
	return f.Width + f.Margin.Horizontal()
}

// TotalHeight is the height of the margin box.
func (f *Fragment) TotalHeight() dimen.Dimen {
	return f.Height + f.Margin.Vertical()
}

// SetDimensions derives the border box from the inner dimensions.
func (f *Fragment) SetDimensions() {
	f.Width = f.InnerWidth + f.Padding.Horizontal() + f.Border.Horizontal()
	f.Height = f.InnerHeight + f.Padding.Vertical() + f.Border.Vertical()
}

// SetInnerFromWidth derives the inner dimensions from the border box.
func (f *Fragment) SetInnerFromWidth() {
	f.InnerWidth = dimen.Max(0, f.Width-f.Padding.Horizontal()-f.Border.Horizontal())
	f.InnerHeight = dimen.Max(0, f.Height-f.Padding.Vertical()-f.Border.Vertical())
}

// IsOrdinaryInline is true for non-atomic inline fragments.
func (f *Fragment) IsOrdinaryInline() bool {
	return f.Display.IsOrdinaryInline()
}

// IsInFlow is true if the fragment takes part in line flow.
func (f *Fragment) IsInFlow() bool {
	return f.Position.IsInFlow()
}

// IsFloated is true for floated fragments.
func (f *Fragment) IsFloated() bool {
	return f.Float != FloatNone
}

// DecorationStart is the horizontal distance from the margin edge to the
// content origin at the left side.
func (f *Fragment) DecorationStart() dimen.Dimen {
	return f.Margin[Left] + f.Border[Left] + f.Padding[Left]
}

// ContentTop is the vertical distance from the border edge to the content
// origin.
func (f *Fragment) ContentTop() dimen.Dimen {
	return f.Border[Top] + f.Padding[Top]
}

// LineHeightContribution is the height a fragment claims on a line:
// the inner height for ordinary inline fragments, the margin box otherwise.
func (f *Fragment) LineHeightContribution() dimen.Dimen {
	if f.IsOrdinaryInline() {
		return f.InnerHeight
	}
	return f.TotalHeight()
}

// CopyDecoration copies margins, borders, paddings and classification from
// another fragment.
func (f *Fragment) CopyDecoration(from *Fragment) {
	f.Margin, f.Border, f.Padding = from.Margin, from.Border, from.Padding
	f.Display, f.Position = from.Display, from.Position
}

// CollapseMargins returns the resulting margin between two adjoining vertical
// margins, and the amount by which the space between the boxes shrinks.
// Either margin may be negative.
func CollapseMargins(bottom, top dimen.Dimen) (dimen.Dimen, dimen.Dimen) {
	var collapsed dimen.Dimen
	switch {
	case bottom >= 0 && top >= 0:
		collapsed = dimen.Max(bottom, top)
	case bottom < 0 && top < 0:
		collapsed = dimen.Min(bottom, top)
	default:
		collapsed = bottom + top
	}
	return collapsed, bottom + top - collapsed
}
