package layout

import (
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/engine/frame"
)

// Element returns the render data of the first element with a given name,
// or nil.
func (r *Result) Element(name string) *frame.RenderData {
	for _, rd := range r.Elements {
		if rd.Name == name {
			return rd
		}
	}
	return nil
}

// Fragment returns the first fragment of the first element with a given
// name, or nil.
func (r *Result) Fragment(name string) *frame.Fragment {
	rd := r.Element(name)
	if rd == nil || rd.First == frame.NoFragment {
		return nil
	}
	return r.Arena.At(rd.First)
}

// Placement is the resolved position of a fragment.
type Placement struct {
	Element  string
	Fragment frame.FragmentID
	Box      dimen.Rect // border box, relative to the margin box of the root
}

// Placements lists every fragment of every element, in tree order and
// chain order.
func (r *Result) Placements() []Placement {
	var pl []Placement
	for _, rd := range r.Elements {
		for _, id := range rd.Fragments() {
			pl = append(pl, Placement{
				Element:  rd.Name,
				Fragment: id,
				Box:      r.Arena.BorderBox(id),
			})
		}
	}
	return pl
}

// Select returns the placements of all elements whose names satisfy a
// predicate.
func (r *Result) Select(pred func(name string) bool) []Placement {
	var pl []Placement
	for _, p := range r.Placements() {
		if pred(p.Element) {
			pl = append(pl, p)
		}
	}
	return pl
}
