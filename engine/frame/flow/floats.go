package flow

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/engine/frame"
)

// FloatRegistry is the set of floats of a flow root which have not been
// cleared yet. Floats are tagged with their logical side (frame.FloatLeft
// is the line-start side) and are selected by side mask; no order between
// floats of a side is assumed.
//
// Floats are kept sorted by bottom edge, which is what clearing asks for.
type FloatRegistry struct {
	floats *treemap.Map // floatKey -> *pendingFloat
	seq    int
}

type floatKey struct {
	bottom dimen.Dimen
	seq    int
}

// pendingFloat is a float waiting to be cleared. For a line-start float,
// edge is the line-start position right after it; for a line-end float,
// edge is max-x right before it.
type pendingFloat struct {
	key    floatKey
	id     frame.FragmentID
	side   frame.FloatMode
	bottom dimen.Dimen
	edge   dimen.Dimen
	placed bool
}

func byBottomEdge(a, b interface{}) int {
	ka, kb := a.(floatKey), b.(floatKey)
	switch {
	case ka.bottom < kb.bottom:
		return -1
	case ka.bottom > kb.bottom:
		return 1
	}
	return utils.IntComparator(ka.seq, kb.seq)
}

// NewFloatRegistry creates an empty registry.
func NewFloatRegistry() *FloatRegistry {
	return &FloatRegistry{floats: treemap.NewWith(byBottomEdge)}
}

// Add registers a float under a logical side. Its geometry is unknown
// until Place is called, so it does not clear before.
func (r *FloatRegistry) Add(id frame.FragmentID, side frame.FloatMode) {
	r.seq++
	pf := &pendingFloat{
		key:    floatKey{bottom: dimen.Infinity, seq: r.seq},
		id:     id,
		side:   side,
		bottom: dimen.Infinity,
	}
	r.floats.Put(pf.key, pf)
}

// Place records the bottom edge and inner edge of a registered float.
func (r *FloatRegistry) Place(id frame.FragmentID, bottom, edge dimen.Dimen) bool {
	pf := r.find(id)
	if pf == nil {
		return false
	}
	r.floats.Remove(pf.key)
	pf.key.bottom, pf.bottom, pf.edge, pf.placed = bottom, bottom, edge, true
	r.floats.Put(pf.key, pf)
	return true
}

// Side returns the logical side of a registered float.
func (r *FloatRegistry) Side(id frame.FragmentID) (frame.FloatMode, bool) {
	if pf := r.find(id); pf != nil {
		return pf.side, true
	}
	return frame.FloatNone, false
}

func (r *FloatRegistry) find(id frame.FragmentID) *pendingFloat {
	for _, v := range r.floats.Values() {
		if pf := v.(*pendingFloat); pf.id == id {
			return pf
		}
	}
	return nil
}

func (r *FloatRegistry) selected(mask frame.FloatMode) []*pendingFloat {
	var sel []*pendingFloat
	it := r.floats.Iterator()
	for it.Next() {
		if pf := it.Value().(*pendingFloat); mask.Has(pf.side) {
			sel = append(sel, pf)
		}
	}
	return sel
}

// Len returns the number of floats pending on the sides of mask.
func (r *FloatRegistry) Len(mask frame.FloatMode) int {
	return len(r.selected(mask))
}

// IsEmpty is true if no floats are pending.
func (r *FloatRegistry) IsEmpty() bool {
	return r.floats.Empty()
}

// Clearance returns the lowest bottom edge of the floats on the sides of
// mask, i.e. the pen position which clears all of them. Returns zero if
// no float is pending on these sides.
func (r *FloatRegistry) Clearance(mask frame.FloatMode) dimen.Dimen {
	var y dimen.Dimen
	for _, pf := range r.selected(mask) {
		if pf.placed {
			y = dimen.Max(y, pf.bottom)
		}
	}
	return y
}

// Floats returns the fragments pending on the sides of mask, ordered by
// bottom edge.
func (r *FloatRegistry) Floats(mask frame.FloatMode) []frame.FragmentID {
	var ids []frame.FragmentID
	for _, pf := range r.selected(mask) {
		ids = append(ids, pf.id)
	}
	return ids
}

// remove drops all floats on the sides of mask and returns them.
func (r *FloatRegistry) remove(mask frame.FloatMode) []*pendingFloat {
	removed := r.selected(mask)
	for _, pf := range removed {
		r.floats.Remove(pf.key)
	}
	return removed
}

// removeCleared drops all placed floats whose bottom edge is at or above
// pen position y.
func (r *FloatRegistry) removeCleared(y dimen.Dimen) []*pendingFloat {
	var removed []*pendingFloat
	it := r.floats.Iterator()
	for it.Next() {
		pf := it.Value().(*pendingFloat)
		if pf.bottom > y {
			break
		}
		removed = append(removed, pf)
	}
	for _, pf := range removed {
		r.floats.Remove(pf.key)
	}
	return removed
}

// InnerEdge returns the horizontal bound left over by the floats of one
// logical side, or bound if no placed float remains there. For the
// line-start side this is the largest edge, for the line-end side the
// smallest.
func (r *FloatRegistry) InnerEdge(side frame.FloatMode, bound dimen.Dimen) dimen.Dimen {
	for _, pf := range r.selected(side) {
		if !pf.placed {
			continue
		}
		if side == frame.FloatLeft {
			bound = dimen.Max(bound, pf.edge)
		} else {
			bound = dimen.Min(bound, pf.edge)
		}
	}
	return bound
}
