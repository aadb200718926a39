package frame

import (
	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
)

const chunkSize = 64

// Arena stores the fragments of one layout pass. Fragments are addressed by
// FragmentID; pointers returned by At stay valid until Reset or Truncate.
type Arena struct {
	chunks [][]Fragment
	count  int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a fresh fragment with all references set to NoFragment.
func (a *Arena) New() *Fragment {
	c, i := a.count/chunkSize, a.count%chunkSize
	if c == len(a.chunks) {
		a.chunks = append(a.chunks, make([]Fragment, chunkSize))
	}
	f := &a.chunks[c][i]
	f.reset(FragmentID(a.count))
	a.count++
	return f
}

// At returns the fragment for an id. Invalid ids are a caller error.
func (a *Arena) At(id FragmentID) *Fragment {
	if id < 0 || int(id) >= a.count {
		panic(core.Error(core.EINVARIANT, "fragment reference %d outside of arena [0…%d)", id, a.count))
	}
	return &a.chunks[int(id)/chunkSize][int(id)%chunkSize]
}

// Len returns the number of fragments allocated.
func (a *Arena) Len() int {
	return a.count
}

// Mark returns a position to which an arena may be truncated later on,
// e.g. after a measuring pass.
func (a *Arena) Mark() int {
	return a.count
}

// Truncate drops all fragments allocated after mark.
func (a *Arena) Truncate(mark int) {
	if mark < 0 || mark > a.count {
		panic(core.Error(core.EINVARIANT, "cannot truncate arena to %d", mark))
	}
	tracer().Debugf("arena: dropping %d fragments", a.count-mark)
	a.count = mark
}

// Reset empties the arena for a new layout pass.
func (a *Arena) Reset() {
	a.count = 0
}

// Absolute returns the position of a fragment's border box relative to the
// content origin of the outermost fragment, by summing parent offsets.
func (a *Arena) Absolute(id FragmentID) dimen.Point {
	var p dimen.Point
	for depth := 0; id != NoFragment; depth++ {
		if depth > a.count {
			panic(core.Error(core.EINVARIANT, "cycle in fragment parent chain at %d", id))
		}
		f := a.At(id)
		p.X += f.ParentOffsetLeft
		p.Y += f.ParentOffsetTop
		if f.Parent != NoFragment {
			parent := a.At(f.Parent)
			p.X += parent.Border[Left] + parent.Padding[Left]
			p.Y += parent.ContentTop()
		}
		id = f.Parent
	}
	return p
}

// BorderBox returns the absolute border box of a fragment.
func (a *Arena) BorderBox(id FragmentID) dimen.Rect {
	f := a.At(id)
	topL := a.Absolute(id)
	return dimen.Rect{TopL: topL, BotR: topL.Add(dimen.Point{X: f.Width, Y: f.Height})}
}
