package frame

import "github.com/npillmayer/lineflow/core"

// RenderData is the render-side state of an element: the chain of fragments
// it produced, in line order.
type RenderData struct {
	Name  string
	First FragmentID
	Last  FragmentID
	arena *Arena
}

// NewRenderData creates an empty fragment chain for an element.
func NewRenderData(name string, arena *Arena) *RenderData {
	return &RenderData{
		Name:  name,
		First: NoFragment,
		Last:  NoFragment,
		arena: arena,
	}
}

// Append links a fragment to the end of the chain and makes the element its
// owner.
func (rd *RenderData) Append(id FragmentID) {
	f := rd.arena.At(id)
	if f.Element != nil && f.Element != rd {
		panic(core.Error(core.EINVARIANT, "fragment %d already belongs to %q", id, f.Element.Name))
	}
	f.Element = rd
	f.NextInElement = NoFragment
	if rd.First == NoFragment {
		rd.First, rd.Last = id, id
		return
	}
	rd.arena.At(rd.Last).NextInElement = id
	rd.Last = id
}

// NewFragment allocates a fragment and appends it to the chain.
func (rd *RenderData) NewFragment() *Fragment {
	f := rd.arena.New()
	rd.Append(f.ID)
	return f
}

// Fragments returns the ids of the chain in order.
func (rd *RenderData) Fragments() []FragmentID {
	var ids []FragmentID
	for id := rd.First; id != NoFragment; id = rd.arena.At(id).NextInElement {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the length of the chain.
func (rd *RenderData) Len() int {
	return len(rd.Fragments())
}
