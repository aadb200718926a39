package flow

import (
	"golang.org/x/image/font"

	"github.com/npillmayer/lineflow/core/dimen"
)

// Geometry is the absolute geometry a line context works against.
// Flow roots own it; inline contexts forward every accessor to their host
// block, with the horizontal bound shifted by their offset within the
// host's lines.
type Geometry interface {
	PenY() dimen.Dimen
	SetPenY(dimen.Dimen)
	MaxX() dimen.Dimen
	SetMaxX(dimen.Dimen)
	GoingLeftwards() bool
	SetGoingLeftwards(bool)
	LargestLineWidth() dimen.Dimen
	SetLargestLineWidth(dimen.Dimen)
	Font() font.Face
	SetFont(font.Face)
}

type ownGeometry struct {
	penY      dimen.Dimen
	maxX      dimen.Dimen
	largest   dimen.Dimen
	width     dimen.Dimen // width of the line box, mirror axis for right-to-left
	leftwards bool
	face      font.Face
}

var _ Geometry = &ownGeometry{}

func (g *ownGeometry) PenY() dimen.Dimen                 { return g.penY }
func (g *ownGeometry) SetPenY(y dimen.Dimen)             { g.penY = y }
func (g *ownGeometry) MaxX() dimen.Dimen                 { return g.maxX }
func (g *ownGeometry) SetMaxX(x dimen.Dimen)             { g.maxX = x }
func (g *ownGeometry) GoingLeftwards() bool              { return g.leftwards }
func (g *ownGeometry) SetGoingLeftwards(l bool)          { g.leftwards = l }
func (g *ownGeometry) LargestLineWidth() dimen.Dimen     { return g.largest }
func (g *ownGeometry) SetLargestLineWidth(w dimen.Dimen) { g.largest = w }
func (g *ownGeometry) Font() font.Face                   { return g.face }
func (g *ownGeometry) SetFont(f font.Face)               { g.face = f }

// hostGeometry forwards to the geometry of the host block of c.
type hostGeometry struct {
	c *Context
}

var _ Geometry = hostGeometry{}

func (g hostGeometry) target() Geometry {
	return g.c.host.geom
}

func (g hostGeometry) PenY() dimen.Dimen { return g.target().PenY() }

func (g hostGeometry) SetPenY(y dimen.Dimen) { g.target().SetPenY(y) }

func (g hostGeometry) MaxX() dimen.Dimen {
	return g.target().MaxX() - g.c.maxOffset
}

func (g hostGeometry) SetMaxX(x dimen.Dimen) {
	g.target().SetMaxX(x + g.c.maxOffset)
}

func (g hostGeometry) GoingLeftwards() bool { return g.target().GoingLeftwards() }

func (g hostGeometry) SetGoingLeftwards(l bool) { g.target().SetGoingLeftwards(l) }

func (g hostGeometry) LargestLineWidth() dimen.Dimen { return g.target().LargestLineWidth() }

func (g hostGeometry) SetLargestLineWidth(w dimen.Dimen) { g.target().SetLargestLineWidth(w) }

func (g hostGeometry) Font() font.Face { return g.target().Font() }

func (g hostGeometry) SetFont(f font.Face) { g.target().SetFont(f) }
