package meander

import "github.com/matzehuels/meander/pkg/geom"

// PadGroup is a pair of square bond pads joined by a bridge whose top edge
// carries a notch (the neck). Vertices are named so lead routing can anchor
// on them without positional indexing.
type PadGroup struct {
	Origin      geom.Point // bottom-left corner
	TopLeft     geom.Point
	TopRight    geom.Point
	BottomRight geom.Point
	// InnerRight is the bottom-left corner of the right pad square.
	InnerRight geom.Point
	NeckRight  geom.Point
	NeckLeft   geom.Point
	// InnerLeft is the bottom-right corner of the left pad square.
	InnerLeft geom.Point
}

// NewPadGroup lays out a pad group with its bottom-left corner at origin.
func NewPadGroup(g Geometry, origin geom.Point) PadGroup {
	pad, group := g.Params.PadSize, g.PadsGroup
	top := origin.Y + pad
	neck := top - g.Params.PadsNeckSize
	return PadGroup{
		Origin:      origin,
		TopLeft:     geom.Pt(origin.X, top),
		TopRight:    geom.Pt(origin.X+group, top),
		BottomRight: geom.Pt(origin.X+group, origin.Y),
		InnerRight:  geom.Pt(origin.X+group-pad, origin.Y),
		NeckRight:   geom.Pt(origin.X+group-pad, neck),
		NeckLeft:    geom.Pt(origin.X+pad, neck),
		InnerLeft:   geom.Pt(origin.X+pad, origin.Y),
	}
}

// Outline returns the closed 9-point outline of the group.
func (p PadGroup) Outline() geom.Path {
	return geom.Path{
		p.Origin,
		p.TopLeft,
		p.TopRight,
		p.BottomRight,
		p.InnerRight,
		p.NeckRight,
		p.NeckLeft,
		p.InnerLeft,
		p.Origin,
	}
}

// LeftPads returns the pad group on the left of the mirror axis.
func LeftPads(g Geometry) PadGroup {
	return NewPadGroup(g, geom.Pt(g.PadsOriginX, 0))
}

// RightPads returns the pad group on the right of the mirror axis. It is
// placed by origin offset; its outline coincides with the mirrored left
// outline.
func RightPads(g Geometry) PadGroup {
	return NewPadGroup(g, geom.Pt(g.PadsOriginX+g.PadsGroup+g.PadsGap, 0))
}
