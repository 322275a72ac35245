package meander

import "github.com/matzehuels/meander/pkg/geom"

// LeftLead routes the closed lead outline from the left pad group's inner
// corner up to the meander's entry stub. Every vertex is a fixed offset from
// a pad or entry anchor; the offsets keep the lead clear of the first tooth.
func LeftLead(g Geometry, pads PadGroup, entry [4]geom.Point) geom.Path {
	neck := g.Params.PadsNeckSize
	t := g.Params.SnakeThickness
	margin := g.Params.SnakeLoopMargin

	origin, drop, corner := entry[0], entry[1], entry[2]
	shoulderY := corner.Y + (margin - neck/2)

	return geom.Path{
		pads.InnerRight,
		pads.BottomRight,
		geom.Pt(drop.X, drop.Y+neck),
		geom.Pt(corner.X+neck, corner.Y+neck),
		geom.Pt(corner.X+2*t, shoulderY),
		geom.Pt(corner.X-2*t, shoulderY),
		geom.Pt(corner.X-2*t, corner.Y),
		geom.Pt(drop.X-neck, drop.Y),
		geom.Pt(origin.X-neck, origin.Y),
		geom.Pt(pads.TopRight.X-g.Params.PadSize, pads.TopRight.Y),
		pads.InnerRight,
	}
}

// RightLead mirrors left about g.MirrorAxis, the line halfway through the
// gap between the pad groups (the left lead's outer pad corner plus half a
// gap). It never recomputes the routing.
func RightLead(g Geometry, left geom.Path) geom.Path {
	return geom.Reflect(left, g.MirrorAxis)
}
