package meander

import "github.com/matzehuels/meander/pkg/geom"

// Substrate returns the closed outline of the square carrier, shifted so
// the trace region sits centered on it with the height-dependent bias.
func Substrate(g Geometry) geom.Path {
	s := g.Params.SubstrateSize
	x0, y0 := -g.SubstrateShift.X, -g.SubstrateShift.Y
	return geom.Path{
		geom.Pt(x0, y0),
		geom.Pt(x0+s, y0),
		geom.Pt(x0+s, y0+s),
		geom.Pt(x0, y0+s),
		geom.Pt(x0, y0),
	}
}
