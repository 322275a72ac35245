package meander

import "github.com/matzehuels/meander/pkg/geom"

// Tooth is one rectangular fold of the trace: up from the top rail's
// left post down to the bottom rail, across by one loop gap, and back up.
type Tooth [4]geom.Point

// Snake is the meander trace composed from named segments.
type Snake struct {
	// Entry runs from the trace origin down past the pads to the lower-left
	// turning corner and up to the top rail.
	Entry [4]geom.Point
	Teeth []Tooth
	// Exit runs from the upper-right corner back down to the right pad group.
	Exit [4]geom.Point
	// Width is the stroke width of the conductor.
	Width float64
}

// NewSnake builds the meander for g with g.Params.NumberOfLoops teeth.
func NewSnake(g Geometry) Snake {
	o, lc, rc := g.SnakeOrigin, g.LeftCorner, g.RightCorner
	t := g.Params.SnakeThickness
	returnX := o.X + g.PadsGap + t

	s := Snake{
		Entry: [4]geom.Point{
			o,
			geom.Pt(o.X, lc.Y),
			lc,
			geom.Pt(lc.X, g.TopRail),
		},
		Exit: [4]geom.Point{
			rc,
			geom.Pt(rc.X, lc.Y),
			geom.Pt(returnX, lc.Y),
			geom.Pt(returnX, o.Y),
		},
		Width: t,
	}

	s.Teeth = make([]Tooth, g.Params.NumberOfLoops)
	for i := range s.Teeth {
		x := lc.X + float64(2*(i+1)-1)*g.LoopGap
		s.Teeth[i] = Tooth{
			geom.Pt(x, g.TopRail),
			geom.Pt(x, g.BottomRail),
			geom.Pt(x+g.LoopGap, g.BottomRail),
			geom.Pt(x+g.LoopGap, g.TopRail),
		}
	}
	return s
}

// Points returns the full open polyline: entry, every tooth, exit.
func (s Snake) Points() geom.Path {
	teeth := make(geom.Path, 0, 4*len(s.Teeth))
	for _, tooth := range s.Teeth {
		teeth = append(teeth, tooth[:]...)
	}
	return geom.Concat(s.Entry[:], teeth, s.Exit[:])
}

// Len returns the number of points in the composed polyline.
func (s Snake) Len() int { return len(s.Entry) + 4*len(s.Teeth) + len(s.Exit) }
