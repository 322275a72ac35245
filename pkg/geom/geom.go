// Package geom provides the planar primitives shared by the layout builders
// and the output sinks.
//
// All coordinates are in millimeters with the Y axis pointing up, matching
// the convention of mask drawing formats such as DXF. Sinks that use a
// Y-down coordinate system (SVG) are responsible for flipping.
package geom

import "math"

// Point is a position in the drawing plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Near reports whether p and q are within tol of each other on both axes.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Path is an ordered point sequence. A path whose first and last points are
// equal describes a closed outline; otherwise it is an open polyline.
type Path []Point

// Closed reports whether the path starts and ends on the same point.
func (p Path) Closed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// Length returns the summed length of all segments.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += math.Hypot(p[i].X-p[i-1].X, p[i].Y-p[i-1].Y)
	}
	return total
}

// Bounds returns the smallest axis-aligned rectangle containing every point.
// An empty path yields the zero Rect.
func (p Path) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, pt := range p[1:] {
		r = r.Expand(pt)
	}
	return r
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Reflect mirrors every point of p about the vertical line x = axisX,
// mapping (x, y) to (2*axisX - x, y). The input is not modified and the
// point order is preserved, so Reflect(Reflect(p, a), a) reproduces p.
func Reflect(p Path, axisX float64) Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[i] = Point{X: 2*axisX - pt.X, Y: pt.Y}
	}
	return out
}

// Concat joins paths end to end into a new path.
func Concat(parts ...Path) Path {
	n := 0
	for _, part := range parts {
		n += len(part)
	}
	out := make(Path, 0, n)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Expand grows r to include p.
func (r Rect) Expand(p Point) Rect {
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return r.Expand(o.Min).Expand(o.Max)
}

// Inset shrinks r by d on every side; a negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{Min: r.Min.Add(d, d), Max: r.Max.Add(-d, -d)}
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// SameOutline reports whether two closed paths trace the same polygon,
// allowing a different starting vertex and opposite winding. Points are
// compared with tolerance tol.
func SameOutline(a, b Path, tol float64) bool {
	if !a.Closed() || !b.Closed() || len(a) != len(b) {
		return false
	}
	ra, rb := a[:len(a)-1], b[:len(b)-1]
	n := len(ra)
	for shift := 0; shift < n; shift++ {
		if ringMatch(ra, rb, shift, 1, tol) || ringMatch(ra, rb, shift, -1, tol) {
			return true
		}
	}
	return false
}

func ringMatch(a, b Path, shift, dir int, tol float64) bool {
	n := len(a)
	for i := range a {
		j := ((shift+dir*i)%n + n) % n
		if !a[i].Near(b[j], tol) {
			return false
		}
	}
	return true
}
