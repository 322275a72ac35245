package sink

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/meander/pkg/geom"
	"github.com/matzehuels/meander/pkg/meander"
)

// DXF accumulates layers and polylines and writes them as an ASCII DXF
// (AutoCAD R12) document on Save. It implements [meander.Sink].
// Coordinates are millimeters; R12 has no header variable to declare units.
//
// The output contains no timestamps or generated handles, so identical
// input always produces identical bytes.
type DXF struct {
	w      io.Writer
	layers []dxfLayer
	index  map[string]bool
	polys  []dxfPolyline
	bounds geom.Rect
	saved  bool
}

type dxfLayer struct {
	name  string
	color int
}

type dxfPolyline struct {
	layer  string
	points geom.Path
	width  float64
}

// NewDXF returns a DXF sink that writes to w when saved.
func NewDXF(w io.Writer) *DXF {
	return &DXF{w: w, index: make(map[string]bool)}
}

// AddLayer declares a layer with an AutoCAD Color Index.
func (d *DXF) AddLayer(name string, color int) error {
	if name == "" {
		return fmt.Errorf("dxf: empty layer name")
	}
	if d.index[name] {
		return fmt.Errorf("dxf: duplicate layer %q", name)
	}
	if color < 1 || color > 255 {
		return fmt.Errorf("dxf: layer %q: color %d out of range 1-255", name, color)
	}
	d.index[name] = true
	d.layers = append(d.layers, dxfLayer{name: name, color: color})
	return nil
}

// AddPolyline appends a polyline on a previously declared layer. A non-zero
// width is written as the constant start and end width of every segment.
func (d *DXF) AddPolyline(points geom.Path, layer string, width float64) error {
	if !d.index[layer] {
		return fmt.Errorf("dxf: polyline on undeclared layer %q", layer)
	}
	if len(points) < 2 {
		return fmt.Errorf("dxf: polyline on %s needs at least 2 points, got %d", layer, len(points))
	}
	if width < 0 {
		return fmt.Errorf("dxf: negative width %g", width)
	}
	if len(d.polys) == 0 {
		d.bounds = points.Bounds()
	} else {
		d.bounds = d.bounds.Union(points.Bounds())
	}
	d.polys = append(d.polys, dxfPolyline{layer: layer, points: points.Clone(), width: width})
	return nil
}

// Save writes the document. It may be called once.
func (d *DXF) Save() error {
	if d.saved {
		return fmt.Errorf("dxf: already saved")
	}
	d.saved = true

	bw := bufio.NewWriter(d.w)
	out := &dxfWriter{w: bw}

	d.writeHeader(out)
	d.writeTables(out)
	d.writeEntities(out)
	out.pair(0, "EOF")

	if out.err != nil {
		return out.err
	}
	return bw.Flush()
}

func (d *DXF) writeHeader(out *dxfWriter) {
	out.section("HEADER")
	out.pair(9, "$ACADVER")
	out.pair(1, "AC1009")
	out.pair(9, "$EXTMIN")
	out.point(d.bounds.Min)
	out.pair(9, "$EXTMAX")
	out.point(d.bounds.Max)
	out.pair(0, "ENDSEC")
}

func (d *DXF) writeTables(out *dxfWriter) {
	out.section("TABLES")

	out.pair(0, "TABLE")
	out.pair(2, "LTYPE")
	out.pair(70, "1")
	out.pair(0, "LTYPE")
	out.pair(2, "CONTINUOUS")
	out.pair(70, "0")
	out.pair(3, "Solid line")
	out.pair(72, "65")
	out.pair(73, "0")
	out.pair(40, "0.0")
	out.pair(0, "ENDTAB")

	out.pair(0, "TABLE")
	out.pair(2, "LAYER")
	out.pair(70, strconv.Itoa(len(d.layers)))
	for _, l := range d.layers {
		out.pair(0, "LAYER")
		out.pair(2, l.name)
		out.pair(70, "0")
		out.pair(62, strconv.Itoa(l.color))
		out.pair(6, "CONTINUOUS")
	}
	out.pair(0, "ENDTAB")

	out.pair(0, "ENDSEC")
}

func (d *DXF) writeEntities(out *dxfWriter) {
	out.section("ENTITIES")
	for _, p := range d.polys {
		out.pair(0, "POLYLINE")
		out.pair(8, p.layer)
		out.pair(66, "1")
		out.point(geom.Point{})
		out.pair(70, "0")
		if p.width > 0 {
			out.pair(40, formatFloat(p.width))
			out.pair(41, formatFloat(p.width))
		}
		for _, v := range p.points {
			out.pair(0, "VERTEX")
			out.pair(8, p.layer)
			out.point(v)
		}
		out.pair(0, "SEQEND")
		out.pair(8, p.layer)
	}
	out.pair(0, "ENDSEC")
}

// dxfWriter emits group code / value pairs and keeps the first write error.
type dxfWriter struct {
	w   io.Writer
	err error
}

func (o *dxfWriter) pair(code int, value string) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, "%3d\n%s\n", code, value)
}

func (o *dxfWriter) point(p geom.Point) {
	o.pair(10, formatFloat(p.X))
	o.pair(20, formatFloat(p.Y))
	o.pair(30, "0.0")
}

func (o *dxfWriter) section(name string) {
	o.pair(0, "SECTION")
	o.pair(2, name)
}

// formatFloat renders v with the shortest representation that round-trips,
// always with a decimal point and never as negative zero.
func formatFloat(v float64) string {
	if v == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}

// RenderDXF emits d into an in-memory DXF document.
func RenderDXF(d meander.Drawing) ([]byte, error) {
	var buf bytes.Buffer
	if err := meander.Emit(d, NewDXF(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
