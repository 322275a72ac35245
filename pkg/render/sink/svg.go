package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/meander/pkg/meander"
)

// aciColors maps the AutoCAD Color Index values used by the layers to RGB.
var aciColors = map[int]string{
	1: "#ff0000",
	2: "#ffff00",
	3: "#00ff00",
	4: "#00ffff",
	5: "#0000ff",
	6: "#ff00ff",
	7: "#ffffff",
}

const (
	defaultSVGScale      = 80.0 // pixels per millimeter
	defaultSVGMargin     = 0.5  // millimeters around the drawing bounds
	defaultSVGBackground = "#1e1e1e"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	margin     float64
	background string
	hidden     map[meander.Layer]bool
}

// WithScale sets the output size in pixels per millimeter.
func WithScale(pxPerMM float64) SVGOption { return func(r *svgRenderer) { r.scale = pxPerMM } }

// WithMargin sets the blank border around the drawing in millimeters.
func WithMargin(mm float64) SVGOption { return func(r *svgRenderer) { r.margin = mm } }

// WithBackground sets the fill behind the drawing; empty means transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutLayer omits every entity on l.
func WithoutLayer(l meander.Layer) SVGOption {
	return func(r *svgRenderer) { r.hidden[l] = true }
}

// RenderSVG renders a preview of d. Drawing coordinates are Y-up; the
// content group flips them into SVG's Y-down space. The meander is stroked
// at its physical width, outlines as one-pixel hairlines.
func RenderSVG(d meander.Drawing, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	b := d.Bounds.Inset(-r.margin)
	w, h := b.Width(), b.Height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		svgNum(b.Min.X), svgNum(-b.Max.Y), svgNum(w), svgNum(h), w*r.scale, h*r.scale)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			svgNum(b.Min.X), svgNum(-b.Max.Y), svgNum(w), svgNum(h), r.background)
	}

	buf.WriteString(`  <g transform="scale(1,-1)" fill="none" stroke-linejoin="miter">` + "\n")
	for _, l := range d.Layers {
		if r.hidden[l] {
			continue
		}
		fmt.Fprintf(&buf, `    <g id="layer-%s" stroke="%s">`+"\n", l.Name(), aciColor(l.Color()))
		for _, e := range d.Entities {
			if e.Layer != l {
				continue
			}
			renderPolyline(&buf, e)
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		scale:      defaultSVGScale,
		margin:     defaultSVGMargin,
		background: defaultSVGBackground,
		hidden:     make(map[meander.Layer]bool),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderPolyline(buf *bytes.Buffer, e meander.Entity) {
	pts := make([]string, len(e.Points))
	for i, p := range e.Points {
		pts[i] = svgNum(p.X) + "," + svgNum(p.Y)
	}
	stroke := `stroke-width="1" vector-effect="non-scaling-stroke"`
	if e.Width > 0 {
		stroke = fmt.Sprintf(`stroke-width="%s"`, svgNum(e.Width))
	}
	fmt.Fprintf(buf, `      <polyline id="%s" %s points="%s"/>`+"\n",
		e.Name, stroke, strings.Join(pts, " "))
}

func aciColor(index int) string {
	if c, ok := aciColors[index]; ok {
		return c
	}
	return aciColors[7]
}

func svgNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
