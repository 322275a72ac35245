// Package render provides format conversion shared by the drawing sinks.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(drawing)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// The sinks themselves live in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/meander/pkg/render/sink
package render
