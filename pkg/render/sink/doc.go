// Package sink provides the output formats for meander drawings.
//
// # Overview
//
// A "sink" turns an assembled [meander.Drawing] into bytes:
//
//   - DXF: the mask format consumed by lithography tooling
//   - SVG: a scaled preview with layer colors
//   - JSON: parameters, derived constants and every vertex
//   - PDF, PNG: print and raster previews (require rsvg-convert)
//
// # DXF Output
//
// [DXF] implements [meander.Sink], so the drawing assembler drives it
// directly through [meander.Emit]:
//
//	f, err := os.Create("chip.dxf")
//	...
//	err = meander.Emit(drawing, sink.NewDXF(f))
//
// [RenderDXF] does the same into memory. Layers are written to the LAYER
// table with their color index, and every entity becomes a POLYLINE with
// its VERTEX list; the meander carries its conductor width as the
// polyline's start and end width.
//
// # Determinism
//
// No sink writes timestamps, random identifiers or map-ordered data, so
// rendering the same drawing twice yields identical bytes.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.ToPDF]: github.com/matzehuels/meander/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/meander/pkg/render.ToPNG
package sink
