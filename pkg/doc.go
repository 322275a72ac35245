// Package pkg holds the libraries behind the meander generator.
//
// # Overview
//
// meander computes the mask geometry of a folded conductive trace (the
// meander) connected to two necked bond-pad groups on a square substrate,
// and writes the result as layered vector outlines.
//
//  1. [geom] - points, paths, rectangles, and reflection
//  2. [meander] - parameter resolution and the outline builders
//  3. [render] - output sinks (DXF, SVG, JSON, PDF, PNG)
//  4. [pipeline] - generate → render → write, with caching
//  5. [cache], [config], [errors], [observability], [buildinfo] - supporting infrastructure
//
// # Data flow
//
//	Params (defaults ← TOML file ← flags or JSON body)
//	         ↓
//	    [meander] Resolve (derived constants, validation)
//	         ↓
//	    substrate, pads, meander → leads → mirror
//	         ↓
//	    [meander] Assemble → Drawing
//	         ↓
//	    [render/sink] DXF / SVG / JSON / PDF / PNG
//
// # Quick Start
//
//	d, err := meander.Generate(meander.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	dxf, err := sink.RenderDXF(d)
//
// [geom]: github.com/matzehuels/meander/pkg/geom
// [meander]: github.com/matzehuels/meander/pkg/meander
// [render]: github.com/matzehuels/meander/pkg/render
// [pipeline]: github.com/matzehuels/meander/pkg/pipeline
// [cache]: github.com/matzehuels/meander/pkg/cache
// [config]: github.com/matzehuels/meander/pkg/config
// [errors]: github.com/matzehuels/meander/pkg/errors
// [observability]: github.com/matzehuels/meander/pkg/observability
// [buildinfo]: github.com/matzehuels/meander/pkg/buildinfo
// [render/sink]: github.com/matzehuels/meander/pkg/render/sink
package pkg
