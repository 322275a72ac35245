// Package meander computes the mask geometry of a meander (serpentine)
// conductive trace on a square substrate.
//
// # Overview
//
// A drawing is derived from a handful of physical sizes ([Params]):
//
//  1. [Resolve] validates the parameters and derives every constant
//     ([Geometry]) the builders need
//  2. [Substrate] outlines the square carrier
//  3. [NewPadGroup] lays out a pair of bond pads joined by a necked bridge
//  4. [NewSnake] folds the trace into NumberOfLoops rectangular teeth
//  5. [LeftLead] routes the lead from the left pads to the trace, and
//     [RightLead] mirrors it to the right side
//  6. [Assemble] collects the outlines into a layered [Drawing]
//
// [Emit] hands a drawing to any [Sink]; the sink package provides DXF, SVG
// and JSON implementations.
//
// # Symmetry
//
// Right-side leads are never computed independently: they are the left lead
// reflected about [Geometry.MirrorAxis], so the two sides cannot drift apart.
//
// # Usage
//
//	d, err := meander.Generate(meander.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.Geometry.LoopGap, d.TraceLength())
package meander
