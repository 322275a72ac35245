package sink

import (
	"encoding/json"

	"github.com/matzehuels/meander/pkg/geom"
	"github.com/matzehuels/meander/pkg/meander"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	omitPoints bool
}

// WithoutPoints drops the vertex lists and keeps only counts, which keeps
// summaries of large meanders small.
func WithoutPoints() JSONOption { return func(r *jsonRenderer) { r.omitPoints = true } }

type jsonOutput struct {
	Params      meander.Params `json:"params"`
	Derived     jsonDerived    `json:"derived"`
	Bounds      geom.Rect      `json:"bounds"`
	Layers      []jsonLayer    `json:"layers"`
	Entities    []jsonEntity   `json:"entities"`
	TraceLength float64        `json:"trace_length"`
}

type jsonDerived struct {
	LoopGap     float64 `json:"loop_gap"`
	ToothHeight float64 `json:"tooth_height"`
	PadsGap     float64 `json:"pads_gap"`
	PadsGroup   float64 `json:"pads_group"`
	PadsTotal   float64 `json:"pads_total"`
	MirrorAxis  float64 `json:"mirror_axis"`
}

type jsonLayer struct {
	Name  string `json:"name"`
	Color int    `json:"color"`
}

type jsonEntity struct {
	Name       string       `json:"name"`
	Layer      string       `json:"layer"`
	Width      float64      `json:"width,omitempty"`
	Closed     bool         `json:"closed"`
	PointCount int          `json:"point_count"`
	Points     [][2]float64 `json:"points,omitempty"`
}

// RenderJSON exports the drawing, its parameters and the derived constants
// as a pretty-printed JSON document for external tooling.
func RenderJSON(d meander.Drawing, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	g := d.Geometry
	out := jsonOutput{
		Params: g.Params,
		Derived: jsonDerived{
			LoopGap:     g.LoopGap,
			ToothHeight: g.ToothHeight(),
			PadsGap:     g.PadsGap,
			PadsGroup:   g.PadsGroup,
			PadsTotal:   g.PadsTotal,
			MirrorAxis:  g.MirrorAxis,
		},
		Bounds:      d.Bounds,
		Layers:      make([]jsonLayer, len(d.Layers)),
		Entities:    make([]jsonEntity, len(d.Entities)),
		TraceLength: d.TraceLength(),
	}
	for i, l := range d.Layers {
		out.Layers[i] = jsonLayer{Name: l.Name(), Color: l.Color()}
	}
	for i, e := range d.Entities {
		je := jsonEntity{
			Name:       e.Name,
			Layer:      e.Layer.Name(),
			Width:      e.Width,
			Closed:     e.Points.Closed(),
			PointCount: len(e.Points),
		}
		if !r.omitPoints {
			je.Points = make([][2]float64, len(e.Points))
			for j, p := range e.Points {
				je.Points[j] = [2]float64{p.X, p.Y}
			}
		}
		out.Entities[i] = je
	}

	return json.MarshalIndent(out, "", "  ")
}
