package meander

import (
	"fmt"

	"github.com/matzehuels/meander/pkg/geom"
)

// Entity names, in drawing order.
const (
	EntitySubstrate  = "substrate"
	EntitySnake      = "snake"
	EntityLeftPads   = "left_pads"
	EntityRightPads  = "right_pads"
	EntityLeftLeads  = "left_leads"
	EntityRightLeads = "right_leads"
)

// Entity is a polyline bound to a layer. Width is the constant stroke width
// of the polyline; zero means a hairline outline.
type Entity struct {
	Name   string    `json:"name"`
	Layer  Layer     `json:"layer"`
	Points geom.Path `json:"points"`
	Width  float64   `json:"width,omitempty"`
}

// Drawing is the complete, immutable output of one generator run.
type Drawing struct {
	Geometry Geometry  `json:"geometry"`
	Layers   []Layer   `json:"layers"`
	Entities []Entity  `json:"entities"`
	Bounds   geom.Rect `json:"bounds"`
}

// Entity returns the entity with the given name.
func (d Drawing) Entity(name string) (Entity, bool) {
	for _, e := range d.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// PointCount returns the total number of vertices across all entities.
func (d Drawing) PointCount() int {
	n := 0
	for _, e := range d.Entities {
		n += len(e.Points)
	}
	return n
}

// TraceLength returns the centerline length of the meander in millimeters.
func (d Drawing) TraceLength() float64 {
	e, _ := d.Entity(EntitySnake)
	return e.Points.Length()
}

// Generate validates p and assembles its drawing.
func Generate(p Params) (Drawing, error) {
	g, err := Resolve(p)
	if err != nil {
		return Drawing{}, err
	}
	return Assemble(g), nil
}

// Assemble builds every outline for g and collects them into a Drawing.
// The right lead is the mirror image of the left lead.
func Assemble(g Geometry) Drawing {
	left, right := LeftPads(g), RightPads(g)
	snake := NewSnake(g)
	leftLead := LeftLead(g, left, snake.Entry)

	d := Drawing{
		Geometry: g,
		Layers:   append([]Layer(nil), Layers[:]...),
		Entities: []Entity{
			{Name: EntitySubstrate, Layer: LayerSubstrate, Points: Substrate(g)},
			{Name: EntitySnake, Layer: LayerSnake, Points: snake.Points(), Width: snake.Width},
			{Name: EntityLeftPads, Layer: LayerPads, Points: left.Outline()},
			{Name: EntityRightPads, Layer: LayerPads, Points: right.Outline()},
			{Name: EntityLeftLeads, Layer: LayerSnake, Points: leftLead},
			{Name: EntityRightLeads, Layer: LayerSnake, Points: RightLead(g, leftLead)},
		},
	}
	for i, e := range d.Entities {
		if i == 0 {
			d.Bounds = e.Points.Bounds()
			continue
		}
		d.Bounds = d.Bounds.Union(e.Points.Bounds())
	}
	return d
}

// Sink receives the layers and polylines of a drawing and persists them.
type Sink interface {
	AddLayer(name string, color int) error
	AddPolyline(points geom.Path, layer string, width float64) error
	Save() error
}

// Emit registers every layer of d with s, adds every entity in order, and
// asks s to persist the result. It performs no geometric computation.
func Emit(d Drawing, s Sink) error {
	for _, l := range d.Layers {
		if err := s.AddLayer(l.Name(), l.Color()); err != nil {
			return fmt.Errorf("add layer %s: %w", l.Name(), err)
		}
	}
	for _, e := range d.Entities {
		if err := s.AddPolyline(e.Points, e.Layer.Name(), e.Width); err != nil {
			return fmt.Errorf("add %s: %w", e.Name, err)
		}
	}
	return s.Save()
}
