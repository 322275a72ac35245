package meander

import "fmt"

// Layer identifies one of the fixed mask layers of a drawing.
type Layer int

// The closed set of layers. The zero value is not a valid layer.
const (
	LayerSubstrate Layer = iota + 1
	LayerPads
	LayerSnake
)

// Layers lists every layer in registration order.
var Layers = [...]Layer{LayerSubstrate, LayerPads, LayerSnake}

var layerInfo = map[Layer]struct {
	name  string
	color int
}{
	LayerSubstrate: {"SUBSTRATE", 1},
	LayerPads:      {"PADS", 2},
	LayerSnake:     {"SNAKE", 7},
}

// Name returns the layer name written to the drawing.
func (l Layer) Name() string {
	if info, ok := layerInfo[l]; ok {
		return info.name
	}
	return fmt.Sprintf("LAYER(%d)", int(l))
}

// Color returns the AutoCAD Color Index of the layer.
func (l Layer) Color() int {
	return layerInfo[l].color
}

// Valid reports whether l is one of the defined layers.
func (l Layer) Valid() bool {
	_, ok := layerInfo[l]
	return ok
}

// String implements fmt.Stringer.
func (l Layer) String() string { return l.Name() }

// MarshalText encodes the layer by name.
func (l Layer) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid layer %d", int(l))
	}
	return []byte(l.Name()), nil
}

// UnmarshalText decodes a layer name.
func (l *Layer) UnmarshalText(b []byte) error {
	for _, cand := range Layers {
		if cand.Name() == string(b) {
			*l = cand
			return nil
		}
	}
	return fmt.Errorf("unknown layer %q", b)
}
