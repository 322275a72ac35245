package meander

import (
	"math"

	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/geom"
)

// Default parameter values. All sizes are in millimeters.
const (
	DefaultFilename        = "Untitled.dxf"
	DefaultSubstrateSize   = 10.0
	DefaultHeight          = 5.5
	DefaultPadSize         = 1.0
	DefaultPadsNeckSize    = 0.2
	DefaultNumberOfLoops   = 200
	DefaultSnakeThickness  = 0.005 // 5 um
	DefaultSnakeLoopMargin = 0.5
	DefaultSnakePadsOffset = 0.5
)

// padsGapRatio is the gap between pad squares relative to the pad size.
const padsGapRatio = 0.33

// Params is the raw input bundle. All sizes are in millimeters.
type Params struct {
	Filename        string  `json:"filename,omitempty" toml:"filename"`
	SubstrateSize   float64 `json:"substrate_size" toml:"substrate_size"`
	Height          float64 `json:"height" toml:"height"`
	PadSize         float64 `json:"pad_size" toml:"pad_size"`
	PadsNeckSize    float64 `json:"pads_neck_size" toml:"pads_neck_size"`
	NumberOfLoops   int     `json:"number_of_loops" toml:"number_of_loops"`
	SnakeThickness  float64 `json:"snake_thickness" toml:"snake_thickness"`
	SnakeLoopMargin float64 `json:"snake_loop_margin" toml:"snake_loop_margin"`
	SnakePadsOffset float64 `json:"snake_pads_offset" toml:"snake_pads_offset"`
}

// DefaultParams returns the reference chip configuration.
func DefaultParams() Params {
	return Params{
		Filename:        DefaultFilename,
		SubstrateSize:   DefaultSubstrateSize,
		Height:          DefaultHeight,
		PadSize:         DefaultPadSize,
		PadsNeckSize:    DefaultPadsNeckSize,
		NumberOfLoops:   DefaultNumberOfLoops,
		SnakeThickness:  DefaultSnakeThickness,
		SnakeLoopMargin: DefaultSnakeLoopMargin,
		SnakePadsOffset: DefaultSnakePadsOffset,
	}
}

// Geometry holds every constant derived from Params. It is computed once
// and consumed read-only by the outline builders.
type Geometry struct {
	Params Params `json:"params"`

	// Width is the horizontal extent of the trace region (equal to Height).
	Width float64 `json:"width"`

	PadsGap     float64 `json:"pads_gap"`
	PadsGroup   float64 `json:"pads_group"`
	PadsTotal   float64 `json:"pads_total"`
	PadsOriginX float64 `json:"pads_origin_x"`

	// SnakeOrigin is where the trace leaves the left pad group.
	SnakeOrigin geom.Point `json:"snake_origin"`
	// SnakePadsExtent is the half width available on each side of the pads.
	SnakePadsExtent float64    `json:"snake_pads_extent"`
	LeftCorner      geom.Point `json:"left_corner"`
	RightCorner     geom.Point `json:"right_corner"`
	// TopRail is the Y of the centerline along the top edge of the trace.
	TopRail float64 `json:"top_rail"`
	// BottomRail is the Y where every tooth turns around.
	BottomRail float64 `json:"bottom_rail"`
	// LoopGap is the horizontal pitch of one tooth.
	LoopGap float64 `json:"loop_gap"`

	SubstrateShift geom.Point `json:"substrate_shift"`

	// MirrorAxis is the vertical line about which left-side leads are
	// reflected to obtain the right side.
	MirrorAxis float64 `json:"mirror_axis"`
}

// Derive computes the geometry constants without validating p. Degenerate
// inputs give degenerate (overlapping or inverted) geometry; use Resolve
// to reject them.
func Derive(p Params) Geometry {
	g := Geometry{Params: p}

	g.Width = p.Height
	yExtraShift := p.Height / p.SubstrateSize

	g.PadsGap = padsGapRatio * p.PadSize
	g.PadsGroup = 2*p.PadSize + g.PadsGap
	g.PadsTotal = 2*g.PadsGroup + g.PadsGap
	g.PadsOriginX = (g.Width - g.PadsTotal) / 2

	t := p.SnakeThickness
	g.SnakeOrigin = geom.Pt(g.PadsOriginX+g.PadsGroup-t/2, p.PadSize)
	g.SnakePadsExtent = (g.Width - g.PadsGap) / 2
	g.TopRail = p.Height - t/2
	g.LeftCorner = geom.Pt(
		g.SnakeOrigin.X-g.SnakePadsExtent+t,
		g.SnakeOrigin.Y+p.SnakePadsOffset,
	)
	g.RightCorner = geom.Pt(g.SnakeOrigin.X+g.SnakePadsExtent+g.PadsGap, g.TopRail)
	g.BottomRail = g.LeftCorner.Y + p.SnakeLoopMargin
	g.LoopGap = (g.Width - t) / (2*float64(p.NumberOfLoops) + 1)

	g.SubstrateShift = geom.Pt(
		(p.SubstrateSize-g.Width)/2,
		(p.SubstrateSize-p.Height)/2-yExtraShift,
	)

	g.MirrorAxis = g.PadsOriginX + g.PadsGroup + g.PadsGap/2
	return g
}

// Resolve validates p and derives its geometry. The returned error carries
// errors.ErrCodeInvalidParameter and lists every violated rule.
func Resolve(p Params) (Geometry, error) {
	if err := p.Validate(); err != nil {
		return Geometry{}, err
	}
	g := Derive(p)
	if err := g.validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Validate checks the raw inputs.
func (p Params) Validate() error {
	var v errors.Violations
	if p.NumberOfLoops < 0 {
		v.Addf("number_of_loops must not be negative, got %d", p.NumberOfLoops)
	}
	positive := []struct {
		name  string
		value float64
	}{
		{"substrate_size", p.SubstrateSize},
		{"height", p.Height},
		{"pad_size", p.PadSize},
		{"pads_neck_size", p.PadsNeckSize},
		{"snake_thickness", p.SnakeThickness},
		{"snake_loop_margin", p.SnakeLoopMargin},
		{"snake_pads_offset", p.SnakePadsOffset},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			v.Addf("%s must be positive and finite, got %g", f.name, f.value)
		}
	}
	if p.PadSize > 0 && p.PadsNeckSize >= p.PadSize {
		v.Addf("pads_neck_size (%g) must be smaller than pad_size (%g)", p.PadsNeckSize, p.PadSize)
	}
	if p.Height > 0 && p.SubstrateSize > 0 && p.SubstrateSize < p.Height {
		v.Addf("substrate_size (%g) must not be smaller than height (%g)", p.SubstrateSize, p.Height)
	}
	return v.Err(errors.ErrCodeInvalidParameter)
}

// validate checks constraints that only show up after derivation.
func (g Geometry) validate() error {
	var v errors.Violations
	// Adjacent conductors overlap unless the gap exceeds the trace width.
	if !(g.LoopGap > g.Params.SnakeThickness) {
		v.Addf("loop gap %g must exceed snake_thickness %g: %d loops do not fit in width %g",
			g.LoopGap, g.Params.SnakeThickness, g.Params.NumberOfLoops, g.Width)
	}
	if g.PadsTotal > g.Params.Height {
		v.Addf("pad block width %g exceeds height %g", g.PadsTotal, g.Params.Height)
	}
	if g.BottomRail >= g.TopRail {
		v.Addf("teeth have no height: bottom rail %g is not below top rail %g", g.BottomRail, g.TopRail)
	}
	return v.Err(errors.ErrCodeInvalidParameter)
}

// ToothHeight is the vertical extent of one tooth.
func (g Geometry) ToothHeight() float64 { return g.TopRail - g.BottomRail }
