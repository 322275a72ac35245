package meander

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/geom"
)

const tol = 1e-9

func withLoops(n int) Params {
	p := DefaultParams()
	p.NumberOfLoops = n
	return p
}

func TestDeriveDefaults(t *testing.T) {
	g := Derive(DefaultParams())

	assert.InDelta(t, 5.5, g.Width, tol)
	assert.InDelta(t, 0.33, g.PadsGap, tol)
	assert.InDelta(t, 2.33, g.PadsGroup, tol)
	assert.InDelta(t, 4.99, g.PadsTotal, tol)
	assert.InDelta(t, 0.255, g.PadsOriginX, tol)
	assert.InDelta(t, 2.5825, g.SnakeOrigin.X, tol)
	assert.InDelta(t, 1.0, g.SnakeOrigin.Y, tol)
	assert.InDelta(t, 2.585, g.SnakePadsExtent, tol)
	assert.InDelta(t, 0.0025, g.LeftCorner.X, tol)
	assert.InDelta(t, 1.5, g.LeftCorner.Y, tol)
	assert.InDelta(t, 5.4975, g.RightCorner.X, tol)
	assert.InDelta(t, 5.4975, g.RightCorner.Y, tol)
	assert.InDelta(t, 5.4975, g.TopRail, tol)
	assert.InDelta(t, 2.0, g.BottomRail, tol)
	assert.InDelta(t, 2.25, g.SubstrateShift.X, tol)
	assert.InDelta(t, 1.7, g.SubstrateShift.Y, tol)
	assert.InDelta(t, 2.75, g.MirrorAxis, tol)
	assert.InDelta(t, g.Width/2, g.MirrorAxis, tol)
}

func TestDefaultLoopGap(t *testing.T) {
	g, err := Resolve(DefaultParams())
	require.NoError(t, err)

	assert.InEpsilon(t, 0.0137032419, g.LoopGap, 1e-7)
}

func TestResolveValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative loops", func(p *Params) { p.NumberOfLoops = -1 }},
		{"zero substrate", func(p *Params) { p.SubstrateSize = 0 }},
		{"negative height", func(p *Params) { p.Height = -5.5 }},
		{"zero pad", func(p *Params) { p.PadSize = 0 }},
		{"zero neck", func(p *Params) { p.PadsNeckSize = 0 }},
		{"neck as tall as pad", func(p *Params) { p.PadsNeckSize = p.PadSize }},
		{"zero thickness", func(p *Params) { p.SnakeThickness = 0 }},
		{"negative margin", func(p *Params) { p.SnakeLoopMargin = -0.1 }},
		{"zero pads offset", func(p *Params) { p.SnakePadsOffset = 0 }},
		{"thickness fills width", func(p *Params) { p.SnakeThickness = p.Height }},
		{"pads wider than height", func(p *Params) { p.PadSize = 2 }},
		{"substrate smaller than height", func(p *Params) { p.SubstrateSize = 5 }},
		{"teeth without height", func(p *Params) { p.SnakeLoopMargin = 4 }},
		{"overlapping teeth", func(p *Params) { p.NumberOfLoops = 1000 }},
		{"huge loop count", func(p *Params) { p.NumberOfLoops = 1 << 40 }},
		{"max int loops", func(p *Params) { p.NumberOfLoops = math.MaxInt }},
		{"infinite height", func(p *Params) { p.Height, p.SubstrateSize = math.Inf(1), math.Inf(1) }},
		{"infinite thickness", func(p *Params) { p.SnakeThickness = math.Inf(1) }},
		{"nan pad", func(p *Params) { p.PadSize = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			_, err := Resolve(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "got %v", err)
		})
	}
}

func TestResolveReportsAllViolations(t *testing.T) {
	p := DefaultParams()
	p.NumberOfLoops = -3
	p.PadSize = 0
	p.SnakeThickness = -1

	_, err := Resolve(p)
	require.Error(t, err)

	msg := errors.UserMessage(err)
	assert.Contains(t, msg, "number_of_loops")
	assert.Contains(t, msg, "pad_size")
	assert.Contains(t, msg, "snake_thickness")
}

func TestResolveAcceptsZeroLoops(t *testing.T) {
	g, err := Resolve(withLoops(0))
	require.NoError(t, err)
	assert.InDelta(t, 5.495, g.LoopGap, tol)
}

func TestResolveLoopCapacity(t *testing.T) {
	// default width 5.5 and thickness 0.005 leave room for 548 loops
	g, err := Resolve(withLoops(548))
	require.NoError(t, err)
	assert.Greater(t, g.LoopGap, g.Params.SnakeThickness)

	_, err = Resolve(withLoops(550))
	require.Error(t, err)
	assert.Contains(t, errors.UserMessage(err), "loop gap")
}

func TestSnakePointCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 200, 548} {
		g, err := Resolve(withLoops(n))
		require.NoError(t, err, "loops=%d", n)

		s := NewSnake(g)
		assert.Len(t, s.Teeth, n)
		assert.Len(t, s.Points(), 8+4*n, "loops=%d", n)
		assert.Equal(t, 8+4*n, s.Len())
	}
}

func TestSnakeZeroLoopsIsStubs(t *testing.T) {
	s := NewSnake(Derive(withLoops(0)))

	want := geom.Concat(geom.Path(s.Entry[:]), geom.Path(s.Exit[:]))
	assert.Equal(t, want, s.Points())
	assert.False(t, s.Points().Closed())
}

func TestSnakeStubs(t *testing.T) {
	g := Derive(DefaultParams())
	s := NewSnake(g)

	assert.Equal(t, g.SnakeOrigin, s.Entry[0])
	assert.Equal(t, geom.Pt(g.SnakeOrigin.X, g.LeftCorner.Y), s.Entry[1])
	assert.Equal(t, g.LeftCorner, s.Entry[2])
	assert.Equal(t, geom.Pt(g.LeftCorner.X, g.TopRail), s.Entry[3])

	assert.Equal(t, g.RightCorner, s.Exit[0])
	assert.InDelta(t, 2.9175, s.Exit[2].X, tol)
	assert.InDelta(t, 1.5, s.Exit[2].Y, tol)
	assert.InDelta(t, 2.9175, s.Exit[3].X, tol)
	assert.InDelta(t, 1.0, s.Exit[3].Y, tol)
	assert.Equal(t, g.Params.SnakeThickness, s.Width)
}

func TestSnakeTeeth(t *testing.T) {
	g := Derive(withLoops(25))
	s := NewSnake(g)

	for i, tooth := range s.Teeth {
		wantX := g.LeftCorner.X + float64(2*i+1)*g.LoopGap
		assert.InDelta(t, wantX, tooth[0].X, tol, "tooth %d", i)
		assert.Equal(t, g.TopRail, tooth[0].Y)
		assert.Equal(t, g.BottomRail, tooth[1].Y)
		assert.Equal(t, g.BottomRail, tooth[2].Y)
		assert.Equal(t, g.TopRail, tooth[3].Y)
		assert.InDelta(t, g.LoopGap, tooth[2].X-tooth[1].X, tol)
		assert.InDelta(t, g.ToothHeight(), tooth[0].Y-tooth[1].Y, tol)

		if i > 0 {
			// consecutive teeth are one gap apart along the top rail
			prev := s.Teeth[i-1]
			assert.InDelta(t, g.LoopGap, tooth[0].X-prev[3].X, tol)
		}
	}

	last := s.Teeth[len(s.Teeth)-1]
	assert.Less(t, last[3].X, g.RightCorner.X)
	assert.InDelta(t, g.RightCorner.X, last[3].X+g.LoopGap, tol)
}

func TestPadGroupNeck(t *testing.T) {
	g := Derive(DefaultParams())
	pads := NewPadGroup(g, geom.Pt(0, 0))
	outline := pads.Outline()

	require.Len(t, outline, 9)
	assert.True(t, outline.Closed())
	assert.InDelta(t, 0.8, pads.NeckLeft.Y, tol)
	assert.InDelta(t, 0.8, pads.NeckRight.Y, tol)
	assert.InDelta(t, 1.0, pads.NeckLeft.X, tol)
	assert.InDelta(t, 1.33, pads.NeckRight.X, tol)
	assert.InDelta(t, 2.33, pads.TopRight.X, tol)

	shifted := NewPadGroup(g, geom.Pt(3, 2))
	assert.InDelta(t, 2.8, shifted.NeckLeft.Y, tol)
}

func TestPadPlacement(t *testing.T) {
	g := Derive(DefaultParams())
	left, right := LeftPads(g), RightPads(g)

	assert.InDelta(t, 0.255, left.Origin.X, tol)
	assert.Zero(t, left.Origin.Y)
	assert.InDelta(t, 2.915, right.Origin.X, tol)
	assert.InDelta(t, g.PadsGap, right.Origin.X-left.BottomRight.X, tol)
}

func TestRightPadsMirrorLeftOutline(t *testing.T) {
	for _, p := range []Params{DefaultParams(), withLoops(3)} {
		p.PadSize = 1.1
		p.PadsNeckSize = 0.45
		g, err := Resolve(p)
		require.NoError(t, err)

		mirrored := geom.Reflect(LeftPads(g).Outline(), g.MirrorAxis)
		right := RightPads(g).Outline()

		assert.Len(t, right, len(mirrored))
		assert.True(t, geom.SameOutline(mirrored, right, tol))
	}
}

func TestLeftLeadDefaults(t *testing.T) {
	g := Derive(DefaultParams())
	s := NewSnake(g)
	lead := LeftLead(g, LeftPads(g), s.Entry)

	want := geom.Path{
		geom.Pt(1.585, 0),
		geom.Pt(2.585, 0),
		geom.Pt(2.5825, 1.7),
		geom.Pt(0.2025, 1.7),
		geom.Pt(0.0125, 1.9),
		geom.Pt(-0.0075, 1.9),
		geom.Pt(-0.0075, 1.5),
		geom.Pt(2.3825, 1.5),
		geom.Pt(2.3825, 1.0),
		geom.Pt(1.585, 1.0),
		geom.Pt(1.585, 0),
	}
	require.Len(t, lead, len(want))
	for i := range want {
		assert.True(t, want[i].Near(lead[i], tol), "point %d: want %v got %v", i, want[i], lead[i])
	}
	assert.True(t, lead.Closed())
}

func TestRightLeadIsMirror(t *testing.T) {
	g := Derive(DefaultParams())
	left := LeftLead(g, LeftPads(g), NewSnake(g).Entry)
	right := RightLead(g, left)

	// the axis sits half a pad gap right of the lead's outer pad corner
	axis := left[1].X + g.PadsGap/2
	assert.Equal(t, geom.Reflect(left, axis), right)

	back := geom.Reflect(right, g.MirrorAxis)
	require.Len(t, back, len(left))
	for i := range left {
		assert.True(t, left[i].Near(back[i], tol))
	}
}

func TestSubstrate(t *testing.T) {
	g := Derive(DefaultParams())
	s := Substrate(g)

	require.Len(t, s, 5)
	assert.True(t, s.Closed())
	assert.Equal(t, s[0], s[len(s)-1])
	assert.InDelta(t, -2.25, s[0].X, tol)
	assert.InDelta(t, -1.7, s[0].Y, tol)
	assert.InDelta(t, 10.0, s.Bounds().Width(), tol)
	assert.InDelta(t, 10.0, s.Bounds().Height(), tol)
}
