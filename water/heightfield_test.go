package water

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldToSim(t *testing.T) {
	s := Surface{Origin: mgl64.Vec3{1, 5, -2}, Size: 10}
	tests := []struct {
		name  string
		world mgl64.Vec3
		want  mgl64.Vec2
	}{
		{"origin", mgl64.Vec3{1, 5, -2}, mgl64.Vec2{0, 0}},
		{"+x edge", mgl64.Vec3{6, 0.3, -2}, mgl64.Vec2{1, 0}},
		{"-z edge", mgl64.Vec3{1, 5, -7}, mgl64.Vec2{0, -1}},
		{"quarter", mgl64.Vec3{3.5, 9, 0.5}, mgl64.Vec2{0.5, 0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.WorldToSim(tc.world)
			assert.InDelta(t, tc.want.X(), got.X(), 1e-12)
			assert.InDelta(t, tc.want.Y(), got.Y(), 1e-12)

			back := s.SimToWorld(got)
			assert.InDelta(t, tc.world.X(), back.X(), 1e-12)
			assert.InDelta(t, tc.world.Z(), back.Z(), 1e-12)
		})
	}
	assert.True(t, s.Contains(mgl64.Vec3{5, 0, 2}))
	assert.False(t, s.Contains(mgl64.Vec3{7, 0, 0}))
}

func TestStillWaterStaysAtRest(t *testing.T) {
	h := New(Params{Resolution: 16, Propagation: 2, Damping: 0.985, RestHeight: 0.4, Spring: 0.006, DropGain: 1.5, Gradient: 1.5})
	for i := 0; i < 50; i++ {
		h.Step()
	}
	assert.InDelta(t, 0, h.MaxAmplitude(), 1e-6)
	c := h.Texture().At(3, 7)
	assert.InDelta(t, 0.4, c.Height, 1e-6)
	assert.InDelta(t, 0, c.GradX, 1e-6)
}

func TestAddDropRaisesCenterOnly(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 32
	h := New(p)
	h.AddDrop(0, 0, 0.1, 0.5)

	tex := h.Texture()
	center := tex.At(16, 16)
	corner := tex.At(0, 0)
	assert.Greater(t, center.Height, p.RestHeight)
	assert.Equal(t, p.RestHeight, corner.Height)
	assert.Greater(t, h.MaxAmplitude(), 0.3)
}

func TestRipplesSpreadAndDecay(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 48
	h := New(p)
	h.AddDrop(0, 0, 0.08, 0.5)
	start := h.MaxAmplitude()

	before := h.Texture().At(35, 24).Height
	for i := 0; i < 30; i++ {
		h.Step()
	}
	after := h.Texture().At(35, 24).Height
	assert.NotEqual(t, before, after, "ripple reaches neighbors")

	for i := 0; i < 1500; i++ {
		h.Step()
	}
	assert.Less(t, h.MaxAmplitude(), start*0.5)
}

func TestGradientsPointUphill(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 32
	h := New(p)
	h.AddDrop(0.5, 0, 0.2, 0.5)
	h.Step()

	tex := h.Texture()
	// The bump is centered near cell 24; cell 20 sits on its left flank.
	assert.Greater(t, tex.At(20, 16).GradX, float32(0))
	assert.Less(t, tex.At(28, 16).GradX, float32(0))
}

func TestSampleMatchesCellCenters(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 16
	h := New(p)
	h.AddDrop(-0.3, 0.2, 0.3, 0.8)
	h.Step()
	tex := h.Texture()

	for _, ij := range [][2]int{{0, 0}, {5, 9}, {15, 15}} {
		n := float64(tex.Resolution())
		sim := mgl64.Vec2{
			(float64(ij[0])+0.5)/n*2 - 1,
			(float64(ij[1])+0.5)/n*2 - 1,
		}
		want := tex.At(ij[0], ij[1])
		got := tex.Sample(sim)
		assert.InDelta(t, want.Height, got.Height, 1e-5)
		assert.InDelta(t, want.GradY, got.GradY, 1e-5)
	}
}

func TestTextureIsACopy(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 8
	h := New(p)
	tex := h.Texture()
	require.Len(t, tex.Heights(nil), 64)

	h.AddDrop(0, 0, 0.5, 1)
	assert.Equal(t, p.RestHeight, tex.At(4, 4).Height, "snapshot is unaffected by later passes")
	assert.Greater(t, h.Texture().At(4, 4).Height, p.RestHeight)
}

type countingDropper struct {
	drops [][4]float64
}

func (d *countingDropper) AddDrop(x, y, radius, strength float64) {
	d.drops = append(d.drops, [4]float64{x, y, radius, strength})
}

func TestRainInterval(t *testing.T) {
	r := &Rain{Interval: 0.8, Enabled: true}
	d := &countingDropper{}
	rng := rand.New(rand.NewSource(3))

	assert.False(t, r.Update(0.5, rng, d))
	assert.True(t, r.Update(0.81, rng, d))
	assert.False(t, r.Update(1.0, rng, d))
	assert.True(t, r.Update(1.7, rng, d))
	require.Len(t, d.drops, 2)
	for _, drop := range d.drops {
		assert.LessOrEqual(t, drop[0], 0.75)
		assert.GreaterOrEqual(t, drop[0], -0.75)
		assert.GreaterOrEqual(t, drop[2], 0.03)
		assert.Less(t, drop[2], 0.05)
	}

	r.Enabled = false
	assert.False(t, r.Update(10, rng, d))
}
