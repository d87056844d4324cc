package jellyfish

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/aquarium/verlet"
)

func outerBounds(t *testing.T, r *Rib) (float64, float64) {
	t.Helper()
	b, ok := r.Band(BandOuter)
	require.True(t, ok)
	return b.Constraint.(*verlet.DistanceConstraint).Bounds()
}

func TestModulateOuterBounds(t *testing.T) {
	b := Build()
	rib := b.Ribs[10]

	Modulate(b.Ribs, 0, Segments)
	lo, hi := outerBounds(t, rib)
	rest := 2 * math.Pi * rib.Radius / Segments
	assert.InDelta(t, rest*0.9, lo, 1e-12)
	assert.InDelta(t, rest, hi, 1e-12)

	Modulate(b.Ribs, 1, Segments)
	lo, hi = outerBounds(t, rib)
	grown := 2 * math.Pi * (rib.Radius + rib.YParam*RadiusOffset) / Segments
	assert.InDelta(t, grown*0.9, lo, 1e-12)
	assert.InDelta(t, grown, hi, 1e-12)
	assert.InDelta(t, 2*math.Pi*rib.YParam*RadiusOffset/Segments, hi-rest, 1e-12)
}

func TestModulateTopRibIsStill(t *testing.T) {
	b := Build()
	top := b.Ribs[0]
	require.Equal(t, 0.0, top.YParam)

	Modulate(b.Ribs, 0, Segments)
	lo0, hi0 := outerBounds(t, top)
	Modulate(b.Ribs, 1, Segments)
	lo1, hi1 := outerBounds(t, top)
	assert.Equal(t, lo0, lo1)
	assert.Equal(t, hi0, hi1)
}

func TestModulateTailUsesFlare(t *testing.T) {
	b := Build()
	rib := b.TailRibs[7]
	band, ok := rib.Band(BandOuter)
	require.True(t, ok)
	assert.Greater(t, band.Radius, rib.Radius)

	Modulate(b.TailRibs, 0.5, Segments)
	_, hi := outerBounds(t, rib)
	want := 2 * math.Pi * (band.Radius + rib.YParam*0.5*RadiusOffset) / Segments
	assert.InDelta(t, want, hi, 1e-12)
}

func TestModulateInnerAndSpine(t *testing.T) {
	b := Build()
	rib := b.Ribs[len(b.Ribs)-1]
	Modulate(b.Ribs, 1, Segments)
	r := rib.Radius + rib.YParam*RadiusOffset

	inner, _ := rib.Band(BandInner)
	lo, hi := inner.Constraint.(*verlet.DistanceConstraint).Bounds()
	assert.InDelta(t, 2*math.Pi*r/3*0.8, lo, 1e-12)
	assert.InDelta(t, 2*math.Pi*r/3, hi, 1e-12)

	spine, ok := rib.Band(BandSpine)
	require.True(t, ok)
	lo, hi = spine.Constraint.(*verlet.DistanceConstraint).Bounds()
	assert.InDelta(t, r*0.8, lo, 1e-12)
	assert.InDelta(t, r, hi, 1e-12)
}

func TestModulateKeepsLinks(t *testing.T) {
	b := Build()
	band, _ := b.Ribs[5].Band(BandOuter)
	dc := band.Constraint.(*verlet.DistanceConstraint)
	before := dc.Indices()
	for _, phase := range []float64{0, 0.3, 1} {
		Modulate(b.Ribs, phase, Segments)
	}
	assert.Equal(t, before, dc.Indices())
}

func TestModulatedBoundsStayOrdered(t *testing.T) {
	b := Build()
	all := append(append([]*Rib{}, b.Ribs...), b.TailRibs...)
	for _, phase := range []float64{0, 0.25, 0.5, 0.75, 1} {
		Modulate(all, phase, Segments)
		for _, r := range all {
			for _, band := range r.Bands {
				lo, hi := band.Constraint.(*verlet.DistanceConstraint).Bounds()
				assert.LessOrEqual(t, lo, hi, "%s band at phase %v", band.Kind, phase)
			}
		}
	}
}
