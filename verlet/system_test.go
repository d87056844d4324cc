package verlet

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesBuffer(t *testing.T) {
	buf := []float64{0, 1, 2, 3, 4, 5}
	s := New(buf, 2)
	buf[0] = 99

	require.Equal(t, 2, s.Count())
	assert.Equal(t, mgl64.Vec3{0, 1, 2}, s.Position(0))
	assert.Equal(t, mgl64.Vec3{}, s.Velocity(1))
	assert.Equal(t, 1.0, s.Weight(0))
}

func TestIntegrateAppliesForceAndKeepsVelocity(t *testing.T) {
	s := New([]float64{0, 0, 0}, 1)
	s.AddForce(NewDirectionalForce(mgl64.Vec3{0, -10, 0}))

	dt := 0.1
	s.AccumulateForces(dt)
	s.Integrate(dt)
	assert.InDelta(t, -0.1, s.Position(0).Y(), 1e-12)

	// Second step carries the implicit velocity plus another dt² kick.
	s.AccumulateForces(dt)
	s.Integrate(dt)
	assert.InDelta(t, -0.3, s.Position(0).Y(), 1e-12)
}

func TestRetentionScalesVelocity(t *testing.T) {
	s := New([]float64{0, 0, 0}, 1)
	s.SetPosition(0, mgl64.Vec3{1, 0, 0})
	s.positionsPrev[0] = 0
	s.Retention = 0.5

	s.AccumulateForces(1)
	s.Integrate(1)
	assert.InDelta(t, 1.5, s.Position(0).X(), 1e-12)
}

func TestWeightZeroIsImmobile(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5, 6}, 2)
	s.SetWeight(0, 0)
	s.AddForce(NewDirectionalForce(mgl64.Vec3{5, -9, 1}))
	s.AddConstraint(NewDistanceConstraint(10, 20, []int{0, 1}))

	forces := s.AccumulateForces(0.016)
	assert.Equal(t, []float64{0, 0, 0}, forces[0:3], "pinned particle receives no force")

	// Injected forces are ignored for pinned particles as well.
	forces[0] = 1000
	s.Integrate(0.016)
	s.SatisfyConstraints()

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, s.Position(0))
	assert.NotEqual(t, mgl64.Vec3{4, 5, 6}, s.Position(1))
}

func TestDistanceConstraintClampsIntoBounds(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		min, max float64
		want     float64
	}{
		{"too far", 4, 1, 2, 2},
		{"too close", 0.5, 1, 2, 1},
		{"inside", 1.5, 1, 2, 1.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New([]float64{0, 0, 0, tc.start, 0, 0}, 1)
			s.AddConstraint(NewDistanceConstraint(tc.min, tc.max, []int{0, 1}))
			s.SatisfyConstraints()

			d := s.Position(1).Sub(s.Position(0)).Len()
			assert.InDelta(t, tc.want, d, 1e-9)
			// Equal weights move both endpoints symmetrically.
			mid := s.Position(0).Add(s.Position(1)).Mul(0.5)
			assert.InDelta(t, tc.start/2, mid.X(), 1e-9)
		})
	}
}

func TestDistanceConstraintRespectsWeights(t *testing.T) {
	s := New([]float64{0, 0, 0, 4, 0, 0}, 1)
	s.SetWeight(0, 0)
	s.AddConstraint(NewDistanceConstraint(0, 2, []int{0, 1}))
	s.SatisfyConstraints()

	assert.Equal(t, mgl64.Vec3{0, 0, 0}, s.Position(0))
	assert.InDelta(t, 2, s.Position(1).X(), 1e-12)
}

func TestDistanceBoundsHoldOnChain(t *testing.T) {
	// A hanging chain pinned at the top under gravity stays close to its
	// link bounds frame after frame.
	const n = 12
	buf := make([]float64, 0, n*3)
	pairs := make([]int, 0, n*2)
	for i := 0; i < n; i++ {
		buf = append(buf, 0, -float64(i)*0.5, 0)
		if i > 0 {
			pairs = append(pairs, i-1, i)
		}
	}
	s := New(buf, 1)
	s.SetWeight(0, 0)
	s.AddPinConstraint(NewPointConstraint(mgl64.Vec3{}, 0))
	dc := NewDistanceConstraint(0.25, 0.5, pairs)
	s.AddConstraint(dc)
	s.AddForce(NewDirectionalForce(mgl64.Vec3{0, -9.8, 0}))

	for frame := 0; frame < 120; frame++ {
		s.AccumulateForces(1.0 / 60)
		s.Integrate(1.0 / 60)
		s.SatisfyConstraints()
		s.Damp(0.9)
		require.LessOrEqual(t, s.MaxViolation(), 0.05, "frame %d", frame)
	}
	assert.Equal(t, mgl64.Vec3{}, s.Position(0))
}

func TestPointConstraintOverridesWeight(t *testing.T) {
	s := New([]float64{3, 3, 3}, 1)
	s.AddPinConstraint(NewPointConstraint(mgl64.Vec3{1, 1, 1}, 0))
	s.SatisfyConstraints()
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, s.Position(0))
}

func TestAxisConstraintRemovesPerpendicularDrift(t *testing.T) {
	s := New([]float64{
		0, 10, 0, // axis a
		0, 0, 0, // axis b
		0.5, 4, -0.25, // drifted
	}, 1)
	s.SetWeight(0, 0)
	s.SetWeight(1, 0)
	s.AddConstraint(NewAxisConstraint(0, 1, []int{2}))
	s.SatisfyConstraints()

	p := s.Position(2)
	assert.InDelta(t, 0, p.X(), 1e-12)
	assert.InDelta(t, 4, p.Y(), 1e-12)
	assert.InDelta(t, 0, p.Z(), 1e-12)
}

func TestDampBlendsVelocityTowardZero(t *testing.T) {
	s := New([]float64{0, 0, 0}, 1)
	s.setPos(0, mgl64.Vec3{1, 0, 0})

	s.Damp(0.25)
	assert.InDelta(t, 0.25, s.Velocity(0).X(), 1e-12)
	assert.InDelta(t, 1, s.Position(0).X(), 1e-12, "damping never moves positions")
}

func TestSetDistanceRetunesWithoutRelinking(t *testing.T) {
	dc := NewDistanceConstraint(1, 2, []int{0, 1, 1, 2})
	before := dc.Indices()
	dc.SetDistance(3, 4)

	lo, hi := dc.Bounds()
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 4.0, hi)
	assert.Equal(t, before, dc.Indices())

	var tunable Tunable = dc
	assert.Equal(t, KindDistance, tunable.Kind())
}

func TestViewCopyTo(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5, 6}, 1)
	v := s.View()
	require.Equal(t, 2, v.Len())
	assert.Equal(t, mgl64.Vec3{4, 5, 6}, v.At(1))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, v.CopyTo(nil))
}
