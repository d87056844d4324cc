package locomotion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same value; 0.5 zeroes every random offset.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

func newTestController(spawn Spawn) *Controller {
	return New(DefaultParams(), spawn, fixedRand(0.5))
}

func TestPulsePhaseShape(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"start", 0, 0},
		{"mid expansion", p.Period * p.ExpandRatio / 2, 0.5},
		{"fully expanded", p.Period * p.ExpandRatio, 1},
		{"mid contraction", p.Period * (p.ExpandRatio + (1-p.ExpandRatio)/2), 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, PulsePhase(tc.t, p.Period, p.ExpandRatio), 1e-6)
		})
	}
}

func TestPulsePhaseIsPeriodic(t *testing.T) {
	p := DefaultParams()
	for _, ts := range []float64{0.1, 0.7, 1.3, 2.0, 2.4, 11.05} {
		a := PulsePhase(ts, p.Period, p.ExpandRatio)
		b := PulsePhase(ts+p.Period, p.Period, p.ExpandRatio)
		assert.InDelta(t, a, b, 1e-5, "t=%v", ts)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.LessOrEqual(t, a, 1.0)
	}
}

func TestThrustOnlyWhileContracting(t *testing.T) {
	dt := 1.0 / 60

	c := newTestController(Spawn{Position: mgl64.Vec3{0, 1.5, 0}})
	c.prevPhase = 0.6
	c.propel(0.4, dt)
	assert.True(t, c.Contracting())
	assert.Greater(t, c.Velocity().Dot(c.Direction()), 0.0)

	c = newTestController(Spawn{Position: mgl64.Vec3{0, 1.5, 0}})
	c.prevPhase = 0.4
	c.propel(0.6, dt)
	assert.False(t, c.Contracting())
	assert.LessOrEqual(t, c.Velocity().Dot(c.Direction()), 0.0)
}

func TestSurfacingRoundTrip(t *testing.T) {
	spawn := Spawn{Position: mgl64.Vec3{0.5, 1.5, -0.5}}
	c := newTestController(spawn)

	var calls int
	var reached mgl64.Vec3
	c.OnSurface(func(p mgl64.Vec3) {
		calls++
		reached = p
	})
	c.Surface()
	require.Equal(t, Surfacing, c.State())

	for i := 0; i < 3000 && c.State() == Surfacing; i++ {
		c.Update(1.0 / 60)
	}

	require.Equal(t, 1, calls)
	assert.Equal(t, Swimming, c.State())
	assert.InDelta(t, DefaultParams().WorldSurfaceY, reached.Y(), 1e-12)
	assert.InDelta(t, spawn.Position.Y(), c.Position().Y(), 1e-9)
	assert.Equal(t, mgl64.Vec3{}, c.Velocity())
	assert.InDelta(t, 1, c.Direction().X(), 1e-12)

	for i := 0; i < 120; i++ {
		c.Update(1.0 / 60)
	}
	assert.Equal(t, 1, calls, "callback fires once per episode")
}

func TestNilSurfaceCallbackIsNoop(t *testing.T) {
	c := newTestController(Spawn{Position: mgl64.Vec3{0, 1.9, 0}})
	c.OnSurface(nil)
	c.Surface()
	assert.NotPanics(t, func() {
		for i := 0; i < 600; i++ {
			c.Update(1.0 / 60)
		}
	})
	assert.Equal(t, Swimming, c.State())
}

func TestBoundaryContainment(t *testing.T) {
	p := DefaultParams()
	starts := map[string]mgl64.Vec3{
		"+x":    {6, 2, 0},
		"-x":    {-6, 2, 0},
		"+z":    {0, 2, 6},
		"-z":    {0, 2, -6},
		"below": {0, -1, 0},
		"above": {0, 6, 0},
	}
	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			c := New(p, Spawn{Position: start}, rand.New(rand.NewSource(7)))
			for i := 0; i < 3000; i++ {
				c.Update(1.0 / 60)
				pos := c.Position()
				require.LessOrEqual(t, math.Abs(pos.X()), p.BoundsXZ+0.5, "frame %d", i)
				require.LessOrEqual(t, math.Abs(pos.Z()), p.BoundsXZ+0.5, "frame %d", i)
				require.GreaterOrEqual(t, pos.Y(), p.BoundsYMin-0.5, "frame %d", i)
				require.LessOrEqual(t, pos.Y(), p.BoundsYMax+0.5, "frame %d", i)
			}
		})
	}
}

func TestRepelPushesInward(t *testing.T) {
	c := newTestController(Spawn{Position: mgl64.Vec3{3.4, 2, 0}})
	c.contain(0.1)
	assert.Less(t, c.Velocity().X(), 0.0)

	c = newTestController(Spawn{Position: mgl64.Vec3{0, 0.5, 0}})
	c.contain(0.1)
	assert.Greater(t, c.Velocity().Y(), 0.0)
}

func TestOrientationFollowsSwimDirection(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl64.Vec3
	}{
		{"horizontal", mgl64.Vec3{0, 0, 1}},
		{"diagonal", mgl64.Vec3{1, 1, -1}.Normalize()},
		{"vertical", mgl64.Vec3{0, 1, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(Spawn{Position: mgl64.Vec3{0, 1.5, 0}})
			c.dir = tc.dir
			for i := 0; i < 2000; i++ {
				c.orient(1.0 / 30)
			}
			q := c.Orientation()
			require.True(t, c.Ready())
			assert.InDelta(t, 1, q.Len(), 1e-9)

			up := q.Rotate(mgl64.Vec3{0, 1, 0})
			assert.True(t, up.ApproxEqualThreshold(tc.dir, 1e-6), "up %v want %v", up, tc.dir)
			right := q.Rotate(mgl64.Vec3{1, 0, 0})
			assert.InDelta(t, 0, right.Y(), 1e-6, "no roll")
		})
	}
}

func TestReady(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		c    *Controller
		want bool
	}{
		{"spawned", newTestController(Spawn{Position: mgl64.Vec3{0, 1.5, 0}}), true},
		{"zero value", &Controller{}, false},
		{"no period", New(Params{}, Spawn{}, fixedRand(0.5)), false},
		{"nan spawn", newTestController(Spawn{Position: mgl64.Vec3{nan, 1, 0}}), false},
		{"infinite spawn", newTestController(Spawn{Position: mgl64.Vec3{0, math.Inf(1), 0}}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Ready())
		})
	}
}

func TestReadyDropsOnCorruptVelocity(t *testing.T) {
	c := newTestController(Spawn{Position: mgl64.Vec3{0, 1.5, 0}})
	require.True(t, c.Ready())
	c.vel = mgl64.Vec3{0, math.NaN(), 0}
	assert.False(t, c.Ready())
}

func TestClampDt(t *testing.T) {
	c := newTestController(Spawn{})
	assert.Equal(t, 0.0, c.ClampDt(math.NaN()))
	assert.Equal(t, 0.0, c.ClampDt(-1))
	assert.Equal(t, 0.01, c.ClampDt(0.01))
	assert.InDelta(t, 1.0/30, c.ClampDt(5), 1e-15)
}

func TestApplyImpulseSquashesPhase(t *testing.T) {
	c := newTestController(Spawn{Position: mgl64.Vec3{0, 1.5, 0}})
	c.ApplyImpulse(mgl64.Vec3{0, 1.5, -1})

	assert.InDelta(t, DefaultParams().ClickImpulse, c.Velocity().Z(), 1e-12)
	c.Update(1.0 / 60)
	assert.Equal(t, 0.0, c.DisplayPhase())

	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60)
	}
	assert.InDelta(t, c.Phase(), c.DisplayPhase(), 1e-3, "hit decays away")
}

func TestShortestAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0.5, 0.5},
		{-0.5, -0.5},
		{1.5 * math.Pi, -0.5 * math.Pi},
		{-1.5 * math.Pi, 0.5 * math.Pi},
		{4*math.Pi + 0.25, 0.25},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, shortestAngle(tc.in), 1e-12, "in=%v", tc.in)
	}
}
