package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewPerfCollector(window)
	p.now = clock.now
	return p, clock
}

// simFrame runs the headless phase sequence with fixed costs: 2ms of water,
// 6ms of swim for three jellies, 1ms of bubbles and 1ms of telemetry.
func simFrame(p *PerfCollector, clock *fakeClock) {
	p.BeginFrame()
	p.Enter(PhaseWater)
	clock.advance(2 * time.Millisecond)
	p.CountWaterPass(128 * 128)
	p.Enter(PhaseSwim)
	clock.advance(6 * time.Millisecond)
	p.CountSolver(3, 3*400, 3*2*900)
	p.Enter(PhaseBubbles)
	clock.advance(time.Millisecond)
	p.Enter(PhaseTelemetry)
	clock.advance(time.Millisecond)
	p.EndFrame()
}

func TestPhasesInFrameOrder(t *testing.T) {
	assert.Equal(t, [...]string{"water", "swim", "bubbles", "pick", "render", "telemetry"}, Phases)

	p, clock := newTestCollector(4)
	simFrame(p, clock)
	r := p.Report()
	for i, s := range r.Phases {
		assert.Equal(t, Phases[i], s.Name)
	}
}

func TestReportPhaseShares(t *testing.T) {
	p, clock := newTestCollector(8)
	for i := 0; i < 5; i++ {
		simFrame(p, clock)
	}

	r := p.Report()
	require.Equal(t, 5, r.Frames)
	assert.Equal(t, 10*time.Millisecond, r.AvgFrame)
	assert.Equal(t, 10*time.Millisecond, r.MaxFrame)

	assert.Equal(t, 2*time.Millisecond, r.Phase(PhaseWater).Avg)
	assert.InDelta(t, 20.0, r.Phase(PhaseWater).Pct, 1e-9)
	assert.InDelta(t, 60.0, r.Phase(PhaseSwim).Pct, 1e-9)
	assert.InDelta(t, 10.0, r.Phase(PhaseBubbles).Pct, 1e-9)
	assert.InDelta(t, 10.0, r.Phase(PhaseTelemetry).Pct, 1e-9)
	assert.Zero(t, r.Phase(PhasePick).Pct)
	assert.Zero(t, r.Phase(PhaseRender).Pct)

	var total float64
	for _, s := range r.Phases {
		total += s.Pct
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestReportSolverAndWaterCost(t *testing.T) {
	p, clock := newTestCollector(8)
	for i := 0; i < 4; i++ {
		simFrame(p, clock)
	}

	r := p.Report()
	assert.InDelta(t, 3.0, r.StepsPerFrame, 1e-12)
	assert.InDelta(t, 400.0, r.ParticlesPerStep, 1e-12)
	assert.InDelta(t, 1800.0, r.RelaxationsPerStep, 1e-12)
	assert.Equal(t, 2*time.Millisecond, r.SolverPerStep)
	assert.Equal(t, 2*time.Millisecond, r.WaterPerPass)
	assert.Equal(t, 128*128, r.CellsPerPass)
}

func TestPausedFramesHaveNoSolverCost(t *testing.T) {
	p, clock := newTestCollector(4)
	p.BeginFrame()
	p.Enter(PhasePick)
	clock.advance(time.Millisecond)
	p.Enter(PhaseRender)
	clock.advance(3 * time.Millisecond)
	p.EndFrame()

	r := p.Report()
	assert.Zero(t, r.StepsPerFrame)
	assert.Zero(t, r.SolverPerStep)
	assert.Zero(t, r.WaterPerPass)
	assert.InDelta(t, 75.0, r.Phase(PhaseRender).Pct, 1e-9)
}

func TestUnphasedTimeCountsTowardFrameOnly(t *testing.T) {
	p, clock := newTestCollector(4)
	p.BeginFrame()
	clock.advance(time.Millisecond) // input handling before the first phase
	p.Enter(PhaseRender)
	clock.advance(time.Millisecond)
	p.Enter("unknown")
	clock.advance(2 * time.Millisecond)
	p.EndFrame()

	r := p.Report()
	assert.Equal(t, 4*time.Millisecond, r.AvgFrame)
	assert.InDelta(t, 25.0, r.Phase(PhaseRender).Pct, 1e-9)
	assert.Equal(t, PhaseShare{Name: "unknown"}, r.Phase("unknown"))
}

func TestWindowDropsOldFrames(t *testing.T) {
	p, clock := newTestCollector(2)
	for i := 0; i < 3; i++ {
		p.BeginFrame()
		p.Enter(PhaseSwim)
		clock.advance(time.Duration(i+1) * time.Millisecond)
		p.CountSolver(i+1, 0, 0)
		p.EndFrame()
	}

	r := p.Report()
	assert.Equal(t, 2, r.Frames)
	assert.Equal(t, 2500*time.Microsecond, r.AvgFrame)
	assert.Equal(t, 3*time.Millisecond, r.MaxFrame)
	assert.InDelta(t, 2.5, r.StepsPerFrame, 1e-12)
}

func TestEmptyReport(t *testing.T) {
	p, _ := newTestCollector(0)
	r := p.Report()
	assert.Zero(t, r.Frames)
	assert.Zero(t, r.AvgFrame)
	assert.Equal(t, PhaseWater, r.Phases[0].Name)
}

func TestPresentGivesFPS(t *testing.T) {
	p, clock := newTestCollector(4)
	p.Present()
	assert.Zero(t, p.Report().FPS)

	clock.advance(20 * time.Millisecond)
	p.Present()
	assert.InDelta(t, 50.0, p.Report().FPS, 1e-9)
}

func TestReportRow(t *testing.T) {
	p, clock := newTestCollector(4)
	simFrame(p, clock)

	row := p.Report().Row()
	assert.Equal(t, int64(10000), row.FrameUS)
	assert.InDelta(t, 3.0, row.StepsPerFrame, 1e-12)
	assert.Equal(t, int64(2_000_000), row.SolverNSPerStep)
	assert.Equal(t, int64(2_000_000), row.WaterNSPerPass)
	assert.InDelta(t, 60.0, row.SwimPct, 1e-9)
	assert.InDelta(t, 20.0, row.WaterPct, 1e-9)
}
