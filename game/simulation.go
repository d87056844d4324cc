package game

import (
	"github.com/pthm-cable/aquarium/telemetry"
)

// simulationStep advances the scene by dt seconds. The caller owns the
// perf frame around it.
func (g *Game) simulationStep(dt float64) {
	g.perfCollector.Enter(telemetry.PhaseWater)
	g.rain.Update(g.simTime, g.rng, dropTap{g, telemetry.DropRain})
	g.water.Step()
	n := g.water.Resolution()
	g.perfCollector.CountWaterPass(n * n)

	g.perfCollector.Enter(telemetry.PhaseSwim)
	st := g.swim.Update(dt)
	g.perfCollector.CountSolver(st.Steps, st.Particles, st.Relaxations)
	g.collector.RecordViolation(st.MaxViolation)
	g.resolveSurfacings()

	if g.bubbles != nil {
		g.perfCollector.Enter(telemetry.PhaseBubbles)
		spawned, burst := g.bubbles.Update(g.world, g.simTime, dt)
		g.collector.RecordBubbles(spawned, burst)
	}

	g.tick++
	g.simTime += dt

	g.perfCollector.Enter(telemetry.PhaseTelemetry)
	g.recordSwim()
	g.flushTelemetry()
}

// resolveSurfacings handles the surfacings queued by the swim update:
// a drop where the jelly broke the surface, a counter and a log record.
// Runs outside the swim query so the world is free to change.
func (g *Game) resolveSurfacings() {
	for _, s := range g.pending {
		jelly := g.jellyMap.Get(s.entity)
		jelly.Surfaced++

		sim := g.surface.WorldToSim(s.at)
		drop := g.cfg.Water.SurfaceDrop
		dropTap{g, telemetry.DropSurfacing}.AddDrop(sim.X(), sim.Y(), drop.Radius, drop.Strength)
		g.collector.Record(telemetry.EventSurfacing)

		g.logSurfacing(telemetry.SurfacingEvent{
			Tick:    g.tick,
			SimTime: g.simTime,
			Name:    jelly.Name,
			Route:   jelly.Route,
			X:       s.at.X(),
			Y:       s.at.Y(),
			Z:       s.at.Z(),
			SimX:    sim.X(),
			SimY:    sim.Y(),
		})
	}
	g.pending = g.pending[:0]
}

// recordSwim feeds every jelly's speed and phase to the collector.
func (g *Game) recordSwim() {
	query := g.jellyFilter.Query()
	for query.Next() {
		_, _, swim := query.Get()
		g.collector.RecordSwim(float64(swim.Speed), float64(swim.Phase))
	}
}

// bubbleCount returns the number of live bubbles.
func (g *Game) bubbleCount() int {
	query := g.bubbleFilter.Query()
	n := query.Count()
	query.Close()
	return n
}

// UpdateHeadless runs StepsPerUpdate fixed steps without rendering.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Physics.DT
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.BeginFrame()
		g.simulationStep(dt)
		g.perfCollector.EndFrame()
	}
}
