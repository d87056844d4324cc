package game

import (
	"log/slog"

	"github.com/pthm-cable/aquarium/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}

	stats := g.collector.Flush(g.tick, g.simTime, len(g.jellies), g.bubbleCount(), g.water.MaxAmplitude())
	perf := g.perfCollector.Report()

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "frame", perf)
		g.logWorldState()
	}

	if err := g.outputManager.WriteWindow(stats, perf); err != nil {
		slog.Error("failed to write window", "error", err)
	}
}

// saveSnapshot writes the current scene state to the output directory.
func (g *Game) saveSnapshot() {
	path, err := g.outputManager.WriteSnapshot(g.createSnapshot())
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot() *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:        telemetry.SnapshotVersion,
		RNGSeed:        g.rngSeed,
		Tick:           g.tick,
		SimTime:        g.simTime,
		Bubbles:        g.bubbleCount(),
		WaterAmplitude: g.water.MaxAmplitude(),
	}

	for _, e := range g.jellies {
		jelly := g.jellyMap.Get(e)
		ctrl := jelly.Creature.Swim()
		pos, vel, q := ctrl.Position(), ctrl.Velocity(), ctrl.Orientation()
		yaw, pitch := ctrl.Heading()

		snapshot.Jellies = append(snapshot.Jellies, telemetry.JellyState{
			Name:        jelly.Name,
			Route:       jelly.Route,
			State:       ctrl.State().String(),
			Position:    [3]float64(pos),
			Velocity:    [3]float64(vel),
			Orientation: [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()},
			Heading:     yaw,
			Pitch:       pitch,
			Phase:       ctrl.Phase(),
			Steps:       jelly.Creature.Steps(),
			Surfaced:    jelly.Surfaced,
		})
	}

	return snapshot
}
