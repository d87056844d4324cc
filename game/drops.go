package game

import (
	"log/slog"

	"github.com/pthm-cable/aquarium/telemetry"
)

// dropTap forwards drops to the water and records each one under source.
type dropTap struct {
	g      *Game
	source string
}

// AddDrop implements water.Dropper.
func (d dropTap) AddDrop(x, y, radius, strength float64) {
	g := d.g
	g.water.AddDrop(x, y, radius, strength)
	g.collector.Record(telemetry.EventDrop)
	e := telemetry.DropEvent{
		Tick:     g.tick,
		SimTime:  g.simTime,
		Source:   d.source,
		X:        x,
		Y:        y,
		Radius:   radius,
		Strength: strength,
	}
	if err := g.outputManager.WriteDrop(e); err != nil {
		slog.Error("failed to write drop", "error", err)
	}
}
