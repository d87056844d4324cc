package game

import (
	"log/slog"

	"github.com/pthm-cable/aquarium/telemetry"
)

// logSurfacing reports a jelly reaching the surface. The route is the
// page the jelly stands for.
func (g *Game) logSurfacing(e telemetry.SurfacingEvent) {
	slog.Info("jelly surfaced", "navigate", e.Route, "event", e)
	if err := g.outputManager.WriteSurfacing(e); err != nil {
		slog.Error("failed to write surfacing", "error", err)
	}
}

// logWorldState logs every jelly's swim state.
func (g *Game) logWorldState() {
	query := g.jellyFilter.Query()
	for query.Next() {
		jelly, pos, swim := query.Get()
		slog.Info("jelly",
			"tick", g.tick,
			"name", jelly.Name,
			"x", pos.X, "y", pos.Y, "z", pos.Z,
			"speed", swim.Speed,
			"phase", swim.Phase,
			"surfacing", swim.Surfacing,
			"surfaced", jelly.Surfaced,
		)
	}
}
