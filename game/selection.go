package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/renderer"
	"github.com/pthm-cable/aquarium/telemetry"
	"github.com/pthm-cable/aquarium/ui"
)

// pickResult is the nearest jelly under the cursor.
type pickResult struct {
	entity ecs.Entity
	point  mgl64.Vec3
	ok     bool
}

// pick casts the cursor ray against every jelly's hit sphere and returns
// the nearest hit.
func (g *Game) pick(mouse rl.Vector2) pickResult {
	ray := rl.GetScreenToWorldRay(mouse, g.camera3D())

	var best pickResult
	bestDist := float32(-1)
	query := g.jellyFilter.Query()
	for query.Next() {
		jelly, _, _ := query.Get()
		center, radius := jelly.Creature.HitSphere()
		hit := rl.GetRayCollisionSphere(ray, renderer.Vec3(center), float32(radius))
		if !hit.Hit || (bestDist >= 0 && hit.Distance >= bestDist) {
			continue
		}
		bestDist = hit.Distance
		best = pickResult{
			entity: query.Entity(),
			point:  mgl64.Vec3{float64(hit.Point.X), float64(hit.Point.Y), float64(hit.Point.Z)},
			ok:     true,
		}
	}
	return best
}

// updateSelection refreshes the hover state and handles clicks.
func (g *Game) updateSelection() {
	mouse := rl.GetMousePosition()
	var hit pickResult
	if !g.overUI(mouse) {
		hit = g.pick(mouse)
	}
	g.setHovered(hit)

	if g.releasedClick() && hit.ok {
		g.clickJelly(hit)
	}
}

// setHovered moves the hover flag to the picked jelly. At most one jelly
// is hovered at a time.
func (g *Game) setHovered(hit pickResult) {
	if g.hasHovered && (!hit.ok || hit.entity != g.hovered) {
		if g.world.Alive(g.hovered) {
			g.jellyMap.Get(g.hovered).Creature.SetHovered(false)
		}
		g.hasHovered = false
	}
	if hit.ok && !g.hasHovered {
		g.jellyMap.Get(hit.entity).Creature.SetHovered(true)
		g.hovered = hit.entity
		g.hasHovered = true
	}
}

// clickJelly pushes the jelly away from the click, selects it and, when
// enabled, sends it to the surface.
func (g *Game) clickJelly(hit pickResult) {
	jelly := g.jellyMap.Get(hit.entity)
	jelly.Creature.ApplyImpulseAt(hit.point)
	g.collector.Record(telemetry.EventClick)
	g.inspector.Select(hit.entity)

	if g.overlays.IsEnabled(ui.OverlayClickSurfaces) {
		jelly.Creature.Surface()
	}
	slog.Debug("jelly clicked", "name", jelly.Name, "route", jelly.Route)
}

// hoveredName returns the name of the hovered jelly, or "".
func (g *Game) hoveredName() string {
	if !g.hasHovered {
		return ""
	}
	return g.jellyMap.Get(g.hovered).Name
}
