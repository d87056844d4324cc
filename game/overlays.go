package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/aquarium/renderer"
	"github.com/pthm-cable/aquarium/ui"
)

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}
	g.jellyRenderer.Wireframe = g.overlays.IsEnabled(ui.OverlayWireframe)
	g.jellyRenderer.ShowInner = g.overlays.IsEnabled(ui.OverlayInnerLinks)
}

// drawDebugOverlays renders the enabled scene-space overlays. Must be
// called inside BeginMode3D.
func (g *Game) drawDebugOverlays() {
	if g.overlays.IsEnabled(ui.OverlayHitSpheres) {
		g.drawHitSpheres()
	}
	if g.overlays.IsEnabled(ui.OverlayHeadings) {
		g.drawHeadings()
	}
	if g.overlays.IsEnabled(ui.OverlaySwimBounds) {
		g.drawSwimBounds()
	}
}

// drawHitSpheres outlines each jelly's pick sphere. The hovered one is
// highlighted.
func (g *Game) drawHitSpheres() {
	query := g.jellyFilter.Query()
	for query.Next() {
		jelly, _, _ := query.Get()
		center, radius := jelly.Creature.HitSphere()
		col := rl.Color{R: 120, G: 200, B: 255, A: 120}
		if jelly.Creature.Hovered() {
			col = rl.Yellow
		}
		rl.DrawSphereWires(renderer.Vec3(center), float32(radius), 8, 12, col)
	}
}

// drawHeadings draws each jelly's bell axis and velocity.
func (g *Game) drawHeadings() {
	query := g.jellyFilter.Query()
	for query.Next() {
		jelly, _, _ := query.Get()
		ctrl := jelly.Creature.Swim()
		pos := ctrl.Position()

		axis := ctrl.Orientation().Rotate(mgl64.Vec3{0, 1, 0})
		rl.DrawLine3D(renderer.Vec3(pos), renderer.Vec3(pos.Add(axis.Mul(0.6))), rl.Orange)

		vel := ctrl.Velocity()
		rl.DrawLine3D(renderer.Vec3(pos), renderer.Vec3(pos.Add(vel.Mul(0.5))), rl.Green)
	}
}

// drawSwimBounds outlines the volume the jellies are steered back into.
func (g *Game) drawSwimBounds() {
	p := g.cfg.SwimParams()
	size := rl.Vector3{X: float32(2 * p.BoundsXZ), Y: float32(p.BoundsYMax - p.BoundsYMin), Z: float32(2 * p.BoundsXZ)}
	center := rl.Vector3{X: 0, Y: float32(p.BoundsYMin) + size.Y/2, Z: 0}
	rl.DrawCubeWiresV(center, size, rl.Color{R: 255, G: 255, B: 255, A: 60})
}
