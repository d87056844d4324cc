package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/inspector"
	"github.com/pthm-cable/aquarium/telemetry"
	"github.com/pthm-cable/aquarium/ui"
)

const controlsLegend = "[Space] Pause  [,/.] Steps  [1-9] Surface  [Tab] Panel  [LMB] Orbit/Click  [RMB] Pan  [Wheel] Zoom"

// Update handles input and advances the scene by one frame. The perf
// frame opened here is closed at the end of Draw.
func (g *Game) Update() {
	g.perfCollector.BeginFrame()

	g.handleInput()
	g.inspector.HandleInput(rl.GetMousePosition())

	g.perfCollector.Enter(telemetry.PhasePick)
	g.updateSelection()

	if g.paused {
		return
	}
	dt := math.Min(float64(rl.GetFrameTime()), g.cfg.Physics.MaxFrameDT) * float64(g.timeScale)
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep(dt)
	}
}

// Draw renders the scene and the UI.
func (g *Game) Draw() {
	g.perfCollector.Enter(telemetry.PhaseRender)
	g.perfCollector.Present()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.backgroundRenderer.Draw(float32(g.simTime), g.camera.Pitch)

	rl.BeginMode3D(g.camera3D())
	snap := g.water.Texture()
	g.lightRenderer.Update(snap)
	g.lightRenderer.Draw()
	g.poolRenderer.Draw()
	g.drawJellies()
	g.drawBubbles()
	g.waterRenderer.Draw(snap)
	g.drawDebugOverlays()
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
	g.perfCollector.EndFrame()
}

// drawJellies renders every creature.
func (g *Game) drawJellies() {
	query := g.jellyFilter.Query()
	for query.Next() {
		jelly, _, _ := query.Get()
		g.jellyRenderer.Draw(jelly.Creature)
	}
}

// drawBubbles renders every live bubble.
func (g *Game) drawBubbles() {
	query := g.bubbleFilter.Query()
	for query.Next() {
		b, pos, scale := query.Get()
		g.particleRenderer.Draw(b, pos, scale)
	}
}

// drawUI renders the screen-space panels.
func (g *Game) drawUI() {
	rows := make([]ui.JellyRow, 0, len(g.jellies))
	surfaced := 0
	for _, e := range g.jellies {
		jelly := g.jellyMap.Get(e)
		rows = append(rows, ui.JellyRow{Name: jelly.Name, Route: jelly.Route, Swim: *g.swimMap.Get(e)})
		surfaced += jelly.Surfaced
	}

	g.hud.Draw(ui.HUDData{
		Title:     "Aquarium",
		Jellies:   len(g.jellies),
		Bubbles:   g.bubbleCount(),
		Surfaced:  surfaced,
		Tick:      g.tick,
		SimTime:   g.simTime,
		TimeScale: g.timeScale * float32(g.stepsPerUpdate),
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
		Hovered:   g.hoveredName(),
		Amplitude: float32(g.water.MaxAmplitude()),
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	res := g.controls.Draw(g.overlays, rows, g.timeScale)
	g.timeScale = res.TimeScale
	if res.Surface >= 0 {
		g.SurfaceJelly(res.Surface)
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Report(), g.registry)
	}

	g.drawInspector()
}

// drawInspector shows the selected jelly's components.
func (g *Game) drawInspector() {
	e, ok := g.inspector.Selected()
	if !ok {
		return
	}
	if !g.world.Alive(e) {
		g.inspector.Deselect()
		return
	}
	jelly := g.jellyMap.Get(e)
	pos := g.posMap.Get(e)
	swim := g.swimMap.Get(e)
	ctrl := jelly.Creature.Swim()

	status := struct {
		State    string
		Position string
		Steps    int
	}{
		State:    ctrl.State().String(),
		Position: fmt.Sprintf("(%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z),
		Steps:    jelly.Creature.Steps(),
	}

	g.inspector.Draw(inspector.Title(jelly.Name, e), []inspector.Section{
		{Title: "JELLY", Component: jelly},
		{Title: "SWIM", Component: swim},
		{Title: "BODY", Component: status},
	})
}
