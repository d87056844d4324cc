package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// clickSlop is how far the mouse may travel, in pixels, between press and
// release for the gesture to count as a click rather than an orbit.
const clickSlop = 4

// dragState tracks the left button between press and release.
type dragState struct {
	active bool
	start  rl.Vector2
	moved  bool
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	// 1..9 surface the jelly at that position
	for i := 0; i < len(g.jellies) && i < 9; i++ {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			g.SurfaceJelly(i)
		}
	}

	g.handleOverlayKeys()
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.backgroundRenderer.Resize(int32(w), int32(h))
	g.perfPanel.SetPosition(int32(w)-250, int32(h)-150)
	g.inspector.Resize(int32(w), int32(h))
}

// handleCameraInput orbits with the left button, pans with the right or
// middle button and zooms with the wheel. Drags that start on a panel
// are left to the panel.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.overUI(mouse) {
		g.drag = dragState{active: true, start: mouse}
	}
	if g.drag.active && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if rl.Vector2Distance(mouse, g.drag.start) > clickSlop {
			g.drag.moved = true
		}
		if g.drag.moved {
			g.camera.Orbit(-delta.X*0.005, delta.Y*0.005)
		}
	}

	if !g.overUI(mouse) && (rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle)) {
		scale := g.camera.Distance * 0.0015
		g.camera.Pan(-delta.X*scale, delta.Y*scale)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.overUI(mouse) {
		g.camera.Zoom(1 - wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.Zoom(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.Zoom(1.25)
	}
}

// releasedClick reports a completed left click that did not orbit. It
// clears the drag state on release.
func (g *Game) releasedClick() bool {
	if !g.drag.active || !rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		return false
	}
	click := !g.drag.moved
	g.drag = dragState{}
	return click
}

// overUI reports whether p lies on any screen panel.
func (g *Game) overUI(p rl.Vector2) bool {
	return g.controls.Contains(p) || g.inspector.Contains(p)
}
