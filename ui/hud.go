package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Jellies   int
	Bubbles   int
	Surfaced  int
	Tick      int32
	SimTime   float64
	TimeScale float32
	FPS       int32
	Paused    bool
	Hovered   string // name of the jelly under the cursor
	Amplitude float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Jellies: %d | Bubbles: %d | Surfaced: %d", data.Jellies, data.Bubbles, data.Surfaced),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | t=%.1fs | Speed: %.2fx | FPS: %d | Ripple: %.3f",
			data.Tick, data.SimTime, data.TimeScale, data.FPS, data.Amplitude),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Hovered != "" {
		status += " | " + data.Hovered
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders one line per registered phase followed by the solver and
// water cost per unit of work.
func (p *PerfPanel) Draw(r telemetry.PerfReport, registry *systems.SystemRegistry) {
	x, y := p.x, p.y
	infos := registry.All()
	height := int32(len(infos))*14 + 76
	p.renderer.DrawPanel(x-6, y-6, 246, height)

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Frame: %s", r.AvgFrame.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range infos {
		s := r.Phase(info.ID)

		color := rl.LightGray
		if s.Pct > 50 {
			color = rl.Red
		} else if s.Pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", info.Name, s.Avg.Round(time.Microsecond), s.Pct),
			x, y, 12, color,
		)
		y += 14
	}

	y += 2
	rl.DrawText(fmt.Sprintf("%.1f steps %.0f particles %s/step",
		r.StepsPerFrame, r.ParticlesPerStep, r.SolverPerStep.Round(time.Microsecond)), x, y, 12, rl.SkyBlue)
	y += 14
	rl.DrawText(fmt.Sprintf("water %d cells %s/pass",
		r.CellsPerPass, r.WaterPerPass.Round(time.Microsecond)), x, y, 12, rl.SkyBlue)
}
