package renderer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/aquarium/water"
)

// WaterRenderer draws the height field as a translucent surface mesh.
type WaterRenderer struct {
	surface water.Surface
	level   float32 // scene height of the rest surface
	rest    float32 // height field value at rest
	relief  float32 // scene units per height field unit
	stride  int     // cells per drawn quad

	grid []rl.Vector3
	tint []rl.Color
}

// NewWaterRenderer creates a renderer for a surface resting at level.
func NewWaterRenderer(surface water.Surface, level, rest float64) *WaterRenderer {
	return &WaterRenderer{
		surface: surface,
		level:   float32(level),
		rest:    float32(rest),
		relief:  0.6,
		stride:  2,
	}
}

// Draw renders snap. Must be called between BeginMode3D and EndMode3D.
func (w *WaterRenderer) Draw(snap water.Snapshot) {
	n := snap.Resolution()/w.stride + 1
	if len(w.grid) != n*n {
		w.grid = make([]rl.Vector3, n*n)
		w.tint = make([]rl.Color, n*n)
	}

	last := snap.Resolution() - 1
	for j := 0; j < n; j++ {
		cj := min(j*w.stride, last)
		for i := 0; i < n; i++ {
			ci := min(i*w.stride, last)
			cell := snap.At(ci, cj)
			sim := mgl64.Vec2{
				float64(ci)/float64(last)*2 - 1,
				float64(cj)/float64(last)*2 - 1,
			}
			p := Vec3(w.surface.SimToWorld(sim))
			p.Y = w.level + (cell.Height-w.rest)*w.relief
			w.grid[j*n+i] = p
			w.tint[j*n+i] = surfaceTint(cell)
		}
	}

	rl.DrawRenderBatchActive()
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	for j := 0; j+1 < n; j++ {
		for i := 0; i+1 < n; i++ {
			a, b := j*n+i, j*n+i+1
			c, d := (j+1)*n+i, (j+1)*n+i+1
			rl.DrawTriangle3D(w.grid[a], w.grid[c], w.grid[b], w.tint[a])
			rl.DrawTriangle3D(w.grid[b], w.grid[c], w.grid[d], w.tint[d])
		}
	}
	rl.DrawRenderBatchActive()
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// surfaceTint shades a cell by its slope, facing light from -x.
func surfaceTint(c water.Cell) rl.Color {
	light := clamp01(0.5 - c.GradX*2 - c.GradY)
	glint := math32.Pow(light, 4)
	return rl.Color{
		R: unit8(0.10 + 0.5*glint),
		G: unit8(0.35 + 0.3*light + 0.4*glint),
		B: unit8(0.55 + 0.3*light + 0.3*glint),
		A: unit8(0.30 + 0.15*light),
	}
}
