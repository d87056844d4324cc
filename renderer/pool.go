package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/water"
)

// PoolRenderer draws the glass walls around the water.
type PoolRenderer struct {
	center rl.Vector3
	size   float32
	height float32
	level  float32

	wall  rl.Color
	edge  rl.Color
	tiles int
}

// NewPoolRenderer creates a pool wallHeight high around surface, filled
// to level.
func NewPoolRenderer(surface water.Surface, wallHeight, level float64) *PoolRenderer {
	return &PoolRenderer{
		center: Vec3(surface.Origin),
		size:   float32(surface.Size),
		height: float32(wallHeight),
		level:  float32(level),
		wall:   rl.Color{R: 40, G: 90, B: 120, A: 40},
		edge:   rl.Color{R: 160, G: 210, B: 230, A: 120},
		tiles:  10,
	}
}

// Draw renders the walls. Must be called between BeginMode3D and EndMode3D,
// after the opaque floor.
func (p *PoolRenderer) Draw() {
	h := p.size / 2
	x0, x1 := p.center.X-h, p.center.X+h
	z0, z1 := p.center.Z-h, p.center.Z+h
	y0 := p.center.Y
	y1 := y0 + p.height

	// Floor tile seams
	step := p.size / float32(p.tiles)
	seam := rl.Color{R: 20, G: 40, B: 50, A: 90}
	for k := 1; k < p.tiles; k++ {
		o := float32(k) * step
		rl.DrawLine3D(rl.Vector3{X: x0 + o, Y: y0 + 0.005, Z: z0}, rl.Vector3{X: x0 + o, Y: y0 + 0.005, Z: z1}, seam)
		rl.DrawLine3D(rl.Vector3{X: x0, Y: y0 + 0.005, Z: z0 + o}, rl.Vector3{X: x1, Y: y0 + 0.005, Z: z0 + o}, seam)
	}

	rl.DrawRenderBatchActive()
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	corners := [4][2]float32{{x0, z0}, {x1, z0}, {x1, z1}, {x0, z1}}
	for k := range corners {
		a, b := corners[k], corners[(k+1)%4]
		p.quad(a, b, y0, y1, p.wall)
		p.quad(a, b, y0, y0+p.level, p.wall)
	}
	rl.DrawRenderBatchActive()
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()

	size := rl.Vector3{X: p.size, Y: p.height, Z: p.size}
	mid := rl.Vector3{X: p.center.X, Y: y0 + p.height/2, Z: p.center.Z}
	rl.DrawCubeWiresV(mid, size, p.edge)
}

func (p *PoolRenderer) quad(a, b [2]float32, y0, y1 float32, col rl.Color) {
	v0 := rl.Vector3{X: a[0], Y: y0, Z: a[1]}
	v1 := rl.Vector3{X: b[0], Y: y0, Z: b[1]}
	v2 := rl.Vector3{X: b[0], Y: y1, Z: b[1]}
	v3 := rl.Vector3{X: a[0], Y: y1, Z: a[1]}
	rl.DrawTriangle3D(v0, v1, v2, col)
	rl.DrawTriangle3D(v0, v2, v3, col)
}
