package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/water"
)

// LightRenderer projects caustics from the water surface onto the pool
// floor. Intensities are computed on the CPU from the height field
// gradients and uploaded into a texture on a floor plane.
type LightRenderer struct {
	surface  water.Surface
	strength float32

	floorTex rl.Texture2D
	floor    rl.Model
	texSize  int

	pixels      []color.RGBA
	initialized bool
}

// NewLightRenderer creates a new light renderer.
func NewLightRenderer(surface water.Surface) *LightRenderer {
	return &LightRenderer{
		surface:  surface,
		strength: 6,
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (l *LightRenderer) Init(resolution int) {
	if l.initialized {
		return
	}
	l.texSize = resolution

	img := rl.GenImageColor(resolution, resolution, rl.Black)
	l.floorTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(l.floorTex, rl.FilterBilinear)

	size := float32(l.surface.Size)
	l.floor = rl.LoadModelFromMesh(rl.GenMeshPlane(size, size, 1, 1))
	rl.SetMaterialTexture(l.floor.Materials, rl.MapDiffuse, l.floorTex)

	l.pixels = make([]color.RGBA, resolution*resolution)
	l.initialized = true
}

// Update recomputes the caustic pattern from snap.
func (l *LightRenderer) Update(snap water.Snapshot) {
	if !l.initialized {
		l.Init(snap.Resolution())
	}
	Caustics(snap, l.strength, l.pixels)
	rl.UpdateTexture(l.floorTex, l.pixels)
}

// Draw renders the lit floor. Must be called between BeginMode3D and EndMode3D.
func (l *LightRenderer) Draw() {
	if !l.initialized {
		return
	}
	rl.DrawModel(l.floor, Vec3(l.surface.Origin), 1, rl.White)
}

// Caustics writes one floor color per cell of snap into dst. Light
// converges where the surface is concave, so brightness follows the
// negative divergence of the gradient.
func Caustics(snap water.Snapshot, strength float32, dst []color.RGBA) {
	n := snap.Resolution()
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			div := snap.At(i+1, j).GradX - snap.At(i-1, j).GradX +
				snap.At(i, j+1).GradY - snap.At(i, j-1).GradY
			light := clamp01(0.35 - div*strength)
			dst[j*n+i] = color.RGBA{
				R: unit8(0.18 + 0.45*light),
				G: unit8(0.30 + 0.60*light),
				B: unit8(0.38 + 0.62*light),
				A: 255,
			}
		}
	}
}

// Unload frees resources.
func (l *LightRenderer) Unload() {
	if l.initialized {
		rl.UnloadModel(l.floor)
		rl.UnloadTexture(l.floorTex)
		l.initialized = false
	}
}
