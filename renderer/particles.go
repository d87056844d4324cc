package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/jellyfish"
)

// bubbleRadius is the scene radius of a bubble of size 1.
const bubbleRadius = 0.08

// ParticleRenderer renders rising bubbles as squished translucent spheres.
type ParticleRenderer struct {
	colors []rl.Color
}

// NewParticleRenderer creates a new particle renderer tinting bubbles
// with palette.
func NewParticleRenderer(palette []jellyfish.Color) *ParticleRenderer {
	r := &ParticleRenderer{}
	for _, c := range palette {
		r.colors = append(r.colors, ToColor(c, 0.45))
	}
	if len(r.colors) == 0 {
		r.colors = append(r.colors, rl.Color{R: 200, G: 230, B: 255, A: 115})
	}
	return r
}

// Draw renders one bubble. Must be called between BeginMode3D and EndMode3D.
func (r *ParticleRenderer) Draw(b *components.Bubble, pos *components.Position, scale *components.Scale) {
	col := r.colors[int(b.Color)%len(r.colors)]

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Scalef(scale.X, scale.Y, scale.Z)
	rl.DrawSphereEx(rl.Vector3{}, bubbleRadius, 8, 8, col)
	rl.PopMatrix()

	// Highlight
	hi := rl.Vector3{X: pos.X - bubbleRadius*0.3*scale.X, Y: pos.Y + bubbleRadius*0.4*scale.Y, Z: pos.Z}
	rl.DrawSphereEx(hi, bubbleRadius*0.2*scale.X, 4, 4, rl.Color{R: 255, G: 255, B: 255, A: 140})
}
