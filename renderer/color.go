// Package renderer draws the aquarium scene with raylib.
package renderer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/aquarium/jellyfish"
)

// ToColor converts a linear color and an opacity into an 8-bit color.
// Components past 1 are clamped; glow is lost on an LDR target.
func ToColor(c jellyfish.Color, opacity float64) rl.Color {
	return rl.Color{
		R: unit8(float32(c.R)),
		G: unit8(float32(c.G)),
		B: unit8(float32(c.B)),
		A: unit8(float32(opacity)),
	}
}

func unit8(v float32) uint8 {
	return uint8(math32.Round(clamp01(v) * 255))
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// Vec3 converts a scene position.
func Vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}
