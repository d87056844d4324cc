package renderer

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/aquarium/jellyfish"
	"github.com/pthm-cable/aquarium/water"
)

func TestToColorClampsGlow(t *testing.T) {
	c := ToColor(jellyfish.Color{R: 2.5, G: 0.5, B: -1}, 0.5)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 128}, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func TestVec3(t *testing.T) {
	v := Vec3(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{v.X, v.Y, v.Z})
}

func TestCausticsFlatWaterIsUniform(t *testing.T) {
	p := water.DefaultParams()
	p.Resolution = 8
	h := water.New(p)
	h.Step()
	pixels := make([]color.RGBA, 64)
	Caustics(h.Texture(), 6, pixels)
	for i, px := range pixels {
		require.Equal(t, pixels[0], px, "pixel %d on still water", i)
	}
}

func TestCausticsDropFocusesLight(t *testing.T) {
	h := water.New(water.DefaultParams())
	h.AddDrop(0, 0, 0.1, 1)
	h.Step()
	snap := h.Texture()
	n := snap.Resolution()
	pixels := make([]color.RGBA, n*n)
	Caustics(snap, 6, pixels)

	// The crest of the drop is convex and spreads light; far away the floor
	// keeps its still-water color.
	assert.NotEqual(t, pixels[0], pixels[(n/2)*n+n/2])
}
