package water

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cell is one texel of the height field.
type Cell struct {
	Height   float32
	Velocity float32
	GradX    float32
	GradY    float32
}

// Snapshot is a read-only copy of the height field.
type Snapshot struct {
	n    int
	data []float32
}

// Resolution returns the number of cells along each axis.
func (s Snapshot) Resolution() int {
	return s.n
}

// At returns cell (i, j), clamped to the edge.
func (s Snapshot) At(i, j int) Cell {
	i = min(max(i, 0), s.n-1)
	j = min(max(j, 0), s.n-1)
	c := (j*s.n + i) * channels
	return Cell{
		Height:   s.data[c+chHeight],
		Velocity: s.data[c+chVelocity],
		GradX:    s.data[c+chGradX],
		GradY:    s.data[c+chGradY],
	}
}

// Sample bilinearly filters the field at simulation coordinates in [-1, 1].
func (s Snapshot) Sample(sim mgl64.Vec2) Cell {
	// Texel centers sit at (i+0.5)/n in texture space.
	fx := (sim.X()*0.5+0.5)*float64(s.n) - 0.5
	fy := (sim.Y()*0.5+0.5)*float64(s.n) - 0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := float32(fx-x0), float32(fy-y0)
	i, j := int(x0), int(y0)

	c00, c10 := s.At(i, j), s.At(i+1, j)
	c01, c11 := s.At(i, j+1), s.At(i+1, j+1)
	mix := func(a, b, c, d float32) float32 {
		top := a + (b-a)*tx
		bottom := c + (d-c)*tx
		return top + (bottom-top)*ty
	}
	return Cell{
		Height:   mix(c00.Height, c10.Height, c01.Height, c11.Height),
		Velocity: mix(c00.Velocity, c10.Velocity, c01.Velocity, c11.Velocity),
		GradX:    mix(c00.GradX, c10.GradX, c01.GradX, c11.GradX),
		GradY:    mix(c00.GradY, c10.GradY, c01.GradY, c11.GradY),
	}
}

// Heights copies the height channel into dst row by row and returns it.
func (s Snapshot) Heights(dst []float32) []float32 {
	n := s.n * s.n
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for k := range dst {
		dst[k] = s.data[k*channels+chHeight]
	}
	return dst
}
