package verlet

import "github.com/go-gl/mathgl/mgl64"

// Force contributes to the accumulated force buffer each step.
type Force interface {
	Apply(s *System, forces []float64, dt float64)
}

// DirectionalForce is a uniform acceleration scaled by each particle's
// weight, so pinned particles receive nothing.
type DirectionalForce struct {
	Vector mgl64.Vec3
}

// NewDirectionalForce creates a uniform force along v.
func NewDirectionalForce(v mgl64.Vec3) *DirectionalForce {
	return &DirectionalForce{Vector: v}
}

// Set replaces the force vector.
func (f *DirectionalForce) Set(x, y, z float64) {
	f.Vector = mgl64.Vec3{x, y, z}
}

func (f *DirectionalForce) Apply(s *System, forces []float64, _ float64) {
	for i, w := range s.weights {
		if w == 0 {
			continue
		}
		ix := i * 3
		forces[ix] += f.Vector[0] * w
		forces[ix+1] += f.Vector[1] * w
		forces[ix+2] += f.Vector[2] * w
	}
}
