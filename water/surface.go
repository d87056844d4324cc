package water

import "github.com/go-gl/mathgl/mgl64"

// Surface places the height field in the world: a square of Size units
// centered on Origin in the XZ plane.
type Surface struct {
	Origin mgl64.Vec3
	Size   float64
}

// WorldToSim maps a world position onto simulation space, where the water
// spans [-1, 1] on both axes. World X maps to sim x and world Z to sim y.
func (s Surface) WorldToSim(world mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{
		(world.X() - s.Origin.X()) / s.Size * 2,
		(world.Z() - s.Origin.Z()) / s.Size * 2,
	}
}

// SimToWorld maps a simulation position back onto the water plane.
func (s Surface) SimToWorld(sim mgl64.Vec2) mgl64.Vec3 {
	return mgl64.Vec3{
		s.Origin.X() + sim.X()*s.Size/2,
		s.Origin.Y(),
		s.Origin.Z() + sim.Y()*s.Size/2,
	}
}

// Contains reports whether a world position lies over the water.
func (s Surface) Contains(world mgl64.Vec3) bool {
	p := s.WorldToSim(world)
	return p.X() >= -1 && p.X() <= 1 && p.Y() >= -1 && p.Y() <= 1
}
