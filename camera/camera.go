// Package camera provides an orbit camera around the aquarium.
package camera

import "github.com/chewxy/math32"

// Vec3 is a float32 point in scene space.
type Vec3 struct {
	X, Y, Z float32
}

// Camera orbits a target point. The eye is stored in spherical
// coordinates around the target and never drops below the floor.
type Camera struct {
	// Target is the point the camera looks at
	Target Vec3

	// Spherical eye position relative to Target
	Yaw, Pitch, Distance float32

	// Floor is the lowest eye height
	Floor float32

	// Distance constraints
	MinDistance, MaxDistance float32

	// Fovy is the vertical field of view in degrees
	Fovy float32
}

// pitchLimit keeps the eye off the poles where yaw degenerates.
const pitchLimit = math32.Pi/2 - 0.01

// New creates a camera at eye looking at target.
func New(target, eye Vec3, fovy, floor, minDist, maxDist float32) *Camera {
	c := &Camera{
		Target:      target,
		Floor:       floor,
		MinDistance: minDist,
		MaxDistance: maxDist,
		Fovy:        fovy,
	}
	c.setEye(eye)
	return c
}

// Eye returns the camera position.
func (c *Camera) Eye() Vec3 {
	cp := math32.Cos(c.Pitch)
	return Vec3{
		X: c.Target.X + c.Distance*cp*math32.Sin(c.Yaw),
		Y: c.Target.Y + c.Distance*math32.Sin(c.Pitch),
		Z: c.Target.Z + c.Distance*cp*math32.Cos(c.Yaw),
	}
}

// Orbit rotates the eye around the target by the given angles in radians.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, -pitchLimit, pitchLimit)
	c.clampFloor()
}

// Zoom scales the eye distance. Factors below 1 move closer.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
	c.clampFloor()
}

// Pan moves the target within the horizontal plane, relative to the view.
func (c *Camera) Pan(right, forward float32) {
	sy, cy := math32.Sincos(c.Yaw)
	c.Target.X += cy*right - sy*forward
	c.Target.Z += -sy*right - cy*forward
	c.clampFloor()
}

// clampFloor lifts the eye onto the floor, keeping its horizontal position.
func (c *Camera) clampFloor() {
	eye := c.Eye()
	if eye.Y >= c.Floor {
		return
	}
	eye.Y = c.Floor
	c.setEye(eye)
}

func (c *Camera) setEye(eye Vec3) {
	dx, dy, dz := eye.X-c.Target.X, eye.Y-c.Target.Y, eye.Z-c.Target.Z
	c.Distance = math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if c.Distance < 1e-6 {
		c.Distance = 1e-6
		return
	}
	c.Yaw = math32.Atan2(dx, dz)
	c.Pitch = clamp(math32.Asin(dy/c.Distance), -pitchLimit, pitchLimit)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
