// Package locomotion drives a jellyfish through the water: pulse phase,
// thrust and drag, wandering, boundary containment and surfacing.
package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the controller's behavior state.
type State uint8

const (
	Swimming State = iota
	Surfacing
)

func (s State) String() string {
	switch s {
	case Swimming:
		return "swimming"
	case Surfacing:
		return "surfacing"
	}
	return "unknown"
}

// Rand is the source of randomness for wandering. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spawn is the resting pose a controller starts in and returns to after
// every surfacing episode.
type Spawn struct {
	Position mgl64.Vec3
	Angle    float64
}

const maxPitch = math.Pi * 0.45

// Controller is the kinematic state of one swimming creature.
type Controller struct {
	params Params
	rng    Rand
	spawn  Spawn
	state  State

	elapsed      float64
	phase        float64
	prevPhase    float64
	displayPhase float64
	contracting  bool
	hit          float64

	pos mgl64.Vec3
	vel mgl64.Vec3
	dir mgl64.Vec3

	heading, pitch             float64
	targetHeading, targetPitch float64
	wanderTimer                float64

	right       mgl64.Vec3
	orientation mgl64.Quat

	onSurface func(mgl64.Vec3)
}

// New creates a controller at spawn with a randomized pulse offset and
// initial heading.
func New(p Params, spawn Spawn, rng Rand) *Controller {
	pitch := (rng.Float64() - 0.5) * math.Pi * 0.8
	c := &Controller{
		params:        p,
		rng:           rng,
		spawn:         spawn,
		elapsed:       rng.Float64() * p.Period,
		pos:           spawn.Position,
		heading:       spawn.Angle,
		pitch:         pitch,
		targetHeading: spawn.Angle + (rng.Float64()-0.5)*1.2,
		targetPitch:   pitch + (rng.Float64()-0.5)*0.8,
		wanderTimer:   2 + rng.Float64()*3,
		right:         mgl64.Vec3{1, 0, 0},
		orientation:   mgl64.QuatIdent(),
		onSurface:     func(mgl64.Vec3) {},
	}
	c.dir = direction(c.heading, c.pitch)
	return c
}

// OnSurface sets the callback fired once per surfacing episode with the
// world position where the creature reached the water surface.
// A nil callback is replaced by a no-op.
func (c *Controller) OnSurface(fn func(mgl64.Vec3)) {
	if fn == nil {
		fn = func(mgl64.Vec3) {}
	}
	c.onSurface = fn
}

// Surface switches to the surfacing state. It is a no-op while surfacing.
func (c *Controller) Surface() {
	c.state = Surfacing
}

// ApplyImpulse pushes the creature away from point and squashes the bell.
func (c *Controller) ApplyImpulse(point mgl64.Vec3) {
	away := c.pos.Sub(point)
	if l := away.Len(); l > 1e-9 {
		c.vel = c.vel.Add(away.Mul(c.params.ClickImpulse / l))
	}
	c.hit = c.params.HitStrength
}

// Ready reports whether the controller holds a usable transform: a pulse
// period, a non-degenerate orientation and a finite position and velocity.
// A creature whose controller is not ready holds its last pose.
func (c *Controller) Ready() bool {
	q := c.orientation
	return c.params.Period > 0 &&
		finite(c.pos) && finite(c.vel) && finite(q.V) && !math.IsNaN(q.W) &&
		q.Len() > 1e-9
}

func finite(v mgl64.Vec3) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Position() mgl64.Vec3 { return c.pos }
func (c *Controller) Velocity() mgl64.Vec3 { return c.vel }
func (c *Controller) Direction() mgl64.Vec3 { return c.dir }
func (c *Controller) Orientation() mgl64.Quat { return c.orientation }
func (c *Controller) Phase() float64 { return c.phase }
func (c *Controller) DisplayPhase() float64 { return c.displayPhase }
func (c *Controller) Time() float64 { return c.elapsed }
func (c *Controller) Spawn() Spawn { return c.spawn }
func (c *Controller) Heading() (yaw, pitch float64) { return c.heading, c.pitch }

// ClampDt bounds a frame delta to [0, MaxDt]. NaN becomes 0.
func (c *Controller) ClampDt(dt float64) float64 {
	if !(dt > 0) {
		return 0
	}
	return math.Min(dt, c.params.MaxDt)
}

// Update advances the controller by one frame and returns the clamped
// delta the frame was simulated with.
func (c *Controller) Update(dt float64) float64 {
	dt = c.ClampDt(dt)
	p := c.params

	c.elapsed += dt
	phase := PulsePhase(c.elapsed, p.Period, p.ExpandRatio)
	c.hit *= math.Pow(p.HitDecay, dt)
	c.displayPhase = math.Max(0, phase-c.hit)

	c.propel(phase, dt)

	if c.state == Swimming {
		c.vel[1] -= p.Gravity * dt
		c.wander(dt)
	} else {
		c.dir = mgl64.Vec3{0, 1, 0}
		c.vel[1] += p.SurfacingAccel * dt
	}

	c.contain(dt)
	c.orient(dt)

	if c.state == Surfacing && c.pos.Y() >= p.SurfaceY {
		c.onSurface(mgl64.Vec3{c.pos.X(), p.WorldSurfaceY, c.pos.Z()})
		c.state = Swimming
		c.rest()
	}
	return dt
}

// propel applies the contraction impulse and the phase-dependent drag.
func (c *Controller) propel(phase, dt float64) {
	delta := phase - c.prevPhase
	c.prevPhase = phase
	c.phase = phase
	c.contracting = delta < 0

	keep := c.params.DragExpand
	if c.contracting {
		c.vel = c.vel.Add(c.dir.Mul(-delta * c.params.ThrustFactor))
		keep = c.params.DragContract
	}
	c.vel = c.vel.Mul(math.Pow(keep, dt))
}

// Contracting reports whether the bell closed during the last update.
func (c *Controller) Contracting() bool {
	return c.contracting
}

func (c *Controller) wander(dt float64) {
	p := c.params
	c.wanderTimer -= dt
	if c.wanderTimer <= 0 {
		c.heading = math.Mod(math.Mod(c.heading, 2*math.Pi)+2*math.Pi, 2*math.Pi)
		c.pitch = mgl64.Clamp(c.pitch, -maxPitch, maxPitch)
		c.targetHeading = c.heading + (c.rng.Float64()-0.5)*math.Pi*1.2
		c.targetPitch = mgl64.Clamp(c.pitch+(c.rng.Float64()-0.5)*math.Pi*0.7, -maxPitch, maxPitch)
		c.wanderTimer = p.WanderMin + c.rng.Float64()*(p.WanderMax-p.WanderMin)
	}

	c.heading += shortestAngle(c.targetHeading-c.heading) * p.TurnSpeed * dt
	c.pitch += (c.targetPitch - c.pitch) * p.TurnSpeed * dt
	c.dir = direction(c.heading, c.pitch)
}

// contain pushes back from the soft boundary, moves, then hard-clamps.
func (c *Controller) contain(dt float64) {
	p := c.params
	push := p.Repel * dt
	switch {
	case c.pos[0] > p.BoundsXZ:
		c.vel[0] -= push
	case c.pos[0] < -p.BoundsXZ:
		c.vel[0] += push
	}
	switch {
	case c.pos[2] > p.BoundsXZ:
		c.vel[2] -= push
	case c.pos[2] < -p.BoundsXZ:
		c.vel[2] += push
	}
	switch {
	case c.pos[1] < p.BoundsYMin:
		c.vel[1] += push
	case c.pos[1] > p.BoundsYMax:
		c.vel[1] -= push
	}

	c.pos = c.pos.Add(c.vel.Mul(dt))
	c.pos[0] = mgl64.Clamp(c.pos[0], -p.BoundsXZ-0.5, p.BoundsXZ+0.5)
	c.pos[2] = mgl64.Clamp(c.pos[2], -p.BoundsXZ-0.5, p.BoundsXZ+0.5)
	c.pos[1] = mgl64.Clamp(c.pos[1], p.BoundsYMin-0.2, p.BoundsYMax+0.5)
}

// orient eases the displayed orientation toward the frame whose +Y axis
// is the swim direction. The right axis stays horizontal so a vertical
// swim direction cannot introduce roll.
func (c *Controller) orient(dt float64) {
	dx, dz := c.dir.X(), c.dir.Z()
	if l := math.Hypot(dx, dz); l > 1e-4 {
		c.right = mgl64.Vec3{dz / l, 0, -dx / l}
	}
	forward := c.right.Cross(c.dir).Normalize()
	target := mgl64.Mat4ToQuat(mgl64.Mat3FromCols(c.right, c.dir, forward).Mat4())

	if c.orientation.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	c.orientation = mgl64.QuatSlerp(c.orientation, target, 1-math.Exp(-c.params.OrientRate*dt))
}

// rest snaps back to the spawn height and heading after surfacing.
func (c *Controller) rest() {
	c.pos[1] = c.spawn.Position.Y()
	c.vel = mgl64.Vec3{}
	c.heading = c.spawn.Angle
	c.pitch = 0
	c.dir = mgl64.Vec3{math.Cos(c.spawn.Angle), 0, math.Sin(c.spawn.Angle)}
}

func direction(heading, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{cp * math.Cos(heading), math.Sin(pitch), cp * math.Sin(heading)}.Normalize()
}

// shortestAngle wraps an angle difference into [-π, π].
func shortestAngle(d float64) float64 {
	return d - math.Round(d/(2*math.Pi))*2*math.Pi
}
