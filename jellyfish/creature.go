package jellyfish

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/aquarium/locomotion"
	"github.com/pthm-cable/aquarium/verlet"
)

// Params tunes the coupling between locomotion and the soft body.
type Params struct {
	Scale             float64 // body units to scene units
	TentacleDrag      float64
	VelocityRetention float64 // implicit velocity kept per second
	HoverDuration     float64
	Iterations        int // relaxation passes per step
}

// DefaultParams returns the coupling used by the aquarium.
func DefaultParams() Params {
	return Params{
		Scale:             0.02,
		TentacleDrag:      15,
		VelocityRetention: 0.82,
		HoverDuration:     0.4,
		Iterations:        Iterations,
	}
}

// Hit sphere around the bell, in body units.
const (
	hitCenterY = 40.0
	hitRadius  = 45.0
)

// Part names one of the index views over the shared position buffer.
type Part uint8

const (
	PartBell Part = iota
	PartTail
	PartMouth
	PartHood
	PartTentacles
	PartInner
)

// Geometry is an index view over the creature's positions. Faces are
// triangle lists, lines are segment pairs.
type Geometry struct {
	Part    Part
	Lines   bool
	Indices []uint32
}

// Transform places the body in the scene.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       float64
}

// Apply maps a body-space point into the scene.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Orientation.Rotate(p.Mul(t.Scale)))
}

// Creature is one swimming jellyfish: the soft body, its locomotion and
// its per-frame material parameters.
type Creature struct {
	params Params
	body   *Body
	swim   *locomotion.Controller
	tent   Span

	palette   Palette
	hover     *Hover
	rim       float64
	materials Materials

	dirty bool
	steps int
}

// New builds a creature driven by swim.
func New(p Params, swim *locomotion.Controller, palette Palette) *Creature {
	body := Build()
	if p.Iterations > 0 {
		body.System.Iterations = p.Iterations
	}
	c := &Creature{
		params:  p,
		body:    body,
		swim:    swim,
		tent:    body.TentacleRange(),
		palette: palette,
		hover:   NewHover(p.HoverDuration),
		rim:     0.05,
	}
	c.materials = palette.materials(0, 0, 0, c.rim)
	return c
}

// Step advances locomotion and the soft body by one frame. It does nothing
// until the locomotion controller holds a usable transform.
func (c *Creature) Step(dt float64) {
	if c.swim == nil || !c.swim.Ready() {
		return
	}
	dt = c.swim.Update(dt)

	phase := c.swim.Phase()
	display := c.swim.DisplayPhase()
	vel := c.swim.Velocity()

	// Sink harder while contracted, resist less while rising.
	c.body.Gravity.Set(0, -2-phase*3-math.Max(0, vel.Y())*1.5, 0)
	Modulate(c.body.Ribs, display, Segments)
	Modulate(c.body.TailRibs, display, Segments)

	local := c.swim.Orientation().Inverse().Rotate(vel).Mul(c.params.TentacleDrag)
	sys := c.body.System
	forces := sys.AccumulateForces(dt)
	for i := c.tent.Start; i < c.tent.End(); i++ {
		ix := i * 3
		forces[ix] -= local[0]
		forces[ix+1] -= local[1]
		forces[ix+2] -= local[2]
	}
	sys.Integrate(dt)
	sys.SatisfyConstraints()
	sys.Damp(math.Pow(c.params.VelocityRetention, dt))
	c.dirty = true
	c.steps++

	h := c.hover.Update(dt)
	target := 0.05
	if c.hover.Hovered() {
		target = 0.7
	}
	c.rim += (target - c.rim) * math.Min(1, 5*dt)
	c.materials = c.palette.materials(display, c.swim.Time(), h, c.rim)
}

// Surface starts a surfacing episode.
func (c *Creature) Surface() {
	c.swim.Surface()
}

// ApplyImpulseAt pushes the creature away from a scene point.
func (c *Creature) ApplyImpulseAt(point mgl64.Vec3) {
	c.swim.ApplyImpulse(point)
}

// SetHovered sets the hover blend target.
func (c *Creature) SetHovered(hovered bool) {
	c.hover.Set(hovered)
}

// Hovered reports whether the creature is hovered.
func (c *Creature) Hovered() bool {
	return c.hover.Hovered()
}

// HoverBlend returns the eased hover amount in [0, 1].
func (c *Creature) HoverBlend() float64 {
	return c.hover.Value()
}

// Transform returns the current placement of the body.
func (c *Creature) Transform() Transform {
	return Transform{
		Position:    c.swim.Position(),
		Orientation: c.swim.Orientation(),
		Scale:       c.params.Scale,
	}
}

// HitSphere returns the pick sphere around the bell in scene space.
func (c *Creature) HitSphere() (center mgl64.Vec3, radius float64) {
	t := c.Transform()
	return t.Apply(mgl64.Vec3{0, hitCenterY, 0}), hitRadius * t.Scale
}

// Positions returns the current particle positions in body space.
func (c *Creature) Positions() verlet.View {
	return c.body.System.View()
}

// PrevPositions returns the particle positions one step ago.
func (c *Creature) PrevPositions() verlet.View {
	return c.body.System.PrevView()
}

// UVs returns the flat uv buffer, two values per particle.
func (c *Creature) UVs() []float64 {
	return c.body.UVs
}

// Geometry returns the index view of part.
func (c *Creature) Geometry(part Part) Geometry {
	b := c.body
	switch part {
	case PartBell:
		return Geometry{Part: part, Indices: b.BellFaces}
	case PartTail:
		return Geometry{Part: part, Indices: b.TailFaces}
	case PartMouth:
		return Geometry{Part: part, Indices: b.MouthFaces}
	case PartHood:
		return Geometry{Part: part, Lines: true, Indices: b.HoodLines}
	case PartTentacles:
		return Geometry{Part: part, Lines: true, Indices: b.TentacleLines}
	default:
		return Geometry{Part: PartInner, Lines: true, Indices: b.InnerLines}
	}
}

// Dirty reports whether positions changed since the last MarkClean.
func (c *Creature) Dirty() bool {
	return c.dirty
}

// MarkClean acknowledges that the current positions have been displayed.
func (c *Creature) MarkClean() {
	c.dirty = false
}

// Materials returns this frame's material parameters.
func (c *Creature) Materials() Materials {
	return c.materials
}

// Swim returns the locomotion controller.
func (c *Creature) Swim() *locomotion.Controller {
	return c.swim
}

// Body returns the soft body.
func (c *Creature) Body() *Body {
	return c.body
}

// Steps returns the number of physics steps taken.
func (c *Creature) Steps() int {
	return c.steps
}
