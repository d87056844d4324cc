// Package verlet provides a position-based mass-spring particle system
// integrated with the Verlet scheme.
package verlet

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// System holds the particle buffers, constraints and forces of one soft body.
// Buffers are flat xyz triples; particle i lives at [3i, 3i+3).
type System struct {
	positions     []float64
	positionsPrev []float64
	weights       []float64
	forces        []float64

	// scratch buffers reused by Integrate
	step []float64
	mask []float64

	constraints []Constraint
	pins        []Constraint
	forceList   []Force

	// Iterations is the number of relaxation passes per SatisfyConstraints.
	Iterations int
	// Retention scales the implicit velocity carried into the next step.
	Retention float64
}

// New creates a system from a flat xyz position buffer. The buffer is copied.
// All particles start at rest with weight 1.
func New(positions []float64, iterations int) *System {
	if len(positions)%3 != 0 {
		panic("verlet: position buffer length must be a multiple of 3")
	}
	if iterations < 1 {
		iterations = 1
	}
	n := len(positions)
	s := &System{
		positions:     make([]float64, n),
		positionsPrev: make([]float64, n),
		weights:       make([]float64, n/3),
		forces:        make([]float64, n),
		step:          make([]float64, n),
		mask:          make([]float64, n),
		Iterations:    iterations,
		Retention:     1,
	}
	copy(s.positions, positions)
	copy(s.positionsPrev, positions)
	for i := range s.weights {
		s.weights[i] = 1
	}
	floats.AddConst(1, s.mask)
	return s
}

// Count returns the number of particles.
func (s *System) Count() int {
	return len(s.weights)
}

// Position returns the current position of particle i.
func (s *System) Position(i int) mgl64.Vec3 {
	ix := i * 3
	return mgl64.Vec3{s.positions[ix], s.positions[ix+1], s.positions[ix+2]}
}

// PreviousPosition returns the position of particle i one step ago.
func (s *System) PreviousPosition(i int) mgl64.Vec3 {
	ix := i * 3
	return mgl64.Vec3{s.positionsPrev[ix], s.positionsPrev[ix+1], s.positionsPrev[ix+2]}
}

// Velocity returns the implicit per-step displacement of particle i.
func (s *System) Velocity(i int) mgl64.Vec3 {
	return s.Position(i).Sub(s.PreviousPosition(i))
}

// SetPosition moves particle i to p, keeping its implicit velocity.
func (s *System) SetPosition(i int, p mgl64.Vec3) {
	v := s.Velocity(i)
	s.setPos(i, p)
	prev := p.Sub(v)
	ix := i * 3
	s.positionsPrev[ix], s.positionsPrev[ix+1], s.positionsPrev[ix+2] = prev[0], prev[1], prev[2]
}

func (s *System) setPos(i int, p mgl64.Vec3) {
	ix := i * 3
	s.positions[ix], s.positions[ix+1], s.positions[ix+2] = p[0], p[1], p[2]
}

// Weight returns the inverse mass of particle i.
func (s *System) Weight(i int) float64 {
	return s.weights[i]
}

// SetWeight sets the inverse mass of particle i. Weight 0 pins the particle.
func (s *System) SetWeight(i int, w float64) {
	s.weights[i] = w
	m := 1.0
	if w == 0 {
		m = 0
	}
	ix := i * 3
	s.mask[ix], s.mask[ix+1], s.mask[ix+2] = m, m, m
}

// AddConstraint registers a constraint relaxed on every pass.
func (s *System) AddConstraint(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// AddPinConstraint registers a constraint applied after all regular
// constraints on every pass, so it always has the last word.
func (s *System) AddPinConstraint(c Constraint) {
	s.pins = append(s.pins, c)
}

// AddForce registers a force applied by AccumulateForces.
func (s *System) AddForce(f Force) {
	s.forceList = append(s.forceList, f)
}

// Constraints returns the registered regular constraints.
func (s *System) Constraints() []Constraint {
	return s.constraints
}

// Pins returns the registered pin constraints.
func (s *System) Pins() []Constraint {
	return s.pins
}

// AccumulateForces resets the force buffer and adds every registered force.
// The returned buffer stays valid until the next call and may be modified by
// the caller before Integrate (per-frame drag is injected this way).
func (s *System) AccumulateForces(dt float64) []float64 {
	clear(s.forces)
	for _, f := range s.forceList {
		f.Apply(s, s.forces, dt)
	}
	return s.forces
}

// Forces returns the accumulated force buffer.
func (s *System) Forces() []float64 {
	return s.forces
}

// Integrate advances every non-pinned particle:
// next = pos + (pos - prev)*Retention + force*dt².
func (s *System) Integrate(dt float64) {
	floats.SubTo(s.step, s.positions, s.positionsPrev)
	floats.Scale(s.Retention, s.step)
	floats.AddScaled(s.step, dt*dt, s.forces)
	floats.Mul(s.step, s.mask)

	copy(s.positionsPrev, s.positions)
	floats.Add(s.positions, s.step)
}

// SatisfyConstraints runs Iterations relaxation passes over all constraints,
// applying pins last in each pass.
func (s *System) SatisfyConstraints() {
	for it := 0; it < s.Iterations; it++ {
		for _, c := range s.constraints {
			c.Apply(s)
		}
		for _, c := range s.pins {
			c.Apply(s)
		}
	}
}

// Tick runs one full step without any force injection.
func (s *System) Tick(dt float64) {
	s.AccumulateForces(dt)
	s.Integrate(dt)
	s.SatisfyConstraints()
}

// Damp blends every implicit velocity toward zero, keeping the given
// fraction: prev = keep*prev + (1-keep)*pos.
func (s *System) Damp(keep float64) {
	prev := blas64.Vector{N: len(s.positionsPrev), Inc: 1, Data: s.positionsPrev}
	pos := blas64.Vector{N: len(s.positions), Inc: 1, Data: s.positions}
	blas64.Scal(keep, prev)
	blas64.Axpy(1-keep, pos, prev)
}

// MaxViolation returns the largest distance by which any distance
// constraint pair lies outside its bounds.
func (s *System) MaxViolation() float64 {
	var worst float64
	for _, c := range s.constraints {
		dc, ok := c.(*DistanceConstraint)
		if !ok {
			continue
		}
		if v := dc.Violation(s); v > worst {
			worst = v
		}
	}
	return worst
}

// View returns a read-only view of the current positions.
func (s *System) View() View {
	return View{data: s.positions}
}

// PrevView returns a read-only view of the previous positions.
func (s *System) PrevView() View {
	return View{data: s.positionsPrev}
}

// View is a read-only window over a flat xyz buffer owned by a System.
type View struct {
	data []float64
}

// Len returns the number of points in the view.
func (v View) Len() int {
	return len(v.data) / 3
}

// At returns point i.
func (v View) At(i int) mgl64.Vec3 {
	ix := i * 3
	return mgl64.Vec3{v.data[ix], v.data[ix+1], v.data[ix+2]}
}

// CopyTo writes the points into dst as float32 xyz triples, growing dst if
// needed, and returns it.
func (v View) CopyTo(dst []float32) []float32 {
	if cap(dst) < len(v.data) {
		dst = make([]float32, len(v.data))
	}
	dst = dst[:len(v.data)]
	for i, x := range v.data {
		dst[i] = float32(x)
	}
	return dst
}
