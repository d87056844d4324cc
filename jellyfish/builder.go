package jellyfish

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/aquarium/verlet"
)

// Span is a handle to a contiguous run of particles.
type Span struct {
	Start int
	Count int
}

// End returns one past the last particle of the span.
func (s Span) End() int { return s.Start + s.Count }

// At returns the particle index of the i-th member, wrapping around.
func (s Span) At(i int) int { return s.Start + i%s.Count }

// Vertex is one particle's rest position and texture coordinate.
type Vertex struct {
	Pos mgl64.Vec3
	UV  mgl64.Vec2
}

// Builder accumulates particles and constraints for one soft body.
// Every append returns a handle so callers address particle ranges
// without tracking offsets themselves.
type Builder struct {
	positions   []float64
	uvs         []float64
	weights     []float64
	constraints []verlet.Constraint
	pins        []*verlet.PointConstraint
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of particles appended so far.
func (b *Builder) Len() int {
	return len(b.weights)
}

// Position returns the rest position of particle i.
func (b *Builder) Position(i int) mgl64.Vec3 {
	ix := i * 3
	return mgl64.Vec3{b.positions[ix], b.positions[ix+1], b.positions[ix+2]}
}

// Distance returns the rest distance between particles i and j.
func (b *Builder) Distance(i, j int) float64 {
	return b.Position(i).Sub(b.Position(j)).Len()
}

// Point appends a single particle with weight 1.
func (b *Builder) Point(v Vertex) int {
	b.positions = append(b.positions, v.Pos[0], v.Pos[1], v.Pos[2])
	b.uvs = append(b.uvs, v.UV[0], v.UV[1])
	b.weights = append(b.weights, 1)
	return len(b.weights) - 1
}

// Chain appends n particles produced by at.
func (b *Builder) Chain(n int, at func(i int) Vertex) Span {
	s := Span{Start: b.Len(), Count: n}
	for i := 0; i < n; i++ {
		b.Point(at(i))
	}
	return s
}

// Ring appends a horizontal circle of n particles centered on the Y axis.
func (b *Builder) Ring(n int, radius, y float64, uv func(i int) mgl64.Vec2) Span {
	step := 2 * math.Pi / float64(n)
	return b.Chain(n, func(i int) Vertex {
		a := step * float64(i)
		return Vertex{
			Pos: mgl64.Vec3{math.Cos(a) * radius, y, math.Sin(a) * radius},
			UV:  uv(i),
		}
	})
}

// SetWeight overrides the weight of every particle in s.
func (b *Builder) SetWeight(s Span, w float64) {
	for i := s.Start; i < s.End(); i++ {
		b.weights[i] = w
	}
}

// Link appends a distance constraint group over flat index pairs.
func (b *Builder) Link(min, max float64, pairs []int) *verlet.DistanceConstraint {
	c := verlet.NewDistanceConstraint(min, max, pairs)
	b.constraints = append(b.constraints, c)
	return c
}

// Axis appends an axis constraint through a and bIdx controlling indices.
func (b *Builder) Axis(a, bIdx int, indices []int) *verlet.AxisConstraint {
	c := verlet.NewAxisConstraint(a, bIdx, indices)
	b.constraints = append(b.constraints, c)
	return c
}

// Pin marks particle i as an anchor: weight 0, held at its rest position.
func (b *Builder) Pin(i int) {
	b.weights[i] = 0
	b.pins = append(b.pins, verlet.NewPointConstraint(b.Position(i), i))
}

// System assembles a particle system from everything appended so far.
func (b *Builder) System(iterations int) *verlet.System {
	s := verlet.New(b.positions, iterations)
	for _, c := range b.constraints {
		s.AddConstraint(c)
	}
	for i, w := range b.weights {
		if w != 1 {
			s.SetWeight(i, w)
		}
	}
	for _, p := range b.pins {
		s.AddPinConstraint(p)
	}
	return s
}

// UVs returns a copy of the flat uv buffer.
func (b *Builder) UVs() []float64 {
	out := make([]float64, len(b.uvs))
	copy(out, b.uvs)
	return out
}
