package verlet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies the variant of a constraint.
type Kind uint8

const (
	KindDistance Kind = iota
	KindPoint
	KindAxis
)

func (k Kind) String() string {
	switch k {
	case KindDistance:
		return "distance"
	case KindPoint:
		return "point"
	case KindAxis:
		return "axis"
	}
	return "unknown"
}

// Constraint is one relaxation rule over a fixed set of particles.
// The particles a constraint references never change after creation.
type Constraint interface {
	Kind() Kind
	Apply(s *System)
}

// Tunable is implemented by constraints whose rest bounds can be retuned
// without changing which particles they link.
type Tunable interface {
	Constraint
	SetDistance(min, max float64)
}

// DistanceConstraint keeps every listed pair within [Min, Max] of each other.
type DistanceConstraint struct {
	indices []int
	min     float64
	max     float64
}

// NewDistanceConstraint creates a constraint over flat index pairs
// (a0, b0, a1, b1, ...). The slice is copied.
func NewDistanceConstraint(min, max float64, pairs []int) *DistanceConstraint {
	if len(pairs)%2 != 0 {
		panic("verlet: distance constraint needs index pairs")
	}
	idx := make([]int, len(pairs))
	copy(idx, pairs)
	return &DistanceConstraint{indices: idx, min: min, max: max}
}

func (c *DistanceConstraint) Kind() Kind { return KindDistance }

// Bounds returns the current rest bounds.
func (c *DistanceConstraint) Bounds() (min, max float64) {
	return c.min, c.max
}

// SetDistance retunes the rest bounds.
func (c *DistanceConstraint) SetDistance(min, max float64) {
	c.min, c.max = min, max
}

// Len returns the number of linked pairs.
func (c *DistanceConstraint) Len() int {
	return len(c.indices) / 2
}

// Pair returns the particle indices of pair i.
func (c *DistanceConstraint) Pair(i int) (a, b int) {
	return c.indices[2*i], c.indices[2*i+1]
}

// Indices returns a copy of the flat pair list.
func (c *DistanceConstraint) Indices() []int {
	out := make([]int, len(c.indices))
	copy(out, c.indices)
	return out
}

// Apply moves each pair's endpoints along their separation until the
// distance is clamped into bounds, split by relative weight.
func (c *DistanceConstraint) Apply(s *System) {
	p := s.positions
	for i := 0; i < len(c.indices); i += 2 {
		a, b := c.indices[i], c.indices[i+1]
		wa, wb := s.weights[a], s.weights[b]
		wsum := wa + wb
		if wsum == 0 {
			continue
		}

		ia, ib := a*3, b*3
		dx := p[ib] - p[ia]
		dy := p[ib+1] - p[ia+1]
		dz := p[ib+2] - p[ia+2]
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if dist < 1e-12 {
			continue
		}

		target := dist
		if target < c.min {
			target = c.min
		} else if target > c.max {
			target = c.max
		}
		if target == dist {
			continue
		}

		diff := (dist - target) / dist
		ka := diff * wa / wsum
		kb := diff * wb / wsum
		p[ia] += dx * ka
		p[ia+1] += dy * ka
		p[ia+2] += dz * ka
		p[ib] -= dx * kb
		p[ib+1] -= dy * kb
		p[ib+2] -= dz * kb
	}
}

// Violation returns how far the worst pair lies outside the bounds.
func (c *DistanceConstraint) Violation(s *System) float64 {
	var worst float64
	for i := 0; i < len(c.indices); i += 2 {
		d := s.Position(c.indices[i]).Sub(s.Position(c.indices[i+1])).Len()
		var v float64
		if d < c.min {
			v = c.min - d
		} else if d > c.max {
			v = d - c.max
		}
		if v > worst {
			worst = v
		}
	}
	return worst
}

// PointConstraint holds one particle at a fixed position regardless of weight.
type PointConstraint struct {
	Index  int
	Target mgl64.Vec3
}

// NewPointConstraint creates a pin at target for particle index.
func NewPointConstraint(target mgl64.Vec3, index int) *PointConstraint {
	return &PointConstraint{Index: index, Target: target}
}

func (c *PointConstraint) Kind() Kind { return KindPoint }

func (c *PointConstraint) Apply(s *System) {
	s.setPos(c.Index, c.Target)
}

// AxisConstraint keeps particles on the line through two axis particles,
// removing any drift perpendicular to it.
type AxisConstraint struct {
	A, B    int
	indices []int
}

// NewAxisConstraint creates an axis through particles a and b controlling
// the given particles. The slice is copied.
func NewAxisConstraint(a, b int, indices []int) *AxisConstraint {
	idx := make([]int, len(indices))
	copy(idx, indices)
	return &AxisConstraint{A: a, B: b, indices: idx}
}

func (c *AxisConstraint) Kind() Kind { return KindAxis }

// Indices returns a copy of the controlled particle indices.
func (c *AxisConstraint) Indices() []int {
	out := make([]int, len(c.indices))
	copy(out, c.indices)
	return out
}

func (c *AxisConstraint) Apply(s *System) {
	a := s.Position(c.A)
	axis := s.Position(c.B).Sub(a)
	lenSq := axis.Dot(axis)
	if lenSq < 1e-12 {
		return
	}
	for _, i := range c.indices {
		if s.weights[i] == 0 {
			continue
		}
		p := s.Position(i)
		t := p.Sub(a).Dot(axis) / lenSq
		s.setPos(i, a.Add(axis.Mul(t)))
	}
}
