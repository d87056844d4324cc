// Package systems contains ECS systems for the aquarium.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/locomotion"
)

// SwimStats summarizes one swim update across all jellies.
type SwimStats struct {
	Count        int
	MeanSpeed    float64
	MeanPhase    float64
	MaxViolation float64

	// Solver work: creature steps taken, particles they integrated and
	// constraint solves they ran.
	Steps       int
	Particles   int
	Relaxations int
}

// SwimSystem steps every jelly and mirrors its locomotion into the
// Position and Swim components.
type SwimSystem struct {
	filter *ecs.Filter3[components.Jelly, components.Position, components.Swim]

	// MeasureStretch enables the per-frame constraint error scan.
	MeasureStretch bool
}

// NewSwimSystem creates a new swim system.
func NewSwimSystem(w *ecs.World) *SwimSystem {
	return &SwimSystem{
		filter: ecs.NewFilter3[components.Jelly, components.Position, components.Swim](w),
	}
}

// Update advances every creature by dt seconds.
func (s *SwimSystem) Update(dt float64) SwimStats {
	var st SwimStats
	query := s.filter.Query()
	for query.Next() {
		jelly, pos, swim := query.Get()
		c := jelly.Creature
		if c == nil {
			continue
		}
		before := c.Steps()
		c.Step(dt)
		if c.Steps() > before {
			sys := c.Body().System
			st.Steps++
			st.Particles += sys.Count()
			st.Relaxations += (len(sys.Constraints()) + len(sys.Pins())) * sys.Iterations
		}

		ctrl := c.Swim()
		p := ctrl.Position()
		pos.X, pos.Y, pos.Z = float32(p.X()), float32(p.Y()), float32(p.Z())

		speed := ctrl.Velocity().Len()
		yaw, pitch := ctrl.Heading()
		swim.Phase = float32(ctrl.Phase())
		swim.Speed = float32(speed)
		swim.Heading = float32(yaw)
		swim.Pitch = float32(pitch)
		swim.Surfacing = ctrl.State() == locomotion.Surfacing
		swim.Hover = float32(c.HoverBlend())
		if s.MeasureStretch {
			v := c.Body().System.MaxViolation()
			swim.Violation = float32(v)
			st.MaxViolation = math.Max(st.MaxViolation, v)
		}

		st.Count++
		st.MeanSpeed += speed
		st.MeanPhase += ctrl.Phase()
	}
	if st.Count > 0 {
		st.MeanSpeed /= float64(st.Count)
		st.MeanPhase /= float64(st.Count)
	}
	return st
}
