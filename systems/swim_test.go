package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/jellyfish"
	"github.com/pthm-cable/aquarium/locomotion"
	"github.com/pthm-cable/aquarium/telemetry"
)

func spawnJelly(w *ecs.World, spawn mgl64.Vec3, seed int64) *jellyfish.Creature {
	ctrl := locomotion.New(locomotion.DefaultParams(),
		locomotion.Spawn{Position: spawn, Angle: 1},
		rand.New(rand.NewSource(seed)))
	c := jellyfish.New(jellyfish.DefaultParams(), ctrl, jellyfish.DefaultPalette())

	mapper := ecs.NewMap3[components.Jelly, components.Position, components.Swim](w)
	jelly := components.Jelly{Creature: c, Name: "test"}
	mapper.NewEntity(&jelly, &components.Position{}, &components.Swim{})
	return c
}

func TestSwimSystemMirrorsController(t *testing.T) {
	w := ecs.NewWorld()
	a := spawnJelly(w, mgl64.Vec3{1, 1.5, 0}, 1)
	b := spawnJelly(w, mgl64.Vec3{-1, 2, 0}, 2)
	s := NewSwimSystem(w)
	s.MeasureStretch = true

	var st SwimStats
	for i := 0; i < 30; i++ {
		st = s.Update(1.0 / 60)
	}
	require.Equal(t, 2, st.Count)
	assert.Equal(t, 30, a.Steps())
	assert.Equal(t, 30, b.Steps())

	assert.InDelta(t, (a.Swim().Phase()+b.Swim().Phase())/2, st.MeanPhase, 1e-12)
	assert.Greater(t, st.MaxViolation, 0.0, "stretch measured")

	q := ecs.NewFilter3[components.Jelly, components.Position, components.Swim](w).Query()
	for q.Next() {
		jelly, pos, swim := q.Get()
		p := jelly.Creature.Swim().Position()
		assert.InDelta(t, p.X(), pos.X, 1e-6)
		assert.InDelta(t, p.Y(), pos.Y, 1e-6)
		assert.Equal(t, float32(jelly.Creature.Swim().Phase()), swim.Phase)
	}
}

func TestSwimSystemCountsSolverWork(t *testing.T) {
	w := ecs.NewWorld()
	a := spawnJelly(w, mgl64.Vec3{1, 1.5, 0}, 1)
	spawnJelly(w, mgl64.Vec3{-1, 2, 0}, 2)

	st := NewSwimSystem(w).Update(1.0 / 60)
	sys := a.Body().System
	perStep := (len(sys.Constraints()) + len(sys.Pins())) * sys.Iterations
	require.Equal(t, 2, st.Steps)
	assert.Equal(t, 2*sys.Count(), st.Particles)
	assert.Equal(t, 2*perStep, st.Relaxations)
}

func TestSwimSystemSkipsEmptyJelly(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Jelly, components.Position, components.Swim](w)
	mapper.NewEntity(&components.Jelly{Name: "ghost"}, &components.Position{}, &components.Swim{})

	st := NewSwimSystem(w).Update(1.0 / 60)
	assert.Zero(t, st.Count)
	assert.Zero(t, st.Steps)
}

func TestSwimSystemReportsSurfacing(t *testing.T) {
	w := ecs.NewWorld()
	c := spawnJelly(w, mgl64.Vec3{0, 1.5, 0}, 3)
	c.Surface()
	NewSwimSystem(w).Update(1.0 / 60)

	q := ecs.NewFilter1[components.Swim](w).Query()
	for q.Next() {
		assert.True(t, q.Get().Surfacing)
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()
	assert.Equal(t, telemetry.Phases[:], reg.IDs(), "registry follows frame order")
	assert.Equal(t, "Swim", reg.GetName(telemetry.PhaseSwim))
	assert.Equal(t, "missing", reg.GetName("missing"))
}
