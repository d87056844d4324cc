package systems

import (
	"math"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/water"
)

// BubbleParams tunes the bubble spawner.
type BubbleParams struct {
	Interval       float64    // seconds between spawn waves
	Count          [2]int     // bubbles per wave, inclusive range
	Size           [2]float64 // radius range
	Rise           [2]float64 // speed range
	WobbleStrength float64
	SurfaceY       float64 // height at which bubbles burst
	Colors         int     // palette size
}

// BubbleSystem spawns bubbles on the pool floor, lifts them with a wobble
// and bursts them into the water surface.
type BubbleSystem struct {
	params  BubbleParams
	surface water.Surface
	drops   water.Dropper
	rng     *rand.Rand

	mapper *ecs.Map3[components.Bubble, components.Position, components.Scale]
	filter *ecs.Filter3[components.Bubble, components.Position, components.Scale]

	lastSpawn float64
	burst     []ecs.Entity
}

// NewBubbleSystem creates a bubble system dropping into drops.
func NewBubbleSystem(w *ecs.World, p BubbleParams, surface water.Surface, drops water.Dropper, rng *rand.Rand) *BubbleSystem {
	return &BubbleSystem{
		params:  p,
		surface: surface,
		drops:   drops,
		rng:     rng,
		mapper:  ecs.NewMap3[components.Bubble, components.Position, components.Scale](w),
		filter:  ecs.NewFilter3[components.Bubble, components.Position, components.Scale](w),
	}
}

// Update spawns a wave when due, moves every bubble to its position at
// time now and removes the ones that reached the surface. It returns the
// number spawned and burst.
func (s *BubbleSystem) Update(w *ecs.World, now, dt float64) (spawned, burst int) {
	if now-s.lastSpawn >= s.params.Interval {
		spawned = s.spawn()
		s.lastSpawn = now
	}

	s.burst = s.burst[:0]
	t := float32(now)
	query := s.filter.Query()
	for query.Next() {
		b, pos, scale := query.Get()
		b.Height += b.Rise * float32(dt)

		pos.X = b.SpawnX + math32.Sin(t*b.WobbleFreq+b.WobblePhase)*b.WobbleAmp
		pos.Y = b.Height
		pos.Z = b.SpawnZ + math32.Cos(t*b.WobbleFreq*0.7+b.WobblePhase+1)*b.WobbleAmp

		squish := math32.Sin(t*b.WobbleFreq*2+b.WobblePhase) * 0.1
		scale.X = b.Size * (1 - squish*0.5)
		scale.Y = b.Size * (1 + squish)
		scale.Z = scale.X

		if float64(b.Height) >= s.params.SurfaceY {
			sim := s.surface.WorldToSim(mgl64.Vec3{float64(pos.X), 0, float64(pos.Z)})
			size := float64(b.Size)
			s.drops.AddDrop(sim.X(), sim.Y(), 0.02+size*0.1, 0.15+size*0.5)
			s.burst = append(s.burst, query.Entity())
		}
	}

	// Removal after the query has released the world.
	for _, e := range s.burst {
		w.RemoveEntity(e)
	}
	return spawned, len(s.burst)
}

func (s *BubbleSystem) spawn() int {
	p := s.params
	n := p.Count[0] + s.rng.Intn(p.Count[1]-p.Count[0]+1)
	spread := s.surface.Size * 0.8
	floor := float32(s.surface.Origin.Y())
	for i := 0; i < n; i++ {
		b := components.Bubble{
			SpawnX:      float32(s.surface.Origin.X() + (s.rng.Float64()-0.5)*spread),
			SpawnZ:      float32(s.surface.Origin.Z() + (s.rng.Float64()-0.5)*spread),
			Size:        float32(lerp(p.Size, s.rng.Float64())),
			Rise:        float32(lerp(p.Rise, s.rng.Float64())),
			Height:      floor,
			WobblePhase: float32(s.rng.Float64() * 2 * math.Pi),
			WobbleFreq:  float32(2 + s.rng.Float64()*2),
			WobbleAmp:   float32(p.WobbleStrength * (0.5 + s.rng.Float64()*0.5)),
		}
		if p.Colors > 0 {
			b.Color = uint8(s.rng.Intn(p.Colors))
		}
		pos := components.Position{X: b.SpawnX, Y: b.Height, Z: b.SpawnZ}
		scale := components.Scale{X: b.Size, Y: b.Size, Z: b.Size}
		s.mapper.NewEntity(&b, &pos, &scale)
	}
	return n
}

func lerp(r [2]float64, t float64) float64 {
	return r[0] + (r[1]-r[0])*t
}
