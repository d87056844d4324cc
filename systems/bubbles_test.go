package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/water"
)

type recordedDrop struct {
	x, y, radius, strength float64
}

type dropRecorder struct {
	drops []recordedDrop
}

func (d *dropRecorder) AddDrop(x, y, radius, strength float64) {
	d.drops = append(d.drops, recordedDrop{x, y, radius, strength})
}

func testBubbleParams() BubbleParams {
	return BubbleParams{
		Interval:       3,
		Count:          [2]int{2, 3},
		Size:           [2]float64{0.4, 1.0},
		Rise:           [2]float64{0.5, 1.0},
		WobbleStrength: 0.15,
		SurfaceY:       5,
		Colors:         3,
	}
}

func newBubbleWorld(p BubbleParams) (*ecs.World, *BubbleSystem, *dropRecorder) {
	w := ecs.NewWorld()
	rec := &dropRecorder{}
	surface := water.Surface{Size: 10}
	return w, NewBubbleSystem(w, p, surface, rec, rand.New(rand.NewSource(42))), rec
}

func countBubbles(w *ecs.World) int {
	n := 0
	q := ecs.NewFilter1[components.Bubble](w).Query()
	for q.Next() {
		n++
	}
	return n
}

func TestBubbleSpawnWaves(t *testing.T) {
	w, s, _ := newBubbleWorld(testBubbleParams())

	spawned, _ := s.Update(w, 1.0, 1.0/60)
	require.Zero(t, spawned, "no wave before the interval")

	spawned, _ = s.Update(w, 3.0, 1.0/60)
	require.GreaterOrEqual(t, spawned, 2)
	require.LessOrEqual(t, spawned, 3)
	assert.Equal(t, spawned, countBubbles(w))

	again, _ := s.Update(w, 4.0, 1.0/60)
	assert.Zero(t, again, "no second wave within the interval")
}

func TestBubbleSpawnWithinWater(t *testing.T) {
	p := testBubbleParams()
	p.Count = [2]int{50, 50}
	w, s, _ := newBubbleWorld(p)
	s.Update(w, 3, 0)

	q := ecs.NewFilter1[components.Bubble](w).Query()
	for q.Next() {
		b := q.Get()
		assert.LessOrEqual(t, math.Abs(float64(b.SpawnX)), 4.0, "spawn x within 80 percent of the water")
		assert.LessOrEqual(t, math.Abs(float64(b.SpawnZ)), 4.0, "spawn z within 80 percent of the water")
		assert.GreaterOrEqual(t, b.Size, float32(0.4))
		assert.LessOrEqual(t, b.Size, float32(1.0))
		assert.GreaterOrEqual(t, b.WobbleFreq, float32(2))
		assert.Less(t, b.WobbleFreq, float32(4))
		assert.GreaterOrEqual(t, b.WobbleAmp, float32(0.075))
		assert.LessOrEqual(t, b.WobbleAmp, float32(0.15))
		assert.LessOrEqual(t, int(b.Color), 2)
	}
}

func TestBubbleBurstsIntoWater(t *testing.T) {
	p := testBubbleParams()
	p.Count = [2]int{1, 1}
	w, s, rec := newBubbleWorld(p)
	s.Update(w, 3, 0)

	var size float64
	q := ecs.NewFilter1[components.Bubble](w).Query()
	for q.Next() {
		size = float64(q.Get().Size)
	}

	now := 3.0
	total := 0
	for i := 0; i < 2000 && countBubbles(w) > 0; i++ {
		now += 1.0 / 60
		// Keep the spawner quiet.
		s.lastSpawn = now
		_, burst := s.Update(w, now, 1.0/60)
		total += burst
	}
	require.Equal(t, 1, total)
	require.Len(t, rec.drops, 1)

	d := rec.drops[0]
	assert.InDelta(t, 0.02+size*0.1, d.radius, 1e-6)
	assert.InDelta(t, 0.15+size*0.5, d.strength, 1e-6)
	assert.LessOrEqual(t, math.Abs(d.x), 1.0)
	assert.LessOrEqual(t, math.Abs(d.y), 1.0)
}

func TestBubbleSquishPreservesShape(t *testing.T) {
	p := testBubbleParams()
	p.Count = [2]int{1, 1}
	w, s, _ := newBubbleWorld(p)
	s.Update(w, 3, 0)

	for now := 3.0; now < 4; now += 0.1 {
		s.lastSpawn = now
		s.Update(w, now, 0.01)
		q := ecs.NewFilter2[components.Bubble, components.Scale](w).Query()
		for q.Next() {
			b, sc := q.Get()
			assert.Equal(t, sc.X, sc.Z, "symmetric XZ squish")
			assert.InDelta(t, b.Size, sc.Y, float64(b.Size)*0.1+1e-5, "vertical squish within 10 percent")
		}
	}
}
