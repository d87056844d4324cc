package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/jellyfish"
	"github.com/pthm-cable/aquarium/locomotion"
)

// stretchWeight converts link stretch into speed error units.
const stretchWeight = 20.0

// warmupSec is skipped before sampling so the spawn pose settles.
const warmupSec = 2.0

// RunResult summarizes one creature's swim.
type RunResult struct {
	MeanSpeed  float64
	SpeedStd   float64
	MaxStretch float64
}

// FitnessEvaluator runs a lone creature per seed and scores how close
// its cruise speed lands to the target while the body holds together.
type FitnessEvaluator struct {
	params      *ParamVector
	baseConfig  *config.Config
	seeds       []int64
	duration    float64
	targetSpeed float64

	mu         sync.Mutex
	lastResult RunResult
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, duration, targetSpeed float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		baseConfig:  baseCfg,
		seeds:       seeds,
		duration:    duration,
		targetSpeed: targetSpeed,
	}
}

// LastResult returns the seed-averaged result of the most recent call.
func (fe *FitnessEvaluator) LastResult() RunResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// Evaluate scores raw parameter values (lower = better). Seeds run in
// parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.Apply(&cfg, x)

	results := make([]RunResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = Run(&cfg, s, fe.duration)
		}(i, seed)
	}
	wg.Wait()

	var avg RunResult
	for _, r := range results {
		avg.MeanSpeed += r.MeanSpeed
		avg.SpeedStd += r.SpeedStd
		avg.MaxStretch = math.Max(avg.MaxStretch, r.MaxStretch)
	}
	n := float64(len(results))
	avg.MeanSpeed /= n
	avg.SpeedStd /= n

	fe.mu.Lock()
	fe.lastResult = avg
	fe.mu.Unlock()

	return Score(avg, fe.targetSpeed)
}

// Score combines the speed error and the stretch penalty.
func Score(r RunResult, targetSpeed float64) float64 {
	e := r.MeanSpeed - targetSpeed
	return e*e + stretchWeight*r.MaxStretch*r.MaxStretch
}

// Run swims one creature for duration seconds at the fixed step and
// samples its speed after the warmup.
func Run(cfg *config.Config, seed int64, duration float64) RunResult {
	rng := rand.New(rand.NewSource(seed))
	ctrl := locomotion.New(cfg.SwimParams(), locomotion.Spawn{Position: mgl64.Vec3{0, 2, 0}}, rng)
	creature := jellyfish.New(cfg.BodyParams(), ctrl, cfg.Derived.Palettes[0])

	dt := cfg.Physics.DT
	steps := int(duration / dt)
	warmup := int(warmupSec / dt)
	speeds := make([]float64, 0, max(steps-warmup, 0))
	var stretch float64

	for i := 0; i < steps; i++ {
		creature.Step(dt)
		if i < warmup {
			continue
		}
		speeds = append(speeds, ctrl.Velocity().Len())
		stretch = math.Max(stretch, creature.Body().System.MaxViolation())
	}

	if len(speeds) == 0 {
		return RunResult{MaxStretch: stretch}
	}
	mean, std := stat.MeanStdDev(speeds, nil)
	if len(speeds) < 2 {
		std = 0
	}
	return RunResult{MeanSpeed: mean, SpeedStd: std, MaxStretch: stretch}
}
