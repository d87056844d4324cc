package telemetry

import (
	"log/slog"
	"time"
)

// Phase names in frame order.
const (
	PhaseWater     = "water"
	PhaseSwim      = "swim"
	PhaseBubbles   = "bubbles"
	PhasePick      = "pick"
	PhaseRender    = "render"
	PhaseTelemetry = "telemetry"
)

// Phases lists every phase in frame order.
var Phases = [...]string{PhaseWater, PhaseSwim, PhaseBubbles, PhasePick, PhaseRender, PhaseTelemetry}

func phaseIndex(name string) int {
	for i, p := range Phases {
		if p == name {
			return i
		}
	}
	return -1
}

// frameCost is the time and solver work of one frame.
type frameCost struct {
	total  time.Duration
	phases [len(Phases)]time.Duration

	steps       int // creature steps
	particles   int // particles integrated over those steps
	relaxations int // constraint solves, iterations included
	waterPasses int
	waterCells  int
}

// PerfCollector measures where a frame goes: wall time per phase, and the
// verlet and water work done inside it. It keeps the last window frames.
type PerfCollector struct {
	now func() time.Time

	ring   []frameCost
	next   int
	filled int

	cur        frameCost
	frameStart time.Time
	phaseStart time.Time
	phase      int

	lastPresent time.Time
	present     time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{now: time.Now, ring: make([]frameCost, window), phase: -1}
}

// BeginFrame starts a frame. Headless runs treat every simulation step as
// a frame.
func (p *PerfCollector) BeginFrame() {
	p.cur = frameCost{}
	p.frameStart = p.now()
	p.phase = -1
}

// Enter closes the running phase and starts timing name. An unknown name
// only closes the running phase.
func (p *PerfCollector) Enter(name string) {
	t := p.now()
	p.closePhase(t)
	p.phase = phaseIndex(name)
	p.phaseStart = t
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += t.Sub(p.phaseStart)
	}
}

// CountSolver adds the soft body work of one swim update: the creature
// steps taken, the particles they integrated and the constraint solves
// they ran.
func (p *PerfCollector) CountSolver(steps, particles, relaxations int) {
	p.cur.steps += steps
	p.cur.particles += particles
	p.cur.relaxations += relaxations
}

// CountWaterPass adds one height field pass over cells cells.
func (p *PerfCollector) CountWaterPass(cells int) {
	p.cur.waterPasses++
	p.cur.waterCells += cells
}

// EndFrame closes the running phase and stores the frame.
func (p *PerfCollector) EndFrame() {
	t := p.now()
	p.closePhase(t)
	p.phase = -1
	p.cur.total = t.Sub(p.frameStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// Present marks a buffer swap; the interval between two swaps gives FPS.
func (p *PerfCollector) Present() {
	t := p.now()
	if !p.lastPresent.IsZero() {
		p.present = t.Sub(p.lastPresent)
	}
	p.lastPresent = t
}

// PhaseShare is one phase's average time and its share of the frame.
type PhaseShare struct {
	Name string
	Avg  time.Duration
	Pct  float64
}

// PerfReport averages the stored frames.
type PerfReport struct {
	Frames   int
	AvgFrame time.Duration
	MaxFrame time.Duration

	// Phases in frame order.
	Phases [len(Phases)]PhaseShare

	StepsPerFrame      float64
	ParticlesPerStep   float64
	RelaxationsPerStep float64
	// SolverPerStep is swim phase time divided by creature steps.
	SolverPerStep time.Duration

	WaterPerPass time.Duration
	CellsPerPass int

	FPS float64
}

// Report averages the frames currently in the window.
func (p *PerfCollector) Report() PerfReport {
	var r PerfReport
	for i, name := range Phases {
		r.Phases[i].Name = name
	}
	if p.present > 0 {
		r.FPS = float64(time.Second) / float64(p.present)
	}
	if p.filled == 0 {
		return r
	}

	var sum frameCost
	for _, f := range p.ring[:p.filled] {
		sum.total += f.total
		r.MaxFrame = max(r.MaxFrame, f.total)
		for i, d := range f.phases {
			sum.phases[i] += d
		}
		sum.steps += f.steps
		sum.particles += f.particles
		sum.relaxations += f.relaxations
		sum.waterPasses += f.waterPasses
		sum.waterCells += f.waterCells
	}

	n := p.filled
	r.Frames = n
	r.AvgFrame = sum.total / time.Duration(n)
	for i, d := range sum.phases {
		r.Phases[i].Avg = d / time.Duration(n)
		if sum.total > 0 {
			r.Phases[i].Pct = float64(d) / float64(sum.total) * 100
		}
	}

	r.StepsPerFrame = float64(sum.steps) / float64(n)
	if sum.steps > 0 {
		r.ParticlesPerStep = float64(sum.particles) / float64(sum.steps)
		r.RelaxationsPerStep = float64(sum.relaxations) / float64(sum.steps)
		r.SolverPerStep = sum.phases[phaseIndex(PhaseSwim)] / time.Duration(sum.steps)
	}
	if sum.waterPasses > 0 {
		r.WaterPerPass = sum.phases[phaseIndex(PhaseWater)] / time.Duration(sum.waterPasses)
		r.CellsPerPass = sum.waterCells / sum.waterPasses
	}
	return r
}

// Phase returns the share of the named phase, zero if unknown.
func (r PerfReport) Phase(name string) PhaseShare {
	if i := phaseIndex(name); i >= 0 {
		return r.Phases[i]
	}
	return PhaseShare{Name: name}
}

// LogValue implements slog.LogValuer.
func (r PerfReport) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", r.Frames),
		slog.Int64("frame_us", r.AvgFrame.Microseconds()),
		slog.Int64("max_frame_us", r.MaxFrame.Microseconds()),
		slog.Float64("steps_per_frame", r.StepsPerFrame),
		slog.Float64("particles_per_step", r.ParticlesPerStep),
		slog.Float64("relaxations_per_step", r.RelaxationsPerStep),
		slog.Int64("solver_ns_per_step", r.SolverPerStep.Nanoseconds()),
		slog.Int64("water_ns_per_pass", r.WaterPerPass.Nanoseconds()),
	}
	if r.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", r.FPS))
	}
	for _, s := range r.Phases {
		if s.Pct > 0.1 {
			attrs = append(attrs, slog.Float64(s.Name+"_pct", s.Pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is the perf part of a windows.csv line.
type PerfRow struct {
	FrameUS            int64   `csv:"frame_us"`
	StepsPerFrame      float64 `csv:"steps_per_frame"`
	ParticlesPerStep   float64 `csv:"particles_per_step"`
	RelaxationsPerStep float64 `csv:"relaxations_per_step"`
	SolverNSPerStep    int64   `csv:"solver_ns_per_step"`
	WaterNSPerPass     int64   `csv:"water_ns_per_pass"`
	WaterPct           float64 `csv:"water_pct"`
	SwimPct            float64 `csv:"swim_pct"`
	RenderPct          float64 `csv:"render_pct"`
	FPS                float64 `csv:"fps"`
}

// Row flattens the report for CSV output.
func (r PerfReport) Row() PerfRow {
	return PerfRow{
		FrameUS:            r.AvgFrame.Microseconds(),
		StepsPerFrame:      r.StepsPerFrame,
		ParticlesPerStep:   r.ParticlesPerStep,
		RelaxationsPerStep: r.RelaxationsPerStep,
		SolverNSPerStep:    r.SolverPerStep.Nanoseconds(),
		WaterNSPerPass:     r.WaterPerPass.Nanoseconds(),
		WaterPct:           r.Phase(PhaseWater).Pct,
		SwimPct:            r.Phase(PhaseSwim).Pct,
		RenderPct:          r.Phase(PhaseRender).Pct,
		FPS:                r.FPS,
	}
}
