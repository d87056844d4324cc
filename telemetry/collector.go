package telemetry

import "math"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowStartTime float64

	// Event counters for current window
	counts [EventClick + 1]int

	bubblesSpawned int
	speeds         []float64
	phaseSum       float64
	phaseSamples   int
	maxViolation   float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts one event of type e.
func (c *Collector) Record(e EventType) {
	c.counts[e]++
}

// RecordBubbles records bubbles spawned and burst during one frame.
func (c *Collector) RecordBubbles(spawned, burst int) {
	c.bubblesSpawned += spawned
	c.counts[EventBubbleBurst] += burst
}

// RecordSwim records one jelly's speed and pulse phase for a frame.
func (c *Collector) RecordSwim(speed, phase float64) {
	c.speeds = append(c.speeds, speed)
	c.phaseSum += phase
	c.phaseSamples++
}

// RecordViolation keeps the worst constraint error seen in the window.
func (c *Collector) RecordViolation(v float64) {
	c.maxViolation = math.Max(c.maxViolation, v)
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
// jellies and bubbles are the scene counts at window end, amplitude the
// water deviation from rest.
func (c *Collector) Flush(tick int32, simTime float64, jellies, bubbles int, amplitude float64) WindowStats {
	mean, p10, p50, p90 := ComputeStats(c.speeds)
	var phaseMean float64
	if c.phaseSamples > 0 {
		phaseMean = c.phaseSum / float64(c.phaseSamples)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      simTime,

		Jellies: jellies,
		Bubbles: bubbles,

		Surfacings:     c.counts[EventSurfacing],
		Drops:          c.counts[EventDrop],
		BubblesSpawned: c.bubblesSpawned,
		BubblesBurst:   c.counts[EventBubbleBurst],
		Clicks:         c.counts[EventClick],

		SpeedMean: mean,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
		PhaseMean: phaseMean,

		MaxViolation:   c.maxViolation,
		WaterAmplitude: amplitude,
	}

	// Reset for next window
	c.windowStartTick = tick
	c.windowStartTime = simTime
	c.counts = [EventClick + 1]int{}
	c.bubblesSpawned = 0
	c.speeds = c.speeds[:0]
	c.phaseSum = 0
	c.phaseSamples = 0
	c.maxViolation = 0

	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
