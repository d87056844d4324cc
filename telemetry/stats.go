package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Scene counts at window end
	Jellies int `csv:"jellies"`
	Bubbles int `csv:"bubbles"`

	// Events during window
	Surfacings     int `csv:"surfacings"`
	Drops          int `csv:"drops"`
	BubblesSpawned int `csv:"bubbles_spawned"`
	BubblesBurst   int `csv:"bubbles_burst"`
	Clicks         int `csv:"clicks"`

	// Swim speed distribution over all jellies and frames
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	PhaseMean float64 `csv:"phase_mean"`

	// Worst distance constraint error seen in the window
	MaxViolation float64 `csv:"max_violation"`

	// Water surface deviation from rest at window end
	WaterAmplitude float64 `csv:"water_amplitude"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeStats calculates mean and percentiles of values.
func ComputeStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("jellies", s.Jellies),
		slog.Int("bubbles", s.Bubbles),
		slog.Int("surfacings", s.Surfacings),
		slog.Int("drops", s.Drops),
		slog.Int("bubbles_spawned", s.BubblesSpawned),
		slog.Int("bubbles_burst", s.BubblesBurst),
		slog.Int("clicks", s.Clicks),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("phase_mean", s.PhaseMean),
		slog.Float64("max_violation", s.MaxViolation),
		slog.Float64("water_amplitude", s.WaterAmplitude),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
