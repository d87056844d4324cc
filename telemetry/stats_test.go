package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.sorted, tt.p), 0.001)
		})
	}
}

func TestComputeStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90 := ComputeStats(values)

	assert.InDelta(t, 0.55, mean, 0.001)
	assert.InDelta(t, 0.19, p10, 0.01)
	assert.InDelta(t, 0.55, p50, 0.01)
	assert.InDelta(t, 0.91, p90, 0.01)
}

func TestComputeStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeStats([]float64{})
	assert.Equal(t, [4]float64{}, [4]float64{mean, p10, p50, p90})
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(5)
	assert.False(t, c.ShouldFlush(4.9), "flushed before the window elapsed")

	c.Record(EventSurfacing)
	c.Record(EventDrop)
	c.Record(EventDrop)
	c.RecordBubbles(3, 1)
	c.RecordSwim(0.2, 0.5)
	c.RecordSwim(0.4, 1.0)
	c.RecordViolation(0.3)
	c.RecordViolation(0.1)

	require.True(t, c.ShouldFlush(5), "expected flush at the window boundary")
	s := c.Flush(300, 5, 3, 2, 0.01)
	assert.Equal(t, 1, s.Surfacings)
	assert.Equal(t, 2, s.Drops)
	assert.Equal(t, 3, s.BubblesSpawned)
	assert.Equal(t, 1, s.BubblesBurst)
	assert.InDelta(t, 0.3, s.SpeedMean, 1e-9)
	assert.InDelta(t, 0.75, s.PhaseMean, 1e-9)
	assert.Equal(t, 0.3, s.MaxViolation)
	assert.Equal(t, 3, s.Jellies)
	assert.Equal(t, 2, s.Bubbles)
	assert.Equal(t, int32(300), s.WindowEndTick)

	// Counters reset for the next window.
	assert.False(t, c.ShouldFlush(9), "window did not restart at the flush time")
	next := c.Flush(600, 10, 3, 0, 0)
	assert.Zero(t, next.Surfacings)
	assert.Zero(t, next.SpeedMean)
	assert.Equal(t, int32(300), next.WindowStartTick)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "surfacing", EventSurfacing.String())
	assert.Equal(t, "drop", EventDrop.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
