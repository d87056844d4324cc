// Package telemetry provides window statistics, event records and perf
// tracking for the aquarium.
package telemetry

import "log/slog"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSurfacing EventType = iota
	EventDrop
	EventBubbleBurst
	EventClick
)

func (e EventType) String() string {
	switch e {
	case EventSurfacing:
		return "surfacing"
	case EventDrop:
		return "drop"
	case EventBubbleBurst:
		return "bubble_burst"
	case EventClick:
		return "click"
	}
	return "unknown"
}

// SurfacingEvent records a jelly reaching the water surface. It is both the
// log record and the surfacings.csv row.
type SurfacingEvent struct {
	Tick    int32   `csv:"tick"`
	SimTime float64 `csv:"sim_time"`
	Name    string  `csv:"name"`
	Route   string  `csv:"route"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Z       float64 `csv:"z"`
	SimX    float64 `csv:"sim_x"` // drop position in water space
	SimY    float64 `csv:"sim_y"`
}

// LogValue implements slog.LogValuer for structured logging.
func (e SurfacingEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(e.Tick)),
		slog.String("name", e.Name),
		slog.String("route", e.Route),
		slog.Float64("x", e.X),
		slog.Float64("y", e.Y),
		slog.Float64("z", e.Z),
	)
}

// Drop sources.
const (
	DropRain      = "rain"
	DropBubble    = "bubble"
	DropSurfacing = "surfacing"
)

// DropEvent is one drop injected into the water, a drops.csv row.
type DropEvent struct {
	Tick     int32   `csv:"tick"`
	SimTime  float64 `csv:"sim_time"`
	Source   string  `csv:"source"`
	X        float64 `csv:"sim_x"`
	Y        float64 `csv:"sim_y"`
	Radius   float64 `csv:"radius"`
	Strength float64 `csv:"strength"`
}
