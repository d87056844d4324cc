package main

import (
	"github.com/pthm-cable/aquarium/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name  string
	Path  string // config path for logging
	Min   float64
	Max   float64
	Field func(*config.Config) *float64
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the swim and coupling parameters tuned together.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "thrust_factor", Path: "swim.thrust_factor", Min: 0.5, Max: 5.0,
				Field: func(c *config.Config) *float64 { return &c.Swim.ThrustFactor }},
			{Name: "drag_contract", Path: "swim.drag_contract", Min: 0.5, Max: 0.99,
				Field: func(c *config.Config) *float64 { return &c.Swim.DragContract }},
			{Name: "drag_expand", Path: "swim.drag_expand", Min: 0.1, Max: 0.9,
				Field: func(c *config.Config) *float64 { return &c.Swim.DragExpand }},
			{Name: "velocity_retention", Path: "physics.velocity_retention", Min: 0.5, Max: 0.99,
				Field: func(c *config.Config) *float64 { return &c.Physics.VelocityRetention }},
			{Name: "tentacle_drag", Path: "physics.tentacle_drag", Min: 1, Max: 40,
				Field: func(c *config.Config) *float64 { return &c.Physics.TentacleDrag }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Extract reads the current values from cfg.
func (pv *ParamVector) Extract(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		v[i] = *s.Field(cfg)
	}
	return v
}

// Apply writes values into cfg after clamping them to their bounds.
func (pv *ParamVector) Apply(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].Field(cfg) = v
	}
}

// Normalize maps raw values onto [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = (raw[i] - s.Min) / (s.Max - s.Min)
	}
	return out
}

// Denormalize maps [0,1] values back onto their ranges.
func (pv *ParamVector) Denormalize(norm []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = s.Min + norm[i]*(s.Max-s.Min)
	}
	return out
}

// Clamp limits every value to its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = min(max(v[i], s.Min), s.Max)
	}
	return out
}
