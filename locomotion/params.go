package locomotion

// Params tunes the swim controller. Distances are in scene units, times in
// seconds and per-second factors are raised to the frame's dt.
type Params struct {
	Period      float64 // pulse period
	ExpandRatio float64 // share of the period spent expanding
	MaxDt       float64 // frame delta clamp

	ThrustFactor float64 // velocity impulse per unit of phase contraction
	DragContract float64 // velocity kept per second while contracting
	DragExpand   float64 // velocity kept per second while expanding
	Gravity      float64 // downward drift while swimming

	TurnSpeed float64 // heading interpolation rate
	WanderMin float64
	WanderMax float64

	SurfacingAccel float64
	SurfaceY       float64 // height that ends a surfacing episode
	WorldSurfaceY  float64 // water surface height reported to the callback

	BoundsXZ   float64
	BoundsYMin float64
	BoundsYMax float64
	Repel      float64

	OrientRate float64 // exponential smoothing rate of the displayed orientation

	ClickImpulse float64
	HitStrength  float64
	HitDecay     float64 // hit kept per second
}

// DefaultParams returns the tuning used by the aquarium.
func DefaultParams() Params {
	return Params{
		Period:         2.5,
		ExpandRatio:    0.75,
		MaxDt:          1.0 / 30,
		ThrustFactor:   2.0,
		DragContract:   0.85,
		DragExpand:     0.4,
		Gravity:        0.06,
		TurnSpeed:      0.7,
		WanderMin:      3.5,
		WanderMax:      7.0,
		SurfacingAccel: 3.0,
		SurfaceY:       2.0,
		WorldSurfaceY:  5.0,
		BoundsXZ:       3.0,
		BoundsYMin:     0.8,
		BoundsYMax:     3.2,
		Repel:          1.2,
		OrientRate:     1.5,
		ClickImpulse:   4.0,
		HitStrength:    4.0,
		HitDecay:       0.003,
	}
}
