package water

// Dropper is anything that accepts drops in simulation space.
type Dropper interface {
	AddDrop(x, y, radius, strength float64)
}

// Rand is the randomness source for automatic drops.
type Rand interface {
	Float64() float64
}

// Rain injects a random drop every Interval seconds so the surface never
// goes completely still.
type Rain struct {
	Interval float64
	Enabled  bool

	last float64
}

// Update injects a drop if more than Interval seconds passed since the last
// one. It reports whether a drop was made.
func (r *Rain) Update(now float64, rng Rand, d Dropper) bool {
	if !r.Enabled || now-r.last <= r.Interval {
		return false
	}
	x := (rng.Float64() - 0.5) * 1.5
	y := (rng.Float64() - 0.5) * 1.5
	d.AddDrop(x, y, 0.03+rng.Float64()*0.02, 0.2+rng.Float64()*0.2)
	r.last = now
	return true
}
