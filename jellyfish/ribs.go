package jellyfish

import (
	"math"

	"github.com/pthm-cable/aquarium/verlet"
)

// RadiusOffset is how far a fully expanded rib grows at yParam 1.
const RadiusOffset = 15

// BandKind identifies which family of rib constraints a band belongs to.
type BandKind uint8

const (
	// BandOuter loops around the rib.
	BandOuter BandKind = iota
	// BandInner is the tripod bracing across the rib.
	BandInner
	// BandSpine radiates from a core anchor to the rib.
	BandSpine
)

func (k BandKind) String() string {
	switch k {
	case BandOuter:
		return "outer"
	case BandInner:
		return "inner"
	case BandSpine:
		return "spine"
	}
	return "unknown"
}

// Band is one retunable constraint group of a rib.
type Band struct {
	Kind       BandKind
	Constraint verlet.Tunable
	// Radius is the rest radius the band's bounds derive from.
	Radius float64
	// Reach is the spine's maximum radius. Unused by other kinds.
	Reach float64
}

// Bounds returns the band's distance bounds with the rib expanded by offset.
func (b Band) Bounds(offset float64, segments int) (min, max float64) {
	r := b.Radius + offset
	switch b.Kind {
	case BandOuter:
		l := 2 * math.Pi * r / float64(segments)
		return l * 0.9, l
	case BandInner:
		l := 2 * math.Pi * r / 3
		return l * 0.8, l
	default:
		return r * 0.8, b.Reach + offset
	}
}

// Rib is one ring cross-section of the bell or tail.
type Rib struct {
	Ring   Span
	Radius float64
	// YParam is the normalized height used for shaping and modulation.
	YParam float64
	YPos   float64
	Bands  []Band
}

// Band returns the rib's band of the given kind.
func (r *Rib) Band(kind BandKind) (Band, bool) {
	for _, b := range r.Bands {
		if b.Kind == kind {
			return b, true
		}
	}
	return Band{}, false
}

// Modulate retunes every band of every rib for the given pulse phase.
// Only bounds change; the linked particles stay the same.
func Modulate(ribs []*Rib, phase float64, segments int) {
	for _, rib := range ribs {
		offset := rib.YParam * phase * RadiusOffset
		for _, b := range rib.Bands {
			b.Constraint.SetDistance(b.Bounds(offset, segments))
		}
	}
}
