package locomotion

import (
	"math"

	"github.com/tanema/gween/ease"
)

// PulsePhase returns the bell phase at time t: an asymmetric wave that
// eases from 0 to 1 over the expansion share of the period and back to 0
// over the rest. 1 is fully expanded.
func PulsePhase(t, period, expandRatio float64) float64 {
	cycle := math.Mod(t, period) / period
	if cycle < 0 {
		cycle++
	}
	if cycle < expandRatio {
		u := cycle / expandRatio
		return float64(ease.InOutSine(float32(u), 0, 1, 1))
	}
	u := (cycle - expandRatio) / (1 - expandRatio)
	return 1 - float64(ease.InOutSine(float32(u), 0, 1, 1))
}
