package odds

import "math"

// samplingChance maps a per-slot chance onto [0,1] so it can drive a trial.
// Depleted or over-removed pools produce chances outside that range.
func samplingChance(p float64) float64 {
	switch {
	case math.IsNaN(p), p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	return p
}

// firstHit draws the 1-based index of the first hit in a session of rolls
// independent trials at chance p, or 0 when the session misses. It inverts the
// geometric distribution, so one uniform draw covers a session of any length.
func firstHit(p float64, rolls int, rng RandomSource) int {
	switch {
	case rolls <= 0, !(p > 0):
		return 0
	case p >= 1:
		return 1
	}

	// P(k <= n) = 1 - (1-p)^n
	k := math.Ceil(math.Log1p(-rng.Float64()) / math.Log1p(-p))
	if k < 1 {
		k = 1
	}
	if k > float64(rolls) {
		return 0
	}
	return int(k)
}
