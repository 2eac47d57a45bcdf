package odds

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// Stats summarizes rolls-until-first-hit over the sessions that hit.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// Simulation is the outcome of replaying one Request many times.
type Simulation struct {
	Trials  int     `json:"trials"`
	Hits    int     `json:"hits"`
	Percent float64 `json:"chance"`
	// Expected is the closed-form chance for the same request.
	Expected      float64 `json:"expected"`
	RollsToFirst  Stats   `json:"rollsToFirstHit"`
	ChancePerRoll float64 `json:"chancePerRoll"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	mean := float64(lo.Sum(xs)) / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// Simulate replays req as trials independent sessions under the same model
// Compute uses, as an empirical cross-check of the closed form. Each session
// costs one draw from rng whatever its gold. A nil rng uses DefaultRNG.
func (e *Engine) Simulate(req Request, trials int, rng RandomSource) (Simulation, error) {
	res, err := e.Compute(req)
	if err != nil {
		return Simulation{}, err
	}
	sim := Simulation{
		Expected:      res.Percent,
		ChancePerRoll: res.Breakdown.PerSlotUnitChance,
	}
	if trials <= 0 {
		return sim, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	p := samplingChance(res.Breakdown.PerSlotUnitChance)
	firsts := make([]int, 0, trials)
	for i := 0; i < trials; i++ {
		if first := firstHit(p, res.Breakdown.Rolls, rng); first > 0 {
			firsts = append(firsts, first)
		}
	}

	sim.Trials = trials
	sim.Hits = len(firsts)
	sim.Percent = float64(sim.Hits) / float64(trials) * 100
	sim.RollsToFirst = calcStats(firsts)
	return sim, nil
}
