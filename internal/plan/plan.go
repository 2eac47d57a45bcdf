package plan

import (
	"github.com/pkg/errors"

	"github.com/xtding233/roll-odds/internal/odds"
)

// MaxCurvePoints bounds the length of a Curve.
const MaxCurvePoints = 1000

// ErrUnreachable is returned when even the gold limit does not reach the target.
var ErrUnreachable = errors.New("target chance is not reachable within the gold limit")

// Plan is the cheapest budget that reaches a target chance.
type Plan struct {
	Target float64 `json:"target"`
	Gold   int     `json:"gold"`
	Rolls  int     `json:"rolls"`
	Chance float64 `json:"chance"`
}

// Point is one sample of chance against gold budget.
type Point struct {
	Gold   int     `json:"gold"`
	Rolls  int     `json:"rolls"`
	Chance float64 `json:"chance"`
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(odds.ErrValidation, format, args...)
}

// MinGoldForChance finds the least gold whose chance is at least target percent.
// req.Gold is ignored; maxGold caps the search. The answer is always a whole
// number of rolls, since leftover gold buys nothing.
//
// The search relies on chance being non-decreasing in rolls, which holds for every
// request whose per-roll chance lies in [0,1].
func MinGoldForChance(e *odds.Engine, req odds.Request, target float64, maxGold int) (Plan, error) {
	if !(target > 0 && target <= 100) {
		return Plan{}, invalid("target %v outside (0,100]", target)
	}
	price := e.Price()
	req.Gold = maxGold
	if err := e.Check(req); err != nil {
		return Plan{}, err
	}

	chanceAt := func(rolls int) (float64, error) {
		r := req
		r.Gold = price.CostOf(rolls)
		res, err := e.Compute(r)
		return res.Percent, err
	}

	lo, hi := max(1, price.RollsFor(e.MinGold())), price.RollsFor(maxGold)
	top, err := chanceAt(hi)
	if err != nil {
		return Plan{}, err
	}
	if top < target {
		return Plan{Target: target}, ErrUnreachable
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		c, err := chanceAt(mid)
		if err != nil {
			return Plan{}, err
		}
		if c >= target {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	chance, err := chanceAt(lo)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Target: target,
		Gold:   price.CostOf(lo),
		Rolls:  lo,
		Chance: chance,
	}, nil
}

// Curve samples the chance for budgets from..to (inclusive) in steps of step gold.
// A non-positive step defaults to the price of one roll; from is raised to the
// smallest budget the engine accepts.
func Curve(e *odds.Engine, req odds.Request, from, to, step int) ([]Point, error) {
	price := e.Price()
	if step <= 0 {
		step = price.PerRoll
	}
	if from < e.MinGold() {
		from = e.MinGold()
	}
	if to < from {
		return nil, invalid("curve range %d..%d is empty", from, to)
	}
	n := (to-from)/step + 1
	if n > MaxCurvePoints {
		return nil, invalid("curve has %d points, limit is %d", n, MaxCurvePoints)
	}

	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		gold := from + i*step
		r := req
		r.Gold = gold
		res, err := e.Compute(r)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Gold: gold, Rolls: res.Breakdown.Rolls, Chance: res.Percent})
	}
	return points, nil
}
