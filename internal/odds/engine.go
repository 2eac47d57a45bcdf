package odds

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/xtding233/roll-odds/internal/cost"
)

// ValidationMessage is the only text shown to a user for rejected input.
const ValidationMessage = "Fill out all fields with valid numbers."

// ErrValidation is returned, possibly wrapped with field detail, for any malformed
// or out-of-range input. Callers compare with errors.Is and show ValidationMessage.
var ErrValidation = errors.New(ValidationMessage)

var validate = validator.New()

// Request is one odds question. All fields are passed explicitly.
type Request struct {
	Level            int  `json:"level" validate:"min=0"`
	Tier             Tier `json:"tier" validate:"min=0"`
	Gold             int  `json:"gold" validate:"min=0"`
	UnitsRemoved     int  `json:"unitsRemoved" validate:"min=0"`
	TierUnitsRemoved int  `json:"tierUnitsRemoved" validate:"min=0"`
}

// Breakdown exposes the intermediate quantities of one computation.
type Breakdown struct {
	Rolls                int     `json:"rolls"`
	BaseOdds             float64 `json:"baseOdds"`
	PoolSize             int     `json:"poolSize"`
	AvailableUnits       int     `json:"availableUnits"`
	TotalUnitsInTierPool int     `json:"totalUnitsInTierPool"`
	PerSlotUnitChance    float64 `json:"perSlotUnitChance"`
	GoldLeftOver         int     `json:"goldLeftOver"`
	Raw                  float64 `json:"-"`
}

// Result is a successful computation: Percent is in [0,100] for sane inputs.
type Result struct {
	Percent   float64   `json:"chance"`
	Breakdown Breakdown `json:"breakdown"`
}

// Engine computes hit chances against one immutable Tables snapshot.
// It is safe for concurrent use.
type Engine struct {
	tables Tables
	price  cost.Price
}

// NewEngine binds an engine to a tables snapshot.
func NewEngine(t Tables) *Engine {
	price := cost.Gold
	if t.GoldPerRoll > 0 {
		price.PerRoll = t.GoldPerRoll
	}
	return &Engine{tables: t, price: price}
}

// Tables returns the snapshot this engine reads.
func (e *Engine) Tables() Tables { return e.tables }

// Price returns the refresh price this engine assumes.
func (e *Engine) Price() cost.Price { return e.price }

// MinGold is the smallest budget Check accepts: one roll, and never less than
// the standard refresh price whatever the tables say.
func (e *Engine) MinGold() int {
	return max(DefaultGoldPerRoll, e.price.PerRoll)
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// Check validates req against the engine's tables without computing anything.
func (e *Engine) Check(req Request) error {
	if err := validate.Struct(req); err != nil {
		return invalid("%v", err)
	}
	if req.Gold < e.MinGold() {
		return invalid("gold %d is below the minimum of %d", req.Gold, e.MinGold())
	}
	if _, ok := e.tables.PoolSizes[req.Tier]; !ok {
		return invalid("unknown tier %d", req.Tier)
	}
	if _, ok := e.tables.rate(req.Level, req.Tier); !ok {
		return invalid("unknown level %d", req.Level)
	}
	return nil
}

// Compute returns the percent chance that at least one of the rolls bought with
// req.Gold shows the desired unit.
//
// Each roll counts as a single trial at the per-slot chance; the five slots of a
// shop are not modelled separately. A negative or non-finite raw chance, which
// only arises when more units are reported removed than exist, yields 0.
func (e *Engine) Compute(req Request) (Result, error) {
	if err := e.Check(req); err != nil {
		return Result{}, err
	}

	b := e.breakdown(req)
	b.Raw = 1 - math.Pow(1-b.PerSlotUnitChance, float64(b.Rolls))
	if !(b.Raw >= 0) || math.IsInf(b.Raw, 0) {
		return Result{Percent: 0, Breakdown: b}, nil
	}
	return Result{Percent: b.Raw * 100, Breakdown: b}, nil
}

func (e *Engine) breakdown(req Request) Breakdown {
	rate, _ := e.tables.rate(req.Level, req.Tier)
	poolSize := e.tables.PoolSizes[req.Tier]
	uniques := e.tables.UniquesPerTier
	if uniques <= 0 {
		uniques = DefaultUniquesPerTier
	}

	b := Breakdown{
		Rolls:                e.price.RollsFor(req.Gold),
		BaseOdds:             float64(rate) / 100,
		PoolSize:             poolSize,
		AvailableUnits:       poolSize - req.UnitsRemoved,
		TotalUnitsInTierPool: poolSize*uniques - req.TierUnitsRemoved,
		GoldLeftOver:         e.price.Leftover(req.Gold),
	}
	b.PerSlotUnitChance = b.BaseOdds * (float64(b.AvailableUnits) / float64(b.TotalUnitsInTierPool))
	return b
}
