package odds

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() Request {
	return Request{Level: 3, Tier: 1, Gold: 50, UnitsRemoved: 0, TierUnitsRemoved: 0}
}

func TestDefaultRowsSumToHundred(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9, 10, 11}, tables.Levels())
	assert.Equal(t, []Tier{1, 2, 3, 4, 5}, tables.Tiers())
	for _, level := range tables.Levels() {
		assert.Equal(t, 100, tables.RowSum(level), "level %d", level)
		assert.Len(t, tables.DropRates[level], 5, "level %d", level)
	}
}

func TestComputeRegressionScenario(t *testing.T) {
	e := NewEngine(DefaultTables())
	res, err := e.Compute(baseRequest())
	require.NoError(t, err)

	b := res.Breakdown
	assert.Equal(t, 25, b.Rolls)
	assert.InDelta(t, 0.75, b.BaseOdds, 1e-12)
	assert.Equal(t, 22, b.PoolSize)
	assert.Equal(t, 22, b.AvailableUnits)
	assert.Equal(t, 286, b.TotalUnitsInTierPool)
	assert.InDelta(t, 0.75*22.0/286.0, b.PerSlotUnitChance, 1e-12)

	want := (1 - math.Pow(1-0.75*22.0/286.0, 25)) * 100
	assert.InDelta(t, want, res.Percent, 1e-9)
	assert.InDelta(t, 77.36, res.Percent, 0.01)
	assert.Equal(t, "Chance to hit a desired unit: 77.36%", Format(res))
}

func TestComputeRejectsLowGold(t *testing.T) {
	e := NewEngine(DefaultTables())
	for _, gold := range []int{-10, -1, 0, 1} {
		req := baseRequest()
		req.Gold = gold
		_, err := e.Compute(req)
		assert.True(t, errors.Is(err, ErrValidation), "gold=%d err=%v", gold, err)
		assert.Equal(t, ValidationMessage, Render(Result{}, err))
	}

	req := baseRequest()
	req.Gold = 2
	res, err := e.Compute(req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Breakdown.Rolls)
}

func TestComputeRejectsUnknownKeysAndNegatives(t *testing.T) {
	e := NewEngine(DefaultTables())
	cases := map[string]func(*Request){
		"level too low":      func(r *Request) { r.Level = 2 },
		"level too high":     func(r *Request) { r.Level = 12 },
		"tier zero":          func(r *Request) { r.Tier = 0 },
		"tier six":           func(r *Request) { r.Tier = 6 },
		"negative units":     func(r *Request) { r.UnitsRemoved = -1 },
		"negative tierUnits": func(r *Request) { r.TierUnitsRemoved = -1 },
		"negative level":     func(r *Request) { r.Level = -3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := baseRequest()
			mutate(&req)
			_, err := e.Compute(req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestComputeMonotoneInGold(t *testing.T) {
	e := NewEngine(DefaultTables())
	req := Request{Level: 7, Tier: 3, UnitsRemoved: 4, TierUnitsRemoved: 30}
	prev := -1.0
	prevRolls := 0
	for gold := 2; gold <= 200; gold++ {
		req.Gold = gold
		res, err := e.Compute(req)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Percent, prev, "gold=%d", gold)
		assert.GreaterOrEqual(t, res.Breakdown.Rolls, prevRolls)
		if gold%2 == 0 && gold > 2 {
			assert.Greater(t, res.Breakdown.Rolls, prevRolls, "gold=%d", gold)
		}
		prev, prevRolls = res.Percent, res.Breakdown.Rolls
	}
}

func TestComputeMonotoneInUnitsRemoved(t *testing.T) {
	e := NewEngine(DefaultTables())
	req := Request{Level: 8, Tier: 4, Gold: 60, TierUnitsRemoved: 12}
	prev := math.Inf(1)
	prevAvailable := math.MaxInt
	for removed := 0; removed < 10; removed++ {
		req.UnitsRemoved = removed
		res, err := e.Compute(req)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Percent, prev, "removed=%d", removed)
		assert.Less(t, res.Breakdown.AvailableUnits, prevAvailable)
		prev, prevAvailable = res.Percent, res.Breakdown.AvailableUnits
	}
}

func TestComputeIdempotent(t *testing.T) {
	e := NewEngine(DefaultTables())
	req := Request{Level: 9, Tier: 5, Gold: 73, UnitsRemoved: 2, TierUnitsRemoved: 20}
	a, errA := e.Compute(req)
	b, errB := e.Compute(req)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestComputeClampsNegativeToZero(t *testing.T) {
	e := NewEngine(DefaultTables())
	req := baseRequest()
	req.UnitsRemoved = 30 // more than the 22 copies that exist

	res, err := e.Compute(req)
	require.NoError(t, err)
	assert.Equal(t, -8, res.Breakdown.AvailableUnits)
	assert.Less(t, res.Breakdown.Raw, 0.0)
	assert.Equal(t, 0.0, res.Percent)
	assert.Equal(t, "Chance to hit a desired unit: 0.00%", Format(res))
}

func TestComputeEmptyTierPoolIsZero(t *testing.T) {
	e := NewEngine(DefaultTables())
	req := baseRequest()
	req.UnitsRemoved = 22
	req.TierUnitsRemoved = 286 // 0/0

	res, err := e.Compute(req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Percent)
}

func TestComputeZeroRateTier(t *testing.T) {
	e := NewEngine(DefaultTables())
	res, err := e.Compute(Request{Level: 3, Tier: 5, Gold: 100})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Percent)
}

func TestEngineUsesTablePrice(t *testing.T) {
	tables := DefaultTables()
	tables.GoldPerRoll = 5
	e := NewEngine(tables)

	_, err := e.Compute(Request{Level: 3, Tier: 1, Gold: 4})
	assert.ErrorIs(t, err, ErrValidation)

	res, err := e.Compute(Request{Level: 3, Tier: 1, Gold: 50})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Breakdown.Rolls)
}

func TestGoldFloorIgnoresCheaperTablePrice(t *testing.T) {
	tables := DefaultTables()
	tables.GoldPerRoll = 1
	e := NewEngine(tables)
	assert.Equal(t, 2, e.MinGold())

	_, err := e.Compute(Request{Level: 3, Tier: 1, Gold: 1})
	assert.ErrorIs(t, err, ErrValidation)

	res, err := e.Compute(Request{Level: 3, Tier: 1, Gold: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Breakdown.Rolls)
}

func TestBreakdownGoldLeftOver(t *testing.T) {
	e := NewEngine(DefaultTables())
	res, err := e.Compute(baseRequest())
	require.NoError(t, err)
	assert.Zero(t, res.Breakdown.GoldLeftOver)

	req := baseRequest()
	req.Gold = 51
	res, err = e.Compute(req)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Breakdown.Rolls)
	assert.Equal(t, 1, res.Breakdown.GoldLeftOver)
}
