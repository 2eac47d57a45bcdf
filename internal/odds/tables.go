package odds

import (
	"sort"

	"github.com/samber/lo"
)

// Tier is the rarity class of a unit, 1 (common) through 5 (legendary).
type Tier int

// DropRates maps player level → tier → percent chance that a shop slot rolls that tier.
type DropRates map[int]map[Tier]int

// PoolSizes maps tier → copies in circulation for one unique unit of that tier.
type PoolSizes map[Tier]int

const (
	// DefaultUniquesPerTier is how many distinct units share one tier's pool.
	DefaultUniquesPerTier = 13
	// DefaultGoldPerRoll is the price of one shop refresh.
	DefaultGoldPerRoll = 2
)

// Tables is one immutable snapshot of the reference data the engine reads.
// Build it once and never write to the maps afterwards.
type Tables struct {
	DropRates      DropRates
	PoolSizes      PoolSizes
	UniquesPerTier int
	GoldPerRoll    int
	Version        string
}

// DefaultTables returns the built-in reference tables.
func DefaultTables() Tables {
	return Tables{
		DropRates: DropRates{
			3:  {1: 75, 2: 25, 3: 0, 4: 0, 5: 0},
			4:  {1: 55, 2: 30, 3: 15, 4: 0, 5: 0},
			5:  {1: 45, 2: 33, 3: 20, 4: 2, 5: 0},
			6:  {1: 30, 2: 40, 3: 25, 4: 5, 5: 0},
			7:  {1: 20, 2: 33, 3: 36, 4: 10, 5: 1},
			8:  {1: 18, 2: 27, 3: 32, 4: 20, 5: 3},
			9:  {1: 15, 2: 20, 3: 25, 4: 30, 5: 10},
			10: {1: 5, 2: 10, 3: 20, 4: 40, 5: 25},
			11: {1: 1, 2: 2, 3: 12, 4: 50, 5: 35},
		},
		PoolSizes: PoolSizes{
			1: 22,
			2: 20,
			3: 17,
			4: 10,
			5: 9,
		},
		UniquesPerTier: DefaultUniquesPerTier,
		GoldPerRoll:    DefaultGoldPerRoll,
		Version:        "builtin",
	}
}

// Levels returns the levels present in the drop-rate table, ascending.
func (t Tables) Levels() []int {
	levels := lo.Keys(t.DropRates)
	sort.Ints(levels)
	return levels
}

// Tiers returns the tiers present in the pool-size table, ascending.
func (t Tables) Tiers() []Tier {
	tiers := lo.Keys(t.PoolSizes)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	return tiers
}

// RowSum is the total of one level's tier rates. Valid rows sum to 100.
func (t Tables) RowSum(level int) int {
	return lo.Sum(lo.Values(t.DropRates[level]))
}

// rate looks up the drop rate for a level and tier. ok is false when either key is missing.
func (t Tables) rate(level int, tier Tier) (int, bool) {
	row, ok := t.DropRates[level]
	if !ok {
		return 0, false
	}
	r, ok := row[tier]
	return r, ok
}
