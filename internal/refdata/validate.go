package refdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/xtding233/roll-odds/internal/odds"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if len(cfg.PoolSizes) == 0 {
		errs = append(errs, "pool_sizes must not be empty")
	}
	tiers := lo.Keys(cfg.PoolSizes)
	sort.Ints(tiers)
	for _, tier := range tiers {
		if tier <= 0 {
			errs = append(errs, fmt.Sprintf("pool_sizes: tier %d must be >= 1", tier))
		}
		if cfg.PoolSizes[tier] <= 0 {
			errs = append(errs, fmt.Sprintf("pool_sizes[%d] must be >= 1", tier))
		}
	}

	if len(cfg.DropRates) == 0 {
		errs = append(errs, "drop_rates must not be empty")
	}
	levels := lo.Keys(cfg.DropRates)
	sort.Ints(levels)
	for _, level := range levels {
		row := cfg.DropRates[level]
		if level <= 0 {
			errs = append(errs, fmt.Sprintf("drop_rates: level %d must be >= 1", level))
		}
		for _, tier := range tiers {
			if _, ok := row[tier]; !ok {
				errs = append(errs, fmt.Sprintf("drop_rates[%d] is missing tier %d", level, tier))
			}
		}
		rowTiers := lo.Keys(row)
		sort.Ints(rowTiers)
		for _, tier := range rowTiers {
			if _, ok := cfg.PoolSizes[tier]; !ok {
				errs = append(errs, fmt.Sprintf("drop_rates[%d] names tier %d which has no pool size", level, tier))
			}
			if p := row[tier]; p < 0 || p > 100 {
				errs = append(errs, fmt.Sprintf("drop_rates[%d][%d] must be in [0,100]", level, tier))
			}
		}
		if sum := lo.Sum(lo.Values(row)); sum != 100 {
			errs = append(errs, fmt.Sprintf("drop_rates[%d] sums to %d, want 100", level, sum))
		}
	}

	if cfg.UniquesPerTier != nil && *cfg.UniquesPerTier <= 0 {
		errs = append(errs, "uniques_per_tier must be >= 1")
	}
	if cfg.GoldPerRoll != nil && *cfg.GoldPerRoll < odds.DefaultGoldPerRoll {
		errs = append(errs, fmt.Sprintf("gold_per_roll must be >= %d", odds.DefaultGoldPerRoll))
	}

	if len(errs) > 0 {
		return errors.Errorf("reference data validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
