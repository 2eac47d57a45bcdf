// resolve.go
package refdata

import (
	"github.com/xtding233/roll-odds/internal/odds"
)

// Resolve turns a validated RawConfig into an engine-ready Tables snapshot.
// The returned maps are fresh copies and share nothing with cfg.
func Resolve(cfg RawConfig) odds.Tables {
	t := odds.Tables{
		DropRates:      make(odds.DropRates, len(cfg.DropRates)),
		PoolSizes:      make(odds.PoolSizes, len(cfg.PoolSizes)),
		UniquesPerTier: odds.DefaultUniquesPerTier,
		GoldPerRoll:    odds.DefaultGoldPerRoll,
		Version:        cfg.Version,
	}
	for level, row := range cfg.DropRates {
		r := make(map[odds.Tier]int, len(row))
		for tier, p := range row {
			r[odds.Tier(tier)] = p
		}
		t.DropRates[level] = r
	}
	for tier, n := range cfg.PoolSizes {
		t.PoolSizes[odds.Tier(tier)] = n
	}
	if cfg.UniquesPerTier != nil {
		t.UniquesPerTier = *cfg.UniquesPerTier
	}
	if cfg.GoldPerRoll != nil {
		t.GoldPerRoll = *cfg.GoldPerRoll
	}
	return t
}

// Unresolve is the inverse of Resolve, used to dump the active tables as YAML.
func Unresolve(t odds.Tables) RawConfig {
	cfg := RawConfig{
		Version:   t.Version,
		DropRates: make(map[int]map[int]int, len(t.DropRates)),
		PoolSizes: make(map[int]int, len(t.PoolSizes)),
	}
	for level, row := range t.DropRates {
		r := make(map[int]int, len(row))
		for tier, p := range row {
			r[int(tier)] = p
		}
		cfg.DropRates[level] = r
	}
	for tier, n := range t.PoolSizes {
		cfg.PoolSizes[int(tier)] = n
	}
	uniques, gold := t.UniquesPerTier, t.GoldPerRoll
	cfg.UniquesPerTier, cfg.GoldPerRoll = &uniques, &gold
	return cfg
}
