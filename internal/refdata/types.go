// types.go
package refdata

// RawConfig is the reference data as it appears in YAML.
type RawConfig struct {
	Version        string              `yaml:"version" json:"version"`
	DropRates      map[int]map[int]int `yaml:"drop_rates" json:"dropRates"`
	PoolSizes      map[int]int         `yaml:"pool_sizes" json:"poolSizes"`
	UniquesPerTier *int                `yaml:"uniques_per_tier,omitempty" json:"uniquesPerTier,omitempty"`
	GoldPerRoll    *int                `yaml:"gold_per_roll,omitempty" json:"goldPerRoll,omitempty"`
	Notes          string              `yaml:"notes,omitempty" json:"notes,omitempty"`
}
