package refdata

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/roll-odds/internal/odds"
)

//go:embed default.yaml
var defaultYAML []byte

// Loader reads the built-in tables and merges an optional override file on top.
type Loader struct {
	overridePath string // empty means built-in tables only
}

// NewLoader creates a loader. overridePath may be empty.
func NewLoader(overridePath string) *Loader {
	return &Loader{overridePath: overridePath}
}

// Path is the override file this loader watches, or "".
func (l *Loader) Path() string { return l.overridePath }

// LoadMerged parses default → override and returns the merged RawConfig
// without validation.
func (l *Loader) LoadMerged() (RawConfig, error) {
	defCfg, err := parseYAML(defaultYAML)
	if err != nil {
		return RawConfig{}, errors.Wrap(err, "parse built-in tables")
	}
	if l.overridePath == "" {
		return defCfg, nil
	}

	overrideCfg, err := readYAML(l.overridePath)
	if err != nil {
		return RawConfig{}, errors.Wrapf(err, "read %s", l.overridePath)
	}
	return mergeRaw(defCfg, overrideCfg), nil
}

// Load returns a validated Tables snapshot.
func (l *Loader) Load() (odds.Tables, error) {
	cfg, err := l.LoadMerged()
	if err != nil {
		return odds.Tables{}, err
	}
	if err := ValidateRaw(cfg); err != nil {
		return odds.Tables{}, err
	}
	return Resolve(cfg), nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	return parseYAML(b)
}

func parseYAML(b []byte) (RawConfig, error) {
	var cfg RawConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw lays b over a. Level rows and pool entries named in b replace the
// ones in a as a whole; unnamed ones are kept.
func mergeRaw(a, b RawConfig) RawConfig {
	out := RawConfig{
		Version:        a.Version,
		Notes:          a.Notes,
		UniquesPerTier: a.UniquesPerTier,
		GoldPerRoll:    a.GoldPerRoll,
		DropRates:      make(map[int]map[int]int, len(a.DropRates)),
		PoolSizes:      make(map[int]int, len(a.PoolSizes)),
	}
	for level, row := range a.DropRates {
		out.DropRates[level] = copyRow(row)
	}
	for tier, n := range a.PoolSizes {
		out.PoolSizes[tier] = n
	}

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.UniquesPerTier != nil {
		out.UniquesPerTier = b.UniquesPerTier
	}
	if b.GoldPerRoll != nil {
		out.GoldPerRoll = b.GoldPerRoll
	}
	for level, row := range b.DropRates {
		out.DropRates[level] = copyRow(row)
	}
	for tier, n := range b.PoolSizes {
		out.PoolSizes[tier] = n
	}
	return out
}

func copyRow(row map[int]int) map[int]int {
	c := make(map[int]int, len(row))
	for k, v := range row {
		c[k] = v
	}
	return c
}
