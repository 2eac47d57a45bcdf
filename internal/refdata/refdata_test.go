package refdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/roll-odds/internal/odds"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestBuiltinMatchesDefaultTables(t *testing.T) {
	tables, err := NewLoader("").Load()
	require.NoError(t, err)
	assert.Equal(t, odds.DefaultTables(), tables)
}

func TestMissingOverrideFallsBackToBuiltin(t *testing.T) {
	tables, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, odds.DefaultTables().DropRates, tables.DropRates)
}

func TestOverrideReplacesNamedRows(t *testing.T) {
	p := writeFile(t, t.TempDir(), "tables.yaml", `
version: "set-11"
uniques_per_tier: 12
drop_rates:
  2: {1: 100, 2: 0, 3: 0, 4: 0, 5: 0}
  9: {1: 10, 2: 25, 3: 25, 4: 30, 5: 10}
pool_sizes:
  5: 10
`)
	tables, err := NewLoader(p).Load()
	require.NoError(t, err)

	assert.Equal(t, "set-11", tables.Version)
	assert.Equal(t, 12, tables.UniquesPerTier)
	assert.Equal(t, 2, tables.GoldPerRoll)
	assert.Equal(t, 100, tables.DropRates[2][1])
	assert.Equal(t, 10, tables.DropRates[9][1])
	assert.Equal(t, 75, tables.DropRates[3][1], "untouched rows survive")
	assert.Equal(t, 10, tables.PoolSizes[5])
	assert.Equal(t, 22, tables.PoolSizes[1])
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, tables.Levels())
}

func TestValidateRaw(t *testing.T) {
	zero := 0
	cfg := RawConfig{
		DropRates: map[int]map[int]int{
			3: {1: 70, 2: 25},
			4: {1: 50, 2: 30, 3: 20},
			5: {1: 120, 2: -20},
		},
		PoolSizes:   map[int]int{1: 22, 2: 0},
		GoldPerRoll: &zero,
	}
	err := ValidateRaw(cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "drop_rates[3] sums to 95, want 100")
	assert.Contains(t, msg, "drop_rates[4] names tier 3 which has no pool size")
	assert.Contains(t, msg, "drop_rates[5][1] must be in [0,100]")
	assert.Contains(t, msg, "pool_sizes[2] must be >= 1")
	assert.Contains(t, msg, "gold_per_roll must be >= 2")

	one := 1
	err = ValidateRaw(RawConfig{
		DropRates:   map[int]map[int]int{3: {1: 100}},
		PoolSizes:   map[int]int{1: 22},
		GoldPerRoll: &one,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gold_per_roll must be >= 2")

	defCfg, err := parseYAML(defaultYAML)
	require.NoError(t, err)
	assert.NoError(t, ValidateRaw(defCfg))
}

func TestUnresolveRoundTripsThroughResolve(t *testing.T) {
	tables := odds.DefaultTables()
	assert.Equal(t, tables, Resolve(Unresolve(tables)))
}

func TestStoreReloadKeepsPreviousOnInvalid(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tables.yaml", `version: "v1"`)

	store, err := NewStore(NewLoader(p))
	require.NoError(t, err)
	first := store.Engine()
	assert.Equal(t, "v1", first.Tables().Version)

	writeFile(t, dir, "tables.yaml", `
drop_rates:
  3: {1: 50, 2: 25, 3: 0, 4: 0, 5: 0}
`)
	assert.Error(t, store.Reload())
	assert.Same(t, first, store.Engine())

	writeFile(t, dir, "tables.yaml", `
version: "v2"
gold_per_roll: 3
`)
	require.NoError(t, store.Reload())
	assert.Equal(t, "v2", store.Engine().Tables().Version)
	assert.Equal(t, 3, store.Engine().Price().PerRoll)
}

func TestNewStoreRejectsInvalid(t *testing.T) {
	p := writeFile(t, t.TempDir(), "tables.yaml", `pool_sizes: {1: -1}`)
	_, err := NewStore(NewLoader(p))
	assert.Error(t, err)
}

func TestReloadIfNewer(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tables.yaml")

	store, err := NewStore(NewLoader(p))
	require.NoError(t, err)
	assert.Equal(t, "builtin", store.Engine().Tables().Version)

	// file shows up after start
	last := modTime(p)
	assert.True(t, last.IsZero())
	writeFile(t, dir, "tables.yaml", `version: "a"`)
	last = store.reloadIfNewer(p, last)
	assert.Equal(t, "a", store.Engine().Tables().Version)

	before := store.Engine()
	assert.Equal(t, last, store.reloadIfNewer(p, last))
	assert.Same(t, before, store.Engine(), "unchanged file must not reload")

	writeFile(t, dir, "tables.yaml", `version: "b"`)
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(p, future, future))
	store.reloadIfNewer(p, last)
	assert.Equal(t, "b", store.Engine().Tables().Version)
}

func TestWatchReloadsUntilCancelled(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tables.yaml", `version: "a"`)

	store, err := NewStore(NewLoader(p))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.Watch(ctx, 5*time.Millisecond)

	writeFile(t, dir, "tables.yaml", `version: "b"`)
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(p, future, future))

	require.Eventually(t, func() bool {
		return store.Engine().Tables().Version == "b"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWatchWithoutOverrideIsNoop(t *testing.T) {
	store, err := NewStore(NewLoader(""))
	require.NoError(t, err)
	store.Watch(context.Background(), time.Millisecond)
	assert.Equal(t, "builtin", store.Engine().Tables().Version)
}
