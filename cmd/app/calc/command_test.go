package calc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()

	code := 0
	prev := cli.OsExiter
	cli.OsExiter = func(c int) { code = c }
	t.Cleanup(func() { cli.OsExiter = prev })

	var out bytes.Buffer
	app := &cli.App{
		Name:   "rollodds",
		Writer: &out,
		Commands: []*cli.Command{
			CalcCommand(),
			SimulateCommand(),
			PlanCommand(),
			TablesCommand(),
		},
	}
	err := app.Run(append([]string{"rollodds"}, args...))
	if code == 0 {
		require.NoError(t, err)
	}
	return out.String(), code
}

func TestCalc(t *testing.T) {
	out, code := run(t, "calc", "--level", "3", "--tier", "1", "--gold", "50")
	assert.Zero(t, code)
	assert.Equal(t, "Chance to hit a desired unit: 77.36%\n", out)
}

func TestCalcVerbose(t *testing.T) {
	out, _ := run(t, "calc", "-l", "3", "-t", "1", "-g", "50", "-v")
	assert.Contains(t, out, "rolls=25")
	assert.Contains(t, out, "tierPool=286")
	assert.Contains(t, out, "goldLeftOver=0")

	out, _ = run(t, "calc", "-l", "3", "-t", "1", "-g", "51", "-v")
	assert.Contains(t, out, "rolls=25 goldLeftOver=1")
}

func TestCalcRejects(t *testing.T) {
	out, code := run(t, "calc", "--level", "3", "--tier", "1", "--gold", "1")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Fill out all fields with valid numbers.\n", out)

	out, code = run(t, "calc", "--level", "3", "--gold", "50")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Fill out all fields with valid numbers.\n", out)
}

func TestSimulate(t *testing.T) {
	out, code := run(t, "simulate", "-l", "3", "-t", "1", "-g", "50", "--trials", "2000", "--seed", "5")
	assert.Zero(t, code)
	assert.Contains(t, out, "expected 77.36%")
	assert.Contains(t, out, "rolls to first hit")
}

func TestPlan(t *testing.T) {
	out, code := run(t, "plan", "-l", "3", "-t", "1", "--target", "50")
	assert.Zero(t, code)
	assert.Equal(t, "24 gold (12 rolls) reaches 50.99%\n", out)

	out, code = run(t, "plan", "-l", "3", "-t", "1", "--target", "99.9", "--max-gold", "50")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "not reachable")
}

func TestTablesWithOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(p, []byte("version: \"custom\"\ngold_per_roll: 3\n"), 0o644))

	out, code := run(t, "tables", "--tables", p)
	assert.Zero(t, code)
	assert.Contains(t, out, "version: custom")
	assert.Contains(t, out, "gold_per_roll: 3")

	out, _ = run(t, "calc", "--tables", p, "-l", "3", "-t", "1", "-g", "50")
	assert.Equal(t, "Chance to hit a desired unit: 61.36%\n", out)
}
